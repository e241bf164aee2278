package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/ledger/reflection"
)

var _ reflection.StateStore = (*PromptState)(nil)

func TestPromptStateStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newTestSQLite(t)

	alice := s.PromptStateStore("alice")
	bob := s.PromptStateStore("bob")

	st, err := alice.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, reflection.Initial(), st)

	next := st.RecordAnswer().RecordAnswer()
	require.NoError(t, alice.Save(ctx, next))
	require.NoError(t, alice.Save(ctx, next.AdvanceGroup()))

	got, err := alice.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, next.AdvanceGroup(), got)

	other, err := bob.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, reflection.Initial(), other)

	assert.Error(t, bob.Save(ctx, reflection.State{CurrentGroupIndex: 5}))
}

func TestPromptStateWithRotator(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newTestSQLite(t)

	r := reflection.NewRotator(s.PromptStateStore("default"))
	for i := 0; i < 3; i++ {
		_, err := r.Answer(ctx, func(p reflection.Prompt) error {
			refl, err := reflection.New(string(rune('a'+i)), baseTime, p, "ok")
			if err != nil {
				return err
			}
			return s.InsertReflection(ctx, refl)
		})
		require.NoError(t, err)
	}

	st, err := s.PromptStateStore("default").Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, reflection.State{CurrentGroupIndex: 3, PromptIndexes: [4]int{1, 1, 1, 0}}, st)

	list, err := s.ListReflections(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}
