package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/ledger/reflection"
)

func newReflection(t *testing.T, id string, at time.Time, answer string) reflection.Reflection {
	t.Helper()
	r, err := reflection.New(id, at, reflection.Initial().CurrentPrompt(), answer)
	require.NoError(t, err)
	return r
}

func TestReflectionCRUD(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newTestSQLite(t)

	first := newReflection(t, "01A", baseTime, "patient")
	second := newReflection(t, "01B", baseTime.Add(24*time.Hour), "overtraded")
	require.NoError(t, s.InsertReflection(ctx, first))
	require.NoError(t, s.InsertReflection(ctx, second))

	assert.ErrorIs(t, s.InsertReflection(ctx, first), ErrDuplicate)

	got, err := s.GetReflection(ctx, "01A")
	require.NoError(t, err)
	assert.Equal(t, first.Group, got.Group)
	assert.Equal(t, first.Prompt, got.Prompt)
	assert.Equal(t, "patient", got.Answer)
	assert.True(t, got.Date.Equal(baseTime))

	list, err := s.ListReflections(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "01B", list[0].ID)
	assert.Equal(t, "01A", list[1].ID)

	updated, err := s.UpdateReflectionAnswer(ctx, "01A", "patient, mostly")
	require.NoError(t, err)
	assert.Equal(t, "patient, mostly", updated.Answer)

	require.NoError(t, s.DeleteReflection(ctx, "01B"))
	list, err = s.ListReflections(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestReflectionNotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newTestSQLite(t)

	_, err := s.GetReflection(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.UpdateReflectionAnswer(ctx, "missing", "x")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.DeleteReflection(ctx, "missing"), ErrNotFound)

	list, err := s.ListReflections(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
