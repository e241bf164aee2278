package id

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsSortable(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2025, 10, 17, 16, 0, 0, 0, time.UTC)
	g := NewGenerator(func() time.Time { return fixed })

	ids := make([]string, 50)
	for i := range ids {
		ids[i] = g.New()
		assert.Len(t, ids[i], 26)
	}
	assert.True(t, sort.StringsAreSorted(ids), "same-millisecond ids must stay ordered")

	at, err := Time(ids[0])
	require.NoError(t, err)
	assert.True(t, at.Equal(fixed))
}

func TestPackageNew(t *testing.T) {
	t.Parallel()

	a, b := New(), New()
	assert.NotEqual(t, a, b)
	assert.Less(t, a, b)

	_, err := Time("not-a-ulid")
	assert.Error(t, err)
}
