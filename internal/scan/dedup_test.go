package scan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupStore(t *testing.T) {
	t.Parallel()

	d := NewDedupStore()

	assert.False(t, d.HasSeen("a"))
	assert.Equal(t, 0, d.Len())

	d.MarkSeen("a")
	assert.True(t, d.HasSeen("a"))
	assert.False(t, d.HasSeen("b"))
	assert.Equal(t, 1, d.Len())

	d.MarkSeen("b")
	assert.Equal(t, 2, d.Len())
}

func TestDedupStore_FirstSeenPreserved(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	d := NewDedupStore(WithDedupNowFunc(func() time.Time { return now }))

	d.MarkSeen("a")
	first, ok := d.FirstSeen("a")
	require.True(t, ok)
	assert.Equal(t, now, first)

	// Re-marking must not move the timestamp.
	now = now.Add(time.Hour)
	d.MarkSeen("a")
	again, ok := d.FirstSeen("a")
	require.True(t, ok)
	assert.Equal(t, first, again)

	_, ok = d.FirstSeen("missing")
	assert.False(t, ok)
}
