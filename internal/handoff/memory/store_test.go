package memory_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpyw/fmtview/internal/handoff"
	"github.com/mpyw/fmtview/internal/handoff/memory"
)

func TestStore(t *testing.T) {
	t.Parallel()

	s := memory.NewStore()

	_, ok, err := s.Take(t.Context(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Put(t.Context(), "k", "first"))
	require.NoError(t, s.Put(t.Context(), "k", "second"))
	require.NoError(t, s.Put(t.Context(), "empty", ""))
	assert.Equal(t, 2, s.Len())

	v, ok, err := s.Peek(t.Context(), "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", v)

	v, ok, err = s.Take(t.Context(), "empty")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, v)

	v, ok, err = s.Take(t.Context(), "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", v)
	assert.Zero(t, s.Len())
}

func TestStore_Handoff(t *testing.T) {
	t.Parallel()

	s := memory.NewStore()
	now := time.UnixMilli(1234567890)

	_, err := handoff.Claim(t.Context(), s)
	require.ErrorIs(t, err, handoff.ErrNoContent)

	require.NoError(t, handoff.Stash(t.Context(), s, "<a/>", now))

	sel, err := handoff.Inspect(t.Context(), s)
	require.NoError(t, err)
	assert.Equal(t, "<a/>", sel.Content)

	sel, err = handoff.Claim(t.Context(), s)
	require.NoError(t, err)
	assert.Equal(t, "<a/>", sel.Content)
	assert.True(t, now.Equal(sel.CapturedAt))
	assert.Zero(t, s.Len())
}

func TestStore_Concurrent(t *testing.T) {
	t.Parallel()

	s := memory.NewStore()

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_ = s.Put(t.Context(), "k", "v")
			_, _, _ = s.Take(t.Context(), "k")
		}()
	}

	wg.Wait()
	assert.LessOrEqual(t, s.Len(), 1)
}
