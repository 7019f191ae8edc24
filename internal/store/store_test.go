package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_GetInsertRemove(t *testing.T) {
	s := NewMemory[string, int]()

	_, ok, err := s.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Insert("a", 1))
	v, ok, err := s.Get("a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	// Insert 为覆盖语义
	require.NoError(t, s.Insert("a", 2))
	v, _, _ = s.Get("a")
	assert.Equal(t, 2, v)

	require.NoError(t, s.Remove("a"))
	_, ok, _ = s.Get("a")
	assert.False(t, ok)

	assert.ErrorIs(t, s.Remove("a"), ErrNotFound)
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	s := NewMemory[int, int]()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := base*100 + j
				assert.NoError(t, s.Insert(key, j))
				_, _, err := s.Get(key)
				assert.NoError(t, err)
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < 800; i++ {
		_, ok, err := s.Get(i)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}
