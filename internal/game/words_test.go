package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultWordPool(t *testing.T) {
	pool := DefaultWordPool()
	assert.Equal(t, 90, pool.Len())
	assert.True(t, pool.Contains("ice cream"))
	assert.False(t, pool.Contains("spaceship"))
}

func TestNewWordPoolDeduplicates(t *testing.T) {
	pool := NewWordPool([]string{"cat", "dog", "cat", ""})
	assert.Equal(t, 2, pool.Len())
}

func TestPickNoRepeatUntilExhausted(t *testing.T) {
	pool := NewWordPool([]string{"a", "b", "c", "d", "e"})
	rng := rand.New(rand.NewSource(7))
	used := map[string]struct{}{}

	for i := 0; i < pool.Len(); i++ {
		w, err := pool.Pick(rng, used)
		require.NoError(t, err)
		_, dup := used[w]
		assert.False(t, dup, "word %q repeated before exhaustion", w)
		used[w] = struct{}{}
	}

	_, err := pool.Pick(rng, used)
	assert.ErrorIs(t, err, ErrPoolExhausted)

	w, err := pool.Pick(rng, map[string]struct{}{})
	require.NoError(t, err)
	assert.True(t, pool.Contains(w))
}
