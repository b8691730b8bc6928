package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/papyrus/core"
)

func testMatches() []core.QueryMatch {
	return []core.QueryMatch{
		{Id: "7:0:0", Score: 0.92, Text: "attention is all you need"},
		{Id: "7:0:1", Score: 0.81, Text: "multi-head self-attention"},
	}
}

func TestQueryCache_SetAndGet(t *testing.T) {
	c, err := NewQueryCache()
	require.NoError(t, err)
	defer c.Close()

	c.Set("7", "attention", 10, testMatches())
	c.Wait()

	got, ok := c.Get("7", "attention", 10)
	require.True(t, ok)
	assert.Len(t, got, 2)
	assert.Equal(t, "7:0:0", got[0].Id)
}

func TestQueryCache_KeyIncludesNamespaceAndTopK(t *testing.T) {
	c, err := NewQueryCache()
	require.NoError(t, err)
	defer c.Close()

	c.Set("7", "attention", 10, testMatches())
	c.Wait()

	_, ok := c.Get("8", "attention", 10)
	assert.False(t, ok, "different namespace must miss")

	_, ok = c.Get("7", "attention", 5)
	assert.False(t, ok, "different topK must miss")

	_, ok = c.Get("7", "transformers", 10)
	assert.False(t, ok, "different query must miss")
}

func TestQueryCache_TTLExpiry(t *testing.T) {
	c, err := NewQueryCache(WithTTL(20 * time.Millisecond))
	require.NoError(t, err)
	defer c.Close()

	c.Set("7", "attention", 10, testMatches())
	c.Wait()

	_, ok := c.Get("7", "attention", 10)
	require.True(t, ok)

	time.Sleep(50 * time.Millisecond)
	_, ok = c.Get("7", "attention", 10)
	assert.False(t, ok, "entry must expire after TTL")
}

func TestQueryCache_Clear(t *testing.T) {
	c, err := NewQueryCache()
	require.NoError(t, err)
	defer c.Close()

	c.Set("7", "attention", 10, testMatches())
	c.Wait()
	c.Clear()

	_, ok := c.Get("7", "attention", 10)
	assert.False(t, ok)
}
