package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute)

	_, ok := c.Get(ctx, ScenarioKey(1))
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, ScenarioKey(1), []byte(`{"a":1}`)))
	v, ok := c.Get(ctx, ScenarioKey(1))
	require.True(t, ok)
	assert.Equal(t, `{"a":1}`, string(v))

	require.NoError(t, c.Delete(ctx, ScenarioKey(1)))
	_, ok = c.Get(ctx, ScenarioKey(1))
	assert.False(t, ok)
}

func TestMemoryCache_Expires(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryCache(time.Minute)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", []byte("v")))
	now = now.Add(30 * time.Second)
	_, ok := c.Get(ctx, "k")
	assert.True(t, ok)

	now = now.Add(time.Minute)
	_, ok = c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryCache_NoTTL(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0)
	require.NoError(t, c.Set(ctx, "k", []byte("v")))
	_, ok := c.Get(ctx, "k")
	assert.True(t, ok)
}

func TestScenarioKey(t *testing.T) {
	assert.Equal(t, "scenarios:42", ScenarioKey(42))
}
