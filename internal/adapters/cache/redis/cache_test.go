package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Requiere un redis real: PETPLATES_TEST_REDIS_ADDR=localhost:6379
func testCache(t *testing.T) *Cache {
	t.Helper()
	addr := os.Getenv("PETPLATES_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("PETPLATES_TEST_REDIS_ADDR not set")
	}
	c, err := Connect(context.Background(), Options{Addr: addr, DB: 1, TTL: time.Minute})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCache_RoundTrip(t *testing.T) {
	c := testCache(t)
	ctx := context.Background()
	key := "test-" + uuid.NewString()

	_, found, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, key, []byte("batch"), 0))
	got, found, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "batch", string(got))

	require.NoError(t, c.Delete(ctx, key))
	_, found, err = c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestConnect_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := Connect(ctx, Options{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}
