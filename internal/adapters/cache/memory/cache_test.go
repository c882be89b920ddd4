package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	c := New(time.Minute)

	_, found, err := c.Get(ctx, "pet-1")
	require.NoError(t, err)
	assert.False(t, found)

	val := []byte(`[{"id":"r1"}]`)
	require.NoError(t, c.Set(ctx, "pet-1", val, 0))
	val[0] = 'x' // el cache guarda su propia copia

	got, found, err := c.Get(ctx, "pet-1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":"r1"}]`, string(got))
	assert.Equal(t, 1, c.Len())

	require.NoError(t, c.Delete(ctx, "pet-1"))
	_, found, _ = c.Get(ctx, "pet-1")
	assert.False(t, found)
}

func TestCache_Expires(t *testing.T) {
	ctx := context.Background()
	c := New(time.Minute)

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 20*time.Millisecond))
	time.Sleep(40 * time.Millisecond)

	_, found, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "k2", []byte("v"), 0))
	c.Flush()
	assert.Equal(t, 0, c.Len())
}
