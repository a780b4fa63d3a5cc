package rediscache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Necesita un Redis real: REDIS_ADDR=localhost:6379 go test ./...
func newTestCache(t *testing.T) *Cache {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	c, err := New(context.Background(), Options{Addr: addr}, "test:"+uuid.NewString()+":")
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

type payload struct {
	ID   int
	Name string
	At   time.Time
}

func TestCache_SetGetInvalidate(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	var got payload
	hit, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	in := payload{ID: 1, Name: "Leo", At: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
	require.NoError(t, c.Set(ctx, "k", in, time.Minute))

	hit, err = c.Get(ctx, "k", &got)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, in.ID, got.ID)
	assert.True(t, in.At.Equal(got.At))

	require.NoError(t, c.Invalidate(ctx, "k", "missing"))
	hit, err = c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestNew_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := New(ctx, Options{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond}, "")
	assert.Error(t, err)
}
