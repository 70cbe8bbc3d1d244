package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docrag/internal/config"
	"docrag/internal/platform/redis"
)

type sessionCache interface {
	Put(ctx context.Context, token string, seen time.Time) error
	Touch(ctx context.Context, token string, seen time.Time) (bool, error)
	Get(ctx context.Context, token string) (time.Time, bool, error)
	Delete(ctx context.Context, token string) error
}

func exerciseSessionCache(t *testing.T, c sessionCache) {
	ctx := context.Background()
	token := "tok-" + uuid.NewString()
	t0 := time.Unix(1700000000, 0)

	ok, err := c.Touch(ctx, token, t0)
	require.NoError(t, err)
	assert.False(t, ok, "touch must not create a session")

	_, found, err := c.Get(ctx, token)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Put(ctx, token, t0))
	seen, found, err := c.Get(ctx, token)
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, seen.Equal(t0))

	t1 := t0.Add(time.Hour)
	ok, err = c.Touch(ctx, token, t1)
	require.NoError(t, err)
	assert.True(t, ok)
	seen, _, err = c.Get(ctx, token)
	require.NoError(t, err)
	assert.True(t, seen.Equal(t1))

	require.NoError(t, c.Delete(ctx, token))
	require.NoError(t, c.Delete(ctx, token))
	_, found, err = c.Get(ctx, token)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemorySessionCache(t *testing.T) {
	exerciseSessionCache(t, NewMemorySessionCache())
}

func TestRedisSessionCache(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	client, err := redis.New(context.Background(), config.RedisConfig{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	exerciseSessionCache(t, NewRedisSessionCache(client, "docrag:test:session:"))
}
