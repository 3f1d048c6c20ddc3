package session

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeKV is an in-memory stand-in for the Redis client.
type fakeKV struct {
	values map[string]time.Duration
	err    error
}

func (f *fakeKV) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	f.values[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeKV) Exists(ctx context.Context, keys ...string) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.values[k]; ok {
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestRedisRevoker(t *testing.T) {
	ctx := context.Background()
	store := &fakeKV{values: make(map[string]time.Duration)}
	r := &RedisRevoker{client: store}

	revoked, err := r.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, r.Revoke(ctx, "token-a", time.Hour))
	revoked, err = r.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = r.IsRevoked(ctx, "token-b")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.Len(t, store.values, 1)
	for key, ttl := range store.values {
		assert.True(t, strings.HasPrefix(key, keyPrefix))
		assert.NotContains(t, key, "token-a")
		assert.Equal(t, time.Hour, ttl)
	}
}

func TestRedisRevoker_SkipsExpiredAndPropagatesErrors(t *testing.T) {
	ctx := context.Background()
	store := &fakeKV{values: make(map[string]time.Duration)}
	r := &RedisRevoker{client: store}

	require.NoError(t, r.Revoke(ctx, "old", 0))
	assert.Empty(t, store.values)

	store.err = assert.AnError
	require.ErrorIs(t, r.Revoke(ctx, "tok", time.Minute), assert.AnError)
	_, err := r.IsRevoked(ctx, "tok")
	require.ErrorIs(t, err, assert.AnError)
}

func TestNewClient_BadURL(t *testing.T) {
	_, err := NewClient(context.Background(), "http://not-redis")
	require.Error(t, err)
}
