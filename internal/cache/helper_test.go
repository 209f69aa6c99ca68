package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedThing struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func withTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	prev := Client
	Client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { Client = prev })
	return mr
}

func TestCacheAside_MissThenHit(t *testing.T) {
	withTestRedis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *cachedThing) func() error {
		return func() error {
			fetches++
			*dest = cachedThing{ID: 7, Name: "first"}
			return nil
		}
	}

	var got cachedThing
	require.NoError(t, CacheAside(ctx, "thing:7", &got, time.Minute, fetch(&got)))
	assert.Equal(t, "first", got.Name)
	assert.Equal(t, 1, fetches)

	var again cachedThing
	require.NoError(t, CacheAside(ctx, "thing:7", &again, time.Minute, fetch(&again)))
	assert.Equal(t, "first", again.Name)
	assert.Equal(t, 1, fetches, "second read should be served from cache")
}

func TestCacheAside_RedisDownFallsBackToFetch(t *testing.T) {
	mr := withTestRedis(t)
	mr.Close()
	ctx := context.Background()

	var got cachedThing
	err := CacheAside(ctx, "thing:7", &got, time.Minute, func() error {
		got = cachedThing{ID: 7, Name: "from db"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "from db", got.Name)
}

func TestGetJSON_MalformedEntryIsAMiss(t *testing.T) {
	mr := withTestRedis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("thing:7", "{not json"))

	var got cachedThing
	assert.False(t, GetJSON(ctx, "thing:7", &got))
}

func TestHelpers_NilClient(t *testing.T) {
	prev := Client
	Client = nil
	t.Cleanup(func() { Client = prev })
	ctx := context.Background()

	var got cachedThing
	assert.False(t, GetJSON(ctx, "thing:7", &got))
	SetJSON(ctx, "thing:7", cachedThing{ID: 7}, time.Minute)

	err := CacheAside(ctx, "thing:7", &got, time.Minute, func() error {
		got = cachedThing{ID: 7, Name: "direct"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "direct", got.Name)
}
