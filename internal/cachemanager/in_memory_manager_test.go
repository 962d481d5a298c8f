package cachemanager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type digest string

func newHTMLCache() *InMemoryCacheManager[digest, string] {
	return NewInMemoryCacheManager[digest, string]("html", DefaultExpiration, DefaultCleanupInterval)
}

func TestInMemoryCacheManager_SetGet(t *testing.T) {
	cache := newHTMLCache()
	cache.Set(context.Background(), "d1", "<p>a</p>", 0)

	got, ok := cache.Get(context.Background(), "d1")
	require.True(t, ok)
	require.Equal(t, "<p>a</p>", got)
	require.Equal(t, 1, cache.Len())
}

func TestInMemoryCacheManager_Miss(t *testing.T) {
	got, ok := newHTMLCache().Get(context.Background(), "missing")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_WrongType(t *testing.T) {
	cache := newHTMLCache()
	cache.cache.Set("d1", 123, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "d1")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_Expires(t *testing.T) {
	cache := newHTMLCache()
	cache.Set(context.Background(), "d1", "<p>a</p>", 10*time.Millisecond)

	require.Eventually(t, func() bool {
		_, ok := cache.Get(context.Background(), "d1")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestInMemoryCacheManager_GetWithRefresh(t *testing.T) {
	cache := newHTMLCache()
	cache.Set(context.Background(), "d1", "<p>a</p>", 50*time.Millisecond)

	got, ok := cache.GetWithRefresh(context.Background(), "d1", time.Hour)
	require.True(t, ok)
	require.Equal(t, "<p>a</p>", got)

	time.Sleep(80 * time.Millisecond)
	_, ok = cache.Get(context.Background(), "d1")
	require.True(t, ok, "refresh extended the ttl")

	_, ok = cache.GetWithRefresh(context.Background(), "missing", time.Hour)
	require.False(t, ok)
}

func TestInMemoryCacheManager_DeleteAndFlush(t *testing.T) {
	ctx := context.Background()
	cache := newHTMLCache()
	cache.Set(ctx, "d1", "a", 0)
	cache.Set(ctx, "d2", "b", 0)
	cache.Set(ctx, "d3", "c", 0)

	require.NoError(t, cache.Delete(ctx, "d1", "missing"))
	_, ok := cache.Get(ctx, "d1")
	require.False(t, ok)
	require.Equal(t, 2, cache.Len())

	require.NoError(t, cache.Delete(ctx))
	require.Equal(t, 2, cache.Len())

	require.NoError(t, cache.Flush(ctx))
	require.Zero(t, cache.Len())
}
