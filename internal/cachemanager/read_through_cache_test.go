package cachemanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCacheManager struct {
	mock.Mock
}

func (m *mockCacheManager) Get(ctx context.Context, key digest) (string, bool) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1)
}

func (m *mockCacheManager) GetWithRefresh(ctx context.Context, key digest, ttl time.Duration) (string, bool) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Bool(1)
}

func (m *mockCacheManager) Set(ctx context.Context, key digest, value string, ttl time.Duration) {
	m.Called(ctx, key, value, ttl)
}

func (m *mockCacheManager) Delete(ctx context.Context, keys ...digest) error {
	return m.Called(ctx, keys).Error(0)
}

func (m *mockCacheManager) Flush(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockCacheManager) Len() int {
	return m.Called().Int(0)
}

func render(calls *int) func(context.Context, []byte) (string, error) {
	return func(_ context.Context, input []byte) (string, error) {
		*calls++
		return "<p>" + string(input) + "</p>", nil
	}
}

func TestReadThroughCache_Hit(t *testing.T) {
	ctx := context.Background()
	cache := &mockCacheManager{}
	cache.On("Get", ctx, digest("d1")).Return("<p>cached</p>", true).Once()

	calls := 0
	r := NewReadThroughCache[digest, string, []byte](cache, render(&calls), false)
	got, hit, err := r.Get(ctx, "d1", []byte("a"), time.Minute)

	require.NoError(t, err)
	require.True(t, hit)
	require.Equal(t, "<p>cached</p>", got)
	require.Zero(t, calls)
	cache.AssertExpectations(t)
}

func TestReadThroughCache_MissStores(t *testing.T) {
	ctx := context.Background()
	cache := &mockCacheManager{}
	cache.On("Get", ctx, digest("d1")).Return("", false).Once()
	cache.On("Set", ctx, digest("d1"), "<p>a</p>", time.Minute).Once()

	calls := 0
	r := NewReadThroughCache[digest, string, []byte](cache, render(&calls), false)
	got, hit, err := r.Get(ctx, "d1", []byte("a"), time.Minute)

	require.NoError(t, err)
	require.False(t, hit)
	require.Equal(t, "<p>a</p>", got)
	require.Equal(t, 1, calls)
	cache.AssertExpectations(t)
}

func TestReadThroughCache_ErrorNotStored(t *testing.T) {
	ctx := context.Background()
	cache := &mockCacheManager{}
	cache.On("Get", ctx, digest("d1")).Return("", false).Once()

	boom := errors.New("boom")
	r := NewReadThroughCache[digest, string, []byte](cache, func(context.Context, []byte) (string, error) {
		return "", boom
	}, false)
	_, _, err := r.Get(ctx, "d1", []byte("a"), time.Minute)

	require.ErrorIs(t, err, boom)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReadThroughCache_Skip(t *testing.T) {
	cache := &mockCacheManager{}

	calls := 0
	r := NewReadThroughCache[digest, string, []byte](cache, render(&calls), true)
	for range 2 {
		_, hit, err := r.Get(context.Background(), "d1", []byte("a"), time.Minute)
		require.NoError(t, err)
		require.False(t, hit)
	}
	require.Equal(t, 2, calls)
	cache.AssertExpectations(t)
}

func TestReadThroughCache_GetWithRefresh(t *testing.T) {
	ctx := context.Background()
	cache := &mockCacheManager{}
	cache.On("GetWithRefresh", ctx, digest("d1"), time.Hour).Return("<p>cached</p>", true).Once()

	calls := 0
	r := NewReadThroughCache[digest, string, []byte](cache, render(&calls), false)
	got, hit, err := r.GetWithRefresh(ctx, "d1", []byte("a"), time.Hour)

	require.NoError(t, err)
	require.True(t, hit)
	require.Equal(t, "<p>cached</p>", got)
	cache.AssertExpectations(t)
}

func TestReadThroughCache_WithInMemoryCache(t *testing.T) {
	calls := 0
	r := NewReadThroughCache[digest, string, []byte](newHTMLCache(), render(&calls), false)
	for range 3 {
		got, _, err := r.Get(context.Background(), "d1", []byte("a"), time.Minute)
		require.NoError(t, err)
		require.Equal(t, "<p>a</p>", got)
	}
	require.Equal(t, 1, calls)
}
