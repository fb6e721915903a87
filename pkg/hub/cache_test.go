package hub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheSetGet(t *testing.T) {
	t.Parallel()

	cache := NewMemoryCache(10)
	ctx := context.Background()

	entry := &CacheEntry{
		Data:      []byte(`{"name":"my-project"}`),
		ExpiresAt: time.Now().Add(time.Minute),
		ETag:      `"abc"`,
	}

	require.NoError(t, cache.Set(ctx, "GET:/api/projects", entry))

	got, err := cache.Get(ctx, "GET:/api/projects")
	require.NoError(t, err)
	assert.Equal(t, entry.Data, got.Data)
	assert.Equal(t, `"abc"`, got.ETag)
}

func TestMemoryCacheMissing(t *testing.T) {
	t.Parallel()

	cache := NewMemoryCache(10)

	_, err := cache.Get(context.Background(), "GET:/api/nothing")
	require.ErrorIs(t, err, ErrCacheKeyNotFound)
	assert.Contains(t, err.Error(), "key not found")
}

func TestMemoryCacheExpiry(t *testing.T) {
	t.Parallel()

	cache := NewMemoryCache(10)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", &CacheEntry{
		Data:      []byte("data"),
		ExpiresAt: time.Now().Add(-time.Second),
	}))

	_, err := cache.Get(ctx, "key")
	require.ErrorIs(t, err, ErrCacheEntryExpired)
	assert.False(t, cache.Has(ctx, "key"))
}

func TestMemoryCacheEviction(t *testing.T) {
	t.Parallel()

	cache := NewMemoryCache(2)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "oldest", &CacheEntry{ExpiresAt: time.Now().Add(time.Minute)}))
	require.NoError(t, cache.Set(ctx, "newer", &CacheEntry{ExpiresAt: time.Now().Add(time.Hour)}))
	require.NoError(t, cache.Set(ctx, "newest", &CacheEntry{ExpiresAt: time.Now().Add(time.Hour)}))

	assert.False(t, cache.Has(ctx, "oldest"))
	assert.True(t, cache.Has(ctx, "newer"))
	assert.True(t, cache.Has(ctx, "newest"))
}

func TestMemoryCacheDeleteAndClear(t *testing.T) {
	t.Parallel()

	cache := NewMemoryCache(10)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "a", &CacheEntry{ExpiresAt: time.Now().Add(time.Minute)}))
	require.NoError(t, cache.Set(ctx, "b", &CacheEntry{ExpiresAt: time.Now().Add(time.Minute)}))

	require.NoError(t, cache.Delete(ctx, "a"))
	assert.False(t, cache.Has(ctx, "a"))
	assert.True(t, cache.Has(ctx, "b"))

	require.NoError(t, cache.Clear(ctx))
	assert.False(t, cache.Has(ctx, "b"))
}

func TestMemoryCacheCleanup(t *testing.T) {
	t.Parallel()

	cache := NewMemoryCache(10)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "live", &CacheEntry{ExpiresAt: time.Now().Add(time.Minute)}))
	require.NoError(t, cache.Set(ctx, "dead", &CacheEntry{ExpiresAt: time.Now().Add(-time.Minute)}))

	cache.Cleanup()

	assert.True(t, cache.Has(ctx, "live"))
	assert.False(t, cache.Has(ctx, "dead"))
}

func TestCacheManagerKeys(t *testing.T) {
	t.Parallel()

	manager := NewCacheManager(NewMemoryCache(10), nil)

	assert.Equal(t, "GET:/api/projects", manager.GetCacheKey("GET", "/api/projects", nil))

	withParams := manager.GetCacheKey("GET", "/api/projects", map[string]string{
		"offset": "0",
		"limit":  "100",
	})
	assert.Equal(t, "GET:/api/projects:limit=100&offset=0", withParams)
}

func TestCacheManagerStats(t *testing.T) {
	t.Parallel()

	manager := NewCacheManager(NewMemoryCache(10), nil)
	ctx := context.Background()

	_, err := manager.Get(ctx, "missing")
	require.Error(t, err)

	require.NoError(t, manager.Set(ctx, "key", []byte("data"), time.Minute))

	data, err := manager.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), data)

	stats := manager.GetStats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Sets)
	assert.InDelta(t, 0.5, stats.GetHitRate(), 0.001)
}

func TestCacheStatsHitRateEmpty(t *testing.T) {
	t.Parallel()

	stats := &CacheStats{}
	assert.Zero(t, stats.GetHitRate())
}

func TestCachingPolicyShouldCache(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		policy *CachingPolicy
		method string
		path   string
		status int
		want   bool
	}{
		{
			name:   "default caches GET",
			policy: DefaultCachingPolicy(),
			method: "GET",
			path:   "/api/projects",
			status: 200,
			want:   true,
		},
		{
			name:   "default skips POST",
			policy: DefaultCachingPolicy(),
			method: "POST",
			path:   "/api/projects",
			status: 200,
			want:   false,
		},
		{
			name:   "default skips notifications",
			policy: DefaultCachingPolicy(),
			method: "GET",
			path:   "/api/notifications",
			status: 200,
			want:   false,
		},
		{
			name:   "default skips errors",
			policy: DefaultCachingPolicy(),
			method: "GET",
			path:   "/api/projects",
			status: 404,
			want:   false,
		},
		{
			name:   "include paths restrict",
			policy: &CachingPolicy{CacheGET: true, IncludePaths: []string{"/api/projects"}},
			method: "GET",
			path:   "/api/users",
			status: 200,
			want:   false,
		},
		{
			name:   "include paths allow",
			policy: &CachingPolicy{CacheGET: true, IncludePaths: []string{"/api/projects"}},
			method: "GET",
			path:   "/api/projects/123",
			status: 200,
			want:   true,
		},
		{
			name:   "errors cacheable when enabled",
			policy: &CachingPolicy{CacheGET: true, CacheErrors: true},
			method: "GET",
			path:   "/api/projects",
			status: 500,
			want:   true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.policy.ShouldCache(tt.method, tt.path, tt.status))
		})
	}
}

func TestNoOpCache(t *testing.T) {
	t.Parallel()

	cache := &NoOpCache{}
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", &CacheEntry{}))

	_, err := cache.Get(ctx, "key")
	require.ErrorIs(t, err, ErrCacheDisabled)
	assert.False(t, cache.Has(ctx, "key"))
}

func TestCacheChain(t *testing.T) {
	t.Parallel()

	first := NewMemoryCache(10)
	second := NewMemoryCache(10)
	chain := NewCacheChain(first, second)
	ctx := context.Background()

	entry := &CacheEntry{Data: []byte("data"), ExpiresAt: time.Now().Add(time.Minute)}
	require.NoError(t, second.Set(ctx, "key", entry))

	got, err := chain.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, entry.Data, got.Data)

	// The hit back-populates the earlier layer.
	assert.True(t, first.Has(ctx, "key"))

	_, err = chain.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrKeyNotFoundInCaches)
}
