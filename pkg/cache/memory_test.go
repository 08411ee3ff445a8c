package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

func newTestCache(t *testing.T, opts ...MemoryOption) *MemoryCache {
	t.Helper()
	mc := NewMemoryCache(opts...)
	t.Cleanup(func() { _ = mc.Close() })
	return mc
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mc := newTestCache(t)

	in := []point{{Date: "2024-01-01", Value: 1.5}}
	require.NoError(t, mc.Set(ctx, "series:a", in, time.Minute))

	var out []point
	require.NoError(t, mc.Get(ctx, "series:a", &out))
	assert.Equal(t, in, out)

	var missing []point
	assert.ErrorIs(t, mc.Get(ctx, "series:b", &missing), ErrCacheMiss)
}

func TestMemoryCacheExpiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mc := newTestCache(t)

	require.NoError(t, mc.Set(ctx, "k", "v", time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	var s string
	assert.ErrorIs(t, mc.Get(ctx, "k", &s), ErrCacheMiss)
}

func TestMemoryCacheDeleteByPattern(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mc := newTestCache(t)

	for _, k := range []string{"series:hist_A:x", "series:hist_A:y", "series:hist_AB:x", "ind:hist_A"} {
		require.NoError(t, mc.Set(ctx, k, 1, time.Minute))
	}

	require.NoError(t, mc.DeleteByPattern(ctx, BuildPattern("series:hist_A:")))
	assert.Equal(t, 2, mc.Len())

	var v int
	assert.NoError(t, mc.Get(ctx, "series:hist_AB:x", &v))
	assert.NoError(t, mc.Get(ctx, "ind:hist_A", &v))
}

func TestMemoryCacheEvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mc := newTestCache(t, WithMemoryMaxSize(2))

	require.NoError(t, mc.Set(ctx, "a", 1, time.Minute))
	time.Sleep(time.Millisecond)
	require.NoError(t, mc.Set(ctx, "b", 2, time.Minute))
	time.Sleep(time.Millisecond)

	var v int
	require.NoError(t, mc.Get(ctx, "a", &v))
	require.NoError(t, mc.Set(ctx, "c", 3, time.Minute))

	assert.ErrorIs(t, mc.Get(ctx, "b", &v), ErrCacheMiss)
	assert.NoError(t, mc.Get(ctx, "a", &v))
	assert.NoError(t, mc.Get(ctx, "c", &v))
}

func TestMemoryCacheLock(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mc := newTestCache(t)

	ok, err := mc.TryLock(ctx, "lock:AAPL", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = mc.TryLock(ctx, "lock:AAPL", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, mc.Unlock(ctx, "lock:AAPL"))
	ok, err = mc.TryLock(ctx, "lock:AAPL", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGenerateKeyWithParams(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "series:hist_A:2024-01-01:10", GenerateKeyWithParams("series", "hist_A", "2024-01-01", 10))
	assert.Equal(t, `ind\*x*`, BuildPattern("ind*x"))
}

func TestMemoryCacheCleanupSweepsExpired(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mc := newTestCache(t, WithMemoryCleanup(10*time.Millisecond))

	require.NoError(t, mc.Set(ctx, "ind:a", 1.0, 5*time.Millisecond))
	require.NoError(t, mc.Set(ctx, "ind:b", 2.0, time.Minute))

	assert.Eventually(t, func() bool { return mc.Len() == 1 }, time.Second, 5*time.Millisecond)
}

func TestMemoryCacheCleanupIgnoresNonPositiveInterval(t *testing.T) {
	t.Parallel()
	mc := newTestCache(t, WithMemoryCleanup(0))
	assert.Equal(t, 5*time.Minute, mc.interval)
}
