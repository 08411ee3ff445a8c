package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"DataHub/internal/domain/models"
	domrepo "DataHub/internal/domain/repository"
	"DataHub/pkg/cache"
	applogger "DataHub/pkg/logger"
)

var _ domrepo.Store = (*CachedStore)(nil)

const (
	indicatorCachePrefix = "ind"
	seriesCachePrefix    = "series"
)

// CachedStore is a read-through cache in front of a Store. Cache failures are
// logged and the call falls through to the backing store.
//
// Cache keys carry a per-key generation that is bumped after every successful
// write. A read that started before the write can only fill an entry of the old
// generation, which no later read looks up.
type CachedStore struct {
	next    domrepo.Store
	cache   cache.Service
	ttl     time.Duration
	metrics domrepo.Metrics
	l       *applogger.Logger
	gens    generations
}

// generations counts completed writes per store key.
type generations struct {
	mu sync.Mutex
	m  map[string]uint64
}

func (g *generations) get(key string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.m[key]
}

func (g *generations) bump(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.m == nil {
		g.m = make(map[string]uint64)
	}
	g.m[key]++
}

type CachedStoreOption func(*CachedStore)

func WithCacheTTL(ttl time.Duration) CachedStoreOption {
	return func(s *CachedStore) { s.ttl = ttl }
}

func WithCacheMetrics(m domrepo.Metrics) CachedStoreOption {
	return func(s *CachedStore) { s.metrics = m }
}

func WithCacheLogger(l *applogger.Logger) CachedStoreOption {
	return func(s *CachedStore) { s.l = l }
}

func NewCachedStore(next domrepo.Store, c cache.Service, opts ...CachedStoreOption) *CachedStore {
	s := &CachedStore{next: next, cache: c, ttl: time.Minute}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func indicatorCacheKey(key string, gen uint64) string {
	return cache.GenerateKeyWithParams(indicatorCachePrefix, key, gen)
}

func seriesCacheKey(key string, gen uint64, q models.SeriesQuery) string {
	return cache.GenerateKeyWithParams(seriesCachePrefix, key, gen, q.Since, q.Limit)
}

func (s *CachedStore) GetIndicator(ctx context.Context, key string) (*models.IndicatorRecord, error) {
	ck := indicatorCacheKey(key, s.gens.get(indicatorCachePrefix+":"+key))
	var rec models.IndicatorRecord
	if s.lookup(ctx, ck, &rec) {
		return &rec, nil
	}

	got, err := s.next.GetIndicator(ctx, key)
	if err != nil || got == nil {
		return got, err
	}
	s.store(ctx, ck, got)
	return got, nil
}

func (s *CachedStore) PutIndicator(ctx context.Context, rec *models.IndicatorRecord) error {
	if err := s.next.PutIndicator(ctx, rec); err != nil {
		return err
	}
	s.gens.bump(indicatorCachePrefix + ":" + rec.Key)
	pattern := cache.BuildPattern(cache.GenerateKey(indicatorCachePrefix, rec.Key) + ":")
	s.invalidate(func() error { return s.cache.DeleteByPattern(ctx, pattern) })
	return nil
}

// GetSeries caches non-empty results only, so a series that appears later is seen immediately.
func (s *CachedStore) GetSeries(ctx context.Context, key string, q models.SeriesQuery) ([]models.SeriesPoint, error) {
	ck := seriesCacheKey(key, s.gens.get(seriesCachePrefix+":"+key), q)
	var points []models.SeriesPoint
	if s.lookup(ctx, ck, &points) {
		for i := range points {
			points[i].SeriesKey = key
		}
		return points, nil
	}

	got, err := s.next.GetSeries(ctx, key, q)
	if err != nil {
		return nil, err
	}
	if len(got) > 0 {
		s.store(ctx, ck, got)
	}
	return got, nil
}

func (s *CachedStore) PutSeriesPoints(ctx context.Context, seriesKey string, points []models.SeriesPoint) error {
	if err := s.next.PutSeriesPoints(ctx, seriesKey, points); err != nil {
		return err
	}
	if len(points) == 0 {
		return nil
	}
	s.gens.bump(seriesCachePrefix + ":" + seriesKey)
	pattern := cache.BuildPattern(cache.GenerateKey(seriesCachePrefix, seriesKey) + ":")
	s.invalidate(func() error { return s.cache.DeleteByPattern(ctx, pattern) })
	return nil
}

func (s *CachedStore) LatestSeriesDate(ctx context.Context, key string) (string, bool, error) {
	return s.next.LatestSeriesDate(ctx, key)
}

func (s *CachedStore) ListIndicators(ctx context.Context) ([]models.IndicatorSummary, error) {
	return s.next.ListIndicators(ctx)
}

func (s *CachedStore) ListSeriesStats(ctx context.Context) ([]models.SeriesStats, error) {
	return s.next.ListSeriesStats(ctx)
}

func (s *CachedStore) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}

// Close closes the backing store; the cache is owned by the caller.
func (s *CachedStore) Close() error {
	return s.next.Close()
}

func (s *CachedStore) lookup(ctx context.Context, key string, dest any) bool {
	err := s.cache.Get(ctx, key, dest)
	if err == nil {
		if s.metrics != nil {
			s.metrics.RecordCacheHit("store")
		}
		return true
	}
	if s.metrics != nil {
		s.metrics.RecordCacheMiss("store")
	}
	if !errors.Is(err, cache.ErrCacheMiss) && s.l != nil {
		s.l.Warn("store cache get failed",
			applogger.String("key", key),
			applogger.Error(err),
		)
	}
	return false
}

func (s *CachedStore) store(ctx context.Context, key string, v any) {
	if err := s.cache.Set(ctx, key, v, s.ttl); err != nil && s.l != nil {
		s.l.Warn("store cache set failed",
			applogger.String("key", key),
			applogger.Error(err),
		)
	}
}

func (s *CachedStore) invalidate(fn func() error) {
	if err := fn(); err != nil && s.l != nil {
		s.l.Warn("store cache invalidation failed", applogger.Error(err))
	}
}
