package repository

import (
	"context"
	"testing"
	"time"

	"DataHub/internal/domain/errs"
	"DataHub/internal/domain/models"
	"DataHub/internal/domain/repository/mocks"
	"DataHub/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newCachedStore(t *testing.T) (*CachedStore, *mocks.MockStore, *mocks.MockMetrics) {
	t.Helper()
	ctrl := gomock.NewController(t)
	next := mocks.NewMockStore(ctrl)
	m := mocks.NewMockMetrics(ctrl)
	mc := cache.NewMemoryCache()
	t.Cleanup(func() { _ = mc.Close() })
	return NewCachedStore(next, mc, WithCacheTTL(time.Minute), WithCacheMetrics(m)), next, m
}

func TestCachedStore_IndicatorReadThrough(t *testing.T) {
	ctx := context.Background()
	s, next, m := newCachedStore(t)

	rec := &models.IndicatorRecord{Key: "gdp_yoy", Value: 1.9, Unit: "%"}
	next.EXPECT().GetIndicator(gomock.Any(), "gdp_yoy").Return(rec, nil).Times(1)
	m.EXPECT().RecordCacheMiss("store").Times(1)
	m.EXPECT().RecordCacheHit("store").Times(1)

	got, err := s.GetIndicator(ctx, "gdp_yoy")
	require.NoError(t, err)
	assert.Equal(t, 1.9, got.Value)

	got, err = s.GetIndicator(ctx, "gdp_yoy")
	require.NoError(t, err)
	assert.Equal(t, "%", got.Unit)
}

func TestCachedStore_MissingIndicatorNotCached(t *testing.T) {
	ctx := context.Background()
	s, next, m := newCachedStore(t)

	next.EXPECT().GetIndicator(gomock.Any(), "nope").Return(nil, nil).Times(2)
	m.EXPECT().RecordCacheMiss("store").Times(2)

	for i := 0; i < 2; i++ {
		got, err := s.GetIndicator(ctx, "nope")
		require.NoError(t, err)
		assert.Nil(t, got)
	}
}

func TestCachedStore_PutIndicatorInvalidates(t *testing.T) {
	ctx := context.Background()
	s, next, m := newCachedStore(t)
	m.EXPECT().RecordCacheMiss("store").AnyTimes()
	m.EXPECT().RecordCacheHit("store").AnyTimes()

	old := &models.IndicatorRecord{Key: "k", Value: 1}
	fresh := &models.IndicatorRecord{Key: "k", Value: 2}
	gomock.InOrder(
		next.EXPECT().GetIndicator(gomock.Any(), "k").Return(old, nil),
		next.EXPECT().PutIndicator(gomock.Any(), fresh).Return(nil),
		next.EXPECT().GetIndicator(gomock.Any(), "k").Return(fresh, nil),
	)

	got, err := s.GetIndicator(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 1.0, got.Value)

	require.NoError(t, s.PutIndicator(ctx, fresh))

	got, err = s.GetIndicator(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 2.0, got.Value)
}

func TestCachedStore_SeriesInvalidatedPerKey(t *testing.T) {
	ctx := context.Background()
	s, next, m := newCachedStore(t)
	m.EXPECT().RecordCacheMiss("store").AnyTimes()
	m.EXPECT().RecordCacheHit("store").AnyTimes()

	q := models.SeriesQuery{Since: "2024-01-01", Limit: 10}
	pts := []models.SeriesPoint{{SeriesKey: "a", Date: "2024-01-01", Value: 1}}
	other := []models.SeriesPoint{{SeriesKey: "ab", Date: "2024-01-01", Value: 9}}

	next.EXPECT().GetSeries(gomock.Any(), "a", q).Return(pts, nil).Times(2)
	next.EXPECT().GetSeries(gomock.Any(), "ab", q).Return(other, nil).Times(1)
	next.EXPECT().PutSeriesPoints(gomock.Any(), "a", pts).Return(nil)

	_, err := s.GetSeries(ctx, "a", q)
	require.NoError(t, err)
	_, err = s.GetSeries(ctx, "ab", q)
	require.NoError(t, err)

	got, err := s.GetSeries(ctx, "a", q)
	require.NoError(t, err)
	assert.Equal(t, pts, got)

	require.NoError(t, s.PutSeriesPoints(ctx, "a", pts))

	// "a" refetches, "ab" still served from cache
	_, err = s.GetSeries(ctx, "a", q)
	require.NoError(t, err)
	got, err = s.GetSeries(ctx, "ab", q)
	require.NoError(t, err)
	assert.Equal(t, other, got)
}

func TestCachedStore_EmptySeriesNotCached(t *testing.T) {
	ctx := context.Background()
	s, next, m := newCachedStore(t)
	m.EXPECT().RecordCacheMiss("store").Times(2)

	next.EXPECT().GetSeries(gomock.Any(), "x", models.SeriesQuery{}).Return([]models.SeriesPoint{}, nil).Times(2)
	for i := 0; i < 2; i++ {
		got, err := s.GetSeries(ctx, "x", models.SeriesQuery{})
		require.NoError(t, err)
		assert.Empty(t, got)
	}
}

func TestCachedStore_PropagatesStoreErrors(t *testing.T) {
	ctx := context.Background()
	s, next, m := newCachedStore(t)
	m.EXPECT().RecordCacheMiss("store").Times(1)

	next.EXPECT().GetIndicator(gomock.Any(), "k").Return(nil, errs.CacheIO("get_indicator", "k", assert.AnError))
	_, err := s.GetIndicator(ctx, "k")
	assert.True(t, errs.IsCacheIO(err))
}

func TestCachedStore_ReadRacingWriteDoesNotPinOldValue(t *testing.T) {
	ctx := context.Background()
	s, next, m := newCachedStore(t)
	m.EXPECT().RecordCacheMiss("store").AnyTimes()
	m.EXPECT().RecordCacheHit("store").AnyTimes()

	old := &models.IndicatorRecord{Key: "cpi", Value: 1}
	fresh := &models.IndicatorRecord{Key: "cpi", Value: 2}
	started := make(chan struct{})
	release := make(chan struct{})
	gomock.InOrder(
		next.EXPECT().GetIndicator(gomock.Any(), "cpi").DoAndReturn(
			func(context.Context, string) (*models.IndicatorRecord, error) {
				close(started)
				<-release
				return old, nil
			}),
		next.EXPECT().PutIndicator(gomock.Any(), fresh).Return(nil),
		next.EXPECT().GetIndicator(gomock.Any(), "cpi").Return(fresh, nil),
	)

	done := make(chan *models.IndicatorRecord, 1)
	go func() {
		got, _ := s.GetIndicator(ctx, "cpi")
		done <- got
	}()

	<-started
	require.NoError(t, s.PutIndicator(ctx, fresh))
	close(release)
	assert.Equal(t, 1.0, (<-done).Value)

	got, err := s.GetIndicator(ctx, "cpi")
	require.NoError(t, err)
	assert.Equal(t, 2.0, got.Value)
}

func TestCachedStore_WriteVisibleForAnySinceFormat(t *testing.T) {
	ctx := context.Background()
	mc := cache.NewMemoryCache()
	t.Cleanup(func() { _ = mc.Close() })
	s := NewCachedStore(newTestSQLStore(t), mc)

	require.NoError(t, s.PutSeriesPoints(ctx, "fx", []models.SeriesPoint{{Date: "2025-01-01", Value: 1}}))

	q := models.SeriesQuery{Since: "2024/12/31"}
	got, err := s.GetSeries(ctx, "fx", q)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1.0, got[0].Value)

	require.NoError(t, s.PutSeriesPoints(ctx, "fx", []models.SeriesPoint{{Date: "2025-01-01", Value: 99}}))

	got, err = s.GetSeries(ctx, "fx", q)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 99.0, got[0].Value)
}
