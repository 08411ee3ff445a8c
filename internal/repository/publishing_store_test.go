package repository

import (
	"context"
	"testing"
	"time"

	"DataHub/internal/domain/errs"
	"DataHub/internal/domain/models"
	"DataHub/internal/domain/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestPublishingStore_EmitsAfterWrites(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockStore(ctrl)
	pub := mocks.NewMockEventPublisher(ctrl)
	s := NewPublishingStore(next, pub, nil)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	ctx := context.Background()
	rec := &models.IndicatorRecord{Key: "gdp_yoy", Value: 2}
	pts := []models.SeriesPoint{{Date: "2025-01-01", Value: 1}, {Date: "2025-02-01", Value: 2}}

	next.EXPECT().PutIndicator(ctx, rec).Return(nil)
	next.EXPECT().PutSeriesPoints(ctx, "hicp", pts).Return(nil)

	var got []*models.ChangeEvent
	pub.EXPECT().PublishChange(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, ev *models.ChangeEvent) error {
		got = append(got, ev)
		return nil
	}).Times(2)

	require.NoError(t, s.PutIndicator(ctx, rec))
	require.NoError(t, s.PutSeriesPoints(ctx, "hicp", pts))

	require.Len(t, got, 2)
	assert.Equal(t, models.EventIndicatorUpdated, got[0].Type)
	assert.Equal(t, "gdp_yoy", got[0].Key)
	assert.NotEmpty(t, got[0].ID)
	assert.Equal(t, fixed, got[0].OccurredAt)
	assert.Equal(t, models.EventSeriesUpdated, got[1].Type)
	assert.Equal(t, 2, got[1].Points)
}

func TestPublishingStore_NoEventOnFailureOrEmptyBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockStore(ctrl)
	pub := mocks.NewMockEventPublisher(ctrl)
	s := NewPublishingStore(next, pub, nil)
	ctx := context.Background()

	next.EXPECT().PutIndicator(ctx, gomock.Any()).Return(errs.CacheIO("put_indicator", "k", assert.AnError))
	next.EXPECT().PutSeriesPoints(ctx, "s", nil).Return(nil)

	err := s.PutIndicator(ctx, &models.IndicatorRecord{Key: "k"})
	assert.True(t, errs.IsCacheIO(err))
	require.NoError(t, s.PutSeriesPoints(ctx, "s", nil))
}

func TestPublishingStore_PublishFailureDoesNotFailWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockStore(ctrl)
	pub := mocks.NewMockEventPublisher(ctrl)
	s := NewPublishingStore(next, pub, nil)
	ctx := context.Background()

	next.EXPECT().PutIndicator(ctx, gomock.Any()).Return(nil)
	pub.EXPECT().PublishChange(ctx, gomock.Any()).Return(assert.AnError)

	assert.NoError(t, s.PutIndicator(ctx, &models.IndicatorRecord{Key: "k"}))
}
