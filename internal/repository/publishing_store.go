package repository

import (
	"context"
	"time"

	"DataHub/internal/domain/models"
	domrepo "DataHub/internal/domain/repository"
	applogger "DataHub/pkg/logger"

	"github.com/google/uuid"
)

var _ domrepo.Store = (*PublishingStore)(nil)

// PublishingStore emits a ChangeEvent after every committed write.
// Publish failures are logged and never fail the write.
type PublishingStore struct {
	domrepo.Store
	pub domrepo.EventPublisher
	now func() time.Time
	l   *applogger.Logger
}

func NewPublishingStore(next domrepo.Store, pub domrepo.EventPublisher, l *applogger.Logger) *PublishingStore {
	return &PublishingStore{Store: next, pub: pub, now: time.Now, l: l}
}

func (s *PublishingStore) PutIndicator(ctx context.Context, rec *models.IndicatorRecord) error {
	if err := s.Store.PutIndicator(ctx, rec); err != nil {
		return err
	}
	s.publish(ctx, &models.ChangeEvent{Type: models.EventIndicatorUpdated, Key: rec.Key})
	return nil
}

func (s *PublishingStore) PutSeriesPoints(ctx context.Context, seriesKey string, points []models.SeriesPoint) error {
	if err := s.Store.PutSeriesPoints(ctx, seriesKey, points); err != nil {
		return err
	}
	if len(points) == 0 {
		return nil
	}
	s.publish(ctx, &models.ChangeEvent{Type: models.EventSeriesUpdated, Key: seriesKey, Points: len(points)})
	return nil
}

func (s *PublishingStore) publish(ctx context.Context, ev *models.ChangeEvent) {
	ev.ID = uuid.NewString()
	ev.OccurredAt = s.now().UTC()
	if err := s.pub.PublishChange(ctx, ev); err != nil && s.l != nil {
		s.l.Warn("change event publish failed",
			applogger.String("type", ev.Type),
			applogger.String("key", ev.Key),
			applogger.Error(err),
		)
	}
}
