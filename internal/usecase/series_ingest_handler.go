package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"DataHub/internal/domain/errs"
	"DataHub/internal/domain/models"
	drepo "DataHub/internal/domain/repository"
	pkgkafka "DataHub/pkg/kafka"
	applogger "DataHub/pkg/logger"
	"DataHub/pkg/metrics"
	"DataHub/pkg/util"
)

var _ pkgkafka.MessageHandler = (*SeriesIngestHandler)(nil)

// SeriesIngestHandler consumes economic-data updates published by the external workers.
type SeriesIngestHandler struct {
	topic   string
	store   drepo.Store
	metrics drepo.Metrics
	l       *applogger.Logger
	now     Clock
}

func NewSeriesIngestHandler(topic string, store drepo.Store, m drepo.Metrics, l *applogger.Logger, now Clock) *SeriesIngestHandler {
	if m == nil {
		m = metrics.Nop{}
	}
	if l == nil {
		l = applogger.Nop()
	}
	if now == nil {
		now = time.Now
	}
	return &SeriesIngestHandler{topic: topic, store: store, metrics: m, l: l, now: now}
}

func (h *SeriesIngestHandler) Topic() string { return h.topic }

// Handle upserts one series batch or one indicator. Malformed messages are rejected with a
// ValidationError so the consumer can dead-letter them.
func (h *SeriesIngestHandler) Handle(ctx context.Context, b []byte) error {
	var m models.IngestMessage
	if err := json.Unmarshal(b, &m); err != nil {
		h.metrics.RecordError("ingest_decode")
		return errs.Validation("message", "invalid json: "+err.Error())
	}

	start := time.Now()
	var err error
	switch {
	case m.SeriesKey != "" && m.IndicatorKey != "":
		err = errs.Validation("message", "series_key and indicator_key are exclusive")
	case m.SeriesKey != "":
		err = h.ingestSeries(ctx, m)
	case m.IndicatorKey != "":
		err = h.ingestIndicator(ctx, m)
	default:
		err = errs.Validation("message", "series_key or indicator_key is required")
	}
	h.metrics.RecordLatency("ingest", time.Since(start).Seconds())
	if err != nil {
		h.metrics.RecordError("ingest")
		return err
	}
	return nil
}

func (h *SeriesIngestHandler) ingestSeries(ctx context.Context, m models.IngestMessage) error {
	key := strings.TrimSpace(m.SeriesKey)
	pts := make([]models.SeriesPoint, 0, len(m.Points))
	for i, p := range m.Points {
		date, err := util.NormalizeDate(p.Date)
		if err != nil {
			return errs.Validation(fmt.Sprintf("points[%d].date", i), err.Error())
		}
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			return errs.Validation(fmt.Sprintf("points[%d].value", i), "must be finite")
		}
		pts = append(pts, models.SeriesPoint{SeriesKey: key, Date: date, Value: p.Value})
	}
	if len(pts) == 0 {
		return nil
	}
	if err := h.store.PutSeriesPoints(ctx, key, pts); err != nil {
		return errs.CacheIO("put_series", key, err)
	}
	h.metrics.RecordIngested("series", len(pts))
	h.l.Debug("series ingested", applogger.String("series_key", key), applogger.Int("points", len(pts)))
	return nil
}

func (h *SeriesIngestHandler) ingestIndicator(ctx context.Context, m models.IngestMessage) error {
	key := strings.TrimSpace(m.IndicatorKey)
	if m.Value == nil || math.IsNaN(*m.Value) || math.IsInf(*m.Value, 0) {
		return errs.Validation("value", "must be a finite number")
	}
	ref := m.ReferenceDate
	if ref != "" {
		d, err := util.NormalizeDate(ref)
		if err != nil {
			return errs.Validation("reference_date", err.Error())
		}
		ref = d
	}
	rec := &models.IndicatorRecord{
		Key:           key,
		Label:         m.Label,
		Value:         *m.Value,
		Unit:          m.Unit,
		ReferenceDate: ref,
		UpdatedAt:     h.now().UTC(),
	}
	if err := h.store.PutIndicator(ctx, rec); err != nil {
		return errs.CacheIO("put_indicator", key, err)
	}
	h.metrics.RecordIngested("indicator", 1)
	return nil
}
