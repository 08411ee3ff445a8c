package usecase

import (
	"context"
	"slices"
	"strings"
	"time"

	"DataHub/internal/domain/errs"
	"DataHub/internal/domain/models"
	applogger "DataHub/pkg/logger"
	"DataHub/pkg/util"
)

// historyStart is where a full re-pull of daily prices begins.
var historyStart = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// HistorySource serves the daily adjusted-close series of a ticker.
type HistorySource struct {
	*adapter
	window time.Duration
}

func NewHistorySource(cfg AdapterConfig) *HistorySource {
	return &HistorySource{adapter: newAdapter("history", cfg), window: cfg.Windows.History}
}

// Get returns every stored point ascending while the newest point is fresh; otherwise it
// re-pulls the whole history, upserts it in one batch and returns it.
func (s *HistorySource) Get(ctx context.Context, ticker string) ([]models.SeriesPoint, error) {
	t, err := NormalizeTicker(ticker)
	if err != nil {
		return nil, err
	}
	key := HistoryKey(t)

	latest, ok, err := s.store.LatestSeriesDate(ctx, key)
	if err != nil {
		return nil, errs.CacheIO("latest_series_date", key, err)
	}
	if ok {
		if at, parsed := util.ParseTime(latest); parsed && IsFresh(s.now(), at, s.window) {
			pts, err := s.store.GetSeries(ctx, key, models.SeriesQuery{})
			if err != nil {
				return nil, errs.CacheIO("get_series", key, err)
			}
			s.metrics.RecordCacheHit(s.name)
			return pts, nil
		}
	}
	s.metrics.RecordCacheMiss(s.name)

	v, err := s.shared(ctx, key, func(ctx context.Context) (interface{}, error) {
		start := time.Now()
		bars, err := s.provider.Chart(ctx, t, historyStart)
		s.observe("upstream_chart", start)
		if err != nil {
			return nil, s.upstream("chart", t, err)
		}

		pts := pointsFromBars(key, bars)
		if err := s.store.PutSeriesPoints(ctx, key, pts); err != nil {
			return nil, errs.CacheIO("put_series", key, err)
		}
		s.metrics.RecordIngested("history", len(pts))
		s.l.Debug("history refreshed", applogger.String("ticker", t), applogger.Int("points", len(pts)))
		return pts, nil
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(v.([]models.SeriesPoint)), nil
}

// pointsFromBars keeps bars with an adjusted close, one point per day, ascending.
func pointsFromBars(key string, bars []models.PriceBar) []models.SeriesPoint {
	pts := make([]models.SeriesPoint, 0, len(bars))
	for _, b := range bars {
		if b.AdjClose == nil {
			continue
		}
		pts = append(pts, models.SeriesPoint{SeriesKey: key, Date: util.FormatDate(b.Date), Value: *b.AdjClose})
	}
	slices.SortStableFunc(pts, func(a, b models.SeriesPoint) int { return strings.Compare(a.Date, b.Date) })

	// a day seen twice keeps its last bar
	out := pts[:0]
	for i, p := range pts {
		if i+1 < len(pts) && pts[i+1].Date == p.Date {
			continue
		}
		out = append(out, p)
	}
	return out
}
