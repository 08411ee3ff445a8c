package usecase

import (
	"context"
	"strings"

	"DataHub/internal/domain/datamap"
	"DataHub/internal/domain/errs"
	"DataHub/internal/domain/models"
	drepo "DataHub/internal/domain/repository"
	applogger "DataHub/pkg/logger"
	"DataHub/pkg/metrics"

	"golang.org/x/sync/errgroup"
)

const batchConcurrency = 4

// Resolver maps an opaque data key to an indicator, a series or one of the alias groups.
type Resolver struct {
	store   drepo.Store
	metrics drepo.Metrics
	l       *applogger.Logger
}

func NewResolver(store drepo.Store, m drepo.Metrics, l *applogger.Logger) *Resolver {
	if m == nil {
		m = metrics.Nop{}
	}
	if l == nil {
		l = applogger.Nop()
	}
	return &Resolver{store: store, metrics: m, l: l}
}

// Resolve tries, in order: indicator, non-empty series, series group, indicator group, KPI alias.
// A key matching none of them resolves to KindNotFound without error.
func (r *Resolver) Resolve(ctx context.Context, key string, q models.SeriesQuery) (models.Resolution, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return models.Resolution{}, errs.Validation("dataKey", "is required")
	}

	res, err := r.resolve(ctx, key, q)
	if err != nil {
		r.metrics.RecordError("resolve")
		return models.Resolution{}, err
	}
	r.metrics.RecordResolution(res.Kind.String())
	return res, nil
}

func (r *Resolver) resolve(ctx context.Context, key string, q models.SeriesQuery) (models.Resolution, error) {
	rec, err := r.store.GetIndicator(ctx, key)
	if err != nil {
		return models.Resolution{}, errs.CacheIO("get_indicator", key, err)
	}
	if rec != nil {
		return models.Resolution{Kind: models.KindIndicator, Key: key, Data: rec}, nil
	}

	pts, err := r.store.GetSeries(ctx, key, q)
	if err != nil {
		return models.Resolution{}, errs.CacheIO("get_series", key, err)
	}
	if len(pts) > 0 {
		return models.Resolution{Kind: models.KindSeries, Key: key, Data: pts}, nil
	}

	switch route := datamap.Lookup(key).(type) {
	case datamap.SeriesGroupRoute:
		data := make(map[string][]models.SeriesPoint, len(route.Members))
		for _, alias := range datamap.Aliases(route.Members) {
			seriesKey := route.Members[alias]
			pts, err := r.store.GetSeries(ctx, seriesKey, q)
			if err != nil {
				return models.Resolution{}, errs.CacheIO("get_series", seriesKey, err)
			}
			if pts == nil {
				pts = []models.SeriesPoint{}
			}
			data[alias] = pts
		}
		return models.Resolution{Kind: models.KindSeriesGroup, Key: key, Data: data}, nil

	case datamap.IndicatorGroupRoute:
		data := make(map[string]*models.IndicatorRecord, len(route.Members))
		for _, alias := range datamap.Aliases(route.Members) {
			indKey := route.Members[alias]
			rec, err := r.store.GetIndicator(ctx, indKey)
			if err != nil {
				return models.Resolution{}, errs.CacheIO("get_indicator", indKey, err)
			}
			data[alias] = rec
		}
		return models.Resolution{Kind: models.KindIndicatorGroup, Key: key, Data: data}, nil

	case datamap.KpiAliasRoute:
		rec, err := r.store.GetIndicator(ctx, route.Target)
		if err != nil {
			return models.Resolution{}, errs.CacheIO("get_indicator", route.Target, err)
		}
		if rec != nil {
			return models.Resolution{Kind: models.KindIndicator, Key: route.Target, Data: rec}, nil
		}
	}

	r.l.Debug("data key not found", applogger.String("key", key))
	return models.Resolution{Kind: models.KindNotFound, Key: key}, nil
}

// ResolveBatch resolves keys independently. Unresolved keys are listed in request order;
// a store failure on any key aborts the whole batch.
func (r *Resolver) ResolveBatch(ctx context.Context, keys []string, q models.SeriesQuery) (models.BatchResolution, error) {
	uniq := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		uniq = append(uniq, k)
	}
	if len(uniq) == 0 {
		return models.BatchResolution{}, errs.Validation("keys", "must name at least one key")
	}

	results := make([]models.Resolution, len(uniq))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	for i, k := range uniq {
		g.Go(func() error {
			res, err := r.Resolve(gctx, k, q)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.BatchResolution{}, err
	}

	out := models.BatchResolution{
		Found:    make(map[string]models.Resolution, len(uniq)),
		NotFound: []string{},
	}
	for i, k := range uniq {
		if results[i].Found() {
			out.Found[k] = results[i]
		} else {
			out.NotFound = append(out.NotFound, k)
		}
	}
	return out, nil
}
