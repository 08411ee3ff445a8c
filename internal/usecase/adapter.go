package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"DataHub/internal/domain/errs"
	"DataHub/internal/domain/models"
	drepo "DataHub/internal/domain/repository"
	applogger "DataHub/pkg/logger"
	"DataHub/pkg/metrics"

	"golang.org/x/sync/singleflight"
)

const maxTickerLen = 32

// sharedFetchTimeout bounds a refetch that runs on behalf of every waiting caller.
const sharedFetchTimeout = 30 * time.Second

func QuoteKey(ticker string) string        { return "quote_" + ticker }
func HistoryKey(ticker string) string      { return "hist_" + ticker }
func FundamentalsKey(ticker string) string { return "fin_" + ticker + "_v2_full" }
func ResearchKey(ticker string) string     { return "research_" + ticker + "_v19_currency" }

// NormalizeTicker trims and upper-cases a ticker, rejecting blanks and the "undefined"/"null" sentinels.
func NormalizeTicker(raw string) (string, error) {
	t := strings.TrimSpace(raw)
	switch {
	case t == "":
		return "", errs.Validation("ticker", "is required")
	case strings.EqualFold(t, "undefined"), strings.EqualFold(t, "null"):
		return "", errs.Validation("ticker", "is required")
	case len(t) > maxTickerLen:
		return "", errs.Validation("ticker", fmt.Sprintf("must be at most %d characters", maxTickerLen))
	case strings.ContainsAny(t, " \t\r\n/"):
		return "", errs.Validation("ticker", "contains invalid characters")
	}
	return strings.ToUpper(t), nil
}

// AdapterConfig carries the dependencies shared by the source adapters.
type AdapterConfig struct {
	Store    drepo.Store
	Provider drepo.MarketProvider
	Metrics  drepo.Metrics
	Logger   *applogger.Logger
	Clock    Clock
	Windows  Windows
}

// adapter holds the cache-check, fetch and write-through plumbing common to every source.
type adapter struct {
	name     string
	store    drepo.Store
	provider drepo.MarketProvider
	metrics  drepo.Metrics
	l        *applogger.Logger
	now      Clock
	group    singleflight.Group
}

func newAdapter(name string, cfg AdapterConfig) *adapter {
	a := &adapter{
		name:     name,
		store:    cfg.Store,
		provider: cfg.Provider,
		metrics:  cfg.Metrics,
		l:        cfg.Logger,
		now:      cfg.Clock,
	}
	if a.metrics == nil {
		a.metrics = metrics.Nop{}
	}
	if a.l == nil {
		a.l = applogger.Nop()
	}
	if a.now == nil {
		a.now = time.Now
	}
	return a
}

// upstream records a failed provider call and wraps it.
func (a *adapter) upstream(op, ticker string, err error) error {
	a.metrics.RecordUpstreamError(op)
	a.l.Error("upstream fetch failed",
		applogger.String("adapter", a.name),
		applogger.String("op", op),
		applogger.String("ticker", ticker),
		applogger.Error(err),
	)
	return errs.Upstream(op, ticker, err)
}

func (a *adapter) observe(op string, start time.Time) {
	a.metrics.RecordLatency(op, time.Since(start).Seconds())
}

// shared runs fn once per key for all concurrent callers. fn runs detached from the
// caller's cancellation, so one caller giving up does not fail the others; each
// caller still stops waiting when its own ctx ends.
func (a *adapter) shared(ctx context.Context, key string, fn func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	ch := a.group.DoChan(key, func() (interface{}, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedFetchTimeout)
		defer cancel()
		return fn(fctx)
	})
	select {
	case <-ctx.Done():
		return nil, errs.Upstream(a.name, key, ctx.Err())
	case r := <-ch:
		return r.Val, r.Err
	}
}

// fetchFunc pulls a fresh value from the provider and returns it with the record to persist.
type fetchFunc[T any] func(ctx context.Context) (*T, *models.IndicatorRecord, error)

// loadRecord serves key from the indicator table while fresh, otherwise refetches through
// a single-flight group and writes the new record before returning it.
// Concurrent callers get shallow copies of one value; nested slices and maps are shared
// and must be treated as read-only.
func loadRecord[T any](ctx context.Context, a *adapter, key string, window time.Duration, fetch fetchFunc[T]) (*T, error) {
	rec, err := a.store.GetIndicator(ctx, key)
	if err != nil {
		return nil, errs.CacheIO("get_indicator", key, err)
	}
	if rec != nil && IsFresh(a.now(), rec.UpdatedAt, window) {
		var out T
		derr := rec.Decode(&out)
		if derr == nil {
			a.metrics.RecordCacheHit(a.name)
			return &out, nil
		}
		a.l.Warn("cached record unreadable, refetching", applogger.String("key", key), applogger.Error(derr))
	}
	a.metrics.RecordCacheMiss(a.name)

	v, err := a.shared(ctx, key, func(ctx context.Context) (interface{}, error) {
		out, rec, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		if err := a.store.PutIndicator(ctx, rec); err != nil {
			return nil, errs.CacheIO("put_indicator", key, err)
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	out := *v.(*T)
	return &out, nil
}

func newRecord(key, label string, value float64, refDate, now time.Time, body any) (*models.IndicatorRecord, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", key, err)
	}
	return &models.IndicatorRecord{
		Key:           key,
		Label:         label,
		Value:         value,
		ReferenceDate: refDate.UTC().Format(time.RFC3339),
		UpdatedAt:     now.UTC(),
		Payload:       payload,
	}, nil
}

func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
