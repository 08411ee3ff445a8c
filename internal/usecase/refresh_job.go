package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"DataHub/internal/domain/models"
	pkgcache "DataHub/pkg/cache"
	applogger "DataHub/pkg/logger"
	"DataHub/pkg/queue"

	"golang.org/x/sync/errgroup"
)

// RefreshJobType is the queue message type of a ticker refresh.
const RefreshJobType = "refresh.ticker"

var _ queue.Job = (*RefreshJob)(nil)

// Locker is the subset of the cache used to serialize refreshes of the same ticker.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key string) error
}

// RefreshJob warms the four per-ticker sources off the request path.
type RefreshJob struct {
	quotes       *QuoteSource
	history      *HistorySource
	fundamentals *FundamentalsSource
	research     *ResearchSource
	lock         Locker
	lockTTL      time.Duration
	l            *applogger.Logger
}

func NewRefreshJob(q *QuoteSource, h *HistorySource, f *FundamentalsSource, r *ResearchSource, lock Locker, lockTTL time.Duration, l *applogger.Logger) *RefreshJob {
	if l == nil {
		l = applogger.Nop()
	}
	return &RefreshJob{quotes: q, history: h, fundamentals: f, research: r, lock: lock, lockTTL: lockTTL, l: l}
}

func (j *RefreshJob) Name() string { return "refresh_ticker" }
func (j *RefreshJob) Type() string { return RefreshJobType }

func (j *RefreshJob) Handle(ctx context.Context, payload json.RawMessage) error {
	p, err := queue.Decode[models.RefreshPayload](payload)
	if err != nil {
		return err
	}
	return j.Refresh(ctx, p.Ticker)
}

// Refresh runs every source for ticker. A ticker already being refreshed elsewhere is skipped.
func (j *RefreshJob) Refresh(ctx context.Context, ticker string) error {
	t, err := NormalizeTicker(ticker)
	if err != nil {
		return err
	}

	if j.lock != nil {
		lockKey := pkgcache.GenerateKey("refresh", t)
		ok, err := j.lock.TryLock(ctx, lockKey, j.lockTTL)
		if err != nil {
			return fmt.Errorf("refresh lock %s: %w", t, err)
		}
		if !ok {
			j.l.Debug("refresh already running", applogger.String("ticker", t))
			return nil
		}
		defer func() {
			if err := j.lock.Unlock(context.WithoutCancel(ctx), lockKey); err != nil {
				j.l.Warn("refresh unlock failed", applogger.String("ticker", t), applogger.Error(err))
			}
		}()
	}

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { _, err := j.quotes.Get(gctx, t); return err })
	g.Go(func() error { _, err := j.history.Get(gctx, t); return err })
	g.Go(func() error { _, err := j.fundamentals.Get(gctx, t); return err })
	g.Go(func() error { _, err := j.research.Get(gctx, t); return err })
	if err := g.Wait(); err != nil {
		return fmt.Errorf("refresh %s: %w", t, err)
	}
	j.l.Info("ticker refreshed", applogger.String("ticker", t), applogger.Duration("elapsed", time.Since(start)))
	return nil
}

// RefreshScheduler periodically enqueues refresh jobs for a fixed ticker list.
type RefreshScheduler struct {
	pub      queue.QueueService
	tickers  []string
	interval time.Duration
	l        *applogger.Logger
}

func NewRefreshScheduler(pub queue.QueueService, tickers []string, interval time.Duration, l *applogger.Logger) *RefreshScheduler {
	if l == nil {
		l = applogger.Nop()
	}
	return &RefreshScheduler{pub: pub, tickers: tickers, interval: interval, l: l}
}

// EnqueueAll publishes one refresh job per ticker and returns how many were accepted.
func (s *RefreshScheduler) EnqueueAll(ctx context.Context) (int, error) {
	n := 0
	for _, raw := range s.tickers {
		t, err := NormalizeTicker(raw)
		if err != nil {
			s.l.Warn("skipping invalid refresh ticker", applogger.String("ticker", raw))
			continue
		}
		if err := s.pub.PublishMessage(ctx, RefreshJobType, models.RefreshPayload{Ticker: t}); err != nil {
			return n, fmt.Errorf("enqueue refresh %s: %w", t, err)
		}
		n++
	}
	return n, nil
}

// Run enqueues on every tick until ctx ends. A non-positive interval disables it.
func (s *RefreshScheduler) Run(ctx context.Context) {
	if s.interval <= 0 || len(s.tickers) == 0 {
		return
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := s.EnqueueAll(ctx); err != nil {
				s.l.Error("scheduled refresh failed", applogger.Int("enqueued", n), applogger.Error(err))
			}
		}
	}
}
