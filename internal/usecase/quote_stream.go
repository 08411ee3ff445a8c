package usecase

import (
	"context"
	"strings"
	"time"

	"DataHub/internal/domain/errs"
	"DataHub/internal/domain/models"
	drepo "DataHub/internal/domain/repository"
	mid "DataHub/internal/middleware"
	applogger "DataHub/pkg/logger"
	"DataHub/pkg/metrics"
)

// QuoteTradeWriter folds live trades into the stored quote records.
type QuoteTradeWriter struct {
	store   drepo.Store
	metrics drepo.Metrics
	now     Clock
}

func NewQuoteTradeWriter(store drepo.Store, m drepo.Metrics, now Clock) *QuoteTradeWriter {
	if m == nil {
		m = metrics.Nop{}
	}
	if now == nil {
		now = time.Now
	}
	return &QuoteTradeWriter{store: store, metrics: m, now: now}
}

// Process rewrites quote_<T> with the trade price and time, keeping the previous change and currency.
// Trades older than the stored quote are ignored.
func (w *QuoteTradeWriter) Process(ctx context.Context, t *models.Trade) error {
	key := QuoteKey(strings.ToUpper(t.Symbol))
	rec, err := w.store.GetIndicator(ctx, key)
	if err != nil {
		return errs.CacheIO("get_indicator", key, err)
	}

	var q models.Quote
	if rec != nil {
		_ = rec.Decode(&q)
		if !q.LatestDate.IsZero() && t.Timestamp.Before(q.LatestDate) {
			return nil
		}
	}
	if q.Currency == "" {
		q.Currency = defaultCurrency
	}
	q.LatestValue = t.Price
	q.LatestDate = t.Timestamp.UTC()

	next, err := newRecord(key, "quote", q.LatestValue, q.LatestDate, w.now(), q)
	if err != nil {
		return err
	}
	if err := w.store.PutIndicator(ctx, next); err != nil {
		return errs.CacheIO("put_indicator", key, err)
	}
	w.metrics.RecordLastPrice(t.Symbol, t.Price)
	return nil
}

// QuoteCollector pumps the live market stream through the pipeline, reconnecting on stream errors.
type QuoteCollector struct {
	stream  drepo.MarketStream
	pipe    *mid.RealtimePipeline
	metrics drepo.Metrics
	l       *applogger.Logger
	done    chan struct{}
}

func NewQuoteCollector(stream drepo.MarketStream, pipe *mid.RealtimePipeline, m drepo.Metrics, l *applogger.Logger) *QuoteCollector {
	if m == nil {
		m = metrics.Nop{}
	}
	if l == nil {
		l = applogger.Nop()
	}
	return &QuoteCollector{stream: stream, pipe: pipe, metrics: m, l: l, done: make(chan struct{})}
}

// IsConnected returns true if the market stream is connected.
func (c *QuoteCollector) IsConnected() bool {
	return c.stream.IsConnected()
}

// Start connects and subscribes, then consumes in the background until ctx ends.
func (c *QuoteCollector) Start(ctx context.Context) error {
	if err := c.stream.Connect(ctx); err != nil {
		return err
	}
	if err := c.stream.Subscribe(ctx); err != nil {
		_ = c.stream.Close()
		return err
	}
	c.pipe.Start(ctx)
	go c.run(ctx)
	return nil
}

// Done is closed once the consume loop has exited.
func (c *QuoteCollector) Done() <-chan struct{} { return c.done }

func (c *QuoteCollector) run(ctx context.Context) {
	defer close(c.done)
	for {
		trades, errc := c.stream.Read(ctx)
		c.consume(ctx, trades, errc)
		if ctx.Err() != nil {
			return
		}
		for {
			c.metrics.RecordError("stream")
			err := c.stream.Reconnect(ctx)
			if err == nil {
				c.l.Info("market stream reconnected")
				break
			}
			if ctx.Err() != nil {
				return
			}
			c.l.Error("market stream reconnect failed", applogger.Error(err))
		}
	}
}

// consume returns when ctx ends, the stream reports an error or its channels close.
func (c *QuoteCollector) consume(ctx context.Context, trades <-chan *models.Trade, errc <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-errc:
			if ok && err != nil {
				c.l.Warn("market stream error", applogger.Error(err))
			}
			return
		case t, ok := <-trades:
			if !ok {
				return
			}
			if err := c.pipe.Process(ctx, t); err != nil {
				c.l.Debug("trade not applied", applogger.String("symbol", t.Symbol), applogger.Error(err))
			}
		}
	}
}

// Shutdown stops the pipeline and closes the stream.
func (c *QuoteCollector) Shutdown(_ context.Context) error {
	c.pipe.Stop()
	return c.stream.Close()
}
