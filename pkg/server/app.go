package server

import (
	"context"
	"errors"
	"time"

	"DataHub/internal/service/ratelimit"
	"DataHub/internal/usecase"
	xhttp "DataHub/pkg/http"
	pkgkafka "DataHub/pkg/kafka"
	applogger "DataHub/pkg/logger"
	"DataHub/pkg/queue"
)

const limiterIdle = 10 * time.Minute

// Components are the long-running parts of the service. Everything but HTTP is optional.
type Components struct {
	HTTP      *xhttp.Server
	Collector *usecase.QuoteCollector
	Consumer  *pkgkafka.Consumer
	Ingest    pkgkafka.MessageHandler
	Workers   *queue.RedisQueue
	Scheduler *usecase.RefreshScheduler
	Limiter   *ratelimit.Limiter
}

// App encapsulates the entire application lifecycle.
type App struct {
	c               Components
	l               *applogger.Logger
	shutdownTimeout time.Duration
}

// New creates a new App instance with all dependencies.
func New(c Components, l *applogger.Logger, shutdownTimeout time.Duration) *App {
	if l == nil {
		l = applogger.Nop()
	}
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &App{c: c, l: l, shutdownTimeout: shutdownTimeout}
}

// Run starts every component and blocks until ctx is cancelled, then shuts down.
func (a *App) Run(ctx context.Context) error {
	if a.c.HTTP == nil {
		return errors.New("http server is required")
	}

	if a.c.Collector != nil {
		if err := a.c.Collector.Start(ctx); err != nil {
			a.l.Error("quote collector start error", applogger.Error(err))
			a.c.Collector = nil
		} else {
			a.l.Info("quote collector started")
		}
	}

	if a.c.Consumer != nil && a.c.Ingest != nil {
		a.c.Consumer.RegisterHandler(a.c.Ingest)
		if err := a.c.Consumer.Start(); err != nil {
			return err
		}
		a.l.Info("kafka consumer started", applogger.String("topic", a.c.Ingest.Topic()))
	}

	if a.c.Workers != nil {
		if err := a.c.Workers.Start(); err != nil {
			return err
		}
		a.l.Info("refresh workers started")
	}
	if a.c.Scheduler != nil {
		go a.c.Scheduler.Run(ctx)
	}
	if a.c.Limiter != nil {
		go a.pruneLimiter(ctx)
	}

	if err := a.c.HTTP.Start(); err != nil {
		a.l.Error("http server start error", applogger.Error(err))
		return err
	}

	<-ctx.Done()
	a.l.Info("shutdown signal received")
	return a.shutdown()
}

func (a *App) pruneLimiter(ctx context.Context) {
	t := time.NewTicker(time.Minute)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := a.c.Limiter.Prune(limiterIdle); n > 0 {
				a.l.Debug("rate limiter pruned", applogger.Int("clients", n))
			}
		}
	}
}

// shutdown stops inbound traffic first, then background work.
func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.c.HTTP.Stop(ctx); err != nil {
		a.l.Error("http shutdown error", applogger.Error(err))
		errs = append(errs, err)
	}

	if a.c.Collector != nil {
		if err := a.c.Collector.Shutdown(ctx); err != nil {
			a.l.Warn("quote collector stop error", applogger.Error(err))
		}
	}

	if a.c.Consumer != nil {
		if err := a.c.Consumer.Stop(ctx); err != nil {
			a.l.Warn("kafka consumer stop error", applogger.Error(err))
			errs = append(errs, err)
		}
	}

	if a.c.Workers != nil {
		if err := a.c.Workers.Stop(ctx); err != nil {
			a.l.Warn("refresh workers stop error", applogger.Error(err))
			errs = append(errs, err)
		}
	}

	a.l.Info("shutdown complete")
	return errors.Join(errs...)
}
