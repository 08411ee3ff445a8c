package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"DataHub/internal/di"
	"DataHub/internal/usecase"
	pkgcache "DataHub/pkg/cache"
	"DataHub/pkg/metrics"
	"DataHub/pkg/queue"

	"github.com/spf13/cobra"
)

var refreshInline bool

var refreshCmd = &cobra.Command{
	Use:   "refresh [TICKER...]",
	Short: "Refresh quote, history, fundamentals and research for tickers.",
	Long: `Enqueue one refresh job per ticker on the Redis queue. With no tickers the
configured queue.refresh_tickers are used. --inline fetches in this process instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(rootCtx, commandTimeout)
		defer cancel()

		tickers := args
		if len(tickers) == 0 {
			tickers = cfg.Queue.RefreshTickers
		}
		if len(tickers) == 0 {
			return errors.New("no tickers given and queue.refresh_tickers is empty")
		}

		l, err := newLogger()
		if err != nil {
			return err
		}
		if refreshInline {
			return refreshNow(ctx, cmd, tickers)
		}

		rc, err := pkgcache.NewRedisCache(
			pkgcache.WithRedisHost(cfg.Cache.Redis.Host),
			pkgcache.WithRedisPort(cfg.Cache.Redis.Port),
			pkgcache.WithRedisPassword(cfg.Cache.Redis.Password),
			pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
		)
		if err != nil {
			return err
		}
		defer func() { _ = rc.Close() }()

		pub, err := queue.NewRedisPublisher(l, rc.Client())
		if err != nil {
			return err
		}
		defer func() { _ = pub.Stop(context.WithoutCancel(ctx)) }()

		n, err := usecase.NewRefreshScheduler(pub, tickers, 0, l).EnqueueAll(ctx)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "enqueued %d refresh jobs\n", n)
		return err
	},
}

func refreshNow(ctx context.Context, cmd *cobra.Command, tickers []string) error {
	l, err := newLogger()
	if err != nil {
		return err
	}
	store, cleanup, err := di.ProvideBaseStore(cfg, l)
	if err != nil {
		return err
	}
	defer cleanup()

	m := metrics.Nop{}
	provider := di.ProvideMarketProvider(cfg, nil, m, l)
	ac := di.ProvideAdapterConfig(cfg, store, provider, m, l)
	job := usecase.NewRefreshJob(
		usecase.NewQuoteSource(ac),
		usecase.NewHistorySource(ac),
		usecase.NewFundamentalsSource(ac),
		usecase.NewResearchSource(ac),
		nil, 0, l,
	)

	var errs []error
	for _, t := range tickers {
		start := time.Now()
		if err := job.Refresh(ctx, t); err != nil {
			errs = append(errs, err)
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%-10s failed: %v\n", t, err)
			continue
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-10s refreshed in %s\n", t, time.Since(start).Round(time.Millisecond))
	}
	return errors.Join(errs...)
}

func init() {
	refreshCmd.Flags().BoolVar(&refreshInline, "inline", false, "fetch from the provider in this process instead of enqueueing")
}
