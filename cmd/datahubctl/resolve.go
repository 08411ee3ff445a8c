package main

import (
	"context"
	"fmt"
	"strings"

	"DataHub/internal/di"
	"DataHub/internal/domain/models"
	"DataHub/internal/usecase"
	"DataHub/pkg/metrics"

	"github.com/spf13/cobra"
)

var (
	resolveSince string
	resolveLimit int
)

var resolveCmd = &cobra.Command{
	Use:   "resolve KEY [KEY...]",
	Short: "Resolve data keys against the store and print the result as JSON.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(rootCtx, commandTimeout)
		defer cancel()

		l, err := newLogger()
		if err != nil {
			return err
		}
		store, cleanup, err := di.ProvideBaseStore(cfg, l)
		if err != nil {
			return err
		}
		defer cleanup()

		r := usecase.NewResolver(store, metrics.Nop{}, l)
		q := models.SeriesQuery{Since: strings.TrimSpace(resolveSince), Limit: resolveLimit}

		if len(args) == 1 {
			res, err := r.Resolve(ctx, args[0], q)
			if err != nil {
				return err
			}
			if !res.Found() {
				return fmt.Errorf("key %q not found", args[0])
			}
			return printJSON(cmd.OutOrStdout(), res)
		}

		batch, err := r.ResolveBatch(ctx, args, q)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), batch)
	},
}

func init() {
	resolveCmd.Flags().StringVar(&resolveSince, "since", "", "only series points on or after this date (YYYY-MM-DD)")
	resolveCmd.Flags().IntVar(&resolveLimit, "limit", 0, "keep only the newest N series points")
}
