package main

import (
	"context"

	"DataHub/internal/di"
	"DataHub/internal/usecase"

	"github.com/spf13/cobra"
)

var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Print the stored indicator and series inventory.",
	RunE: func(cmd *cobra.Command, _ []string) error {
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

		inv, err := usecase.NewInventoryService(store).Inventory(ctx)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), inv)
	},
}
