package main

import (
	"context"
	"fmt"

	"DataHub/internal/di"
	internalrepo "DataHub/internal/repository"

	"github.com/spf13/cobra"
)

var migrateTo int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back store schema migrations.",
	Long: `Move the SQL store schema to a version.

--to -1 (the default) applies every pending migration, --to 0 rolls everything back.
For the clickhouse driver the tables are created if missing and --to is ignored.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := context.WithTimeout(rootCtx, commandTimeout)
		defer cancel()

		if cfg.Store.Driver == "clickhouse" {
			c := *cfg
			c.Store.AutoMigrate = true
			l, err := newLogger()
			if err != nil {
				return err
			}
			_, cleanup, err := di.ProvideBaseStore(&c, l)
			if err != nil {
				return err
			}
			cleanup()
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "clickhouse schema ready")
			return err
		}

		store, err := internalrepo.OpenSQLStore(ctx, internalrepo.Dialect(cfg.Store.Driver), cfg.Store.DSN)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		res, err := internalrepo.Migrate(store.DB(), store.Dialect(), migrateTo)
		if err != nil {
			return err
		}
		if !res.Changed {
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s schema already at version %d\n", cfg.Store.Driver, res.To)
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s schema migrated %d -> %d\n", cfg.Store.Driver, res.From, res.To)
		return err
	},
}

func init() {
	migrateCmd.Flags().IntVar(&migrateTo, "to", -1, "target schema version")
}
