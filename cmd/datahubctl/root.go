package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"DataHub/internal/di"
	"DataHub/pkg/config"
	applogger "DataHub/pkg/logger"

	"github.com/spf13/cobra"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

const commandTimeout = 2 * time.Minute

var (
	configPath string
	verbose    bool
)

// cfg is loaded once in the root pre-run hook.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "datahubctl",
	Short:         "Operate the DataHub store and refresh queue.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		c, err := config.LoadWithEnv(configPath)
		if err != nil {
			return err
		}
		cfg = c
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path (defaults only when empty)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr")

	rootCmd.AddCommand(migrateCmd, resolveCmd, refreshCmd, debugCmd)
}

// newLogger returns the configured logger with -v, and a silent one otherwise.
func newLogger() (*applogger.Logger, error) {
	if !verbose {
		return applogger.Nop(), nil
	}
	c := *cfg
	c.Logger.Output = "stderr"
	return di.ProvideLogger(&c)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
