package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zappabad/budgetsim/internal/config"
	"github.com/zappabad/budgetsim/internal/logging"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "budgetsim",
		Short: "Budget-constrained marketplace agent simulation",
		Long: `budgetsim simulates an agent that buys artifacts from a marketplace
under a fixed budget. Every period the agent receives creator rewards
on newly generated listings and spends part of its budget on a
selection of them, until the budget runs out or the period limit is
reached.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().Int64("seed", 0, "Random seed (0 seeds from the clock)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("log-json", false, "Log as JSON lines")

	rootCmd.AddCommand(
		newVersionCmd(),
		newDefaultsCmd(),
		newRunCmd(),
		newBatchCmd(),
		newTUICmd(),
	)

	return rootCmd
}

// loadConfig reads --config and applies the global flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetInt64("seed")
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-json") {
		cfg.Logging.JSON, _ = flags.GetBool("log-json")
	}
	return cfg, nil
}

// newLogger builds the operational logger. Logs go to w so they never mix
// with report output on stdout.
func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	if cfg.Logging.JSON {
		return logging.NewJSONLogger(cfg.Logging.Level, w)
	}
	return logging.NewLogger(cfg.Logging.Level, w)
}
