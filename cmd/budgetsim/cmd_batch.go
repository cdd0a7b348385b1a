package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zappabad/budgetsim/internal/batch"
	"github.com/zappabad/budgetsim/internal/config"
	"github.com/zappabad/budgetsim/internal/report"
)

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run many seeded simulations and summarise them",
		Long: `Run many seeded simulations and summarise them.

Run i uses seed base+i+1, where base is --seed. With --seed 0 the base
is taken from the clock and logged, so any batch can be reproduced by
passing the logged base_seed back as --seed. Results do not depend on
--workers.`,
		Example: `  budgetsim batch --runs 500
  budgetsim batch --runs 200 --budget 5 --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			applyRunFlags(cmd.Flags(), cfg)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			bcfg := batch.DefaultConfig()
			bcfg.BaseSeed = batchBaseSeed(cfg.Seed, time.Now)
			bcfg.Runs, _ = cmd.Flags().GetInt("runs")
			if workers, _ := cmd.Flags().GetInt("workers"); workers > 0 {
				bcfg.Workers = workers
			}
			if bcfg.Runs < 1 {
				return fmt.Errorf("--runs must be at least 1, got %d", bcfg.Runs)
			}

			logger := newLogger(cfg, cmd.ErrOrStderr())
			bcfg.Logger = logger
			logger.Info("batch started", "runs", bcfg.Runs, "workers", bcfg.Workers, "base_seed", bcfg.BaseSeed)

			summary, err := batch.Run(cmd.Context(), bcfg, cfg.Params)
			if err != nil {
				return fmt.Errorf("batch: %w", err)
			}
			return report.WriteBatch(cmd.OutOrStdout(), cfg.Output.Format, summary)
		},
	}

	addParamFlags(cmd.Flags())
	cmd.Flags().Int("runs", batch.DefaultConfig().Runs, "Number of simulations")
	cmd.Flags().Int("workers", 0, "Parallel workers (0 uses every CPU)")
	cmd.Flags().StringP("format", "f", config.FormatTable, "Output format: table, json, yaml")
	return cmd
}

// batchBaseSeed keeps an explicit seed and derives one from now otherwise.
func batchBaseSeed(seed int64, now func() time.Time) int64 {
	if seed != 0 {
		return seed
	}
	return now().UnixNano()
}
