package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/zappabad/budgetsim/internal/config"
	"github.com/zappabad/budgetsim/internal/report"
	"github.com/zappabad/budgetsim/internal/simulation"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one simulation and print the result",
		Long: `Run one simulation and print the result.

Parameters come from the defaults, then --config, then BUDGETSIM_*
environment variables, then the flags below.`,
		Example: `  budgetsim run
  budgetsim run --budget 5 --budget-per-period 1 --seed 42
  budgetsim run --format json > result.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			applyRunFlags(cmd.Flags(), cfg)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			logger := newLogger(cfg, cmd.ErrOrStderr())
			sim := simulation.NewSimulator(simulation.Config{
				Seed:   cfg.Seed,
				Logger: logger,
			})
			res := sim.Run(cfg.Params)

			return report.Write(cmd.OutOrStdout(), cfg.Output.Format, res, report.Options{
				Artifacts: cfg.Output.Artifacts,
			})
		},
	}

	addParamFlags(cmd.Flags())
	cmd.Flags().StringP("format", "f", config.FormatTable, "Output format: table, json, yaml")
	cmd.Flags().Bool("artifacts", false, "Include each period's artifacts in table output")

	return cmd
}

// addParamFlags registers one flag per simulation parameter.
func addParamFlags(flags *pflag.FlagSet) {
	def := simulation.DefaultParams()
	flags.Float64("budget", def.Budget, "Initial budget (ETH)")
	flags.Float64("budget-per-period", def.BudgetPerPeriod, "Spending cap per period (ETH)")
	flags.Float64("creator-rewards", def.CreatorRewards, "Creator reward rate (%)")
	flags.Float64("avg-listings", def.AvgListingsPerPeriod, "Average listings per period")
	flags.Float64("avg-price", def.AvgPricePerArtifact, "Average artifact price (ETH)")
	flags.Float64("avg-sold", def.AvgPercentageSold, "Average percentage of listings bought")
	flags.Int("max-periods", def.MaxPeriods, "Maximum number of periods")
}

// applyRunFlags overrides cfg with every flag set on the command line.
func applyRunFlags(flags *pflag.FlagSet, cfg *config.Config) {
	floats := map[string]*float64{
		"budget":            &cfg.Params.Budget,
		"budget-per-period": &cfg.Params.BudgetPerPeriod,
		"creator-rewards":   &cfg.Params.CreatorRewards,
		"avg-listings":      &cfg.Params.AvgListingsPerPeriod,
		"avg-price":         &cfg.Params.AvgPricePerArtifact,
		"avg-sold":          &cfg.Params.AvgPercentageSold,
	}
	for name, dst := range floats {
		if flags.Changed(name) {
			*dst, _ = flags.GetFloat64(name)
		}
	}
	if flags.Changed("max-periods") {
		cfg.Params.MaxPeriods, _ = flags.GetInt("max-periods")
	}
	if flags.Changed("format") {
		cfg.Output.Format, _ = flags.GetString("format")
	}
	if flags.Changed("artifacts") {
		cfg.Output.Artifacts, _ = flags.GetBool("artifacts")
	}
}
