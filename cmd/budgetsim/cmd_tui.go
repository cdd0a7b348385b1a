package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zappabad/budgetsim/internal/simulation"
	"github.com/zappabad/budgetsim/tui"
)

func newTUICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive simulator",
		Long: `Open the interactive simulator.

The parameter form is pre-filled from the configuration. Logs are
discarded unless --log-file is given, since the screen belongs to the UI.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			logPath, _ := cmd.Flags().GetString("log-file")
			logger := newLogger(cfg, nil)
			if logPath != "" {
				f, err := openLogFile(logPath)
				if err != nil {
					return err
				}
				defer f.Close()
				logger = newLogger(cfg, f)
			}

			tcfg := tui.DefaultConfig()
			tcfg.Params = cfg.Params
			tcfg.RunOnStart, _ = cmd.Flags().GetBool("run")
			if tcfg.RunOnStart {
				if err := cfg.Params.Validate(); err != nil {
					return fmt.Errorf("invalid configuration: %w", err)
				}
			}

			sim := simulation.NewSimulator(simulation.Config{
				Seed:   cfg.Seed,
				Logger: logger,
			})
			return tui.Run(cmd.Context(), tcfg, sim, logger)
		},
	}
	cmd.Flags().Bool("run", false, "Run a simulation as soon as the UI opens")
	cmd.Flags().String("log-file", "", "Append logs to this file")
	return cmd
}

func openLogFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
