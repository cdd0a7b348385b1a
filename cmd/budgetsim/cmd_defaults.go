package main

import (
	"github.com/spf13/cobra"

	"github.com/zappabad/budgetsim/internal/config"
)

func newDefaultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Print the default configuration as YAML",
		Long: `Print the default configuration as YAML.

The output is a valid --config file and a starting point for editing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.Default().Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
