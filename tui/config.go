package tui

import "github.com/zappabad/budgetsim/internal/simulation"

// Config holds configuration for the terminal UI.
type Config struct {
	// Params pre-fill the parameter form.
	Params simulation.Params
	// RunOnStart runs a simulation with Params as soon as the UI opens.
	RunOnStart bool
	// AltScreen renders in the terminal's alternate screen buffer.
	AltScreen bool
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		Params:     simulation.DefaultParams(),
		RunOnStart: false,
		AltScreen:  true,
	}
}
