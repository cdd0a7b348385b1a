package simulation

import (
	"io"
	"log/slog"

	"github.com/zappabad/budgetsim/internal/sampling"
)

// Config holds configuration for the simulator.
type Config struct {
	// Source supplies every uniform draw. A nil Source is replaced by a
	// generator seeded from Seed.
	Source sampling.Source
	// Seed seeds the default Source. Zero seeds from the clock.
	Seed int64
	// Logger receives per-period debug lines. Nil discards.
	Logger *slog.Logger
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}
