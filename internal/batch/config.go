package batch

import (
	"log/slog"
	"runtime"
)

// Config holds configuration for a batch of simulations.
type Config struct {
	// Runs is the number of simulations to execute.
	Runs int
	// Workers is the number of simulations executed in parallel.
	Workers int
	// BaseSeed offsets the per-run seeds; run i uses BaseSeed+i+1.
	BaseSeed int64
	// ResultBuffer is the size of the outcomes channel.
	ResultBuffer int
	// Logger is handed to every simulator. Nil discards.
	Logger *slog.Logger
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		Runs:         100,
		Workers:      runtime.NumCPU(),
		ResultBuffer: 64,
	}
}
