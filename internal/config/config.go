// Package config loads budgetsim configuration from defaults, an optional
// YAML file and BUDGETSIM_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/zappabad/budgetsim/internal/simulation"
)

// EnvPrefix prefixes every environment variable budgetsim reads.
const EnvPrefix = "BUDGETSIM_"

// Output formats understood by the report package.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// Config contains all budgetsim settings.
type Config struct {
	// Params are the simulation inputs.
	Params simulation.Params `json:"params" yaml:"params" envPrefix:"BUDGETSIM_"`

	// Seed seeds the random source. Zero seeds from the clock.
	Seed int64 `json:"seed" yaml:"seed" env:"BUDGETSIM_SEED"`

	// Logging configures operational logging.
	Logging LoggingConfig `json:"logging" yaml:"logging" envPrefix:"BUDGETSIM_LOG_"`

	// Output configures how results are rendered.
	Output OutputConfig `json:"output" yaml:"output" envPrefix:"BUDGETSIM_OUTPUT_"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	// Level is "debug", "info" (default), "warn" or "error".
	Level string `json:"level" yaml:"level" env:"LEVEL"`
	// JSON switches the handler to JSON lines.
	JSON bool `json:"json" yaml:"json" env:"JSON"`
}

// OutputConfig configures result rendering.
type OutputConfig struct {
	// Format is "table" (default), "json" or "yaml".
	Format string `json:"format" yaml:"format" env:"FORMAT"`
	// Artifacts includes every period's artifact list in table output.
	Artifacts bool `json:"artifacts" yaml:"artifacts" env:"ARTIFACTS"`
}

// Default returns a Config with the form defaults.
func Default() *Config {
	return &Config{
		Params: simulation.DefaultParams(),
		Logging: LoggingConfig{
			Level: "info",
		},
		Output: OutputConfig{
			Format: FormatTable,
		},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ParseEnv applies BUDGETSIM_* environment overrides to target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks the simulation params and the output format.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Params.Validate(); err != nil {
		errs = append(errs, err)
	}
	switch c.Output.Format {
	case FormatTable, FormatJSON, FormatYAML:
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownFormat, c.Output.Format))
	}
	return errors.Join(errs...)
}

// Marshal renders the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}
