package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zappabad/budgetsim/internal/simulation"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Params != simulation.DefaultParams() {
		t.Errorf("expected default params, got %+v", cfg.Params)
	}
	if cfg.Output.Format != FormatTable {
		t.Errorf("expected table format, got %q", cfg.Output.Format)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadNoFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Params.MaxPeriods != 10 {
		t.Errorf("expected 10 periods, got %d", cfg.Params.MaxPeriods)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "budgetsim.yaml")
	content := `params:
  budget: 3
  budget_per_period: 0.75
  max_periods: 25
seed: 42
logging:
  level: debug
output:
  format: json
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Params.Budget != 3 || cfg.Params.BudgetPerPeriod != 0.75 || cfg.Params.MaxPeriods != 25 {
		t.Errorf("params not loaded: %+v", cfg.Params)
	}
	// Fields missing from the file keep their defaults.
	if cfg.Params.CreatorRewards != 10 {
		t.Errorf("expected default creator rewards, got %v", cfg.Params.CreatorRewards)
	}
	if cfg.Seed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.Seed)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug level, got %q", cfg.Logging.Level)
	}
	if cfg.Output.Format != FormatJSON {
		t.Errorf("expected json format, got %q", cfg.Output.Format)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "read config file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("params: [unclosed"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("BUDGETSIM_BUDGET", "7.5")
	t.Setenv("BUDGETSIM_AVG_PERCENTAGE_SOLD", "80")
	t.Setenv("BUDGETSIM_MAX_PERIODS", "40")
	t.Setenv("BUDGETSIM_SEED", "9")
	t.Setenv("BUDGETSIM_LOG_LEVEL", "warn")
	t.Setenv("BUDGETSIM_OUTPUT_FORMAT", "yaml")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Params.Budget != 7.5 {
		t.Errorf("expected budget 7.5, got %v", cfg.Params.Budget)
	}
	if cfg.Params.AvgPercentageSold != 80 {
		t.Errorf("expected 80%% sold, got %v", cfg.Params.AvgPercentageSold)
	}
	if cfg.Params.MaxPeriods != 40 {
		t.Errorf("expected 40 periods, got %d", cfg.Params.MaxPeriods)
	}
	if cfg.Params.BudgetPerPeriod != 0.5 {
		t.Errorf("unset env var must keep default, got %v", cfg.Params.BudgetPerPeriod)
	}
	if cfg.Seed != 9 {
		t.Errorf("expected seed 9, got %d", cfg.Seed)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected warn, got %q", cfg.Logging.Level)
	}
	if cfg.Output.Format != FormatYAML {
		t.Errorf("expected yaml, got %q", cfg.Output.Format)
	}
}

func TestLoadEnvParseError(t *testing.T) {
	t.Setenv("BUDGETSIM_MAX_PERIODS", "many")
	_, err := Load("")
	if err == nil {
		t.Fatal("expected env parse error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateUnknownFormat(t *testing.T) {
	cfg := Default()
	cfg.Output.Format = "xml"
	err := cfg.Validate()
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestValidateBadParams(t *testing.T) {
	cfg := Default()
	cfg.Params.Budget = 0
	if err := cfg.Validate(); !errors.Is(err, simulation.ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams, got %v", err)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Seed = 5
	data, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(data), "budget_per_period: 0.5") {
		t.Errorf("expected yaml keys, got:\n%s", data)
	}

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Seed != 5 || loaded.Params != cfg.Params {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budgetsim.yaml")
	data := "params:\n  budget: 3\n  max_periods: 20\nseed: 4\nlogging:\n  level: error\noutput:\n  format: json\n  artifacts: false\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("BUDGETSIM_BUDGET", "7")
	t.Setenv("BUDGETSIM_SEED", "11")
	t.Setenv("BUDGETSIM_LOG_JSON", "true")
	t.Setenv("BUDGETSIM_OUTPUT_ARTIFACTS", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Params.Budget != 7 {
		t.Errorf("env must override the file budget, got %v", cfg.Params.Budget)
	}
	if cfg.Params.MaxPeriods != 20 {
		t.Errorf("file value without env override must survive, got %d", cfg.Params.MaxPeriods)
	}
	if cfg.Seed != 11 {
		t.Errorf("expected seed 11, got %d", cfg.Seed)
	}
	if cfg.Logging.Level != "error" || !cfg.Logging.JSON {
		t.Errorf("logging = %+v, want level error from the file and json from env", cfg.Logging)
	}
	if cfg.Output.Format != FormatJSON || !cfg.Output.Artifacts {
		t.Errorf("output = %+v, want json from the file and artifacts from env", cfg.Output)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg Config
	t.Setenv("BUDGETSIM_LOG_JSON", "maybe")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
