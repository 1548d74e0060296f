package config

import (
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// Test benchmark and dependency defaults
	if cfg.Benchmarks.Root != "benchmarks" {
		t.Errorf("expected benchmarks root 'benchmarks', got %s", cfg.Benchmarks.Root)
	}
	if cfg.Dependencies.Lockfile != "Cargo.lock" {
		t.Errorf("expected lockfile 'Cargo.lock', got %s", cfg.Dependencies.Lockfile)
	}

	// Test analysis defaults
	if cfg.Analysis.SourceExtension != ".rs" {
		t.Errorf("expected source extension '.rs', got %s", cfg.Analysis.SourceExtension)
	}
	if cfg.Analysis.Workers != 1 {
		t.Errorf("expected 1 worker, got %d", cfg.Analysis.Workers)
	}
	if len(cfg.Analysis.Operators) != 0 {
		t.Errorf("expected no operator filter by default, got %v", cfg.Analysis.Operators)
	}

	// Test output defaults
	if cfg.Output.JSONFile != "src-code-analyze-results.json" {
		t.Errorf("expected json file 'src-code-analyze-results.json', got %s", cfg.Output.JSONFile)
	}
	if cfg.Output.Sort != "value" {
		t.Errorf("expected sort 'value', got %s", cfg.Output.Sort)
	}
	if cfg.Output.Columns != 3 {
		t.Errorf("expected 3 columns, got %d", cfg.Output.Columns)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected logging level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("expected logging format 'text', got %s", cfg.Logging.Format)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected default config to validate, got: %v", err)
	}
}

func TestBenchmarkSelected(t *testing.T) {
	tests := []struct {
		name     string
		cfg      BenchmarksConfig
		bench    string
		expected bool
	}{
		{"no filters", BenchmarksConfig{}, "serde", true},
		{"included", BenchmarksConfig{Include: []string{"serde", "regex"}}, "regex", true},
		{"not included", BenchmarksConfig{Include: []string{"serde"}}, "regex", false},
		{"excluded", BenchmarksConfig{Exclude: []string{"regex"}}, "regex", false},
		{"exclude wins", BenchmarksConfig{Include: []string{"regex"}, Exclude: []string{"regex"}}, "regex", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.BenchmarkSelected(tt.bench); got != tt.expected {
				t.Errorf("BenchmarkSelected(%q) = %v, expected %v", tt.bench, got, tt.expected)
			}
		})
	}
}
