// Package config provides configuration structures and loading for astcollect.
package config

// Config represents the complete application configuration.
type Config struct {
	Benchmarks   BenchmarksConfig   `yaml:"benchmarks" mapstructure:"benchmarks"`
	Dependencies DependenciesConfig `yaml:"dependencies" mapstructure:"dependencies"`
	Analysis     AnalysisConfig     `yaml:"analysis" mapstructure:"analysis"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
	Metrics      MetricsConfig      `yaml:"metrics" mapstructure:"metrics"`
	Logging      LoggingConfig      `yaml:"logging" mapstructure:"logging"`
}

// BenchmarksConfig describes where the benchmark suite lives and which benchmarks to analyze.
type BenchmarksConfig struct {
	Root    string   `yaml:"root" mapstructure:"root"`
	Include []string `yaml:"include" mapstructure:"include"` // empty means all
	Exclude []string `yaml:"exclude" mapstructure:"exclude"`
}

// DependenciesConfig describes the local checkout of third-party crates.
type DependenciesConfig struct {
	Root     string `yaml:"root" mapstructure:"root"`         // must exist before analysis
	Lockfile string `yaml:"lockfile" mapstructure:"lockfile"` // file name that triggers dependency resolution
}

// AnalysisConfig controls the walker and the operator set.
type AnalysisConfig struct {
	SourceExtension string   `yaml:"source_extension" mapstructure:"source_extension"`
	Operators       []string `yaml:"operators" mapstructure:"operators"` // empty means the full registry
	Workers         int      `yaml:"workers" mapstructure:"workers"`
	MaxFileSize     int64    `yaml:"max_file_size" mapstructure:"max_file_size"` // bytes
}

// OutputConfig controls the results document and rendered reports.
type OutputConfig struct {
	Dir      string `yaml:"dir" mapstructure:"dir"`
	JSONFile string `yaml:"json_file" mapstructure:"json_file"`
	TeX      bool   `yaml:"tex" mapstructure:"tex"`
	Sort     string `yaml:"sort" mapstructure:"sort"` // value or name
	Columns  int    `yaml:"columns" mapstructure:"columns"`
	Summary  bool   `yaml:"summary" mapstructure:"summary"`
}

// MetricsConfig controls run telemetry export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile" mapstructure:"textfile"` // empty disables export
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Benchmarks: BenchmarksConfig{
			Root: "benchmarks",
		},
		Dependencies: DependenciesConfig{
			Root:     "dependencies",
			Lockfile: "Cargo.lock",
		},
		Analysis: AnalysisConfig{
			SourceExtension: ".rs",
			Workers:         1,
			MaxFileSize:     10 * 1024 * 1024,
		},
		Output: OutputConfig{
			Dir:      "out",
			JSONFile: "src-code-analyze-results.json",
			TeX:      true,
			Sort:     "value",
			Columns:  3,
			Summary:  true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// BenchmarkSelected reports whether a benchmark passes the include/exclude filters.
func (b *BenchmarksConfig) BenchmarkSelected(name string) bool {
	for _, ex := range b.Exclude {
		if ex == name {
			return false
		}
	}
	if len(b.Include) == 0 {
		return true
	}
	for _, in := range b.Include {
		if in == name {
			return true
		}
	}
	return false
}
