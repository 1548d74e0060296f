package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from the specified file path.
// It supports YAML files and performs environment variable substitution.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Read the config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadFromViper creates a Config from an existing Viper instance.
// Useful for testing or when Viper is configured externally.
func LoadFromViper(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	substituteEnvVars(cfg)

	return cfg, nil
}

// LoadOrDefault loads configPath when it exists. A missing file yields DefaultConfig
// unless required is set, in which case the read error is returned.
func LoadOrDefault(configPath string, required bool) (*Config, error) {
	if _, err := os.Stat(configPath); err != nil {
		if os.IsNotExist(err) && !required {
			cfg := DefaultConfig()
			substituteEnvVars(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Load(configPath)
}

// envVarPattern matches ${VAR_NAME} or $VAR_NAME patterns
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// substituteEnvVars replaces ${VAR_NAME} patterns in path-like settings.
func substituteEnvVars(cfg *Config) {
	cfg.Benchmarks.Root = expandEnvVar(cfg.Benchmarks.Root)
	cfg.Dependencies.Root = expandEnvVar(cfg.Dependencies.Root)
	cfg.Output.Dir = expandEnvVar(cfg.Output.Dir)
	cfg.Metrics.Textfile = expandEnvVar(cfg.Metrics.Textfile)
	cfg.Logging.Output = expandEnvVar(cfg.Logging.Output)
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
func expandEnvVar(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		var varName string
		if strings.HasPrefix(match, "${") {
			varName = match[2 : len(match)-1]
		} else {
			varName = match[1:]
		}

		if value, exists := os.LookupEnv(varName); exists {
			return value
		}
		// Return original if env var not found
		return match
	})
}

// Overrides carries CLI flag values that take precedence over the config file.
// Zero values leave the configured setting untouched.
type Overrides struct {
	LogLevel  string
	LogFormat string
	BenchDir  string
	DepDir    string
	OutDir    string
	Workers   int
	Sort      string
	Include   []string
}

// ApplyOverrides applies CLI flag overrides to the configuration.
// Only non-zero/non-empty values are applied.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.LogLevel != "" {
		c.Logging.Level = o.LogLevel
	}
	if o.LogFormat != "" {
		c.Logging.Format = o.LogFormat
	}
	if o.BenchDir != "" {
		c.Benchmarks.Root = o.BenchDir
	}
	if o.DepDir != "" {
		c.Dependencies.Root = o.DepDir
	}
	if o.OutDir != "" {
		c.Output.Dir = o.OutDir
	}
	if o.Workers > 0 {
		c.Analysis.Workers = o.Workers
	}
	if o.Sort != "" {
		c.Output.Sort = o.Sort
	}
	if len(o.Include) > 0 {
		c.Benchmarks.Include = o.Include
	}
}
