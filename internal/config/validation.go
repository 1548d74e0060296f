package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for required fields and valid values.
// It does not touch the filesystem; root existence is checked when a run starts.
func (c *Config) Validate() error {
	var errors ValidationErrors

	errors = append(errors, c.validateBenchmarks()...)
	errors = append(errors, c.validateDependencies()...)
	errors = append(errors, c.validateAnalysis()...)
	errors = append(errors, c.validateOutput()...)
	errors = append(errors, c.validateLogging()...)

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateBenchmarks() ValidationErrors {
	var errors ValidationErrors

	if c.Benchmarks.Root == "" {
		errors = append(errors, ValidationError{
			Field:   "benchmarks.root",
			Message: "root is required",
		})
	}

	for _, name := range c.Benchmarks.Include {
		for _, ex := range c.Benchmarks.Exclude {
			if name == ex {
				errors = append(errors, ValidationError{
					Field:   "benchmarks.include",
					Message: fmt.Sprintf("benchmark %q is both included and excluded", name),
				})
			}
		}
	}

	return errors
}

func (c *Config) validateDependencies() ValidationErrors {
	var errors ValidationErrors

	if c.Dependencies.Root == "" {
		errors = append(errors, ValidationError{
			Field:   "dependencies.root",
			Message: "root is required",
		})
	}

	if c.Dependencies.Lockfile == "" {
		errors = append(errors, ValidationError{
			Field:   "dependencies.lockfile",
			Message: "lockfile name is required",
		})
	} else if strings.ContainsAny(c.Dependencies.Lockfile, `/\`) {
		errors = append(errors, ValidationError{
			Field:   "dependencies.lockfile",
			Message: "lockfile must be a file name, not a path",
		})
	}

	return errors
}

func (c *Config) validateAnalysis() ValidationErrors {
	var errors ValidationErrors

	if !strings.HasPrefix(c.Analysis.SourceExtension, ".") || len(c.Analysis.SourceExtension) < 2 {
		errors = append(errors, ValidationError{
			Field:   "analysis.source_extension",
			Message: "source_extension must look like '.rs'",
		})
	}

	if c.Analysis.Workers <= 0 {
		errors = append(errors, ValidationError{
			Field:   "analysis.workers",
			Message: "workers must be positive",
		})
	}

	if c.Analysis.MaxFileSize < 0 {
		errors = append(errors, ValidationError{
			Field:   "analysis.max_file_size",
			Message: "max_file_size cannot be negative",
		})
	}

	seen := make(map[string]bool)
	for _, op := range c.Analysis.Operators {
		if seen[op] {
			errors = append(errors, ValidationError{
				Field:   "analysis.operators",
				Message: fmt.Sprintf("operator %q listed more than once", op),
			})
		}
		seen[op] = true
	}

	return errors
}

func (c *Config) validateOutput() ValidationErrors {
	var errors ValidationErrors

	if c.Output.Dir == "" {
		errors = append(errors, ValidationError{
			Field:   "output.dir",
			Message: "dir is required",
		})
	}

	if c.Output.JSONFile == "" {
		errors = append(errors, ValidationError{
			Field:   "output.json_file",
			Message: "json_file is required",
		})
	}

	validSorts := map[string]bool{"value": true, "name": true, "": true}
	if !validSorts[c.Output.Sort] {
		errors = append(errors, ValidationError{
			Field:   "output.sort",
			Message: "sort must be 'value' or 'name'",
		})
	}

	if c.Output.Columns <= 0 {
		errors = append(errors, ValidationError{
			Field:   "output.columns",
			Message: "columns must be positive",
		})
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	return errors
}
