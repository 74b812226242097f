package config

import (
	"fmt"
	"slices"
)

// ValidationIssue describes a problem with a config value.
type ValidationIssue struct {
	Path    string
	Message string
}

func (v ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks a Config for issues. Returns nil if valid.
func Validate(cfg *Config) []ValidationIssue {
	var issues []ValidationIssue

	if cfg.Judge.TimeoutSeconds < 0 {
		issues = append(issues, ValidationIssue{
			Path:    "judge.timeoutSeconds",
			Message: fmt.Sprintf("must be >= 0, got %d", cfg.Judge.TimeoutSeconds),
		})
	}
	if cfg.Judge.Temperature < 0 || cfg.Judge.Temperature > 2 {
		issues = append(issues, ValidationIssue{
			Path:    "judge.temperature",
			Message: fmt.Sprintf("must be in [0,2], got %g", cfg.Judge.Temperature),
		})
	}

	if cfg.Retrieval.TopK < 1 {
		issues = append(issues, ValidationIssue{
			Path:    "retrieval.topK",
			Message: fmt.Sprintf("must be >= 1, got %d", cfg.Retrieval.TopK),
		})
	}
	if cfg.Retrieval.TimeoutSeconds < 0 {
		issues = append(issues, ValidationIssue{
			Path:    "retrieval.timeoutSeconds",
			Message: fmt.Sprintf("must be >= 0, got %d", cfg.Retrieval.TimeoutSeconds),
		})
	}

	validBackends := []string{"sqlite", "memory"}
	if cfg.Storage.Backend != "" && !slices.Contains(validBackends, cfg.Storage.Backend) {
		issues = append(issues, ValidationIssue{
			Path:    "storage.backend",
			Message: fmt.Sprintf("must be one of %v, got %q", validBackends, cfg.Storage.Backend),
		})
	}

	validLogLevels := []string{"silent", "fatal", "error", "warn", "info", "debug", "trace"}
	if cfg.Logging.Level != "" && !slices.Contains(validLogLevels, cfg.Logging.Level) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.level",
			Message: fmt.Sprintf("must be one of %v, got %q", validLogLevels, cfg.Logging.Level),
		})
	}

	validStyles := []string{"pretty", "json"}
	if cfg.Logging.Style != "" && !slices.Contains(validStyles, cfg.Logging.Style) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.style",
			Message: fmt.Sprintf("must be one of %v, got %q", validStyles, cfg.Logging.Style),
		})
	}

	return issues
}
