// Package config defines process configuration and its loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Functions that may grow I/O accept context.Context as the first parameter.
// - External errors are wrapped with this package's sentinels.
package config

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/okian/aucscore/internal/domain/auc"
	"github.com/okian/aucscore/pkg/logger"
)

// Output formats for command results.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// RowIDColumn names the identifier column dropped before scoring.
	RowIDColumn string `koanf:"row_id_column"`

	// Average selects how per-column AUC values are combined.
	Average string `koanf:"average"`

	// WorkerCount sets the number of scoring workers for rank runs.
	WorkerCount int `koanf:"worker_count"`

	// QueueSize bounds the in-memory job queue.
	QueueSize int `koanf:"queue_size"`

	// DedupeSize bounds the number of remembered submission digests.
	DedupeSize int `koanf:"dedupe_size"`

	// MetricsFile, when set, receives a Prometheus textfile after each run.
	MetricsFile string `koanf:"metrics_file"`

	// Output selects result rendering: text or json.
	Output string `koanf:"output"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:    "info",
		LogFormat:   logger.FormatText,
		RowIDColumn: "row_id",
		Average:     string(auc.Macro),
		WorkerCount: runtime.NumCPU(),
		QueueSize:   1024,
		DedupeSize:  50_000,
		Output:      OutputText,
	}
}

// Validate checks field ranges and enumerations.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	if c.LogFormat != logger.FormatText && c.LogFormat != logger.FormatJSON {
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	if c.RowIDColumn == "" {
		return fmt.Errorf("%w: row_id_column must not be empty", ErrInvalidConfig)
	}
	if _, err := auc.ParseAverage(c.Average); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.WorkerCount < 1 {
		return fmt.Errorf("%w: worker_count must be positive, got %d", ErrInvalidConfig, c.WorkerCount)
	}
	if c.QueueSize < 1 {
		return fmt.Errorf("%w: queue_size must be positive, got %d", ErrInvalidConfig, c.QueueSize)
	}
	if c.DedupeSize < 0 {
		return fmt.Errorf("%w: dedupe_size must not be negative, got %d", ErrInvalidConfig, c.DedupeSize)
	}
	if c.Output != OutputText && c.Output != OutputJSON {
		return fmt.Errorf("%w: unknown output %q", ErrInvalidConfig, c.Output)
	}
	return nil
}

// AverageMode returns the parsed averaging mode. Call Validate first.
func (c *Config) AverageMode() auc.Average {
	avg, err := auc.ParseAverage(c.Average)
	if err != nil {
		return auc.Macro
	}
	return avg
}
