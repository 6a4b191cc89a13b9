// Package config loads and validates histflow pipeline configuration.
//
// A configuration file is YAML and describes the logging setup, the span
// recorder, and the set of histogram accumulators fed from the sample
// stream. Missing optional fields are filled from defaults before
// validation, and validation reports every problem it finds rather than
// stopping at the first.
package config

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/histflow/histflow/internal/constants"
	hferrors "github.com/histflow/histflow/internal/errors"
)

// Config holds the full histflow pipeline configuration.
type Config struct {
	// LogLevel sets the minimum severity of emitted log lines.
	// One of: debug, info, warn, error.
	// Default: info
	LogLevel string `yaml:"log_level"`

	// LogFormat selects the log encoding.
	// One of: text, json.
	// Default: text
	LogFormat string `yaml:"log_format"`

	// Tracing selects the span recorder.
	// One of: none, simple, otel.
	// Default: none
	Tracing string `yaml:"tracing"`

	// Histograms defines the accumulators fed from the sample stream.
	// At least one is required.
	Histograms []HistogramConfig `yaml:"histograms"`
}

// HistogramConfig defines a single histogram accumulator.
type HistogramConfig struct {
	// Name labels the histogram in logs and output files.
	// Default: hist-<index>
	Name string `yaml:"name"`

	// Min is the inclusive lower bound of the accumulated range.
	Min float64 `yaml:"min"`

	// Max is the exclusive upper bound of the accumulated range.
	// Must be greater than Min.
	Max float64 `yaml:"max"`

	// Bins is the number of bins between Min and Max.
	// Default: 10
	Bins int `yaml:"bins"`

	// Scale selects the bin boundary layout.
	// One of: linear, log10. A log10 scale requires Min > 0.
	// Default: linear
	Scale constants.Scale `yaml:"scale"`

	// Column is the zero-based input column this histogram consumes.
	// Rows missing the column are skipped for this histogram.
	// Default: 0
	Column int `yaml:"column"`

	// Output is the path the gnuplot rendering is written to after the
	// stream drains. Empty disables file export for this histogram.
	Output string `yaml:"output"`
}

// Default returns a Config with sensible defaults and no histograms.
func Default() *Config {
	return &Config{
		LogLevel:  "info",
		LogFormat: "text",
		Tracing:   "none",
	}
}

// Load reads, parses, and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML configuration from r, applies defaults, and
// validates the result.
func Parse(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors. Every problem found is
// reported, not just the first.
func (c *Config) Validate() error {
	var errs *multierror.Error

	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = multierror.Append(errs, hferrors.NewConfigError("log_level",
			fmt.Errorf("unknown level %q", c.LogLevel)))
	}

	switch c.LogFormat {
	case "text", "console", "json":
	default:
		errs = multierror.Append(errs, hferrors.NewConfigError("log_format",
			fmt.Errorf("unknown format %q", c.LogFormat)))
	}

	switch c.Tracing {
	case "none", "simple", "otel":
	default:
		errs = multierror.Append(errs, hferrors.NewConfigError("tracing",
			fmt.Errorf("unknown tracer %q", c.Tracing)))
	}

	if len(c.Histograms) == 0 {
		errs = multierror.Append(errs, hferrors.NewConfigError("histograms",
			hferrors.ErrNoHistograms))
	}

	seen := make(map[string]bool, len(c.Histograms))
	for i := range c.Histograms {
		h := &c.Histograms[i]
		field := func(name string) string {
			return fmt.Sprintf("histograms[%d].%s", i, name)
		}

		if seen[h.Name] {
			errs = multierror.Append(errs, hferrors.NewConfigError(field("name"),
				fmt.Errorf("duplicate name %q", h.Name)))
		}
		seen[h.Name] = true

		switch {
		case math.IsNaN(h.Min) || math.IsInf(h.Min, 0):
			errs = multierror.Append(errs, hferrors.NewConfigError(field("min"),
				fmt.Errorf("must be finite, got %v", h.Min)))
		case math.IsNaN(h.Max) || math.IsInf(h.Max, 0):
			errs = multierror.Append(errs, hferrors.NewConfigError(field("max"),
				fmt.Errorf("must be finite, got %v", h.Max)))
		case h.Min >= h.Max:
			errs = multierror.Append(errs, hferrors.NewConfigError(field("max"),
				fmt.Errorf("max (%v) must be greater than min (%v)", h.Max, h.Min)))
		}

		if h.Bins < constants.MinBinCount {
			errs = multierror.Append(errs, hferrors.NewConfigError(field("bins"),
				fmt.Errorf("must be at least %d, got %d", constants.MinBinCount, h.Bins)))
		}

		if h.Column < 0 {
			errs = multierror.Append(errs, hferrors.NewConfigError(field("column"),
				fmt.Errorf("must not be negative, got %d", h.Column)))
		}

		if !h.Scale.IsSupported() {
			errs = multierror.Append(errs, hferrors.NewConfigError(field("scale"),
				fmt.Errorf("%w: %q", hferrors.ErrUnknownScale, h.Scale)))
		} else if h.Scale == constants.ScaleLog10 && h.Min <= 0 {
			errs = multierror.Append(errs, hferrors.NewConfigError(field("min"),
				fmt.Errorf("log10 scale requires min > 0, got %v", h.Min)))
		}
	}

	return errs.ErrorOrNil()
}

// applyDefaults fills in zero values with defaults.
func (c *Config) applyDefaults() {
	defaults := Default()

	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = defaults.LogFormat
	}
	if c.Tracing == "" {
		c.Tracing = defaults.Tracing
	}
	for i := range c.Histograms {
		h := &c.Histograms[i]
		if h.Name == "" {
			h.Name = fmt.Sprintf("hist-%d", i)
		}
		if h.Bins == 0 {
			h.Bins = constants.DefaultBinCount
		}
		if h.Scale == "" {
			h.Scale = constants.ScaleLinear
		}
	}
}
