// Package errors defines custom error types for the histflow streaming
// statistics library. These errors carry enough context to diagnose a bad
// histogram layout or stream wiring without inspecting internal state.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for histogram construction
var (
	// ErrInvalidRange indicates the value range is empty, inverted, or not finite
	ErrInvalidRange = errors.New("hist: invalid value range")

	// ErrInvalidBinCount indicates the requested number of bins is not positive
	ErrInvalidBinCount = errors.New("hist: invalid bin count")

	// ErrNotIncreasing indicates bin boundaries are not strictly increasing
	ErrNotIncreasing = errors.New("hist: bin boundaries not strictly increasing")

	// ErrNilTransform indicates a transformed layout was requested without a transform
	ErrNilTransform = errors.New("hist: nil transform")
)

// Sentinel errors for stream operations
var (
	// ErrProducerClosed indicates the producer has been closed
	ErrProducerClosed = errors.New("stream: producer closed")

	// ErrNilConsumer indicates a nil consumer was attached
	ErrNilConsumer = errors.New("stream: nil consumer")

	// ErrInvalidComponent indicates a component index outside the sample vector
	ErrInvalidComponent = errors.New("stream: invalid component index")
)

// Sentinel errors for configuration loading
var (
	// ErrNoHistograms indicates a configuration with no histogram definitions
	ErrNoHistograms = errors.New("config: no histograms defined")

	// ErrUnknownScale indicates an unrecognized bin scale name
	ErrUnknownScale = errors.New("config: unknown scale")
)

// LayoutError wraps a histogram construction error with additional context
type LayoutError struct {
	Op  string // Operation that failed (e.g. "new", "transformed", "log10")
	Err error  // Underlying error
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *LayoutError) Unwrap() error {
	return e.Err
}

// NewLayoutError creates a new LayoutError
func NewLayoutError(op string, err error) *LayoutError {
	return &LayoutError{Op: op, Err: err}
}

// ConfigError wraps a configuration error with the offending field
type ConfigError struct {
	Field string // Configuration field (e.g. "histograms[0].bins")
	Err   error  // Underlying error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(field string, err error) *ConfigError {
	return &ConfigError{Field: field, Err: err}
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
