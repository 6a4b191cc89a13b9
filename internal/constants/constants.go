// Package constants defines shared defaults and identifiers for the histflow
// streaming statistics library.
package constants

// Application identification
const (
	// AppName is the canonical name used in logs and the CLI user agent
	AppName = "histflow"
)

// Histogram layout parameters
const (
	// MinBinCount is the smallest layout a histogram can be built with
	MinBinCount = 1

	// DefaultBinCount is the number of bins used when a configuration omits it
	DefaultBinCount = 10
)

// Stream delivery parameters
const (
	// DefaultProducerName labels emissions from an unnamed producer
	DefaultProducerName = "producer"
)

// Export parameters
const (
	// GnuplotBufferSize is the write buffer size of the gnuplot exporter
	GnuplotBufferSize = 4096
)

// CLI rendering parameters
const (
	// DefaultGraphWidth is the bar width of the terminal histogram preview
	DefaultGraphWidth = 40

	// DefaultExampleSamples is the sample count drawn by the example subcommand
	DefaultExampleSamples = 100000
)

// Scale identifies a bin boundary layout scheme.
type Scale string

const (
	// ScaleLinear spaces bin boundaries uniformly across the value range
	ScaleLinear Scale = "linear"

	// ScaleLog10 spaces bin boundaries uniformly in log10 of the value range
	ScaleLog10 Scale = "log10"
)

// IsSupported returns true if the scale is recognized.
func (s Scale) IsSupported() bool {
	return s == ScaleLinear || s == ScaleLog10
}
