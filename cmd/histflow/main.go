package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/histflow/histflow/internal/constants"
	pkgversion "github.com/histflow/histflow/pkg/version"
)

// Build-time variables (set via -ldflags)
var (
	version   = ""        // Set via -ldflags "-X main.version=x.y.z"
	buildTime = "unknown" // Set via -ldflags "-X main.buildTime=..."
	gitCommit = "unknown" // Set via -ldflags "-X main.gitCommit=..."
)

func getVersion() string {
	if version != "" {
		return version
	}
	return pkgversion.String()
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "run":
		runCommand()
	case "example":
		exampleCommand()
	case "version":
		fmt.Printf("histflow version %s\n", getVersion())
		if buildTime != "unknown" {
			fmt.Printf("Built: %s\n", buildTime)
		}
		if gitCommit != "unknown" {
			fmt.Printf("Commit: %s\n", gitCommit)
		}
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`histflow - Streaming Histogram Accumulator

USAGE:
    histflow <command> [options]

COMMANDS:
    run       Accumulate samples from stdin into histograms
    example   Run a self-contained demo with synthesized samples
    version   Print version information
    help      Show this help message

Run 'histflow <command> --help' for more information on a command.

EXAMPLES:
    # One ad-hoc histogram over [0, 100) with 20 bins
    some-tool | histflow run --min 0 --max 100 --bins 20

    # Log-spaced bins for positive data, gnuplot output
    histflow run --min 0.001 --max 1000 --bins 12 --scale log10 --output sizes.dat

    # A full pipeline from a config file
    histflow run --config pipeline.yaml

    # Self-contained demo
    histflow example --samples 100000

PROJECT:
    histflow - Streaming histogram accumulation over typed sample streams
    https://github.com/histflow/histflow

    Layouts: linear and log10 bin boundaries, lower-bound bin lookup
    Streams: synchronous fan-out with drain-before-close teardown`)
}

func runCommand() {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to a YAML pipeline configuration. Overrides the layout flags")
	input := fs.String("input", "", "Read rows from this file instead of stdin")
	name := fs.String("name", "samples", "Histogram name (without --config)")
	minValue := fs.Float64("min", 0, "Inclusive lower bound of the accumulated range (without --config)")
	maxValue := fs.Float64("max", 100, "Exclusive upper bound of the accumulated range (without --config)")
	bins := fs.Int("bins", constants.DefaultBinCount, "Number of bins (without --config)")
	scale := fs.String("scale", "linear", "Bin layout: linear or log10 (without --config)")
	column := fs.Int("column", 0, "Zero-based input column to accumulate (without --config)")
	output := fs.String("output", "", "Path for the gnuplot rendering. Empty disables file export (without --config)")
	graph := fs.Bool("graph", isTerminal(), "Print an ascii graph of each histogram when the stream ends")
	logLevel := fs.String("log-level", "", "Log level: debug, info, warn, error (default info, or the config file's log_level)")
	logFormat := fs.String("log-format", "", "Log format: text or json (default text, or the config file's log_format)")
	tracing := fs.String("tracing", "", "Tracing mode: none, simple, otel (requires -tags otel; default none, or the config file's tracing)")

	fs.Usage = func() {
		fmt.Println(`USAGE: histflow run [options]

Read one whitespace-separated numeric row per line from stdin (or
--input), accumulate into histograms, and export the results when the
stream ends. Each histogram consumes one column of the row stream.
Blank lines and lines starting with '#' are skipped; samples outside a
histogram's range are counted as discarded.

OPTIONS:`)
		fs.PrintDefaults()
		fmt.Println(`
EXAMPLES:
    # Request latencies in milliseconds, 20 linear bins over [0, 500)
    tail -f access.log | awk '{print $NF}' | histflow run --min 0 --max 500 --bins 20

    # Log-spaced bins over the second column of a data file
    histflow run --input trace.dat --column 1 --min 0.001 --max 1000 --scale log10 --output sizes.dat

    # Several histograms from one stream
    histflow run --config pipeline.yaml --log-level debug`)
	}

	_ = fs.Parse(os.Args[2:])

	opts := runOptions{
		configPath: *configPath,
		input:      *input,
		name:       *name,
		min:        *minValue,
		max:        *maxValue,
		bins:       *bins,
		scale:      *scale,
		column:     *column,
		output:     *output,
		graph:      *graph,
		logLevel:   *logLevel,
		logFormat:  *logFormat,
		tracing:    *tracing,
	}
	runPipeline(opts)
}

func exampleCommand() {
	fs := flag.NewFlagSet("example", flag.ExitOnError)
	samples := fs.Int("samples", 0, "Number of synthesized samples (0 = default)")
	seed := fs.Int64("seed", 0, "Random seed (0 = time-based)")
	output := fs.String("output", "", "Path for the gnuplot rendering of the first demo histogram")

	fs.Usage = func() {
		fmt.Println(`USAGE: histflow example [options]

Run a self-contained demo: synthesize random samples, fan them out to
histograms over a stream, and render the results.

The demo shows:
  - Linear bin layouts over a normal distribution
  - Log10 bin layouts over a heavy-tailed distribution
  - Vector streams split into per-component histograms

OPTIONS:`)
		fs.PrintDefaults()
	}

	_ = fs.Parse(os.Args[2:])

	runExample(*samples, *seed, *output)
}
