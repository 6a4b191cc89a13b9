package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/histflow/histflow/internal/config"
	"github.com/histflow/histflow/internal/constants"
	"github.com/histflow/histflow/pkg/hist"
	"github.com/histflow/histflow/pkg/stream"
	"github.com/histflow/histflow/pkg/telemetry"
)

type runOptions struct {
	configPath string
	input      string
	name       string
	min        float64
	max        float64
	bins       int
	scale      string
	column     int
	output     string
	graph      bool
	logLevel   string
	logFormat  string
	tracing    string
}

// namedHistogram pairs an accumulator with its configuration entry.
type namedHistogram struct {
	cfg  config.HistogramConfig
	hist *hist.Histogram[float64]
}

func runPipeline(opts runOptions) {
	cfg, err := loadRunConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, tracer, err := setupObservability(cfg.LogLevel, cfg.LogFormat, cfg.Tracing)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	hists, err := buildHistograms(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	in, sourceName, err := openInput(opts.input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer in.Close()

	producer := stream.NewProducer[[]float64](
		stream.WithName(sourceName),
		stream.WithLogger(logger),
		stream.WithTracer(tracer),
	)
	splitters, err := attachHistograms(producer, hists, logger, tracer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Stop reading on Ctrl+C and let the pipeline drain normally.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("interrupted, draining")
		cancel()
	}()

	lines, accepted := feedSamples(ctx, producer, in, logger)

	_ = producer.Close()
	for _, sp := range splitters {
		_ = sp.Close()
	}
	signal.Stop(sigChan)

	stats := producer.Stats()
	logger.Info("stream drained",
		zap.Int("lines", lines),
		zap.Int("rows", accepted),
		zap.Uint64("emitted", stats.Emitted),
		zap.Uint64("delivered", stats.Delivered))
	for col, sp := range splitters {
		if dropped := sp.Stats().Dropped; dropped > 0 {
			logger.Warn("rows missing column",
				zap.Int("column", col),
				zap.Uint64("rows", dropped))
		}
	}

	if st, ok := tracer.(*telemetry.SimpleTracer); ok {
		byName := make(map[string]int)
		for _, span := range st.Spans() {
			byName[span.Name]++
		}
		for name, n := range byName {
			logger.Debug("spans recorded", zap.String("span", name), zap.Int("count", n))
		}
	}

	if err := exportResults(hists, opts.graph, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadRunConfig builds the pipeline configuration from a file or, when no
// file is given, from the single-histogram layout flags. Explicit
// observability flags win over the file.
func loadRunConfig(opts runOptions) (*config.Config, error) {
	var cfg *config.Config

	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.Default()
		cfg.Histograms = []config.HistogramConfig{{
			Name:   opts.name,
			Min:    opts.min,
			Max:    opts.max,
			Bins:   opts.bins,
			Scale:  constants.Scale(opts.scale),
			Column: opts.column,
			Output: opts.output,
		}}
	}

	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.logFormat != "" {
		cfg.LogFormat = opts.logFormat
	}
	if opts.tracing != "" {
		cfg.Tracing = opts.tracing
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupObservability builds the logger and installs the tracer selected by
// the configuration.
func setupObservability(logLevel, logFormat, tracing string) (*zap.Logger, telemetry.Tracer, error) {
	logger, err := telemetry.NewLogger(logLevel, logFormat)
	if err != nil {
		return nil, nil, err
	}

	var tracer telemetry.Tracer
	switch strings.ToLower(tracing) {
	case "none":
		tracer = telemetry.NoOpTracer{}
	case "simple":
		tracer = telemetry.NewSimpleTracer()
	case "otel":
		if !telemetry.OTelEnabled() {
			return nil, nil, fmt.Errorf("otel tracing not enabled (build with -tags otel)")
		}
		tracer = telemetry.NewOTelTracer(constants.AppName)
	default:
		return nil, nil, fmt.Errorf("invalid tracing mode: %s (use none, simple, or otel)", tracing)
	}
	telemetry.SetTracer(tracer)

	return logger, tracer, nil
}

// buildHistograms constructs one accumulator per configuration entry.
func buildHistograms(cfg *config.Config) ([]namedHistogram, error) {
	hists := make([]namedHistogram, 0, len(cfg.Histograms))
	for _, hc := range cfg.Histograms {
		var (
			h   *hist.Histogram[float64]
			err error
		)
		switch hc.Scale {
		case constants.ScaleLog10:
			h, err = hist.NewLog10[float64](hc.Min, hc.Max, hc.Bins)
		default:
			h, err = hist.New[float64](hc.Min, hc.Max, hc.Bins)
		}
		if err != nil {
			return nil, fmt.Errorf("histogram %q: %w", hc.Name, err)
		}
		hists = append(hists, namedHistogram{cfg: hc, hist: h})
	}
	return hists, nil
}

// openInput opens the sample source: the named file, or stdin when path is
// empty.
func openInput(path string) (io.ReadCloser, string, error) {
	if path == "" {
		return os.Stdin, "stdin", nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open input: %w", err)
	}
	return f, filepath.Base(path), nil
}

// attachHistograms wires each histogram to its input column. Histograms
// sharing a column share one splitter, so a row is split once per distinct
// column rather than once per histogram.
func attachHistograms(producer *stream.Producer[[]float64], hists []namedHistogram, logger *zap.Logger, tracer telemetry.Tracer) (map[int]*stream.ComponentSplitter[float64], error) {
	splitters := make(map[int]*stream.ComponentSplitter[float64])
	for _, nh := range hists {
		sp, ok := splitters[nh.cfg.Column]
		if !ok {
			var err error
			sp, err = stream.NewComponentSplitter[float64](nh.cfg.Column,
				stream.WithName(fmt.Sprintf("column-%d", nh.cfg.Column)),
				stream.WithLogger(logger),
				stream.WithTracer(tracer))
			if err != nil {
				return nil, fmt.Errorf("column %d: %w", nh.cfg.Column, err)
			}
			if _, err := producer.Attach(sp); err != nil {
				return nil, err
			}
			splitters[nh.cfg.Column] = sp
		}
		if _, err := sp.Attach(nh.hist); err != nil {
			return nil, err
		}
	}
	return splitters, nil
}

// feedSamples reads one whitespace-separated row per line from r and emits
// each to the producer. Blank lines and '#' comments are skipped. Returns
// the number of lines read and the number of rows emitted.
func feedSamples(ctx context.Context, producer *stream.Producer[[]float64], r io.Reader, logger *zap.Logger) (lines, accepted int) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			break
		}
		lines++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		row, err := parseRow(line)
		if err != nil {
			logger.Warn("skipping unparseable row",
				zap.Int("line", lines),
				zap.String("text", line))
			continue
		}

		if err := producer.Emit(ctx, row, nil); err != nil {
			logger.Warn("emit failed", zap.Error(err))
			break
		}
		accepted++
	}
	if err := scanner.Err(); err != nil {
		logger.Error("input error", zap.Error(err))
	}
	return lines, accepted
}

// parseRow parses a whitespace-separated line of numbers.
func parseRow(line string) ([]float64, error) {
	fields := strings.Fields(line)
	row := make([]float64, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, err
		}
		row[i] = v
	}
	return row, nil
}

// exportResults renders each histogram and writes the configured gnuplot
// data files.
func exportResults(hists []namedHistogram, graph bool, logger *zap.Logger) error {
	var errs *multierror.Error

	for _, nh := range hists {
		h := nh.hist
		logger.Info("histogram complete",
			zap.String("histogram", nh.cfg.Name),
			zap.Uint64("samples", h.Total()),
			zap.Uint64("discarded", h.Discarded()))

		if graph {
			writeGraph(os.Stdout, nh.cfg.Name, h.Snapshot(), h.Total(), h.Discarded())
		}

		if nh.cfg.Output == "" {
			continue
		}

		_, end := telemetry.StartSpan(context.Background(), telemetry.SpanExport,
			telemetry.WithAttributes(telemetry.SpanAttributes{
				Histogram: nh.cfg.Name,
				Samples:   int64(h.Total()),
				Discarded: int64(h.Discarded()),
			}.ToMap()))
		err := h.WriteGnuplotFile(nh.cfg.Output)
		end(err)

		if err != nil {
			logger.Error("gnuplot export failed",
				zap.String("histogram", nh.cfg.Name),
				zap.String("path", nh.cfg.Output),
				zap.Error(err))
			errs = multierror.Append(errs, fmt.Errorf("export %s: %w", nh.cfg.Name, err))
			continue
		}

		logger.Info("gnuplot data written",
			zap.String("histogram", nh.cfg.Name),
			zap.String("path", nh.cfg.Output))
	}

	return errs.ErrorOrNil()
}
