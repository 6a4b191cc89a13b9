// Package histflow provides streaming histogram accumulation over typed
// sample streams.
//
// Histograms partition a half-open value range [min, max) into bins with
// either linear or transformed (e.g. log10) boundaries. Samples are
// accumulated concurrently from producer streams, with out-of-range
// samples counted rather than dropped silently, and results can be
// snapshotted at any time or exported as gnuplot data.
//
// # Quick Start
//
// For a standalone accumulator:
//
//	import "github.com/histflow/histflow/pkg/hist"
//
//	h, _ := hist.New[float64](0, 10, 5)
//	h.Consume(1.0, nil)
//	h.Consume(9.9, nil)
//	for _, b := range h.Snapshot() {
//		fmt.Printf("[%v, %v) %d\n", b.Left, b.Right, b.Count)
//	}
//
// For fan-out from a sample stream:
//
//	import "github.com/histflow/histflow/pkg/stream"
//
//	producer := stream.NewProducer[float64]()
//	sub, _ := producer.Attach(h)
//	producer.Emit(ctx, 4.2, nil)
//	producer.Close() // waits for in-flight deliveries
//
// # Package Structure
//
// The library is organized into several packages:
//
//   - pkg/hist: Histogram accumulators, bin layouts, and gnuplot export
//   - pkg/stream: Producer/consumer streams with drain-before-close teardown
//   - pkg/telemetry: Structured logging and span tracing for stream operations
//   - internal/config: YAML pipeline configuration with validation
//   - internal/constants: Shared defaults and bin scale identifiers
//   - internal/errors: Custom error types for detailed error handling
//
// # Concurrency
//
// The accumulators are designed for concurrent ingestion:
//
//   - Any number of goroutines may call Consume on one histogram
//   - Bin lookup runs lock-free against the immutable layout
//   - Snapshot returns a consistent copy taken in one critical section
//   - Producer.Close and Subscription.Close wait for in-flight deliveries
//
// # Testing
//
//	go test ./...                              # All tests
//	go test -race ./pkg/...                    # Concurrency tests
//	go test -bench=. ./test/benchmark          # Benchmarks
//	go test -fuzz=FuzzLocate ./test/fuzz       # Fuzz tests
//
// For more information, see: https://github.com/histflow/histflow
package histflow
