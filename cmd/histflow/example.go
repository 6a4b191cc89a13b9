package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/histflow/histflow/internal/constants"
	"github.com/histflow/histflow/pkg/hist"
	"github.com/histflow/histflow/pkg/stream"
)

func runExample(samples int, seed int64, output string) {
	if samples <= 0 {
		samples = constants.DefaultExampleSamples
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	fmt.Println("╔═══════════════════════════════════════════════════════════╗")
	fmt.Println("║      histflow: Streaming Histogram Demo                   ║")
	fmt.Println("╚═══════════════════════════════════════════════════════════╝")
	fmt.Println()
	fmt.Printf("Synthesizing %d samples (seed %d)\n", samples, seed)
	fmt.Println()

	normal := demoLinear(rng, samples)
	demoLog10(rng, samples)
	demoVectorSplit(rng, samples)

	if output != "" {
		if err := normal.WriteGnuplotFile(output); err != nil {
			fmt.Fprintf(os.Stderr, "Error: gnuplot export failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✓ Gnuplot data written to %s\n", output)
		fmt.Printf("  Plot it with: gnuplot -p -e \"plot '%s' with lines\"\n", output)
		fmt.Println()
	}

	fmt.Println("Next steps:")
	fmt.Println("  # Accumulate your own data from stdin")
	fmt.Println("  some-tool | histflow run --min 0 --max 100 --bins 20")
	fmt.Println()
	fmt.Println("  # Multiple histograms from one stream")
	fmt.Println("  histflow run --config pipeline.yaml")
}

// demoLinear accumulates a normal distribution into linear bins.
func demoLinear(rng *rand.Rand, samples int) *hist.Histogram[float64] {
	fmt.Println("--- Demo 1: Linear bins over a normal distribution ---")
	fmt.Println()

	h, err := hist.New[float64](-4, 4, 16)
	if err != nil {
		fatalf("histogram construction failed: %v", err)
	}

	producer := stream.NewProducer[float64](stream.WithName("demo-normal"))
	if _, err := producer.Attach(h); err != nil {
		fatalf("attach failed: %v", err)
	}

	ctx := context.Background()
	for i := 0; i < samples; i++ {
		_ = producer.Emit(ctx, rng.NormFloat64(), nil)
	}
	_ = producer.Close()

	writeGraph(os.Stdout, "normal(0, 1)", h.Snapshot(), h.Total(), h.Discarded())
	fmt.Println()
	return h
}

// demoLog10 accumulates a heavy-tailed distribution into log-spaced bins.
func demoLog10(rng *rand.Rand, samples int) {
	fmt.Println("--- Demo 2: Log10 bins over a heavy-tailed distribution ---")
	fmt.Println()

	h, err := hist.NewLog10[float64](0.001, 1000, 12)
	if err != nil {
		fatalf("histogram construction failed: %v", err)
	}

	producer := stream.NewProducer[float64](stream.WithName("demo-lognormal"))
	if _, err := producer.Attach(h); err != nil {
		fatalf("attach failed: %v", err)
	}

	// Base-10 lognormal. The occasional sample beyond the range shows up
	// in the discarded counter.
	ctx := context.Background()
	for i := 0; i < samples; i++ {
		_ = producer.Emit(ctx, math.Pow(10, rng.NormFloat64()), nil)
	}
	_ = producer.Close()

	writeGraph(os.Stdout, "lognormal, log10 bins", h.Snapshot(), h.Total(), h.Discarded())
	fmt.Println()
}

// demoVectorSplit fans a vector stream out into per-component histograms.
func demoVectorSplit(rng *rand.Rand, samples int) {
	fmt.Println("--- Demo 3: Vector stream split into components ---")
	fmt.Println()

	xHist, err := hist.New[float64](0, 10, 10)
	if err != nil {
		fatalf("histogram construction failed: %v", err)
	}
	yHist, err := hist.New[float64](0, 10, 10)
	if err != nil {
		fatalf("histogram construction failed: %v", err)
	}

	xSplit, err := stream.NewComponentSplitter[float64](0, stream.WithName("demo-x"))
	if err != nil {
		fatalf("splitter construction failed: %v", err)
	}
	ySplit, err := stream.NewComponentSplitter[float64](1, stream.WithName("demo-y"))
	if err != nil {
		fatalf("splitter construction failed: %v", err)
	}
	if _, err := xSplit.Attach(xHist); err != nil {
		fatalf("attach failed: %v", err)
	}
	if _, err := ySplit.Attach(yHist); err != nil {
		fatalf("attach failed: %v", err)
	}

	producer := stream.NewProducer[[]float64](stream.WithName("demo-vectors"))
	if _, err := producer.Attach(xSplit); err != nil {
		fatalf("attach failed: %v", err)
	}
	if _, err := producer.Attach(ySplit); err != nil {
		fatalf("attach failed: %v", err)
	}

	// Component 0 is uniform, component 1 is normal around the middle of
	// the range.
	ctx := context.Background()
	for i := 0; i < samples; i++ {
		v := []float64{
			rng.Float64() * 10,
			rng.NormFloat64()*2 + 5,
		}
		_ = producer.Emit(ctx, v, nil)
	}
	_ = producer.Close()
	_ = xSplit.Close()
	_ = ySplit.Close()

	writeGraph(os.Stdout, "component 0: uniform(0, 10)", xHist.Snapshot(), xHist.Total(), xHist.Discarded())
	fmt.Println()
	writeGraph(os.Stdout, "component 1: normal(5, 2)", yHist.Snapshot(), yHist.Total(), yHist.Discarded())
	fmt.Println()
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
