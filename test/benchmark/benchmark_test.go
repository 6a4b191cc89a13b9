// Package benchmark provides performance benchmarks for the histflow library.
//
// Run benchmarks with:
//
//	go test -bench=. -benchmem ./test/benchmark/
//
// For profiling:
//
//	go test -bench=. -cpuprofile=cpu.prof -memprofile=mem.prof ./test/benchmark/
package benchmark

import (
	"bytes"
	"context"
	"math/rand"
	"testing"

	"github.com/histflow/histflow/pkg/hist"
	"github.com/histflow/histflow/pkg/stream"
)

// makeSamples pre-generates deterministic samples so parsing and RNG cost
// stay out of the measured loops.
func makeSamples(n int, lo, hi float64) []float64 {
	rng := rand.New(rand.NewSource(1))
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = lo + rng.Float64()*(hi-lo)
	}
	return samples
}

// --- Consume Benchmarks ---

func BenchmarkConsumeLinear(b *testing.B) {
	h, _ := hist.New[float64](0, 1000, 100)
	samples := makeSamples(4096, 0, 1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.Consume(samples[i%len(samples)], nil)
	}
}

func BenchmarkConsumeLog10(b *testing.B) {
	h, _ := hist.NewLog10[float64](0.001, 1000, 100)
	samples := makeSamples(4096, 0.001, 1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.Consume(samples[i%len(samples)], nil)
	}
}

func BenchmarkConsumeDiscard(b *testing.B) {
	h, _ := hist.New[float64](0, 10, 10)
	samples := makeSamples(4096, 100, 200) // all out of range

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.Consume(samples[i%len(samples)], nil)
	}
}

func BenchmarkConsumeInt(b *testing.B) {
	h, _ := hist.New[int](0, 1000, 100)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.Consume(i%1000, nil)
	}
}

// --- Bin Count Scaling Benchmarks ---

func BenchmarkConsume10Bins(b *testing.B)    { benchmarkConsumeBins(b, 10) }
func BenchmarkConsume100Bins(b *testing.B)   { benchmarkConsumeBins(b, 100) }
func BenchmarkConsume1000Bins(b *testing.B)  { benchmarkConsumeBins(b, 1000) }
func BenchmarkConsume10000Bins(b *testing.B) { benchmarkConsumeBins(b, 10000) }

func benchmarkConsumeBins(b *testing.B, bins int) {
	h, _ := hist.New[float64](0, 1000, bins)
	samples := makeSamples(4096, 0, 1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.Consume(samples[i%len(samples)], nil)
	}
}

// --- Snapshot Benchmarks ---

func BenchmarkSnapshot100Bins(b *testing.B)  { benchmarkSnapshot(b, 100) }
func BenchmarkSnapshot1000Bins(b *testing.B) { benchmarkSnapshot(b, 1000) }

func benchmarkSnapshot(b *testing.B, bins int) {
	h, _ := hist.New[float64](0, 1000, bins)
	for _, v := range makeSamples(10000, 0, 1000) {
		h.Consume(v, nil)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = h.Snapshot()
	}
}

func BenchmarkClone(b *testing.B) {
	h, _ := hist.New[float64](0, 1000, 1000)
	for _, v := range makeSamples(10000, 0, 1000) {
		h.Consume(v, nil)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = h.Clone()
	}
}

// --- Export Benchmarks ---

func BenchmarkWriteGnuplot(b *testing.B) {
	h, _ := hist.New[float64](0, 1000, 100)
	for _, v := range makeSamples(10000, 0, 1000) {
		h.Consume(v, nil)
	}
	var buf bytes.Buffer

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		if err := h.WriteGnuplot(&buf); err != nil {
			b.Fatal(err)
		}
	}
}

// --- Stream Benchmarks ---

func BenchmarkEmit(b *testing.B) {
	h, _ := hist.New[float64](0, 1000, 100)
	producer := stream.NewProducer[float64]()
	if _, err := producer.Attach(h); err != nil {
		b.Fatal(err)
	}
	samples := makeSamples(4096, 0, 1000)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := producer.Emit(ctx, samples[i%len(samples)], nil); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEmitFanOut8(b *testing.B) {
	producer := stream.NewProducer[float64]()
	for i := 0; i < 8; i++ {
		h, _ := hist.New[float64](0, 1000, 100)
		if _, err := producer.Attach(h); err != nil {
			b.Fatal(err)
		}
	}
	samples := makeSamples(4096, 0, 1000)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := producer.Emit(ctx, samples[i%len(samples)], nil); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSplitterConsume(b *testing.B) {
	h, _ := hist.New[float64](0, 1000, 100)
	splitter, _ := stream.NewComponentSplitter[float64](1)
	if _, err := splitter.Attach(h); err != nil {
		b.Fatal(err)
	}
	vector := []float64{1, 500, 999}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		splitter.Consume(vector, nil)
	}
}

// --- Parallel Benchmarks ---

func BenchmarkConsumeParallel(b *testing.B) {
	h, _ := hist.New[float64](0, 1000, 100)
	samples := makeSamples(4096, 0, 1000)

	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			h.Consume(samples[i%len(samples)], nil)
			i++
		}
	})
}

func BenchmarkEmitParallel(b *testing.B) {
	h, _ := hist.New[float64](0, 1000, 100)
	producer := stream.NewProducer[float64]()
	if _, err := producer.Attach(h); err != nil {
		b.Fatal(err)
	}
	samples := makeSamples(4096, 0, 1000)
	ctx := context.Background()

	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			_ = producer.Emit(ctx, samples[i%len(samples)], nil)
			i++
		}
	})
}

// --- Memory Allocation Benchmarks ---

func BenchmarkConsumeAllocs(b *testing.B) {
	h, _ := hist.New[float64](0, 1000, 100)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		h.Consume(float64(i%1000), nil)
	}
}

func BenchmarkSnapshotAllocs(b *testing.B) {
	h, _ := hist.New[float64](0, 1000, 100)
	for _, v := range makeSamples(10000, 0, 1000) {
		h.Consume(v, nil)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = h.Snapshot()
	}
}
