// Package hist provides a streaming histogram accumulator with fixed bin
// layouts over a half-open value range.
//
// A histogram is built once with its full bin layout and then fed samples
// one at a time, from any number of goroutines. Samples outside the value
// range are dropped; a sample exactly on an interior bin boundary counts
// toward the bin on its left.
//
// # Quick Start
//
//	h, err := hist.New[float64](0, 10, 5)
//	if err != nil {
//		return err
//	}
//
//	for _, v := range []float64{1, 1, 3, 9.9, -5, 10} {
//		h.Consume(v, nil)
//	}
//
//	for _, b := range h.Snapshot() {
//		fmt.Printf("[%v, %v): %d\n", b.Left, b.Right, b.Count)
//	}
//	// [0, 2): 2
//	// [2, 4): 1
//	// [4, 6): 0
//	// [6, 8): 0
//	// [8, 10): 1
//
// # Transformed Layouts
//
// Bin boundaries need not be uniform. A strictly increasing transform maps
// a uniform pre-image grid onto the value axis:
//
//	// Four log10-spaced bins between 10^-3 and 10^3.
//	h, err := hist.NewTransformed[float64](-3, 3, 4, hist.Exp10)
//
// NewLog10 wraps the same construction in terms of the value range itself:
//
//	h, err := hist.NewLog10[float64](0.001, 1000, 4)
//
// # Export
//
// WriteGnuplot emits two lines per bin, tracing the histogram outline as a
// staircase that gnuplot renders with `plot "file" with lines`:
//
//	if err := h.WriteGnuplotFile("samples.dat"); err != nil {
//		return err
//	}
//
// # Streams
//
// Histogram implements stream.Consumer and can be attached to a
// stream.Producer; see the stream package for the delivery and teardown
// contract.
package hist
