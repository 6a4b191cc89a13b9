package hist

import (
	"math"
	"sync"

	"golang.org/x/exp/constraints"

	hferrors "github.com/histflow/histflow/internal/errors"
	"github.com/histflow/histflow/pkg/stream"
)

// Real is the sample type constraint: any integer or floating point type.
type Real interface {
	constraints.Integer | constraints.Float
}

// Histogram accumulates a stream of samples into fixed bins over a
// half-open value range [min, max). It implements stream.Consumer[T] and
// is safe for concurrent use.
//
// Samples below the range or at/above its upper bound are counted as
// discarded and do not appear in any bin. A sample exactly on an interior
// bin boundary is attributed to the bin on its left.
type Histogram[T Real] struct {
	layout layout

	mu        sync.Mutex
	counts    []uint64
	total     uint64
	discarded uint64
}

// New creates a histogram with uniform-width bins spanning
// [minValue, maxValue).
func New[T Real](minValue, maxValue float64, bins int) (*Histogram[T], error) {
	l, err := newLinearLayout(minValue, maxValue, bins)
	if err != nil {
		return nil, hferrors.NewLayoutError("new", err)
	}
	return &Histogram[T]{
		layout: l,
		counts: make([]uint64, l.numBins()),
	}, nil
}

// NewTransformed creates a histogram whose bin boundaries are f applied to
// a uniform grid of bins+1 points over [minPre, maxPre]. The transform must
// be strictly increasing over the pre-image range. The transformed final
// boundary is the exclusive upper bound of the value range.
func NewTransformed[T Real](minPre, maxPre float64, bins int, f Transform) (*Histogram[T], error) {
	l, err := newTransformedLayout(minPre, maxPre, bins, f)
	if err != nil {
		return nil, hferrors.NewLayoutError("transformed", err)
	}
	return &Histogram[T]{
		layout: l,
		counts: make([]uint64, l.numBins()),
	}, nil
}

// NewLog10 creates a histogram with log10-spaced bin boundaries spanning
// [minValue, maxValue). minValue must be positive.
func NewLog10[T Real](minValue, maxValue float64, bins int) (*Histogram[T], error) {
	if !(minValue > 0) {
		return nil, hferrors.NewLayoutError("log10", hferrors.ErrInvalidRange)
	}
	return NewTransformed[T](math.Log10(minValue), math.Log10(maxValue), bins, Exp10)
}

// Consume records one sample. Out-of-range samples are silently dropped
// apart from the discard counter. The auxiliary data is ignored.
func (h *Histogram[T]) Consume(sample T, aux stream.AuxData) {
	v := float64(sample)
	if !h.layout.contains(v) {
		h.mu.Lock()
		h.discarded++
		h.mu.Unlock()
		return
	}

	// The layout is immutable, so the bin lookup can run outside the
	// critical section. Only the counter update needs the lock.
	bin := h.layout.locate(v)

	h.mu.Lock()
	h.counts[bin]++
	h.total++
	h.mu.Unlock()
}

// Bin is one histogram bin in a snapshot.
type Bin struct {
	Left  float64 // Inclusive lower boundary
	Right float64 // Exclusive upper boundary
	Count uint64
}

// Snapshot returns a consistent copy of all bins. Boundaries are read
// without locking since the layout never changes after construction; the
// counters are copied in a single critical section, so the returned counts
// reflect one moment in time.
func (h *Histogram[T]) Snapshot() []Bin {
	counts := h.snapshotCounts()

	bins := make([]Bin, len(counts))
	for i, c := range counts {
		bins[i] = Bin{
			Left:  h.layout.edges[i],
			Right: h.layout.edges[i+1],
			Count: c,
		}
	}
	return bins
}

func (h *Histogram[T]) snapshotCounts() []uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	counts := make([]uint64, len(h.counts))
	copy(counts, h.counts)
	return counts
}

// Clone returns a histogram with the same layout and a copy of the current
// counters. The clone shares no mutable state with the original; both sides
// continue to accumulate independently.
func (h *Histogram[T]) Clone() *Histogram[T] {
	h.mu.Lock()
	defer h.mu.Unlock()

	counts := make([]uint64, len(h.counts))
	copy(counts, h.counts)

	return &Histogram[T]{
		layout:    h.layout.clone(),
		counts:    counts,
		total:     h.total,
		discarded: h.discarded,
	}
}

// NumBins returns the number of bins.
func (h *Histogram[T]) NumBins() int {
	return h.layout.numBins()
}

// Edges returns a copy of the n+1 bin boundaries.
func (h *Histogram[T]) Edges() []float64 {
	edges := make([]float64, len(h.layout.edges))
	copy(edges, h.layout.edges)
	return edges
}

// Total returns the number of samples recorded in bins.
func (h *Histogram[T]) Total() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.total
}

// Discarded returns the number of samples rejected for falling outside the
// value range.
func (h *Histogram[T]) Discarded() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.discarded
}
