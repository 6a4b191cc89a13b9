package hist

import (
	"math"
	"sort"

	"github.com/histflow/histflow/internal/constants"
	hferrors "github.com/histflow/histflow/internal/errors"
)

// layout is an immutable sequence of bin boundaries. A layout with n bins
// holds n+1 strictly increasing boundary values; bin i spans
// [edges[i], edges[i+1]), lower edge inclusive, upper edge exclusive.
//
// Once constructed a layout is never mutated, so it can be read from any
// goroutine without locking.
type layout struct {
	edges []float64
}

// newLinearLayout builds uniform-width bins spanning [minValue, maxValue).
// The first and last boundaries are exactly minValue and maxValue.
func newLinearLayout(minValue, maxValue float64, bins int) (layout, error) {
	if err := validateRange(minValue, maxValue, bins); err != nil {
		return layout{}, err
	}

	edges := uniformGrid(minValue, maxValue, bins)
	if err := checkIncreasing(edges); err != nil {
		return layout{}, err
	}
	return layout{edges: edges}, nil
}

// newTransformedLayout builds bins whose boundaries are f applied to a
// uniform grid over [minPre, maxPre], including both endpoints. The
// transformed final boundary becomes the exclusive upper bound of the
// value range.
func newTransformedLayout(minPre, maxPre float64, bins int, f Transform) (layout, error) {
	if f == nil {
		return layout{}, hferrors.ErrNilTransform
	}
	if err := validateRange(minPre, maxPre, bins); err != nil {
		return layout{}, err
	}

	pre := uniformGrid(minPre, maxPre, bins)
	edges := make([]float64, len(pre))
	for i, x := range pre {
		edges[i] = f(x)
	}
	if err := checkIncreasing(edges); err != nil {
		return layout{}, err
	}
	return layout{edges: edges}, nil
}

// uniformGrid returns bins+1 equally spaced points from lo to hi. The last
// point is pinned to hi so the grid endpoints carry no rounding drift.
func uniformGrid(lo, hi float64, bins int) []float64 {
	width := (hi - lo) / float64(bins)
	grid := make([]float64, bins+1)
	for i := range grid {
		grid[i] = lo + float64(i)*width
	}
	grid[bins] = hi
	return grid
}

func validateRange(lo, hi float64, bins int) error {
	if bins < constants.MinBinCount {
		return hferrors.ErrInvalidBinCount
	}
	if math.IsNaN(lo) || math.IsInf(lo, 0) || math.IsNaN(hi) || math.IsInf(hi, 0) {
		return hferrors.ErrInvalidRange
	}
	if lo >= hi {
		return hferrors.ErrInvalidRange
	}
	return nil
}

func checkIncreasing(edges []float64) error {
	for i, e := range edges {
		if math.IsNaN(e) || math.IsInf(e, 0) {
			return hferrors.ErrInvalidRange
		}
		if i > 0 && edges[i-1] >= e {
			return hferrors.ErrNotIncreasing
		}
	}
	return nil
}

// contains reports whether v falls inside the half-open value range.
// NaN is never contained.
func (l layout) contains(v float64) bool {
	return v >= l.edges[0] && v < l.edges[len(l.edges)-1]
}

// locate returns the index of the bin owning v. A value equal to an
// interior boundary belongs to the bin on its left. Callers must
// range-check v with contains first; locate panics on out-of-range input.
func (l layout) locate(v float64) int {
	if !l.contains(v) {
		panic("hist: locate called with out-of-range value")
	}

	// First boundary >= v. Values on an interior boundary resolve to the
	// boundary itself, so stepping back one lands in the left bin.
	p := sort.SearchFloat64s(l.edges, v)
	if p == 0 {
		return 0
	}
	return p - 1
}

func (l layout) numBins() int {
	return len(l.edges) - 1
}

func (l layout) clone() layout {
	edges := make([]float64, len(l.edges))
	copy(edges, l.edges)
	return layout{edges: edges}
}
