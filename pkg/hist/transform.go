package hist

import "math"

// Transform maps a pre-image boundary to its final position on the value
// axis. It must be strictly increasing over the pre-image range; layouts
// built from a non-increasing transform are rejected at construction.
type Transform func(x float64) float64

// Exp10 is the transform 10^x. Applied to a uniform pre-image grid it
// produces logarithmically spaced bin boundaries.
func Exp10(x float64) float64 {
	return math.Pow(10, x)
}
