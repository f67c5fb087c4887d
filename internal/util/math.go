package util

import (
	"golang.org/x/exp/constraints"
	"math"
)

// Coerce returns a value that is at least min and at most max
func Coerce[T constraints.Ordered](value, min, max T) T {
	if value > max {
		return max
	}
	if value < min {
		return min
	}
	return value
}

// Avg calculates the average of all values in the given array
func Avg(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < len(values); i++ {
		sum += values[i]
	}
	return sum / (float64(len(values)))
}

// SignBitDiffers reports whether a and b carry a different sign bit.
// Zero counts with its sign bit, so +0 and -0 differ.
func SignBitDiffers(a, b float64) bool {
	return math.Signbit(a) != math.Signbit(b)
}

// StrictlySameSign reports whether a and b are both strictly positive
// or both strictly negative.
func StrictlySameSign(a, b float64) bool {
	return (a > 0 && b > 0) || (a < 0 && b < 0)
}

// Round rounds value to the given number of decimal places
func Round(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}
