package core

import "math"

// SliceEqual reports whether a and b have the same length and identical
// elements. NaN never compares equal.
func SliceEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// MinMax returns the smallest and largest value of x together with their
// positions. It returns zeros for an empty slice.
func MinMax(x []float64) (min float64, minPos int, max float64, maxPos int) {
	if len(x) == 0 {
		return 0, 0, 0, 0
	}

	min, max = x[0], x[0]
	for i, v := range x[1:] {
		if v < min {
			min, minPos = v, i+1
		}

		if v > max {
			max, maxPos = v, i+1
		}
	}

	return min, minPos, max, maxPos
}

// LinearPowerToDB converts linear power to dB (10*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearPowerToDB(power float64) float64 {
	if power < 0 {
		return math.NaN()
	}

	if power == 0 {
		return math.Inf(-1)
	}

	return 10 * math.Log10(power)
}
