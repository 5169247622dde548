package testutil

import (
	"fmt"
	"math"
	"math/cmplx"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

// near reports whether got is within eps of want, absolutely or relative
// to |want|. NaN matches NaN and an infinity matches the same infinity, so
// spectra with empty or divergent bins compare position by position.
func near(got, want, eps float64) bool {
	if math.IsNaN(got) || math.IsNaN(want) {
		return math.IsNaN(got) && math.IsNaN(want)
	}

	return scalar.EqualWithinAbsOrRel(got, want, eps, eps)
}

func nearComplex(got, want complex128, eps float64) bool {
	if cmplx.IsNaN(got) || cmplx.IsNaN(want) {
		return cmplx.IsNaN(got) && cmplx.IsNaN(want)
	}

	if got == want {
		return true
	}

	d := cmplx.Abs(got - want)

	return d <= eps || d <= eps*cmplx.Abs(want)
}

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair is further apart than eps, absolutely and relative to
// the expected value.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	requireLen(t, len(got), len(want))

	for i := range got {
		if !near(got[i], want[i], eps) {
			t.Fatalf("bin %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], math.Abs(got[i]-want[i]), eps)
		}
	}
}

// RequireComplexNearlyEqual is RequireSliceNearlyEqual for complex
// coefficients, using the modulus of the difference.
func RequireComplexNearlyEqual(t *testing.T, got, want []complex128, eps float64) {
	t.Helper()
	requireLen(t, len(got), len(want))

	for i := range got {
		if !nearComplex(got[i], want[i], eps) {
			t.Fatalf("coefficient %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], cmplx.Abs(got[i]-want[i]), eps)
		}
	}
}

func requireLen(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Fatalf("length mismatch: got %d, want %d", got, want)
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("bin %d: non-finite value %v", i, v)
		}
	}
}

// MaxAbsDiff returns the largest absolute difference between two slices.
// Positions where both hold NaN or the same infinity count as equal; a
// non-finite value opposite a finite one yields +Inf.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}

	maxDiff := 0.0
	for i := range a {
		if near(a[i], b[i], 0) {
			continue
		}

		d := math.Abs(a[i] - b[i])
		if math.IsNaN(d) {
			d = math.Inf(1)
		}

		maxDiff = math.Max(maxDiff, d)
	}

	return maxDiff, nil
}
