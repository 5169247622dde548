package match

import (
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/cwbudde/algo-fft"

	"github.com/cwbudde/algo-irregular/dsp/core"
)

// Result holds the outcome of a match.
type Result struct {
	// Match is the normalized overlap in [0, 1].
	Match float64
	// Shift is the lag of the best overlap in units of 1/FFTSize of the
	// series duration.
	Shift int
	// FFTSize is the padded length the shift search ran on.
	FFTSize int
}

// Match compares spectra a and b, optionally whitened by psd. psd may be
// nil; otherwise it must have the same length and be strictly positive.
func Match(a, b []complex128, psd []float64) (Result, error) {
	if len(a) == 0 || len(b) == 0 {
		return Result{}, fmt.Errorf("%w: match requires non-empty spectra", core.ErrInvalidArgument)
	}

	if len(a) != len(b) {
		return Result{}, fmt.Errorf("%w: spectra lengths differ: %d != %d", core.ErrInvalidArgument, len(a), len(b))
	}

	if psd != nil && len(psd) != len(a) {
		return Result{}, fmt.Errorf("%w: psd length %d != spectrum length %d", core.ErrInvalidArgument, len(psd), len(a))
	}

	for i, s := range psd {
		if !(s > 0) {
			return Result{}, fmt.Errorf("%w: psd must be > 0 at index %d: %f", core.ErrInvalidArgument, i, s)
		}
	}

	fftSize := nextPowerOf2(len(a))
	cross := make([]complex128, fftSize)

	var aa, bb float64
	for k := range a {
		w := 1.0
		if psd != nil {
			w = 1 / psd[k]
		}

		cross[k] = cmplx.Conj(a[k]) * b[k] * complex(w, 0)
		aa += w * sqAbs(a[k])
		bb += w * sqAbs(b[k])
	}

	norm := math.Sqrt(aa * bb)
	if norm == 0 {
		return Result{FFTSize: fftSize}, nil
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Result{}, fmt.Errorf("match: fft plan: %w", err)
	}

	lags := make([]complex128, fftSize)
	if err := plan.Inverse(lags, cross); err != nil {
		return Result{}, fmt.Errorf("match: inverse FFT failed: %w", err)
	}

	best, shift := 0.0, 0
	for m, z := range lags {
		if v := cmplx.Abs(z); v > best {
			best, shift = v, m
		}
	}

	// Inverse is normalized by 1/fftSize.
	value := best * float64(fftSize) / norm

	return Result{Match: math.Min(value, 1), Shift: shift, FFTSize: fftSize}, nil
}

// Overlap returns the unshifted, normalized inner product Re<a, b>.
func Overlap(a, b []complex128, psd []float64) (float64, error) {
	if len(a) == 0 || len(a) != len(b) || (psd != nil && len(psd) != len(a)) {
		return 0, fmt.Errorf("%w: overlap requires equal, non-empty lengths", core.ErrInvalidArgument)
	}

	var ab complex128
	var aa, bb float64

	for k := range a {
		w := 1.0
		if psd != nil {
			if !(psd[k] > 0) {
				return 0, fmt.Errorf("%w: psd must be > 0 at index %d: %f", core.ErrInvalidArgument, k, psd[k])
			}

			w = 1 / psd[k]
		}

		ab += cmplx.Conj(a[k]) * b[k] * complex(w, 0)
		aa += w * sqAbs(a[k])
		bb += w * sqAbs(b[k])
	}

	if aa == 0 || bb == 0 {
		return 0, nil
	}

	return real(ab) / math.Sqrt(aa*bb), nil
}

func sqAbs(z complex128) float64 {
	return real(z)*real(z) + imag(z)*imag(z)
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
