package nfft

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-irregular/dsp/core"
)

// Plan is a direct non-uniform transform between fixed positions and
// frequencies. A Plan is immutable and safe for concurrent use.
type Plan struct {
	positions []float64
	freqs     []float64
}

// NewPlan copies positions and frequencies into a plan.
func NewPlan(positions, freqs []float64) (*Plan, error) {
	if len(positions) == 0 {
		return nil, fmt.Errorf("%w: nfft plan requires at least one position", core.ErrInvalidArgument)
	}

	if len(freqs) == 0 {
		return nil, fmt.Errorf("%w: nfft plan requires at least one frequency", core.ErrInvalidArgument)
	}

	return &Plan{
		positions: append([]float64(nil), positions...),
		freqs:     append([]float64(nil), freqs...),
	}, nil
}

// M returns the number of positions.
func (p *Plan) M() int { return len(p.positions) }

// N returns the number of frequencies.
func (p *Plan) N() int { return len(p.freqs) }

// Trafo evaluates the coefficients at every position.
func (p *Plan) Trafo(coeffs []complex128) ([]complex128, error) {
	if len(coeffs) != len(p.freqs) {
		return nil, fmt.Errorf("%w: trafo expects %d coefficients, got %d", core.ErrInvalidArgument, len(p.freqs), len(coeffs))
	}

	out := make([]complex128, len(p.positions))
	p.trafo(out, coeffs)

	return out, nil
}

// Adjoint projects values at the positions back onto the frequencies.
func (p *Plan) Adjoint(values []complex128) ([]complex128, error) {
	if len(values) != len(p.positions) {
		return nil, fmt.Errorf("%w: adjoint expects %d values, got %d", core.ErrInvalidArgument, len(p.positions), len(values))
	}

	out := make([]complex128, len(p.freqs))
	p.adjoint(out, values)

	return out, nil
}

func (p *Plan) trafo(dst, coeffs []complex128) {
	for j, x := range p.positions {
		var acc complex128
		for k, f := range p.freqs {
			s, c := math.Sincos(2 * math.Pi * f * x)
			acc += coeffs[k] * complex(c, s)
		}

		dst[j] = acc
	}
}

func (p *Plan) adjoint(dst, values []complex128) {
	for k, f := range p.freqs {
		var acc complex128
		for j, x := range p.positions {
			s, c := math.Sincos(2 * math.Pi * f * x)
			acc += values[j] * complex(c, -s)
		}

		dst[k] = acc
	}
}

// FFTFreq returns the sample frequencies of an n-point DFT with sample
// spacing d, in the usual order: zero, positive, then negative.
func FFTFreq(n int, d float64) []float64 {
	out := make([]float64, n)
	half := (n-1)/2 + 1

	for i := 0; i < half; i++ {
		out[i] = float64(i) / (d * float64(n))
	}

	for i := half; i < n; i++ {
		out[i] = float64(i-n) / (d * float64(n))
	}

	return out
}

// ShiftedFFTFreq returns FFTFreq(n, d) reordered ascending, so zero sits at
// index n/2.
func ShiftedFFTFreq(n int, d float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i-n/2) / (d * float64(n))
	}

	return out
}
