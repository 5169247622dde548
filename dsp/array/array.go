package array

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-irregular/dsp/core"
)

// Kind reports the element type held by an Array.
type Kind int

const (
	KindReal Kind = iota
	KindComplex
)

func (k Kind) String() string {
	if k == KindComplex {
		return "complex"
	}

	return "real"
}

// Array is a fixed-length sequence of real or complex samples.
//
// Arrays are values: every arithmetic operation, slice and append returns
// a new Array backed by fresh storage, so an Array handed to a series can be
// shared without defensive copies.
type Array struct {
	kind Kind
	re   []float64
	cx   []complex128
}

// NewReal copies values into a real Array.
func NewReal(values []float64) (Array, error) {
	if len(values) == 0 {
		return Array{}, fmt.Errorf("%w: array must contain at least one sample", core.ErrInvalidArgument)
	}

	return Array{kind: KindReal, re: append([]float64(nil), values...)}, nil
}

// NewComplex copies values into a complex Array.
func NewComplex(values []complex128) (Array, error) {
	if len(values) == 0 {
		return Array{}, fmt.Errorf("%w: array must contain at least one sample", core.ErrInvalidArgument)
	}

	return Array{kind: KindComplex, cx: append([]complex128(nil), values...)}, nil
}

// Zeros returns a real Array of n zeros.
func Zeros(n int) (Array, error) {
	if n <= 0 {
		return Array{}, fmt.Errorf("%w: array length must be > 0: %d", core.ErrInvalidArgument, n)
	}

	return Array{kind: KindReal, re: make([]float64, n)}, nil
}

// Len returns the number of samples.
func (a Array) Len() int {
	if a.kind == KindComplex {
		return len(a.cx)
	}

	return len(a.re)
}

// Kind returns the element type.
func (a Array) Kind() Kind { return a.kind }

// IsComplex reports whether the Array holds complex samples.
func (a Array) IsComplex() bool { return a.kind == KindComplex }

// At returns sample i widened to complex128.
func (a Array) At(i int) complex128 {
	if a.kind == KindComplex {
		return a.cx[i]
	}

	return complex(a.re[i], 0)
}

// Float64s returns a copy of the real samples. Complex arrays return
// ErrTypeMismatch; use Real to project them explicitly.
func (a Array) Float64s() ([]float64, error) {
	if a.kind == KindComplex {
		return nil, fmt.Errorf("%w: complex array has no real representation", core.ErrTypeMismatch)
	}

	return append([]float64(nil), a.re...), nil
}

// Complex128s returns a copy of the samples widened to complex128.
func (a Array) Complex128s() []complex128 {
	if a.kind == KindComplex {
		return append([]complex128(nil), a.cx...)
	}

	out := make([]complex128, len(a.re))
	for i, v := range a.re {
		out[i] = complex(v, 0)
	}

	return out
}

// Real returns the real projection.
func (a Array) Real() Array {
	if a.kind == KindReal {
		return Array{kind: KindReal, re: append([]float64(nil), a.re...)}
	}

	out := make([]float64, len(a.cx))
	for i, c := range a.cx {
		out[i] = real(c)
	}

	return Array{kind: KindReal, re: out}
}

// Imag returns the imaginary projection. Real arrays yield zeros.
func (a Array) Imag() Array {
	out := make([]float64, a.Len())
	if a.kind == KindComplex {
		for i, c := range a.cx {
			out[i] = imag(c)
		}
	}

	return Array{kind: KindReal, re: out}
}

// Abs returns the element-wise magnitude as a real Array.
func (a Array) Abs() Array {
	out := make([]float64, a.Len())
	if a.kind == KindReal {
		for i, v := range a.re {
			out[i] = math.Abs(v)
		}

		return Array{kind: KindReal, re: out}
	}

	re := a.Real().re
	im := a.Imag().re
	vecmath.Magnitude(out, re, im)

	return Array{kind: KindReal, re: out}
}

// Min returns the smallest real sample.
func (a Array) Min() (float64, error) {
	if a.kind == KindComplex {
		return 0, fmt.Errorf("%w: min is undefined for complex data", core.ErrTypeMismatch)
	}

	min, _, _, _ := core.MinMax(a.re)

	return min, nil
}

// Max returns the largest real sample.
func (a Array) Max() (float64, error) {
	if a.kind == KindComplex {
		return 0, fmt.Errorf("%w: max is undefined for complex data", core.ErrTypeMismatch)
	}

	_, _, max, _ := core.MinMax(a.re)

	return max, nil
}

// Slice returns a copy of samples [i, j).
func (a Array) Slice(i, j int) (Array, error) {
	if i < 0 || j > a.Len() || i >= j {
		return Array{}, fmt.Errorf("%w: slice [%d:%d] out of range for length %d", core.ErrInvalidArgument, i, j, a.Len())
	}

	if a.kind == KindComplex {
		return Array{kind: KindComplex, cx: append([]complex128(nil), a.cx[i:j]...)}, nil
	}

	return Array{kind: KindReal, re: append([]float64(nil), a.re[i:j]...)}, nil
}

// Append returns a new Array one sample longer. Appending a value with a
// non-zero imaginary part to a real Array promotes it to complex.
func (a Array) Append(v complex128) Array {
	if a.kind == KindReal && imag(v) == 0 {
		out := make([]float64, len(a.re), len(a.re)+1)
		copy(out, a.re)

		return Array{kind: KindReal, re: append(out, real(v))}
	}

	out := a.Complex128s()

	return Array{kind: KindComplex, cx: append(out, v)}
}

// Equal reports whether a and b have the same kind, length and samples.
func (a Array) Equal(b Array) bool {
	if a.kind != b.kind || a.Len() != b.Len() {
		return false
	}

	if a.kind == KindReal {
		return core.SliceEqual(a.re, b.re)
	}

	for i := range a.cx {
		if a.cx[i] != b.cx[i] {
			return false
		}
	}

	return true
}
