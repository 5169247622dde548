package array

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-irregular/dsp/core"
)

type op int

const (
	opAdd op = iota
	opSub
	opMul
	opDiv
)

// Add returns a + b element-wise.
func (a Array) Add(b Array) (Array, error) { return a.combine(b, opAdd) }

// Sub returns a - b element-wise.
func (a Array) Sub(b Array) (Array, error) { return a.combine(b, opSub) }

// Mul returns a * b element-wise.
func (a Array) Mul(b Array) (Array, error) { return a.combine(b, opMul) }

// Div returns a / b element-wise. Division by zero follows IEEE 754.
func (a Array) Div(b Array) (Array, error) { return a.combine(b, opDiv) }

// AddScalar returns a + s.
func (a Array) AddScalar(s complex128) Array { return a.scalar(s, opAdd) }

// SubScalar returns a - s.
func (a Array) SubScalar(s complex128) Array { return a.scalar(s, opSub) }

// MulScalar returns a * s.
func (a Array) MulScalar(s complex128) Array { return a.scalar(s, opMul) }

// DivScalar returns a / s.
func (a Array) DivScalar(s complex128) Array { return a.scalar(s, opDiv) }

// MulReal multiplies every sample by the matching coefficient, the way a
// taper is applied. It keeps the kind of a.
func (a Array) MulReal(coeffs []float64) (Array, error) {
	if len(coeffs) != a.Len() {
		return Array{}, fmt.Errorf("%w: coefficient length %d != array length %d", core.ErrInvalidArgument, len(coeffs), a.Len())
	}

	if a.kind == KindReal {
		out := make([]float64, len(a.re))
		vecmath.MulBlock(out, a.re, coeffs)

		return Array{kind: KindReal, re: out}, nil
	}

	out := make([]complex128, len(a.cx))
	for i, c := range a.cx {
		out[i] = c * complex(coeffs[i], 0)
	}

	return Array{kind: KindComplex, cx: out}, nil
}

func (a Array) combine(b Array, o op) (Array, error) {
	if a.Len() != b.Len() {
		return Array{}, fmt.Errorf("%w: length mismatch: %d != %d", core.ErrInvalidArgument, a.Len(), b.Len())
	}

	if a.kind == KindReal && b.kind == KindReal {
		out := make([]float64, len(a.re))

		switch o {
		case opAdd:
			copy(out, a.re)
			vecmath.AddBlockInPlace(out, b.re)
		case opMul:
			vecmath.MulBlock(out, a.re, b.re)
		case opSub:
			for i := range out {
				out[i] = a.re[i] - b.re[i]
			}
		case opDiv:
			for i := range out {
				out[i] = a.re[i] / b.re[i]
			}
		}

		return Array{kind: KindReal, re: out}, nil
	}

	out := make([]complex128, a.Len())
	for i := range out {
		out[i] = apply(a.At(i), b.At(i), o)
	}

	return Array{kind: KindComplex, cx: out}, nil
}

func (a Array) scalar(s complex128, o op) Array {
	if a.kind == KindReal && imag(s) == 0 {
		out := make([]float64, len(a.re))
		r := real(s)

		switch o {
		case opMul:
			vecmath.ScaleBlock(out, a.re, r)
		case opDiv:
			vecmath.ScaleBlock(out, a.re, 1/r)
		default:
			for i, v := range a.re {
				out[i] = real(apply(complex(v, 0), s, o))
			}
		}

		return Array{kind: KindReal, re: out}
	}

	out := make([]complex128, a.Len())
	for i := range out {
		out[i] = apply(a.At(i), s, o)
	}

	return Array{kind: KindComplex, cx: out}
}

func apply(x, y complex128, o op) complex128 {
	switch o {
	case opAdd:
		return x + y
	case opSub:
		return x - y
	case opMul:
		return x * y
	default:
		return x / y
	}
}
