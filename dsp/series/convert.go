package series

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-irregular/dsp/array"
	"github.com/cwbudde/algo-irregular/dsp/core"
	"github.com/cwbudde/algo-irregular/dsp/grid"
	"github.com/cwbudde/algo-irregular/dsp/nfft"
)

// Method selects a domain conversion strategy.
type Method int

const (
	// MethodRegression fits a sinusoidal dictionary.
	MethodRegression Method = iota
	// MethodNFFT solves a non-uniform Fourier transform.
	MethodNFFT
)

var methodNames = map[Method]string{
	MethodRegression: "regression",
	MethodNFFT:       "nfft",
}

func (m Method) String() string {
	if s, ok := methodNames[m]; ok {
		return s
	}

	return fmt.Sprintf("method(%d)", int(m))
}

// ParseMethod resolves "regression" or "nfft".
func ParseMethod(name string) (Method, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for m, s := range methodNames {
		if s == name {
			return m, nil
		}
	}

	return 0, fmt.Errorf("%w: unknown conversion method %q", core.ErrInvalidArgument, name)
}

// Regressor fits and evaluates a sinusoidal dictionary. It is satisfied by
// *regression.Regressor.
type Regressor interface {
	// Frequencies and Times describe the cached dictionary; nil when unset.
	Frequencies() *grid.Frequencies
	Times() *grid.Times
	SetDictionary(times *grid.Times, freqs *grid.Frequencies) error
	// ForwardOn fits data on a fresh dictionary without replacing the
	// cached one.
	ForwardOn(times *grid.Times, freqs *grid.Frequencies, data []float64) ([]complex128, error)
	// Inverse evaluates coefficients on the cached dictionary's times.
	Inverse(coeffs []complex128) ([]float64, error)
}

// TransformSolver moves values between non-uniform positions and
// frequencies. It is satisfied by *nfft.Transformer.
type TransformSolver interface {
	Forward(positions, freqs []float64, values []complex128) ([]complex128, error)
	Inverse(positions, freqs []float64, coeffs []complex128) ([]complex128, error)
}

// ConvertOptions controls a domain conversion. Fields a method does not
// use are ignored.
type ConvertOptions struct {
	Method Method
	// Window multiplies the source samples before conversion.
	Window []float64

	// Regressor is required by MethodRegression.
	Regressor Regressor
	// Frequencies is the target grid of a regression; it defaults to the
	// regressor's grid.
	Frequencies *grid.Frequencies

	// Times is the target grid of a conversion to the time domain. NFFT
	// requires it; regression defaults to the regressor's grid.
	Times *grid.Times

	// NF is the NFFT coefficient count; it defaults to the series length.
	NF int
	// Tolerance is the NFFT residual bound; zero selects nfft.DefaultTolerance.
	Tolerance float64
	// Transform overrides the NFFT solver.
	Transform TransformSolver
	// Logger receives solver warnings; nil selects the logrus standard logger.
	Logger logrus.FieldLogger
}

// Converter is one domain conversion strategy.
type Converter interface {
	ToFrequency(ts *TimeSeries, data []float64, opts ConvertOptions) (*FrequencySeries, error)
	ToTime(fs *FrequencySeries, data []complex128, opts ConvertOptions) (*TimeSeries, error)
}

// ConverterFor returns the strategy implementing m.
func ConverterFor(m Method) (Converter, error) {
	switch m {
	case MethodRegression:
		return regressionConverter{}, nil
	case MethodNFFT:
		return nfftConverter{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown conversion method %d", core.ErrInvalidArgument, int(m))
	}
}

// ToFrequencySeries converts a real series to its spectrum.
func (ts *TimeSeries) ToFrequencySeries(opts ConvertOptions) (*FrequencySeries, error) {
	if ts.data.IsComplex() {
		return nil, fmt.Errorf("%w: conversion is defined for real time series only", core.ErrTypeMismatch)
	}

	conv, err := ConverterFor(opts.Method)
	if err != nil {
		return nil, err
	}

	src := ts
	if opts.Window != nil {
		if src, err = ts.Mul(opts.Window); err != nil {
			return nil, err
		}
	}

	values, err := src.data.Float64s()
	if err != nil {
		return nil, err
	}

	return conv.ToFrequency(src, values, opts)
}

// ToTimeSeries converts a spectrum back to samples.
func (fs *FrequencySeries) ToTimeSeries(opts ConvertOptions) (*TimeSeries, error) {
	conv, err := ConverterFor(opts.Method)
	if err != nil {
		return nil, err
	}

	src := fs
	if opts.Window != nil {
		if src, err = fs.Mul(opts.Window); err != nil {
			return nil, err
		}
	}

	return conv.ToTime(src, src.data.Complex128s(), opts)
}

type regressionConverter struct{}

func (regressionConverter) ToFrequency(ts *TimeSeries, data []float64, opts ConvertOptions) (*FrequencySeries, error) {
	reg := opts.Regressor
	if reg == nil {
		return nil, fmt.Errorf("%w: regression requires a regressor", core.ErrInvalidArgument)
	}

	freqs := opts.Frequencies
	if freqs == nil {
		freqs = reg.Frequencies()
	}

	if freqs == nil {
		return nil, fmt.Errorf("%w: no frequency grid given and the regressor has none", core.ErrPreconditionMissing)
	}

	coeffs, err := reg.ForwardOn(ts.times, freqs, data)
	if err != nil {
		return nil, err
	}

	out, err := array.NewComplex(coeffs)
	if err != nil {
		return nil, err
	}

	return NewFrequencySeries(out, freqs, ts.Epoch())
}

func (regressionConverter) ToTime(fs *FrequencySeries, data []complex128, opts ConvertOptions) (*TimeSeries, error) {
	reg := opts.Regressor
	if reg == nil {
		return nil, fmt.Errorf("%w: regression requires a regressor", core.ErrInvalidArgument)
	}

	if opts.Times != nil || !fs.freqs.Equal(reg.Frequencies()) {
		times := opts.Times
		if times == nil {
			times = reg.Times()
		}

		if times == nil {
			return nil, fmt.Errorf("%w: no time grid given and the regressor has none", core.ErrPreconditionMissing)
		}

		if err := reg.SetDictionary(times, fs.freqs); err != nil {
			return nil, err
		}
	}

	values, err := reg.Inverse(data)
	if err != nil {
		return nil, err
	}

	return NewRealTimeSeries(values, reg.Times())
}

type nfftConverter struct{}

func (nfftConverter) solver(opts ConvertOptions) TransformSolver {
	if opts.Transform != nil {
		return opts.Transform
	}

	return nfft.NewTransformer(nfft.WithTolerance(opts.Tolerance), nfft.WithLogger(opts.Logger))
}

// ToFrequency solves for NF coefficients at k/period, k = -NF/2 ... NF-NF/2-1,
// where period = duration * N/(N-1) is the span one regular sample beyond
// the last, so the first and last timestamps do not alias onto each other.
// The result's DeltaF is therefore 1/period, not 1/duration, and its
// Duration reports period.
func (c nfftConverter) ToFrequency(ts *TimeSeries, data []float64, opts ConvertOptions) (*FrequencySeries, error) {
	n := ts.Len()
	duration := ts.Duration()

	if n < 2 || duration <= 0 {
		return nil, fmt.Errorf("%w: nfft needs at least two distinct timestamps", core.ErrInvalidArgument)
	}

	nf := opts.NF
	if nf <= 0 {
		nf = n
	}

	period := duration * float64(n) / float64(n-1)

	freqs, err := grid.NewFrequencies(nfft.ShiftedFFTFreq(nf, period/float64(nf)), grid.WithDF(1/period))
	if err != nil {
		return nil, err
	}

	epoch := ts.Epoch()
	positions := ts.times.Shifted(epoch).Values()

	values := make([]complex128, n)
	for i, v := range data {
		values[i] = complex(v, 0)
	}

	coeffs, err := c.solver(opts).Forward(positions, freqs.Values(), values)
	if err != nil {
		return nil, err
	}

	out, err := array.NewComplex(coeffs)
	if err != nil {
		return nil, err
	}

	return NewFrequencySeries(out, freqs, epoch)
}

// ToTime evaluates the coefficients at opts.Times relative to the epoch and
// keeps the real part.
func (c nfftConverter) ToTime(fs *FrequencySeries, data []complex128, opts ConvertOptions) (*TimeSeries, error) {
	if opts.Times == nil {
		return nil, fmt.Errorf("%w: nfft conversion to the time domain requires target times", core.ErrInvalidArgument)
	}

	positions := opts.Times.Shifted(fs.epoch).Values()

	values, err := c.solver(opts).Inverse(positions, fs.freqs.Values(), data)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = real(v)
	}

	return NewRealTimeSeries(out, opts.Times)
}
