package grid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-irregular/dsp/core"
)

// Sizing defaults for frequency grids derived from a time grid.
const (
	DefaultSamplesPerPeak = 5
	DefaultNyquistFactor  = 2
)

// Frequencies is an immutable, strictly ascending frequency axis with its
// raw bin spacing and oversampling factor.
type Frequencies struct {
	values []float64
	df     float64
	spp    float64
	zero   int
}

// FrequencyOption configures frequency grid construction.
type FrequencyOption func(*frequencyConfig)

type frequencyConfig struct {
	df     float64
	dfSet  bool
	spp    float64
	minF   float64
	maxF   float64
	maxSet bool
	nyq    float64
	n      int
}

func defaultFrequencyConfig() frequencyConfig {
	return frequencyConfig{
		nyq: DefaultNyquistFactor,
	}
}

// WithDF overrides the raw bin spacing.
func WithDF(df float64) FrequencyOption {
	return func(c *frequencyConfig) {
		c.df = df
		c.dfSet = true
	}
}

// WithSamplesPerPeak sets the oversampling factor.
func WithSamplesPerPeak(spp float64) FrequencyOption {
	return func(c *frequencyConfig) {
		if spp > 0 {
			c.spp = spp
		}
	}
}

// WithMinimumFrequency sets the first grid frequency.
func WithMinimumFrequency(f float64) FrequencyOption {
	return func(c *frequencyConfig) {
		c.minF = f
	}
}

// WithMaximumFrequency sets the last grid frequency.
func WithMaximumFrequency(f float64) FrequencyOption {
	return func(c *frequencyConfig) {
		c.maxF = f
		c.maxSet = true
	}
}

// WithNyquistFactor scales the average Nyquist estimate when no maximum
// frequency is given.
func WithNyquistFactor(factor float64) FrequencyOption {
	return func(c *frequencyConfig) {
		if factor > 0 {
			c.nyq = factor
		}
	}
}

// WithNSamples fixes the number of frequencies when no maximum frequency
// is given.
func WithNSamples(n int) FrequencyOption {
	return func(c *frequencyConfig) {
		if n > 0 {
			c.n = n
		}
	}
}

func applyFrequencyOptions(opts []FrequencyOption) frequencyConfig {
	cfg := defaultFrequencyConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// NewFrequencies wraps explicit frequency values. df defaults to the
// spacing of the first two entries and samples per peak to 1.
func NewFrequencies(values []float64, opts ...FrequencyOption) (*Frequencies, error) {
	cfg := applyFrequencyOptions(opts)

	if len(values) == 0 {
		return nil, fmt.Errorf("%w: frequency grid must contain at least one sample", core.ErrInvalidArgument)
	}

	df := cfg.df
	if !cfg.dfSet && len(values) > 1 {
		df = values[1] - values[0]
	}

	spp := cfg.spp
	if spp == 0 {
		spp = 1
	}

	return newFrequencies(append([]float64(nil), values...), df, spp)
}

// CopyFrequencies wraps values with the spacing and oversampling of src,
// so BasicDF is preserved.
func CopyFrequencies(src *Frequencies, values []float64) (*Frequencies, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: source frequency grid is nil", core.ErrPreconditionMissing)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("%w: frequency grid must contain at least one sample", core.ErrInvalidArgument)
	}

	return newFrequencies(append([]float64(nil), values...), src.df, src.spp)
}

// FrequenciesFromTimes sizes an oversampled grid from the span and count
// of a time grid:
//
//	df = 1 / duration / samplesPerPeak
//	maximum = nyquistFactor * 0.5 * n / duration   (unless given)
//	len = 1 + round((maximum - minimum) / df)
func FrequenciesFromTimes(times *Times, opts ...FrequencyOption) (*Frequencies, error) {
	if times == nil {
		return nil, fmt.Errorf("%w: input times are required", core.ErrPreconditionMissing)
	}

	cfg := applyFrequencyOptions(opts)
	if cfg.spp == 0 {
		cfg.spp = DefaultSamplesPerPeak
	}

	duration := times.Duration()
	if duration <= 0 {
		return nil, fmt.Errorf("%w: time grid duration must be > 0: %f", core.ErrInvalidArgument, duration)
	}

	df := 1 / duration / cfg.spp

	n := cfg.n
	switch {
	case cfg.maxSet:
		n = sizeFor(cfg.minF, cfg.maxF, df)
	case n == 0:
		averageNyquist := 0.5 * float64(times.Len()) / duration
		n = sizeFor(cfg.minF, cfg.nyq*averageNyquist, df)
	}

	if n <= 0 {
		return nil, fmt.Errorf("%w: maximum frequency %f below minimum %f", core.ErrInvalidArgument, cfg.maxF, cfg.minF)
	}

	return newFrequencies(linear(cfg.minF, df, n), df, cfg.spp)
}

// FrequenciesFromBasicDF builds n frequencies starting at minimum whose
// independent-bin spacing is basicDF, oversampled by samplesPerPeak.
func FrequenciesFromBasicDF(basicDF float64, n int, minimum, samplesPerPeak float64) (*Frequencies, error) {
	if basicDF <= 0 {
		return nil, fmt.Errorf("%w: delta_f must be a positive number: %f", core.ErrInvalidArgument, basicDF)
	}

	if n <= 0 {
		return nil, fmt.Errorf("%w: n must be > 0: %d", core.ErrInvalidArgument, n)
	}

	if samplesPerPeak <= 0 {
		samplesPerPeak = 1
	}

	df := basicDF / samplesPerPeak

	return newFrequencies(linear(minimum, df, n), df, samplesPerPeak)
}

// Symmetric builds a grid from -maximum to +maximum through an exact zero.
func Symmetric(maximum, df, samplesPerPeak float64) (*Frequencies, error) {
	if df <= 0 || maximum <= 0 {
		return nil, fmt.Errorf("%w: symmetric grid needs df > 0 and maximum > 0: %f %f", core.ErrInvalidArgument, df, maximum)
	}

	if samplesPerPeak <= 0 {
		samplesPerPeak = 1
	}

	half := int(math.Round(maximum / df))
	values := make([]float64, 2*half+1)
	for i := range values {
		values[i] = float64(i-half) * df
	}

	return newFrequencies(values, df, samplesPerPeak)
}

func sizeFor(minimum, maximum, df float64) int {
	return 1 + int(math.Round((maximum-minimum)/df))
}

func linear(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + step*float64(i)
	}

	return out
}

func newFrequencies(values []float64, df, spp float64) (*Frequencies, error) {
	if spp < 1 {
		return nil, fmt.Errorf("%w: samples per peak must be >= 1: %f", core.ErrInvalidArgument, spp)
	}

	zero := -1
	for i, v := range values {
		if i > 0 && !(v > values[i-1]) {
			return nil, fmt.Errorf("%w: frequencies must be strictly increasing at index %d", core.ErrInvalidArgument, i)
		}

		if v == 0 {
			zero = i
		}
	}

	return &Frequencies{values: values, df: df, spp: spp, zero: zero}, nil
}

// Len returns the number of frequencies.
func (f *Frequencies) Len() int { return len(f.values) }

// At returns frequency i.
func (f *Frequencies) At(i int) float64 { return f.values[i] }

// Values returns a copy of the frequencies.
func (f *Frequencies) Values() []float64 { return append([]float64(nil), f.values...) }

// DF returns the raw bin spacing.
func (f *Frequencies) DF() float64 { return f.df }

// SamplesPerPeak returns the oversampling factor.
func (f *Frequencies) SamplesPerPeak() float64 { return f.spp }

// BasicDF returns DF * SamplesPerPeak, the spacing of independent bins.
func (f *Frequencies) BasicDF() float64 { return f.df * f.spp }

// Min returns the lowest frequency.
func (f *Frequencies) Min() float64 { return f.values[0] }

// Max returns the highest frequency.
func (f *Frequencies) Max() float64 { return f.values[len(f.values)-1] }

// CheckNSST reports whether the grid satisfies the Nyquist-Shannon
// sampling theorem for a bandwidth b, i.e. 2*b < Max().
func (f *Frequencies) CheckNSST(b float64) bool {
	return 2*b < f.Max()
}

// HasZero reports whether the grid contains an exact zero frequency.
func (f *Frequencies) HasZero() bool { return f.zero >= 0 }

// ZeroIndex returns the index of the zero frequency.
func (f *Frequencies) ZeroIndex() (int, bool) { return f.zero, f.zero >= 0 }

// SplitByZero returns copies of the frequencies strictly below and strictly
// above zero. ok is false when the grid has no zero entry.
func (f *Frequencies) SplitByZero() (negative, positive []float64, ok bool) {
	if f.zero < 0 {
		return nil, nil, false
	}

	negative = append([]float64(nil), f.values[:f.zero]...)
	positive = append([]float64(nil), f.values[f.zero+1:]...)

	return negative, positive, true
}

// Equal reports whether both grids hold the same values, spacing and
// oversampling factor.
func (f *Frequencies) Equal(o *Frequencies) bool {
	if f == nil || o == nil {
		return f == o
	}

	return f.df == o.df && f.spp == o.spp &&
		len(f.values) == len(o.values) && floats.Equal(f.values, o.values)
}
