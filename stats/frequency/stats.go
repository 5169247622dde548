// Package frequency summarizes a power spectrum sampled on an explicit,
// possibly non-uniform frequency axis.
//
//nolint:revive
package frequency

import (
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-irregular/dsp/core"
	"github.com/cwbudde/algo-irregular/dsp/series"
)

// DefaultRolloff is the energy fraction used by Calculate for Rolloff.
const DefaultRolloff = 0.85

// Stats holds frequency-domain statistics of a power spectrum.
type Stats struct {
	BinCount   int
	Sum        float64 // sum of power
	Max        float64
	MaxBin     int
	PeakFreq   float64
	Max_dB     float64
	Min        float64
	MinBin     int
	Average    float64
	Average_dB float64
	// Spectral shape descriptors
	Centroid  float64 // power-weighted mean frequency
	Spread    float64 // power-weighted standard deviation around Centroid
	Flatness  float64 // geometric / arithmetic mean, 0..1
	Rolloff   float64 // frequency below which 85% of the power lies
	Bandwidth float64 // half-power width around the peak
}

// Peak is a local maximum of a spectrum.
type Peak struct {
	Bin   int
	Freq  float64
	Power float64
}

func check(power, freqs []float64) error {
	if len(power) == 0 {
		return fmt.Errorf("%w: spectrum must contain at least one bin", core.ErrInvalidArgument)
	}

	if len(power) != len(freqs) {
		return fmt.Errorf("%w: power/frequency length mismatch: %d != %d", core.ErrInvalidArgument, len(power), len(freqs))
	}

	for i, p := range power {
		if p < 0 || math.IsNaN(p) {
			return fmt.Errorf("%w: power must be non-negative at bin %d: %f", core.ErrInvalidArgument, i, p)
		}
	}

	return nil
}

// Calculate computes all statistics of power sampled at freqs. Power is
// linear (not dB) and non-negative.
func Calculate(power, freqs []float64) (Stats, error) {
	if err := check(power, freqs); err != nil {
		return Stats{}, err
	}

	var s Stats
	s.BinCount = len(power)
	s.Sum = floats.Sum(power)
	s.MaxBin = floats.MaxIdx(power)
	s.Max = power[s.MaxBin]
	s.PeakFreq = freqs[s.MaxBin]
	s.Max_dB = core.LinearPowerToDB(s.Max)
	s.MinBin = floats.MinIdx(power)
	s.Min = power[s.MinBin]
	s.Average = s.Sum / float64(s.BinCount)
	s.Average_dB = core.LinearPowerToDB(s.Average)

	s.Centroid, s.Spread = moments(power, freqs, s.Sum)
	s.Flatness = flatness(power)
	s.Rolloff = rolloff(power, freqs, DefaultRolloff, s.Sum)
	s.Bandwidth = bandwidth(power, freqs, s.MaxBin)

	return s, nil
}

// CalculateFromComplex converts coefficients to power |c|^2 and delegates
// to Calculate.
func CalculateFromComplex(coeffs []complex128, freqs []float64) (Stats, error) {
	re := make([]float64, len(coeffs))
	im := make([]float64, len(coeffs))
	for i, c := range coeffs {
		re[i], im[i] = real(c), imag(c)
	}

	power := make([]float64, len(coeffs))
	vecmath.Power(power, re, im)

	return Calculate(power, freqs)
}

// FromSeries computes the statistics of a frequency series. Complex
// series are reduced to power first.
func FromSeries(fs *series.FrequencySeries) (Stats, error) {
	if fs == nil {
		return Stats{}, fmt.Errorf("%w: frequency series is required", core.ErrInvalidArgument)
	}

	freqs := fs.Frequencies().Values()
	if fs.Data().IsComplex() {
		return CalculateFromComplex(fs.Data().Complex128s(), freqs)
	}

	power, err := fs.Data().Float64s()
	if err != nil {
		return Stats{}, err
	}

	return Calculate(power, freqs)
}

// Centroid returns the power-weighted mean frequency.
func Centroid(power, freqs []float64) (float64, error) {
	if err := check(power, freqs); err != nil {
		return 0, err
	}

	c, _ := moments(power, freqs, floats.Sum(power))

	return c, nil
}

func moments(power, freqs []float64, sum float64) (centroid, spread float64) {
	if sum == 0 {
		return 0, 0
	}

	return stat.PopMeanStdDev(freqs, power)
}

// Flatness returns the spectral flatness (Wiener entropy) in 0..1. If any
// bin is zero the geometric mean, and hence the flatness, is zero.
func Flatness(power []float64) float64 {
	return flatness(power)
}

func flatness(power []float64) float64 {
	if len(power) == 0 {
		return 0
	}

	mean := stat.Mean(power, nil)
	if mean == 0 || floats.Min(power) <= 0 {
		return 0
	}

	return stat.GeometricMean(power, nil) / mean
}

// Rolloff returns the first frequency at which the cumulative power
// reaches percent (0..1) of the total.
func Rolloff(power, freqs []float64, percent float64) (float64, error) {
	if err := check(power, freqs); err != nil {
		return 0, err
	}

	return rolloff(power, freqs, percent, floats.Sum(power)), nil
}

func rolloff(power, freqs []float64, percent, total float64) float64 {
	if total == 0 {
		return freqs[0]
	}

	threshold := percent * total
	cum := 0.0
	for i, v := range power {
		cum += v
		if cum >= threshold {
			return freqs[i]
		}
	}

	return freqs[len(freqs)-1]
}

// Bandwidth returns the half-power width around the spectral peak,
// interpolating linearly between bins. The edges of the axis bound it.
func Bandwidth(power, freqs []float64) (float64, error) {
	if err := check(power, freqs); err != nil {
		return 0, err
	}

	return bandwidth(power, freqs, floats.MaxIdx(power)), nil
}

func bandwidth(power, freqs []float64, peak int) float64 {
	n := len(power)
	if n < 2 || power[peak] == 0 {
		return 0
	}

	threshold := power[peak] / 2

	lower := freqs[0]
	for i := peak; i >= 1; i-- {
		if power[i-1] <= threshold && power[i] > threshold {
			lower = interpFreq(freqs[i-1], freqs[i], power[i-1], power[i], threshold)
			break
		}
	}

	upper := freqs[n-1]
	for i := peak; i < n-1; i++ {
		if power[i+1] <= threshold && power[i] > threshold {
			upper = interpFreq(freqs[i], freqs[i+1], power[i], power[i+1], threshold)
			break
		}
	}

	return math.Max(upper-lower, 0)
}

// interpFreq returns the frequency between fLow and fHigh where the power
// crosses threshold.
func interpFreq(fLow, fHigh, pLow, pHigh, threshold float64) float64 {
	denom := pHigh - pLow
	if denom == 0 {
		return (fLow + fHigh) / 2
	}

	t := (threshold - pLow) / denom

	return fLow + t*(fHigh-fLow)
}

// Peaks returns up to k local maxima, strongest first. A bin is a local
// maximum when it exceeds both neighbours; edge bins compare with their
// single neighbour.
func Peaks(power, freqs []float64, k int) ([]Peak, error) {
	if err := check(power, freqs); err != nil {
		return nil, err
	}

	n := len(power)

	var out []Peak
	for i, p := range power {
		if i > 0 && power[i-1] >= p {
			continue
		}

		if i < n-1 && power[i+1] > p {
			continue
		}

		if n > 1 && p == 0 {
			continue
		}

		out = append(out, Peak{Bin: i, Freq: freqs[i], Power: p})
	}

	sort.SliceStable(out, func(a, b int) bool { return out[a].Power > out[b].Power })

	if k > 0 && len(out) > k {
		out = out[:k]
	}

	return out, nil
}
