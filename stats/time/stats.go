// Package time summarizes the sampling structure of a time grid: how
// regular the spacing is, where the gaps are and what rate it supports.
//
//nolint:revive
package time

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-irregular/dsp/grid"
)

// Stats holds sampling statistics of a set of timestamps.
type Stats struct {
	Length      int
	Ordered     bool
	Inversions  int // adjacent pairs with t[i] < t[i-1]
	Start       float64
	End         float64
	Duration    float64
	AverageRate float64 // Length / Duration
	Nyquist     float64 // 0.5 * AverageRate
	NominalDt   float64 // grid.UnknownSpacing when not known

	// Spacing of the sorted timestamps.
	MeanSpacing   float64
	MedianSpacing float64
	MinSpacing    float64
	MaxSpacing    float64
	SpacingStdDev float64
	Jitter        float64 // SpacingStdDev / MeanSpacing
	MaxGapStart   float64 // timestamp the largest gap opens at
	Skewness      float64
	Kurtosis      float64 // excess
}

func emptyStats() Stats {
	return Stats{
		AverageRate: math.Inf(1),
		Nyquist:     math.Inf(1),
		NominalDt:   grid.UnknownSpacing,
	}
}

// Calculate computes the sampling statistics of times. The input is not
// modified and need not be sorted.
func Calculate(times []float64) Stats {
	n := len(times)
	if n == 0 {
		s := emptyStats()
		s.AverageRate, s.Nyquist = 0, 0
		s.Ordered = true

		return s
	}

	s := emptyStats()
	s.Length = n
	s.Inversions = Inversions(times)
	s.Ordered = s.Inversions == 0
	s.Start = floats.Min(times)
	s.End = floats.Max(times)
	s.Duration = s.End - s.Start

	if s.Duration > 0 {
		s.AverageRate = float64(n) / s.Duration
		s.Nyquist = 0.5 * s.AverageRate
	}

	if n < 2 {
		return s
	}

	sorted := sortedCopy(times)
	gaps := spacings(sorted)

	s.MeanSpacing, s.SpacingStdDev = stat.PopMeanStdDev(gaps, nil)
	s.MinSpacing = floats.Min(gaps)
	s.MaxSpacing = floats.Max(gaps)
	s.MaxGapStart = sorted[floats.MaxIdx(gaps)]

	ordered := append([]float64(nil), gaps...)
	sort.Float64s(ordered)
	s.MedianSpacing = stat.Quantile(0.5, stat.Empirical, ordered, nil)

	if s.MeanSpacing > 0 {
		s.Jitter = s.SpacingStdDev / s.MeanSpacing
	}

	if s.SpacingStdDev > 0 && len(gaps) > 3 {
		s.Skewness = stat.Skew(gaps, nil)
		s.Kurtosis = stat.ExKurtosis(gaps, nil)
	}

	return s
}

// FromGrid computes the statistics of a time grid and records its nominal
// spacing.
func FromGrid(t *grid.Times) Stats {
	if t == nil {
		return Calculate(nil)
	}

	s := Calculate(t.Values())
	s.NominalDt = t.Dt()

	return s
}

// Spacings returns the differences between consecutive sorted timestamps.
func Spacings(times []float64) []float64 {
	if len(times) < 2 {
		return nil
	}

	return spacings(sortedCopy(times))
}

// Inversions counts adjacent pairs that step backwards in time.
func Inversions(times []float64) int {
	count := 0
	for i := 1; i < len(times); i++ {
		if times[i] < times[i-1] {
			count++
		}
	}

	return count
}

// Gaps returns the start timestamps of every sorted spacing larger than
// factor times the median spacing.
func Gaps(times []float64, factor float64) []float64 {
	if len(times) < 3 || factor <= 0 {
		return nil
	}

	sorted := sortedCopy(times)
	gaps := spacings(sorted)

	ordered := append([]float64(nil), gaps...)
	sort.Float64s(ordered)
	limit := factor * stat.Quantile(0.5, stat.Empirical, ordered, nil)

	var out []float64
	for i, g := range gaps {
		if g > limit {
			out = append(out, sorted[i])
		}
	}

	return out
}

func sortedCopy(times []float64) []float64 {
	out := append([]float64(nil), times...)
	sort.Float64s(out)

	return out
}

func spacings(sorted []float64) []float64 {
	out := make([]float64, len(sorted)-1)
	for i := range out {
		out[i] = sorted[i+1] - sorted[i]
	}

	return out
}
