package series

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-irregular/dsp/core"
	"github.com/cwbudde/algo-irregular/measure/match"
)

// DefaultMatchTolerance is the relative duration mismatch allowed when a
// time series is matched against a spectrum.
const DefaultMatchTolerance = 0.1

// boundarySlack absorbs rounding in tol*Duration so a mismatch of exactly
// the tolerance is accepted.
const boundarySlack = 1e-12

// MatchFunc compares two spectra, optionally whitened by a noise PSD.
type MatchFunc func(a, b []complex128, psd []float64) (match.Result, error)

// MatchOptions controls a match.
type MatchOptions struct {
	// Tolerance bounds |other.Duration()/Duration() - 1| for time series;
	// zero selects DefaultMatchTolerance.
	Tolerance float64
	// Func overrides match.Match.
	Func MatchFunc
	// Convert converts a time series before matching.
	Convert ConvertOptions
}

// Match compares fs with other. psd, if given, must have the same length.
func (fs *FrequencySeries) Match(other *FrequencySeries, psd []float64, opts MatchOptions) (match.Result, error) {
	if other == nil {
		return match.Result{}, fmt.Errorf("%w: match requires a frequency series", core.ErrInvalidArgument)
	}

	if other.Len() != fs.Len() {
		return match.Result{}, fmt.Errorf("%w: series lengths differ: %d != %d", core.ErrInvalidArgument, other.Len(), fs.Len())
	}

	if psd != nil && len(psd) != fs.Len() {
		return match.Result{}, fmt.Errorf("%w: psd length %d != series length %d", core.ErrInvalidArgument, len(psd), fs.Len())
	}

	fn := opts.Func
	if fn == nil {
		fn = match.Match
	}

	return fn(fs.data.Complex128s(), other.data.Complex128s(), psd)
}

// MatchTimeSeries converts ts with opts.Convert and matches it against fs.
// The durations must agree within the tolerance; exactly at it is accepted.
func (fs *FrequencySeries) MatchTimeSeries(ts *TimeSeries, psd []float64, opts MatchOptions) (match.Result, error) {
	if ts == nil {
		return match.Result{}, fmt.Errorf("%w: match requires a time series", core.ErrInvalidArgument)
	}

	tol := opts.Tolerance
	if tol == 0 {
		tol = DefaultMatchTolerance
	}

	ref := fs.Duration()
	if diff := math.Abs(ts.Duration() - ref); diff > tol*ref*(1+boundarySlack) {
		return match.Result{}, fmt.Errorf("%w: duration mismatch %g exceeds tolerance %g", core.ErrInvalidArgument, diff/ref, tol)
	}

	other, err := ts.ToFrequencySeries(opts.Convert)
	if err != nil {
		return match.Result{}, err
	}

	return fs.Match(other, psd, opts)
}

// Match converts ts with opts.Convert and matches the result against other.
func (ts *TimeSeries) Match(other *FrequencySeries, psd []float64, opts MatchOptions) (match.Result, error) {
	if other == nil {
		return match.Result{}, fmt.Errorf("%w: match requires a frequency series", core.ErrInvalidArgument)
	}

	fs, err := ts.ToFrequencySeries(opts.Convert)
	if err != nil {
		return match.Result{}, err
	}

	return fs.Match(other, psd, opts)
}
