package series

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-irregular/dsp/array"
	"github.com/cwbudde/algo-irregular/dsp/core"
	"github.com/cwbudde/algo-irregular/dsp/grid"
)

// FrequencySeries is a spectrum on a frequency grid, anchored at an epoch.
type FrequencySeries struct {
	data  array.Array
	freqs *grid.Frequencies
	epoch float64
}

// NewFrequencySeries binds data to freqs. The epoch is required; NaN
// reports that it could not be inferred.
func NewFrequencySeries(data array.Array, freqs *grid.Frequencies, epoch float64) (*FrequencySeries, error) {
	if data.Len() == 0 {
		return nil, fmt.Errorf("%w: frequency series data must contain at least one sample", core.ErrInvalidArgument)
	}

	if freqs == nil {
		return nil, fmt.Errorf("%w: frequency series requires a frequency grid", core.ErrPreconditionMissing)
	}

	if math.IsNaN(epoch) {
		return nil, fmt.Errorf("%w: frequency series requires an epoch", core.ErrPreconditionMissing)
	}

	if data.Len() != freqs.Len() {
		return nil, fmt.Errorf("%w: data length %d != frequency grid length %d", core.ErrInvalidArgument, data.Len(), freqs.Len())
	}

	return &FrequencySeries{data: data, freqs: freqs, epoch: epoch}, nil
}

// NewFrequencySeriesFromDF builds the grid minFreq + i*deltaF/spp for the
// samples of data, where deltaF is the basic spacing.
func NewFrequencySeriesFromDF(data array.Array, deltaF, minFreq, samplesPerPeak, epoch float64) (*FrequencySeries, error) {
	if data.Len() == 0 {
		return nil, fmt.Errorf("%w: frequency series data must contain at least one sample", core.ErrInvalidArgument)
	}

	freqs, err := grid.FrequenciesFromBasicDF(deltaF, data.Len(), minFreq, samplesPerPeak)
	if err != nil {
		return nil, err
	}

	return NewFrequencySeries(data, freqs, epoch)
}

// Len returns the number of bins.
func (fs *FrequencySeries) Len() int { return fs.data.Len() }

// Data returns the spectral values.
func (fs *FrequencySeries) Data() array.Array { return fs.data }

// Frequencies returns the frequency grid.
func (fs *FrequencySeries) Frequencies() *grid.Frequencies { return fs.freqs }

// DeltaF returns the raw bin spacing.
func (fs *FrequencySeries) DeltaF() float64 { return fs.freqs.DF() }

// BasicDF returns the spacing of independent bins.
func (fs *FrequencySeries) BasicDF() float64 { return fs.freqs.BasicDF() }

// SamplesPerPeak returns the oversampling factor of the grid.
func (fs *FrequencySeries) SamplesPerPeak() float64 { return fs.freqs.SamplesPerPeak() }

// MinFreq returns the lowest frequency.
func (fs *FrequencySeries) MinFreq() float64 { return fs.freqs.Min() }

// MaxFreq returns the highest frequency.
func (fs *FrequencySeries) MaxFreq() float64 { return fs.freqs.Max() }

// Epoch returns the reference time of the data the spectrum came from.
func (fs *FrequencySeries) Epoch() float64 { return fs.epoch }

// StartTime returns the epoch.
func (fs *FrequencySeries) StartTime() float64 { return fs.epoch }

// EndTime returns Epoch + Duration.
func (fs *FrequencySeries) EndTime() float64 { return fs.epoch + fs.Duration() }

// Duration returns 1 / BasicDF.
func (fs *FrequencySeries) Duration() float64 { return 1 / fs.BasicDF() }

// SplitValues returns the real parts followed by the imaginary parts.
func (fs *FrequencySeries) SplitValues() []float64 {
	n := fs.data.Len()
	out := make([]float64, 2*n)

	for i := 0; i < n; i++ {
		v := fs.data.At(i)
		out[i] = real(v)
		out[n+i] = imag(v)
	}

	return out
}

// Mul returns the spectrum multiplied bin-wise by a window.
func (fs *FrequencySeries) Mul(window []float64) (*FrequencySeries, error) {
	data, err := fs.data.MulReal(window)
	if err != nil {
		return nil, err
	}

	return &FrequencySeries{data: data, freqs: fs.freqs, epoch: fs.epoch}, nil
}

// Equal reports whether both series hold the same values, epoch and basic
// spacing.
func (fs *FrequencySeries) Equal(o *FrequencySeries) bool {
	if fs == nil || o == nil {
		return fs == o
	}

	return fs.epoch == o.epoch && fs.BasicDF() == o.BasicDF() && fs.data.Equal(o.data)
}
