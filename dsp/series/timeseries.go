package series

import (
	"fmt"

	"github.com/cwbudde/algo-irregular/dsp/array"
	"github.com/cwbudde/algo-irregular/dsp/core"
	"github.com/cwbudde/algo-irregular/dsp/grid"
)

// TimeSeries is a sample array on a time grid of the same length.
type TimeSeries struct {
	data  array.Array
	times *grid.Times
}

// NewTimeSeries binds data to times.
func NewTimeSeries(data array.Array, times *grid.Times) (*TimeSeries, error) {
	if data.Len() == 0 {
		return nil, fmt.Errorf("%w: time series data must contain at least one sample", core.ErrInvalidArgument)
	}

	if times == nil {
		return nil, fmt.Errorf("%w: time series requires a time grid", core.ErrInvalidArgument)
	}

	if data.Len() != times.Len() {
		return nil, fmt.Errorf("%w: data length %d != time grid length %d", core.ErrInvalidArgument, data.Len(), times.Len())
	}

	return &TimeSeries{data: data, times: times}, nil
}

// NewRealTimeSeries copies values onto times.
func NewRealTimeSeries(values []float64, times *grid.Times) (*TimeSeries, error) {
	data, err := array.NewReal(values)
	if err != nil {
		return nil, err
	}

	return NewTimeSeries(data, times)
}

// NewRegularTimeSeries places values on the grid i*dt.
func NewRegularTimeSeries(values []float64, dt float64) (*TimeSeries, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: time series data must contain at least one sample", core.ErrInvalidArgument)
	}

	times, err := grid.NewRegularTimes(len(values), dt, 0)
	if err != nil {
		return nil, err
	}

	return NewRealTimeSeries(values, times)
}

// Len returns the number of samples.
func (ts *TimeSeries) Len() int { return ts.data.Len() }

// Data returns the samples.
func (ts *TimeSeries) Data() array.Array { return ts.data }

// Times returns the time grid.
func (ts *TimeSeries) Times() *grid.Times { return ts.times }

// Duration returns the span of the time grid.
func (ts *TimeSeries) Duration() float64 { return ts.times.Duration() }

// SampleRate returns the average sampling rate N / Duration.
func (ts *TimeSeries) SampleRate() float64 { return ts.times.AverageRate() }

// StartTime returns the earliest timestamp.
func (ts *TimeSeries) StartTime() float64 { return ts.times.Min() }

// EndTime returns the latest timestamp.
func (ts *TimeSeries) EndTime() float64 { return ts.times.Max() }

// Epoch returns the reference time spectra of this series are anchored to,
// the earliest timestamp.
func (ts *TimeSeries) Epoch() float64 { return ts.times.Min() }

// Slice returns samples [i, j) with their timestamps.
func (ts *TimeSeries) Slice(i, j int) (*TimeSeries, error) {
	data, err := ts.data.Slice(i, j)
	if err != nil {
		return nil, err
	}

	times, err := ts.times.Slice(i, j)
	if err != nil {
		return nil, err
	}

	return &TimeSeries{data: data, times: times}, nil
}

// TimeSlice returns the samples between the timestamps nearest to start
// and end, end excluded.
func (ts *TimeSeries) TimeSlice(start, end float64) (*TimeSeries, error) {
	return ts.Slice(ts.times.Nearest(start), ts.times.Nearest(end))
}

// Append returns a new series one sample longer. Data and grid are
// extended together; the receiver is unchanged.
func (ts *TimeSeries) Append(value complex128, t float64) *TimeSeries {
	return &TimeSeries{data: ts.data.Append(value), times: ts.times.Append(t)}
}

// Mul returns the series multiplied sample-wise by a window.
func (ts *TimeSeries) Mul(window []float64) (*TimeSeries, error) {
	data, err := ts.data.MulReal(window)
	if err != nil {
		return nil, err
	}

	return &TimeSeries{data: data, times: ts.times}, nil
}

// Equal reports whether both series share the same sampling. Sample
// values are not compared.
func (ts *TimeSeries) Equal(o *TimeSeries) bool {
	if ts == nil || o == nil {
		return ts == o
	}

	return ts.times.Equal(o.times)
}
