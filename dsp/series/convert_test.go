package series

import (
	"errors"
	"math"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-irregular/dsp/array"
	"github.com/cwbudde/algo-irregular/dsp/core"
	"github.com/cwbudde/algo-irregular/dsp/grid"
	"github.com/cwbudde/algo-irregular/dsp/nfft"
	"github.com/cwbudde/algo-irregular/dsp/regression"
	"github.com/cwbudde/algo-irregular/internal/testutil"
)

var (
	_ Regressor       = (*regression.Regressor)(nil)
	_ TransformSolver = (*nfft.Transformer)(nil)
)

func irregularSeries(t *testing.T, n int, dt float64, seed int64, freqs ...float64) *TimeSeries {
	t.Helper()

	times, err := grid.NewIrregularTimes(n, dt, grid.WithSeed(seed))
	require.NoError(t, err)

	ts, err := NewRealTimeSeries(testutil.MultiSineAt(times.Values(), freqs...), times)
	require.NoError(t, err)

	return ts
}

func TestParseMethod(t *testing.T) {
	for _, m := range []Method{MethodRegression, MethodNFFT} {
		got, err := ParseMethod(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}

	_, err := ParseMethod("wavelet")
	require.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = ConverterFor(Method(7))
	require.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestToFrequencySeriesRejectsComplex(t *testing.T) {
	times, err := grid.NewRegularTimes(2, 1, 0)
	require.NoError(t, err)

	data, err := array.NewComplex([]complex128{1, 1i})
	require.NoError(t, err)

	ts, err := NewTimeSeries(data, times)
	require.NoError(t, err)

	_, err = ts.ToFrequencySeries(ConvertOptions{Method: MethodNFFT})
	require.ErrorIs(t, err, core.ErrTypeMismatch)
}

func TestUnknownMethod(t *testing.T) {
	ts := irregularSeries(t, 8, 1, 1, 0.1)

	_, err := ts.ToFrequencySeries(ConvertOptions{Method: Method(9)})
	require.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestRegressionRoundTrip(t *testing.T) {
	freqs, err := grid.FrequenciesFromBasicDF(0.04, 10, 0.04, 1)
	require.NoError(t, err)

	ts := irregularSeries(t, 60, 0.5, 4, freqs.At(2), freqs.At(6))
	reg := regression.NewRegressor()

	fs, err := ts.ToFrequencySeries(ConvertOptions{
		Method:      MethodRegression,
		Regressor:   reg,
		Frequencies: freqs,
	})
	require.NoError(t, err)

	assert.Same(t, freqs, fs.Frequencies())
	assert.Equal(t, ts.Epoch(), fs.Epoch())
	assert.False(t, reg.Valid())

	back, err := fs.ToTimeSeries(ConvertOptions{
		Method:    MethodRegression,
		Regressor: reg,
		Times:     ts.Times(),
	})
	require.NoError(t, err)

	assert.True(t, back.Equal(ts))
	assert.Same(t, ts.Times(), back.Times())

	want, err := ts.Data().Float64s()
	require.NoError(t, err)

	got, err := back.Data().Float64s()
	require.NoError(t, err)
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-6)
}

func TestRegressionUsesRegressorGrids(t *testing.T) {
	freqs, err := grid.FrequenciesFromBasicDF(0.04, 10, 0.04, 1)
	require.NoError(t, err)

	ts := irregularSeries(t, 60, 0.5, 4, freqs.At(3))

	reg := regression.NewRegressor()
	require.NoError(t, reg.SetDictionary(ts.Times(), freqs))

	fs, err := ts.ToFrequencySeries(ConvertOptions{Method: MethodRegression, Regressor: reg})
	require.NoError(t, err)
	assert.Same(t, freqs, fs.Frequencies())

	// Same grid and no explicit times: the cached dictionary is reused.
	back, err := fs.ToTimeSeries(ConvertOptions{Method: MethodRegression, Regressor: reg})
	require.NoError(t, err)
	assert.Same(t, ts.Times(), back.Times())
}

func TestRegressionPreconditions(t *testing.T) {
	ts := irregularSeries(t, 10, 1, 2, 0.1)

	_, err := ts.ToFrequencySeries(ConvertOptions{Method: MethodRegression})
	require.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = ts.ToFrequencySeries(ConvertOptions{Method: MethodRegression, Regressor: regression.NewRegressor()})
	require.ErrorIs(t, err, core.ErrPreconditionMissing)

	fs, err := NewFrequencySeriesFromDF(complexArray(t, 1, 2), 0.1, 0, 1, 0)
	require.NoError(t, err)

	_, err = fs.ToTimeSeries(ConvertOptions{Method: MethodRegression})
	require.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = fs.ToTimeSeries(ConvertOptions{Method: MethodRegression, Regressor: regression.NewRegressor()})
	require.ErrorIs(t, err, core.ErrPreconditionMissing)
}

func TestNFFTRoundTrip(t *testing.T) {
	ts := irregularSeries(t, 32, 0.25, 8, 0.5, 1.25)

	logger, hook := logtest.NewNullLogger()

	fs, err := ts.ToFrequencySeries(ConvertOptions{Method: MethodNFFT, Tolerance: 1e-9, Logger: logger})
	require.NoError(t, err)
	assert.Empty(t, hook.AllEntries())

	n := float64(ts.Len())
	period := ts.Duration() * n / (n - 1)

	assert.Equal(t, 32, fs.Len())
	assert.Equal(t, ts.Epoch(), fs.Epoch())
	assert.InDelta(t, period, fs.Duration(), 1e-12)
	assert.InDelta(t, 1/period, fs.DeltaF(), 1e-12)
	assert.Less(t, fs.DeltaF(), 1/ts.Duration())

	zero, ok := fs.Frequencies().ZeroIndex()
	require.True(t, ok)
	assert.Equal(t, 16, zero)
	assert.InDelta(t, -16/period, fs.MinFreq(), 1e-12)

	back, err := fs.ToTimeSeries(ConvertOptions{Method: MethodNFFT, Times: ts.Times()})
	require.NoError(t, err)
	assert.Same(t, ts.Times(), back.Times())

	want, err := ts.Data().Float64s()
	require.NoError(t, err)

	got, err := back.Data().Float64s()
	require.NoError(t, err)
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-8)
}

func TestNFFTSmallAmplitude(t *testing.T) {
	values := make([]float64, 32)
	for i := range values {
		values[i] = 0.5 * math.Sin(2*math.Pi*float64(i)/8)
	}

	ts, err := NewRegularTimeSeries(values, 1)
	require.NoError(t, err)

	logger, _ := logtest.NewNullLogger()

	fs, err := ts.ToFrequencySeries(ConvertOptions{Method: MethodNFFT, Logger: logger})
	require.NoError(t, err)

	peak, err := fs.Data().Abs().Max()
	require.NoError(t, err)
	assert.Greater(t, peak, 0.1)

	back, err := fs.ToTimeSeries(ConvertOptions{Method: MethodNFFT, Times: ts.Times()})
	require.NoError(t, err)

	got, err := back.Data().Float64s()
	require.NoError(t, err)

	diff, err := testutil.MaxAbsDiff(got, values)
	require.NoError(t, err)
	assert.Less(t, diff, nfft.DefaultTolerance)
}

func TestNFFTCoefficientCount(t *testing.T) {
	ts := irregularSeries(t, 24, 0.5, 3, 0.2)

	logger, _ := logtest.NewNullLogger()

	fs, err := ts.ToFrequencySeries(ConvertOptions{Method: MethodNFFT, NF: 16, Logger: logger})
	require.NoError(t, err)
	assert.Equal(t, 16, fs.Len())
}

func TestNFFTRequiresTimes(t *testing.T) {
	fs, err := NewFrequencySeriesFromDF(complexArray(t, 1, 2), 0.1, 0, 1, 0)
	require.NoError(t, err)

	_, err = fs.ToTimeSeries(ConvertOptions{Method: MethodNFFT})
	require.ErrorIs(t, err, core.ErrInvalidArgument)

	single, err := NewRegularTimeSeries([]float64{1}, 1)
	require.NoError(t, err)

	_, err = single.ToFrequencySeries(ConvertOptions{Method: MethodNFFT})
	require.ErrorIs(t, err, core.ErrInvalidArgument)
}

type recordingSolver struct {
	forward, inverse int
	positions        []float64
}

func (r *recordingSolver) Forward(positions, freqs []float64, values []complex128) ([]complex128, error) {
	r.forward++
	r.positions = positions

	return make([]complex128, len(freqs)), nil
}

func (r *recordingSolver) Inverse(positions, _ []float64, _ []complex128) ([]complex128, error) {
	r.inverse++
	r.positions = positions

	return make([]complex128, len(positions)), nil
}

func TestNFFTUsesInjectedSolverAndEpoch(t *testing.T) {
	times, err := grid.NewTimes([]float64{10, 10.5, 11.25, 12}, grid.UnknownSpacing)
	require.NoError(t, err)

	ts, err := NewRealTimeSeries([]float64{1, 0, -1, 0}, times)
	require.NoError(t, err)

	solver := &recordingSolver{}

	fs, err := ts.ToFrequencySeries(ConvertOptions{Method: MethodNFFT, Transform: solver})
	require.NoError(t, err)
	assert.Equal(t, 1, solver.forward)
	assert.Equal(t, []float64{0, 0.5, 1.25, 2}, solver.positions)
	assert.Equal(t, 10.0, fs.Epoch())

	_, err = fs.ToTimeSeries(ConvertOptions{Method: MethodNFFT, Transform: solver, Times: times})
	require.NoError(t, err)
	assert.Equal(t, 1, solver.inverse)
	assert.Equal(t, []float64{0, 0.5, 1.25, 2}, solver.positions)
}

func TestConvertWindow(t *testing.T) {
	ts := irregularSeries(t, 16, 0.5, 5, 0.3)
	solver := &recordingSolver{}

	_, err := ts.ToFrequencySeries(ConvertOptions{Method: MethodNFFT, Transform: solver, Window: []float64{1}})
	require.ErrorIs(t, err, core.ErrInvalidArgument)
	assert.Zero(t, solver.forward)

	freqs, err := grid.FrequenciesFromBasicDF(0.1, 8, 0.1, 1)
	require.NoError(t, err)

	reg := regression.NewRegressor()
	plain, err := ts.ToFrequencySeries(ConvertOptions{Method: MethodRegression, Regressor: reg, Frequencies: freqs})
	require.NoError(t, err)

	zeroed, err := ts.ToFrequencySeries(ConvertOptions{
		Method:      MethodRegression,
		Regressor:   reg,
		Frequencies: freqs,
		Window:      make([]float64, ts.Len()),
	})
	require.NoError(t, err)

	assert.NotEqual(t, plain.Data().Complex128s(), zeroed.Data().Complex128s())

	for _, c := range zeroed.Data().Complex128s() {
		assert.InDelta(t, 0, real(c), 1e-12)
		assert.InDelta(t, 0, imag(c), 1e-12)
	}
}

type failingSolver struct{}

var errSolver = errors.New("solver failed")

func (failingSolver) Forward(_, _ []float64, _ []complex128) ([]complex128, error) {
	return nil, errSolver
}

func (failingSolver) Inverse(_, _ []float64, _ []complex128) ([]complex128, error) {
	return nil, errSolver
}

func TestNFFTPropagatesSolverErrors(t *testing.T) {
	ts := irregularSeries(t, 8, 1, 1, 0.1)

	_, err := ts.ToFrequencySeries(ConvertOptions{Method: MethodNFFT, Transform: failingSolver{}})
	require.ErrorIs(t, err, errSolver)
}
