package regression

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-irregular/dsp/core"
	"github.com/cwbudde/algo-irregular/dsp/grid"
	"github.com/cwbudde/algo-irregular/internal/testutil"
)

func fixture(t *testing.T) (*grid.Times, *grid.Frequencies, []float64) {
	t.Helper()

	times, err := grid.NewIrregularTimes(80, 0.25, grid.WithSeed(12))
	require.NoError(t, err)

	freqs, err := grid.FrequenciesFromBasicDF(0.05, 20, 0, 1)
	require.NoError(t, err)

	tv := times.Values()
	data := testutil.Add(
		testutil.SineAt(tv, freqs.At(5), 2, math.Pi/2),
		testutil.SineAt(tv, freqs.At(9), 0.5, 0),
	)

	return times, freqs, data
}

func TestDictionaryLayout(t *testing.T) {
	times, err := grid.NewTimes([]float64{0, 0.25, 1.5}, grid.UnknownSpacing)
	require.NoError(t, err)

	freqs, err := grid.NewFrequencies([]float64{0.5, 1})
	require.NoError(t, err)

	d, err := NewDictionary(times, freqs)
	require.NoError(t, err)

	rows, cols := d.Dims()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 4, cols)

	a := d.Matrix()
	for j := 0; j < rows; j++ {
		for k := 0; k < 2; k++ {
			arg := 2 * math.Pi * freqs.At(k) * times.At(j)
			assert.InDelta(t, math.Cos(arg), a.At(j, k), 1e-15)
			assert.InDelta(t, math.Sin(arg), a.At(j, 2+k), 1e-15)
		}
	}

	assert.Same(t, times, d.Times())
	assert.Same(t, freqs, d.Frequencies())
}

func TestDictionaryRequiresGrids(t *testing.T) {
	_, err := NewDictionary(nil, nil)
	require.ErrorIs(t, err, core.ErrPreconditionMissing)
}

func TestForwardRecoversSinusoids(t *testing.T) {
	times, freqs, data := fixture(t)

	r := NewRegressor()
	require.False(t, r.Valid())
	require.NoError(t, r.SetDictionary(times, freqs))
	require.True(t, r.Valid())

	coeffs, err := r.Forward(data)
	require.NoError(t, err)
	require.Len(t, coeffs, freqs.Len())

	// 2 sin(x + pi/2) = 2 cos(x) -> a = 2, b = 0.
	assert.InDelta(t, 2, real(coeffs[5]), 1e-5)
	assert.InDelta(t, 0, imag(coeffs[5]), 1e-5)
	// 0.5 sin(x) -> a = 0, b = 0.5, c = -0.5i.
	assert.InDelta(t, 0, real(coeffs[9]), 1e-5)
	assert.InDelta(t, -0.5, imag(coeffs[9]), 1e-5)

	for k, c := range coeffs {
		if k == 5 || k == 9 {
			continue
		}

		assert.InDelta(t, 0, real(c), 1e-5, "bin %d", k)
		assert.InDelta(t, 0, imag(c), 1e-5, "bin %d", k)
	}
}

func TestInverseReconstructsData(t *testing.T) {
	times, freqs, data := fixture(t)

	r := NewRegressor()
	require.NoError(t, r.SetDictionary(times, freqs))

	coeffs, err := r.Forward(data)
	require.NoError(t, err)

	back, err := r.Inverse(coeffs)
	require.NoError(t, err)
	testutil.RequireSliceNearlyEqual(t, back, data, 1e-6)
}

func TestForwardOnKeepsCachedDictionary(t *testing.T) {
	times, freqs, data := fixture(t)

	r := NewRegressor()
	require.NoError(t, r.SetDictionary(times, freqs))

	other, err := grid.FrequenciesFromBasicDF(0.05, 10, 0.05, 1)
	require.NoError(t, err)

	coeffs, err := r.ForwardOn(times, other, data)
	require.NoError(t, err)
	assert.Len(t, coeffs, 10)
	assert.Same(t, freqs, r.Frequencies())
	assert.Same(t, times, r.Times())
}

func TestForwardWithMatchesForward(t *testing.T) {
	times, freqs, data := fixture(t)

	d, err := NewDictionary(times, freqs)
	require.NoError(t, err)

	r := NewRegressor()
	got, err := r.ForwardWith(d, data)
	require.NoError(t, err)

	require.NoError(t, r.SetDictionary(times, freqs))
	want, err := r.Forward(data)
	require.NoError(t, err)

	testutil.RequireComplexNearlyEqual(t, got, want, 1e-12)
}

func TestRegressorPreconditions(t *testing.T) {
	r := NewRegressor()

	_, err := r.Forward([]float64{1})
	require.ErrorIs(t, err, core.ErrPreconditionMissing)

	_, err = r.Inverse([]complex128{1})
	require.ErrorIs(t, err, core.ErrPreconditionMissing)

	_, err = r.ForwardWith(nil, []float64{1})
	require.ErrorIs(t, err, core.ErrPreconditionMissing)

	assert.Nil(t, r.Frequencies())
	assert.Nil(t, r.Times())
	assert.Nil(t, r.Dictionary())
}

func TestRegressorLengthChecks(t *testing.T) {
	times, freqs, data := fixture(t)

	r := NewRegressor()
	require.NoError(t, r.SetDictionary(times, freqs))

	_, err := r.Forward(data[:10])
	require.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = r.Inverse(make([]complex128, 3))
	require.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestRidgeShrinksCoefficients(t *testing.T) {
	times, freqs, data := fixture(t)

	loose := NewRegressor()
	require.NoError(t, loose.SetDictionary(times, freqs))

	stiff := NewRegressor(WithAlpha(100))
	require.NoError(t, stiff.SetDictionary(times, freqs))
	assert.Equal(t, 100.0, stiff.Alpha())

	a, err := loose.Forward(data)
	require.NoError(t, err)

	b, err := stiff.Forward(data)
	require.NoError(t, err)

	assert.Less(t, math.Abs(real(b[5])), math.Abs(real(a[5])))
}

func TestProject(t *testing.T) {
	times, freqs, data := fixture(t)

	d, err := NewDictionary(times, freqs)
	require.NoError(t, err)

	p, err := d.Project(data)
	require.NoError(t, err)
	assert.Len(t, p, 2*freqs.Len())
	assert.Equal(t, 5, testutil.ArgMax(p))

	_, err = d.Project(data[:1])
	require.ErrorIs(t, err, core.ErrInvalidArgument)
}
