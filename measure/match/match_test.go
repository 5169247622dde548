package match

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-irregular/dsp/core"
	"github.com/cwbudde/algo-irregular/internal/testutil"
)

func spectrum(seed int64, n int) []complex128 {
	re := testutil.DeterministicNoise(seed, 1, n)
	im := testutil.DeterministicNoise(seed+100, 1, n)

	out := make([]complex128, n)
	for i := range out {
		out[i] = complex(re[i], im[i])
	}

	return out
}

func TestMatchIdentical(t *testing.T) {
	a := spectrum(1, 32)

	res, err := Match(a, a, nil)
	require.NoError(t, err)
	assert.InDelta(t, 1, res.Match, 1e-12)
	assert.Equal(t, 0, res.Shift)
	assert.Equal(t, 32, res.FFTSize)
}

func TestMatchScaleInvariant(t *testing.T) {
	a := spectrum(2, 16)
	b := make([]complex128, len(a))
	for i, v := range a {
		b[i] = v * complex(-3, 1)
	}

	res, err := Match(a, b, nil)
	require.NoError(t, err)
	assert.InDelta(t, 1, res.Match, 1e-12)
}

func TestMatchRecoversShift(t *testing.T) {
	const n, lag = 64, 5

	a := spectrum(3, n)
	b := make([]complex128, n)
	for k := range a {
		// A circular delay of lag samples.
		b[k] = a[k] * cmplx.Exp(complex(0, -2*math.Pi*float64(k*lag)/n))
	}

	res, err := Match(a, b, nil)
	require.NoError(t, err)
	assert.InDelta(t, 1, res.Match, 1e-9)
	assert.Equal(t, lag, res.Shift)

	plain, err := Overlap(a, b, nil)
	require.NoError(t, err)
	assert.Less(t, plain, res.Match)
}

func TestMatchBounded(t *testing.T) {
	a := spectrum(4, 40)
	b := spectrum(5, 40)
	psd := testutil.Add(testutil.DC(1.5, 40), testutil.DeterministicNoise(6, 1, 40))

	res, err := Match(a, b, psd)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.Match, 0.0)
	assert.LessOrEqual(t, res.Match, 1.0)
	assert.Equal(t, 64, res.FFTSize)
}

func TestMatchWhiteningChangesWeights(t *testing.T) {
	a := []complex128{1, 1, 0, 0}
	b := []complex128{1, 0, 1, 0}

	flat, err := Overlap(a, b, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, flat, 1e-12)

	weighted, err := Overlap(a, b, []float64{1, 1e6, 1e6, 1})
	require.NoError(t, err)
	assert.InDelta(t, 1, weighted, 1e-5)
}

func TestMatchZeroNorm(t *testing.T) {
	res, err := Match(make([]complex128, 8), spectrum(1, 8), nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Match)
}

func TestMatchValidation(t *testing.T) {
	a := spectrum(1, 4)

	_, err := Match(nil, nil, nil)
	require.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = Match(a, a[:3], nil)
	require.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = Match(a, a, []float64{1, 1})
	require.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = Match(a, a, []float64{1, 0, 1, 1})
	require.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = Overlap(a, a[:2], nil)
	require.ErrorIs(t, err, core.ErrInvalidArgument)
}
