package grid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-irregular/dsp/core"
)

func TestFrequencySizing(t *testing.T) {
	cases := []struct {
		min, max, df float64
	}{
		{0, 10, 0.1},
		{0.5, 3.3, 0.07},
		{1, 1000, 2.5},
		{-2, 2, 0.25},
	}

	for _, tc := range cases {
		// df = 1/duration/spp with spp 1.
		tm, err := NewRegularTimes(2, 1/tc.df, 0)
		require.NoError(t, err)

		f, err := FrequenciesFromTimes(tm,
			WithSamplesPerPeak(1),
			WithMinimumFrequency(tc.min),
			WithMaximumFrequency(tc.max),
		)
		require.NoError(t, err)

		want := 1 + int(math.Round((tc.max-tc.min)/tc.df))
		assert.Equal(t, want, f.Len())
		assert.Equal(t, tc.min, f.At(0))
		assert.InDelta(t, tc.df, f.DF(), 1e-12)
	}
}

func TestFrequenciesFromTimesDefaults(t *testing.T) {
	tm, err := NewRegularTimes(101, 0.1, 0)
	require.NoError(t, err)

	f, err := FrequenciesFromTimes(tm)
	require.NoError(t, err)

	duration := tm.Duration()
	df := 1 / duration / DefaultSamplesPerPeak
	maxF := DefaultNyquistFactor * 0.5 * 101 / duration

	assert.Equal(t, float64(DefaultSamplesPerPeak), f.SamplesPerPeak())
	assert.InDelta(t, df, f.DF(), 1e-12)
	assert.InDelta(t, 1/duration, f.BasicDF(), 1e-12)
	assert.Equal(t, 1+int(math.Round(maxF/df)), f.Len())
	assert.Equal(t, 0.0, f.Min())
	assert.True(t, f.HasZero())
}

func TestFrequenciesFromTimesNSamples(t *testing.T) {
	tm, _ := NewRegularTimes(10, 1, 0)

	f, err := FrequenciesFromTimes(tm, WithNSamples(7), WithMinimumFrequency(0.1))
	require.NoError(t, err)
	assert.Equal(t, 7, f.Len())
	assert.Equal(t, 0.1, f.Min())

	single, _ := NewTimes([]float64{1}, UnknownSpacing)
	_, err = FrequenciesFromTimes(single)
	require.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = FrequenciesFromTimes(nil)
	require.ErrorIs(t, err, core.ErrPreconditionMissing)
}

func TestNewFrequenciesDefaults(t *testing.T) {
	f, err := NewFrequencies([]float64{0.5, 0.75, 1})
	require.NoError(t, err)
	assert.Equal(t, 0.25, f.DF())
	assert.Equal(t, 1.0, f.SamplesPerPeak())
	assert.Equal(t, 0.25, f.BasicDF())
	assert.False(t, f.HasZero())

	f, err = NewFrequencies([]float64{1, 2}, WithDF(0.5), WithSamplesPerPeak(4))
	require.NoError(t, err)
	assert.Equal(t, 2.0, f.BasicDF())

	_, err = NewFrequencies(nil)
	require.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = NewFrequencies([]float64{1, 1, 2})
	require.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestCopyFrequenciesKeepsBasicDF(t *testing.T) {
	src, _ := FrequenciesFromBasicDF(0.5, 10, 0, 5)
	dup, err := CopyFrequencies(src, []float64{1, 2, 3})
	require.NoError(t, err)

	assert.Equal(t, src.BasicDF(), dup.BasicDF())
	assert.Equal(t, src.SamplesPerPeak(), dup.SamplesPerPeak())
}

func TestFrequenciesFromBasicDF(t *testing.T) {
	f, err := FrequenciesFromBasicDF(2, 5, 1, 4)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 1.5, 2, 2.5, 3}, f.Values(), 1e-12)
	assert.Equal(t, 2.0, f.BasicDF())

	_, err = FrequenciesFromBasicDF(0, 5, 0, 1)
	require.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestCheckNSST(t *testing.T) {
	f, _ := NewFrequencies([]float64{0, 5, 10})

	assert.True(t, f.CheckNSST(4.9))
	assert.False(t, f.CheckNSST(5), "2B == max must not satisfy the theorem")
	assert.False(t, f.CheckNSST(6))
}

func TestSplitByZero(t *testing.T) {
	f, err := Symmetric(1, 0.25, 1)
	require.NoError(t, err)
	assert.Equal(t, 9, f.Len())

	idx, ok := f.ZeroIndex()
	require.True(t, ok)
	assert.Equal(t, 4, idx)

	neg, pos, ok := f.SplitByZero()
	require.True(t, ok)
	assert.Equal(t, []float64{-1, -0.75, -0.5, -0.25}, neg)
	assert.Equal(t, []float64{0.25, 0.5, 0.75, 1}, pos)

	nz, _ := NewFrequencies([]float64{1, 2})
	_, _, ok = nz.SplitByZero()
	assert.False(t, ok)
	_, ok = nz.ZeroIndex()
	assert.False(t, ok)
}

func TestFrequenciesEqual(t *testing.T) {
	a, _ := NewFrequencies([]float64{1, 2, 3})
	b, _ := NewFrequencies([]float64{1, 2, 3})
	c, _ := NewFrequencies([]float64{1, 2, 3}, WithSamplesPerPeak(2))

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
}
