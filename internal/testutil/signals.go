package testutil

import (
	"math"
	"math/rand"
)

// SineAt samples amplitude*sin(2*pi*freq*t + phase) at every timestamp.
func SineAt(times []float64, freq, amplitude, phase float64) []float64 {
	out := make([]float64, len(times))
	for i, t := range times {
		out[i] = amplitude * math.Sin(2*math.Pi*freq*t+phase)
	}
	return out
}

// MultiSineAt sums one unit-amplitude sine per frequency at every timestamp.
func MultiSineAt(times []float64, freqs ...float64) []float64 {
	out := make([]float64, len(times))
	for _, f := range freqs {
		for i, v := range SineAt(times, f, 1, 0) {
			out[i] += v
		}
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Add returns a + b element-wise over the shorter length.
func Add(a, b []float64) []float64 {
	n := min(len(a), len(b))
	out := make([]float64, n)
	for i := range out {
		out[i] = a[i] + b[i]
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// ArgMax returns the index of the largest value; ties resolve to the lowest index.
func ArgMax(x []float64) int {
	best := 0
	for i, v := range x {
		if v > x[best] {
			best = i
		}
	}
	return best
}
