package testutil

import (
	"math"
	"testing"
)

func TestSineAt(t *testing.T) {
	times := []float64{0, 0.25, 0.5, 0.75}
	s := SineAt(times, 1, 2, 0)
	want := []float64{0, 2, 0, -2}
	RequireSliceNearlyEqual(t, s, want, 1e-12)
}

func TestSineAtPhase(t *testing.T) {
	s := SineAt([]float64{0}, 3, 1, math.Pi/2)
	if math.Abs(s[0]-1) > 1e-15 {
		t.Fatalf("s[0] = %v, want 1", s[0])
	}
}

func TestMultiSineAt(t *testing.T) {
	times := []float64{0, 0.1, 0.37, 1.2}
	got := MultiSineAt(times, 1, 3)
	want := Add(SineAt(times, 1, 1, 0), SineAt(times, 3, 1, 0))
	RequireSliceNearlyEqual(t, got, want, 1e-15)
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)
	if len(a) != 64 {
		t.Fatalf("len = %d, want 64", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
		if a[i] < -1 || a[i] > 1 {
			t.Fatalf("a[%d] = %v out of range", i, a[i])
		}
	}
}

func TestDeterministicNoiseDifferentSeeds(t *testing.T) {
	a := DeterministicNoise(1, 1.0, 16)
	b := DeterministicNoise(2, 1.0, 16)
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestAddShorter(t *testing.T) {
	got := Add([]float64{1, 2, 3}, []float64{1, 1})
	RequireSliceNearlyEqual(t, got, []float64{2, 3}, 0)
}

func TestDC(t *testing.T) {
	d := DC(0.5, 4)
	for i, v := range d {
		if v != 0.5 {
			t.Fatalf("DC[%d] = %v, want 0.5", i, v)
		}
	}
}

func TestArgMax(t *testing.T) {
	if got := ArgMax([]float64{1, 5, 2, 5}); got != 1 {
		t.Fatalf("ArgMax = %d, want 1", got)
	}
}
