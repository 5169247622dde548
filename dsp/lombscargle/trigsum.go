package lombscargle

import (
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"
)

func directSums(freqs, times, y []float64, w float64) trigSums {
	m := len(freqs)
	s := trigSums{
		sh: make([]float64, m), ch: make([]float64, m),
		s2: make([]float64, m), c2: make([]float64, m),
		s: make([]float64, m), c: make([]float64, m),
	}

	for i, f := range freqs {
		omega := 2 * math.Pi * f

		for j, t := range times {
			sin1, cos1 := math.Sincos(omega * t)
			sin2 := 2 * sin1 * cos1
			cos2 := cos1*cos1 - sin1*sin1

			s.sh[i] += w * y[j] * sin1
			s.ch[i] += w * y[j] * cos1
			s.s2[i] += w * sin2
			s.c2[i] += w * cos2
			s.s[i] += w * sin1
			s.c[i] += w * cos1
		}
	}

	return s
}

// fastSums evaluates the sums at f0 + df*k, k in [0, n), with the
// Press & Rybicki extirpolation scheme.
func (k *Kernel) fastSums(f0, df float64, n int, times, y []float64, w float64) (trigSums, error) {
	h := make([]float64, len(y))
	weights := make([]float64, len(y))
	for i := range y {
		h[i] = w * y[i]
		weights[i] = w
	}

	var (
		s   trigSums
		err error
	)

	if s.sh, s.ch, err = k.trigSum(times, h, df, n, f0, 1); err != nil {
		return trigSums{}, err
	}

	if s.s2, s.c2, err = k.trigSum(times, weights, df, n, f0, 2); err != nil {
		return trigSums{}, err
	}

	if s.s, s.c, err = k.trigSum(times, weights, df, n, f0, 1); err != nil {
		return trigSums{}, err
	}

	return s, nil
}

// trigSum approximates S_k = sum_j h_j sin(2 pi f_k t_j) and the matching
// cosine sum C_k for f_k = factor * (f0 + df*k).
func (k *Kernel) trigSum(times, h []float64, df float64, n int, f0, factor float64) (sin, cos []float64, err error) {
	df *= factor
	f0 *= factor

	nfft := nextPowerOf2(n * k.cfg.oversampling)

	t0 := times[0]
	for _, t := range times {
		t0 = math.Min(t0, t)
	}

	values := make([]complex128, len(h))
	positions := make([]float64, len(h))

	for i, t := range times {
		values[i] = complex(h[i], 0)
		if f0 > 0 {
			s, c := math.Sincos(2 * math.Pi * f0 * (t - t0))
			values[i] *= complex(c, s)
		}

		frac := math.Mod((t-t0)*df, 1)
		if frac < 0 {
			frac++
		}

		positions[i] = frac * float64(nfft)
	}

	grid := extirpolate(positions, values, nfft, k.cfg.mfft)

	plan, err := algofft.NewPlan64(nfft)
	if err != nil {
		return nil, nil, fmt.Errorf("lombscargle: fft plan: %w", err)
	}

	out := make([]complex128, nfft)
	if err := plan.Inverse(out, grid); err != nil {
		return nil, nil, fmt.Errorf("lombscargle: inverse FFT failed: %w", err)
	}

	sin = make([]float64, n)
	cos = make([]float64, n)
	scale := float64(nfft)

	for i := 0; i < n; i++ {
		v := out[i]
		if t0 != 0 {
			f := f0 + df*float64(i)
			s, c := math.Sincos(2 * math.Pi * t0 * f)
			v *= complex(c, s)
		}

		cos[i] = scale * real(v)
		sin[i] = scale * imag(v)
	}

	return sin, cos, nil
}

// extirpolate spreads each value onto the m integer grid points around its
// position so that sum_j y_j f(x_j) ~ sum_i grid_i f(i) for smooth f.
func extirpolate(x []float64, y []complex128, n, m int) []complex128 {
	result := make([]complex128, n)

	factorial := 1.0
	for i := 2; i < m; i++ {
		factorial *= float64(i)
	}

	for i, xi := range x {
		if xi == math.Trunc(xi) {
			result[int(xi)%n] += y[i]
			continue
		}

		ilo := int(xi - float64(m/2))
		if ilo < 0 {
			ilo = 0
		}

		if ilo > n-m {
			ilo = n - m
		}

		numerator := y[i]
		for j := 0; j < m; j++ {
			numerator *= complex(xi-float64(ilo)-float64(j), 0)
		}

		denominator := factorial
		for j := 0; j < m; j++ {
			if j > 0 {
				denominator *= float64(j) / float64(j-m)
			}

			ind := ilo + (m - 1 - j)
			result[ind] += numerator / complex(denominator*(xi-float64(ind)), 0)
		}
	}

	return result
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
