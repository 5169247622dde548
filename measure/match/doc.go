// Package match measures how well two spectra overlap.
//
// The match is the noise-weighted inner product
//
//	<a, b> = sum_k conj(a_k) b_k / S_k
//
// maximized over circular time shifts of b and normalized by
// sqrt(<a, a> <b, b>), so it lies in [0, 1] and equals 1 when b is a
// time-shifted, rescaled copy of a. S is the one-sided noise power spectral
// density; without one, every bin is weighted equally.
//
// The shift search multiplies b by exp(2 pi i k m / P) for every lag m,
// which is one inverse FFT of the weighted cross spectrum zero padded to
// the next power of two P.
package match
