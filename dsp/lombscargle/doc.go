// Package lombscargle evaluates the generalized Lomb-Scargle periodogram of
// irregularly sampled real data.
//
// The kernel fits a sinusoid plus an optional floating offset at every
// requested frequency and reports the fitted power. Two evaluation methods
// are available: a direct O(N*M) summation and the Press & Rybicki scheme,
// which extirpolates the samples onto a regular grid and obtains every
// trigonometric sum from one inverse FFT. The fast method requires an evenly
// spaced frequency grid; MethodAuto picks it for large problems and falls
// back to direct summation otherwise.
//
// Frequencies are in cycles per time unit and must be strictly positive.
package lombscargle
