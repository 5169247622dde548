// Package nfft implements a non-uniform discrete Fourier transform and an
// iterative solver for its inverse.
//
// A Plan pairs arbitrary sample positions x_j with arbitrary frequencies
// f_k and evaluates
//
//	Trafo:   v_j = sum_k c_k exp(+2 pi i f_k x_j)
//	Adjoint: c_k = sum_j v_j exp(-2 pi i f_k x_j)
//
// directly, without a periodicity assumption. A Solver recovers the
// coefficients c from observed values v with CGNR (conjugate gradients on
// the normal equations), stopping once every residual magnitude is below
// the tolerance or after a fixed number of iterations.
package nfft
