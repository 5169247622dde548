// Package regression fits sinusoidal dictionaries to irregularly sampled
// data.
//
// A Dictionary is the real basis matrix [cos(2 pi f t) | sin(2 pi f t)]
// built from a time grid and a frequency grid. A Regressor solves the ridge
// least-squares problem min ||A beta - y||^2 + alpha ||beta||^2 against a
// dictionary and reports the fit as complex coefficients c_k = a_k - i b_k,
// so that Re(sum_k c_k exp(2 pi i f_k t)) reconstructs the data.
package regression
