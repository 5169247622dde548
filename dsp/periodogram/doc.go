// Package periodogram estimates power spectra of irregularly sampled time
// series on a fixed frequency grid.
//
// An Estimator tapers the data with a Tukey window, evaluates a periodogram
// kernel (Lomb-Scargle by default) and normalizes by the taper power. The
// kernel is never evaluated at zero frequency: on grids holding an exact
// zero, the negative and positive halves are computed separately and the
// zero bin takes the smallest power of the shorter half. LombWelch averages
// the periodograms of overlapping segments to reduce variance.
package periodogram
