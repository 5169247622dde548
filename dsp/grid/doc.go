// Package grid provides the sampling axes shared by time and frequency
// series: irregular time grids, their generator, and oversampled frequency
// grids sized from a time span.
//
// Grids are immutable once built and may be shared by any number of series.
// A time grid produced by the slight, outlier or change+spacing recipes is
// unordered-perturbed: jitter may swap neighbouring timestamps. Only regular
// grids and automix grids are ascending-guaranteed; Times.Ordered reports
// the actual state of a grid.
package grid
