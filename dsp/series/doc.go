// Package series binds sample containers to their sampling axes and moves
// them between the time and frequency domains.
//
// A TimeSeries pairs an array.Array with a grid.Times; a FrequencySeries
// pairs one with a grid.Frequencies and an epoch, the absolute time the
// spectrum is anchored to. Series never mutate their grids: slicing,
// windowing and appending return new series.
//
// Conversion between the domains is pluggable. MethodRegression fits a
// sinusoidal dictionary through a Regressor; MethodNFFT solves a
// non-uniform transform through a TransformSolver. Both are Converter
// strategies selected by ConvertOptions.Method.
package series
