// Package array provides the numeric container underneath time and
// frequency series: an immutable, fixed-length sequence of real or complex
// samples with element-wise arithmetic, slicing and projections.
//
// Real-valued kernels route through algo-vecmath block operations.
package array
