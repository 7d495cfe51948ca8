// Package window implements the numeric leaf operations of the MOSSE
// pipeline that operate on a single N x N luminance window: pixel
// preprocessing, target template synthesis, affine perturbation
// generation for training, and Peak-to-Sidelobe-Ratio estimation.
//
// Like the teacher module's x/math/dsp and x/math/mat packages, this
// package favors flat, row-major, stride-1 slices over nested
// structures, and uses github.com/chewxy/math32 for the float32 stages
// (preprocessing, template, perturbations) for parity with the
// single-precision reference this filter was distilled from. PSR
// estimation works on the complex128 response map with the standard
// math package.
package window
