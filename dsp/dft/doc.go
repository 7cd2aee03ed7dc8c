// Package dft computes the discrete Fourier transform by explicit
// multiplication with the complex exponential basis matrix.
//
// The O(N^2) form is kept on purpose: every output bin is visibly the inner
// product of the input with one row of
//
//	W[k][n] = exp(-2*pi*i*k*n/N)
//
// [Fast] computes the same transform with an FFT and serves as the reference
// the naive result is checked against.
//
// # Usage
//
//	X, err := dft.Naive(h)
//	mag := dft.Magnitude(X)
package dft
