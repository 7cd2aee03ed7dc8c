package dft

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/cwbudde/algo-comm/dsp/spectrum"
)

// ErrEmptyInput is returned for zero-length transforms.
var ErrEmptyInput = errors.New("dft: empty input")

// Basis returns the n x n forward DFT matrix W[k][j] = exp(-2*pi*i*k*j/n).
func Basis(n int) [][]complex128 {
	w := make([][]complex128, n)
	for k := range w {
		row := make([]complex128, n)
		for j := range row {
			row[j] = cmplx.Exp(complex(0, -2*math.Pi*float64(k*j)/float64(n)))
		}
		w[k] = row
	}
	return w
}

// Naive computes X = W * x for a real input sequence.
func Naive(x []float64) ([]complex128, error) {
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}
	cx := make([]complex128, len(x))
	for i, v := range x {
		cx[i] = complex(v, 0)
	}
	return NaiveComplex(cx)
}

// NaiveComplex computes X = W * x for a complex input sequence.
func NaiveComplex(x []complex128) ([]complex128, error) {
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}
	return multiply(Basis(len(x)), x), nil
}

// InverseNaive computes x = (1/N) * conj(W) * X.
func InverseNaive(X []complex128) ([]complex128, error) {
	if len(X) == 0 {
		return nil, ErrEmptyInput
	}
	w := Basis(len(X))
	for _, row := range w {
		for j := range row {
			row[j] = cmplx.Conj(row[j])
		}
	}
	out := multiply(w, X)
	scale := complex(1/float64(len(X)), 0)
	for i := range out {
		out[i] *= scale
	}
	return out, nil
}

func multiply(w [][]complex128, x []complex128) []complex128 {
	out := make([]complex128, len(w))
	for k, row := range w {
		var acc complex128
		for j, v := range x {
			acc += row[j] * v
		}
		out[k] = acc
	}
	return out
}

// Fast computes the same transform as [Naive] with an FFT. Power-of-two
// lengths run on an algo-fft plan, other lengths on gonum's mixed-radix FFT.
func Fast(x []float64) ([]complex128, error) {
	n := len(x)
	if n == 0 {
		return nil, ErrEmptyInput
	}
	cx := make([]complex128, n)
	for i, v := range x {
		cx[i] = complex(v, 0)
	}

	if n&(n-1) == 0 {
		plan, err := algofft.NewPlan64(n)
		if err != nil {
			return nil, fmt.Errorf("dft: failed to create FFT plan: %w", err)
		}
		out := make([]complex128, n)
		if err := plan.Forward(out, cx); err != nil {
			return nil, fmt.Errorf("dft: forward FFT failed: %w", err)
		}
		return out, nil
	}

	return fourier.NewCmplxFFT(n).Coefficients(nil, cx), nil
}

// Magnitude returns |X[k]| for each bin.
func Magnitude(X []complex128) []float64 {
	return spectrum.Magnitude(X)
}

// MaxDeviation returns the largest |a[k]-b[k]| over two equal-length spectra.
func MaxDeviation(a, b []complex128) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("dft: length mismatch: %d != %d", len(a), len(b))
	}
	worst := 0.0
	for k := range a {
		worst = math.Max(worst, cmplx.Abs(a[k]-b[k]))
	}
	return worst, nil
}
