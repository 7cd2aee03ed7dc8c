package fir

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-comm/dsp/core"
)

// Filter implements a direct-form FIR filter using a circular-buffer delay line.
type Filter struct {
	coeffs []float64
	delay  []float64
	pos    int
}

// New creates a FIR filter from the given coefficient slice.
// The coefficients are copied. The filter order is len(coeffs)-1.
func New(coeffs []float64) *Filter {
	c := make([]float64, len(coeffs))
	copy(c, coeffs)
	return &Filter{
		coeffs: c,
		delay:  make([]float64, len(coeffs)),
	}
}

// ProcessSample filters one input sample using direct convolution
// with a circular delay line.
//
//	y[n] = sum_{k=0}^{N-1} h[k] * x[n-k]
func (f *Filter) ProcessSample(x float64) float64 {
	n := len(f.coeffs)
	if n == 0 {
		return 0
	}
	f.delay[f.pos] = x
	var y float64
	p := f.pos
	for k := range n {
		y += f.coeffs[k] * f.delay[p]
		p--
		if p < 0 {
			p = n - 1
		}
	}
	f.pos++
	if f.pos >= n {
		f.pos = 0
	}
	return y
}

// Process filters src into a new slice of the same length. The filter state
// carries over between calls.
func (f *Filter) Process(src []float64) []float64 {
	out := make([]float64, len(src))
	for i, x := range src {
		out[i] = f.ProcessSample(x)
	}
	return out
}

// ProcessCentered filters src from a cleared state and removes the group
// delay of a linear-phase filter, so out[i] lines up with src[i]. The input
// is followed by (len(coeffs)-1)/2 zeros to flush the tail.
func (f *Filter) ProcessCentered(src []float64) []float64 {
	f.Reset()
	delay := f.Order() / 2
	out := make([]float64, len(src))
	for i := 0; i < len(src)+delay; i++ {
		x := 0.0
		if i < len(src) {
			x = src[i]
		}
		y := f.ProcessSample(x)
		if j := i - delay; j >= 0 {
			out[j] = y
		}
	}
	return out
}

// Reset clears the delay line to zero.
func (f *Filter) Reset() {
	for i := range f.delay {
		f.delay[i] = 0
	}
	f.pos = 0
}

// Order returns the filter order (len(coeffs) - 1).
func (f *Filter) Order() int {
	return len(f.coeffs) - 1
}

// Coefficients returns a copy of the filter coefficients.
func (f *Filter) Coefficients() []float64 {
	c := make([]float64, len(f.coeffs))
	copy(c, f.coeffs)
	return c
}

// Response computes the complex frequency response H(e^{jw}) at the given
// frequency (Hz) and sample rate (Hz).
func (f *Filter) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	var h complex128
	for k, c := range f.coeffs {
		h += complex(c, 0) * cmplx.Exp(complex(0, -w*float64(k)))
	}
	return h
}

// MagnitudeDB returns the magnitude response in dB at the given frequency.
func (f *Filter) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return core.LinearToDB(cmplx.Abs(f.Response(freqHz, sampleRate)))
}
