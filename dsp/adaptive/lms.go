package adaptive

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
)

// LMS is a least-mean-squares filter: w += mu * e * x.
type LMS struct {
	mu      float64
	weights []float64
	initial []float64
	scratch []float64
}

// NewLMS creates an LMS filter with the given tap count and step size.
func NewLMS(taps int, mu float64, opts ...Option) (*LMS, error) {
	if taps <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTaps, taps)
	}
	if mu <= 0 || math.IsNaN(mu) || math.IsInf(mu, 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidStepSize, mu)
	}
	w, err := applyOptions(opts).initialWeights(taps)
	if err != nil {
		return nil, err
	}
	return &LMS{
		mu:      mu,
		weights: append([]float64(nil), w...),
		initial: w,
		scratch: make([]float64, taps),
	}, nil
}

// Update implements Filter.
func (f *LMS) Update(window []float64, target float64) (float64, float64, error) {
	if err := checkWindow(window, len(f.weights), target); err != nil {
		return 0, 0, err
	}
	prediction := floats.Dot(f.weights, window)
	e := target - prediction

	vecmath.ScaleBlock(f.scratch, window, f.mu*e)
	vecmath.AddBlockInPlace(f.weights, f.scratch)
	return prediction, e, nil
}

// Weights returns a copy of the current weights.
func (f *LMS) Weights() []float64 { return append([]float64(nil), f.weights...) }

// Taps returns the filter length.
func (f *LMS) Taps() int { return len(f.weights) }

// StepSize returns mu.
func (f *LMS) StepSize() float64 { return f.mu }

// Reset restores the initial weights.
func (f *LMS) Reset() { copy(f.weights, f.initial) }
