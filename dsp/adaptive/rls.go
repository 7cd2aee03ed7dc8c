package adaptive

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// RLS is a recursive-least-squares filter with exponential forgetting.
type RLS struct {
	lambda  float64
	delta   float64
	weights []float64
	initial []float64
	resets  int

	p    *mat.Dense
	pt   *mat.Dense
	x    *mat.VecDense
	px   *mat.VecDense
	gain *mat.VecDense
}

// NewRLS creates an RLS filter with forgetting factor lambda in (0, 1].
func NewRLS(taps int, lambda float64, opts ...Option) (*RLS, error) {
	if taps <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTaps, taps)
	}
	if !(lambda > 0 && lambda <= 1) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidForgetting, lambda)
	}
	cfg := applyOptions(opts)
	if cfg.delta <= 0 || !isFinite(cfg.delta) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidDelta, cfg.delta)
	}
	w, err := cfg.initialWeights(taps)
	if err != nil {
		return nil, err
	}

	f := &RLS{
		lambda:  lambda,
		delta:   cfg.delta,
		weights: append([]float64(nil), w...),
		initial: w,
		p:       mat.NewDense(taps, taps, nil),
		pt:      mat.NewDense(taps, taps, nil),
		x:       mat.NewVecDense(taps, nil),
		px:      mat.NewVecDense(taps, nil),
		gain:    mat.NewVecDense(taps, nil),
	}
	f.resetP()
	return f, nil
}

func (f *RLS) resetP() {
	f.p.Zero()
	for i := range f.weights {
		f.p.Set(i, i, f.delta)
	}
}

// denominator computes P x into px and returns lambda + xᵀ P x.
func (f *RLS) denominator() float64 {
	f.px.MulVec(f.p, f.x)
	return f.lambda + mat.Dot(f.x, f.px)
}

// Update implements Filter.
func (f *RLS) Update(window []float64, target float64) (float64, float64, error) {
	if err := checkWindow(window, len(f.weights), target); err != nil {
		return 0, 0, err
	}
	prediction := floats.Dot(f.weights, window)
	e := target - prediction

	for i, v := range window {
		f.x.SetVec(i, v)
	}
	den := f.denominator()
	if !isFinite(den) || den <= 0 {
		f.resetP()
		f.resets++
		den = f.denominator()
	}
	f.gain.ScaleVec(1/den, f.px)
	floats.AddScaled(f.weights, e, f.gain.RawVector().Data)

	// P is symmetric, so xᵀP = (Px)ᵀ.
	f.p.RankOne(f.p, -1, f.gain, f.px)
	f.p.Scale(1/f.lambda, f.p)
	f.pt.Copy(f.p.T())
	f.p.Add(f.p, f.pt)
	f.p.Scale(0.5, f.p)

	if !f.healthy() {
		f.resetP()
		f.resets++
	}
	return prediction, e, nil
}

func (f *RLS) healthy() bool {
	for i := range f.weights {
		d := f.p.At(i, i)
		if !isFinite(d) || d <= 0 {
			return false
		}
	}
	return true
}

// Weights returns a copy of the current weights.
func (f *RLS) Weights() []float64 { return append([]float64(nil), f.weights...) }

// Taps returns the filter length.
func (f *RLS) Taps() int { return len(f.weights) }

// ForgettingFactor returns lambda.
func (f *RLS) ForgettingFactor() float64 { return f.lambda }

// Resets returns how often P was re-initialized since the last Reset.
func (f *RLS) Resets() int { return f.resets }

// P returns a copy of the inverse correlation estimate.
func (f *RLS) P() *mat.Dense { return mat.DenseCopyOf(f.p) }

// Reset restores the initial weights and P = delta*I.
func (f *RLS) Reset() {
	copy(f.weights, f.initial)
	f.resetP()
	f.resets = 0
}
