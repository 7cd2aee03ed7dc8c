package adaptive

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

var (
	ErrInvalidTaps       = errors.New("adaptive: taps must be > 0")
	ErrInvalidStepSize   = errors.New("adaptive: step size must be > 0 and finite")
	ErrInvalidForgetting = errors.New("adaptive: forgetting factor must be in (0, 1]")
	ErrInvalidDelta      = errors.New("adaptive: delta must be > 0 and finite")
	ErrWindowLength      = errors.New("adaptive: window length does not match taps")
	ErrNonFinite         = errors.New("adaptive: non-finite input")
	ErrLengthMismatch    = errors.New("adaptive: signal lengths differ")
	ErrSignalTooShort    = errors.New("adaptive: signal not longer than the filter")
	ErrInvalidBlock      = errors.New("adaptive: block size must be > 0")
)

// DefaultDelta initializes the RLS inverse correlation matrix as delta*I.
const DefaultDelta = 1e3

// Filter is an adaptive transversal filter.
type Filter interface {
	// Update predicts target from window, adapts the weights and returns
	// the prediction with the a-priori error target - prediction.
	Update(window []float64, target float64) (prediction, residual float64, err error)
	Weights() []float64
	Taps() int
	Reset()
}

type config struct {
	rng     *rand.Rand
	weights []float64
	delta   float64
}

// Option configures a filter.
type Option func(*config)

// WithRand sets the source for the random initial weights.
func WithRand(rng *rand.Rand) Option {
	return func(c *config) { c.rng = rng }
}

// WithInitialWeights starts from the given weights instead of random ones.
// The slice length must equal the tap count.
func WithInitialWeights(w []float64) Option {
	return func(c *config) { c.weights = append([]float64(nil), w...) }
}

// WithDelta sets the RLS initialization P = delta*I. LMS ignores it.
func WithDelta(delta float64) Option {
	return func(c *config) { c.delta = delta }
}

func applyOptions(opts []Option) config {
	cfg := config{delta: DefaultDelta}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// initialWeights returns the configured weights, or uniform [0, 1) draws.
func (c config) initialWeights(taps int) ([]float64, error) {
	if c.weights != nil {
		if len(c.weights) != taps {
			return nil, fmt.Errorf("adaptive: %d initial weights for %d taps", len(c.weights), taps)
		}
		return c.weights, nil
	}
	rng := c.rng
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 2))
	}
	w := make([]float64, taps)
	for i := range w {
		w[i] = rng.Float64()
	}
	return w, nil
}

func checkWindow(window []float64, taps int, target float64) error {
	if len(window) != taps {
		return fmt.Errorf("%w: %d != %d", ErrWindowLength, len(window), taps)
	}
	if !isFinite(target) {
		return fmt.Errorf("%w: target %v", ErrNonFinite, target)
	}
	for i, v := range window {
		if !isFinite(v) {
			return fmt.Errorf("%w: window[%d] = %v", ErrNonFinite, i, v)
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
