// Package delta implements a one-bit delta modulator with a fixed step.
//
// The encoder tracks the input with a staircase: each sample is compared with
// the running threshold, a 0 is emitted and the threshold raised by one step
// when the sample lies above it, otherwise a 1 is emitted and the threshold
// lowered. The decoder replays the bit stream into a staircase of its own.
package delta

import (
	"errors"
	"fmt"
)

// Defaults for the staircase.
const (
	DefaultInitial            = 0.01
	DefaultStep               = 0.01
	DefaultReconstructionStep = 0.001
)

var (
	ErrEmptyInput  = errors.New("delta: empty input")
	ErrInvalidStep = errors.New("delta: step must be > 0")
	ErrInvalidBit  = errors.New("delta: bit must be 0 or 1")
)

type config struct {
	initial   float64
	step      float64
	reconStep float64
}

func defaultConfig() config {
	return config{
		initial:   DefaultInitial,
		step:      DefaultStep,
		reconStep: DefaultReconstructionStep,
	}
}

// Option configures the modulator.
type Option func(*config)

// WithInitial sets the starting threshold of both encoder and decoder.
func WithInitial(v float64) Option {
	return func(c *config) { c.initial = v }
}

// WithStep sets the encoder step.
func WithStep(v float64) Option {
	return func(c *config) { c.step = v }
}

// WithReconstructionStep sets the decoder step. It defaults to a tenth of
// the encoder step, which reproduces a scaled-down staircase.
func WithReconstructionStep(v float64) Option {
	return func(c *config) { c.reconStep = v }
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Encode returns one bit per input sample.
func Encode(samples []float64, opts ...Option) ([]int, error) {
	bits, _, err := EncodeTrace(samples, opts...)
	return bits, err
}

// EncodeTrace returns the bits together with the threshold each sample was
// compared against.
func EncodeTrace(samples []float64, opts ...Option) (bits []int, thresholds []float64, err error) {
	if len(samples) == 0 {
		return nil, nil, ErrEmptyInput
	}
	cfg := applyOptions(opts)
	if cfg.step <= 0 {
		return nil, nil, fmt.Errorf("%w: %g", ErrInvalidStep, cfg.step)
	}

	bits = make([]int, len(samples))
	thresholds = make([]float64, len(samples))
	threshold := cfg.initial
	for i, x := range samples {
		thresholds[i] = threshold
		if threshold < x {
			bits[i] = 0
			threshold += cfg.step
		} else {
			bits[i] = 1
			threshold -= cfg.step
		}
	}
	return bits, thresholds, nil
}

// Reconstruct replays bits into a staircase: 0 raises the level by the
// reconstruction step, 1 lowers it. out[i] is the level after bit i.
func Reconstruct(bits []int, opts ...Option) ([]float64, error) {
	if len(bits) == 0 {
		return nil, ErrEmptyInput
	}
	cfg := applyOptions(opts)
	if cfg.reconStep <= 0 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidStep, cfg.reconStep)
	}

	out := make([]float64, len(bits))
	level := cfg.initial
	for i, b := range bits {
		switch b {
		case 0:
			level += cfg.reconStep
		case 1:
			level -= cfg.reconStep
		default:
			return nil, fmt.Errorf("%w: %d at index %d", ErrInvalidBit, b, i)
		}
		out[i] = level
	}
	return out, nil
}
