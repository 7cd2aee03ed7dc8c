// Package qam models a two-branch quadrature amplitude modulator and its
// coherent demodulator as an offline batch computation.
//
// Integer levels on each branch are held for SamplesPerSymbol samples and
// mixed onto a cosine and a sine carrier. The receiver multiplies by
// 2cos and 2sin and removes the double-frequency terms with a windowed-sinc
// low-pass filter.
package qam

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-comm/dsp/core"
	"github.com/cwbudde/algo-comm/dsp/filter/fir"
	"github.com/cwbudde/algo-comm/dsp/window"
)

var (
	ErrInvalidConfig  = errors.New("qam: invalid config")
	ErrLengthMismatch = errors.New("qam: branch lengths differ")
	ErrEmptyInput     = errors.New("qam: empty input")
)

// Config describes the modulator and receiver.
type Config struct {
	SampleRate       float64
	CarrierHz        float64
	SamplesPerSymbol int
	CutoffHz         float64
	Taps             int
	Window           window.Type
}

// DefaultConfig returns a 140 kHz carrier at 500 kS/s with 100 samples per
// symbol and a 101-tap Hamming low-pass at 70 kHz.
func DefaultConfig() Config {
	return Config{
		SampleRate:       500000,
		CarrierHz:        140000,
		SamplesPerSymbol: 100,
		CutoffHz:         70000,
		Taps:             101,
		Window:           window.TypeHamming,
	}
}

// Validate checks that the carrier and cutoff sit below Nyquist and that the
// symbol and filter lengths are usable.
func (c Config) Validate() error {
	nyquist := c.SampleRate / 2
	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %g", ErrInvalidConfig, c.SampleRate)
	case c.CarrierHz <= 0 || c.CarrierHz >= nyquist:
		return fmt.Errorf("%w: carrier %g Hz not in (0, %g)", ErrInvalidConfig, c.CarrierHz, nyquist)
	case c.CutoffHz <= 0 || c.CutoffHz >= nyquist:
		return fmt.Errorf("%w: cutoff %g Hz not in (0, %g)", ErrInvalidConfig, c.CutoffHz, nyquist)
	case c.SamplesPerSymbol <= 0:
		return fmt.Errorf("%w: samples per symbol %d", ErrInvalidConfig, c.SamplesPerSymbol)
	case c.Taps <= 0 || c.Taps%2 == 0:
		return fmt.Errorf("%w: taps %d must be odd and positive", ErrInvalidConfig, c.Taps)
	}
	return nil
}

// Level alphabet of each branch.
const (
	MinLevel = -2
	MaxLevel = 1
)

// IntSource draws uniform integers in [lo, hi).
type IntSource interface {
	Integers(lo, hi, n int) ([]int, error)
}

// Symbols draws n levels from {-2, -1, 0, 1}.
func Symbols(n int, src IntSource) ([]int, error) {
	levels, err := src.Integers(MinLevel, MaxLevel+1, n)
	if err != nil {
		return nil, fmt.Errorf("qam: symbols: %w", err)
	}
	return levels, nil
}

// Hold repeats every level sps times.
func Hold(levels []int, sps int) []float64 {
	out := make([]float64, 0, len(levels)*sps)
	for _, v := range levels {
		for range sps {
			out = append(out, float64(v))
		}
	}
	return out
}

// Modulate returns s[n] = m1[n]cos(2πfc n/fs) + m2[n]sin(2πfc n/fs) where m1
// and m2 are the held in-phase and quadrature levels.
func Modulate(i, q []int, cfg Config) ([]float64, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(i) != len(q) {
		return nil, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(i), len(q))
	}
	if len(i) == 0 {
		return nil, ErrEmptyInput
	}

	m1 := Hold(i, cfg.SamplesPerSymbol)
	m2 := Hold(q, cfg.SamplesPerSymbol)
	w := 2 * math.Pi * cfg.CarrierHz / cfg.SampleRate
	s := make([]float64, len(m1))
	for n := range s {
		sin, cos := math.Sincos(w * float64(n))
		s[n] = m1[n]*cos + m2[n]*sin
	}
	return s, nil
}

// Demodulate mixes s with 2cos and 2sin carriers and low-pass filters both
// products. The outputs are aligned with s.
func Demodulate(s []float64, cfg Config) (m1, m2 []float64, err error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	if len(s) == 0 {
		return nil, nil, ErrEmptyInput
	}
	taps, err := fir.DesignLowPass(cfg.CutoffHz, cfg.SampleRate, cfg.Taps, cfg.Window)
	if err != nil {
		return nil, nil, fmt.Errorf("qam: receive filter: %w", err)
	}

	w := 2 * math.Pi * cfg.CarrierHz / cfg.SampleRate
	mixI := make([]float64, len(s))
	mixQ := make([]float64, len(s))
	for n, v := range s {
		sin, cos := math.Sincos(w * float64(n))
		mixI[n] = 2 * v * cos
		mixQ[n] = 2 * v * sin
	}

	lp := fir.New(taps)
	m1 = lp.ProcessCentered(mixI)
	m2 = lp.ProcessCentered(mixQ)
	return m1, m2, nil
}

// Slice samples each branch at the centre of every symbol and decides the
// nearest level of the alphabet.
func Slice(m []float64, sps int) []int {
	if sps <= 0 {
		return nil
	}
	out := make([]int, len(m)/sps)
	for k := range out {
		out[k] = int(math.Round(core.Clamp(m[k*sps+sps/2], MinLevel, MaxLevel)))
	}
	return out
}
