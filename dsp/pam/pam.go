// Package pam estimates the symbol error probability of bipolar PAM over an
// additive white Gaussian noise channel by Monte Carlo simulation and
// compares it with the closed form 0.5*erfc(sqrt(Eb/N0)).
package pam

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-comm/dsp/core"
	"github.com/cwbudde/algo-comm/dsp/signal"
)

var (
	ErrInvalidConfig  = errors.New("pam: invalid config")
	ErrLengthMismatch = errors.New("pam: length mismatch")
)

// Config sets the Monte Carlo size and the SNR sweep in dB.
type Config struct {
	Symbols int
	SNRdB   []float64
}

// DefaultConfig runs 10000 symbols at 1..10 dB.
func DefaultConfig() Config {
	snr := make([]float64, 10)
	for i := range snr {
		snr[i] = float64(i + 1)
	}
	return Config{Symbols: 10000, SNRdB: snr}
}

// Validate checks the sweep.
func (c Config) Validate() error {
	if c.Symbols <= 0 {
		return fmt.Errorf("%w: symbols %d", ErrInvalidConfig, c.Symbols)
	}
	if len(c.SNRdB) == 0 {
		return fmt.Errorf("%w: empty SNR sweep", ErrInvalidConfig)
	}
	for _, db := range c.SNRdB {
		if math.IsNaN(db) || math.IsInf(db, 0) {
			return fmt.Errorf("%w: SNR %v dB", ErrInvalidConfig, db)
		}
	}
	return nil
}

// Point is the result at one SNR.
type Point struct {
	SNRdB       float64
	Sigma       float64
	Errors      int
	Empirical   float64
	Theoretical float64
}

// Sigma returns the noise standard deviation for unit-energy symbols at the
// given Eb/N0 in dB: sqrt(1/(2*snr)).
func Sigma(snrDB float64) float64 {
	return math.Sqrt(1 / (2 * core.DBPowerToLinear(snrDB)))
}

// Theoretical returns 0.5*erfc(sqrt(snr)) for snr = 10^(dB/10).
func Theoretical(snrDB float64) float64 {
	return 0.5 * math.Erfc(math.Sqrt(core.DBPowerToLinear(snrDB)))
}

// Decide maps received samples to +1 when positive and -1 otherwise.
func Decide(r []float64) []float64 {
	out := make([]float64, len(r))
	for i, v := range r {
		if v > 0 {
			out[i] = 1
		} else {
			out[i] = -1
		}
	}
	return out
}

// CountErrors counts positions where the decided symbols differ.
func CountErrors(sent, decided []float64) (int, error) {
	if len(sent) != len(decided) {
		return 0, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(sent), len(decided))
	}
	n := 0
	for i := range sent {
		if sent[i] != decided[i] {
			n++
		}
	}
	return n, nil
}

// Simulate draws one bipolar sequence and measures the error rate at each
// SNR with fresh noise.
func Simulate(cfg Config, gen *signal.Generator) ([]Point, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	bits, err := gen.Bits(cfg.Symbols)
	if err != nil {
		return nil, fmt.Errorf("pam: %w", err)
	}
	symbols, err := signal.Bipolar(bits)
	if err != nil {
		return nil, fmt.Errorf("pam: %w", err)
	}

	points := make([]Point, 0, len(cfg.SNRdB))
	for _, db := range cfg.SNRdB {
		sigma := Sigma(db)
		noise, err := gen.Gaussian(sigma, cfg.Symbols)
		if err != nil {
			return nil, fmt.Errorf("pam: %g dB: %w", db, err)
		}
		received, err := signal.Add(symbols, noise)
		if err != nil {
			return nil, fmt.Errorf("pam: %g dB: %w", db, err)
		}
		errs, err := CountErrors(symbols, Decide(received))
		if err != nil {
			return nil, err
		}
		points = append(points, Point{
			SNRdB:       db,
			Sigma:       sigma,
			Errors:      errs,
			Empirical:   float64(errs) / float64(cfg.Symbols),
			Theoretical: Theoretical(db),
		})
	}
	return points, nil
}
