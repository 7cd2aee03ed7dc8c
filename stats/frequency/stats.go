// Package frequency computes shape descriptors of a one-sided magnitude
// spectrum such as the one returned by spectrum.OneSided.
package frequency

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrEmptyInput     = errors.New("frequency: empty spectrum")
	ErrLengthMismatch = errors.New("frequency: frequency and magnitude lengths differ")
	ErrInvalidFrac    = errors.New("frequency: fraction must be in (0, 1]")
)

// Stats describes the shape of a magnitude spectrum.
type Stats struct {
	Bins     int
	Peak     float64 // largest magnitude
	PeakHz   float64
	Energy   float64 // sum of squared magnitudes
	Centroid float64 // magnitude-weighted mean frequency (Hz)
	Spread   float64 // magnitude-weighted standard deviation around Centroid (Hz)
	Flatness float64 // geometric over arithmetic mean, 0..1, DC excluded
	Rolloff  float64 // frequency below which 85% of the energy lies (Hz)
	Occupied float64 // width holding the central 99% of the energy (Hz)
}

func check(freqs, mags []float64) error {
	if len(mags) == 0 {
		return ErrEmptyInput
	}
	if len(freqs) != len(mags) {
		return fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(freqs), len(mags))
	}
	return nil
}

// Calculate computes all descriptors. freqs holds the bin frequencies in
// ascending order and mags the linear magnitudes.
func Calculate(freqs, mags []float64) (Stats, error) {
	if err := check(freqs, mags); err != nil {
		return Stats{}, err
	}

	s := Stats{Bins: len(mags)}
	peak := floats.MaxIdx(mags)
	s.Peak, s.PeakHz = mags[peak], freqs[peak]
	s.Energy = floats.Dot(mags, mags)
	s.Flatness = flatness(mags)
	if floats.Sum(mags) == 0 {
		return s, nil
	}

	mean, variance := stat.PopMeanVariance(freqs, mags)
	s.Centroid, s.Spread = mean, math.Sqrt(variance)
	s.Rolloff = rolloff(freqs, mags, 0.85)
	s.Occupied = rolloff(freqs, mags, 0.995) - rolloff(freqs, mags, 0.005)
	return s, nil
}

// Flatness returns the spectral flatness of mags with the DC bin skipped.
// Any zero bin gives 0.
func Flatness(mags []float64) float64 {
	return flatness(mags)
}

func flatness(mags []float64) float64 {
	if len(mags) < 2 {
		return 0
	}
	bins := mags[1:]
	mean := stat.Mean(bins, nil)
	if mean == 0 || floats.Min(bins) <= 0 {
		return 0
	}
	return stat.GeometricMean(bins, nil) / mean
}

// Rolloff returns the lowest frequency at which the cumulative energy reaches
// frac of the total.
func Rolloff(freqs, mags []float64, frac float64) (float64, error) {
	if err := check(freqs, mags); err != nil {
		return 0, err
	}
	if frac <= 0 || frac > 1 || math.IsNaN(frac) {
		return 0, fmt.Errorf("%w: %g", ErrInvalidFrac, frac)
	}
	return rolloff(freqs, mags, frac), nil
}

func rolloff(freqs, mags []float64, frac float64) float64 {
	energy := make([]float64, len(mags))
	floats.MulTo(energy, mags, mags)
	floats.CumSum(energy, energy)
	total := energy[len(energy)-1]
	if total == 0 {
		return freqs[0]
	}
	threshold := frac * total
	for i, e := range energy {
		if e >= threshold {
			return freqs[i]
		}
	}
	return freqs[len(freqs)-1]
}
