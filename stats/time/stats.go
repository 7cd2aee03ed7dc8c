// Package time summarizes sample sequences in the time domain for the
// exercise reports: extremes, level, and the error between a processed
// signal and its reference.
package time

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-comm/dsp/core"
)

// ErrLengthMismatch is returned when two signals must have equal length.
var ErrLengthMismatch = errors.New("stats: length mismatch")

// Stats holds time-domain signal statistics.
//
//nolint:revive
type Stats struct {
	Length        int
	Mean          float64
	Variance      float64 // population variance
	RMS           float64
	RMS_dB        float64
	Max           float64
	MaxPos        int
	Min           float64
	MinPos        int
	Peak          float64 // max(|max|, |min|)
	Peak_dB       float64
	Energy        float64 // sum of squares
	ZeroCrossings int
}

// ampTodB converts an amplitude value to decibels: 20 * log10(|value|).
// Returns -Inf for zero values.
func ampTodB(value float64) float64 {
	return core.LinearToDB(math.Abs(value))
}

// Calculate computes the statistics of signal. An empty signal yields zero
// values with -Inf for the dB fields.
func Calculate(signal []float64) Stats {
	n := len(signal)
	if n == 0 {
		return Stats{RMS_dB: math.Inf(-1), Peak_dB: math.Inf(-1)}
	}

	mean, variance := stat.PopMeanVariance(signal, nil)
	energy := floats.Dot(signal, signal)
	rms := math.Sqrt(energy / float64(n))
	maxPos, minPos := floats.MaxIdx(signal), floats.MinIdx(signal)
	peak := math.Max(math.Abs(signal[maxPos]), math.Abs(signal[minPos]))

	return Stats{
		Length:        n,
		Mean:          mean,
		Variance:      variance,
		RMS:           rms,
		RMS_dB:        ampTodB(rms),
		Max:           signal[maxPos],
		MaxPos:        maxPos,
		Min:           signal[minPos],
		MinPos:        minPos,
		Peak:          peak,
		Peak_dB:       ampTodB(peak),
		Energy:        energy,
		ZeroCrossings: ZeroCrossings(signal),
	}
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	return math.Sqrt(floats.Dot(signal, signal) / float64(len(signal)))
}

// ZeroCrossings returns the number of zero crossings in the signal.
// A crossing is counted when consecutive samples have opposite signs.
func ZeroCrossings(signal []float64) int {
	var count int

	for i := 1; i < len(signal); i++ {
		if signal[i-1]*signal[i] < 0 {
			count++
		}
	}

	return count
}

// MSE returns the mean squared difference between processed and reference.
func MSE(processed, reference []float64) (float64, error) {
	if len(processed) != len(reference) {
		return 0, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(processed), len(reference))
	}
	if len(processed) == 0 {
		return 0, nil
	}

	d := make([]float64, len(processed))
	floats.SubTo(d, processed, reference)

	return floats.Dot(d, d) / float64(len(d)), nil
}

// SNR returns the reference energy over the error energy in dB. A perfect
// match yields +Inf.
func SNR(processed, reference []float64) (float64, error) {
	mse, err := MSE(processed, reference)
	if err != nil {
		return 0, err
	}
	if mse == 0 {
		return math.Inf(1), nil
	}
	ref := RMS(reference)

	return core.LinearPowerToDB(ref * ref / mse), nil
}
