package fir

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-comm/dsp/core"
	"github.com/cwbudde/algo-comm/dsp/window"
)

// ErrInvalidDesign is returned when low-pass design parameters are out of range.
var ErrInvalidDesign = errors.New("fir: invalid design parameters")

// DesignLowPass returns windowed-sinc low-pass coefficients with unity DC gain.
//
//	h[n] = 2*fc/fs * sinc(2*fc/fs * (n - (taps-1)/2)) * w[n]
//
// taps must be odd so the filter has an integer group delay.
func DesignLowPass(cutoffHz, sampleRate float64, taps int, win window.Type) ([]float64, error) {
	if sampleRate <= 0 || cutoffHz <= 0 || cutoffHz >= sampleRate/2 {
		return nil, fmt.Errorf("%w: cutoff %g Hz at rate %g Hz", ErrInvalidDesign, cutoffHz, sampleRate)
	}
	if taps <= 0 || taps%2 == 0 {
		return nil, fmt.Errorf("%w: taps must be odd and > 0: %d", ErrInvalidDesign, taps)
	}

	fc := cutoffHz / sampleRate
	mid := float64(taps-1) / 2
	w := window.Generate(win, taps)

	h := make([]float64, taps)
	sum := 0.0
	for n := range h {
		h[n] = 2 * fc * core.Sinc(2*fc*(float64(n)-mid)) * w[n]
		sum += h[n]
	}
	if sum == 0 || math.IsNaN(sum) {
		return nil, fmt.Errorf("%w: zero DC gain", ErrInvalidDesign)
	}
	for n := range h {
		h[n] /= sum
	}

	return h, nil
}
