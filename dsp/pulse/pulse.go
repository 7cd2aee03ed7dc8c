// Package pulse implements raised-cosine pulse shaping.
//
// The impulse response is
//
//	h(t) = (1/Ts) * sinc(t/Ts) * cos(pi*beta*t/Ts) / (1 - (2*beta*t/Ts)^2)
//
// which has removable singularities at t = 0 and at |t| = Ts/(2*beta).
// [RaisedCosine] returns the limiting value at both points instead of
// relying on floating-point division by zero.
package pulse

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-comm/dsp/core"
	"github.com/cwbudde/algo-comm/dsp/filter/fir"
)

// singularTol is the relative distance from |t| = Ts/(2*beta) inside which
// the L'Hopital limit replaces the direct formula.
const singularTol = 1e-9

var (
	ErrInvalidBeta   = errors.New("pulse: roll-off must be in [0, 1]")
	ErrInvalidPeriod = errors.New("pulse: symbol period must be > 0")
	ErrInvalidSpan   = errors.New("pulse: empty time span")
	ErrInvalidSPS    = errors.New("pulse: samples per symbol must be > 0")
)

// RaisedCosine evaluates the raised-cosine impulse response at time t for
// symbol period ts and roll-off beta.
func RaisedCosine(t, ts, beta float64) float64 {
	x := t / ts
	if beta > 0 {
		d := 2 * beta * x
		if core.NearlyEqual(math.Abs(d), 1, singularTol) {
			// lim_{|t| -> Ts/2b} h(t) = pi/(4 Ts) * sinc(1/(2b))
			return math.Pi / (4 * ts) * core.Sinc(1/(2*beta))
		}
		return core.Sinc(x) * math.Cos(math.Pi*beta*x) / (1 - d*d) / ts
	}
	return core.Sinc(x) / ts
}

// Response samples the raised-cosine impulse response at integer times
// t in [tStart, tEnd). It returns the sample times and the values.
func Response(beta, ts float64, tStart, tEnd int) (t, h []float64, err error) {
	if beta < 0 || beta > 1 || math.IsNaN(beta) {
		return nil, nil, fmt.Errorf("%w: %g", ErrInvalidBeta, beta)
	}
	if ts <= 0 {
		return nil, nil, fmt.Errorf("%w: %g", ErrInvalidPeriod, ts)
	}
	if tEnd <= tStart {
		return nil, nil, fmt.Errorf("%w: [%d, %d)", ErrInvalidSpan, tStart, tEnd)
	}

	n := tEnd - tStart
	t = make([]float64, n)
	h = make([]float64, n)
	for i := range n {
		t[i] = float64(tStart + i)
		h[i] = RaisedCosine(t[i], ts, beta)
	}
	return t, h, nil
}

// ImpulseTrain maps each bit to a BPSK impulse (2b-1) at the first sample of
// its symbol, followed by sps-1 zeros.
func ImpulseTrain(bits []int, sps int) ([]float64, error) {
	if sps <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSPS, sps)
	}
	out := make([]float64, len(bits)*sps)
	for i, b := range bits {
		if b != 0 && b != 1 {
			return nil, fmt.Errorf("pulse: bit %d at index %d is not 0 or 1", b, i)
		}
		out[i*sps] = float64(2*b - 1)
	}
	return out, nil
}

// Shape convolves an impulse train with the pulse taps and returns an output
// of the same length, aligned so each symbol peak sits on its impulse.
func Shape(train, taps []float64) []float64 {
	return fir.New(taps).ProcessCentered(train)
}
