package duobinary

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-comm/dsp/core"
)

var (
	ErrEmptyInput     = errors.New("duobinary: empty input")
	ErrInvalidBit     = errors.New("duobinary: bit must be 0 or 1")
	ErrLengthMismatch = errors.New("duobinary: length mismatch")
)

// Precode returns len(d)+1 values: the initial p[-1] = 0 followed by
// p[k] = (d[k] - p[k-1]) mod 2.
func Precode(d []int) ([]int, error) {
	if len(d) == 0 {
		return nil, ErrEmptyInput
	}
	p := make([]int, len(d)+1)
	for k, bit := range d {
		if bit != 0 && bit != 1 {
			return nil, fmt.Errorf("%w: %d at index %d", ErrInvalidBit, bit, k)
		}
		p[k+1] = core.IntMod(bit-p[k], 2)
	}
	return p, nil
}

// Amplitudes maps precoded bits to ±1.
func Amplitudes(p []int) []int {
	a := make([]int, len(p))
	for i, v := range p {
		a[i] = 2*v - 1
	}
	return a
}

// Channel sums each amplitude with its predecessor. The result is one
// shorter than a.
func Channel(a []int) []int {
	if len(a) < 2 {
		return nil
	}
	b := make([]int, len(a)-1)
	for k := 1; k < len(a); k++ {
		b[k-1] = a[k] + a[k-1]
	}
	return b
}

// Decode recovers bits from noiseless channel samples as (b/2 + 1) mod 2.
func Decode(b []int) []int {
	d := make([]int, len(b))
	for i, v := range b {
		d[i] = core.IntMod(v/2+1, 2)
	}
	return d
}

// AddNoise returns a + noise as real values.
func AddNoise(a []int, noise []float64) ([]float64, error) {
	if len(a) != len(noise) {
		return nil, fmt.Errorf("%w: %d amplitudes, %d noise samples", ErrLengthMismatch, len(a), len(noise))
	}
	r := make([]float64, len(a))
	for i := range a {
		r[i] = float64(a[i]) + noise[i]
	}
	return r, nil
}

// ChannelNoisy is Channel for real-valued amplitudes.
func ChannelNoisy(r []float64) []float64 {
	if len(r) < 2 {
		return nil
	}
	b := make([]float64, len(r)-1)
	for k := 1; k < len(r); k++ {
		b[k-1] = r[k] + r[k-1]
	}
	return b
}

// SoftDecode returns (b/2 + 1) mod 2 with floored modulo. Noiseless samples
// land on 0 or 1; noise spreads them over [0, 2).
func SoftDecode(b []float64) []float64 {
	out := make([]float64, len(b))
	for i, v := range b {
		out[i] = core.FloorMod(v/2+1, 2)
	}
	return out
}

// DecisionValues returns b/2, which is -1, 0 or +1 without noise.
func DecisionValues(b []float64) []float64 {
	out := make([]float64, len(b))
	for i, v := range b {
		out[i] = v / 2
	}
	return out
}

// Decide maps decision values to bits: 0 when |v| > 0.5, otherwise 1.
func Decide(v []float64) []int {
	out := make([]int, len(v))
	for i, x := range v {
		if math.Abs(x) <= 0.5 {
			out[i] = 1
		}
	}
	return out
}

// CountErrors returns the number of positions where a and b differ.
func CountErrors(a, b []int) (int, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(a), len(b))
	}
	n := 0
	for i := range a {
		if a[i] != b[i] {
			n++
		}
	}
	return n, nil
}
