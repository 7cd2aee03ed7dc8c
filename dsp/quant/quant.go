// Package quant implements a uniform scalar quantizer built from a table of
// decision thresholds and the midpoints between them.
package quant

import (
	"errors"
	"fmt"
	"strconv"
)

// Default table parameters: 129 thresholds starting at -0.3 spaced 0.0047
// apart, giving 128 reconstruction levels.
const (
	DefaultStart      = -0.3
	DefaultIncrement  = 0.0047
	DefaultThresholds = 129
)

var (
	ErrInvalidIncrement = errors.New("quant: increment must be > 0")
	ErrTooFewLevels     = errors.New("quant: need at least 2 thresholds")
	ErrIndexOutOfRange  = errors.New("quant: index out of range")
)

// Quantizer maps amplitudes to 1-based level indices.
type Quantizer struct {
	levels    []float64
	midpoints []float64
}

// Uniform builds a quantizer with n thresholds start + i*increment and the
// n-1 midpoints between neighbours.
func Uniform(start, increment float64, n int) (*Quantizer, error) {
	if increment <= 0 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidIncrement, increment)
	}
	if n < 2 {
		return nil, fmt.Errorf("%w: %d", ErrTooFewLevels, n)
	}

	levels := make([]float64, n)
	for i := range levels {
		levels[i] = start + float64(i)*increment
	}
	mid := make([]float64, n-1)
	for i := range mid {
		mid[i] = (levels[i] + levels[i+1]) / 2
	}
	return &Quantizer{levels: levels, midpoints: mid}, nil
}

// Default returns the 128-level quantizer.
func Default() *Quantizer {
	q, err := Uniform(DefaultStart, DefaultIncrement, DefaultThresholds)
	if err != nil {
		panic(err)
	}
	return q
}

// Levels returns a copy of the threshold table.
func (q *Quantizer) Levels() []float64 {
	return append([]float64(nil), q.levels...)
}

// Midpoints returns a copy of the reconstruction levels.
func (q *Quantizer) Midpoints() []float64 {
	return append([]float64(nil), q.midpoints...)
}

// Size returns the number of reconstruction levels.
func (q *Quantizer) Size() int {
	return len(q.midpoints)
}

// Index returns the 1-based index of the first midpoint above x. Values at
// or above the last midpoint map to Size().
func (q *Quantizer) Index(x float64) int {
	idx, _ := q.IndexChecked(x)
	return idx
}

// IndexChecked is Index that also reports whether x fell past the table.
func (q *Quantizer) IndexChecked(x float64) (idx int, clipped bool) {
	for j, m := range q.midpoints {
		if x < m {
			return j + 1, false
		}
	}
	return len(q.midpoints), true
}

// Encode quantizes every sample and returns the indices with the number of
// clipped samples.
func (q *Quantizer) Encode(samples []float64) (indices []int, clipped int) {
	indices = make([]int, len(samples))
	for i, x := range samples {
		idx, c := q.IndexChecked(x)
		indices[i] = idx
		if c {
			clipped++
		}
	}
	return indices, clipped
}

// Value returns the midpoint addressed by a 1-based index.
func (q *Quantizer) Value(index int) (float64, error) {
	if index < 1 || index > len(q.midpoints) {
		return 0, fmt.Errorf("%w: %d not in [1, %d]", ErrIndexOutOfRange, index, len(q.midpoints))
	}
	return q.midpoints[index-1], nil
}

// Decode maps indices back to midpoints.
func (q *Quantizer) Decode(indices []int) ([]float64, error) {
	out := make([]float64, len(indices))
	for i, idx := range indices {
		v, err := q.Value(idx)
		if err != nil {
			return nil, fmt.Errorf("quant: decode sample %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// Codeword returns the binary representation of a level index.
func Codeword(index int) string {
	return strconv.FormatInt(int64(index), 2)
}
