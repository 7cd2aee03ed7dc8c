package adaptive

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-comm/dsp/core"
)

// Result is the outcome of running a filter over a signal pair.
type Result struct {
	// Output holds the predictions. The first Taps() samples are zero.
	Output []float64
	// Errors holds the a-priori errors, zero where no prediction was made.
	Errors []float64
	// MSE is the mean squared difference between Output and the target.
	MSE float64
}

// Run slides a window of f.Taps() samples over input and adapts f to
// predict target[i] from input[i-taps:i].
func Run(f Filter, input, target []float64) (Result, error) {
	if len(input) != len(target) {
		return Result{}, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(input), len(target))
	}
	taps := f.Taps()
	if len(input) <= taps {
		return Result{}, fmt.Errorf("%w: %d samples, %d taps", ErrSignalTooShort, len(input), taps)
	}

	out := make([]float64, len(input))
	errs := make([]float64, len(input))
	for i := taps; i < len(input); i++ {
		y, e, err := f.Update(input[i-taps:i], target[i])
		if err != nil {
			return Result{}, fmt.Errorf("adaptive: sample %d: %w", i, err)
		}
		out[i] = y
		errs[i] = e
	}

	mse, err := MSE(out, target)
	if err != nil {
		return Result{}, err
	}
	return Result{Output: out, Errors: errs, MSE: mse}, nil
}

// Align zero-pads the shorter of a and b to the longer length. Both
// results are copies.
func Align(a, b []float64) ([]float64, []float64) {
	n := max(len(a), len(b))
	return core.PadTo(a, n), core.PadTo(b, n)
}

// MSE returns the mean of (a-b)^2.
func MSE(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(a), len(b))
	}
	if len(a) == 0 {
		return 0, nil
	}
	d := make([]float64, len(a))
	floats.SubTo(d, a, b)
	return floats.Dot(d, d) / float64(len(d)), nil
}

// LearningCurve averages the squared errors over consecutive blocks. A
// trailing partial block is averaged over its own length.
func LearningCurve(errs []float64, block int) ([]float64, error) {
	if block <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBlock, block)
	}
	curve := make([]float64, 0, (len(errs)+block-1)/block)
	for start := 0; start < len(errs); start += block {
		seg := errs[start:min(start+block, len(errs))]
		curve = append(curve, floats.Dot(seg, seg)/float64(len(seg)))
	}
	return curve, nil
}
