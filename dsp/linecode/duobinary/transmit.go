package duobinary

import "fmt"

// NoiseSource draws zero-mean Gaussian noise.
type NoiseSource interface {
	Gaussian(sigma float64, samples int) ([]float64, error)
}

// Result holds every stage of one noisy transmission.
type Result struct {
	Bits       []int
	Precoded   []int
	Amplitudes []int
	Noise      []float64
	Received   []float64
	Channel    []float64
	Soft       []float64
	Decision   []float64
	Decoded    []int
	Errors     int
}

// ErrorRate returns Errors / len(Bits).
func (r Result) ErrorRate() float64 {
	if len(r.Bits) == 0 {
		return 0
	}
	return float64(r.Errors) / float64(len(r.Bits))
}

// Transmit precodes d, adds noise with standard deviation sigma to the
// amplitudes, passes them through the channel and decides each bit.
func Transmit(d []int, sigma float64, src NoiseSource) (Result, error) {
	p, err := Precode(d)
	if err != nil {
		return Result{}, err
	}
	a := Amplitudes(p)

	noise, err := src.Gaussian(sigma, len(a))
	if err != nil {
		return Result{}, fmt.Errorf("duobinary: noise: %w", err)
	}
	r, err := AddNoise(a, noise)
	if err != nil {
		return Result{}, err
	}

	b := ChannelNoisy(r)
	v := DecisionValues(b)
	decoded := Decide(v)

	errs, err := CountErrors(d, decoded)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Bits:       d,
		Precoded:   p,
		Amplitudes: a,
		Noise:      noise,
		Received:   r,
		Channel:    b,
		Soft:       SoftDecode(b),
		Decision:   v,
		Decoded:    decoded,
		Errors:     errs,
	}, nil
}
