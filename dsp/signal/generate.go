package signal

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/cwbudde/algo-comm/dsp/core"
)

// Generator creates deterministic test signals and random sequences from a
// shared configuration. All random draws come from one seeded stream, so a
// fixed seed reproduces an entire exercise run.
type Generator struct {
	cfg core.ProcessorConfig
	rng *rand.Rand
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	cfg := core.ApplyProcessorOptions(opts...)
	return &Generator{
		cfg: cfg,
		rng: newRand(cfg.Seed),
	}
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Rand exposes the generator's random stream for components that draw
// their own values, such as random filter weights.
func (g *Generator) Rand() *rand.Rand {
	return g.rng
}

// Seed returns the configured seed.
func (g *Generator) Seed() uint64 {
	return g.cfg.Seed
}

// SetSeed restarts the random stream from seed.
func (g *Generator) SetSeed(seed uint64) {
	g.cfg.Seed = seed
	g.rng = newRand(seed)
}

// Sine generates a sine wave.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("sine samples must be > 0: %d", samples)
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// Uniform draws samples uniformly from [lo, hi).
func (g *Generator) Uniform(lo, hi float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("uniform samples must be > 0: %d", samples)
	}
	if hi < lo {
		return nil, fmt.Errorf("uniform range is inverted: [%f, %f)", lo, hi)
	}
	out := make([]float64, samples)
	for i := range out {
		out[i] = lo + (hi-lo)*g.rng.Float64()
	}
	return out, nil
}

// Bits draws a binary sequence by thresholding uniform [0, 1) draws at 0.5:
// values strictly above 0.5 become 1.
func (g *Generator) Bits(n int) ([]int, error) {
	u, err := g.Uniform(0, 1, n)
	if err != nil {
		return nil, fmt.Errorf("bits: %w", err)
	}
	out := make([]int, n)
	for i, v := range u {
		if v > 0.5 {
			out[i] = 1
		}
	}
	return out, nil
}

// Integers draws n integers uniformly from the half-open range [lo, hi).
func (g *Generator) Integers(lo, hi, n int) ([]int, error) {
	if n <= 0 {
		return nil, fmt.Errorf("integer samples must be > 0: %d", n)
	}
	if hi <= lo {
		return nil, fmt.Errorf("integer range is empty: [%d, %d)", lo, hi)
	}
	out := make([]int, n)
	for i := range out {
		out[i] = lo + g.rng.IntN(hi-lo)
	}
	return out, nil
}

// Gaussian draws zero-mean normal noise with standard deviation sigma.
func (g *Generator) Gaussian(sigma float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("gaussian samples must be > 0: %d", samples)
	}
	if sigma < 0 || math.IsNaN(sigma) || math.IsInf(sigma, 0) {
		return nil, fmt.Errorf("gaussian sigma must be >= 0 and finite: %f", sigma)
	}
	out := make([]float64, samples)
	if sigma == 0 {
		return out, nil
	}
	dist := distuv.Normal{Mu: 0, Sigma: sigma, Src: g.rng}
	for i := range out {
		out[i] = dist.Rand()
	}
	return out, nil
}

// Bipolar maps bits {0, 1} to levels {-1, +1}.
func Bipolar(bits []int) ([]float64, error) {
	out := make([]float64, len(bits))
	for i, b := range bits {
		switch b {
		case 0:
			out[i] = -1
		case 1:
			out[i] = 1
		default:
			return nil, fmt.Errorf("bipolar: bit %d at index %d is not 0 or 1", b, i)
		}
	}
	return out, nil
}

// Add returns a + b element-wise. Both slices must have the same length.
func Add(a, b []float64) ([]float64, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("add length mismatch: %d != %d", len(a), len(b))
	}
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}
	return out, nil
}
