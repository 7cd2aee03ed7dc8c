package qam

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-comm/dsp/core"
	"github.com/cwbudde/algo-comm/dsp/signal"
	"github.com/cwbudde/algo-comm/internal/testutil"
)

func TestSymbolsRange(t *testing.T) {
	gen := signal.NewGenerator(core.WithSeed(3))
	levels, err := Symbols(2000, gen)
	if err != nil {
		t.Fatalf("Symbols: %v", err)
	}
	seen := map[int]int{}
	for _, v := range levels {
		if v < -2 || v > 1 {
			t.Fatalf("level %d outside {-2..1}", v)
		}
		seen[v]++
	}
	if len(seen) != 4 {
		t.Fatalf("levels seen = %v, want all four", seen)
	}
}

func TestSliceClampsToAlphabet(t *testing.T) {
	got := Slice([]float64{0, 5, 0, -7, 0, 0.4, 0, -1.6}, 2)
	want := []int{MaxLevel, MinLevel, 0, -2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Slice = %v, want %v", got, want)
		}
	}
}

func TestHold(t *testing.T) {
	got := Hold([]int{1, -2}, 3)
	testutil.RequireSliceNearlyEqual(t, got, []float64{1, 1, 1, -2, -2, -2}, 0)
}

func TestModulateSingleBranch(t *testing.T) {
	cfg := DefaultConfig()
	s, err := Modulate([]int{1}, []int{0}, cfg)
	if err != nil {
		t.Fatalf("Modulate: %v", err)
	}
	if len(s) != cfg.SamplesPerSymbol {
		t.Fatalf("len = %d, want %d", len(s), cfg.SamplesPerSymbol)
	}
	w := 2 * math.Pi * cfg.CarrierHz / cfg.SampleRate
	for n, v := range s {
		if math.Abs(v-math.Cos(w*float64(n))) > 1e-12 {
			t.Fatalf("s[%d] = %v, want cos", n, v)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	gen := signal.NewGenerator(core.WithSeed(42))
	i, err := Symbols(200, gen)
	if err != nil {
		t.Fatalf("Symbols: %v", err)
	}
	q, err := Symbols(200, gen)
	if err != nil {
		t.Fatalf("Symbols: %v", err)
	}

	s, err := Modulate(i, q, cfg)
	if err != nil {
		t.Fatalf("Modulate: %v", err)
	}
	m1, m2, err := Demodulate(s, cfg)
	if err != nil {
		t.Fatalf("Demodulate: %v", err)
	}
	if len(m1) != len(s) || len(m2) != len(s) {
		t.Fatalf("branch lengths %d/%d, want %d", len(m1), len(m2), len(s))
	}

	gotI := Slice(m1, cfg.SamplesPerSymbol)
	gotQ := Slice(m2, cfg.SamplesPerSymbol)
	for k := range i {
		if gotI[k] != i[k] || gotQ[k] != q[k] {
			t.Fatalf("symbol %d: got (%d, %d), want (%d, %d)", k, gotI[k], gotQ[k], i[k], q[k])
		}
	}

	sentI := Hold(i, cfg.SamplesPerSymbol)
	sentQ := Hold(q, cfg.SamplesPerSymbol)
	if c := testutil.Correlation(m1, sentI); c < 0.95 {
		t.Fatalf("in-phase correlation = %v", c)
	}
	if c := testutil.Correlation(m2, sentQ); c < 0.95 {
		t.Fatalf("quadrature correlation = %v", c)
	}
	// The branches are orthogonal.
	if c := testutil.Correlation(m1, sentQ); math.Abs(c) > 0.2 {
		t.Fatalf("cross correlation = %v", c)
	}
}

func TestValidate(t *testing.T) {
	mutate := []func(*Config){
		func(c *Config) { c.SampleRate = 0 },
		func(c *Config) { c.CarrierHz = 300000 },
		func(c *Config) { c.CutoffHz = -1 },
		func(c *Config) { c.SamplesPerSymbol = 0 },
		func(c *Config) { c.Taps = 100 },
	}
	for k, m := range mutate {
		cfg := DefaultConfig()
		m(&cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("case %d: got %v", k, err)
		}
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config: %v", err)
	}
}

func TestModulateErrors(t *testing.T) {
	cfg := DefaultConfig()
	if _, err := Modulate([]int{1}, nil, cfg); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("mismatch: %v", err)
	}
	if _, err := Modulate(nil, nil, cfg); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("empty: %v", err)
	}
	if _, _, err := Demodulate(nil, cfg); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("empty demod: %v", err)
	}
}
