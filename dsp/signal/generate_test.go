package signal

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-comm/dsp/core"
)

func TestSineLength(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(48000))
	s, err := g.Sine(1000, 1, 64)
	if err != nil {
		t.Fatalf("Sine() error = %v", err)
	}
	if len(s) != 64 {
		t.Fatalf("len = %d, want 64", len(s))
	}
}

func TestGaussianDeterministic(t *testing.T) {
	g1 := NewGenerator(core.WithSeed(42))
	g2 := NewGenerator(core.WithSeed(42))

	n1, err := g1.Gaussian(1, 16)
	if err != nil {
		t.Fatalf("Gaussian() error = %v", err)
	}
	n2, err := g2.Gaussian(1, 16)
	if err != nil {
		t.Fatalf("Gaussian() error = %v", err)
	}

	for i := range n1 {
		if n1[i] != n2[i] {
			t.Fatalf("noise mismatch at %d: %v != %v", i, n1[i], n2[i])
		}
	}
}

func TestGaussianMoments(t *testing.T) {
	g := NewGenerator(core.WithSeed(5))
	n, err := g.Gaussian(0.5, 200000)
	if err != nil {
		t.Fatalf("Gaussian() error = %v", err)
	}
	mean, std := stat.MeanStdDev(n, nil)
	if math.Abs(mean) > 0.01 {
		t.Fatalf("mean = %v, want ~0", mean)
	}
	if math.Abs(std-0.5) > 0.01 {
		t.Fatalf("std = %v, want ~0.5", std)
	}
}

func TestGaussianRejectsNegativeSigma(t *testing.T) {
	g := NewGenerator()
	if _, err := g.Gaussian(-1, 4); err == nil {
		t.Fatal("expected error for negative sigma")
	}
}

func TestSetSeed(t *testing.T) {
	g := NewGenerator()
	g.SetSeed(99)
	if g.Seed() != 99 {
		t.Fatalf("Seed()=%d, want 99", g.Seed())
	}

	a, err := g.Uniform(0, 1, 8)
	if err != nil {
		t.Fatalf("Uniform() error = %v", err)
	}
	g.SetSeed(100)
	b, err := g.Uniform(0, 1, 8)
	if err != nil {
		t.Fatalf("Uniform() error = %v", err)
	}

	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("expected different seeds to produce different draws")
	}
}

func TestBitsAreBinaryAndBalanced(t *testing.T) {
	g := NewGenerator(core.WithSeed(11))
	bits, err := g.Bits(10001)
	if err != nil {
		t.Fatalf("Bits() error = %v", err)
	}
	ones := 0
	for i, b := range bits {
		if b != 0 && b != 1 {
			t.Fatalf("bits[%d] = %d, want 0 or 1", i, b)
		}
		ones += b
	}
	frac := float64(ones) / float64(len(bits))
	if frac < 0.45 || frac > 0.55 {
		t.Fatalf("fraction of ones = %v, want ~0.5", frac)
	}
}

func TestIntegersRange(t *testing.T) {
	g := NewGenerator(core.WithSeed(3))
	vals, err := g.Integers(-2, 2, 1000)
	if err != nil {
		t.Fatalf("Integers() error = %v", err)
	}
	seen := map[int]bool{}
	for _, v := range vals {
		if v < -2 || v >= 2 {
			t.Fatalf("value %d outside [-2, 2)", v)
		}
		seen[v] = true
	}
	if len(seen) != 4 {
		t.Fatalf("saw %d distinct values, want 4", len(seen))
	}
}

func TestBipolar(t *testing.T) {
	out, err := Bipolar([]int{0, 1, 1, 0})
	if err != nil {
		t.Fatalf("Bipolar() error = %v", err)
	}
	want := []float64{-1, 1, 1, -1}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("out[%d]=%v, want %v", i, out[i], want[i])
		}
	}
	if _, err := Bipolar([]int{2}); err == nil {
		t.Fatal("expected error for non-binary input")
	}
}

func TestAddLengthMismatch(t *testing.T) {
	if _, err := Add([]float64{1}, []float64{1, 2}); err == nil {
		t.Fatal("expected length mismatch error")
	}
}
