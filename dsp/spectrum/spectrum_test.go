package spectrum

import (
	"errors"
	"math"
	"testing"
)

func TestMagnitudePhasePower(t *testing.T) {
	bins := []complex128{3 + 4i, -1 - 1i, 0}

	mag := Magnitude(bins)
	if len(mag) != len(bins) {
		t.Fatalf("Magnitude length mismatch: got=%d want=%d", len(mag), len(bins))
	}

	if math.Abs(mag[0]-5) > 1e-12 {
		t.Fatalf("Magnitude[0]=%f want=5", mag[0])
	}

	pow := Power(bins)
	if math.Abs(pow[0]-25) > 1e-12 {
		t.Fatalf("Power[0]=%f want=25", pow[0])
	}

	phase := Phase(bins)
	if math.Abs(phase[0]-math.Atan2(4, 3)) > 1e-12 {
		t.Fatalf("Phase[0]=%f mismatch", phase[0])
	}
}

func TestEmptyBins(t *testing.T) {
	if Magnitude(nil) != nil || Power(nil) != nil || Phase(nil) != nil {
		t.Fatal("expected nil for empty input")
	}
}

func TestNextPowerOf2(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 1}, {1, 1}, {2, 2}, {3, 4}, {100, 128}, {1024, 1024},
	}
	for _, tt := range tests {
		if got := NextPowerOf2(tt.in); got != tt.want {
			t.Errorf("NextPowerOf2(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestOneSidedTonePeak(t *testing.T) {
	const (
		fs = 1024.0
		n  = 1024
		f0 = 64.0
	)
	x := make([]float64, n)
	for i := range x {
		x[i] = math.Cos(2 * math.Pi * f0 * float64(i) / fs)
	}

	freqs, mags, err := OneSided(x, fs)
	if err != nil {
		t.Fatalf("OneSided() error = %v", err)
	}
	if len(freqs) != n/2 || len(mags) != n/2 {
		t.Fatalf("len = %d/%d, want %d", len(freqs), len(mags), n/2)
	}

	peak := 0
	for k := range mags {
		if mags[k] > mags[peak] {
			peak = k
		}
	}
	if freqs[peak] != f0 {
		t.Fatalf("peak at %v Hz, want %v Hz", freqs[peak], f0)
	}
	// A unit cosine splits its energy between +/-f0: 0.5 per side after 1/N scaling.
	if math.Abs(mags[peak]-0.5) > 1e-9 {
		t.Fatalf("peak magnitude = %v, want 0.5", mags[peak])
	}
}

func TestOneSidedNormalizesBySignalLength(t *testing.T) {
	x := make([]float64, 1000)
	for i := range x {
		x[i] = 1
	}
	freqs, mags, err := OneSided(x, 1000)
	if err != nil {
		t.Fatalf("OneSided() error = %v", err)
	}
	if len(mags) != 512 {
		t.Fatalf("len = %d, want 512", len(mags))
	}
	if freqs[0] != 0 || math.Abs(mags[0]-1) > 1e-12 {
		t.Fatalf("DC bin = %v at %v Hz, want 1 at 0 Hz", mags[0], freqs[0])
	}
}

func TestOneSidedErrors(t *testing.T) {
	if _, _, err := OneSided(nil, 8000); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("err = %v, want ErrEmptyInput", err)
	}
	if _, _, err := OneSided([]float64{1}, 0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
}
