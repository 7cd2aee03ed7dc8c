package plotting

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func requireFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat %s: %v", path, err)
	}
	if info.Size() == 0 {
		t.Fatalf("%s is empty", path)
	}
}

func TestSaveFormats(t *testing.T) {
	dir := t.TempDir()
	fig := Figure{
		Title:  "ramp",
		XLabel: "n",
		YLabel: "x",
		Series: []Series{
			{Name: "line", Y: []float64{0, 1, 2, 3}},
			{Name: "points", Y: []float64{3, 2, 1, 0}, Style: StylePoints},
			{Name: "steps", X: []float64{0, 1, 2, 3}, Y: []float64{1, -1, 1, -1}, Style: StyleSteps},
		},
		XMax: 2,
	}
	for _, name := range []string{"fig.png", "nested/fig.svg"} {
		path := filepath.Join(dir, name)
		if err := Save(fig, path); err != nil {
			t.Fatalf("Save(%s): %v", name, err)
		}
		requireFile(t, path)
	}
}

func TestBuildLogDropsNonPositive(t *testing.T) {
	p, err := Build(Figure{
		LogY:   true,
		Series: []Series{{Y: []float64{0.1, 0.01, 0, 0.001}}},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if p.Y.Min <= 0 {
		t.Fatalf("log axis min = %v", p.Y.Min)
	}

	_, err = Build(Figure{LogY: true, Series: []Series{{Y: []float64{0, 0}}}})
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("all-zero log plot: %v", err)
	}
}

func TestBuildErrors(t *testing.T) {
	if _, err := Build(Figure{}); !errors.Is(err, ErrNoData) {
		t.Fatalf("empty figure: %v", err)
	}
	_, err := Build(Figure{Series: []Series{{X: []float64{1}, Y: []float64{1, 2}}}})
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("mismatch: %v", err)
	}
}

func TestHistogram(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hist.png")
	if err := Histogram("noise", []float64{-1, -0.5, 0, 0, 0.5, 1}, 4, path); err != nil {
		t.Fatalf("Histogram: %v", err)
	}
	requireFile(t, path)

	if err := Histogram("empty", nil, 4, path); !errors.Is(err, ErrNoData) {
		t.Fatalf("empty histogram: %v", err)
	}
}

func TestIndex(t *testing.T) {
	got := Index(3)
	if len(got) != 3 || got[0] != 0 || got[2] != 2 {
		t.Fatalf("Index(3) = %v", got)
	}
}
