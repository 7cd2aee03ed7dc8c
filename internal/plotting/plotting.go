// Package plotting renders the exercise figures to static image files.
// The output format follows the file extension (.png, .svg, .pdf).
package plotting

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

var (
	ErrNoData         = errors.New("plotting: no data")
	ErrLengthMismatch = errors.New("plotting: x and y lengths differ")
)

// Default figure size.
const (
	Width  = 10 * vg.Inch
	Height = 4 * vg.Inch
)

// Style selects how a series is drawn.
type Style int

const (
	StyleLine Style = iota
	StylePoints
	StyleSteps
)

// Series is one named curve. A nil X plots against the sample index.
type Series struct {
	Name  string
	X     []float64
	Y     []float64
	Style Style
}

// Figure is a single set of axes.
type Figure struct {
	Title  string
	XLabel string
	YLabel string
	Series []Series
	// LogY draws the Y axis logarithmically. Non-positive samples are
	// dropped because they have no position on a log axis.
	LogY bool
	// XMax limits the X axis when > 0.
	XMax float64
}

// Index returns 0, 1, ..., n-1.
func Index(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

func points(s Series, logY bool) (plotter.XYs, error) {
	x := s.X
	if x == nil {
		x = Index(len(s.Y))
	}
	if len(x) != len(s.Y) {
		return nil, fmt.Errorf("%w: %q has %d x and %d y", ErrLengthMismatch, s.Name, len(x), len(s.Y))
	}
	xys := make(plotter.XYs, 0, len(x))
	for i := range x {
		if logY && s.Y[i] <= 0 {
			continue
		}
		xys = append(xys, plotter.XY{X: x[i], Y: s.Y[i]})
	}
	return xys, nil
}

// Build assembles a plot without writing it.
func Build(fig Figure) (*plot.Plot, error) {
	if len(fig.Series) == 0 {
		return nil, ErrNoData
	}

	p := plot.New()
	p.Title.Text = fig.Title
	p.X.Label.Text = fig.XLabel
	p.Y.Label.Text = fig.YLabel
	p.Add(plotter.NewGrid())
	if fig.LogY {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	drawn := 0
	for i, s := range fig.Series {
		xys, err := points(s, fig.LogY)
		if err != nil {
			return nil, err
		}
		if len(xys) == 0 {
			continue
		}
		var thumb plot.Thumbnailer
		switch s.Style {
		case StylePoints:
			sc, err := plotter.NewScatter(xys)
			if err != nil {
				return nil, fmt.Errorf("plotting: %q: %w", s.Name, err)
			}
			sc.GlyphStyle.Color = plotutil.Color(i)
			sc.GlyphStyle.Radius = vg.Points(2)
			p.Add(sc)
			thumb = sc
		default:
			l, err := plotter.NewLine(xys)
			if err != nil {
				return nil, fmt.Errorf("plotting: %q: %w", s.Name, err)
			}
			l.LineStyle.Color = plotutil.Color(i)
			if s.Style == StyleSteps {
				l.StepStyle = plotter.PostStep
			}
			p.Add(l)
			thumb = l
		}
		if s.Name != "" {
			p.Legend.Add(s.Name, thumb)
		}
		drawn++
	}
	if drawn == 0 {
		return nil, ErrNoData
	}
	if fig.XMax > 0 {
		p.X.Max = fig.XMax
	}
	return p, nil
}

// Save renders fig to path, creating the parent directory.
func Save(fig Figure, path string) error {
	p, err := Build(fig)
	if err != nil {
		return err
	}
	return save(p, path)
}

// Histogram renders the distribution of values with the given bin count.
func Histogram(title string, values []float64, bins int, path string) error {
	if len(values) == 0 {
		return ErrNoData
	}
	h, err := plotter.NewHist(plotter.Values(values), bins)
	if err != nil {
		return fmt.Errorf("plotting: histogram: %w", err)
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Amplitude"
	p.Y.Label.Text = "Count"
	p.Add(h)
	return save(p, path)
}

func save(p *plot.Plot, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("plotting: %w", err)
	}
	if err := p.Save(Width, Height, path); err != nil {
		return fmt.Errorf("plotting: save %s: %w", path, err)
	}
	return nil
}
