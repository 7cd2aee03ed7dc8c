// Command qam modulates random levels on two quadrature carriers,
// demodulates them coherently and reports how well the branches come back.
//
// Usage:
//
//	qam [flags]
//
// Examples:
//
//	qam
//	qam --symbols 200 --taps 201
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-comm/dsp/core"
	"github.com/cwbudde/algo-comm/dsp/modulation/qam"
	"github.com/cwbudde/algo-comm/dsp/spectrum"
	"github.com/cwbudde/algo-comm/internal/cli"
	"github.com/cwbudde/algo-comm/internal/plotting"
	"github.com/cwbudde/algo-comm/internal/report"
	freqstats "github.com/cwbudde/algo-comm/stats/frequency"
)

func main() {
	fs := pflag.NewFlagSet("qam", pflag.ExitOnError)
	flags := cli.Register(fs)
	symbols := fs.Int("symbols", 0, "Symbols per branch (config value when 0)")
	taps := fs.Int("taps", 0, "Receive filter taps, odd (config value when 0)")
	_ = fs.Parse(os.Args[1:])

	env, err := flags.Setup("qam", os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *symbols > 0 {
		env.Config.QAM.Symbols = *symbols
	}
	if *taps > 0 {
		env.Config.QAM.Taps = *taps
	}
	if err := run(env); err != nil {
		env.Log.Fatal("qam failed", "err", err)
	}
}

func run(env *cli.Env) error {
	cfg, err := env.Config.QAM.Modem()
	if err != nil {
		return err
	}
	n := env.Config.QAM.Symbols
	out := env.Stdout
	gen := env.Generator()

	levelsI, err := qam.Symbols(n, gen)
	if err != nil {
		return err
	}
	levelsQ, err := qam.Symbols(n, gen)
	if err != nil {
		return err
	}

	s, err := qam.Modulate(levelsI, levelsQ, cfg)
	if err != nil {
		return err
	}
	env.Log.Info("modulated", "symbols", n, "samples", len(s), "carrier", cfg.CarrierHz)

	m1, m2, err := qam.Demodulate(s, cfg)
	if err != nil {
		return err
	}
	gotI := qam.Slice(m1, cfg.SamplesPerSymbol)
	gotQ := qam.Slice(m2, cfg.SamplesPerSymbol)

	sentI := qam.Hold(levelsI, cfg.SamplesPerSymbol)
	sentQ := qam.Hold(levelsQ, cfg.SamplesPerSymbol)
	errsI, errsQ := 0, 0
	for k := range levelsI {
		if gotI[k] != levelsI[k] {
			errsI++
		}
		if gotQ[k] != levelsQ[k] {
			errsQ++
		}
	}

	report.Section(out, "QAM")
	report.Preview(out, "In-phase levels", levelsI, 10)
	report.Preview(out, "Recovered in-phase", gotI, 10)
	report.Preview(out, "Quadrature levels", levelsQ, 10)
	report.Preview(out, "Recovered quadrature", gotQ, 10)
	tab := report.NewTable(out, "branch", "correlation", "symbol_errors")
	tab.Row("m1", stat.Correlation(m1, sentI, nil), errsI)
	tab.Row("m2", stat.Correlation(m2, sentQ, nil), errsQ)
	if err := tab.Flush(); err != nil {
		return err
	}

	fs, ms, err := spectrum.OneSided(s, cfg.SampleRate)
	if err != nil {
		return err
	}
	shape, err := freqstats.Calculate(fs, ms)
	if err != nil {
		return err
	}
	report.Value(out, "Spectral peak (Hz)", fmt.Sprintf("%.0f", shape.PeakHz))
	report.Value(out, "Occupied bandwidth, 99% (Hz)", fmt.Sprintf("%.0f", shape.Occupied))

	span := float64(min(len(s), 10*cfg.SamplesPerSymbol))
	t := plotting.Index(len(s))
	figs := []struct {
		name string
		fig  plotting.Figure
	}{
		{"qam_signal", plotting.Figure{
			Title: "Modulated signal s(t)", XLabel: "Sample", YLabel: "Amplitude", XMax: span,
			Series: []plotting.Series{{Name: "s", X: t, Y: s}},
		}},
		{"qam_m1", plotting.Figure{
			Title: "In-phase branch m1(t)", XLabel: "Sample", YLabel: "Level", XMax: span,
			Series: []plotting.Series{
				{Name: "sent", X: t, Y: sentI, Style: plotting.StyleSteps},
				{Name: "recovered", X: t, Y: m1},
			},
		}},
		{"qam_m2", plotting.Figure{
			Title: "Quadrature branch m2(t)", XLabel: "Sample", YLabel: "Level", XMax: span,
			Series: []plotting.Series{
				{Name: "sent", X: t, Y: sentQ, Style: plotting.StyleSteps},
				{Name: "recovered", X: t, Y: m2},
			},
		}},
	}
	for _, f := range figs {
		if err := env.Plot(f.name, f.fig); err != nil {
			return err
		}
	}

	f1, mm1, err := spectrum.OneSided(m1, cfg.SampleRate)
	if err != nil {
		return err
	}
	return env.Plot("qam_spectrum", plotting.Figure{
		Title:  "Magnitude spectra",
		XLabel: "Frequency (Hz)",
		YLabel: "Magnitude (dB)",
		Series: []plotting.Series{
			{Name: "s(t)", X: fs, Y: toDB(ms)},
			{Name: "m1(t)", X: f1, Y: toDB(mm1)},
		},
	})
}

func toDB(mags []float64) []float64 {
	out := make([]float64, len(mags))
	for i, m := range mags {
		out[i] = core.LinearToDB(m + 1e-12)
	}
	return out
}
