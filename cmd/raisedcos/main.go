// Command raisedcos shapes a BPSK impulse train with raised-cosine pulses at
// several roll-off factors and shows each pulse in time and frequency.
//
// Usage:
//
//	raisedcos [flags]
//
// Examples:
//
//	raisedcos
//	raisedcos --beta 0.25 --beta 0.5 --sps 16
package main

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/pflag"

	"github.com/cwbudde/algo-comm/dsp/dft"
	"github.com/cwbudde/algo-comm/dsp/pulse"
	"github.com/cwbudde/algo-comm/internal/cli"
	"github.com/cwbudde/algo-comm/internal/plotting"
	"github.com/cwbudde/algo-comm/internal/report"
)

func main() {
	fs := pflag.NewFlagSet("raisedcos", pflag.ExitOnError)
	flags := cli.Register(fs)
	betas := fs.Float64Slice("beta", nil, "Roll-off factors (repeatable)")
	sps := fs.Int("sps", 0, "Samples per symbol (config value when 0)")
	_ = fs.Parse(os.Args[1:])

	env, err := flags.Setup("raisedcos", os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if len(*betas) > 0 {
		env.Config.RaisedCosine.Betas = *betas
	}
	if *sps > 0 {
		env.Config.RaisedCosine.SamplesPerSymbol = *sps
	}
	if err := run(env); err != nil {
		env.Log.Fatal("raisedcos failed", "err", err)
	}
}

func run(env *cli.Env) error {
	cfg := env.Config.RaisedCosine
	out := env.Stdout
	ts := float64(cfg.SamplesPerSymbol)

	bits, err := env.Generator().Bits(cfg.Bits)
	if err != nil {
		return err
	}
	train, err := pulse.ImpulseTrain(bits, cfg.SamplesPerSymbol)
	if err != nil {
		return err
	}

	report.Section(out, "Raised-cosine pulse shaping")
	report.Preview(out, "Bits", bits, cfg.Bits)
	symbols := make([]float64, len(bits))
	for i := range bits {
		symbols[i] = train[i*cfg.SamplesPerSymbol]
	}
	report.Preview(out, "BPSK symbols", symbols, cfg.Bits)

	n := plotting.Index(len(train))
	if err := env.Plot("raisedcos_train", plotting.Figure{
		Title: "Pulse train of impulses", XLabel: "Sample", YLabel: "Amplitude",
		Series: []plotting.Series{{Name: "impulses", X: n, Y: train}},
	}); err != nil {
		return err
	}

	tab := report.NewTable(out, "beta", "peak", "dft_deviation", "isi")
	shaped := []plotting.Series{{Name: "impulses", X: n, Y: train, Style: plotting.StylePoints}}
	for _, beta := range cfg.Betas {
		t, h, err := pulse.Response(beta, ts, cfg.TStart, cfg.TEnd)
		if err != nil {
			return err
		}
		naive, err := dft.Naive(h)
		if err != nil {
			return err
		}
		fast, err := dft.Fast(h)
		if err != nil {
			return err
		}
		dev, err := dft.MaxDeviation(naive, fast)
		if err != nil {
			return err
		}

		y := pulse.Shape(train, h)
		isi := 0.0
		for i, a := range symbols {
			isi = math.Max(isi, math.Abs(ts*y[i*cfg.SamplesPerSymbol]-a))
		}
		tab.Row(beta, pulse.RaisedCosine(0, ts, beta), dev, isi)
		env.Log.Debug("pulse", "beta", beta, "taps", len(h), "dft_deviation", dev)

		name := fmt.Sprintf("raisedcos_beta_%g", beta)
		label := fmt.Sprintf("β = %g", beta)
		if err := env.Plot(name+"_time", plotting.Figure{
			Title: "Impulse response for " + label, XLabel: "Time (t)", YLabel: "h(t)",
			Series: []plotting.Series{{Name: "h", X: t, Y: h, Style: plotting.StylePoints}},
		}); err != nil {
			return err
		}
		if err := env.Plot(name+"_freq", plotting.Figure{
			Title: "Frequency response for " + label, XLabel: "Bin", YLabel: "|H(k)|",
			Series: []plotting.Series{{Name: "|H|", X: plotting.Index(len(naive)), Y: dft.Magnitude(naive)}},
		}); err != nil {
			return err
		}
		shaped = append(shaped, plotting.Series{Name: label, X: n, Y: scale(y, ts)})
	}
	if err := tab.Flush(); err != nil {
		return err
	}

	return env.Plot("raisedcos_shaped", plotting.Figure{
		Title: "Shaped pulse train", XLabel: "Sample", YLabel: "Amplitude",
		Series: shaped,
	})
}

func scale(x []float64, s float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = s * v
	}
	return out
}
