// Command duobinary runs precoded duobinary signalling: a fixed demo
// sequence without noise, then a long random sequence through the noiseless
// channel and through Gaussian noise at several standard deviations.
//
// Usage:
//
//	duobinary [flags]
//
// Examples:
//
//	duobinary
//	duobinary --bits 100000 --sigma 0.2 --sigma 0.4
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/cwbudde/algo-comm/dsp/linecode/duobinary"
	"github.com/cwbudde/algo-comm/internal/cli"
	"github.com/cwbudde/algo-comm/internal/plotting"
	"github.com/cwbudde/algo-comm/internal/report"
)

func main() {
	fs := pflag.NewFlagSet("duobinary", pflag.ExitOnError)
	flags := cli.Register(fs)
	bits := fs.Int("bits", 0, "Random sequence length (config value when 0)")
	sigmas := fs.Float64Slice("sigma", nil, "Noise standard deviations (repeatable)")
	_ = fs.Parse(os.Args[1:])

	env, err := flags.Setup("duobinary", os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *bits > 0 {
		env.Config.Duobinary.Bits = *bits
	}
	if len(*sigmas) > 0 {
		env.Config.Duobinary.Sigmas = *sigmas
	}
	if err := run(env); err != nil {
		env.Log.Fatal("duobinary failed", "err", err)
	}
}

// noiseless prints every stage of the clean pipeline.
func noiseless(env *cli.Env, d []int, preview int) error {
	out := env.Stdout
	p, err := duobinary.Precode(d)
	if err != nil {
		return err
	}
	a := duobinary.Amplitudes(p)
	b := duobinary.Channel(a)
	got := duobinary.Decode(b)

	report.Preview(out, "Binary data sequence {dk}", d, preview)
	report.Preview(out, "Precoded sequence {pk}", p, preview)
	report.Preview(out, "Transmitted amplitude levels {ak}", a, preview)
	report.Preview(out, "Received noise-free sequence {bk}", b, preview)
	report.Preview(out, "Recovered data sequence", got, preview)

	errs, err := duobinary.CountErrors(d, got)
	if err != nil {
		return err
	}
	if errs != 0 {
		return fmt.Errorf("noiseless decode produced %d errors", errs)
	}
	return nil
}

func run(env *cli.Env) error {
	cfg := env.Config.Duobinary
	out := env.Stdout

	report.Section(out, "Noiseless demo")
	if err := noiseless(env, cfg.Demo, len(cfg.Demo)); err != nil {
		return err
	}

	gen := env.Generator()
	d, err := gen.Bits(cfg.Bits)
	if err != nil {
		return err
	}
	report.Section(out, fmt.Sprintf("Random sequence of %d bits", cfg.Bits))
	if err := noiseless(env, d, cfg.Preview); err != nil {
		return err
	}

	report.Section(out, "With Gaussian noise")
	results := make([]duobinary.Result, 0, len(cfg.Sigmas))
	for _, sigma := range cfg.Sigmas {
		res, err := duobinary.Transmit(d, sigma, gen)
		if err != nil {
			return fmt.Errorf("sigma %g: %w", sigma, err)
		}
		results = append(results, res)
		env.Log.Info("transmitted", "sigma", sigma, "errors", res.Errors)

		label := fmt.Sprintf("sigma %g", sigma)
		n := cfg.NoisyPreview
		report.Floats(out, label+" received {bk}", res.Channel, n, 4)
		report.Floats(out, label+" before threshold", res.Soft, n, 4)
		report.Preview(out, label+" after threshold", res.Decoded, n)
	}

	report.Section(out, "Errors")
	tab := report.NewTable(out, "sigma", "errors", "rate")
	for i, res := range results {
		tab.Row(cfg.Sigmas[i], res.Errors, res.ErrorRate())
	}
	if err := tab.Flush(); err != nil {
		return err
	}

	series := make([]plotting.Series, 0, len(results))
	for i, res := range results {
		series = append(series, plotting.Series{
			Name:  fmt.Sprintf("sigma %g", cfg.Sigmas[i]),
			Y:     res.Decision,
			Style: plotting.StylePoints,
		})
	}
	if len(series) == 0 {
		return nil
	}
	return env.Plot("duobinary_decisions", plotting.Figure{
		Title:  "Decision values b/2 (threshold at ±0.5)",
		XLabel: "k",
		YLabel: "b/2",
		Series: series,
		XMax:   float64(cfg.Preview),
	})
}
