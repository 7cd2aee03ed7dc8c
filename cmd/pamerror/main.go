// Command pamerror measures the bit error rate of binary antipodal PAM over
// an additive Gaussian noise channel and compares it with 0.5*erfc(sqrt(snr)).
//
// Usage:
//
//	pamerror [flags]
//
// Examples:
//
//	pamerror
//	pamerror --symbols 100000 --show 4
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/cwbudde/algo-comm/dsp/pam"
	"github.com/cwbudde/algo-comm/dsp/signal"
	"github.com/cwbudde/algo-comm/internal/cli"
	"github.com/cwbudde/algo-comm/internal/plotting"
	"github.com/cwbudde/algo-comm/internal/report"
)

// segment is the number of symbols drawn in the waveform plot.
const segment = 40

func main() {
	fs := pflag.NewFlagSet("pamerror", pflag.ExitOnError)
	flags := cli.Register(fs)
	symbols := fs.Int("symbols", 0, "Symbols per SNR point (config value when 0)")
	show := fs.Float64("show", 2, "SNR in dB for the waveform and noise plots")
	_ = fs.Parse(os.Args[1:])

	env, err := flags.Setup("pamerror", os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *symbols > 0 {
		env.Config.PAM.Symbols = *symbols
	}
	if err := run(env, *show); err != nil {
		env.Log.Fatal("pamerror failed", "err", err)
	}
}

func run(env *cli.Env, showDB float64) error {
	cfg := env.Config.PAM.Sweep()
	gen := env.Generator()
	out := env.Stdout

	points, err := pam.Simulate(cfg, gen)
	if err != nil {
		return err
	}

	report.Section(out, "Binary PAM error rate")
	tab := report.NewTable(out, "snr_db", "sigma", "errors", "empirical", "theoretical")
	snr := make([]float64, len(points))
	emp := make([]float64, len(points))
	theory := make([]float64, len(points))
	for i, p := range points {
		tab.Row(p.SNRdB, p.Sigma, p.Errors, p.Empirical, p.Theoretical)
		snr[i], emp[i], theory[i] = p.SNRdB, p.Empirical, p.Theoretical
		if p.Errors == 0 {
			env.Log.Warn("no errors observed", "snr_db", p.SNRdB, "symbols", cfg.Symbols)
		}
	}
	if err := tab.Flush(); err != nil {
		return err
	}

	if err := env.Plot("pam_ber", plotting.Figure{
		Title:  "Probability of error",
		XLabel: "Eb/N0 (dB)",
		YLabel: "Pe",
		LogY:   true,
		Series: []plotting.Series{
			{Name: "simulated", X: snr, Y: emp, Style: plotting.StylePoints},
			{Name: "0.5 erfc(sqrt(snr))", X: snr, Y: theory},
		},
	}); err != nil {
		return err
	}

	return waveform(env, gen, showDB)
}

// waveform draws a short segment at one SNR together with the decisions and
// the noise distribution.
func waveform(env *cli.Env, gen *signal.Generator, snrDB float64) error {
	n := env.Config.PAM.Symbols
	bits, err := gen.Bits(n)
	if err != nil {
		return err
	}
	sent, err := signal.Bipolar(bits)
	if err != nil {
		return err
	}
	sigma := pam.Sigma(snrDB)
	noise, err := gen.Gaussian(sigma, n)
	if err != nil {
		return err
	}
	received, err := signal.Add(sent, noise)
	if err != nil {
		return err
	}
	decided := pam.Decide(received)
	errs, err := pam.CountErrors(sent, decided)
	if err != nil {
		return err
	}
	report.Value(env.Stdout, fmt.Sprintf("Errors at %g dB", snrDB), fmt.Sprintf("%d of %d", errs, n))

	m := min(segment, n)
	k := plotting.Index(m)
	if err := env.Plot("pam_symbols", plotting.Figure{
		Title:  fmt.Sprintf("Symbols at %g dB", snrDB),
		XLabel: "Symbol",
		YLabel: "Amplitude",
		Series: []plotting.Series{
			{Name: "sent", X: k, Y: sent[:m], Style: plotting.StyleSteps},
			{Name: "received", X: k, Y: received[:m], Style: plotting.StylePoints},
			{Name: "decided", X: k, Y: decided[:m], Style: plotting.StyleSteps},
		},
	}); err != nil {
		return err
	}
	return env.Histogram("pam_noise", fmt.Sprintf("Noise at %g dB (sigma %.3f)", snrDB, sigma), noise, 50)
}
