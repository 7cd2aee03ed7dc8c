// Command adaptive denoises a speech recording with LMS and RLS filters
// that predict the clean signal from a sliding window of the noisy one.
//
// Usage:
//
//	adaptive [flags]
//
// Examples:
//
//	adaptive --noisy noisy_speech.wav --clean clean_speech.wav
//	adaptive --taps 64 --mu 0.005 --lambda 0.999 --max-samples 48000
package main

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/pflag"

	"github.com/cwbudde/algo-comm/dsp/adaptive"
	"github.com/cwbudde/algo-comm/dsp/filter/fir"
	"github.com/cwbudde/algo-comm/dsp/spectrum"
	"github.com/cwbudde/algo-comm/internal/audio"
	"github.com/cwbudde/algo-comm/internal/cli"
	"github.com/cwbudde/algo-comm/internal/plotting"
	"github.com/cwbudde/algo-comm/internal/report"
	freqstats "github.com/cwbudde/algo-comm/stats/frequency"
	timestats "github.com/cwbudde/algo-comm/stats/time"
)

func main() {
	fs := pflag.NewFlagSet("adaptive", pflag.ExitOnError)
	flags := cli.Register(fs)
	noisy := fs.String("noisy", "", "Noisy speech WAV (config value when empty)")
	clean := fs.String("clean", "", "Clean speech WAV (config value when empty)")
	taps := fs.Int("taps", 0, "Filter length (config value when 0)")
	mu := fs.Float64("mu", 0, "LMS step size (config value when 0)")
	lambda := fs.Float64("lambda", 0, "RLS forgetting factor (config value when 0)")
	maxSamples := fs.Int("max-samples", 0, "Truncate the aligned signals (0 keeps all)")
	_ = fs.Parse(os.Args[1:])

	env, err := flags.Setup("adaptive", os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg := &env.Config.Adaptive
	if *noisy != "" {
		cfg.Noisy = *noisy
	}
	if *clean != "" {
		cfg.Clean = *clean
	}
	if *taps > 0 {
		cfg.Taps = *taps
	}
	if *mu > 0 {
		cfg.StepSize = *mu
	}
	if *lambda > 0 {
		cfg.Forgetting = *lambda
	}

	noisySig, cleanSig, rate, err := load(env)
	if err != nil {
		env.Log.Fatal("adaptive failed", "err", err)
	}
	if *maxSamples > 0 && len(noisySig) > *maxSamples {
		noisySig, cleanSig = noisySig[:*maxSamples], cleanSig[:*maxSamples]
	}
	if err := run(env, noisySig, cleanSig, rate); err != nil {
		env.Log.Fatal("adaptive failed", "err", err)
	}
}

// load reads both recordings and zero-pads them to a common length.
func load(env *cli.Env) (noisy, clean []float64, rate float64, err error) {
	cfg := env.Config.Adaptive
	nc, err := audio.Load(cfg.Noisy)
	if err != nil {
		return nil, nil, 0, err
	}
	cc, err := audio.Load(cfg.Clean)
	if err != nil {
		return nil, nil, 0, err
	}
	if nc.SampleRate != cc.SampleRate {
		env.Log.Warn("sample rates differ", "noisy", nc.SampleRate, "clean", cc.SampleRate)
	}
	noisy, clean = adaptive.Align(nc.Prefer(0), cc.Prefer(0))
	env.Log.Info("loaded speech", "rate", nc.SampleRate, "samples", len(noisy))
	return noisy, clean, float64(nc.SampleRate), nil
}

type outcome struct {
	name   string
	result adaptive.Result
	filter adaptive.Filter
}

func run(env *cli.Env, noisy, clean []float64, rate float64) error {
	cfg := env.Config.Adaptive
	out := env.Stdout
	gen := env.Generator()

	lms, err := adaptive.NewLMS(cfg.Taps, cfg.StepSize, adaptive.WithRand(gen.Rand()))
	if err != nil {
		return err
	}
	rls, err := adaptive.NewRLS(cfg.Taps, cfg.Forgetting,
		adaptive.WithRand(gen.Rand()), adaptive.WithDelta(cfg.Delta))
	if err != nil {
		return err
	}

	var results []outcome
	for _, f := range []struct {
		name string
		f    adaptive.Filter
	}{{"LMS", lms}, {"RLS", rls}} {
		env.Log.Info("filtering", "filter", f.name, "taps", cfg.Taps, "samples", len(noisy))
		res, err := adaptive.Run(f.f, noisy, clean)
		if err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
		results = append(results, outcome{name: f.name, result: res, filter: f.f})
	}

	report.Section(out, "Mean squared error against the clean signal")
	tab := report.NewTable(out, "filter", "mse", "snr_db")
	snr, err := timestats.SNR(noisy, clean)
	if err != nil {
		return err
	}
	mse, err := timestats.MSE(noisy, clean)
	if err != nil {
		return err
	}
	tab.Row("none", mse, snr)
	for _, r := range results {
		snr, err := timestats.SNR(r.result.Output, clean)
		if err != nil {
			return err
		}
		tab.Row(r.name, r.result.MSE, snr)
	}
	if err := tab.Flush(); err != nil {
		return err
	}
	report.Value(out, "LMS error", fmt.Sprintf("%.2f", results[0].result.MSE))
	report.Value(out, "RLS error", fmt.Sprintf("%.2f", results[1].result.MSE))
	report.Value(out, "RLS covariance resets", rls.Resets())
	if rls.Resets() > 0 {
		env.Log.Warn("RLS covariance was re-initialized", "resets", rls.Resets())
	}

	if err := shape(env, noisy, clean, rate, results); err != nil {
		return err
	}
	return plots(env, noisy, clean, rate, results)
}

// shape prints spectral descriptors for every signal.
func shape(env *cli.Env, noisy, clean []float64, rate float64, results []outcome) error {
	report.Section(env.Stdout, "Spectral shape")
	tab := report.NewTable(env.Stdout, "signal", "centroid_hz", "spread_hz", "flatness", "rolloff_hz")
	rows := []struct {
		name string
		x    []float64
	}{{"clean", clean}, {"noisy", noisy}}
	for _, r := range results {
		rows = append(rows, struct {
			name string
			x    []float64
		}{r.name, r.result.Output})
	}
	for _, r := range rows {
		f, m, err := spectrum.OneSided(r.x, rate)
		if err != nil {
			return err
		}
		st, err := freqstats.Calculate(f, m)
		if err != nil {
			return err
		}
		tab.Row(r.name, st.Centroid, st.Spread, st.Flatness, st.Rolloff)
	}
	return tab.Flush()
}

func plots(env *cli.Env, noisy, clean []float64, rate float64, results []outcome) error {
	cfg := env.Config.Adaptive
	if !env.Plots {
		return nil
	}

	signals := []struct {
		name string
		x    []float64
	}{{"clean", clean}, {"noisy", noisy}}
	for _, r := range results {
		signals = append(signals, struct {
			name string
			x    []float64
		}{r.name, r.result.Output})
	}
	for _, s := range signals {
		if err := signalAndSpectrum(env, s.name, s.x, rate); err != nil {
			return err
		}
	}

	for _, r := range results {
		fNoisy, mNoisy, err := spectrum.OneSided(noisy, rate)
		if err != nil {
			return err
		}
		fOut, mOut, err := spectrum.OneSided(r.result.Output, rate)
		if err != nil {
			return err
		}
		if err := env.Plot("adaptive_"+r.name+"_filtered", plotting.Figure{
			Title:  r.name + " filtered magnitude spectrum",
			XLabel: "Frequency (Hz)",
			YLabel: "Magnitude",
			Series: []plotting.Series{
				{Name: "original", X: fNoisy, Y: mNoisy},
				{Name: "filtered", X: fOut, Y: mOut},
			},
		}); err != nil {
			return err
		}
		if err := env.Plot("adaptive_"+r.name+"_response", weightResponse(r, rate)); err != nil {
			return err
		}

		curve, err := adaptive.LearningCurve(r.result.Errors, cfg.LearningBlock)
		if err != nil {
			return err
		}
		if err := env.Plot("adaptive_"+r.name+"_learning", plotting.Figure{
			Title:  r.name + " learning curve",
			XLabel: fmt.Sprintf("Block of %d samples", cfg.LearningBlock),
			YLabel: "Mean squared error",
			Series: []plotting.Series{{Name: r.name, Y: curve}},
			LogY:   true,
		}); err != nil {
			return err
		}
	}

	for _, s := range signals[:2] {
		if err := env.Histogram("adaptive_"+s.name+"_histogram", "Histogram of "+s.name+" signal", s.x, cfg.HistogramBins); err != nil {
			return err
		}
	}

	series := []plotting.Series{{Name: "clean", Y: clean}, {Name: "noisy", Y: noisy}}
	for _, r := range results {
		series = append(series, plotting.Series{Name: r.name, Y: r.result.Output})
	}
	return env.Plot("adaptive_comparison", plotting.Figure{
		Title:  "Comparison of original and filtered signals",
		XLabel: "Sample",
		YLabel: "Amplitude",
		Series: series,
	})
}

func signalAndSpectrum(env *cli.Env, name string, x []float64, rate float64) error {
	if err := env.Plot("adaptive_"+name+"_signal", plotting.Figure{
		Title:  name + " audio signal",
		XLabel: "Sample",
		YLabel: "Amplitude",
		Series: []plotting.Series{{Y: x}},
	}); err != nil {
		return err
	}
	f, m, err := spectrum.OneSided(x, rate)
	if err != nil {
		return err
	}
	return env.Plot("adaptive_"+name+"_spectrum", plotting.Figure{
		Title:  name + " magnitude spectrum",
		XLabel: "Frequency (Hz)",
		YLabel: "Magnitude",
		Series: []plotting.Series{{Y: m, X: f}},
	})
}

// weightResponse plots the magnitude response of the final weights viewed
// as an FIR filter.
func weightResponse(r outcome, rate float64) plotting.Figure {
	f := fir.New(r.filter.Weights())
	const points = 512
	freqs := make([]float64, points)
	mags := make([]float64, points)
	for i := range freqs {
		freqs[i] = float64(i) * rate / 2 / points
		mags[i] = f.MagnitudeDB(freqs[i], rate)
		if math.IsInf(mags[i], -1) {
			mags[i] = -300
		}
	}
	return plotting.Figure{
		Title:  r.name + " final weight response",
		XLabel: "Frequency (Hz)",
		YLabel: "Magnitude (dB)",
		Series: []plotting.Series{{Name: r.name, X: freqs, Y: mags}},
	}
}
