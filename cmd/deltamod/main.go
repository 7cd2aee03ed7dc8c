// Command deltamod delta-modulates a recording, quantizes it on a 128-level
// uniform grid and reconstructs the staircase from the delta bits.
//
// Usage:
//
//	deltamod [flags]
//
// Without --input a test tone is synthesized.
//
// Examples:
//
//	deltamod --input Impact_Moderato.wav
//	deltamod --step 0.02 --no-plots
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/cwbudde/algo-comm/dsp/core"
	"github.com/cwbudde/algo-comm/dsp/modulation/delta"
	"github.com/cwbudde/algo-comm/dsp/quant"
	"github.com/cwbudde/algo-comm/internal/audio"
	"github.com/cwbudde/algo-comm/internal/cli"
	"github.com/cwbudde/algo-comm/internal/plotting"
	"github.com/cwbudde/algo-comm/internal/report"
	timestats "github.com/cwbudde/algo-comm/stats/time"
)

func main() {
	fs := pflag.NewFlagSet("deltamod", pflag.ExitOnError)
	flags := cli.Register(fs)
	input := fs.StringP("input", "i", "", "16-bit PCM WAV file (synthesize a tone when empty)")
	step := fs.Float64("step", 0, "Delta step (config value when 0)")
	_ = fs.Parse(os.Args[1:])

	env, err := flags.Setup("deltamod", os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if fs.Changed("input") {
		env.Config.Delta.Input = *input
	}
	if *step > 0 {
		env.Config.Delta.Step = *step
	}
	if err := run(env); err != nil {
		env.Log.Fatal("deltamod failed", "err", err)
	}
}

func loadSignal(env *cli.Env) ([]float64, float64, error) {
	cfg := env.Config.Delta
	if cfg.Input == "" {
		gen := env.Generator(core.WithSampleRate(cfg.ToneRate))
		x, err := gen.Sine(cfg.ToneHz, 0.25, cfg.ToneSamples)
		if err != nil {
			return nil, 0, err
		}
		env.Log.Info("synthesized tone", "hz", cfg.ToneHz, "rate", cfg.ToneRate, "samples", len(x))
		return x, cfg.ToneRate, nil
	}

	clip, err := audio.Load(cfg.Input)
	if err != nil {
		return nil, 0, err
	}
	x := clip.Prefer(cfg.Channel)
	env.Log.Info("loaded audio", "path", cfg.Input, "rate", clip.SampleRate,
		"channels", len(clip.Channels), "samples", len(x))
	return x, float64(clip.SampleRate), nil
}

func run(env *cli.Env) error {
	cfg := env.Config.Delta
	out := env.Stdout

	x, rate, err := loadSignal(env)
	if err != nil {
		return err
	}
	st := timestats.Calculate(x)
	report.Section(out, "To perform quantization")
	report.Value(out, "Minimum value", st.Min)
	report.Value(out, "Maximum value", st.Max)

	opts := []delta.Option{
		delta.WithInitial(cfg.Initial),
		delta.WithStep(cfg.Step),
		delta.WithReconstructionStep(cfg.ReconstructionStep),
	}
	bits, thresholds, err := delta.EncodeTrace(x, opts...)
	if err != nil {
		return err
	}
	report.Section(out, "Delta modulation")
	report.Value(out, "Length of encoded data", len(bits))
	report.Preview(out, "Encoded data", bits, cfg.Preview)

	q, err := quant.Uniform(cfg.QuantStart, cfg.QuantIncrement, cfg.QuantThresholds)
	if err != nil {
		return err
	}
	report.Section(out, "Uniform quantization")
	report.Value(out, "Number of quantization levels", len(q.Levels()))
	report.Floats(out, "Quantization levels", q.Levels(), cfg.Preview, 4)
	report.Value(out, "Number of quantized values", q.Size())
	report.Floats(out, "Quantized values", q.Midpoints(), cfg.Preview, 5)

	indices, clipped := q.Encode(x)
	if clipped > 0 {
		env.Log.Warn("samples above the quantizer range clamped", "count", clipped, "index", q.Size())
	}
	codes := make([]string, 0, cfg.Preview)
	for _, idx := range core.Head(indices, cfg.Preview) {
		codes = append(codes, quant.Codeword(idx))
	}
	report.Value(out, "Length of encoded signal", len(indices))
	report.Preview(out, "Encoded signal", codes, cfg.Preview)

	quantized, err := q.Decode(indices)
	if err != nil {
		return err
	}
	if snr, err := timestats.SNR(quantized, x); err == nil {
		report.Value(out, "Quantization SNR (dB)", fmt.Sprintf("%.2f", snr))
	}

	recon, err := delta.Reconstruct(bits, opts...)
	if err != nil {
		return err
	}

	t := make([]float64, len(x))
	for i := range t {
		t[i] = float64(i) / rate
	}
	if err := env.Plot("deltamod_signal", plotting.Figure{
		Title:  "Sampled version of audio file",
		XLabel: "Time (s)",
		YLabel: "Amplitude",
		Series: []plotting.Series{
			{Name: "signal", X: t, Y: x},
			{Name: "delta staircase", X: t, Y: thresholds, Style: plotting.StyleSteps},
		},
	}); err != nil {
		return err
	}
	return env.Plot("deltamod_reconstruction", plotting.Figure{
		Title:  "Reconstructed audio from the encoded bits",
		XLabel: "Time (s)",
		YLabel: "Amplitude",
		Series: []plotting.Series{{Name: "reconstruction", X: t, Y: recon}},
	})
}
