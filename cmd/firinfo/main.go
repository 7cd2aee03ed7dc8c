// Command firinfo compares the QAM receive low-pass filter across window
// types: gain at DC and at the cutoff, attenuation of the double-frequency
// mixing product and the worst response above the carrier.
//
// Usage:
//
//	firinfo [flags] [window-name ...]
//
// Without arguments it prints every known window.
//
// Examples:
//
//	firinfo
//	firinfo --taps 201 hamming blackman
//	firinfo --list
package main

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/cwbudde/algo-comm/dsp/filter/fir"
	"github.com/cwbudde/algo-comm/dsp/modulation/qam"
	"github.com/cwbudde/algo-comm/dsp/window"
	"github.com/cwbudde/algo-comm/internal/cli"
	"github.com/cwbudde/algo-comm/internal/plotting"
	"github.com/cwbudde/algo-comm/internal/report"
)

// responsePoints is the number of frequencies in the response plot.
const responsePoints = 512

var windows = []window.Type{
	window.TypeRectangular,
	window.TypeHann,
	window.TypeHamming,
	window.TypeBlackman,
	window.TypeBlackmanHarris4Term,
}

func main() {
	fs := pflag.NewFlagSet("firinfo", pflag.ExitOnError)
	flags := cli.Register(fs)
	taps := fs.Int("taps", 0, "Filter taps, odd (config value when 0)")
	list := fs.Bool("list", false, "List available window names")
	_ = fs.Parse(os.Args[1:])

	if *list {
		for _, w := range windows {
			fmt.Println(w)
		}
		return
	}

	env, err := flags.Setup("firinfo", os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *taps > 0 {
		env.Config.QAM.Taps = *taps
	}
	if err := run(env, fs.Args()); err != nil {
		env.Log.Fatal("firinfo failed", "err", err)
	}
}

// resolve maps names to window types. No names selects every window.
func resolve(names []string) ([]window.Type, error) {
	if len(names) == 0 {
		return windows, nil
	}
	out := make([]window.Type, 0, len(names))
	for _, name := range names {
		w, err := window.Parse(strings.ToLower(strings.TrimSpace(name)))
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

// image returns where the 2*carrier mixing product lands after sampling.
func image(cfg qam.Config) float64 {
	f := math.Mod(2*cfg.CarrierHz, cfg.SampleRate)
	if f > cfg.SampleRate/2 {
		f = cfg.SampleRate - f
	}
	return f
}

func run(env *cli.Env, names []string) error {
	cfg, err := env.Config.QAM.Modem()
	if err != nil {
		return err
	}
	types, err := resolve(names)
	if err != nil {
		return err
	}
	nyquist := cfg.SampleRate / 2
	img := image(cfg)

	report.Section(env.Stdout, fmt.Sprintf("Receive low-pass: %d taps, cutoff %g Hz, image %g Hz", cfg.Taps, cfg.CutoffHz, img))
	tab := report.NewTable(env.Stdout, "window", "dc_db", "cutoff_db", "image_db", "worst_stop_db")
	freqs := make([]float64, responsePoints)
	for i := range freqs {
		freqs[i] = nyquist * float64(i) / float64(responsePoints-1)
	}
	var series []plotting.Series
	for _, w := range types {
		h, err := fir.DesignLowPass(cfg.CutoffHz, cfg.SampleRate, cfg.Taps, w)
		if err != nil {
			return err
		}
		f := fir.New(h)
		resp := make([]float64, len(freqs))
		worst := math.Inf(-1)
		for i, hz := range freqs {
			resp[i] = f.MagnitudeDB(hz, cfg.SampleRate)
			if hz >= cfg.CarrierHz {
				worst = math.Max(worst, resp[i])
			}
		}
		tab.Row(w.String(),
			f.MagnitudeDB(0, cfg.SampleRate),
			f.MagnitudeDB(cfg.CutoffHz, cfg.SampleRate),
			f.MagnitudeDB(img, cfg.SampleRate),
			worst)
		series = append(series, plotting.Series{Name: w.String(), X: freqs, Y: resp})
	}
	if err := tab.Flush(); err != nil {
		return err
	}

	return env.Plot("firinfo_response", plotting.Figure{
		Title:  "Receive low-pass magnitude response",
		XLabel: "Frequency (Hz)",
		YLabel: "Magnitude (dB)",
		Series: series,
	})
}
