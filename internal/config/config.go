// Package config holds the YAML configuration shared by the exercise
// commands. Default reproduces the constants each exercise was designed
// around; Load overlays a file on top of those defaults.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-comm/dsp/modulation/qam"
	"github.com/cwbudde/algo-comm/dsp/pam"
	"github.com/cwbudde/algo-comm/dsp/window"
)

var ErrInvalid = errors.New("config: invalid value")

// Config is the root document.
type Config struct {
	Seed         uint64             `yaml:"seed"`
	Delta        DeltaConfig        `yaml:"delta"`
	Duobinary    DuobinaryConfig    `yaml:"duobinary"`
	Adaptive     AdaptiveConfig     `yaml:"adaptive"`
	QAM          QAMConfig          `yaml:"qam"`
	PAM          PAMConfig          `yaml:"pam"`
	RaisedCosine RaisedCosineConfig `yaml:"raised_cosine"`
}

// DeltaConfig drives the delta modulation and quantization run.
type DeltaConfig struct {
	Input              string  `yaml:"input"`
	Channel            int     `yaml:"channel"`
	ToneHz             float64 `yaml:"tone_hz"`
	ToneRate           float64 `yaml:"tone_rate"`
	ToneSamples        int     `yaml:"tone_samples"`
	Initial            float64 `yaml:"initial"`
	Step               float64 `yaml:"step"`
	ReconstructionStep float64 `yaml:"reconstruction_step"`
	QuantStart         float64 `yaml:"quant_start"`
	QuantIncrement     float64 `yaml:"quant_increment"`
	QuantThresholds    int     `yaml:"quant_thresholds"`
	Preview            int     `yaml:"preview"`
}

// DuobinaryConfig drives the noiseless demo and the noisy runs.
type DuobinaryConfig struct {
	Demo         []int     `yaml:"demo"`
	Bits         int       `yaml:"bits"`
	Sigmas       []float64 `yaml:"sigmas"`
	Preview      int       `yaml:"preview"`
	NoisyPreview int       `yaml:"noisy_preview"`
}

// AdaptiveConfig drives the LMS/RLS denoising run.
type AdaptiveConfig struct {
	Noisy         string  `yaml:"noisy"`
	Clean         string  `yaml:"clean"`
	Taps          int     `yaml:"taps"`
	StepSize      float64 `yaml:"step_size"`
	Forgetting    float64 `yaml:"forgetting"`
	Delta         float64 `yaml:"delta"`
	HistogramBins int     `yaml:"histogram_bins"`
	LearningBlock int     `yaml:"learning_block"`
}

// QAMConfig drives the modulator and receiver.
type QAMConfig struct {
	SampleRate       float64 `yaml:"sample_rate"`
	CarrierHz        float64 `yaml:"carrier_hz"`
	SamplesPerSymbol int     `yaml:"samples_per_symbol"`
	CutoffHz         float64 `yaml:"cutoff_hz"`
	Taps             int     `yaml:"taps"`
	Window           string  `yaml:"window"`
	Symbols          int     `yaml:"symbols"`
}

// PAMConfig drives the probability-of-error sweep.
type PAMConfig struct {
	Symbols int       `yaml:"symbols"`
	SNRdB   []float64 `yaml:"snr_db"`
}

// RaisedCosineConfig drives the pulse-shaping run.
type RaisedCosineConfig struct {
	Bits             int       `yaml:"bits"`
	SamplesPerSymbol int       `yaml:"samples_per_symbol"`
	Betas            []float64 `yaml:"betas"`
	TStart           int       `yaml:"t_start"`
	TEnd             int       `yaml:"t_end"`
}

// Default returns the stock configuration.
func Default() Config {
	snr := make([]float64, 10)
	for i := range snr {
		snr[i] = float64(i + 1)
	}
	return Config{
		Seed: 1,
		Delta: DeltaConfig{
			Channel:            1,
			ToneHz:             440,
			ToneRate:           41200,
			ToneSamples:        41200,
			Initial:            0.01,
			Step:               0.01,
			ReconstructionStep: 0.001,
			QuantStart:         -0.3,
			QuantIncrement:     0.0047,
			QuantThresholds:    129,
			Preview:            50,
		},
		Duobinary: DuobinaryConfig{
			Demo:         []int{1, 0, 0, 1, 0, 1, 1, 1, 0, 1, 1, 0},
			Bits:         10001,
			Sigmas:       []float64{0.1, 0.5, 1},
			Preview:      100,
			NoisyPreview: 10,
		},
		Adaptive: AdaptiveConfig{
			Noisy:         "noisy_speech.wav",
			Clean:         "clean_speech.wav",
			Taps:          256,
			StepSize:      0.01,
			Forgetting:    0.99,
			Delta:         1e3,
			HistogramBins: 100,
			LearningBlock: 1000,
		},
		QAM: QAMConfig{
			SampleRate:       500000,
			CarrierHz:        140000,
			SamplesPerSymbol: 100,
			CutoffHz:         70000,
			Taps:             101,
			Window:           window.TypeHamming.String(),
			Symbols:          1000,
		},
		PAM: PAMConfig{
			Symbols: 10000,
			SNRdB:   snr,
		},
		RaisedCosine: RaisedCosineConfig{
			Bits:             10,
			SamplesPerSymbol: 8,
			Betas:            []float64{0, 0.3, 0.6, 0.9},
			TStart:           -50,
			TEnd:             51,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every section.
func (c Config) Validate() error {
	d := c.Delta
	switch {
	case d.Step <= 0 || d.ReconstructionStep <= 0:
		return invalid("delta.step", d.Step)
	case d.QuantIncrement <= 0:
		return invalid("delta.quant_increment", d.QuantIncrement)
	case d.QuantThresholds < 2:
		return invalid("delta.quant_thresholds", d.QuantThresholds)
	case d.Channel < 0:
		return invalid("delta.channel", d.Channel)
	case d.Input == "" && (d.ToneRate <= 0 || d.ToneSamples <= 0):
		return invalid("delta.tone_rate", d.ToneRate)
	}

	b := c.Duobinary
	if len(b.Demo) == 0 {
		return invalid("duobinary.demo", b.Demo)
	}
	for _, bit := range b.Demo {
		if bit != 0 && bit != 1 {
			return invalid("duobinary.demo", b.Demo)
		}
	}
	if b.Bits <= 0 {
		return invalid("duobinary.bits", b.Bits)
	}
	for _, s := range b.Sigmas {
		if s < 0 {
			return invalid("duobinary.sigmas", b.Sigmas)
		}
	}

	a := c.Adaptive
	switch {
	case a.Taps <= 0:
		return invalid("adaptive.taps", a.Taps)
	case a.StepSize <= 0:
		return invalid("adaptive.step_size", a.StepSize)
	case a.Forgetting <= 0 || a.Forgetting > 1:
		return invalid("adaptive.forgetting", a.Forgetting)
	case a.Delta <= 0:
		return invalid("adaptive.delta", a.Delta)
	case a.HistogramBins <= 0:
		return invalid("adaptive.histogram_bins", a.HistogramBins)
	case a.LearningBlock <= 0:
		return invalid("adaptive.learning_block", a.LearningBlock)
	}

	q := c.QAM
	if _, err := q.Modem(); err != nil {
		return err
	}
	if q.Symbols <= 0 {
		return invalid("qam.symbols", q.Symbols)
	}

	if err := c.PAM.Sweep().Validate(); err != nil {
		return err
	}

	r := c.RaisedCosine
	switch {
	case r.Bits <= 0:
		return invalid("raised_cosine.bits", r.Bits)
	case r.SamplesPerSymbol <= 0:
		return invalid("raised_cosine.samples_per_symbol", r.SamplesPerSymbol)
	case r.TEnd <= r.TStart:
		return invalid("raised_cosine.t_end", r.TEnd)
	case len(r.Betas) == 0:
		return invalid("raised_cosine.betas", r.Betas)
	}
	for _, beta := range r.Betas {
		if beta < 0 || beta > 1 {
			return invalid("raised_cosine.betas", r.Betas)
		}
	}
	return nil
}

func invalid(field string, v any) error {
	return fmt.Errorf("%w: %s = %v", ErrInvalid, field, v)
}

// Modem converts the QAM section to the modulator configuration.
func (q QAMConfig) Modem() (qam.Config, error) {
	win, err := window.Parse(q.Window)
	if err != nil {
		return qam.Config{}, fmt.Errorf("%w: qam.window: %w", ErrInvalid, err)
	}
	cfg := qam.Config{
		SampleRate:       q.SampleRate,
		CarrierHz:        q.CarrierHz,
		SamplesPerSymbol: q.SamplesPerSymbol,
		CutoffHz:         q.CutoffHz,
		Taps:             q.Taps,
		Window:           win,
	}
	if err := cfg.Validate(); err != nil {
		return qam.Config{}, err
	}
	return cfg, nil
}

// Sweep converts the PAM section to the simulation configuration.
func (p PAMConfig) Sweep() pam.Config {
	return pam.Config{Symbols: p.Symbols, SNRdB: append([]float64(nil), p.SNRdB...)}
}
