// Package audio loads 16-bit PCM WAV files as normalized float64 channels.
package audio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mjibson/go-dsp/wav"

	"github.com/cwbudde/algo-comm/dsp/core"
)

// FullScale maps int16 samples to [-1, 1).
const FullScale = 32768.0

var (
	ErrUnsupportedFormat = errors.New("audio: only 16-bit PCM is supported")
	ErrNoChannel         = errors.New("audio: channel out of range")
)

// Clip is a decoded recording with one slice per channel.
type Clip struct {
	SampleRate int
	Channels   [][]float64
}

// Len returns the number of frames.
func (c *Clip) Len() int {
	if len(c.Channels) == 0 {
		return 0
	}
	return len(c.Channels[0])
}

// Channel returns channel i.
func (c *Clip) Channel(i int) ([]float64, error) {
	if i < 0 || i >= len(c.Channels) {
		return nil, fmt.Errorf("%w: %d of %d", ErrNoChannel, i, len(c.Channels))
	}
	return c.Channels[i], nil
}

// Prefer returns channel i when it exists and channel 0 otherwise, so a
// request for the second channel of a mono file falls back to the only one.
func (c *Clip) Prefer(i int) []float64 {
	if ch, err := c.Channel(i); err == nil {
		return ch
	}
	if len(c.Channels) == 0 {
		return nil
	}
	return c.Channels[0]
}

// Load reads a WAV file from disk.
func Load(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audio: %w", err)
	}
	defer f.Close()

	clip, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("audio: %s: %w", path, err)
	}
	return clip, nil
}

// Decode reads a 16-bit PCM WAV stream, divides every sample by 32768 and
// de-interleaves the channels.
func Decode(r io.Reader) (*Clip, error) {
	w, err := wav.New(r)
	if err != nil {
		return nil, err
	}
	if w.BitsPerSample != 16 || w.NumChannels == 0 {
		return nil, fmt.Errorf("%w: %d bits, %d channels", ErrUnsupportedFormat, w.BitsPerSample, w.NumChannels)
	}

	pcm, err := readPCM(w)
	if err != nil {
		return nil, err
	}

	nch := int(w.NumChannels)
	frames := len(pcm) / nch
	channels := make([][]float64, nch)
	for c := range channels {
		channels[c] = make([]float64, frames)
	}
	for i := 0; i < frames*nch; i++ {
		channels[i%nch][i/nch] = float64(pcm[i]) / FullScale
	}

	return &Clip{SampleRate: int(w.SampleRate), Channels: channels}, nil
}

// readPCM reads the whole data chunk. wav.New rounds Samples down to a
// multiple of eight, so the tail is drained one sample at a time.
func readPCM(w *wav.Wav) ([]int16, error) {
	raw, err := w.ReadSamples(w.Samples)
	if err != nil {
		return nil, err
	}
	pcm, ok := raw.([]int16)
	if !ok {
		return nil, fmt.Errorf("%w: sample type %T", ErrUnsupportedFormat, raw)
	}
	for {
		raw, err := w.ReadSamples(1)
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return pcm, nil
		}
		if err != nil {
			return nil, err
		}
		pcm = append(pcm, raw.([]int16)...)
	}
}

// Fit zero-pads or truncates x to n samples.
func Fit(x []float64, n int) []float64 {
	return core.PadTo(x, n)
}
