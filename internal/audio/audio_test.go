package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pcmWAV encodes interleaved 16-bit samples as a canonical 44-byte-header
// WAV file.
func pcmWAV(t *testing.T, rate, channels, bits int, samples []int16) []byte {
	t.Helper()
	var buf bytes.Buffer
	dataSize := uint32(len(samples) * bits / 8)
	blockAlign := uint16(channels * bits / 8)

	buf.WriteString("RIFF")
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, 36+dataSize))
	buf.WriteString("WAVEfmt ")
	for _, v := range []any{
		uint32(16),
		uint16(1),
		uint16(channels),
		uint32(rate),
		uint32(rate) * uint32(blockAlign),
		blockAlign,
		uint16(bits),
	} {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, v))
	}
	buf.WriteString("data")
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, dataSize))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, samples))
	return buf.Bytes()
}

func TestDecodeStereo(t *testing.T) {
	data := pcmWAV(t, 8000, 2, 16, []int16{16384, -32768, 0, 8192, -16384, 32767})

	clip, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, 8000, clip.SampleRate)
	require.Len(t, clip.Channels, 2)
	assert.Equal(t, 3, clip.Len())
	assert.Equal(t, []float64{0.5, 0, -0.5}, clip.Channels[0])
	assert.Equal(t, []float64{-1, 0.25, 32767.0 / 32768}, clip.Channels[1])

	right, err := clip.Channel(1)
	require.NoError(t, err)
	assert.Equal(t, clip.Channels[1], right)
	assert.Equal(t, clip.Channels[1], clip.Prefer(1))

	_, err = clip.Channel(2)
	assert.True(t, errors.Is(err, ErrNoChannel))
}

func TestDecodeReadsWholeDataChunk(t *testing.T) {
	for _, n := range []int{1, 3, 7, 9, 1001, 44103} {
		samples := make([]int16, n)
		for i := range samples {
			samples[i] = int16(i%200 - 100)
		}
		samples[n-1] = 16384

		clip, err := Decode(bytes.NewReader(pcmWAV(t, 8000, 1, 16, samples)))
		require.NoError(t, err, "n=%d", n)
		require.Equal(t, n, clip.Len(), "n=%d", n)
		assert.Equal(t, 0.5, clip.Channels[0][n-1], "n=%d", n)
	}
}

func TestDecodeOddStereoFrames(t *testing.T) {
	frames := 1001
	samples := make([]int16, 2*frames)
	samples[2*frames-2], samples[2*frames-1] = 8192, -8192
	clip, err := Decode(bytes.NewReader(pcmWAV(t, 8000, 2, 16, samples)))
	require.NoError(t, err)
	require.Equal(t, frames, clip.Len())
	assert.Equal(t, 0.25, clip.Channels[0][frames-1])
	assert.Equal(t, -0.25, clip.Channels[1][frames-1])
}

func TestPreferFallsBackToMono(t *testing.T) {
	clip, err := Decode(bytes.NewReader(pcmWAV(t, 16000, 1, 16, []int16{1000, -1000})))
	require.NoError(t, err)
	assert.Equal(t, clip.Channels[0], clip.Prefer(1))
}

func TestLoadFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	require.NoError(t, os.WriteFile(path, pcmWAV(t, 44100, 1, 16, []int16{0, 16384, 0, -16384}), 0o600))

	clip, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.5, 0, -0.5}, clip.Channels[0])

	_, err = Load(filepath.Join(t.TempDir(), "missing.wav"))
	assert.Error(t, err)
}

func TestFit(t *testing.T) {
	assert.Equal(t, []float64{1, 2, 0}, Fit([]float64{1, 2}, 3))
	assert.Equal(t, []float64{1}, Fit([]float64{1, 2}, 1))
}
