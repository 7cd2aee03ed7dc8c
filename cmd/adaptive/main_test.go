package main

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-comm/internal/cli"
	"github.com/cwbudde/algo-comm/internal/config"
	"github.com/cwbudde/algo-comm/internal/logging"
	"github.com/cwbudde/algo-comm/internal/testutil"
)

func testEnv(t *testing.T) (*cli.Env, *bytes.Buffer) {
	t.Helper()
	logger, err := logging.NewWriter(io.Discard, "error", "adaptive")
	require.NoError(t, err)
	var out bytes.Buffer
	cfg := config.Default()
	cfg.Adaptive.Taps = 8
	cfg.Adaptive.LearningBlock = 200
	return &cli.Env{Config: cfg, Log: logger, Stdout: &out, PlotDir: t.TempDir(), Plots: true}, &out
}

// writeMono writes a 16-bit mono WAV file.
func writeMono(t *testing.T, path string, rate int, x []float64) {
	t.Helper()
	pcm := make([]int16, len(x))
	for i, v := range x {
		pcm[i] = int16(v * 32767)
	}
	var buf bytes.Buffer
	size := uint32(2 * len(pcm))
	buf.WriteString("RIFF")
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, 36+size))
	buf.WriteString("WAVEfmt ")
	for _, v := range []any{uint32(16), uint16(1), uint16(1), uint32(rate), uint32(2 * rate), uint16(2), uint16(16)} {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, v))
	}
	buf.WriteString("data")
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, size))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, pcm))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
}

func TestLoadAligns(t *testing.T) {
	env, _ := testEnv(t)
	dir := t.TempDir()
	env.Config.Adaptive.Noisy = filepath.Join(dir, "noisy.wav")
	env.Config.Adaptive.Clean = filepath.Join(dir, "clean.wav")
	writeMono(t, env.Config.Adaptive.Noisy, 8000, testutil.DeterministicNoise(1, 0.5, 300))
	writeMono(t, env.Config.Adaptive.Clean, 8000, testutil.DeterministicSine(200, 8000, 0.5, 200))

	noisy, clean, rate, err := load(env)
	require.NoError(t, err)
	assert.Equal(t, 8000.0, rate)
	assert.Len(t, noisy, 300)
	assert.Len(t, clean, 300)
	assert.Zero(t, clean[250])
}

func TestRun(t *testing.T) {
	env, out := testEnv(t)
	clean := testutil.DeterministicSine(300, 8000, 0.5, 2000)
	noise := testutil.DeterministicNoise(2, 0.05, 2000)
	noisy := make([]float64, len(clean))
	for i := range clean {
		noisy[i] = clean[i] + noise[i]
	}

	require.NoError(t, run(env, noisy, clean, 8000))

	text := out.String()
	assert.Contains(t, text, "LMS error:")
	assert.Contains(t, text, "RLS error:")
	assert.Contains(t, text, "RLS covariance resets: 0")
	assert.Contains(t, text, "signal  centroid_hz")
	assert.Regexp(t, `\nnone\s+\S+\s+\S+\n`, text)
	for _, name := range []string{
		"adaptive_clean_signal", "adaptive_noisy_spectrum", "adaptive_LMS_filtered",
		"adaptive_RLS_response", "adaptive_RLS_learning", "adaptive_noisy_histogram",
		"adaptive_comparison",
	} {
		assert.FileExists(t, filepath.Join(env.PlotDir, name+".png"))
	}
}

func TestRunTooShort(t *testing.T) {
	env, _ := testEnv(t)
	env.Plots = false
	assert.Error(t, run(env, make([]float64, 4), make([]float64, 4), 8000))
}

func TestRunLengthMismatch(t *testing.T) {
	env, _ := testEnv(t)
	env.Plots = false
	assert.Error(t, run(env, make([]float64, 600), make([]float64, 500), 8000))
}
