package main

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-comm/internal/cli"
	"github.com/cwbudde/algo-comm/internal/config"
	"github.com/cwbudde/algo-comm/internal/logging"
)

func testEnv(t *testing.T) (*cli.Env, *bytes.Buffer) {
	t.Helper()
	logger, err := logging.NewWriter(io.Discard, "error", "pamerror")
	require.NoError(t, err)
	var out bytes.Buffer
	cfg := config.Default()
	cfg.PAM.Symbols = 2000
	return &cli.Env{Config: cfg, Log: logger, Stdout: &out, PlotDir: t.TempDir(), Plots: true}, &out
}

func TestRun(t *testing.T) {
	env, out := testEnv(t)
	require.NoError(t, run(env, 2))

	text := out.String()
	assert.Contains(t, text, "snr_db  sigma")
	assert.Contains(t, text, "theoretical")
	assert.Contains(t, text, "Errors at 2 dB: ")
	assert.Contains(t, text, " of 2000")
	for _, name := range []string{"pam_ber", "pam_symbols", "pam_noise"} {
		assert.FileExists(t, filepath.Join(env.PlotDir, name+".png"))
	}
}

func TestRunWithoutPlots(t *testing.T) {
	env, out := testEnv(t)
	env.Plots = false
	require.NoError(t, run(env, 5))
	assert.Contains(t, out.String(), "Errors at 5 dB: ")
	assert.NoFileExists(t, filepath.Join(env.PlotDir, "pam_ber.png"))
}

func TestRunInvalidSweep(t *testing.T) {
	env, _ := testEnv(t)
	env.Config.PAM.Symbols = 0
	assert.Error(t, run(env, 2))
}
