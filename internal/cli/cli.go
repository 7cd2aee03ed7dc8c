// Package cli wires the flags, configuration, logger and plot output that
// every exercise command shares.
package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lestrrat-go/strftime"
	"github.com/spf13/pflag"

	"github.com/cwbudde/algo-comm/dsp/core"
	"github.com/cwbudde/algo-comm/dsp/signal"
	"github.com/cwbudde/algo-comm/internal/config"
	"github.com/cwbudde/algo-comm/internal/logging"
	"github.com/cwbudde/algo-comm/internal/plotting"
)

// Flags holds the common command line options.
type Flags struct {
	fs *pflag.FlagSet

	ConfigPath string
	LogLevel   string
	OutDir     string
	Seed       uint64
	NoPlots    bool
}

// Register adds the common options to fs.
func Register(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVarP(&f.ConfigPath, "config", "c", "", "YAML configuration file (defaults apply when empty)")
	fs.StringVar(&f.LogLevel, "log-level", logging.DefaultLevel, "Log level (debug, info, warn, error)")
	fs.StringVarP(&f.OutDir, "out", "o", "plots", "Directory for plot files (strftime patterns such as %Y%m%d are expanded)")
	fs.Uint64Var(&f.Seed, "seed", 1, "Random seed (overrides the config file)")
	fs.BoolVar(&f.NoPlots, "no-plots", false, "Skip writing plot files")
	return f
}

// Changed reports whether the named flag was set on the command line.
func (f *Flags) Changed(name string) bool {
	return f.fs.Changed(name)
}

// Env is the resolved runtime environment of one command.
type Env struct {
	Config  config.Config
	Log     *log.Logger
	Stdout  io.Writer
	PlotDir string
	Plots   bool
}

// Setup loads the configuration, applies the seed override and builds the
// logger.
func (f *Flags) Setup(name string, stdout, stderr io.Writer) (*Env, error) {
	logger, err := logging.NewWriter(stderr, f.LogLevel, name)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(f.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if f.Changed("seed") {
		cfg.Seed = f.Seed
	}
	logger.Debug("configuration loaded", "path", f.ConfigPath, "seed", cfg.Seed)

	dir, err := PlotDir(f.OutDir, time.Now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return &Env{
		Config:  cfg,
		Log:     logger,
		Stdout:  stdout,
		PlotDir: dir,
		Plots:   !f.NoPlots,
	}, nil
}

// PlotDir expands strftime verbs in pattern for the run started at t.
func PlotDir(pattern string, t time.Time) (string, error) {
	dir, err := strftime.Format(pattern, t)
	if err != nil {
		return "", fmt.Errorf("cli: plot directory %q: %w", pattern, err)
	}
	return dir, nil
}

// Generator returns a random source seeded from the configuration.
func (e *Env) Generator(opts ...core.ProcessorOption) *signal.Generator {
	opts = append([]core.ProcessorOption{core.WithSeed(e.Config.Seed)}, opts...)
	return signal.NewGenerator(opts...)
}

// Plot writes fig to <PlotDir>/<name>.png unless plots are disabled.
func (e *Env) Plot(name string, fig plotting.Figure) error {
	if !e.Plots {
		return nil
	}
	path := filepath.Join(e.PlotDir, name+".png")
	if err := plotting.Save(fig, path); err != nil {
		return err
	}
	e.Log.Info("wrote plot", "path", path)
	return nil
}

// Histogram writes a histogram plot unless plots are disabled.
func (e *Env) Histogram(name, title string, values []float64, bins int) error {
	if !e.Plots {
		return nil
	}
	path := filepath.Join(e.PlotDir, name+".png")
	if err := plotting.Histogram(title, values, bins, path); err != nil {
		return err
	}
	e.Log.Info("wrote plot", "path", path)
	return nil
}
