// welldash serves an interactive dashboard over a directory of LAS well logs.
//
// Usage:
//
//	welldash --data Data --addr 127.0.0.1:8050
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"welldash/internal/config"
	"welldash/internal/dashboard"
	"welldash/internal/well"
)

func main() {
	if err := newRootCommand(&options{}).Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	configPath  string
	dataDir     string
	pattern     string
	addr        string
	debug       bool
	initialWell int
	verbose     bool
}

func newRootCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "welldash",
		Short:         "Well-log dashboard",
		Long:          "Loads LAS well logs, derives Vp and Vs, and serves a cross-plot and log tracks per well.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			logger, err := newLogger(opts.verbose)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg, logger)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "YAML config file")
	f.StringVar(&opts.dataDir, "data", "", "directory walked for well-log files")
	f.StringVar(&opts.pattern, "pattern", "", "case-sensitive file name glob")
	f.StringVar(&opts.addr, "addr", "", "listen address")
	f.BoolVar(&opts.debug, "debug", true, "log every request and watch the data directory")
	f.IntVar(&opts.initialWell, "initial-well", 0, "well index charted at start-up, -1 for none")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "debug-level logging")
	return cmd
}

// resolveConfig layers defaults, the config file and explicitly set flags.
func resolveConfig(cmd *cobra.Command, opts *options) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, err
	}
	f := cmd.Flags()
	if f.Changed("data") {
		cfg.DataDir = opts.dataDir
	}
	if f.Changed("pattern") {
		cfg.Pattern = opts.pattern
	}
	if f.Changed("addr") {
		cfg.Addr = opts.addr
	}
	if f.Changed("debug") {
		cfg.Debug = opts.debug
	}
	if f.Changed("initial-well") {
		cfg.InitialWell = opts.initialWell
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	project, err := well.LoadProject(cfg.DataDir, cfg.Pattern)
	if err != nil {
		return fmt.Errorf("load wells: %w", err)
	}
	if project.Len() == 0 {
		logger.Warn("no well files found", zap.String("dir", cfg.DataDir), zap.String("pattern", cfg.Pattern))
	}
	for i, name := range project.Names() {
		logger.Debug("loaded well", zap.Int("index", i), zap.String("name", name))
	}

	app, err := dashboard.New(cfg, logger, project)
	if err != nil {
		return err
	}
	return app.Serve(ctx)
}
