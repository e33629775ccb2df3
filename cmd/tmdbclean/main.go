// Command tmdbclean downloads the TMDB movie dataset, cleans it and writes
// the cleaned dataset, anomaly reports and analysis snapshots.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tmdbcli/internal/config"
	"tmdbcli/internal/errors"
	"tmdbcli/internal/exporter"
	"tmdbcli/internal/infrastructure"
	"tmdbcli/internal/operations"
	"tmdbcli/pkg/contracts"
)

// options are the command-line overrides of the configuration
type options struct {
	configFile   string
	inPath       string
	outDir       string
	skipDownload bool
	version      bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("tmdbclean", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	fs.StringVar(&opts.configFile, "config", "", "path to a YAML config file (defaults to the first config.yaml found)")
	fs.StringVar(&opts.inPath, "in", "", "local dataset CSV; skips the download")
	fs.StringVar(&opts.outDir, "out", "", "output directory for reports (defaults to data/reports)")
	fs.BoolVar(&opts.skipDownload, "skip-download", false, "reuse a previously downloaded dataset when present")
	fs.BoolVar(&opts.version, "version", false, "print version information and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return opts, nil
}

// loadConfig loads the configuration and applies the flag overrides
func loadConfig(opts *options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configFile != "" {
		cfg, err = config.LoadFile(opts.configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, errors.NewConfigError("load configuration", err)
	}

	if opts.inPath != "" {
		cfg.Source.LocalPath = opts.inPath
	}
	if opts.outDir != "" {
		cfg.Paths.ReportsDir = opts.outDir
	}
	if opts.skipDownload {
		cfg.Source.SkipDownload = true
	}
	return cfg, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one pipeline run and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return 2
	}
	if opts.version {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return 0
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "tmdbclean: %v\n", err)
		return 1
	}

	paths := config.NewPaths(cfg.Paths)
	if err := paths.EnsureDirectories(); err != nil {
		fmt.Fprintf(stderr, "tmdbclean: %v\n", err)
		return 1
	}
	if cfg.Logging.FilePath == "" {
		cfg.Logging.FilePath = paths.GetLogPath(config.DefaultLogFileName)
	}

	logger, logCloser, err := infrastructure.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(stderr, "tmdbclean: %v\n", err)
		return 1
	}
	defer logCloser.Close()

	ctx = infrastructure.EnsureRunID(ctx)
	logger.InfoContext(ctx, "Starting TMDB movie cleaning",
		slog.String("version", config.AppVersion),
		slog.String("source", sourceLabel(cfg)))
	paths.LogPathResolution(logger)

	otelCfg := infrastructure.DefaultOTelConfig(cfg.Telemetry)
	if cfg.Telemetry.EnableTracing {
		traceFile, err := os.Create(paths.GetLogPath(config.TraceFileName))
		if err != nil {
			logger.ErrorContext(ctx, "Failed to create trace file", slog.String("error", err.Error()))
			return 1
		}
		defer traceFile.Close()
		otelCfg.TraceWriter = traceFile
	}

	providers, err := infrastructure.InitializeOTel(otelCfg, logger)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to initialize OpenTelemetry", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.Warn("OpenTelemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	registry, err := operations.NewPipelineRegistry(operations.PipelineDeps{
		Logger:   logger,
		Writer:   exporter.NewCSVWriter(paths, logger),
		Workbook: exporter.NewWorkbook(paths, logger),
		Console:  stdout,
	})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to register pipeline steps", slog.String("error", err.Error()))
		return 1
	}

	runner, err := operations.NewRunner(registry, logger, providers)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create pipeline runner", slog.String("error", err.Error()))
		return 1
	}

	state := operations.NewRunState(infrastructure.GetRunID(ctx), cfg, paths)
	runErr := runner.Run(ctx, state)

	if err := providers.WriteMetrics(paths.GetReportPath(config.MetricsFileName)); err != nil {
		logger.WarnContext(ctx, "Failed to write metrics", slog.String("error", err.Error()))
	}

	if runErr != nil {
		fmt.Fprintf(stderr, "tmdbclean: %v\n", runErr)
		return 1
	}

	logger.InfoContext(ctx, "Run finished",
		slog.Int("outputs", len(state.Outputs)),
		slog.Duration("duration", state.Duration()))
	return 0
}

func sourceLabel(cfg *config.Config) string {
	if cfg.Source.LocalPath != "" {
		return cfg.Source.LocalPath
	}
	return cfg.Source.URL
}
