package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/logship/internal/cliconfig"
	"github.com/bft-labs/logship/internal/pipeline"
	logAdapter "github.com/bft-labs/logship/pkg/log"
	"github.com/bft-labs/logship/pkg/logship"
	"github.com/bft-labs/logship/pkg/record"
)

const helpBanner = `
 █████         █████████     █████████    █████████   █████   █████ █████ ███████████
░░███         ███░░░░░███   ███░░░░░███  ███░░░░░███ ░░███   ░░███ ░░███ ░░███░░░░░███
 ░███        ░███    ░███  ░███    ░░░  ░███    ░░░   ░███    ░███  ░███  ░███    ░███
 ░███        ░███    ░███  ░███         ░░█████████   ░███████████  ░███  ░██████████
 ░███        ░███    ░███  ░███   █████  ░░░░░░░░███  ░███░░░░░███  ░███  ░███░░░░░░
 ░███      █ ░███    ░███  ░███  ░░███   ███    ░███  ░███    ░███  ░███  ░███
 ███████████ ░░█████████   ░░█████████  ░░█████████   █████   █████ █████ █████
░░░░░░░░░░░   ░░░░░░░░░     ░░░░░░░░░    ░░░░░░░░░   ░░░░░   ░░░░░ ░░░░░ ░░░░░
`

const helpDescription = `
Ship newline-delimited JSON log records to a stream ingestion endpoint.

Highlights:
  - Reads NDJSON from a file or stdin; --follow keeps shipping as the file grows.
  - Batches by count and interval; records below --min-level never leave the box.
  - Resumes file inputs from a saved cursor after restarts.
  - Configure via file, env (LOGSHIP_*), or flags.
`

var longHelp = strings.TrimSpace(helpBanner) + "\n\n" + strings.TrimSpace(helpDescription)

var exampleUsage = strings.TrimSpace(`
  logship --host https://logs.example.com --stream app --username svc --input /var/log/app.ndjson --follow
  kubectl logs -f my-pod | logship --config $HOME/.logship/config.toml
`)

const entryBufferSize = 256

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "logship",
		Short:   "Ship newline-delimited JSON log records to a stream ingestion endpoint",
		Long:    longHelp,
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first (default $HOME/.logship/config.toml), then apply flag overrides
			// Determine config path
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// Apply environment variables (LOGSHIP_*)
			// These override file config but are overridden by flags (checked via changed map)
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			// Validate and set derived defaults
			if err := cfg.Validate(); err != nil {
				return err
			}

			// Log configuration (masking password)
			logCfg := cfg
			if len(logCfg.Password) > 0 {
				logCfg.Password = "*****"
			}
			log.Info().Interface("config", logCfg).Msg("configuration")

			minLevel, err := record.ParseLevel(cfg.MinLevel)
			if err != nil {
				return err
			}

			// Convert cliconfig.Config to logship.Config
			libCfg := logship.DefaultConfig()
			libCfg.Host = cfg.Host
			libCfg.Port = cfg.Port
			libCfg.Stream = cfg.Stream
			libCfg.Username = cfg.Username
			libCfg.Password = cfg.Password
			libCfg.MinLevel = minLevel
			libCfg.HTTPTimeout = cfg.HTTPTimeout

			// Create zerolog adapter for the library
			logger := logAdapter.NewZerologAdapterWithLogger(log)

			shipper, err := logship.New(libCfg, logship.WithLogger(logger))
			if err != nil {
				return fmt.Errorf("create shipper: %w", err)
			}

			// Cursor store only makes sense for file inputs; stdin cannot resume.
			var cursor *pipeline.CursorStore
			if cfg.InputPath != "" && cfg.StateDir != "" {
				cursor = pipeline.NewCursorStore(cfg.StateDir)
			}

			tailer := pipeline.NewTailer(pipeline.TailerConfig{
				Path:         cfg.InputPath,
				Follow:       cfg.Follow,
				PollInterval: cfg.PollInterval,
			}, pipeline.NewParser(cfg.Channel), cursor, logger)

			collector := pipeline.NewCollector(pipeline.CollectorConfig{
				MaxBatchRecords: cfg.MaxBatchRecords,
				FlushInterval:   cfg.FlushInterval,
				RateLimit:       cfg.RateLimit,
				InputPath:       cfg.InputPath,
			}, shipper, cursor, logger)

			// Setup signal handling for graceful shutdown
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				select {
				case sig := <-sigCh:
					log.Info().Str("signal", sig.String()).Msg("received signal, stopping...")
					cancel()
				case <-ctx.Done():
				}
			}()

			// Serve Prometheus metrics when a listen address is configured
			if cfg.MetricsListen != "" {
				go func() {
					mux := http.NewServeMux()
					mux.Handle("/metrics", promhttp.Handler())
					log.Info().Str("addr", cfg.MetricsListen).Msg("serving metrics")
					if err := http.ListenAndServe(cfg.MetricsListen, mux); err != nil {
						log.Error().Err(err).Msg("metrics server failed")
					}
				}()
			}

			// Run the pipeline: tailer feeds the collector, the collector
			// flushes batches through the shipper and drains on shutdown.
			entries := make(chan pipeline.Entry, entryBufferSize)

			tailDone := make(chan error, 1)
			go func() { tailDone <- tailer.Run(ctx, entries) }()

			collectErr := collector.Run(ctx, entries)
			tailErr := <-tailDone

			// Cancellation is the normal shutdown path, not a failure.
			if collectErr != nil && !errors.Is(collectErr, context.Canceled) {
				return fmt.Errorf("collect: %w", collectErr)
			}
			if tailErr != nil && !errors.Is(tailErr, context.Canceled) {
				return fmt.Errorf("tail: %w", tailErr)
			}
			return nil
		},
	}

	// Flags
	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.logship/config.toml)")
	root.Flags().StringVar(&cfg.Host, "host", cfg.Host, "server base URL, e.g. https://logs.example.com")
	root.Flags().IntVar(&cfg.Port, "port", cfg.Port, "server ingest port")
	root.Flags().StringVar(&cfg.Stream, "stream", cfg.Stream, "target stream name")
	root.Flags().StringVar(&cfg.Username, "username", cfg.Username, "basic auth username")
	root.Flags().StringVar(&cfg.Password, "password", cfg.Password, "basic auth password (prefer LOGSHIP_PASSWORD)")
	root.Flags().StringVar(&cfg.MinLevel, "min-level", cfg.MinLevel, "minimum severity to ship (debug..emergency)")

	root.Flags().StringVar(&cfg.InputPath, "input", cfg.InputPath, "NDJSON input file (default: stdin)")
	root.Flags().BoolVar(&cfg.Follow, "follow", cfg.Follow, "keep reading the input file as it grows")
	root.Flags().StringVar(&cfg.Channel, "channel", cfg.Channel, "channel stamped on records without one (defaults to stream)")

	root.Flags().IntVar(&cfg.MaxBatchRecords, "max-batch-records", cfg.MaxBatchRecords, "maximum records per batch")
	root.Flags().DurationVar(&cfg.FlushInterval, "flush-interval", cfg.FlushInterval, "flush a non-empty batch after this long")
	root.Flags().IntVar(&cfg.RateLimit, "rate-limit", cfg.RateLimit, "maximum records read per second (0 = unlimited)")

	root.Flags().DurationVar(&cfg.PollInterval, "poll", cfg.PollInterval, "poll interval for file changes in follow mode")
	if err := root.Flags().MarkHidden("poll"); err != nil {
		log.Info().Err(err).Msg("failed to hide poll flag")
	}
	root.Flags().StringVar(&cfg.StateDir, "state-dir", cfg.StateDir, "state directory for the resume cursor")
	if err := root.Flags().MarkHidden("state-dir"); err != nil {
		log.Info().Err(err).Msg("failed to hide state-dir flag")
	}

	root.Flags().DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "HTTP timeout per delivery")
	root.Flags().StringVar(&cfg.MetricsListen, "metrics-listen", cfg.MetricsListen, "address to serve Prometheus metrics on (empty = disabled)")

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("logship")
		os.Exit(1)
	}
}
