package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ppi-predict/internal/align"
	"ppi-predict/internal/cfg"
	"ppi-predict/internal/features"
	"ppi-predict/internal/interactions"
	"ppi-predict/internal/metrics"
	"ppi-predict/internal/storage"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Parse command line flags
	var (
		inputPath   = flag.String("input", "", "Filtered CSV to read (overrides config)")
		metricsPath = flag.String("metrics", "", "Metrics index (overrides config)")
		outputPath  = flag.String("output", "", "Pair feature CSV to write (overrides config)")
		dataPath    = flag.String("data", "", "Directory of the metrics cache, read when the index is missing (overrides config)")
		workers     = flag.Int("workers", 0, "Concurrent alignments (overrides config)")
		logLevel    = flag.String("log-level", "info", "Log level: debug, info, warn, error")
	)
	flag.Parse()

	// Setup logging
	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	config, err := cfg.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	if *inputPath != "" {
		config.FilteredPath = *inputPath
	}
	if *metricsPath != "" {
		config.MetricsPath = *metricsPath
	}
	if *outputPath != "" {
		config.PairsPath = *outputPath
	}
	if *dataPath != "" {
		config.DataPath = *dataPath
	}
	if *workers > 0 {
		config.AlignWorkers = *workers
	}

	// Context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config); err != nil {
		log.Fatal().Err(err).Msg("Pair export failed")
	}
}

func run(ctx context.Context, config cfg.Settings) error {
	records, err := interactions.ReadCSV(config.FilteredPath)
	if err != nil {
		return err
	}

	var store *storage.Store
	if config.DataPath != "" {
		if store, err = storage.New(config.DataPath); err != nil {
			return err
		}
		defer store.Close()
	}
	idx, err := storage.LoadMetrics(config.MetricsPath, store)
	if err != nil {
		return err
	}

	start := time.Now()
	builder := features.PairBuilder{Scoring: align.DefaultScoring(), Workers: config.AlignWorkers}
	pairs, stats, err := builder.Build(ctx, records, idx)
	if err != nil {
		return err
	}
	balance := interactions.ClassBalance{Total: len(pairs)}
	for _, p := range pairs {
		if p.IsPhysicalAssociation {
			balance.Physical++
		}
	}
	log.Info().
		Int("input", stats.Input).
		Int("kept", stats.Kept).
		Int("missing_a", stats.MissingA).
		Int("missing_b", stats.MissingB).
		Dur("took", time.Since(start)).
		Msg("Aligned interaction pairs")

	if err := features.WritePairsCSV(config.PairsPath, pairs); err != nil {
		return err
	}
	log.Info().Str("output", config.PairsPath).Int("pairs", len(pairs)).Msg("Pair features written")

	m := metrics.NewWithRegistry(prometheus.NewRegistry())
	m.RecordStage(metrics.StagePairs, stats.Input, stats.Kept, balance.Ratio())
	return m.WriteTextfile(metrics.TextfilePath(config.MetricsTextfileDir, metrics.StagePairs))
}
