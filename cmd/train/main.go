package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"ppi-predict/internal/cfg"
	"ppi-predict/internal/features"
	"ppi-predict/internal/interactions"
	"ppi-predict/internal/metrics"
	"ppi-predict/internal/ml"
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
		outputPath  = flag.String("output", "", "Output directory for reports (overrides config)")
		dataPath    = flag.String("data", "", "Directory of the metrics cache, read when the index is missing (overrides config)")
		c           = flag.Float64("c", 0, "SVM regularization C (overrides config)")
		gamma       = flag.Float64("gamma", 0, "RBF kernel gamma (overrides config)")
		seed        = flag.Uint64("seed", 0, "Split and solver seed, 0 picks one (overrides config)")
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
		config.OutputPath = *outputPath
	}
	if *dataPath != "" {
		config.DataPath = *dataPath
	}
	if *c > 0 {
		config.SVM.C = *c
	}
	if *gamma > 0 {
		config.SVM.Gamma = *gamma
	}
	if *seed > 0 {
		config.Seed = *seed
		config.SVM.Seed = *seed
	}

	// Context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config); err != nil {
		log.Fatal().Err(err).Msg("Training failed")
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

	registry := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(registry)

	rows, stats, err := features.Vectorizer{Dim: config.FeatureDim}.Vectorize(records, idx)
	if err != nil {
		return err
	}
	physical := 0
	for _, r := range rows {
		if r.Label {
			physical++
		}
	}
	ratio := 0.0
	if len(rows) > 0 {
		ratio = float64(physical) / float64(len(rows))
	}
	m.RecordStage(metrics.StageVectorize, stats.Input, stats.Kept, ratio)
	log.Info().
		Int("input", stats.Input).
		Int("kept", stats.Kept).
		Int("missing_a", stats.MissingA).
		Int("missing_b", stats.MissingB).
		Float64("physical_ratio", ratio).
		Msg("Vectorized interactions")

	trainer := &ml.Trainer{
		Params:       config.SVM,
		TestFraction: config.TestFraction,
		Seed:         config.Seed,
		Metrics:      metrics.NewWrapper(m),
	}
	report, err := trainer.Run(ctx, rows)
	if err != nil {
		return err
	}

	reporter := ml.NewReporter(report, config.OutputPath)
	if err := reporter.GenerateReport(); err != nil {
		log.Error().Err(err).Msg("Failed to generate reports")
	}
	reporter.PrintSummary()

	log.Info().
		Float64("accuracy", report.Scores.Accuracy).
		Float64("precision", report.Scores.Precision).
		Float64("recall", report.Scores.Recall).
		Float64("auc", report.Scores.AUC).
		Bool("auc_undefined", report.AUCUndefined()).
		Str("output", config.OutputPath).
		Msg("Training completed")

	return m.WriteTextfile(metrics.TextfilePath(config.MetricsTextfileDir, metrics.StageTrain))
}
