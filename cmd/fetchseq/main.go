package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"ppi-predict/internal/cfg"
	"ppi-predict/internal/index"
	"ppi-predict/internal/interactions"
	"ppi-predict/internal/metrics"
	"ppi-predict/internal/storage"
	"ppi-predict/internal/uniprot"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

func main() {
	// Parse command line flags
	var (
		inputPath  = flag.String("input", "", "Processed CSV to read accessions from (overrides config)")
		outputPath = flag.String("output", "", "Sequence index to write (overrides config)")
		dataPath   = flag.String("data", "", "Directory of the sequence cache (overrides config)")
		workers    = flag.Int("workers", 0, "Concurrent requests (overrides config)")
		logLevel   = flag.String("log-level", "info", "Log level: debug, info, warn, error")
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
		config.ProcessedPath = *inputPath
	}
	if *outputPath != "" {
		config.SequencesPath = *outputPath
	}
	if *dataPath != "" {
		config.DataPath = *dataPath
	}
	if *workers > 0 {
		config.FetchWorkers = *workers
	}

	// Context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config); err != nil {
		log.Fatal().Err(err).Msg("Sequence fetch failed")
	}
}

func run(ctx context.Context, config cfg.Settings) error {
	records, err := interactions.ReadCSV(config.ProcessedPath)
	if err != nil {
		return err
	}
	accessions := interactions.Accessions(records)
	log.Info().Int("records", len(records)).Int("accessions", len(accessions)).Msg("Collected accessions")

	registry := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(registry)

	fetcher := &uniprot.Fetcher{
		Source:  uniprot.NewClient(config.UniProtBaseURL, config.FetchTimeout, config.FetchRetries),
		Workers: config.FetchWorkers,
		Limiter: rate.NewLimiter(rate.Limit(config.FetchRPS), 1),
		Metrics: metrics.NewWrapper(m),
	}

	if config.DataPath != "" {
		store, err := storage.New(config.DataPath)
		if err != nil {
			return err
		}
		defer store.Close()
		fetcher.Cache = store
	}

	seqs, stats, err := fetcher.FetchAll(ctx, accessions)
	if err != nil {
		return err
	}
	log.Info().
		Int("requested", stats.Requested).
		Int("cached", stats.Cached).
		Int("fetched", stats.Fetched).
		Int("not_found", stats.NotFound).
		Int("failed", stats.Failed).
		Msg("Sequences fetched")

	if err := index.SaveSequences(config.SequencesPath, seqs); err != nil {
		return err
	}
	log.Info().Str("output", config.SequencesPath).Int("sequences", len(seqs)).Msg("Sequence index written")

	return m.WriteTextfile(metrics.TextfilePath(config.MetricsTextfileDir, metrics.StageFetch))
}
