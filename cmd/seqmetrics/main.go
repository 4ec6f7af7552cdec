package main

import (
	"flag"
	"os"

	"ppi-predict/internal/cfg"
	"ppi-predict/internal/index"
	"ppi-predict/internal/seqmetrics"
	"ppi-predict/internal/storage"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Parse command line flags
	var (
		inputPath  = flag.String("input", "", "Sequence index to read (overrides config)")
		outputPath = flag.String("output", "", "Metrics index to write (overrides config)")
		dataPath   = flag.String("data", "", "Directory of the sequence cache (overrides config)")
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
		config.SequencesPath = *inputPath
	}
	if *outputPath != "" {
		config.MetricsPath = *outputPath
	}
	if *dataPath != "" {
		config.DataPath = *dataPath
	}

	if err := run(config); err != nil {
		log.Fatal().Err(err).Msg("Metric computation failed")
	}
}

func run(config cfg.Settings) error {
	var store *storage.Store
	if config.DataPath != "" {
		var err error
		store, err = storage.New(config.DataPath)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	seqs, err := storage.LoadSequences(config.SequencesPath, store)
	if err != nil {
		return err
	}

	var cached index.MetricsIndex
	if store != nil {
		if cached, err = store.Metrics(); err != nil {
			return err
		}
	}
	idx, reused := seqmetrics.ComputeCached(seqs, cached)
	log.Info().
		Int("sequences", len(seqs)).
		Int("reused", reused).
		Int("dim", seqmetrics.Dim).
		Msg("Computed relative frequencies")

	if err := index.SaveMetrics(config.MetricsPath, idx); err != nil {
		return err
	}
	log.Info().Str("output", config.MetricsPath).Msg("Metrics index written")

	if store == nil {
		return nil
	}
	if err := store.PutMetrics(idx); err != nil {
		return err
	}
	log.Debug().Str("data", config.DataPath).Msg("Metrics cached")
	return nil
}
