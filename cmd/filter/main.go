package main

import (
	"flag"
	"os"

	"ppi-predict/internal/cfg"
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
		inputPath     = flag.String("input", "", "Processed CSV to read (overrides config)")
		sequencesPath = flag.String("sequences", "", "Sequence index (overrides config)")
		outputPath    = flag.String("output", "", "Filtered CSV to write (overrides config)")
		dataPath      = flag.String("data", "", "Directory of the sequence cache, read when the index is missing (overrides config)")
		logLevel      = flag.String("log-level", "info", "Log level: debug, info, warn, error")
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
	if *sequencesPath != "" {
		config.SequencesPath = *sequencesPath
	}
	if *outputPath != "" {
		config.FilteredPath = *outputPath
	}
	if *dataPath != "" {
		config.DataPath = *dataPath
	}

	if err := run(config); err != nil {
		log.Fatal().Err(err).Msg("Filtering failed")
	}
}

func run(config cfg.Settings) error {
	records, err := interactions.ReadCSV(config.ProcessedPath)
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
	seqs, err := storage.LoadSequences(config.SequencesPath, store)
	if err != nil {
		return err
	}

	filtered, audit, err := interactions.FilterBySequenceChecked(records, seqs)
	if err != nil {
		return err
	}

	log.Info().
		Int("before", audit.Before.Total).
		Int("after", audit.After.Total).
		Float64("physical_ratio_before", audit.Before.Ratio()).
		Float64("physical_ratio_after", audit.After.Ratio()).
		Float64("shift", audit.Shift()).
		Msg("Filtered interactions by sequence availability")

	if err := interactions.WriteCSV(config.FilteredPath, filtered); err != nil {
		return err
	}
	log.Info().Str("output", config.FilteredPath).Int("records", len(filtered)).Msg("Filtered table written")

	m := metrics.NewWithRegistry(prometheus.NewRegistry())
	m.RecordStage(metrics.StageFilter, audit.Before.Total, audit.After.Total, audit.After.Ratio())
	return m.WriteTextfile(metrics.TextfilePath(config.MetricsTextfileDir, metrics.StageFilter))
}
