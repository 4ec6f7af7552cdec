package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"ppi-predict/internal/cfg"
	"ppi-predict/internal/extract"
	"ppi-predict/internal/interactions"
	"ppi-predict/internal/metrics"
	"ppi-predict/internal/mitab"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Parse command line flags
	var (
		inputPath  = flag.String("input", "", "PSI-MITAB file to read (overrides config)")
		outputPath = flag.String("output", "", "Processed CSV to write (overrides config)")
		namespace  = flag.String("namespace", "", "Identifier namespace marker (overrides config)")
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
		config.RawPath = *inputPath
	}
	if *outputPath != "" {
		config.ProcessedPath = *outputPath
	}
	if *namespace != "" {
		config.Namespace = *namespace
	}

	if err := run(config); err != nil {
		log.Fatal().Err(err).Msg("Extraction failed")
	}
}

func run(config cfg.Settings) error {
	f, err := os.Open(config.RawPath)
	if err != nil {
		return fmt.Errorf("open interchange file: %w", err)
	}
	defer f.Close()

	reader, err := mitab.NewReader(f)
	if err != nil {
		return err
	}
	fields := config.Columns
	if !reader.Has(fields.InteractorA, fields.InteractorB, fields.Label) {
		return fmt.Errorf("%s lacks columns %q, %q or %q", config.RawPath, fields.InteractorA, fields.InteractorB, fields.Label)
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("read interchange file: %w", err)
	}
	readStats := reader.Stats()
	if readStats.Skipped > 0 {
		log.Warn().Int("skipped", readStats.Skipped).Msg("Skipped malformed rows")
	}

	records, stats := interactions.AggregateWithStats(rows, fields, extract.NewExtractor(config.Namespace))
	balance := interactions.Balance(records)

	log.Info().
		Str("input", config.RawPath).
		Int("read", stats.Read).
		Int("kept", stats.Kept).
		Int("dropped", stats.Dropped()).
		Int("unlabelled", stats.Unlabelled).
		Int("physical", balance.Physical).
		Int("other", balance.Other()).
		Float64("physical_ratio", balance.Ratio()).
		Msg("Aggregated interactions")

	counts := interactions.LabelCounts(records)
	labels := make([]string, 0, len(counts))
	for l := range counts {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool { return counts[labels[i]] > counts[labels[j]] })
	for _, l := range labels {
		log.Debug().Str("label", l).Int("count", counts[l]).Msg("Interaction type")
	}

	if err := interactions.WriteCSV(config.ProcessedPath, records); err != nil {
		return err
	}
	log.Info().Str("output", config.ProcessedPath).Int("records", len(records)).Msg("Processed table written")

	registry := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(registry)
	m.RecordStage(metrics.StageExtract, stats.Read, stats.Kept, balance.Ratio())
	return m.WriteTextfile(metrics.TextfilePath(config.MetricsTextfileDir, metrics.StageExtract))
}
