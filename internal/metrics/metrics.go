// Package metrics provides Prometheus metrics collection for the interaction
// pipeline. Every stage is a batch job, so instead of being scraped the
// collected values are written to a node-exporter textfile when a run ends.
//
// The package includes metrics for record counts per stage, class balance,
// sequence fetching and model evaluation.
package metrics

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline stage label values
const (
	StageExtract   = "extract"
	StageFilter    = "filter"
	StageVectorize = "vectorize"
	StageFetch     = "fetch"
	StagePairs     = "pairs"
	StageTrain     = "train"
)

// ErrNoGatherer is returned by WriteTextfile when the metrics were registered
// with a Registerer that cannot be gathered from.
var ErrNoGatherer = errors.New("metrics registry is not gatherable")

// Metrics holds all Prometheus metrics for the pipeline.
type Metrics struct {
	// Record metrics, labelled by stage
	RecordsRead    *prometheus.CounterVec // Rows entering a stage
	RecordsKept    *prometheus.CounterVec // Rows leaving a stage
	RecordsDropped *prometheus.CounterVec // Rows removed by a stage
	PhysicalRatio  *prometheus.GaugeVec   // Share of physical associations after a stage

	// Sequence fetch metrics
	SequencesFetched prometheus.Counter   // Sequences retrieved from the remote service
	SequencesFailed  prometheus.Counter   // Accessions that could not be retrieved
	SequenceCacheHit prometheus.Counter   // Accessions served from the local cache
	FetchLatency     prometheus.Histogram // Remote sequence request latency

	// Model metrics
	TrainingDuration prometheus.Histogram // Wall time of one training run
	EvaluationScore  *prometheus.GaugeVec // Last evaluation scores, labelled by score
	AUCFailures      prometheus.Counter   // Evaluations where ROC-AUC was undefined

	gatherer prometheus.Gatherer
}

// New creates and registers all Prometheus metrics using the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates metrics with a custom registry (useful for testing).
func NewWithRegistry(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)
	m := &Metrics{
		RecordsRead: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ppi_records_read_total",
			Help: "Total number of records entering a pipeline stage",
		}, []string{"stage"}),
		RecordsKept: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ppi_records_kept_total",
			Help: "Total number of records kept by a pipeline stage",
		}, []string{"stage"}),
		RecordsDropped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ppi_records_dropped_total",
			Help: "Total number of records dropped by a pipeline stage",
		}, []string{"stage"}),
		PhysicalRatio: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ppi_physical_association_ratio",
			Help: "Fraction of records labelled physical association after a stage",
		}, []string{"stage"}),
		SequencesFetched: factory.NewCounter(prometheus.CounterOpts{
			Name: "ppi_sequences_fetched_total",
			Help: "Total number of sequences fetched from UniProt",
		}),
		SequencesFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "ppi_sequences_failed_total",
			Help: "Total number of accessions that could not be fetched",
		}),
		SequenceCacheHit: factory.NewCounter(prometheus.CounterOpts{
			Name: "ppi_sequence_cache_hits_total",
			Help: "Total number of accessions served from the local cache",
		}),
		FetchLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ppi_fetch_latency_seconds",
			Help:    "UniProt request latency in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		TrainingDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ppi_training_duration_seconds",
			Help:    "Duration of SVM training and evaluation in seconds",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 14),
		}),
		EvaluationScore: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ppi_evaluation_score",
			Help: "Held-out evaluation scores of the last training run",
		}, []string{"score"}),
		AUCFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "ppi_auc_failures_total",
			Help: "Total number of evaluations with an undefined ROC-AUC",
		}),
	}
	if g, ok := registerer.(prometheus.Gatherer); ok {
		m.gatherer = g
	}
	return m
}

// RecordStage adds the read and kept counts of one stage run and sets its
// physical association ratio.
func (m *Metrics) RecordStage(stage string, read, kept int, physicalRatio float64) {
	m.RecordsRead.WithLabelValues(stage).Add(float64(read))
	m.RecordsKept.WithLabelValues(stage).Add(float64(kept))
	if dropped := read - kept; dropped > 0 {
		m.RecordsDropped.WithLabelValues(stage).Add(float64(dropped))
	}
	m.PhysicalRatio.WithLabelValues(stage).Set(physicalRatio)
}

// TextfilePath returns the textfile of one stage inside dir, or "" when dir is
// empty.
func TextfilePath(dir, stage string) string {
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "ppi_"+stage+".prom")
}

// WriteTextfile writes every gathered metric to path in the text exposition
// format. An empty path is a no-op.
func (m *Metrics) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if m.gatherer == nil {
		return ErrNoGatherer
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create textfile directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.gatherer); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
