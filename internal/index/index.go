// Package index holds the precomputed per-accession lookups consumed by the
// pipeline: raw sequences and sequence metrics. Both are produced before the
// pipeline runs and are treated as read-only afterwards.
package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// SequenceIndex maps an accession to its raw residue sequence.
type SequenceIndex map[string]string

// Has reports whether accession has a known sequence.
func (s SequenceIndex) Has(accession string) bool {
	_, ok := s[accession]
	return ok
}

// Accessions returns the keys in sorted order.
func (s SequenceIndex) Accessions() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FreqMetrics wraps the relative-frequency vector.
type FreqMetrics struct {
	RelFreq []float64 `json:"rel_freq"`
}

// Metrics is the per-accession metrics record.
type Metrics struct {
	Sequence string       `json:"sequence"`
	RelFreq  *FreqMetrics `json:"rel_freq"`
}

// MetricsIndex maps an accession to its metrics record.
type MetricsIndex map[string]Metrics

// RelFreq returns the relative-frequency vector of accession. A missing entry,
// a missing nested record or an empty vector all count as a miss.
func (m MetricsIndex) RelFreq(accession string) ([]float64, bool) {
	rec, ok := m[accession]
	if !ok || rec.RelFreq == nil || len(rec.RelFreq.RelFreq) == 0 {
		return nil, false
	}
	return rec.RelFreq.RelFreq, true
}

// LoadSequences reads a `{"accession": "SEQUENCE"}` JSON file.
func LoadSequences(path string) (SequenceIndex, error) {
	var idx SequenceIndex
	if err := readJSON(path, &idx); err != nil {
		return nil, fmt.Errorf("load sequences: %w", err)
	}
	if idx == nil {
		idx = SequenceIndex{}
	}
	return idx, nil
}

// SaveSequences writes idx as indented JSON, creating parent directories.
func SaveSequences(path string, idx SequenceIndex) error {
	if err := writeJSON(path, idx); err != nil {
		return fmt.Errorf("save sequences: %w", err)
	}
	return nil
}

// LoadMetrics reads a sequence metrics JSON file.
func LoadMetrics(path string) (MetricsIndex, error) {
	var idx MetricsIndex
	if err := readJSON(path, &idx); err != nil {
		return nil, fmt.Errorf("load metrics: %w", err)
	}
	if idx == nil {
		idx = MetricsIndex{}
	}
	return idx, nil
}

// SaveMetrics writes idx as indented JSON, creating parent directories.
func SaveMetrics(path string, idx MetricsIndex) error {
	if err := writeJSON(path, idx); err != nil {
		return fmt.Errorf("save metrics: %w", err)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
