package storage

import (
	"errors"
	"fmt"
	"io/fs"

	"ppi-predict/internal/index"
)

// LoadSequences reads the sequence index file at path. When the file does not
// exist and s is not nil, the sequences cached in s are returned instead.
func LoadSequences(path string, s *Store) (index.SequenceIndex, error) {
	seqs, err := index.LoadSequences(path)
	if err == nil || s == nil || !errors.Is(err, fs.ErrNotExist) {
		return seqs, err
	}
	seqs, cacheErr := s.Sequences()
	if cacheErr != nil {
		return nil, fmt.Errorf("read cached sequences: %w", cacheErr)
	}
	if len(seqs) == 0 {
		return nil, err
	}
	return seqs, nil
}

// LoadMetrics reads the metrics index file at path, falling back to the
// metrics cached in s when the file does not exist.
func LoadMetrics(path string, s *Store) (index.MetricsIndex, error) {
	idx, err := index.LoadMetrics(path)
	if err == nil || s == nil || !errors.Is(err, fs.ErrNotExist) {
		return idx, err
	}
	idx, cacheErr := s.Metrics()
	if cacheErr != nil {
		return nil, fmt.Errorf("read cached metrics: %w", cacheErr)
	}
	if len(idx) == 0 {
		return nil, err
	}
	return idx, nil
}
