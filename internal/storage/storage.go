// Package storage provides a persistent cache for protein sequences and their
// relative-frequency metrics. It uses BoltDB as the underlying storage engine
// so that an interrupted sequence fetch can resume without hitting the
// remote service again for accessions it already has.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ppi-predict/internal/index"

	"go.etcd.io/bbolt"
)

// DBFile is the database file name inside the data directory.
const DBFile = "ppi-data.db"

const (
	sequencesBucket = "sequences" // accession -> amino acid sequence
	metricsBucket   = "metrics"   // accession -> JSON index.Metrics
)

// Store provides persistent storage for sequence data using BoltDB.
type Store struct {
	db *bbolt.DB // BoltDB database instance
}

// New opens (or creates) the database in dataPath and makes sure both buckets
// exist.
func New(dataPath string) (*Store, error) {
	if err := os.MkdirAll(dataPath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	dbPath := filepath.Join(dataPath, DBFile)

	db, err := bbolt.Open(dbPath, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Create buckets
	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(sequencesBucket)); err != nil {
			return fmt.Errorf("create sequences bucket: %w", err)
		}
		if _, err := tx.CreateBucketIfNotExists([]byte(metricsBucket)); err != nil {
			return fmt.Errorf("create metrics bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database connection. Closing twice is safe.
func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

// PutSequence stores the sequence of one accession, replacing any previous value.
func (s *Store) PutSequence(accession, sequence string) error {
	if accession == "" {
		return fmt.Errorf("empty accession")
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(sequencesBucket)).Put([]byte(accession), []byte(sequence))
	})
}

// GetSequence returns the cached sequence of accession. The boolean reports
// whether the accession was present.
func (s *Store) GetSequence(accession string) (string, bool, error) {
	var (
		seq   string
		found bool
	)
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket([]byte(sequencesBucket)).Get([]byte(accession))
		if v != nil {
			// v is only valid inside the transaction
			seq, found = string(v), true
		}
		return nil
	})
	return seq, found, err
}

// Sequences returns every cached sequence.
func (s *Store) Sequences() (index.SequenceIndex, error) {
	out := make(index.SequenceIndex)
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(sequencesBucket)).ForEach(func(k, v []byte) error {
			out[string(k)] = string(v)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PutMetrics stores every record of idx in a single transaction.
func (s *Store) PutMetrics(idx index.MetricsIndex) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(metricsBucket))
		for acc, m := range idx {
			data, err := json.Marshal(m)
			if err != nil {
				return fmt.Errorf("marshal metrics %s: %w", acc, err)
			}
			if err := b.Put([]byte(acc), data); err != nil {
				return err
			}
		}
		return nil
	})
}

// Metrics returns every cached metrics record. Malformed records are skipped.
func (s *Store) Metrics() (index.MetricsIndex, error) {
	out := make(index.MetricsIndex)
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(metricsBucket)).ForEach(func(k, v []byte) error {
			var m index.Metrics
			if err := json.Unmarshal(v, &m); err != nil {
				return nil // Skip malformed records
			}
			out[string(k)] = m
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
