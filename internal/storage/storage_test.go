package storage

import (
	"os"
	"path/filepath"
	"testing"

	"ppi-predict/internal/index"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestNew(t *testing.T) {
	tempDir := filepath.Join(t.TempDir(), "nested", "cache")

	store, err := New(tempDir)
	require.NoError(t, err)
	defer store.Close()

	assert.NotNil(t, store.db)
	_, err = os.Stat(filepath.Join(tempDir, DBFile))
	assert.NoError(t, err, "database file was created")

	err = store.db.View(func(tx *bbolt.Tx) error {
		assert.NotNil(t, tx.Bucket([]byte(sequencesBucket)))
		assert.NotNil(t, tx.Bucket([]byte(metricsBucket)))
		return nil
	})
	require.NoError(t, err)
}

func TestNew_InvalidPath(t *testing.T) {
	// a regular file where the directory should be
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	_, err := New(filepath.Join(file, "cache"))
	assert.Error(t, err)
}

func TestStore_Close(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close(), "closing twice is safe")
}

func TestStore_Sequences(t *testing.T) {
	store := newTestStore(t)

	_, found, err := store.GetSequence("P12345")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.PutSequence("P12345", "MKV"))
	require.NoError(t, store.PutSequence("Q67890", "ACDE"))
	require.NoError(t, store.PutSequence("P12345", "MKVL"), "overwrite")

	seq, found, err := store.GetSequence("P12345")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "MKVL", seq)

	all, err := store.Sequences()
	require.NoError(t, err)
	assert.Equal(t, index.SequenceIndex{"P12345": "MKVL", "Q67890": "ACDE"}, all)

	assert.Error(t, store.PutSequence("", "MKV"))
}

func TestStore_Persistence(t *testing.T) {
	dir := t.TempDir()

	store, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, store.PutSequence("P1", "MKV"))
	require.NoError(t, store.Close())

	reopened, err := New(dir)
	require.NoError(t, err)
	defer reopened.Close()

	seq, found, err := reopened.GetSequence("P1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "MKV", seq)
}

func TestStore_Metrics(t *testing.T) {
	store := newTestStore(t)

	idx := index.MetricsIndex{
		"P1": {Sequence: "MKV", RelFreq: &index.FreqMetrics{RelFreq: []float64{0.1, 0.2}}},
		"P2": {Sequence: "ACD", RelFreq: &index.FreqMetrics{RelFreq: []float64{1, 0}}},
	}
	require.NoError(t, store.PutMetrics(idx))

	got, err := store.Metrics()
	require.NoError(t, err)
	assert.Equal(t, idx, got)

	// malformed values are skipped
	err = store.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(metricsBucket)).Put([]byte("bad"), []byte("{"))
	})
	require.NoError(t, err)
	got, err = store.Metrics()
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
