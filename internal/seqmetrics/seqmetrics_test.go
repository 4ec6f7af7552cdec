package seqmetrics

import (
	"math"
	"testing"

	"ppi-predict/internal/index"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounts(t *testing.T) {
	tests := []struct {
		name     string
		sequence string
		want     map[int]int
	}{
		{name: "single triplet", sequence: "IVL", want: map[int]int{0: 1}},
		{name: "second class", sequence: "FYW", want: map[int]int{43: 1}},
		{name: "sliding window", sequence: "IVLF", want: map[int]int{0: 1, 1: 1}},
		{name: "last class", sequence: "SSS", want: map[int]int{215: 1}},
		{name: "unknown residue skipped", sequence: "IXVLM", want: map[int]int{0: 1}},
		{name: "too short", sequence: "IV", want: map[int]int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counts := Counts(tt.sequence)
			require.Len(t, counts, Dim)
			for code, c := range counts {
				assert.Equal(t, tt.want[code], c, "code %d", code)
			}
		})
	}
}

func TestVector(t *testing.T) {
	vec := Vector("IVLIVL")
	require.Len(t, vec, Dim)

	// IVL, VLI, LIV, IVL all map to code 0
	assert.InDelta(t, math.E-1, vec[0], 1e-12)
	for i := 1; i < Dim; i++ {
		assert.Zero(t, vec[i])
	}
}

func TestVector_Normalized(t *testing.T) {
	// code 0 twice, code 1 once
	vec := Vector("IVLIF")
	counts := Counts("IVLIF")
	require.Equal(t, 2, counts[0])

	for i, v := range vec {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, math.E-1+1e-12)
		want := math.Exp(float64(counts[i])/2) - 1
		assert.InDelta(t, want, v, 1e-12, "code %d", i)
	}
}

func TestVector_Flat(t *testing.T) {
	assert.Equal(t, make([]float64, Dim), Vector(""))
	assert.Equal(t, make([]float64, Dim), Vector("XXXX"))
}

func TestCompute(t *testing.T) {
	seqs := index.SequenceIndex{"P1": "IVLIVL", "P2": "MKV"}

	idx := Compute(seqs)
	require.Len(t, idx, 2)

	vec, ok := idx.RelFreq("P1")
	require.True(t, ok)
	assert.Equal(t, Vector("IVLIVL"), vec)
	assert.Equal(t, "MKV", idx["P2"].Sequence)
}

func TestComputeCached(t *testing.T) {
	stale := make([]float64, Dim)
	stale[0] = 42
	cached := index.MetricsIndex{
		"P1": {Sequence: "MKVLA", RelFreq: &index.FreqMetrics{RelFreq: stale}},
		"P2": {Sequence: "OLD", RelFreq: &index.FreqMetrics{RelFreq: stale}},
		"P3": {Sequence: "MKV", RelFreq: &index.FreqMetrics{RelFreq: []float64{1}}},
		"P9": {Sequence: "GONE", RelFreq: &index.FreqMetrics{RelFreq: stale}},
	}
	seqs := index.SequenceIndex{"P1": "MKVLA", "P2": "MKVLAG", "P3": "MKV", "P4": "ACDEF"}

	got, reused := ComputeCached(seqs, cached)
	require.Len(t, got, 4)
	assert.Equal(t, 1, reused)
	assert.Equal(t, 42.0, got["P1"].RelFreq.RelFreq[0], "unchanged sequence reuses the cached vector")
	assert.Equal(t, Vector("MKVLAG"), got["P2"].RelFreq.RelFreq)
	assert.Len(t, got["P3"].RelFreq.RelFreq, Dim)
	assert.Equal(t, Compute(index.SequenceIndex{"P4": "ACDEF"})["P4"], got["P4"])
	assert.NotContains(t, got, "P9")

	fresh, reused := ComputeCached(seqs, nil)
	assert.Zero(t, reused)
	assert.Equal(t, Compute(seqs), fresh)
}
