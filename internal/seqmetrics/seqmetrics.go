// Package seqmetrics computes relative-frequency vectors of protein sequences.
//
// Residues are reduced to six physicochemical classes and every window of
// three consecutive residues is counted as one of 6^3 = 216 class triplets.
// Each count f_i is normalized to d_i = e^((f_i - f_min)/(f_max - f_min)) - 1.
package seqmetrics

import (
	"math"

	"ppi-predict/internal/index"
)

// Dim is the length of every relative-frequency vector.
const Dim = 216

const window = 3

// residue -> class, from the conjoint triad grouping
var classes = func() map[rune]int {
	groups := []string{"IVLM", "FYW", "HKR", "DE", "QNTP", "ACGS"}
	m := make(map[rune]int, 20)
	for i, g := range groups {
		for _, r := range g {
			m[r] = i
		}
	}
	return m
}()

// Counts returns the raw triplet counts of sequence, indexed by
// 36*c1 + 6*c2 + c3 (the lexical order of the triplet codes). Windows that
// contain a residue outside the six classes are not counted.
func Counts(sequence string) []int {
	counts := make([]int, Dim)
	residues := []rune(sequence)
	for i := 0; i+window <= len(residues); i++ {
		code, ok := 0, true
		for _, r := range residues[i : i+window] {
			c, known := classes[r]
			if !known {
				ok = false
				break
			}
			code = code*6 + c
		}
		if ok {
			counts[code]++
		}
	}
	return counts
}

// Vector returns the normalized relative-frequency vector of sequence. A
// sequence whose counts are all equal, including one shorter than three
// residues, yields the zero vector.
func Vector(sequence string) []float64 {
	counts := Counts(sequence)

	fMin, fMax := counts[0], counts[0]
	for _, c := range counts[1:] {
		if c < fMin {
			fMin = c
		}
		if c > fMax {
			fMax = c
		}
	}

	vec := make([]float64, Dim)
	denom := float64(fMax - fMin)
	if denom == 0 {
		return vec
	}
	for i, c := range counts {
		vec[i] = math.Exp(float64(c-fMin)/denom) - 1
	}
	return vec
}

// Compute builds the metrics index for every sequence.
func Compute(seqs index.SequenceIndex) index.MetricsIndex {
	out := make(index.MetricsIndex, len(seqs))
	for acc, seq := range seqs {
		out[acc] = index.Metrics{
			Sequence: seq,
			RelFreq:  &index.FreqMetrics{RelFreq: Vector(seq)},
		}
	}
	return out
}

// ComputeCached is Compute that reuses records from cached whose sequence is
// unchanged and whose vector has length Dim. It returns the number of reused
// records.
func ComputeCached(seqs index.SequenceIndex, cached index.MetricsIndex) (index.MetricsIndex, int) {
	out := make(index.MetricsIndex, len(seqs))
	reused := 0
	for acc, seq := range seqs {
		if c, ok := cached[acc]; ok && c.Sequence == seq && c.RelFreq != nil && len(c.RelFreq.RelFreq) == Dim {
			out[acc] = c
			reused++
			continue
		}
		out[acc] = index.Metrics{
			Sequence: seq,
			RelFreq:  &index.FreqMetrics{RelFreq: Vector(seq)},
		}
	}
	return out, reused
}
