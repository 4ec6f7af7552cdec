// Package align scores global pairwise alignments of residue sequences with
// the Needleman-Wunsch recurrence and a linear gap penalty.
package align

// Scoring holds the alignment weights. Mismatch and Gap are penalties and are
// subtracted from the score.
type Scoring struct {
	Match    int
	Mismatch int
	Gap      int
}

// DefaultScoring returns match 2, mismatch 1, gap 2.
func DefaultScoring() Scoring {
	return Scoring{Match: 2, Mismatch: 1, Gap: 2}
}

// Score returns the optimal global alignment score of a and b. Memory is
// linear in len(b).
func (sc Scoring) Score(a, b string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = -j * sc.Gap
	}

	for i := 1; i <= len(a); i++ {
		cur[0] = -i * sc.Gap
		for j := 1; j <= len(b); j++ {
			diag := prev[j-1]
			if a[i-1] == b[j-1] {
				diag += sc.Match
			} else {
				diag -= sc.Mismatch
			}
			up := prev[j] - sc.Gap
			left := cur[j-1] - sc.Gap
			cur[j] = max(diag, up, left)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

// NormalizedSimilarity maps the score onto [0, 1]. The lower bound is the all
// gap alignment and the upper bound matches every residue of the shorter
// sequence. Two empty sequences are identical.
func (sc Scoring) NormalizedSimilarity(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	lo := -(len(a) + len(b)) * sc.Gap
	hi := min(len(a), len(b)) * sc.Match
	if hi <= lo {
		return 0
	}
	sim := float64(sc.Score(a, b)-lo) / float64(hi-lo)
	return min(max(sim, 0), 1)
}

// NormalizedDistance is 1 - NormalizedSimilarity.
func (sc Scoring) NormalizedDistance(a, b string) float64 {
	return 1 - sc.NormalizedSimilarity(a, b)
}
