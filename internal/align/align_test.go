package align

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	sc := DefaultScoring()

	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"identical", "MKV", "MKV", 6},
		{"one mismatch", "MKV", "MKA", 3},
		{"one gap", "MKV", "MV", 2},
		{"empty b", "MKV", "", -6},
		{"both empty", "", "", 0},
		// two mismatches cost less than two gap pairs
		{"swap", "AB", "BA", -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sc.Score(tt.a, tt.b))
			assert.Equal(t, tt.want, sc.Score(tt.b, tt.a), "score is symmetric")
		})
	}
}

func TestNormalizedDistance(t *testing.T) {
	sc := DefaultScoring()

	assert.Equal(t, 0.0, sc.NormalizedDistance("MKVLA", "MKVLA"))
	assert.Equal(t, 0.0, sc.NormalizedDistance("", ""))
	assert.Equal(t, 1.0, sc.NormalizedDistance("MKV", ""))

	// score 3, bounds [-12, 6]
	assert.InDelta(t, 1-15.0/18.0, sc.NormalizedDistance("MKV", "MKA"), 1e-12)

	near := sc.NormalizedDistance("MKVLAGHE", "MKVLAGHD")
	far := sc.NormalizedDistance("MKVLAGHE", "WWWWWWWW")
	assert.Less(t, near, far)
	assert.GreaterOrEqual(t, far, 0.0)
	assert.LessOrEqual(t, far, 1.0)
}
