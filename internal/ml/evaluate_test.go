package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name          string
		yTrue, yPred  []bool
		wantAccuracy  float64
		wantPrecision float64
		wantRecall    float64
		wantAUC       float64
	}{
		{
			name:          "perfect",
			yTrue:         []bool{true, false, true, false},
			yPred:         []bool{true, false, true, false},
			wantAccuracy:  1,
			wantPrecision: 1,
			wantRecall:    1,
			wantAUC:       1,
		},
		{
			name:  "one missed positive",
			yTrue: []bool{true, true, false, false},
			yPred: []bool{true, false, false, false},
			// class false: p=2/3 r=1; class true: p=1 r=0.5; weights 0.5 each
			wantAccuracy:  0.75,
			wantPrecision: 0.5*2.0/3.0 + 0.5,
			wantRecall:    0.75,
			wantAUC:       0.75,
		},
		{
			name:          "all inverted",
			yTrue:         []bool{true, false},
			yPred:         []bool{false, true},
			wantAccuracy:  0,
			wantPrecision: 0,
			wantRecall:    0,
			wantAUC:       0,
		},
		{
			name:  "constant prediction",
			yTrue: []bool{true, false, false, false},
			yPred: []bool{false, false, false, false},
			// class true is never predicted: its precision counts as 0
			wantAccuracy:  0.75,
			wantPrecision: 0.75 * 0.75,
			wantRecall:    0.75,
			wantAUC:       0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Evaluate(tt.yTrue, tt.yPred)
			require.NoError(t, err)
			assert.NoError(t, s.AUCErr)
			assert.InDelta(t, tt.wantAccuracy, s.Accuracy, 1e-12)
			assert.InDelta(t, tt.wantPrecision, s.Precision, 1e-12)
			assert.InDelta(t, tt.wantRecall, s.Recall, 1e-12)
			assert.InDelta(t, tt.wantAUC, s.AUC, 1e-12)
		})
	}
}

func TestEvaluate_SingleClassAUC(t *testing.T) {
	s, err := Evaluate([]bool{true, true, true}, []bool{true, false, true})
	require.NoError(t, err, "an undefined AUC is not fatal")

	assert.ErrorIs(t, s.AUCErr, ErrUndefinedAUC)
	assert.InDelta(t, 2.0/3.0, s.Accuracy, 1e-12)
	assert.InDelta(t, 1.0, s.Precision, 1e-12)
	assert.InDelta(t, 2.0/3.0, s.Recall, 1e-12)
}

func TestEvaluate_InvalidInput(t *testing.T) {
	_, err := Evaluate([]bool{true}, []bool{true, false})
	assert.Error(t, err)

	_, err = Evaluate(nil, nil)
	assert.Error(t, err)
}

func TestRocAUC_Scores(t *testing.T) {
	// Same data as the gonum ROC example.
	auc, err := rocAUC([]bool{false, true, false, true}, []float64{0.8, 0.4, 0.35, 0.1})
	require.NoError(t, err)
	assert.InDelta(t, 0.25, auc, 1e-12)
}
