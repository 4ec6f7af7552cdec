package ml

import (
	"context"
	"math/rand/v2"
	"testing"

	"ppi-predict/internal/features"
	"ppi-predict/internal/svm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func separableRows(n int) []features.Row {
	rng := rand.New(rand.NewPCG(42, 43))
	rows := make([]features.Row, 0, 2*n)
	for i := 0; i < n; i++ {
		rows = append(rows,
			features.Row{Vector: []float64{1.5 + 0.2*rng.NormFloat64(), 0.2 + 0.2*rng.NormFloat64(), 0.3}, Label: true},
			features.Row{Vector: []float64{0.2 + 0.2*rng.NormFloat64(), 1.5 + 0.2*rng.NormFloat64(), 0.3}, Label: false},
		)
	}
	return rows
}

func TestSplit(t *testing.T) {
	rows := separableRows(25) // 50 rows
	orig := make([]features.Row, len(rows))
	copy(orig, rows)

	train, test := Split(rows, 0.2, rand.New(rand.NewPCG(1, 2)))
	assert.Len(t, test, 10)
	assert.Len(t, train, 40)
	assert.Equal(t, orig, rows, "input order is preserved")

	// 0.2 * 7 = 1.4 rounds up
	train, test = Split(rows[:7], 0.2, rand.New(rand.NewPCG(1, 2)))
	assert.Len(t, test, 2)
	assert.Len(t, train, 5)
}

func TestSplit_SameSeedSamePartition(t *testing.T) {
	rows := separableRows(10)
	_, a := Split(rows, 0.2, rand.New(rand.NewPCG(9, 9)))
	_, b := Split(rows, 0.2, rand.New(rand.NewPCG(9, 9)))
	assert.Equal(t, a, b)
}

func TestTrainer_Run(t *testing.T) {
	metrics := &MockMetrics{}
	tr := NewTrainer()
	tr.Seed = 7
	tr.Metrics = metrics

	report, err := tr.Run(context.Background(), separableRows(50))
	require.NoError(t, err)

	assert.Equal(t, 80, report.TrainSize)
	assert.Equal(t, 20, report.TestSize)
	assert.Equal(t, uint64(7), report.Seed)
	assert.Equal(t, svm.DefaultParams(), report.Params)
	assert.Greater(t, report.SupportVectors, 0)
	assert.GreaterOrEqual(t, report.Scores.Accuracy, 0.9)
	assert.GreaterOrEqual(t, report.Scores.Precision, 0.9)
	assert.GreaterOrEqual(t, report.Scores.Recall, 0.9)

	if report.AUCUndefined() {
		assert.Equal(t, 1, metrics.aucFailures)
	} else {
		assert.GreaterOrEqual(t, report.Scores.AUC, 0.9)
	}

	assert.Equal(t, 1, metrics.trainingRuns)
	assert.Equal(t, 1, metrics.evaluations)
	assert.Equal(t, report.Scores.Accuracy, metrics.lastScores[0])
}

func TestTrainer_SingleClassTestPartition(t *testing.T) {
	// 7 rows and a 0.1 test fraction give a single held-out row, while the
	// six training rows always keep at least one negative.
	rows := separableRows(2)
	for i := 0; i < 3; i++ {
		rows = append(rows, features.Row{Vector: []float64{1.5, 0.2, 0.3}, Label: true})
	}
	metrics := &MockMetrics{}
	tr := &Trainer{Params: svm.DefaultParams(), TestFraction: 0.1, Seed: 3, Metrics: metrics}

	report, err := tr.Run(context.Background(), rows)
	require.NoError(t, err)

	assert.Equal(t, 1, report.TestSize)
	assert.True(t, report.AUCUndefined())
	assert.ErrorIs(t, report.Scores.AUCErr, ErrUndefinedAUC)
	assert.NotEmpty(t, report.AUCError)
	assert.Equal(t, 1, metrics.aucFailures)
	assert.Contains(t, []float64{0, 1}, report.Scores.Accuracy)
}

func TestTrainer_InvalidConfig(t *testing.T) {
	ctx := context.Background()

	tr := NewTrainer()
	tr.TestFraction = 1
	_, err := tr.Run(ctx, separableRows(5))
	assert.Error(t, err)

	tr = NewTrainer()
	_, err = tr.Run(ctx, separableRows(0))
	assert.Error(t, err)
}

func TestTrainer_SingleClassTraining(t *testing.T) {
	rows := []features.Row{
		{Vector: []float64{1}, Label: true},
		{Vector: []float64{2}, Label: true},
		{Vector: []float64{3}, Label: true},
	}
	tr := NewTrainer()
	tr.Seed = 1

	_, err := tr.Run(context.Background(), rows)
	assert.ErrorIs(t, err, svm.ErrSingleClass)
}
