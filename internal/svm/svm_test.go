package svm

import (
	"context"
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blobs returns two well separated gaussian clusters.
func blobs(n int, seed uint64) ([][]float64, []bool) {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	x := make([][]float64, 0, 2*n)
	y := make([]bool, 0, 2*n)
	for i := 0; i < n; i++ {
		x = append(x, []float64{1 + 0.3*rng.NormFloat64(), 1 + 0.3*rng.NormFloat64()})
		y = append(y, true)
		x = append(x, []float64{-1 + 0.3*rng.NormFloat64(), -1 + 0.3*rng.NormFloat64()})
		y = append(y, false)
	}
	return x, y
}

func TestRBF(t *testing.T) {
	assert.Equal(t, 1.0, RBF(0.1, []float64{1, 2}, []float64{1, 2}))
	// ||a-b||^2 = 2
	assert.InDelta(t, math.Exp(-0.2), RBF(0.1, []float64{0, 0}, []float64{1, 1}), 1e-12)
}

func TestTrain_SeparableBlobs(t *testing.T) {
	x, y := blobs(40, 7)
	p := DefaultParams()
	p.Gamma = 0.5

	m, err := Train(context.Background(), x, y, p)
	require.NoError(t, err)
	assert.Greater(t, m.SupportVectors(), 0)
	assert.Greater(t, m.Passes(), 0)

	pred := m.PredictBatch(x)
	correct := 0
	for i := range pred {
		if pred[i] == y[i] {
			correct++
		}
	}
	assert.GreaterOrEqual(t, float64(correct)/float64(len(y)), 0.95)

	assert.True(t, m.Predict([]float64{1.2, 0.9}))
	assert.False(t, m.Predict([]float64{-1.1, -0.8}))
}

func TestTrain_XOR(t *testing.T) {
	// not linearly separable; the kernel has to do the work
	x := [][]float64{{0, 0}, {1, 1}, {0, 1}, {1, 0}}
	y := []bool{false, false, true, true}
	p := DefaultParams()
	p.Gamma = 2

	m, err := Train(context.Background(), x, y, p)
	require.NoError(t, err)
	assert.Equal(t, y, m.PredictBatch(x))
}

func TestTrain_Deterministic(t *testing.T) {
	x, y := blobs(20, 3)
	p := DefaultParams()

	m1, err := Train(context.Background(), x, y, p)
	require.NoError(t, err)
	m2, err := Train(context.Background(), x, y, p)
	require.NoError(t, err)

	point := []float64{0.2, -0.1}
	assert.Equal(t, m1.Decision(point), m2.Decision(point))
}

func TestTrain_SmallCache(t *testing.T) {
	x, y := blobs(15, 11)
	p := DefaultParams()
	p.CacheRows = 2

	m, err := Train(context.Background(), x, y, p)
	require.NoError(t, err)
	assert.True(t, m.Predict([]float64{1, 1}))
}

// overlapping returns n noisy points in dim dimensions whose label depends on
// the first coordinate, so many samples end up as bound support vectors.
func overlapping(n, dim int, seed uint64) ([][]float64, []bool) {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	x := make([][]float64, n)
	y := make([]bool, n)
	for i := range x {
		x[i] = make([]float64, dim)
		for j := range x[i] {
			x[i][j] = rng.NormFloat64()
		}
		y[i] = x[i][0]+0.3*rng.NormFloat64() > 0.3
	}
	return x, y
}

func TestTrain_MoreRowsThanCache(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping training run in short mode")
	}
	x, y := overlapping(600, 10, 21)
	p := DefaultParams()
	p.CacheRows = 64
	require.Greater(t, len(x), p.CacheRows)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	start := time.Now()
	m, err := Train(ctx, x, y, p)
	require.NoError(t, err, "training took %s", time.Since(start))
	assert.Greater(t, m.SupportVectors(), 0)
}

func TestTrain_DualConstraints(t *testing.T) {
	x, y := overlapping(200, 5, 4)
	p := DefaultParams()
	p.CacheRows = 16

	m, err := Train(context.Background(), x, y, p)
	require.NoError(t, err)

	// coef holds alpha_i * y_i for every sample with alpha_i > 0
	var sum float64
	for _, c := range m.coef {
		assert.Greater(t, math.Abs(c), 0.0)
		assert.LessOrEqual(t, math.Abs(c), p.C+1e-9)
		sum += c
	}
	assert.InDelta(t, 0, sum, 1e-6)
}

func TestSolver_KernelMatchesRow(t *testing.T) {
	x, y := blobs(5, 9)
	s, err := newSolver(x, y, DefaultParams())
	require.NoError(t, err)

	want := RBF(s.p.Gamma, x[1], x[3])
	assert.InDelta(t, want, s.kernel(1, 3), 1e-15)
	r := s.row(3)
	assert.InDelta(t, want, r[1], 1e-15)
	assert.InDelta(t, want, s.kernel(1, 3), 1e-15)
	assert.Equal(t, 1.0, r[3])
}

func TestTrain_Errors(t *testing.T) {
	ctx := context.Background()
	p := DefaultParams()

	_, err := Train(ctx, nil, nil, p)
	assert.ErrorIs(t, err, ErrEmptyTrainingSet)

	_, err = Train(ctx, [][]float64{{1}, {2}}, []bool{true, true}, p)
	assert.ErrorIs(t, err, ErrSingleClass)

	_, err = Train(ctx, [][]float64{{1}, {2, 3}}, []bool{true, false}, p)
	assert.Error(t, err)

	_, err = Train(ctx, [][]float64{{1}, {2}}, []bool{true}, p)
	assert.Error(t, err)

	_, err = Train(ctx, [][]float64{{}, {}}, []bool{true, false}, p)
	assert.Error(t, err)

	bad := p
	bad.C = 0
	_, err = Train(ctx, [][]float64{{1}, {2}}, []bool{true, false}, bad)
	assert.ErrorIs(t, err, ErrInvalidParams)

	bad = p
	bad.Gamma = -1
	_, err = Train(ctx, [][]float64{{1}, {2}}, []bool{true, false}, bad)
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestTrain_Cancelled(t *testing.T) {
	x, y := blobs(10, 5)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Train(ctx, x, y, DefaultParams())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, 20.0, p.C)
	assert.Equal(t, 0.1, p.Gamma)
}
