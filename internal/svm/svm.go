// Package svm implements a binary support vector classifier with a radial
// basis function kernel, trained with Platt's sequential minimal optimization.
package svm

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrEmptyTrainingSet is returned when there is nothing to fit.
	ErrEmptyTrainingSet = errors.New("svm: empty training set")
	// ErrSingleClass is returned when the training labels contain one class only.
	ErrSingleClass = errors.New("svm: training set contains a single class")
	// ErrInvalidParams is returned for non-positive C or gamma.
	ErrInvalidParams = errors.New("svm: invalid parameters")
)

// Params configures training. C and Gamma follow the usual C-SVC meaning.
type Params struct {
	C         float64 `json:"c" yaml:"c"`
	Gamma     float64 `json:"gamma" yaml:"gamma"`
	Tolerance float64 `json:"tolerance" yaml:"tolerance"` // KKT violation tolerance
	Eps       float64 `json:"eps" yaml:"eps"`             // minimum alpha step
	MaxIter   int     `json:"max_iter" yaml:"maxIter"`    // outer passes, 0 = unbounded
	CacheRows int     `json:"cache_rows" yaml:"cacheRows"`
	Seed      uint64  `json:"seed" yaml:"seed"`
}

// DefaultParams returns C=20, gamma=0.1, the values reported for amino acid
// triplet features.
func DefaultParams() Params {
	return Params{
		C:         20,
		Gamma:     0.1,
		Tolerance: 1e-3,
		Eps:       1e-3,
		MaxIter:   10000,
		CacheRows: 512,
	}
}

func (p Params) validate() error {
	if p.C <= 0 || math.IsNaN(p.C) {
		return fmt.Errorf("%w: C must be positive, got %v", ErrInvalidParams, p.C)
	}
	if p.Gamma <= 0 || math.IsNaN(p.Gamma) {
		return fmt.Errorf("%w: gamma must be positive, got %v", ErrInvalidParams, p.Gamma)
	}
	return nil
}

// RBF returns exp(-gamma * ||a-b||^2).
func RBF(gamma float64, a, b []float64) float64 {
	d := floats.Distance(a, b, 2)
	return math.Exp(-gamma * d * d)
}

// Model is a fitted classifier.
type Model struct {
	gamma   float64
	vectors [][]float64
	coef    []float64 // alpha_i * y_i
	bias    float64
	passes  int
}

// Decision returns the signed distance-like score of x. Positive means the
// physical association class.
func (m *Model) Decision(x []float64) float64 {
	var sum float64
	for i, sv := range m.vectors {
		sum += m.coef[i] * RBF(m.gamma, sv, x)
	}
	return sum - m.bias
}

// Predict classifies x.
func (m *Model) Predict(x []float64) bool {
	return m.Decision(x) > 0
}

// PredictBatch classifies every row of x.
func (m *Model) PredictBatch(x [][]float64) []bool {
	out := make([]bool, len(x))
	for i, row := range x {
		out[i] = m.Predict(row)
	}
	return out
}

// SupportVectors returns the number of support vectors.
func (m *Model) SupportVectors() int {
	return len(m.vectors)
}

// Passes returns the number of outer optimization passes used.
func (m *Model) Passes() int {
	return m.passes
}

// Train fits a model on x with boolean labels y. Context cancellation is
// checked between optimization passes.
func Train(ctx context.Context, x [][]float64, y []bool, p Params) (*Model, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if len(x) == 0 {
		return nil, ErrEmptyTrainingSet
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("svm: %d samples but %d labels", len(x), len(y))
	}
	dim := len(x[0])
	if dim == 0 {
		return nil, fmt.Errorf("svm: zero-length feature vectors")
	}
	for i, row := range x {
		if len(row) != dim {
			return nil, fmt.Errorf("svm: sample %d has %d features, want %d", i, len(row), dim)
		}
	}

	s, err := newSolver(x, y, p)
	if err != nil {
		return nil, err
	}
	if err := s.solve(ctx); err != nil {
		return nil, err
	}
	return s.model(), nil
}
