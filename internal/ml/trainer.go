// Package ml trains and evaluates the interaction classifier on feature rows.
//
// A run is a single fixed-configuration pass: shuffle, split into train and
// held-out partitions, fit an RBF support vector classifier, and score the
// held-out predictions. There is no cross-validation or parameter search.
package ml

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"ppi-predict/internal/features"
	"ppi-predict/internal/svm"

	"github.com/rs/zerolog/log"
)

// DefaultTestFraction is the held-out share of rows.
const DefaultTestFraction = 0.2

// MetricsInterface defines the metrics hooks used by the trainer.
type MetricsInterface interface {
	TrainingDurationObserve(float64)
	EvaluationSet(accuracy, precision, recall, auc float64)
	AUCFailuresInc()
}

// Trainer runs split, fit and evaluation.
type Trainer struct {
	Params       svm.Params
	TestFraction float64
	// Seed drives the shuffle. Zero picks a time based seed.
	Seed    uint64
	Metrics MetricsInterface
}

// NewTrainer returns a Trainer with default parameters.
func NewTrainer() *Trainer {
	return &Trainer{
		Params:       svm.DefaultParams(),
		TestFraction: DefaultTestFraction,
	}
}

// Split shuffles rows and returns the train and test partitions. The test
// partition holds ceil(testFraction * n) rows. rows itself is not reordered.
func Split(rows []features.Row, testFraction float64, rng *rand.Rand) (train, test []features.Row) {
	shuffled := make([]features.Row, len(rows))
	copy(shuffled, rows)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	nTest := int(math.Ceil(testFraction * float64(len(rows))))
	if nTest > len(rows) {
		nTest = len(rows)
	}
	return shuffled[nTest:], shuffled[:nTest]
}

// Run fits a classifier on the training partition of rows and scores it on
// the held-out partition. An undefined AUC is carried in the report, not
// returned as an error.
func (t *Trainer) Run(ctx context.Context, rows []features.Row) (*Report, error) {
	if t.TestFraction <= 0 || t.TestFraction >= 1 {
		return nil, fmt.Errorf("test fraction must be in (0, 1), got %v", t.TestFraction)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("need at least 2 feature rows, got %d", len(rows))
	}

	seed := t.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))
	train, test := Split(rows, t.TestFraction, rng)
	if len(train) == 0 {
		return nil, fmt.Errorf("training partition is empty")
	}

	log.Info().
		Int("train", len(train)).
		Int("test", len(test)).
		Float64("c", t.Params.C).
		Float64("gamma", t.Params.Gamma).
		Uint64("seed", seed).
		Msg("Fitting classifier")

	xTrain, yTrain := features.Matrix(train)
	start := time.Now()
	model, err := svm.Train(ctx, xTrain, yTrain, t.Params)
	if err != nil {
		return nil, fmt.Errorf("failed to fit classifier: %w", err)
	}
	elapsed := time.Since(start)
	if t.Metrics != nil {
		t.Metrics.TrainingDurationObserve(elapsed.Seconds())
	}

	xTest, yTest := features.Matrix(test)
	yPred := model.PredictBatch(xTest)

	scores, err := Evaluate(yTest, yPred)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate classifier: %w", err)
	}

	report := &Report{
		CreatedAt:      time.Now(),
		Seed:           seed,
		TrainSize:      len(train),
		TestSize:       len(test),
		SupportVectors: model.SupportVectors(),
		Passes:         model.Passes(),
		Params:         t.Params,
		Scores:         scores,
		Duration:       elapsed,
	}
	if scores.AUCErr != nil {
		report.AUCError = scores.AUCErr.Error()
		log.Warn().Err(scores.AUCErr).Int("test", len(test)).Msg("ROC-AUC could not be computed")
		if t.Metrics != nil {
			t.Metrics.AUCFailuresInc()
		}
	}
	if t.Metrics != nil {
		t.Metrics.EvaluationSet(scores.Accuracy, scores.Precision, scores.Recall, scores.AUC)
	}

	return report, nil
}
