package ml

import "sync"

// MockMetrics implements MetricsInterface for testing
type MockMetrics struct {
	mu              sync.Mutex
	trainingRuns    int
	trainingSeconds float64
	evaluations     int
	aucFailures     int
	lastScores      [4]float64
}

func (m *MockMetrics) TrainingDurationObserve(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trainingRuns++
	m.trainingSeconds += v
}

func (m *MockMetrics) EvaluationSet(accuracy, precision, recall, auc float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evaluations++
	m.lastScores = [4]float64{accuracy, precision, recall, auc}
}

func (m *MockMetrics) AUCFailuresInc() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.aucFailures++
}
