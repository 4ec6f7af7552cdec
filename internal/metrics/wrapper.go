package metrics

// MetricsWrapper adapts Metrics to the narrow interfaces consumed by the
// trainer and the sequence fetcher.
type MetricsWrapper struct {
	m *Metrics
}

func NewWrapper(m *Metrics) *MetricsWrapper {
	return &MetricsWrapper{m: m}
}

func (w *MetricsWrapper) TrainingDurationObserve(seconds float64) {
	w.m.TrainingDuration.Observe(seconds)
}

func (w *MetricsWrapper) EvaluationSet(accuracy, precision, recall, auc float64) {
	w.m.EvaluationScore.WithLabelValues("accuracy").Set(accuracy)
	w.m.EvaluationScore.WithLabelValues("precision").Set(precision)
	w.m.EvaluationScore.WithLabelValues("recall").Set(recall)
	w.m.EvaluationScore.WithLabelValues("auc").Set(auc)
}

func (w *MetricsWrapper) AUCFailuresInc() {
	w.m.AUCFailures.Inc()
}

func (w *MetricsWrapper) FetchLatencyObserve(seconds float64) {
	w.m.FetchLatency.Observe(seconds)
}

func (w *MetricsWrapper) SequenceFetchedInc() {
	w.m.SequencesFetched.Inc()
}

func (w *MetricsWrapper) SequenceFailedInc() {
	w.m.SequencesFailed.Inc()
}

func (w *MetricsWrapper) CacheHitInc() {
	w.m.SequenceCacheHit.Inc()
}
