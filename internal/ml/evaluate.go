package ml

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// ErrUndefinedAUC is reported when the held-out labels contain a single class.
var ErrUndefinedAUC = errors.New("ROC-AUC undefined: held-out labels contain a single class")

// Scores are the evaluation metrics of one fit.
type Scores struct {
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"` // support-weighted over both classes
	Recall    float64 `json:"recall"`    // support-weighted over both classes
	AUC       float64 `json:"auc"`
	AUCErr    error   `json:"-"`
}

// Evaluate scores predictions against held-out labels. An undefined AUC does
// not prevent the other scores from being computed.
func Evaluate(yTrue, yPred []bool) (Scores, error) {
	if len(yTrue) != len(yPred) {
		return Scores{}, fmt.Errorf("label count mismatch: %d true, %d predicted", len(yTrue), len(yPred))
	}
	if len(yTrue) == 0 {
		return Scores{}, fmt.Errorf("cannot evaluate an empty test set")
	}

	var s Scores
	s.Accuracy = accuracy(yTrue, yPred)
	s.Precision, s.Recall = weightedPrecisionRecall(yTrue, yPred)
	s.AUC, s.AUCErr = rocAUC(yTrue, predictionScores(yPred))
	return s, nil
}

func accuracy(yTrue, yPred []bool) float64 {
	correct := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue))
}

// weightedPrecisionRecall averages per-class precision and recall weighted by
// each class's support in yTrue. A class with no predictions scores 0.
func weightedPrecisionRecall(yTrue, yPred []bool) (precision, recall float64) {
	n := float64(len(yTrue))
	for _, class := range []bool{false, true} {
		var tp, fp, fn, support float64
		for i := range yTrue {
			switch {
			case yTrue[i] == class && yPred[i] == class:
				tp++
			case yTrue[i] != class && yPred[i] == class:
				fp++
			case yTrue[i] == class && yPred[i] != class:
				fn++
			}
			if yTrue[i] == class {
				support++
			}
		}
		if support == 0 {
			continue
		}
		w := support / n
		if tp+fp > 0 {
			precision += w * tp / (tp + fp)
		}
		if tp+fn > 0 {
			recall += w * tp / (tp + fn)
		}
	}
	return precision, recall
}

func predictionScores(yPred []bool) []float64 {
	scores := make([]float64, len(yPred))
	for i, p := range yPred {
		if p {
			scores[i] = 1
		}
	}
	return scores
}

// rocAUC computes the area under the ROC curve of scores for the positive class.
func rocAUC(yTrue []bool, scores []float64) (float64, error) {
	pos := 0
	for _, l := range yTrue {
		if l {
			pos++
		}
	}
	if pos == 0 || pos == len(yTrue) {
		return 0, ErrUndefinedAUC
	}

	// stat.ROC wants scores in ascending order
	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return scores[idx[a]] < scores[idx[b]] })

	y := make([]float64, len(scores))
	classes := make([]bool, len(scores))
	for i, j := range idx {
		y[i] = scores[j]
		classes[i] = yTrue[j]
	}

	tpr, fpr, _ := stat.ROC(nil, y, classes, nil)
	return integrate.Trapezoidal(fpr, tpr), nil
}
