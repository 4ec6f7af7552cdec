// Package features builds classifier inputs from interaction records.
//
// Each interaction pair becomes the element-wise sum of the two interactors'
// relative-frequency vectors. Summation makes the feature independent of which
// interactor is listed first and keeps the dimension equal to the alphabet size.
package features

import (
	"errors"
	"fmt"

	"ppi-predict/internal/index"
	"ppi-predict/internal/interactions"

	"gonum.org/v1/gonum/floats"
)

// ErrDimensionMismatch marks relative-frequency vectors of inconsistent length.
var ErrDimensionMismatch = errors.New("feature dimension mismatch")

// DimensionError reports which accessions broke the fixed dimension.
type DimensionError struct {
	InteractorA, InteractorB string
	LenA, LenB               int
	Want                     int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("feature dimension mismatch for %s/%s: got %d and %d, want %d",
		e.InteractorA, e.InteractorB, e.LenA, e.LenB, e.Want)
}

func (e *DimensionError) Unwrap() error {
	return ErrDimensionMismatch
}

// Row is one labelled feature vector.
type Row struct {
	Vector []float64
	Label  bool
}

// Stats counts vectorizer outcomes.
type Stats struct {
	Input    int `json:"input"`
	Kept     int `json:"kept"`
	MissingA int `json:"missing_a"`
	MissingB int `json:"missing_b"`
}

// Vectorizer maps records to feature rows. Dim pins the expected vector
// length; zero means the first kept row sets it.
type Vectorizer struct {
	Dim int
}

// Vectorize is Vectorizer{}.Vectorize.
func Vectorize(records []interactions.Record, idx index.MetricsIndex) ([]Row, error) {
	rows, _, err := Vectorizer{}.Vectorize(records, idx)
	return rows, err
}

// Vectorize builds one Row per record whose two interactors both have metrics.
// Rows with a lookup miss are dropped. A length mismatch aborts the batch with
// a *DimensionError.
func (v Vectorizer) Vectorize(records []interactions.Record, idx index.MetricsIndex) ([]Row, Stats, error) {
	stats := Stats{Input: len(records)}
	rows := make([]Row, 0, len(records))
	dim := v.Dim

	for _, r := range records {
		a, ok := idx.RelFreq(r.InteractorA)
		if !ok {
			stats.MissingA++
			continue
		}
		b, ok := idx.RelFreq(r.InteractorB)
		if !ok {
			stats.MissingB++
			continue
		}

		if dim == 0 {
			dim = len(a)
		}
		if len(a) != dim || len(b) != dim {
			return nil, stats, &DimensionError{
				InteractorA: r.InteractorA,
				InteractorB: r.InteractorB,
				LenA:        len(a),
				LenB:        len(b),
				Want:        dim,
			}
		}

		vec := make([]float64, dim)
		floats.AddTo(vec, a, b)
		rows = append(rows, Row{Vector: vec, Label: r.IsPhysicalAssociation})
	}

	stats.Kept = len(rows)
	return rows, stats, nil
}

// Matrix splits rows into the design matrix and label vector. The vectors are
// shared with rows, not copied.
func Matrix(rows []Row) ([][]float64, []bool) {
	x := make([][]float64, len(rows))
	y := make([]bool, len(rows))
	for i, r := range rows {
		x[i] = r.Vector
		y[i] = r.Label
	}
	return x, y
}
