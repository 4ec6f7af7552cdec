package interactions

import (
	"ppi-predict/internal/extract"
)

// AggregateStats summarizes one aggregation pass.
type AggregateStats struct {
	Read       int `json:"read"`
	Kept       int `json:"kept"`
	Unlabelled int `json:"unlabelled"`
}

// Dropped returns the number of rows without two resolvable interactors.
func (s AggregateStats) Dropped() int {
	return s.Read - s.Kept
}

// Aggregate normalizes raw rows. A row is kept only when both interactor
// columns resolve to an accession; output order follows input order.
func Aggregate(rows []RawRecord, fields Fields, ex extract.Extractor) []Record {
	out, _ := AggregateWithStats(rows, fields, ex)
	return out
}

// AggregateWithStats is Aggregate plus pass statistics.
func AggregateWithStats(rows []RawRecord, fields Fields, ex extract.Extractor) ([]Record, AggregateStats) {
	stats := AggregateStats{Read: len(rows)}
	out := make([]Record, 0, len(rows))

	for _, row := range rows {
		a, ok := ex.InteractorID(row[fields.InteractorA])
		if !ok {
			continue
		}
		b, ok := ex.InteractorID(row[fields.InteractorB])
		if !ok {
			continue
		}

		// An unparseable type keeps the row with an empty label.
		label, ok := ex.InteractionLabel(row[fields.Label])
		if !ok {
			stats.Unlabelled++
		}
		out = append(out, NewRecord(a, b, label))
	}

	stats.Kept = len(out)
	return out, stats
}
