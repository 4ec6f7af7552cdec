package interactions

import (
	"errors"

	"ppi-predict/internal/index"
)

// ErrNoSequenceIndex is returned when filtering is attempted without an index.
var ErrNoSequenceIndex = errors.New("sequence index is required")

// BalanceAudit records the class balance around a filtering step. It is an
// audit figure only.
type BalanceAudit struct {
	Before ClassBalance `json:"before"`
	After  ClassBalance `json:"after"`
}

// Shift returns the change in physical association share caused by the filter.
func (a BalanceAudit) Shift() float64 {
	return a.After.Ratio() - a.Before.Ratio()
}

// FilterBySequence keeps the records whose two interactors both have a known
// sequence. The input slice is not modified.
func FilterBySequence(records []Record, seqs index.SequenceIndex) ([]Record, BalanceAudit) {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if seqs.Has(r.InteractorA) && seqs.Has(r.InteractorB) {
			out = append(out, r)
		}
	}
	return out, BalanceAudit{Before: Balance(records), After: Balance(out)}
}

// FilterBySequenceChecked is FilterBySequence that rejects a nil index instead
// of silently dropping every row.
func FilterBySequenceChecked(records []Record, seqs index.SequenceIndex) ([]Record, BalanceAudit, error) {
	if seqs == nil {
		return nil, BalanceAudit{}, ErrNoSequenceIndex
	}
	out, audit := FilterBySequence(records, seqs)
	return out, audit, nil
}
