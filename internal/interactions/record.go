// Package interactions turns raw interaction rows into normalized records and
// narrows them down to rows usable for training.
package interactions

import (
	"ppi-predict/internal/common"
	"ppi-predict/internal/extract"
)

// RawRecord is one row of the interchange file keyed by column name.
type RawRecord map[string]string

// Record is a normalized interaction between two interactors.
type Record struct {
	InteractorA           string `csv:"Uniprot IDs Interactor A"`
	InteractorB           string `csv:"Uniprot IDs Interactor B"`
	InteractionType       string `csv:"Interaction Types"`
	IsPhysicalAssociation bool   `csv:"is_physical_association"`
}

// NewRecord builds a Record, deriving IsPhysicalAssociation from the label.
func NewRecord(a, b, label string) Record {
	return Record{
		InteractorA:           a,
		InteractorB:           b,
		InteractionType:       label,
		IsPhysicalAssociation: extract.IsPhysicalAssociation(label),
	}
}

// Fields names the raw columns holding the two interactor aliases and the
// interaction type.
type Fields struct {
	InteractorA string `yaml:"interactorA"`
	InteractorB string `yaml:"interactorB"`
	Label       string `yaml:"label"`
}

// DefaultFields returns the PSI-MITAB 2.5 column names.
func DefaultFields() Fields {
	return Fields{
		InteractorA: common.DefaultFieldInteractorA,
		InteractorB: common.DefaultFieldInteractorB,
		Label:       common.DefaultFieldLabel,
	}
}

// ClassBalance counts records per class.
type ClassBalance struct {
	Total    int `json:"total"`
	Physical int `json:"physical"`
}

// Other returns the number of non physical association records.
func (c ClassBalance) Other() int {
	return c.Total - c.Physical
}

// Ratio returns the physical association share, or 0 for an empty table.
func (c ClassBalance) Ratio() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Physical) / float64(c.Total)
}

// Balance computes the class balance of records.
func Balance(records []Record) ClassBalance {
	cb := ClassBalance{Total: len(records)}
	for _, r := range records {
		if r.IsPhysicalAssociation {
			cb.Physical++
		}
	}
	return cb
}

// LabelCounts returns the number of records per interaction label.
func LabelCounts(records []Record) map[string]int {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.InteractionType]++
	}
	return counts
}

// Accessions returns every distinct interactor accession in first-seen order.
func Accessions(records []Record) []string {
	seen := make(map[string]struct{}, len(records))
	out := make([]string, 0, len(records))
	for _, r := range records {
		for _, acc := range [2]string{r.InteractorA, r.InteractorB} {
			if _, ok := seen[acc]; ok {
				continue
			}
			seen[acc] = struct{}{}
			out = append(out, acc)
		}
	}
	return out
}
