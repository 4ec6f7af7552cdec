// Package mitab reads tab separated PSI-MITAB interaction exports such as the
// BioGRID `*.mitab.txt` release files.
package mitab

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"ppi-predict/internal/interactions"
)

// Stats describes a read pass.
type Stats struct {
	Rows    int `json:"rows"`
	Skipped int `json:"skipped"`
}

// Reader streams raw records from a MITAB file.
type Reader struct {
	r      *csv.Reader
	header []string
	stats  Stats
}

// NewReader consumes the header row of r. A leading '#' on the first column
// name is dropped.
func NewReader(r io.Reader) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty MITAB input")
		}
		return nil, fmt.Errorf("failed to read MITAB header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "#")
	}

	return &Reader{r: cr, header: header}, nil
}

// Header returns the column names.
func (r *Reader) Header() []string {
	return r.header
}

// Has reports whether the header contains every named column.
func (r *Reader) Has(columns ...string) bool {
	for _, c := range columns {
		found := false
		for _, h := range r.header {
			if h == c {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Next returns the next well-formed record, or io.EOF. Rows whose field count
// differs from the header are skipped.
func (r *Reader) Next() (interactions.RawRecord, error) {
	for {
		fields, err := r.r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, io.EOF
			}
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				r.stats.Skipped++
				continue
			}
			return nil, fmt.Errorf("failed to read MITAB row: %w", err)
		}
		if len(fields) != len(r.header) {
			r.stats.Skipped++
			continue
		}

		r.stats.Rows++
		rec := make(interactions.RawRecord, len(fields))
		for i, v := range fields {
			rec[r.header[i]] = v
		}
		return rec, nil
	}
}

// Stats returns counts for the rows consumed so far.
func (r *Reader) Stats() Stats {
	return r.stats
}

// ReadAll reads every remaining record.
func (r *Reader) ReadAll() ([]interactions.RawRecord, error) {
	var out []interactions.RawRecord
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
}

// Read parses a whole MITAB stream.
func Read(r io.Reader) ([]interactions.RawRecord, Stats, error) {
	mr, err := NewReader(r)
	if err != nil {
		return nil, Stats{}, err
	}
	rows, err := mr.ReadAll()
	return rows, mr.Stats(), err
}

// ReadFile parses the MITAB file at path.
func ReadFile(path string) ([]interactions.RawRecord, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("failed to open MITAB file: %w", err)
	}
	defer f.Close()
	return Read(f)
}
