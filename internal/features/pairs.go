package features

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"ppi-predict/internal/align"
	"ppi-predict/internal/index"
	"ppi-predict/internal/interactions"

	"github.com/gocarina/gocsv"
	"golang.org/x/sync/errgroup"
)

// Vector is a relative-frequency vector stored in one CSV cell as
// "[v1, v2, ...]".
type Vector []float64

// MarshalCSV implements gocsv.TypeMarshaller.
func (v Vector) MarshalCSV() (string, error) {
	parts := make([]string, len(v))
	for i, f := range v {
		parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
	}
	return "[" + strings.Join(parts, ", ") + "]", nil
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller.
func (v *Vector) UnmarshalCSV(s string) error {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return fmt.Errorf("vector %q is not bracketed", s)
	}
	body := strings.TrimSpace(s[1 : len(s)-1])
	if body == "" {
		*v = Vector{}
		return nil
	}
	parts := strings.Split(body, ",")
	out := make(Vector, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return fmt.Errorf("vector element %d: %w", i, err)
		}
		out[i] = f
	}
	*v = out
	return nil
}

// Pair is one interaction with both interactor vectors and the normalized
// alignment distance between their sequences.
type Pair struct {
	InteractorA           string  `csv:"Uniprot IDs Interactor A"`
	VectorA               Vector  `csv:"Interactor A Frequency Vector"`
	InteractorB           string  `csv:"Uniprot IDs Interactor B"`
	VectorB               Vector  `csv:"Interactor B Frequency Vector"`
	InteractionType       string  `csv:"Interaction Types"`
	Distance              float64 `csv:"Normalised Distance Score"`
	IsPhysicalAssociation bool    `csv:"is_physical_association"`
}

// PairBuilder aligns the sequences of every interaction pair. Alignment is
// quadratic in sequence length, so pairs are scored on Workers goroutines.
type PairBuilder struct {
	Scoring align.Scoring
	Workers int
}

// Build returns one Pair per record whose interactors both have a metrics
// record with a sequence and a vector, in input order. Misses are counted in
// Stats the same way Vectorize counts them.
func (b PairBuilder) Build(ctx context.Context, records []interactions.Record, idx index.MetricsIndex) ([]Pair, Stats, error) {
	stats := Stats{Input: len(records)}
	slots := make([]*Pair, len(records))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(b.Workers, 1))

	for i, r := range records {
		a, ok := lookup(idx, r.InteractorA)
		if !ok {
			stats.MissingA++
			continue
		}
		bm, ok := lookup(idx, r.InteractorB)
		if !ok {
			stats.MissingB++
			continue
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			slots[i] = &Pair{
				InteractorA:           r.InteractorA,
				VectorA:               a.RelFreq.RelFreq,
				InteractorB:           r.InteractorB,
				VectorB:               bm.RelFreq.RelFreq,
				InteractionType:       r.InteractionType,
				Distance:              b.Scoring.NormalizedDistance(a.Sequence, bm.Sequence),
				IsPhysicalAssociation: r.IsPhysicalAssociation,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, stats, fmt.Errorf("pair alignment interrupted: %w", err)
	}

	pairs := make([]Pair, 0, len(records))
	for _, p := range slots {
		if p != nil {
			pairs = append(pairs, *p)
		}
	}
	stats.Kept = len(pairs)
	return pairs, stats, nil
}

func lookup(idx index.MetricsIndex, accession string) (index.Metrics, bool) {
	m, ok := idx[accession]
	if !ok || m.Sequence == "" || m.RelFreq == nil || len(m.RelFreq.RelFreq) == 0 {
		return index.Metrics{}, false
	}
	return m, true
}

// WritePairsCSV stores pairs as a header-first CSV table.
func WritePairsCSV(path string, pairs []Pair) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if pairs == nil {
		pairs = []Pair{}
	}
	if err := gocsv.MarshalFile(&pairs, f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write pairs: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

// ReadPairsCSV loads a table written by WritePairsCSV.
func ReadPairsCSV(path string) ([]Pair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var pairs []Pair
	if err := gocsv.UnmarshalFile(f, &pairs); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return pairs, nil
}
