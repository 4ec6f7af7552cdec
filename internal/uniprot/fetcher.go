package uniprot

import (
	"context"
	"errors"
	"sync"
	"time"

	"ppi-predict/internal/index"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// SequenceSource is anything that can resolve an accession to a sequence.
// *Client is the production implementation.
type SequenceSource interface {
	Sequence(ctx context.Context, accession string) (string, error)
}

// Cache stores sequences between runs. *storage.Store implements it.
type Cache interface {
	GetSequence(accession string) (string, bool, error)
	PutSequence(accession, sequence string) error
}

// MetricsInterface defines the metrics the fetcher reports.
type MetricsInterface interface {
	FetchLatencyObserve(seconds float64)
	SequenceFetchedInc()
	SequenceFailedInc()
	CacheHitInc()
}

// FetchStats summarizes one FetchAll call.
type FetchStats struct {
	Requested int // unique accessions
	Cached    int
	Fetched   int
	NotFound  int
	Failed    int // errors other than not found
}

// Missing is the number of accessions without a sequence in the result.
func (s FetchStats) Missing() int {
	return s.NotFound + s.Failed
}

// Fetcher resolves many accessions concurrently. Source is required; every
// other field is optional.
type Fetcher struct {
	Source  SequenceSource
	Workers int           // concurrent requests, defaults to 1
	Limiter *rate.Limiter // nil means unlimited
	Cache   Cache
	Metrics MetricsInterface
}

// FetchAll returns the sequence of every accession it could resolve.
// Accessions are fetched at most once each. A failure for a single accession
// is counted and skipped; only cancellation of ctx aborts the whole batch.
// The index is returned after every worker has finished.
func (f *Fetcher) FetchAll(ctx context.Context, accessions []string) (index.SequenceIndex, FetchStats, error) {
	var (
		mu    sync.Mutex
		seqs  = make(index.SequenceIndex, len(accessions))
		stats FetchStats
	)

	unique := make([]string, 0, len(accessions))
	seen := make(map[string]struct{}, len(accessions))
	for _, acc := range accessions {
		if acc == "" {
			continue
		}
		if _, ok := seen[acc]; ok {
			continue
		}
		seen[acc] = struct{}{}
		unique = append(unique, acc)
	}
	stats.Requested = len(unique)

	workers := f.Workers
	if workers <= 0 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, acc := range unique {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			seq, cached, err := f.fetchOne(gctx, acc)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				seqs[acc] = seq
				if cached {
					stats.Cached++
				} else {
					stats.Fetched++
				}
				return nil
			case gctx.Err() != nil:
				return gctx.Err()
			case errors.Is(err, ErrNotFound):
				stats.NotFound++
			default:
				stats.Failed++
			}
			if f.Metrics != nil {
				f.Metrics.SequenceFailedInc()
			}
			log.Warn().Err(err).Str("accession", acc).Msg("Sequence fetch failed, skipping")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, stats, err
	}
	if err := ctx.Err(); err != nil {
		return nil, stats, err
	}
	return seqs, stats, nil
}

func (f *Fetcher) fetchOne(ctx context.Context, acc string) (string, bool, error) {
	if f.Cache != nil {
		seq, found, err := f.Cache.GetSequence(acc)
		if err != nil {
			log.Warn().Err(err).Str("accession", acc).Msg("Sequence cache read failed")
		} else if found {
			if f.Metrics != nil {
				f.Metrics.CacheHitInc()
			}
			return seq, true, nil
		}
	}

	if f.Limiter != nil {
		if err := f.Limiter.Wait(ctx); err != nil {
			return "", false, err
		}
	}

	start := time.Now()
	seq, err := f.Source.Sequence(ctx, acc)
	if f.Metrics != nil {
		f.Metrics.FetchLatencyObserve(time.Since(start).Seconds())
	}
	if err != nil {
		return "", false, err
	}
	if f.Metrics != nil {
		f.Metrics.SequenceFetchedInc()
	}

	if f.Cache != nil {
		if err := f.Cache.PutSequence(acc, seq); err != nil {
			log.Warn().Err(err).Str("accession", acc).Msg("Sequence cache write failed")
		}
	}
	return seq, false, nil
}
