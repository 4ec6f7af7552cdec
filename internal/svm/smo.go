package svm

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	lru "github.com/hashicorp/golang-lru"
)

// solver holds SMO state. errs[i] is u_i - y_i for every sample, kept exact
// after each successful step.
type solver struct {
	x      [][]float64
	y      []float64
	alpha  []float64
	errs   []float64
	b      float64
	p      Params
	rows   *lru.Cache
	rng    *rand.Rand
	passes int
}

func newSolver(x [][]float64, labels []bool, p Params) (*solver, error) {
	n := len(x)
	y := make([]float64, n)
	var pos int
	for i, l := range labels {
		if l {
			y[i] = 1
			pos++
		} else {
			y[i] = -1
		}
	}
	if pos == 0 || pos == n {
		return nil, ErrSingleClass
	}

	cacheRows := p.CacheRows
	if cacheRows <= 0 {
		cacheRows = 1
	}
	rows, err := lru.New(cacheRows)
	if err != nil {
		return nil, fmt.Errorf("svm: kernel cache: %w", err)
	}

	// all alphas start at zero, so u_i = 0 and E_i = -y_i
	errs := make([]float64, n)
	for i := range errs {
		errs[i] = -y[i]
	}

	return &solver{
		x:     x,
		y:     y,
		alpha: make([]float64, n),
		errs:  errs,
		p:     p,
		rows:  rows,
		rng:   rand.New(rand.NewPCG(p.Seed, p.Seed^0x9e3779b97f4a7c15)),
	}, nil
}

// row returns kernel row i, computing and caching it on a miss.
func (s *solver) row(i int) []float64 {
	if v, ok := s.rows.Get(i); ok {
		return v.([]float64)
	}
	r := make([]float64, len(s.x))
	for j := range s.x {
		if j == i {
			r[j] = 1
			continue
		}
		r[j] = RBF(s.p.Gamma, s.x[i], s.x[j])
	}
	s.rows.Add(i, r)
	return r
}

// kernel returns K(i, j), reading a cached row when one is available.
func (s *solver) kernel(i, j int) float64 {
	if v, ok := s.rows.Peek(i); ok {
		return v.([]float64)[j]
	}
	if v, ok := s.rows.Peek(j); ok {
		return v.([]float64)[i]
	}
	return RBF(s.p.Gamma, s.x[i], s.x[j])
}

func (s *solver) bound(i int) bool {
	return s.alpha[i] <= 0 || s.alpha[i] >= s.p.C
}

func (s *solver) solve(ctx context.Context) error {
	examineAll := true
	changed := 0

	for changed > 0 || examineAll {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("svm: training interrupted: %w", err)
		}
		if s.p.MaxIter > 0 && s.passes >= s.p.MaxIter {
			break
		}

		changed = 0
		for i := range s.x {
			if examineAll || !s.bound(i) {
				changed += s.examine(i)
			}
		}
		s.passes++

		if examineAll {
			examineAll = false
		} else if changed == 0 {
			examineAll = true
		}
	}
	return nil
}

func (s *solver) examine(i2 int) int {
	y2 := s.y[i2]
	a2 := s.alpha[i2]
	e2 := s.errs[i2]
	r2 := e2 * y2
	tol := s.p.Tolerance

	if !((r2 < -tol && a2 < s.p.C) || (r2 > tol && a2 > 0)) {
		return 0
	}

	n := len(s.x)

	// second choice heuristic: maximize |E1 - E2| over non-bound samples
	best, bestGap := -1, -1.0
	for i := 0; i < n; i++ {
		if s.bound(i) {
			continue
		}
		if gap := math.Abs(s.errs[i] - e2); gap > bestGap {
			best, bestGap = i, gap
		}
	}
	if best >= 0 && s.step(best, i2) {
		return 1
	}

	start := s.rng.IntN(n)
	for k := 0; k < n; k++ {
		i1 := (start + k) % n
		if !s.bound(i1) && s.step(i1, i2) {
			return 1
		}
	}

	start = s.rng.IntN(n)
	for k := 0; k < n; k++ {
		i1 := (start + k) % n
		if s.step(i1, i2) {
			return 1
		}
	}
	return 0
}

func (s *solver) step(i1, i2 int) bool {
	if i1 == i2 {
		return false
	}

	a1, a2 := s.alpha[i1], s.alpha[i2]
	y1, y2 := s.y[i1], s.y[i2]
	e1, e2 := s.errs[i1], s.errs[i2]
	c := s.p.C

	var lo, hi float64
	if y1 != y2 {
		lo = math.Max(0, a2-a1)
		hi = math.Min(c, c+a2-a1)
	} else {
		lo = math.Max(0, a1+a2-c)
		hi = math.Min(c, a1+a2)
	}
	if lo >= hi {
		return false
	}

	// K(i, i) = 1 for RBF; full rows are fetched only once the step is accepted
	k11, k22 := 1.0, 1.0
	k12 := s.kernel(i1, i2)

	// RBF gives eta >= 0; it is zero only for duplicate points, which
	// cannot make progress along this pair.
	eta := k11 + k22 - 2*k12
	if eta <= 0 {
		return false
	}

	na2 := a2 + y2*(e1-e2)/eta
	switch {
	case na2 < lo:
		na2 = lo
	case na2 > hi:
		na2 = hi
	}
	if math.Abs(na2-a2) < s.p.Eps*(na2+a2+s.p.Eps) {
		return false
	}
	na1 := a1 + y1*y2*(a2-na2)
	if na1 < 1e-12 {
		na1 = 0
	} else if na1 > c-1e-12 {
		na1 = c
	}

	t1 := y1 * (na1 - a1)
	t2 := y2 * (na2 - a2)
	b1 := e1 + t1*k11 + t2*k12 + s.b
	b2 := e2 + t1*k12 + t2*k22 + s.b

	var nb float64
	switch {
	case na1 > 0 && na1 < c:
		nb = b1
	case na2 > 0 && na2 < c:
		nb = b2
	default:
		nb = (b1 + b2) / 2
	}

	k1 := s.row(i1)
	k2 := s.row(i2)
	db := nb - s.b
	for k := range s.errs {
		s.errs[k] += t1*k1[k] + t2*k2[k] - db
	}

	s.alpha[i1], s.alpha[i2] = na1, na2
	s.b = nb
	return true
}

func (s *solver) model() *Model {
	m := &Model{gamma: s.p.Gamma, bias: s.b, passes: s.passes}
	for i, a := range s.alpha {
		if a <= 0 {
			continue
		}
		m.vectors = append(m.vectors, s.x[i])
		m.coef = append(m.coef, a*s.y[i])
	}
	return m
}
