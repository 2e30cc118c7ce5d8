package search

import (
	"context"
	"slices"
	"sync/atomic"
	"time"

	"github.com/osse101/MixOptimizer_Go/internal/domain"
	"github.com/osse101/MixOptimizer_Go/internal/logger"
	"github.com/osse101/MixOptimizer_Go/internal/mixing"
	"github.com/osse101/MixOptimizer_Go/internal/property"
	"github.com/osse101/MixOptimizer_Go/internal/worker"
)

// cancelCheckInterval is how many candidates a partition visits between
// context checks.
const cancelCheckInterval = 1 << 14

// ProgressFunc receives the number of candidates visited so far and the
// total. It is called from worker goroutines as partitions finish and must
// be safe for concurrent use.
type ProgressFunc func(done, total uint64)

// Stats describes the work done by one search.
type Stats struct {
	Candidates uint64        `json:"candidates"`
	Evaluated  uint64        `json:"evaluated"`
	Admitted   uint64        `json:"admitted"`
	Partitions int           `json:"partitions"`
	Workers    int           `json:"workers"`
	Elapsed    time.Duration `json:"elapsed_ns"`
}

// Result is the best admissible candidate of a search, or the evaluation of
// a single given mix.
type Result struct {
	BaseItem   domain.BaseItem
	Modifiers  []domain.Modifier
	Properties []domain.Property
	Cost       int64
	SellPrice  int64
	Profit     int64
	Multiplier float64
	Stats      Stats
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers sets the number of partitions searched concurrently.
// Non-positive means one per CPU.
func WithWorkers(n int) Option {
	return func(e *Engine) { e.pool = worker.NewPool(n) }
}

// WithProgress installs a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(e *Engine) { e.progress = fn }
}

// Engine runs exhaustive searches against one catalog.
type Engine struct {
	catalog  Catalog
	scorer   *Scorer
	pool     *worker.Pool
	progress ProgressFunc
}

// NewEngine creates an engine for c.
func NewEngine(c Catalog, opts ...Option) *Engine {
	e := &Engine{
		catalog: c,
		scorer:  NewScorer(c.Properties()),
		pool:    worker.NewPool(0),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Workers returns the engine's concurrency limit.
func (e *Engine) Workers() int {
	return e.pool.Workers()
}

// partial is the best candidate of one partition.
type partial struct {
	found     bool
	seq       []int
	score     Score
	evaluated uint64
	admitted  uint64
}

// Search scores every candidate of f, discards inadmissible ones and
// returns the best under f.Ranking. It returns (nil, nil) when no candidate
// is admissible. Ties keep the candidate generated first, whatever the
// worker count. Cancelling ctx aborts the search with ctx.Err().
func (e *Engine) Search(ctx context.Context, f *Filter) (*Result, error) {
	log := logger.FromContext(ctx)
	start := time.Now()

	gen := NewGenerator(f)
	parts := gen.Partitions()
	total := gen.Count()

	log.Info(LogMsgSearchStarted,
		"candidates", total,
		"partitions", len(parts),
		"workers", e.pool.Workers(),
		"ranking", f.Ranking.Names())

	partials := make([]partial, len(parts))
	var done atomic.Uint64
	jobs := make([]worker.Job, len(parts))
	for i, p := range parts {
		jobs[i] = worker.JobFunc(func(ctx context.Context) error {
			if err := e.searchPartition(ctx, gen, f, p, &partials[i]); err != nil {
				return err
			}
			if e.progress != nil {
				e.progress(done.Add(partials[i].evaluated), total)
			}
			return nil
		})
	}

	if err := e.pool.Run(ctx, jobs); err != nil {
		log.Warn(LogMsgSearchAborted, "error", err, "elapsed", time.Since(start))
		return nil, err
	}

	stats := Stats{
		Candidates: total,
		Partitions: len(parts),
		Workers:    e.pool.Workers(),
	}
	best := -1
	for i := range partials {
		p := &partials[i]
		stats.Evaluated += p.evaluated
		stats.Admitted += p.admitted
		if !p.found {
			continue
		}
		if best < 0 || f.Ranking.Better(&p.score, &partials[best].score) {
			best = i
		}
	}
	stats.Elapsed = time.Since(start)

	if best < 0 {
		log.Info(LogMsgSearchNoCandidate,
			"evaluated", stats.Evaluated,
			"elapsed", stats.Elapsed)
		return nil, nil
	}

	winner := &partials[best]
	mods := make([]domain.Modifier, len(winner.seq))
	for i, m := range winner.seq {
		mods[i] = f.Modifiers[m]
	}
	res := e.result(f.BaseItems[parts[best].Base], mods, &winner.score)
	res.Stats = stats

	log.Info(LogMsgSearchCompleted,
		"evaluated", stats.Evaluated,
		"admitted", stats.Admitted,
		"base_item", res.BaseItem.Name,
		"profit", res.Profit,
		"elapsed", stats.Elapsed)

	return res, nil
}

// searchPartition folds p into out in generation order, replacing the
// incumbent only with a strictly better candidate.
func (e *Engine) searchPartition(ctx context.Context, gen *Generator, f *Filter, p Partition, out *partial) error {
	base := &gen.bases[p.Base]
	var ctxErr error

	gen.walk(p, func(seq []int, set property.Set, cost int64) bool {
		out.evaluated++
		if out.evaluated%cancelCheckInterval == 0 {
			if ctxErr = ctx.Err(); ctxErr != nil {
				return false
			}
		}

		if !f.Constraints.Admit(set) {
			return true
		}
		out.admitted++

		s := e.scorer.Score(base, set, cost, len(seq))
		if !out.found || f.Ranking.Better(&s, &out.score) {
			out.found = true
			out.score = s
			out.seq = append(out.seq[:0], seq...)
		}
		return true
	})

	if ctxErr == nil {
		ctxErr = ctx.Err()
	}
	return ctxErr
}

// Evaluate mixes and prices one given candidate.
func (e *Engine) Evaluate(base domain.BaseItem, modifiers []domain.Modifier) *Result {
	set := mixing.Mix(&base, modifiers)
	s := e.scorer.Score(&base, set, Cost(modifiers), len(modifiers))
	return e.result(base, slices.Clone(modifiers), &s)
}

func (e *Engine) result(base domain.BaseItem, mods []domain.Modifier, s *Score) *Result {
	return &Result{
		BaseItem:   base,
		Modifiers:  mods,
		Properties: s.Properties.Properties(e.catalog),
		Cost:       s.Cost,
		SellPrice:  s.SellPrice,
		Profit:     s.Profit,
		Multiplier: s.Multiplier(),
	}
}
