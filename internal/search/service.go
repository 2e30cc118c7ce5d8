package search

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/osse101/MixOptimizer_Go/internal/domain"
	"github.com/osse101/MixOptimizer_Go/internal/logger"
	"github.com/osse101/MixOptimizer_Go/internal/metrics"
)

// Searcher runs a single search. *Engine implements it.
type Searcher interface {
	Search(ctx context.Context, f *Filter) (*Result, error)
	Evaluate(base domain.BaseItem, modifiers []domain.Modifier) *Result
}

// Service is the search entry point used by the CLI and HTTP surfaces.
type Service interface {
	// Search returns the best admissible candidate of f, or nil when there
	// is none.
	Search(ctx context.Context, f *Filter) (*Result, error)
	// Evaluate prices one given mix.
	Evaluate(ctx context.Context, base domain.BaseItem, modifiers []domain.Modifier) *Result
	// NewFilterBuilder starts a filter against the service's catalog.
	NewFilterBuilder() *FilterBuilder
	// Catalog returns the catalog searches run against.
	Catalog() Catalog
}

// Fingerprinter identifies catalog content.
type Fingerprinter interface {
	Fingerprint() string
}

// Observer is told when the service starts and finishes a search run.
// Cache hits and shared runs are not reported. Calls come from the
// goroutine running the search and must not block.
type Observer interface {
	SearchStarted(ctx context.Context, f *Filter)
	SearchFinished(ctx context.Context, f *Filter, res *Result, err error)
}

// ServiceConfig tunes result caching.
type ServiceConfig struct {
	CacheSize int
	CacheTTL  time.Duration

	// Observer is optional.
	Observer Observer
}

type service struct {
	catalog   Catalog
	searcher  Searcher
	cache     *resultCache
	group     singleflight.Group
	catalogFP string
	observer  Observer
}

// NewService wraps searcher with a result cache and duplicate suppression.
// Identical concurrent searches share one run. A non-positive cache size
// uses DefaultCacheSize.
func NewService(c Catalog, searcher Searcher, cfg ServiceConfig) Service {
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultCacheSize
	}
	s := &service{
		catalog:  c,
		searcher: searcher,
		cache:    newResultCache(cfg.CacheSize, cfg.CacheTTL),
		observer: cfg.Observer,
	}
	if fp, ok := c.(Fingerprinter); ok {
		s.catalogFP = fp.Fingerprint()
	}
	return s
}

func (s *service) Catalog() Catalog {
	return s.catalog
}

func (s *service) NewFilterBuilder() *FilterBuilder {
	return NewFilterBuilder(s.catalog)
}

func (s *service) Search(ctx context.Context, f *Filter) (*Result, error) {
	log := logger.FromContext(ctx)
	key := cacheKey(s.catalogFP, f.Fingerprint())

	if res, ok := s.cache.Get(key); ok {
		metrics.RecordCacheLookup(true)
		log.Debug(LogMsgCacheHit, "key", key)
		return res, nil
	}
	metrics.RecordCacheLookup(false)

	// Sharers of a run see its error, including the starter's cancellation.
	v, err, shared := s.group.Do(key, func() (any, error) {
		if s.observer != nil {
			s.observer.SearchStarted(ctx, f)
		}
		start := time.Now()
		res, err := s.searcher.Search(ctx, f)
		s.record(f, res, err, time.Since(start))
		if s.observer != nil {
			s.observer.SearchFinished(ctx, f, res, err)
		}
		if err != nil {
			return nil, err
		}
		s.cache.Set(key, res)
		return res, nil
	})
	if shared {
		metrics.SearchesShared.Inc()
		log.Debug(LogMsgSearchShared, "key", key)
	}
	if err != nil {
		return nil, err
	}
	res, _ := v.(*Result)
	return res, nil
}

func (s *service) record(f *Filter, res *Result, err error, elapsed time.Duration) {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		metrics.SearchesTotal.WithLabelValues(metrics.OutcomeCancelled).Inc()
	case err != nil:
		metrics.SearchesTotal.WithLabelValues(metrics.OutcomeError).Inc()
	case res == nil:
		// Nothing was admitted, so every candidate was evaluated and rejected.
		metrics.RecordSearch(metrics.OutcomeNone, elapsed.Seconds(), NewGenerator(f).Count(), 0)
	default:
		metrics.RecordSearch(metrics.OutcomeFound, elapsed.Seconds(), res.Stats.Evaluated, res.Stats.Admitted)
	}
}

func (s *service) Evaluate(ctx context.Context, base domain.BaseItem, modifiers []domain.Modifier) *Result {
	metrics.MixesEvaluated.Inc()
	res := s.searcher.Evaluate(base, modifiers)
	logger.FromContext(ctx).Debug(LogMsgMixEvaluated,
		"base_item", base.Name,
		"modifiers", len(modifiers),
		"profit", res.Profit)
	return res
}
