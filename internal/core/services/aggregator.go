package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/finvo-cli/internal/core/domain"
	"github.com/custodia-labs/finvo-cli/internal/core/ports/driven"
	"github.com/custodia-labs/finvo-cli/internal/core/ports/driving"
	"github.com/custodia-labs/finvo-cli/internal/logger"
)

// Ensure FanOutAggregator implements the interface.
var _ driving.SearchAggregator = (*FanOutAggregator)(nil)

// DefaultPerDomainLimit caps the results taken from each domain.
const DefaultPerDomainLimit = 5

// FanOutAggregator issues a query to every domain searcher concurrently
// and merges the settled outcomes into one batch.
type FanOutAggregator struct {
	searchers []driven.DomainSearcher

	mu    sync.RWMutex
	limit int

	log logger.Scoped
}

// NewFanOutAggregator creates an aggregator over searchers.
// Searchers are ordered by the fixed domain order; each domain may appear once.
func NewFanOutAggregator(searchers []driven.DomainSearcher, limit int) (*FanOutAggregator, error) {
	if len(searchers) == 0 {
		return nil, domain.ErrNoSearchers
	}

	seen := make(map[domain.DomainType]bool, len(searchers))
	for _, s := range searchers {
		d := s.Domain()
		if !d.IsValid() {
			return nil, fmt.Errorf("searcher %q: %w", d, domain.ErrUnsupportedType)
		}
		if seen[d] {
			return nil, fmt.Errorf("searcher %q: %w", d, domain.ErrDuplicateDomain)
		}
		seen[d] = true
	}

	ordered := make([]driven.DomainSearcher, len(searchers))
	copy(ordered, searchers)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Domain().Order() < ordered[j].Domain().Order()
	})

	if limit <= 0 {
		limit = DefaultPerDomainLimit
	}

	return &FanOutAggregator{
		searchers: ordered,
		limit:     limit,
		log:       logger.For("aggregator"),
	}, nil
}

// Domains returns the searched domains in fixed order.
func (a *FanOutAggregator) Domains() []domain.DomainType {
	out := make([]domain.DomainType, len(a.searchers))
	for i, s := range a.searchers {
		out[i] = s.Domain()
	}
	return out
}

// Limit returns the per-domain cap.
func (a *FanOutAggregator) Limit() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.limit
}

// SetLimit changes the per-domain cap for subsequent searches.
func (a *FanOutAggregator) SetLimit(n int) {
	if n <= 0 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.limit = n
}

// Search issues q to every domain and waits until all of them settled.
// A failing domain never aborts or delays the others.
func (a *FanOutAggregator) Search(ctx context.Context, q domain.Query) domain.Batch {
	batch := domain.Batch{Generation: q.Generation, Query: q.Text}
	if err := ctx.Err(); err != nil {
		return cancelled(batch, err)
	}

	limit := a.Limit()
	a.log.Debug("generation %d: searching %d domains for %q", q.Generation, len(a.searchers), q.Text)

	results := make([][]domain.SearchResult, len(a.searchers))
	outcomes := make([]domain.DomainOutcome, len(a.searchers))

	var g errgroup.Group
	for i, s := range a.searchers {
		g.Go(func() error {
			res, err := a.searchOne(ctx, s, q.Text, limit)
			outcomes[i] = domain.DomainOutcome{Domain: s.Domain(), Count: len(res), Err: err}
			if err != nil {
				a.log.Warn("generation %d: %v", q.Generation, err)
				return nil
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return cancelled(batch, err)
	}

	batch.Domains = outcomes
	var errs []error
	for i, o := range outcomes {
		if o.Err != nil {
			errs = append(errs, o.Err)
			continue
		}
		batch.Results = append(batch.Results, results[i]...)
	}

	if len(errs) == len(a.searchers) {
		batch.Outcome = domain.OutcomeFailed
		batch.Err = errors.Join(append([]error{domain.ErrAllDomainsFailed}, errs...)...)
		a.log.Warn("generation %d: all domains failed", q.Generation)
		return batch
	}

	batch.Outcome = domain.OutcomeSettled
	a.log.Debug("generation %d: %d results, %d failed domains", q.Generation, len(batch.Results), len(errs))
	return batch
}

// searchOne runs one domain search, converting a panic into a failure.
func (a *FanOutAggregator) searchOne(
	ctx context.Context, s driven.DomainSearcher, text string, limit int,
) (res []domain.SearchResult, err error) {
	d := s.Domain()
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("%s: %w: %v", d, domain.ErrSearchPanic, r)
		}
	}()

	records, err := s.Search(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d, err)
	}

	res = make([]domain.SearchResult, 0, min(limit, len(records)))
	for _, rec := range records {
		if len(res) == limit {
			break
		}
		if rec == nil || rec.Domain() != d {
			a.log.Warn("%s: dropped record of foreign domain %v", d, rec)
			continue
		}
		res = append(res, rec.Result())
	}
	return res, nil
}

func cancelled(b domain.Batch, err error) domain.Batch {
	b.Outcome = domain.OutcomeCancelled
	b.Err = err
	b.Results = nil
	return b
}
