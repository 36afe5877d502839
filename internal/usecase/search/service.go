package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/fedsearch/internal/domain"
	"github.com/kailas-cloud/fedsearch/internal/domain/entity"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/request"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/result"
	"github.com/kailas-cloud/fedsearch/internal/metrics"
)

// Config tunes the orchestrator.
type Config struct {
	// DefaultTypes are searched when a request names none. Empty means every registered type.
	DefaultTypes []entity.Type
	// SuggestLimit is the default number of suggestions.
	SuggestLimit int
	// SuggestSearchLimit caps the federated search behind a suggestion.
	SuggestSearchLimit int
	// Trending is the static list served by Trending.
	Trending []string
	// Threshold is the fuzzy threshold for suggestion searches. Nil uses the request default.
	Threshold *float64
}

// Service runs federated searches across all registered entity types.
type Service struct {
	registry Registry
	cfg      Config
	logger   *zap.Logger
	now      func() time.Time
}

// New creates a search service.
func New(registry Registry, cfg Config, logger *zap.Logger) *Service {
	if cfg.SuggestLimit <= 0 {
		cfg.SuggestLimit = DefaultSuggestLimit
	}
	if cfg.SuggestLimit > MaxSuggestLimit {
		cfg.SuggestLimit = MaxSuggestLimit
	}
	if cfg.SuggestSearchLimit <= 0 {
		cfg.SuggestSearchLimit = DefaultSuggestSearchLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{registry: registry, cfg: cfg, logger: logger, now: time.Now}
}

// Types returns the searchable entity kinds in merge order.
func (s *Service) Types() []entity.Type {
	return s.registry.Types()
}

// Search fans the query out to every requested type, merges, filters, sorts,
// facets and paginates the hits.
func (s *Service) Search(ctx context.Context, req *request.Request) (result.Response, error) {
	start := time.Now()

	resp, err := s.search(ctx, req)
	elapsed := time.Since(start)
	metrics.SearchDuration.Observe(elapsed.Seconds())
	switch {
	case err != nil:
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		return result.Response{}, err
	case resp.Total == 0:
		metrics.SearchRequestsTotal.WithLabelValues("empty").Inc()
	default:
		metrics.SearchRequestsTotal.WithLabelValues("ok").Inc()
	}
	resp.QueryTime = elapsed
	return resp, nil
}

func (s *Service) search(ctx context.Context, req *request.Request) (result.Response, error) {
	types, err := s.resolveTypes(req.Types())
	if err != nil {
		return result.Response{}, err
	}

	if strings.TrimSpace(req.Query()) == "" {
		return result.Empty(0), nil
	}

	merged, err := s.fanOut(ctx, types, req)
	if err != nil {
		return result.Response{}, err
	}

	filtered := merged
	if !req.Filters().IsEmpty() {
		filtered = make([]result.Result, 0, len(merged))
		for _, r := range merged {
			if req.Filters().Matches(r.Metadata()) {
				filtered = append(filtered, r)
			}
		}
	}

	if err = sortResults(filtered, req.SortBy()); err != nil {
		return result.Response{}, err
	}

	facets := Aggregate(filtered, s.now())

	return result.Response{
		Results: paginate(filtered, req.Offset(), req.Limit()),
		Facets:  facets,
		Total:   len(filtered),
	}, nil
}

// resolveTypes picks the fan-out list. Unregistered kinds are rejected.
func (s *Service) resolveTypes(requested []entity.Type) ([]entity.Type, error) {
	registered := s.registry.Types()
	if len(requested) == 0 {
		if len(s.cfg.DefaultTypes) > 0 {
			requested = s.cfg.DefaultTypes
		} else {
			return registered, nil
		}
	}

	known := make(map[entity.Type]struct{}, len(registered))
	for _, t := range registered {
		known[t] = struct{}{}
	}
	for _, t := range requested {
		if _, ok := known[t]; !ok {
			return nil, domain.NewOptionError("type", t.String())
		}
	}
	return requested, nil
}

// fanOut searches every type concurrently. Results are merged in type order,
// not completion order.
func (s *Service) fanOut(
	ctx context.Context, types []entity.Type, req *request.Request,
) ([]result.Result, error) {
	if len(types) == 0 {
		return []result.Result{}, nil
	}
	slots := make([][]result.Result, len(types))

	var g errgroup.Group
	g.SetLimit(len(types))
	for i, kind := range types {
		g.Go(func() error {
			res, ok := s.registry.Search(ctx, kind, req.Query(), req.Filters(), req.Threshold())
			if !ok {
				return domain.NewOptionError("type", kind.String())
			}
			slots[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fan out: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("fan out: %w", err)
	}

	n := 0
	for _, slot := range slots {
		n += len(slot)
	}
	merged := make([]result.Result, 0, n)
	for _, slot := range slots {
		merged = append(merged, slot...)
	}

	s.logger.Debug("Federated search merged",
		zap.Int("types", len(types)),
		zap.Int("results", n),
	)
	return merged, nil
}

// paginate returns the [offset, offset+limit) window; an out-of-range offset yields an empty page.
func paginate(results []result.Result, offset, limit int) []result.Result {
	if offset >= len(results) {
		return []result.Result{}
	}
	end := min(offset+limit, len(results))
	page := make([]result.Result, end-offset)
	copy(page, results[offset:end])
	return page
}
