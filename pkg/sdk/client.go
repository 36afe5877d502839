package fedsearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/fedsearch/internal/adapter"
	"github.com/kailas-cloud/fedsearch/internal/db"
	dbRedis "github.com/kailas-cloud/fedsearch/internal/db/redis"
	"github.com/kailas-cloud/fedsearch/internal/domain/entity"
	"github.com/kailas-cloud/fedsearch/internal/domain/record"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/request"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/result"
	"github.com/kailas-cloud/fedsearch/internal/matcher"
	"github.com/kailas-cloud/fedsearch/internal/repository/fixture"
	recordrepo "github.com/kailas-cloud/fedsearch/internal/repository/record"
	healthuc "github.com/kailas-cloud/fedsearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/fedsearch/internal/usecase/search"
)

const (
	driverValkey   = "valkey"
	driverRedis    = "redis"
	driverFixture  = "fixture"
	driverProvider = "provider"

	defaultReadinessTimeout = 10 * time.Second
	defaultKeyPrefix        = "fedsearch:"
)

// Internal interfaces, swapped for mocks in tests.
type searchUseCase interface {
	Search(ctx context.Context, req *request.Request) (result.Response, error)
	Suggest(ctx context.Context, partial string, limit int) ([]string, error)
	Trending() []string
	Types() []entity.Type
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

type recordWriter interface {
	PutMany(ctx context.Context, kind entity.Type, raws []record.Raw) (int, error)
	Delete(ctx context.Context, kind entity.Type, id string) error
}

// Client is the fedsearch SDK entry point. It is safe for concurrent use.
type Client struct {
	store     db.Store // nil unless backed by Valkey/Redis
	records   recordWriter
	searchSvc searchUseCase
	healthSvc healthUseCase
	threshold float64
	obs       *observer
}

// New creates a Client. With a store driver it connects and waits for readiness,
// bounded by ctx and the readiness timeout.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		keyPrefix:        defaultKeyPrefix,
		readinessTimeout: defaultReadinessTimeout,
		candidateLimit:   adapter.DefaultCandidateLimit,
		threshold:        matcher.DefaultThreshold,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	defaultTypes, err := entity.ParseList(cfg.defaultTypes)
	if err != nil {
		return nil, fmt.Errorf("fedsearch: default types: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	c := &Client{threshold: cfg.threshold, obs: obs}
	provider, err := c.openProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}

	registry := adapter.NewDefaultRegistry(
		provider, matcher.NewFuzzy(), matcher.DefaultOptions(), cfg.candidateLimit, zap.NewNop(),
	)
	c.searchSvc = searchuc.New(registry, searchuc.Config{
		DefaultTypes: defaultTypes,
		Trending:     cfg.trending,
		Threshold:    &c.threshold,
	}, zap.NewNop())

	var pinger healthuc.StorePinger
	if c.store != nil {
		pinger = c.store
	}
	c.healthSvc = healthuc.New(pinger, registry)
	return c, nil
}

func (c *Client) openProvider(ctx context.Context, cfg *clientConfig) (adapter.Provider, error) {
	switch cfg.driver {
	case driverValkey, driverRedis:
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("fedsearch: create %s store: %w", cfg.driver, err)
		}
		if err := store.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
			store.Close()
			return nil, fmt.Errorf("fedsearch: %s not ready: %w", cfg.driver, err)
		}
		repo := recordrepo.New(store, cfg.keyPrefix, zap.NewNop())
		c.store = store
		c.records = repo
		return repo, nil
	case driverFixture:
		repo, err := fixture.Load(cfg.fixturesPath)
		if err != nil {
			return nil, fmt.Errorf("fedsearch: %w", err)
		}
		return repo, nil
	case driverProvider:
		if cfg.provider == nil {
			return nil, errors.New("fedsearch: WithProvider needs a non-nil provider")
		}
		return providerAdapter{inner: cfg.provider}, nil
	case "":
		return nil, errors.New("fedsearch: record source required (use WithValkey, WithRedis, WithFixtures or WithProvider)")
	default:
		return nil, fmt.Errorf("fedsearch: unknown driver %q", cfg.driver)
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Search runs a federated search.
func (c *Client) Search(ctx context.Context, sr SearchRequest) (resp *SearchResponse, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	threshold := c.threshold
	if sr.FuzzyThreshold != nil {
		threshold = *sr.FuzzyThreshold
	}
	req, err := request.New(request.Params{
		Query:     sr.Query,
		Types:     sr.Types,
		Filters:   sr.Filters,
		Limit:     sr.Limit,
		Offset:    sr.Offset,
		SortBy:    sr.SortBy,
		Threshold: &threshold,
	})
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	out, err := c.searchSvc.Search(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	c.obs.observeResults("search", out.Total)
	return responseFromDomain(out), nil
}

// Suggest returns up to limit distinct titles containing partial. limit <= 0 uses the default.
func (c *Client) Suggest(ctx context.Context, partial string, limit int) (out []string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("suggest", start, err) }()

	out, err = c.searchSvc.Suggest(ctx, partial, limit)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}
	c.obs.observeResults("suggest", len(out))
	return out, nil
}

// Trending returns the configured trending searches.
func (c *Client) Trending() []string {
	return c.searchSvc.Trending()
}

// Types returns the searchable entity types in merge order.
func (c *Client) Types() []string {
	types := c.searchSvc.Types()
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = t.String()
	}
	return out
}

// Index stores records of one type. Records need an "id". Requires a store driver.
func (c *Client) Index(ctx context.Context, kind string, records ...Record) (n int, err error) {
	start := time.Now()
	defer func() { c.obs.observe("index", start, err) }()

	if c.records == nil {
		return 0, ErrReadOnly
	}
	t, err := entity.Parse(kind)
	if err != nil {
		return 0, fmt.Errorf("index: %w", err)
	}
	raws := make([]record.Raw, len(records))
	for i, r := range records {
		raws[i] = record.Raw(r)
	}
	n, err = c.records.PutMany(ctx, t, raws)
	if err != nil {
		return 0, fmt.Errorf("index: %w", err)
	}
	return n, nil
}

// Remove deletes one record. Requires a store driver.
func (c *Client) Remove(ctx context.Context, kind, id string) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("remove", start, err) }()

	if c.records == nil {
		return ErrReadOnly
	}
	t, err := entity.Parse(kind)
	if err != nil {
		return fmt.Errorf("remove: %w", err)
	}
	if err := c.records.Delete(ctx, t, id); err != nil {
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}

// Ping checks store connectivity. Always succeeds without a store.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if c.store == nil {
		return nil
	}
	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Health checks the health of all system components.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}
