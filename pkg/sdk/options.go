package fedsearch

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver       string // valkey, redis, fixture or provider
	addrs        []string
	password     string
	keyPrefix    string
	fixturesPath string
	provider     Provider

	readinessTimeout time.Duration

	defaultTypes   []string
	candidateLimit int
	threshold      float64
	trending       []string

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithValkey reads records from a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverValkey
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis reads records from a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverRedis
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithKeyPrefix namespaces store keys. Default: "fedsearch:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithFixtures serves records from a YAML fixture file instead of a store.
func WithFixtures(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverFixture
		c.fixturesPath = path
	})
}

// WithProvider serves records from a caller-supplied Provider.
func WithProvider(p Provider) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverProvider
		c.provider = p
	})
}

// WithReadinessTimeout bounds the initial store readiness wait. Default: 10s.
func WithReadinessTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.readinessTimeout = d
	})
}

// WithDefaultTypes restricts requests that name no types. Default: every type.
func WithDefaultTypes(types ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultTypes = types
	})
}

// WithCandidateLimit caps the records each adapter fetches per query. Default: 100.
func WithCandidateLimit(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.candidateLimit = n
	})
}

// WithThreshold sets the fuzzy threshold used when a request has none. Default: 0.3.
func WithThreshold(t float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.threshold = t
	})
}

// WithTrending sets the list returned by Trending.
func WithTrending(queries ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.trending = queries
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
