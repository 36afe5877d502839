package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/kailas-cloud/fedsearch/internal/adapter"
	"github.com/kailas-cloud/fedsearch/internal/config"
	"github.com/kailas-cloud/fedsearch/internal/db/redis"
	logpkg "github.com/kailas-cloud/fedsearch/internal/logger"
	"github.com/kailas-cloud/fedsearch/internal/matcher"
	"github.com/kailas-cloud/fedsearch/internal/metrics"
	"github.com/kailas-cloud/fedsearch/internal/repository/fixture"
	recordrepo "github.com/kailas-cloud/fedsearch/internal/repository/record"
	healthuc "github.com/kailas-cloud/fedsearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/fedsearch/internal/usecase/search"
)

// app is the composition root shared by every subcommand.
type app struct {
	env    string
	cfg    config.Config
	logger *zap.Logger

	// store and records are nil with the fixture driver.
	store   *redis.Store
	records *recordrepo.Repo

	search *searchuc.Service
	health *healthuc.Service
}

// loadConfig resolves --config or --env into a validated Config.
func loadConfig(c *cli.Command) (config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.LoadFile(path)
	}
	return config.Load(c.String("env"))
}

func bootstrap(ctx context.Context, c *cli.Command) (*app, error) {
	env := c.String("env")
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level := cfg.Logging.Level
	if override := c.String("log-level"); override != "" {
		level = override
	}
	logger, err := logpkg.NewLogger(env, level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	metrics.RegisterSearchMetrics()

	a := &app{env: env, cfg: cfg, logger: logger}
	provider, err := a.openProvider(ctx)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	defaultTypes, err := cfg.Search.Types()
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("default types: %w", err)
	}

	registry := adapter.NewDefaultRegistry(
		provider, matcher.NewFuzzy(), cfg.Search.MatcherOptions(), cfg.Search.CandidateLimit, logger,
	)
	threshold := cfg.Search.Threshold()
	a.search = searchuc.New(registry, searchuc.Config{
		DefaultTypes:       defaultTypes,
		SuggestLimit:       cfg.Search.SuggestLimit,
		SuggestSearchLimit: cfg.Search.SuggestSearchLimit,
		Trending:           cfg.Search.Trending,
		Threshold:          &threshold,
	}, logger)

	// A nil *redis.Store wrapped in the interface would not compare equal to nil.
	var pinger healthuc.StorePinger
	if a.store != nil {
		pinger = a.store
	}
	a.health = healthuc.New(pinger, registry)

	return a, nil
}

func (a *app) openProvider(ctx context.Context) (adapter.Provider, error) {
	sc := a.cfg.Store
	switch sc.Driver {
	case config.DriverFixture:
		repo, err := fixture.Load(sc.FixturesPath)
		if err != nil {
			return nil, fmt.Errorf("load fixtures: %w", err)
		}
		a.logger.Info("Loaded fixture records",
			zap.String("path", sc.FixturesPath),
			zap.Int("records", repo.Len()),
		)
		return repo, nil

	case config.DriverRedis, config.DriverValkey:
		store, err := redis.NewStore(redis.Config{
			Addrs:    sc.Addrs,
			Username: sc.Username,
			Password: sc.Password,
			DB:       sc.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("create %s store: %w", sc.Driver, err)
		}
		timeout := time.Duration(sc.ReadinessTimeout) * time.Second
		if err := store.WaitForReady(ctx, timeout); err != nil {
			store.Close()
			return nil, fmt.Errorf("%s not ready: %w", sc.Driver, err)
		}
		a.store = store
		a.records = recordrepo.New(store, sc.KeyPrefix, a.logger)
		a.logger.Info("Connected to record store",
			zap.String("driver", sc.Driver),
			zap.Strings("addrs", sc.Addrs),
		)
		return a.records, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", sc.Driver)
	}
}

// requireStore fails for commands that need a writable store.
func (a *app) requireStore() error {
	if a.records == nil {
		return errors.New("this command needs the redis or valkey store driver")
	}
	return nil
}

// Close releases the store connection and flushes logs.
func (a *app) Close() {
	if a.store != nil {
		a.store.Close()
	}
	_ = a.logger.Sync()
}
