package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/aristotle/internal/config"
	"github.com/kailas-cloud/aristotle/internal/db"
	dbBleve "github.com/kailas-cloud/aristotle/internal/db/bleve"
	dbElastic "github.com/kailas-cloud/aristotle/internal/db/elastic"
	dbRedis "github.com/kailas-cloud/aristotle/internal/db/redis"
	logpkg "github.com/kailas-cloud/aristotle/internal/logger"
	"github.com/kailas-cloud/aristotle/internal/metrics"
	"github.com/kailas-cloud/aristotle/internal/repository/rescache"
	searchrepo "github.com/kailas-cloud/aristotle/internal/repository/search"
	healthuc "github.com/kailas-cloud/aristotle/internal/usecase/health"
	searchuc "github.com/kailas-cloud/aristotle/internal/usecase/search"
)

// readiness is implemented by backends that need to wait for a remote peer.
type readiness interface {
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// app is the composition root shared by every command.
type app struct {
	env      string
	cfg      config.Config
	logger   *zap.Logger
	executor db.Executor
	cache    *dbRedis.Store
	search   *searchuc.Service
	health   *healthuc.Service
}

func newApp(ctx context.Context, env string) (*app, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	a := &app{env: env, cfg: cfg, logger: logger}
	if err := a.connect(ctx); err != nil {
		a.close()
		return nil, err
	}
	a.wire()
	return a, nil
}

// connect opens the search backend and, when enabled, the response cache.
func (a *app) connect(ctx context.Context) error {
	var err error
	switch a.cfg.Backend.Driver {
	case config.DriverElastic:
		a.executor, err = dbElastic.NewStore(dbElastic.Config{
			URLs:     a.cfg.Backend.URLs,
			Username: a.cfg.Backend.Username,
			Password: a.cfg.Backend.Password,
			Sniff:    a.cfg.Backend.Sniff,
		})
	case config.DriverBleve:
		a.executor, err = dbBleve.NewStore(dbBleve.Config{Path: a.cfg.Backend.BlevePath})
	default:
		err = fmt.Errorf("unknown backend driver %q", a.cfg.Backend.Driver)
	}
	if err != nil {
		return fmt.Errorf("creating %s backend: %w", a.cfg.Backend.Driver, err)
	}

	timeout := time.Duration(a.cfg.Backend.ReadinessTimeout) * time.Second
	if r, ok := a.executor.(readiness); ok {
		if err := r.WaitForReady(ctx, timeout); err != nil {
			return fmt.Errorf("backend not ready: %w", err)
		}
	}
	a.logger.Info("Connected to search backend",
		zap.String("driver", a.cfg.Backend.Driver),
		zap.Strings("urls", a.cfg.Backend.URLs),
		zap.String("index", a.cfg.Backend.Index),
	)

	if !a.cfg.Cache.Enabled {
		return nil
	}
	a.cache, err = dbRedis.NewStore(dbRedis.Config{
		Addrs:       a.cfg.Cache.Addrs,
		Password:    a.cfg.Cache.Password,
		Standalone:  a.cfg.Cache.Standalone,
		DialTimeout: timeout,
	})
	if err != nil {
		return fmt.Errorf("creating cache: %w", err)
	}
	if err := a.cache.WaitForReady(ctx, timeout); err != nil {
		return fmt.Errorf("cache not ready: %w", err)
	}
	a.logger.Info("Connected to response cache", zap.Strings("addrs", a.cfg.Cache.Addrs))
	return nil
}

// wire assembles repository decorators and services:
// Executor -> Instrumented -> Repo -> (Cached) -> Service.
func (a *app) wire() {
	metrics.RegisterSearchMetrics()

	instrumented := searchrepo.NewInstrumentedStore(a.executor, a.cfg.Backend.Driver, a.logger)
	var repo searchuc.Repository = searchrepo.New(instrumented, a.cfg.Backend.Index, a.cfg.Search.FacetSize)

	// Pass a nil interface, not a typed nil pointer, when the cache is off.
	var cachePinger healthuc.Pinger
	if a.cache != nil {
		ttl := time.Duration(a.cfg.Cache.TTLSec) * time.Second
		repo = rescache.New(repo, a.cache, ttl, metrics.CacheTotal, a.logger)
		cachePinger = a.cache
	}

	a.search = searchuc.New(repo, searchuc.Config{
		SpecialCollectionsLabel: a.cfg.Search.SpecialCollectionsLabel,
		MusicLibraryLabel:       a.cfg.Search.MusicLibraryLabel,
	})
	a.health = healthuc.New(a.executor, cachePinger)
}

func (a *app) close() {
	if a.cache != nil {
		a.cache.Close()
	}
	if a.executor != nil {
		a.executor.Close()
	}
	_ = a.logger.Sync()
}
