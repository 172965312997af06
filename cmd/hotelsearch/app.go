package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/hotelsearch/internal/config"
	dbElastic "github.com/kailas-cloud/hotelsearch/internal/db/elastic"
	dbRedis "github.com/kailas-cloud/hotelsearch/internal/db/redis"
	dbSqlite "github.com/kailas-cloud/hotelsearch/internal/db/sqlite"
	"github.com/kailas-cloud/hotelsearch/internal/metrics"
	documentrepo "github.com/kailas-cloud/hotelsearch/internal/repository/document"
	hotelrepo "github.com/kailas-cloud/hotelsearch/internal/repository/hotel"
	searchrepo "github.com/kailas-cloud/hotelsearch/internal/repository/search"
	"github.com/kailas-cloud/hotelsearch/internal/repository/suggestcache"
	healthuc "github.com/kailas-cloud/hotelsearch/internal/usecase/health"
	indexinguc "github.com/kailas-cloud/hotelsearch/internal/usecase/indexing"
	searchuc "github.com/kailas-cloud/hotelsearch/internal/usecase/search"
)

// app is the composition root: one engine client, one sqlite handle and an
// optional redis client, shared by every repository.
type app struct {
	engine *dbElastic.Store
	db     *dbSqlite.DB
	cache  *dbRedis.Store

	search   *searchuc.Service
	indexing *indexinguc.Service
	health   *healthuc.Service
}

func newApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (*app, error) {
	metrics.Register()

	a := &app{}
	ok := false
	defer func() {
		if !ok {
			a.close()
		}
	}()

	engine, err := dbElastic.NewStore(dbElastic.Config{
		Addrs:      cfg.Elasticsearch.Addrs,
		Username:   cfg.Elasticsearch.Username,
		Password:   cfg.Elasticsearch.Password,
		MaxRetries: cfg.Elasticsearch.MaxRetries,
	})
	if err != nil {
		return nil, fmt.Errorf("create search engine store: %w", err)
	}
	a.engine = engine

	readiness := time.Duration(cfg.Elasticsearch.ReadinessTimeout) * time.Second
	if err := engine.WaitForReady(ctx, readiness); err != nil {
		return nil, fmt.Errorf("search engine not ready: %w", err)
	}
	logger.Info("Connected to search engine", zap.Strings("addrs", cfg.Elasticsearch.Addrs))

	database, err := dbSqlite.Open(dbSqlite.Config{Path: cfg.Database.Path})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	a.db = database

	hotels := hotelrepo.New(database)
	if err := hotels.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	logger.Info("Opened hotel database", zap.String("path", cfg.Database.Path))

	index := cfg.Elasticsearch.Index
	searches := searchrepo.New(engine, index)
	documents := documentrepo.New(engine, index)

	var suggester searchuc.Suggester = searches
	if cfg.Cache.Enabled() {
		cache, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			return nil, fmt.Errorf("create cache store: %w", err)
		}
		a.cache = cache

		ttl := time.Duration(cfg.Cache.SuggestionTTLSec) * time.Second
		suggester = suggestcache.New(searches, cache, ttl, metrics.SuggestionCacheTotal, logger)
		logger.Info("Suggestion cache enabled",
			zap.Strings("addrs", cfg.Cache.Addrs),
			zap.Duration("ttl", ttl),
		)
	}

	a.search = searchuc.New(searches, suggester, logger)

	a.indexing, err = indexinguc.New(hotels, documents,
		cfg.Indexing.Workers, cfg.Indexing.BatchSize,
		metrics.IndexedDocumentsTotal, logger)
	if err != nil {
		return nil, fmt.Errorf("create indexing service: %w", err)
	}

	// Pass a nil interface, not a typed nil pointer, when the cache is disabled.
	var cachePinger healthuc.Pinger
	if a.cache != nil {
		cachePinger = a.cache
	}
	a.health = healthuc.New(engine, database, cachePinger)

	ok = true
	return a, nil
}

func (a *app) close() {
	if a.indexing != nil {
		a.indexing.Close()
	}
	if a.cache != nil {
		a.cache.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
	if a.engine != nil {
		a.engine.Close()
	}
}
