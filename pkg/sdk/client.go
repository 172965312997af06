package hotelsearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	dbElastic "github.com/kailas-cloud/hotelsearch/internal/db/elastic"
	dbRedis "github.com/kailas-cloud/hotelsearch/internal/db/redis"
	"github.com/kailas-cloud/hotelsearch/internal/domain"
	"github.com/kailas-cloud/hotelsearch/internal/domain/search/params"
	"github.com/kailas-cloud/hotelsearch/internal/domain/search/result"
	searchrepo "github.com/kailas-cloud/hotelsearch/internal/repository/search"
	"github.com/kailas-cloud/hotelsearch/internal/repository/suggestcache"
	healthuc "github.com/kailas-cloud/hotelsearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/hotelsearch/internal/usecase/search"
)

const (
	defaultIndex            = "hotel"
	defaultMaxRetries       = 3
	defaultReadinessTimeout = 10 * time.Second
	defaultSuggestionTTL    = 5 * time.Minute
)

// Internal interfaces, swapped for mocks in tests.
type searchUseCase interface {
	Search(ctx context.Context, p params.Params) (result.Page, error)
	Facets(ctx context.Context, p params.Params) (result.Facets, error)
	Suggest(ctx context.Context, prefix string) ([]string, error)
}

type pinger interface {
	Ping(ctx context.Context) error
}

// Client is the hotelsearch SDK entry point. It is safe for concurrent use.
type Client struct {
	engine    pinger
	closers   []func()
	searchSvc searchUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client and waits for the cluster to answer.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		index:      defaultIndex,
		maxRetries: defaultMaxRetries,
		readiness:  defaultReadinessTimeout,
		cacheTTL:   defaultSuggestionTTL,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("hotelsearch: cluster address required (use WithElasticsearch)")
	}

	engine, err := dbElastic.NewStore(dbElastic.Config{
		Addrs:      cfg.addrs,
		Username:   cfg.username,
		Password:   cfg.password,
		MaxRetries: cfg.maxRetries,
	})
	if err != nil {
		return nil, fmt.Errorf("hotelsearch: create engine store: %w", err)
	}
	if err := engine.WaitForReady(ctx, cfg.readiness); err != nil {
		engine.Close()
		return nil, fmt.Errorf("hotelsearch: cluster not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		engine.Close()
		return nil, err
	}

	c := &Client{engine: engine, closers: []func(){engine.Close}, obs: obs}

	searches := searchrepo.New(engine, cfg.index)
	var suggester searchuc.Suggester = searches
	var cachePinger healthuc.Pinger
	if len(cfg.cacheAddrs) > 0 {
		cache, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.cacheAddrs,
			Password: cfg.cachePassword,
		})
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("hotelsearch: create cache store: %w", err)
		}
		c.closers = append(c.closers, cache.Close)
		cachePinger = cache
		suggester = suggestcache.New(searches, cache, cfg.cacheTTL, nil, zap.NewNop())
	}

	c.searchSvc = searchuc.New(searches, suggester, zap.NewNop())
	c.healthSvc = healthuc.New(engine, nil, cachePinger)
	return c, nil
}

// Close releases all connections.
func (c *Client) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

// Ping checks cluster connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe(opPing, start, err) }()

	if err = c.engine.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search returns one ranked page of hotels.
func (c *Client) Search(ctx context.Context, p SearchParams) (_ Page, err error) {
	start := time.Now()
	defer func() { c.obs.observe(opSearch, start, err) }()

	if err = p.validate(); err != nil {
		return Page{}, err
	}
	res, err := c.searchSvc.Search(ctx, p.toDomain())
	if err != nil {
		return Page{}, fmt.Errorf("search: %w", err)
	}
	return pageFromDomain(res), nil
}

// Facets returns the brand, city and star rating values present in the
// result set p would produce. Paging fields are ignored.
func (c *Client) Facets(ctx context.Context, p SearchParams) (_ Facets, err error) {
	start := time.Now()
	defer func() { c.obs.observe(opFacets, start, err) }()

	res, err := c.searchSvc.Facets(ctx, p.toDomain())
	if err != nil {
		return nil, fmt.Errorf("facets: %w", err)
	}
	return Facets(res), nil
}

// Suggest completes prefix into at most ten hotel names.
func (c *Client) Suggest(ctx context.Context, prefix string) (_ []string, err error) {
	start := time.Now()
	defer func() { c.obs.observe(opSuggest, start, err) }()

	out, err := c.searchSvc.Suggest(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}
	return out, nil
}

func (p SearchParams) validate() error {
	if p.Page < 0 {
		return fmt.Errorf("%w: page must not be negative", domain.ErrInvalidRequest)
	}
	if p.Size < 0 {
		return fmt.Errorf("%w: size must not be negative", domain.ErrInvalidRequest)
	}
	return nil
}
