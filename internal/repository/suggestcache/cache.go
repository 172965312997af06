package suggestcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/hotelsearch/internal/db"
	"github.com/kailas-cloud/hotelsearch/internal/domain"
	"github.com/kailas-cloud/hotelsearch/internal/domain/search/query"
)

var cacheKeyPrefix = domain.KeyPrefix + "suggest:"

// store is the consumer interface for the suggestion cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// suggester is the wrapped completion source.
type suggester interface {
	Suggest(ctx context.Context, req query.Request) ([]string, error)
}

// CachedSuggester caches completion results in a key-value store.
// Cache failures never fail a request; they are logged and bypassed.
type CachedSuggester struct {
	inner      suggester
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner suggester,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedSuggester {
	return &CachedSuggester{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Suggest returns cached suggestions or calls the inner suggester.
// Only successful results are cached.
func (c *CachedSuggester) Suggest(ctx context.Context, req query.Request) ([]string, error) {
	key, err := cacheKey(req)
	if err != nil {
		c.logger.Warn("Failed to derive suggestion cache key", zap.Error(err))
		return c.inner.Suggest(ctx, req)
	}

	if out, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return out, nil
	}
	c.incCache("miss")

	out, err := c.inner.Suggest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}

	c.putToCache(ctx, key, out)
	return out, nil
}

func (c *CachedSuggester) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

// cacheKey hashes the rendered request. encoding/json sorts map keys, so
// equal requests always produce equal keys.
func cacheKey(req query.Request) (string, error) {
	body, err := json.Marshal(req.Body())
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}
	h := sha256.Sum256(body)
	return cacheKeyPrefix + hex.EncodeToString(h[:]), nil
}

func (c *CachedSuggester) getFromCache(ctx context.Context, key string) ([]string, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached suggestions", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		c.logger.Warn("Failed to parse cached suggestions", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if out == nil {
		out = []string{}
	}
	return out, true
}

func (c *CachedSuggester) putToCache(ctx context.Context, key string, out []string) {
	data, err := json.Marshal(out)
	if err != nil {
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache suggestions", zap.String("key", key), zap.Error(err))
	}
}
