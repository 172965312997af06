package suggestcache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/kailas-cloud/hotelsearch/internal/db"
	"github.com/kailas-cloud/hotelsearch/internal/domain/search/query"
)

func TestSuggest_MissThenStore(t *testing.T) {
	inner := &mockSuggester{result: []string{"Hilton", "Hanting"}}
	c, ms := newTestCache(t, inner)

	var storedKey string
	var storedVal []byte
	var storedTTL time.Duration
	ms.setFn = func(_ context.Context, key string, value []byte, ttl time.Duration) error {
		storedKey, storedVal, storedTTL = key, value, ttl
		return nil
	}

	got, err := c.Suggest(context.Background(), query.SuggestRequest("h"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || inner.calls != 1 {
		t.Fatalf("got %v after %d inner calls", got, inner.calls)
	}
	if !strings.HasPrefix(storedKey, "hotelsearch:suggest:") {
		t.Errorf("key = %q", storedKey)
	}
	if string(storedVal) != `["Hilton","Hanting"]` {
		t.Errorf("value = %s", storedVal)
	}
	if storedTTL != time.Minute {
		t.Errorf("ttl = %v, want 1m", storedTTL)
	}
}

func TestSuggest_Hit(t *testing.T) {
	inner := &mockSuggester{}
	c, ms := newTestCache(t, inner)
	ms.getFn = func(context.Context, string) ([]byte, error) {
		return []byte(`["Home Inn"]`), nil
	}

	got, err := c.Suggest(context.Background(), query.SuggestRequest("ho"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0] != "Home Inn" {
		t.Errorf("got %v", got)
	}
	if inner.calls != 0 {
		t.Errorf("inner calls = %d, want 0", inner.calls)
	}
}

func TestSuggest_StoreErrorBypassed(t *testing.T) {
	inner := &mockSuggester{result: []string{"Hilton"}}
	c, ms := newTestCache(t, inner)
	ms.getFn = func(context.Context, string) ([]byte, error) {
		return nil, &db.Error{Op: db.OpGet, Err: errors.New("connection refused")}
	}
	ms.setFn = func(context.Context, string, []byte, time.Duration) error {
		return errors.New("connection refused")
	}

	got, err := c.Suggest(context.Background(), query.SuggestRequest("h"))
	if err != nil {
		t.Fatalf("cache failure leaked: %v", err)
	}
	if len(got) != 1 || inner.calls != 1 {
		t.Errorf("got %v after %d inner calls", got, inner.calls)
	}
}

func TestSuggest_CorruptEntryIgnored(t *testing.T) {
	inner := &mockSuggester{result: []string{"Hilton"}}
	c, ms := newTestCache(t, inner)
	ms.getFn = func(context.Context, string) ([]byte, error) {
		return []byte(`{not json`), nil
	}

	if _, err := c.Suggest(context.Background(), query.SuggestRequest("h")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1", inner.calls)
	}
}

func TestSuggest_InnerErrorNotCached(t *testing.T) {
	inner := &mockSuggester{err: errors.New("engine down")}
	c, ms := newTestCache(t, inner)
	ms.setFn = func(context.Context, string, []byte, time.Duration) error {
		t.Error("failed result must not be cached")
		return nil
	}

	if _, err := c.Suggest(context.Background(), query.SuggestRequest("h")); err == nil {
		t.Fatal("expected error")
	}
}

func TestCacheKey_StablePerPrefix(t *testing.T) {
	a, err := cacheKey(query.SuggestRequest("hil"))
	if err != nil {
		t.Fatalf("cacheKey: %v", err)
	}
	b, _ := cacheKey(query.SuggestRequest("hil"))
	c, _ := cacheKey(query.SuggestRequest("han"))

	if a != b {
		t.Errorf("same prefix produced %q and %q", a, b)
	}
	if a == c {
		t.Error("different prefixes produced the same key")
	}
}

func TestSuggest_CountsHitsAndMisses(t *testing.T) {
	total := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_suggest_cache_total"}, []string{"result"})
	ms := &mockKVStore{}
	c := New(&mockSuggester{result: []string{"x"}}, ms, time.Minute, total, zap.NewNop())

	_, _ = c.Suggest(context.Background(), query.SuggestRequest("x"))
	ms.getFn = func(context.Context, string) ([]byte, error) { return []byte(`["x"]`), nil }
	_, _ = c.Suggest(context.Background(), query.SuggestRequest("x"))

	if v := testutil.ToFloat64(total.WithLabelValues("miss")); v != 1 {
		t.Errorf("miss = %f, want 1", v)
	}
	if v := testutil.ToFloat64(total.WithLabelValues("hit")); v != 1 {
		t.Errorf("hit = %f, want 1", v)
	}
}
