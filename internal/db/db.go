package db

import (
	"context"
	"time"
)

// Engine is the search engine facade combining all engine sub-interfaces.
type Engine interface {
	Pinger
	Searcher
	DocumentStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Cache is the key-value facade used for response caching.
type Cache interface {
	Pinger
	KVStore
	Close()
}

// Pinger checks backend connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Searcher executes raw search requests against an index.
type Searcher interface {
	Search(ctx context.Context, index string, body map[string]any) (*SearchResponse, error)
}

// BulkItem holds a single document for a bulk index request.
type BulkItem struct {
	ID  string
	Doc any
}

// BulkFailure describes one rejected bulk item.
type BulkFailure struct {
	ID     string
	Status int
	Reason string
}

// BulkResult summarizes a bulk request.
type BulkResult struct {
	Indexed int
	Failed  []BulkFailure
}

// DocumentStore provides single and bulk document writes.
type DocumentStore interface {
	IndexDocument(ctx context.Context, index, id string, doc any) error
	DeleteDocument(ctx context.Context, index, id string) error
	Bulk(ctx context.Context, index string, items []BulkItem) (*BulkResult, error)
}

// KVStore provides simple key-value operations.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}
