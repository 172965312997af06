package search

import (
	"context"

	"github.com/kailas-cloud/hotelsearch/internal/domain/search/query"
	"github.com/kailas-cloud/hotelsearch/internal/domain/search/result"
)

// Engine executes hit and aggregation requests against the hotel index.
type Engine interface {
	Query(ctx context.Context, req query.Request) (result.Page, error)
	Aggregate(ctx context.Context, req query.Request) (result.Facets, error)
}

// Suggester executes completion requests.
type Suggester interface {
	Suggest(ctx context.Context, req query.Request) ([]string, error)
}
