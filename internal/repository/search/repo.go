package search

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/hotelsearch/internal/db"
	"github.com/kailas-cloud/hotelsearch/internal/domain/search/query"
	"github.com/kailas-cloud/hotelsearch/internal/domain/search/result"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	Search(ctx context.Context, index string, body map[string]any) (*db.SearchResponse, error)
}

// Repo implements usecase/search.Engine over a single hotel index.
type Repo struct {
	store store
	index string
}

// New creates a search repository bound to index.
func New(s store, index string) *Repo {
	return &Repo{store: s, index: index}
}

// Query executes a hit search and normalizes the page.
func (r *Repo) Query(ctx context.Context, req query.Request) (result.Page, error) {
	res, err := r.store.Search(ctx, r.index, req.Body())
	if err != nil {
		return result.Page{}, fmt.Errorf("search %s: %w", r.index, err)
	}
	return parsePage(res)
}

// Aggregate executes an aggregation request and normalizes the facets.
func (r *Repo) Aggregate(ctx context.Context, req query.Request) (result.Facets, error) {
	res, err := r.store.Search(ctx, r.index, req.Body())
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", r.index, err)
	}
	return parseFacets(res)
}

// Suggest executes a completion request and returns the option texts.
func (r *Repo) Suggest(ctx context.Context, req query.Request) ([]string, error) {
	res, err := r.store.Search(ctx, r.index, req.Body())
	if err != nil {
		return nil, fmt.Errorf("suggest %s: %w", r.index, err)
	}
	return parseSuggestions(res, query.SuggesterName, query.SuggestionSize)
}
