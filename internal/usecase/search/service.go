package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/hotelsearch/internal/domain"
	"github.com/kailas-cloud/hotelsearch/internal/domain/search/params"
	"github.com/kailas-cloud/hotelsearch/internal/domain/search/query"
	"github.com/kailas-cloud/hotelsearch/internal/domain/search/result"
)

// Service answers hotel searches, facet lookups and name completions.
// It holds no mutable state and is safe for concurrent use.
type Service struct {
	engine    Engine
	suggester Suggester
	logger    *zap.Logger
}

// New creates a search service.
func New(engine Engine, suggester Suggester, logger *zap.Logger) *Service {
	return &Service{engine: engine, suggester: suggester, logger: logger}
}

// Search returns one ranked page of hotels matching p.
func (s *Service) Search(ctx context.Context, p params.Params) (result.Page, error) {
	page, err := s.engine.Query(ctx, query.SearchRequest(p))
	if err != nil {
		return result.Page{}, s.engineError("search", err)
	}
	return page, nil
}

// Facets returns the brand, city and star rating values present in the
// result set p would produce.
func (s *Service) Facets(ctx context.Context, p params.Params) (result.Facets, error) {
	facets, err := s.engine.Aggregate(ctx, query.FacetsRequest(p))
	if err != nil {
		return nil, s.engineError("facets", err)
	}
	return facets, nil
}

// Suggest completes prefix into at most ten hotel names. A blank prefix
// returns an empty list without querying the engine.
func (s *Service) Suggest(ctx context.Context, prefix string) ([]string, error) {
	if strings.TrimSpace(prefix) == "" {
		return []string{}, nil
	}

	out, err := s.suggester.Suggest(ctx, query.SuggestRequest(prefix))
	if err != nil {
		return nil, s.engineError("suggest", err)
	}
	return out, nil
}

// engineError classifies a failed engine call. Malformed responses keep
// their own sentinel; everything else is an opaque search failure.
func (s *Service) engineError(op string, err error) error {
	s.logger.Error("Search engine call failed", zap.String("op", op), zap.Error(err))
	if errors.Is(err, domain.ErrMalformedResponse) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrSearchFailed, op, err)
}
