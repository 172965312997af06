package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kailas-cloud/hotelsearch/internal/db"
	"github.com/kailas-cloud/hotelsearch/internal/metrics"
)

// Search runs a search request against index and decodes the response envelope.
func (s *Store) Search(ctx context.Context, index string, body map[string]any) (*db.SearchResponse, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: fmt.Errorf("encode request: %w", err)}
	}

	start := time.Now()
	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(index),
		s.client.Search.WithBody(&buf),
	)
	observe(db.OpSearch, start, err == nil && !res.IsError())
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, &db.Error{Op: db.OpSearch, Err: responseError(res)}
	}

	var out db.SearchResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: fmt.Errorf("decode response: %w", err)}
	}
	return &out, nil
}

func observe(op string, start time.Time, ok bool) {
	status := "success"
	if !ok {
		status = "error"
	}
	metrics.EngineRequestsTotal.WithLabelValues(op, status).Inc()
	metrics.EngineRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
