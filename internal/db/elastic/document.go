package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v7/esapi"

	"github.com/kailas-cloud/hotelsearch/internal/db"
)

// IndexDocument creates or replaces the document with the given id.
func (s *Store) IndexDocument(ctx context.Context, index, id string, doc any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(doc); err != nil {
		return &db.Error{Op: db.OpIndex, Err: fmt.Errorf("encode document: %w", err)}
	}

	req := esapi.IndexRequest{
		Index:      index,
		DocumentID: id,
		Body:       &buf,
	}
	start := time.Now()
	res, err := req.Do(ctx, s.client)
	observe(db.OpIndex, start, err == nil && !res.IsError())
	if err != nil {
		return &db.Error{Op: db.OpIndex, Err: err}
	}
	defer res.Body.Close()

	if res.IsError() {
		return &db.Error{Op: db.OpIndex, Err: responseError(res)}
	}
	return nil
}

// DeleteDocument removes the document with the given id.
// Returns db.ErrKeyNotFound when the document does not exist.
func (s *Store) DeleteDocument(ctx context.Context, index, id string) error {
	req := esapi.DeleteRequest{
		Index:      index,
		DocumentID: id,
	}
	start := time.Now()
	res, err := req.Do(ctx, s.client)
	if err != nil {
		observe(db.OpDelete, start, false)
		return &db.Error{Op: db.OpDelete, Err: err}
	}
	defer res.Body.Close()

	if res.IsError() {
		rerr := responseError(res)
		if isNotFound(rerr) {
			observe(db.OpDelete, start, true)
			return db.ErrKeyNotFound
		}
		observe(db.OpDelete, start, false)
		return &db.Error{Op: db.OpDelete, Err: rerr}
	}
	observe(db.OpDelete, start, true)
	return nil
}

type bulkResponse struct {
	Errors bool                          `json:"errors"`
	Items  []map[string]bulkItemResponse `json:"items"`
}

type bulkItemResponse struct {
	ID     string `json:"_id"`
	Status int    `json:"status"`
	Error  *struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error,omitempty"`
}

// Bulk indexes items in a single request. Per-item rejections are reported
// in the result; only transport or request-level failures return an error.
func (s *Store) Bulk(ctx context.Context, index string, items []db.BulkItem) (*db.BulkResult, error) {
	if len(items) == 0 {
		return &db.BulkResult{}, nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, it := range items {
		meta := map[string]any{"index": map[string]any{"_id": it.ID}}
		if err := enc.Encode(meta); err != nil {
			return nil, &db.Error{Op: db.OpBulk, Err: fmt.Errorf("encode action: %w", err)}
		}
		if err := enc.Encode(it.Doc); err != nil {
			return nil, &db.Error{Op: db.OpBulk, Err: fmt.Errorf("encode document %s: %w", it.ID, err)}
		}
	}

	req := esapi.BulkRequest{
		Index: index,
		Body:  &buf,
	}
	start := time.Now()
	res, err := req.Do(ctx, s.client)
	observe(db.OpBulk, start, err == nil && !res.IsError())
	if err != nil {
		return nil, &db.Error{Op: db.OpBulk, Err: err}
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, &db.Error{Op: db.OpBulk, Err: responseError(res)}
	}

	var br bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&br); err != nil {
		return nil, &db.Error{Op: db.OpBulk, Err: fmt.Errorf("decode response: %w", err)}
	}

	out := &db.BulkResult{}
	for _, item := range br.Items {
		for _, r := range item {
			if r.Error == nil && r.Status < 300 {
				out.Indexed++
				continue
			}
			f := db.BulkFailure{ID: r.ID, Status: r.Status}
			if r.Error != nil {
				f.Reason = r.Error.Type + ": " + r.Error.Reason
			}
			out.Failed = append(out.Failed, f)
		}
	}
	return out, nil
}
