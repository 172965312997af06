package document

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/hotelsearch/internal/db"
	"github.com/kailas-cloud/hotelsearch/internal/domain"
	"github.com/kailas-cloud/hotelsearch/internal/domain/hotel"
)

// store is the consumer interface for document writes (ISP).
type store interface {
	IndexDocument(ctx context.Context, index, id string, doc any) error
	DeleteDocument(ctx context.Context, index, id string) error
	Bulk(ctx context.Context, index string, items []db.BulkItem) (*db.BulkResult, error)
}

// Repo implements usecase/indexing.Writer over a single hotel index.
type Repo struct {
	store store
	index string
}

// New creates a document repository bound to index.
func New(s store, index string) *Repo {
	return &Repo{store: s, index: index}
}

// Index creates or replaces the search document. The document id is the hotel id.
func (r *Repo) Index(ctx context.Context, doc hotel.Document) error {
	id := hotel.DocumentID(doc.ID)
	if err := r.store.IndexDocument(ctx, r.index, id, doc); err != nil {
		return fmt.Errorf("index %s/%s: %w", r.index, id, err)
	}
	return nil
}

// Delete removes the search document for a hotel.
func (r *Repo) Delete(ctx context.Context, hotelID int64) error {
	id := hotel.DocumentID(hotelID)
	if err := r.store.DeleteDocument(ctx, r.index, id); err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.ErrDocumentNotFound
		}
		return fmt.Errorf("delete %s/%s: %w", r.index, id, err)
	}
	return nil
}

// Bulk indexes docs in one request and returns the rejected ones.
func (r *Repo) Bulk(ctx context.Context, docs []hotel.Document) ([]hotel.IndexFailure, error) {
	items := make([]db.BulkItem, len(docs))
	for i, d := range docs {
		items[i] = db.BulkItem{ID: hotel.DocumentID(d.ID), Doc: d}
	}

	res, err := r.store.Bulk(ctx, r.index, items)
	if err != nil {
		return nil, fmt.Errorf("bulk %s (%d docs): %w", r.index, len(docs), err)
	}

	failures := make([]hotel.IndexFailure, 0, len(res.Failed))
	for _, f := range res.Failed {
		id, _ := strconv.ParseInt(f.ID, 10, 64)
		failures = append(failures, hotel.IndexFailure{ID: id, Reason: f.Reason})
	}
	return failures, nil
}
