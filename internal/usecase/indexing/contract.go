package indexing

import (
	"context"

	"github.com/kailas-cloud/hotelsearch/internal/domain/hotel"
)

// Records reads authoritative hotel records.
type Records interface {
	FindByID(ctx context.Context, id int64) (hotel.Hotel, error)
	ListAll(ctx context.Context) ([]hotel.Hotel, error)
}

// Writer writes search documents.
type Writer interface {
	Index(ctx context.Context, doc hotel.Document) error
	Delete(ctx context.Context, hotelID int64) error
	Bulk(ctx context.Context, docs []hotel.Document) ([]hotel.IndexFailure, error)
}
