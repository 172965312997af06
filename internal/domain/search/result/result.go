// Package result holds normalized search outcomes.
package result

import "github.com/kailas-cloud/hotelsearch/internal/domain/hotel"

// Relation qualifies a hit count.
type Relation string

const (
	// RelationEqual means the count is exact.
	RelationEqual Relation = "eq"
	// RelationAtLeast means the count is a lower bound.
	RelationAtLeast Relation = "gte"
)

// Total is a hit count as reported by the engine.
type Total struct {
	Value    int64
	Relation Relation
}

// Exact reports whether Value is the true count.
func (t Total) Exact() bool { return t.Relation != RelationAtLeast }

// Page is one page of hotels in engine order.
type Page struct {
	total  Total
	hotels []hotel.Document
}

// NewPage creates a page. A nil slice is normalized to empty.
func NewPage(total Total, hotels []hotel.Document) Page {
	if hotels == nil {
		hotels = []hotel.Document{}
	}
	return Page{total: total, hotels: hotels}
}

// Total returns the hit count.
func (p Page) Total() Total { return p.total }

// Hotels returns the page's documents.
func (p Page) Hotels() []hotel.Document { return p.hotels }

// Facets maps a facet name (brand, city, starName) to its values in engine order.
type Facets map[string][]string
