package hotelsearch

import (
	"github.com/kailas-cloud/hotelsearch/internal/domain/hotel"
	"github.com/kailas-cloud/hotelsearch/internal/domain/search/params"
	"github.com/kailas-cloud/hotelsearch/internal/domain/search/result"
)

// SearchParams is a hotel search. Zero Page and Size select the first page
// of DefaultPageSize hits. MinPrice and MaxPrice only apply when both are set.
type SearchParams struct {
	Key      string
	City     string
	Brand    string
	StarName string
	MinPrice *int
	MaxPrice *int
	Page     int
	Size     int
	Location string // "lat, lon"; enables nearest-first ordering
}

// DefaultPageSize is used when SearchParams.Size is zero.
const DefaultPageSize = params.DefaultSize

// Hotel is one search hit. Name may carry <em> highlight tags.
// Distance is set in kilometers when the search had a Location.
type Hotel struct {
	ID       int64
	Name     string
	Address  string
	Price    int
	Score    int
	Brand    string
	City     string
	StarName string
	Business string
	Location string
	Pic      string
	Promoted bool
	Distance *float64
}

// Page is one page of hits in ranking order.
type Page struct {
	Total  int64
	Exact  bool // false when Total is a lower bound
	Hotels []Hotel
}

// Facets maps "brand", "city" and "starName" to their distinct values.
type Facets map[string][]string

func (p SearchParams) toDomain() params.Params {
	return params.Params{
		Key:      p.Key,
		City:     p.City,
		Brand:    p.Brand,
		StarName: p.StarName,
		MinPrice: p.MinPrice,
		MaxPrice: p.MaxPrice,
		Page:     p.Page,
		Size:     p.Size,
		Location: p.Location,
	}
}

func pageFromDomain(p result.Page) Page {
	docs := p.Hotels()
	hotels := make([]Hotel, len(docs))
	for i, d := range docs {
		hotels[i] = hotelFromDomain(d)
	}
	return Page{
		Total:  p.Total().Value,
		Exact:  p.Total().Exact(),
		Hotels: hotels,
	}
}

func hotelFromDomain(d hotel.Document) Hotel {
	return Hotel{
		ID:       d.ID,
		Name:     d.Name,
		Address:  d.Address,
		Price:    d.Price,
		Score:    d.Score,
		Brand:    d.Brand,
		City:     d.City,
		StarName: d.StarName,
		Business: d.Business,
		Location: d.Location,
		Pic:      d.Pic,
		Promoted: d.Promoted,
		Distance: d.Distance,
	}
}
