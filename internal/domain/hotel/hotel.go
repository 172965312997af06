package hotel

import (
	"strconv"
	"strings"
)

// Hotel is the authoritative hotel record as stored in the relational database.
type Hotel struct {
	ID        int64
	Name      string
	Address   string
	Price     int
	Score     int
	Brand     string
	City      string
	StarName  string
	Business  string
	Latitude  string
	Longitude string
	Pic       string
	Promoted  bool
}

// Document is the denormalized search representation of a Hotel.
// Distance is synthesized per query from the geo sort value and is never indexed.
type Document struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Address    string   `json:"address"`
	Price      int      `json:"price"`
	Score      int      `json:"score"`
	Brand      string   `json:"brand"`
	City       string   `json:"city"`
	StarName   string   `json:"starName"`
	Business   string   `json:"business"`
	Location   string   `json:"location,omitempty"`
	Pic        string   `json:"pic"`
	Promoted   bool     `json:"isAD"`
	Suggestion []string `json:"suggestion,omitempty"`
	Distance   *float64 `json:"distance,omitempty"`
}

// businessSeparator splits multi-area business districts ("Bund/People's Square").
const businessSeparator = "/"

// FromHotel derives the search document for a hotel record.
func FromHotel(h Hotel) Document {
	return Document{
		ID:         h.ID,
		Name:       h.Name,
		Address:    h.Address,
		Price:      h.Price,
		Score:      h.Score,
		Brand:      h.Brand,
		City:       h.City,
		StarName:   h.StarName,
		Business:   h.Business,
		Location:   location(h.Latitude, h.Longitude),
		Pic:        h.Pic,
		Promoted:   h.Promoted,
		Suggestion: suggestionInputs(h),
	}
}

// DocumentID returns the engine document identifier for a hotel id.
func DocumentID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// location renders a "lat, lon" geo point string; empty when a coordinate is missing.
func location(lat, lon string) string {
	lat = strings.TrimSpace(lat)
	lon = strings.TrimSpace(lon)
	if lat == "" || lon == "" {
		return ""
	}
	return lat + ", " + lon
}

// suggestionInputs collects completion inputs from brand, name and business areas.
func suggestionInputs(h Hotel) []string {
	candidates := []string{h.Brand, h.Name}
	candidates = append(candidates, strings.Split(h.Business, businessSeparator)...)

	seen := make(map[string]struct{}, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// IndexFailure is a document the search engine rejected during a bulk write.
type IndexFailure struct {
	ID     int64
	Reason string
}
