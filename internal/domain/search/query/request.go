package query

import (
	"github.com/kailas-cloud/hotelsearch/internal/domain/search/params"
)

// Highlight tags wrapped around matched terms.
const (
	HighlightPreTag  = "<em>"
	HighlightPostTag = "</em>"
)

// Highlight requests highlighted fragments for a set of fields.
type Highlight struct {
	fields []string
}

// NewHighlight highlights fields with the default tags. Fragments are
// produced even when the query matched another field (require_field_match
// off), since the key is matched against the combined "all" field.
func NewHighlight(fields ...string) Highlight {
	fs := make([]string, len(fields))
	copy(fs, fields)
	return Highlight{fields: fs}
}

// Fields returns the highlighted fields.
func (h Highlight) Fields() []string {
	out := make([]string, len(h.fields))
	copy(out, h.fields)
	return out
}

// Source renders the highlight section.
func (h Highlight) Source() map[string]any {
	fields := make(map[string]any, len(h.fields))
	for _, f := range h.fields {
		fields[f] = map[string]any{"require_field_match": false}
	}
	return map[string]any{
		"fields":    fields,
		"pre_tags":  []string{HighlightPreTag},
		"post_tags": []string{HighlightPostTag},
	}
}

// Request is a complete engine search request body.
type Request struct {
	Query       Query
	From        int
	Size        int
	Sort        []Sort
	Highlight   *Highlight
	Aggregation map[string]Aggregation
	Suggest     map[string]Suggester
}

// Body renders the request into the engine's JSON DSL.
func (r Request) Body() map[string]any {
	body := map[string]any{
		"from": r.From,
		"size": r.Size,
	}
	if r.Query != nil {
		body["query"] = r.Query.Source()
	}
	if len(r.Sort) > 0 {
		sorts := make([]map[string]any, len(r.Sort))
		for i, s := range r.Sort {
			sorts[i] = s.Source()
		}
		body["sort"] = sorts
	}
	if r.Highlight != nil {
		body["highlight"] = r.Highlight.Source()
	}
	if len(r.Aggregation) > 0 {
		aggs := make(map[string]any, len(r.Aggregation))
		for name, a := range r.Aggregation {
			aggs[name] = a.Source()
		}
		body["aggs"] = aggs
	}
	if len(r.Suggest) > 0 {
		sugs := make(map[string]any, len(r.Suggest))
		for name, s := range r.Suggest {
			sugs[name] = s.Source()
		}
		body["suggest"] = sugs
	}
	return body
}

// SearchRequest builds the paginated, ranked, optionally geo-sorted hotel
// search with name highlighting.
func SearchRequest(p params.Params) Request {
	h := NewHighlight(FieldName)
	return Request{
		Query:     Rank(Predicate(p)),
		From:      p.Offset(),
		Size:      p.Limit(),
		Sort:      GeoSort(p.Location),
		Highlight: &h,
	}
}

// FacetsRequest builds an aggregation-only request over the same filtered
// set a search with p would return.
func FacetsRequest(p params.Params) Request {
	return Request{
		Query:       Rank(Predicate(p)),
		Size:        0,
		Aggregation: FacetAggregations(),
	}
}

// SuggestRequest builds a hits-free completion request for prefix.
func SuggestRequest(prefix string) Request {
	return Request{
		Size:    0,
		Suggest: map[string]Suggester{SuggesterName: HotelSuggestion(prefix)},
	}
}
