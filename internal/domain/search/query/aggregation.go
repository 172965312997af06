package query

// FacetSize caps the distinct terms returned per facet.
const FacetSize = 100

// Facet describes one filter facet: the aggregation name sent to the engine,
// the indexed field and the key surfaced to clients.
type Facet struct {
	Aggregation string
	Field       string
	Name        string
}

// Facets is the fixed facet set, in response order.
var Facets = []Facet{
	{Aggregation: "brandAgg", Field: FieldBrand, Name: "brand"},
	{Aggregation: "cityAgg", Field: FieldCity, Name: "city"},
	{Aggregation: "starNameAgg", Field: FieldStarName, Name: "starName"},
}

// Aggregation is a named engine aggregation.
type Aggregation interface {
	Source() map[string]any
}

// TermsAggregation counts documents per distinct field value.
type TermsAggregation struct {
	field string
	size  int
}

// Terms returns a terms aggregation over field capped at size buckets.
func Terms(field string, size int) TermsAggregation {
	return TermsAggregation{field: field, size: size}
}

// Field returns the aggregated field.
func (a TermsAggregation) Field() string { return a.field }

// Size returns the bucket cap.
func (a TermsAggregation) Size() int { return a.size }

// Source renders the terms aggregation.
func (a TermsAggregation) Source() map[string]any {
	return map[string]any{
		"terms": map[string]any{
			"field": a.field,
			"size":  a.size,
		},
	}
}

// FacetAggregations returns one independent terms aggregation per facet.
func FacetAggregations() map[string]Aggregation {
	aggs := make(map[string]Aggregation, len(Facets))
	for _, f := range Facets {
		aggs[f.Aggregation] = Terms(f.Field, FacetSize)
	}
	return aggs
}
