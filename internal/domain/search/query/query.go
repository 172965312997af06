// Package query builds immutable search engine query values.
//
// Every value renders itself into the engine's JSON DSL through Source.
// Values are built fresh per request by plain functions and never mutated
// afterwards, so they can be shared freely between goroutines.
package query

// Index fields referenced by the hotel queries.
const (
	FieldAll        = "all"
	FieldName       = "name"
	FieldCity       = "city"
	FieldBrand      = "brand"
	FieldStarName   = "starName"
	FieldPrice      = "price"
	FieldPromoted   = "isAD"
	FieldLocation   = "location"
	FieldSuggestion = "suggestion"
)

// Query is a node of a predicate tree.
type Query interface {
	Source() map[string]any
}

// MatchAllQuery matches every document with a constant score.
type MatchAllQuery struct{}

// MatchAll returns a query matching every document.
func MatchAll() MatchAllQuery { return MatchAllQuery{} }

// Source renders the match_all clause.
func (MatchAllQuery) Source() map[string]any {
	return map[string]any{"match_all": map[string]any{}}
}

// MatchQuery is an analyzed full-text match against one field.
type MatchQuery struct {
	field string
	text  string
}

// TextMatch returns a full-text match of text against field.
func TextMatch(field, text string) MatchQuery {
	return MatchQuery{field: field, text: text}
}

// Field returns the matched field.
func (q MatchQuery) Field() string { return q.field }

// Text returns the query text.
func (q MatchQuery) Text() string { return q.text }

// Source renders the match clause.
func (q MatchQuery) Source() map[string]any {
	return map[string]any{
		"match": map[string]any{
			q.field: map[string]any{"query": q.text},
		},
	}
}

// TermQuery is an exact, unanalyzed value match.
type TermQuery struct {
	field string
	value any
}

// TermEquals returns an exact match of value on field.
func TermEquals(field string, value any) TermQuery {
	return TermQuery{field: field, value: value}
}

// Field returns the matched field.
func (q TermQuery) Field() string { return q.field }

// Value returns the expected value.
func (q TermQuery) Value() any { return q.value }

// Source renders the term clause.
func (q TermQuery) Source() map[string]any {
	return map[string]any{
		"term": map[string]any{
			q.field: map[string]any{"value": q.value},
		},
	}
}

// RangeQuery bounds a field with inclusive limits. A nil bound is open.
type RangeQuery struct {
	field string
	gte   any
	lte   any
}

// RangeAtLeast returns field >= v.
func RangeAtLeast(field string, v any) RangeQuery {
	return RangeQuery{field: field, gte: v}
}

// RangeAtMost returns field <= v.
func RangeAtMost(field string, v any) RangeQuery {
	return RangeQuery{field: field, lte: v}
}

// RangeBetween returns min <= field <= max.
func RangeBetween(field string, minValue, maxValue any) RangeQuery {
	return RangeAtLeast(field, minValue).AtMost(maxValue)
}

// AtLeast returns a copy with the lower bound set.
func (q RangeQuery) AtLeast(v any) RangeQuery {
	q.gte = v
	return q
}

// AtMost returns a copy with the upper bound set.
func (q RangeQuery) AtMost(v any) RangeQuery {
	q.lte = v
	return q
}

// Field returns the bounded field.
func (q RangeQuery) Field() string { return q.field }

// GTE returns the inclusive lower bound, nil if open.
func (q RangeQuery) GTE() any { return q.gte }

// LTE returns the inclusive upper bound, nil if open.
func (q RangeQuery) LTE() any { return q.lte }

// Source renders the range clause.
func (q RangeQuery) Source() map[string]any {
	bounds := make(map[string]any, 2)
	if q.gte != nil {
		bounds["gte"] = q.gte
	}
	if q.lte != nil {
		bounds["lte"] = q.lte
	}
	return map[string]any{
		"range": map[string]any{q.field: bounds},
	}
}

// BoolQuery combines clauses. Must clauses contribute to the relevance score,
// filter clauses only restrict the result set.
type BoolQuery struct {
	must   []Query
	filter []Query
}

// Bool creates a boolean node from must and filter clauses.
func Bool(must, filter []Query) BoolQuery {
	return BoolQuery{must: clone(must), filter: clone(filter)}
}

// Must returns a copy of the score-affecting clauses.
func (q BoolQuery) Must() []Query { return clone(q.must) }

// Filter returns a copy of the non-scoring clauses.
func (q BoolQuery) Filter() []Query { return clone(q.filter) }

// Source renders the bool clause, omitting empty clause lists.
func (q BoolQuery) Source() map[string]any {
	body := make(map[string]any, 2)
	if len(q.must) > 0 {
		body["must"] = sources(q.must)
	}
	if len(q.filter) > 0 {
		body["filter"] = sources(q.filter)
	}
	return map[string]any{"bool": body}
}

func sources(qs []Query) []map[string]any {
	out := make([]map[string]any, len(qs))
	for i, q := range qs {
		out[i] = q.Source()
	}
	return out
}

func clone(qs []Query) []Query {
	if len(qs) == 0 {
		return nil
	}
	out := make([]Query, len(qs))
	copy(out, qs)
	return out
}
