package db

import "encoding/json"

// SearchResponse is the raw engine search response, decoded only as far as
// the envelope. Hit sources, aggregations and suggestion options are left
// for the caller to interpret.
type SearchResponse struct {
	Took         int                       `json:"took"`
	TimedOut     bool                      `json:"timed_out"`
	Hits         Hits                      `json:"hits"`
	Aggregations map[string]any            `json:"aggregations,omitempty"`
	Suggest      map[string][]SuggestGroup `json:"suggest,omitempty"`
}

// Hits is the hits section of a search response.
type Hits struct {
	Total HitsTotal `json:"total"`
	Hits  []Hit     `json:"hits"`
}

// HitsTotal is the hit count. Relation is "eq" for exact counts and "gte"
// when the engine stopped counting.
type HitsTotal struct {
	Value    int64  `json:"value"`
	Relation string `json:"relation"`
}

// Hit is a single search hit.
type Hit struct {
	Index     string              `json:"_index"`
	ID        string              `json:"_id"`
	Score     *float64            `json:"_score"`
	Source    json.RawMessage     `json:"_source"`
	Highlight map[string][]string `json:"highlight,omitempty"`
	Sort      []any               `json:"sort,omitempty"`
}

// SuggestGroup is one entry of a named suggester result.
type SuggestGroup struct {
	Text    string           `json:"text"`
	Offset  int              `json:"offset"`
	Length  int              `json:"length"`
	Options []map[string]any `json:"options"`
}
