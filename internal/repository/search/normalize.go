package search

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/mitchellh/mapstructure"

	"github.com/kailas-cloud/hotelsearch/internal/db"
	"github.com/kailas-cloud/hotelsearch/internal/domain"
	"github.com/kailas-cloud/hotelsearch/internal/domain/hotel"
	"github.com/kailas-cloud/hotelsearch/internal/domain/search/query"
	"github.com/kailas-cloud/hotelsearch/internal/domain/search/result"
)

// parsePage converts a raw search response into a page of documents.
// Hit order is kept. A name highlight replaces the plain name and the first
// sort value, present only under geo sorting, becomes the distance.
func parsePage(res *db.SearchResponse) (result.Page, error) {
	docs := make([]hotel.Document, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var doc hotel.Document
		if err := json.Unmarshal(hit.Source, &doc); err != nil {
			return result.Page{}, fmt.Errorf("%w: hit %s source: %w", domain.ErrMalformedResponse, hit.ID, err)
		}
		if hl := hit.Highlight[query.FieldName]; len(hl) > 0 {
			doc.Name = hl[0]
		}
		if len(hit.Sort) > 0 {
			if d, ok := toFloat(hit.Sort[0]); ok {
				doc.Distance = &d
			}
		}
		docs = append(docs, doc)
	}

	total := result.Total{
		Value:    res.Hits.Total.Value,
		Relation: result.Relation(res.Hits.Total.Relation),
	}
	return result.NewPage(total, docs), nil
}

// toFloat reads a sort value as a distance. The engine reports "Infinity"
// for hits without a location; non-finite values mean no distance.
func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

type termsAggregate struct {
	Buckets []bucket `mapstructure:"buckets"`
}

type bucket struct {
	Key      any   `mapstructure:"key"`
	DocCount int64 `mapstructure:"doc_count"`
}

// parseFacets extracts bucket keys for every facet in engine order. Counts are
// dropped. A missing facet means the request and response disagree and is
// reported rather than defaulted to an empty list.
func parseFacets(res *db.SearchResponse) (result.Facets, error) {
	out := make(result.Facets, len(query.Facets))
	for _, f := range query.Facets {
		raw, ok := res.Aggregations[f.Aggregation]
		if !ok {
			return nil, fmt.Errorf("%w: aggregation %q missing", domain.ErrMalformedResponse, f.Aggregation)
		}

		var agg termsAggregate
		if err := mapstructure.Decode(raw, &agg); err != nil {
			return nil, fmt.Errorf("%w: aggregation %q: %w", domain.ErrMalformedResponse, f.Aggregation, err)
		}

		keys := make([]string, 0, len(agg.Buckets))
		for _, b := range agg.Buckets {
			keys = append(keys, bucketKey(b.Key))
		}
		out[f.Name] = keys
	}
	return out, nil
}

func bucketKey(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}

type suggestOption struct {
	Text string `mapstructure:"text"`
}

// parseSuggestions returns the option texts of the named suggester's first
// group in engine order, deduplicated and capped at limit.
func parseSuggestions(res *db.SearchResponse, name string, limit int) ([]string, error) {
	groups, ok := res.Suggest[name]
	if !ok {
		return nil, fmt.Errorf("%w: suggester %q missing", domain.ErrMalformedResponse, name)
	}

	out := []string{}
	if len(groups) == 0 {
		return out, nil
	}

	var opts []suggestOption
	if err := mapstructure.Decode(groups[0].Options, &opts); err != nil {
		return nil, fmt.Errorf("%w: suggester %q options: %w", domain.ErrMalformedResponse, name, err)
	}

	seen := make(map[string]struct{}, len(opts))
	for _, o := range opts {
		if len(out) == limit {
			break
		}
		if _, dup := seen[o.Text]; dup {
			continue
		}
		seen[o.Text] = struct{}{}
		out = append(out, o.Text)
	}
	return out, nil
}
