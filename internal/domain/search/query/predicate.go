package query

import (
	"strings"

	"github.com/kailas-cloud/hotelsearch/internal/domain/search/params"
)

// Predicate translates search parameters into a boolean tree.
//
// The free-text key always occupies the single must slot (MatchAll when
// blank), so relevance is computed from text alone. City, brand and star
// rating are exact filters. The price range is applied only when both bounds
// are present; min > max is passed through and simply matches nothing.
func Predicate(p params.Params) BoolQuery {
	var must Query = MatchAll()
	if key := strings.TrimSpace(p.Key); key != "" {
		must = TextMatch(FieldAll, key)
	}

	var filter []Query
	for _, t := range []struct{ field, value string }{
		{FieldCity, p.City},
		{FieldBrand, p.Brand},
		{FieldStarName, p.StarName},
	} {
		if t.value != "" {
			filter = append(filter, TermEquals(t.field, t.value))
		}
	}
	if p.HasPriceRange() {
		filter = append(filter, RangeBetween(FieldPrice, *p.MinPrice, *p.MaxPrice))
	}

	return Bool([]Query{must}, filter)
}
