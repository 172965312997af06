package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/kailas-cloud/hotelsearch/internal/db"
	"github.com/kailas-cloud/hotelsearch/internal/domain"
	"github.com/kailas-cloud/hotelsearch/internal/domain/search/params"
	"github.com/kailas-cloud/hotelsearch/internal/domain/search/query"
)

// --- Query ---

func TestQuery_HappyPath(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.searchFn = func(_ context.Context, index string, body map[string]any) (*db.SearchResponse, error) {
		if index != "hotel" {
			t.Errorf("index = %s, want hotel", index)
		}
		if body["from"] != 10 || body["size"] != 5 {
			t.Errorf("from/size = %v/%v", body["from"], body["size"])
		}
		return decodeResponse(t, `{
			"hits": {
				"total": {"value": 2, "relation": "eq"},
				"hits": [
					{"_id": "1", "_source": {"id": 1, "name": "Home Inn", "price": 200, "isAD": true},
					 "highlight": {"name": ["<em>Home</em> Inn"]}, "sort": [0.42]},
					{"_id": "2", "_source": {"id": 2, "name": "Hanting", "price": 150}, "sort": [3.1]}
				]
			}
		}`), nil
	}

	page, err := repo.Query(context.Background(), query.SearchRequest(params.Params{Key: "home", Page: 3, Size: 5}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if page.Total().Value != 2 || !page.Total().Exact() {
		t.Errorf("total = %+v", page.Total())
	}
	hotels := page.Hotels()
	if len(hotels) != 2 {
		t.Fatalf("hotels = %d, want 2", len(hotels))
	}
	if hotels[0].Name != "<em>Home</em> Inn" {
		t.Errorf("name = %q, want highlighted", hotels[0].Name)
	}
	if hotels[0].Distance == nil || *hotels[0].Distance != 0.42 {
		t.Errorf("distance = %v, want 0.42", hotels[0].Distance)
	}
	if !hotels[0].Promoted || hotels[0].Price != 200 {
		t.Errorf("hotel[0] = %+v", hotels[0])
	}
	if hotels[1].ID != 2 || hotels[1].Name != "Hanting" {
		t.Errorf("order not preserved: %+v", hotels[1])
	}
}

func TestQuery_LowerBoundTotal(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.searchFn = func(context.Context, string, map[string]any) (*db.SearchResponse, error) {
		return decodeResponse(t, `{"hits": {"total": {"value": 10000, "relation": "gte"}, "hits": []}}`), nil
	}

	page, err := repo.Query(context.Background(), query.SearchRequest(params.Params{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total().Value != 10000 || page.Total().Exact() {
		t.Errorf("total = %+v, want lower bound 10000", page.Total())
	}
}

func TestQuery_NoHits(t *testing.T) {
	repo, _ := newTestRepo(t)

	page, err := repo.Query(context.Background(), query.SearchRequest(params.Params{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total().Value != 0 || page.Hotels() == nil || len(page.Hotels()) != 0 {
		t.Errorf("page = %+v", page)
	}
}

func TestQuery_NoSortNoDistance(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.searchFn = func(context.Context, string, map[string]any) (*db.SearchResponse, error) {
		return decodeResponse(t, `{"hits": {"total": {"value": 1, "relation": "eq"},
			"hits": [{"_id": "1", "_source": {"id": 1, "name": "Plain"}}]}}`), nil
	}

	page, err := repo.Query(context.Background(), query.SearchRequest(params.Params{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h := page.Hotels()[0]
	if h.Distance != nil {
		t.Errorf("distance = %v, want nil", *h.Distance)
	}
	if h.Name != "Plain" {
		t.Errorf("name = %q", h.Name)
	}
}

func TestQuery_UnlocatedHitHasNoDistance(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.searchFn = func(context.Context, string, map[string]any) (*db.SearchResponse, error) {
		return decodeResponse(t, `{"hits": {"total": {"value": 2, "relation": "eq"},
			"hits": [
				{"_id": "1", "_source": {"id": 1, "name": "Near", "location": "31.2, 121.5"}, "sort": [2.5]},
				{"_id": "2", "_source": {"id": 2, "name": "Nowhere"}, "sort": ["Infinity"]}
			]}}`), nil
	}

	page, err := repo.Query(context.Background(), query.SearchRequest(params.Params{Location: "31.2, 121.5"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hotels := page.Hotels()
	if len(hotels) != 2 {
		t.Fatalf("hotels = %d, want 2", len(hotels))
	}
	if hotels[0].Distance == nil || *hotels[0].Distance != 2.5 {
		t.Errorf("first distance = %v, want 2.5", hotels[0].Distance)
	}
	if hotels[1].Distance != nil {
		t.Errorf("second distance = %v, want nil", *hotels[1].Distance)
	}
	if _, err := json.Marshal(hotels); err != nil {
		t.Errorf("page must stay encodable: %v", err)
	}
}

func TestToFloat_NonFinite(t *testing.T) {
	for _, v := range []any{"Infinity", "-Infinity", "NaN", "far", nil} {
		if f, ok := toFloat(v); ok {
			t.Errorf("toFloat(%v) = %v, want no distance", v, f)
		}
	}
	if f, ok := toFloat("1.25"); !ok || f != 1.25 {
		t.Errorf("toFloat(\"1.25\") = %v, %v", f, ok)
	}
}

func TestQuery_BadSource(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.searchFn = func(context.Context, string, map[string]any) (*db.SearchResponse, error) {
		return decodeResponse(t, `{"hits": {"total": {"value": 1, "relation": "eq"},
			"hits": [{"_id": "1", "_source": {"id": "not-a-number"}}]}}`), nil
	}

	_, err := repo.Query(context.Background(), query.SearchRequest(params.Params{}))
	if !errors.Is(err, domain.ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestQuery_StoreError(t *testing.T) {
	repo, ms := newTestRepo(t)
	cause := &db.Error{Op: db.OpSearch, Err: errors.New("connection refused")}
	ms.searchFn = func(context.Context, string, map[string]any) (*db.SearchResponse, error) {
		return nil, cause
	}

	_, err := repo.Query(context.Background(), query.SearchRequest(params.Params{}))
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

// --- Aggregate ---

func TestAggregate_HappyPath(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.searchFn = func(_ context.Context, _ string, body map[string]any) (*db.SearchResponse, error) {
		if body["size"] != 0 {
			t.Errorf("size = %v, want 0", body["size"])
		}
		return decodeResponse(t, `{
			"hits": {"total": {"value": 82, "relation": "eq"}, "hits": []},
			"aggregations": {
				"brandAgg": {"buckets": [{"key": "Hilton", "doc_count": 40}, {"key": "Marriott", "doc_count": 12}]},
				"cityAgg": {"buckets": [{"key": "Beijing", "doc_count": 30}]},
				"starNameAgg": {"buckets": []}
			}
		}`), nil
	}

	facets, err := repo.Aggregate(context.Background(), query.FacetsRequest(params.Params{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := facets["brand"]; len(got) != 2 || got[0] != "Hilton" || got[1] != "Marriott" {
		t.Errorf("brand = %v", got)
	}
	if got := facets["city"]; len(got) != 1 || got[0] != "Beijing" {
		t.Errorf("city = %v", got)
	}
	if got, ok := facets["starName"]; !ok || got == nil || len(got) != 0 {
		t.Errorf("starName = %#v, want empty list", got)
	}
}

func TestAggregate_MissingFacet(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.searchFn = func(context.Context, string, map[string]any) (*db.SearchResponse, error) {
		return decodeResponse(t, `{
			"hits": {"total": {"value": 0, "relation": "eq"}, "hits": []},
			"aggregations": {
				"brandAgg": {"buckets": [{"key": "Hilton", "doc_count": 40}, {"key": "Marriott", "doc_count": 12}]},
				"cityAgg": {"buckets": [{"key": "Beijing", "doc_count": 30}]}
			}
		}`), nil
	}

	facets, err := repo.Aggregate(context.Background(), query.FacetsRequest(params.Params{}))
	if !errors.Is(err, domain.ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
	if facets != nil {
		t.Errorf("facets = %v, want nil", facets)
	}
}

func TestAggregate_NumericKeys(t *testing.T) {
	res := decodeResponse(t, `{"aggregations": {
		"brandAgg": {"buckets": [{"key": 5, "doc_count": 1}]},
		"cityAgg": {"buckets": []},
		"starNameAgg": {"buckets": [{"key": 4.5, "doc_count": 2}]}
	}}`)

	facets, err := parseFacets(res)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if facets["brand"][0] != "5" || facets["starName"][0] != "4.5" {
		t.Errorf("facets = %v", facets)
	}
}

func TestAggregate_MalformedBuckets(t *testing.T) {
	res := decodeResponse(t, `{"aggregations": {
		"brandAgg": {"buckets": "nope"},
		"cityAgg": {"buckets": []},
		"starNameAgg": {"buckets": []}
	}}`)

	if _, err := parseFacets(res); !errors.Is(err, domain.ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

// --- Suggest ---

func TestSuggest_HappyPath(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.searchFn = func(_ context.Context, _ string, body map[string]any) (*db.SearchResponse, error) {
		if _, ok := body["suggest"]; !ok {
			t.Error("suggest section missing")
		}
		return decodeResponse(t, `{"suggest": {"hotelSuggestion": [{"text": "h", "offset": 0, "length": 1,
			"options": [{"text": "Hilton", "_score": 1.0}, {"text": "Hanting"}, {"text": "Home Inn"}]}]}}`), nil
	}

	got, err := repo.Suggest(context.Background(), query.SuggestRequest("h"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Hilton", "Hanting", "Home Inn"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("suggestions = %v, want %v", got, want)
	}
}

func TestSuggest_DedupAndCap(t *testing.T) {
	opts := ""
	for i := 0; i < 12; i++ {
		if i > 0 {
			opts += ","
		}
		// the twelfth option repeats s0
		opts += fmt.Sprintf(`{"text": "s%d"}`, i%11)
	}
	res := decodeResponse(t, `{"suggest": {"hotelSuggestion": [{"options": [`+opts+`]}]}}`)

	got, err := parseSuggestions(res, query.SuggesterName, query.SuggestionSize)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) > 10 {
		t.Fatalf("len = %d, want <= 10", len(got))
	}
	seen := map[string]bool{}
	for _, s := range got {
		if seen[s] {
			t.Errorf("duplicate %q", s)
		}
		seen[s] = true
	}
	if got[0] != "s0" || got[9] != "s9" {
		t.Errorf("order = %v", got)
	}
}

func TestSuggest_NoOptions(t *testing.T) {
	res := decodeResponse(t, `{"suggest": {"hotelSuggestion": [{"text": "zz", "options": []}]}}`)
	got, err := parseSuggestions(res, query.SuggesterName, query.SuggestionSize)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("got %#v, want empty list", got)
	}
}

func TestSuggest_MissingGroup(t *testing.T) {
	res := decodeResponse(t, `{"suggest": {}}`)
	if _, err := parseSuggestions(res, query.SuggesterName, query.SuggestionSize); !errors.Is(err, domain.ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestSuggest_StoreError(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.searchFn = func(context.Context, string, map[string]any) (*db.SearchResponse, error) {
		return nil, errors.New("boom")
	}
	if _, err := repo.Suggest(context.Background(), query.SuggestRequest("h")); err == nil {
		t.Fatal("expected error")
	}
}
