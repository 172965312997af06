package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Post("/hotel/list", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"total":0}`))
	})
	r.Put("/admin/hotels/{id}/index", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/hotel/suggestion", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") == "down" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte("[]"))
	})
	return r
}

func TestMiddleware_CountsSearchRequests(t *testing.T) {
	r := newRouter()
	counter := HTTPRequestsTotal.WithLabelValues(AreaSearch, "/hotel/list", "POST", "200")
	before := testutil.ToFloat64(counter)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/hotel/list", http.NoBody))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if got := testutil.ToFloat64(counter); got != before+1 {
		t.Errorf("requests_total = %f, want %f", got, before+1)
	}
	if testutil.CollectAndCount(HTTPRequestDuration) == 0 {
		t.Error("request_duration_seconds has no series")
	}
	if got := testutil.ToFloat64(HTTPInFlight.WithLabelValues(AreaSearch)); got != 0 {
		t.Errorf("in_flight_requests = %f after completion, want 0", got)
	}
}

func TestMiddleware_HotelIDsShareOneSeries(t *testing.T) {
	r := newRouter()
	counter := HTTPRequestsTotal.WithLabelValues(AreaAdmin, "/admin/hotels/{id}/index", "PUT", "204")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"1", "2", "36934"} {
		req := httptest.NewRequest(http.MethodPut, "/admin/hotels/"+id+"/index", http.NoBody)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	if got := testutil.ToFloat64(counter); got != before+3 {
		t.Errorf("admin counter = %f, want %f", got, before+3)
	}
}

func TestMiddleware_StatusCode(t *testing.T) {
	r := newRouter()
	counter := HTTPRequestsTotal.WithLabelValues(AreaSearch, "/hotel/suggestion", "GET", "502")
	before := testutil.ToFloat64(counter)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/hotel/suggestion?key=down", http.NoBody))

	if got := testutil.ToFloat64(counter); got != before+1 {
		t.Errorf("502 counter = %f, want %f", got, before+1)
	}
}

func TestMiddleware_UnmatchedRoute(t *testing.T) {
	r := newRouter()
	counter := HTTPRequestsTotal.WithLabelValues(AreaOps, unmatchedRoute, "GET", "404")
	before := testutil.ToFloat64(counter)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", http.NoBody))

	if got := testutil.ToFloat64(counter); got != before+1 {
		t.Errorf("unmatched counter = %f, want %f", got, before+1)
	}
}

func TestAreaOf(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/hotel/list", AreaSearch},
		{"/hotel/suggestion", AreaSearch},
		{"/admin/reindex", AreaAdmin},
		{"/health", AreaOps},
		{"/metrics", AreaOps},
	}
	for _, tc := range tests {
		if got := areaOf(tc.path); got != tc.want {
			t.Errorf("areaOf(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}
