package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegister_Idempotent(t *testing.T) {
	Register()
	Register()

	before := testutil.ToFloat64(SuggestionCacheTotal.WithLabelValues("hit"))
	SuggestionCacheTotal.WithLabelValues("hit").Inc()
	if got := testutil.ToFloat64(SuggestionCacheTotal.WithLabelValues("hit")); got != before+1 {
		t.Errorf("suggestion_cache_total{hit} = %f, want %f", got, before+1)
	}
}
