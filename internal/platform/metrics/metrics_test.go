package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorder_CountsRunsAndFailures(t *testing.T) {
	t.Parallel()

	r := New(WithNamespace("test"))
	r.RunCompleted(120, 2*time.Second)
	r.RunFailed(time.Second)
	r.RecipeFailed("hidden_gems")
	r.RecipeFailed("hidden_gems")
	r.ArtifactsWritten(5)
	r.RecordsIngested(0)

	if got := testutil.ToFloat64(r.runsTotal.WithLabelValues("success")); got != 1 {
		t.Fatalf("expected 1 successful run, got %v", got)
	}
	if got := testutil.ToFloat64(r.recipeFailures.WithLabelValues("hidden_gems")); got != 2 {
		t.Fatalf("expected 2 recipe failures, got %v", got)
	}
	if got := testutil.ToFloat64(r.artifactsWritten); got != 5 {
		t.Fatalf("expected 5 artifacts, got %v", got)
	}
	if got := testutil.ToFloat64(r.recordsIngested); got != 0 {
		t.Fatalf("expected no ingested records, got %v", got)
	}
}

func TestRecorder_Handler(t *testing.T) {
	t.Parallel()

	r := New()
	r.HTTPRequest("/api/players", http.MethodGet, http.StatusOK, 10*time.Millisecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "fpl_analyst_http_requests_total") {
		t.Fatalf("expected http request counter in exposition output")
	}
}

func TestRecorder_NilIsNoop(t *testing.T) {
	t.Parallel()

	var r *Recorder
	r.RunCompleted(1, time.Second)
	r.RecipeFailed("x")
	r.HTTPRequest("/", http.MethodGet, http.StatusOK, time.Millisecond)
	r.CacheLookup("artifacts", true)
	r.BreakerState("postgres", 2)
}

func TestRecorder_CacheAndBreaker(t *testing.T) {
	t.Parallel()

	r := New()
	r.CacheLookup("artifacts", true)
	r.CacheLookup("artifacts", true)
	r.CacheLookup("artifacts", false)
	r.BreakerState("postgres", 2)

	if got := testutil.ToFloat64(r.cacheLookups.WithLabelValues("artifacts", "hit")); got != 2 {
		t.Fatalf("expected 2 cache hits, got %v", got)
	}
	if got := testutil.ToFloat64(r.cacheLookups.WithLabelValues("artifacts", "miss")); got != 1 {
		t.Fatalf("expected 1 cache miss, got %v", got)
	}
	if got := testutil.ToFloat64(r.breakerState.WithLabelValues("postgres")); got != 2 {
		t.Fatalf("expected open breaker gauge, got %v", got)
	}
}
