package observability

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics("stresssense")
	m.ObserveEvaluation("hourly", "Danger", 94)
	m.ObserveEvaluation("hourly", "Danger", 100)
	m.ObserveSave(nil)
	m.ObserveSave(errors.New("disk full"))

	if got := testutil.ToFloat64(m.Evaluations.WithLabelValues("hourly", "Danger")); got != 2 {
		t.Fatalf("evaluations=%v, want 2", got)
	}
	if got := testutil.ToFloat64(m.Saves.WithLabelValues("error")); got != 1 {
		t.Fatalf("save errors=%v, want 1", got)
	}
}

func TestMetricsHandlerExposesNamespace(t *testing.T) {
	m := NewMetrics("stresssense")
	m.ObserveRequest(http.MethodGet, "/api/history", http.StatusOK, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `stresssense_http_requests_total{method="GET",route="/api/history",status="200"} 1`) {
		t.Fatalf("metrics body missing request counter:\n%s", rec.Body.String())
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveEvaluation("hourly", "Healthy", 0)
	m.ObserveSave(nil)
	m.ObserveRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
}
