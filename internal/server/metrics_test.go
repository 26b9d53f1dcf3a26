package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/agbru/shorcalc/internal/logging"
)

// testLogger discards everything; it satisfies logging.Logger.
type testLogger struct{}

func newTestLogger() *testLogger                                  { return &testLogger{} }
func (l *testLogger) Info(_ string, _ ...logging.Field)           {}
func (l *testLogger) Error(_ string, _ error, _ ...logging.Field) {}
func (l *testLogger) Debug(_ string, _ ...logging.Field)          {}

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.WritePrometheus(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	if rec.Code != http.StatusOK {
		t.Fatalf("scrape status = %d", rec.Code)
	}
	return rec.Body.String()
}

func TestNewMetrics(t *testing.T) {
	t.Parallel()
	m := NewMetrics()
	if m.handler == nil || m.registry == nil {
		t.Fatal("metrics not initialized")
	}
	// Independent registries: a second instance must not panic on
	// duplicate registration.
	_ = NewMetrics()
}

func TestMetrics_WritePrometheus(t *testing.T) {
	t.Parallel()
	m := NewMetrics()
	m.IncrementActiveRequests()
	m.IncrementActiveRequests()
	m.DecrementActiveRequests()
	m.RecordRequest("/api/factor", 200, 3*time.Millisecond)
	m.RecordOutcome("factor pair")

	body := scrape(t, m)
	for _, want := range []string{
		"shorcalc_active_requests 1",
		`shorcalc_requests_total{code="200",endpoint="/api/factor"} 1`,
		"shorcalc_request_duration_seconds_bucket",
		`shorcalc_factor_outcomes_total{kind="factor pair"} 1`,
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output does not contain %q", want)
		}
	}
}

func TestServer_metricsMiddleware(t *testing.T) {
	t.Parallel()
	s := &Server{metrics: NewMetrics(), logger: newTestLogger()}

	called := false
	h := s.metricsMiddleware(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	})
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/api/prime", http.NoBody))

	if !called {
		t.Fatal("next handler was not called")
	}
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
	body := scrape(t, s.metrics)
	if !strings.Contains(body, `shorcalc_requests_total{code="418",endpoint="/api/prime"} 1`) {
		t.Error("request was not counted with its status code")
	}
	if !strings.Contains(body, "shorcalc_active_requests 0") {
		t.Error("active requests gauge should return to zero")
	}
}

func TestServer_handleMetrics(t *testing.T) {
	t.Parallel()
	s := &Server{metrics: NewMetrics(), logger: newTestLogger()}

	rec := httptest.NewRecorder()
	s.handleMetrics(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "shorcalc_") {
		t.Errorf("GET /metrics: status %d", rec.Code)
	}

	for _, method := range []string{http.MethodPost, http.MethodPut} {
		rec := httptest.NewRecorder()
		s.handleMetrics(rec, httptest.NewRequest(method, "/metrics", http.NoBody))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s /metrics: status = %d, want %d", method, rec.Code, http.StatusMethodNotAllowed)
		}
	}
}
