package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mining-cost-calculator/internal/estimator"
	"mining-cost-calculator/internal/estimator/estimatortest"
	"mining-cost-calculator/internal/observability"
	"mining-cost-calculator/internal/testutil"
	"mining-cost-calculator/internal/ui"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newRouter(t *testing.T, calc estimator.Calculator) http.Handler {
	t.Helper()

	page, err := ui.NewHandler(ui.NewSessionStore(calc, time.Hour), calc)
	if err != nil {
		t.Fatalf("ui.NewHandler: %v", err)
	}
	return NewRouter(page)
}

func TestNewRouterHealthEndpoint(t *testing.T) {
	router := newRouter(t, &estimatortest.FakeCalculator{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := testutil.ExecuteRequest(req, router)

	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	if body := w.Body.String(); body != "ok" {
		t.Fatalf("expected body %q, got %q", "ok", body)
	}
}

func TestNewRouterMetricsEndpoint(t *testing.T) {
	router := newRouter(t, &estimatortest.FakeCalculator{})

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/metrics", nil), router)

	testutil.CheckResponseCode(t, http.StatusOK, w.Code)
	if !bytes.Contains(w.Body.Bytes(), []byte("go_goroutines")) {
		t.Fatal("expected Go runtime metrics")
	}
}

func TestNewRouterAPICalculateSetsHeaderAndOmitsRequestIDInBody(t *testing.T) {
	observability.Logger = zap.NewNop()
	if err := estimator.InitMetrics(); err != nil {
		t.Fatalf("initializing estimator metrics: %v", err)
	}

	router := newRouter(t, &estimatortest.FakeCalculator{Result: estimatortest.SampleResult})
	body := []byte(`{"hash_rate":"110","power_consumption":"3250","electricity_cost":"0.08","initial_investment":"5000"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/calculate", bytes.NewReader(body))
	w := testutil.ExecuteRequest(req, router)

	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	requestID := w.Result().Header.Get("X-Request-ID")
	if requestID == "" {
		t.Fatal("expected X-Request-ID header to be set")
	}
	if _, err := uuid.Parse(requestID); err != nil {
		t.Fatalf("expected valid UUID in X-Request-ID, got %q: %v", requestID, err)
	}

	var payload map[string]any
	testutil.DecodeJSONBody(t, w.Result().Body, &payload)

	if _, ok := payload["request_id"]; ok {
		t.Fatal("did not expect request_id field in success JSON body")
	}
	if len(payload) != 11 {
		t.Fatalf("expected 11 result fields, got %d", len(payload))
	}
	if got, ok := payload["breakevenTimeline"].(float64); !ok || got != 39.2 {
		t.Fatalf("expected breakevenTimeline 39.2, got %#v", payload["breakevenTimeline"])
	}
}

func TestNewRouterServesPage(t *testing.T) {
	router := newRouter(t, &estimatortest.FakeCalculator{})

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/", nil), router)

	testutil.CheckResponseCode(t, http.StatusOK, w.Code)
	if !bytes.Contains(w.Body.Bytes(), []byte("Enter Your Mining Parameters")) {
		t.Fatal("expected the calculator page")
	}
}
