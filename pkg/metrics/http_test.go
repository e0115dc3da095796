package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	dto "github.com/prometheus/client_model/go"
)

func TestMiddlewareRecordsRequests(t *testing.T) {
	m := NewHTTPMetrics()

	router := chi.NewRouter()
	router.Use(m.Middleware)
	router.Get("/widgets/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/widgets/42", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("unexpected status %d", rec.Code)
	}

	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	var requestsFamily *dto.MetricFamily
	for _, fam := range families {
		if fam.GetName() == "http_requests_total" {
			requestsFamily = fam
		}
	}
	if requestsFamily == nil {
		t.Fatal("http_requests_total not registered")
	}

	if len(requestsFamily.GetMetric()) != 1 {
		t.Fatalf("expected one labelled series, got %d", len(requestsFamily.GetMetric()))
	}

	metric := requestsFamily.GetMetric()[0]
	labels := map[string]string{}
	for _, pair := range metric.GetLabel() {
		labels[pair.GetName()] = pair.GetValue()
	}
	if labels["route"] != "/widgets/{id}" {
		t.Fatalf("expected route pattern label, got %q", labels["route"])
	}
	if labels["status"] != "204" {
		t.Fatalf("expected status 204, got %q", labels["status"])
	}
	if metric.GetCounter().GetValue() != 1 {
		t.Fatalf("expected count 1, got %f", metric.GetCounter().GetValue())
	}
}

func TestHandlerServesScrape(t *testing.T) {
	m := NewHTTPMetrics()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected scrape status %d", rec.Code)
	}
}
