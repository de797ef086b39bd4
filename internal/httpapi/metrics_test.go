package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"custintel/pkg/types"
)

func scrape(t *testing.T) []byte {
	t.Helper()
	mrr := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(mrr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if mrr.Code != http.StatusOK {
		t.Fatalf("/metrics status=%d", mrr.Code)
	}
	return mrr.Body.Bytes()
}

// TestMetricsMiddleware_EmitsRequestCounters verifies that wrapping a handler
// with MetricsMiddleware results in request metrics being exposed via the
// Prometheus /metrics handler.
func TestMetricsMiddleware_EmitsRequestCounters(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	rr := httptest.NewRecorder()
	MetricsMiddleware(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !bytes.Contains(scrape(t), []byte("custintel_http_requests_total")) {
		t.Fatalf("expected custintel_http_requests_total in metrics")
	}
}

func TestRecordPrediction_Outcomes(t *testing.T) {
	recordPrediction("bogus", http.StatusBadRequest)
	recordPrediction("churn", http.StatusInternalServerError)
	recordPrediction("kmeans", http.StatusOK)

	body := scrape(t)
	for _, want := range []string{
		`custintel_predictions_total{model_type="invalid",outcome="client_error"}`,
		`custintel_predictions_total{model_type="churn",outcome="server_error"}`,
		`custintel_predictions_total{model_type="kmeans",outcome="ok"}`,
	} {
		if !bytes.Contains(body, []byte(want)) {
			t.Fatalf("missing series %s", want)
		}
	}
	if bytes.Contains(body, []byte(`model_type="bogus"`)) {
		t.Fatalf("unknown model types must share one label")
	}
}

func TestRecordBindings(t *testing.T) {
	RecordBindings([]types.BindingStatus{{Domain: "churn", Loaded: true}, {Domain: "kmeans"}})
	body := scrape(t)
	if !bytes.Contains(body, []byte(`custintel_model_loaded{domain="churn"} 1`)) {
		t.Fatalf("expected churn gauge at 1")
	}
	if !bytes.Contains(body, []byte(`custintel_model_loaded{domain="kmeans"} 0`)) {
		t.Fatalf("expected kmeans gauge at 0")
	}
}
