package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"custintel/pkg/types"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "custintel",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"path", "method", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "custintel",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)

	httpInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "custintel",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "In-flight HTTP requests",
		},
	)

	predictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "custintel",
			Name:      "predictions_total",
			Help:      "Prediction requests by model type and outcome",
		},
		[]string{"model_type", "outcome"},
	)

	modelLoaded = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "custintel",
			Name:      "model_loaded",
			Help:      "Whether a model is bound for the domain (1) or not (0)",
		},
		[]string{"domain"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal, httpRequestDuration, httpInflight, predictionsTotal, modelLoaded)
}

// statusRecorder wraps http.ResponseWriter to capture status code
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// MetricsMiddleware instruments requests for Prometheus. The path label is
// read after routing so it is the chi route pattern, not the raw URL.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpInflight.Inc()
		defer httpInflight.Dec()

		sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(sr, r)
		path := routePatternOrPath(r)
		status := strconv.Itoa(sr.status)
		httpRequestsTotal.WithLabelValues(path, r.Method, status).Inc()
		httpRequestDuration.WithLabelValues(path, r.Method, status).Observe(time.Since(start).Seconds())
	})
}

// routePatternOrPath returns the chi route pattern if available, otherwise
// a fixed label. This avoids high-cardinality label values.
func routePatternOrPath(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

// Prediction outcomes.
const (
	outcomeOK          = "ok"
	outcomeClientError = "client_error"
	outcomeServerError = "server_error"
)

var knownModelTypes = map[string]bool{"churn": true, "forecast": true, "kmeans": true, "sentiment": true}

// recordPrediction counts one prediction request. Unknown model types share one label.
func recordPrediction(modelType string, status int) {
	if !knownModelTypes[modelType] {
		modelType = "invalid"
	}
	outcome := outcomeOK
	switch {
	case status >= http.StatusInternalServerError:
		outcome = outcomeServerError
	case status >= http.StatusBadRequest:
		outcome = outcomeClientError
	}
	predictionsTotal.WithLabelValues(modelType, outcome).Inc()
}

// RecordBindings publishes which domains have a bound model.
func RecordBindings(status []types.BindingStatus) {
	for _, st := range status {
		v := 0.0
		if st.Loaded {
			v = 1
		}
		modelLoaded.WithLabelValues(st.Domain).Set(v)
	}
}
