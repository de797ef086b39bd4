package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"custintel/internal/features"
	"custintel/pkg/types"
)

const msgInvalidJSON = "invalid JSON body"

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Predict(modelType string, payload features.Payload) (types.PredictionResult, error)
	Sentiment(text string) (types.SentimentResponse, error)
	Models() types.ModelsResponse
	Ready() bool
}

type handlers struct {
	svc Service
}

func NewMux(svc Service) http.Handler {
	RecordBindings(svc.Models().Models)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	r.Use(middleware.Compress(5))
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
			MaxAge:         300,
		}))
	}
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	h := &handlers{svc: svc}
	r.Get("/", h.home)
	r.Post("/predict", h.predict)
	r.Post("/sentiment", h.sentiment)
	r.Get("/models", h.models)
	r.Get("/healthz", h.healthz)
	r.Get("/readyz", h.readyz)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	MountSwagger(r)

	return r
}

// home godoc
// @Summary      Liveness banner
// @Tags         meta
// @Produce      json
// @Success      200  {object}  types.MessageResponse
// @Router       / [get]
func (h *handlers) home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.MessageResponse{Message: "Customer Intelligence API is running."})
}

// predict godoc
// @Summary      Run a tabular model
// @Description  Scores one row with the churn classifier, the sales forecaster or the customer segmentation model.
// @Description  features is either a list in training column order or an object keyed by column name.
// @Tags         inference
// @Accept       json
// @Produce      json
// @Param        request  body      types.PredictRequest  true  "Model type and features"
// @Success      200      {object}  types.ChurnResult
// @Success      200      {object}  types.ForecastResult
// @Success      200      {object}  types.ClusterResult
// @Failure      400      {object}  types.ErrorResponse
// @Failure      500      {object}  types.ErrorResponse
// @Router       /predict [post]
func (h *handlers) predict(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req types.PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, msgInvalidJSON)
		recordPrediction("", http.StatusBadRequest)
		logRequestEnd(r, "predict", http.StatusBadRequest, start, err)
		return
	}
	payload, err := features.ParsePayload(req.Features)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, msgInvalidJSON)
		recordPrediction(req.ModelType, http.StatusBadRequest)
		logRequestEnd(r, "predict", http.StatusBadRequest, start, err)
		return
	}
	logRequestDebug(r, "predict request", map[string]any{
		"model_type": req.ModelType,
		"mapping":    payload.IsMapping(),
		"n_features": payload.Len(),
	})

	res, err := h.svc.Predict(req.ModelType, payload)
	if err != nil {
		status := statusFor(err)
		writeJSONError(w, status, err.Error())
		recordPrediction(req.ModelType, status)
		logRequestEnd(r, "predict", status, start, err)
		return
	}
	status := writeJSON(w, http.StatusOK, res)
	recordPrediction(res.ModelType(), status)
	logRequestEnd(r, "predict", status, start, nil)
}

// sentiment godoc
// @Summary      Score text sentiment
// @Tags         inference
// @Accept       json
// @Produce      json
// @Param        request  body      types.SentimentRequest  true  "Text to score"
// @Success      200      {object}  types.SentimentResponse
// @Failure      400      {object}  types.ErrorResponse
// @Failure      500      {object}  types.ErrorResponse
// @Router       /sentiment [post]
func (h *handlers) sentiment(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req types.SentimentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, msgInvalidJSON)
		recordPrediction("sentiment", http.StatusBadRequest)
		logRequestEnd(r, "sentiment", http.StatusBadRequest, start, err)
		return
	}
	logRequestDebug(r, "sentiment request", map[string]any{"text_len": len(req.Text)})

	res, err := h.svc.Sentiment(req.Text)
	if err != nil {
		status := statusFor(err)
		writeJSONError(w, status, err.Error())
		recordPrediction("sentiment", status)
		logRequestEnd(r, "sentiment", status, start, err)
		return
	}
	status := writeJSON(w, http.StatusOK, res)
	recordPrediction("sentiment", status)
	logRequestEnd(r, "sentiment", status, start, nil)
}

// models godoc
// @Summary      Loaded models
// @Description  Which artifact each domain resolved to, and the artifact files found at startup.
// @Tags         meta
// @Produce      json
// @Success      200  {object}  types.ModelsResponse
// @Router       /models [get]
func (h *handlers) models(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Models())
}

// healthz godoc
// @Summary      Liveness probe
// @Tags         meta
// @Produce      plain
// @Success      200  {string}  string  "ok"
// @Router       /healthz [get]
func (h *handlers) healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// readyz godoc
// @Summary      Readiness probe
// @Description  Ready once at least one domain has a usable model.
// @Tags         meta
// @Produce      plain
// @Success      200  {string}  string  "ready"
// @Failure      503  {string}  string  "no models loaded"
// @Router       /readyz [get]
func (h *handlers) readyz(w http.ResponseWriter, r *http.Request) {
	if h.svc.Ready() {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
		return
	}
	w.WriteHeader(http.StatusServiceUnavailable)
	_, _ = w.Write([]byte("no models loaded"))
}
