package types

import "encoding/json"

// PredictRequest is the body of POST /predict.
type PredictRequest struct {
	// Which model to run: churn, forecast or kmeans.
	// example: churn
	ModelType string `json:"model_type" example:"churn"`
	// Either an ordered list of numbers or an object of column name to number.
	// Missing columns of an object are filled with 0.
	Features json.RawMessage `json:"features" swaggertype:"object"`
}

// SentimentRequest is the body of POST /sentiment.
type SentimentRequest struct {
	// Text to score.
	// example: The delivery was quick and the support team was great!
	Text string `json:"text" example:"The delivery was quick and the support team was great!"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: Invalid model_type. Use 'churn', 'forecast', or 'kmeans'.
	Error string `json:"error" example:"Invalid model_type. Use 'churn', 'forecast', or 'kmeans'."`
}

// MessageResponse is returned by GET /.
type MessageResponse struct {
	// example: Customer Intelligence API is running.
	Message string `json:"message" example:"Customer Intelligence API is running."`
}

// PredictionResult is one of ChurnResult, ForecastResult or ClusterResult.
type PredictionResult interface {
	ModelType() string
}

// ChurnResult is the churn classifier output.
type ChurnResult struct {
	// Predicted label: an integer for integer class labels, otherwise a float
	// that always carries a fraction (1.0).
	// example: 1
	Prediction any `json:"prediction" swaggertype:"number" example:"1"`
	// Per-class probabilities, when the model provides them.
	Proba []float64 `json:"proba,omitempty"`
}

func (ChurnResult) ModelType() string { return "churn" }

// ForecastResult is the sales forecast output.
type ForecastResult struct {
	// example: 1834.27
	Prediction float64 `json:"prediction" example:"1834.27"`
}

func (ForecastResult) ModelType() string { return "forecast" }

// ClusterResult is the customer segment assigned by k-means.
type ClusterResult struct {
	// example: 2
	Cluster int `json:"cluster" example:"2"`
}

func (ClusterResult) ModelType() string { return "kmeans" }

// LexiconScores are the polarity scores of a lexicon analyzer plus the derived label.
type LexiconScores struct {
	Neg      float64 `json:"neg"`
	Neu      float64 `json:"neu"`
	Pos      float64 `json:"pos"`
	Compound float64 `json:"compound"`
	// positive, negative or neutral.
	Label string `json:"label" example:"positive"`
}

// ClassifierScores are the output of a vectorizer + classifier sentiment model.
type ClassifierScores struct {
	Label string    `json:"label" example:"positive"`
	Proba []float64 `json:"proba,omitempty"`
	// Class list recorded with the model; null when the artifact has none.
	Classes json.RawMessage `json:"classes,omitempty" swaggertype:"array,string"`
}

// SentimentResponse is returned by POST /sentiment. Scores is a LexiconScores
// or a ClassifierScores depending on the loaded artifact.
type SentimentResponse struct {
	Text   string `json:"text"`
	Scores any    `json:"scores"`
}

// ModelsResponse is returned by GET /models.
type ModelsResponse struct {
	// Resolved binding per domain.
	Models []BindingStatus `json:"models"`
	// Artifact files found in the models directory.
	Artifacts []ArtifactFile `json:"artifacts"`
}
