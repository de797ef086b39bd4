package inference

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"custintel/internal/artifact"
	"custintel/internal/estimator"
	"custintel/internal/features"
	"custintel/pkg/types"
)

// Sentiment labels derived from the compound score.
const (
	LabelPositive = "positive"
	LabelNegative = "negative"
	LabelNeutral  = "neutral"
)

// Service answers prediction requests from a fixed set of bindings.
type Service struct {
	b     *artifact.Bindings
	files []types.ArtifactFile
	log   zerolog.Logger
}

// New builds a Service. files is the artifact listing reported by Models.
func New(b *artifact.Bindings, files []types.ArtifactFile, log zerolog.Logger) *Service {
	if b == nil {
		b = &artifact.Bindings{}
	}
	return &Service{b: b, files: files, log: log.With().Str("component", "inference").Logger()}
}

// Predict dispatches a feature payload to the named model.
func (s *Service) Predict(modelType string, payload features.Payload) (types.PredictionResult, error) {
	if modelType == "" || payload.IsNull() {
		return nil, ErrInvalidRequest(MsgMissingPredictFields)
	}
	switch modelType {
	case "churn":
		return s.PredictChurn(payload)
	case "forecast":
		return s.PredictForecast(payload)
	case "kmeans":
		return s.PredictKMeans(payload)
	default:
		return nil, ErrInvalidRequest(MsgInvalidModelType)
	}
}

// PredictChurn classifies one customer. Only the numeric columns go through
// the scaler; the rest of the row is left as sent.
func (s *Service) PredictChurn(payload features.Payload) (types.ChurnResult, error) {
	cb := s.b.Churn
	if !cb.Loaded() {
		return types.ChurnResult{}, ErrModelUnavailable(MsgChurnNotLoaded)
	}
	row, err := buildRow(payload, cb.FeatureColumns)
	if err != nil {
		return types.ChurnResult{}, err
	}
	if cb.Scaler != nil && len(cb.NumericColumns) > 0 && len(cb.FeatureColumns) > 0 {
		if err := scaleColumns(row, cb.FeatureColumns, cb.NumericColumns, cb.Scaler); err != nil {
			return types.ChurnResult{}, internalFailure(err)
		}
	}
	label, err := cb.Model.Predict(row)
	if err != nil {
		return types.ChurnResult{}, internalFailure(err)
	}
	pred, err := churnPrediction(label)
	if err != nil {
		return types.ChurnResult{}, internalFailure(err)
	}
	res := types.ChurnResult{Prediction: pred}
	if cb.Proba != nil {
		proba, err := cb.Proba.PredictProba(row)
		if err != nil {
			return types.ChurnResult{}, internalFailure(err)
		}
		res.Proba = proba
	}
	return res, nil
}

// PredictForecast returns the predicted sales value.
func (s *Service) PredictForecast(payload features.Payload) (types.ForecastResult, error) {
	fb := s.b.Forecast
	if !fb.Loaded() {
		return types.ForecastResult{}, ErrModelUnavailable(MsgForecastNotLoaded)
	}
	row, err := buildRow(payload, fb.FeatureColumns)
	if err != nil {
		return types.ForecastResult{}, err
	}
	v, err := fb.Model.Predict(row)
	if err != nil {
		return types.ForecastResult{}, internalFailure(err)
	}
	return types.ForecastResult{Prediction: v}, nil
}

// PredictKMeans assigns a customer segment. A recorded feature count is
// enforced before the model or scaler sees the row.
func (s *Service) PredictKMeans(payload features.Payload) (types.ClusterResult, error) {
	kb := s.b.KMeans
	if !kb.Loaded() {
		return types.ClusterResult{}, ErrModelUnavailable(MsgKMeansNotLoaded)
	}
	row, err := buildRow(payload, kb.FeatureColumns)
	if err != nil {
		return types.ClusterResult{}, err
	}
	if kb.ExpectedFeatures != nil && len(row) != *kb.ExpectedFeatures {
		return types.ClusterResult{}, ErrShapeMismatch(*kb.ExpectedFeatures, len(row))
	}
	if kb.Scaler != nil {
		if row, err = kb.Scaler.Transform(row); err != nil {
			return types.ClusterResult{}, internalFailure(err)
		}
	}
	c, err := kb.Model.Predict(row)
	if err != nil {
		return types.ClusterResult{}, internalFailure(err)
	}
	return types.ClusterResult{Cluster: c}, nil
}

// Sentiment scores free text with whichever sentiment model is bound.
func (s *Service) Sentiment(text string) (types.SentimentResponse, error) {
	sb := s.b.Sentiment
	if sb.Kind == artifact.SentimentUnavailable {
		return types.SentimentResponse{}, ErrModelUnavailable(MsgSentimentNotLoaded)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return types.SentimentResponse{}, ErrInvalidRequest(MsgMissingText)
	}
	switch sb.Kind {
	case artifact.SentimentLexicon:
		sc := sb.Analyzer.PolarityScores(text)
		return types.SentimentResponse{Text: text, Scores: types.LexiconScores{
			Neg:      sc.Neg,
			Neu:      sc.Neu,
			Pos:      sc.Pos,
			Compound: sc.Compound,
			Label:    SentimentLabel(sc.Compound),
		}}, nil
	case artifact.SentimentPipeline:
		scores, err := classifyText(sb, text)
		if err != nil {
			return types.SentimentResponse{}, internalFailure(err)
		}
		return types.SentimentResponse{Text: text, Scores: scores}, nil
	default:
		return types.SentimentResponse{}, unsupportedFormatError{msg: MsgUnsupportedSentiment}
	}
}

// SentimentLabel buckets a compound polarity score.
func SentimentLabel(compound float64) string {
	switch {
	case compound >= 0.05:
		return LabelPositive
	case compound <= -0.05:
		return LabelNegative
	default:
		return LabelNeutral
	}
}

// Models reports the bindings and the artifact files seen at startup.
func (s *Service) Models() types.ModelsResponse {
	files := s.files
	if files == nil {
		files = []types.ArtifactFile{}
	}
	return types.ModelsResponse{Models: s.b.Status(), Artifacts: files}
}

// Ready reports whether any domain can serve predictions.
func (s *Service) Ready() bool { return s.b.AnyUsable() }

func classifyText(sb artifact.SentimentBinding, text string) (types.ClassifierScores, error) {
	row, err := sb.Vectorizer.TransformText(text)
	if err != nil {
		return types.ClassifierScores{}, err
	}
	label, err := sb.Classifier.Predict(row)
	if err != nil {
		return types.ClassifierScores{}, err
	}
	out := types.ClassifierScores{Label: label.String()}
	if sb.Proba != nil {
		if out.Proba, err = sb.Proba.PredictProba(row); err != nil {
			return types.ClassifierScores{}, err
		}
		out.Classes = sb.Classes
		if out.Classes == nil {
			out.Classes = json.RawMessage("null")
		}
	}
	return out, nil
}

func buildRow(p features.Payload, columns []string) ([]float64, error) {
	row, err := features.BuildRow(p, columns)
	if err != nil {
		return nil, ErrInvalidRequest(err.Error())
	}
	return row, nil
}

// scaleColumns transforms, in place, the entries of row named by numeric.
// Numeric columns missing from the full column order are skipped.
func scaleColumns(row []float64, columns, numeric []string, scaler estimator.Transformer) error {
	pos := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, dup := pos[c]; !dup {
			pos[c] = i
		}
	}
	idx := make([]int, 0, len(numeric))
	for _, c := range numeric {
		if i, ok := pos[c]; ok && i < len(row) {
			idx = append(idx, i)
		}
	}
	if len(idx) == 0 {
		return nil
	}
	sub := make([]float64, len(idx))
	for j, i := range idx {
		sub[j] = row[i]
	}
	scaled, err := scaler.Transform(sub)
	if err != nil {
		return fmt.Errorf("scale numeric columns: %w", err)
	}
	if len(scaled) != len(idx) {
		return fmt.Errorf("scaler returned %d values for %d columns", len(scaled), len(idx))
	}
	for j, i := range idx {
		row[i] = scaled[j]
	}
	return nil
}

// churnPrediction renders a class label as an integer when it is integer-like
// and as a float otherwise. Floats always carry a fraction on the wire, so
// 1.0 stays distinguishable from 1.
func churnPrediction(l estimator.Label) (any, error) {
	if n, ok := l.Int(); ok {
		return n, nil
	}
	f, err := l.Float()
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, errors.New("churn label " + l.String() + " is not numeric")
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return json.Number(s), nil
}
