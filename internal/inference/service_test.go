package inference

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"custintel/internal/artifact"
	"custintel/internal/estimator"
	"custintel/internal/features"
	"custintel/internal/text"
	"custintel/pkg/types"
)

func mustDecode[T estimator.Estimator](t *testing.T, doc string) T {
	t.Helper()
	est, err := estimator.Decode(json.RawMessage(doc))
	require.NoError(t, err)
	v, ok := est.(T)
	require.True(t, ok, "unexpected kind %s", est.Kind())
	return v
}

func payload(t *testing.T, doc string) features.Payload {
	t.Helper()
	p, err := features.ParsePayload(json.RawMessage(doc))
	require.NoError(t, err)
	return p
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var he interface{ StatusCode() int }
	require.True(t, errors.As(err, &he), "error %v has no status", err)
	return he.StatusCode()
}

// recordingClassifier returns a fixed label and remembers the last row.
type recordingClassifier struct {
	label estimator.Label
	got   []float64
}

func (*recordingClassifier) Kind() estimator.Kind { return "recording" }
func (c *recordingClassifier) Predict(x []float64) (estimator.Label, error) {
	c.got = append([]float64(nil), x...)
	return c.label, nil
}

type countingClusterer struct{ calls int }

func (*countingClusterer) Kind() estimator.Kind { return estimator.KindKMeans }
func (c *countingClusterer) Predict([]float64) (int, error) {
	c.calls++
	return 1, nil
}

type fixedScorer struct{ s text.Scores }

func (f fixedScorer) PolarityScores(string) text.Scores { return f.s }

func TestPredict_Validation(t *testing.T) {
	svc := New(&artifact.Bindings{}, nil, zerolog.Nop())

	_, err := svc.Predict("", payload(t, `[1]`))
	require.True(t, IsInvalidRequest(err))
	assert.Equal(t, MsgMissingPredictFields, err.Error())

	_, err = svc.Predict("churn", features.Payload{})
	assert.Equal(t, MsgMissingPredictFields, err.Error())

	_, err = svc.Predict("bogus", payload(t, `[1]`))
	require.True(t, IsInvalidRequest(err))
	assert.Equal(t, MsgInvalidModelType, err.Error())
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestPredict_ModelsNotLoaded(t *testing.T) {
	svc := New(nil, nil, zerolog.Nop())
	for modelType, msg := range map[string]string{
		"churn":    MsgChurnNotLoaded,
		"forecast": MsgForecastNotLoaded,
		"kmeans":   MsgKMeansNotLoaded,
	} {
		_, err := svc.Predict(modelType, payload(t, `[1,2]`))
		require.True(t, IsModelUnavailable(err), modelType)
		assert.Equal(t, msg, err.Error())
		assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
	}
}

func TestPredictChurn_ScalesOnlyNumericColumns(t *testing.T) {
	clf := &recordingClassifier{label: estimator.IntLabel(1)}
	b := &artifact.Bindings{Churn: artifact.ChurnBinding{
		Model:          clf,
		FeatureColumns: []string{"tenure", "charges"},
		NumericColumns: []string{"charges"},
		Scaler:         mustDecode[estimator.Transformer](t, `{"kind":"standard_scaler","scale":[0.5]}`),
	}}
	svc := New(b, nil, zerolog.Nop())

	res, err := svc.Predict("churn", payload(t, `[100, 30]`))
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 60}, clf.got)
	assert.Equal(t, types.ChurnResult{Prediction: int64(1)}, res)
}

func TestPredictChurn_MappingAndProba(t *testing.T) {
	b := &artifact.Bindings{Churn: artifact.ChurnBinding{
		FeatureColumns: []string{"a", "b"},
	}}
	model := mustDecode[estimator.ProbabilisticClassifier](t, `{"kind":"logistic_regression","coef":[[1,-1]],"intercept":[0],"classes":[0,1]}`)
	b.Churn.Model, b.Churn.Proba = model, model
	svc := New(b, nil, zerolog.Nop())

	res, err := svc.PredictChurn(payload(t, `{"b": 0, "a": 2, "extra": 9}`))
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Prediction)
	require.Len(t, res.Proba, 2)
	assert.Greater(t, res.Proba[1], res.Proba[0])
}

func TestPredictChurn_FloatAndTextLabels(t *testing.T) {
	clf := &recordingClassifier{label: estimator.FloatLabel(0.5)}
	svc := New(&artifact.Bindings{Churn: artifact.ChurnBinding{Model: clf}}, nil, zerolog.Nop())
	res, err := svc.PredictChurn(payload(t, `[1]`))
	require.NoError(t, err)
	assert.Equal(t, json.Number("0.5"), res.Prediction)

	clf.label = estimator.FloatLabel(1)
	res, err = svc.PredictChurn(payload(t, `[1]`))
	require.NoError(t, err)
	out, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"prediction":1.0}`, string(out))
	assert.Contains(t, string(out), `1.0`)

	clf.label = estimator.IntLabel(1)
	res, err = svc.PredictChurn(payload(t, `[1]`))
	require.NoError(t, err)
	out, err = json.Marshal(res)
	require.NoError(t, err)
	assert.Equal(t, `{"prediction":1}`, string(out))

	clf.label = estimator.TextLabel("yes")
	_, err = svc.PredictChurn(payload(t, `[1]`))
	require.True(t, IsInternalFailure(err))
}

func TestPredictChurn_BadFeatures(t *testing.T) {
	svc := New(&artifact.Bindings{Churn: artifact.ChurnBinding{Model: &recordingClassifier{}}}, nil, zerolog.Nop())

	_, err := svc.PredictChurn(payload(t, `"oops"`))
	require.True(t, IsInvalidRequest(err))
	assert.Equal(t, "features must be list or dict", err.Error())

	_, err = svc.PredictChurn(payload(t, `[1, "x"]`))
	assert.True(t, IsInvalidRequest(err))
}

func TestPredictChurn_ModelWidthErrorIsInternal(t *testing.T) {
	model := mustDecode[estimator.Classifier](t, `{"kind":"linear_svc","coef":[[1,-1]],"intercept":[0],"classes":[0,1]}`)
	svc := New(&artifact.Bindings{Churn: artifact.ChurnBinding{Model: model}}, nil, zerolog.Nop())

	_, err := svc.PredictChurn(payload(t, `[1,2,3]`))
	require.True(t, IsInternalFailure(err))
	assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
}

func TestPredictForecast(t *testing.T) {
	model := mustDecode[estimator.Regressor](t, `{"kind":"linear_regression","coef":[1,2],"intercept":3}`)
	svc := New(&artifact.Bindings{Forecast: artifact.ForecastBinding{Model: model, FeatureColumns: []string{"x", "y"}}}, nil, zerolog.Nop())

	res, err := svc.Predict("forecast", payload(t, `{"y": 10}`))
	require.NoError(t, err)
	assert.Equal(t, types.ForecastResult{Prediction: 23}, res)

	res, err = svc.Predict("forecast", payload(t, `[1, 1]`))
	require.NoError(t, err)
	assert.Equal(t, types.ForecastResult{Prediction: 6}, res)
}

func TestPredictKMeans_CountMismatchSkipsModel(t *testing.T) {
	km := &countingClusterer{}
	n := 3
	svc := New(&artifact.Bindings{KMeans: artifact.KMeansBinding{Model: km, ExpectedFeatures: &n}}, nil, zerolog.Nop())

	_, err := svc.Predict("kmeans", payload(t, `[1, 2]`))
	require.True(t, IsShapeMismatch(err))
	assert.Equal(t, "Expected 3 features, got 2.", err.Error())
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	assert.Zero(t, km.calls)

	res, err := svc.Predict("kmeans", payload(t, `[1, 2, 3]`))
	require.NoError(t, err)
	assert.Equal(t, types.ClusterResult{Cluster: 1}, res)
	assert.Equal(t, 1, km.calls)
}

func TestPredictKMeans_ScalesWholeRow(t *testing.T) {
	b := &artifact.Bindings{KMeans: artifact.KMeansBinding{
		Model:          mustDecode[estimator.Clusterer](t, `{"kind":"kmeans","cluster_centers":[[0,0],[1,1]]}`),
		FeatureColumns: []string{"spend", "visits"},
		Scaler:         mustDecode[estimator.Transformer](t, `{"kind":"standard_scaler","mean":[100,10],"scale":[100,10]}`),
	}}
	svc := New(b, nil, zerolog.Nop())

	res, err := svc.PredictKMeans(payload(t, `{"visits": 20, "spend": 200}`))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Cluster)
}

func TestSentimentLabel(t *testing.T) {
	assert.Equal(t, LabelPositive, SentimentLabel(0.05))
	assert.Equal(t, LabelNegative, SentimentLabel(-0.05))
	assert.Equal(t, LabelNeutral, SentimentLabel(0))
	assert.Equal(t, LabelNeutral, SentimentLabel(0.049))
}

func TestSentiment_Lexicon(t *testing.T) {
	b := &artifact.Bindings{Sentiment: artifact.SentimentBinding{
		Kind:     artifact.SentimentLexicon,
		Analyzer: fixedScorer{text.Scores{Pos: 0.6, Neu: 0.4, Compound: 0.62}},
	}}
	svc := New(b, nil, zerolog.Nop())

	res, err := svc.Sentiment("  great service  ")
	require.NoError(t, err)
	assert.Equal(t, "great service", res.Text)
	assert.Equal(t, types.LexiconScores{Pos: 0.6, Neu: 0.4, Compound: 0.62, Label: LabelPositive}, res.Scores)

	_, err = svc.Sentiment("   ")
	require.True(t, IsInvalidRequest(err))
	assert.Equal(t, MsgMissingText, err.Error())
}

func TestSentiment_AvailabilityCheckedBeforeText(t *testing.T) {
	svc := New(&artifact.Bindings{}, nil, zerolog.Nop())
	_, err := svc.Sentiment("")
	require.True(t, IsModelUnavailable(err))
	assert.Equal(t, MsgSentimentNotLoaded, err.Error())
}

func TestSentiment_Unsupported(t *testing.T) {
	svc := New(&artifact.Bindings{Sentiment: artifact.SentimentBinding{Kind: artifact.SentimentUnsupported}}, nil, zerolog.Nop())
	_, err := svc.Sentiment("hello")
	require.True(t, IsUnsupportedFormat(err))
	assert.Equal(t, MsgUnsupportedSentiment, err.Error())
	assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
}

func TestSentiment_Pipeline(t *testing.T) {
	vec := mustDecode[text.Vectorizer](t, `{"kind":"count_vectorizer","vocabulary":{"good":0,"bad":1}}`)
	clf := mustDecode[estimator.ProbabilisticClassifier](t, `{"kind":"multinomial_nb","class_log_prior":[-0.6931,-0.6931],"feature_log_prob":[[-2.3,-0.1],[-0.1,-2.3]],"classes":["negative","positive"]}`)
	b := &artifact.Bindings{Sentiment: artifact.SentimentBinding{
		Kind:       artifact.SentimentPipeline,
		Vectorizer: vec,
		Classifier: clf,
		Proba:      clf,
	}}
	svc := New(b, nil, zerolog.Nop())

	res, err := svc.Sentiment("good good product")
	require.NoError(t, err)
	scores, ok := res.Scores.(types.ClassifierScores)
	require.True(t, ok)
	assert.Equal(t, "positive", scores.Label)
	require.Len(t, scores.Proba, 2)
	assert.Equal(t, "null", string(scores.Classes))

	b.Sentiment.Classes = json.RawMessage(`["negative","positive"]`)
	res, err = svc.Sentiment("bad")
	require.NoError(t, err)
	scores = res.Scores.(types.ClassifierScores)
	assert.Equal(t, "negative", scores.Label)
	assert.JSONEq(t, `["negative","positive"]`, string(scores.Classes))
}

func TestModelsAndReady(t *testing.T) {
	svc := New(&artifact.Bindings{}, nil, zerolog.Nop())
	assert.False(t, svc.Ready())
	m := svc.Models()
	assert.Len(t, m.Models, 4)
	assert.NotNil(t, m.Artifacts)

	files := []types.ArtifactFile{{ID: "kmeans", Path: "/m/kmeans.json", Domain: "kmeans"}}
	svc = New(&artifact.Bindings{Forecast: artifact.ForecastBinding{Model: &constRegressor{}}}, files, zerolog.Nop())
	assert.True(t, svc.Ready())
	assert.Equal(t, files, svc.Models().Artifacts)
}

type constRegressor struct{}

func (constRegressor) Kind() estimator.Kind                { return estimator.KindLinearRegression }
func (constRegressor) Predict([]float64) (float64, error) { return 1, nil }
