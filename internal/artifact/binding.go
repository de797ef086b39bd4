package artifact

import (
	"encoding/json"

	"custintel/internal/estimator"
	"custintel/internal/text"
	"custintel/pkg/types"
)

// Provenance records where a binding came from.
type Provenance struct {
	Source  string
	Shape   Shape
	Variant string
}

// ChurnBinding is the resolved churn classifier. A nil Model means not loaded.
type ChurnBinding struct {
	Model estimator.Classifier
	// Proba is Model when it reports probabilities, nil otherwise.
	Proba          estimator.ProbabilisticClassifier
	FeatureColumns []string
	NumericColumns []string
	// Scaler applies to NumericColumns only.
	Scaler estimator.Transformer
	Provenance
}

func (b ChurnBinding) Loaded() bool { return b.Model != nil }

// ForecastBinding is the resolved sales regressor. FeatureColumns is nil when
// no training column order is known.
type ForecastBinding struct {
	Model          estimator.Regressor
	FeatureColumns []string
	Provenance
}

func (b ForecastBinding) Loaded() bool { return b.Model != nil }

// KMeansBinding is the resolved customer segmentation model.
type KMeansBinding struct {
	Model          estimator.Clusterer
	FeatureColumns []string
	// Scaler applies to the whole row.
	Scaler estimator.Transformer
	// ExpectedFeatures, when set, is the exact row width required.
	ExpectedFeatures *int
	Provenance
}

func (b KMeansBinding) Loaded() bool { return b.Model != nil }

// SentimentKind is the recognised shape of the sentiment artifact.
type SentimentKind int

const (
	SentimentUnavailable SentimentKind = iota
	SentimentLexicon
	SentimentPipeline
	SentimentUnsupported
)

// SentimentBinding is the resolved sentiment model. Only the fields of its Kind are set.
type SentimentBinding struct {
	Kind SentimentKind

	Analyzer text.PolarityScorer

	Vectorizer text.Vectorizer
	Classifier estimator.Classifier
	Proba      estimator.ProbabilisticClassifier
	// Classes is the bundle's class list as written, or nil.
	Classes json.RawMessage

	Provenance
}

func (b SentimentBinding) Loaded() bool { return b.Kind != SentimentUnavailable }

// Bindings holds every domain's binding. It is built once and only read afterwards.
type Bindings struct {
	Churn     ChurnBinding
	Forecast  ForecastBinding
	KMeans    KMeansBinding
	Sentiment SentimentBinding
}

// AnyUsable reports whether at least one domain can serve predictions.
func (b *Bindings) AnyUsable() bool {
	s := b.Sentiment.Kind
	return b.Churn.Loaded() || b.Forecast.Loaded() || b.KMeans.Loaded() ||
		s == SentimentLexicon || s == SentimentPipeline
}

// Status summarises the bindings in domain order.
func (b *Bindings) Status() []types.BindingStatus {
	churn := types.BindingStatus{
		Domain:         string(DomainChurn),
		Loaded:         b.Churn.Loaded(),
		FeatureColumns: b.Churn.FeatureColumns,
		NumericColumns: b.Churn.NumericColumns,
		Scaled:         b.Churn.Scaler != nil,
		Probabilities:  b.Churn.Proba != nil,
	}
	fillProvenance(&churn, b.Churn.Provenance, b.Churn.Model)

	forecast := types.BindingStatus{
		Domain:         string(DomainForecast),
		Loaded:         b.Forecast.Loaded(),
		FeatureColumns: b.Forecast.FeatureColumns,
	}
	fillProvenance(&forecast, b.Forecast.Provenance, b.Forecast.Model)

	km := types.BindingStatus{
		Domain:           string(DomainKMeans),
		Loaded:           b.KMeans.Loaded(),
		FeatureColumns:   b.KMeans.FeatureColumns,
		Scaled:           b.KMeans.Scaler != nil,
		ExpectedFeatures: b.KMeans.ExpectedFeatures,
	}
	fillProvenance(&km, b.KMeans.Provenance, b.KMeans.Model)

	sent := types.BindingStatus{
		Domain:        string(DomainSentiment),
		Loaded:        b.Sentiment.Loaded(),
		Probabilities: b.Sentiment.Proba != nil,
	}
	var sentModel estimator.Estimator
	switch b.Sentiment.Kind {
	case SentimentLexicon:
		if est, ok := b.Sentiment.Analyzer.(estimator.Estimator); ok {
			sentModel = est
		}
	case SentimentPipeline:
		sentModel = b.Sentiment.Classifier
	}
	fillProvenance(&sent, b.Sentiment.Provenance, sentModel)

	return []types.BindingStatus{churn, forecast, km, sent}
}

func fillProvenance(st *types.BindingStatus, p Provenance, model estimator.Estimator) {
	st.Source = p.Source
	st.Shape = string(p.Shape)
	st.Variant = p.Variant
	if model != nil {
		st.ModelKind = string(model.Kind())
	}
}
