package artifact

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"custintel/internal/common/jsonutil"
	"custintel/internal/estimator"
	"custintel/internal/text"
)

// Resolver binds each domain to the artifacts found in one directory.
// Resolution never fails: a domain with no usable artifact stays unloaded.
type Resolver struct {
	dir string
	log zerolog.Logger
}

func NewResolver(dir string, log zerolog.Logger) *Resolver {
	return &Resolver{dir: dir, log: log.With().Str("component", "artifact").Logger()}
}

// ResolveAll resolves every domain.
func (r *Resolver) ResolveAll() *Bindings {
	return &Bindings{
		Churn:     r.ResolveChurn(),
		Forecast:  r.ResolveForecast(),
		KMeans:    r.ResolveKMeans(),
		Sentiment: r.ResolveSentiment(),
	}
}

func (r *Resolver) loaded(d Domain, p Provenance, kind estimator.Kind) {
	r.log.Info().
		Str("domain", string(d)).
		Str("path", p.Source).
		Str("shape", string(p.Shape)).
		Str("variant", p.Variant).
		Str("model_kind", string(kind)).
		Msg("model bound")
}

func (r *Resolver) unavailable(d Domain) {
	r.log.Warn().Str("domain", string(d)).Msg("no usable artifact; domain disabled")
}

type churnSingleDoc struct {
	Model          json.RawMessage `json:"model"`
	FeatureColumns []string        `json:"feature_columns"`
	NumericColumns []string        `json:"numeric_columns"`
	Scaler         json.RawMessage `json:"scaler"`
}

type churnVariantsDoc struct {
	Models         jsonutil.Object `json:"models"`
	FeatureColumns []string        `json:"feature_columns"`
	NumericColumns []string        `json:"numeric_columns"`
	Scaler         json.RawMessage `json:"scaler"`
}

type churnVariant struct {
	Model      json.RawMessage `json:"model"`
	UsesScaler bool            `json:"uses_scaler"`
}

// ResolveChurn prefers the single bundle and falls back to the variant dictionary.
func (r *Resolver) ResolveChurn() ChurnBinding {
	if b, ok := r.churnSingle(); ok {
		return b
	}
	if b, ok := r.churnVariants(); ok {
		return b
	}
	r.unavailable(DomainChurn)
	return ChurnBinding{}
}

func (r *Resolver) churnSingle() (ChurnBinding, bool) {
	path, raw, ok := r.read(FileChurnSingle)
	if !ok {
		return ChurnBinding{}, false
	}
	var doc churnSingleDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		r.skip(path, err)
		return ChurnBinding{}, false
	}
	if jsonutil.IsNull(doc.Model) {
		r.skip(path, errNoModel)
		return ChurnBinding{}, false
	}
	model, err := decodeAs[estimator.Classifier](doc.Model, "classifier")
	if err != nil {
		r.skip(path, err)
		return ChurnBinding{}, false
	}
	scaler, err := decodeOptional[estimator.Transformer](doc.Scaler, "transformer")
	if err != nil {
		r.skip(path, err)
		return ChurnBinding{}, false
	}
	b := ChurnBinding{
		Model:          model,
		FeatureColumns: doc.FeatureColumns,
		NumericColumns: doc.NumericColumns,
		Scaler:         scaler,
		Provenance:     Provenance{Source: path, Shape: ShapeSingle},
	}
	b.Proba, _ = model.(estimator.ProbabilisticClassifier)
	r.loaded(DomainChurn, b.Provenance, model.Kind())
	return b, true
}

func (r *Resolver) churnVariants() (ChurnBinding, bool) {
	path, raw, ok := r.read(FileChurnVariants)
	if !ok {
		return ChurnBinding{}, false
	}
	var doc churnVariantsDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		r.skip(path, err)
		return ChurnBinding{}, false
	}
	key, ok := chooseKey(doc.Models, ChurnVariantPreference)
	if !ok {
		r.skip(path, errors.New("no model variants"))
		return ChurnBinding{}, false
	}
	entry, _ := doc.Models.Get(key)
	var v churnVariant
	if err := json.Unmarshal(entry, &v); err != nil {
		r.skip(path, fmt.Errorf("variant %s: %w", key, err))
		return ChurnBinding{}, false
	}
	if jsonutil.IsNull(v.Model) {
		r.skip(path, fmt.Errorf("variant %s: %w", key, errNoModel))
		return ChurnBinding{}, false
	}
	model, err := decodeAs[estimator.Classifier](v.Model, "classifier")
	if err != nil {
		r.skip(path, fmt.Errorf("variant %s: %w", key, err))
		return ChurnBinding{}, false
	}
	var scaler estimator.Transformer
	if v.UsesScaler {
		scaler, err = decodeOptional[estimator.Transformer](doc.Scaler, "transformer")
		if err != nil {
			r.skip(path, err)
			return ChurnBinding{}, false
		}
	}
	b := ChurnBinding{
		Model:          model,
		FeatureColumns: doc.FeatureColumns,
		NumericColumns: doc.NumericColumns,
		Scaler:         scaler,
		Provenance:     Provenance{Source: path, Shape: ShapeVariants, Variant: key},
	}
	b.Proba, _ = model.(estimator.ProbabilisticClassifier)
	r.loaded(DomainChurn, b.Provenance, model.Kind())
	return b, true
}

type forecastBundleDoc struct {
	Models         jsonutil.Object `json:"models"`
	FeatureColumns []string        `json:"feature_columns"`
}

// ResolveForecast prefers the plain regressor and falls back to the bundle.
// The model's own recorded column order wins over the bundle's.
func (r *Resolver) ResolveForecast() ForecastBinding {
	b, ok := r.forecastPlain()
	if !ok {
		b, ok = r.forecastBundle()
	}
	if !ok {
		r.unavailable(DomainForecast)
		return ForecastBinding{}
	}
	if names := featureNames(b.Model); len(names) > 0 {
		b.FeatureColumns = names
	}
	r.loaded(DomainForecast, b.Provenance, b.Model.Kind())
	return b
}

func (r *Resolver) forecastPlain() (ForecastBinding, bool) {
	path, raw, ok := r.read(FileForecastPlain)
	if !ok {
		return ForecastBinding{}, false
	}
	model, err := decodeAs[estimator.Regressor](raw, "regressor")
	if err != nil {
		r.skip(path, err)
		return ForecastBinding{}, false
	}
	return ForecastBinding{Model: model, Provenance: Provenance{Source: path, Shape: ShapePlain}}, true
}

func (r *Resolver) forecastBundle() (ForecastBinding, bool) {
	path, raw, ok := r.read(FileForecastBundle)
	if !ok {
		return ForecastBinding{}, false
	}
	var doc forecastBundleDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		r.skip(path, err)
		return ForecastBinding{}, false
	}
	key, ok := chooseKey(doc.Models, ForecastModelPreference)
	if !ok {
		r.skip(path, errors.New("no models in bundle"))
		return ForecastBinding{}, false
	}
	entry, _ := doc.Models.Get(key)
	model, err := decodeAs[estimator.Regressor](entry, "regressor")
	if err != nil {
		r.skip(path, fmt.Errorf("model %s: %w", key, err))
		return ForecastBinding{}, false
	}
	return ForecastBinding{
		Model:          model,
		FeatureColumns: doc.FeatureColumns,
		Provenance:     Provenance{Source: path, Shape: ShapeBundle, Variant: key},
	}, true
}

type kmeansDoc struct {
	Model          json.RawMessage `json:"model"`
	FeatureColumns []string        `json:"feature_columns"`
	Scaler         json.RawMessage `json:"scaler"`
	NFeatures      *float64        `json:"n_features"`
}

// ResolveKMeans reads the clustering bundle. A bare estimator document is
// not a bundle and leaves the domain unloaded.
func (r *Resolver) ResolveKMeans() KMeansBinding {
	b, ok := r.kmeansBundle()
	if !ok {
		r.unavailable(DomainKMeans)
		return KMeansBinding{}
	}
	r.loaded(DomainKMeans, b.Provenance, b.Model.Kind())
	return b
}

func (r *Resolver) kmeansBundle() (KMeansBinding, bool) {
	path, raw, ok := r.read(FileKMeansBundle)
	if !ok {
		return KMeansBinding{}, false
	}
	var obj jsonutil.Object
	if err := json.Unmarshal(raw, &obj); err != nil {
		r.skip(path, err)
		return KMeansBinding{}, false
	}
	if obj.Has("kind") {
		r.skip(path, errors.New("expected a bundle mapping, found a bare estimator"))
		return KMeansBinding{}, false
	}
	var doc kmeansDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		r.skip(path, err)
		return KMeansBinding{}, false
	}
	if jsonutil.IsNull(doc.Model) {
		r.skip(path, errNoModel)
		return KMeansBinding{}, false
	}
	model, err := decodeAs[estimator.Clusterer](doc.Model, "clusterer")
	if err != nil {
		r.skip(path, err)
		return KMeansBinding{}, false
	}
	scaler, err := decodeOptional[estimator.Transformer](doc.Scaler, "transformer")
	if err != nil {
		r.skip(path, err)
		return KMeansBinding{}, false
	}
	b := KMeansBinding{
		Model:          model,
		FeatureColumns: doc.FeatureColumns,
		Scaler:         scaler,
		Provenance:     Provenance{Source: path, Shape: ShapeBundle},
	}
	if doc.NFeatures != nil {
		n := int(*doc.NFeatures)
		b.ExpectedFeatures = &n
	}
	return b, true
}

// ResolveSentiment recognises a lexicon analyzer document or a
// vectorizer/model pipeline bundle. Anything else that decodes is bound as
// unsupported so requests report the format problem.
func (r *Resolver) ResolveSentiment() SentimentBinding {
	path, raw, ok := r.read(FileSentimentObject)
	if !ok {
		r.unavailable(DomainSentiment)
		return SentimentBinding{}
	}
	b, err := r.sentiment(path, raw)
	if err != nil {
		r.skip(path, err)
		r.unavailable(DomainSentiment)
		return SentimentBinding{}
	}
	if b.Kind == SentimentUnsupported {
		r.log.Warn().Str("domain", string(DomainSentiment)).Str("path", path).Msg("sentiment artifact has an unsupported format")
		return b
	}
	var kind estimator.Kind
	if b.Classifier != nil {
		kind = b.Classifier.Kind()
	} else if est, ok := b.Analyzer.(estimator.Estimator); ok {
		kind = est.Kind()
	}
	r.loaded(DomainSentiment, b.Provenance, kind)
	return b
}

func (r *Resolver) sentiment(path string, raw json.RawMessage) (SentimentBinding, error) {
	unsupported := SentimentBinding{
		Kind:       SentimentUnsupported,
		Provenance: Provenance{Source: path, Shape: ShapeUnsupported},
	}
	var obj jsonutil.Object
	if err := json.Unmarshal(raw, &obj); err != nil {
		return unsupported, nil
	}

	if obj.Has("kind") {
		est, err := estimator.Decode(raw)
		if err != nil {
			return SentimentBinding{}, err
		}
		scorer, ok := est.(text.PolarityScorer)
		if !ok {
			return unsupported, nil
		}
		return SentimentBinding{
			Kind:       SentimentLexicon,
			Analyzer:   scorer,
			Provenance: Provenance{Source: path, Shape: ShapeLexicon},
		}, nil
	}

	vecRaw, hasVec := obj.Get("vectorizer")
	modelRaw, hasModel := obj.Get("model")
	if !hasVec || !hasModel {
		return unsupported, nil
	}
	vec, err := decodeAs[text.Vectorizer](vecRaw, "vectorizer")
	if errors.Is(err, errWrongRole) {
		return unsupported, nil
	}
	if err != nil {
		return SentimentBinding{}, fmt.Errorf("vectorizer: %w", err)
	}
	clf, err := decodeAs[estimator.Classifier](modelRaw, "classifier")
	if errors.Is(err, errWrongRole) {
		return unsupported, nil
	}
	if err != nil {
		return SentimentBinding{}, fmt.Errorf("model: %w", err)
	}
	b := SentimentBinding{
		Kind:       SentimentPipeline,
		Vectorizer: vec,
		Classifier: clf,
		Provenance: Provenance{Source: path, Shape: ShapePipeline},
	}
	b.Proba, _ = clf.(estimator.ProbabilisticClassifier)
	if classes, ok := obj.Get("classes_"); ok {
		b.Classes = classes
	}
	return b, nil
}
