package estimator

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Kind discriminates estimator documents.
type Kind string

const (
	KindLogisticRegression     Kind = "logistic_regression"
	KindLinearSVC              Kind = "linear_svc"
	KindDecisionTreeClassifier Kind = "decision_tree_classifier"
	KindRandomForestClassifier Kind = "random_forest_classifier"
	KindMultinomialNB          Kind = "multinomial_nb"
	KindLinearRegression       Kind = "linear_regression"
	KindDecisionTreeRegressor  Kind = "decision_tree_regressor"
	KindRandomForestRegressor  Kind = "random_forest_regressor"
	KindKMeans                 Kind = "kmeans"
	KindStandardScaler         Kind = "standard_scaler"
	KindMinMaxScaler           Kind = "min_max_scaler"
)

// Estimator is any decoded artifact value.
type Estimator interface {
	Kind() Kind
}

// Classifier predicts a class label for one row.
type Classifier interface {
	Estimator
	Predict(x []float64) (Label, error)
}

// ProbabilisticClassifier also reports per-class probabilities, ordered like Classes.
type ProbabilisticClassifier interface {
	Classifier
	PredictProba(x []float64) ([]float64, error)
	Classes() []Label
}

// Regressor predicts a single continuous value for one row.
type Regressor interface {
	Estimator
	Predict(x []float64) (float64, error)
}

// Clusterer assigns one row to a cluster id.
type Clusterer interface {
	Estimator
	Predict(x []float64) (int, error)
}

// Transformer maps a row to a row of the same width.
type Transformer interface {
	Estimator
	Transform(x []float64) ([]float64, error)
}

// FeatureNamer is implemented by estimators that recorded the column order
// they were trained on. An empty result means no order was recorded.
type FeatureNamer interface {
	FeatureNamesIn() []string
}

// DecodeFunc decodes the full document of one kind.
type DecodeFunc func(raw json.RawMessage) (Estimator, error)

var (
	ErrMissingKind = errors.New("estimator document has no kind")
	ErrUnknownKind = errors.New("unknown estimator kind")
)

var (
	decodersMu sync.RWMutex
	decoders   = make(map[Kind]DecodeFunc)
)

// Register makes a kind decodable. It panics if the kind is registered twice.
func Register(kind Kind, fn DecodeFunc) {
	decodersMu.Lock()
	defer decodersMu.Unlock()
	if fn == nil {
		panic("estimator: Register decoder is nil")
	}
	if _, dup := decoders[kind]; dup {
		panic("estimator: Register called twice for kind " + string(kind))
	}
	decoders[kind] = fn
}

// RegisterType registers a kind decoded by unmarshalling into T and calling Validate.
func RegisterType[T any, PT interface {
	*T
	Estimator
	Validate() error
}](kind Kind) {
	Register(kind, func(raw json.RawMessage) (Estimator, error) {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decode %s: %w", kind, err)
		}
		p := PT(&v)
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", kind, err)
		}
		return p, nil
	})
}

// Kinds lists the registered kinds, sorted.
func Kinds() []Kind {
	decodersMu.RLock()
	defer decodersMu.RUnlock()
	out := make([]Kind, 0, len(decoders))
	for k := range decoders {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// PeekKind returns the kind of a document without decoding the rest of it.
func PeekKind(raw json.RawMessage) (Kind, error) {
	var head struct {
		Kind Kind `json:"kind"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return "", fmt.Errorf("estimator header: %w", err)
	}
	if head.Kind == "" {
		return "", ErrMissingKind
	}
	return head.Kind, nil
}

// Decode decodes an estimator document by its kind.
func Decode(raw json.RawMessage) (Estimator, error) {
	kind, err := PeekKind(raw)
	if err != nil {
		return nil, err
	}
	decodersMu.RLock()
	fn, ok := decoders[kind]
	decodersMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return fn(raw)
}

func init() {
	RegisterType[LogisticRegression](KindLogisticRegression)
	RegisterType[LinearSVC](KindLinearSVC)
	RegisterType[DecisionTreeClassifier](KindDecisionTreeClassifier)
	RegisterType[RandomForestClassifier](KindRandomForestClassifier)
	RegisterType[MultinomialNB](KindMultinomialNB)
	RegisterType[LinearRegression](KindLinearRegression)
	RegisterType[DecisionTreeRegressor](KindDecisionTreeRegressor)
	RegisterType[RandomForestRegressor](KindRandomForestRegressor)
	RegisterType[KMeans](KindKMeans)
	RegisterType[StandardScaler](KindStandardScaler)
	RegisterType[MinMaxScaler](KindMinMaxScaler)
}
