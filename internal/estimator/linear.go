package estimator

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// linearModel holds one weight row per decision function.
type linearModel struct {
	Coef         [][]float64 `json:"coef"`
	Intercept    []float64   `json:"intercept"`
	FeatureNames []string    `json:"feature_names_in,omitempty"`
}

func (m *linearModel) validate(nClasses int) error {
	if nClasses < 2 {
		return errors.New("need at least two classes")
	}
	want := nClasses
	if nClasses == 2 {
		want = 1
	}
	if len(m.Coef) != want {
		return fmt.Errorf("coef has %d rows, want %d for %d classes", len(m.Coef), want, nClasses)
	}
	if len(m.Intercept) != len(m.Coef) {
		return fmt.Errorf("intercept has %d entries, coef has %d rows", len(m.Intercept), len(m.Coef))
	}
	width := len(m.Coef[0])
	if width == 0 {
		return errors.New("coef rows are empty")
	}
	for i, row := range m.Coef {
		if len(row) != width {
			return fmt.Errorf("coef row %d has width %d, want %d", i, len(row), width)
		}
	}
	if len(m.FeatureNames) > 0 && len(m.FeatureNames) != width {
		return fmt.Errorf("feature_names_in has %d names, coef width is %d", len(m.FeatureNames), width)
	}
	return nil
}

func (m *linearModel) decision(kind Kind, x []float64) ([]float64, error) {
	if err := checkWidth(kind, len(m.Coef[0]), x); err != nil {
		return nil, err
	}
	scores := make([]float64, len(m.Coef))
	for i, row := range m.Coef {
		scores[i] = floats.Dot(row, x) + m.Intercept[i]
	}
	return scores, nil
}

// FeatureNamesIn implements FeatureNamer.
func (m *linearModel) FeatureNamesIn() []string { return m.FeatureNames }

// LogisticRegression is a binary (one weight row) or multinomial classifier.
type LogisticRegression struct {
	linearModel
	ClassLabels []Label `json:"classes"`
}

func (*LogisticRegression) Kind() Kind { return KindLogisticRegression }

// Validate checks coefficient shapes against the class list.
func (m *LogisticRegression) Validate() error { return m.validate(len(m.ClassLabels)) }

// Classes implements ProbabilisticClassifier.
func (m *LogisticRegression) Classes() []Label { return m.ClassLabels }

// PredictProba returns the sigmoid (binary) or softmax (multinomial) of the decision scores.
func (m *LogisticRegression) PredictProba(x []float64) ([]float64, error) {
	scores, err := m.decision(KindLogisticRegression, x)
	if err != nil {
		return nil, err
	}
	if len(scores) == 1 {
		p := sigmoid(scores[0])
		return []float64{1 - p, p}, nil
	}
	return softmax(scores), nil
}

// Predict returns the most probable class.
func (m *LogisticRegression) Predict(x []float64) (Label, error) {
	proba, err := m.PredictProba(x)
	if err != nil {
		return Label{}, err
	}
	return m.ClassLabels[floats.MaxIdx(proba)], nil
}

// LinearSVC is a linear support vector classifier. It has no probability output.
type LinearSVC struct {
	linearModel
	ClassLabels []Label `json:"classes"`
}

func (*LinearSVC) Kind() Kind { return KindLinearSVC }

// Validate checks coefficient shapes against the class list.
func (m *LinearSVC) Validate() error { return m.validate(len(m.ClassLabels)) }

// Predict picks the positive class when the binary margin is above zero, or
// the class with the largest one-vs-rest score.
func (m *LinearSVC) Predict(x []float64) (Label, error) {
	scores, err := m.decision(KindLinearSVC, x)
	if err != nil {
		return Label{}, err
	}
	if len(scores) == 1 {
		if scores[0] > 0 {
			return m.ClassLabels[1], nil
		}
		return m.ClassLabels[0], nil
	}
	return m.ClassLabels[floats.MaxIdx(scores)], nil
}

// LinearRegression is an ordinary least squares model with a single target.
type LinearRegression struct {
	Coef         []float64 `json:"coef"`
	Intercept    float64   `json:"intercept"`
	FeatureNames []string  `json:"feature_names_in,omitempty"`
}

func (*LinearRegression) Kind() Kind { return KindLinearRegression }

// Validate requires at least one coefficient.
func (m *LinearRegression) Validate() error {
	if len(m.Coef) == 0 {
		return errors.New("coef is empty")
	}
	if len(m.FeatureNames) > 0 && len(m.FeatureNames) != len(m.Coef) {
		return fmt.Errorf("feature_names_in has %d names, coef has %d entries", len(m.FeatureNames), len(m.Coef))
	}
	return nil
}

// FeatureNamesIn implements FeatureNamer.
func (m *LinearRegression) FeatureNamesIn() []string { return m.FeatureNames }

// Predict returns coef·x + intercept.
func (m *LinearRegression) Predict(x []float64) (float64, error) {
	if err := checkWidth(KindLinearRegression, len(m.Coef), x); err != nil {
		return 0, err
	}
	return floats.Dot(m.Coef, x) + m.Intercept, nil
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

// softmax normalises log-scale scores into probabilities.
func softmax(scores []float64) []float64 {
	lse := floats.LogSumExp(scores)
	out := make([]float64, len(scores))
	for i, s := range scores {
		out[i] = math.Exp(s - lse)
	}
	return out
}
