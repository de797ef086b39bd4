package estimator

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// MultinomialNB is a multinomial naive Bayes classifier over count or tf-idf rows.
type MultinomialNB struct {
	ClassLogPrior  []float64   `json:"class_log_prior"`
	FeatureLogProb [][]float64 `json:"feature_log_prob"`
	ClassLabels    []Label     `json:"classes"`
}

func (*MultinomialNB) Kind() Kind { return KindMultinomialNB }

func (m *MultinomialNB) Validate() error {
	n := len(m.ClassLabels)
	if n == 0 {
		return errors.New("classes is empty")
	}
	if len(m.ClassLogPrior) != n || len(m.FeatureLogProb) != n {
		return fmt.Errorf("class_log_prior/feature_log_prob rows must match %d classes", n)
	}
	width := len(m.FeatureLogProb[0])
	if width == 0 {
		return errors.New("feature_log_prob rows are empty")
	}
	for i, row := range m.FeatureLogProb {
		if len(row) != width {
			return fmt.Errorf("feature_log_prob row %d has width %d, want %d", i, len(row), width)
		}
	}
	return nil
}

func (m *MultinomialNB) Classes() []Label { return m.ClassLabels }

func (m *MultinomialNB) jointLogLikelihood(x []float64) ([]float64, error) {
	if err := checkWidth(KindMultinomialNB, len(m.FeatureLogProb[0]), x); err != nil {
		return nil, err
	}
	jll := make([]float64, len(m.ClassLabels))
	for i, row := range m.FeatureLogProb {
		jll[i] = floats.Dot(row, x) + m.ClassLogPrior[i]
	}
	return jll, nil
}

func (m *MultinomialNB) PredictProba(x []float64) ([]float64, error) {
	jll, err := m.jointLogLikelihood(x)
	if err != nil {
		return nil, err
	}
	return softmax(jll), nil
}

func (m *MultinomialNB) Predict(x []float64) (Label, error) {
	jll, err := m.jointLogLikelihood(x)
	if err != nil {
		return Label{}, err
	}
	return m.ClassLabels[floats.MaxIdx(jll)], nil
}
