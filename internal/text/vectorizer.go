package text

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"custintel/internal/estimator"
)

// Vectorizer turns one document into a dense numeric row.
type Vectorizer interface {
	estimator.Estimator
	TransformText(doc string) ([]float64, error)
	Width() int
}

// CountVectorizer counts vocabulary terms. Terms outside the vocabulary are ignored.
type CountVectorizer struct {
	Tokenizer
	Vocabulary map[string]int `json:"vocabulary"`
	Binary     bool           `json:"binary,omitempty"`
}

func (*CountVectorizer) Kind() estimator.Kind { return KindCountVectorizer }

func (v *CountVectorizer) Validate() error {
	if err := v.Tokenizer.validate(); err != nil {
		return err
	}
	return validateVocabulary(v.Vocabulary)
}

func (v *CountVectorizer) Width() int { return len(v.Vocabulary) }

func (v *CountVectorizer) TransformText(doc string) ([]float64, error) {
	row := make([]float64, len(v.Vocabulary))
	for _, tok := range v.Tokens(doc) {
		if idx, ok := v.Vocabulary[tok]; ok {
			if v.Binary {
				row[idx] = 1
			} else {
				row[idx]++
			}
		}
	}
	return row, nil
}

// TfidfVectorizer weights term counts by inverse document frequency and
// normalises the row.
type TfidfVectorizer struct {
	CountVectorizer
	IDF         []float64 `json:"idf"`
	Norm        *string   `json:"norm,omitempty"`
	SublinearTF bool      `json:"sublinear_tf,omitempty"`
}

func (*TfidfVectorizer) Kind() estimator.Kind { return KindTfidfVectorizer }

func (v *TfidfVectorizer) Validate() error {
	if err := v.CountVectorizer.Validate(); err != nil {
		return err
	}
	if len(v.IDF) != len(v.Vocabulary) {
		return fmt.Errorf("idf has %d entries, vocabulary has %d", len(v.IDF), len(v.Vocabulary))
	}
	switch v.norm() {
	case "l1", "l2", "":
	default:
		return fmt.Errorf("unsupported norm %q", v.norm())
	}
	return nil
}

// norm defaults to l2; an explicit empty string disables normalisation.
func (v *TfidfVectorizer) norm() string {
	if v.Norm == nil {
		return "l2"
	}
	return *v.Norm
}

func (v *TfidfVectorizer) TransformText(doc string) ([]float64, error) {
	row, err := v.CountVectorizer.TransformText(doc)
	if err != nil {
		return nil, err
	}
	for i, tf := range row {
		if tf == 0 {
			continue
		}
		if v.SublinearTF {
			tf = 1 + math.Log(tf)
		}
		row[i] = tf * v.IDF[i]
	}
	switch v.norm() {
	case "l2":
		if n := floats.Norm(row, 2); n > 0 {
			floats.Scale(1/n, row)
		}
	case "l1":
		if n := floats.Norm(row, 1); n > 0 {
			floats.Scale(1/n, row)
		}
	}
	return row, nil
}
