package estimator

import "fmt"

// DimensionError reports a row whose width does not match what the estimator was fit on.
type DimensionError struct {
	Kind Kind
	Want int
	Got  int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("X has %d features, but %s is expecting %d features as input", e.Got, e.Kind, e.Want)
}

func checkWidth(kind Kind, want int, x []float64) error {
	if len(x) != want {
		return &DimensionError{Kind: kind, Want: want, Got: len(x)}
	}
	return nil
}
