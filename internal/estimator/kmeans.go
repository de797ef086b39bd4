package estimator

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// KMeans assigns a row to its nearest cluster centre.
type KMeans struct {
	ClusterCenters [][]float64 `json:"cluster_centers"`
	FeatureNames   []string    `json:"feature_names_in,omitempty"`
}

func (*KMeans) Kind() Kind { return KindKMeans }

func (m *KMeans) Validate() error {
	if len(m.ClusterCenters) == 0 {
		return errors.New("cluster_centers is empty")
	}
	width := len(m.ClusterCenters[0])
	if width == 0 {
		return errors.New("cluster centres are empty")
	}
	for i, c := range m.ClusterCenters {
		if len(c) != width {
			return fmt.Errorf("cluster centre %d has width %d, want %d", i, len(c), width)
		}
	}
	return nil
}

// FeatureNamesIn implements FeatureNamer.
func (m *KMeans) FeatureNamesIn() []string { return m.FeatureNames }

// Predict returns the index of the closest centre; ties go to the lowest index.
func (m *KMeans) Predict(x []float64) (int, error) {
	if err := checkWidth(KindKMeans, len(m.ClusterCenters[0]), x); err != nil {
		return 0, err
	}
	best, bestDist := 0, math.Inf(1)
	for i, c := range m.ClusterCenters {
		if d := floats.Distance(c, x, 2); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, nil
}
