package estimator

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// TreeNode is one node of a fitted decision tree. Leaves have Left == -1.
// Rows with x[Feature] <= Threshold descend to Left.
type TreeNode struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Value     []float64 `json:"value"`
}

// IsLeaf reports whether the node has no children.
func (n TreeNode) IsLeaf() bool { return n.Left < 0 }

// Tree is a flat node array with the root at index 0.
type Tree struct {
	Nodes []TreeNode `json:"nodes"`
}

// validate checks that children point forward, so traversal always terminates,
// and that every leaf carries valueWidth entries.
func (t *Tree) validate(valueWidth int) error {
	if len(t.Nodes) == 0 {
		return errors.New("tree has no nodes")
	}
	n := len(t.Nodes)
	for i, node := range t.Nodes {
		if node.IsLeaf() {
			if len(node.Value) != valueWidth {
				return fmt.Errorf("leaf %d has %d values, want %d", i, len(node.Value), valueWidth)
			}
			continue
		}
		if node.Left <= i || node.Left >= n || node.Right <= i || node.Right >= n {
			return fmt.Errorf("node %d has invalid children %d/%d", i, node.Left, node.Right)
		}
		if node.Feature < 0 {
			return fmt.Errorf("node %d splits on negative feature %d", i, node.Feature)
		}
	}
	return nil
}

func (t *Tree) leaf(x []float64) ([]float64, error) {
	idx := 0
	for {
		node := t.Nodes[idx]
		if node.IsLeaf() {
			return node.Value, nil
		}
		if node.Feature >= len(x) {
			return nil, fmt.Errorf("split feature %d out of range for %d features", node.Feature, len(x))
		}
		if x[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}
}

// treeMeta carries the fields every tree estimator shares.
type treeMeta struct {
	NFeaturesIn  int      `json:"n_features_in,omitempty"`
	FeatureNames []string `json:"feature_names_in,omitempty"`
}

func (m *treeMeta) check(kind Kind, x []float64) error {
	if m.NFeaturesIn > 0 {
		return checkWidth(kind, m.NFeaturesIn, x)
	}
	return nil
}

func (m *treeMeta) validateMeta() error {
	if m.NFeaturesIn < 0 {
		return fmt.Errorf("n_features_in is negative")
	}
	if m.NFeaturesIn > 0 && len(m.FeatureNames) > 0 && len(m.FeatureNames) != m.NFeaturesIn {
		return fmt.Errorf("feature_names_in has %d names, n_features_in is %d", len(m.FeatureNames), m.NFeaturesIn)
	}
	return nil
}

// FeatureNamesIn implements FeatureNamer.
func (m *treeMeta) FeatureNamesIn() []string { return m.FeatureNames }

// classDistribution turns leaf class counts (or fractions) into probabilities.
func classDistribution(v []float64) []float64 {
	out := append([]float64(nil), v...)
	if sum := floats.Sum(out); sum > 0 {
		floats.Scale(1/sum, out)
	}
	return out
}

// DecisionTreeClassifier predicts from the class distribution of the reached leaf.
type DecisionTreeClassifier struct {
	Tree
	treeMeta
	ClassLabels []Label `json:"classes"`
}

func (*DecisionTreeClassifier) Kind() Kind { return KindDecisionTreeClassifier }

func (m *DecisionTreeClassifier) Validate() error {
	if len(m.ClassLabels) == 0 {
		return errors.New("classes is empty")
	}
	if err := m.validateMeta(); err != nil {
		return err
	}
	return m.Tree.validate(len(m.ClassLabels))
}

func (m *DecisionTreeClassifier) Classes() []Label { return m.ClassLabels }

func (m *DecisionTreeClassifier) PredictProba(x []float64) ([]float64, error) {
	if err := m.check(KindDecisionTreeClassifier, x); err != nil {
		return nil, err
	}
	v, err := m.leaf(x)
	if err != nil {
		return nil, err
	}
	return classDistribution(v), nil
}

func (m *DecisionTreeClassifier) Predict(x []float64) (Label, error) {
	proba, err := m.PredictProba(x)
	if err != nil {
		return Label{}, err
	}
	return m.ClassLabels[floats.MaxIdx(proba)], nil
}

// RandomForestClassifier averages the leaf distributions of its trees.
type RandomForestClassifier struct {
	Trees []Tree `json:"estimators"`
	treeMeta
	ClassLabels []Label `json:"classes"`
}

func (*RandomForestClassifier) Kind() Kind { return KindRandomForestClassifier }

func (m *RandomForestClassifier) Validate() error {
	if len(m.ClassLabels) == 0 {
		return errors.New("classes is empty")
	}
	if len(m.Trees) == 0 {
		return errors.New("estimators is empty")
	}
	if err := m.validateMeta(); err != nil {
		return err
	}
	for i := range m.Trees {
		if err := m.Trees[i].validate(len(m.ClassLabels)); err != nil {
			return fmt.Errorf("estimator %d: %w", i, err)
		}
	}
	return nil
}

func (m *RandomForestClassifier) Classes() []Label { return m.ClassLabels }

func (m *RandomForestClassifier) PredictProba(x []float64) ([]float64, error) {
	if err := m.check(KindRandomForestClassifier, x); err != nil {
		return nil, err
	}
	acc := make([]float64, len(m.ClassLabels))
	for i := range m.Trees {
		v, err := m.Trees[i].leaf(x)
		if err != nil {
			return nil, fmt.Errorf("estimator %d: %w", i, err)
		}
		floats.Add(acc, classDistribution(v))
	}
	floats.Scale(1/float64(len(m.Trees)), acc)
	return acc, nil
}

func (m *RandomForestClassifier) Predict(x []float64) (Label, error) {
	proba, err := m.PredictProba(x)
	if err != nil {
		return Label{}, err
	}
	return m.ClassLabels[floats.MaxIdx(proba)], nil
}

// DecisionTreeRegressor returns the value of the reached leaf.
type DecisionTreeRegressor struct {
	Tree
	treeMeta
}

func (*DecisionTreeRegressor) Kind() Kind { return KindDecisionTreeRegressor }

func (m *DecisionTreeRegressor) Validate() error {
	if err := m.validateMeta(); err != nil {
		return err
	}
	return m.Tree.validate(1)
}

func (m *DecisionTreeRegressor) Predict(x []float64) (float64, error) {
	if err := m.check(KindDecisionTreeRegressor, x); err != nil {
		return 0, err
	}
	v, err := m.leaf(x)
	if err != nil {
		return 0, err
	}
	return v[0], nil
}

// RandomForestRegressor averages its trees' leaf values.
type RandomForestRegressor struct {
	Trees []Tree `json:"estimators"`
	treeMeta
}

func (*RandomForestRegressor) Kind() Kind { return KindRandomForestRegressor }

func (m *RandomForestRegressor) Validate() error {
	if len(m.Trees) == 0 {
		return errors.New("estimators is empty")
	}
	if err := m.validateMeta(); err != nil {
		return err
	}
	for i := range m.Trees {
		if err := m.Trees[i].validate(1); err != nil {
			return fmt.Errorf("estimator %d: %w", i, err)
		}
	}
	return nil
}

func (m *RandomForestRegressor) Predict(x []float64) (float64, error) {
	if err := m.check(KindRandomForestRegressor, x); err != nil {
		return 0, err
	}
	var sum float64
	for i := range m.Trees {
		v, err := m.Trees[i].leaf(x)
		if err != nil {
			return 0, fmt.Errorf("estimator %d: %w", i, err)
		}
		sum += v[0]
	}
	return sum / float64(len(m.Trees)), nil
}
