package estimator

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, doc string) Estimator {
	t.Helper()
	est, err := Decode(json.RawMessage(doc))
	require.NoError(t, err)
	return est
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode(json.RawMessage(`{"coef":[1]}`))
	assert.ErrorIs(t, err, ErrMissingKind)

	_, err = Decode(json.RawMessage(`{"kind":"xgboost"}`))
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = Decode(json.RawMessage(`[1,2]`))
	assert.Error(t, err)

	_, err = Decode(json.RawMessage(`{"kind":"logistic_regression","coef":[[1,2]],"intercept":[0],"classes":[0]}`))
	assert.ErrorContains(t, err, "at least two classes")
}

func TestKinds_IncludesBuiltins(t *testing.T) {
	kinds := Kinds()
	assert.Contains(t, kinds, KindLogisticRegression)
	assert.Contains(t, kinds, KindKMeans)
	assert.Contains(t, kinds, KindStandardScaler)
}

func TestLogisticRegression_Binary(t *testing.T) {
	est := decode(t, `{"kind":"logistic_regression","coef":[[1,-1]],"intercept":[0],"classes":[0,1],"feature_names_in":["a","b"]}`)
	clf, ok := est.(ProbabilisticClassifier)
	require.True(t, ok)

	proba, err := clf.PredictProba([]float64{2, 0})
	require.NoError(t, err)
	require.Len(t, proba, 2)
	assert.InDelta(t, 1/(1+math.Exp(-2)), proba[1], 1e-12)
	assert.InDelta(t, 1, proba[0]+proba[1], 1e-12)

	label, err := clf.Predict([]float64{2, 0})
	require.NoError(t, err)
	n, ok := label.Int()
	require.True(t, ok)
	assert.Equal(t, int64(1), n)

	label, err = clf.Predict([]float64{0, 2})
	require.NoError(t, err)
	assert.Equal(t, "0", label.String())

	assert.Equal(t, []string{"a", "b"}, est.(FeatureNamer).FeatureNamesIn())
}

func TestLogisticRegression_Multinomial(t *testing.T) {
	est := decode(t, `{"kind":"logistic_regression","coef":[[1,0],[0,1],[0,0]],"intercept":[0,0,0],"classes":["a","b","c"]}`)
	clf := est.(ProbabilisticClassifier)
	proba, err := clf.PredictProba([]float64{0, 5})
	require.NoError(t, err)
	assert.InDelta(t, 1, proba[0]+proba[1]+proba[2], 1e-12)
	label, err := clf.Predict([]float64{0, 5})
	require.NoError(t, err)
	assert.True(t, label.IsText())
	assert.Equal(t, "b", label.String())
}

func TestLogisticRegression_WidthMismatch(t *testing.T) {
	clf := decode(t, `{"kind":"logistic_regression","coef":[[1,-1]],"intercept":[0],"classes":[0,1]}`).(Classifier)
	_, err := clf.Predict([]float64{1})
	var dim *DimensionError
	require.True(t, errors.As(err, &dim))
	assert.Equal(t, 2, dim.Want)
	assert.Equal(t, 1, dim.Got)
}

func TestLinearSVC_HasNoProbabilities(t *testing.T) {
	est := decode(t, `{"kind":"linear_svc","coef":[[1]],"intercept":[-0.5],"classes":[0,1]}`)
	_, ok := est.(ProbabilisticClassifier)
	assert.False(t, ok)
	clf := est.(Classifier)
	label, err := clf.Predict([]float64{1})
	require.NoError(t, err)
	assert.Equal(t, "1", label.String())
	label, err = clf.Predict([]float64{0})
	require.NoError(t, err)
	assert.Equal(t, "0", label.String())
}

func TestRandomForestClassifier_AveragesTrees(t *testing.T) {
	doc := `{"kind":"random_forest_classifier","classes":[0,1],"n_features_in":1,"estimators":[
		{"nodes":[{"feature":0,"threshold":10,"left":1,"right":2},{"feature":-1,"left":-1,"right":-1,"value":[8,2]},{"feature":-1,"left":-1,"right":-1,"value":[1,3]}]},
		{"nodes":[{"feature":-1,"left":-1,"right":-1,"value":[0.5,0.5]}]}]}`
	clf := decode(t, doc).(ProbabilisticClassifier)

	proba, err := clf.PredictProba([]float64{5})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.65, 0.35}, proba, 1e-12)

	proba, err = clf.PredictProba([]float64{50})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.375, 0.625}, proba, 1e-12)

	label, err := clf.Predict([]float64{50})
	require.NoError(t, err)
	assert.Equal(t, "1", label.String())

	_, err = clf.Predict([]float64{1, 2})
	assert.Error(t, err)
}

func TestTree_RejectsBackwardChildren(t *testing.T) {
	_, err := Decode(json.RawMessage(`{"kind":"decision_tree_regressor","nodes":[
		{"feature":0,"threshold":1,"left":0,"right":1},{"feature":-1,"left":-1,"right":-1,"value":[1]}]}`))
	assert.ErrorContains(t, err, "invalid children")
}

func TestRegressors(t *testing.T) {
	lr := decode(t, `{"kind":"linear_regression","coef":[2,3],"intercept":1}`).(Regressor)
	y, err := lr.Predict([]float64{1, 1})
	require.NoError(t, err)
	assert.Equal(t, 6.0, y)

	rf := decode(t, `{"kind":"random_forest_regressor","estimators":[
		{"nodes":[{"feature":0,"threshold":0,"left":1,"right":2},{"feature":-1,"left":-1,"right":-1,"value":[10]},{"feature":-1,"left":-1,"right":-1,"value":[20]}]},
		{"nodes":[{"feature":-1,"left":-1,"right":-1,"value":[30]}]}]}`).(Regressor)
	y, err = rf.Predict([]float64{1})
	require.NoError(t, err)
	assert.Equal(t, 25.0, y)

	dt := decode(t, `{"kind":"decision_tree_regressor","nodes":[{"feature":-1,"left":-1,"right":-1,"value":[4.5]}]}`).(Regressor)
	y, err = dt.Predict([]float64{99, 98})
	require.NoError(t, err)
	assert.Equal(t, 4.5, y)
}

func TestKMeans_NearestCentre(t *testing.T) {
	km := decode(t, `{"kind":"kmeans","cluster_centers":[[0,0],[10,10],[0,10]]}`).(Clusterer)
	c, err := km.Predict([]float64{9, 8})
	require.NoError(t, err)
	assert.Equal(t, 1, c)
	c, err = km.Predict([]float64{1, 9})
	require.NoError(t, err)
	assert.Equal(t, 2, c)
	_, err = km.Predict([]float64{1})
	assert.Error(t, err)
}

func TestScalers(t *testing.T) {
	ss := decode(t, `{"kind":"standard_scaler","mean":[1,2],"scale":[2,0]}`).(Transformer)
	out, err := ss.Transform([]float64{5, 7})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 5}, out)

	onlyScale := decode(t, `{"kind":"standard_scaler","scale":[0.5]}`).(Transformer)
	out, err = onlyScale.Transform([]float64{30})
	require.NoError(t, err)
	assert.Equal(t, []float64{60}, out)

	mm := decode(t, `{"kind":"min_max_scaler","min":[-1],"scale":[0.1]}`).(Transformer)
	out, err = mm.Transform([]float64{20})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, out[0], 1e-12)

	_, err = Decode(json.RawMessage(`{"kind":"standard_scaler"}`))
	assert.Error(t, err)
}

func TestMultinomialNB(t *testing.T) {
	clf := decode(t, `{"kind":"multinomial_nb","classes":["neg","pos"],
		"class_log_prior":[-0.6931,-0.6931],
		"feature_log_prob":[[-0.2,-2.0],[-2.0,-0.2]]}`).(ProbabilisticClassifier)
	label, err := clf.Predict([]float64{0, 3})
	require.NoError(t, err)
	assert.Equal(t, "pos", label.String())
	proba, err := clf.PredictProba([]float64{0, 3})
	require.NoError(t, err)
	assert.Greater(t, proba[1], proba[0])
	assert.Equal(t, []string{"neg", "pos"}, []string{clf.Classes()[0].String(), clf.Classes()[1].String()})
}
