// Package estimator implements the inference half of the classic model
// families exported by the analytics notebooks: linear and logistic models,
// tree ensembles, k-means, naive Bayes and the feature scalers they were fit
// with.
//
// Artifacts are JSON documents carrying a "kind" discriminator:
//
//	{"kind": "logistic_regression", "coef": [[0.4, -1.2]], "intercept": [0.1], "classes": [0, 1]}
//
// Decode turns such a document into a typed value. Callers branch on the
// role interfaces (Classifier, Regressor, Clusterer, Transformer) once, when
// artifacts are resolved, and never probe capabilities per request.
//
// Other packages may add kinds with Register or RegisterType; package text
// registers its vectorizers and the lexicon analyzer that way.
package estimator
