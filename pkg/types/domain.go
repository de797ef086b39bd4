package types

// BindingStatus summarises how one model domain was resolved at startup.
type BindingStatus struct {
	// example: churn
	Domain string `json:"domain" example:"churn"`
	// example: true
	Loaded bool `json:"loaded" example:"true"`
	// Artifact file the binding came from.
	// example: /srv/models/churn_models_all.json
	Source string `json:"source,omitempty" example:"/srv/models/churn_models_all.json"`
	// Artifact shape: single, variants, plain, bundle, lexicon, pipeline or unsupported.
	// example: variants
	Shape string `json:"shape,omitempty" example:"variants"`
	// Chosen variant or model name inside a dictionary artifact.
	// example: Logistic_BASE
	Variant string `json:"variant,omitempty" example:"Logistic_BASE"`
	// Estimator kind of the bound model.
	// example: logistic_regression
	ModelKind string `json:"model_kind,omitempty" example:"logistic_regression"`
	// Column order rows are aligned to.
	FeatureColumns []string `json:"feature_columns,omitempty"`
	// Columns the scaler is applied to.
	NumericColumns []string `json:"numeric_columns,omitempty"`
	// Whether a scaler is applied before prediction.
	Scaled bool `json:"scaled"`
	// Exact row width enforced before prediction.
	ExpectedFeatures *int `json:"expected_features,omitempty"`
	// Whether probabilities are attached to predictions.
	Probabilities bool `json:"probabilities"`
}

// ArtifactFile is a model artifact found on disk.
type ArtifactFile struct {
	// File name.
	// example: kmeans.json
	ID string `json:"id" example:"kmeans.json"`
	// Absolute path to the file.
	// example: /srv/models/kmeans.json
	Path string `json:"path" example:"/srv/models/kmeans.json"`
	// Size in bytes.
	// example: 2048
	SizeBytes int64 `json:"size_bytes" example:"2048"`
	// Domain that reads this file, empty when no resolver looks at it.
	// example: kmeans
	Domain string `json:"domain,omitempty" example:"kmeans"`
}
