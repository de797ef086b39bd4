// Package artifact resolves the model artifacts on disk into immutable
// per-domain bindings, once, at startup.
//
// Each domain has a fixed list of candidate files tried in priority order.
// The first file that decodes into something usable decides the binding;
// files that are missing or fail to decode are logged and skipped, so
// resolution never fails. A domain with no usable file stays unloaded and
// the inference layer reports that per request.
//
//   - churn: churn_model.json (single bundle), then churn_models_all.json
//     (variant dictionary).
//   - forecast: linear_regressor_model.json (plain model), then
//     forecast_models.json (named models bundle).
//   - kmeans: kmeans.json (bundle only).
//   - sentiment: text_sentiment_model.json (lexicon analyzer, or
//     vectorizer + classifier).
package artifact
