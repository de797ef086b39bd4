// Package inference runs prediction requests against the resolved model bindings.
//
// A Service is built once from immutable artifact.Bindings and is safe for
// concurrent use. Every failure it returns carries an HTTP status through
// StatusCode; use the IsXxx helpers to classify errors.
package inference
