package inference

import (
	"errors"
	"fmt"
	"net/http"
)

// Client-facing messages.
const (
	MsgMissingPredictFields = "Provide 'model_type' and 'features'."
	MsgInvalidModelType     = "Invalid model_type. Use 'churn', 'forecast', or 'kmeans'."
	MsgMissingText          = "Provide 'text' in body."
	MsgChurnNotLoaded       = "Churn model not loaded. Export artifacts from classification notebook."
	MsgForecastNotLoaded    = "Forecast model not loaded. Export artifacts from sales forecasting notebook."
	MsgKMeansNotLoaded      = "KMeans model not loaded. Export from clustering notebook."
	MsgSentimentNotLoaded   = "Sentiment model not loaded. Export from text analysis notebook."
	MsgUnsupportedSentiment = "Unsupported sentiment model format."
)

// invalidRequestError is a malformed or incomplete request (400).
type invalidRequestError struct{ msg string }

func (e invalidRequestError) Error() string   { return e.msg }
func (e invalidRequestError) StatusCode() int { return http.StatusBadRequest }

func ErrInvalidRequest(msg string) error { return invalidRequestError{msg: msg} }

// IsInvalidRequest reports whether err is a client request error.
func IsInvalidRequest(err error) bool {
	var e invalidRequestError
	return errors.As(err, &e)
}

// modelUnavailableError means the domain has no bound model (500).
type modelUnavailableError struct{ msg string }

func (e modelUnavailableError) Error() string   { return e.msg }
func (e modelUnavailableError) StatusCode() int { return http.StatusInternalServerError }

func ErrModelUnavailable(msg string) error { return modelUnavailableError{msg: msg} }

// IsModelUnavailable reports whether err indicates a missing model.
func IsModelUnavailable(err error) bool {
	var e modelUnavailableError
	return errors.As(err, &e)
}

// shapeMismatchError is a row of the wrong width for the bound model (400).
type shapeMismatchError struct{ want, got int }

func (e shapeMismatchError) Error() string {
	return fmt.Sprintf("Expected %d features, got %d.", e.want, e.got)
}
func (e shapeMismatchError) StatusCode() int { return http.StatusBadRequest }

func ErrShapeMismatch(want, got int) error { return shapeMismatchError{want: want, got: got} }

// IsShapeMismatch reports whether err is a feature count mismatch.
func IsShapeMismatch(err error) bool {
	var e shapeMismatchError
	return errors.As(err, &e)
}

// unsupportedFormatError is a loaded artifact of an unrecognised shape (500).
type unsupportedFormatError struct{ msg string }

func (e unsupportedFormatError) Error() string   { return e.msg }
func (e unsupportedFormatError) StatusCode() int { return http.StatusInternalServerError }

// IsUnsupportedFormat reports whether err indicates an unrecognised artifact.
func IsUnsupportedFormat(err error) bool {
	var e unsupportedFormatError
	return errors.As(err, &e)
}

// internalFailureError wraps an unexpected failure inside a model (500).
// The message is the underlying error's.
type internalFailureError struct{ err error }

func (e internalFailureError) Error() string   { return e.err.Error() }
func (e internalFailureError) Unwrap() error   { return e.err }
func (e internalFailureError) StatusCode() int { return http.StatusInternalServerError }

func internalFailure(err error) error { return internalFailureError{err: err} }

// IsInternalFailure reports whether err is an unexpected model failure.
func IsInternalFailure(err error) bool {
	var e internalFailureError
	return errors.As(err, &e)
}
