package figmamcp

import (
	"fmt"

	"github.com/pkg/errors"
)

// ValidationError reports a malformed request parameter. It is returned before any
// request reaches the Figma API.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// FetchError wraps a failure of the Fetcher. Its message is the fetcher's message, unchanged.
type FetchError struct {
	Err error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the fetcher's error.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Cause returns the fetcher's error, for errors.Cause.
func (e *FetchError) Cause() error {
	return e.Err
}

// TransformError reports a failure while simplifying or encoding a fetched payload.
// Value is the recovered panic value or the underlying error.
type TransformError struct {
	Stage string
	Value any
}

// Error implements the error interface
func (e *TransformError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Value)
}

// Unwrap returns Value when it is an error.
func (e *TransformError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsFetch checks if an error is a FetchError
func IsFetch(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr)
}

// IsTransform checks if an error is a TransformError
func IsTransform(err error) bool {
	var transformErr *TransformError
	return errors.As(err, &transformErr)
}

// errorKind names the class of err for metrics and logs.
func errorKind(err error) string {
	switch {
	case IsValidation(err):
		return "validation"
	case IsFetch(err):
		return "fetch"
	case IsTransform(err):
		return "transform"
	default:
		return "unknown"
	}
}
