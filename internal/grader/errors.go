package grader

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why an analysis failed.
type ErrorKind string

// Failure classes surfaced on SiteResult.
const (
	// ErrorKindTransport covers DNS, connection, timeout and non-2xx failures.
	ErrorKindTransport ErrorKind = "transport"
	// ErrorKindParse covers markup that could not be turned into a document.
	ErrorKindParse ErrorKind = "parse"
	// ErrorKindUnexpected covers anything else, including recovered panics.
	ErrorKindUnexpected ErrorKind = "unexpected"
)

var (
	// ErrBadStatus marks a response outside the 2xx range.
	ErrBadStatus = errors.New("unexpected status code")
	// ErrEmptyDocument marks a response without any markup to parse.
	ErrEmptyDocument = errors.New("empty document")
)

// AnalysisError ties a failure class and URL to an underlying cause.
type AnalysisError struct {
	Kind ErrorKind
	URL  string
	Err  error
}

// Error implements error.
func (e *AnalysisError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s error for %s", e.Kind, e.URL)
	}
	return fmt.Sprintf("%s error for %s: %v", e.Kind, e.URL, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// StatusError builds the error returned for a non-2xx response.
func StatusError(code int) error {
	return fmt.Errorf("%w: %d", ErrBadStatus, code)
}

// KindOf extracts the failure class from err, defaulting to unexpected.
func KindOf(err error) ErrorKind {
	var ae *AnalysisError
	if errors.As(err, &ae) && ae.Kind != "" {
		return ae.Kind
	}
	return ErrorKindUnexpected
}
