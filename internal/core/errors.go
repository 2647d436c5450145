package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind distinguishes the failure modes of a single analysis call
// so the caller can decide per kind what to show the user.
type ErrorKind string

const (
	KindMissingCredential  ErrorKind = "missing_credential"
	KindInvalidCredential  ErrorKind = "invalid_credential"
	KindStaleCredential    ErrorKind = "stale_credential"
	KindServiceUnavailable ErrorKind = "service_unavailable"
	KindEmptyResponse      ErrorKind = "empty_response"
	KindMalformedResponse  ErrorKind = "malformed_response"
)

// AnalysisError is the single error type returned by Analyze for every
// classified failure. It never wraps partial results.
type AnalysisError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AnalysisError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// KindOf extracts the classification from err, if it carries one.
func KindOf(err error) (ErrorKind, bool) {
	var aerr *AnalysisError
	if errors.As(err, &aerr) {
		return aerr.Kind, true
	}
	return "", false
}

// Known substrings in Gemini transport errors. "API key not valid" is
// the rejection for a malformed or unauthorized key; "Requested entity
// was not found" is how a stale key surfaces and means the user should
// re-select their credential.
const (
	invalidKeyErrText = "API key not valid"
	staleKeyErrText   = "Requested entity was not found"
)

// classifyCallError maps a failed model call to one of the credential
// kinds or to service_unavailable with the original message preserved
// for diagnostic display.
func classifyCallError(err error) *AnalysisError {
	msg := err.Error()
	switch {
	case strings.Contains(msg, invalidKeyErrText):
		return &AnalysisError{
			Kind:    KindInvalidCredential,
			Message: "the configured API key was rejected by the service",
			Err:     err,
		}
	case strings.Contains(msg, staleKeyErrText):
		return &AnalysisError{
			Kind:    KindStaleCredential,
			Message: "the configured API key appears to be stale; please select a new one",
			Err:     err,
		}
	default:
		return &AnalysisError{
			Kind:    KindServiceUnavailable,
			Message: msg,
			Err:     fmt.Errorf("model call failed: %w", err),
		}
	}
}
