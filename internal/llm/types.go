package llm

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a remote service failure
type ErrorKind string

const (
	// KindUnavailable - the service is unreachable or returned an error
	KindUnavailable ErrorKind = "unavailable"
	// KindQuota - the request was rejected for quota or rate limiting
	KindQuota ErrorKind = "quota"
	// KindEmpty - the service answered with no usable content
	KindEmpty ErrorKind = "empty"
)

// ServiceError is the failure variant at the remote collaborator boundary.
// Callers branch on Kind instead of parsing error strings; the orchestrator
// treats any ServiceError as a signal to fall back to heuristics.
type ServiceError struct {
	Kind     ErrorKind
	Provider string
	Err      error
}

// Error implements the error interface
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s: %v", e.Provider, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s service %s", e.Provider, e.Kind)
}

// Unwrap returns the underlying cause
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Is matches any ServiceError of the same kind
func (e *ServiceError) Is(target error) bool {
	t, ok := target.(*ServiceError)
	if !ok {
		return false
	}
	return t.Kind == "" || t.Kind == e.Kind
}

// serviceErr builds a ServiceError for the given provider
func serviceErr(provider string, kind ErrorKind, err error) *ServiceError {
	return &ServiceError{Kind: kind, Provider: provider, Err: err}
}

// IsServiceError reports whether err is (or wraps) a ServiceError
func IsServiceError(err error) bool {
	var se *ServiceError
	return errors.As(err, &se)
}
