package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a failed operation.
type ErrorKind string

const (
	// KindInvalidParameter covers blank or missing identifiers and malformed payloads.
	KindInvalidParameter ErrorKind = "InvalidParameter"

	// KindUserNotAuthorized is returned when the caller cannot be resolved or is not an administrator.
	KindUserNotAuthorized ErrorKind = "UserNotAuthorized"

	// KindConfigurationError wraps unexpected failures while loading, merging or saving.
	KindConfigurationError ErrorKind = "ConfigurationError"
)

// HTTPStatus maps the kind onto the status code a REST front end would return.
func (k ErrorKind) HTTPStatus() int {
	switch k {
	case KindInvalidParameter:
		return http.StatusBadRequest
	case KindUserNotAuthorized:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// OperationError is the structured error returned by every configuration operation.
type OperationError struct {
	Kind       ErrorKind
	Operation  string
	ServerName string
	Message    string
	Cause      error
}

// Error implements the error interface.
func (e *OperationError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	if e.ServerName != "" {
		return fmt.Sprintf("%s %s (server %s): %s", e.Kind, e.Operation, e.ServerName, msg)
	}
	return fmt.Sprintf("%s %s: %s", e.Kind, e.Operation, msg)
}

// Unwrap returns the underlying cause.
func (e *OperationError) Unwrap() error {
	return e.Cause
}

// NewInvalidParameterError reports a rejected input.
func NewInvalidParameterError(operation, serverName, message string) *OperationError {
	return &OperationError{Kind: KindInvalidParameter, Operation: operation, ServerName: serverName, Message: message}
}

// NewNotAuthorizedError reports a caller that may not perform the operation.
func NewNotAuthorizedError(operation, serverName string, cause error) *OperationError {
	return &OperationError{Kind: KindUserNotAuthorized, Operation: operation, ServerName: serverName, Message: "user not authorized", Cause: cause}
}

// NewConfigurationError wraps an unexpected failure.
func NewConfigurationError(operation, serverName string, cause error) *OperationError {
	return &OperationError{Kind: KindConfigurationError, Operation: operation, ServerName: serverName, Message: "configuration update failed", Cause: cause}
}

// KindOf returns the kind of an OperationError anywhere in the chain, or "" if there is none.
func KindOf(err error) ErrorKind {
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return opErr.Kind
	}
	return ""
}

// IsInvalidParameter reports whether err is an InvalidParameter error.
func IsInvalidParameter(err error) bool {
	return KindOf(err) == KindInvalidParameter
}

// IsNotAuthorized reports whether err is a UserNotAuthorized error.
func IsNotAuthorized(err error) bool {
	return KindOf(err) == KindUserNotAuthorized
}

// IsConfigurationError reports whether err is a ConfigurationError.
func IsConfigurationError(err error) bool {
	return KindOf(err) == KindConfigurationError
}
