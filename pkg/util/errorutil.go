package util

import (
	"errors"
	"fmt"
	"net/http"
)

// ClientError standardizes failures surfaced by the portal. Every error a
// component reports maps to exactly one code so the presentation layer can
// pick a message category without string matching.
type ClientError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

// Error codes, roughly ordered by where they are detected: before the
// request, in the response envelope, or at the transport layer.
const (
	CodeValidation   = "VALIDATION_FAILED"
	CodeGuard        = "WORKFLOW_GUARD"
	CodeAPIFailure   = "API_FAILURE"
	CodeNoConnection = "NO_CONNECTION"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeServerError  = "SERVER_ERROR"
	CodeUnexpected   = "UNEXPECTED"
)

func (e *ClientError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Err
}

// NewValidationError reports input rejected before any request was made.
func NewValidationError(message string) error {
	return &ClientError{Code: CodeValidation, Message: message}
}

// NewGuardError reports an operation blocked by workflow state.
func NewGuardError(message string) error {
	return &ClientError{Code: CodeGuard, Message: message}
}

// NewAPIFailure reports a transport-level success whose envelope carried
// success=false. The server message is kept verbatim when present.
func NewAPIFailure(message string) error {
	if message == "" {
		message = "la operación no pudo completarse"
	}
	return &ClientError{Code: CodeAPIFailure, Message: message, HTTPStatus: http.StatusOK}
}

// NewNoConnection reports a network-layer failure.
func NewNoConnection(err error) error {
	return &ClientError{Code: CodeNoConnection, Message: "no hay conexión con el servidor", Err: err}
}

// NewUnauthorized reports a 401/403 response.
func NewUnauthorized(status int) error {
	return &ClientError{Code: CodeUnauthorized, Message: "sesión expirada o sin permisos", HTTPStatus: status}
}

// NewServerError reports a 5xx response.
func NewServerError(status int) error {
	return &ClientError{Code: CodeServerError, Message: "error del servidor", HTTPStatus: status}
}

// NewUnexpected reports any other non-2xx response.
func NewUnexpected(status int, err error) error {
	return &ClientError{Code: CodeUnexpected, Message: "respuesta inesperada del servidor", HTTPStatus: status, Err: err}
}

// ToClientError converts generic errors to ClientError, wrapping unknown
// ones under CodeUnexpected.
func ToClientError(err error) *ClientError {
	if err == nil {
		return nil
	}
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr
	}
	return &ClientError{Code: CodeUnexpected, Message: "error inesperado", Err: err}
}

// IsUnauthorized reports whether err maps to an expired or forbidden session.
func IsUnauthorized(err error) bool {
	ce := ToClientError(err)
	return ce != nil && ce.Code == CodeUnauthorized
}

// IsAPIFailure reports whether err is a business-rule rejection from the
// response envelope.
func IsAPIFailure(err error) bool {
	ce := ToClientError(err)
	return ce != nil && ce.Code == CodeAPIFailure
}
