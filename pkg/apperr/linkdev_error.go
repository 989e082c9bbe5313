// Package apperr defines the errors services return to the HTTP layer.
// Each code maps to exactly one HTTP status.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeUnauthorized = "UNAUTHORIZED"
	CodeInvalidToken = "INVALID_TOKEN"
	CodeForbidden    = "FORBIDDEN"

	CodeBadRequest       = "BAD_REQUEST"
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeMissingField     = "MISSING_FIELD"

	CodeNotFound = "NOT_FOUND"
	CodeConflict = "CONFLICT"

	CodeDatabaseError = "DATABASE_ERROR"
	CodeInternalError = "INTERNAL_ERROR"
)

var statusByCode = map[string]int{
	CodeUnauthorized:     http.StatusUnauthorized,
	CodeInvalidToken:     http.StatusUnauthorized,
	CodeForbidden:        http.StatusForbidden,
	CodeBadRequest:       http.StatusBadRequest,
	CodeValidationFailed: http.StatusBadRequest,
	CodeInvalidInput:     http.StatusBadRequest,
	CodeMissingField:     http.StatusBadRequest,
	CodeNotFound:         http.StatusNotFound,
	CodeConflict:         http.StatusConflict,
	CodeDatabaseError:    http.StatusInternalServerError,
	CodeInternalError:    http.StatusInternalServerError,
}

// AppError is a client-facing error. Err carries the cause for logs only.
type AppError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Status  int            `json:"-"`
	Details map[string]any `json:"details,omitempty"`
	Err     error          `json:"-"`
}

func newError(code, message string) *AppError {
	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	return &AppError{Code: code, Message: message, Status: status}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// Unauthorized defaults to the generic credential failure message.
func Unauthorized(message string) *AppError {
	if message == "" {
		message = "Could not validate credentials"
	}
	return newError(CodeUnauthorized, message)
}

func InvalidToken(message string) *AppError {
	if message == "" {
		message = "Invalid token"
	}
	return newError(CodeInvalidToken, message)
}

func Forbidden(message string) *AppError {
	if message == "" {
		message = "Not enough permissions"
	}
	return newError(CodeForbidden, message)
}

func BadRequest(message string) *AppError {
	return newError(CodeBadRequest, message)
}

func ValidationFailed(message string) *AppError {
	return newError(CodeValidationFailed, message)
}

func InvalidInput(field, reason string) *AppError {
	return newError(CodeInvalidInput, fmt.Sprintf("invalid input for '%s': %s", field, reason)).
		WithDetail("field", field)
}

func MissingField(field string) *AppError {
	return newError(CodeMissingField, "missing required field: "+field).
		WithDetail("field", field)
}

// NotFound renders as "<resource> not found".
func NotFound(resource string) *AppError {
	return newError(CodeNotFound, resource+" not found")
}

func Conflict(message string) *AppError {
	return newError(CodeConflict, message)
}

// DatabaseError hides the driver error from clients behind the operation name.
func DatabaseError(operation string, err error) *AppError {
	return newError(CodeDatabaseError, "database error: "+operation).WithError(err)
}

func InternalWithError(err error) *AppError {
	return newError(CodeInternalError, "internal server error").WithError(err)
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError unwraps err to an AppError, wrapping anything else as internal.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return InternalWithError(err)
}

func GetHTTPStatus(err error) int {
	return AsAppError(err).Status
}

// HasCode reports whether err is an AppError carrying the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}
