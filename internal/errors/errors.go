package errors

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Common error types that can be used across the application
var (
	ErrNotFound             = New(ErrCodeNotFound, "resource not found")
	ErrAlreadyExists        = New(ErrCodeAlreadyExists, "resource already exists")
	ErrValidation           = New(ErrCodeValidation, "validation error")
	ErrInvalidOperation     = New(ErrCodeInvalidOperation, "invalid operation")
	ErrConfigurationMissing = New(ErrCodeConfigurationMissing, "configuration missing")
	ErrUpstreamUnavailable  = New(ErrCodeUpstreamUnavailable, "upstream unavailable")
	ErrDuplicateConflict    = New(ErrCodeDuplicateConflict, "duplicate conflict")
	ErrProvider             = New(ErrCodeProvider, "delivery provider error")
	ErrHTTPClient           = New(ErrCodeHTTPClient, "http client error")
	ErrDatabase             = New(ErrCodeDatabase, "database error")
	ErrSystem               = New(ErrCodeSystemError, "system error")
	// maps errors to http status codes
	statusCodeMap = map[error]int{
		ErrHTTPClient:           http.StatusInternalServerError,
		ErrDatabase:             http.StatusInternalServerError,
		ErrNotFound:             http.StatusNotFound,
		ErrAlreadyExists:        http.StatusConflict,
		ErrDuplicateConflict:    http.StatusConflict,
		ErrValidation:           http.StatusBadRequest,
		ErrInvalidOperation:     http.StatusBadRequest,
		ErrConfigurationMissing: http.StatusPreconditionFailed,
		ErrUpstreamUnavailable:  http.StatusBadGateway,
		ErrProvider:             http.StatusBadGateway,
		ErrSystem:               http.StatusInternalServerError,
	}
)

const (
	ErrCodeHTTPClient           = "http_client_error"
	ErrCodeSystemError          = "system_error"
	ErrCodeNotFound             = "not_found"
	ErrCodeAlreadyExists        = "already_exists"
	ErrCodeValidation           = "validation_error"
	ErrCodeInvalidOperation     = "invalid_operation"
	ErrCodeConfigurationMissing = "configuration_missing"
	ErrCodeUpstreamUnavailable  = "upstream_unavailable"
	ErrCodeDuplicateConflict    = "duplicate_conflict"
	ErrCodeProvider             = "provider_error"
	ErrCodeDatabase             = "database_error"
)

// InternalError represents a domain error
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.DisplayError()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) DisplayError() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped errors
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

// New creates a new InternalError
func New(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

func Is(err error, target error) bool {
	return errors.Is(err, target)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsConfigurationMissing checks if an error is a configuration missing error
func IsConfigurationMissing(err error) bool {
	return errors.Is(err, ErrConfigurationMissing)
}

// IsUpstreamUnavailable checks if an error is an upstream unavailable error
func IsUpstreamUnavailable(err error) bool {
	return errors.Is(err, ErrUpstreamUnavailable)
}

// IsDuplicateConflict checks if an error is a duplicate conflict error
func IsDuplicateConflict(err error) bool {
	return errors.Is(err, ErrDuplicateConflict)
}

// IsProvider checks if an error is a delivery provider error
func IsProvider(err error) bool {
	return errors.Is(err, ErrProvider)
}

// IsHTTPClient checks if an error is an http client error
func IsHTTPClient(err error) bool {
	return errors.Is(err, ErrHTTPClient)
}

func HTTPStatusFromErr(err error) int {
	for e, status := range statusCodeMap {
		if errors.Is(err, e) {
			return status
		}
	}
	return http.StatusInternalServerError
}
