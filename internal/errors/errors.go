package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Err     error // underlying error for wrapping
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches domain errors by code, so a wrapped ErrInvalidToken still
// satisfies errors.Is(err, ErrInvalidToken).
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with domain error context
func WrapError(domainErr *DomainError, err error) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Err:     err,
	}
}

// Error codes
const (
	CodeDuplicateEmail           = "DUPLICATE_EMAIL"
	CodeInvalidCredentials       = "INVALID_CREDENTIALS"
	CodeAccountDeactivated       = "ACCOUNT_DEACTIVATED"
	CodeInvalidToken             = "INVALID_TOKEN"
	CodeSessionExpiredOrNotFound = "SESSION_EXPIRED_OR_NOT_FOUND"
	CodeUserNotFound             = "USER_NOT_FOUND"
	CodeStorageFailure           = "STORAGE_FAILURE"
	CodeInvalidInput             = "INVALID_INPUT"
	CodeUnauthorized             = "UNAUTHORIZED"
	CodeInternal                 = "INTERNAL_ERROR"
)

// Predefined domain errors
var (
	// Registration and login
	ErrDuplicateEmail     = NewDomainError(CodeDuplicateEmail, "email already registered")
	ErrInvalidCredentials = NewDomainError(CodeInvalidCredentials, "invalid email or password")
	ErrAccountDeactivated = NewDomainError(CodeAccountDeactivated, "account is deactivated")

	// Token and session resolution
	ErrInvalidToken             = NewDomainError(CodeInvalidToken, "invalid or expired token")
	ErrSessionExpiredOrNotFound = NewDomainError(CodeSessionExpiredOrNotFound, "session expired or not found")
	ErrUserNotFound             = NewDomainError(CodeUserNotFound, "user not found")
	ErrUnauthorized             = NewDomainError(CodeUnauthorized, "unauthorized")

	// Validation errors
	ErrInvalidInput = NewDomainError(CodeInvalidInput, "invalid input")

	// System errors
	ErrStorageFailure = NewDomainError(CodeStorageFailure, "storage unavailable")
	ErrInternal       = NewDomainError(CodeInternal, "internal server error")
)

// IsDomainError checks if an error is a domain error
func IsDomainError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr)
}

// GetDomainError extracts the domain error from an error
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// IsAuthFailure reports whether err means "no valid identity" rather than
// an infrastructure problem.
func IsAuthFailure(err error) bool {
	d := GetDomainError(err)
	if d == nil {
		return false
	}
	switch d.Code {
	case CodeInvalidToken, CodeSessionExpiredOrNotFound, CodeUserNotFound, CodeUnauthorized:
		return true
	}
	return false
}

// ToHTTPStatus maps domain errors to HTTP status codes
// This should only be used in the handler/presentation layer
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErrorToHTTPStatus(domainErr)
	}

	return http.StatusInternalServerError
}

func domainErrorToHTTPStatus(err *DomainError) int {
	switch err.Code {
	// 400 Bad Request
	case CodeInvalidInput:
		return http.StatusBadRequest

	// 401 Unauthorized
	case CodeUnauthorized, CodeInvalidCredentials, CodeInvalidToken, CodeSessionExpiredOrNotFound:
		return http.StatusUnauthorized

	// 403 Forbidden
	case CodeAccountDeactivated:
		return http.StatusForbidden

	// 404 Not Found
	case CodeUserNotFound:
		return http.StatusNotFound

	// 409 Conflict
	case CodeDuplicateEmail:
		return http.StatusConflict

	// 503 Service Unavailable
	case CodeStorageFailure:
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetErrorMessage returns the client-safe message. The wrapped cause is never exposed.
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}

	return ErrInternal.Message
}
