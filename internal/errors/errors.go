package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a category of client-visible error.
type ErrorCode string

const (
	// ErrCodeRequest indicates a non-2xx response from the portal API.
	ErrCodeRequest ErrorCode = "request"
	// ErrCodeUnauthorized indicates the API rejected the credential (login rejected or 401).
	ErrCodeUnauthorized ErrorCode = "unauthorized"
	// ErrCodeForbidden indicates the API refused the action for the current role (403).
	ErrCodeForbidden ErrorCode = "forbidden"
	// ErrCodeTransport indicates the request never produced an HTTP response.
	ErrCodeTransport ErrorCode = "transport"
	// ErrCodeValidation indicates a required field was missing before any request was sent.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeStorage indicates the credential could not be saved or removed locally.
	ErrCodeStorage ErrorCode = "storage"
	// ErrCodeAdminRequired indicates an admin-only action was attempted by a non-admin session.
	ErrCodeAdminRequired ErrorCode = "admin_required"
)

// AppError is the single error shape surfaced to users.
// Message is the display text; Cause is kept for errors.Is/As and logging.
type AppError struct {
	// Code categorizes the error
	Code ErrorCode
	// Message is the human-readable text shown to the user
	Message string
	// Status is the HTTP status when the error came from a response (0 otherwise)
	Status int
	// Cause is the underlying error (optional)
	Cause error
}

// Error implements the error interface. It returns the display message only.
func (e *AppError) Error() string {
	if e.Message == "" && e.Cause != nil {
		return e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// FromStatus builds the error for a non-2xx response.
func FromStatus(status int, message string) *AppError {
	code := ErrCodeRequest
	switch status {
	case http.StatusUnauthorized:
		code = ErrCodeUnauthorized
	case http.StatusForbidden:
		code = ErrCodeForbidden
	}
	return &AppError{Code: code, Message: message, Status: status}
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
	}
}

// AdminRequired creates the error returned when a non-admin session attempts an admin action.
func AdminRequired(action string) *AppError {
	return &AppError{
		Code:    ErrCodeAdminRequired,
		Message: fmt.Sprintf("%s requires the admin role", action),
	}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// IsCode checks if an error has a specific error code.
func IsCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsUnauthorized checks if an error is an Unauthorized error.
func IsUnauthorized(err error) bool {
	return IsCode(err, ErrCodeUnauthorized)
}

// IsTransport checks if an error is a Transport error.
func IsTransport(err error) bool {
	return IsCode(err, ErrCodeTransport)
}

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool {
	return IsCode(err, ErrCodeValidation)
}

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetStatus returns the HTTP status carried by an error, or 0.
func GetStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return 0
}

// Message returns the text to display for err. AppErrors yield their Message;
// other errors fall back to err.Error().
func Message(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Error()
	}
	return err.Error()
}
