// Copyright (c) 2026 Edora. All rights reserved.
// Author: an.duong.dev@gmail.com

/*
Package apperr defines the centralized error handling framework for Edora.

It provides a rich error type that bridges the gap between low-level Domain/Storage
errors and high-level HTTP responses.

Architecture:

  - AppError: A struct containing machine-readable ErrorCode and user-friendly messages.
  - Taxonomy: Dedicated constructors for every failure class of the auth lifecycle
    (duplicate email, bad activation code, dead session, and so on).
  - Mapping: Explicit mapping from AppError to standard HTTP Status Codes.

Every error that leaves the service layer should be wrapped as an [AppError] to ensure
consistent API responses.
*/
package apperr

import (
	"errors"
	"net/http"
)

// AppError is the canonical error type for the Edora API.
//
// It carries an HTTP status code, a machine-readable code, a client-safe
// message, and an optional slice of field-level validation errors.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients
// to avoid leaking internal implementation details (e.g., SQL queries).
// Passwords and signing secrets must never appear in Message.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "DUPLICATE_EMAIL").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"message"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Authentication Taxonomy (4xx)

// DuplicateEmail creates a 409 [AppError] for an already-registered email.
//
// It is returned both by the best-effort pre-check and by the database
// uniqueness constraint that backstops it.
func DuplicateEmail() *AppError {
	return &AppError{
		Code:       "DUPLICATE_EMAIL",
		Message:    "Email already exists",
		HTTPStatus: http.StatusConflict,
	}
}

// InvalidActivationToken creates a 400 [AppError] for a malformed, forged,
// or expired activation token.
func InvalidActivationToken() *AppError {
	return &AppError{
		Code:       "INVALID_ACTIVATION_TOKEN",
		Message:    "Activation token is invalid or expired",
		HTTPStatus: http.StatusBadRequest,
	}
}

// InvalidActivationCode creates a 400 [AppError] for a wrong one-time code.
func InvalidActivationCode() *AppError {
	return &AppError{
		Code:       "INVALID_ACTIVATION_CODE",
		Message:    "Invalid activation code",
		HTTPStatus: http.StatusBadRequest,
	}
}

// InvalidCredentials creates a 400 [AppError] for a failed login attempt.
//
// The same message covers "unknown email" and "wrong password" to prevent
// account enumeration.
func InvalidCredentials() *AppError {
	return &AppError{
		Code:       "INVALID_CREDENTIALS",
		Message:    "Invalid email or password",
		HTTPStatus: http.StatusBadRequest,
	}
}

// InvalidRefreshToken creates a 400 [AppError] for a refresh token that fails
// signature or expiry verification. The caller must re-authenticate.
func InvalidRefreshToken() *AppError {
	return &AppError{
		Code:       "INVALID_REFRESH_TOKEN",
		Message:    "Could not refresh access token",
		HTTPStatus: http.StatusBadRequest,
	}
}

// SessionNotFound creates a 400 [AppError] for a cryptographically valid
// refresh token whose session cache entry is gone (logout or expiry).
func SessionNotFound() *AppError {
	return &AppError{
		Code:       "SESSION_NOT_FOUND",
		Message:    "Please login to access this resource",
		HTTPStatus: http.StatusBadRequest,
	}
}

// Unauthenticated creates a 401 [AppError] for a request with a missing,
// invalid, or expired access token.
func Unauthenticated(msg string) *AppError {
	return &AppError{
		Code:       "UNAUTHENTICATED",
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Forbidden creates a 403 [AppError] for an authenticated user whose role is
// not allowed to perform the operation.
func Forbidden(msg string) *AppError {
	return &AppError{
		Code:       "FORBIDDEN",
		Message:    msg,
		HTTPStatus: http.StatusForbidden,
	}
}

// MailDeliveryFailed creates a 400 [AppError] for a failed activation mail
// dispatch. The already-issued activation token remains valid.
func MailDeliveryFailed(cause error) *AppError {
	return &AppError{
		Code:       "MAIL_DELIVERY_FAILED",
		Message:    "Could not send activation email",
		HTTPStatus: http.StatusBadRequest,
		Cause:      cause,
	}
}

// # Generic Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Course") // Returns "Course not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       "NOT_FOUND",
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// IsCode reports whether err is an [*AppError] carrying the given code.
func IsCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}
