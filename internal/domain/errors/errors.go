package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyExists      = errors.New("resource already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrAccountSuspended   = errors.New("account suspended")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrRateLimited        = errors.New("rate limited")
	ErrTerminalState      = errors.New("state transition not allowed")
)

// Stable error codes returned to clients.
const (
	CodeValidation         = "ERR_VALIDATION"
	CodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	CodeTokenExpired       = "ERR_TOKEN_EXPIRED"
	CodeTokenInvalid       = "ERR_TOKEN_INVALID"
	CodeAccountSuspended   = "ERR_ACCOUNT_SUSPENDED"
	CodeForbidden          = "ERR_FORBIDDEN"
	CodeNotFound           = "ERR_NOT_FOUND"
	CodeConflict           = "ERR_CONFLICT"
	CodeRateLimited        = "ERR_RATE_LIMITED"
	CodeInternal           = "ERR_INTERNAL"
)

// AppError carries an HTTP status, a stable code and a user-safe message
// across the request boundary. The wrapped cause never reaches clients.
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors

func Validation(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeValidation, message, ErrInvalidInput)
}

func InvalidCredentials() *AppError {
	return NewAppError(http.StatusUnauthorized, CodeInvalidCredentials, "Invalid email or password", ErrInvalidCredentials)
}

func TokenExpired() *AppError {
	return NewAppError(http.StatusUnauthorized, CodeTokenExpired, "Token has expired", ErrTokenExpired)
}

func TokenInvalid() *AppError {
	return NewAppError(http.StatusUnauthorized, CodeTokenInvalid, "Invalid token", ErrTokenInvalid)
}

func Suspended() *AppError {
	return NewAppError(http.StatusForbidden, CodeAccountSuspended, "Account is suspended", ErrAccountSuspended)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message, ErrPermissionDenied)
}

func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeConflict, message, ErrAlreadyExists)
}

func RateLimited() *AppError {
	return NewAppError(http.StatusTooManyRequests, CodeRateLimited, "Too many requests. Please try again later.", ErrRateLimited)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternal, "internal server error", err)
}
