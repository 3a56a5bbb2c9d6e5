package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
	Details    any    `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetails attaches client-safe diagnostics (e.g. per-provider failures).
func (e *AppError) WithDetails(details any) *AppError {
	e.Details = details
	return e
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Input Validation (VAL) ----

func ErrInvalidAddressFormat(err error) *AppError {
	return Wrap("VAL_001", "Invalid address format", http.StatusBadRequest, err)
}

func ErrUnsupportedChain(err error) *AppError {
	return Wrap("VAL_002", "Unsupported chain", http.StatusBadRequest, err)
}

// Validation returns a VAL_003-style request validation error.
func Validation(message string) *AppError {
	return New("VAL_003", message, http.StatusBadRequest)
}

// ---- Upstream Data (BAL / PRC) ----

// ErrBalanceUnavailable is returned when every balance provider failed.
// It never accompanies a balance value.
func ErrBalanceUnavailable(err error) *AppError {
	return Wrap("BAL_001", "Balance unavailable from all providers", http.StatusBadGateway, err)
}

// ErrPriceUnavailable is returned when no provider answered and nothing is cached.
func ErrPriceUnavailable(err error) *AppError {
	return Wrap("PRC_001", "Price unavailable and no cached snapshot exists", http.StatusServiceUnavailable, err)
}

// ---- Authentication (AUTH) ----

func ErrInvalidToken() *AppError {
	return New("AUTH_001", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}
