package errors

import (
	"fmt"
	"net/http"
)

// Error represents an application error carrying the HTTP status it maps to.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation / input error types
var (
	ErrValidation   = New(http.StatusBadRequest, "Validation error", nil)
	ErrInvalidInput = New(http.StatusBadRequest, "Invalid input", nil)
)

// Authentication error types
var (
	ErrInvalidCredentials = New(http.StatusUnauthorized, "Invalid credentials", nil)
	ErrTokenExpired       = New(http.StatusUnauthorized, "Token expired", nil)
	ErrInvalidToken       = New(http.StatusUnauthorized, "Invalid token", nil)
	ErrForbidden          = New(http.StatusForbidden, "Forbidden", nil)
)

// Resource error types
var (
	ErrUserExists          = New(http.StatusConflict, "User with this username or email already exists", nil)
	ErrUserNotFound        = New(http.StatusNotFound, "User not found", nil)
	ErrTransactionNotFound = New(http.StatusNotFound, "Transaction not found", nil)
	ErrOrderNotFound       = New(http.StatusNotFound, "Order history not found", nil)
)

// Downstream / store error types
var (
	ErrInternalServer = New(http.StatusInternalServerError, "Internal server error", nil)
	ErrDatabaseQuery  = New(http.StatusInternalServerError, "Database query error", nil)
)
