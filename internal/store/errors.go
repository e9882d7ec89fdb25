package store

import (
	"fmt"
	"net/http"
)

// Error is a storage error with an HTTP status code.
type Error struct {
	Code    int    // HTTP status code
	Message string // User-facing message
	Err     error  // Underlying error (optional)

	// base points at the sentinel this error was derived from, so
	// errors.Is still matches after WithMessage or WithCause.
	base *Error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is this error or the sentinel it derives from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e == t || e.root() == t
}

func (e *Error) root() *Error {
	if e.base != nil {
		return e.base
	}
	return e
}

// HTTPCode returns the HTTP status code associated with this error.
func (e *Error) HTTPCode() int { return e.Code }

// WithMessage returns a new error with a custom message.
func (e *Error) WithMessage(msg string) *Error {
	return &Error{
		Code:    e.Code,
		Message: msg,
		Err:     e.Err,
		base:    e.root(),
	}
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Err:     err,
		base:    e.root(),
	}
}

// Generic sentinel errors returned by Entity operations.
var (
	ErrNotFound = &Error{
		Code:    http.StatusNotFound,
		Message: "resource not found",
	}

	ErrAlreadyExists = &Error{
		Code:    http.StatusConflict,
		Message: "resource already exists",
	}

	ErrInvalidInput = &Error{
		Code:    http.StatusBadRequest,
		Message: "invalid input",
	}
)

// Entity-specific sentinels. Wrappers in the per-aggregate files translate
// the generic entity errors into these so callers can branch precisely.
var (
	ErrBookNotFound = &Error{
		Code:    http.StatusNotFound,
		Message: "book not found",
	}

	ErrCategoryNotFound = &Error{
		Code:    http.StatusNotFound,
		Message: "category not found",
	}

	ErrDuplicateCategory = &Error{
		Code:    http.StatusConflict,
		Message: "category name already in use",
	}

	ErrCartNotFound = &Error{
		Code:    http.StatusNotFound,
		Message: "cart not found",
	}

	ErrWishlistEntryNotFound = &Error{
		Code:    http.StatusNotFound,
		Message: "book not found in wishlist",
	}

	ErrDuplicateWishlistEntry = &Error{
		Code:    http.StatusConflict,
		Message: "book already in wishlist",
	}

	ErrUserNotFound = &Error{
		Code:    http.StatusNotFound,
		Message: "user not found",
	}

	ErrEmailExists = &Error{
		Code:    http.StatusConflict,
		Message: "email already in use",
	}

	ErrSessionNotFound = &Error{
		Code:    http.StatusNotFound,
		Message: "session not found",
	}

	ErrSessionExpired = &Error{
		Code:    http.StatusUnauthorized,
		Message: "session expired",
	}
)
