// Package apperr defines the error kinds surfaced by the inventory and
// sales services. Callers distinguish kinds with errors.Is and map them
// to transport status codes with HTTPStatus.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrValidation marks malformed or out-of-range input. Never mutates state.
	ErrValidation = errors.New("invalid input")

	// ErrDuplicate marks an insert or rename that collides with an
	// existing game on (title, developer), compared case-insensitively.
	ErrDuplicate = errors.New("game already registered")

	// ErrNotFound marks an unknown game id.
	ErrNotFound = errors.New("game not found")

	// ErrInsufficientStock marks a sale whose quantity exceeds available stock.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrStorageUnavailable marks a backing-store failure. The enclosing
	// operation guarantees no partial mutation occurred.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// Validationf wraps ErrValidation with a caller-facing detail message.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Storage wraps a backing-store error as ErrStorageUnavailable, keeping
// the cause in the chain for logs.
func Storage(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, op, err)
}

// HTTPStatus maps an error to its stable boundary status code. Each
// kind gets a distinct signal; anything unrecognized is a server fault.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInsufficientStock):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
