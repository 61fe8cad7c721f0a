package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrConnectivity covers transport-level failures where no response was
	// received from the API.
	ErrConnectivity = errors.New("connectivity error")
	// ErrUnauthorized means the token was missing or expired and the silent
	// refresh did not recover.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrAccessDenied means the caller is authenticated but not allowed to
	// see the requested resource.
	ErrAccessDenied = errors.New("access denied")
	ErrNotFound     = errors.New("not found")
	// ErrInvalidTransition is returned before any network call when a
	// lifecycle action would violate the status table.
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrEmptyCart         = errors.New("cart is empty")
)

// Server wraps a message string carried in a success:false envelope.
func Server(message string) error {
	return fmt.Errorf("server error: %s", message)
}

func IsConnectivity(err error) bool {
	return errors.Is(err, ErrConnectivity)
}

func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

func IsAccessDenied(err error) bool {
	return errors.Is(err, ErrAccessDenied)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
