package resolve

import (
	"errors"
	"fmt"
)

// Resolution errors.
var (
	// ErrNoActiveProfile is returned when neither a platform override nor a
	// profile for the active device is available.
	ErrNoActiveProfile = errors.New("no active prompt profile")

	// ErrUnknownAction is returned when the action key is not indexed.
	ErrUnknownAction = errors.New("unknown action")
)

// NoActiveProfileError carries the active device identity, if any.
type NoActiveProfileError struct {
	// Identity is the active device name. Empty when no device is active.
	Identity string
}

// Error implements the error interface.
func (e *NoActiveProfileError) Error() string {
	if e.Identity == "" {
		return "no active device"
	}
	return fmt.Sprintf("no prompt profile for device %q", e.Identity)
}

// Unwrap returns ErrNoActiveProfile.
func (e *NoActiveProfileError) Unwrap() error {
	return ErrNoActiveProfile
}

// UnknownActionError carries the normalized action key.
type UnknownActionError struct {
	Key string
}

// Error implements the error interface.
func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("unknown action %q", e.Key)
}

// Unwrap returns ErrUnknownAction.
func (e *UnknownActionError) Unwrap() error {
	return ErrUnknownAction
}
