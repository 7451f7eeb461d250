package services

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput wraps every validation failure so transports can map
	// the whole family to a single client-error response.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAlreadyPaid is returned when marking a bill paid a second time.
	ErrAlreadyPaid = errors.New("bill is already marked as paid")

	// ErrNotRecurring is returned when asking a one-off bill for its next
	// instance.
	ErrNotRecurring = errors.New("only recurring bills can generate a next instance")

	// ErrDuplicate is returned when an insert collides with a uniqueness
	// constraint, e.g. a category name reused for the same owner and type.
	ErrDuplicate = errors.New("already exists")
)

func invalid(err error) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, err)
}
