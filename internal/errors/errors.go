package errors

import (
	"errors"
	"fmt"
)

// Common error types shared across the service packages
var (
	// Request errors
	ErrInvalidRequest = errors.New("invalid request")
	ErrMissingField   = errors.New("missing required field")

	// Storage errors
	ErrNotFound = errors.New("not found")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}
