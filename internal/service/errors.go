package service

import (
	"errors"
	"fmt"

	"github.com/vcscsvcscs/healthguide/internal/repository"
)

var (
	// ErrValidation marks invalid caller input
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned when the requested resource does not exist
	ErrNotFound = repository.ErrNotFound
	// ErrForbidden is returned when the resource belongs to another user
	ErrForbidden = errors.New("forbidden")
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
