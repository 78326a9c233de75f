package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound        = errors.New("resource not found")
	ErrDatasetNotFound = fmt.Errorf("%w: dataset", ErrNotFound)

	// Invalid input errors
	ErrInvalidInput    = errors.New("invalid input")
	ErrEmptyDataset    = fmt.Errorf("%w: dataset has no rows", ErrInvalidInput)
	ErrColumnNotFound  = fmt.Errorf("%w: column not present in dataset", ErrInvalidInput)
	ErrNoGroups        = fmt.Errorf("%w: sensitive column has no distinct values", ErrInvalidInput)
	ErrNoObservations  = fmt.Errorf("%w: no rows with observable values in the selected columns", ErrInvalidInput)
	ErrUnsupportedFile = errors.New("unsupported file format")
)

// Error constructors with context
func NewColumnNotFoundError(column string) error {
	return fmt.Errorf("%w: %q", ErrColumnNotFound, column)
}

func NewValidationError(field string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidInput, field, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsInvalidInputError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
