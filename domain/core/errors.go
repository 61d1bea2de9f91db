package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	ErrNotFound        = errors.New("resource not found")
	ErrDatasetNotFound = fmt.Errorf("%w: dataset", ErrNotFound)

	ErrEmptyDataset     = errors.New("dataset has no rows")
	ErrNoHeaders        = errors.New("dataset has no columns")
	ErrUnknownChartKind = errors.New("unknown chart kind")
	ErrUnsupportedFile  = errors.New("unsupported file type")
)

// NewNotFoundError builds a not-found error with resource context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}
