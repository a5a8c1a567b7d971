package core

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrNotFound         = errors.New("resource not found")
	ErrDistrictNotFound = fmt.Errorf("%w: district", ErrNotFound)
	ErrEmptySeries      = errors.New("series has no observations")
)

// NewDistrictNotFoundError reports a district that is not a column of the table
func NewDistrictNotFoundError(name string) error {
	return fmt.Errorf("%w %q", ErrDistrictNotFound, name)
}

// IsNotFoundError reports whether err is a not-found domain error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
