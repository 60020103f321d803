package service

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every service. Callers match with errors.Is; the wrapped
// message carries the detail.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrForbidden  = errors.New("forbidden")
	ErrStorage    = errors.New("storage failure")
)

// storageErr wraps a driver error so both ErrStorage and the original error match.
func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
