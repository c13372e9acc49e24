package models

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks against the typed errors below.
var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("product not found")
	ErrAlreadyZero = errors.New("product quantity already zero")
)

// ValidationError reports the first business field that failed validation.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError is returned when an id does not reference a live product.
type NotFoundError struct {
	ID uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product with ID %d not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// AlreadyZeroError signals that a product is out of stock and cannot be
// sold. It is a restock prompt rather than a failure.
type AlreadyZeroError struct {
	ID uint
}

func (e *AlreadyZeroError) Error() string {
	return fmt.Sprintf("product with ID %d is out of stock", e.ID)
}

func (e *AlreadyZeroError) Is(target error) bool {
	return target == ErrAlreadyZero
}
