package domain

import (
	"errors"
	"fmt"
)

// ReferentialIntegrityError signals a refused deletion: other records still
// reference the target in a blocking state. Nothing is mutated before the check.
type ReferentialIntegrityError struct {
	Message string
}

func (e *ReferentialIntegrityError) Error() string { return e.Message }

// Referential builds a ReferentialIntegrityError with a user-facing message.
func Referential(message string) error {
	return &ReferentialIntegrityError{Message: message}
}

// NotFoundError signals a lookup by id that resolved to nothing.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s introuvable: %s", e.Entity, e.ID)
}

// NotFound builds a NotFoundError.
func NotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ValidationError signals a request that is well-formed but violates a domain rule
// (e.g. creating a contract on an unavailable asset).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Invalid builds a ValidationError.
func Invalid(message string) error {
	return &ValidationError{Message: message}
}

// IsReferential reports whether err is a ReferentialIntegrityError.
func IsReferential(err error) bool {
	var target *ReferentialIntegrityError
	return errors.As(err, &target)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
