package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when an id or slug does not resolve to a record.
	ErrNotFound = errors.New("not found")
	// ErrValidation marks malformed, missing or out-of-range input. See ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicateSlug is returned when a blog post slug is already taken.
	ErrDuplicateSlug = errors.New("duplicate slug")
	// ErrDuplicateKey is the store-level unique constraint violation.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrStoreUnavailable wraps every failure of the persistence backend.
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	// ErrAdminDisabled is returned by admin operations when no admin credentials are configured.
	ErrAdminDisabled = errors.New("admin access is not configured")
)

type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Entity     string
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Violations) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	if e.Entity == "" {
		return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
	}
	return fmt.Sprintf("invalid %s: %s", e.Entity, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Invalid builds a single-field validation error.
func Invalid(entity, field, message string) error {
	return &ValidationError{Entity: entity, Violations: []FieldViolation{{Field: field, Message: message}}}
}

// StoreError carries the backend cause of an ErrStoreUnavailable.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStoreUnavailable, e.Op, e.Err)
}

func (e *StoreError) Unwrap() []error { return []error{ErrStoreUnavailable, e.Err} }

func Unavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
