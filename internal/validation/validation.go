// Package validation holds the per-entity input rules. Every function is pure:
// it returns a normalized value or a *errors.ValidationError listing each bad field.
package validation

import (
	"strings"

	errs "github.com/vwconsorcio/consorcio-backend/internal/pkg/errors"
)

type violations struct {
	entity string
	list   []errs.FieldViolation
}

func newViolations(entity string) *violations {
	return &violations{entity: entity}
}

func (v *violations) add(field, message string) {
	v.list = append(v.list, errs.FieldViolation{Field: field, Message: message})
}

func (v *violations) required(field, value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		v.add(field, "is required")
	}
	return value
}

func (v *violations) requiredPtr(field string, value *string) *string {
	if value == nil {
		return nil
	}
	out := v.required(field, *value)
	return &out
}

func (v *violations) err() error {
	if len(v.list) == 0 {
		return nil
	}
	return &errs.ValidationError{Entity: v.entity, Violations: v.list}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	out := strings.TrimSpace(*s)
	return &out
}
