package settings

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingField is returned when a required field is absent from the view.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidBoolean is returned when a raw value is not in the boolean table.
	ErrInvalidBoolean = errors.New("invalid boolean")
	// ErrInvalidInteger is returned when a raw value does not parse as an integer.
	ErrInvalidInteger = errors.New("invalid integer")
	// ErrOutOfRange is returned when an integer falls outside the field bounds.
	ErrOutOfRange = errors.New("value out of range")
	// ErrInvalidEnum is returned when a raw value matches no enum member.
	ErrInvalidEnum = errors.New("invalid enum value")
	// ErrValidation is returned when a field's custom validator rejects a value.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidSchema is returned when a schema declaration is inconsistent.
	ErrInvalidSchema = errors.New("invalid schema")
)

// FieldError describes a binding failure for a single field.
// Err is one of the sentinel errors above.
type FieldError struct {
	Field   string
	Raw     string
	Value   int
	Min     int
	Max     int
	Allowed []string
	Err     error
	Cause   error
}

func (e *FieldError) Error() string {
	switch e.Err {
	case ErrMissingField:
		return fmt.Sprintf("field %q: %v", e.Field, e.Err)
	case ErrInvalidBoolean, ErrInvalidInteger:
		return fmt.Sprintf("field %q: %v %q", e.Field, e.Err, e.Raw)
	case ErrOutOfRange:
		return fmt.Sprintf("field %q: %v: %d not in [%d, %d]", e.Field, e.Err, e.Value, e.Min, e.Max)
	case ErrInvalidEnum:
		return fmt.Sprintf("field %q: %v %q, must be one of %s", e.Field, e.Err, e.Raw, strings.Join(e.Allowed, ", "))
	}
	if e.Cause != nil {
		return fmt.Sprintf("field %q: %v: %v", e.Field, e.Err, e.Cause)
	}
	return fmt.Sprintf("field %q: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}
