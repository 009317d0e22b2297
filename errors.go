package epoxy

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	// ErrMissingField is reported for an absent required member.
	ErrMissingField = errors.New("missing required field")
	// ErrNullValue is reported for a null required scalar member.
	ErrNullValue = errors.New("null value for required field")
	// ErrTypeMismatch is reported when a converter receives a value of another type.
	ErrTypeMismatch = errors.New("type mismatch")
)

// ResolveError reports a type no converter can be created for.
type ResolveError struct {
	Type   reflect.Type
	Reason string
}

func (e *ResolveError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("no converter for type %v", e.Type)
	}
	return fmt.Sprintf("no converter for type %v: %s", e.Type, e.Reason)
}

// FieldError locates a decoding failure within a document.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	var path strings.Builder
	path.WriteString(e.Field)
	err := e.Err
	for {
		inner, ok := err.(*FieldError)
		if !ok {
			break
		}
		if !strings.HasPrefix(inner.Field, "[") {
			path.WriteByte('.')
		}
		path.WriteString(inner.Field)
		err = inner.Err
	}
	return fmt.Sprintf("invalid %s: %v", path.String(), err)
}

func (e *FieldError) Unwrap() error { return e.Err }

func fieldError(field string, err error) error {
	return &FieldError{Field: field, Err: err}
}

func indexError(index int, err error) error {
	return &FieldError{Field: fmt.Sprintf("[%d]", index), Err: err}
}

// EnumError reports a name that does not match any constant of an enum type.
type EnumError struct {
	Type     reflect.Type
	Expected []string
	Actual   string
}

func (e *EnumError) Error() string {
	return fmt.Sprintf("expected one of [%s] but was %q", strings.Join(e.Expected, ", "), e.Actual)
}

// DuplicateKeyError reports a map key that appears more than once.
type DuplicateKeyError struct {
	Key string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("map key %q has multiple values", e.Key)
}

// NewTypeMismatchError reports value not being of the expected type.
func NewTypeMismatchError(expected reflect.Type, value interface{}) error {
	return fmt.Errorf("%w: expected %v but was %T", ErrTypeMismatch, expected, value)
}
