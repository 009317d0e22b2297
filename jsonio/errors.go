package jsonio

import "fmt"

// SyntaxError reports malformed JSON input.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Msg, e.Offset)
}

// TypeError reports a well formed token of an unexpected kind.
type TypeError struct {
	Expected string
	Actual   Kind
	Offset   int
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("expected %s but was %s at offset %d", e.Expected, e.Actual, e.Offset)
}

// RangeError reports a number that does not fit the requested type.
type RangeError struct {
	Literal string
	Type    string
	Offset  int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("expected %s but was %s at offset %d", e.Type, e.Literal, e.Offset)
}

// DuplicateKeyError reports a repeated object member rejected by ErrorOnDuplicate.
type DuplicateKeyError struct {
	Name   string
	Offset int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate member %q at offset %d", e.Name, e.Offset)
}

// UnsupportedValueError reports a value that has no JSON representation.
type UnsupportedValueError struct {
	Value  string
	Offset int
}

func (e *UnsupportedValueError) Error() string {
	return fmt.Sprintf("unsupported value %s at offset %d", e.Value, e.Offset)
}
