// Package epoxy provides the runtime for generated JSON bindings: a converter registry,
// built-in converters for scalars, enums, collections and dynamic values, and the
// field helpers that generated binders call.
package epoxy

import (
	"reflect"

	"github.com/viant/epoxy/jsonio"
)

// Converter encodes and decodes values of one type.
// Decode returns nil for a JSON null accepted by the converter.
type Converter interface {
	Decode(r *jsonio.Reader) (interface{}, error)
	Encode(w *jsonio.Writer, value interface{}) error
}

type nullSafe struct {
	Converter
}

func (n *nullSafe) Decode(r *jsonio.Reader) (interface{}, error) {
	kind, err := r.Peek()
	if err != nil {
		return nil, err
	}
	if kind == jsonio.KindNull {
		return nil, r.NextNull()
	}
	return n.Converter.Decode(r)
}

func (n *nullSafe) Encode(w *jsonio.Writer, value interface{}) error {
	if isNil(value) {
		w.Null()
		return nil
	}
	return n.Converter.Encode(w, value)
}

// NullSafe wraps converter so that a JSON null decodes to nil and a nil value encodes as null.
func NullSafe(converter Converter) Converter {
	if _, ok := converter.(*nullSafe); ok {
		return converter
	}
	return &nullSafe{Converter: converter}
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// placeholder forwards to a converter that is still under construction.
type placeholder struct {
	rType  reflect.Type
	target Converter
}

func (p *placeholder) Decode(r *jsonio.Reader) (interface{}, error) {
	if p.target == nil {
		return nil, &ResolveError{Type: p.rType, Reason: "converter used before construction completed"}
	}
	return p.target.Decode(r)
}

func (p *placeholder) Encode(w *jsonio.Writer, value interface{}) error {
	if p.target == nil {
		return &ResolveError{Type: p.rType, Reason: "converter used before construction completed"}
	}
	return p.target.Encode(w, value)
}
