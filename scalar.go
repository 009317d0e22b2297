package epoxy

import (
	"reflect"

	"github.com/viant/epoxy/jsonio"
)

type scalarConverter[T any] struct {
	rType  reflect.Type
	decode func(r *jsonio.Reader) (T, error)
	encode func(w *jsonio.Writer, value T)
}

func (c *scalarConverter[T]) Decode(r *jsonio.Reader) (interface{}, error) {
	value, err := c.decode(r)
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (c *scalarConverter[T]) Encode(w *jsonio.Writer, value interface{}) error {
	actual, ok := value.(T)
	if !ok {
		return NewTypeMismatchError(c.rType, value)
	}
	c.encode(w, actual)
	return nil
}

func newScalar[T any](decode func(r *jsonio.Reader) (T, error), encode func(w *jsonio.Writer, value T)) Converter {
	return &scalarConverter[T]{rType: reflect.TypeOf((*T)(nil)).Elem(), decode: decode, encode: encode}
}

func writeSigned[T int | int8 | int16 | int32 | int64](w *jsonio.Writer, value T) {
	w.Int(int64(value))
}

func writeUnsigned[T uint | uint8 | uint16 | uint32 | uint64](w *jsonio.Writer, value T) {
	w.Uint(uint64(value))
}

var scalarConverters = map[reflect.Kind]Converter{
	reflect.Bool:    newScalar((*jsonio.Reader).NextBool, (*jsonio.Writer).Bool),
	reflect.Int:     newScalar((*jsonio.Reader).NextInt, writeSigned[int]),
	reflect.Int8:    newScalar((*jsonio.Reader).NextInt8, writeSigned[int8]),
	reflect.Int16:   newScalar((*jsonio.Reader).NextInt16, writeSigned[int16]),
	reflect.Int32:   newScalar((*jsonio.Reader).NextInt32, writeSigned[int32]),
	reflect.Int64:   newScalar((*jsonio.Reader).NextInt64, writeSigned[int64]),
	reflect.Uint:    newScalar((*jsonio.Reader).NextUint, writeUnsigned[uint]),
	reflect.Uint8:   newScalar((*jsonio.Reader).NextUint8, writeUnsigned[uint8]),
	reflect.Uint16:  newScalar((*jsonio.Reader).NextUint16, writeUnsigned[uint16]),
	reflect.Uint32:  newScalar((*jsonio.Reader).NextUint32, writeUnsigned[uint32]),
	reflect.Uint64:  newScalar((*jsonio.Reader).NextUint64, writeUnsigned[uint64]),
	reflect.Float32: newScalar((*jsonio.Reader).NextFloat32, (*jsonio.Writer).Float32),
	reflect.Float64: newScalar((*jsonio.Reader).NextFloat64, (*jsonio.Writer).Float64),
	reflect.String:  newScalar((*jsonio.Reader).NextString, (*jsonio.Writer).String),
}

// namedScalar converts between a defined scalar type and its underlying built-in converter.
type namedScalar struct {
	rType    reflect.Type
	baseType reflect.Type
	base     Converter
}

func (c *namedScalar) Decode(r *jsonio.Reader) (interface{}, error) {
	value, err := c.base.Decode(r)
	if err != nil || value == nil {
		return value, err
	}
	return reflect.ValueOf(value).Convert(c.rType).Interface(), nil
}

func (c *namedScalar) Encode(w *jsonio.Writer, value interface{}) error {
	v := reflect.ValueOf(value)
	if !v.IsValid() || v.Type() != c.rType {
		return NewTypeMismatchError(c.rType, value)
	}
	return c.base.Encode(w, v.Convert(c.baseType).Interface())
}

type typedConverter interface {
	valueType() reflect.Type
}

func lookupScalar(rType reflect.Type) (Converter, bool) {
	base, ok := scalarConverters[rType.Kind()]
	if !ok {
		return nil, false
	}
	baseType := base.(typedConverter).valueType()
	if rType == baseType {
		return base, true
	}
	return &namedScalar{rType: rType, baseType: baseType, base: base}, true
}

func (c *scalarConverter[T]) valueType() reflect.Type { return c.rType }
