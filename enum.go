package epoxy

import (
	"fmt"
	"reflect"

	"github.com/viant/epoxy/jsonio"
)

// EnumConstant maps a JSON name to an enum value.
type EnumConstant struct {
	Name  string
	Value interface{}
}

// EnumConverter encodes enum values as their constant names.
type EnumConverter struct {
	rType   reflect.Type
	names   []string
	byName  map[string]interface{}
	byValue map[interface{}]string
}

// Decode reads a constant name.
func (c *EnumConverter) Decode(r *jsonio.Reader) (interface{}, error) {
	name, err := r.NextString()
	if err != nil {
		return nil, err
	}
	value, ok := c.byName[name]
	if !ok {
		return nil, &EnumError{Type: c.rType, Expected: c.names, Actual: name}
	}
	return value, nil
}

// Encode writes the constant name of value.
func (c *EnumConverter) Encode(w *jsonio.Writer, value interface{}) error {
	if reflect.TypeOf(value) != c.rType {
		return NewTypeMismatchError(c.rType, value)
	}
	name, ok := c.byValue[value]
	if !ok {
		return fmt.Errorf("%v is not a constant of %v", value, c.rType)
	}
	w.String(name)
	return nil
}

// NewEnumConverter creates an enum converter, constants keep their declaration order.
func NewEnumConverter(rType reflect.Type, constants []EnumConstant) *EnumConverter {
	ret := &EnumConverter{
		rType:   rType,
		byName:  make(map[string]interface{}, len(constants)),
		byValue: make(map[interface{}]string, len(constants)),
	}
	for _, constant := range constants {
		value := reflect.ValueOf(constant.Value).Convert(rType).Interface()
		if _, ok := ret.byName[constant.Name]; !ok {
			ret.names = append(ret.names, constant.Name)
		}
		ret.byName[constant.Name] = value
		if _, ok := ret.byValue[value]; !ok {
			ret.byValue[value] = constant.Name
		}
	}
	return ret
}
