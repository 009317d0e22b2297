package epoxy

import (
	"fmt"
	"reflect"

	"github.com/viant/epoxy/jsonio"
)

// DynamicConverter converts untyped values. Objects decode to *OrderedMap, arrays to []interface{},
// numbers to float64. Encoding dispatches on the runtime type of the value.
type DynamicConverter struct {
	registry *Registry
}

// Decode reads any JSON value.
func (c *DynamicConverter) Decode(r *jsonio.Reader) (interface{}, error) {
	kind, err := r.Peek()
	if err != nil {
		return nil, err
	}
	switch kind {
	case jsonio.KindObject:
		if err = r.BeginObject(); err != nil {
			return nil, err
		}
		ret := NewOrderedMap()
		for r.HasNext() {
			name, err := r.NextName()
			if err != nil {
				return nil, err
			}
			value, err := c.Decode(r)
			if err != nil {
				return nil, fieldError(name, err)
			}
			ret.Set(name, value)
		}
		return ret, r.EndObject()
	case jsonio.KindArray:
		if err = r.BeginArray(); err != nil {
			return nil, err
		}
		ret := make([]interface{}, 0)
		for i := 0; r.HasNext(); i++ {
			value, err := c.Decode(r)
			if err != nil {
				return nil, indexError(i, err)
			}
			ret = append(ret, value)
		}
		return ret, r.EndArray()
	case jsonio.KindString:
		return r.NextString()
	case jsonio.KindNumber:
		return r.NextFloat64()
	case jsonio.KindBool:
		return r.NextBool()
	case jsonio.KindNull:
		return nil, r.NextNull()
	}
	return nil, fmt.Errorf("unexpected token at offset %d", r.Offset())
}

// Encode writes value using the converter of its runtime type.
func (c *DynamicConverter) Encode(w *jsonio.Writer, value interface{}) error {
	switch actual := value.(type) {
	case nil:
		w.Null()
		return nil
	case *OrderedMap:
		if actual == nil {
			w.Null()
			return nil
		}
		w.BeginObject()
		for _, key := range actual.keys {
			w.Name(key)
			if err := c.Encode(w, actual.values[key]); err != nil {
				return fieldError(key, err)
			}
		}
		w.EndObject()
		return nil
	}
	rType := reflect.TypeOf(value)
	if rType.Kind() == reflect.Struct && rType.NumField() == 0 {
		w.BeginObject()
		w.EndObject()
		return nil
	}
	converter, err := c.registry.Resolve(rType)
	if err != nil {
		return err
	}
	return converter.Encode(w, value)
}
