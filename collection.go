package epoxy

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/viant/epoxy/jsonio"
	"github.com/viant/xunsafe"
)

func elementValue(elemType reflect.Type, value interface{}) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(elemType), nil
	}
	v := reflect.ValueOf(value)
	if v.Type() != elemType {
		if !v.Type().ConvertibleTo(elemType) {
			return reflect.Value{}, NewTypeMismatchError(elemType, value)
		}
		v = v.Convert(elemType)
	}
	return v, nil
}

// ListConverter converts slices.
type ListConverter struct {
	rType reflect.Type
	elem  Converter
	slice *xunsafe.Slice
}

// Decode reads an array into a new slice.
func (c *ListConverter) Decode(r *jsonio.Reader) (interface{}, error) {
	if err := r.BeginArray(); err != nil {
		return nil, err
	}
	if c.slice == nil {
		return c.decodeValues(r)
	}
	elemType := c.rType.Elem()
	ret := reflect.New(c.rType)
	appender := c.slice.Appender(ret.UnsafePointer())
	for i := 0; r.HasNext(); i++ {
		value, err := c.elem.Decode(r)
		if err != nil {
			return nil, indexError(i, err)
		}
		item, err := elementValue(elemType, value)
		if err != nil {
			return nil, indexError(i, err)
		}
		if elemType.Kind() == reflect.Ptr {
			appender.Append(item.Interface())
			continue
		}
		reflect.ValueOf(appender.Add()).Elem().Set(item)
	}
	if err := r.EndArray(); err != nil {
		return nil, err
	}
	if appender.Len() == 0 {
		return reflect.MakeSlice(c.rType, 0, 0).Interface(), nil
	}
	return ret.Elem().Interface(), nil
}

// decodeValues reads elements of an interface typed slice.
func (c *ListConverter) decodeValues(r *jsonio.Reader) (interface{}, error) {
	elemType := c.rType.Elem()
	ret := reflect.MakeSlice(c.rType, 0, 4)
	for i := 0; r.HasNext(); i++ {
		value, err := c.elem.Decode(r)
		if err != nil {
			return nil, indexError(i, err)
		}
		item, err := elementValue(elemType, value)
		if err != nil {
			return nil, indexError(i, err)
		}
		ret = reflect.Append(ret, item)
	}
	if err := r.EndArray(); err != nil {
		return nil, err
	}
	return ret.Interface(), nil
}

// Encode writes slice elements.
func (c *ListConverter) Encode(w *jsonio.Writer, value interface{}) error {
	if reflect.TypeOf(value) != c.rType {
		return NewTypeMismatchError(c.rType, value)
	}
	w.BeginArray()
	if c.slice == nil {
		v := reflect.ValueOf(value)
		for i := 0; i < v.Len(); i++ {
			if err := c.elem.Encode(w, v.Index(i).Interface()); err != nil {
				return err
			}
		}
		w.EndArray()
		return nil
	}
	ptr := xunsafe.AsPointer(value)
	size := c.slice.Len(ptr)
	for i := 0; i < size; i++ {
		if err := c.elem.Encode(w, c.slice.ValueAt(ptr, i)); err != nil {
			return err
		}
	}
	w.EndArray()
	return nil
}

// NewListConverter creates a slice converter.
func NewListConverter(rType reflect.Type, elem Converter) *ListConverter {
	ret := &ListConverter{rType: rType, elem: elem}
	if rType.Elem().Kind() != reflect.Interface {
		ret.slice = xunsafe.NewSlice(rType)
	}
	return ret
}

// ArrayConverter converts fixed length arrays.
type ArrayConverter struct {
	rType reflect.Type
	elem  Converter
}

// Decode reads at most the array length of elements.
func (c *ArrayConverter) Decode(r *jsonio.Reader) (interface{}, error) {
	if err := r.BeginArray(); err != nil {
		return nil, err
	}
	ret := reflect.New(c.rType).Elem()
	elemType := c.rType.Elem()
	for i := 0; r.HasNext(); i++ {
		if i >= c.rType.Len() {
			return nil, fmt.Errorf("expected at most %d elements for %v", c.rType.Len(), c.rType)
		}
		value, err := c.elem.Decode(r)
		if err != nil {
			return nil, indexError(i, err)
		}
		item, err := elementValue(elemType, value)
		if err != nil {
			return nil, indexError(i, err)
		}
		ret.Index(i).Set(item)
	}
	if err := r.EndArray(); err != nil {
		return nil, err
	}
	return ret.Interface(), nil
}

// Encode writes all array elements.
func (c *ArrayConverter) Encode(w *jsonio.Writer, value interface{}) error {
	v := reflect.ValueOf(value)
	if !v.IsValid() || v.Type() != c.rType {
		return NewTypeMismatchError(c.rType, value)
	}
	w.BeginArray()
	for i := 0; i < v.Len(); i++ {
		if err := c.elem.Encode(w, v.Index(i).Interface()); err != nil {
			return err
		}
	}
	w.EndArray()
	return nil
}

// NewArrayConverter creates a fixed length array converter.
func NewArrayConverter(rType reflect.Type, elem Converter) *ArrayConverter {
	return &ArrayConverter{rType: rType, elem: elem}
}

// MapConverter converts string keyed maps, keys are written in sorted order.
type MapConverter struct {
	rType reflect.Type
	elem  Converter
}

// Decode reads an object, a repeated key is an error.
func (c *MapConverter) Decode(r *jsonio.Reader) (interface{}, error) {
	if err := r.BeginObject(); err != nil {
		return nil, err
	}
	ret := reflect.MakeMap(c.rType)
	keyType := c.rType.Key()
	elemType := c.rType.Elem()
	seen := map[string]struct{}{}
	for r.HasNext() {
		key, err := r.NextName()
		if err != nil {
			return nil, err
		}
		if _, ok := seen[key]; ok {
			return nil, &DuplicateKeyError{Key: key}
		}
		seen[key] = struct{}{}
		value, err := c.elem.Decode(r)
		if err != nil {
			return nil, fieldError(key, err)
		}
		item, err := elementValue(elemType, value)
		if err != nil {
			return nil, fieldError(key, err)
		}
		ret.SetMapIndex(reflect.ValueOf(key).Convert(keyType), item)
	}
	if err := r.EndObject(); err != nil {
		return nil, err
	}
	return ret.Interface(), nil
}

// Encode writes map entries.
func (c *MapConverter) Encode(w *jsonio.Writer, value interface{}) error {
	v := reflect.ValueOf(value)
	if !v.IsValid() || v.Type() != c.rType {
		return NewTypeMismatchError(c.rType, value)
	}
	keys := v.MapKeys()
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	w.BeginObject()
	for _, key := range keys {
		w.Name(key.String())
		if err := c.elem.Encode(w, v.MapIndex(key).Interface()); err != nil {
			return fieldError(key.String(), err)
		}
	}
	w.EndObject()
	return nil
}

// NewMapConverter creates a map converter.
func NewMapConverter(rType reflect.Type, elem Converter) *MapConverter {
	return &MapConverter{rType: rType, elem: elem}
}

// pointerConverter allocates a value for each decoded non null input.
type pointerConverter struct {
	rType reflect.Type
	elem  Converter
}

func (c *pointerConverter) Decode(r *jsonio.Reader) (interface{}, error) {
	value, err := c.elem.Decode(r)
	if err != nil || value == nil {
		return nil, err
	}
	item, err := elementValue(c.rType.Elem(), value)
	if err != nil {
		return nil, err
	}
	ret := reflect.New(c.rType.Elem())
	ret.Elem().Set(item)
	return ret.Interface(), nil
}

func (c *pointerConverter) Encode(w *jsonio.Writer, value interface{}) error {
	v := reflect.ValueOf(value)
	if !v.IsValid() || v.Type() != c.rType {
		return NewTypeMismatchError(c.rType, value)
	}
	return c.elem.Encode(w, v.Elem().Interface())
}

// structValue adapts a generated converter producing *T to fields of type T.
type structValue struct {
	rType reflect.Type
	inner Converter
}

func (c *structValue) Decode(r *jsonio.Reader) (interface{}, error) {
	value, err := c.inner.Decode(r)
	if err != nil || value == nil {
		return nil, err
	}
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	return v.Interface(), nil
}

func (c *structValue) Encode(w *jsonio.Writer, value interface{}) error {
	return c.inner.Encode(w, value)
}
