package epoxy

import (
	"fmt"
	"reflect"

	"github.com/viant/epoxy/jsonio"
)

// Marshal encodes value with the converter of its dynamic type.
func Marshal(value interface{}, opts ...Option) ([]byte, error) {
	options := resolveOptions(opts)
	writer := jsonio.NewWriter(options.IO...)
	if value == nil {
		writer.Null()
		return writer.Bytes(), nil
	}
	converter, err := options.Registry.Resolve(reflect.TypeOf(value))
	if err != nil {
		return nil, err
	}
	if err = converter.Encode(writer, value); err != nil {
		return nil, err
	}
	if err = writer.Err(); err != nil {
		return nil, err
	}
	return writer.Bytes(), nil
}

// Unmarshal decodes data into dest, dest must be a non nil pointer.
func Unmarshal(data []byte, dest interface{}, opts ...Option) error {
	destValue := reflect.ValueOf(dest)
	if destValue.Kind() != reflect.Ptr || destValue.IsNil() {
		return fmt.Errorf("expected non nil pointer but was %T", dest)
	}
	options := resolveOptions(opts)
	rType := destValue.Type().Elem()
	value, err := decode(data, rType, options)
	if err != nil {
		return err
	}
	if value == nil {
		destValue.Elem().Set(reflect.Zero(rType))
		return nil
	}
	item, err := elementValue(rType, value)
	if err != nil {
		return err
	}
	destValue.Elem().Set(item)
	return nil
}

// Decode decodes data as T.
func Decode[T any](data []byte, opts ...Option) (T, error) {
	var ret T
	err := Unmarshal(data, &ret, opts...)
	return ret, err
}

func decode(data []byte, rType reflect.Type, options *Options) (interface{}, error) {
	converter, err := options.Registry.Resolve(rType)
	if err != nil {
		return nil, err
	}
	reader := jsonio.NewReader(data, options.IO...)
	value, err := converter.Decode(reader)
	if err != nil {
		return nil, err
	}
	if err = reader.End(); err != nil {
		return nil, err
	}
	return value, nil
}
