package epoxy

import (
	"reflect"

	"github.com/viant/epoxy/jsonio"
)

// The helpers below are called by generated binders. Parse helpers read the member key of
// an object: an optional member that is missing, null or malformed yields the zero value,
// a required member must be present. Put helpers write a member; optional nil values are omitted.

func missing(key string) error {
	return fieldError(key, ErrMissingField)
}

func parseScalar[T any](object *jsonio.Object, key string, optional bool, next func(*jsonio.Reader) (T, error)) (T, error) {
	var zero T
	reader, ok := object.Reader(key)
	if !ok {
		if optional {
			return zero, nil
		}
		return zero, missing(key)
	}
	if object.IsNull(key) {
		if optional {
			return zero, nil
		}
		return zero, fieldError(key, ErrNullValue)
	}
	value, err := next(reader)
	if err != nil {
		if optional {
			return zero, nil
		}
		return zero, fieldError(key, err)
	}
	return value, nil
}

func parseScalarPtr[T any](object *jsonio.Object, key string, optional bool, next func(*jsonio.Reader) (T, error)) (*T, error) {
	reader, ok := object.Reader(key)
	if !ok {
		if optional {
			return nil, nil
		}
		return nil, missing(key)
	}
	if object.IsNull(key) {
		return nil, nil
	}
	value, err := next(reader)
	if err != nil {
		if optional {
			return nil, nil
		}
		return nil, fieldError(key, err)
	}
	return &value, nil
}

func parseScalarSlice[T any](object *jsonio.Object, key string, optional bool, next func(*jsonio.Reader) (T, error)) ([]T, error) {
	reader, ok := object.Reader(key)
	if !ok {
		if optional {
			return nil, nil
		}
		return nil, missing(key)
	}
	if object.IsNull(key) {
		return nil, nil
	}
	ret, err := readScalarSlice(reader, next)
	if err != nil {
		if optional {
			return nil, nil
		}
		return nil, fieldError(key, err)
	}
	return ret, nil
}

func readScalarSlice[T any](reader *jsonio.Reader, next func(*jsonio.Reader) (T, error)) ([]T, error) {
	if err := reader.BeginArray(); err != nil {
		return nil, err
	}
	ret := make([]T, 0)
	for i := 0; reader.HasNext(); i++ {
		value, err := next(reader)
		if err != nil {
			return nil, indexError(i, err)
		}
		ret = append(ret, value)
	}
	return ret, reader.EndArray()
}

func putScalarPtr[T any](w *jsonio.Writer, key string, value *T, optional bool, write func(*jsonio.Writer, T)) {
	if value == nil {
		if !optional {
			w.Name(key)
			w.Null()
		}
		return
	}
	w.Name(key)
	write(w, *value)
}

func putScalarSlice[T any](w *jsonio.Writer, key string, value []T, optional bool, write func(*jsonio.Writer, T)) {
	if value == nil {
		if !optional {
			w.Name(key)
			w.Null()
		}
		return
	}
	w.Name(key)
	w.BeginArray()
	for _, item := range value {
		write(w, item)
	}
	w.EndArray()
}

// ParseValue decodes member key with the converter resolved for rType.
// Missing, null or malformed optional members yield the zero value; errors within nested
// elements are always returned.
func ParseValue[T any](registry *Registry, object *jsonio.Object, key string, optional bool, rType reflect.Type) (T, error) {
	var zero T
	reader, ok := object.Reader(key)
	if !ok {
		if optional {
			return zero, nil
		}
		return zero, missing(key)
	}
	converter, err := registry.Resolve(rType)
	if err != nil {
		return zero, fieldError(key, err)
	}
	value, err := converter.Decode(reader)
	if err != nil {
		if optional && malformed(err) {
			return zero, nil
		}
		return zero, fieldError(key, err)
	}
	if value == nil {
		return zero, nil
	}
	actual, ok := value.(T)
	if !ok {
		return zero, fieldError(key, NewTypeMismatchError(rType, value))
	}
	return actual, nil
}

// malformed reports whether err rejects the member value itself rather than one of its elements.
func malformed(err error) bool {
	switch err.(type) {
	case *jsonio.TypeError, *jsonio.RangeError, *EnumError:
		return true
	}
	return false
}

// PutValue encodes member key with the converter resolved for rType.
func PutValue(registry *Registry, w *jsonio.Writer, key string, value interface{}, optional bool, rType reflect.Type) error {
	if isNil(value) {
		if !optional {
			w.Name(key)
			w.Null()
		}
		return nil
	}
	converter, err := registry.Resolve(rType)
	if err != nil {
		return fieldError(key, err)
	}
	w.Name(key)
	if err = converter.Encode(w, value); err != nil {
		return fieldError(key, err)
	}
	return nil
}

// ParseBool reads a bool member.
func ParseBool(object *jsonio.Object, key string, optional bool) (bool, error) {
	return parseScalar(object, key, optional, (*jsonio.Reader).NextBool)
}

// ParseBoolPtr reads a nullable bool member.
func ParseBoolPtr(object *jsonio.Object, key string, optional bool) (*bool, error) {
	return parseScalarPtr(object, key, optional, (*jsonio.Reader).NextBool)
}

// ParseBoolSlice reads a bool array member.
func ParseBoolSlice(object *jsonio.Object, key string, optional bool) ([]bool, error) {
	return parseScalarSlice(object, key, optional, (*jsonio.Reader).NextBool)
}

// PutBool writes a bool member.
func PutBool(w *jsonio.Writer, key string, value bool) {
	w.Name(key)
	w.Bool(value)
}

// PutBoolPtr writes a nullable bool member.
func PutBoolPtr(w *jsonio.Writer, key string, value *bool, optional bool) {
	putScalarPtr(w, key, value, optional, (*jsonio.Writer).Bool)
}

// PutBoolSlice writes a bool array member.
func PutBoolSlice(w *jsonio.Writer, key string, value []bool, optional bool) {
	putScalarSlice(w, key, value, optional, (*jsonio.Writer).Bool)
}

// ParseInt reads an int member.
func ParseInt(object *jsonio.Object, key string, optional bool) (int, error) {
	return parseScalar(object, key, optional, (*jsonio.Reader).NextInt)
}

// ParseIntPtr reads a nullable int member.
func ParseIntPtr(object *jsonio.Object, key string, optional bool) (*int, error) {
	return parseScalarPtr(object, key, optional, (*jsonio.Reader).NextInt)
}

// ParseIntSlice reads an int array member.
func ParseIntSlice(object *jsonio.Object, key string, optional bool) ([]int, error) {
	return parseScalarSlice(object, key, optional, (*jsonio.Reader).NextInt)
}

// PutInt writes an int member.
func PutInt(w *jsonio.Writer, key string, value int) {
	w.Name(key)
	w.Int(int64(value))
}

// PutIntPtr writes a nullable int member.
func PutIntPtr(w *jsonio.Writer, key string, value *int, optional bool) {
	putScalarPtr(w, key, value, optional, writeSigned[int])
}

// PutIntSlice writes an int array member.
func PutIntSlice(w *jsonio.Writer, key string, value []int, optional bool) {
	putScalarSlice(w, key, value, optional, writeSigned[int])
}

// ParseInt16 reads an int16 member.
func ParseInt16(object *jsonio.Object, key string, optional bool) (int16, error) {
	return parseScalar(object, key, optional, (*jsonio.Reader).NextInt16)
}

// ParseInt16Ptr reads a nullable int16 member.
func ParseInt16Ptr(object *jsonio.Object, key string, optional bool) (*int16, error) {
	return parseScalarPtr(object, key, optional, (*jsonio.Reader).NextInt16)
}

// ParseInt16Slice reads an int16 array member.
func ParseInt16Slice(object *jsonio.Object, key string, optional bool) ([]int16, error) {
	return parseScalarSlice(object, key, optional, (*jsonio.Reader).NextInt16)
}

// PutInt16 writes an int16 member.
func PutInt16(w *jsonio.Writer, key string, value int16) {
	w.Name(key)
	w.Int(int64(value))
}

// PutInt16Ptr writes a nullable int16 member.
func PutInt16Ptr(w *jsonio.Writer, key string, value *int16, optional bool) {
	putScalarPtr(w, key, value, optional, writeSigned[int16])
}

// PutInt16Slice writes an int16 array member.
func PutInt16Slice(w *jsonio.Writer, key string, value []int16, optional bool) {
	putScalarSlice(w, key, value, optional, writeSigned[int16])
}

// ParseInt32 reads an int32 member.
func ParseInt32(object *jsonio.Object, key string, optional bool) (int32, error) {
	return parseScalar(object, key, optional, (*jsonio.Reader).NextInt32)
}

// ParseInt32Ptr reads a nullable int32 member.
func ParseInt32Ptr(object *jsonio.Object, key string, optional bool) (*int32, error) {
	return parseScalarPtr(object, key, optional, (*jsonio.Reader).NextInt32)
}

// ParseInt32Slice reads an int32 array member.
func ParseInt32Slice(object *jsonio.Object, key string, optional bool) ([]int32, error) {
	return parseScalarSlice(object, key, optional, (*jsonio.Reader).NextInt32)
}

// PutInt32 writes an int32 member.
func PutInt32(w *jsonio.Writer, key string, value int32) {
	w.Name(key)
	w.Int(int64(value))
}

// PutInt32Ptr writes a nullable int32 member.
func PutInt32Ptr(w *jsonio.Writer, key string, value *int32, optional bool) {
	putScalarPtr(w, key, value, optional, writeSigned[int32])
}

// PutInt32Slice writes an int32 array member.
func PutInt32Slice(w *jsonio.Writer, key string, value []int32, optional bool) {
	putScalarSlice(w, key, value, optional, writeSigned[int32])
}

// ParseInt64 reads an int64 member.
func ParseInt64(object *jsonio.Object, key string, optional bool) (int64, error) {
	return parseScalar(object, key, optional, (*jsonio.Reader).NextInt64)
}

// ParseInt64Ptr reads a nullable int64 member.
func ParseInt64Ptr(object *jsonio.Object, key string, optional bool) (*int64, error) {
	return parseScalarPtr(object, key, optional, (*jsonio.Reader).NextInt64)
}

// ParseInt64Slice reads an int64 array member.
func ParseInt64Slice(object *jsonio.Object, key string, optional bool) ([]int64, error) {
	return parseScalarSlice(object, key, optional, (*jsonio.Reader).NextInt64)
}

// PutInt64 writes an int64 member.
func PutInt64(w *jsonio.Writer, key string, value int64) {
	w.Name(key)
	w.Int(value)
}

// PutInt64Ptr writes a nullable int64 member.
func PutInt64Ptr(w *jsonio.Writer, key string, value *int64, optional bool) {
	putScalarPtr(w, key, value, optional, (*jsonio.Writer).Int)
}

// PutInt64Slice writes an int64 array member.
func PutInt64Slice(w *jsonio.Writer, key string, value []int64, optional bool) {
	putScalarSlice(w, key, value, optional, (*jsonio.Writer).Int)
}

// ParseUint reads a uint member.
func ParseUint(object *jsonio.Object, key string, optional bool) (uint, error) {
	return parseScalar(object, key, optional, (*jsonio.Reader).NextUint)
}

// ParseUintPtr reads a nullable uint member.
func ParseUintPtr(object *jsonio.Object, key string, optional bool) (*uint, error) {
	return parseScalarPtr(object, key, optional, (*jsonio.Reader).NextUint)
}

// ParseUintSlice reads a uint array member.
func ParseUintSlice(object *jsonio.Object, key string, optional bool) ([]uint, error) {
	return parseScalarSlice(object, key, optional, (*jsonio.Reader).NextUint)
}

// PutUint writes a uint member.
func PutUint(w *jsonio.Writer, key string, value uint) {
	w.Name(key)
	w.Uint(uint64(value))
}

// PutUintPtr writes a nullable uint member.
func PutUintPtr(w *jsonio.Writer, key string, value *uint, optional bool) {
	putScalarPtr(w, key, value, optional, writeUnsigned[uint])
}

// PutUintSlice writes a uint array member.
func PutUintSlice(w *jsonio.Writer, key string, value []uint, optional bool) {
	putScalarSlice(w, key, value, optional, writeUnsigned[uint])
}

// ParseUint16 reads a uint16 member.
func ParseUint16(object *jsonio.Object, key string, optional bool) (uint16, error) {
	return parseScalar(object, key, optional, (*jsonio.Reader).NextUint16)
}

// ParseUint16Ptr reads a nullable uint16 member.
func ParseUint16Ptr(object *jsonio.Object, key string, optional bool) (*uint16, error) {
	return parseScalarPtr(object, key, optional, (*jsonio.Reader).NextUint16)
}

// ParseUint16Slice reads a uint16 array member.
func ParseUint16Slice(object *jsonio.Object, key string, optional bool) ([]uint16, error) {
	return parseScalarSlice(object, key, optional, (*jsonio.Reader).NextUint16)
}

// PutUint16 writes a uint16 member.
func PutUint16(w *jsonio.Writer, key string, value uint16) {
	w.Name(key)
	w.Uint(uint64(value))
}

// PutUint16Ptr writes a nullable uint16 member.
func PutUint16Ptr(w *jsonio.Writer, key string, value *uint16, optional bool) {
	putScalarPtr(w, key, value, optional, writeUnsigned[uint16])
}

// PutUint16Slice writes a uint16 array member.
func PutUint16Slice(w *jsonio.Writer, key string, value []uint16, optional bool) {
	putScalarSlice(w, key, value, optional, writeUnsigned[uint16])
}

// ParseUint32 reads a uint32 member.
func ParseUint32(object *jsonio.Object, key string, optional bool) (uint32, error) {
	return parseScalar(object, key, optional, (*jsonio.Reader).NextUint32)
}

// ParseUint32Ptr reads a nullable uint32 member.
func ParseUint32Ptr(object *jsonio.Object, key string, optional bool) (*uint32, error) {
	return parseScalarPtr(object, key, optional, (*jsonio.Reader).NextUint32)
}

// ParseUint32Slice reads a uint32 array member.
func ParseUint32Slice(object *jsonio.Object, key string, optional bool) ([]uint32, error) {
	return parseScalarSlice(object, key, optional, (*jsonio.Reader).NextUint32)
}

// PutUint32 writes a uint32 member.
func PutUint32(w *jsonio.Writer, key string, value uint32) {
	w.Name(key)
	w.Uint(uint64(value))
}

// PutUint32Ptr writes a nullable uint32 member.
func PutUint32Ptr(w *jsonio.Writer, key string, value *uint32, optional bool) {
	putScalarPtr(w, key, value, optional, writeUnsigned[uint32])
}

// PutUint32Slice writes a uint32 array member.
func PutUint32Slice(w *jsonio.Writer, key string, value []uint32, optional bool) {
	putScalarSlice(w, key, value, optional, writeUnsigned[uint32])
}

// ParseUint64 reads a uint64 member.
func ParseUint64(object *jsonio.Object, key string, optional bool) (uint64, error) {
	return parseScalar(object, key, optional, (*jsonio.Reader).NextUint64)
}

// ParseUint64Ptr reads a nullable uint64 member.
func ParseUint64Ptr(object *jsonio.Object, key string, optional bool) (*uint64, error) {
	return parseScalarPtr(object, key, optional, (*jsonio.Reader).NextUint64)
}

// ParseUint64Slice reads a uint64 array member.
func ParseUint64Slice(object *jsonio.Object, key string, optional bool) ([]uint64, error) {
	return parseScalarSlice(object, key, optional, (*jsonio.Reader).NextUint64)
}

// PutUint64 writes a uint64 member.
func PutUint64(w *jsonio.Writer, key string, value uint64) {
	w.Name(key)
	w.Uint(value)
}

// PutUint64Ptr writes a nullable uint64 member.
func PutUint64Ptr(w *jsonio.Writer, key string, value *uint64, optional bool) {
	putScalarPtr(w, key, value, optional, (*jsonio.Writer).Uint)
}

// PutUint64Slice writes a uint64 array member.
func PutUint64Slice(w *jsonio.Writer, key string, value []uint64, optional bool) {
	putScalarSlice(w, key, value, optional, (*jsonio.Writer).Uint)
}

// ParseFloat32 reads a float32 member.
func ParseFloat32(object *jsonio.Object, key string, optional bool) (float32, error) {
	return parseScalar(object, key, optional, (*jsonio.Reader).NextFloat32)
}

// ParseFloat32Ptr reads a nullable float32 member.
func ParseFloat32Ptr(object *jsonio.Object, key string, optional bool) (*float32, error) {
	return parseScalarPtr(object, key, optional, (*jsonio.Reader).NextFloat32)
}

// ParseFloat32Slice reads a float32 array member.
func ParseFloat32Slice(object *jsonio.Object, key string, optional bool) ([]float32, error) {
	return parseScalarSlice(object, key, optional, (*jsonio.Reader).NextFloat32)
}

// PutFloat32 writes a float32 member.
func PutFloat32(w *jsonio.Writer, key string, value float32) {
	w.Name(key)
	w.Float32(value)
}

// PutFloat32Ptr writes a nullable float32 member.
func PutFloat32Ptr(w *jsonio.Writer, key string, value *float32, optional bool) {
	putScalarPtr(w, key, value, optional, (*jsonio.Writer).Float32)
}

// PutFloat32Slice writes a float32 array member.
func PutFloat32Slice(w *jsonio.Writer, key string, value []float32, optional bool) {
	putScalarSlice(w, key, value, optional, (*jsonio.Writer).Float32)
}

// ParseFloat64 reads a float64 member.
func ParseFloat64(object *jsonio.Object, key string, optional bool) (float64, error) {
	return parseScalar(object, key, optional, (*jsonio.Reader).NextFloat64)
}

// ParseFloat64Ptr reads a nullable float64 member.
func ParseFloat64Ptr(object *jsonio.Object, key string, optional bool) (*float64, error) {
	return parseScalarPtr(object, key, optional, (*jsonio.Reader).NextFloat64)
}

// ParseFloat64Slice reads a float64 array member.
func ParseFloat64Slice(object *jsonio.Object, key string, optional bool) ([]float64, error) {
	return parseScalarSlice(object, key, optional, (*jsonio.Reader).NextFloat64)
}

// PutFloat64 writes a float64 member.
func PutFloat64(w *jsonio.Writer, key string, value float64) {
	w.Name(key)
	w.Float64(value)
}

// PutFloat64Ptr writes a nullable float64 member.
func PutFloat64Ptr(w *jsonio.Writer, key string, value *float64, optional bool) {
	putScalarPtr(w, key, value, optional, (*jsonio.Writer).Float64)
}

// PutFloat64Slice writes a float64 array member.
func PutFloat64Slice(w *jsonio.Writer, key string, value []float64, optional bool) {
	putScalarSlice(w, key, value, optional, (*jsonio.Writer).Float64)
}

// ParseString reads a string member.
func ParseString(object *jsonio.Object, key string, optional bool) (string, error) {
	return parseScalar(object, key, optional, (*jsonio.Reader).NextString)
}

// ParseStringPtr reads a nullable string member.
func ParseStringPtr(object *jsonio.Object, key string, optional bool) (*string, error) {
	return parseScalarPtr(object, key, optional, (*jsonio.Reader).NextString)
}

// ParseStringSlice reads a string array member.
func ParseStringSlice(object *jsonio.Object, key string, optional bool) ([]string, error) {
	return parseScalarSlice(object, key, optional, (*jsonio.Reader).NextString)
}

// PutString writes a string member.
func PutString(w *jsonio.Writer, key string, value string) {
	w.Name(key)
	w.String(value)
}

// PutStringPtr writes a nullable string member.
func PutStringPtr(w *jsonio.Writer, key string, value *string, optional bool) {
	putScalarPtr(w, key, value, optional, (*jsonio.Writer).String)
}

// PutStringSlice writes a string array member.
func PutStringSlice(w *jsonio.Writer, key string, value []string, optional bool) {
	putScalarSlice(w, key, value, optional, (*jsonio.Writer).String)
}
