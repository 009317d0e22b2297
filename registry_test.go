package epoxy

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/epoxy/jsonio"
)

type testColor string

const (
	testColorA testColor = "A"
	testColorB testColor = "B"
)

type testCelsius float64

type testLabel string

type testTree map[string]testTree

type testCycleA []testCycleB

type testCycleB []testCycleA

func init() {
	RegisterEnum(reflect.TypeOf(testColorA), EnumConstant{Name: "A", Value: testColorA}, EnumConstant{Name: "B", Value: testColorB})
}

func TestRegistry_ResolveIdempotent(t *testing.T) {
	registry := NewRegistry()
	testCases := []struct {
		description string
		rType       reflect.Type
	}{
		{description: "scalar", rType: reflect.TypeOf(0)},
		{description: "list", rType: reflect.TypeOf([]string{})},
		{description: "nested list", rType: reflect.TypeOf([][]int{})},
		{description: "map", rType: reflect.TypeOf(map[string][]float64{})},
		{description: "pointer", rType: reflect.TypeOf((*int)(nil))},
		{description: "enum", rType: reflect.TypeOf(testColorA)},
		{description: "dynamic", rType: reflect.TypeOf((*interface{})(nil)).Elem()},
		{description: "recursive", rType: reflect.TypeOf(testTree{})},
	}
	for _, testCase := range testCases {
		first, err := registry.Resolve(testCase.rType)
		require.NoError(t, err, testCase.description)
		second, err := registry.Resolve(testCase.rType)
		require.NoError(t, err, testCase.description)
		assert.Same(t, first, second, testCase.description)
	}
	structural, err := registry.Resolve(reflect.TypeOf([]string(nil)))
	require.NoError(t, err)
	expect, _ := registry.Resolve(reflect.TypeOf([]string{}))
	assert.Same(t, expect, structural)
}

func TestRegistry_ResolveErrors(t *testing.T) {
	registry := NewRegistry()
	testCases := []struct {
		description string
		rType       reflect.Type
	}{
		{description: "int keyed map", rType: reflect.TypeOf(map[int]string{})},
		{description: "unregistered struct", rType: reflect.TypeOf(struct{ A int }{})},
		{description: "channel", rType: reflect.TypeOf(make(chan int))},
		{description: "complex", rType: reflect.TypeOf(complex64(0))},
	}
	for _, testCase := range testCases {
		_, err := registry.Resolve(testCase.rType)
		var resolveErr *ResolveError
		assert.True(t, errors.As(err, &resolveErr), testCase.description)
	}
	assert.Equal(t, 0, registry.Len())
}

func TestRegistry_ConcurrentResolve(t *testing.T) {
	registry := NewRegistry()
	rType := reflect.TypeOf(map[string][]*int{})
	const workers = 32
	results := make([]Converter, workers)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			converter, err := registry.Resolve(rType)
			assert.NoError(t, err)
			results[i] = converter
		}(i)
	}
	close(start)
	wg.Wait()
	for i := 1; i < workers; i++ {
		assert.Same(t, results[0], results[i])
	}
	assert.Equal(t, 4, registry.Len())
}

func TestDecode_Containers(t *testing.T) {
	registry := NewRegistry()

	nested, err := Decode[[][]int]([]byte(`[[1,2],[3]]`), WithRegistry(registry))
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1, 2}, {3}}, nested)

	fixed, err := Decode[[3]int]([]byte(`[1,2]`), WithRegistry(registry))
	require.NoError(t, err)
	assert.Equal(t, [3]int{1, 2, 0}, fixed)

	_, err = Decode[[1]int]([]byte(`[1,2]`), WithRegistry(registry))
	assert.Error(t, err)

	boxed, err := Decode[[]*int]([]byte(`[1,null]`), WithRegistry(registry))
	require.NoError(t, err)
	require.Len(t, boxed, 2)
	assert.Equal(t, 1, *boxed[0])
	assert.Nil(t, boxed[1])

	_, err = Decode[map[string]int]([]byte(`{"a":1,"a":2}`), WithRegistry(registry))
	var duplicateErr *DuplicateKeyError
	require.True(t, errors.As(err, &duplicateErr))
	assert.Equal(t, "a", duplicateErr.Key)
	assert.Contains(t, err.Error(), `"a"`)

	tree, err := Decode[testTree]([]byte(`{"x":{"y":{}},"z":null}`), WithRegistry(registry))
	require.NoError(t, err)
	assert.Equal(t, testTree{"x": testTree{"y": testTree{}}, "z": nil}, tree)

	nilList, err := Decode[[]int]([]byte(`null`), WithRegistry(registry))
	require.NoError(t, err)
	assert.Nil(t, nilList)

	_, err = Decode[[]int]([]byte(`[1,"x"]`), WithRegistry(registry))
	assert.EqualError(t, err, `invalid [1]: expected a number but was string at offset 3`)

	cube, err := Decode[[][][]int32]([]byte(`[[[1],[2,3]],[]]`), WithRegistry(registry))
	require.NoError(t, err)
	assert.Equal(t, [][][]int32{{{1}, {2, 3}}, {}}, cube)
	encoded, err := Marshal(cube, WithRegistry(registry))
	require.NoError(t, err)
	assert.Equal(t, `[[[1],[2,3]],[]]`, string(encoded))
}

func TestListConverter_Decode(t *testing.T) {
	registry := NewRegistry()
	var input strings.Builder
	input.WriteString("[")
	expect := make([]int64, 100)
	for i := range expect {
		if i > 0 {
			input.WriteString(",")
		}
		expect[i] = int64(i * 3)
		input.WriteString(strconv.Itoa(i * 3))
	}
	input.WriteString("]")
	values, err := Decode[[]int64]([]byte(input.String()), WithRegistry(registry))
	require.NoError(t, err)
	assert.Equal(t, expect, values)

	maps, err := Decode[[]map[string]int]([]byte(`[{"a":1},{},null,{"b":2}]`), WithRegistry(registry))
	require.NoError(t, err)
	assert.Equal(t, []map[string]int{{"a": 1}, {}, nil, {"b": 2}}, maps)

	pointers, err := Decode[[]*string]([]byte(`["a",null,"c"]`), WithRegistry(registry))
	require.NoError(t, err)
	require.Len(t, pointers, 3)
	assert.Equal(t, "a", *pointers[0])
	assert.Nil(t, pointers[1])
	assert.Equal(t, "c", *pointers[2])

	empty, err := Decode[[]testCelsius]([]byte(`[]`), WithRegistry(registry))
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestDecode_NullStrings(t *testing.T) {
	testCases := []struct {
		description string
		decode      func(registry *Registry) (interface{}, error)
		expect      interface{}
	}{
		{
			description: "map value",
			decode: func(registry *Registry) (interface{}, error) {
				return Decode[map[string]string]([]byte(`{"a":null,"b":"x"}`), WithRegistry(registry))
			},
			expect: map[string]string{"a": "", "b": "x"},
		},
		{
			description: "nested list element",
			decode: func(registry *Registry) (interface{}, error) {
				return Decode[[][]string]([]byte(`[["x",null]]`), WithRegistry(registry))
			},
			expect: [][]string{{"x", ""}},
		},
		{
			description: "named string element",
			decode: func(registry *Registry) (interface{}, error) {
				return Decode[[]testLabel]([]byte(`[null,"y"]`), WithRegistry(registry))
			},
			expect: []testLabel{"", "y"},
		},
		{
			description: "top level",
			decode: func(registry *Registry) (interface{}, error) {
				return Decode[string]([]byte(`null`), WithRegistry(registry))
			},
			expect: "",
		},
	}
	for _, testCase := range testCases {
		actual, err := testCase.decode(NewRegistry())
		if !assert.NoError(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
}

func TestRegistry_MutualRecursion(t *testing.T) {
	registry := NewRegistry()
	_, err := ResolveFor[testCycleA](registry)
	require.NoError(t, err)
	assert.Equal(t, 2, registry.Len())

	cycle, err := Decode[testCycleB]([]byte(`[[[]]]`), WithRegistry(registry))
	require.NoError(t, err)
	assert.Equal(t, testCycleB{testCycleA{testCycleB{}}}, cycle)

	shared := NewRegistry()
	const workers = 16
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			if i%2 == 0 {
				_, err := Decode[testCycleA]([]byte(`[[[],[[]]]]`), WithRegistry(shared))
				assert.NoError(t, err)
				return
			}
			_, err := Decode[testCycleB]([]byte(`[[[]]]`), WithRegistry(shared))
			assert.NoError(t, err)
		}(i)
	}
	close(start)
	wg.Wait()
	assert.Equal(t, 2, shared.Len())
}

func TestDecode_Scalars(t *testing.T) {
	testCases := []struct {
		description string
		decode      func() (interface{}, error)
		expect      interface{}
		expectErr   bool
	}{
		{description: "int8 in range", decode: func() (interface{}, error) { return Decode[int8]([]byte(`-12`)) }, expect: int8(-12)},
		{description: "int8 out of range", decode: func() (interface{}, error) { return Decode[int8]([]byte(`300`)) }, expectErr: true},
		{description: "uint8 out of range", decode: func() (interface{}, error) { return Decode[uint8]([]byte(`256`)) }, expectErr: true},
		{description: "int16 out of range", decode: func() (interface{}, error) { return Decode[int16]([]byte(`40000`)) }, expectErr: true},
		{description: "named float", decode: func() (interface{}, error) { return Decode[testCelsius]([]byte(`36.6`)) }, expect: testCelsius(36.6)},
		{description: "required null", decode: func() (interface{}, error) { return Decode[int]([]byte(`null`)) }, expectErr: true},
		{description: "boxed null", decode: func() (interface{}, error) { return Decode[*int]([]byte(`null`)) }, expect: (*int)(nil)},
		{description: "trailing data", decode: func() (interface{}, error) { return Decode[int]([]byte(`1 2`)) }, expectErr: true},
	}
	for _, testCase := range testCases {
		actual, err := testCase.decode()
		if testCase.expectErr {
			assert.Error(t, err, testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
}

func TestEnumConverter(t *testing.T) {
	color, err := Decode[testColor]([]byte(`"B"`))
	require.NoError(t, err)
	assert.Equal(t, testColorB, color)

	_, err = Decode[testColor]([]byte(`"BOGUS"`))
	var enumErr *EnumError
	require.True(t, errors.As(err, &enumErr))
	assert.Equal(t, []string{"A", "B"}, enumErr.Expected)
	assert.Equal(t, `expected one of [A, B] but was "BOGUS"`, err.Error())

	data, err := Marshal([]testColor{testColorA, testColorB})
	require.NoError(t, err)
	assert.Equal(t, `["A","B"]`, string(data))

	_, err = Marshal(testColor("C"))
	assert.Error(t, err)
}

func TestMarshal(t *testing.T) {
	value := 3
	testCases := []struct {
		description string
		value       interface{}
		options     []Option
		expect      string
	}{
		{description: "nil", value: nil, expect: `null`},
		{description: "float32 precision", value: float32(0.1), expect: `0.1`},
		{description: "sorted map", value: map[string]int{"b": 2, "a": 1}, expect: `{"a":1,"b":2}`},
		{description: "nil slice", value: []string(nil), expect: `null`},
		{description: "empty slice", value: []string{}, expect: `[]`},
		{description: "pointer", value: &value, expect: `3`},
		{description: "fixed array", value: [2]bool{true, false}, expect: `[true,false]`},
		{description: "named scalar", value: testCelsius(1.5), expect: `1.5`},
		{description: "dynamic", value: []interface{}{1, "a", nil, map[string]interface{}{"k": true}}, expect: `[1,"a",null,{"k":true}]`},
		{description: "indent", value: []int{1}, options: []Option{WithIndent(" ")}, expect: "[\n 1\n]"},
	}
	for _, testCase := range testCases {
		data, err := Marshal(testCase.value, testCase.options...)
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect, string(data), testCase.description)
	}
}

func TestMarshal_UnsupportedValue(t *testing.T) {
	for _, value := range []interface{}{math.NaN(), []float32{1, float32(math.Inf(-1))}, map[string]interface{}{"x": math.Inf(1)}} {
		_, err := Marshal(value)
		var unsupported *jsonio.UnsupportedValueError
		assert.True(t, errors.As(err, &unsupported), "%v", value)
	}
}

func TestDynamicConverter(t *testing.T) {
	input := `{"b":[1,2.5,"x",true,null],"a":{"c":{}}}`
	value, err := Decode[interface{}]([]byte(input))
	require.NoError(t, err)
	object, ok := value.(*OrderedMap)
	require.True(t, ok)
	assert.Equal(t, []string{"b", "a"}, object.Keys())
	items, _ := object.Get("b")
	assert.Equal(t, []interface{}{1.0, 2.5, "x", true, nil}, items)

	data, err := Marshal(value)
	require.NoError(t, err)
	assert.Equal(t, input, string(data))

	data, err = Marshal([]interface{}{struct{}{}})
	require.NoError(t, err)
	assert.Equal(t, `[{}]`, string(data))
}

func TestUnmarshal_InvalidDestination(t *testing.T) {
	var value int
	assert.Error(t, Unmarshal([]byte(`1`), value))
	assert.Error(t, Unmarshal([]byte(`1`), (*int)(nil)))
	require.NoError(t, Unmarshal([]byte(`7`), &value))
	assert.Equal(t, 7, value)
}
