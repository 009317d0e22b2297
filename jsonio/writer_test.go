package jsonio

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter(t *testing.T) {
	testCases := []struct {
		description string
		options     []Option
		write       func(w *Writer)
		expect      string
		expectErr   string
	}{
		{
			description: "object",
			write: func(w *Writer) {
				w.BeginObject()
				w.Name("a")
				w.Int(1)
				w.Name("b")
				w.BeginArray()
				w.Bool(true)
				w.Null()
				w.String("x")
				w.EndArray()
				w.Name("c")
				w.BeginObject()
				w.EndObject()
				w.EndObject()
			},
			expect: `{"a":1,"b":[true,null,"x"],"c":{}}`,
		},
		{
			description: "escaping",
			write:       func(w *Writer) { w.String("a\"b\\c\n\t") },
			expect:      `"a\"b\\c\n\t"`,
		},
		{
			description: "float precision",
			write: func(w *Writer) {
				w.BeginArray()
				w.Float32(0.1)
				w.Float64(0.1)
				w.Uint(math.MaxUint64)
				w.EndArray()
			},
			expect: `[0.1,0.1,18446744073709551615]`,
		},
		{
			description: "non finite float",
			write: func(w *Writer) {
				w.BeginArray()
				w.Float64(math.NaN())
				w.Float32(float32(math.Inf(1)))
				w.EndArray()
			},
			expect:    `[null,null]`,
			expectErr: "unsupported value NaN at offset 1",
		},
		{
			description: "invalid utf8",
			write:       func(w *Writer) { w.String("a\xffb") },
			expect:      `"a\ufffdb"`,
		},
		{
			description: "raw",
			write: func(w *Writer) {
				w.BeginArray()
				w.Raw([]byte(`{"x":1}`))
				w.Raw([]byte(`{bad`))
				w.EndArray()
			},
			expect:    `[{"x":1},null]`,
			expectErr: "unsupported value invalid raw JSON at offset 9",
		},
		{
			description: "indent",
			options:     []Option{WithIndent("  ")},
			write: func(w *Writer) {
				w.BeginObject()
				w.Name("a")
				w.BeginArray()
				w.Int(1)
				w.Int(2)
				w.EndArray()
				w.Name("b")
				w.BeginArray()
				w.EndArray()
				w.EndObject()
			},
			expect: "{\n  \"a\": [\n    1,\n    2\n  ],\n  \"b\": []\n}",
		},
	}
	for _, testCase := range testCases {
		writer := NewWriter(testCase.options...)
		testCase.write(writer)
		assert.Equal(t, testCase.expect, string(writer.Bytes()), testCase.description)
		if testCase.expectErr == "" {
			assert.NoError(t, writer.Err(), testCase.description)
			continue
		}
		assert.EqualError(t, writer.Err(), testCase.expectErr, testCase.description)
		_, err := writer.WriteTo(new(bytes.Buffer))
		assert.Error(t, err, testCase.description)
	}
}

func TestWriter_RoundTrip(t *testing.T) {
	writer := NewWriter()
	writer.BeginObject()
	writer.Name("text")
	writer.String("line\nbreak \"quoted\" \u0001")
	writer.EndObject()

	var out bytes.Buffer
	_, err := writer.WriteTo(&out)
	require.NoError(t, err)

	object, err := ParseObject(out.Bytes())
	require.NoError(t, err)
	reader, ok := object.Reader("text")
	require.True(t, ok)
	text, err := reader.NextString()
	require.NoError(t, err)
	assert.Equal(t, "line\nbreak \"quoted\" \u0001", text)

	writer.Reset()
	writer.Int(3)
	assert.Equal(t, "3", string(writer.Bytes()))
}
