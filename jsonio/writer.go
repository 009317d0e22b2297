package jsonio

import (
	"io"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/goccy/go-json"
)

type writeScope struct {
	object bool
	count  int
}

// Writer appends JSON tokens to an in-memory buffer.
// The first value that cannot be represented is kept as the writer error, a null is written in its place.
// A Writer is not safe for concurrent use.
type Writer struct {
	buf       []byte
	stack     []writeScope
	afterName bool
	indent    string
	err       error
}

// NewWriter creates a writer.
func NewWriter(opts ...Option) *Writer {
	options := resolveOptions(opts)
	return &Writer{buf: make([]byte, 0, 256), indent: options.Indent}
}

// Bytes returns the written document.
func (w *Writer) Bytes() []byte { return w.buf }

// Err returns the first unsupported value error.
func (w *Writer) Err() error { return w.err }

func (w *Writer) fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

// Len returns the number of written bytes.
func (w *Writer) Len() int { return len(w.buf) }

// Reset clears the writer for reuse.
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
	w.stack = w.stack[:0]
	w.afterName = false
	w.err = nil
}

// WriteTo writes the document to dst.
func (w *Writer) WriteTo(dst io.Writer) (int64, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := dst.Write(w.buf)
	return int64(n), err
}

func (w *Writer) newline() {
	if w.indent == "" {
		return
	}
	w.buf = append(w.buf, '\n')
	for i := 0; i < len(w.stack); i++ {
		w.buf = append(w.buf, w.indent...)
	}
}

func (w *Writer) beforeValue() {
	if w.afterName {
		w.afterName = false
		return
	}
	n := len(w.stack)
	if n == 0 {
		return
	}
	top := &w.stack[n-1]
	if top.count > 0 {
		w.buf = append(w.buf, ',')
	}
	top.count++
	w.newline()
}

// BeginObject writes '{'.
func (w *Writer) BeginObject() {
	w.beforeValue()
	w.buf = append(w.buf, '{')
	w.stack = append(w.stack, writeScope{object: true})
}

// EndObject writes '}'.
func (w *Writer) EndObject() { w.end('}') }

// BeginArray writes '['.
func (w *Writer) BeginArray() {
	w.beforeValue()
	w.buf = append(w.buf, '[')
	w.stack = append(w.stack, writeScope{})
}

// EndArray writes ']'.
func (w *Writer) EndArray() { w.end(']') }

func (w *Writer) end(closing byte) {
	n := len(w.stack)
	if n == 0 {
		return
	}
	count := w.stack[n-1].count
	w.stack = w.stack[:n-1]
	if count > 0 {
		w.newline()
	}
	w.buf = append(w.buf, closing)
}

// Name writes a member name followed by ':'.
func (w *Writer) Name(name string) {
	n := len(w.stack)
	if n > 0 {
		top := &w.stack[n-1]
		if top.count > 0 {
			w.buf = append(w.buf, ',')
		}
		top.count++
		w.newline()
	}
	w.buf = appendQuoted(w.buf, name)
	w.buf = append(w.buf, ':')
	if w.indent != "" {
		w.buf = append(w.buf, ' ')
	}
	w.afterName = true
}

// String writes a string value.
func (w *Writer) String(value string) {
	w.beforeValue()
	w.buf = appendQuoted(w.buf, value)
}

// Bool writes a boolean value.
func (w *Writer) Bool(value bool) {
	w.beforeValue()
	w.buf = strconv.AppendBool(w.buf, value)
}

// Int writes a signed integer.
func (w *Writer) Int(value int64) {
	w.beforeValue()
	w.buf = strconv.AppendInt(w.buf, value, 10)
}

// Uint writes an unsigned integer.
func (w *Writer) Uint(value uint64) {
	w.beforeValue()
	w.buf = strconv.AppendUint(w.buf, value, 10)
}

// Float32 writes value with 32-bit precision, non finite values are unsupported.
func (w *Writer) Float32(value float32) { w.float(float64(value), 32) }

// Float64 writes value with 64-bit precision, non finite values are unsupported.
func (w *Writer) Float64(value float64) { w.float(value, 64) }

func (w *Writer) float(value float64, bits int) {
	w.beforeValue()
	if math.IsNaN(value) || math.IsInf(value, 0) {
		w.fail(&UnsupportedValueError{Value: strconv.FormatFloat(value, 'g', -1, bits), Offset: len(w.buf)})
		w.buf = append(w.buf, "null"...)
		return
	}
	w.buf = strconv.AppendFloat(w.buf, value, 'g', -1, bits)
}

// Null writes a null literal.
func (w *Writer) Null() {
	w.beforeValue()
	w.buf = append(w.buf, "null"...)
}

// Raw writes an already encoded value, invalid JSON is unsupported.
func (w *Writer) Raw(value []byte) {
	w.beforeValue()
	if !json.Valid(value) {
		w.fail(&UnsupportedValueError{Value: "invalid raw JSON", Offset: len(w.buf)})
		w.buf = append(w.buf, "null"...)
		return
	}
	w.buf = append(w.buf, value...)
}

func appendQuoted(dst []byte, s string) []byte {
	start := len(dst)
	dst = append(dst, '"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 0x20 || c == '"' || c == '\\' {
			encoded, err := json.Marshal(s)
			if err != nil {
				return append(dst[:start], strconv.Quote(s)...)
			}
			return append(dst[:start], encoded...)
		}
	}
	if !utf8.ValidString(s) {
		// invalid bytes are replaced with U+FFFD
		if encoded, err := json.Marshal(s); err == nil {
			return append(dst[:start], encoded...)
		}
	}
	dst = append(dst, s...)
	return append(dst, '"')
}
