// Package jsonio provides a pull style JSON reader and an append based JSON writer.
package jsonio

import (
	"errors"
	"math"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"
)

type readScope struct {
	object    bool
	count     int
	afterName bool
}

// Reader reads JSON tokens from an in-memory document.
// A Reader is not safe for concurrent use.
type Reader struct {
	data    []byte
	pos     int
	ready   bool
	stack   []readScope
	options Options
}

// NewReader creates a reader over data.
func NewReader(data []byte, opts ...Option) *Reader {
	return newReader(data, resolveOptions(opts))
}

func newReader(data []byte, options Options) *Reader {
	return &Reader{data: data, options: options}
}

// Offset returns the current byte offset.
func (r *Reader) Offset() int { return r.pos }

// Depth returns the number of open containers.
func (r *Reader) Depth() int { return len(r.stack) }

func (r *Reader) skipWS() { r.pos = r.options.Hooks.SkipWhitespace(r.data, r.pos) }

func (r *Reader) syntaxError(msg string) error {
	return &SyntaxError{Offset: r.pos, Msg: msg}
}

// prepare consumes separators and positions the reader at the next value.
func (r *Reader) prepare() error {
	if r.ready {
		return nil
	}
	r.skipWS()
	if n := len(r.stack); n > 0 {
		top := &r.stack[n-1]
		if top.object {
			if !top.afterName {
				return r.syntaxError("expected member name")
			}
			top.afterName = false
		} else {
			if top.count > 0 {
				if r.pos >= len(r.data) || r.data[r.pos] != ',' {
					return r.syntaxError("expected ','")
				}
				r.pos++
				r.skipWS()
			}
			top.count++
		}
	}
	if r.pos >= len(r.data) {
		return r.syntaxError("unexpected end of input")
	}
	r.ready = true
	return nil
}

// Peek returns the kind of the next value without consuming it.
func (r *Reader) Peek() (Kind, error) {
	if err := r.prepare(); err != nil {
		return KindInvalid, err
	}
	return kindOf(r.data[r.pos]), nil
}

func (r *Reader) expect(kind Kind, expected string) error {
	if err := r.prepare(); err != nil {
		return err
	}
	if actual := kindOf(r.data[r.pos]); actual != kind {
		return &TypeError{Expected: expected, Actual: actual, Offset: r.pos}
	}
	return nil
}

// BeginObject consumes '{'.
func (r *Reader) BeginObject() error {
	if err := r.expect(KindObject, "an object"); err != nil {
		return err
	}
	r.pos++
	r.ready = false
	r.stack = append(r.stack, readScope{object: true})
	return nil
}

// EndObject consumes '}'.
func (r *Reader) EndObject() error {
	return r.end(true, '}')
}

// BeginArray consumes '['.
func (r *Reader) BeginArray() error {
	if err := r.expect(KindArray, "an array"); err != nil {
		return err
	}
	r.pos++
	r.ready = false
	r.stack = append(r.stack, readScope{})
	return nil
}

// EndArray consumes ']'.
func (r *Reader) EndArray() error {
	return r.end(false, ']')
}

func (r *Reader) end(object bool, closing byte) error {
	n := len(r.stack)
	if n == 0 || r.stack[n-1].object != object || r.stack[n-1].afterName {
		return r.syntaxError("unbalanced " + string(closing))
	}
	r.skipTrailingComma(r.stack[n-1].count, closing)
	if r.pos >= len(r.data) || r.data[r.pos] != closing {
		return r.syntaxError("expected '" + string(closing) + "'")
	}
	r.pos++
	r.stack = r.stack[:n-1]
	return nil
}

func (r *Reader) skipTrailingComma(count int, closing byte) {
	r.skipWS()
	if r.options.MalformedPolicy != Tolerant || count == 0 || r.pos >= len(r.data) || r.data[r.pos] != ',' {
		return
	}
	next := r.options.Hooks.SkipWhitespace(r.data, r.pos+1)
	if next < len(r.data) && r.data[next] == closing {
		r.pos = next
	}
}

// HasNext reports whether the current container has another element or member.
func (r *Reader) HasNext() bool {
	n := len(r.stack)
	if n == 0 || r.stack[n-1].afterName {
		return false
	}
	top := r.stack[n-1]
	closing := byte(']')
	if top.object {
		closing = '}'
	}
	r.skipTrailingComma(top.count, closing)
	return r.pos < len(r.data) && r.data[r.pos] != closing
}

// NextName consumes a member name and the following ':'.
func (r *Reader) NextName() (string, error) {
	n := len(r.stack)
	if n == 0 || !r.stack[n-1].object || r.stack[n-1].afterName {
		return "", r.syntaxError("member name outside of object")
	}
	top := &r.stack[n-1]
	r.skipWS()
	if top.count > 0 {
		if r.pos >= len(r.data) || r.data[r.pos] != ',' {
			return "", r.syntaxError("expected ','")
		}
		r.pos++
		r.skipWS()
	}
	name, err := r.parseString()
	if err != nil {
		return "", err
	}
	r.skipWS()
	if r.pos >= len(r.data) || r.data[r.pos] != ':' {
		return "", r.syntaxError("expected ':'")
	}
	r.pos++
	top.count++
	top.afterName = true
	return name, nil
}

// NextString consumes a string value.
func (r *Reader) NextString() (string, error) {
	if err := r.expect(KindString, "a string"); err != nil {
		return "", err
	}
	r.ready = false
	return r.parseString()
}

// NextBool consumes a boolean value.
func (r *Reader) NextBool() (bool, error) {
	if err := r.expect(KindBool, "a boolean"); err != nil {
		return false, err
	}
	r.ready = false
	if r.match("true") {
		return true, nil
	}
	if r.match("false") {
		return false, nil
	}
	return false, r.syntaxError("invalid literal")
}

// NextNull consumes a null literal.
func (r *Reader) NextNull() error {
	if err := r.expect(KindNull, "null"); err != nil {
		return err
	}
	r.ready = false
	if !r.match("null") {
		return r.syntaxError("invalid literal")
	}
	return nil
}

// NextNumber consumes a number and returns its literal text.
// Quoted numbers are accepted.
func (r *Reader) NextNumber() (string, error) {
	literal, _, err := r.numberLiteral()
	return literal, err
}

func (r *Reader) numberLiteral() (string, int, error) {
	if err := r.prepare(); err != nil {
		return "", r.pos, err
	}
	offset := r.pos
	switch kindOf(r.data[r.pos]) {
	case KindNumber:
		r.ready = false
		if err := r.skipRawNumber(); err != nil {
			return "", offset, err
		}
		literal := string(r.data[offset:r.pos])
		if _, err := strconv.ParseFloat(literal, 64); errors.Is(err, strconv.ErrSyntax) {
			return "", offset, &SyntaxError{Offset: offset, Msg: "invalid number " + literal}
		}
		return literal, offset, nil
	case KindString:
		r.ready = false
		literal, err := r.parseString()
		if err != nil {
			return "", offset, err
		}
		if _, err = strconv.ParseFloat(literal, 64); err != nil {
			return "", offset, &TypeError{Expected: "a number", Actual: KindString, Offset: offset}
		}
		return literal, offset, nil
	default:
		return "", offset, &TypeError{Expected: "a number", Actual: kindOf(r.data[r.pos]), Offset: offset}
	}
}

// NextFloat64 consumes a number as float64.
func (r *Reader) NextFloat64() (float64, error) {
	literal, offset, err := r.numberLiteral()
	if err != nil {
		return 0, err
	}
	value, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return 0, &RangeError{Literal: literal, Type: "a float64", Offset: offset}
	}
	return value, nil
}

// NextFloat32 consumes a number as float64 and narrows it to float32.
func (r *Reader) NextFloat32() (float32, error) {
	value, err := r.NextFloat64()
	return float32(value), err
}

// NextInt64 consumes an integral number.
func (r *Reader) NextInt64() (int64, error) { return r.nextSigned(64, "an int64") }

// NextInt consumes an integral number that fits int.
func (r *Reader) NextInt() (int, error) {
	value, err := r.nextSigned(strconv.IntSize, "an int")
	return int(value), err
}

// NextInt32 consumes an integral number that fits int32.
func (r *Reader) NextInt32() (int32, error) {
	value, err := r.nextSigned(32, "an int32")
	return int32(value), err
}

// NextInt16 consumes an integral number that fits int16.
func (r *Reader) NextInt16() (int16, error) {
	value, err := r.nextSigned(16, "an int16")
	return int16(value), err
}

// NextInt8 consumes an integral number that fits int8.
func (r *Reader) NextInt8() (int8, error) {
	value, err := r.nextSigned(8, "an int8")
	return int8(value), err
}

// NextUint64 consumes a non negative integral number.
func (r *Reader) NextUint64() (uint64, error) { return r.nextUnsigned(64, "a uint64") }

// NextUint consumes a non negative integral number that fits uint.
func (r *Reader) NextUint() (uint, error) {
	value, err := r.nextUnsigned(strconv.IntSize, "a uint")
	return uint(value), err
}

// NextUint32 consumes a non negative integral number that fits uint32.
func (r *Reader) NextUint32() (uint32, error) {
	value, err := r.nextUnsigned(32, "a uint32")
	return uint32(value), err
}

// NextUint16 consumes a non negative integral number that fits uint16.
func (r *Reader) NextUint16() (uint16, error) {
	value, err := r.nextUnsigned(16, "a uint16")
	return uint16(value), err
}

// NextUint8 consumes a non negative integral number that fits uint8.
func (r *Reader) NextUint8() (uint8, error) {
	value, err := r.nextUnsigned(8, "a uint8")
	return uint8(value), err
}

func (r *Reader) nextSigned(bits int, typeName string) (int64, error) {
	literal, offset, err := r.numberLiteral()
	if err != nil {
		return 0, err
	}
	if value, err := strconv.ParseInt(literal, 10, bits); err == nil {
		return value, nil
	}
	// integral values written in exponent or fraction form, e.g. 1e3 or 2.0
	f, err := strconv.ParseFloat(literal, 64)
	if err == nil && f == math.Trunc(f) {
		limit := math.Ldexp(1, bits-1)
		if f >= -limit && f < limit {
			return int64(f), nil
		}
	}
	return 0, &RangeError{Literal: literal, Type: typeName, Offset: offset}
}

func (r *Reader) nextUnsigned(bits int, typeName string) (uint64, error) {
	literal, offset, err := r.numberLiteral()
	if err != nil {
		return 0, err
	}
	if value, err := strconv.ParseUint(literal, 10, bits); err == nil {
		return value, nil
	}
	f, err := strconv.ParseFloat(literal, 64)
	if err == nil && f == math.Trunc(f) && f >= 0 && f < math.Ldexp(1, bits) {
		return uint64(f), nil
	}
	return 0, &RangeError{Literal: literal, Type: typeName, Offset: offset}
}

// SkipValue consumes the next value including nested containers.
func (r *Reader) SkipValue() error {
	_, err := r.RawValue()
	return err
}

// RawValue consumes the next value and returns its bytes.
func (r *Reader) RawValue() ([]byte, error) {
	if err := r.prepare(); err != nil {
		return nil, err
	}
	r.ready = false
	start := r.pos
	if err := r.skipRawValue(); err != nil {
		return nil, err
	}
	return r.data[start:r.pos], nil
}

// End verifies that only whitespace follows the last consumed value.
func (r *Reader) End() error {
	if len(r.stack) > 0 {
		return r.syntaxError("unexpected end of input")
	}
	r.skipWS()
	if r.pos != len(r.data) {
		return r.syntaxError("unexpected trailing data")
	}
	return nil
}

func (r *Reader) match(token string) bool {
	end := r.pos + len(token)
	if end > len(r.data) || string(r.data[r.pos:end]) != token {
		return false
	}
	r.pos = end
	return true
}

func (r *Reader) skipRawValue() error {
	r.skipWS()
	if r.pos >= len(r.data) {
		return r.syntaxError("unexpected end of input")
	}
	switch r.data[r.pos] {
	case '{':
		return r.skipRawObject()
	case '[':
		return r.skipRawArray()
	case '"':
		return r.skipRawString()
	case 't':
		if r.match("true") {
			return nil
		}
	case 'f':
		if r.match("false") {
			return nil
		}
	case 'n':
		if r.match("null") {
			return nil
		}
	default:
		return r.skipRawNumber()
	}
	return r.syntaxError("invalid token")
}

func (r *Reader) skipRawObject() error {
	r.pos++
	r.skipWS()
	if r.pos < len(r.data) && r.data[r.pos] == '}' {
		r.pos++
		return nil
	}
	for {
		r.skipWS()
		if err := r.skipRawString(); err != nil {
			return err
		}
		r.skipWS()
		if r.pos >= len(r.data) || r.data[r.pos] != ':' {
			return r.syntaxError("expected ':'")
		}
		r.pos++
		if err := r.skipRawValue(); err != nil {
			return err
		}
		r.skipTrailingComma(1, '}')
		if r.pos >= len(r.data) {
			return r.syntaxError("unexpected end of input in object")
		}
		if r.data[r.pos] == '}' {
			r.pos++
			return nil
		}
		if r.data[r.pos] != ',' {
			return r.syntaxError("expected ','")
		}
		r.pos++
	}
}

func (r *Reader) skipRawArray() error {
	r.pos++
	r.skipWS()
	if r.pos < len(r.data) && r.data[r.pos] == ']' {
		r.pos++
		return nil
	}
	for {
		if err := r.skipRawValue(); err != nil {
			return err
		}
		r.skipTrailingComma(1, ']')
		if r.pos >= len(r.data) {
			return r.syntaxError("unexpected end of input in array")
		}
		if r.data[r.pos] == ']' {
			r.pos++
			return nil
		}
		if r.data[r.pos] != ',' {
			return r.syntaxError("expected ','")
		}
		r.pos++
	}
}

func (r *Reader) skipRawString() error {
	if r.pos >= len(r.data) || r.data[r.pos] != '"' {
		return r.syntaxError("expected string")
	}
	r.pos++
	escaped := false
	for r.pos < len(r.data) {
		c := r.data[r.pos]
		if c == '"' && !escaped {
			r.pos++
			return nil
		}
		if c == '\\' {
			escaped = !escaped
		} else {
			if c < 0x20 {
				return r.syntaxError("invalid control character in string")
			}
			escaped = false
		}
		r.pos++
	}
	return r.syntaxError("unterminated string")
}

func (r *Reader) skipRawNumber() error {
	start := r.pos
	for r.pos < len(r.data) {
		c := r.data[r.pos]
		if (c >= '0' && c <= '9') || c == '-' || c == '+' || c == '.' || c == 'e' || c == 'E' {
			r.pos++
			continue
		}
		break
	}
	if r.pos == start {
		return r.syntaxError("invalid number")
	}
	return nil
}

func (r *Reader) parseString() (string, error) {
	if r.pos >= len(r.data) || r.data[r.pos] != '"' {
		return "", r.syntaxError("expected string")
	}
	r.pos++
	start := r.pos
	quote, escape := r.options.Hooks.FindQuoteOrEscape(r.data, start)
	if quote >= 0 && escape < 0 {
		for i := start; i < quote; i++ {
			if r.data[i] < 0x20 {
				r.pos = i
				return "", r.syntaxError("invalid control character in string")
			}
		}
		r.pos = quote + 1
		return string(r.data[start:quote]), nil
	}
	escaped := false
	for i := start; i < len(r.data); i++ {
		c := r.data[i]
		if c == '"' && !escaped {
			s, err := unescapeString(r.data[start:i])
			if err != nil {
				r.pos = start
				return "", r.syntaxError(err.Error())
			}
			r.pos = i + 1
			return s, nil
		}
		if c == '\\' {
			escaped = !escaped
		} else {
			if c < 0x20 {
				r.pos = i
				return "", r.syntaxError("invalid control character in string")
			}
			escaped = false
		}
	}
	return "", r.syntaxError("unterminated string")
}

type escapeError string

func (e escapeError) Error() string { return string(e) }

func unescapeString(raw []byte) (string, error) {
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' {
			out = append(out, c)
			continue
		}
		i++
		if i >= len(raw) {
			return "", escapeError("invalid escape sequence")
		}
		switch raw[i] {
		case '"', '\\', '/':
			out = append(out, raw[i])
		case 'b':
			out = append(out, '\b')
		case 'f':
			out = append(out, '\f')
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case 'u':
			if i+4 >= len(raw) {
				return "", escapeError("invalid unicode escape")
			}
			r, ok := parseHex4(raw[i+1 : i+5])
			if !ok {
				return "", escapeError("invalid unicode escape")
			}
			i += 4
			if utf16.IsSurrogate(r) {
				if i+6 >= len(raw) || raw[i+1] != '\\' || raw[i+2] != 'u' {
					return "", escapeError("invalid surrogate pair")
				}
				r2, ok := parseHex4(raw[i+3 : i+7])
				if !ok {
					return "", escapeError("invalid surrogate pair")
				}
				decoded := utf16.DecodeRune(r, r2)
				if decoded == utf8.RuneError {
					return "", escapeError("invalid surrogate pair")
				}
				out = utf8.AppendRune(out, decoded)
				i += 6
				continue
			}
			out = utf8.AppendRune(out, r)
		default:
			return "", escapeError("invalid escape character " + strconv.QuoteRune(rune(raw[i])))
		}
	}
	return string(out), nil
}

func parseHex4(b []byte) (rune, bool) {
	var v rune
	for _, c := range b {
		var d rune
		switch {
		case c >= '0' && c <= '9':
			d = rune(c - '0')
		case c >= 'a' && c <= 'f':
			d = rune(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = rune(c-'A') + 10
		default:
			return 0, false
		}
		v = v<<4 | d
	}
	return v, len(b) == 4
}
