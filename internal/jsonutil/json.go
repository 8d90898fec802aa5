// Package jsonutil parses JSON into an order-preserving value tree and
// serializes it back in the canonical two-space style.
//
// Values are represented as:
//   - nil for null
//   - bool
//   - float64 for numbers
//   - string
//   - []any for arrays
//   - *Object for objects, which keep the order in which keys first appeared
//
// Serialization follows JSON.stringify(value, null, 2): keys are never sorted,
// numbers use the shortest round-tripping form and strings escape only what JSON
// requires.
package jsonutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Indent is the indentation unit used by Marshal.
const Indent = "  "

// SyntaxError describes malformed JSON input.
type SyntaxError struct {
	Msg    string
	Offset int64 // byte offset in the input where the problem was detected
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s (offset %d)", e.Msg, e.Offset)
}

// Codec parses and serializes JSON documents.
type Codec struct{}

// Parse parses text into a value tree.
func (Codec) Parse(text string) (any, error) {
	return Parse(text)
}

// Serialize renders a value tree canonically.
func (Codec) Serialize(v any) string {
	return Marshal(v)
}

// Parse parses a single JSON value. Surrounding JSON whitespace is allowed;
// anything else after the value is an error.
func Parse(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	v, err := parseValue(dec, len(text))
	if err != nil {
		return nil, err
	}

	offset := dec.InputOffset()
	if rest := strings.TrimLeft(text[offset:], " \t\r\n"); rest != "" {
		r, _ := utf8.DecodeRuneInString(rest)

		return nil, &SyntaxError{
			Msg:    fmt.Sprintf("invalid character %q after top-level value", r),
			Offset: int64(len(text) - len(rest)),
		}
	}

	return v, nil
}

func parseValue(dec *json.Decoder, size int) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, syntaxError(err, size)
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec, size)
		case '[':
			return parseArray(dec, size)
		default:
			return nil, &SyntaxError{Msg: fmt.Sprintf("unexpected %q", rune(t)), Offset: dec.InputOffset()}
		}
	case json.Number:
		return parseNumber(t), nil
	default:
		// string, bool or nil
		return t, nil
	}
}

func parseObject(dec *json.Decoder, size int) (*Object, error) {
	obj := NewObject()

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, syntaxError(err, size)
		}

		key, ok := tok.(string)
		if !ok {
			return nil, &SyntaxError{Msg: "object key must be a string", Offset: dec.InputOffset()}
		}

		v, err := parseValue(dec, size)
		if err != nil {
			return nil, err
		}

		obj.Set(key, v)
	}

	if err := expectDelim(dec, '}', size); err != nil {
		return nil, err
	}

	return obj, nil
}

func parseArray(dec *json.Decoder, size int) ([]any, error) {
	arr := []any{}

	for dec.More() {
		v, err := parseValue(dec, size)
		if err != nil {
			return nil, err
		}

		arr = append(arr, v)
	}

	if err := expectDelim(dec, ']', size); err != nil {
		return nil, err
	}

	return arr, nil
}

func expectDelim(dec *json.Decoder, want json.Delim, size int) error {
	tok, err := dec.Token()
	if err != nil {
		return syntaxError(err, size)
	}

	if d, ok := tok.(json.Delim); !ok || d != want {
		return &SyntaxError{Msg: fmt.Sprintf("expected %q", rune(want)), Offset: dec.InputOffset()}
	}

	return nil
}

// parseNumber converts a number literal to float64. Literals beyond the float64
// range become null, the same value JSON.stringify emits for Infinity.
func parseNumber(n json.Number) any {
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil && math.IsInf(f, 0) {
		return nil
	}

	return f
}

func syntaxError(err error, size int) error {
	var se *json.SyntaxError
	switch {
	case errors.As(err, &se):
		return &SyntaxError{Msg: se.Error(), Offset: se.Offset}
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return &SyntaxError{Msg: "unexpected end of JSON input", Offset: int64(size)}
	default:
		return err
	}
}
