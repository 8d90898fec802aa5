package jsonutil

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Marshal renders v with two-space indentation.
// It panics if v contains a type that Parse never produces.
func Marshal(v any) string {
	var b strings.Builder
	writeValue(&b, v, 0)

	return b.String()
}

func writeValue(b *strings.Builder, v any, depth int) {
	switch t := v.(type) {
	case nil:
		b.WriteString("null")
	case bool:
		b.WriteString(strconv.FormatBool(t))
	case float64:
		b.Write(appendNumber(nil, t))
	case string:
		writeString(b, t)
	case []any:
		writeArray(b, t, depth)
	case *Object:
		writeObject(b, t, depth)
	default:
		panic(fmt.Sprintf("jsonutil: unsupported value type %T", v))
	}
}

func writeArray(b *strings.Builder, arr []any, depth int) {
	if len(arr) == 0 {
		b.WriteString("[]")

		return
	}

	b.WriteByte('[')

	for i, v := range arr {
		if i > 0 {
			b.WriteByte(',')
		}

		newline(b, depth+1)
		writeValue(b, v, depth+1)
	}

	newline(b, depth)
	b.WriteByte(']')
}

func writeObject(b *strings.Builder, obj *Object, depth int) {
	if obj.Len() == 0 {
		b.WriteString("{}")

		return
	}

	b.WriteByte('{')

	for i, key := range obj.keys {
		if i > 0 {
			b.WriteByte(',')
		}

		newline(b, depth+1)
		writeString(b, key)
		b.WriteString(": ")
		writeValue(b, obj.values[key], depth+1)
	}

	newline(b, depth)
	b.WriteByte('}')
}

func newline(b *strings.Builder, depth int) {
	b.WriteByte('\n')

	for range depth {
		b.WriteString(Indent)
	}
}

// appendNumber formats f the way ECMAScript's Number::toString does.
func appendNumber(dst []byte, f float64) []byte {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return append(dst, "null"...)
	}

	if f == 0 {
		// also turns -0 into 0
		return append(dst, '0')
	}

	format := byte('f')
	if abs := math.Abs(f); abs < 1e-6 || abs >= 1e21 {
		format = 'e'
	}

	dst = strconv.AppendFloat(dst, f, format, -1, 64)

	if format == 'e' {
		// e-07 -> e-7
		n := len(dst)
		if n >= 4 && dst[n-4] == 'e' && dst[n-3] == '-' && dst[n-2] == '0' {
			dst[n-2] = dst[n-1]
			dst = dst[:n-1]
		}
	}

	return dst
}

const hexDigits = "0123456789abcdef"

func writeString(b *strings.Builder, s string) {
	b.WriteByte('"')

	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				b.WriteString(`\u00`)
				b.WriteByte(hexDigits[r>>4])
				b.WriteByte(hexDigits[r&0xf])

				continue
			}

			b.WriteRune(r)
		}
	}

	b.WriteByte('"')
}
