package jsonutil_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpyw/fmtview/internal/jsonutil"
)

func TestMarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "simple object",
			input: `{"key":"value"}`,
			want:  "{\n  \"key\": \"value\"\n}",
		},
		{
			name:  "keys keep document order",
			input: `{"b":2,"a":1}`,
			want:  "{\n  \"b\": 2,\n  \"a\": 1\n}",
		},
		{
			name:  "nested object",
			input: `{"outer":{"inner":"value"}}`,
			want:  "{\n  \"outer\": {\n    \"inner\": \"value\"\n  }\n}",
		},
		{
			name:  "array",
			input: `["a","b","c"]`,
			want:  "[\n  \"a\",\n  \"b\",\n  \"c\"\n]",
		},
		{
			name:  "empty containers",
			input: `{"o":{},"a":[]}`,
			want:  "{\n  \"o\": {},\n  \"a\": []\n}",
		},
		{
			name:  "duplicate key keeps first position and last value",
			input: `{"a":1,"b":2,"a":3}`,
			want:  "{\n  \"a\": 3,\n  \"b\": 2\n}",
		},
		{
			name:  "scalars",
			input: `[true,false,null,"s"]`,
			want:  "[\n  true,\n  false,\n  null,\n  \"s\"\n]",
		},
		{
			name:  "top-level scalar",
			input: ` 123 `,
			want:  "123",
		},
		{
			name:  "top-level string",
			input: `"hello"`,
			want:  `"hello"`,
		},
		{
			name:  "numbers normalized",
			input: `[1.0,1e2,-0,0.5,1e21,1e-7,123456789012345678901234]`,
			want:  "[\n  1,\n  100,\n  0,\n  0.5,\n  1e+21,\n  1e-7,\n  1.2345678901234569e+23\n]",
		},
		{
			name:  "number overflow becomes null",
			input: `[1e400]`,
			want:  "[\n  null\n]",
		},
		{
			name:  "string escapes",
			input: `"a\"b\\c\n\t\u0001é/<>&"`,
			want:  "\"a\\\"b\\\\c\\n\\t\\u0001é/<>&\"",
		},
		{
			name:  "already formatted",
			input: "{\n  \"key\": \"value\"\n}",
			want:  "{\n  \"key\": \"value\"\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v, err := jsonutil.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, jsonutil.Marshal(v))
		})
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{name: "empty", input: "", contains: "unexpected end of JSON input"},
		{name: "whitespace only", input: " \n\t", contains: "unexpected end of JSON input"},
		{name: "unquoted key", input: `{invalid json`, contains: "invalid character 'i'"},
		{name: "truncated", input: `{"a":1`, contains: "unexpected end of JSON input"},
		{name: "trailing comma in array", input: `[1,2,]`, contains: "invalid character ']'"},
		{name: "trailing comma in object", input: `{"a":1,}`, contains: "invalid character '}'"},
		{name: "comment", input: `{"a":1 // note
}`, contains: "invalid character '/'"},
		{name: "trailing garbage", input: `{"a":1} x`, contains: "after top-level value"},
		{name: "second value", input: `{} {}`, contains: "after top-level value"},
		{name: "missing colon", input: `{"a" 1}`, contains: "invalid character '1'"},
		{name: "plain text", input: `hello`, contains: "invalid character 'h'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := jsonutil.Parse(tt.input)
			require.Error(t, err)

			var se *jsonutil.SyntaxError
			require.ErrorAs(t, err, &se)
			assert.Contains(t, err.Error(), tt.contains)
			assert.Contains(t, err.Error(), "offset")
		})
	}
}

func TestParse_TrailingGarbageOffset(t *testing.T) {
	t.Parallel()

	_, err := jsonutil.Parse(`[1]  x`)

	var se *jsonutil.SyntaxError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, int64(5), se.Offset)
}

func TestMarshal_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		`{"b":2,"a":1}`,
		`[1,[2,[3,[4,[5,{"deep":true}]]]]]`,
		`{"s":"line\nbreak","n":-1.5e-10,"e":{},"l":[]}`,
		`"just a string"`,
	}

	for _, input := range inputs {
		v, err := jsonutil.Parse(input)
		require.NoError(t, err)

		once := jsonutil.Marshal(v)

		v2, err := jsonutil.Parse(once)
		require.NoError(t, err)
		assert.Equal(t, once, jsonutil.Marshal(v2))
		assert.Equal(t, v, v2)
	}
}

func TestMarshal_DeepNesting(t *testing.T) {
	t.Parallel()

	input := `{"l1":{"l2":{"l3":{"l4":{"l5":{"l6":"leaf"}}}}}}`
	v, err := jsonutil.Parse(input)
	require.NoError(t, err)

	out := jsonutil.Marshal(v)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 13)

	for depth := 1; depth <= 6; depth++ {
		line := lines[depth]
		indent := len(line) - len(strings.TrimLeft(line, " "))
		assert.Equal(t, depth*2, indent, "line %q", line)
	}
}

func TestObject(t *testing.T) {
	t.Parallel()

	obj := jsonutil.NewObject()
	obj.Set("z", 1.0)
	obj.Set("a", 2.0)
	obj.Set("z", 3.0)

	assert.Equal(t, []string{"z", "a"}, obj.Keys())
	assert.Equal(t, 2, obj.Len())

	v, ok := obj.Get("z")
	assert.True(t, ok)
	assert.InDelta(t, 3.0, v, 0)

	_, ok = obj.Get("missing")
	assert.False(t, ok)
}

func TestMarshal_UnsupportedType(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		jsonutil.Marshal(42)
	})
}
