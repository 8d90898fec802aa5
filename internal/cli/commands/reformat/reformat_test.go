package reformat_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpyw/fmtview/internal/cli/commands/reformat"
	"github.com/mpyw/fmtview/internal/format"
	"github.com/mpyw/fmtview/internal/testutil"
)

func TestCommand_Stdin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		stdin   string
		args    []string
		want    string
		wantErr error
		errText string
	}{
		{
			name:  "json",
			stdin: "{\"b\":2,\"a\":1}\n",
			want:  "{\n  \"b\": 2,\n  \"a\": 1\n}\n",
		},
		{
			name:  "xml",
			stdin: `<root><item>value</item></root>`,
			want:  "<root>\n  <item>value</item>\n</root>\n",
		},
		{
			name:  "alias and forced language",
			stdin: `[1]`,
			args:  []string{"--lang", "JSON"},
			want:  "[\n  1\n]\n",
		},
		{
			name:    "invalid json",
			stdin:   `{invalid json}`,
			wantErr: format.ErrInvalidJSON,
			errText: "Invalid JSON: invalid character 'i'",
		},
		{
			name:    "unterminated object forced to json",
			stdin:   `{invalid json`,
			args:    []string{"--lang", "json"},
			wantErr: format.ErrInvalidJSON,
			errText: "Invalid JSON: invalid character 'i'",
		},
		{
			name:    "unterminated object detected as xml",
			stdin:   `{invalid json`,
			wantErr: format.ErrInvalidXML,
			errText: "Invalid XML:",
		},
		{
			name:    "empty input falls back to xml",
			stdin:   "",
			wantErr: format.ErrInvalidXML,
			errText: "Invalid XML:",
		},
		{
			name:    "forced xml on json",
			stdin:   `{"a":1}`,
			args:    []string{"--lang", "xml"},
			wantErr: format.ErrInvalidXML,
		},
		{
			name:    "unknown language",
			stdin:   `{}`,
			args:    []string{"--lang", "yaml"},
			errText: `unknown format "yaml"`,
		},
		{
			name:    "diff with check",
			stdin:   `{}`,
			args:    []string{"--diff", "--check"},
			errText: "--diff and --check cannot be used together",
		},
		{
			name:    "json output with diff",
			stdin:   `{}`,
			args:    []string{"--output=json", "--diff"},
			errText: "--output=json cannot be used with --diff or --check",
		},
		{
			name:    "size limit",
			stdin:   `[1,2,3,4,5]`,
			args:    []string{"--max-bytes", "4"},
			errText: "input too large",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cli := testutil.NewCLI(t)
			args := append([]string{"fmt", "--color=never"}, tt.args...)
			res := cli.Run(t, tt.stdin, args...)

			if tt.wantErr != nil || tt.errText != "" {
				require.Error(t, res.Err)

				if tt.wantErr != nil {
					require.ErrorIs(t, res.Err, tt.wantErr)
				}

				assert.Contains(t, res.Err.Error(), tt.errText)
				assert.Empty(t, res.Stdout)

				return
			}

			require.NoError(t, res.Err)
			assert.Equal(t, tt.want, res.Stdout)
		})
	}
}

func TestCommand_Files(t *testing.T) {
	t.Parallel()

	cli := testutil.NewCLI(t)
	good := cli.WriteFile(t, "good.json", `{"a":[1,2]}`)
	bad := cli.WriteFile(t, "bad.xml", `<a><b></a>`)
	feed := cli.WriteFile(t, "feed.xml", `<feed><entry id="1"/></feed>`)

	t.Run("all valid", func(t *testing.T) {
		t.Parallel()

		res := cli.Run(t, "", "format", "--color=never", good, feed)
		require.NoError(t, res.Err)
		assert.Equal(t,
			"==> "+good+" <==\n{\n  \"a\": [\n    1,\n    2\n  ]\n}\n\n==> "+feed+" <==\n<feed>\n  <entry id=\"1\"/>\n</feed>\n",
			res.Stdout)
	})

	t.Run("one invalid", func(t *testing.T) {
		t.Parallel()

		res := cli.Run(t, "", "format", "--color=never", good, bad)
		require.EqualError(t, res.Err, "1 of 2 inputs could not be formatted")
		assert.Contains(t, res.Stdout, "==> "+good+" <==")
		assert.NotContains(t, res.Stdout, bad)
		assert.Contains(t, res.Stderr, bad+": Invalid XML: ")
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		res := cli.Run(t, "", "format", cli.Dir+"/missing.json")
		require.Error(t, res.Err)
		assert.Contains(t, res.Err.Error(), "failed to read")
	})
}

func TestCommand_Check(t *testing.T) {
	t.Parallel()

	cli := testutil.NewCLI(t)
	formatted := cli.WriteFile(t, "formatted.json", "{\n  \"a\": 1\n}\n")
	compact := cli.WriteFile(t, "compact.json", `{"a":1}`)

	t.Run("lists unformatted files", func(t *testing.T) {
		t.Parallel()

		res := cli.Run(t, "", "format", "-l", formatted, compact)
		require.ErrorIs(t, res.Err, reformat.ErrNotFormatted)
		assert.Equal(t, compact+"\n", res.Stdout)
	})

	t.Run("all formatted", func(t *testing.T) {
		t.Parallel()

		res := cli.Run(t, "", "format", "--check", formatted)
		require.NoError(t, res.Err)
		assert.Empty(t, res.Stdout)
	})
}

func TestCommand_Diff(t *testing.T) {
	t.Parallel()

	cli := testutil.NewCLI(t)
	compact := cli.WriteFile(t, "compact.json", "{\"a\":1}\n")

	res := cli.Run(t, "", "format", "-d", compact)
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, "--- "+compact)
	assert.Contains(t, res.Stdout, "+++ "+compact+" (formatted)")
	assert.Contains(t, res.Stdout, "-{\"a\":1}")
	assert.Contains(t, res.Stdout, "+  \"a\": 1")

	formatted := cli.WriteFile(t, "formatted.json", "[]\n")
	res = cli.Run(t, "", "format", "-d", formatted)
	require.NoError(t, res.Err)
	assert.Empty(t, res.Stdout)
}

func TestCommand_JSONOutput(t *testing.T) {
	t.Parallel()

	t.Run("single input", func(t *testing.T) {
		t.Parallel()

		res := testutil.NewCLI(t).Run(t, `<a><b>1</b></a>`, "format", "--output=json")
		require.NoError(t, res.Err)

		var got map[string]string
		require.NoError(t, json.Unmarshal([]byte(res.Stdout), &got))
		assert.Equal(t, map[string]string{"language": "xml", "text": "<a>\n  <b>1</b>\n</a>"}, got)
	})

	t.Run("several inputs", func(t *testing.T) {
		t.Parallel()

		cli := testutil.NewCLI(t)
		a := cli.WriteFile(t, "a.json", `[true]`)
		b := cli.WriteFile(t, "b.json", `[tru]`)

		res := cli.Run(t, "", "format", "--output=json", a, b)
		require.Error(t, res.Err)

		var got []reformat.JSONOutput
		require.NoError(t, json.Unmarshal([]byte(res.Stdout), &got))
		require.Len(t, got, 2)
		assert.Equal(t, reformat.JSONOutput{Name: a, Language: "json", Text: "[\n  true\n]"}, got[0])
		assert.Equal(t, b, got[1].Name)
		assert.Contains(t, got[1].Error, "Invalid JSON")
	})
}
