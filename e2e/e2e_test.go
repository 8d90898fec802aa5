//go:build e2e

// Package e2e contains end-to-end tests for the fmtview CLI.
//
// These tests run the full application against a temporary HOME, so the
// default config and hand-off locations are exercised as a user would hit them.
//
// Run with: go test -tags e2e ./e2e/...
package e2e

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpyw/fmtview/internal/cli/commands"
	"github.com/mpyw/fmtview/internal/format"
	"github.com/mpyw/fmtview/internal/handoff"
)

// setupTempHome points HOME at a fresh directory and clears FMTVIEW_* settings.
func setupTempHome(t *testing.T) string {
	t.Helper()

	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)

	for _, key := range []string{
		"FMTVIEW_CONFIG", "FMTVIEW_DEBUG", "FMTVIEW_STYLE", "FMTVIEW_FORMATTER",
		"FMTVIEW_MAX_BYTES", "FMTVIEW_HANDOFF", "FMTVIEW_PASSPHRASE", "FMTVIEW_NO_PAGER",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	return tmpHome
}

// runCommand executes the application and returns stdout, stderr, and error.
func runCommand(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer

	app := commands.MakeApp()
	app.Reader = strings.NewReader(stdin)
	app.Writer = &outBuf
	app.ErrWriter = &errBuf

	err = app.Run(t.Context(), append([]string{"fmtview"}, args...))

	return outBuf.String(), errBuf.String(), err
}

// TestSelection_FullWorkflow: capture → status → view → view again → status
func TestSelection_FullWorkflow(t *testing.T) {
	home := setupTempHome(t)
	slotPath := filepath.Join(home, ".fmtview", "handoff.json")

	_, stderr, err := runCommand(t, `{"b":2,"a":{"c":[1,2]}}`, "capture")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Captured")
	assert.FileExists(t, slotPath)

	info, err := os.Stat(slotPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	stdout, _, err := runCommand(t, "", "handoff", "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Language: JSON")

	stdout, _, err = runCommand(t, "", "view", "--color=never")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"b\": 2,\n  \"a\": {\n    \"c\": [\n      1,\n      2\n    ]\n  }\n}\n", stdout)
	assert.NoFileExists(t, slotPath)

	_, _, err = runCommand(t, "", "view")
	require.ErrorIs(t, err, handoff.ErrNoContent)

	stdout, _, err = runCommand(t, "", "handoff", "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Selection: none")
}

// TestSelection_Encrypted: capture with a passphrase → locked status → view with passphrase
func TestSelection_Encrypted(t *testing.T) {
	home := setupTempHome(t)
	slotPath := filepath.Join(home, ".fmtview", "handoff.json")

	_, _, err := runCommand(t, `<note><to>Tove</to></note>`, "--passphrase", "s3cret", "capture")
	require.NoError(t, err)

	data, err := os.ReadFile(slotPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Tove")

	stdout, _, err := runCommand(t, "", "handoff", "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Encrypted: yes")
	assert.Contains(t, stdout, "Selection: locked")

	t.Setenv("FMTVIEW_PASSPHRASE", "s3cret")

	stdout, _, err = runCommand(t, "", "view", "--color=never")
	require.NoError(t, err)
	assert.Equal(t, "<note>\n  <to>Tove</to>\n</note>\n", stdout)
}

// TestConfig_DefaultLocation: ~/.fmtview/config.ini is picked up without --config
func TestConfig_DefaultLocation(t *testing.T) {
	home := setupTempHome(t)

	require.NoError(t, os.MkdirAll(filepath.Join(home, ".fmtview"), 0o700))
	require.NoError(t, os.WriteFile(
		filepath.Join(home, ".fmtview", "config.ini"),
		[]byte("[input]\nmax-bytes = 8\n"),
		0o600,
	))

	_, _, err := runCommand(t, `["too","long"]`, "format")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input too large")

	stdout, _, err := runCommand(t, `[1]`, "format", "--color=never")
	require.NoError(t, err)
	assert.Equal(t, "[\n  1\n]\n", stdout)
}

// TestFormat_Scenarios runs the documented formatting scenarios end to end.
func TestFormat_Scenarios(t *testing.T) {
	setupTempHome(t)

	_, _, err := runCommand(t, `{invalid json`, "format", "--lang", "json")
	require.ErrorIs(t, err, format.ErrInvalidJSON)

	_, _, err = runCommand(t, `{invalid json}`, "format")
	require.ErrorIs(t, err, format.ErrInvalidJSON)

	_, _, err = runCommand(t, ``, "format")
	require.ErrorIs(t, err, format.ErrInvalidXML)

	stdout, _, err := runCommand(t, `<?xml version="1.0"?><a><b/></a>`, "format", "--color=never")
	require.NoError(t, err)
	assert.Equal(t, "<?xml version=\"1.0\"?>\n<a>\n  <b/>\n</a>\n", stdout)

	stdout, _, err = runCommand(t, `<?xml version="1.0"?><a/>`, "detect")
	require.NoError(t, err)
	assert.Equal(t, "xml\n", stdout)
}
