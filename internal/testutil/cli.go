package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mpyw/fmtview/internal/cli/commands"
)

// CLI runs the fmtview application against files in a temporary directory.
type CLI struct {
	Dir         string
	ConfigPath  string
	HandoffPath string
}

// Result is the outcome of one CLI run.
type Result struct {
	Stdout string
	Stderr string
	Err    error
}

// NewCLI returns a CLI with an empty config file and a fresh hand-off path.
func NewCLI(t *testing.T) *CLI {
	t.Helper()

	dir := t.TempDir()
	c := &CLI{
		Dir:         dir,
		ConfigPath:  filepath.Join(dir, "config.ini"),
		HandoffPath: filepath.Join(dir, "handoff.json"),
	}

	require.NoError(t, os.WriteFile(c.ConfigPath, nil, 0o600))

	return c
}

// WriteConfig replaces the config file.
func (c *CLI) WriteConfig(t *testing.T, ini string) {
	t.Helper()

	require.NoError(t, os.WriteFile(c.ConfigPath, []byte(ini), 0o600))
}

// WriteFile writes a file under Dir and returns its path.
func (c *CLI) WriteFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(c.Dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

// Run executes "fmtview --config <ConfigPath> --handoff <HandoffPath> args..."
// with stdin as standard input.
func (c *CLI) Run(t *testing.T, stdin string, args ...string) Result {
	t.Helper()

	var stdout, stderr bytes.Buffer

	app := commands.MakeApp()
	app.Reader = strings.NewReader(stdin)
	app.Writer = &stdout
	app.ErrWriter = &stderr

	argv := append([]string{"fmtview", "--config", c.ConfigPath, "--handoff", c.HandoffPath}, args...)
	err := app.Run(t.Context(), argv)

	return Result{Stdout: stdout.String(), Stderr: stderr.String(), Err: err}
}
