// Package pager pages long output through moor when it is shown on a terminal.
package pager

import (
	"bytes"
	"io"
	"strings"

	"github.com/walles/moor/v2/pkg/moor"

	"github.com/mpyw/fmtview/internal/cli/terminal"
)

// page is replaced in tests.
//
//nolint:gochecknoglobals // Required for test mocking
var page = func(text string) error {
	return moor.PageFromString(text, moor.Options{})
}

// WithPagerWriter executes fn with pager support.
// If noPager is true or stdout is not a TTY, output goes directly to stdout.
// Output that fits within the terminal height is written directly as well.
func WithPagerWriter(stdout io.Writer, noPager bool, fn func(w io.Writer) error) error {
	if noPager {
		return fn(stdout)
	}

	height, ok := terminal.Height(stdout)
	if !ok {
		return fn(stdout)
	}

	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		return err
	}

	if buf.Len() == 0 {
		return nil
	}

	if fits(buf.String(), height) {
		_, err := stdout.Write(buf.Bytes())

		return err
	}

	return page(buf.String())
}

// fits reports whether content fits in height rows, leaving one for the prompt.
func fits(content string, height int) bool {
	lines := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		lines++
	}

	return lines < height
}
