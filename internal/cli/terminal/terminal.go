// Package terminal detects terminal capabilities of output writers and decides
// whether colored output should be produced.
package terminal

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// Fder is an interface for types that have a file descriptor.
type Fder interface {
	Fd() uintptr
}

// GetSize returns the terminal width and height for the given file descriptor.
// This is a variable to allow mocking in tests.
//
//nolint:gochecknoglobals // Required for test mocking
var GetSize = term.GetSize

// IsTTY checks if the file descriptor is a TTY.
// This is a variable to allow mocking in tests.
//
//nolint:gochecknoglobals // Required for test mocking
var IsTTY = isatty.IsTerminal

// IsTerminalWriter returns true if the given writer is a terminal.
func IsTerminalWriter(w io.Writer) bool {
	f, ok := w.(Fder)
	if !ok {
		return false
	}

	return IsTTY(f.Fd())
}

// Height returns the number of rows of the terminal behind w.
// ok is false if w is not a terminal or its size cannot be determined.
func Height(w io.Writer) (height int, ok bool) {
	f, isFder := w.(Fder)
	if !isFder || !IsTTY(f.Fd()) {
		return 0, false
	}

	_, height, err := GetSize(int(f.Fd()))
	if err != nil || height <= 0 {
		return 0, false
	}

	return height, true
}

// ColorMode controls when highlighted output is produced.
type ColorMode string

const (
	// ColorAuto colors output only for terminals, unless NO_COLOR is set.
	ColorAuto ColorMode = "auto"
	// ColorAlways always colors output.
	ColorAlways ColorMode = "always"
	// ColorNever never colors output.
	ColorNever ColorMode = "never"
)

// ParseColorMode parses a --color flag value. An empty string means auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch ColorMode(s) {
	case "", ColorAuto:
		return ColorAuto, nil
	case ColorAlways:
		return ColorAlways, nil
	case ColorNever:
		return ColorNever, nil
	default:
		return "", fmt.Errorf("invalid color mode %q: must be auto, always or never", s)
	}
}

// Enabled reports whether output written to w should be colored.
func (m ColorMode) Enabled(w io.Writer) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}

		return IsTerminalWriter(w)
	}
}
