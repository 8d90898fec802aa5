// Package highlight renders formatted text with chroma, either as terminal
// escape sequences or as a standalone HTML page for the browser.
package highlight

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/google/uuid"
	"github.com/pkg/browser"
)

// Plain is the formatter name that emits text unchanged.
const Plain = "noop"

// Hooks for testing.
//
//nolint:gochecknoglobals // replaced by tests
var (
	openFile = browser.OpenFile
	tempDir  = os.TempDir
)

// Highlighter renders text of a given language.
type Highlighter struct {
	style     *chroma.Style
	formatter chroma.Formatter
}

// New returns a Highlighter using the named chroma style and formatter.
func New(style, formatter string) (*Highlighter, error) {
	s, ok := styles.Registry[strings.ToLower(style)]
	if !ok {
		return nil, fmt.Errorf("unknown style %q", style)
	}

	f, ok := formatters.Registry[strings.ToLower(formatter)]
	if !ok {
		return nil, fmt.Errorf("unknown formatter %q", formatter)
	}

	return &Highlighter{style: s, formatter: f}, nil
}

// NewPlain returns a Highlighter that leaves text uncolored.
func NewPlain() *Highlighter {
	return &Highlighter{style: styles.Fallback, formatter: formatters.NoOp}
}

// NewHTML returns a Highlighter producing a standalone HTML page with line numbers.
func NewHTML(style string) (*Highlighter, error) {
	s, ok := styles.Registry[strings.ToLower(style)]
	if !ok {
		return nil, fmt.Errorf("unknown style %q", style)
	}

	return &Highlighter{
		style:     s,
		formatter: html.New(html.Standalone(true), html.WithLineNumbers(true), html.TabWidth(2)),
	}, nil
}

// Highlight renders text using the lexer for language ("json", "xml", ...).
// Unknown languages are rendered with the plain-text lexer.
func (h *Highlighter) Highlight(text, language string) (string, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}

	it, err := chroma.Coalesce(lexer).Tokenise(nil, text)
	if err != nil {
		return "", fmt.Errorf("failed to tokenise %s: %w", language, err)
	}

	var b strings.Builder
	if err := h.formatter.Format(&b, h.style, it); err != nil {
		return "", fmt.Errorf("failed to highlight %s: %w", language, err)
	}

	return b.String(), nil
}

// Styles returns the available style names.
func Styles() []string {
	return styles.Names()
}

// Formatters returns the available formatter names.
func Formatters() []string {
	return formatters.Names()
}

// WritePage writes an HTML page to a new file in the temporary directory and
// returns its path.
func WritePage(page string) (string, error) {
	path := filepath.Join(tempDir(), "fmtview-"+uuid.NewString()+".html")

	if err := os.WriteFile(path, []byte(page), 0o600); err != nil { //nolint:mnd // owner-only file permissions
		return "", fmt.Errorf("failed to write page: %w", err)
	}

	return path, nil
}

// Open opens path in the default browser.
func Open(path string) error {
	if err := openFile(path); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	return nil
}
