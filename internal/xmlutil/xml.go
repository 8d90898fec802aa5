// Package xmlutil parses XML into a node tree and serializes it back in the
// canonical indented style.
//
// Parsing is done by xmlquery, which drives encoding/xml in strict mode, so
// unclosed tags, mismatched end tags and undefined entities are rejected. On top
// of that, a document must have exactly one root element and no character data
// outside of it.
package xmlutil

import (
	"errors"
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
)

// syntheticDeclaration is prepended to documents that lack a declaration so that
// xmlquery attaches every top-level node to the document node in source order.
const syntheticDeclaration = `<?xml version="1.0"?>`

var (
	// ErrNoRoot is returned when the input contains no element at all.
	ErrNoRoot = errors.New("no root element")
	// ErrMultipleRoots is returned when more than one top-level element is present.
	ErrMultipleRoots = errors.New("multiple root elements")
	// ErrTextOutsideRoot is returned for non-whitespace text at the top level.
	ErrTextOutsideRoot = errors.New("text content outside of the root element")
)

// Document is a parsed XML document.
type Document struct {
	root     *xmlquery.Node
	declared bool
}

// Root returns the document element.
func (d *Document) Root() *xmlquery.Node {
	for n := d.root.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			return n
		}
	}

	return nil
}

// Declared reports whether the source carried an XML declaration.
func (d *Document) Declared() bool {
	return d.declared
}

// Codec parses and serializes XML documents.
type Codec struct{}

// Parse parses text into a document tree.
func (Codec) Parse(text string) (*Document, error) {
	return Parse(text)
}

// Serialize renders a document canonically.
func (Codec) Serialize(doc *Document) string {
	return Marshal(doc)
}

// Parse parses a well-formed XML document.
func Parse(text string) (*Document, error) {
	declared := hasDeclaration(text)

	// Whitespace ahead of a declaration would be attached outside the document node.
	src := strings.TrimLeft(text, " \t\r\n")
	if !declared {
		src = syntheticDeclaration + src
	}

	root, err := xmlquery.Parse(strings.NewReader(src))
	if err != nil {
		return nil, err
	}

	doc := &Document{root: root, declared: declared}
	if err := doc.validateTopLevel(); err != nil {
		return nil, err
	}

	return doc, nil
}

func (d *Document) validateTopLevel() error {
	elements := 0

	for n := d.root.FirstChild; n != nil; n = n.NextSibling {
		switch n.Type {
		case xmlquery.ElementNode:
			elements++
			if elements > 1 {
				return fmt.Errorf("%w: <%s> follows the document element", ErrMultipleRoots, qualifiedName(n))
			}
		case xmlquery.TextNode, xmlquery.CharDataNode:
			if strings.TrimSpace(n.Data) != "" {
				return fmt.Errorf("%w: %q", ErrTextOutsideRoot, abbreviate(strings.TrimSpace(n.Data)))
			}
		}
	}

	if elements == 0 {
		return ErrNoRoot
	}

	return nil
}

// hasDeclaration reports whether text starts with an XML declaration.
// <?xml-stylesheet ...?> and similar processing instructions do not count.
func hasDeclaration(text string) bool {
	rest, ok := strings.CutPrefix(strings.TrimLeft(text, " \t\r\n"), "<?xml")
	if !ok {
		return false
	}

	return rest == "" || strings.ContainsAny(rest[:1], " \t\r\n?")
}

func abbreviate(s string) string {
	const maxLen = 20

	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}

	return string(r[:maxLen]) + "..."
}
