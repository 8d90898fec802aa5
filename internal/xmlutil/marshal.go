package xmlutil

import (
	"strings"

	"github.com/antchfx/xmlquery"
)

const (
	// Indent is the indentation unit used by Marshal.
	Indent = "  "
	// LineSeparator separates output lines.
	LineSeparator = "\n"
)

//nolint:gochecknoglobals // Immutable replacers
var (
	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"\n", "&#xA;",
		"\r", "&#xD;",
		"\t", "&#x9;",
	)
)

// Marshal renders doc with two-space indentation.
//
// An element holding text is written on one line unless it also holds other
// nodes and some of its text spans lines. Otherwise each child goes on its own
// line, with whitespace-only text dropped and remaining text trimmed. An
// element without children is self-closed. Content of elements with
// xml:space="preserve" is written as is.
func Marshal(doc *Document) string {
	w := &writer{}

	declarationWritten := false

	for n := doc.root.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.DeclarationNode {
			if doc.declared && !declarationWritten {
				w.line(0, declaration(n))
				declarationWritten = true
			}

			continue
		}

		w.node(n, 0)
	}

	return w.b.String()
}

type writer struct {
	b strings.Builder
}

func (w *writer) line(depth int, s string) {
	if w.b.Len() > 0 {
		w.b.WriteString(LineSeparator)
	}

	for range depth {
		w.b.WriteString(Indent)
	}

	w.b.WriteString(s)
}

func (w *writer) node(n *xmlquery.Node, depth int) {
	switch n.Type {
	case xmlquery.ElementNode:
		w.element(n, depth)
	case xmlquery.TextNode:
		if text := strings.TrimSpace(n.Data); text != "" {
			w.line(depth, textEscaper.Replace(text))
		}
	default:
		if s := inline(n); s != "" {
			w.line(depth, s)
		}
	}
}

func (w *writer) element(n *xmlquery.Node, depth int) {
	name := qualifiedName(n)
	open := "<" + name + attributes(n)

	if preservesSpace(n) {
		if n.FirstChild == nil {
			w.line(depth, open+"/>")

			return
		}

		var b strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			b.WriteString(inline(c))
		}

		w.line(depth, open+">"+b.String()+"</"+name+">")

		return
	}

	if len(significantChildren(n)) == 0 {
		w.line(depth, open+"/>")

		return
	}

	if content, ok := collapse(n); ok {
		w.line(depth, open+">"+content+"</"+name+">")

		return
	}

	w.line(depth, open+">")

	for _, c := range significantChildren(n) {
		w.node(c, depth+1)
	}

	w.line(depth, "</"+name+">")
}

// collapse renders the content of n on one line. It applies when n holds text
// or CDATA and either has no other children or none of its text spans lines.
// Text spanning lines is trimmed and blank text at either end is dropped;
// everything else is kept as is.
func collapse(n *xmlquery.Node) (string, bool) {
	var b strings.Builder

	hasText, hasMarkup, hasBreak := false, false, false

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.TextNode:
			text := c.Data

			switch {
			case strings.Contains(text, "\n"):
				hasBreak = true
				text = strings.TrimSpace(text)
			case (c.PrevSibling == nil || c.NextSibling == nil) && strings.TrimSpace(text) == "":
				text = ""
			}

			if strings.TrimSpace(text) != "" {
				hasText = true
			}

			b.WriteString(textEscaper.Replace(text))
		case xmlquery.CharDataNode:
			hasText = true

			b.WriteString(inline(c))
		default:
			hasMarkup = true

			b.WriteString(inline(c))
		}
	}

	if !hasText || (hasMarkup && hasBreak) {
		return "", false
	}

	return b.String(), true
}

func significantChildren(n *xmlquery.Node) []*xmlquery.Node {
	var children []*xmlquery.Node

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.TextNode && strings.TrimSpace(c.Data) == "" {
			continue
		}

		children = append(children, c)
	}

	return children
}

// inline renders n and its descendants without adding or removing whitespace.
func inline(n *xmlquery.Node) string {
	switch n.Type {
	case xmlquery.ElementNode:
		name := qualifiedName(n)
		if n.FirstChild == nil {
			return "<" + name + attributes(n) + "/>"
		}

		var b strings.Builder

		b.WriteString("<" + name + attributes(n) + ">")

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			b.WriteString(inline(c))
		}

		b.WriteString("</" + name + ">")

		return b.String()
	case xmlquery.TextNode:
		return textEscaper.Replace(n.Data)
	case xmlquery.CharDataNode:
		return "<![CDATA[" + n.Data + "]]>"
	case xmlquery.CommentNode:
		return "<!--" + n.Data + "-->"
	case xmlquery.ProcessingInstruction:
		if n.ProcInst == nil || n.ProcInst.Inst == "" {
			return "<?" + n.Data + "?>"
		}

		return "<?" + n.ProcInst.Target + " " + n.ProcInst.Inst + "?>"
	case xmlquery.NotationNode:
		return "<!" + n.Data + ">"
	default:
		return ""
	}
}

func declaration(n *xmlquery.Node) string {
	var b strings.Builder

	b.WriteString("<?xml")

	for _, a := range n.Attr {
		b.WriteString(" " + attrName(a) + `="` + attrEscaper.Replace(a.Value) + `"`)
	}

	b.WriteString("?>")

	return b.String()
}

func qualifiedName(n *xmlquery.Node) string {
	if n.Prefix != "" {
		return n.Prefix + ":" + n.Data
	}

	return n.Data
}

func attributes(n *xmlquery.Node) string {
	var b strings.Builder

	for _, a := range n.Attr {
		b.WriteString(" " + attrName(a) + `="` + attrEscaper.Replace(a.Value) + `"`)
	}

	return b.String()
}

func attrName(a xmlquery.Attr) string {
	if a.Name.Space != "" {
		return a.Name.Space + ":" + a.Name.Local
	}

	return a.Name.Local
}

func preservesSpace(n *xmlquery.Node) bool {
	for _, a := range n.Attr {
		if a.Name.Space == "xml" && a.Name.Local == "space" {
			return a.Value == "preserve"
		}
	}

	return false
}
