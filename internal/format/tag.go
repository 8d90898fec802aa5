package format

import (
	"fmt"
	"strings"
)

// Tag identifies a structured text format.
type Tag string

const (
	// JSON is the JSON format.
	JSON Tag = "json"
	// XML is the XML format.
	XML Tag = "xml"
)

// ParseTag parses a format name case-insensitively.
func ParseTag(s string) (Tag, error) {
	switch Tag(strings.ToLower(strings.TrimSpace(s))) {
	case JSON:
		return JSON, nil
	case XML:
		return XML, nil
	default:
		return "", fmt.Errorf("unknown format %q: must be json or xml", s)
	}
}

// String returns the language name used as a highlighting hint.
func (t Tag) String() string {
	return string(t)
}

// Label returns the display name of the format.
func (t Tag) Label() string {
	return strings.ToUpper(string(t))
}
