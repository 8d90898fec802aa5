// Package format detects whether text is JSON or XML and rewrites it in a
// canonical two-space indented form.
//
// Detection never fails. Formatting either returns the complete canonical text
// or an *Error naming the attempted format; partial output is never produced.
package format

import (
	"fmt"

	"github.com/mpyw/fmtview/internal/jsonutil"
	"github.com/mpyw/fmtview/internal/xmlutil"
)

// Codec parses text into a tree and serializes the tree canonically.
type Codec[T any] interface {
	Parse(text string) (T, error)
	Serialize(v T) string
}

// Formatter dispatches text to the codec of its format.
type Formatter struct {
	JSON Codec[any]
	XML  Codec[*xmlutil.Document]
}

// New returns a Formatter backed by the jsonutil and xmlutil codecs.
func New() *Formatter {
	return &Formatter{
		JSON: jsonutil.Codec{},
		XML:  xmlutil.Codec{},
	}
}

// Output is formatted text together with its format.
type Output struct {
	Text string `json:"text"`
	Tag  Tag    `json:"language"`
}

// Format detects the format of text and formats it accordingly.
func (f *Formatter) Format(text string) (*Output, error) {
	return f.FormatAs(f.Detect(text), text)
}

// FormatAs formats text as tag without running detection.
func (f *Formatter) FormatAs(tag Tag, text string) (*Output, error) {
	var (
		formatted string
		err       error
	)

	switch tag {
	case JSON:
		formatted, err = f.FormatJSON(text)
	case XML:
		formatted, err = f.FormatXML(text)
	default:
		return nil, fmt.Errorf("unsupported format: %q", tag)
	}

	if err != nil {
		return nil, err
	}

	return &Output{Text: formatted, Tag: tag}, nil
}

// FormatJSON formats text as JSON.
func (f *Formatter) FormatJSON(text string) (string, error) {
	return reformat(f.JSON, JSON, text)
}

// FormatXML formats text as XML.
func (f *Formatter) FormatXML(text string) (string, error) {
	return reformat(f.XML, XML, text)
}

func reformat[T any](c Codec[T], tag Tag, text string) (string, error) {
	v, err := c.Parse(text)
	if err != nil {
		return "", &Error{Tag: tag, Err: err}
	}

	return c.Serialize(v), nil
}

//nolint:gochecknoglobals // Stateless default used by the package-level functions
var std = New()

// Classify calls Formatter.Classify on the default Formatter.
func Classify(text string) Detection { return std.Classify(text) }

// Detect calls Formatter.Detect on the default Formatter.
func Detect(text string) Tag { return std.Detect(text) }

// Format calls Formatter.Format on the default Formatter.
func Format(text string) (*Output, error) { return std.Format(text) }

// FormatAs calls Formatter.FormatAs on the default Formatter.
func FormatAs(tag Tag, text string) (*Output, error) { return std.FormatAs(tag, text) }

// FormatJSON calls Formatter.FormatJSON on the default Formatter.
func FormatJSON(text string) (string, error) { return std.FormatJSON(text) }

// FormatXML calls Formatter.FormatXML on the default Formatter.
func FormatXML(text string) (string, error) { return std.FormatXML(text) }
