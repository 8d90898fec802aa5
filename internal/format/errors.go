package format

import "errors"

var (
	// ErrInvalidJSON is matched by errors from the JSON formatter.
	ErrInvalidJSON = errors.New("invalid JSON")
	// ErrInvalidXML is matched by errors from the XML formatter.
	ErrInvalidXML = errors.New("invalid XML")
)

// Error reports that text could not be parsed in the attempted format.
// Err is the parser's diagnostic, kept as is.
type Error struct {
	Tag Tag
	Err error
}

func (e *Error) Error() string {
	return "Invalid " + e.Tag.Label() + ": " + e.Err.Error()
}

// Cause returns the parser's diagnostic message.
func (e *Error) Cause() string {
	return e.Err.Error()
}

// Unwrap exposes both the kind sentinel and the parser error.
func (e *Error) Unwrap() []error {
	if e.Tag == JSON {
		return []error{ErrInvalidJSON, e.Err}
	}

	return []error{ErrInvalidXML, e.Err}
}
