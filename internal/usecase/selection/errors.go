package selection

import "errors"

var (
	// ErrEmptySelection is returned when capturing an empty selection.
	ErrEmptySelection = errors.New("selection is empty")
	// ErrKeepUnsupported is returned when Keep is requested on a store that cannot peek.
	ErrKeepUnsupported = errors.New("hand-off store cannot keep the selection")
)
