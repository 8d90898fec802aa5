// Package sizelimit enforces the caller-side input size limit.
package sizelimit

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
)

// ErrTooLarge is returned for input above the limit.
var ErrTooLarge = errors.New("input too large")

// Check returns ErrTooLarge if size exceeds limit. A non-positive limit disables the check.
func Check(size int, limit int64) error {
	if limit <= 0 || int64(size) <= limit {
		return nil
	}

	return fmt.Errorf("%w: %s exceeds the %s limit",
		ErrTooLarge, humanize.IBytes(uint64(size)), humanize.IBytes(uint64(limit)))
}
