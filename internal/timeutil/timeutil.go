// Package timeutil formats capture times for display in the TZ time zone.
package timeutil

import (
	"os"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
)

//nolint:gochecknoglobals // cached timezone location
var (
	locationCache *time.Location
	locationOnce  sync.Once
)

// loadLocation loads the zone named by TZ. An unset TZ means local time and an
// invalid one means UTC.
func loadLocation() *time.Location {
	tz := os.Getenv("TZ")
	if tz == "" {
		return time.Local
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}

	return loc
}

// Location returns the display time zone. The result is cached after the first call.
func Location() *time.Location {
	locationOnce.Do(func() {
		locationCache = loadLocation()
	})

	return locationCache
}

// FormatRFC3339 formats t as RFC 3339 in the display time zone.
func FormatRFC3339(t time.Time) string {
	return t.In(Location()).Format(time.RFC3339)
}

// FormatRelative formats t as RFC 3339 followed by its distance from now,
// e.g. "2024-01-15T12:30:45Z (3 minutes ago)".
func FormatRelative(t, now time.Time) string {
	return FormatRFC3339(t) + " (" + humanize.RelTime(t, now, "ago", "from now") + ")"
}

// ResetLocationCache resets the cached location. Tests only.
func ResetLocationCache() {
	locationOnce = sync.Once{}
	locationCache = nil
}
