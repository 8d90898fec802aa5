// Package config loads user settings from an INI file.
//
//	[render]
//	style = monokai
//	formatter = terminal256
//	pager = true
//
//	[input]
//	max-bytes = 10MiB
//
//	[handoff]
//	path = ~/.fmtview/handoff.json
//
// Command-line flags and environment variables take precedence; they are applied
// by the commands on top of the loaded Config.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"gopkg.in/ini.v1"
)

const (
	dirName  = ".fmtview"
	fileName = "config.ini"

	// DefaultStyle is the chroma style used when none is configured.
	DefaultStyle = "monokai"
	// DefaultFormatter is the chroma terminal formatter used when none is configured.
	DefaultFormatter = "terminal256"
	// DefaultMaxBytes is the largest input accepted by default.
	DefaultMaxBytes int64 = 10 << 20
)

// ErrInvalid is wrapped by errors for malformed settings.
var ErrInvalid = errors.New("invalid config")

//nolint:gochecknoglobals // test hook
var userHomeDirFunc = os.UserHomeDir

// Config holds user settings.
type Config struct {
	Style       string
	Formatter   string
	Pager       bool
	MaxBytes    int64  // 0 disables the limit
	HandoffPath string // empty means the hand-off store's default
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Style:     DefaultStyle,
		Formatter: DefaultFormatter,
		Pager:     true,
		MaxBytes:  DefaultMaxBytes,
	}
}

// DefaultPath returns ~/.fmtview/config.ini.
func DefaultPath() (string, error) {
	home, err := userHomeDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, dirName, fileName), nil
}

// Load reads settings from path on top of Default. If path is empty the default
// location is used, and a missing file there is not an error.
func Load(path string) (*Config, error) {
	var (
		f   *ini.File
		err error
	)

	if path == "" {
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}

		f, err = ini.LooseLoad(path)
	} else {
		f, err = ini.Load(path)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	return parse(f)
}

// Parse reads settings from INI source text.
func Parse(src []byte) (*Config, error) {
	f, err := ini.Load(src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return parse(f)
}

func parse(f *ini.File) (*Config, error) {
	c := Default()

	render := f.Section("render")
	c.Style = render.Key("style").MustString(c.Style)
	c.Formatter = render.Key("formatter").MustString(c.Formatter)
	c.Pager = render.Key("pager").MustBool(c.Pager)

	if key := f.Section("input").Key("max-bytes"); key.String() != "" {
		n, err := ParseSize(key.String())
		if err != nil {
			return nil, fmt.Errorf("%w: [input] max-bytes: %w", ErrInvalid, err)
		}

		c.MaxBytes = n
	}

	if p := f.Section("handoff").Key("path").String(); p != "" {
		expanded, err := ExpandHome(p)
		if err != nil {
			return nil, err
		}

		c.HandoffPath = expanded
	}

	return c, nil
}

// ParseSize parses a byte count such as "10485760", "10MB" or "10 MiB".
func ParseSize(s string) (int64, error) {
	n, err := humanize.ParseBytes(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}

	if n > 1<<62 {
		return 0, fmt.Errorf("size %s is too large", s)
	}

	return int64(n), nil
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(p string) (string, error) {
	rest, ok := strings.CutPrefix(p, "~/")
	if !ok {
		return p, nil
	}

	home, err := userHomeDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, rest), nil
}
