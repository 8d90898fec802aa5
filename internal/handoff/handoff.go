// Package handoff passes a captured selection from one invocation to the next
// through a small key/value slot.
//
// The slot holds two keys: the selected text under KeyContent and the capture
// time in Unix milliseconds under KeyTimestamp. Claim clears the content so the
// same selection is not shown twice.
package handoff

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"
)

const (
	// KeyContent holds the captured text.
	KeyContent = "formatterContent"
	// KeyTimestamp holds the capture time in Unix milliseconds.
	KeyTimestamp = "timestamp"
)

// ErrNoContent is returned by Claim and Inspect when no selection is stored.
//
//nolint:staticcheck // shown to the user verbatim
var ErrNoContent = errors.New("No content found. Please select text and try again.")

// Store is a transient key/value slot.
type Store interface {
	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key, value string) error
	// Take returns the value under key and removes it.
	Take(ctx context.Context, key string) (string, bool, error)
}

// Peeker reads a value without removing it.
type Peeker interface {
	Peek(ctx context.Context, key string) (string, bool, error)
}

// Selection is a captured piece of text.
type Selection struct {
	Content    string
	CapturedAt time.Time // zero if the timestamp is missing or malformed
}

// Stash stores content as the current selection, captured at now.
func Stash(ctx context.Context, s Store, content string, now time.Time) error {
	if err := s.Put(ctx, KeyContent, content); err != nil {
		return fmt.Errorf("failed to store content: %w", err)
	}

	if err := s.Put(ctx, KeyTimestamp, strconv.FormatInt(now.UnixMilli(), 10)); err != nil {
		return fmt.Errorf("failed to store timestamp: %w", err)
	}

	return nil
}

// Claim reads the current selection and clears it.
func Claim(ctx context.Context, s Store) (*Selection, error) {
	content, ok, err := s.Take(ctx, KeyContent)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	// The timestamp is taken even without content so that no stale key is left behind.
	ts, tsOK, err := s.Take(ctx, KeyTimestamp)
	if err != nil {
		return nil, fmt.Errorf("failed to read timestamp: %w", err)
	}

	if !ok || content == "" {
		return nil, ErrNoContent
	}

	return &Selection{Content: content, CapturedAt: parseTimestamp(ts, tsOK)}, nil
}

// Inspect reads the current selection and leaves it in place.
func Inspect(ctx context.Context, p Peeker) (*Selection, error) {
	content, ok, err := p.Peek(ctx, KeyContent)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	if !ok || content == "" {
		return nil, ErrNoContent
	}

	ts, ok, err := p.Peek(ctx, KeyTimestamp)
	if err != nil {
		return nil, fmt.Errorf("failed to read timestamp: %w", err)
	}

	return &Selection{Content: content, CapturedAt: parseTimestamp(ts, ok)}, nil
}

func parseTimestamp(s string, ok bool) time.Time {
	if !ok {
		return time.Time{}
	}

	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}
	}

	return time.UnixMilli(ms)
}
