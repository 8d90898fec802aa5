// Package selection provides use cases for capturing a selection and viewing it
// formatted.
package selection

import (
	"context"
	"log/slog"
	"time"

	"github.com/mpyw/fmtview/internal/handoff"
	"github.com/mpyw/fmtview/internal/logging"
	"github.com/mpyw/fmtview/internal/usecase/sizelimit"
)

// CaptureInput holds input for the capture use case.
type CaptureInput struct {
	Text string
}

// CaptureOutput holds the result of the capture use case.
type CaptureOutput struct {
	Bytes      int
	CapturedAt time.Time
}

// CaptureUseCase stores a selection in the hand-off slot.
type CaptureUseCase struct {
	Store    handoff.Store
	MaxBytes int64
	Now      func() time.Time // defaults to time.Now
	Logger   *slog.Logger
}

// Execute runs the capture use case.
func (u *CaptureUseCase) Execute(ctx context.Context, input CaptureInput) (*CaptureOutput, error) {
	if input.Text == "" {
		return nil, ErrEmptySelection
	}

	if err := sizelimit.Check(len(input.Text), u.MaxBytes); err != nil {
		return nil, err
	}

	now := time.Now
	if u.Now != nil {
		now = u.Now
	}

	capturedAt := now()
	if err := handoff.Stash(ctx, u.Store, input.Text, capturedAt); err != nil {
		return nil, err
	}

	logging.OrDiscard(u.Logger).DebugContext(ctx, "selection captured", "bytes", len(input.Text))

	return &CaptureOutput{Bytes: len(input.Text), CapturedAt: capturedAt}, nil
}
