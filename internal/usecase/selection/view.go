package selection

import (
	"context"
	"log/slog"
	"time"

	"github.com/mpyw/fmtview/internal/format"
	"github.com/mpyw/fmtview/internal/handoff"
	"github.com/mpyw/fmtview/internal/logging"
	"github.com/mpyw/fmtview/internal/usecase/sizelimit"
)

// Highlighter renders formatted text for display.
type Highlighter interface {
	Highlight(text, language string) (string, error)
}

// ViewInput holds input for the view use case.
type ViewInput struct {
	// Keep leaves the selection in the slot. The store must implement handoff.Peeker.
	Keep bool
}

// ViewOutput holds the result of the view use case.
type ViewOutput struct {
	Text       string
	Tag        format.Tag
	Rule       format.Rule
	Rendered   string
	CapturedAt time.Time
}

// ViewUseCase claims the captured selection, formats it and renders it.
type ViewUseCase struct {
	Store       handoff.Store
	Formatter   *format.Formatter
	Highlighter Highlighter
	MaxBytes    int64
	Logger      *slog.Logger
}

// Execute runs the view use case.
//
// The selection is cleared as soon as it is read, even if formatting then fails.
// A formatting failure is returned as the *format.Error with no partial output.
func (u *ViewUseCase) Execute(ctx context.Context, input ViewInput) (*ViewOutput, error) {
	logger := logging.OrDiscard(u.Logger)

	sel, err := u.read(ctx, input.Keep)
	if err != nil {
		return nil, err
	}

	if err := sizelimit.Check(len(sel.Content), u.MaxBytes); err != nil {
		return nil, err
	}

	detection := u.Formatter.Classify(sel.Content)
	logger.DebugContext(ctx, "format detected",
		"tag", detection.Tag, "rule", detection.Rule, "bytes", len(sel.Content))

	out, err := u.Formatter.FormatAs(detection.Tag, sel.Content)
	if err != nil {
		return nil, err
	}

	rendered, err := u.Highlighter.Highlight(out.Text, out.Tag.String())
	if err != nil {
		return nil, err
	}

	return &ViewOutput{
		Text:       out.Text,
		Tag:        out.Tag,
		Rule:       detection.Rule,
		Rendered:   rendered,
		CapturedAt: sel.CapturedAt,
	}, nil
}

func (u *ViewUseCase) read(ctx context.Context, keep bool) (*handoff.Selection, error) {
	if !keep {
		return handoff.Claim(ctx, u.Store)
	}

	p, ok := u.Store.(handoff.Peeker)
	if !ok {
		return nil, ErrKeepUnsupported
	}

	return handoff.Inspect(ctx, p)
}
