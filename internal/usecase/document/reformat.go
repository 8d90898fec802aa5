// Package document provides use cases that detect and reformat whole documents.
package document

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/mpyw/fmtview/internal/format"
	"github.com/mpyw/fmtview/internal/logging"
	"github.com/mpyw/fmtview/internal/parallel"
	"github.com/mpyw/fmtview/internal/usecase/sizelimit"
)

// Source is one named input document.
type Source struct {
	Name string
	Text string
}

// ReformatInput holds input for the reformat use case.
type ReformatInput struct {
	Sources []Source
	// Tag forces a formatter. Empty means detect per source.
	Tag format.Tag
}

// ReformatResult is the outcome for one source.
type ReformatResult struct {
	Name   string
	Source string
	Output *format.Output
	Rule   format.Rule // empty when Tag was forced
	// Changed reports whether the canonical text differs from the source,
	// ignoring one trailing newline.
	Changed bool
	Err     error
}

// ReformatOutput holds the results in input order.
type ReformatOutput struct {
	Results []ReformatResult
}

// Failed returns the number of results with an error.
func (o *ReformatOutput) Failed() int {
	n := 0

	for _, r := range o.Results {
		if r.Err != nil {
			n++
		}
	}

	return n
}

// ReformatUseCase formats several sources concurrently.
type ReformatUseCase struct {
	Formatter *format.Formatter
	MaxBytes  int64
	Limit     int // concurrency, defaults to parallel.DefaultLimit
	Logger    *slog.Logger
}

// Execute runs the reformat use case.
func (u *ReformatUseCase) Execute(ctx context.Context, input ReformatInput) (*ReformatOutput, error) {
	logger := logging.OrDiscard(u.Logger)

	limit := u.Limit
	if limit == 0 {
		limit = parallel.DefaultLimit
	}

	results := parallel.MapWithLimit(ctx, input.Sources, limit, func(ctx context.Context, src Source) (ReformatResult, error) {
		start := time.Now()
		r := u.reformat(src, input.Tag)

		logger.DebugContext(ctx, "source formatted",
			"name", src.Name, "tag", tagOf(r), "rule", r.Rule, "elapsed", time.Since(start), "error", r.Err)

		return r, r.Err
	})

	out := &ReformatOutput{Results: make([]ReformatResult, len(results))}

	for i, res := range results {
		r := res.Value
		if res.Err != nil && r.Err == nil {
			// job never ran
			r = ReformatResult{Name: input.Sources[i].Name, Source: input.Sources[i].Text, Err: res.Err}
		}

		out.Results[i] = r
	}

	return out, nil
}

func (u *ReformatUseCase) reformat(src Source, tag format.Tag) ReformatResult {
	r := ReformatResult{Name: src.Name, Source: src.Text}

	if err := sizelimit.Check(len(src.Text), u.MaxBytes); err != nil {
		r.Err = err

		return r
	}

	if tag == "" {
		d := u.Formatter.Classify(src.Text)
		tag, r.Rule = d.Tag, d.Rule
	}

	out, err := u.Formatter.FormatAs(tag, src.Text)
	if err != nil {
		r.Err = err

		return r
	}

	r.Output = out
	r.Changed = out.Text != strings.TrimSuffix(src.Text, "\n")

	return r
}

func tagOf(r ReformatResult) format.Tag {
	if r.Output == nil {
		return ""
	}

	return r.Output.Tag
}
