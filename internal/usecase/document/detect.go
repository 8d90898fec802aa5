package document

import (
	"context"

	"github.com/mpyw/fmtview/internal/format"
	"github.com/mpyw/fmtview/internal/usecase/sizelimit"
)

// DetectInput holds input for the detect use case.
type DetectInput struct {
	Sources []Source
}

// DetectResult is the detection for one source.
type DetectResult struct {
	Name      string
	Detection format.Detection
	Err       error
}

// DetectOutput holds the results in input order.
type DetectOutput struct {
	Results []DetectResult
}

// DetectUseCase classifies sources without formatting them.
type DetectUseCase struct {
	Formatter *format.Formatter
	MaxBytes  int64
}

// Execute runs the detect use case.
func (u *DetectUseCase) Execute(_ context.Context, input DetectInput) (*DetectOutput, error) {
	out := &DetectOutput{Results: make([]DetectResult, 0, len(input.Sources))}

	for _, src := range input.Sources {
		r := DetectResult{Name: src.Name}

		if err := sizelimit.Check(len(src.Text), u.MaxBytes); err != nil {
			r.Err = err
		} else {
			r.Detection = u.Formatter.Classify(src.Text)
		}

		out.Results = append(out.Results, r)
	}

	return out, nil
}
