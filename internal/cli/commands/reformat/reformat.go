// Package reformat provides the format command.
package reformat

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/mpyw/fmtview/internal/cli/colors"
	cliinternal "github.com/mpyw/fmtview/internal/cli/commands/internal"
	"github.com/mpyw/fmtview/internal/cli/output"
	"github.com/mpyw/fmtview/internal/cli/pager"
	"github.com/mpyw/fmtview/internal/format"
	"github.com/mpyw/fmtview/internal/usecase/document"
	"github.com/mpyw/fmtview/internal/usecase/selection"
)

// ErrNotFormatted is returned by --check when an input is not in canonical form.
var ErrNotFormatted = errors.New("some inputs are not formatted")

// Runner executes the format command.
type Runner struct {
	UseCase     *document.ReformatUseCase
	Highlighter selection.Highlighter
	Stdout      io.Writer
	Stderr      io.Writer
}

// Options holds the options for the format command.
type Options struct {
	Sources []document.Source
	Tag     format.Tag // empty means detect
	Diff    bool
	Check   bool
	Output  output.Format
}

// JSONOutput is one result of --output=json.
type JSONOutput struct {
	Name     string `json:"name,omitempty"`
	Language string `json:"language,omitempty"`
	Text     string `json:"text,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Command returns the format command.
func Command() *cli.Command {
	return &cli.Command{
		Name:      "format",
		Aliases:   []string{"fmt"},
		Usage:     "Pretty-print JSON or XML",
		ArgsUsage: "[FILE...]",
		Description: `Detect whether each input is JSON or XML and print it in canonical form:
two-space indentation, object keys and attributes in document order.

Reads standard input when no FILE is given; "-" also means standard input.
A document that cannot be parsed is reported with the parser's message and
nothing is printed for it.

EXAMPLES:
  pbpaste | fmtview format                    Format the clipboard
  fmtview format --lang xml feed.rss          Skip detection
  fmtview format --diff config.json           Show what formatting would change
  fmtview format --check *.json               List files not in canonical form (exit 2)
  fmtview format --output=json < doc.xml      Emit {"language","text"} for scripts`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "lang",
				Usage: "Force the format: json or xml",
			},
			&cli.BoolFlag{
				Name:    "diff",
				Aliases: []string{"d"},
				Usage:   "Print a unified diff against the input instead of the result",
			},
			&cli.BoolFlag{
				Name:    "check",
				Aliases: []string{"l"},
				Usage:   "List inputs that are not formatted and exit with status 2",
			},
			&cli.StringFlag{
				Name:  "output",
				Usage: "Output format: text (default) or json",
			},
			cliinternal.ColorFlag(),
			cliinternal.NoPagerFlag(),
		},
		Action: action,
	}
}

func action(ctx context.Context, cmd *cli.Command) error {
	env, err := cliinternal.LoadEnv(cmd)
	if err != nil {
		return err
	}

	opts := Options{
		Diff:  cmd.Bool("diff"),
		Check: cmd.Bool("check"),
	}

	if opts.Output, err = output.ParseFormat(cmd.String("output")); err != nil {
		return err
	}

	if opts.Diff && opts.Check {
		return fmt.Errorf("--diff and --check cannot be used together")
	}

	if opts.Output == output.FormatJSON && (opts.Diff || opts.Check) {
		return fmt.Errorf("--output=json cannot be used with --diff or --check")
	}

	if lang := cmd.String("lang"); lang != "" {
		if opts.Tag, err = format.ParseTag(lang); err != nil {
			return err
		}
	}

	mode, err := cliinternal.ColorMode(cmd)
	if err != nil {
		return err
	}

	highlighter, err := env.Highlighter(mode)
	if err != nil {
		return err
	}

	if opts.Sources, err = cliinternal.ReadSources(env.Stdin, cmd.Args().Slice()); err != nil {
		return err
	}

	noPager := !env.Pager(cmd) || opts.Check || opts.Output == output.FormatJSON

	return pager.WithPagerWriter(env.Stdout, noPager, func(w io.Writer) error {
		r := &Runner{
			UseCase: &document.ReformatUseCase{
				Formatter: format.New(),
				MaxBytes:  env.Config.MaxBytes,
				Logger:    env.Logger,
			},
			Highlighter: highlighter,
			Stdout:      w,
			Stderr:      env.Stderr,
		}

		return r.Run(ctx, opts)
	})
}

// Run executes the format command.
func (r *Runner) Run(ctx context.Context, opts Options) error {
	result, err := r.UseCase.Execute(ctx, document.ReformatInput{
		Sources: opts.Sources,
		Tag:     opts.Tag,
	})
	if err != nil {
		return err
	}

	switch {
	case opts.Output == output.FormatJSON:
		return r.writeJSON(result)
	case opts.Check:
		return r.check(result)
	case opts.Diff:
		r.diff(result)
	default:
		if err := r.print(result); err != nil {
			return err
		}
	}

	return failure(result)
}

func (r *Runner) print(result *document.ReformatOutput) error {
	multiple := len(result.Results) > 1

	for i, res := range result.Results {
		if res.Err != nil {
			r.reportFailure(result, res)

			continue
		}

		if multiple {
			if i > 0 {
				output.Println(r.Stdout, "")
			}

			output.Println(r.Stdout, colors.FieldLabel("==> "+res.Name+" <=="))
		}

		rendered, err := r.Highlighter.Highlight(res.Output.Text, res.Output.Tag.String())
		if err != nil {
			return err
		}

		output.Println(r.Stdout, rendered)
	}

	return nil
}

func (r *Runner) diff(result *document.ReformatOutput) {
	for _, res := range result.Results {
		if res.Err != nil {
			r.reportFailure(result, res)

			continue
		}

		output.Print(r.Stdout, output.Diff(res.Name, res.Name+" (formatted)", res.Source, res.Output.Text+"\n"))
	}
}

func (r *Runner) check(result *document.ReformatOutput) error {
	changed := 0

	for _, res := range result.Results {
		switch {
		case res.Err != nil:
			r.reportFailure(result, res)
		case res.Changed:
			changed++

			output.Println(r.Stdout, res.Name)
		}
	}

	if err := failure(result); err != nil {
		return err
	}

	if changed > 0 {
		return ErrNotFormatted
	}

	return nil
}

func (r *Runner) writeJSON(result *document.ReformatOutput) error {
	items := make([]JSONOutput, 0, len(result.Results))

	for _, res := range result.Results {
		item := JSONOutput{Name: res.Name}

		if res.Err != nil {
			item.Error = res.Err.Error()
		} else {
			item.Language = res.Output.Tag.String()
			item.Text = res.Output.Text
		}

		items = append(items, item)
	}

	w := output.New(r.Stdout)

	if len(items) == 1 {
		// A single input keeps the {"language","text"} shape hosts consume.
		items[0].Name = ""
		if err := w.JSON(items[0]); err != nil {
			return err
		}
	} else if err := w.JSON(items); err != nil {
		return err
	}

	return failure(result)
}

// reportFailure prints a per-input error. A lone input's error is returned
// instead, so it is not printed here.
func (r *Runner) reportFailure(result *document.ReformatOutput, res document.ReformatResult) {
	if len(result.Results) > 1 {
		output.Failed(r.Stderr, res.Name, res.Err)
	}
}

// failure returns the error of a single failed input, or a summary when several
// inputs were given and any of them failed.
func failure(result *document.ReformatOutput) error {
	failed := result.Failed()
	if failed == 0 {
		return nil
	}

	if len(result.Results) == 1 {
		return result.Results[0].Err
	}

	return fmt.Errorf("%d of %d inputs could not be formatted", failed, len(result.Results))
}
