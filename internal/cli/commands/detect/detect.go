// Package detect provides the detect command.
package detect

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	cliinternal "github.com/mpyw/fmtview/internal/cli/commands/internal"
	"github.com/mpyw/fmtview/internal/cli/output"
	"github.com/mpyw/fmtview/internal/format"
	"github.com/mpyw/fmtview/internal/usecase/document"
)

// Runner executes the detect command.
type Runner struct {
	UseCase *document.DetectUseCase
	Stdout  io.Writer
	Stderr  io.Writer
}

// Options holds the options for the detect command.
type Options struct {
	Sources []document.Source
	Verbose bool
}

// Command returns the detect command.
func Command() *cli.Command {
	return &cli.Command{
		Name:      "detect",
		Usage:     "Tell whether input is JSON or XML",
		ArgsUsage: "[FILE...]",
		Description: `Print "json" or "xml" for each input without parsing it in full.

Input starting with "{" or "[" is JSON, input starting with "<" is XML, other
input that parses as JSON is JSON, and anything else is XML. The answer is
never "unknown": empty or unrecognised input is reported as xml.

EXAMPLES:
  pbpaste | fmtview detect                    Detect the clipboard format
  fmtview detect --verbose a.json b.txt       Also show which rule decided`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Also print the rule that decided",
			},
		},
		Action: action,
	}
}

func action(ctx context.Context, cmd *cli.Command) error {
	env, err := cliinternal.LoadEnv(cmd)
	if err != nil {
		return err
	}

	sources, err := cliinternal.ReadSources(env.Stdin, cmd.Args().Slice())
	if err != nil {
		return err
	}

	r := &Runner{
		UseCase: &document.DetectUseCase{Formatter: format.New(), MaxBytes: env.Config.MaxBytes},
		Stdout:  env.Stdout,
		Stderr:  env.Stderr,
	}

	return r.Run(ctx, Options{Sources: sources, Verbose: cmd.Bool("verbose")})
}

// Run executes the detect command.
func (r *Runner) Run(ctx context.Context, opts Options) error {
	result, err := r.UseCase.Execute(ctx, document.DetectInput{Sources: opts.Sources})
	if err != nil {
		return err
	}

	multiple := len(result.Results) > 1
	failed := 0

	for _, res := range result.Results {
		if res.Err != nil {
			failed++

			output.Failed(r.Stderr, res.Name, res.Err)

			continue
		}

		line := res.Detection.Tag.String()
		if opts.Verbose {
			line += " (" + string(res.Detection.Rule) + ")"
		}

		if multiple {
			line = res.Name + ": " + line
		}

		output.Println(r.Stdout, line)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d inputs could not be read", failed, len(result.Results))
	}

	return nil
}
