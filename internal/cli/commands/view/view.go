// Package view provides the view command.
package view

import (
	"context"
	"io"

	"github.com/urfave/cli/v3"

	cliinternal "github.com/mpyw/fmtview/internal/cli/commands/internal"
	"github.com/mpyw/fmtview/internal/cli/output"
	"github.com/mpyw/fmtview/internal/cli/pager"
	"github.com/mpyw/fmtview/internal/cli/passphrase"
	"github.com/mpyw/fmtview/internal/format"
	"github.com/mpyw/fmtview/internal/handoff"
	"github.com/mpyw/fmtview/internal/highlight"
	"github.com/mpyw/fmtview/internal/usecase/selection"
)

// Runner executes the view command.
type Runner struct {
	UseCase *selection.ViewUseCase
	Stdout  io.Writer
	Stderr  io.Writer

	// Used by Browser mode; default to highlight.WritePage and highlight.Open.
	WritePage func(page string) (string, error)
	Open      func(path string) error
}

// Options holds the options for the view command.
type Options struct {
	Keep    bool
	Browser bool
}

// Command returns the view command.
func Command() *cli.Command {
	return &cli.Command{
		Name:  "view",
		Usage: "Format and show the captured selection",
		Description: `Read the selection stored by "fmtview capture", clear it, detect whether
it is JSON or XML and show it formatted and highlighted.

If the selection cannot be parsed, the parser's message is shown and
nothing else. The selection is cleared either way; use --keep to leave it.

EXAMPLES:
  fmtview view                                Show in the terminal
  fmtview view --browser                      Open in a new browser tab
  fmtview view --keep --color=never           Plain output, keep the selection`,
		Flags: Flags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			env, err := cliinternal.LoadEnv(cmd)
			if err != nil {
				return err
			}

			store, err := env.HandoffStore()
			if err != nil {
				return err
			}

			if env.Passphrase == "" {
				encrypted, err := store.Encrypted()
				if err != nil {
					return err
				}

				if encrypted {
					prompter := &passphrase.Prompter{Stdin: env.Stdin, Stderr: env.Stderr}

					pass, err := prompter.PromptForDecrypt()
					if err != nil {
						return err
					}

					store.SetPassphrase(pass)
				}
			}

			return Action(ctx, cmd, env, store, Options{Keep: cmd.Bool("keep"), Browser: cmd.Bool("browser")})
		},
	}
}

// Flags returns the presentation flags shared with the open command.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "browser",
			Aliases: []string{"b"},
			Usage:   "Open the result as an HTML page in a new browser tab",
		},
		&cli.BoolFlag{
			Name:  "keep",
			Usage: "Leave the selection in the hand-off file",
		},
		cliinternal.ColorFlag(),
		cliinternal.NoPagerFlag(),
	}
}

// Action renders the selection held by store according to the command's flags.
func Action(ctx context.Context, cmd *cli.Command, env *cliinternal.Env, store handoff.Store, opts Options) error {
	var (
		highlighter selection.Highlighter
		err         error
	)

	if opts.Browser {
		highlighter, err = highlight.NewHTML(env.Config.Style)
	} else {
		mode, modeErr := cliinternal.ColorMode(cmd)
		if modeErr != nil {
			return modeErr
		}

		highlighter, err = env.Highlighter(mode)
	}

	if err != nil {
		return err
	}

	noPager := !env.Pager(cmd) || opts.Browser

	return pager.WithPagerWriter(env.Stdout, noPager, func(w io.Writer) error {
		r := &Runner{
			UseCase: &selection.ViewUseCase{
				Store:       store,
				Formatter:   format.New(),
				Highlighter: highlighter,
				MaxBytes:    env.Config.MaxBytes,
				Logger:      env.Logger,
			},
			Stdout: w,
			Stderr: env.Stderr,
		}

		return r.Run(ctx, opts)
	})
}

// Run executes the view command.
func (r *Runner) Run(ctx context.Context, opts Options) error {
	result, err := r.UseCase.Execute(ctx, selection.ViewInput{Keep: opts.Keep})
	if err != nil {
		return err
	}

	if !opts.Browser {
		output.Println(r.Stdout, result.Rendered)

		return nil
	}

	writePage, open := r.WritePage, r.Open
	if writePage == nil {
		writePage = highlight.WritePage
	}

	if open == nil {
		open = highlight.Open
	}

	path, err := writePage(result.Rendered)
	if err != nil {
		return err
	}

	if err := open(path); err != nil {
		return err
	}

	output.Success(r.Stderr, "Opened formatted %s in the browser", result.Tag.Label())
	output.Hint(r.Stderr, "The page is saved at %s", path)

	return nil
}
