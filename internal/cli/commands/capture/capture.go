// Package capture provides the capture command.
package capture

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	cliinternal "github.com/mpyw/fmtview/internal/cli/commands/internal"
	"github.com/mpyw/fmtview/internal/cli/output"
	"github.com/mpyw/fmtview/internal/cli/passphrase"
	"github.com/mpyw/fmtview/internal/usecase/selection"
)

// Runner executes the capture command.
type Runner struct {
	UseCase *selection.CaptureUseCase
	Stdout  io.Writer
	Stderr  io.Writer
}

// Options holds the options for the capture command.
type Options struct {
	Text string
}

// Command returns the capture command.
func Command() *cli.Command {
	return &cli.Command{
		Name:      "capture",
		Usage:     "Store a selection for a later view",
		ArgsUsage: "[FILE]",
		Description: `Store text in the hand-off file so that "fmtview view" can format it,
typically from another process such as an editor or clipboard hook.

The text is read from FILE, or from standard input when FILE is omitted.
A new capture replaces the previous one, and "fmtview view" clears it.

With --encrypt, or when a passphrase is configured, the hand-off file is
encrypted. --encrypt prompts for the passphrase unless --passphrase or
FMTVIEW_PASSPHRASE supplies it; prompting needs FILE since standard input
then carries the passphrase.

EXAMPLES:
  pbpaste | fmtview capture                   Capture the clipboard
  fmtview capture --encrypt response.json     Capture a file, encrypted at rest`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "encrypt",
				Usage: "Encrypt the hand-off file with a passphrase",
			},
		},
		Action: action,
	}
}

func action(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() > 1 {
		return fmt.Errorf("usage: fmtview capture [FILE]")
	}

	env, err := cliinternal.LoadEnv(cmd)
	if err != nil {
		return err
	}

	store, err := env.HandoffStore()
	if err != nil {
		return err
	}

	if cmd.Bool("encrypt") && env.Passphrase == "" {
		if cmd.Args().Len() == 0 {
			return fmt.Errorf("--encrypt reads the passphrase from stdin, so the selection must be given as FILE")
		}

		prompter := &passphrase.Prompter{Stdin: env.Stdin, Stderr: env.Stderr}

		pass, err := prompter.PromptForEncrypt()
		if err != nil {
			return err
		}

		store.SetPassphrase(pass)
	}

	sources, err := cliinternal.ReadSources(env.Stdin, cmd.Args().Slice())
	if err != nil {
		return err
	}

	r := &Runner{
		UseCase: &selection.CaptureUseCase{
			Store:    store,
			MaxBytes: env.Config.MaxBytes,
			Logger:   env.Logger,
		},
		Stdout: env.Stdout,
		Stderr: env.Stderr,
	}

	return r.Run(ctx, Options{Text: sources[0].Text})
}

// Run executes the capture command.
func (r *Runner) Run(ctx context.Context, opts Options) error {
	result, err := r.UseCase.Execute(ctx, selection.CaptureInput{Text: opts.Text})
	if err != nil {
		return err
	}

	output.Success(r.Stderr, "Captured %s", humanize.IBytes(uint64(result.Bytes)))
	output.Hint(r.Stderr, "Run 'fmtview view' to format it")

	return nil
}
