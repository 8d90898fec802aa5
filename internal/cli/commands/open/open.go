// Package open provides the open command.
package open

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	cliinternal "github.com/mpyw/fmtview/internal/cli/commands/internal"
	"github.com/mpyw/fmtview/internal/cli/commands/view"
	"github.com/mpyw/fmtview/internal/handoff/memory"
	"github.com/mpyw/fmtview/internal/usecase/selection"
)

// Command returns the open command.
func Command() *cli.Command {
	return &cli.Command{
		Name:      "open",
		Usage:     "Format and open a selection in one step",
		ArgsUsage: "[FILE]",
		Description: `Capture text and view it at once, without going through the hand-off file.
The selection is held in locked memory for the lifetime of the command.

EXAMPLES:
  pbpaste | fmtview open --browser            Format the clipboard in a new tab
  fmtview open response.json                  Same as capture + view`,
		Flags: view.Flags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() > 1 {
				return fmt.Errorf("usage: fmtview open [FILE]")
			}

			env, err := cliinternal.LoadEnv(cmd)
			if err != nil {
				return err
			}

			sources, err := cliinternal.ReadSources(env.Stdin, cmd.Args().Slice())
			if err != nil {
				return err
			}

			store := memory.NewStore()

			capture := &selection.CaptureUseCase{Store: store, MaxBytes: env.Config.MaxBytes, Logger: env.Logger}
			if _, err := capture.Execute(ctx, selection.CaptureInput{Text: sources[0].Text}); err != nil {
				return err
			}

			return view.Action(ctx, cmd, env, store, view.Options{Browser: cmd.Bool("browser"), Keep: cmd.Bool("keep")})
		},
	}
}
