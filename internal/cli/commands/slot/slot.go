// Package slot provides the handoff command group for inspecting and clearing
// the hand-off file.
package slot

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/urfave/cli/v3"

	cliinternal "github.com/mpyw/fmtview/internal/cli/commands/internal"
	"github.com/mpyw/fmtview/internal/cli/confirm"
	"github.com/mpyw/fmtview/internal/cli/output"
	"github.com/mpyw/fmtview/internal/format"
	"github.com/mpyw/fmtview/internal/handoff"
	"github.com/mpyw/fmtview/internal/handoff/file"
	"github.com/mpyw/fmtview/internal/timeutil"
)

// Command returns the handoff command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:  "handoff",
		Usage: "Inspect or clear the hand-off file",
		Commands: []*cli.Command{
			statusCommand(),
			clearCommand(),
		},
		CommandNotFound: cliinternal.CommandNotFound,
	}
}

func statusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show whether a selection is waiting to be viewed",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			env, err := cliinternal.LoadEnv(cmd)
			if err != nil {
				return err
			}

			store, err := env.HandoffStore()
			if err != nil {
				return err
			}

			return Status(ctx, env.Stdout, store, time.Now())
		},
	}
}

func clearCommand() *cli.Command {
	return &cli.Command{
		Name:  "clear",
		Usage: "Discard the captured selection",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Skip confirmation prompt",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			env, err := cliinternal.LoadEnv(cmd)
			if err != nil {
				return err
			}

			store, err := env.HandoffStore()
			if err != nil {
				return err
			}

			return Clear(store, &confirm.Prompter{Stdin: env.Stdin, Stderr: env.Stderr}, env.Stderr, cmd.Bool("yes"))
		},
	}
}

// Clear deletes the hand-off file after confirmation.
func Clear(store *file.Store, prompter *confirm.Prompter, stderr io.Writer, skipConfirm bool) error {
	if _, err := os.Stat(store.Path()); os.IsNotExist(err) {
		output.Println(stderr, "Nothing to clear")

		return nil
	}

	ok, err := prompter.ConfirmDiscard("the captured selection in "+store.Path(), skipConfirm)
	if err != nil {
		return err
	}

	if !ok {
		output.Println(stderr, "Kept the captured selection")

		return nil
	}

	if err := store.Delete(); err != nil {
		return err
	}

	output.Success(stderr, "Cleared %s", store.Path())

	return nil
}

// Status prints the state of the hand-off file without clearing it.
func Status(ctx context.Context, w io.Writer, store *file.Store, now time.Time) error {
	out := output.New(w)

	encrypted, err := store.Encrypted()
	if err != nil {
		return err
	}

	out.Field("Path", store.Path())
	out.Field("Encrypted", lo.Ternary(encrypted, "yes", "no"))

	sel, err := handoff.Inspect(ctx, store)

	switch {
	case errors.Is(err, handoff.ErrNoContent):
		out.Field("Selection", "none")

		return nil
	case errors.Is(err, file.ErrDecryptionFailed):
		out.Field("Selection", "locked (set --passphrase to inspect)")

		return nil
	case err != nil:
		return err
	}

	out.Field("Selection", humanize.IBytes(uint64(len(sel.Content))))
	out.Field("Language", format.Detect(sel.Content).Label())

	if !sel.CapturedAt.IsZero() {
		out.Field("Captured", timeutil.FormatRelative(sel.CapturedAt, now))
	}

	return nil
}
