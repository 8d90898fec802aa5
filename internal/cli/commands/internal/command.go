// Package internal provides shared utilities for CLI commands.
package internal

import (
	"context"

	"github.com/samber/lo"
	"github.com/urfave/cli/v3"

	"github.com/mpyw/fmtview/internal/cli/output"
)

// CommandNotFound prints the help of cmd, followed by an error naming the
// unknown subcommand and a hint on how to list the valid ones.
// It serves both the root command and command groups such as handoff.
func CommandNotFound(_ context.Context, cmd *cli.Command, command string) {
	if cmd.Root() == cmd {
		_ = cli.ShowAppHelp(cmd)
	} else {
		_ = cli.ShowSubcommandHelp(cmd)
	}

	w := lo.CoalesceOrEmpty(cmd.Root().ErrWriter, cmd.Root().Writer)

	output.Println(w, "")
	output.Error(w, "unknown command %q for %q", command, cmd.FullName())
	output.Hint(w, "Run '%s --help' to list the available commands", cmd.FullName())
}
