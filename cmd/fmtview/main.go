package main

import (
	"context"
	"errors"
	"os"

	"github.com/mpyw/fmtview/internal/cli/commands"
	"github.com/mpyw/fmtview/internal/cli/commands/reformat"
	"github.com/mpyw/fmtview/internal/cli/output"
)

func main() {
	if err := commands.App.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, reformat.ErrNotFormatted) {
			os.Exit(2) //nolint:mnd // same status as gofmt -l style checks
		}

		output.Error(os.Stderr, "%v", err)
		os.Exit(1)
	}
}
