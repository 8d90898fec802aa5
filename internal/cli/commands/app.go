// Package commands provides the command-line interface for fmtview.
package commands

import (
	"github.com/urfave/cli/v3"

	"github.com/mpyw/fmtview/internal/cli/commands/capture"
	"github.com/mpyw/fmtview/internal/cli/commands/detect"
	cliinternal "github.com/mpyw/fmtview/internal/cli/commands/internal"
	"github.com/mpyw/fmtview/internal/cli/commands/open"
	"github.com/mpyw/fmtview/internal/cli/commands/reformat"
	"github.com/mpyw/fmtview/internal/cli/commands/slot"
	"github.com/mpyw/fmtview/internal/cli/commands/styles"
	"github.com/mpyw/fmtview/internal/cli/commands/view"
)

// MakeApp creates a new CLI application instance.
func MakeApp() *cli.Command {
	return &cli.Command{
		Name:    "fmtview",
		Usage:   "Detect, pretty-print and highlight JSON and XML",
		Version: "0.1.0",
		Flags:   cliinternal.GlobalFlags(),
		Commands: []*cli.Command{
			reformat.Command(),
			detect.Command(),
			capture.Command(),
			view.Command(),
			open.Command(),
			slot.Command(),
			styles.Command(),
		},
		CommandNotFound: cliinternal.CommandNotFound,
	}
}

// App is the main CLI application.
var App = MakeApp()
