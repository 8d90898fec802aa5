// Package styles provides the styles command.
package styles

import (
	"context"
	"io"

	"github.com/urfave/cli/v3"

	cliinternal "github.com/mpyw/fmtview/internal/cli/commands/internal"
	"github.com/mpyw/fmtview/internal/cli/output"
	"github.com/mpyw/fmtview/internal/highlight"
)

// Command returns the styles command.
func Command() *cli.Command {
	return &cli.Command{
		Name:  "styles",
		Usage: "List highlighting styles and terminal formatters",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "output",
				Usage: "Output format: text (default) or json",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			env, err := cliinternal.LoadEnv(cmd)
			if err != nil {
				return err
			}

			format, err := output.ParseFormat(cmd.String("output"))
			if err != nil {
				return err
			}

			return Run(env.Stdout, env.Config.Style, format)
		},
	}
}

// JSONOutput is the --output=json document.
type JSONOutput struct {
	Current    string   `json:"current"`
	Styles     []string `json:"styles"`
	Formatters []string `json:"formatters"`
}

// Run lists the styles, marking current, and the formatters.
func Run(w io.Writer, current string, format output.Format) error {
	if format == output.FormatJSON {
		return output.New(w).JSON(JSONOutput{
			Current:    current,
			Styles:     highlight.Styles(),
			Formatters: highlight.Formatters(),
		})
	}

	out := output.New(w)

	out.Field("Styles", "")

	for _, name := range highlight.Styles() {
		marker := "  "
		if name == current {
			marker = "* "
		}

		output.Println(w, marker+name)
	}

	out.Separator()
	out.Field("Formatters", "")

	for _, name := range highlight.Formatters() {
		output.Println(w, "  "+name)
	}

	return nil
}
