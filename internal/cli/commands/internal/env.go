package internal

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/samber/lo"
	"github.com/urfave/cli/v3"

	"github.com/mpyw/fmtview/internal/cli/terminal"
	"github.com/mpyw/fmtview/internal/config"
	"github.com/mpyw/fmtview/internal/handoff/file"
	"github.com/mpyw/fmtview/internal/highlight"
	"github.com/mpyw/fmtview/internal/logging"
)

// Global flag names.
const (
	FlagConfig     = "config"
	FlagDebug      = "debug"
	FlagStyle      = "style"
	FlagFormatter  = "formatter"
	FlagMaxBytes   = "max-bytes"
	FlagHandoff    = "handoff"
	FlagPassphrase = "passphrase"
)

// GlobalFlags returns the flags shared by every command.
func GlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    FlagConfig,
			Usage:   "Config file (default ~/.fmtview/config.ini)",
			Sources: cli.EnvVars("FMTVIEW_CONFIG"),
		},
		&cli.BoolFlag{
			Name:    FlagDebug,
			Usage:   "Log detection and hand-off activity to stderr",
			Sources: cli.EnvVars("FMTVIEW_DEBUG"),
		},
		&cli.StringFlag{
			Name:    FlagStyle,
			Usage:   "Highlighting style, listed by the styles command",
			Sources: cli.EnvVars("FMTVIEW_STYLE"),
		},
		&cli.StringFlag{
			Name:    FlagFormatter,
			Usage:   "Terminal formatter: terminal, terminal8, terminal16, terminal256 or terminal16m",
			Sources: cli.EnvVars("FMTVIEW_FORMATTER"),
		},
		&cli.StringFlag{
			Name:    FlagMaxBytes,
			Usage:   "Largest accepted input, e.g. 10MiB (0 disables the limit)",
			Sources: cli.EnvVars("FMTVIEW_MAX_BYTES"),
		},
		&cli.StringFlag{
			Name:    FlagHandoff,
			Usage:   "Hand-off file (default ~/.fmtview/handoff.json)",
			Sources: cli.EnvVars("FMTVIEW_HANDOFF"),
		},
		&cli.StringFlag{
			Name:    FlagPassphrase,
			Usage:   "Passphrase of an encrypted hand-off file",
			Sources: cli.EnvVars("FMTVIEW_PASSPHRASE"),
		},
	}
}

// Env holds the resolved settings and streams of one command invocation.
type Env struct {
	Config     *config.Config
	Passphrase string
	Logger     *slog.Logger
	Stdin      io.Reader
	Stdout     io.Writer
	Stderr     io.Writer
}

// LoadEnv resolves settings with the precedence flag > environment > config file > default.
func LoadEnv(cmd *cli.Command) (*Env, error) {
	root := cmd.Root()
	stderr := lo.CoalesceOrEmpty[io.Writer](root.ErrWriter, os.Stderr)

	cfg, err := config.Load(cmd.String(FlagConfig))
	if err != nil {
		return nil, err
	}

	if cmd.IsSet(FlagStyle) {
		cfg.Style = cmd.String(FlagStyle)
	}

	if cmd.IsSet(FlagFormatter) {
		cfg.Formatter = cmd.String(FlagFormatter)
	}

	if cmd.IsSet(FlagMaxBytes) {
		n, err := config.ParseSize(cmd.String(FlagMaxBytes))
		if err != nil {
			return nil, fmt.Errorf("invalid --%s: %w", FlagMaxBytes, err)
		}

		cfg.MaxBytes = n
	}

	if cmd.IsSet(FlagHandoff) {
		if cfg.HandoffPath, err = config.ExpandHome(cmd.String(FlagHandoff)); err != nil {
			return nil, err
		}
	}

	env := &Env{
		Config:     cfg,
		Passphrase: cmd.String(FlagPassphrase),
		Logger:     logging.New(stderr, cmd.Bool(FlagDebug)),
		Stdin:      lo.CoalesceOrEmpty[io.Reader](root.Reader, os.Stdin),
		Stdout:     lo.CoalesceOrEmpty[io.Writer](root.Writer, os.Stdout),
		Stderr:     stderr,
	}

	env.Logger.Debug("settings loaded",
		"style", cfg.Style, "formatter", cfg.Formatter, "max_bytes", cfg.MaxBytes, "handoff", cfg.HandoffPath)

	return env, nil
}

// HandoffStore opens the file-backed hand-off store.
func (e *Env) HandoffStore() (*file.Store, error) {
	var store *file.Store

	if e.Config.HandoffPath != "" {
		store = file.NewStoreWithPath(e.Config.HandoffPath)
	} else {
		var err error
		if store, err = file.NewStore(); err != nil {
			return nil, err
		}
	}

	store.SetPassphrase(e.Passphrase)

	return store, nil
}

// Highlighter returns a terminal highlighter for output going to Stdout,
// or a plain one when mode says the output is not to be colored.
func (e *Env) Highlighter(mode terminal.ColorMode) (*highlight.Highlighter, error) {
	if !mode.Enabled(e.Stdout) {
		return highlight.NewPlain(), nil
	}

	return highlight.New(e.Config.Style, e.Config.Formatter)
}

// Pager reports whether paging is enabled by config and the --no-pager flag.
func (e *Env) Pager(cmd *cli.Command) bool {
	return e.Config.Pager && !cmd.Bool("no-pager")
}

// NoPagerFlag returns the --no-pager flag.
func NoPagerFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "no-pager",
		Usage:   "Disable pager output",
		Sources: cli.EnvVars("FMTVIEW_NO_PAGER"),
	}
}

// ColorFlag returns the --color flag.
func ColorFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "color",
		Value: string(terminal.ColorAuto),
		Usage: "Highlight output: auto, always or never",
	}
}

// ColorMode parses the --color flag.
func ColorMode(cmd *cli.Command) (terminal.ColorMode, error) {
	return terminal.ParseColorMode(cmd.String("color"))
}
