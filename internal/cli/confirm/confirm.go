// Package confirm provides confirmation prompts for destructive operations.
package confirm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mpyw/fmtview/internal/cli/colors"
	"github.com/mpyw/fmtview/internal/cli/output"
)

// Prompter handles confirmation prompts.
type Prompter struct {
	Stdin  io.Reader
	Stderr io.Writer
}

// Confirm displays message as a yes/no question and reports whether the user
// answered yes. If skipConfirm is true, it returns true without prompting.
func (p *Prompter) Confirm(message string, skipConfirm bool) (bool, error) {
	if skipConfirm {
		return true, nil
	}

	output.Printf(p.Stderr, "%s %s [y/N]: ", colors.Warning("?"), message)

	return p.answer()
}

// ConfirmDiscard warns that what will be lost cannot be recovered and asks to continue.
func (p *Prompter) ConfirmDiscard(what string, skipConfirm bool) (bool, error) {
	if skipConfirm {
		return true, nil
	}

	output.Printf(p.Stderr, "%s This will discard %s\n", colors.Error("!"), what)

	return p.Confirm("Continue?", false)
}

func (p *Prompter) answer() (bool, error) {
	response, err := bufio.NewReader(p.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read response: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))

	return response == "y" || response == "yes", nil
}
