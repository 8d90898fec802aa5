// Package passphrase reads the hand-off passphrase interactively.
package passphrase

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"

	"github.com/mpyw/fmtview/internal/cli/colors"
	"github.com/mpyw/fmtview/internal/cli/output"
	"github.com/mpyw/fmtview/internal/cli/terminal"
)

var (
	// ErrPassphraseMismatch is returned when confirmation doesn't match.
	ErrPassphraseMismatch = errors.New("passphrases do not match")
	// ErrCancelled is returned when user cancels the operation.
	ErrCancelled = errors.New("operation cancelled")
)

// Prompter handles passphrase input prompts. Prompts go to Stderr so that
// Stdout stays clean for formatted output.
type Prompter struct {
	Stdin  io.Reader
	Stderr io.Writer

	buf *bufio.Reader
}

// PromptForEncrypt asks for a new passphrase and its confirmation.
// An empty answer stores the selection unencrypted after the user agrees;
// otherwise ErrCancelled is returned.
func (p *Prompter) PromptForEncrypt() (string, error) {
	pass, err := p.ask("Enter passphrase for the hand-off file (empty for plain text): ")
	if err != nil {
		return "", err
	}

	if pass == "" {
		if !p.confirmPlainText() {
			return "", ErrCancelled
		}

		return "", nil
	}

	confirm, err := p.ask("Confirm passphrase: ")
	if err != nil {
		return "", err
	}

	if pass != confirm {
		return "", ErrPassphraseMismatch
	}

	return pass, nil
}

// PromptForDecrypt asks for the passphrase of an encrypted hand-off file.
func (p *Prompter) PromptForDecrypt() (string, error) {
	return p.ask("Enter passphrase for the hand-off file: ")
}

func (p *Prompter) ask(prompt string) (string, error) {
	output.Print(p.Stderr, prompt)

	pass, err := p.readPassword()
	if err != nil {
		return "", fmt.Errorf("failed to read passphrase: %w", err)
	}

	output.Println(p.Stderr, "")

	return pass, nil
}

func (p *Prompter) confirmPlainText() bool {
	output.Warning(p.Stderr, "The selection will be stored as plain text on disk.")
	output.Printf(p.Stderr, "%s Continue without encryption? [y/N]: ", colors.Warning("?"))

	response, err := p.reader().ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))

	return response == "y" || response == "yes"
}

// readPassword reads without echo from a terminal and falls back to a line read.
func (p *Prompter) readPassword() (string, error) {
	if f, ok := p.Stdin.(terminal.Fder); ok && terminal.IsTTY(f.Fd()) {
		pass, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}

		return string(pass), nil
	}

	line, err := p.reader().ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}

	return strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"), nil
}

// reader keeps one buffered reader so consecutive prompts share the stream.
func (p *Prompter) reader() *bufio.Reader {
	if p.buf == nil {
		p.buf = bufio.NewReader(p.Stdin)
	}

	return p.buf
}
