package passphrase_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpyw/fmtview/internal/cli/passphrase"
)

func TestPrompter_PromptForEncrypt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      string
		want       string
		wantErr    error
		wantStderr string
	}{
		{name: "confirmed", input: "secret\nsecret\n", want: "secret", wantStderr: "Confirm passphrase"},
		{name: "crlf", input: "secret\r\nsecret\r\n", want: "secret"},
		{name: "mismatch", input: "secret1\nsecret2\n", wantErr: passphrase.ErrPassphraseMismatch},
		{name: "empty accepted as plain text", input: "\ny\n", want: "", wantStderr: "plain text"},
		{name: "empty declined", input: "\nn\n", wantErr: passphrase.ErrCancelled},
		{name: "empty without answer", input: "\n", wantErr: passphrase.ErrCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var stderr bytes.Buffer

			p := &passphrase.Prompter{Stdin: strings.NewReader(tt.input), Stderr: &stderr}

			got, err := p.PromptForEncrypt()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, stderr.String(), tt.wantStderr)
		})
	}
}

func TestPrompter_PromptForDecrypt(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer

	p := &passphrase.Prompter{Stdin: strings.NewReader("mypassword\n"), Stderr: &stderr}

	got, err := p.PromptForDecrypt()
	require.NoError(t, err)
	assert.Equal(t, "mypassword", got)
	assert.Contains(t, stderr.String(), "Enter passphrase for the hand-off file")
}

func TestPrompter_PromptForDecrypt_EOF(t *testing.T) {
	t.Parallel()

	p := &passphrase.Prompter{Stdin: strings.NewReader(""), Stderr: &bytes.Buffer{}}

	got, err := p.PromptForDecrypt()
	require.NoError(t, err)
	assert.Empty(t, got)
}
