package open_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpyw/fmtview/internal/format"
	"github.com/mpyw/fmtview/internal/testutil"
	"github.com/mpyw/fmtview/internal/usecase/selection"
)

func TestCommand(t *testing.T) {
	t.Parallel()

	t.Run("stdin", func(t *testing.T) {
		t.Parallel()

		cli := testutil.NewCLI(t)

		res := cli.Run(t, `<root><item>value</item></root>`, "open", "--color=never")
		require.NoError(t, res.Err)
		assert.Equal(t, "<root>\n  <item>value</item>\n</root>\n", res.Stdout)
		assert.NoFileExists(t, cli.HandoffPath)
	})

	t.Run("file", func(t *testing.T) {
		t.Parallel()

		cli := testutil.NewCLI(t)
		path := cli.WriteFile(t, "doc.json", `{"l1":{"l2":{"l3":{"l4":{"l5":true}}}}}`)

		res := cli.Run(t, "", "open", "--color=never", path)
		require.NoError(t, res.Err)
		assert.Contains(t, res.Stdout, "\n          \"l5\": true\n")
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()

		res := testutil.NewCLI(t).Run(t, `[1,]`, "open")
		require.ErrorIs(t, res.Err, format.ErrInvalidJSON)
		assert.Empty(t, res.Stdout)
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		res := testutil.NewCLI(t).Run(t, "", "open")
		require.ErrorIs(t, res.Err, selection.ErrEmptySelection)
	})

	t.Run("too many arguments", func(t *testing.T) {
		t.Parallel()

		res := testutil.NewCLI(t).Run(t, "", "open", "a", "b")
		require.Error(t, res.Err)
		assert.Contains(t, res.Err.Error(), "usage: fmtview open [FILE]")
	})
}
