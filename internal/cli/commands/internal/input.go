package internal

import (
	"fmt"
	"io"
	"os"

	"github.com/mpyw/fmtview/internal/usecase/document"
)

// StdinName names the source read from standard input.
const StdinName = "<stdin>"

// ReadSources reads every path in args, or stdin when args is empty. "-" also
// stands for stdin.
func ReadSources(stdin io.Reader, args []string) ([]document.Source, error) {
	if len(args) == 0 {
		args = []string{"-"}
	}

	sources := make([]document.Source, 0, len(args))

	for _, arg := range args {
		src, err := readSource(stdin, arg)
		if err != nil {
			return nil, err
		}

		sources = append(sources, src)
	}

	return sources, nil
}

func readSource(stdin io.Reader, path string) (document.Source, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return document.Source{}, fmt.Errorf("failed to read stdin: %w", err)
		}

		return document.Source{Name: StdinName, Text: string(data)}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return document.Source{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return document.Source{Name: path, Text: string(data)}, nil
}
