package file

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"
)

// compressThreshold is the serialized slot size above which it is stored xz-compressed.
const compressThreshold = 64 << 10

// xzMagic starts every xz stream. Serialized JSON never does.
var xzMagic = []byte{0xFD, '7', 'z', 'X', 'Z', 0x00} //nolint:gochecknoglobals // constant byte sequence

func compress(data []byte) ([]byte, error) {
	if len(data) <= compressThreshold {
		return data, nil
	}

	var buf bytes.Buffer

	w, err := xz.NewWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("failed to compress hand-off slot: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("failed to compress hand-off slot: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to compress hand-off slot: %w", err)
	}

	return buf.Bytes(), nil
}

func decompress(data []byte) ([]byte, error) {
	if !bytes.HasPrefix(data, xzMagic) {
		return data, nil
	}

	r, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decompress hand-off file: %w", err)
	}

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress hand-off file: %w", err)
	}

	return out, nil
}
