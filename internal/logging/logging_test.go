package logging_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mpyw/fmtview/internal/logging"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		debug     bool
		wantDebug bool
	}{
		{name: "default level", debug: false, wantDebug: false},
		{name: "debug level", debug: true, wantDebug: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			l := logging.New(&buf, tt.debug)
			l.Debug("detected", "tag", "json")
			l.Warn("slow", "ms", 12)

			assert.Contains(t, buf.String(), "level=WARN msg=slow ms=12")

			if tt.wantDebug {
				assert.Contains(t, buf.String(), "level=DEBUG msg=detected tag=json")
			} else {
				assert.NotContains(t, buf.String(), "detected")
			}
		})
	}
}

func TestOrDiscard(t *testing.T) {
	t.Parallel()

	assert.NotNil(t, logging.OrDiscard(nil))

	l := logging.Discard()
	assert.Same(t, l, logging.OrDiscard(l))
	assert.False(t, l.Enabled(t.Context(), 12))
}
