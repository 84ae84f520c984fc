package gen

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrinterIndentation(t *testing.T) {
	var buf strings.Builder
	p := NewPrinter(&buf)

	p.Line("a {")
	p.Indent()
	p.Linef("x = %d;", 42)
	p.Line("")
	p.Indent()
	p.Line("y;")
	p.Dedent()
	p.Dedent()
	p.Line("}")

	require.NoError(t, p.Err())
	assert.Equal(t, "a {\n\tx = 42;\n\n\t\ty;\n}\n", buf.String())
}

func TestPrinterDedentBelowZeroPanics(t *testing.T) {
	p := NewPrinter(&strings.Builder{})
	assert.Panics(t, func() { p.Dedent() })
}

type failWriter struct{ err error }

func (w failWriter) Write(p []byte) (int, error) { return 0, w.err }

func TestPrinterStickyError(t *testing.T) {
	werr := errors.New("disk full")
	p := NewPrinter(failWriter{err: werr})

	p.Line("first")
	p.Line("second")

	require.ErrorIs(t, p.Err(), werr)
}
