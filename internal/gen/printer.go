package gen

import (
	"fmt"
	"io"
	"strings"
)

// Printer is an indentation-aware line writer for generated source. Write
// errors are sticky, like bufio.Writer: generators call Line/Linef freely
// and check Err once at the end.
type Printer struct {
	w      io.Writer
	indent int
	err    error
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Indent increases the indentation of subsequent lines by one tab.
func (p *Printer) Indent() {
	p.indent++
}

// Dedent undoes one Indent. Dedenting past zero is a generator bug.
func (p *Printer) Dedent() {
	if p.indent == 0 {
		panic("gen: dedent below zero")
	}
	p.indent--
}

// Line writes s as a single indented line. An empty s produces a bare
// newline with no indentation.
func (p *Printer) Line(s string) {
	if p.err != nil {
		return
	}
	if s == "" {
		_, p.err = io.WriteString(p.w, "\n")
		return
	}
	if _, err := io.WriteString(p.w, strings.Repeat("\t", p.indent)); err != nil {
		p.err = err
		return
	}
	if _, err := io.WriteString(p.w, s); err != nil {
		p.err = err
		return
	}
	_, p.err = io.WriteString(p.w, "\n")
}

// Linef formats and writes a single indented line.
func (p *Printer) Linef(format string, args ...any) {
	p.Line(fmt.Sprintf(format, args...))
}

// Err returns the first write error encountered, if any.
func (p *Printer) Err() error {
	return p.err
}
