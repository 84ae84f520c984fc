package gen

import (
	"github.com/agentic-research/themec/internal/layout"
)

// WriteHeader emits GeneratedTheme.hpp: one named struct per layout
// definition, one anonymous struct member per top-level layout item, and the
// flat color storage behind them.
func WriteHeader(p *Printer, l *layout.Layout) error {
	p.Line("#include <QColor>")
	p.Line("#include <QByteArray>")
	p.Line("")

	p.Line("namespace chatterino::theme {")
	p.Line("class GeneratedTheme {")
	p.Line("public:")
	p.Indent()

	for _, def := range l.Definitions {
		p.Linef("struct %s {", def.Name)
		p.Indent()
		for _, item := range def.Fields {
			writeStructField(p, item)
		}
		p.Dedent()
		p.Line("};")
	}

	for _, s := range l.Items {
		writeStruct(p, s.FieldName, s.Fields)
	}

	p.Line("GeneratedTheme();")
	p.Dedent()
	p.Line("")
	p.Line("protected:")
	p.Indent()
	p.Line("bool setColor(const QByteArray &name, QColor color);")
	p.Line("void reset();")
	p.Line("void applyChanges();")
	p.Dedent()
	p.Line("")
	p.Line("private:")
	p.Indent()
	p.Linef("QColor colors_[%d];", l.CountItems())
	p.Dedent()

	p.Line("};")
	p.Line("}  // namespace chatterino::theme")

	return p.Err()
}

func writeStructField(p *Printer, item layout.Item) {
	switch item := item.(type) {
	case layout.Ref:
		p.Linef("%s %s;", item.Target, item.FieldName)
	case layout.Field:
		p.Linef("QColor %s;", item.Name)
	case layout.Struct:
		writeStruct(p, item.FieldName, item.Fields)
	}
}

func writeStruct(p *Printer, name string, fields []layout.Item) {
	p.Line("")
	p.Line("struct {")
	p.Indent()
	for _, item := range fields {
		writeStructField(p, item)
	}
	p.Dedent()
	p.Linef("} %s;", name)
}
