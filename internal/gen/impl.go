package gen

import (
	"fmt"

	"github.com/agentic-research/themec/internal/layout"
	"github.com/agentic-research/themec/internal/theme"
	"github.com/agentic-research/themec/internal/trie"
)

// WriteImpl emits GeneratedTheme.cpp: the constructor, applyChanges binding
// the nested structs to the colors_ array, reset applying the default theme,
// setColor, and the getDataIndex key matcher lowered from the trie of all
// (dotted path, array index) pairs.
func WriteImpl(p *Printer, l *layout.Layout, t *theme.FlatTheme) error {
	p.Line(`#include "GeneratedTheme.hpp"`)
	p.Line("#include <QColor>")
	p.Line("#include <QString>")
	p.Line("#include <cstring>")
	p.Line("")

	p.Line("namespace {")
	p.Indent()
	p.Line("int getDataIndex(const QLatin1String &name);")
	p.Dedent()
	p.Line("} //  namespace")

	p.Line("namespace chatterino::theme {")

	p.Line("GeneratedTheme::GeneratedTheme() {")
	p.Indent()
	p.Line("this->reset();")
	p.Line("this->applyChanges();")
	p.Dedent()
	p.Line("}")

	flat := l.Flatten()

	p.Line("void GeneratedTheme::applyChanges() {")
	p.Indent()
	p.Line("const auto d = [this](size_t i) -> const QColor& { return this->colors_[i]; };")
	for _, s := range flat {
		p.Linef("this->%s = {", s.Name)
		p.Indent()
		for _, field := range s.Fields {
			writeApplyField(p, field)
		}
		p.Dedent()
		p.Line("};")
	}
	p.Line("this->reset();")
	p.Dedent()
	p.Line("}")

	p.Line("void GeneratedTheme::reset() {")
	p.Indent()
	tr := trie.New()
	for _, s := range flat {
		for _, field := range s.Fields {
			if err := writeResetField(p, tr, s.Name, t, field); err != nil {
				return err
			}
		}
	}
	p.Dedent()
	p.Line("}")

	p.Line("bool GeneratedTheme::setColor(const QLatin1String &name, QColor color) {")
	p.Indent()
	p.Line("auto idx = getDataIndex(name);")
	p.Line("if (idx < 0) return false;")
	p.Line("this->colors_[idx] = color;")
	p.Line("return true;")
	p.Dedent()
	p.Line("}")

	p.Line("} //  namespace chatterino::theme")

	p.Line("namespace {")
	WriteKeyMatcher(p, tr)
	p.Line("} //  namespace")

	return p.Err()
}

func writeApplyField(p *Printer, item layout.FlatItem) {
	switch item := item.(type) {
	case layout.FlatField:
		p.Linef("d(%d),", item.ID)
	case layout.FlatStruct:
		p.Line("{")
		p.Indent()
		for _, field := range item.Fields {
			writeApplyField(p, field)
		}
		p.Dedent()
		p.Line("},")
	}
}

// writeResetField emits the default color assignment for one field and
// inserts its (path, id) pair into the key trie.
func writeResetField(p *Printer, tr *trie.Trie, prefix string, t *theme.FlatTheme, item layout.FlatItem) error {
	switch item := item.(type) {
	case layout.FlatField:
		path := theme.CombinePath(prefix, item.Name)
		color, ok := t.Rules[path]
		if !ok {
			return fmt.Errorf("gen: no rule for %q", path)
		}
		p.Linef("this->colors_[%d] = {%d, %d, %d, %d};", item.ID, color.R, color.G, color.B, color.A)
		tr.Insert([]byte(path), item.ID)
	case layout.FlatStruct:
		prefix := theme.CombinePath(prefix, item.Name)
		for _, field := range item.Fields {
			if err := writeResetField(p, tr, prefix, t, field); err != nil {
				return err
			}
		}
	}
	return nil
}
