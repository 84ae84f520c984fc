package gen

import (
	"sort"

	"github.com/agentic-research/themec/internal/theme"
)

// WriteTheme emits the flat .c2theme form of a resolved theme: the metadata
// block followed by every color as name=#aarrggbb, sorted by name so the
// output is byte-stable.
func WriteTheme(p *Printer, t *theme.FlatTheme) error {
	p.Line("@meta")
	p.Linef("author=%s", t.Meta.Author)
	p.Linef("iconset=%s", t.Meta.IconSet)
	p.Line("@colors")

	names := make([]string, 0, len(t.Rules))
	for name := range t.Rules {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		c := t.Rules[name]
		p.Linef("%s=#%02x%02x%02x%02x", name, c.A, c.R, c.G, c.B)
	}
	return p.Err()
}
