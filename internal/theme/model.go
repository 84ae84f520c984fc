package theme

import (
	"fmt"
	"strings"
)

// Color is an 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

// Meta is the contents of the @chatterino metadata block.
type Meta struct {
	Author  string
	IconSet string
}

// Value is a declaration value: either a literal color or a var() reference
// to a :root custom color.
type Value struct {
	Ref   string // custom color name including the leading --, empty for literals
	Color Color
}

// Rule is one entry of a rule block: a value, or a nested block.
type Rule struct {
	Value  *Value
	Nested RuleMap
}

// RuleMap maps rule names to rules within one block.
type RuleMap map[string]Rule

// CustomColors are the --name colors declared in :root.
type CustomColors map[string]Color

// Theme is a parsed style sheet before reference resolution.
type Theme struct {
	Meta   Meta
	Colors CustomColors
	Rules  RuleMap
}

// FlatTheme maps normalized dotted paths to resolved colors.
type FlatTheme struct {
	Meta  Meta
	Rules map[string]Color
}

// Flatten resolves var() references against the custom colors and collapses
// the rule tree into dotted paths.
func (t *Theme) Flatten() (*FlatTheme, error) {
	flat := &FlatTheme{Meta: t.Meta, Rules: make(map[string]Color)}
	if err := flattenRules(flat.Rules, "", t.Rules, t.Colors); err != nil {
		return nil, err
	}
	return flat, nil
}

func flattenRules(out map[string]Color, prefix string, rules RuleMap, colors CustomColors) error {
	for name, rule := range rules {
		switch {
		case rule.Value != nil:
			c := rule.Value.Color
			if ref := rule.Value.Ref; ref != "" {
				var ok bool
				if c, ok = colors[ref]; !ok {
					return fmt.Errorf("theme: %q was used but never defined anywhere", ref)
				}
			}
			out[CombinePath(prefix, name)] = c
		default:
			if err := flattenRules(out, CombinePath(prefix, name), rule.Nested, colors); err != nil {
				return err
			}
		}
	}
	return nil
}

// CombinePath joins a dotted path prefix with a raw segment name,
// lowercasing it and dropping '-' and '_' so that layout field names and
// style-sheet rule names meet in one key space.
func CombinePath(prefix, suffix string) string {
	var b strings.Builder
	b.Grow(len(prefix) + 1 + len(suffix))
	if prefix != "" {
		b.WriteString(prefix)
		b.WriteByte('.')
	}
	for i := 0; i < len(suffix); i++ {
		switch c := suffix[i]; {
		case c == '-' || c == '_':
		case c >= 'A' && c <= 'Z':
			b.WriteByte(c + ('a' - 'A'))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
