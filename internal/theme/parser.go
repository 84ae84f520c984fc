package theme

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mazznoer/csscolorparser"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// ParseError is a fatal style-sheet error with its source position
// (1-based line and column).
type ParseError struct {
	Line   int
	Column int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

// Parse reads a theme style sheet: a required @chatterino metadata block, an
// optional :root block of --custom colors, and named rule blocks containing
// color declarations and nested @nest blocks.
//
// Structural problems (duplicate blocks, missing metadata) are fatal and
// reported as *ParseError. A single malformed declaration is skipped with a
// warning instead, so one bad color doesn't reject the whole theme.
func Parse(source string, log *zap.Logger) (*Theme, error) {
	if log == nil {
		log = zap.NewNop()
	}
	in := parse.NewInputString(source)
	p := &parser{in: in, lex: css.NewLexer(in), log: log}
	return p.stylesheet()
}

type parser struct {
	in  *parse.Input
	lex *css.Lexer
	log *zap.Logger

	buf    token
	buffed bool
}

type token struct {
	tt   css.TokenType
	data string
	off  int
}

func (p *parser) next() token {
	if p.buffed {
		p.buffed = false
		return p.buf
	}
	for {
		off := p.in.Offset()
		tt, data := p.lex.Next()
		if tt == css.WhitespaceToken || tt == css.CommentToken {
			continue
		}
		return token{tt: tt, data: string(data), off: off}
	}
}

func (p *parser) unread(tok token) {
	p.buf = tok
	p.buffed = true
}

func (p *parser) errAt(off int, format string, args ...any) error {
	line, col, _ := parse.Position(bytes.NewReader(p.in.Bytes()), off)
	return &ParseError{Line: line, Column: col, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) stylesheet() (*Theme, error) {
	var (
		meta   *Meta
		colors CustomColors
		rules  = make(RuleMap)
	)

	for {
		tok := p.next()
		switch {
		case tok.tt == css.ErrorToken:
			if err := p.lex.Err(); !errors.Is(err, io.EOF) {
				return nil, p.errAt(tok.off, "%v", err)
			}
			if meta == nil {
				return nil, p.errAt(tok.off, "expected a @chatterino metadata block")
			}
			if colors == nil {
				colors = make(CustomColors)
			}
			return &Theme{Meta: *meta, Colors: colors, Rules: rules}, nil

		case tok.tt == css.AtKeywordToken && strings.EqualFold(tok.data, "@chatterino"):
			if meta != nil {
				return nil, p.errAt(tok.off, "found duplicate @chatterino metadata block")
			}
			m, err := p.metaBlock(tok.off)
			if err != nil {
				return nil, err
			}
			meta = m

		case tok.tt == css.ColonToken:
			name := p.next()
			if name.tt != css.IdentToken || !strings.EqualFold(name.data, "root") {
				return nil, p.errAt(name.off, "expected ':root'")
			}
			if colors != nil {
				return nil, p.errAt(tok.off, "found duplicate :root block")
			}
			c, err := p.rootBlock()
			if err != nil {
				return nil, err
			}
			colors = c

		case tok.tt == css.IdentToken:
			if _, dup := rules[tok.data]; dup {
				return nil, p.errAt(tok.off, "found duplicate block (%q)", tok.data)
			}
			if err := p.expect(css.LeftBraceToken, "{"); err != nil {
				return nil, err
			}
			nested, err := p.ruleBlock()
			if err != nil {
				return nil, err
			}
			rules[tok.data] = Rule{Nested: nested}

		default:
			return nil, p.errAt(tok.off, "unexpected %q", tok.data)
		}
	}
}

func (p *parser) expect(tt css.TokenType, what string) error {
	tok := p.next()
	if tok.tt != tt {
		return p.errAt(tok.off, "expected %q, found %q", what, tok.data)
	}
	return nil
}

// metaBlock parses `{ author: "..."; icon-set: "..."; }`. Both entries are
// required; unknown entries are skipped with a warning.
func (p *parser) metaBlock(blockOff int) (*Meta, error) {
	if err := p.expect(css.LeftBraceToken, "{"); err != nil {
		return nil, err
	}

	var author, iconSet *string
	for {
		tok := p.next()
		switch tok.tt {
		case css.RightBraceToken:
			if author == nil {
				return nil, p.errAt(blockOff, "missing 'author' in meta")
			}
			if iconSet == nil {
				return nil, p.errAt(blockOff, "missing 'icon-set' in meta")
			}
			return &Meta{Author: *author, IconSet: *iconSet}, nil

		case css.ErrorToken:
			return nil, p.errAt(tok.off, "unexpected end of input in @chatterino block")

		case css.IdentToken:
			value, ok := p.metaDeclaration(tok)
			if !ok {
				continue
			}
			switch {
			case strings.EqualFold(tok.data, "author"):
				author = &value
			case strings.EqualFold(tok.data, "icon-set"):
				iconSet = &value
			default:
				p.warnSkip(tok, "unexpected metadata entry")
			}

		default:
			p.warnSkip(tok, "expected a metadata entry")
		}
	}
}

// metaDeclaration parses `: "value" ;` after a metadata name. On any
// mismatch it skips the declaration and reports false.
func (p *parser) metaDeclaration(name token) (string, bool) {
	if tok := p.next(); tok.tt != css.ColonToken {
		p.unread(tok)
		p.warnSkip(name, "expected ':'")
		return "", false
	}
	tok := p.next()
	if tok.tt != css.StringToken {
		p.unread(tok)
		p.warnSkip(name, "expected a string")
		return "", false
	}
	value := unquote(tok.data)
	if end := p.next(); end.tt != css.SemicolonToken {
		p.unread(end)
	}
	return value, true
}

// rootBlock parses `{ --name: <color>; ... }` after `:root`.
func (p *parser) rootBlock() (CustomColors, error) {
	if err := p.expect(css.LeftBraceToken, "{"); err != nil {
		return nil, err
	}

	colors := make(CustomColors)
	for {
		tok := p.next()
		switch tok.tt {
		case css.RightBraceToken:
			return colors, nil
		case css.ErrorToken:
			return nil, p.errAt(tok.off, "unexpected end of input in :root block")
		case css.IdentToken, css.CustomPropertyNameToken:
			if c, ok := p.colorDeclaration(tok); ok {
				colors[tok.data] = c
			}
		default:
			p.warnSkip(tok, "expected a custom color declaration")
		}
	}
}

// ruleBlock parses the body of a rule block after its `{`: declarations
// (`name: <color or var(--ref)>;`) and nested `@nest name { ... }` blocks.
func (p *parser) ruleBlock() (RuleMap, error) {
	rules := make(RuleMap)
	for {
		tok := p.next()
		switch {
		case tok.tt == css.RightBraceToken:
			return rules, nil

		case tok.tt == css.ErrorToken:
			return nil, p.errAt(tok.off, "unexpected end of input in rule block")

		case tok.tt == css.AtKeywordToken && strings.EqualFold(tok.data, "@nest"):
			name := p.next()
			if name.tt != css.IdentToken {
				return nil, p.errAt(name.off, "expected a name after @nest")
			}
			if err := p.expect(css.LeftBraceToken, "{"); err != nil {
				return nil, err
			}
			nested, err := p.ruleBlock()
			if err != nil {
				return nil, err
			}
			rules[name.data] = Rule{Nested: nested}

		case tok.tt == css.IdentToken || tok.tt == css.CustomPropertyNameToken:
			if v, ok := p.valueDeclaration(tok); ok {
				rules[tok.data] = Rule{Value: v}
			}

		default:
			p.warnSkip(tok, "expected a declaration or @nest block")
		}
	}
}

// valueDeclaration parses `: var(--ref) ;` or `: <color> ;`.
func (p *parser) valueDeclaration(name token) (*Value, bool) {
	if tok := p.next(); tok.tt != css.ColonToken {
		p.unread(tok)
		p.warnSkip(name, "expected ':'")
		return nil, false
	}

	tok := p.next()
	if tok.tt == css.FunctionToken && strings.EqualFold(tok.data, "var(") {
		ref := p.next()
		if ref.tt != css.IdentToken && ref.tt != css.CustomPropertyNameToken {
			p.unread(ref)
			p.warnSkip(name, "expected a custom color name in var()")
			return nil, false
		}
		if end := p.next(); end.tt != css.RightParenthesisToken {
			p.unread(end)
			p.warnSkip(name, "expected ')'")
			return nil, false
		}
		if end := p.next(); end.tt != css.SemicolonToken {
			p.unread(end)
		}
		return &Value{Ref: ref.data}, true
	}

	p.unread(tok)
	c, ok := p.colorValue(name)
	if !ok {
		return nil, false
	}
	return &Value{Color: c}, true
}

// colorDeclaration parses `: <color> ;` after a :root custom color name.
func (p *parser) colorDeclaration(name token) (Color, bool) {
	if tok := p.next(); tok.tt != css.ColonToken {
		p.unread(tok)
		p.warnSkip(name, "expected ':'")
		return Color{}, false
	}
	return p.colorValue(name)
}

// colorValue consumes value tokens up to the next ';' or '}' and parses
// them as a CSS color literal.
func (p *parser) colorValue(name token) (Color, bool) {
	var raw strings.Builder
	for {
		tok := p.next()
		if tok.tt == css.SemicolonToken || tok.tt == css.ErrorToken {
			break
		}
		if tok.tt == css.RightBraceToken {
			p.unread(tok)
			break
		}
		raw.WriteString(tok.data)
	}

	parsed, err := csscolorparser.Parse(raw.String())
	if err != nil {
		p.log.Warn("skipping declaration with invalid color",
			zap.String("property", name.data),
			zap.String("value", raw.String()),
			zap.Error(err))
		return Color{}, false
	}
	r, g, b, a := parsed.RGBA255()
	return Color{R: r, G: g, B: b, A: a}, true
}

// warnSkip reports an invalid declaration and consumes tokens up to the next
// ';' (inclusive) or '}' (left for the caller), mirroring CSS error
// recovery.
func (p *parser) warnSkip(at token, reason string) {
	line, col, _ := parse.Position(bytes.NewReader(p.in.Bytes()), at.off)
	p.log.Warn("skipping invalid declaration",
		zap.String("reason", reason),
		zap.String("near", at.data),
		zap.Int("line", line),
		zap.Int("column", col))
	for {
		tok := p.next()
		switch tok.tt {
		case css.SemicolonToken:
			return
		case css.RightBraceToken, css.ErrorToken:
			p.unread(tok)
			return
		}
	}
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
