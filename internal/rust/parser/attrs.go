package parser

import (
	"strconv"
	"strings"

	"github.com/welf/code-context/internal/rust/ast"
	"github.com/welf/code-context/internal/rust/lexer"
)

// parseAttrs collects the documentation markers and attributes at the
// current position. Outer attrs belong to the next declaration; inner
// attrs belong to the enclosing scope and are returned separately.
func (p *parser) parseAttrs() (outer, inner []ast.Attr, err error) {
	for {
		tok := p.cur()
		switch {
		case tok.Kind == lexer.DocComment:
			p.bump()
			attr := docAttr(tok)
			if attr.Inner {
				inner = append(inner, attr)
			} else {
				outer = append(outer, attr)
			}
		case tok.IsPunct("#") && p.peek(1).Kind == lexer.OpenDelim && p.peek(1).Text == "[":
			attr, err := p.parseAttrBody(false)
			if err != nil {
				return nil, nil, err
			}
			outer = append(outer, attr)
		case tok.IsPunct("#") && p.peek(1).IsPunct("!") && p.peek(2).Kind == lexer.OpenDelim && p.peek(2).Text == "[":
			attr, err := p.parseAttrBody(true)
			if err != nil {
				return nil, nil, err
			}
			inner = append(inner, attr)
		default:
			return outer, inner, nil
		}
	}
}

// docAttr converts a doc comment token into an attribute. All four marker
// forms start with three marker bytes; block forms also carry a trailing
// close marker.
func docAttr(tok lexer.Token) ast.Attr {
	text := tok.Text[3:]
	if tok.Block {
		text = strings.TrimSuffix(text, "*/")
	}
	return ast.Attr{Kind: ast.AttrDoc, Inner: tok.Inner, Block: tok.Block, Text: text}
}

// parseAttrBody parses #[...] or #![...] starting at the # token.
func (p *parser) parseAttrBody(inner bool) (ast.Attr, error) {
	hash := p.bump()
	if inner {
		p.bump() // !
	}
	insideFrom := p.pos + 1
	depth := 0
	for {
		tok := p.cur()
		switch tok.Kind {
		case lexer.EOF:
			return ast.Attr{}, errAt(hash, "unterminated attribute")
		case lexer.OpenDelim:
			depth++
		case lexer.CloseDelim:
			depth--
		}
		p.bump()
		if depth == 0 {
			break
		}
	}
	raw := p.src[hash.Offset:p.toks[p.pos-1].End]
	return classifyAttr(p.src, p.toks[insideFrom:p.pos-1], raw, inner), nil
}

// classifyAttr decides the attribute kind from its path and argument
// shape. inside holds the tokens between the square brackets.
func classifyAttr(src string, inside []lexer.Token, raw string, inner bool) ast.Attr {
	attr := ast.Attr{Kind: ast.AttrOther, Inner: inner, Raw: raw}
	if len(inside) == 0 || inside[0].Kind != lexer.Ident {
		return attr
	}
	segs := 1
	name := inside[0].Text
	i := 1
	for i+1 < len(inside) && inside[i].IsPunct("::") && inside[i+1].Kind == lexer.Ident {
		name = inside[i+1].Text
		segs++
		i += 2
	}
	rest := inside[i:]
	if segs != 1 {
		return attr
	}
	switch name {
	case "doc":
		attr.Kind = ast.AttrDoc
		if len(rest) >= 2 && rest[0].IsPunct("=") && rest[1].Kind == lexer.String {
			attr.Text = unescapeString(rest[1].Text)
			attr.Raw = ""
		}
		return attr
	case "derive":
		attr.Kind = ast.AttrDerive
		if len(rest) >= 2 && rest[0].Kind == lexer.OpenDelim && rest[0].Text == "(" {
			attr.Traits = deriveTraits(src, rest)
		}
		return attr
	case "cfg":
		attr.Kind = ast.AttrCfg
		if len(rest) >= 2 && rest[0].Kind == lexer.OpenDelim && rest[0].Text == "(" {
			attr.Predicate = strings.TrimSpace(src[rest[0].End:rest[len(rest)-1].Offset])
		}
		return attr
	case "test":
		attr.Kind = ast.AttrTest
		return attr
	default:
		return attr
	}
}

// deriveTraits splits the parenthesized derive list on top-level commas.
func deriveTraits(src string, rest []lexer.Token) []string {
	group := rest[1 : len(rest)-1]
	var traits []string
	depth := 0
	from := 0
	flush := func(to int) {
		if from < to {
			traits = append(traits, strings.TrimSpace(src[group[from].Offset:group[to-1].End]))
		}
		from = to + 1
	}
	for i, tok := range group {
		switch {
		case tok.Kind == lexer.OpenDelim:
			depth++
		case tok.Kind == lexer.CloseDelim:
			depth--
		case tok.IsPunct(",") && depth == 0:
			flush(i)
		}
	}
	flush(len(group))
	return traits
}

// unescapeString decodes a Rust string literal, including raw forms.
func unescapeString(lit string) string {
	if r, ok := strings.CutPrefix(lit, "r"); ok || strings.HasPrefix(lit, "br") || strings.HasPrefix(lit, "cr") {
		if !ok {
			r = lit[2:]
		}
		r = strings.TrimLeft(r, "#")
		r = strings.TrimRight(r, "#")
		return strings.TrimSuffix(strings.TrimPrefix(r, `"`), `"`)
	}
	s := strings.TrimPrefix(strings.TrimPrefix(lit, "b"), "c")
	if len(s) >= 2 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			continue
		}
		i++
		if i >= len(s) {
			break
		}
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '0':
			b.WriteByte(0)
		case 'x':
			if i+2 < len(s) {
				if v, err := strconv.ParseUint(s[i+1:i+3], 16, 8); err == nil {
					b.WriteByte(byte(v))
					i += 2
					continue
				}
			}
			b.WriteByte(s[i])
		case 'u':
			if i+1 < len(s) && s[i+1] == '{' {
				if end := strings.IndexByte(s[i:], '}'); end > 0 {
					if v, err := strconv.ParseUint(s[i+2:i+end], 16, 32); err == nil {
						b.WriteRune(rune(v))
						i += end
						continue
					}
				}
			}
			b.WriteByte(s[i])
		case '\n':
			for i+1 < len(s) && (s[i+1] == ' ' || s[i+1] == '\t' || s[i+1] == '\n' || s[i+1] == '\r') {
				i++
			}
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
