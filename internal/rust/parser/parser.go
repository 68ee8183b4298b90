// Package parser builds the declaration tree from Rust source text.
//
// Parsing is declaration-level: the parser recognizes item structure,
// attributes and return types, and keeps everything else (signatures,
// bodies, fields, initializer expressions) as verbatim source spans sliced
// by byte offset. That is exactly the depth the condensing pass needs, and
// it keeps untouched code byte-identical on output.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/welf/code-context/internal/rust/ast"
	"github.com/welf/code-context/internal/rust/lexer"
)

// Parse builds the declaration tree for one source file.
func Parse(src string) (*ast.File, error) {
	toks, err := lexer.New(src).Scan()
	if err != nil {
		var lexErr *lexer.Error
		if errors.As(err, &lexErr) {
			return nil, &Diagnostic{Line: lexErr.Line, Col: lexErr.Col, Msg: lexErr.Msg}
		}
		return nil, err
	}
	p := &parser{src: src, toks: toks}
	decls, inner, err := p.parseDeclList(false)
	if err != nil {
		return nil, err
	}
	return &ast.File{InnerAttrs: inner, Decls: decls}, nil
}

type parser struct {
	src  string
	toks []lexer.Token
	pos  int
}

func (p *parser) cur() lexer.Token {
	return p.toks[p.pos]
}

// peek returns the token off positions ahead, clamped to EOF.
func (p *parser) peek(off int) lexer.Token {
	i := p.pos + off
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *parser) bump() lexer.Token {
	tok := p.toks[p.pos]
	if tok.Kind != lexer.EOF {
		p.pos++
	}
	return tok
}

func (p *parser) atEOF() bool {
	return p.cur().Kind == lexer.EOF
}

// span slices verbatim source text with trailing whitespace removed.
func (p *parser) span(from, to int) string {
	return strings.TrimRight(p.src[from:to], " \t\r\n")
}

func errAt(tok lexer.Token, format string, args ...any) *Diagnostic {
	return &Diagnostic{Line: tok.Line, Col: tok.Col, Msg: fmt.Sprintf(format, args...)}
}

/// parseDeclList parses declarations until end of scope: a closing brace
// when terminated is set, otherwise end of file. The closing brace is left
// for the caller. Inner attributes found at declaration positions are
// returned separately for attachment to the enclosing scope.
func (p *parser) parseDeclList(terminated bool) ([]ast.Decl, []ast.Attr, error) {
	var decls []ast.Decl
	var inner []ast.Attr
	for {
		if terminated && p.cur().Kind == lexer.CloseDelim {
			return decls, inner, nil
		}
		if p.atEOF() {
			if terminated {
				return nil, nil, errAt(p.cur(), "unexpected end of file in block")
			}
			return decls, inner, nil
		}
		outer, innerHere, err := p.parseAttrs()
		if err != nil {
			return nil, nil, err
		}
		inner = append(inner, innerHere...)
		if p.atEOF() || (terminated && p.cur().Kind == lexer.CloseDelim) {
			if len(outer) > 0 {
				return nil, nil, errAt(p.cur(), "expected declaration after attributes")
			}
			continue
		}
		d, err := p.parseDecl(outer)
		if err != nil {
			return nil, nil, err
		}
		decls = append(decls, d)
	}
}

// parseDecl parses one declaration, dispatching on the keyword found after
// visibility and qualifiers.
func (p *parser) parseDecl(attrs []ast.Attr) (ast.Decl, error) {
	start := p.cur().Offset
	kw, kwIdx := p.declKeyword()
	switch {
	case kw.IsIdent("fn"):
		return p.parseFn(attrs, start)
	case kw.IsIdent("mod"):
		return p.parseMod(attrs, start)
	case kw.IsIdent("struct"):
		return p.parseStruct(attrs, start)
	case kw.IsIdent("enum"):
		return p.parseEnum(attrs, start)
	case kw.IsIdent("union") && p.tokAt(kwIdx+1).Kind == lexer.Ident:
		return p.parseUnion(attrs, start)
	case kw.IsIdent("trait"):
		return p.parseTrait(attrs, start)
	case kw.IsIdent("impl"):
		return p.parseImpl(attrs, start)
	case kw.IsIdent("type"):
		raw, name, err := p.parseThroughSemi(start, "type")
		if err != nil {
			return nil, err
		}
		return &ast.TypeAlias{Attrs: attrs, Name: name, Raw: raw}, nil
	case kw.IsIdent("const"):
		raw, name, err := p.parseThroughSemi(start, "const")
		if err != nil {
			return nil, err
		}
		return &ast.Const{Attrs: attrs, Name: name, Raw: raw}, nil
	case kw.IsIdent("static"):
		raw, name, err := p.parseThroughSemi(start, "static")
		if err != nil {
			return nil, err
		}
		return &ast.Static{Attrs: attrs, Name: name, Raw: raw}, nil
	case kw.IsIdent("use"):
		raw, _, err := p.parseThroughSemi(start, "use")
		if err != nil {
			return nil, err
		}
		return &ast.Use{Attrs: attrs, Raw: raw}, nil
	case kw.IsIdent("extern"):
		return p.parseExtern(attrs, start)
	case kw.IsIdent("macro") && p.tokAt(kwIdx+1).Kind == lexer.Ident:
		return p.parseDeclMacro(attrs, start)
	default:
		if d, ok, err := p.parseMacroCall(attrs, start); ok || err != nil {
			return d, err
		}
		return p.parseOther(attrs, start)
	}
}

// tokAt returns the token at an absolute index, clamped to EOF.
func (p *parser) tokAt(i int) lexer.Token {
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

// declKeyword looks ahead past visibility and qualifiers to the token that
// decides the declaration kind, returning it with its index. It never
// consumes input.
func (p *parser) declKeyword() (lexer.Token, int) {
	i := p.pos
	if p.tokAt(i).IsIdent("pub") {
		i++
		if p.tokAt(i).Kind == lexer.OpenDelim && p.tokAt(i).Text == "(" {
			depth := 0
			for p.tokAt(i).Kind != lexer.EOF {
				switch p.tokAt(i).Kind {
				case lexer.OpenDelim:
					depth++
				case lexer.CloseDelim:
					depth--
				}
				i++
				if depth == 0 {
					break
				}
			}
		}
	}
	for {
		cur := p.tokAt(i)
		switch {
		case cur.IsIdent("unsafe"), cur.IsIdent("async"), cur.IsIdent("default"), cur.IsIdent("auto"):
			i++
		case cur.IsIdent("const"):
			next := p.tokAt(i + 1)
			if next.IsIdent("fn") || next.IsIdent("async") || next.IsIdent("unsafe") || next.IsIdent("extern") {
				i++
				continue
			}
			return cur, i
		case cur.IsIdent("extern"):
			if p.tokAt(i + 1).IsIdent("fn") {
				i++
				continue
			}
			if p.tokAt(i+1).Kind == lexer.String && p.tokAt(i+2).IsIdent("fn") {
				i += 2
				continue
			}
			return cur, i
		default:
			return cur, i
		}
	}
}
