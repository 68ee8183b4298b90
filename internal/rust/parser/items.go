package parser

import (
	"strings"

	"github.com/welf/code-context/internal/rust/ast"
	"github.com/welf/code-context/internal/rust/lexer"
)

// skipBalanced advances past the delimiter under the cursor through its
// matching closer.
func (p *parser) skipBalanced() error {
	open := p.cur()
	depth := 0
	for {
		tok := p.cur()
		switch tok.Kind {
		case lexer.EOF:
			return errAt(open, "unbalanced %q", open.Text)
		case lexer.OpenDelim:
			depth++
		case lexer.CloseDelim:
			depth--
		}
		p.bump()
		if depth == 0 {
			return nil
		}
	}
}

// scanToSemi advances to the semicolon that ends the current declaration
// and returns the verbatim span from start through that semicolon.
func (p *parser) scanToSemi(start int) (string, error) {
	depth := 0
	for {
		tok := p.cur()
		switch tok.Kind {
		case lexer.EOF:
			return "", errAt(tok, "missing semicolon")
		case lexer.OpenDelim:
			depth++
		case lexer.CloseDelim:
			if depth == 0 {
				return "", errAt(tok, "unexpected %q", tok.Text)
			}
			depth--
		}
		p.bump()
		if tok.IsPunct(";") && depth == 0 {
			return p.src[start:tok.End], nil
		}
	}
}

// parseThroughSemi parses a declaration that runs through a semicolon,
// extracting the identifier that follows the keyword.
func (p *parser) parseThroughSemi(start int, kw string) (raw, name string, err error) {
	for i := p.pos; i < len(p.toks); i++ {
		if !p.toks[i].IsIdent(kw) {
			continue
		}
		j := i + 1
		for p.tokAt(j).IsIdent("mut") {
			j++
		}
		if p.tokAt(j).Kind == lexer.Ident {
			name = p.tokAt(j).Text
		}
		break
	}
	raw, err = p.scanToSemi(start)
	return raw, name, err
}

// advanceTo consumes tokens until the given keyword is under the cursor.
// Visibility and qualifiers land inside the declaration's verbatim span.
func (p *parser) advanceTo(kw string) error {
	for !p.cur().IsIdent(kw) {
		if p.atEOF() {
			return errAt(p.cur(), "expected %s", kw)
		}
		p.bump()
	}
	return nil
}

func (p *parser) expectName(what string) (lexer.Token, error) {
	tok := p.cur()
	if tok.Kind != lexer.Ident {
		return tok, errAt(tok, "expected %s name, found %s", what, tok.Kind)
	}
	p.bump()
	return tok, nil
}

func (p *parser) parseFn(attrs []ast.Attr, start int) (ast.Decl, error) {
	name, sig, ret, body, err := p.parseFnParts(start)
	if err != nil {
		return nil, err
	}
	return &ast.Fn{Attrs: attrs, Name: name, Sig: sig, Return: ret, Body: body}, nil
}

// parseFnParts parses one function from the current position: the verbatim
// signature, the structured return type and the body. A semicolon instead
// of a body yields a nil block, as in required trait methods.
func (p *parser) parseFnParts(start int) (string, string, ast.Type, *ast.Block, error) {
	if err := p.advanceTo("fn"); err != nil {
		return "", "", nil, nil, err
	}
	p.bump()
	nameTok, err := p.expectName("function")
	if err != nil {
		return "", "", nil, nil, err
	}

	depth, angle := 0, 0
	retFrom, retTo := -1, -1
	whereSeen := false
	sigEnd := -1
	var body *ast.Block
	for sigEnd < 0 {
		tok := p.cur()
		switch {
		case tok.Kind == lexer.EOF:
			return "", "", nil, nil, errAt(nameTok, "function %s has no body", nameTok.Text)
		case tok.Kind == lexer.OpenDelim && tok.Text == "{" && depth == 0 && angle == 0:
			if retFrom >= 0 && retTo < 0 {
				retTo = p.pos
			}
			sigEnd = tok.Offset
			if err := p.skipBalanced(); err != nil {
				return "", "", nil, nil, err
			}
			body = &ast.Block{Raw: p.src[tok.Offset:p.toks[p.pos-1].End]}
		case tok.Kind == lexer.OpenDelim:
			depth++
			p.bump()
		case tok.Kind == lexer.CloseDelim:
			if depth == 0 {
				return "", "", nil, nil, errAt(tok, "unexpected %q in signature of %s", tok.Text, nameTok.Text)
			}
			depth--
			p.bump()
		case tok.IsPunct(";") && depth == 0:
			if retFrom >= 0 && retTo < 0 {
				retTo = p.pos
			}
			sigEnd = tok.Offset
			p.bump()
		case tok.IsPunct("->") && depth == 0 && angle == 0:
			// Only the first arrow starts the return type. Later ones
			// sit inside it, as in fn pointers, or inside Fn bounds of
			// the where clause.
			p.bump()
			if retFrom < 0 && !whereSeen {
				retFrom = p.pos
			}
		case tok.IsIdent("where") && depth == 0 && angle == 0:
			if retFrom >= 0 && retTo < 0 {
				retTo = p.pos
			}
			whereSeen = true
			p.bump()
		case tok.IsPunct("<") && depth == 0:
			angle++
			p.bump()
		case tok.IsPunct(">") && depth == 0:
			if angle > 0 {
				angle--
			}
			p.bump()
		default:
			p.bump()
		}
	}
	var ret ast.Type
	if retFrom >= 0 {
		ret = typeFromTokens(p.src, p.toks[retFrom:retTo])
	}
	return nameTok.Text, p.span(start, sigEnd), ret, body, nil
}

func (p *parser) parseMod(attrs []ast.Attr, start int) (ast.Decl, error) {
	if err := p.advanceTo("mod"); err != nil {
		return nil, err
	}
	p.bump()
	nameTok, err := p.expectName("module")
	if err != nil {
		return nil, err
	}
	header := p.src[start:nameTok.End]
	switch {
	case p.cur().IsPunct(";"):
		p.bump()
		return &ast.Mod{Attrs: attrs, Name: nameTok.Text, Header: header}, nil
	case p.cur().Kind == lexer.OpenDelim && p.cur().Text == "{":
		p.bump()
		items, inner, err := p.parseDeclList(true)
		if err != nil {
			return nil, err
		}
		if err := p.expectClose("}", nameTok); err != nil {
			return nil, err
		}
		return &ast.Mod{
			Attrs:      attrs,
			Name:       nameTok.Text,
			Header:     header,
			InnerAttrs: inner,
			Items:      items,
			Inline:     true,
		}, nil
	default:
		return nil, errAt(p.cur(), "expected ; or { after module %s", nameTok.Text)
	}
}

func (p *parser) expectClose(text string, at lexer.Token) error {
	tok := p.cur()
	if tok.Kind != lexer.CloseDelim || tok.Text != text {
		return errAt(tok, "expected %q to close block started near %s", text, at.Text)
	}
	p.bump()
	return nil
}

func (p *parser) parseStruct(attrs []ast.Attr, start int) (ast.Decl, error) {
	if err := p.advanceTo("struct"); err != nil {
		return nil, err
	}
	p.bump()
	nameTok, err := p.expectName("struct")
	if err != nil {
		return nil, err
	}
	depth, angle := 0, 0
	for {
		tok := p.cur()
		switch {
		case tok.Kind == lexer.EOF:
			return nil, errAt(nameTok, "struct %s has no body", nameTok.Text)
		case tok.IsPunct(";") && depth == 0:
			p.bump()
			return &ast.Struct{
				Attrs:  attrs,
				Name:   nameTok.Text,
				Kind:   ast.UnitStruct,
				Header: p.span(start, tok.Offset),
			}, nil
		case tok.Kind == lexer.OpenDelim && tok.Text == "{" && depth == 0 && angle == 0:
			header := p.span(start, tok.Offset)
			p.bump()
			fields, err := p.parseFields("}")
			if err != nil {
				return nil, err
			}
			p.bump()
			return &ast.Struct{
				Attrs:  attrs,
				Name:   nameTok.Text,
				Kind:   ast.NamedStruct,
				Header: header,
				Fields: fields,
			}, nil
		case tok.Kind == lexer.OpenDelim && tok.Text == "(" && depth == 0 && angle == 0:
			header := p.span(start, tok.Offset)
			p.bump()
			fields, err := p.parseFields(")")
			if err != nil {
				return nil, err
			}
			closeTok := p.bump()
			semiAt := -1
			for semiAt < 0 {
				switch {
				case p.atEOF():
					return nil, errAt(closeTok, "missing ; after tuple struct %s", nameTok.Text)
				case p.cur().Kind == lexer.OpenDelim:
					if err := p.skipBalanced(); err != nil {
						return nil, err
					}
				case p.cur().IsPunct(";"):
					semiAt = p.cur().Offset
					p.bump()
				default:
					p.bump()
				}
			}
			return &ast.Struct{
				Attrs:  attrs,
				Name:   nameTok.Text,
				Kind:   ast.TupleStruct,
				Header: header,
				Fields: fields,
				Tail:   strings.TrimRight(p.src[closeTok.End:semiAt], " \t\r\n"),
			}, nil
		case tok.Kind == lexer.OpenDelim:
			depth++
			p.bump()
		case tok.Kind == lexer.CloseDelim:
			if depth == 0 {
				return nil, errAt(tok, "unexpected %q in struct %s", tok.Text, nameTok.Text)
			}
			depth--
			p.bump()
		case tok.IsPunct("<") && depth == 0:
			angle++
			p.bump()
		case tok.IsPunct(">") && depth == 0:
			if angle > 0 {
				angle--
			}
			p.bump()
		default:
			p.bump()
		}
	}
}

// parseFields parses named fields or tuple elements up to the closing
// delimiter, which is left for the caller. Commas inside generic
// arguments, arrays and nested groups do not split.
func (p *parser) parseFields(closer string) ([]ast.Field, error) {
	var fields []ast.Field
	for {
		if p.cur().Kind == lexer.CloseDelim && p.cur().Text == closer {
			return fields, nil
		}
		if p.atEOF() {
			return nil, errAt(p.cur(), "unexpected end of file in field list")
		}
		fieldAttrs, inner, err := p.parseAttrs()
		if err != nil {
			return nil, err
		}
		if len(inner) > 0 {
			return nil, errAt(p.cur(), "inner attribute not allowed in field list")
		}
		if p.cur().Kind == lexer.CloseDelim && p.cur().Text == closer {
			if len(fieldAttrs) > 0 {
				return nil, errAt(p.cur(), "expected field after attributes")
			}
			return fields, nil
		}
		fieldStart := p.cur().Offset
		depth, angle := 0, 0
		// A < only opens a generic list after a path segment. Past the =
		// of a discriminant or default value it is a shift or comparison
		// operator instead, except directly after a turbofish ::.
		generic, turbofish, expr := false, false, false
	field:
		for {
			tok := p.cur()
			switch {
			case tok.Kind == lexer.EOF:
				return nil, errAt(tok, "unexpected end of file in field list")
			case depth == 0 && tok.Kind == lexer.CloseDelim && tok.Text == closer:
				fields = append(fields, ast.Field{Attrs: fieldAttrs, Raw: p.span(fieldStart, tok.Offset)})
				break field
			case tok.IsPunct(",") && depth == 0 && angle == 0:
				fields = append(fields, ast.Field{Attrs: fieldAttrs, Raw: p.span(fieldStart, tok.Offset)})
				p.bump()
				break field
			case tok.IsPunct("=") && depth == 0 && angle == 0:
				expr = true
				p.bump()
			case tok.Kind == lexer.OpenDelim:
				depth++
				p.bump()
			case tok.Kind == lexer.CloseDelim:
				if depth == 0 {
					return nil, errAt(tok, "unexpected %q in field list", tok.Text)
				}
				depth--
				p.bump()
			case tok.IsPunct("<") && depth == 0 && generic && (!expr || turbofish):
				angle++
				p.bump()
			case tok.IsPunct(">") && depth == 0:
				if angle > 0 {
					angle--
				}
				p.bump()
			default:
				p.bump()
			}
			generic = tok.Kind == lexer.Ident || tok.IsPunct("::")
			turbofish = tok.IsPunct("::")
		}
	}
}

func (p *parser) parseEnum(attrs []ast.Attr, start int) (ast.Decl, error) {
	if err := p.advanceTo("enum"); err != nil {
		return nil, err
	}
	p.bump()
	nameTok, err := p.expectName("enum")
	if err != nil {
		return nil, err
	}
	header, err := p.scanToBodyBrace(start, nameTok)
	if err != nil {
		return nil, err
	}
	fields, err := p.parseFields("}")
	if err != nil {
		return nil, err
	}
	p.bump()
	variants := make([]ast.Variant, len(fields))
	for i, f := range fields {
		variants[i] = ast.Variant(f)
	}
	return &ast.Enum{Attrs: attrs, Name: nameTok.Text, Header: header, Variants: variants}, nil
}

func (p *parser) parseUnion(attrs []ast.Attr, start int) (ast.Decl, error) {
	if err := p.advanceTo("union"); err != nil {
		return nil, err
	}
	p.bump()
	nameTok, err := p.expectName("union")
	if err != nil {
		return nil, err
	}
	header, err := p.scanToBodyBrace(start, nameTok)
	if err != nil {
		return nil, err
	}
	fields, err := p.parseFields("}")
	if err != nil {
		return nil, err
	}
	p.bump()
	return &ast.Union{Attrs: attrs, Name: nameTok.Text, Header: header, Fields: fields}, nil
}

// scanToBodyBrace advances to the opening brace of a declaration body,
// consuming generics and where clauses into the header span.
func (p *parser) scanToBodyBrace(start int, nameTok lexer.Token) (string, error) {
	depth, angle := 0, 0
	for {
		tok := p.cur()
		switch {
		case tok.Kind == lexer.EOF:
			return "", errAt(nameTok, "%s has no body", nameTok.Text)
		case tok.Kind == lexer.OpenDelim && tok.Text == "{" && depth == 0 && angle == 0:
			header := p.span(start, tok.Offset)
			p.bump()
			return header, nil
		case tok.Kind == lexer.OpenDelim:
			depth++
			p.bump()
		case tok.Kind == lexer.CloseDelim:
			if depth == 0 {
				return "", errAt(tok, "unexpected %q before body of %s", tok.Text, nameTok.Text)
			}
			depth--
			p.bump()
		case tok.IsPunct("<") && depth == 0:
			angle++
			p.bump()
		case tok.IsPunct(">") && depth == 0:
			if angle > 0 {
				angle--
			}
			p.bump()
		default:
			p.bump()
		}
	}
}

func (p *parser) parseTrait(attrs []ast.Attr, start int) (ast.Decl, error) {
	if err := p.advanceTo("trait"); err != nil {
		return nil, err
	}
	p.bump()
	nameTok, err := p.expectName("trait")
	if err != nil {
		return nil, err
	}
	depth, angle := 0, 0
	for {
		tok := p.cur()
		switch {
		case tok.Kind == lexer.EOF:
			return nil, errAt(nameTok, "trait %s has no body", nameTok.Text)
		case tok.IsPunct("=") && depth == 0 && angle == 0:
			raw, err := p.scanToSemi(start)
			if err != nil {
				return nil, err
			}
			return &ast.TraitAlias{Attrs: attrs, Name: nameTok.Text, Raw: raw}, nil
		case tok.IsPunct(";") && depth == 0:
			p.bump()
			return &ast.TraitAlias{Attrs: attrs, Name: nameTok.Text, Raw: p.src[start:tok.End]}, nil
		case tok.Kind == lexer.OpenDelim && tok.Text == "{" && depth == 0 && angle == 0:
			header := p.span(start, tok.Offset)
			p.bump()
			items, inner, err := p.parseMemberList()
			if err != nil {
				return nil, err
			}
			if err := p.expectClose("}", nameTok); err != nil {
				return nil, err
			}
			return &ast.Trait{
				Attrs:      attrs,
				Name:       nameTok.Text,
				Header:     header,
				InnerAttrs: inner,
				Items:      items,
			}, nil
		case tok.Kind == lexer.OpenDelim:
			depth++
			p.bump()
		case tok.Kind == lexer.CloseDelim:
			if depth == 0 {
				return nil, errAt(tok, "unexpected %q in trait %s", tok.Text, nameTok.Text)
			}
			depth--
			p.bump()
		case tok.IsPunct("<") && depth == 0:
			angle++
			p.bump()
		case tok.IsPunct(">") && depth == 0:
			if angle > 0 {
				angle--
			}
			p.bump()
		default:
			p.bump()
		}
	}
}

func (p *parser) parseImpl(attrs []ast.Attr, start int) (ast.Decl, error) {
	if err := p.advanceTo("impl"); err != nil {
		return nil, err
	}
	implTok := p.bump()
	genEnd := implTok.End
	if p.cur().IsPunct("<") {
		angle := 0
		for {
			tok := p.cur()
			if tok.Kind == lexer.EOF {
				return nil, errAt(implTok, "unterminated impl generics")
			}
			if tok.Kind == lexer.OpenDelim {
				if err := p.skipBalanced(); err != nil {
					return nil, err
				}
				continue
			}
			if tok.IsPunct("<") {
				angle++
			}
			if tok.IsPunct(">") {
				angle--
			}
			p.bump()
			if angle == 0 {
				break
			}
		}
		genEnd = p.toks[p.pos-1].End
	}

	depth, angle := 0, 0
	forOffset := -1
	for {
		tok := p.cur()
		switch {
		case tok.Kind == lexer.EOF:
			return nil, errAt(implTok, "impl block has no body")
		case tok.Kind == lexer.OpenDelim && tok.Text == "{" && depth == 0 && angle == 0:
			header := p.span(start, tok.Offset)
			p.bump()
			items, inner, err := p.parseMemberList()
			if err != nil {
				return nil, err
			}
			if err := p.expectClose("}", implTok); err != nil {
				return nil, err
			}
			traitRef := ""
			if forOffset >= 0 {
				traitRef = strings.TrimSpace(p.src[genEnd:forOffset])
			}
			implItems := make([]ast.ImplItem, len(items))
			for i, it := range items {
				implItems[i] = it.(ast.ImplItem)
			}
			return &ast.Impl{
				Attrs:      attrs,
				Header:     header,
				TraitRef:   traitRef,
				InnerAttrs: inner,
				Items:      implItems,
			}, nil
		case tok.IsIdent("for") && depth == 0 && angle == 0 && forOffset < 0 && !p.peek(1).IsPunct("<"):
			forOffset = tok.Offset
			p.bump()
		case tok.Kind == lexer.OpenDelim:
			depth++
			p.bump()
		case tok.Kind == lexer.CloseDelim:
			if depth == 0 {
				return nil, errAt(tok, "unexpected %q in impl header", tok.Text)
			}
			depth--
			p.bump()
		case tok.IsPunct("<") && depth == 0:
			angle++
			p.bump()
		case tok.IsPunct(">") && depth == 0:
			if angle > 0 {
				angle--
			}
			p.bump()
		default:
			p.bump()
		}
	}
}

// parseMemberList parses trait or impl members up to the closing brace,
// which is left for the caller. Function members become Methods; anything
// else is kept verbatim.
func (p *parser) parseMemberList() ([]ast.TraitItem, []ast.Attr, error) {
	var items []ast.TraitItem
	var inner []ast.Attr
	for {
		if p.cur().Kind == lexer.CloseDelim {
			return items, inner, nil
		}
		if p.atEOF() {
			return nil, nil, errAt(p.cur(), "unexpected end of file in block")
		}
		attrs, innerHere, err := p.parseAttrs()
		if err != nil {
			return nil, nil, err
		}
		inner = append(inner, innerHere...)
		if p.cur().Kind == lexer.CloseDelim {
			if len(attrs) > 0 {
				return nil, nil, errAt(p.cur(), "expected declaration after attributes")
			}
			continue
		}
		start := p.cur().Offset
		if kw, _ := p.declKeyword(); kw.IsIdent("fn") {
			name, sig, ret, body, err := p.parseFnParts(start)
			if err != nil {
				return nil, nil, err
			}
			items = append(items, &ast.Method{Attrs: attrs, Name: name, Sig: sig, Return: ret, Default: body})
			continue
		}
		raw, err := p.parseRawMember(start)
		if err != nil {
			return nil, nil, err
		}
		items = append(items, &ast.RawItem{Attrs: attrs, Raw: raw})
	}
}

// parseRawMember consumes one non-function member: through its semicolon,
// or through a balanced brace group (macro invocations, const blocks) with
// any directly following semicolon attached.
func (p *parser) parseRawMember(start int) (string, error) {
	for {
		tok := p.cur()
		switch {
		case tok.Kind == lexer.EOF:
			return "", errAt(tok, "unterminated member")
		case tok.IsPunct(";"):
			p.bump()
			return p.src[start:tok.End], nil
		case tok.Kind == lexer.OpenDelim && tok.Text == "{":
			if err := p.skipBalanced(); err != nil {
				return "", err
			}
			if p.cur().IsPunct(";") {
				semi := p.bump()
				return p.src[start:semi.End], nil
			}
			return p.span(start, p.toks[p.pos-1].End), nil
		case tok.Kind == lexer.OpenDelim:
			if err := p.skipBalanced(); err != nil {
				return "", err
			}
		case tok.Kind == lexer.CloseDelim:
			return "", errAt(tok, "unexpected %q", tok.Text)
		default:
			p.bump()
		}
	}
}

func (p *parser) parseExtern(attrs []ast.Attr, start int) (ast.Decl, error) {
	if err := p.advanceTo("extern"); err != nil {
		return nil, err
	}
	externTok := p.bump()
	if p.cur().IsIdent("crate") {
		raw, err := p.scanToSemi(start)
		if err != nil {
			return nil, err
		}
		return &ast.Other{Attrs: attrs, Raw: raw}, nil
	}
	if p.cur().Kind == lexer.String {
		p.bump()
	}
	if p.cur().Kind == lexer.OpenDelim && p.cur().Text == "{" {
		if err := p.skipBalanced(); err != nil {
			return nil, err
		}
		return &ast.ForeignMod{Attrs: attrs, Raw: p.src[start:p.toks[p.pos-1].End]}, nil
	}
	return nil, errAt(externTok, "expected crate name or block after extern")
}

// parseDeclMacro handles `macro name { ... }` declarations.
func (p *parser) parseDeclMacro(attrs []ast.Attr, start int) (ast.Decl, error) {
	if err := p.advanceTo("macro"); err != nil {
		return nil, err
	}
	p.bump()
	if p.cur().Kind == lexer.Ident {
		p.bump()
	}
	for p.cur().Kind == lexer.OpenDelim {
		if err := p.skipBalanced(); err != nil {
			return nil, err
		}
	}
	return &ast.MacroCall{Attrs: attrs, Raw: p.span(start, p.toks[p.pos-1].End)}, nil
}

// parseMacroCall looks for an item-position macro invocation. It reports
// false without consuming input when the cursor is not on one.
func (p *parser) parseMacroCall(attrs []ast.Attr, start int) (ast.Decl, bool, error) {
	i := p.pos
	if p.tokAt(i).Kind != lexer.Ident {
		return nil, false, nil
	}
	i++
	for p.tokAt(i).IsPunct("::") && p.tokAt(i+1).Kind == lexer.Ident {
		i += 2
	}
	if !p.tokAt(i).IsPunct("!") {
		return nil, false, nil
	}
	for p.pos <= i {
		p.bump()
	}
	if p.cur().Kind == lexer.Ident {
		p.bump() // macro_rules! style name
	}
	open := p.cur()
	if open.Kind != lexer.OpenDelim {
		return nil, false, errAt(open, "expected macro delimiter")
	}
	if err := p.skipBalanced(); err != nil {
		return nil, false, err
	}
	raw := p.span(start, p.toks[p.pos-1].End)
	if open.Text != "{" && p.cur().IsPunct(";") {
		semi := p.bump()
		raw = p.src[start:semi.End]
	}
	return &ast.MacroCall{Attrs: attrs, Raw: raw}, true, nil
}

// parseOther consumes an unrecognized declaration through its semicolon or
// trailing brace group so surrounding declarations still parse.
func (p *parser) parseOther(attrs []ast.Attr, start int) (ast.Decl, error) {
	for {
		tok := p.cur()
		switch {
		case tok.Kind == lexer.EOF:
			return nil, errAt(tok, "unrecognized declaration")
		case tok.Kind == lexer.OpenDelim && tok.Text == "{":
			if err := p.skipBalanced(); err != nil {
				return nil, err
			}
			return &ast.Other{Attrs: attrs, Raw: p.span(start, p.toks[p.pos-1].End)}, nil
		case tok.Kind == lexer.OpenDelim:
			if err := p.skipBalanced(); err != nil {
				return nil, err
			}
		case tok.IsPunct(";"):
			p.bump()
			return &ast.Other{Attrs: attrs, Raw: p.src[start:tok.End]}, nil
		case tok.Kind == lexer.CloseDelim:
			return nil, errAt(tok, "expected declaration, found %q", tok.Text)
		default:
			p.bump()
		}
	}
}
