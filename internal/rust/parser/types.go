package parser

import (
	"github.com/welf/code-context/internal/rust/ast"
	"github.com/welf/code-context/internal/rust/lexer"
)

// typeFromTokens builds the structured view of a return type from its
// token slice. Only the shapes the condensing pass inspects get structure:
// references and path types with their type arguments. Everything else
// keeps its raw text only.
func typeFromTokens(src string, toks []lexer.Token) ast.Type {
	if len(toks) == 0 {
		return nil
	}
	full := src[toks[0].Offset:toks[len(toks)-1].End]
	first := toks[0]
	switch {
	case first.IsPunct("&"):
		rest := toks[1:]
		for len(rest) > 0 && (rest[0].Kind == lexer.Lifetime || rest[0].IsIdent("mut")) {
			rest = rest[1:]
		}
		return &ast.RefType{Src: full, Elem: typeFromTokens(src, rest)}
	case first.IsPunct("::") && len(toks) > 1 && toks[1].Kind == lexer.Ident:
		return pathType(src, toks)
	case first.Kind == lexer.Ident && !isTypeKeyword(first.Text):
		return pathType(src, toks)
	default:
		return &ast.OtherType{Src: full}
	}
}

// isTypeKeyword lists identifiers that introduce a non-path type.
func isTypeKeyword(s string) bool {
	switch s {
	case "dyn", "impl", "fn", "unsafe", "extern":
		return true
	}
	return false
}

// pathType parses Ident ("::" Ident)* with an optional argument list on
// the final segment. Name is that final segment.
func pathType(src string, toks []lexer.Token) ast.Type {
	full := src[toks[0].Offset:toks[len(toks)-1].End]
	i := 0
	if toks[i].IsPunct("::") {
		i++
	}
	name := ""
	for i < len(toks) && toks[i].Kind == lexer.Ident {
		name = toks[i].Text
		i++
		if i+1 < len(toks) && toks[i].IsPunct("::") && toks[i+1].Kind == lexer.Ident {
			i++
			continue
		}
		break
	}
	// Turbofish form: Vec::<u8> spells the argument list with a leading
	// path separator.
	if i+1 < len(toks) && toks[i].IsPunct("::") && toks[i+1].IsPunct("<") {
		i++
	}
	var args []ast.Type
	if i < len(toks) && toks[i].IsPunct("<") {
		args = typeArgs(src, toks[i:])
	}
	return &ast.PathType{Src: full, Name: name, Args: args}
}

// typeArgs splits a bracketed argument list on its top-level commas.
// toks starts at the opening angle bracket.
func typeArgs(src string, toks []lexer.Token) []ast.Type {
	var args []ast.Type
	level := 0
	depth := 0
	start := 1
	flush := func(end int) {
		if arg := typeArg(src, toks[start:end]); arg != nil {
			args = append(args, arg)
		}
	}
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		switch {
		case t.Kind == lexer.OpenDelim:
			depth++
		case t.Kind == lexer.CloseDelim:
			depth--
		case depth != 0:
		case t.IsPunct("<"):
			level++
			if level == 1 {
				start = i + 1
			}
		case t.IsPunct(">"):
			level--
			if level == 0 {
				flush(i)
				return args
			}
		case t.IsPunct(",") && level == 1:
			flush(i)
			start = i + 1
		}
	}
	return args
}

// typeArg builds one argument, or nil for arguments that are not types:
// lifetimes, const arguments and associated type bindings.
func typeArg(src string, toks []lexer.Token) ast.Type {
	if len(toks) == 0 {
		return nil
	}
	first := toks[0]
	switch {
	case first.Kind == lexer.Lifetime:
		return nil
	case first.Kind == lexer.Number:
		return nil
	case first.Kind == lexer.OpenDelim && first.Text == "{":
		return nil
	case first.IsIdent("true"), first.IsIdent("false"):
		return nil
	}
	depth := 0
	level := 0
	for _, t := range toks {
		switch {
		case t.Kind == lexer.OpenDelim:
			depth++
		case t.Kind == lexer.CloseDelim:
			depth--
		case depth != 0:
		case t.IsPunct("<"):
			level++
		case t.IsPunct(">"):
			level--
		case t.IsPunct("=") && level == 0:
			// Item = u32 binds an associated type rather than filling a
			// positional slot.
			return nil
		}
	}
	return typeFromTokens(src, toks)
}
