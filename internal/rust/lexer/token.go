// Package lexer tokenizes Rust source text for declaration-level parsing.
//
// Every token carries the byte offsets of its source span so later stages
// can slice verbatim text (function bodies, signatures, field declarations)
// out of the original file instead of reconstructing it.
package lexer

// Kind classifies a scanned token.
type Kind int

const (
	// EOF marks the end of input. It is always the last token.
	EOF Kind = iota
	// Ident covers identifiers and keywords, raw identifiers included.
	Ident
	// Lifetime is a quote followed by an identifier, as in 'a or 'static.
	Lifetime
	// String covers string, raw string, byte string and C string literals.
	String
	// Char is a character or byte literal.
	Char
	// Number covers integer and float literals, suffixes included.
	Number
	// Punct is punctuation. Multi-character operators are kept whole only
	// where declaration parsing depends on them: ->, => and ::.
	Punct
	// OpenDelim is one of ( [ {.
	OpenDelim
	// CloseDelim is one of ) ] }.
	CloseDelim
	// DocComment is a documentation comment in any of its four source
	// forms. Ordinary comments never surface as tokens.
	DocComment
)

// String returns a short name for the kind, used in diagnostics.
func (k Kind) String() string {
	switch k {
	case EOF:
		return "end of file"
	case Ident:
		return "identifier"
	case Lifetime:
		return "lifetime"
	case String:
		return "string literal"
	case Char:
		return "character literal"
	case Number:
		return "number literal"
	case Punct:
		return "punctuation"
	case OpenDelim:
		return "opening delimiter"
	case CloseDelim:
		return "closing delimiter"
	case DocComment:
		return "doc comment"
	}
	return "unknown token"
}

// Token is one lexical element together with its position in the source.
type Token struct {
	Kind   Kind
	Text   string // verbatim source text
	Offset int    // byte offset of the first character
	End    int    // byte offset one past the last character
	Line   int    // 1-based line of the first character
	Col    int    // 1-based byte column of the first character

	// Doc comment shape. Meaningful only when Kind is DocComment.
	Inner bool // //! and /*! ... */ forms
	Block bool // /** ... */ and /*! ... */ forms
}

// IsPunct reports whether the token is the given punctuation text.
func (t Token) IsPunct(text string) bool {
	return t.Kind == Punct && t.Text == text
}

// IsIdent reports whether the token is the given identifier or keyword.
func (t Token) IsIdent(text string) bool {
	return t.Kind == Ident && t.Text == text
}
