package lexer

import (
	"fmt"
	"strings"
)

// Error reports a malformed lexical construct and where it starts.
type Error struct {
	Line int
	Col  int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
}

// Lexer scans Rust source text into a token stream.
type Lexer struct {
	src  string
	pos  int
	line int
	col  int

	// Position of the token being scanned, captured before dispatch so
	// multi-line tokens report where they start rather than end.
	tokLine int
	tokCol  int
}

// New returns a lexer over src.
func New(src string) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

// Scan tokenizes the whole input, ending with an EOF token. On malformed
// input it returns the tokens scanned so far and an *Error positioned at
// the start of the offending construct.
func (l *Lexer) Scan() ([]Token, error) {
	if strings.HasPrefix(l.src, "#!") && !strings.HasPrefix(l.src, "#![") {
		l.skipLine()
	}
	var toks []Token
	for {
		tok, err := l.next()
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks, nil
		}
	}
}

func (l *Lexer) next() (Token, error) {
	for {
		l.skipSpace()
		l.tokLine, l.tokCol = l.line, l.col
		if l.pos >= len(l.src) {
			return l.token(EOF, l.pos), nil
		}
		if l.peek() != '/' || l.pos+1 >= len(l.src) {
			break
		}
		switch l.src[l.pos+1] {
		case '/':
			tok, ok := l.scanLineComment()
			if ok {
				return tok, nil
			}
		case '*':
			tok, ok, err := l.scanBlockComment()
			if err != nil {
				return Token{}, err
			}
			if ok {
				return tok, nil
			}
		default:
			return l.scanPunct(), nil
		}
	}

	b := l.peek()
	switch {
	case b == '\'':
		return l.scanQuote(), nil
	case b == '"':
		return l.scanString(l.pos)
	case b >= '0' && b <= '9':
		return l.scanNumber(), nil
	case isIdentStart(b):
		return l.scanIdentOrPrefixed()
	case b == '(' || b == '[' || b == '{':
		start := l.pos
		l.advance()
		return l.token(OpenDelim, start), nil
	case b == ')' || b == ']' || b == '}':
		start := l.pos
		l.advance()
		return l.token(CloseDelim, start), nil
	default:
		return l.scanPunct(), nil
	}
}

func (l *Lexer) skipSpace() {
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case ' ', '\t', '\r', '\n':
			l.advance()
		default:
			return
		}
	}
}

func (l *Lexer) skipLine() {
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		l.advance()
	}
}

// scanLineComment consumes a // comment. Doc forms (/// and //!) are
// returned as tokens; //// and longer runs are ordinary comments, as is
// plain //.
func (l *Lexer) scanLineComment() (Token, bool) {
	start, line, col := l.pos, l.line, l.col
	slashes := 0
	for l.pos < len(l.src) && l.src[l.pos] == '/' {
		slashes++
		l.advance()
	}
	inner := slashes == 2 && l.pos < len(l.src) && l.src[l.pos] == '!'
	doc := slashes == 3 || inner
	l.skipLine()
	if !doc {
		return Token{}, false
	}
	return Token{
		Kind:   DocComment,
		Text:   l.src[start:l.pos],
		Offset: start,
		End:    l.pos,
		Line:   line,
		Col:    col,
		Inner:  inner,
	}, true
}

// scanBlockComment consumes a /* comment, honoring nesting. Doc forms
// (/** and /*!) are returned as tokens; /***, the empty /**/ and plain
// /* are ordinary comments.
func (l *Lexer) scanBlockComment() (Token, bool, error) {
	start, line, col := l.pos, l.line, l.col
	inner := strings.HasPrefix(l.src[l.pos:], "/*!")
	outer := strings.HasPrefix(l.src[l.pos:], "/**") &&
		!strings.HasPrefix(l.src[l.pos:], "/***") &&
		!strings.HasPrefix(l.src[l.pos:], "/**/")
	l.advanceN(2)
	depth := 1
	for depth > 0 {
		if l.pos >= len(l.src) {
			return Token{}, false, &Error{Line: line, Col: col, Msg: "unterminated block comment"}
		}
		switch {
		case strings.HasPrefix(l.src[l.pos:], "/*"):
			depth++
			l.advanceN(2)
		case strings.HasPrefix(l.src[l.pos:], "*/"):
			depth--
			l.advanceN(2)
		default:
			l.advance()
		}
	}
	if !inner && !outer {
		return Token{}, false, nil
	}
	return Token{
		Kind:   DocComment,
		Text:   l.src[start:l.pos],
		Offset: start,
		End:    l.pos,
		Line:   line,
		Col:    col,
		Inner:  inner,
		Block:  true,
	}, true, nil
}

// scanQuote disambiguates lifetimes from character literals. A quote
// followed by an identifier is a lifetime unless the identifier is itself
// followed by a closing quote.
func (l *Lexer) scanQuote() Token {
	start := l.pos
	l.advance()
	if l.pos < len(l.src) && isIdentStart(l.src[l.pos]) {
		end := l.pos
		for end < len(l.src) && isIdentPart(l.src[end]) {
			end++
		}
		// Consume the whole run before deciding. It spans several bytes
		// even for one character, as in 'é'.
		for l.pos < end {
			l.advance()
		}
		if l.pos < len(l.src) && l.src[l.pos] == '\'' {
			l.advance()
			return l.token(Char, start)
		}
		return l.token(Lifetime, start)
	}
	if l.pos < len(l.src) && l.src[l.pos] == '\\' {
		l.scanEscape()
	} else if l.pos < len(l.src) {
		l.advance()
	}
	if l.pos < len(l.src) && l.src[l.pos] == '\'' {
		l.advance()
	}
	return l.token(Char, start)
}

func (l *Lexer) scanEscape() {
	l.advance() // backslash
	if l.pos >= len(l.src) {
		return
	}
	if l.src[l.pos] == 'u' {
		l.advance()
		if l.pos < len(l.src) && l.src[l.pos] == '{' {
			for l.pos < len(l.src) && l.src[l.pos] != '}' {
				l.advance()
			}
			if l.pos < len(l.src) {
				l.advance()
			}
		}
		return
	}
	if l.src[l.pos] == 'x' {
		l.advance()
		for i := 0; i < 2 && l.pos < len(l.src) && isHexDigit(l.src[l.pos]); i++ {
			l.advance()
		}
		return
	}
	l.advance()
}

// scanString consumes a "..." literal with escapes. start is the offset of
// the whole token, which may begin before the quote when a b or c prefix
// was already consumed.
func (l *Lexer) scanString(start int) (Token, error) {
	line, col := l.line, l.col
	l.advance() // opening quote
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case '\\':
			l.scanEscape()
		case '"':
			l.advance()
			return l.token(String, start), nil
		default:
			l.advance()
		}
	}
	return Token{}, &Error{Line: line, Col: col, Msg: "unterminated string literal"}
}

// scanRawString consumes r"..." and r#"..."# forms. The caller has
// verified that a raw string actually starts here.
func (l *Lexer) scanRawString(start int) (Token, error) {
	line, col := l.line, l.col
	hashes := 0
	for l.pos < len(l.src) && l.src[l.pos] == '#' {
		hashes++
		l.advance()
	}
	l.advance() // opening quote
	closer := `"` + strings.Repeat("#", hashes)
	for l.pos < len(l.src) {
		if strings.HasPrefix(l.src[l.pos:], closer) {
			l.advanceN(len(closer))
			return l.token(String, start), nil
		}
		l.advance()
	}
	return Token{}, &Error{Line: line, Col: col, Msg: "unterminated raw string literal"}
}

// scanIdentOrPrefixed scans an identifier, first checking for the literal
// prefixes that share identifier syntax: r"/r#" raw strings, r#ident raw
// identifiers, b/br/c/cr string prefixes and b'x' byte literals.
func (l *Lexer) scanIdentOrPrefixed() (Token, error) {
	start := l.pos
	rest := l.src[l.pos:]
	switch {
	case strings.HasPrefix(rest, `r"`):
		l.advance()
		return l.scanRawString(start)
	case strings.HasPrefix(rest, "r#") && l.rawHashesLeadToQuote(1):
		l.advance()
		return l.scanRawString(start)
	case strings.HasPrefix(rest, "r#"):
		l.advanceN(2) // raw identifier
	case strings.HasPrefix(rest, `br"`) || strings.HasPrefix(rest, `cr"`):
		l.advanceN(2)
		return l.scanRawString(start)
	case (strings.HasPrefix(rest, "br#") || strings.HasPrefix(rest, "cr#")) && l.rawHashesLeadToQuote(2):
		l.advanceN(2)
		return l.scanRawString(start)
	case strings.HasPrefix(rest, `b"`) || strings.HasPrefix(rest, `c"`):
		l.advance()
		return l.scanString(start)
	case strings.HasPrefix(rest, "b'"):
		l.advance()
		tok := l.scanQuote()
		tok.Offset = start
		tok.Text = l.src[start:tok.End]
		return tok, nil
	}
	for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
		l.advance()
	}
	return l.token(Ident, start), nil
}

// rawHashesLeadToQuote reports whether the run of # starting at the given
// offset from pos ends in a double quote, distinguishing r#"..." from the
// raw identifier r#name.
func (l *Lexer) rawHashesLeadToQuote(skip int) bool {
	i := l.pos + skip
	for i < len(l.src) && l.src[i] == '#' {
		i++
	}
	return i < len(l.src) && l.src[i] == '"'
}

func (l *Lexer) scanNumber() Token {
	start := l.pos
	if strings.HasPrefix(l.src[l.pos:], "0x") || strings.HasPrefix(l.src[l.pos:], "0o") || strings.HasPrefix(l.src[l.pos:], "0b") {
		l.advanceN(2)
		for l.pos < len(l.src) && (isIdentPart(l.src[l.pos])) {
			l.advance()
		}
		return l.token(Number, start)
	}
	l.digits()
	if l.pos+1 < len(l.src) && l.src[l.pos] == '.' && isDigit(l.src[l.pos+1]) {
		l.advance()
		l.digits()
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		next := l.pos + 1
		if next < len(l.src) && (l.src[next] == '+' || l.src[next] == '-') {
			next++
		}
		if next < len(l.src) && isDigit(l.src[next]) {
			l.advance()
			if l.src[l.pos] == '+' || l.src[l.pos] == '-' {
				l.advance()
			}
			l.digits()
		}
	}
	for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
		l.advance() // type suffix such as u64 or f32
	}
	return l.token(Number, start)
}

func (l *Lexer) digits() {
	for l.pos < len(l.src) && (isDigit(l.src[l.pos]) || l.src[l.pos] == '_') {
		l.advance()
	}
}

// scanPunct emits one punctuation token, keeping ->, => and :: whole.
func (l *Lexer) scanPunct() Token {
	start := l.pos
	rest := l.src[l.pos:]
	for _, op := range [...]string{"->", "=>", "::"} {
		if strings.HasPrefix(rest, op) {
			l.advanceN(2)
			return l.token(Punct, start)
		}
	}
	l.advance()
	return l.token(Punct, start)
}

func (l *Lexer) token(kind Kind, start int) Token {
	return Token{
		Kind:   kind,
		Text:   l.src[start:l.pos],
		Offset: start,
		End:    l.pos,
		Line:   l.tokLine,
		Col:    l.tokCol,
	}
}

func (l *Lexer) peek() byte {
	return l.src[l.pos]
}

func (l *Lexer) advance() {
	if l.src[l.pos] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.pos++
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b >= 0x80
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
