// internal/browser/parser/tokenizer.go
package parser

// The tokenizer follows a reduced form of the CSS Syntax Level 3 tokenization
// rules. It is only meant for inline declaration lists (style attributes), so
// there are no selectors, blocks, urls or CDO/CDC tokens.

// TokenKind classifies a lexical token.
type TokenKind int

const (
	TokenIdentifier TokenKind = iota
	TokenFunction
	TokenAt
	TokenHash
	TokenString
	TokenDelimiter
	TokenInteger
	TokenNumber
	TokenPercentage
	TokenDimension
	TokenColon
	TokenSemicolon
	TokenComma
	// Bracket kinds are reserved for block parsing. Inline input reports
	// brackets as TokenDelimiter.
	TokenSquareOpen
	TokenSquareClose
	TokenParenOpen
	TokenParenClose
	TokenCurlyOpen
	TokenCurlyClose
	TokenEndOfInput
)

var tokenKindNames = map[TokenKind]string{
	TokenIdentifier:  "identifier",
	TokenFunction:    "function",
	TokenAt:          "@",
	TokenHash:        "#",
	TokenString:      "string",
	TokenDelimiter:   "delimiter",
	TokenInteger:     "integer",
	TokenNumber:      "number",
	TokenPercentage:  "%",
	TokenDimension:   "dimension",
	TokenColon:       ":",
	TokenSemicolon:   ";",
	TokenComma:       ",",
	TokenSquareOpen:  "[",
	TokenSquareClose: "]",
	TokenParenOpen:   "(",
	TokenParenClose:  ")",
	TokenCurlyOpen:   "{",
	TokenCurlyClose:  "}",
	TokenEndOfInput:  "end of input",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Token is a single lexical unit. Start and End are byte offsets into the
// tokenized input, End exclusive.
type Token struct {
	Kind  TokenKind
	Value string
	Unit  string // Only set for TokenDimension.
	Start int
	End   int
}

// Tokenizer scans an input string byte by byte.
type Tokenizer struct {
	input string
	pos   int
}

func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{input: input}
}

// Tokenize is a convenience wrapper around NewTokenizer(input).Tokenize().
func Tokenize(input string) []Token {
	return NewTokenizer(input).Tokenize()
}

// Tokenize consumes the whole input. The returned slice always ends with
// exactly one TokenEndOfInput.
func (t *Tokenizer) Tokenize() []Token {
	var tokens []Token
	for {
		tok := t.next()
		tokens = append(tokens, tok)
		if tok.Kind == TokenEndOfInput {
			return tokens
		}
	}
}

func (t *Tokenizer) next() Token {
	for {
		t.skipWhitespace()
		if !t.startsWith("/*") {
			break
		}
		t.skipComment()
	}

	start := t.pos
	if t.eof() {
		return Token{Kind: TokenEndOfInput, Start: start, End: start}
	}

	ch := t.input[t.pos]

	// <ident-token> / <function-token>
	if isLetter(ch) || isNonASCII(ch) || ch == '_' || (ch == '-' && !isDigit(t.peekAt(1))) {
		if t.wouldStartIdentifier(t.pos) {
			value := t.readIdentifier()
			if t.peekAt(0) == '(' {
				t.pos++
				return t.token(TokenFunction, value, start)
			}
			return t.token(TokenIdentifier, value, start)
		}
	}

	// <number-token> / <percentage-token> / <dimension-token>
	if isDigit(ch) || ((ch == '+' || ch == '-') && isDigit(t.peekAt(1))) {
		value, isInt := t.readNumber()
		if t.wouldStartIdentifier(t.pos) {
			unit := t.readIdentifier()
			tok := t.token(TokenDimension, value, start)
			tok.Unit = unit
			return tok
		}
		if t.peekAt(0) == '%' {
			t.pos++
			return t.token(TokenPercentage, value, start)
		}
		if isInt {
			return t.token(TokenInteger, value, start)
		}
		return t.token(TokenNumber, value, start)
	}

	switch ch {
	case '"', '\'':
		t.pos++
		return t.token(TokenString, t.readString(ch), start)
	case '@':
		if t.wouldStartIdentifier(t.pos + 1) {
			t.pos++
			return t.token(TokenAt, t.readIdentifier(), start)
		}
	case '#':
		if isNameChar(t.peekAt(1)) {
			t.pos++
			return t.token(TokenHash, t.readName(), start)
		}
	case ',':
		t.pos++
		return t.token(TokenComma, ",", start)
	case ':':
		t.pos++
		return t.token(TokenColon, ":", start)
	case ';':
		t.pos++
		return t.token(TokenSemicolon, ";", start)
	}

	t.pos++
	return t.token(TokenDelimiter, string(ch), start)
}

func (t *Tokenizer) token(kind TokenKind, value string, start int) Token {
	return Token{Kind: kind, Value: value, Start: start, End: t.pos}
}

// wouldStartIdentifier peeks at the bytes starting at offset without
// consuming anything. A leading dash only starts an identifier when another
// dash or a name-start byte follows it, so "10-5" stays two numbers while
// "10px" and "1-moz" carry units.
func (t *Tokenizer) wouldStartIdentifier(offset int) bool {
	c1 := t.byteAt(offset)
	if c1 == '-' {
		c2 := t.byteAt(offset + 1)
		return c2 == '-' || isNameStart(c2)
	}
	return isNameStart(c1)
}

// readIdentifier reads up to two leading dashes followed by name bytes. The
// dashes stay part of the value.
func (t *Tokenizer) readIdentifier() string {
	start := t.pos
	for i := 0; i < 2 && t.peekAt(0) == '-'; i++ {
		t.pos++
	}
	for !t.eof() && isNameChar(t.input[t.pos]) {
		t.pos++
	}
	return t.input[start:t.pos]
}

func (t *Tokenizer) readName() string {
	start := t.pos
	for !t.eof() && isNameChar(t.input[t.pos]) {
		t.pos++
	}
	return t.input[start:t.pos]
}

// readNumber reads an optional sign, digits and at most one dot.
func (t *Tokenizer) readNumber() (string, bool) {
	start := t.pos
	isInt := true
	if c := t.input[t.pos]; c == '+' || c == '-' {
		t.pos++
	}
	for !t.eof() {
		c := t.input[t.pos]
		if c == '.' {
			if !isInt {
				break
			}
			isInt = false
		} else if !isDigit(c) {
			break
		}
		t.pos++
	}
	return t.input[start:t.pos], isInt
}

// readString reads until the closing quote or a line break, both of which are
// consumed but not included. There is no escape handling.
func (t *Tokenizer) readString(quote byte) string {
	start := t.pos
	for !t.eof() {
		c := t.input[t.pos]
		if c == quote || c == '\n' || c == '\r' {
			value := t.input[start:t.pos]
			t.pos++
			return value
		}
		t.pos++
	}
	return t.input[start:t.pos]
}

func (t *Tokenizer) skipComment() {
	t.pos += 2
	for !t.eof() {
		if t.startsWith("*/") {
			t.pos += 2
			return
		}
		t.pos++
	}
}

func (t *Tokenizer) skipWhitespace() {
	for !t.eof() && isWhitespace(t.input[t.pos]) {
		t.pos++
	}
}

func (t *Tokenizer) startsWith(s string) bool {
	return len(t.input)-t.pos >= len(s) && t.input[t.pos:t.pos+len(s)] == s
}

func (t *Tokenizer) peekAt(n int) byte {
	return t.byteAt(t.pos + n)
}

func (t *Tokenizer) byteAt(i int) byte {
	if i < 0 || i >= len(t.input) {
		return 0
	}
	return t.input[i]
}

func (t *Tokenizer) eof() bool {
	return t.pos >= len(t.input)
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isNonASCII(c byte) bool {
	return c >= 0x80
}

func isNameStart(c byte) bool {
	return isLetter(c) || isNonASCII(c) || c == '_'
}

func isNameChar(c byte) bool {
	return isNameStart(c) || isDigit(c) || c == '-'
}
