// internal/browser/parser/token_buffer.go
package parser

import "go.uber.org/zap"

// TokenBuffer is a cursor over a tokenized stream. It never reads past the
// terminal TokenEndOfInput: once the cursor is exhausted every read returns
// that token again.
type TokenBuffer struct {
	tokens []Token
	pos    int
	logger *zap.Logger
}

// NewTokenBuffer wraps tokens. A stream that does not end in
// TokenEndOfInput gets one appended.
func NewTokenBuffer(tokens []Token, logger *zap.Logger) *TokenBuffer {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != TokenEndOfInput {
		end := 0
		if len(tokens) > 0 {
			end = tokens[len(tokens)-1].End
		}
		tokens = append(tokens, Token{Kind: TokenEndOfInput, Start: end, End: end})
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TokenBuffer{tokens: tokens, logger: logger}
}

// Next returns the token under the cursor and advances.
func (b *TokenBuffer) Next() Token {
	tok := b.at(b.pos)
	if b.pos < len(b.tokens) {
		b.pos++
	}
	return tok
}

// Current returns the token most recently returned by Next or Expect.
func (b *TokenBuffer) Current() Token {
	return b.at(b.pos - 1)
}

// Peek returns the token under the cursor without advancing.
func (b *TokenBuffer) Peek() Token {
	return b.at(b.pos)
}

// Expect advances over the next token and reports a syntax error when it is
// not of the given kind. It never aborts: the unexpected token is consumed
// anyway and returned to the caller.
func (b *TokenBuffer) Expect(kind TokenKind) Token {
	tok := b.Next()
	if tok.Kind != kind {
		b.logger.Debug("syntax error: unexpected token",
			zap.Stringer("found", tok.Kind),
			zap.Stringer("expected", kind),
			zap.Int("offset", tok.Start),
		)
	}
	return tok
}

// SkipUntil advances to the next token of the given kind, leaving it under
// the cursor. An exhausted stream stops the skip at TokenEndOfInput.
func (b *TokenBuffer) SkipUntil(kind TokenKind) {
	for !b.IsOutOfBounds() {
		tok := b.Peek()
		if tok.Kind == kind || tok.Kind == TokenEndOfInput {
			return
		}
		b.pos++
	}
}

// IsOutOfBounds reports whether every token, including TokenEndOfInput, was
// consumed.
func (b *TokenBuffer) IsOutOfBounds() bool {
	return b.pos >= len(b.tokens)
}

func (b *TokenBuffer) at(i int) Token {
	if i < 0 {
		i = 0
	}
	if i >= len(b.tokens) {
		i = len(b.tokens) - 1
	}
	return b.tokens[i]
}
