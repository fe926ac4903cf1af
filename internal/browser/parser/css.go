// internal/browser/parser/css.go
package parser

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/xkilldash9x/mpdf/internal/observability"
)

// Property names understood by the parser.
const (
	PropWidth           = "width"
	PropHeight          = "height"
	PropMinWidth        = "min-width"
	PropMaxWidth        = "max-width"
	PropMinHeight       = "min-height"
	PropMaxHeight       = "max-height"
	PropLeft            = "left"
	PropTop             = "top"
	PropDisplay         = "display"
	PropColor           = "color"
	PropBackgroundColor = "background-color"
	PropFont            = "font"
)

// Parser reads an inline declaration list such as the content of a style
// attribute. It is total: malformed or unsupported declarations are logged
// and dropped, and parsing continues with the next one.
type Parser struct {
	input  string
	buffer *TokenBuffer
	logger *zap.Logger
}

// NewParser creates a parser for input. A nil logger uses the global one.
func NewParser(input string, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = observability.GetLogger().Named("css")
	}
	return &Parser{input: input, logger: logger}
}

// ParseInline parses input with the global logger.
func ParseInline(input string) []PropertyDeclaration {
	return NewParser(input, nil).ParseInline()
}

// ParseInline returns the declarations of the input in source order.
func (p *Parser) ParseInline() []PropertyDeclaration {
	p.buffer = NewTokenBuffer(Tokenize(p.input), p.logger)

	var result []PropertyDeclaration
	for !p.buffer.IsOutOfBounds() {
		tok := p.buffer.Next()
		if tok.Kind == TokenEndOfInput {
			break
		}
		// Anything other than a property name at this level is stray input.
		if tok.Kind != TokenIdentifier {
			continue
		}
		if decl, ok := p.parseDeclaration(); ok {
			result = append(result, decl)
		}
	}
	return result
}

func (p *Parser) parseDeclaration() (PropertyDeclaration, bool) {
	name := p.buffer.Current().Value
	p.buffer.Expect(TokenColon)

	var value PrimitiveValue
	switch name {
	case PropWidth, PropHeight, PropMinWidth, PropMaxWidth, PropMinHeight, PropMaxHeight, PropLeft, PropTop:
		value = p.parseDimensionValue()
	case PropDisplay:
		value = p.parseIdentifierValue()
	case PropColor, PropBackgroundColor:
		value = p.parseColorValue()
	case PropFont:
		value = p.parseFontValue()
	default:
		p.logger.Debug("unsupported property declaration", zap.String("property", name))
		p.buffer.SkipUntil(TokenSemicolon)
		p.buffer.Expect(TokenSemicolon)
		return PropertyDeclaration{}, false
	}

	if IsNone(value) {
		p.logger.Debug("dropping declaration with invalid value",
			zap.String("property", name),
			zap.String("token", p.buffer.Current().Kind.String()),
		)
		p.skipDeclaration()
		return PropertyDeclaration{}, false
	}

	p.finishDeclaration(name)
	return PropertyDeclaration{Name: name, Value: value}, true
}

// finishDeclaration discards trailing tokens of a declaration whose value
// was already read, up to and including the terminating semicolon.
func (p *Parser) finishDeclaration(name string) {
	switch p.buffer.Peek().Kind {
	case TokenSemicolon:
		p.buffer.Next()
	case TokenEndOfInput:
	default:
		p.logger.Debug("ignoring trailing tokens in declaration", zap.String("property", name))
		p.buffer.SkipUntil(TokenSemicolon)
		p.buffer.Expect(TokenSemicolon)
	}
}

// skipDeclaration discards the rest of a declaration whose value was
// rejected. A rejected ';' or end of input already ends it.
func (p *Parser) skipDeclaration() {
	switch p.buffer.Current().Kind {
	case TokenSemicolon, TokenEndOfInput:
		return
	}
	p.buffer.SkipUntil(TokenSemicolon)
	if p.buffer.Peek().Kind == TokenSemicolon {
		p.buffer.Next()
	}
}

func (p *Parser) parseDimensionValue() PrimitiveValue {
	tok := p.buffer.Next()
	if tok.Kind != TokenDimension {
		return NoneValue{}
	}
	v, err := strconv.ParseFloat(tok.Value, 64)
	if err != nil {
		return NoneValue{}
	}
	return DimensionValue{Value: v, Unit: tok.Unit}
}

func (p *Parser) parseIdentifierValue() PrimitiveValue {
	tok := p.buffer.Next()
	if tok.Kind != TokenIdentifier {
		return NoneValue{}
	}
	return IdentifierValue{Name: tok.Value}
}

func (p *Parser) parseColorValue() PrimitiveValue {
	tok := p.buffer.Next()

	var literal string
	switch tok.Kind {
	case TokenHash:
		// Hash tokens carry the name without the leading '#'.
		literal = "#" + tok.Value
	case TokenIdentifier:
		literal = tok.Value
	default:
		return NoneValue{}
	}

	color, ok := ResolveColor(literal)
	if !ok {
		p.logger.Debug("unresolved color, using black", zap.String("literal", literal))
	}
	return ColorValue{Literal: literal, Color: color}
}

// parseFontValue accepts a quoted family name or a run of identifiers
// ("Go Mono"). Only the first family of a comma separated list is kept.
func (p *Parser) parseFontValue() PrimitiveValue {
	tok := p.buffer.Next()
	switch tok.Kind {
	case TokenString:
		if tok.Value == "" {
			return NoneValue{}
		}
		p.skipFontFallbacks()
		return StringValue{Text: tok.Value}
	case TokenIdentifier:
		words := []string{tok.Value}
		for p.buffer.Peek().Kind == TokenIdentifier {
			words = append(words, p.buffer.Next().Value)
		}
		p.skipFontFallbacks()
		return StringValue{Text: strings.Join(words, " ")}
	}
	return NoneValue{}
}

func (p *Parser) skipFontFallbacks() {
	if p.buffer.Peek().Kind == TokenComma {
		p.buffer.SkipUntil(TokenSemicolon)
	}
}
