// internal/browser/parser/tokenizer_test.go
package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tk builds a token for comparison. Offsets are ignored via ignoreOffsets.
func tk(kind TokenKind, value string) Token {
	return Token{Kind: kind, Value: value}
}

func dim(value, unit string) Token {
	return Token{Kind: TokenDimension, Value: value, Unit: unit}
}

var eoi = tk(TokenEndOfInput, "")

var ignoreOffsets = cmpopts.IgnoreFields(Token{}, "Start", "End")

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{"Empty", "", []Token{eoi}},
		{"Whitespace only", " \t\n ", []Token{eoi}},
		{"Identifier", "color", []Token{tk(TokenIdentifier, "color"), eoi}},
		{"Hyphenated identifier", "background-color", []Token{tk(TokenIdentifier, "background-color"), eoi}},
		{"Custom property prefix", "--main-bg", []Token{tk(TokenIdentifier, "--main-bg"), eoi}},
		{"Vendor prefix", "-moz-box", []Token{tk(TokenIdentifier, "-moz-box"), eoi}},
		{"Function", "rgb(", []Token{tk(TokenFunction, "rgb"), eoi}},
		{"Comment is invisible", "/* x */color", []Token{tk(TokenIdentifier, "color"), eoi}},
		{"Unterminated comment", "color /* x", []Token{tk(TokenIdentifier, "color"), eoi}},
		{"Dimension", "10px", []Token{dim("10", "px"), eoi}},
		{"Float dimension", "1.5em", []Token{dim("1.5", "em"), eoi}},
		{"Negative dimension", "-4px", []Token{dim("-4", "px"), eoi}},
		{"Dash unit", "1-moz", []Token{dim("1", "-moz"), eoi}},
		{"Integer", "42", []Token{tk(TokenInteger, "42"), eoi}},
		{"Signed integer", "+7", []Token{tk(TokenInteger, "+7"), eoi}},
		{"Number", "3.25", []Token{tk(TokenNumber, "3.25"), eoi}},
		{"Percentage", "50%", []Token{tk(TokenPercentage, "50"), eoi}},
		{"Number then negative number", "10 -5", []Token{tk(TokenInteger, "10"), tk(TokenInteger, "-5"), eoi}},
		{"Dash digit is not a unit", "10-5", []Token{tk(TokenInteger, "10"), tk(TokenInteger, "-5"), eoi}},
		{"Double quoted string", `"Go Mono"`, []Token{tk(TokenString, "Go Mono"), eoi}},
		{"Single quoted string", `'x'`, []Token{tk(TokenString, "x"), eoi}},
		{"Line break closes string", "\"ab\ncd", []Token{tk(TokenString, "ab"), tk(TokenIdentifier, "cd"), eoi}},
		{"Unterminated string", `"abc`, []Token{tk(TokenString, "abc"), eoi}},
		{"At keyword", "@media", []Token{tk(TokenAt, "media"), eoi}},
		{"Hash", "#ff0000", []Token{tk(TokenHash, "ff0000"), eoi}},
		{"Hash with leading digits", "#00ff00", []Token{tk(TokenHash, "00ff00"), eoi}},
		{"Lone hash", "# ", []Token{tk(TokenDelimiter, "#"), eoi}},
		{"Lone at", "@1", []Token{tk(TokenDelimiter, "@"), tk(TokenInteger, "1"), eoi}},
		{"Lone dash", "- x", []Token{tk(TokenDelimiter, "-"), tk(TokenIdentifier, "x"), eoi}},
		{"Punctuation", ",:;", []Token{tk(TokenComma, ","), tk(TokenColon, ":"), tk(TokenSemicolon, ";"), eoi}},
		{"Brackets are delimiters", "(]{", []Token{tk(TokenDelimiter, "("), tk(TokenDelimiter, "]"), tk(TokenDelimiter, "{"), eoi}},
		{"Declaration", "width: 10px;", []Token{
			tk(TokenIdentifier, "width"), tk(TokenColon, ":"), dim("10", "px"), tk(TokenSemicolon, ";"), eoi,
		}},
		{"Color declaration", "color:#fff", []Token{
			tk(TokenIdentifier, "color"), tk(TokenColon, ":"), tk(TokenHash, "fff"), eoi,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if diff := cmp.Diff(tt.expected, got, ignoreOffsets); diff != "" {
				t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestTokenizeSecondDot(t *testing.T) {
	got := Tokenize("1.2.3")
	want := []Token{tk(TokenNumber, "1.2"), tk(TokenDelimiter, "."), tk(TokenInteger, "3"), eoi}
	if diff := cmp.Diff(want, got, ignoreOffsets); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenOffsets(t *testing.T) {
	input := "width: 10px; /* c */ color: 'red'"
	tokens := Tokenize(input)

	require.NotEmpty(t, tokens)
	for _, tok := range tokens[:len(tokens)-1] {
		switch tok.Kind {
		case TokenString:
			assert.Equal(t, "'"+tok.Value+"'", input[tok.Start:tok.End])
		case TokenHash:
			assert.Equal(t, "#"+tok.Value, input[tok.Start:tok.End])
		case TokenDimension:
			assert.Equal(t, tok.Value+tok.Unit, input[tok.Start:tok.End])
		default:
			assert.Equal(t, tok.Value, input[tok.Start:tok.End])
		}
	}
	last := tokens[len(tokens)-1]
	assert.Equal(t, TokenEndOfInput, last.Kind)
	assert.Equal(t, len(input), last.Start)
}

// assertCoverage checks that token spans are ordered, never overlap, and
// that every byte between them is whitespace or part of a comment.
func assertCoverage(t *testing.T, input string, tokens []Token) {
	t.Helper()

	require.NotEmpty(t, tokens)
	ends := 0
	for i, tok := range tokens {
		if tok.Kind == TokenEndOfInput {
			assert.Equal(t, len(tokens)-1, i, "EndOfInput must be the last token")
		}
		require.GreaterOrEqual(t, tok.Start, ends, "token %d overlaps its predecessor", i)
		gap := input[ends:tok.Start]
		gap = stripComments(gap)
		assert.Empty(t, strings.TrimSpace(gap), "token %d leaves unconsumed input %q", i, gap)
		ends = tok.End
	}
	assert.Equal(t, len(input), ends)
}

func stripComments(s string) string {
	for {
		i := strings.Index(s, "/*")
		if i < 0 {
			return s
		}
		j := strings.Index(s[i+2:], "*/")
		if j < 0 {
			return s[:i]
		}
		s = s[:i] + s[i+2+j+2:]
	}
}

func TestTokenizeCoversInput(t *testing.T) {
	inputs := []string{
		"",
		"width: 10px; height: 5.5em",
		"/* a */ color: #00ff00 /* b */ ;",
		`font: "Go Mono", sans-serif;`,
		"@x #y -z --w 1% +2 -3.5 ... !important",
		"display:\tblock\n;\r\nleft:-1px",
		"élément: 1ünit",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			assertCoverage(t, in, Tokenize(in))
		})
	}
}

func TestTokenKindString(t *testing.T) {
	assert.Equal(t, "identifier", TokenIdentifier.String())
	assert.Equal(t, ";", TokenSemicolon.String())
	assert.Equal(t, "end of input", TokenEndOfInput.String())
	assert.Equal(t, "unknown", TokenKind(99).String())
}
