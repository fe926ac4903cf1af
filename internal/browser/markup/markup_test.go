// internal/browser/markup/markup_test.go
package markup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xkilldash9x/mpdf/internal/browser/dom"
	"github.com/xkilldash9x/mpdf/internal/browser/parser"
)

func parseHTML(t *testing.T, src string, opts ...Option) *dom.Document {
	t.Helper()
	opts = append([]Option{WithLogger(zap.NewNop())}, opts...)
	doc, err := NewBuilder(opts...).ParseHTML(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

// tags lists the tag of every element in document order.
func tags(doc *dom.Document) []string {
	var out []string
	doc.Walk(doc.RootIndex(), func(el *dom.Element) bool {
		out = append(out, el.Tag)
		return true
	})
	return out
}

// first returns the first element with tag.
func first(t *testing.T, doc *dom.Document, tag string) *dom.Element {
	t.Helper()
	var found *dom.Element
	doc.Walk(doc.RootIndex(), func(el *dom.Element) bool {
		if found == nil && el.Tag == tag {
			found = el
		}
		return found == nil
	})
	require.NotNil(t, found, "no <%s>", tag)
	return found
}

func TestParseHTMLStructure(t *testing.T) {
	doc := parseHTML(t, `<!DOCTYPE html><div><!-- note --><p>hi</p><span>there</span></div>`)

	assert.Equal(t,
		[]string{dom.RootTag, "html", "head", "body", "div", "p", dom.TextTag, "span", dom.TextTag},
		tags(doc))

	p := first(t, doc, "p")
	require.Len(t, p.Children, 1)
	assert.Equal(t, "hi", doc.Element(p.Children[0]).Text)
	assert.Equal(t, first(t, doc, "div").Index, p.Parent)
}

func TestWhitespaceText(t *testing.T) {
	src := "<div>\n  <p>a</p>\n  <p>b</p>\n</div>"

	collapsed := parseHTML(t, src)
	assert.Len(t, first(t, collapsed, "div").Children, 2)

	kept := parseHTML(t, src, KeepWhitespace())
	assert.Len(t, first(t, kept, "div").Children, 5)
}

func TestStyleAttribute(t *testing.T) {
	doc := parseHTML(t, `<div id="box" style="width: 64px; color: #ff0000; unknown: 1">x</div>`)
	div := first(t, doc, "div")

	assert.False(t, div.HasAttribute("style"), "style is not stored as an attribute")
	id, ok := div.Attribute("id")
	assert.True(t, ok)
	assert.Equal(t, "box", id)

	width, ok := div.Style().Get("width")
	require.True(t, ok)
	assert.Equal(t, parser.DimensionValue{Value: 64, Unit: "px"}, width)
	assert.True(t, div.Style().Has("color"), "authored layer")
	assert.False(t, div.HasStyleProperty("unknown"))

	display, ok := div.Style().GetDefault("display")
	require.True(t, ok, "tag defaults are still applied")
	assert.Equal(t, parser.IdentifierValue{Name: "block"}, display)
}

func TestStyleDiagnosticsAreLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	_, err := NewBuilder(WithLogger(zap.New(core))).
		ParseHTML(strings.NewReader(`<p style="unknown: 1; width: 5px">x</p>`))
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("unsupported property declaration").Len())
}

func TestParseMarkdown(t *testing.T) {
	src := "# Title\n\nSome *text* here.\n"
	doc, err := NewBuilder(WithLogger(zap.NewNop())).Parse(strings.NewReader(src), FormatMarkdown)
	require.NoError(t, err)

	h1 := first(t, doc, "h1")
	require.Len(t, h1.Children, 1)
	assert.Equal(t, "Title", doc.Element(h1.Children[0]).Text)
	assert.Contains(t, tags(doc), "em")
}

func TestParseUnsupported(t *testing.T) {
	_, err := NewBuilder().Parse(strings.NewReader(""), Format("rtf"))
	assert.ErrorIs(t, err, ErrUnsupportedInput)
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"in.html", FormatHTML, false},
		{"IN.HTM", FormatHTML, false},
		{"notes.md", FormatMarkdown, false},
		{"a/b/c.markdown", FormatMarkdown, false},
		{"doc.txt", "", true},
		{"noext", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatForPath(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
