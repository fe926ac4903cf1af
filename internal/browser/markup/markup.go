// internal/browser/markup/markup.go
package markup

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/xkilldash9x/mpdf/internal/browser/dom"
	"github.com/xkilldash9x/mpdf/internal/browser/parser"
	"github.com/xkilldash9x/mpdf/internal/observability"
)

// ErrUnsupportedInput is returned for input files of an unknown kind.
var ErrUnsupportedInput = errors.New("unsupported input format")

// Format is the kind of markup being read.
type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

// FormatForPath infers the input format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".xhtml":
		return FormatHTML, nil
	case ".md", ".markdown":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedInput, filepath.Ext(path))
}

// Builder turns parsed markup into a Document.
type Builder struct {
	logger         *zap.Logger
	keepWhitespace bool
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger for attribute and style diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// KeepWhitespace keeps text nodes made only of whitespace.
func KeepWhitespace() Option {
	return func(b *Builder) { b.keepWhitespace = true }
}

func NewBuilder(opts ...Option) *Builder {
	b := &Builder{logger: observability.GetLogger().Named("markup")}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Parse reads r as format and builds a document from it.
func (b *Builder) Parse(r io.Reader, format Format) (*dom.Document, error) {
	switch format {
	case FormatHTML:
		return b.ParseHTML(r)
	case FormatMarkdown:
		src, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read markdown: %w", err)
		}
		var out bytes.Buffer
		md := goldmark.New(goldmark.WithExtensions(extension.GFM))
		if err := md.Convert(src, &out); err != nil {
			return nil, fmt.Errorf("failed to convert markdown: %w", err)
		}
		return b.ParseHTML(&out)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedInput, format)
}

// ParseHTML parses an HTML document.
func (b *Builder) ParseHTML(r io.Reader) (*dom.Document, error) {
	node, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}
	doc := dom.NewDocument(b.logger)
	b.walk(doc, node)
	return doc, nil
}

// walk creates the element for n, links its children under it and returns
// its handle. Nodes that produce no element return false.
func (b *Builder) walk(doc *dom.Document, n *html.Node) (int, bool) {
	handle, ok := b.visit(doc, n)
	if !ok {
		return 0, false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if child, ok := b.walk(doc, c); ok {
			doc.AddElement(child, handle)
		}
	}
	return handle, true
}

func (b *Builder) visit(doc *dom.Document, n *html.Node) (int, bool) {
	switch n.Type {
	case html.DocumentNode:
		return doc.RootIndex(), true

	case html.TextNode:
		if !b.keepWhitespace && strings.TrimSpace(n.Data) == "" {
			return 0, false
		}
		return doc.CreateTextElement(n.Data), true

	case html.ElementNode:
		handle := doc.CreateElement(n.Data)
		el := doc.Element(handle)
		for _, attr := range n.Attr {
			if attr.Key == "style" {
				el.AddDeclarations(parser.NewParser(attr.Val, b.logger.Named("css")).ParseInline())
				continue
			}
			if err := el.AddAttribute(attr.Key, attr.Val); err != nil {
				b.logger.Warn("dropping attribute", zap.String("tag", n.Data), zap.Error(err))
			}
		}
		return handle, true
	}
	// Doctype, comments and raw nodes carry nothing to lay out.
	return 0, false
}
