// internal/render/render.go
package render

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xkilldash9x/mpdf/internal/browser/dom"
	"github.com/xkilldash9x/mpdf/internal/browser/fonts"
	"github.com/xkilldash9x/mpdf/internal/browser/layout"
	"github.com/xkilldash9x/mpdf/internal/config"
)

// ErrUnsupportedFormat is returned for output formats with no renderer.
var ErrUnsupportedFormat = errors.New("unsupported output format")

const (
	FormatPDF  = "pdf"
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// Page is everything a renderer needs: the laid out box tree and the
// cascaded document it was computed from.
type Page struct {
	Document      *dom.Document
	Root          *layout.LayoutElement
	Fonts         *fonts.Registry
	FontSize      float64
	DefaultFamily string
}

// Renderer defines the interface for drawing a page to an output.
type Renderer interface {
	// Render draws the page and writes the encoded result.
	Render(page *Page) error
	// Close releases the underlying output.
	Close() error
}

// ErrEmptyPage is returned when a page has no document or box tree.
var ErrEmptyPage = errors.New("page has no layout")

func checkPage(page *Page) error {
	if page == nil || page.Document == nil || page.Root == nil {
		return ErrEmptyPage
	}
	return nil
}

// nopWriteCloser wraps an io.Writer and provides a no-op Close method.
type nopWriteCloser struct {
	io.Writer
}

func (nwc *nopWriteCloser) Close() error {
	return nil
}

// FormatForPath infers the output format from the file extension.
func FormatForPath(path string) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case FormatPDF, FormatPNG, FormatSVG, FormatJSON:
		return ext, nil
	}
	return "", fmt.Errorf("%w: cannot infer format from %q", ErrUnsupportedFormat, path)
}

// New creates a renderer for format writing to outputPath. An empty format is
// inferred from the path; "" or "stdout" as the path writes to stdout.
func New(format, outputPath string, page config.PageConfig) (Renderer, error) {
	isStdOut := outputPath == "" || outputPath == "stdout"

	format = strings.ToLower(format)
	if format == "" {
		if isStdOut {
			format = FormatJSON
		} else {
			inferred, err := FormatForPath(outputPath)
			if err != nil {
				return nil, err
			}
			format = inferred
		}
	}

	switch format {
	case FormatPDF, FormatPNG, FormatSVG, FormatJSON:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	var writer io.WriteCloser
	if isStdOut {
		// Wrap Stdout so Close() is a no-op.
		writer = &nopWriteCloser{os.Stdout}
	} else {
		f, err := os.Create(outputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create output file %s: %w", outputPath, err)
		}
		writer = f
	}

	return NewWithWriter(format, writer, page)
}

// NewWithWriter creates a renderer that takes ownership of w.
func NewWithWriter(format string, w io.WriteCloser, page config.PageConfig) (Renderer, error) {
	switch strings.ToLower(format) {
	case FormatPDF:
		return NewPDFRenderer(w, page), nil
	case FormatPNG:
		return NewPNGRenderer(w, page), nil
	case FormatSVG:
		return NewSVGRenderer(w, page), nil
	case FormatJSON:
		return NewJSONRenderer(w), nil
	default:
		w.Close()
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}
