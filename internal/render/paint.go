// internal/render/paint.go
package render

import (
	"github.com/xkilldash9x/mpdf/internal/browser/dom"
	"github.com/xkilldash9x/mpdf/internal/browser/fonts"
	"github.com/xkilldash9x/mpdf/internal/browser/layout"
	"github.com/xkilldash9x/mpdf/internal/browser/parser"
)

// paintItem is one box with its drawing attributes resolved from the
// cascaded document.
type paintItem struct {
	Box *layout.LayoutElement
	Tag string

	// Background is set only when a visible background-color is resolved.
	Background *parser.Color

	IsText    bool
	Text      string
	TextColor parser.Color
	// Font is nil when the family was not resolved; renderers use their
	// fallback font then.
	Font   *fonts.Font
	Family string
	// Baseline is the absolute y to draw the text at.
	Baseline float64
}

// DrawsText reports whether the item has visible text.
func (p paintItem) DrawsText() bool {
	return p.IsText && p.Text != "" && p.TextColor.IsVisible()
}

// paintList flattens the box tree in paint order (document order).
func paintList(page *Page) []paintItem {
	if page == nil || page.Root == nil || page.Document == nil {
		return nil
	}
	size := page.FontSize
	if size <= 0 {
		size = layout.DefaultFontSize
	}
	defaultFamily := page.DefaultFamily
	if defaultFamily == "" {
		defaultFamily = layout.DefaultFontFamily
	}

	var items []paintItem
	page.Root.Walk(func(box *layout.LayoutElement) {
		el, ok := page.Document.Lookup(box.Element)
		if !ok {
			return
		}
		item := paintItem{Box: box, Tag: el.Tag}

		if v, ok := el.StyleProperty(parser.PropBackgroundColor); ok {
			if c, ok := parser.AsColor(v); ok && c.IsVisible() {
				item.Background = &c
			}
		}

		if el.IsTextNode() {
			item.IsText = true
			item.Text = el.Text
			item.TextColor = textColor(el)
			item.Family = familyOf(el, defaultFamily)
			item.Baseline = box.Y + size
			if page.Fonts != nil {
				if f, ok := page.Fonts.Font(item.Family); ok {
					item.Font = f
					bb := f.TextBoundingBox(el.Text, size, true)
					item.Baseline = box.Y + bb.Height - bb.Y
				}
			}
		}

		items = append(items, item)
	})
	return items
}

func textColor(el *dom.Element) parser.Color {
	if v, ok := el.StyleProperty(parser.PropColor); ok {
		if c, ok := parser.AsColor(v); ok {
			return c
		}
	}
	return parser.Black
}

func familyOf(el *dom.Element, fallback string) string {
	if v, ok := el.StyleProperty(parser.PropFont); ok {
		if name, ok := parser.AsString(v); ok && name != "" {
			return name
		}
	}
	return fallback
}
