// internal/render/json.go
package render

import (
	"fmt"
	"io"

	json "github.com/json-iterator/go"

	"github.com/xkilldash9x/mpdf/internal/browser/layout"
)

// BoxJSON is the serialized form of one layout box.
type BoxJSON struct {
	Element    int       `json:"element"`
	Tag        string    `json:"tag"`
	Text       string    `json:"text,omitempty"`
	X          float64   `json:"x"`
	Y          float64   `json:"y"`
	Width      float64   `json:"width"`
	Height     float64   `json:"height"`
	Background string    `json:"background,omitempty"`
	Color      string    `json:"color,omitempty"`
	Font       string    `json:"font,omitempty"`
	Children   []BoxJSON `json:"children,omitempty"`
}

// JSONRenderer writes the absolute box tree with resolved drawing attributes.
type JSONRenderer struct {
	writer io.WriteCloser
}

func NewJSONRenderer(w io.WriteCloser) *JSONRenderer {
	return &JSONRenderer{writer: w}
}

func (r *JSONRenderer) Render(page *Page) error {
	if err := checkPage(page); err != nil {
		return err
	}

	items := make(map[*layout.LayoutElement]paintItem)
	for _, item := range paintList(page) {
		items[item.Box] = item
	}

	enc := json.NewEncoder(r.writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toJSON(page.Root, items)); err != nil {
		return fmt.Errorf("failed to encode box tree: %w", err)
	}
	return nil
}

func (r *JSONRenderer) Close() error {
	return r.writer.Close()
}

func toJSON(box *layout.LayoutElement, items map[*layout.LayoutElement]paintItem) BoxJSON {
	item := items[box]
	out := BoxJSON{
		Element: box.Element,
		Tag:     item.Tag,
		X:       box.X,
		Y:       box.Y,
		Width:   box.Width,
		Height:  box.Height,
	}
	if item.Background != nil {
		out.Background = item.Background.Hex()
	}
	if item.IsText {
		out.Text = item.Text
		out.Color = item.TextColor.Hex()
		out.Font = item.Family
	}
	for _, child := range box.Children {
		out.Children = append(out.Children, toJSON(child, items))
	}
	return out
}
