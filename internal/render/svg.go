// internal/render/svg.go
package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/beevik/etree"

	"github.com/xkilldash9x/mpdf/internal/browser/layout"
	"github.com/xkilldash9x/mpdf/internal/config"
)

const svgNamespace = "http://www.w3.org/2000/svg"

// SVGRenderer writes one <rect> per visible background and one <text> per
// text node, in paint order.
type SVGRenderer struct {
	writer        io.WriteCloser
	width, height int
}

func NewSVGRenderer(w io.WriteCloser, page config.PageConfig) *SVGRenderer {
	return &SVGRenderer{writer: w, width: page.PNGWidth, height: page.PNGHeight}
}

func (r *SVGRenderer) Render(page *Page) error {
	if err := checkPage(page); err != nil {
		return err
	}
	size := page.FontSize
	if size <= 0 {
		size = layout.DefaultFontSize
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	svg := doc.CreateElement("svg")
	svg.CreateAttr("xmlns", svgNamespace)
	svg.CreateAttr("width", strconv.Itoa(r.width))
	svg.CreateAttr("height", strconv.Itoa(r.height))
	svg.CreateAttr("viewBox", fmt.Sprintf("0 0 %d %d", r.width, r.height))

	bg := svg.CreateElement("rect")
	bg.CreateAttr("width", "100%")
	bg.CreateAttr("height", "100%")
	bg.CreateAttr("fill", "#ffffff")

	for _, item := range paintList(page) {
		box := item.Box
		if item.Background != nil && box.Width > 0 && box.Height > 0 {
			rect := svg.CreateElement("rect")
			rect.CreateAttr("x", num(box.X))
			rect.CreateAttr("y", num(box.Y))
			rect.CreateAttr("width", num(box.Width))
			rect.CreateAttr("height", num(box.Height))
			rect.CreateAttr("fill", item.Background.Hex())
			rect.CreateAttr("data-tag", item.Tag)
		}

		if !item.DrawsText() {
			continue
		}
		text := svg.CreateElement("text")
		text.CreateAttr("x", num(box.X))
		text.CreateAttr("y", num(item.Baseline))
		text.CreateAttr("font-family", item.Family)
		text.CreateAttr("font-size", num(size))
		text.CreateAttr("fill", item.TextColor.Hex())
		text.SetText(item.Text)
	}

	doc.Indent(2)
	if _, err := doc.WriteTo(r.writer); err != nil {
		return fmt.Errorf("failed to write svg: %w", err)
	}
	return nil
}

func (r *SVGRenderer) Close() error {
	return r.writer.Close()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
