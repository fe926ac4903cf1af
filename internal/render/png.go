// internal/render/png.go
package render

import (
	"fmt"
	"io"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/xkilldash9x/mpdf/internal/browser/layout"
	"github.com/xkilldash9x/mpdf/internal/browser/parser"
	"github.com/xkilldash9x/mpdf/internal/config"
)

// PNGRenderer rasterizes the page one layout pixel per image pixel.
type PNGRenderer struct {
	writer        io.WriteCloser
	width, height int
}

func NewPNGRenderer(w io.WriteCloser, page config.PageConfig) *PNGRenderer {
	return &PNGRenderer{writer: w, width: page.PNGWidth, height: page.PNGHeight}
}

func (r *PNGRenderer) Render(page *Page) error {
	if err := checkPage(page); err != nil {
		return err
	}
	dc := gg.NewContext(r.width, r.height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	size := page.FontSize
	if size <= 0 {
		size = layout.DefaultFontSize
	}

	for _, item := range paintList(page) {
		box := item.Box
		if item.Background != nil && box.Width > 0 && box.Height > 0 {
			setColor(dc, *item.Background)
			dc.DrawRectangle(box.X, box.Y, box.Width, box.Height)
			dc.Fill()
		}

		if !item.DrawsText() {
			continue
		}
		if item.Font != nil {
			dc.SetFontFace(item.Font.Face(size))
		} else {
			dc.SetFontFace(basicfont.Face7x13)
		}
		setColor(dc, item.TextColor)
		dc.DrawString(item.Text, box.X, item.Baseline)
	}

	if err := dc.EncodePNG(r.writer); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

func (r *PNGRenderer) Close() error {
	return r.writer.Close()
}

func setColor(dc *gg.Context, c parser.Color) {
	dc.SetRGBA255(int(c.R), int(c.G), int(c.B), int(c.A))
}
