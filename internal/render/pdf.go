// internal/render/pdf.go
package render

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"github.com/xkilldash9x/mpdf/internal/browser/layout"
	"github.com/xkilldash9x/mpdf/internal/browser/parser"
	"github.com/xkilldash9x/mpdf/internal/config"
	"github.com/xkilldash9x/mpdf/internal/observability"
)

// fallbackPDFFont is the core font used for text whose family was not loaded.
const fallbackPDFFont = "Times"

// PDFRenderer draws the page onto a single page of the configured size.
type PDFRenderer struct {
	writer io.WriteCloser
	page   config.PageConfig
	logger *zap.Logger
}

func NewPDFRenderer(w io.WriteCloser, page config.PageConfig) *PDFRenderer {
	return &PDFRenderer{writer: w, page: page, logger: observability.GetLogger().Named("pdf")}
}

// mm converts layout pixels to millimeters.
func (r *PDFRenderer) mm(px float64) float64 {
	return px * 25.4 / r.page.DPI
}

func (r *PDFRenderer) Render(page *Page) error {
	if err := checkPage(page); err != nil {
		return err
	}
	size := page.FontSize
	if size <= 0 {
		size = layout.DefaultFontSize
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: r.page.WidthMM, Ht: r.page.HeightMM},
	})
	pdf.SetCreator("mpdf", true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	embedded := make(map[string]bool)
	if page.Fonts != nil {
		for _, family := range page.Fonts.Families() {
			f, _ := page.Fonts.Font(family)
			if err := embedFont(pdf, family, f.Data); err != nil {
				r.logger.Warn("unable to embed font, using fallback",
					zap.String("family", family),
					zap.Error(err))
				continue
			}
			embedded[family] = true
		}
	}
	translate := pdf.UnicodeTranslatorFromDescriptor("")

	for _, item := range paintList(page) {
		box := item.Box
		if item.Background != nil && box.Width > 0 && box.Height > 0 {
			fillRect(pdf, *item.Background, r.mm(box.X), r.mm(box.Y), r.mm(box.Width), r.mm(box.Height))
		}

		if !item.DrawsText() {
			continue
		}
		c := item.TextColor
		pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
		text := item.Text
		if item.Font != nil && embedded[item.Family] {
			pdf.SetFont(item.Family, "", size)
		} else {
			pdf.SetFont(fallbackPDFFont, "", size)
			text = translate(text)
		}
		pdf.Text(r.mm(box.X), r.mm(item.Baseline), text)
	}

	if err := pdf.Output(r.writer); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

func (r *PDFRenderer) Close() error {
	return r.writer.Close()
}

func fillRect(pdf *gofpdf.Fpdf, c parser.Color, x, y, w, h float64) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	if c.A < 255 {
		pdf.SetAlpha(float64(c.A)/255, "Normal")
		defer pdf.SetAlpha(1, "Normal")
	}
	pdf.Rect(x, y, w, h, "F")
}

// embedFont registers a UTF-8 TrueType font with pdf. A font gofpdf cannot
// parse leaves pdf without an error state and the family unregistered.
func embedFont(pdf *gofpdf.Fpdf, family string, data []byte) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("malformed font data: %v", rec)
		}
		if pdf.Err() {
			if err == nil {
				err = pdf.Error()
			}
			pdf.ClearError()
		}
	}()

	pdf.AddUTF8FontFromBytes(family, "", data)
	if pdf.Err() {
		return pdf.Error()
	}
	if pdf.GetFontDesc(family, "") == (gofpdf.FontDescType{}) {
		return fmt.Errorf("font %q was not registered", family)
	}
	return nil
}
