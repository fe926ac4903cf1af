// internal/browser/fonts/font.go
package fonts

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Rect is an axis-aligned box in pixels.
type Rect struct {
	X, Y, Width, Height float64
}

// Metrics measures text set in one font.
type Metrics interface {
	TextBoundingBox(text string, size float64, includeDescent bool) Rect
}

// Source resolves a font family name to its metrics. A missing family is
// reported with ok == false, never as an error.
type Source interface {
	Metrics(family string) (Metrics, bool)
}

// Font is a parsed TrueType font. Faces are created lazily per size and
// cached; a Font may be shared across goroutines.
type Font struct {
	Name string
	// Data is the raw font file, kept for renderers that embed it.
	Data []byte

	ttf   *truetype.Font
	mu    sync.Mutex
	faces map[float64]font.Face
}

// ParseFont parses TrueType data.
func ParseFont(name string, data []byte) (*Font, error) {
	ttf, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %q: %w", name, err)
	}
	return &Font{
		Name:  name,
		Data:  data,
		ttf:   ttf,
		faces: make(map[float64]font.Face),
	}, nil
}

// Face returns a face at size. Sizes are pixels: faces are built at 72 dpi
// so one point is one pixel.
func (f *Font) Face(size float64) font.Face {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.faceLocked(size)
}

func (f *Font) faceLocked(size float64) font.Face {
	if face, ok := f.faces[size]; ok {
		return face
	}
	face := truetype.NewFace(f.ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	f.faces[size] = face
	return face
}

// CharacterBoundingBox returns the advance of r as Width, the glyph's
// ink height as Height, and the lowest point of the glyph relative to the
// baseline as Y (negative below the baseline). Unknown glyphs yield a zero
// box.
func (f *Font) CharacterBoundingBox(r rune, size float64) Rect {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.characterBoundsLocked(f.faceLocked(size), r)
}

func (f *Font) characterBoundsLocked(face font.Face, r rune) Rect {
	if f.ttf.Index(r) == 0 {
		return Rect{}
	}
	bounds, advance, ok := face.GlyphBounds(r)
	if !ok {
		return Rect{}
	}
	// Face coordinates grow downwards: Min.Y is the top of the ink, Max.Y
	// the bottom.
	return Rect{
		Y:      -toFloat(bounds.Max.Y),
		Width:  toFloat(advance),
		Height: toFloat(bounds.Max.Y - bounds.Min.Y),
	}
}

// TextBoundingBox measures text as one unbroken run. Width is the sum of
// the advances and Height the tallest glyph. Y is the distance from the
// baseline down to the lowest glyph point. With includeDescent the font's
// descent is added to Height.
func (f *Font) TextBoundingBox(text string, size float64, includeDescent bool) Rect {
	f.mu.Lock()
	defer f.mu.Unlock()

	face := f.faceLocked(size)
	var width, height, minY float64
	for _, r := range text {
		cb := f.characterBoundsLocked(face, r)
		width += cb.Width
		height = max(height, cb.Height)
		minY = min(minY, cb.Y)
	}

	if includeDescent {
		height += toFloat(face.Metrics().Descent)
	}

	return Rect{X: 0, Y: -minY, Width: width, Height: height}
}

// Ascent returns the font's ascent at size.
func (f *Font) Ascent(size float64) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return toFloat(f.faceLocked(size).Metrics().Ascent)
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
