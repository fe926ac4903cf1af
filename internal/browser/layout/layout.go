// internal/browser/layout/layout.go
package layout

import (
	"math"

	"go.uber.org/zap"

	"github.com/xkilldash9x/mpdf/internal/browser/dom"
	"github.com/xkilldash9x/mpdf/internal/browser/fonts"
	"github.com/xkilldash9x/mpdf/internal/browser/parser"
	"github.com/xkilldash9x/mpdf/internal/observability"
)

// -- Constants and Configuration --

const (
	DefaultFontSize   = 12.0
	DefaultFontFamily = "Arial"
)

// -- Layout Tree (Box Tree) --

// LayoutElement is the box computed for one source element. X and Y are
// page coordinates; LocalX and LocalY are relative to the parent box.
type LayoutElement struct {
	Element  int
	Width    float64
	Height   float64
	X        float64
	Y        float64
	LocalX   float64
	LocalY   float64
	Children []*LayoutElement
}

// Bottom returns the local Y of the box's bottom edge.
func (b *LayoutElement) Bottom() float64 {
	return b.LocalY + b.Height
}

// Right returns the local X of the box's right edge.
func (b *LayoutElement) Right() float64 {
	return b.LocalX + b.Width
}

// Walk visits b and its descendants depth-first in document order.
func (b *LayoutElement) Walk(fn func(box *LayoutElement)) {
	fn(b)
	for _, child := range b.Children {
		child.Walk(fn)
	}
}

// Count returns the number of boxes in the tree rooted at b.
func (b *LayoutElement) Count() int {
	n := 0
	b.Walk(func(*LayoutElement) { n++ })
	return n
}

// -- Engine Core --

// Engine lays out a cascaded document. It only reads the document.
type Engine struct {
	doc           *dom.Document
	fonts         fonts.Source
	fontSize      float64
	defaultFamily string
	logger        *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithFontSize sets the nominal size text is measured at.
func WithFontSize(size float64) Option {
	return func(e *Engine) {
		if size > 0 {
			e.fontSize = size
		}
	}
}

// WithDefaultFamily sets the family used for text without a font property.
func WithDefaultFamily(family string) Option {
	return func(e *Engine) {
		if family != "" {
			e.defaultFamily = family
		}
	}
}

// WithLogger sets the engine's logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates an engine over doc. source may be nil, in which case
// every text node measures as an empty box.
func NewEngine(doc *dom.Document, source fonts.Source, opts ...Option) *Engine {
	e := &Engine{
		doc:           doc,
		fonts:         source,
		fontSize:      DefaultFontSize,
		defaultFamily: DefaultFontFamily,
		logger:        observability.GetLogger().Named("layout"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ProcessDocument lays out the whole document and returns the root box with
// absolute coordinates resolved.
func (e *Engine) ProcessDocument() *LayoutElement {
	root := e.processElement(e.doc.Root())
	resolveAbsolute(root, 0, 0)
	e.logger.Debug("document laid out",
		zap.Int("boxes", root.Count()),
		zap.Float64("width", root.Width),
		zap.Float64("height", root.Height))
	return root
}

// -- Layout Algorithm --

// processElement computes the size and local offset of el's box. Children
// are laid out at the local origin and then stacked in document order.
func (e *Engine) processElement(el *dom.Element) *LayoutElement {
	box := &LayoutElement{Element: el.Index}

	if len(el.Children) == 0 {
		e.processLeaf(el, box)
	} else {
		e.processComposite(el, box)
	}

	e.clamp(el, box)
	e.applyOffset(el, box)
	return box
}

func (e *Engine) processLeaf(el *dom.Element, box *LayoutElement) {
	if !el.IsTextNode() {
		return
	}
	metrics, ok := e.metricsFor(el)
	if !ok {
		return
	}
	bb := metrics.TextBoundingBox(el.Text, e.fontSize, true)
	box.Width = bb.Width
	box.Height = bb.Height
}

func (e *Engine) processComposite(el *dom.Element, box *LayoutElement) {
	box.Children = make([]*LayoutElement, 0, len(el.Children))
	for _, handle := range el.Children {
		box.Children = append(box.Children, e.processElement(e.doc.Element(handle)))
	}

	// Each child starts below its previous sibling's final bottom edge.
	for i := 1; i < len(box.Children); i++ {
		box.Children[i].LocalY += box.Children[i-1].Bottom()
	}

	for _, child := range box.Children {
		box.Width = math.Max(box.Width, child.Right())
		box.Height = math.Max(box.Height, child.Bottom())
	}
}

// metricsFor resolves the font of a text node.
func (e *Engine) metricsFor(el *dom.Element) (fonts.Metrics, bool) {
	if e.fonts == nil {
		return nil, false
	}
	family := e.defaultFamily
	if v, ok := el.StyleProperty(parser.PropFont); ok {
		if name, ok := parser.AsString(v); ok && name != "" {
			family = name
		}
	}
	m, ok := e.fonts.Metrics(family)
	if !ok {
		e.logger.Debug("no metrics for font, text measures as empty",
			zap.String("family", family),
			zap.Int("element", el.Index))
	}
	return m, ok
}

// clamp keeps the box size within [min, max] on each axis. width and height
// act as minimums, falling back to min-width and min-height.
func (e *Engine) clamp(el *dom.Element, box *LayoutElement) {
	minW := firstDimension(el, 0, parser.PropWidth, parser.PropMinWidth)
	maxW := firstDimension(el, math.Inf(1), parser.PropMaxWidth)
	minH := firstDimension(el, 0, parser.PropHeight, parser.PropMinHeight)
	maxH := firstDimension(el, math.Inf(1), parser.PropMaxHeight)

	box.Width = clampValue(box.Width, minW, maxW)
	box.Height = clampValue(box.Height, minH, maxH)
}

func (e *Engine) applyOffset(el *dom.Element, box *LayoutElement) {
	box.LocalX += firstDimension(el, 0, parser.PropLeft)
	box.LocalY += firstDimension(el, 0, parser.PropTop)
}

// resolveAbsolute sets page coordinates top-down.
func resolveAbsolute(box *LayoutElement, originX, originY float64) {
	box.X = originX + box.LocalX
	box.Y = originY + box.LocalY
	for _, child := range box.Children {
		resolveAbsolute(child, box.X, box.Y)
	}
}

// -- Helpers --

// firstDimension returns the magnitude of the first of names carrying a
// dimension on el, or fallback. Units are not converted.
func firstDimension(el *dom.Element, fallback float64, names ...string) float64 {
	for _, name := range names {
		v, ok := el.StyleProperty(name)
		if !ok {
			continue
		}
		if d, ok := parser.AsDimension(v); ok {
			return d.Value
		}
	}
	return fallback
}

// clampValue applies the maximum last so that max wins over a larger min.
func clampValue(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
