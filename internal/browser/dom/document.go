// internal/browser/dom/document.go
package dom

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/xkilldash9x/mpdf/internal/browser/parser"
	"github.com/xkilldash9x/mpdf/internal/observability"
)

// RootTag is the tag of the implicit root element.
const RootTag = "root"

// Document is an arena of elements addressed by integer handle. Handles are
// never reused; the first element created is the root and every other
// element hangs below it once linked.
//
// A Document is not safe for concurrent mutation. It is built once, cascaded
// once, and then only read.
type Document struct {
	root     int
	elements []*Element
	logger   *zap.Logger
}

// NewDocument creates a document holding only its root element. A nil
// logger uses the global one.
func NewDocument(logger *zap.Logger) *Document {
	if logger == nil {
		logger = observability.GetLogger().Named("dom")
	}
	d := &Document{logger: logger}
	d.root = d.CreateElement(RootTag)
	return d
}

// CreateElement appends a new element with the built-in defaults for tag
// and returns its handle. The element is not linked anywhere yet.
func (d *Document) CreateElement(tag string) int {
	idx := len(d.elements)
	el := newElement(idx, tag)
	el.applyDefaults(defaultDeclarations(tag))
	d.elements = append(d.elements, el)
	return idx
}

// CreateTextElement appends a text node.
func (d *Document) CreateTextElement(text string) int {
	idx := d.CreateElement(TextTag)
	d.elements[idx].Text = text
	return idx
}

// AddElement links child as the last child of parent.
//
// Linking an element under itself, under one of its own descendants, or
// using a handle that does not exist is a programming error and panics.
// Linking an element that already has a parent is a no-op with a warning.
func (d *Document) AddElement(child, parent int) {
	if child == parent {
		panic(fmt.Sprintf("dom: circular reference, element %d added to itself", child))
	}
	if !d.valid(child) {
		panic(fmt.Sprintf("dom: attempted to add unknown element %d (document has %d)", child, len(d.elements)))
	}
	if !d.valid(parent) {
		panic(fmt.Sprintf("dom: attempted to add element %d to unknown parent %d (document has %d)", child, parent, len(d.elements)))
	}

	c := d.elements[child]
	if c.HasParent {
		if c.Parent == parent {
			d.logger.Warn("attempted to add an element to its parent multiple times",
				zap.Int("element", child), zap.Int("parent", parent))
		} else {
			d.logger.Warn("attempted to add an element that already has a parent",
				zap.Int("element", child), zap.Int("parent", parent), zap.Int("current_parent", c.Parent))
		}
		return
	}
	if d.isAncestor(child, parent) {
		panic(fmt.Sprintf("dom: circular reference, element %d is an ancestor of %d", child, parent))
	}

	p := d.elements[parent]
	p.Children = append(p.Children, child)
	c.Parent = parent
	c.HasParent = true
}

// AddElementToRoot links child directly under the root.
func (d *Document) AddElementToRoot(child int) {
	d.AddElement(child, d.root)
}

// Element returns the element behind a handle. Unknown handles panic.
func (d *Document) Element(index int) *Element {
	if !d.valid(index) {
		panic(fmt.Sprintf("dom: unknown element %d (document has %d)", index, len(d.elements)))
	}
	return d.elements[index]
}

// Lookup is the non-panicking variant of Element.
func (d *Document) Lookup(index int) (*Element, bool) {
	if !d.valid(index) {
		return nil, false
	}
	return d.elements[index], true
}

func (d *Document) RootIndex() int {
	return d.root
}

func (d *Document) Root() *Element {
	return d.elements[d.root]
}

// Len returns the number of elements ever created.
func (d *Document) Len() int {
	return len(d.elements)
}

// GetElementStyleProperty looks name up on the element, then on each
// ancestor in turn. It returns false if no element on the path sets it.
func (d *Document) GetElementStyleProperty(index int, name string) (parser.PrimitiveValue, bool) {
	el, ok := d.Lookup(index)
	for ok {
		if v, found := el.StyleProperty(name); found {
			return v, true
		}
		if !el.HasParent {
			break
		}
		el, ok = d.Lookup(el.Parent)
	}
	return nil, false
}

// Walk visits the subtree rooted at start in document order. Returning
// false from fn skips the children of that element.
func (d *Document) Walk(start int, fn func(el *Element) bool) {
	el, ok := d.Lookup(start)
	if !ok {
		return
	}
	if !fn(el) {
		return
	}
	for _, c := range el.Children {
		d.Walk(c, fn)
	}
}

func (d *Document) valid(index int) bool {
	return index >= 0 && index < len(d.elements)
}

// isAncestor reports whether candidate is index or one of its ancestors.
func (d *Document) isAncestor(candidate, index int) bool {
	for i := index; ; {
		if i == candidate {
			return true
		}
		el := d.elements[i]
		if !el.HasParent {
			return false
		}
		i = el.Parent
	}
}
