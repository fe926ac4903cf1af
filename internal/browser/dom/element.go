// internal/browser/dom/element.go
package dom

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/xkilldash9x/mpdf/internal/browser/parser"
)

// TextTag is the tag of text nodes.
const TextTag = "#text"

// ErrInvalidAttributeName is returned for attribute names containing
// whitespace.
var ErrInvalidAttributeName = errors.New("attribute name must not contain whitespace")

// Element is a node of a Document. Parent and Children are handles into the
// owning document's arena.
type Element struct {
	Index     int
	Tag       string
	Text      string // Only set for text nodes.
	Parent    int
	HasParent bool
	Children  []int

	attributes map[string]string
	style      *ElementStyleProperties
}

func newElement(index int, tag string) *Element {
	return &Element{
		Index:      index,
		Tag:        tag,
		attributes: make(map[string]string),
		style:      NewElementStyleProperties(),
	}
}

// IsTextNode reports whether the element carries text instead of children.
func (e *Element) IsTextNode() bool {
	return e.Tag == TextTag
}

// AddAttribute stores an attribute verbatim.
func (e *Element) AddAttribute(name, value string) error {
	if name == "" || strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidAttributeName, name)
	}
	e.attributes[name] = value
	return nil
}

func (e *Element) Attribute(name string) (string, bool) {
	v, ok := e.attributes[name]
	return v, ok
}

func (e *Element) HasAttribute(name string) bool {
	_, ok := e.attributes[name]
	return ok
}

func (e *Element) RemoveAttribute(name string) {
	delete(e.attributes, name)
}

// AttributeNames returns the attribute names in sorted order.
func (e *Element) AttributeNames() []string {
	names := make([]string, 0, len(e.attributes))
	for n := range e.attributes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// AddStyleProperty sets an authored style property.
func (e *Element) AddStyleProperty(name string, value parser.PrimitiveValue) {
	e.style.Set(name, value)
}

// AddDeclarations installs parsed declarations into the authored layer.
// Later declarations of the same name win.
func (e *Element) AddDeclarations(decls []parser.PropertyDeclaration) {
	for _, d := range decls {
		e.style.Set(d.Name, d.Value)
	}
}

// StyleProperty returns the element's own value of name, authored first.
// It does not look at ancestors; see Document.GetElementStyleProperty.
func (e *Element) StyleProperty(name string) (parser.PrimitiveValue, bool) {
	return e.style.Get(name)
}

// HasStyleProperty reports whether name is authored on the element.
func (e *Element) HasStyleProperty(name string) bool {
	return e.style.Has(name)
}

func (e *Element) Style() *ElementStyleProperties {
	return e.style
}

func (e *Element) SetStyle(s *ElementStyleProperties) {
	if s == nil {
		s = NewElementStyleProperties()
	}
	e.style = s
}

func (e *Element) applyDefaults(decls []parser.PropertyDeclaration) {
	for _, d := range decls {
		e.style.SetDefault(d.Name, d.Value)
	}
}
