// internal/browser/dom/style_properties.go
package dom

import (
	"sort"

	"github.com/xkilldash9x/mpdf/internal/browser/parser"
)

// inheritedProperties is the CSS2 inherited property index
// (https://drafts.csswg.org/css2/#property-index). Only these names travel
// from a parent to its children during the cascade. "text-ident" (sic) is
// matched literally.
var inheritedProperties = map[string]struct{}{
	"border-collapse":     {},
	"border-spacing":      {},
	"caption-side":        {},
	"color":               {},
	"cursor":              {},
	"direction":           {},
	"empty-cells":         {},
	"font":                {},
	"font-family":         {},
	"font-size":           {},
	"font-style":          {},
	"font-variant":        {},
	"font-weight":         {},
	"letter-spacing":      {},
	"line-height":         {},
	"list-style":          {},
	"list-style-image":    {},
	"list-style-position": {},
	"list-style-type":     {},
	"orphans":             {},
	"quotes":              {},
	"text-align":          {},
	"text-ident":          {},
	"text-transform":      {},
	"visibility":          {},
	"white-space":         {},
	"widows":              {},
	"word-spacing":        {},
}

// CanBeInherited reports whether the named property propagates to children.
func CanBeInherited(name string) bool {
	_, ok := inheritedProperties[name]
	return ok
}

// ElementStyleProperties keeps authored declarations (from the style
// attribute, or inherited through the cascade) apart from tag defaults.
type ElementStyleProperties struct {
	authored map[string]parser.PrimitiveValue
	defaults map[string]parser.PrimitiveValue
}

func NewElementStyleProperties() *ElementStyleProperties {
	return &ElementStyleProperties{
		authored: make(map[string]parser.PrimitiveValue),
		defaults: make(map[string]parser.PrimitiveValue),
	}
}

func (s *ElementStyleProperties) Set(name string, value parser.PrimitiveValue) {
	s.authored[name] = value
}

func (s *ElementStyleProperties) SetDefault(name string, value parser.PrimitiveValue) {
	s.defaults[name] = value
}

// Get returns the authored value of name, falling back to the default.
func (s *ElementStyleProperties) Get(name string) (parser.PrimitiveValue, bool) {
	if v, ok := s.authored[name]; ok {
		return v, true
	}
	v, ok := s.defaults[name]
	return v, ok
}

func (s *ElementStyleProperties) GetDefault(name string) (parser.PrimitiveValue, bool) {
	v, ok := s.defaults[name]
	return v, ok
}

// Has reports whether name is set in the authored layer.
func (s *ElementStyleProperties) Has(name string) bool {
	_, ok := s.authored[name]
	return ok
}

func (s *ElementStyleProperties) HasDefault(name string) bool {
	_, ok := s.defaults[name]
	return ok
}

// Names returns every property name set in either layer, sorted.
func (s *ElementStyleProperties) Names() []string {
	seen := make(map[string]struct{}, len(s.authored)+len(s.defaults))
	for n := range s.authored {
		seen[n] = struct{}{}
	}
	for n := range s.defaults {
		seen[n] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of distinct property names.
func (s *ElementStyleProperties) Len() int {
	return len(s.Names())
}

// Merge resolves child against its parent. Highest precedence first:
//
//  1. authored properties of child
//  2. inheritable authored properties of parent
//  3. inheritable default properties of parent
//  4. default properties of child
//
// The first three tiers land in the authored layer of the result, the
// fourth stays in its default layer. Neither input is modified.
func Merge(child, parent *ElementStyleProperties) *ElementStyleProperties {
	result := NewElementStyleProperties()

	for name, v := range child.authored {
		result.authored[name] = v
	}
	for name, v := range parent.authored {
		if _, set := result.authored[name]; !set && CanBeInherited(name) {
			result.authored[name] = v
		}
	}
	for name, v := range parent.defaults {
		if _, set := result.authored[name]; !set && CanBeInherited(name) {
			result.authored[name] = v
		}
	}
	for name, v := range child.defaults {
		result.defaults[name] = v
	}

	return result
}
