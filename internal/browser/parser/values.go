// internal/browser/parser/values.go
package parser

import "strconv"

// ValueKind tags the variants of PrimitiveValue.
type ValueKind int

const (
	KindNone ValueKind = iota
	KindIdentifier
	KindColor
	KindString
	KindDimension
)

func (k ValueKind) String() string {
	switch k {
	case KindIdentifier:
		return "identifier"
	case KindColor:
		return "color"
	case KindString:
		return "string"
	case KindDimension:
		return "dimension"
	default:
		return "none"
	}
}

// PrimitiveValue is a resolved declaration value. The set of implementations
// is closed: IdentifierValue, ColorValue, StringValue, DimensionValue and
// NoneValue. Consumers switch on the concrete type.
type PrimitiveValue interface {
	Kind() ValueKind
	String() string
	isPrimitiveValue()
}

// IdentifierValue is a bare keyword such as "block".
type IdentifierValue struct {
	Name string
}

// ColorValue keeps the literal it was resolved from next to the color.
type ColorValue struct {
	Literal string
	Color   Color
}

// StringValue is literal text, e.g. a font family.
type StringValue struct {
	Text string
}

// DimensionValue is a magnitude with its unit, e.g. 10 "px".
type DimensionValue struct {
	Value float64
	Unit  string
}

// NoneValue marks an absent or unparseable value.
type NoneValue struct{}

func (IdentifierValue) Kind() ValueKind { return KindIdentifier }
func (ColorValue) Kind() ValueKind      { return KindColor }
func (StringValue) Kind() ValueKind     { return KindString }
func (DimensionValue) Kind() ValueKind  { return KindDimension }
func (NoneValue) Kind() ValueKind       { return KindNone }

func (v IdentifierValue) String() string { return v.Name }
func (v ColorValue) String() string      { return v.Literal }
func (v StringValue) String() string     { return v.Text }
func (v DimensionValue) String() string {
	return strconv.FormatFloat(v.Value, 'f', -1, 64) + v.Unit
}
func (NoneValue) String() string { return "" }

func (IdentifierValue) isPrimitiveValue() {}
func (ColorValue) isPrimitiveValue()      {}
func (StringValue) isPrimitiveValue()     {}
func (DimensionValue) isPrimitiveValue()  {}
func (NoneValue) isPrimitiveValue()       {}

// AsColor returns the color carried by v. Only ColorValue carries one.
func AsColor(v PrimitiveValue) (Color, bool) {
	if c, ok := v.(ColorValue); ok {
		return c.Color, true
	}
	return Color{}, false
}

// AsDimension returns the dimension carried by v.
func AsDimension(v PrimitiveValue) (DimensionValue, bool) {
	if d, ok := v.(DimensionValue); ok {
		return d, true
	}
	return DimensionValue{}, false
}

// AsString returns the text of a string or identifier value.
func AsString(v PrimitiveValue) (string, bool) {
	switch val := v.(type) {
	case StringValue:
		return val.Text, true
	case IdentifierValue:
		return val.Name, true
	}
	return "", false
}

// IsNone reports whether v is missing or the NoneValue variant.
func IsNone(v PrimitiveValue) bool {
	if v == nil {
		return true
	}
	_, ok := v.(NoneValue)
	return ok
}

// PropertyDeclaration is a single "name: value" pair.
type PropertyDeclaration struct {
	Name  string
	Value PrimitiveValue
}
