package css

import (
	"fmt"
	"strings"
)

// Value is a specified CSS value. The variant set is closed: Keyword, Length and Color.
type Value interface {
	// ToPixels converts the value to a pixel amount. Only Length supports it,
	// other variants panic with a *ContractError.
	ToPixels() float64
	String() string
	isValue()
}

// Unit is a length unit. Pixels are the only supported unit.
type Unit int

const (
	Px Unit = iota
)

func (u Unit) String() string {
	switch u {
	case Px:
		return "px"
	default:
		return fmt.Sprintf("Unit(%d)", int(u))
	}
}

// Keyword is an identifier value such as "auto" or "block"
type Keyword string

// Length is a numeric value with a unit
type Length struct {
	Value float64
	Unit  Unit
}

// Color is an RGBA color, each channel 0-255
type Color struct {
	R, G, B, A uint8
}

// Auto is the "auto" keyword; layout compares against it by equality, never converts it.
const Auto = Keyword("auto")

// Zero is a zero pixel length
var Zero = Length{Value: 0, Unit: Px}

// PxLength returns a pixel length
func PxLength(v float64) Length {
	return Length{Value: v, Unit: Px}
}

// RGB returns an opaque color
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

func (Keyword) isValue() {}
func (Length) isValue()  {}
func (Color) isValue()   {}

func (k Keyword) ToPixels() float64 {
	panic(&ContractError{Op: "ToPixels", Detail: fmt.Sprintf("keyword %q has no pixel value", string(k))})
}

func (l Length) ToPixels() float64 {
	switch l.Unit {
	case Px:
		return l.Value
	default:
		panic(&ContractError{Op: "ToPixels", Detail: "unsupported unit " + l.Unit.String()})
	}
}

func (c Color) ToPixels() float64 {
	panic(&ContractError{Op: "ToPixels", Detail: "color " + c.String() + " has no pixel value"})
}

func (k Keyword) String() string { return string(k) }

func (l Length) String() string {
	return fmt.Sprintf("%g%s", l.Value, l.Unit)
}

func (c Color) String() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// Specificity ranks a selector's matching strength as an (A, B, C) triple.
// For simple selectors A is the length of the id, B the number of classes and C
// the length of the tag name.
type Specificity struct {
	A int
	B int
	C int
}

// Compare returns -1 if s < other, 0 if equal, 1 if s > other.
// Ordering is lexicographic on (A, B, C).
func (s Specificity) Compare(other Specificity) int {
	if s.A != other.A {
		if s.A > other.A {
			return 1
		}
		return -1
	}
	if s.B != other.B {
		if s.B > other.B {
			return 1
		}
		return -1
	}
	if s.C != other.C {
		if s.C > other.C {
			return 1
		}
		return -1
	}
	return 0
}

// Less reports whether s sorts before other
func (s Specificity) Less(other Specificity) bool {
	return s.Compare(other) < 0
}

func (s Specificity) String() string {
	return fmt.Sprintf("Spec(%d,%d,%d)", s.A, s.B, s.C)
}

// Selector is a parsed selector. SimpleSelector is the only variant.
type Selector interface {
	Specificity() Specificity
	String() string
	isSelector()
}

// SimpleSelector combines an optional tag name, an optional id and a class list.
// Empty TagName or ID means the component is absent.
type SimpleSelector struct {
	TagName string
	ID      string
	Classes []string
}

func (SimpleSelector) isSelector() {}

// IsUniversal reports whether no component is specified
func (s SimpleSelector) IsUniversal() bool {
	return s.TagName == "" && s.ID == "" && len(s.Classes) == 0
}

func (s SimpleSelector) Specificity() Specificity {
	return Specificity{
		A: len(s.ID),
		B: len(s.Classes),
		C: len(s.TagName),
	}
}

func (s SimpleSelector) String() string {
	if s.IsUniversal() {
		return "*"
	}
	var sb strings.Builder
	sb.WriteString(s.TagName)
	if s.ID != "" {
		sb.WriteString("#" + s.ID)
	}
	for _, c := range s.Classes {
		sb.WriteString("." + c)
	}
	return sb.String()
}

// Declaration is a single property: value pair
type Declaration struct {
	Name  string
	Value Value
}

// Rule is a selector list with its declarations, both in source order
type Rule struct {
	Selectors    []Selector
	Declarations []Declaration
}

// DeclarationMap folds the declarations into a map, later ones winning
func (r Rule) DeclarationMap() map[string]Value {
	m := make(map[string]Value, len(r.Declarations))
	for _, d := range r.Declarations {
		m[d.Name] = d.Value
	}
	return m
}

func (r Rule) String() string {
	sels := make([]string, 0, len(r.Selectors))
	for _, s := range r.Selectors {
		sels = append(sels, s.String())
	}
	decls := make([]string, 0, len(r.Declarations))
	for _, d := range r.Declarations {
		decls = append(decls, d.Name+": "+d.Value.String()+";")
	}
	return strings.Join(sels, ", ") + " { " + strings.Join(decls, " ") + " }"
}

// Stylesheet is an ordered list of rules
type Stylesheet struct {
	Rules []Rule
}
