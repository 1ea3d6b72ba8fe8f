package resolver

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"sort"
	"strings"

	"go.uber.org/zap"

	"boxlayout/internal/css"
	"boxlayout/internal/dom"
)

// Display is the box generation mode of a styled node
type Display int

const (
	Inline Display = iota
	Block
	None
)

func (d Display) String() string {
	switch d {
	case Inline:
		return "inline"
	case Block:
		return "block"
	case None:
		return "none"
	default:
		return fmt.Sprintf("Display(%d)", int(d))
	}
}

// StyledNode is a DOM node with its specified values, mirroring the DOM tree
type StyledNode struct {
	Node            *dom.Node
	SpecifiedValues map[string]css.Value
	Children        []*StyledNode
}

// Value returns the specified value of a property, or nil
func (s *StyledNode) Value(name string) css.Value {
	return s.SpecifiedValues[name]
}

// Display derives the display mode. Absent or non-keyword values mean inline.
func (s *StyledNode) Display() Display {
	kw, ok := s.Value("display").(css.Keyword)
	if !ok {
		return Inline
	}
	switch kw {
	case "block":
		return Block
	case "none":
		return None
	default:
		return Inline
	}
}

// Lookup returns primary if set, else shorthand if set, else def
func (s *StyledNode) Lookup(primary, shorthand string, def css.Value) css.Value {
	if v, ok := s.SpecifiedValues[primary]; ok {
		return v
	}
	if v, ok := s.SpecifiedValues[shorthand]; ok {
		return v
	}
	return def
}

// Print writes the styled tree with each node's properties in name order
func (s *StyledNode) Print(w io.Writer, indent string) {
	names := slices.Sorted(maps.Keys(s.SpecifiedValues))
	props := make([]string, 0, len(names))
	for _, n := range names {
		props = append(props, n+": "+s.SpecifiedValues[n].String())
	}
	fmt.Fprintf(w, "%s%s {%s}\n", indent, s.Node.Label(), strings.Join(props, "; "))
	for _, c := range s.Children {
		c.Print(w, indent+"  ")
	}
}

// Resolver applies a style sheet's cascade to document trees
type Resolver struct {
	stylesheet *css.Stylesheet
	log        *zap.Logger
}

// New creates a new style resolver
func New(stylesheet *css.Stylesheet, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	if stylesheet == nil {
		stylesheet = &css.Stylesheet{}
	}
	return &Resolver{
		stylesheet: stylesheet,
		log:        log.Named("resolver"),
	}
}

// StyleTree builds the styled tree for root, depth first, keeping child order.
// Text and comment nodes get an empty property map; nothing is inherited.
func (r *Resolver) StyleTree(root *dom.Node) *StyledNode {
	var values map[string]css.Value
	switch root.Type {
	case dom.ElementNode:
		values = r.SpecifiedValues(root)
	case dom.TextNode, dom.CommentNode:
		values = map[string]css.Value{}
	default:
		panic(&css.ContractError{Op: "StyleTree", Detail: "unknown node type " + root.Type.String()})
	}

	styled := &StyledNode{
		Node:            root,
		SpecifiedValues: values,
		Children:        make([]*StyledNode, 0, len(root.Children)),
	}
	for _, child := range root.Children {
		styled.Children = append(styled.Children, r.StyleTree(child))
	}
	return styled
}

// SpecifiedValues folds the declarations of all matching rules, lowest specificity first.
// The sort is stable, so among equal specificities later rules win.
func (r *Resolver) SpecifiedValues(elem *dom.Node) map[string]css.Value {
	rules := MatchingRules(elem, r.stylesheet)
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Specificity.Less(rules[j].Specificity)
	})

	if ce := r.log.Check(zap.DebugLevel, "Matched rules"); ce != nil {
		matched := make([]string, 0, len(rules))
		for _, m := range rules {
			matched = append(matched, m.String())
		}
		ce.Write(zap.String("element", elem.Label()), zap.Strings("rules", matched))
	}

	values := make(map[string]css.Value)
	for _, m := range rules {
		for _, d := range m.Rule.Declarations {
			values[d.Name] = d.Value
		}
	}
	return values
}

// StyleTree is a convenience function resolving root against sheet without logging
func StyleTree(root *dom.Node, sheet *css.Stylesheet) *StyledNode {
	return New(sheet, nil).StyleTree(root)
}
