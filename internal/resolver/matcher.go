package resolver

import (
	"fmt"

	"boxlayout/internal/css"
	"boxlayout/internal/dom"
)

// MatchedRule pairs a rule with the specificity of its first matching selector
type MatchedRule struct {
	Specificity css.Specificity
	Rule        *css.Rule
}

func (m MatchedRule) String() string {
	return fmt.Sprintf("%s %s", m.Specificity, m.Rule)
}

// Matches reports whether selector matches the element.
// A simple selector matches when any one of its specified components matches;
// a selector without components matches every element.
func Matches(elem *dom.Node, selector css.Selector) bool {
	if !elem.IsElement() {
		panic(&css.ContractError{Op: "Matches", Detail: "selector matching requires an element, got " + elem.Type.String()})
	}
	switch sel := selector.(type) {
	case css.SimpleSelector:
		return matchesSimpleSelector(elem, sel)
	case *css.SimpleSelector:
		return matchesSimpleSelector(elem, *sel)
	default:
		panic(&css.ContractError{Op: "Matches", Detail: fmt.Sprintf("unsupported selector variant %T", selector)})
	}
}

func matchesSimpleSelector(elem *dom.Node, sel css.SimpleSelector) bool {
	if sel.IsUniversal() {
		return true
	}
	if sel.TagName != "" && sel.TagName == elem.TagName {
		return true
	}
	if id, ok := elem.ID(); ok && sel.ID != "" && sel.ID == id {
		return true
	}
	classes := elem.Classes()
	for _, c := range sel.Classes {
		if _, ok := classes[c]; ok {
			return true
		}
	}
	return false
}

// MatchRule returns the rule ranked by its first matching selector, or false if none match
func MatchRule(elem *dom.Node, rule *css.Rule) (MatchedRule, bool) {
	for _, sel := range rule.Selectors {
		if Matches(elem, sel) {
			return MatchedRule{Specificity: sel.Specificity(), Rule: rule}, true
		}
	}
	return MatchedRule{}, false
}

// MatchingRules returns the rules of sheet matching elem, in sheet order
func MatchingRules(elem *dom.Node, sheet *css.Stylesheet) []MatchedRule {
	var matches []MatchedRule
	for i := range sheet.Rules {
		if m, ok := MatchRule(elem, &sheet.Rules[i]); ok {
			matches = append(matches, m)
		}
	}
	return matches
}
