package css

import (
	"bytes"
	"errors"
	"io"
	"slices"
	"strconv"
	"strings"
	"unicode"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Parser turns style sheet text into a Stylesheet restricted to the supported subset:
// simple selectors and single-token px length, hex color and keyword values.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text. Every construct outside the supported subset is reported;
// if there is any, the whole sheet is rejected and the combined error returned.
func (p *Parser) Parse(data []byte) (*Stylesheet, error) {
	sheet := &Stylesheet{Rules: make([]Rule, 0)}

	input := parse.NewInput(bytes.NewReader(data))
	parser := css.NewParser(input, false)

	var (
		errs    error
		pending []string
	)

	for {
		gt, _, tokData := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				errs = multierr.Append(errs, err)
			}
			if errs != nil {
				return nil, errs
			}
			p.log.Debug("Parsed stylesheet", zap.Int("rules", len(sheet.Rules)), zap.Int("bytes", len(data)))
			return sheet, nil

		case css.CommentGrammar:
			continue

		case css.AtRuleGrammar:
			errs = multierr.Append(errs, &UnsupportedError{Kind: "at-rule", Input: string(tokData)})

		case css.BeginAtRuleGrammar:
			errs = multierr.Append(errs, &UnsupportedError{Kind: "at-rule", Input: string(tokData)})
			p.skipAtRuleBlock(parser)

		case css.QualifiedRuleGrammar:
			pending = append(pending, selectorText(tokData, parser.Values()))

		case css.BeginRulesetGrammar:
			pending = append(pending, selectorText(tokData, parser.Values()))
			rule, err := p.parseRule(parser, strings.Join(pending, ","))
			pending = nil
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			sheet.Rules = append(sheet.Rules, rule)

		default:
			errs = multierr.Append(errs, &UnsupportedError{Kind: "token", Input: string(tokData)})
		}
	}
}

// selectorText rebuilds selector source from grammar data and its value tokens
func selectorText(data []byte, values []css.Token) string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}
	return sb.String()
}

func (p *Parser) parseRule(parser *css.Parser, selectorSrc string) (Rule, error) {
	var errs error

	selectors, err := ParseSelectors(selectorSrc)
	errs = multierr.Append(errs, err)

	decls, err := p.parseDeclarations(parser)
	errs = multierr.Append(errs, err)

	if errs != nil {
		return Rule{}, errs
	}

	rule := Rule{Selectors: selectors, Declarations: decls}
	p.log.Debug("Parsed rule", zap.Stringer("rule", rule))
	return rule, nil
}

// parseDeclarations consumes declarations until the end of the ruleset
func (p *Parser) parseDeclarations(parser *css.Parser) ([]Declaration, error) {
	var (
		decls []Declaration
		errs  error
	)
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.EndRulesetGrammar:
			return decls, errs

		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				errs = multierr.Append(errs, err)
			}
			return decls, multierr.Append(errs, &UnsupportedError{Kind: "ruleset", Input: "unterminated declaration block"})

		case css.DeclarationGrammar:
			name := strings.ToLower(string(data))
			value, err := ParseValue(parser.Values())
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			decls = append(decls, Declaration{Name: name, Value: value})

		case css.CustomPropertyGrammar:
			errs = multierr.Append(errs, &UnsupportedError{Kind: "custom property", Input: string(data)})

		case css.CommentGrammar:
			continue

		default:
			errs = multierr.Append(errs, &UnsupportedError{Kind: "declaration", Input: string(data)})
		}
	}
}

// skipAtRuleBlock skips an @-rule block, including nested blocks
func (p *Parser) skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// ParseSelectors parses a comma separated list of simple selectors.
// The result is sorted by ascending specificity, keeping source order for ties.
func ParseSelectors(src string) ([]Selector, error) {
	var (
		selectors []Selector
		errs      error
	)
	for part := range strings.SplitSeq(src, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		sel, err := ParseSimpleSelector(part)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		selectors = append(selectors, sel)
	}
	if errs != nil {
		return nil, errs
	}
	if len(selectors) == 0 {
		return nil, &UnsupportedError{Kind: "selector", Input: src}
	}
	slices.SortStableFunc(selectors, func(a, b Selector) int {
		return a.Specificity().Compare(b.Specificity())
	})
	return selectors, nil
}

// ParseSimpleSelector parses "*", "tag", "#id", ".class" and combinations of them
func ParseSimpleSelector(src string) (SimpleSelector, error) {
	var sel SimpleSelector
	if src == "" {
		return sel, &UnsupportedError{Kind: "selector", Input: src}
	}

	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == '#':
			id, n := identifier(src[i+1:])
			if n == 0 {
				return SimpleSelector{}, &UnsupportedError{Kind: "selector", Input: src}
			}
			sel.ID = id
			i += 1 + n
		case c == '.':
			class, n := identifier(src[i+1:])
			if n == 0 {
				return SimpleSelector{}, &UnsupportedError{Kind: "selector", Input: src}
			}
			sel.Classes = append(sel.Classes, class)
			i += 1 + n
		case c == '*':
			i++
		case isIdentChar(rune(c)):
			tag, n := identifier(src[i:])
			sel.TagName = strings.ToLower(tag)
			i += n
		default:
			// whitespace and '>', '+', '~' are combinators, ':' and '[' pseudo/attribute selectors
			return SimpleSelector{}, &UnsupportedError{Kind: "selector", Input: src}
		}
	}
	return sel, nil
}

func identifier(s string) (string, int) {
	n := 0
	for n < len(s) && isIdentChar(rune(s[n])) {
		n++
	}
	return s[:n], n
}

func isIdentChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_'
}

// ParseValue converts the tokens of one declaration value into a Value
func ParseValue(tokens []css.Token) (Value, error) {
	var significant []css.Token
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			significant = append(significant, t)
		}
	}

	if len(significant) != 1 {
		var sb strings.Builder
		for _, t := range tokens {
			sb.Write(t.Data)
		}
		return nil, &UnsupportedError{Kind: "value", Input: strings.TrimSpace(sb.String())}
	}

	t := significant[0]
	raw := string(t.Data)
	switch t.TokenType {
	case css.DimensionToken:
		num, unit := parseDimension(raw)
		switch unit {
		case "px":
			return PxLength(num), nil
		default:
			return nil, &UnsupportedError{Kind: "unit", Input: raw}
		}
	case css.NumberToken:
		num, err := strconv.ParseFloat(raw, 64)
		if err != nil || num != 0 {
			// only zero may omit its unit
			return nil, &UnsupportedError{Kind: "value", Input: raw}
		}
		return Zero, nil
	case css.PercentageToken:
		return nil, &UnsupportedError{Kind: "unit", Input: raw}
	case css.HashToken:
		return ParseColor(raw)
	case css.IdentToken:
		return Keyword(strings.ToLower(raw)), nil
	default:
		return nil, &UnsupportedError{Kind: "value", Input: raw}
	}
}

// parseDimension extracts numeric value and unit from dimension token
func parseDimension(s string) (float64, string) {
	numEnd := 0
	for i, r := range s {
		if unicode.IsDigit(r) || r == '.' || r == '-' || r == '+' {
			numEnd = i + 1
		} else {
			break
		}
	}

	if numEnd == 0 {
		return 0, strings.ToLower(s)
	}

	num, _ := strconv.ParseFloat(s[:numEnd], 64)
	return num, strings.ToLower(s[numEnd:])
}

// ParseColor parses "#rrggbb" and "#rrggbbaa"
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, &UnsupportedError{Kind: "color", Input: s}
	}

	channel := func(i int) (uint8, error) {
		v, err := strconv.ParseUint(hex[i:i+2], 16, 8)
		return uint8(v), err
	}

	var c Color
	var err error
	if c.R, err = channel(0); err != nil {
		return Color{}, &UnsupportedError{Kind: "color", Input: s}
	}
	if c.G, err = channel(2); err != nil {
		return Color{}, &UnsupportedError{Kind: "color", Input: s}
	}
	if c.B, err = channel(4); err != nil {
		return Color{}, &UnsupportedError{Kind: "color", Input: s}
	}
	c.A = 255
	if len(hex) == 8 {
		if c.A, err = channel(6); err != nil {
			return Color{}, &UnsupportedError{Kind: "color", Input: s}
		}
	}
	return c, nil
}
