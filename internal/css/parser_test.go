package css

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseRuleset(t *testing.T) {
	p := NewParser(nil)
	sheet, err := p.Parse([]byte(`
		/* layout */
		div.note {
			display: block;
			width: 200px;
			margin: auto;
			padding-left: 0;
			background: #336699;
		}
	`))
	require.NoError(t, err)
	require.Len(t, sheet.Rules, 1)

	rule := sheet.Rules[0]
	require.Len(t, rule.Selectors, 1)
	assert.Equal(t, SimpleSelector{TagName: "div", Classes: []string{"note"}}, rule.Selectors[0])

	assert.Equal(t, []Declaration{
		{Name: "display", Value: Keyword("block")},
		{Name: "width", Value: PxLength(200)},
		{Name: "margin", Value: Auto},
		{Name: "padding-left", Value: Zero},
		{Name: "background", Value: RGB(0x33, 0x66, 0x99)},
	}, rule.Declarations)
}

func TestParseKeepsRuleOrder(t *testing.T) {
	sheet, err := NewParser(nil).Parse([]byte(`p { width: 1px; } #x { width: 2px; } * { width: 3px; }`))
	require.NoError(t, err)
	require.Len(t, sheet.Rules, 3)

	assert.Equal(t, "p", sheet.Rules[0].Selectors[0].String())
	assert.Equal(t, "#x", sheet.Rules[1].Selectors[0].String())
	assert.Equal(t, "*", sheet.Rules[2].Selectors[0].String())
}

func TestParseSelectorGroupSortedBySpecificity(t *testing.T) {
	sheet, err := NewParser(nil).Parse([]byte(`#main, .a.b, div, p { display: block; }`))
	require.NoError(t, err)
	require.Len(t, sheet.Rules, 1)

	var got []string
	for _, s := range sheet.Rules[0].Selectors {
		got = append(got, s.String())
	}
	// "p" and "div" differ in tag length; ties would keep source order
	assert.Equal(t, []string{"p", "div", ".a.b", "#main"}, got)
}

func TestParseEmpty(t *testing.T) {
	sheet, err := NewParser(nil).Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, sheet.Rules)
}

func TestParseRejectsUnsupportedInput(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind string
	}{
		{"descendant combinator", `div p { width: 1px; }`, "selector"},
		{"child combinator", `div>p { width: 1px; }`, "selector"},
		{"pseudo class", `a:hover { width: 1px; }`, "selector"},
		{"attribute selector", `a[href] { width: 1px; }`, "selector"},
		{"em unit", `p { width: 2em; }`, "unit"},
		{"percentage", `p { width: 50%; }`, "unit"},
		{"unitless number", `p { width: 12; }`, "value"},
		{"multi token value", `p { margin: 1px 2px; }`, "value"},
		{"short hex color", `p { background: #fff; }`, "color"},
		{"media query", `@media print { p { width: 1px; } }`, "at-rule"},
		{"import", `@import "x.css";`, "at-rule"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet, err := NewParser(nil).Parse([]byte(tt.src))
			require.Error(t, err)
			assert.Nil(t, sheet)

			var ue *UnsupportedError
			require.True(t, errors.As(err, &ue), "expected *UnsupportedError, got %v", err)
			assert.Equal(t, tt.kind, ue.Kind)
		})
	}
}

func TestParseReportsEveryProblem(t *testing.T) {
	_, err := NewParser(nil).Parse([]byte(`
		p { width: 2em; }
		div > p { width: 1px; }
		span { height: 10%; }
	`))
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 3)
}

func TestParseLogsRules(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	p := NewParser(zap.New(core))

	_, err := p.Parse([]byte(`p { width: 1px; }`))
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("Parsed rule").Len())
	entries := logs.FilterMessage("Parsed stylesheet").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "css-parser", entries[0].LoggerName)
	assert.EqualValues(t, 1, entries[0].ContextMap()["rules"])
}

func TestParseSimpleSelector(t *testing.T) {
	tests := []struct {
		src  string
		want SimpleSelector
	}{
		{"*", SimpleSelector{}},
		{"DIV", SimpleSelector{TagName: "div"}},
		{"#main", SimpleSelector{ID: "main"}},
		{".a", SimpleSelector{Classes: []string{"a"}}},
		{"p#x.a.b-c", SimpleSelector{TagName: "p", ID: "x", Classes: []string{"a", "b-c"}}},
		{"*.warn", SimpleSelector{Classes: []string{"warn"}}},
	}

	for _, tt := range tests {
		got, err := ParseSimpleSelector(tt.src)
		require.NoError(t, err, tt.src)
		assert.Equal(t, tt.want, got, tt.src)
	}

	for _, bad := range []string{"", "#", ".", "a b", "a:first-child", "a+b"} {
		_, err := ParseSimpleSelector(bad)
		assert.Error(t, err, "%q should be rejected", bad)
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#FF8000")
	require.NoError(t, err)
	assert.Equal(t, RGB(255, 128, 0), c)

	c, err = ParseColor("#00000080")
	require.NoError(t, err)
	assert.Equal(t, Color{A: 128}, c)

	for _, bad := range []string{"#fff", "#gggggg", "red", "#1234567"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseDimension(t *testing.T) {
	num, unit := parseDimension("12.5PX")
	assert.Equal(t, 12.5, num)
	assert.Equal(t, "px", unit)

	num, unit = parseDimension("-3em")
	assert.Equal(t, -3.0, num)
	assert.Equal(t, "em", unit)
}
