package css

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToPixels(t *testing.T) {
	assert.Equal(t, 12.5, PxLength(12.5).ToPixels())
	assert.Equal(t, 0.0, Zero.ToPixels())
}

func TestToPixelsPanicsForNonLengths(t *testing.T) {
	tests := []struct {
		name  string
		value Value
	}{
		{"keyword", Auto},
		{"other keyword", Keyword("block")},
		{"color", RGB(255, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				require.NotNil(t, r, "ToPixels must panic")
				ce, ok := r.(*ContractError)
				require.True(t, ok, "panic value %T is not a *ContractError", r)
				assert.Equal(t, "ToPixels", ce.Op)
			}()
			tt.value.ToPixels()
		})
	}
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "auto", Auto.String())
	assert.Equal(t, "12px", PxLength(12).String())
	assert.Equal(t, "1.5px", PxLength(1.5).String())
	assert.Equal(t, "#ff0080", RGB(255, 0, 128).String())
	assert.Equal(t, "#0000ff80", Color{B: 255, A: 128}.String())
}

func TestAutoEquality(t *testing.T) {
	var v Value = Keyword("auto")
	assert.True(t, v == Value(Auto))
	assert.False(t, Value(PxLength(0)) == Value(Auto))
}

func TestSpecificityCompare(t *testing.T) {
	tests := []struct {
		a, b Specificity
		want int
	}{
		{Specificity{0, 0, 0}, Specificity{0, 0, 0}, 0},
		{Specificity{1, 0, 0}, Specificity{0, 9, 9}, 1},
		{Specificity{0, 1, 0}, Specificity{0, 0, 9}, 1},
		{Specificity{0, 0, 3}, Specificity{0, 0, 4}, -1},
		{Specificity{0, 2, 0}, Specificity{1, 0, 0}, -1},
		{Specificity{2, 1, 3}, Specificity{2, 1, 3}, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.a.Compare(tt.b), "%s vs %s", tt.a, tt.b)
		assert.Equal(t, -tt.want, tt.b.Compare(tt.a), "%s vs %s", tt.b, tt.a)
		assert.Equal(t, tt.want < 0, tt.a.Less(tt.b))
	}
}

func TestSimpleSelectorSpecificity(t *testing.T) {
	tests := []struct {
		sel  SimpleSelector
		want Specificity
	}{
		{SimpleSelector{}, Specificity{0, 0, 0}},
		{SimpleSelector{TagName: "div"}, Specificity{0, 0, 3}},
		{SimpleSelector{ID: "main"}, Specificity{4, 0, 0}},
		{SimpleSelector{TagName: "p", ID: "x", Classes: []string{"a", "b"}}, Specificity{1, 2, 1}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.sel.Specificity(), tt.sel.String())
	}
}

func TestSimpleSelectorString(t *testing.T) {
	assert.Equal(t, "*", SimpleSelector{}.String())
	assert.Equal(t, "div#x.a.b", SimpleSelector{TagName: "div", ID: "x", Classes: []string{"a", "b"}}.String())
	assert.True(t, SimpleSelector{}.IsUniversal())
	assert.False(t, SimpleSelector{Classes: []string{"a"}}.IsUniversal())
}

func TestDeclarationMapLastWins(t *testing.T) {
	rule := Rule{
		Selectors: []Selector{SimpleSelector{TagName: "div"}},
		Declarations: []Declaration{
			{Name: "width", Value: PxLength(10)},
			{Name: "display", Value: Keyword("block")},
			{Name: "width", Value: PxLength(20)},
		},
	}

	m := rule.DeclarationMap()
	assert.Len(t, m, 2)
	assert.Equal(t, Value(PxLength(20)), m["width"])
	assert.Equal(t, "div { width: 10px; display: block; width: 20px; }", rule.String())
}
