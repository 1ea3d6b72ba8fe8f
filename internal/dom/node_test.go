package dom

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestElementAccessors(t *testing.T) {
	n := Elem("div", map[string]string{"id": "main", "class": " note  wide "})

	id, ok := n.ID()
	assert.True(t, ok)
	assert.Equal(t, "main", id)
	assert.Equal(t, map[string]struct{}{"note": {}, "wide": {}}, n.Classes())
	assert.True(t, n.HasClass("wide"))
	assert.False(t, n.HasClass("narrow"))
	assert.Equal(t, "div#main.note.wide", n.Label())
}

func TestElementWithoutAttributes(t *testing.T) {
	n := Elem("p", nil)

	_, ok := n.ID()
	assert.False(t, ok)
	assert.Empty(t, n.Classes())
	assert.Equal(t, "p", n.Label())
}

func TestNonElementNodes(t *testing.T) {
	txt := Text("hello")
	assert.False(t, txt.IsElement())
	assert.Empty(t, txt.Classes())
	_, ok := txt.ID()
	assert.False(t, ok)
	assert.Equal(t, `"hello"`, txt.Label())

	c := Comment(" note ")
	assert.Equal(t, CommentNode, c.Type)
	assert.Equal(t, "<!-- note -->", c.Label())
}

func TestPrint(t *testing.T) {
	tree := Elem("body", map[string]string{"class": "x", "id": "b"},
		Elem("p", nil, Text("hi")),
		Comment("c"),
	)

	var buf bytes.Buffer
	tree.Print(&buf, "")
	assert.Equal(t, "elem body(class=\"x\" id=\"b\"):\n"+
		"  elem p():\n"+
		"    text: hi\n"+
		"  comment: c\n", buf.String())
}
