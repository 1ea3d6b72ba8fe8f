package dom

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// NodeType distinguishes the node variants of the document tree
type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
	CommentNode
)

func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case CommentNode:
		return "comment"
	default:
		return fmt.Sprintf("NodeType(%d)", int(t))
	}
}

// Node is a parsed document node. Trees are treated as immutable once built.
type Node struct {
	Type       NodeType
	TagName    string            // Element only
	Data       string            // Text and Comment payload
	Attributes map[string]string // Element only
	Children   []*Node
}

// Elem creates an element node
func Elem(tag string, attrs map[string]string, children ...*Node) *Node {
	if attrs == nil {
		attrs = map[string]string{}
	}
	return &Node{
		Type:       ElementNode,
		TagName:    tag,
		Attributes: attrs,
		Children:   children,
	}
}

// Text creates a text node
func Text(data string) *Node {
	return &Node{Type: TextNode, Data: data}
}

// Comment creates a comment node
func Comment(data string) *Node {
	return &Node{Type: CommentNode, Data: data}
}

// IsElement reports whether n is an element node
func (n *Node) IsElement() bool {
	return n != nil && n.Type == ElementNode
}

// ID returns the "id" attribute, if present
func (n *Node) ID() (string, bool) {
	if !n.IsElement() {
		return "", false
	}
	id, ok := n.Attributes["id"]
	return id, ok
}

// Classes returns the whitespace-split set of the "class" attribute
func (n *Node) Classes() map[string]struct{} {
	classes := make(map[string]struct{})
	if !n.IsElement() {
		return classes
	}
	for _, c := range strings.Fields(n.Attributes["class"]) {
		classes[c] = struct{}{}
	}
	return classes
}

// HasClass reports whether the element carries class c
func (n *Node) HasClass(c string) bool {
	_, ok := n.Classes()[c]
	return ok
}

// Label is a short human readable description used in logs and dumps
func (n *Node) Label() string {
	switch n.Type {
	case ElementNode:
		var sb strings.Builder
		sb.WriteString(n.TagName)
		if id, ok := n.ID(); ok && id != "" {
			sb.WriteString("#" + id)
		}
		for _, c := range strings.Fields(n.Attributes["class"]) {
			sb.WriteString("." + c)
		}
		return sb.String()
	case TextNode:
		return fmt.Sprintf("%q", n.Data)
	default:
		return "<!--" + n.Data + "-->"
	}
}

// Print writes an indented outline of the tree
func (n *Node) Print(w io.Writer, indent string) {
	switch n.Type {
	case ElementNode:
		keys := make([]string, 0, len(n.Attributes))
		for k := range n.Attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		attrs := make([]string, 0, len(keys))
		for _, k := range keys {
			attrs = append(attrs, fmt.Sprintf("%s=%q", k, n.Attributes[k]))
		}
		fmt.Fprintf(w, "%selem %s(%s):\n", indent, n.TagName, strings.Join(attrs, " "))
		for _, c := range n.Children {
			c.Print(w, indent+"  ")
		}
	case TextNode:
		fmt.Fprintf(w, "%stext: %s\n", indent, n.Data)
	case CommentNode:
		fmt.Fprintf(w, "%scomment: %s\n", indent, n.Data)
	}
}
