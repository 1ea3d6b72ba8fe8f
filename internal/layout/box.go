package layout

import (
	"errors"
	"fmt"

	"boxlayout/internal/css"
	"boxlayout/internal/dom"
	"boxlayout/internal/resolver"
)

// ErrDisplayNoneRoot is returned when the root of a layout pass has display: none
var ErrDisplayNoneRoot = errors.New("root node has display: none")

// BoxType defines the type of box generated by a node.
type BoxType int

const (
	BlockNode BoxType = iota
	InlineNode
	AnonymousBlock
)

func (t BoxType) String() string {
	switch t {
	case BlockNode:
		return "block"
	case InlineNode:
		return "inline"
	case AnonymousBlock:
		return "anonymous"
	default:
		return fmt.Sprintf("BoxType(%d)", int(t))
	}
}

// State records what a layout pass did with a box
type State int

const (
	// Pending boxes have not been laid out yet
	Pending State = iota
	// LaidOut boxes carry resolved geometry
	LaidOut
	// Unsupported boxes were reached by a pass that has no algorithm for them
	// (inline and anonymous block layout); their geometry is left at zero.
	Unsupported
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case LaidOut:
		return "laid-out"
	case Unsupported:
		return "unsupported"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// LayoutBox is a node in the box tree
type LayoutBox struct {
	Dimensions Dimensions
	BoxType    BoxType
	StyledNode *resolver.StyledNode // nil for AnonymousBlock
	Children   []*LayoutBox
	State      State
}

// NewLayoutBox creates a box without geometry
func NewLayoutBox(boxType BoxType, styledNode *resolver.StyledNode) *LayoutBox {
	return &LayoutBox{
		BoxType:    boxType,
		StyledNode: styledNode,
	}
}

// Style returns the styled node of a block or inline box.
// Asking an anonymous block for its style is a contract violation.
func (b *LayoutBox) Style() *resolver.StyledNode {
	switch b.BoxType {
	case BlockNode, InlineNode:
		if b.StyledNode == nil {
			panic(&css.ContractError{Op: "Style", Detail: b.BoxType.String() + " box without a styled node"})
		}
		return b.StyledNode
	case AnonymousBlock:
		panic(&css.ContractError{Op: "Style", Detail: "anonymous block box has no style node"})
	default:
		panic(&css.ContractError{Op: "Style", Detail: "unknown box type " + b.BoxType.String()})
	}
}

// InlineContainer returns the box that receives inline children of b. Block
// boxes group consecutive inline children under a trailing anonymous block.
func (b *LayoutBox) InlineContainer() *LayoutBox {
	switch b.BoxType {
	case InlineNode, AnonymousBlock:
		return b
	default:
		if n := len(b.Children); n > 0 && b.Children[n-1].BoxType == AnonymousBlock {
			return b.Children[n-1]
		}
		anon := NewLayoutBox(AnonymousBlock, nil)
		b.Children = append(b.Children, anon)
		return anon
	}
}

// Label describes the box for logs and dumps
func (b *LayoutBox) Label() string {
	if b.BoxType == AnonymousBlock || b.StyledNode == nil {
		return b.BoxType.String()
	}
	return b.BoxType.String() + " " + b.StyledNode.Node.Label()
}

// BuildLayoutTree converts a styled tree into an unpositioned box tree.
// Children with display: none are omitted along with their subtrees.
func BuildLayoutTree(styled *resolver.StyledNode) (*LayoutBox, error) {
	if styled.Display() == resolver.None {
		return nil, ErrDisplayNoneRoot
	}
	return buildBox(styled), nil
}

func buildBox(styled *resolver.StyledNode) *LayoutBox {
	var root *LayoutBox
	switch styled.Display() {
	case resolver.Block:
		root = NewLayoutBox(BlockNode, styled)
	default:
		root = NewLayoutBox(InlineNode, styled)
	}

	for _, child := range styled.Children {
		switch child.Display() {
		case resolver.Block:
			root.Children = append(root.Children, buildBox(child))
		case resolver.Inline:
			container := root.InlineContainer()
			container.Children = append(container.Children, buildBox(child))
		case resolver.None:
		}
	}
	return root
}

// Walk visits the tree in pre-order. Returning false from fn skips the box's children.
func Walk(root *LayoutBox, fn func(b *LayoutBox, depth int) bool) {
	walk(root, 0, fn)
}

func walk(b *LayoutBox, depth int, fn func(*LayoutBox, int) bool) {
	if !fn(b, depth) {
		return
	}
	for _, c := range b.Children {
		walk(c, depth+1, fn)
	}
}

// FindBox returns the box generated for node, or nil
func FindBox(root *LayoutBox, node *dom.Node) *LayoutBox {
	var found *LayoutBox
	Walk(root, func(b *LayoutBox, _ int) bool {
		if found != nil {
			return false
		}
		if b.StyledNode != nil && b.StyledNode.Node == node {
			found = b
			return false
		}
		return true
	})
	return found
}

// UnsupportedBoxes lists the boxes a pass could not lay out
func UnsupportedBoxes(root *LayoutBox) []*LayoutBox {
	var boxes []*LayoutBox
	Walk(root, func(b *LayoutBox, _ int) bool {
		if b.State == Unsupported {
			boxes = append(boxes, b)
		}
		return true
	})
	return boxes
}
