package paint

import (
	"fmt"

	"boxlayout/internal/css"
	"boxlayout/internal/layout"
)

// DisplayCommand is a drawing primitive. SolidColor is the only variant.
type DisplayCommand interface {
	isDisplayCommand()
}

// SolidColor fills Rect with Color
type SolidColor struct {
	Color css.Color   `json:"color"`
	Rect  layout.Rect `json:"rect"`
}

func (SolidColor) isDisplayCommand() {}

func (s SolidColor) String() string {
	return fmt.Sprintf("SolidColor(%s,%s)", s.Color, s.Rect)
}

// BuildDisplayList walks the box tree in pre-order, painting each box's
// background and then its borders before its children.
func BuildDisplayList(root *layout.LayoutBox) []DisplayCommand {
	var list []DisplayCommand
	layout.Walk(root, func(b *layout.LayoutBox, _ int) bool {
		list = renderBackground(list, b)
		list = renderBorders(list, b)
		return true
	})
	return list
}

func renderBackground(list []DisplayCommand, b *layout.LayoutBox) []DisplayCommand {
	color, ok := getColor(b, "background")
	if !ok {
		return list
	}
	return append(list, SolidColor{Color: color, Rect: b.Dimensions.BorderBox()})
}

func renderBorders(list []DisplayCommand, b *layout.LayoutBox) []DisplayCommand {
	color, ok := getColor(b, "border-color")
	if !ok {
		return list
	}

	d := b.Dimensions
	bb := d.BorderBox()

	return append(list,
		// left
		SolidColor{Color: color, Rect: layout.Rect{X: bb.X, Y: bb.Y, Width: d.Border.Left, Height: bb.Height}},
		// right
		SolidColor{Color: color, Rect: layout.Rect{X: bb.X + bb.Width - d.Border.Right, Y: bb.Y, Width: d.Border.Right, Height: bb.Height}},
		// top
		SolidColor{Color: color, Rect: layout.Rect{X: bb.X, Y: bb.Y, Width: bb.Width, Height: d.Border.Top}},
		// bottom
		SolidColor{Color: color, Rect: layout.Rect{X: bb.X, Y: bb.Y + bb.Height - d.Border.Bottom, Width: bb.Width, Height: d.Border.Bottom}},
	)
}

// getColor reads a color property of a block or inline box; anonymous blocks have none
func getColor(b *layout.LayoutBox, name string) (css.Color, bool) {
	switch b.BoxType {
	case layout.BlockNode, layout.InlineNode:
		c, ok := b.Style().Value(name).(css.Color)
		return c, ok
	default:
		return css.Color{}, false
	}
}
