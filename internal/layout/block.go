package layout

import (
	"go.uber.org/zap"

	"boxlayout/internal/css"
)

// Layout lays out b against its containing block. The containing block is
// received by value, so the box cannot mutate its parent's geometry.
func (b *LayoutBox) Layout(containingBlock Dimensions, e *Engine) {
	switch b.BoxType {
	case BlockNode:
		b.layoutBlock(containingBlock, e)
	case InlineNode, AnonymousBlock:
		// no inline formatting context; the box keeps zero geometry
		b.State = Unsupported
		e.log.Debug("Layout not supported", zap.String("box", b.Label()))
	}
}

// layoutBlock resolves width, then position, then the children, then height.
func (b *LayoutBox) layoutBlock(containingBlock Dimensions, e *Engine) {
	e.log.Debug("Layout block", zap.String("box", b.Label()), zap.Stringer("containing", containingBlock))

	b.calculateBlockWidth(containingBlock)
	b.calculateBlockPosition(containingBlock)
	b.layoutBlockChildren(e)
	b.calculateBlockHeight()
	b.State = LaidOut

	e.log.Debug("Block laid out", zap.String("box", b.Label()), zap.Stringer("dimensions", b.Dimensions))
}

// pixels converts v, treating the auto keyword as zero
func pixels(v css.Value) float64 {
	if v == css.Value(css.Auto) {
		return 0
	}
	return v.ToPixels()
}

// calculateBlockWidth solves the horizontal constraint
// margin-left + border-left + padding-left + width + padding-right + border-right + margin-right = containing width
func (b *LayoutBox) calculateBlockWidth(containingBlock Dimensions) {
	style := b.Style()
	auto := css.Value(css.Auto)

	width := style.Value("width")
	if width == nil {
		width = auto
	}

	marginLeft := style.Lookup("margin-left", "margin", css.Zero)
	marginRight := style.Lookup("margin-right", "margin", css.Zero)
	borderLeft := style.Lookup("border-left-width", "border-width", css.Zero)
	borderRight := style.Lookup("border-right-width", "border-width", css.Zero)
	paddingLeft := style.Lookup("padding-left", "padding", css.Zero)
	paddingRight := style.Lookup("padding-right", "padding", css.Zero)

	total := pixels(width)
	for _, v := range []css.Value{marginLeft, marginRight, borderLeft, borderRight, paddingLeft, paddingRight} {
		total += pixels(v)
	}

	// Overconstrained: auto margins lose their auto status.
	if width != auto && total > containingBlock.Content.Width {
		if marginLeft == auto {
			marginLeft = css.Zero
		}
		if marginRight == auto {
			marginRight = css.Zero
		}
	}

	underflow := containingBlock.Content.Width - total

	widthAuto := width == auto
	marginLeftAuto := marginLeft == auto
	marginRightAuto := marginRight == auto

	switch {
	case !widthAuto && !marginLeftAuto && !marginRightAuto:
		marginRight = css.PxLength(marginRight.ToPixels() + underflow)

	case !widthAuto && !marginLeftAuto && marginRightAuto:
		marginRight = css.PxLength(underflow)

	case !widthAuto && marginLeftAuto && !marginRightAuto:
		marginLeft = css.PxLength(underflow)

	case widthAuto:
		if marginLeftAuto {
			marginLeft = css.Zero
		}
		if marginRightAuto {
			marginRight = css.Zero
		}
		if underflow >= 0 {
			width = css.PxLength(underflow)
		} else {
			width = css.Zero
			marginRight = css.PxLength(marginRight.ToPixels() + underflow)
		}

	case marginLeftAuto && marginRightAuto:
		marginLeft = css.PxLength(underflow / 2)
		marginRight = css.PxLength(underflow / 2)
	}

	d := &b.Dimensions
	d.Content.Width = width.ToPixels()
	d.Padding.Left = paddingLeft.ToPixels()
	d.Padding.Right = paddingRight.ToPixels()
	d.Border.Left = borderLeft.ToPixels()
	d.Border.Right = borderRight.ToPixels()
	d.Margin.Left = marginLeft.ToPixels()
	d.Margin.Right = marginRight.ToPixels()
}

// calculateBlockPosition places the box below the content laid out so far in
// its containing block.
func (b *LayoutBox) calculateBlockPosition(containingBlock Dimensions) {
	style := b.Style()
	d := &b.Dimensions

	d.Margin.Top = pixels(style.Lookup("margin-top", "margin", css.Zero))
	d.Margin.Bottom = pixels(style.Lookup("margin-bottom", "margin", css.Zero))
	d.Border.Top = style.Lookup("border-top-width", "border-width", css.Zero).ToPixels()
	d.Border.Bottom = style.Lookup("border-bottom-width", "border-width", css.Zero).ToPixels()
	d.Padding.Top = style.Lookup("padding-top", "padding", css.Zero).ToPixels()
	d.Padding.Bottom = style.Lookup("padding-bottom", "padding", css.Zero).ToPixels()

	d.Content.X = containingBlock.Content.X + d.Margin.Left + d.Border.Left + d.Padding.Left
	d.Content.Y = containingBlock.Content.Y + containingBlock.Content.Height +
		d.Margin.Top + d.Border.Top + d.Padding.Top
}

// layoutBlockChildren stacks the children vertically. Margins do not collapse.
func (b *LayoutBox) layoutBlockChildren(e *Engine) {
	d := &b.Dimensions
	for _, child := range b.Children {
		child.Layout(*d, e)
		d.Content.Height += child.Dimensions.MarginBox().Height
	}
}

// calculateBlockHeight lets an explicit length height override the children's total
func (b *LayoutBox) calculateBlockHeight() {
	if height, ok := b.Style().Value("height").(css.Length); ok {
		b.Dimensions.Content.Height = height.ToPixels()
	}
}
