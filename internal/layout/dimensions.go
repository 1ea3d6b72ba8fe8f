package layout

import "fmt"

// Rect is a rectangle in pixels
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ExpandedBy grows the rectangle outward by the given edges
func (r Rect) ExpandedBy(e EdgeSizes) Rect {
	return Rect{
		X:      r.X - e.Left,
		Y:      r.Y - e.Top,
		Width:  r.Width + e.Left + e.Right,
		Height: r.Height + e.Top + e.Bottom,
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("R(%g,%g,%g,%g)", r.X, r.Y, r.Width, r.Height)
}

// EdgeSizes holds the four sides of a padding, border or margin
type EdgeSizes struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

func (e EdgeSizes) String() string {
	return fmt.Sprintf("E(%g,%g,%g,%g)", e.Left, e.Right, e.Top, e.Bottom)
}

// Dimensions is the box model geometry of a box. It holds no references, so
// assigning it copies the whole record.
type Dimensions struct {
	Content Rect      `json:"content"`
	Padding EdgeSizes `json:"padding"`
	Border  EdgeSizes `json:"border"`
	Margin  EdgeSizes `json:"margin"`
}

// PaddingBox is the content area plus padding
func (d Dimensions) PaddingBox() Rect {
	return d.Content.ExpandedBy(d.Padding)
}

// BorderBox is the padding box plus border
func (d Dimensions) BorderBox() Rect {
	return d.PaddingBox().ExpandedBy(d.Border)
}

// MarginBox is the border box plus margin
func (d Dimensions) MarginBox() Rect {
	return d.BorderBox().ExpandedBy(d.Margin)
}

func (d Dimensions) String() string {
	return fmt.Sprintf("Dim(c=%s,p=%s,b=%s,m=%s)", d.Content, d.Padding, d.Border, d.Margin)
}
