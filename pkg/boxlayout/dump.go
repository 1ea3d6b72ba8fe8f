package boxlayout

import (
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"boxlayout/internal/layout"
	"boxlayout/internal/paint"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// BoxView is the serialized form of a layout box
type BoxView struct {
	Type       string            `json:"type"`
	Node       string            `json:"node,omitempty"`
	State      string            `json:"state"`
	Dimensions layout.Dimensions `json:"dimensions"`
	Children   []BoxView         `json:"children,omitempty"`
}

// ViewOf converts a box tree into its serialized form
func ViewOf(b *layout.LayoutBox) BoxView {
	v := BoxView{
		Type:       b.BoxType.String(),
		State:      b.State.String(),
		Dimensions: b.Dimensions,
	}
	if b.StyledNode != nil {
		v.Node = b.StyledNode.Node.Label()
	}
	for _, c := range b.Children {
		v.Children = append(v.Children, ViewOf(c))
	}
	return v
}

// WriteBoxTree writes an indented outline of the box tree
func WriteBoxTree(w io.Writer, root *layout.LayoutBox) error {
	var err error
	layout.Walk(root, func(b *layout.LayoutBox, depth int) bool {
		if err != nil {
			return false
		}
		_, err = fmt.Fprintf(w, "%s%s [%s] %s\n", strings.Repeat("  ", depth), b.Label(), b.State, b.Dimensions)
		return true
	})
	return err
}

// WriteBoxes writes one line per box without descending into children
func WriteBoxes(w io.Writer, boxes []*layout.LayoutBox) error {
	for _, b := range boxes {
		d := b.Dimensions
		if _, err := fmt.Fprintf(w, "%s content=%s border-box=%s margin-box=%s\n",
			b.Label(), d.Content, d.BorderBox(), d.MarginBox()); err != nil {
			return err
		}
	}
	return nil
}

// WriteCommands writes one display command per line
func WriteCommands(w io.Writer, commands []paint.DisplayCommand) error {
	for _, c := range commands {
		if _, err := fmt.Fprintln(w, c); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON writes v as indented JSON
func WriteJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
