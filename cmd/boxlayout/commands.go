package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"boxlayout/internal/resolver"
	"boxlayout/pkg/boxlayout"
)

func newLayoutCommand(opts *options) *cobra.Command {
	var selector string

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the laid out box tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, cfg, err := opts.render(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if selector != "" {
				boxes, err := result.Select(selector)
				if err != nil {
					return fmt.Errorf("invalid selector %q: %w", selector, err)
				}
				if cfg.Output.Format == "json" {
					views := make([]boxlayout.BoxView, 0, len(boxes))
					for _, b := range boxes {
						views = append(views, boxlayout.ViewOf(b))
					}
					return boxlayout.WriteJSON(out, views)
				}
				return boxlayout.WriteBoxes(out, boxes)
			}

			if cfg.Output.Format == "json" {
				return boxlayout.WriteJSON(out, boxlayout.ViewOf(result.Root))
			}
			return boxlayout.WriteBoxTree(out, result.Root)
		},
	}
	cmd.Flags().StringVarP(&selector, "select", "s", "", "Only print the boxes of elements matching this CSS selector")
	return cmd
}

func newPaintCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "paint",
		Short: "Print the display list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, cfg, err := opts.render(cmd)
			if err != nil {
				return err
			}
			if cfg.Output.Format == "json" {
				return boxlayout.WriteJSON(cmd.OutOrStdout(), result.Commands)
			}
			return boxlayout.WriteCommands(cmd.OutOrStdout(), result.Commands)
		},
	}
}

// styleView is the serialized form of a styled node
type styleView struct {
	Node     string            `json:"node"`
	Values   map[string]string `json:"values"`
	Children []styleView       `json:"children,omitempty"`
}

func viewOfStyle(s *resolver.StyledNode) styleView {
	v := styleView{
		Node:   s.Node.Label(),
		Values: make(map[string]string, len(s.SpecifiedValues)),
	}
	for name, value := range s.SpecifiedValues {
		v.Values[name] = value.String()
	}
	for _, c := range s.Children {
		v.Children = append(v.Children, viewOfStyle(c))
	}
	return v
}

func newStylesCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "Print the styled tree with each element's specified values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, cfg, err := opts.render(cmd)
			if err != nil {
				return err
			}
			if cfg.Output.Format == "json" {
				return boxlayout.WriteJSON(cmd.OutOrStdout(), viewOfStyle(result.Styled))
			}
			result.Styled.Print(cmd.OutOrStdout(), "")
			return nil
		},
	}
}
