package layout

import (
	"fmt"

	"go.uber.org/zap"

	"boxlayout/internal/css"
	"boxlayout/internal/resolver"
)

// Engine runs layout passes. It carries only the pass's log sink.
type Engine struct {
	log *zap.Logger
}

// NewEngine creates a layout engine logging to log (nil disables logging)
func NewEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{log: log.Named("layout")}
}

// Generate builds the box tree for styledRoot and lays it out in containingBlock.
// The containing block's content height is reset to zero so the flow starts at
// its top. A contract violation anywhere aborts the pass: no tree is returned.
func (e *Engine) Generate(styledRoot *resolver.StyledNode, containingBlock Dimensions) (root *LayoutBox, err error) {
	defer func() {
		if r := recover(); r != nil {
			ce, ok := r.(*css.ContractError)
			if !ok {
				panic(r)
			}
			e.log.Error("Layout pass aborted", zap.Error(ce))
			root, err = nil, fmt.Errorf("layout pass aborted: %w", ce)
		}
	}()

	containingBlock.Content.Height = 0

	root, err = BuildLayoutTree(styledRoot)
	if err != nil {
		return nil, err
	}
	root.Layout(containingBlock, e)

	if unsupported := UnsupportedBoxes(root); len(unsupported) > 0 {
		e.log.Debug("Boxes left without layout", zap.Int("count", len(unsupported)))
	}
	return root, nil
}

// Generate is a convenience wrapper around Engine.Generate
func Generate(styledRoot *resolver.StyledNode, containingBlock Dimensions, log *zap.Logger) (*LayoutBox, error) {
	return NewEngine(log).Generate(styledRoot, containingBlock)
}
