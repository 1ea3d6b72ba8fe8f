// Package boxlayout styles an HTML document with a CSS style sheet and computes
// the block box layout of the result.
package boxlayout

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"boxlayout/internal/config"
	"boxlayout/internal/css"
	"boxlayout/internal/dom"
	"boxlayout/internal/html"
	"boxlayout/internal/layout"
	"boxlayout/internal/paint"
	"boxlayout/internal/resolver"
)

// Engine is the style and layout pipeline
type Engine struct {
	config     config.Config
	log        *zap.Logger
	cssParser  *css.Parser
	htmlParser *html.Parser
}

// New creates a new engine with the given configuration
func New(cfg config.Config, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		config:     cfg,
		log:        log,
		cssParser:  css.NewParser(log),
		htmlParser: html.NewParser(html.Options{KeepWhitespace: cfg.Input.KeepWhitespace}),
	}
}

// NewWithDefaults creates a new engine with the default configuration
func NewWithDefaults() *Engine {
	return New(config.Default(), nil)
}

// Result contains the products of a render
type Result struct {
	Document   *html.Document
	Stylesheet *css.Stylesheet
	Styled     *resolver.StyledNode
	Root       *layout.LayoutBox
	Commands   []paint.DisplayCommand
	Stats      Stats
}

// Stats summarizes a render
type Stats struct {
	RulesParsed    int
	ElementsStyled int
	Boxes          int
	Unsupported    int
	Elapsed        time.Duration
}

// Render parses htmlSrc and cssSrc and lays out the document. If cssSrc is
// empty the contents of the document's <style> elements are used instead.
func (e *Engine) Render(htmlSrc, cssSrc string) (*Result, error) {
	doc, err := e.parseHTML(htmlSrc)
	if err != nil {
		return nil, err
	}

	if cssSrc == "" {
		cssSrc = doc.StyleText()
	}
	sheet, err := e.cssParser.Parse([]byte(cssSrc))
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSS: %w", err)
	}

	return e.RenderDocument(doc, sheet)
}

func (e *Engine) parseHTML(src string) (*html.Document, error) {
	var (
		doc *html.Document
		err error
	)
	if e.config.Input.Fragment {
		doc, err = e.htmlParser.ParseFragment(strings.NewReader(src))
	} else {
		doc, err = e.htmlParser.ParseString(src)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// RenderDocument styles and lays out an already parsed document
func (e *Engine) RenderDocument(doc *html.Document, sheet *css.Stylesheet) (*Result, error) {
	start := time.Now()

	styled := resolver.New(sheet, e.log).StyleTree(doc.Root())

	root, err := layout.NewEngine(e.log).Generate(styled, e.containingBlock())
	if err != nil {
		return nil, fmt.Errorf("failed to lay out document: %w", err)
	}

	result := &Result{
		Document:   doc,
		Stylesheet: sheet,
		Styled:     styled,
		Root:       root,
		Commands:   paint.BuildDisplayList(root),
	}
	result.Stats = Stats{
		RulesParsed:    len(sheet.Rules),
		ElementsStyled: countElements(doc.Root()),
		Boxes:          countBoxes(root),
		Unsupported:    len(layout.UnsupportedBoxes(root)),
		Elapsed:        time.Since(start),
	}

	e.log.Info("Layout complete",
		zap.Int("rules", result.Stats.RulesParsed),
		zap.Int("elements", result.Stats.ElementsStyled),
		zap.Int("boxes", result.Stats.Boxes),
		zap.Int("unsupported", result.Stats.Unsupported),
		zap.Duration("elapsed", result.Stats.Elapsed))

	return result, nil
}

// containingBlock converts the configured viewport into the initial containing block
func (e *Engine) containingBlock() layout.Dimensions {
	v := e.config.Viewport
	return layout.Dimensions{
		Content: layout.Rect{X: v.X, Y: v.Y, Width: v.Width, Height: v.Height},
	}
}

// Select returns the boxes generated for elements matching a CSS selector
func (r *Result) Select(selector string) ([]*layout.LayoutBox, error) {
	nodes, err := r.Document.QuerySelectorAll(selector)
	if err != nil {
		return nil, err
	}
	var boxes []*layout.LayoutBox
	for _, n := range nodes {
		if b := layout.FindBox(r.Root, n); b != nil {
			boxes = append(boxes, b)
		}
	}
	return boxes, nil
}

func countElements(n *dom.Node) int {
	count := 0
	if n.IsElement() {
		count++
	}
	for _, c := range n.Children {
		count += countElements(c)
	}
	return count
}

func countBoxes(root *layout.LayoutBox) int {
	count := 0
	layout.Walk(root, func(*layout.LayoutBox, int) bool {
		count++
		return true
	})
	return count
}

// RenderString is a convenience function rendering with the default configuration
func RenderString(htmlSrc, cssSrc string) (*Result, error) {
	return NewWithDefaults().Render(htmlSrc, cssSrc)
}
