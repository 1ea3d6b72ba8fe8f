package html

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"boxlayout/internal/dom"
)

// ErrEmptyDocument is returned when parsing yields no nodes
var ErrEmptyDocument = errors.New("document has no nodes")

// Parser converts HTML into dom trees using goquery
type Parser struct {
	opts Options
}

// NewParser creates a new GoQuery-based HTML parser
func NewParser(opts Options) *Parser {
	return &Parser{opts: opts}
}

// Document is a parsed HTML document and its dom tree
type Document struct {
	doc   *goquery.Document
	root  *dom.Node
	nodes map[*html.Node]*dom.Node
}

// Parse parses a complete HTML document; the root is the <html> element
func (p *Parser) Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	d := &Document{doc: doc, nodes: make(map[*html.Node]*dom.Node)}
	htmlNode := doc.Find("html").First().Get(0)
	if htmlNode == nil {
		return nil, ErrEmptyDocument
	}
	d.root = p.convert(d, htmlNode)
	return d, nil
}

// ParseString parses a complete HTML document from a string
func (p *Parser) ParseString(src string) (*Document, error) {
	return p.Parse(strings.NewReader(src))
}

// ParseFile parses HTML file into a Document
func (p *Parser) ParseFile(filename string) (*Document, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	defer f.Close()

	return p.Parse(f)
}

// ParseFragment parses markup in a <body> context without implied html/head/body
// elements. A single top-level node becomes the root; several are wrapped in a
// synthetic <html> element.
func (p *Parser) ParseFragment(r io.Reader) (*Document, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	parsed, err := html.ParseFragment(r, context)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML fragment: %w", err)
	}

	var top []*html.Node
	for _, n := range parsed {
		if p.keep(n) {
			top = append(top, n)
		}
	}

	var rootNode *html.Node
	switch len(top) {
	case 0:
		return nil, ErrEmptyDocument
	case 1:
		rootNode = top[0]
	default:
		rootNode = &html.Node{Type: html.ElementNode, Data: "html", DataAtom: atom.Html}
		for _, n := range top {
			rootNode.AppendChild(n)
		}
	}

	// The document node lets queries match the root element too.
	docNode := &html.Node{Type: html.DocumentNode}
	docNode.AppendChild(rootNode)

	d := &Document{
		doc:   goquery.NewDocumentFromNode(docNode),
		nodes: make(map[*html.Node]*dom.Node),
	}
	d.root = p.convert(d, rootNode)
	return d, nil
}

// keep reports whether an html node becomes part of the dom tree
func (p *Parser) keep(n *html.Node) bool {
	switch n.Type {
	case html.ElementNode, html.CommentNode:
		return true
	case html.TextNode:
		return p.opts.KeepWhitespace || strings.TrimSpace(n.Data) != ""
	default:
		return false
	}
}

// convert copies an html node and its kept descendants into the dom tree
func (p *Parser) convert(d *Document, n *html.Node) *dom.Node {
	var out *dom.Node
	switch n.Type {
	case html.ElementNode:
		attrs := make(map[string]string, len(n.Attr))
		for _, attr := range n.Attr {
			attrs[attr.Key] = attr.Val
		}
		out = dom.Elem(n.Data, attrs)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if p.keep(c) {
				out.Children = append(out.Children, p.convert(d, c))
			}
		}
	case html.TextNode:
		out = dom.Text(n.Data)
	default:
		out = dom.Comment(n.Data)
	}
	d.nodes[n] = out
	return out
}

// Root returns the root of the dom tree
func (d *Document) Root() *dom.Node {
	return d.root
}

// StyleText returns the concatenated contents of all <style> elements
func (d *Document) StyleText() string {
	var sb strings.Builder
	d.doc.Find("style").Each(func(_ int, s *goquery.Selection) {
		if content := s.Text(); content != "" {
			sb.WriteString(content)
			sb.WriteString("\n")
		}
	})
	return sb.String()
}

// QuerySelectorAll returns the dom nodes of all elements matching a CSS selector.
// The full selector syntax is accepted here, unlike in style sheets.
func (d *Document) QuerySelectorAll(selector string) ([]*dom.Node, error) {
	matcher, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", selector, err)
	}

	var nodes []*dom.Node
	d.doc.FindMatcher(matcher).Each(func(_ int, s *goquery.Selection) {
		if n, ok := d.nodes[s.Get(0)]; ok {
			nodes = append(nodes, n)
		}
	})
	return nodes, nil
}

// HTML serializes the parsed document
func (d *Document) HTML() (string, error) {
	out, err := d.doc.Html()
	if err != nil {
		return "", fmt.Errorf("failed to serialize HTML: %w", err)
	}
	return out, nil
}
