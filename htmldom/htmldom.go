// Package htmldom adapts golang.org/x/net/html parse trees to the
// feeddetector.Element and feeddetector.Document interfaces, using goquery
// for descendant queries and text extraction.
package htmldom

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"

	feeddetector "github.com/webos-goodies/feed-detector"
)

// Element wraps a single *html.Node and satisfies feeddetector.Element.
type Element struct {
	node *html.Node
}

// Wrap returns the Element for an *html.Node, for callers building fixtures
// directly from a parsed tree.
func Wrap(node *html.Node) *Element {
	return &Element{node: node}
}

// Node returns the underlying *html.Node, for callers that need to drop
// down to golang.org/x/net/html directly.
func (e *Element) Node() *html.Node {
	return e.node
}

// Tag returns the element's lower-case tag name, or "" if the wrapped node
// is not an element (e.g. the document node).
func (e *Element) Tag() string {
	if e.node.Type != html.ElementNode {
		return ""
	}
	return e.node.Data
}

// Attr returns the named attribute's value and whether it was present.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets the named attribute, adding it if not already present.
func (e *Element) SetAttr(name, value string) {
	for i, a := range e.node.Attr {
		if a.Key == name {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttr deletes the named attribute, if present.
func (e *Element) RemoveAttr(name string) {
	attrs := e.node.Attr
	for i, a := range attrs {
		if a.Key == name {
			e.node.Attr = append(attrs[:i], attrs[i+1:]...)
			return
		}
	}
}

// Children returns the element's direct element children, in document
// order.
func (e *Element) Children() []feeddetector.Element {
	var out []feeddetector.Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, &Element{node: c})
		}
	}
	return out
}

// Parent returns the element's enclosing element, stopping at (and
// excluding) the document node.
func (e *Element) Parent() (feeddetector.Element, bool) {
	p := e.node.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil, false
	}
	return &Element{node: p}, true
}

// Ancestors returns every enclosing element, nearest first, excluding the
// document node.
func (e *Element) Ancestors() []feeddetector.Element {
	var out []feeddetector.Element
	for p := e.node.Parent; p != nil && p.Type == html.ElementNode; p = p.Parent {
		out = append(out, &Element{node: p})
	}
	return out
}

// Descendants returns every descendant element with the given tag name, in
// document order. An empty tag matches every descendant.
func (e *Element) Descendants(tag string) []feeddetector.Element {
	if tag == "" {
		tag = "*"
	}
	sel := goquery.NewDocumentFromNode(e.node).Find(tag)
	out := make([]feeddetector.Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		if s.Length() > 0 && s.Nodes[0] != e.node {
			out = append(out, &Element{node: s.Nodes[0]})
		}
	})
	return out
}

// Text returns the whitespace-joined text of the element and its
// descendants, via goquery's text extraction.
func (e *Element) Text() string {
	text := goquery.NewDocumentFromNode(e.node).Text()
	return strings.Join(strings.Fields(text), " ")
}

// Document wraps a parsed HTML tree's root element.
type Document struct {
	root *Element
}

// Root returns the document's root element (the outermost <html> element,
// or the topmost element found if the source lacked one).
func (d *Document) Root() feeddetector.Element {
	return d.root
}

// Parse decodes body as HTML and returns the resulting Document. The
// character encoding is taken from a BOM if present, else from the charset
// parameter of contentType (typically a response's Content-Type header),
// else from a <meta> charset declaration, else guessed from the content.
func Parse(body io.Reader, contentType string) (*Document, error) {
	utf8Reader, err := charset.NewReader(body, contentType)
	if err != nil {
		return nil, err
	}
	node, err := html.Parse(utf8Reader)
	if err != nil {
		return nil, err
	}
	return &Document{root: &Element{node: findHTMLRoot(node)}}, nil
}

// ParseFragment parses an already-decoded UTF-8 HTML fragment, used by
// tests to build fixture documents without going through charset
// detection.
func ParseFragment(htmlText string) (*Document, error) {
	node, err := html.Parse(strings.NewReader(htmlText))
	if err != nil {
		return nil, err
	}
	return &Document{root: &Element{node: findHTMLRoot(node)}}, nil
}

func findHTMLRoot(node *html.Node) *html.Node {
	var htmlNode *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if htmlNode != nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == "html" {
			htmlNode = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(node)
	if htmlNode != nil {
		return htmlNode
	}
	return node
}
