package markup

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/net/html"
)

// Render writes n and its descendants as HTML.
func Render(w io.Writer, n *Node) error {
	if n == nil {
		return nil
	}
	return html.Render(w, toHTML(n))
}

// RenderDocument writes an HTML5 doctype followed by root.
func RenderDocument(w io.Writer, root *Node) error {
	if root == nil {
		return fmt.Errorf("markup: nil document root")
	}
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(toHTML(root))
	return html.Render(w, doc)
}

// String renders n to a string. Serialization errors are rendered as an
// HTML comment so callers in tests and logs always get output.
func String(n *Node) string {
	var buf bytes.Buffer
	if err := Render(&buf, n); err != nil {
		return fmt.Sprintf("<!-- markup: %v -->", err)
	}
	return buf.String()
}

func toHTML(n *Node) *html.Node {
	if n.Type == TextNode {
		return &html.Node{Type: html.TextNode, Data: n.Text}
	}
	out := &html.Node{Type: html.ElementNode, Data: n.Tag}
	for _, a := range n.Attrs {
		out.Attr = append(out.Attr, html.Attribute{Key: a.Key, Val: a.Val})
	}
	for _, c := range n.Children {
		if c == nil {
			continue
		}
		out.AppendChild(toHTML(c))
	}
	return out
}

// FromHTML converts a parsed x/net/html tree into host nodes. Comment and
// doctype nodes are dropped; a document node yields its first element.
func FromHTML(n *html.Node) *Node {
	switch n.Type {
	case html.TextNode:
		return Text(n.Data)
	case html.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				return FromHTML(c)
			}
		}
		return nil
	case html.ElementNode:
		out := Element(n.Data)
		for _, a := range n.Attr {
			out.Attrs = append(out.Attrs, Attr{Key: a.Key, Val: a.Val})
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			out.Append(FromHTML(c))
		}
		return out
	default:
		return nil
	}
}

// Parse parses an HTML document into host nodes rooted at <html>.
func Parse(r io.Reader) (*Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("markup: parse: %w", err)
	}
	root := FromHTML(doc)
	if root == nil {
		return nil, fmt.Errorf("markup: document has no root element")
	}
	return root, nil
}
