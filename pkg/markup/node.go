// Package markup defines the host node tree the widget framework produces and
// serializes it to HTML.
//
// A Node is either an element (tag, attributes, ordered children) or a text
// leaf. Widgets build nodes once per render; nothing mutates a node after its
// owning element has finished mounting.
package markup

import (
	"slices"
	"strings"
)

// NodeType is the closed set of host node kinds.
type NodeType int

const (
	// ElementNode is a tagged element with attributes and children.
	ElementNode NodeType = iota
	// TextNode is a literal text leaf, escaped on output.
	TextNode
)

func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	default:
		return "unknown"
	}
}

// Attr is a single element attribute.
type Attr struct {
	Key string
	Val string
}

// A returns an Attr.
func A(key, val string) Attr {
	return Attr{Key: key, Val: val}
}

// Node is one host node.
type Node struct {
	Type     NodeType
	Tag      string
	Attrs    []Attr
	Text     string
	Children []*Node
}

// Element returns a new element node.
func Element(tag string, attrs ...Attr) *Node {
	return &Node{Type: ElementNode, Tag: tag, Attrs: attrs}
}

// Text returns a new text node.
func Text(s string) *Node {
	return &Node{Type: TextNode, Text: s}
}

// Append adds children in order and returns n. Nil children are skipped.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// Attr returns the value of the attribute named key.
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or replaces an attribute and returns n.
func (n *Node) SetAttr(key, val string) *Node {
	for i := range n.Attrs {
		if n.Attrs[i].Key == key {
			n.Attrs[i].Val = val
			return n
		}
	}
	n.Attrs = append(n.Attrs, Attr{Key: key, Val: val})
	return n
}

// AddClass appends class names to the class attribute, skipping empty
// names and names already present, and returns n.
func (n *Node) AddClass(classes ...string) *Node {
	current, _ := n.Attr("class")
	fields := strings.Fields(current)
	changed := false
	for _, c := range classes {
		if c == "" || slices.Contains(fields, c) {
			continue
		}
		fields = append(fields, c)
		changed = true
	}
	if changed {
		n.SetAttr("class", strings.Join(fields, " "))
	}
	return n
}

// HasClass reports whether the class attribute contains class.
func (n *Node) HasClass(class string) bool {
	current, _ := n.Attr("class")
	return slices.Contains(strings.Fields(current), class)
}

// TextContent returns the concatenated text of n and its descendants.
func (n *Node) TextContent() string {
	var sb strings.Builder
	n.Walk(func(c *Node) bool {
		if c.Type == TextNode {
			sb.WriteString(c.Text)
		}
		return true
	})
	return sb.String()
}

// Walk visits n and its descendants depth-first in document order. Returning
// false from fn skips the children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// FindAll returns every node under n (inclusive) matching pred, in document
// order.
func (n *Node) FindAll(pred func(*Node) bool) []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		if pred(c) {
			out = append(out, c)
		}
		return true
	})
	return out
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{
		Type:  n.Type,
		Tag:   n.Tag,
		Text:  n.Text,
		Attrs: slices.Clone(n.Attrs),
	}
	if len(n.Children) > 0 {
		out.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}
