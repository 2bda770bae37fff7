package widgets

import (
	"github.com/go-drift/folio/pkg/core"
	"github.com/go-drift/folio/pkg/markup"
	"github.com/go-drift/folio/pkg/theme"
)

// Box is an element with a style role and ordered children. It is the
// building block every container composes.
type Box struct {
	// Tag is the element name. Empty means div.
	Tag string
	// Role selects the class from the StyleResolver in scope.
	Role theme.StyleRole
	// Attrs are extra attributes, emitted before the class.
	Attrs []markup.Attr
	// Children render inside the box in order.
	Children []core.Widget
}

func (b Box) CreateElement() core.Element {
	return core.NewNodeElement()
}

func (b Box) Key() any {
	return nil
}

func (b Box) CreateNode(ctx core.BuildContext) *markup.Node {
	tag := b.Tag
	if tag == "" {
		tag = "div"
	}
	node := markup.Element(tag, append([]markup.Attr(nil), b.Attrs...)...)
	return node.AddClass(theme.ClassOf(ctx, b.Role))
}

func (b Box) ChildWidgets() []core.Widget {
	return b.Children
}

// WithChildren returns a copy of the box with children appended.
func (b Box) WithChildren(children ...core.Widget) Box {
	b.Children = append(append([]core.Widget(nil), b.Children...), children...)
	return b
}

// Fragment groups children without producing an element of its own.
type Fragment struct {
	core.NodeBase
	Children []core.Widget
}

func (f Fragment) CreateNode(ctx core.BuildContext) *markup.Node {
	return nil
}

func (f Fragment) ChildWidgets() []core.Widget {
	return f.Children
}
