package widgets

import (
	"github.com/go-drift/folio/pkg/core"
	"github.com/go-drift/folio/pkg/markup"
	"github.com/go-drift/folio/pkg/theme"
)

// Text displays a literal string. Content is escaped on output.
type Text struct {
	core.NodeBase
	// Content is the text string to display.
	Content string
}

func (t Text) CreateNode(ctx core.BuildContext) *markup.Node {
	return markup.Text(t.Content)
}

// T is shorthand for Text{Content: s}.
func T(s string) Text {
	return Text{Content: s}
}

// Strong renders its content with strong emphasis.
type Strong struct {
	core.NodeBase
	Content string
}

func (s Strong) CreateNode(ctx core.BuildContext) *markup.Node {
	return markup.Element("strong").
		AddClass(theme.ClassOf(ctx, theme.RoleStrong)).
		Append(markup.Text(s.Content))
}

// Emphasis renders its content in italics.
type Emphasis struct {
	core.NodeBase
	Content string
}

func (e Emphasis) CreateNode(ctx core.BuildContext) *markup.Node {
	return markup.Element("em").
		AddClass(theme.ClassOf(ctx, theme.RoleEmphasis)).
		Append(markup.Text(e.Content))
}
