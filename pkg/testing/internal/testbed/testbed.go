// Package testbed holds small widgets used by the tester's own tests.
package testbed

import (
	"github.com/go-drift/folio/pkg/core"
	"github.com/go-drift/folio/pkg/markup"
	"github.com/go-drift/folio/pkg/theme"
	"github.com/go-drift/folio/pkg/widgets"
)

// Card is a themed box with a heading and a body line.
type Card struct {
	core.StatelessBase
	Title string
	Body  string
}

func (c Card) Build(ctx core.BuildContext) core.Widget {
	return widgets.Box{
		Tag:  "div",
		Role: theme.RoleNote,
		Children: []core.Widget{
			widgets.Heading{Level: 3, Content: c.Title},
			widgets.ParagraphOf(widgets.T(c.Body)),
		},
	}
}

// Panicker fails every build with Message.
type Panicker struct {
	core.StatelessBase
	Message string
}

func (p Panicker) Build(ctx core.BuildContext) core.Widget {
	panic(p.Message)
}

// Marker emits an empty element carrying a data-marker attribute.
type Marker struct {
	core.NodeBase
	Name string
}

func (m Marker) CreateNode(ctx core.BuildContext) *markup.Node {
	return markup.Element("span", markup.A("data-marker", m.Name))
}
