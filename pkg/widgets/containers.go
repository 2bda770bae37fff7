package widgets

import (
	"github.com/go-drift/folio/pkg/core"
	"github.com/go-drift/folio/pkg/markup"
	"github.com/go-drift/folio/pkg/theme"
)

// Theorem is a bordered box with a title header followed by its children.
// Children render exactly as they would outside the box.
type Theorem struct {
	core.StatelessBase
	Title    string
	Children []core.Widget
}

func (t Theorem) Build(ctx core.BuildContext) core.Widget {
	children := make([]core.Widget, 0, len(t.Children)+1)
	children = append(children, Box{
		Tag:      "div",
		Role:     theme.RoleTheoremTitle,
		Children: []core.Widget{Text{Content: t.Title}},
	})
	children = append(children, t.Children...)
	return Box{
		Tag:      "div",
		Role:     theme.RoleTheorem,
		Attrs:    []markup.Attr{markup.A("role", "group")},
		Children: children,
	}
}

// Note is the theorem frame without a title region.
type Note struct {
	core.StatelessBase
	Children []core.Widget
}

func (n Note) Build(ctx core.BuildContext) core.Widget {
	return Box{
		Tag:      "aside",
		Role:     theme.RoleNote,
		Children: n.Children,
	}
}

// CodeWindow shows fixed-width text with whitespace and line breaks kept
// exactly. Label, when set, is shown above the code.
type CodeWindow struct {
	core.StatelessBase
	Label string
	Code  string
}

func (c CodeWindow) Build(ctx core.BuildContext) core.Widget {
	var children []core.Widget
	if c.Label != "" {
		children = append(children, Box{
			Tag:      "figcaption",
			Role:     theme.RoleCodeLabel,
			Children: []core.Widget{Text{Content: c.Label}},
		})
	}
	children = append(children, Box{
		Tag:      "pre",
		Role:     theme.RoleCode,
		Children: []core.Widget{rawCode{code: c.Code}},
	})
	return Box{Tag: "figure", Role: theme.RoleCodeWindow, Children: children}
}

type rawCode struct {
	core.NodeBase
	code string
}

func (r rawCode) CreateNode(ctx core.BuildContext) *markup.Node {
	return markup.Element("code").Append(markup.Text(r.code))
}
