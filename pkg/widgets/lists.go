package widgets

import (
	"github.com/go-drift/folio/pkg/core"
	"github.com/go-drift/folio/pkg/theme"
)

// ListItem is one bullet. Lead, when set, is shown in bold before Content.
type ListItem struct {
	Lead    string
	Content string
}

// BulletList is an unordered list that keeps item order. Title, when set,
// is shown as a heading above the list.
type BulletList struct {
	core.StatelessBase
	Title string
	Items []ListItem
}

func (l BulletList) Build(ctx core.BuildContext) core.Widget {
	items := make([]core.Widget, 0, len(l.Items))
	for _, item := range l.Items {
		var children []core.Widget
		if item.Lead != "" {
			children = append(children, Strong{Content: item.Lead}, Text{Content: " "})
		}
		children = append(children, Text{Content: item.Content})
		items = append(items, Box{Tag: "li", Role: theme.RoleListItem, Children: children})
	}
	list := Box{Tag: "ul", Role: theme.RoleList, Children: items}
	if l.Title == "" {
		return list
	}
	return Fragment{Children: []core.Widget{
		Heading{Level: 4, Content: l.Title},
		list,
	}}
}

// Columns lays children out in one column below the theme breakpoint and
// two columns at or above it.
type Columns struct {
	core.StatelessBase
	Children []core.Widget
}

func (c Columns) Build(ctx core.BuildContext) core.Widget {
	cells := make([]core.Widget, 0, len(c.Children))
	for _, child := range c.Children {
		cells = append(cells, Box{Tag: "div", Role: theme.RoleColumn, Children: []core.Widget{child}})
	}
	return Box{Tag: "div", Role: theme.RoleColumns, Children: cells}
}
