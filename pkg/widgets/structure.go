package widgets

import (
	"github.com/go-drift/folio/pkg/core"
	"github.com/go-drift/folio/pkg/theme"
)

// Paragraph is a run of inline children.
type Paragraph struct {
	core.StatelessBase
	Children []core.Widget
}

// ParagraphOf returns a paragraph holding children.
func ParagraphOf(children ...core.Widget) Paragraph {
	return Paragraph{Children: children}
}

func (p Paragraph) Build(ctx core.BuildContext) core.Widget {
	return Box{Tag: "p", Role: theme.RoleParagraph, Children: p.Children}
}

// Heading is a section heading. Level 1 is the document title; level 2
// and 3 are section and subsection headings; deeper levels are list titles.
type Heading struct {
	core.StatelessBase
	Level   int
	Content string
}

func (h Heading) Build(ctx core.BuildContext) core.Widget {
	level := min(max(h.Level, 1), 6)
	role := theme.RoleListTitle
	switch level {
	case 1:
		role = theme.RoleTitle
	case 2:
		role = theme.RoleHeading
	case 3:
		role = theme.RoleSubheading
	}
	return Box{
		Tag:      headingTags[level-1],
		Role:     role,
		Children: []core.Widget{Text{Content: h.Content}},
	}
}

var headingTags = [...]string{"h1", "h2", "h3", "h4", "h5", "h6"}

// Header is the document header: a title and an optional subtitle.
type Header struct {
	core.StatelessBase
	Title    string
	Subtitle string
}

func (h Header) Build(ctx core.BuildContext) core.Widget {
	children := []core.Widget{Heading{Level: 1, Content: h.Title}}
	if h.Subtitle != "" {
		children = append(children, Box{
			Tag:      "p",
			Role:     theme.RoleSubtitle,
			Children: []core.Widget{Text{Content: h.Subtitle}},
		})
	}
	return Box{Tag: "header", Role: theme.RoleHeader, Children: children}
}

// Section is a top-level document section.
type Section struct {
	core.StatelessBase
	Children []core.Widget
}

// SectionOf returns a section holding children.
func SectionOf(children ...core.Widget) Section {
	return Section{Children: children}
}

func (s Section) Build(ctx core.BuildContext) core.Widget {
	return Box{Tag: "section", Role: theme.RoleSection, Children: s.Children}
}

// Article is the outermost document element.
type Article struct {
	core.StatelessBase
	Children []core.Widget
}

func (a Article) Build(ctx core.BuildContext) core.Widget {
	return Box{Tag: "article", Role: theme.RoleArticle, Children: a.Children}
}
