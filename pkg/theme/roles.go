package theme

// StyleRole is a semantic style slot. Widgets tag host nodes with roles and
// never with concrete presentation.
type StyleRole int

const (
	RoleDocument StyleRole = iota
	RoleArticle
	RoleHeader
	RoleTitle
	RoleSubtitle
	RoleSection
	RoleHeading
	RoleSubheading
	RoleParagraph
	RoleStrong
	RoleEmphasis
	RoleMathInline
	RoleMathBlock
	RoleMathError
	RoleTheorem
	RoleTheoremTitle
	RoleNote
	RoleCodeWindow
	RoleCodeLabel
	RoleCode
	RoleDemo
	RoleDemoCaption
	RoleFigure
	RoleImage
	RoleImageMissing
	RoleCaption
	RoleColumns
	RoleColumn
	RoleListTitle
	RoleList
	RoleListItem
	RoleFootnote
	RoleErrorWidget
)

var roleNames = [...]string{
	RoleDocument:     "document",
	RoleArticle:      "article",
	RoleHeader:       "header",
	RoleTitle:        "title",
	RoleSubtitle:     "subtitle",
	RoleSection:      "section",
	RoleHeading:      "heading",
	RoleSubheading:   "subheading",
	RoleParagraph:    "paragraph",
	RoleStrong:       "strong",
	RoleEmphasis:     "emphasis",
	RoleMathInline:   "math-inline",
	RoleMathBlock:    "math-block",
	RoleMathError:    "math-error",
	RoleTheorem:      "theorem",
	RoleTheoremTitle: "theorem-title",
	RoleNote:         "note",
	RoleCodeWindow:   "code-window",
	RoleCodeLabel:    "code-label",
	RoleCode:         "code",
	RoleDemo:         "demo",
	RoleDemoCaption:  "demo-caption",
	RoleFigure:       "figure",
	RoleImage:        "image",
	RoleImageMissing: "image-missing",
	RoleCaption:      "caption",
	RoleColumns:      "columns",
	RoleColumn:       "column",
	RoleListTitle:    "list-title",
	RoleList:         "list",
	RoleListItem:     "list-item",
	RoleFootnote:     "footnote",
	RoleErrorWidget:  "error",
}

// String returns the role's stable name, used as the class suffix.
func (r StyleRole) String() string {
	if r < 0 || int(r) >= len(roleNames) {
		return "unknown"
	}
	return roleNames[r]
}

// Roles returns every defined role in declaration order.
func Roles() []StyleRole {
	out := make([]StyleRole, len(roleNames))
	for i := range roleNames {
		out[i] = StyleRole(i)
	}
	return out
}

// StyleResolver maps roles to class names. Swapping the resolver restyles
// the document without touching content.
type StyleResolver interface {
	ClassFor(role StyleRole) string
}

// ResolverFunc adapts a function to StyleResolver.
type ResolverFunc func(role StyleRole) string

// ClassFor calls f(role).
func (f ResolverFunc) ClassFor(role StyleRole) string { return f(role) }
