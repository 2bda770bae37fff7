package theme

import (
	"fmt"
	"strconv"
	"strings"
)

// Stylesheet returns the CSS for every role. The output depends only on the
// theme values, so identical themes produce byte-identical stylesheets.
func (t *ThemeData) Stylesheet() string {
	c := t.ColorScheme
	tt := t.TextTheme
	s := &sheet{t: t}

	s.rule(RoleDocument,
		"margin", "0",
		"background", c.Background.CSS(),
		"color", c.OnBackground.CSS(),
		"font-family", tt.SerifFamily,
	)
	s.rule(RoleArticle,
		"max-width", px(t.MaxContentWidth),
		"margin", "0 auto",
		"padding", "2rem 1.25rem 4rem",
	)
	s.rule(RoleHeader, "margin-bottom", "2rem")
	s.text(RoleTitle, tt.Title, "margin", "0 0 0.5rem")
	s.text(RoleSubtitle, tt.Subtitle, "margin", "0 0 1rem", "color", c.Muted.CSS())
	s.rule(RoleSection, "margin-top", "2rem")
	s.text(RoleHeading, tt.Heading,
		"margin", "2rem 0 1rem",
		"padding-bottom", "0.25rem",
		"border-bottom", "1px solid "+c.Border.CSS(),
	)
	s.text(RoleSubheading, tt.Subheading, "margin", "1.5rem 0 0.75rem")
	s.text(RoleParagraph, tt.Body, "margin", "0 0 1rem")
	s.rule(RoleStrong, "font-weight", "600")
	s.rule(RoleEmphasis, "font-style", "italic")
	s.rule(RoleMathInline, "white-space", "nowrap")
	s.rule(RoleMathBlock,
		"display", "block",
		"margin", "1rem 0",
		"text-align", "center",
		"overflow-x", "auto",
	)
	s.rule(RoleMathError,
		"font-family", tt.MonoFamily,
		"color", c.Error.CSS(),
		"background", c.ErrorSurface.CSS(),
		"padding", "0 0.25rem",
	)
	s.rule(RoleTheorem,
		"margin", "1.5rem 0",
		"padding", "1rem 1.25rem",
		"border", "1px solid "+c.Primary.WithAlpha(0.35).CSS(),
		"border-left", "4px solid "+c.Primary.CSS(),
		"border-radius", "0.375rem",
		"background", c.Surface.CSS(),
	)
	s.text(RoleTheoremTitle, tt.Subheading,
		"margin", "0 0 0.75rem",
		"color", c.Primary.CSS(),
	)
	s.rule(RoleNote,
		"margin", "1.5rem 0",
		"padding", "1rem 1.25rem",
		"border-left", "4px solid "+c.Accent.CSS(),
		"border-radius", "0.375rem",
		"background", c.AccentSurface.CSS(),
	)
	s.rule(RoleCodeWindow,
		"margin", "1.5rem 0",
		"border", "1px solid "+c.Border.CSS(),
		"border-radius", "0.5rem",
		"overflow", "hidden",
		"background", c.CodeSurface.CSS(),
	)
	s.rule(RoleCodeLabel,
		"padding", "0.375rem 0.75rem",
		"font-family", tt.SansFamily,
		"font-size", rem(tt.Small.FontSize),
		"color", c.Subtle.CSS(),
		"border-bottom", "1px solid "+c.Border.CSS(),
	)
	s.text(RoleCode, tt.Code,
		"margin", "0",
		"padding", "0.75rem",
		"overflow-x", "auto",
		"white-space", "pre",
		"font-family", tt.MonoFamily,
		"color", c.OnCode.CSS(),
	)
	s.rule(RoleDemo,
		"margin", "2rem 0",
		"padding", "1.5rem",
		"border-radius", "0.5rem",
		"background", c.Surface.CSS(),
		"box-shadow", "0 1px 2px "+c.OnBackground.WithAlpha(0.08).CSS(),
	)
	s.text(RoleDemoCaption, tt.Caption, "margin", "0 0 0.5rem", "font-family", tt.SansFamily)
	s.rule(RoleFigure,
		"display", "flex",
		"justify-content", "center",
		"margin", "1.5rem 0",
		"padding", "1rem",
		"border", "1px solid "+c.Border.CSS(),
		"border-radius", "0.5rem",
		"background", "#ffffff",
	)
	s.rule(RoleImage,
		"display", "block",
		"max-width", "100%",
		"height", "auto",
		"object-fit", "contain",
		"background", "#ffffff",
	)
	s.rule(RoleImageMissing,
		"display", "flex",
		"align-items", "center",
		"justify-content", "center",
		"min-height", "12rem",
		"width", "100%",
		"border", "2px dashed "+c.Error.CSS(),
		"color", c.Error.CSS(),
		"font-family", tt.SansFamily,
	)
	s.text(RoleCaption, tt.Small, "color", c.Muted.CSS(), "margin", "0 0 1rem")
	s.rule(RoleColumns,
		"display", "grid",
		"grid-template-columns", "minmax(0, 1fr)",
		"gap", "1.5rem",
		"padding-top", "1rem",
		"border-top", "1px solid "+c.Border.CSS(),
	)
	s.rule(RoleColumn, "min-width", "0")
	s.rule(RoleListTitle, "margin", "0 0 0.5rem", "font-weight", "500", "font-family", tt.SansFamily)
	s.text(RoleList, tt.Small, "margin", "0", "padding-left", "1.25rem", "color", c.Muted.CSS())
	s.rule(RoleListItem, "margin-bottom", "0.5rem")
	s.text(RoleFootnote, tt.Small,
		"margin-top", "1rem",
		"padding-top", "1rem",
		"border-top", "1px solid "+c.Border.CSS(),
		"color", c.Subtle.CSS(),
	)
	s.rule(RoleErrorWidget,
		"display", "block",
		"padding", "0.5rem 0.75rem",
		"border", "1px solid "+c.Error.CSS(),
		"background", c.ErrorSurface.CSS(),
		"color", c.Error.CSS(),
		"font-family", tt.MonoFamily,
		"font-size", rem(tt.Small.FontSize),
		"white-space", "pre-wrap",
	)

	fmt.Fprintf(&s.b, "@media (min-width: %dpx) {\n", t.breakpoint())
	fmt.Fprintf(&s.b, "  .%s { grid-template-columns: repeat(2, minmax(0, 1fr)); }\n", t.ClassFor(RoleColumns))
	s.b.WriteString("}\n")
	return s.b.String()
}

// ColumnsMediaQuery returns the media condition under which multi-column
// regions show two columns.
func (t *ThemeData) ColumnsMediaQuery() string {
	return fmt.Sprintf("(min-width: %dpx)", t.breakpoint())
}

type sheet struct {
	t *ThemeData
	b strings.Builder
}

// rule writes one class rule. decls alternates property and value.
func (s *sheet) rule(role StyleRole, decls ...string) {
	fmt.Fprintf(&s.b, ".%s {\n", s.t.ClassFor(role))
	for i := 0; i+1 < len(decls); i += 2 {
		if decls[i+1] == "" {
			continue
		}
		fmt.Fprintf(&s.b, "  %s: %s;\n", decls[i], decls[i+1])
	}
	s.b.WriteString("}\n")
}

func (s *sheet) text(role StyleRole, style TextStyle, decls ...string) {
	var all []string
	if style.FontSize > 0 {
		all = append(all, "font-size", rem(style.FontSize))
	}
	if style.FontWeight > 0 {
		all = append(all, "font-weight", strconv.Itoa(style.FontWeight))
	}
	if style.Italic {
		all = append(all, "font-style", "italic")
	}
	if style.LineHeight > 0 {
		all = append(all, "line-height", strconv.FormatFloat(style.LineHeight, 'f', -1, 64))
	}
	s.rule(role, append(all, decls...)...)
}

func rem(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "rem"
}

func px(v int) string {
	if v <= 0 {
		return ""
	}
	return strconv.Itoa(v) + "px"
}
