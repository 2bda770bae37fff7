package theme

import (
	"github.com/go-drift/folio/pkg/core"
)

// Theme provides ThemeData to its subtree via InheritedWidget.
type Theme struct {
	core.InheritedBase
	Data  *ThemeData
	Child core.Widget
}

// ChildWidget returns the child widget.
func (t Theme) ChildWidget() core.Widget {
	return t.Child
}

// Cached default to avoid repeated allocations when no Theme is found.
var defaultThemeData = DefaultLightTheme()

// ThemeOf returns the nearest ThemeData.
// Returns a cached default if no Theme is found or if Data is nil.
func ThemeOf(ctx core.BuildContext) *ThemeData {
	if data := ThemeMaybeOf(ctx); data != nil {
		return data
	}
	return defaultThemeData
}

// ThemeMaybeOf returns the nearest ThemeData, or nil if not found.
func ThemeMaybeOf(ctx core.BuildContext) *ThemeData {
	t, ok := core.InheritedOf[Theme](ctx)
	if !ok {
		return nil
	}
	return t.Data
}

// Styles overrides the StyleResolver for its subtree without replacing the
// theme. Use it to restyle a document with an external class vocabulary.
type Styles struct {
	core.InheritedBase
	Resolver StyleResolver
	Child    core.Widget
}

// ChildWidget returns the child widget.
func (s Styles) ChildWidget() core.Widget {
	return s.Child
}

// ResolverOf returns the nearest Styles resolver, falling back to the theme.
func ResolverOf(ctx core.BuildContext) StyleResolver {
	if s, ok := core.InheritedOf[Styles](ctx); ok && s.Resolver != nil {
		return s.Resolver
	}
	return ThemeOf(ctx)
}

// ClassOf resolves role with the resolver in scope.
func ClassOf(ctx core.BuildContext, role StyleRole) string {
	return ResolverOf(ctx).ClassFor(role)
}
