package widgets

import (
	"github.com/go-drift/folio/pkg/assets"
	"github.com/go-drift/folio/pkg/core"
	"github.com/go-drift/folio/pkg/mathtex"
)

// MathScope provides the math renderer to its subtree.
type MathScope struct {
	core.InheritedBase
	Renderer mathtex.Renderer
	Child    core.Widget
}

// ChildWidget returns the child widget.
func (m MathScope) ChildWidget() core.Widget {
	return m.Child
}

var defaultMathRenderer mathtex.Renderer = mathtex.KaTeX{}

// MathRendererOf returns the nearest math renderer, or KaTeX defaults.
func MathRendererOf(ctx core.BuildContext) mathtex.Renderer {
	if scope, ok := core.InheritedOf[MathScope](ctx); ok && scope.Renderer != nil {
		return scope.Renderer
	}
	return defaultMathRenderer
}

// AssetScope provides the asset resolver to its subtree.
type AssetScope struct {
	core.InheritedBase
	Resolver assets.Resolver
	Child    core.Widget
}

// ChildWidget returns the child widget.
func (a AssetScope) ChildWidget() core.Widget {
	return a.Child
}

// passthroughResolver treats every reference as a relative URL that exists.
var passthroughResolver = assets.ResolverFunc(func(ref assets.Ref) (assets.Handle, error) {
	return assets.Handle{Ref: ref, URL: string(ref)}, nil
})

// AssetResolverOf returns the nearest asset resolver. Without a scope,
// references are used as URLs unchecked.
func AssetResolverOf(ctx core.BuildContext) assets.Resolver {
	if scope, ok := core.InheritedOf[AssetScope](ctx); ok && scope.Resolver != nil {
		return scope.Resolver
	}
	return passthroughResolver
}
