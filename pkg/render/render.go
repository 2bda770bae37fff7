// Package render is the host display layer: it mounts a widget tree inside
// the theme, math and asset scopes and serializes the result as an HTML5
// document.
package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-drift/folio/pkg/assets"
	"github.com/go-drift/folio/pkg/core"
	"github.com/go-drift/folio/pkg/errors"
	"github.com/go-drift/folio/pkg/markup"
	"github.com/go-drift/folio/pkg/mathtex"
	"github.com/go-drift/folio/pkg/theme"
	"github.com/go-drift/folio/pkg/widgets"
)

// Options configures a render. The zero value renders with the default
// light theme, KaTeX defaults, unchecked asset URLs and an inline
// stylesheet.
type Options struct {
	Theme  *theme.ThemeData
	Math   mathtex.Renderer
	Assets assets.Resolver

	// Title is the document title shown by the browser.
	Title string
	// Lang is the html lang attribute. Empty means "en".
	Lang string
	// Description fills the meta description when set.
	Description string
	// StylesheetHref links an external stylesheet instead of inlining it.
	StylesheetHref string
	// Head holds extra nodes appended to the document head.
	Head []*markup.Node
}

// Result describes a finished render.
type Result struct {
	// Elements is the number of mounted elements.
	Elements int
	// BuildErrors are the build failures seen during the render, including
	// those replaced by error boundaries.
	BuildErrors []*errors.BuildError
}

// Scoped wraps root in the theme, math and asset scopes described by opts.
func Scoped(root core.Widget, opts Options) core.Widget {
	data := opts.Theme
	if data == nil {
		data = theme.DefaultLightTheme()
	}
	var child core.Widget = root
	if opts.Assets != nil {
		child = widgets.AssetScope{Resolver: opts.Assets, Child: child}
	}
	if opts.Math != nil {
		child = widgets.MathScope{Renderer: opts.Math, Child: child}
	}
	return theme.Theme{Data: data, Child: child}
}

// Body mounts root and returns its host nodes without a document shell.
func Body(root core.Widget, opts Options) ([]*markup.Node, Result) {
	owner := core.NewBuildOwner()
	_, nodes := owner.Render(Scoped(root, opts))
	return nodes, Result{
		Elements:    owner.ElementCount(),
		BuildErrors: owner.BuildErrors(),
	}
}

// Document mounts root and wraps its host nodes in an html element with
// head and body.
func Document(root core.Widget, opts Options) (*markup.Node, Result) {
	nodes, result := Body(root, opts)
	data := opts.Theme
	if data == nil {
		data = theme.DefaultLightTheme()
	}
	lang := opts.Lang
	if lang == "" {
		lang = "en"
	}

	body := markup.Element("body").AddClass(data.ClassFor(theme.RoleDocument)).Append(nodes...)
	html := markup.Element("html", markup.A("lang", lang)).Append(head(data, opts), body)
	return html, result
}

// Render writes the complete document for root to w.
func Render(w io.Writer, root core.Widget, opts Options) (Result, error) {
	doc, result := Document(root, opts)
	if err := markup.RenderDocument(w, doc); err != nil {
		return result, fmt.Errorf("render: %w", err)
	}
	return result, nil
}

// Bytes renders root and returns the document bytes.
func Bytes(root core.Widget, opts Options) ([]byte, Result, error) {
	var buf bytes.Buffer
	result, err := Render(&buf, root, opts)
	if err != nil {
		return nil, result, err
	}
	return buf.Bytes(), result, nil
}

func head(data *theme.ThemeData, opts Options) *markup.Node {
	h := markup.Element("head").Append(
		markup.Element("meta", markup.A("charset", "utf-8")),
		markup.Element("meta",
			markup.A("name", "viewport"),
			markup.A("content", "width=device-width, initial-scale=1"),
		),
	)
	if opts.Title != "" {
		h.Append(markup.Element("title").Append(markup.Text(opts.Title)))
	}
	if opts.Description != "" {
		h.Append(markup.Element("meta",
			markup.A("name", "description"),
			markup.A("content", opts.Description),
		))
	}
	if opts.StylesheetHref != "" {
		h.Append(markup.Element("link",
			markup.A("rel", "stylesheet"),
			markup.A("href", opts.StylesheetHref),
		))
	} else {
		h.Append(markup.Element("style").Append(markup.Text(data.Stylesheet())))
	}
	h.Append(mathHead(opts.Math)...)
	h.Append(opts.Head...)
	return h
}

// HeadProvider is implemented by math renderers that need nodes in the
// document head.
type HeadProvider interface {
	HeadNodes() []*markup.Node
}

func mathHead(r mathtex.Renderer) []*markup.Node {
	if r == nil {
		r = mathtex.KaTeX{}
	}
	if p, ok := r.(HeadProvider); ok {
		return p.HeadNodes()
	}
	return nil
}
