package mathtex

import (
	"fmt"
	"strings"

	"github.com/go-drift/folio/pkg/markup"
)

// Expression is one fragment of TeX markup.
type Expression struct {
	Markup      string
	DisplayMode bool
}

// Renderer turns expressions into host nodes. On malformed input a renderer
// returns a fallback node together with an error wrapping ErrMalformed; it
// never panics.
type Renderer interface {
	Render(expr Expression) (*markup.Node, error)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(expr Expression) (*markup.Node, error)

// Render calls f(expr).
func (f RendererFunc) Render(expr Expression) (*markup.Node, error) {
	return f(expr)
}

// Defaults used when KaTeX fields are empty.
const (
	DefaultKaTeXVersion = "0.16.11"
	DefaultKaTeXCDN     = "https://cdn.jsdelivr.net/npm"
)

// KaTeX emits markup delimited for KaTeX's auto-render extension: \( \) for
// inline fragments and \[ \] for display fragments. The raw source is kept
// in a data-tex attribute.
type KaTeX struct {
	// Version of the KaTeX distribution referenced by HeadNodes.
	Version string
	// CDN is the base URL the distribution is served from.
	CDN string
}

// Render implements Renderer.
func (k KaTeX) Render(expr Expression) (*markup.Node, error) {
	if err := Validate(expr.Markup); err != nil {
		return Fallback(expr), fmt.Errorf("render %q: %w", expr.Markup, err)
	}
	tag, open, close := "span", `\(`, `\)`
	if expr.DisplayMode {
		tag, open, close = "div", `\[`, `\]`
	}
	return markup.Element(tag, markup.A("data-tex", expr.Markup)).
		Append(markup.Text(open + expr.Markup + close)), nil
}

// Fallback is the visible stand-in for markup that could not be rendered:
// a code element holding the raw source.
func Fallback(expr Expression) *markup.Node {
	return markup.Element("code", markup.A("data-tex", expr.Markup)).
		Append(markup.Text(expr.Markup))
}

func (k KaTeX) base() string {
	version := k.Version
	if version == "" {
		version = DefaultKaTeXVersion
	}
	cdn := strings.TrimRight(k.CDN, "/")
	if cdn == "" {
		cdn = DefaultKaTeXCDN
	}
	return cdn + "/katex@" + strings.TrimPrefix(version, "v") + "/dist"
}

// autoRender configures the delimiters Render emits.
const autoRender = `renderMathInElement(document.body, {delimiters: [` +
	`{left: "\\[", right: "\\]", display: true}, ` +
	`{left: "\\(", right: "\\)", display: false}], throwOnError: false})`

// HeadNodes returns the stylesheet and script elements that load KaTeX and
// typeset the delimited fragments once the page is parsed.
func (k KaTeX) HeadNodes() []*markup.Node {
	base := k.base()
	return []*markup.Node{
		markup.Element("link",
			markup.A("rel", "stylesheet"),
			markup.A("href", base+"/katex.min.css"),
			markup.A("crossorigin", "anonymous"),
		),
		markup.Element("script",
			markup.A("defer", ""),
			markup.A("src", base+"/katex.min.js"),
			markup.A("crossorigin", "anonymous"),
		),
		markup.Element("script",
			markup.A("defer", ""),
			markup.A("src", base+"/contrib/auto-render.min.js"),
			markup.A("crossorigin", "anonymous"),
			markup.A("onload", autoRender),
		),
	}
}
