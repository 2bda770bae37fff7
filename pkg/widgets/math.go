package widgets

import (
	"fmt"

	"github.com/go-drift/folio/pkg/core"
	"github.com/go-drift/folio/pkg/errors"
	"github.com/go-drift/folio/pkg/markup"
	"github.com/go-drift/folio/pkg/mathtex"
	"github.com/go-drift/folio/pkg/theme"
)

// InlineMath renders a TeX fragment inline with the surrounding text.
//
// Malformed markup renders the raw source in a math-error code element and
// is reported with errors.KindMath. The surrounding text is unaffected.
type InlineMath struct {
	core.NodeBase
	TeX string
}

func (m InlineMath) CreateNode(ctx core.BuildContext) *markup.Node {
	node, ok := renderMath(ctx, "widgets.InlineMath", mathtex.Expression{Markup: m.TeX})
	if !ok {
		return node.AddClass(theme.ClassOf(ctx, theme.RoleMathError))
	}
	return node.AddClass(theme.ClassOf(ctx, theme.RoleMathInline))
}

// LatexBlock renders a display-mode equation. The result is always a block
// element, even when the renderer produced an inline node or fell back.
type LatexBlock struct {
	core.NodeBase
	Equation string
}

func (m LatexBlock) CreateNode(ctx core.BuildContext) *markup.Node {
	node, ok := renderMath(ctx, "widgets.LatexBlock", mathtex.Expression{Markup: m.Equation, DisplayMode: true})
	if !ok {
		node.AddClass(theme.ClassOf(ctx, theme.RoleMathError))
	}
	if !ok || node.Tag != "div" {
		node = markup.Element("div").Append(node)
	}
	return node.AddClass(theme.ClassOf(ctx, theme.RoleMathBlock))
}

// renderMath runs the renderer in scope. It reports false when the result
// is a fallback.
func renderMath(ctx core.BuildContext, op string, expr mathtex.Expression) (*markup.Node, bool) {
	node, err := MathRendererOf(ctx).Render(expr)
	if err == nil && (node == nil || node.Type != markup.ElementNode) {
		err = fmt.Errorf("renderer returned no element for %q", expr.Markup)
	}
	if err == nil {
		return node, true
	}
	errors.Report(&errors.FolioError{
		Op:   op,
		Kind: errors.KindMath,
		Err:  err,
	})
	if node == nil || node.Type != markup.ElementNode {
		node = mathtex.Fallback(expr)
	}
	return node, false
}
