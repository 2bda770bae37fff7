package ito

import (
	"github.com/go-drift/folio/pkg/assets"
	"github.com/go-drift/folio/pkg/core"
	"github.com/go-drift/folio/pkg/theme"
	"github.com/go-drift/folio/pkg/widgets"
)

// Figure constants for the demo illustration.
const (
	ImageRef       assets.Ref = "ito-plot.png"
	ImageAlt                  = "Geometric principles of Itô calculus"
	MaxImageHeight            = 800
)

// Demo text.
const (
	DemoTitle       = "Geometric Principles of Itô Calculus"
	DemoDescription = "Visual exploration of stochastic path properties and their geometric implications"

	StructuralTitle  = "Structural Analysis:"
	TheoreticalTitle = "Theoretical Implications:"

	DemoClosing = "These visualizations illuminate the fundamental relationship between path irregularity and geometric " +
		"correction terms in stochastic calculus. The non-vanishing quadratic variation of Brownian motion " +
		"necessitates the modification of classical differential rules, leading to the systematic emergence " +
		"of second-order terms in the Itô formula. This framework provides the mathematical foundation for " +
		"understanding diffusive processes in both theoretical and applied contexts."
)

// StructuralNotes describe the four panels of the figure, top to bottom.
var StructuralNotes = []widgets.ListItem{
	{
		Lead:    "Sample Paths:",
		Content: "The top panel illustrates the fundamental properties of Brownian motion - continuous trajectories with nowhere-differentiable paths",
	},
	{
		Lead:    "Quadratic Variation:",
		Content: "The middle left demonstrates the convergence of quadratic variations for different partition sizes, evidencing why dW²_t = dt",
	},
	{
		Lead:    "Transform Analysis:",
		Content: "The middle right compares standard and Itô transformations for both polynomial (x²) and exponential functions, highlighting the systematic effect of the correction term",
	},
	{
		Lead:    "Local Time:",
		Content: "The bottom panel visualizes the occupation density through local time at various levels, a key invariant of the process",
	},
}

// TheoreticalNotes are the conclusions drawn from the figure.
var TheoreticalNotes = []widgets.ListItem{
	{Content: "The limiting behavior of quadratic variations provides the foundational justification for the Itô formula's correction term"},
	{Content: "The transformation comparisons demonstrate how the geometric structure of irregular paths necessitates modifications to classical calculus rules"},
	{Content: "Local time measurements reveal the fine structure of path behavior, connecting to fundamental theoretical results in stochastic analysis"},
}

// InteractiveDemo presents the static figure with its structural and
// theoretical commentary.
type InteractiveDemo struct {
	core.StatelessBase
}

func (InteractiveDemo) Build(ctx core.BuildContext) core.Widget {
	return widgets.Box{
		Tag:  "div",
		Role: theme.RoleDemo,
		Children: []core.Widget{
			widgets.Box{Tag: "h3", Role: theme.RoleDemoCaption, Children: []core.Widget{widgets.T(DemoTitle)}},
			widgets.Box{Tag: "p", Role: theme.RoleCaption, Children: []core.Widget{widgets.T(DemoDescription)}},
			widgets.Figure{Image: widgets.Image{
				Ref:       ImageRef,
				Alt:       ImageAlt,
				MaxHeight: MaxImageHeight,
			}},
			widgets.Columns{Children: []core.Widget{
				widgets.BulletList{Title: StructuralTitle, Items: StructuralNotes},
				widgets.BulletList{Title: TheoreticalTitle, Items: TheoreticalNotes},
			}},
			widgets.Box{Tag: "div", Role: theme.RoleFootnote, Children: []core.Widget{
				widgets.ParagraphOf(widgets.T(DemoClosing)),
			}},
		},
	}
}
