// Package ito is the Itô's Lemma article: a fixed tree of document widgets
// with no inputs.
package ito

import (
	"github.com/go-drift/folio/pkg/core"
	"github.com/go-drift/folio/pkg/widgets"
)

// Article text that other packages and checks refer to.
const (
	Title    = "Itô's Lemma: A Geometric Journey"
	Subtitle = "The emergence of geometric structure in stochastic analysis"

	FoundationsTitle  = "1. Foundations and Geometric Intuition"
	ApplicationsTitle = "2. Geometric Applications"
	TheoremTitle      = "The Geometric Form of Itô's Lemma"

	// SDE is the Itô process differential stated in the theorem.
	SDE = `dX_t = \mu_t dt + \sigma_t dW_t`
)

func txt(s string) core.Widget     { return widgets.Text{Content: s} }
func tex(s string) core.Widget     { return widgets.InlineMath{TeX: s} }
func display(s string) core.Widget { return widgets.LatexBlock{Equation: s} }
func h2(s string) core.Widget      { return widgets.Heading{Level: 2, Content: s} }
func h3(s string) core.Widget      { return widgets.Heading{Level: 3, Content: s} }

func para(children ...core.Widget) core.Widget { return widgets.ParagraphOf(children...) }

// Article is the complete document.
type Article struct {
	core.StatelessBase
}

func (Article) Build(ctx core.BuildContext) core.Widget {
	return widgets.Article{Children: []core.Widget{
		widgets.Header{Title: Title, Subtitle: Subtitle},
		Foundations{},
		Applications{},
	}}
}

// Foundations is section 1.
type Foundations struct {
	core.StatelessBase
}

func (Foundations) Build(ctx core.BuildContext) core.Widget {
	return widgets.SectionOf(
		h2(FoundationsTitle),
		para(
			txt("The central insight of Itô calculus emerges from the interaction between irregular paths and curved surfaces. "+
				"Consider a filtered probability space "),
			tex(`(\Omega, \mathcal{F}, \{\mathcal{F}_t\}_{t \geq 0}, \mathbb{P})`),
			txt(" supporting a Brownian motion "),
			tex(`W_t`),
			txt(". The geometric structure of stochastic calculus "+
				"manifests through the non-vanishing quadratic variation of Brownian paths."),
		),

		h3("Quadratic Variation and Path Geometry"),
		para(
			txt("The fundamental distinction between classical and stochastic calculus lies in the path properties of Brownian motion. "+
				"For any partition "),
			tex(`\Pi_n`),
			txt(" of "),
			tex(`[0,t]`),
			txt(" with mesh "),
			tex(`|\Pi_n| \to 0`),
			txt(", we encounter a remarkable property:"),
		),
		display(`\lim_{n \to \infty} \sum_{t_i \in \Pi_n} (W_{t_{i+1}} - W_{t_i})^2 = t \quad \text{a.s.}`),
		para(txt("This almost sure convergence represents a fundamental geometric invariant, forcing a systematic " +
			"reconsideration of differential geometry in the stochastic setting.")),

		widgets.Theorem{
			Title: TheoremTitle,
			Children: []core.Widget{
				para(txt("Let "), tex(`X_t`), txt(" be an Itô process and "), tex(`f \in C^{2}(\mathbb{R}^2)`), txt(". Then:")),
				display(SDE),
				para(txt("The differential of "), tex(`f`), txt(" decomposes into geometric components:")),
				display(`df = \underbrace{\frac{\partial f}{\partial t}dt}_{\text{temporal evolution}} + ` +
					`\underbrace{(\mu_t\frac{\partial f}{\partial x}dt + \sigma_t\frac{\partial f}{\partial x}dW_t)}_{\text{directional change}} + ` +
					`\underbrace{\frac{1}{2}\sigma_t^2\frac{\partial^2 f}{\partial x^2}dt}_{\text{geometric correction}}`),
			},
		},

		InteractiveDemo{},

		h3("Local Time and Path Properties"),
		para(
			txt("The geometric structure extends to local time "),
			tex(`L_t^a`),
			txt(", a measure of the path's occupation density at level "),
			tex(`a`),
			txt(". This concept emerges naturally through:"),
		),
		display(`L_t^a = \lim_{\epsilon \to 0} \frac{1}{2\epsilon} \int_0^t \mathbf{1}_{\{|W_s - a| < \epsilon\}} ds \quad \text{(in probability)}`),

		h3("Geometric Extension: The Tanaka-Meyer Formula"),
		para(
			txt("For non-smooth functions, the geometric framework extends through the Tanaka-Meyer formula. For "),
			tex(`f(x) = |x|`),
			txt(":"),
		),
		display(`|W_t| = \int_0^t \text{sign}(W_s)dW_s + L_t^0`),
		para(txt("This represents a fundamental extension of Itô's lemma to convex functions, where local time " +
			"naturally emerges as the geometric correction term.")),
	)
}

// Applications is section 2.
type Applications struct {
	core.StatelessBase
}

func (Applications) Build(ctx core.BuildContext) core.Widget {
	return widgets.SectionOf(
		h2(ApplicationsTitle),
		para(txt("The geometric framework provides fundamental insights across stochastic analysis. In mathematical finance, " +
			"the curvature correction manifests in the relationship between logarithmic and arithmetic returns:")),
		widgets.Note{Children: []core.Widget{
			para(txt("Consider a geometric Brownian motion with the semimartingale decomposition:")),
			display(`d\log(S_t) = (r - \frac{1}{2}\sigma^2)dt + \sigma dW_t`),
			para(txt("The "), tex(`-\frac{1}{2}\sigma^2`), txt(" term arises directly from the geometric correction in Itô's lemma.")),
		}},
		para(txt("This geometric perspective extends beyond finance to quantum mechanics (through the Feynman-Kac formula), " +
			"statistical mechanics (via stochastic differential geometry), and the study of random dynamical systems.")),
	)
}
