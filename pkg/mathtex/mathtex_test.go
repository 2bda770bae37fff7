package mathtex

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-drift/folio/pkg/markup"
)

func TestValidateAccepts(t *testing.T) {
	valid := []string{
		`W_t`,
		`(\Omega, \mathcal{F}, \{\mathcal{F}_t\}_{t \geq 0}, \mathbb{P})`,
		`\lim_{n \to \infty} \sum_{t_i \in \Pi_n} (W_{t_{i+1}} - W_{t_i})^2 = t \quad \text{a.s.}`,
		`\left( \frac{a}{b} \right)`,
		`\left. x \right|_{0}^{1}`,
		`\begin{pmatrix} a & b \\ c & d \end{pmatrix}`,
		`a % trailing comment with } brace`,
		`\\`,
	}
	for _, src := range valid {
		if err := Validate(src); err != nil {
			t.Errorf("Validate(%q) = %v", src, err)
		}
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		src    string
		offset int
		msg    string
	}{
		{"", 0, "empty expression"},
		{`\frac{a}{b`, 8, "unclosed {"},
		{`a}`, 1, "unexpected }"},
		{`\left( x`, 0, `unclosed \left`},
		{`x \right)`, 2, `unexpected \right`},
		{`\begin{matrix} a \end{pmatrix}`, 17, `\end{pmatrix} closes \begin{matrix}`},
		{`\begin a`, 0, `\begin without environment name`},
		{`x \`, 2, "dangling backslash"},
		{`\left( {\right)}`, 8, `\right closes {`},
	}
	for _, tt := range tests {
		err := Validate(tt.src)
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("Validate(%q) = %v, want ErrMalformed", tt.src, err)
			continue
		}
		var syn *SyntaxError
		if !errors.As(err, &syn) {
			t.Fatalf("Validate(%q) error is %T", tt.src, err)
		}
		if syn.Offset != tt.offset || !strings.Contains(syn.Msg, tt.msg) {
			t.Errorf("Validate(%q) = %q at %d, want %q at %d", tt.src, syn.Msg, syn.Offset, tt.msg, tt.offset)
		}
	}
}

func TestKaTeXInline(t *testing.T) {
	node, err := KaTeX{}.Render(Expression{Markup: `W_t`})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	got := markup.String(node)
	want := `<span data-tex="W_t">\(W_t\)</span>`
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestKaTeXDisplayIsBlock(t *testing.T) {
	node, err := KaTeX{}.Render(Expression{Markup: `dX_t = \mu_t dt + \sigma_t dW_t`, DisplayMode: true})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if node.Tag != "div" {
		t.Errorf("display fragment tag = %q, want div", node.Tag)
	}
	if !strings.HasPrefix(node.TextContent(), `\[`) || !strings.HasSuffix(node.TextContent(), `\]`) {
		t.Errorf("display delimiters missing: %q", node.TextContent())
	}
}

func TestKaTeXDeterministic(t *testing.T) {
	expr := Expression{Markup: `f \in C^{2}(\mathbb{R}^2)`}
	a, _ := KaTeX{}.Render(expr)
	b, _ := KaTeX{}.Render(expr)
	if markup.String(a) != markup.String(b) {
		t.Error("identical markup should render identically")
	}
}

func TestKaTeXMalformedFallsBack(t *testing.T) {
	node, err := KaTeX{}.Render(Expression{Markup: `\frac{1}{2`})
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
	if node == nil || node.Tag != "code" || node.TextContent() != `\frac{1}{2` {
		t.Errorf("unexpected fallback: %s", markup.String(node))
	}
}

func TestHeadNodes(t *testing.T) {
	nodes := KaTeX{Version: "v0.16.9", CDN: "https://example.test/npm/"}.HeadNodes()
	if len(nodes) != 3 {
		t.Fatalf("expected 3 head nodes, got %d", len(nodes))
	}
	href, _ := nodes[0].Attr("href")
	if href != "https://example.test/npm/katex@0.16.9/dist/katex.min.css" {
		t.Errorf("stylesheet href = %q", href)
	}
	onload, _ := nodes[2].Attr("onload")
	if !strings.Contains(onload, "renderMathInElement") {
		t.Errorf("auto-render hook missing: %q", onload)
	}
}

func TestRendererFunc(t *testing.T) {
	var r Renderer = RendererFunc(func(expr Expression) (*markup.Node, error) {
		return markup.Text(expr.Markup), nil
	})
	node, _ := r.Render(Expression{Markup: "x"})
	if node.Text != "x" {
		t.Errorf("RendererFunc.Render = %q", node.Text)
	}
}
