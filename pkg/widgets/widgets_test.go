package widgets_test

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/go-drift/folio/pkg/assets"
	"github.com/go-drift/folio/pkg/core"
	folioerrors "github.com/go-drift/folio/pkg/errors"
	"github.com/go-drift/folio/pkg/markup"
	"github.com/go-drift/folio/pkg/mathtex"
	foliotest "github.com/go-drift/folio/pkg/testing"
	"github.com/go-drift/folio/pkg/theme"
	"github.com/go-drift/folio/pkg/widgets"
)

func pump(t *testing.T, w core.Widget) *foliotest.WidgetTester {
	t.Helper()
	tester := foliotest.NewWidgetTesterWithT(t)
	if err := tester.PumpWidget(w); err != nil {
		t.Fatalf("PumpWidget: %v", err)
	}
	return tester
}

func TestInlineMathDeterministic(t *testing.T) {
	tex := `(\Omega, \mathcal{F}, \{\mathcal{F}_t\}_{t \geq 0}, \mathbb{P})`
	a := pump(t, widgets.InlineMath{TeX: tex}).HTML()
	b := pump(t, widgets.InlineMath{TeX: tex}).HTML()
	if a != b {
		t.Errorf("identical markup rendered differently:\n%s\n%s", a, b)
	}
	want := `<span data-tex="` + tex + `" class="folio-math-inline">\(` + tex + `\)</span>`
	if a != want {
		t.Errorf("HTML() = %q\nwant %q", a, want)
	}
}

func TestInlineMathMalformedFallsBack(t *testing.T) {
	tester := pump(t, widgets.ParagraphOf(
		widgets.T("before "),
		widgets.InlineMath{TeX: `\frac{1}{2`},
		widgets.T(" after"),
	))
	doc := tester.Document(t)
	fallback := doc.Find("code" + tester.Selector(theme.RoleMathError))
	if fallback.Length() != 1 || fallback.Text() != `\frac{1}{2` {
		t.Errorf("fallback missing: %s", tester.HTML())
	}
	if got := doc.Find("p").Text(); got != `before \frac{1}{2 after` {
		t.Errorf("surrounding text affected: %q", got)
	}
	reported := tester.ReportedErrors()
	if len(reported) != 1 {
		t.Fatalf("reported %d errors, want 1", len(reported))
	}
	var fe *folioerrors.FolioError
	if !errors.As(reported[0], &fe) || fe.Kind != folioerrors.KindMath || !errors.Is(fe, mathtex.ErrMalformed) {
		t.Errorf("unexpected report: %v", reported[0])
	}
}

func TestLatexBlockIsAlwaysBlock(t *testing.T) {
	inlineOnly := mathtex.RendererFunc(func(expr mathtex.Expression) (*markup.Node, error) {
		return markup.Element("span").Append(markup.Text(expr.Markup)), nil
	})
	tests := []struct {
		name     string
		renderer mathtex.Renderer
		equation string
	}{
		{"katex", mathtex.KaTeX{}, `dX_t = \mu_t dt + \sigma_t dW_t`},
		{"inline renderer", inlineOnly, `W_t`},
		{"malformed", mathtex.KaTeX{}, `\left( x`},
		{"empty", mathtex.KaTeX{}, ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tester := foliotest.NewWidgetTesterWithT(t)
			tester.SetMathRenderer(tt.renderer)
			tester.PumpWidget(widgets.LatexBlock{Equation: tt.equation})
			nodes := tester.Nodes()
			if len(nodes) != 1 {
				t.Fatalf("expected one root node, got %d", len(nodes))
			}
			if nodes[0].Tag != "div" || !nodes[0].HasClass(tester.Class(theme.RoleMathBlock)) {
				t.Errorf("not a block element: %s", tester.HTML())
			}
		})
	}
}

func TestLatexBlockDisplayDelimiters(t *testing.T) {
	tester := pump(t, widgets.LatexBlock{Equation: `|W_t| = \int_0^t \text{sign}(W_s)dW_s + L_t^0`})
	text := tester.Nodes()[0].TextContent()
	if !strings.HasPrefix(text, `\[`) || !strings.HasSuffix(text, `\]`) {
		t.Errorf("display delimiters missing: %q", text)
	}
}

func TestTheoremTitleImmediatelyPrecedesChildren(t *testing.T) {
	tester := pump(t, widgets.Theorem{
		Title: "The Geometric Form of Itô's Lemma",
		Children: []core.Widget{
			widgets.ParagraphOf(widgets.T("first")),
			widgets.LatexBlock{Equation: `dX_t = \mu_t dt + \sigma_t dW_t`},
		},
	})
	doc := tester.Document(t)
	box := doc.Find(tester.Selector(theme.RoleTheorem))
	if box.Length() != 1 {
		t.Fatalf("expected one theorem box: %s", tester.HTML())
	}
	titles := box.Find(tester.Selector(theme.RoleTheoremTitle))
	if titles.Length() != 1 || titles.Text() != "The Geometric Form of Itô's Lemma" {
		t.Errorf("title region = %d %q", titles.Length(), titles.Text())
	}
	children := box.Children()
	if children.Length() != 3 {
		t.Fatalf("expected title + 2 children, got %d", children.Length())
	}
	if !children.First().HasClass(tester.Class(theme.RoleTheoremTitle)) {
		t.Error("title is not the first child")
	}
	if children.Eq(1).Text() != "first" {
		t.Errorf("first child = %q", children.Eq(1).Text())
	}
}

func TestTheoremZeroChildren(t *testing.T) {
	tester := pump(t, widgets.Theorem{Title: "Empty"})
	doc := tester.Document(t)
	if n := doc.Find(tester.Selector(theme.RoleTheorem)).Children().Length(); n != 1 {
		t.Errorf("expected only the title region, got %d children", n)
	}
}

func TestChildrenRenderIdenticallyInsideContainers(t *testing.T) {
	child := widgets.ParagraphOf(widgets.T("Let "), widgets.InlineMath{TeX: "X_t"}, widgets.T(" be an Itô process"))
	alone := pump(t, child).HTML()
	for name, container := range map[string]core.Widget{
		"theorem": widgets.Theorem{Title: "T", Children: []core.Widget{child}},
		"note":    widgets.Note{Children: []core.Widget{child}},
	} {
		if html := pump(t, container).HTML(); !strings.Contains(html, alone) {
			t.Errorf("%s changed its child:\n%s\nwant substring %s", name, html, alone)
		}
	}
}

func TestNoteHasNoTitleRegion(t *testing.T) {
	tester := pump(t, widgets.Note{Children: []core.Widget{
		widgets.ParagraphOf(widgets.T("Consider a geometric Brownian motion")),
		widgets.LatexBlock{Equation: `d\log(S_t) = (r - \frac{1}{2}\sigma^2)dt + \sigma dW_t`},
	}})
	doc := tester.Document(t)
	note := doc.Find(tester.Selector(theme.RoleNote))
	if note.Length() != 1 {
		t.Fatalf("expected one note: %s", tester.HTML())
	}
	if note.Find(tester.Selector(theme.RoleTheoremTitle)).Length() != 0 {
		t.Error("note must not have a title region")
	}
	if note.Children().Length() != 2 {
		t.Errorf("note children = %d, want 2", note.Children().Length())
	}
}

func TestCodeWindowPreservesWhitespace(t *testing.T) {
	code := "func main() {\n\tfmt.Println(\"dW² = dt\")\n\n    // indented\n}\n"
	tester := pump(t, widgets.CodeWindow{Label: "main.go", Code: code})
	doc := tester.Document(t)
	if got := doc.Find("pre code").Text(); got != code {
		t.Errorf("code text = %q, want %q", got, code)
	}
	if got := doc.Find("figcaption").Text(); got != "main.go" {
		t.Errorf("label = %q", got)
	}

	unlabeled := pump(t, widgets.CodeWindow{Code: "x"})
	if unlabeled.Document(t).Find("figcaption").Length() != 0 {
		t.Error("empty label should omit the caption")
	}
}

func TestImageResolved(t *testing.T) {
	tester := foliotest.NewWidgetTesterWithT(t)
	tester.SetAssets(assets.NewFSResolver(fstest.MapFS{"ito-plot.png": {Data: []byte("x")}}, "/assets"))
	tester.PumpWidget(widgets.Figure{Image: widgets.Image{
		Ref:       "ito-plot.png",
		Alt:       "Geometric principles of Itô calculus",
		MaxHeight: 800,
	}})
	img := tester.Document(t).Find("figure img")
	if img.Length() != 1 {
		t.Fatalf("expected one image: %s", tester.HTML())
	}
	if src, _ := img.Attr("src"); src != "/assets/ito-plot.png" {
		t.Errorf("src = %q", src)
	}
	if alt, _ := img.Attr("alt"); alt != "Geometric principles of Itô calculus" {
		t.Errorf("alt = %q", alt)
	}
	if style, _ := img.Attr("style"); !strings.Contains(style, "max-height: 800px") {
		t.Errorf("style = %q", style)
	}
	if len(tester.ReportedErrors()) != 0 {
		t.Errorf("unexpected reports: %v", tester.ReportedErrors())
	}
}

func TestImageMissingShowsIndicator(t *testing.T) {
	tester := foliotest.NewWidgetTesterWithT(t)
	tester.SetAssets(assets.NewFSResolver(fstest.MapFS{}, "/assets"))
	tester.PumpWidget(widgets.Fragment{Children: []core.Widget{
		widgets.Figure{Image: widgets.Image{Ref: "ito-plot.png", Alt: "plot"}, Caption: "caption"},
		widgets.ParagraphOf(widgets.T("still here")),
	}})
	doc := tester.Document(t)
	if doc.Find("img").Length() != 0 {
		t.Error("missing asset should not produce an img")
	}
	indicator := doc.Find(tester.Selector(theme.RoleImageMissing))
	if indicator.Length() != 1 {
		t.Fatalf("indicator missing: %s", tester.HTML())
	}
	if ref, _ := indicator.Attr("data-missing"); ref != "ito-plot.png" {
		t.Errorf("data-missing = %q", ref)
	}
	if !strings.Contains(indicator.Text(), widgets.MissingImageText) {
		t.Errorf("indicator text = %q", indicator.Text())
	}
	if doc.Find("figcaption").Text() != "caption" || doc.Find("p").Text() != "still here" {
		t.Error("other regions affected by missing image")
	}
	reported := tester.ReportedErrors()
	var fe *folioerrors.FolioError
	if len(reported) != 1 || !errors.As(reported[0], &fe) || fe.Kind != folioerrors.KindAsset || fe.Ref != "ito-plot.png" {
		t.Errorf("unexpected reports: %v", reported)
	}
	if !errors.Is(fe, assets.ErrMissing) {
		t.Errorf("report should wrap ErrMissing: %v", fe)
	}
}

func TestBulletListKeepsOrder(t *testing.T) {
	tester := pump(t, widgets.BulletList{
		Title: "Structural Analysis:",
		Items: []widgets.ListItem{
			{Lead: "Sample Paths:", Content: "one"},
			{Lead: "Quadratic Variation:", Content: "two"},
			{Content: "three"},
		},
	})
	doc := tester.Document(t)
	items := doc.Find("ul li")
	if items.Length() != 3 {
		t.Fatalf("items = %d", items.Length())
	}
	if got := items.Eq(0).Text(); got != "Sample Paths: one" {
		t.Errorf("item 0 = %q", got)
	}
	if items.Eq(1).Find("strong").Text() != "Quadratic Variation:" {
		t.Error("lead-in should be bold")
	}
	if items.Eq(2).Find("strong").Length() != 0 {
		t.Error("item without lead should have no bold run")
	}
	if doc.Find("h4").Text() != "Structural Analysis:" {
		t.Errorf("list title = %q", doc.Find("h4").Text())
	}
}

func TestColumnsWrapEachChild(t *testing.T) {
	tester := pump(t, widgets.Columns{Children: []core.Widget{widgets.T("left"), widgets.T("right")}})
	doc := tester.Document(t)
	cols := doc.Find(tester.Selector(theme.RoleColumns)).Children()
	if cols.Length() != 2 || cols.First().Text() != "left" || cols.Last().Text() != "right" {
		t.Errorf("unexpected columns: %s", tester.HTML())
	}
	if !strings.Contains(tester.Theme().Stylesheet(), "@media (min-width: 768px)") {
		t.Error("stylesheet lacks the two-column media query")
	}
}

func TestHeadingLevels(t *testing.T) {
	tests := []struct {
		level int
		tag   string
		role  theme.StyleRole
	}{
		{0, "h1", theme.RoleTitle},
		{1, "h1", theme.RoleTitle},
		{2, "h2", theme.RoleHeading},
		{3, "h3", theme.RoleSubheading},
		{4, "h4", theme.RoleListTitle},
		{9, "h6", theme.RoleListTitle},
	}
	for _, tt := range tests {
		tester := pump(t, widgets.Heading{Level: tt.level, Content: "x"})
		n := tester.Nodes()[0]
		if n.Tag != tt.tag || !n.HasClass(tester.Class(tt.role)) {
			t.Errorf("Heading{Level: %d} = %s", tt.level, tester.HTML())
		}
	}
}

func TestHeaderSubtitleOptional(t *testing.T) {
	doc := pump(t, widgets.Header{Title: "Itô's Lemma: A Geometric Journey"}).Document(t)
	if doc.Find("header p").Length() != 0 {
		t.Error("empty subtitle should be omitted")
	}
}

type exploding struct {
	core.StatelessBase
}

func (exploding) Build(ctx core.BuildContext) core.Widget {
	panic("figure failed")
}

func TestErrorBoundaryIsolatesSubtree(t *testing.T) {
	var captured *folioerrors.BuildError
	tester := pump(t, widgets.Fragment{Children: []core.Widget{
		widgets.ParagraphOf(widgets.T("before")),
		widgets.ErrorBoundary{
			OnError: func(err *folioerrors.BuildError) { captured = err },
			FallbackBuilder: func(err *folioerrors.BuildError) core.Widget {
				return widgets.T("figure unavailable")
			},
			Child: widgets.Box{Children: []core.Widget{widgets.T("partial"), exploding{}}},
		},
		widgets.ParagraphOf(widgets.T("after")),
	}})
	got := tester.HTML()
	want := `<p class="folio-paragraph">before</p>figure unavailable<p class="folio-paragraph">after</p>`
	if got != want {
		t.Errorf("HTML() = %q\nwant %q", got, want)
	}
	if captured == nil || captured.Recovered != "figure failed" {
		t.Errorf("OnError got %+v", captured)
	}
}

func TestErrorBoundaryDefaultFallback(t *testing.T) {
	tester := pump(t, widgets.ErrorBoundary{Child: exploding{}})
	if !tester.Find(foliotest.ByType[widgets.ErrorWidget]()).Exists() {
		t.Errorf("expected ErrorWidget fallback: %s", tester.HTML())
	}
}

func TestErrorWidgetVerbosity(t *testing.T) {
	err := &folioerrors.BuildError{Widget: "ito.Article", Recovered: "boom"}
	verbose, quiet := true, false

	loud := pump(t, widgets.ErrorWidget{Error: err, Verbose: &verbose}).HTML()
	if !strings.Contains(loud, "panic in ito.Article.Build(): boom") {
		t.Errorf("verbose error widget = %q", loud)
	}
	calm := pump(t, widgets.ErrorWidget{Error: err, Verbose: &quiet}).HTML()
	if strings.Contains(calm, "boom") || !strings.Contains(calm, "Something went wrong") {
		t.Errorf("quiet error widget = %q", calm)
	}
	if !strings.Contains(calm, `role="alert"`) {
		t.Errorf("error widget should be an alert: %q", calm)
	}
}

func TestRestyleWithoutTouchingContent(t *testing.T) {
	tree := widgets.Note{Children: []core.Widget{widgets.ParagraphOf(widgets.T("same"))}}
	a := foliotest.NewWidgetTesterWithT(t)
	a.PumpWidget(tree)
	b := foliotest.NewWidgetTesterWithT(t)
	b.PumpWidget(theme.Styles{
		Resolver: theme.ResolverFunc(func(r theme.StyleRole) string { return "tw-" + r.String() }),
		Child:    tree,
	})
	if a.Document(t).Text() != b.Document(t).Text() {
		t.Error("restyling changed text content")
	}
	if b.Document(t).Find(".tw-note").Length() != 1 {
		t.Errorf("resolver not applied: %s", b.HTML())
	}
}
