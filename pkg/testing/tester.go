package testing

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/go-drift/folio/pkg/assets"
	"github.com/go-drift/folio/pkg/core"
	"github.com/go-drift/folio/pkg/errors"
	"github.com/go-drift/folio/pkg/markup"
	"github.com/go-drift/folio/pkg/mathtex"
	"github.com/go-drift/folio/pkg/render"
	"github.com/go-drift/folio/pkg/theme"
)

// WidgetTester mounts widgets in isolation and exposes the element tree and
// the host nodes it produced.
type WidgetTester struct {
	buildOwner *core.BuildOwner
	root       core.Element
	nodes      []*markup.Node
	opts       render.Options
	collector  *errors.Collector
	prevHandle errors.ErrorHandler
}

// NewWidgetTester creates a tester with the default light theme and KaTeX
// math. Reported errors are collected instead of logged until Cleanup.
// Call Cleanup() when done, or use NewWidgetTesterWithT() instead.
func NewWidgetTester() *WidgetTester {
	t := &WidgetTester{
		opts: render.Options{
			Theme: theme.DefaultLightTheme(),
			Math:  mathtex.KaTeX{},
		},
		collector: &errors.Collector{},
	}
	t.prevHandle = errors.SetHandler(t.collector)
	return t
}

// NewWidgetTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewWidgetTesterWithT(t *testing.T) *WidgetTester {
	tester := NewWidgetTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup unmounts the tree and restores the previous error handler.
func (t *WidgetTester) Cleanup() {
	if t.root != nil {
		t.root.Unmount()
		t.root = nil
		t.nodes = nil
	}
	errors.SetHandler(t.prevHandle)
}

// SetTheme replaces the theme data. Must be called before PumpWidget.
func (t *WidgetTester) SetTheme(td *theme.ThemeData) {
	t.opts.Theme = td
}

// SetMathRenderer replaces the math renderer. Must be called before PumpWidget.
func (t *WidgetTester) SetMathRenderer(r mathtex.Renderer) {
	t.opts.Math = r
}

// SetAssets installs an asset resolver. Must be called before PumpWidget.
func (t *WidgetTester) SetAssets(r assets.Resolver) {
	t.opts.Assets = r
}

// Theme returns the theme the next pump uses.
func (t *WidgetTester) Theme() *theme.ThemeData {
	return t.opts.Theme
}

// PumpWidget mounts (or remounts) a widget inside the configured scopes.
func (t *WidgetTester) PumpWidget(widget core.Widget) error {
	if t.root != nil {
		t.root.Unmount()
		t.root = nil
		t.nodes = nil
	}
	t.buildOwner = core.NewBuildOwner()
	t.root, t.nodes = t.buildOwner.Render(render.Scoped(widget, t.opts))
	return nil
}

// RootElement returns the root element of the mounted tree.
func (t *WidgetTester) RootElement() core.Element {
	return t.root
}

// Nodes returns the host nodes of the mounted tree.
func (t *WidgetTester) Nodes() []*markup.Node {
	return t.nodes
}

// HTML serializes the host nodes of the mounted tree.
func (t *WidgetTester) HTML() string {
	var sb strings.Builder
	for _, n := range t.nodes {
		sb.WriteString(markup.String(n))
	}
	return sb.String()
}

// Document parses HTML() for selector-based assertions.
func (t *WidgetTester) Document(tb testing.TB) *goquery.Document {
	tb.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(t.HTML()))
	if err != nil {
		tb.Fatalf("parse rendered markup: %v", err)
	}
	return doc
}

// Class resolves role with the tester's theme, for building selectors.
func (t *WidgetTester) Class(role theme.StyleRole) string {
	return t.opts.Theme.ClassFor(role)
}

// Selector returns the CSS class selector for role.
func (t *WidgetTester) Selector(role theme.StyleRole) string {
	return "." + t.Class(role)
}

// ReportedErrors returns the errors reported to the handler since the tester
// was created.
func (t *WidgetTester) ReportedErrors() []error {
	return t.collector.Errors()
}

// BuildErrors returns the build errors of the last pump.
func (t *WidgetTester) BuildErrors() []*errors.BuildError {
	if t.buildOwner == nil {
		return nil
	}
	return t.buildOwner.BuildErrors()
}

// Find evaluates a finder against the current element tree.
func (t *WidgetTester) Find(finder Finder) FinderResult {
	if t.root == nil {
		return FinderResult{finder: finder}
	}
	return FinderResult{
		elements: finder.Evaluate(t.root),
		finder:   finder,
	}
}
