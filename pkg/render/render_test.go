package render

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/PuerkitoBio/goquery"

	"github.com/go-drift/folio/pkg/assets"
	"github.com/go-drift/folio/pkg/core"
	"github.com/go-drift/folio/pkg/errors"
	"github.com/go-drift/folio/pkg/ito"
	"github.com/go-drift/folio/pkg/theme"
	"github.com/go-drift/folio/pkg/widgets"
)

func silence(t *testing.T) *errors.Collector {
	t.Helper()
	c := &errors.Collector{}
	prev := errors.SetHandler(c)
	t.Cleanup(func() { errors.SetHandler(prev) })
	return c
}

func parse(t *testing.T, data []byte) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestRenderDocumentShell(t *testing.T) {
	silence(t)
	data, result, err := Bytes(widgets.ParagraphOf(widgets.T("hello")), Options{
		Title:       "Itô's Lemma",
		Description: "article",
	})
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("<!DOCTYPE html>")) {
		t.Errorf("missing doctype: %.40s", data)
	}
	doc := parse(t, data)
	if lang, _ := doc.Find("html").Attr("lang"); lang != "en" {
		t.Errorf("lang = %q", lang)
	}
	if doc.Find("head title").Text() != "Itô's Lemma" {
		t.Errorf("title = %q", doc.Find("head title").Text())
	}
	if !strings.Contains(doc.Find("head style").Text(), "@media (min-width: 768px)") {
		t.Error("inline stylesheet missing media query")
	}
	if doc.Find(`head script[src*="katex.min.js"]`).Length() != 1 {
		t.Error("KaTeX script missing")
	}
	if !doc.Find("body").HasClass("folio-document") {
		t.Error("body should carry the document role")
	}
	if doc.Find("body p").Text() != "hello" {
		t.Errorf("body = %q", doc.Find("body").Text())
	}
	if result.Elements == 0 || len(result.BuildErrors) != 0 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestLinkedStylesheet(t *testing.T) {
	silence(t)
	data, _, err := Bytes(widgets.T("x"), Options{StylesheetHref: "style.css", Lang: "de"})
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	doc := parse(t, data)
	if doc.Find("head style").Length() != 0 {
		t.Error("inline style should be omitted when linking")
	}
	if doc.Find(`head link[href="style.css"]`).Length() != 1 {
		t.Error("stylesheet link missing")
	}
	if lang, _ := doc.Find("html").Attr("lang"); lang != "de" {
		t.Errorf("lang = %q", lang)
	}
}

func TestScopesReachWidgets(t *testing.T) {
	silence(t)
	dark := theme.DefaultDarkTheme()
	dark.ClassPrefix = "d-"
	nodes, _ := Body(widgets.Image{Ref: "a.png"}, Options{
		Theme:  dark,
		Assets: assets.NewFSResolver(fstest.MapFS{"a.png": {Data: []byte("x")}}, "/static"),
	})
	if len(nodes) != 1 {
		t.Fatalf("nodes = %d", len(nodes))
	}
	if src, _ := nodes[0].Attr("src"); src != "/static/a.png" {
		t.Errorf("src = %q", src)
	}
	if !nodes[0].HasClass("d-image") {
		t.Errorf("class = %v", nodes[0].Attrs)
	}
}

type panicky struct {
	core.StatelessBase
}

func (panicky) Build(ctx core.BuildContext) core.Widget {
	panic("bad")
}

func TestBuildErrorsSurface(t *testing.T) {
	c := silence(t)
	_, result := Body(widgets.Fragment{Children: []core.Widget{panicky{}, widgets.T("ok")}}, Options{})
	if len(result.BuildErrors) != 1 {
		t.Errorf("BuildErrors = %d, want 1", len(result.BuildErrors))
	}
	if len(c.Errors()) != 1 {
		t.Errorf("reported = %d, want 1", len(c.Errors()))
	}
}

func TestRenderArticleIsDeterministic(t *testing.T) {
	silence(t)
	opts := Options{Title: ito.Title, Assets: assets.NewFSResolver(fstest.MapFS{}, "assets")}
	a, _, err := Bytes(ito.Article{}, opts)
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	b, _, _ := Bytes(ito.Article{}, opts)
	if !bytes.Equal(a, b) {
		t.Error("article output differs between renders")
	}
}
