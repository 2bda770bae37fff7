package check

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/go-drift/folio/pkg/assets"
	"github.com/go-drift/folio/pkg/errors"
	"github.com/go-drift/folio/pkg/ito"
	"github.com/go-drift/folio/pkg/render"
	"github.com/go-drift/folio/pkg/theme"
)

func renderArticle(t *testing.T, fsys fstest.MapFS) []byte {
	t.Helper()
	prev := errors.SetHandler(&errors.Collector{})
	t.Cleanup(func() { errors.SetHandler(prev) })

	page, _, err := render.Bytes(ito.Article{}, render.Options{
		Title:  ito.Title,
		Assets: assets.NewFSResolver(fsys, "assets"),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return page
}

func TestInspectArticle(t *testing.T) {
	page := renderArticle(t, fstest.MapFS{string(ito.ImageRef): {Data: []byte("png")}})
	rep, err := Inspect(bytes.NewReader(page), theme.DefaultClassPrefix)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if rep.Title != ito.Title {
		t.Errorf("Title = %q", rep.Title)
	}
	if rep.Sections < 2 || rep.Theorems != 1 || rep.Notes != 1 {
		t.Errorf("structure = %s", rep.Summary())
	}
	if rep.Equations == 0 {
		t.Error("no equations found")
	}
	if len(rep.Images) != 1 || rep.Images[0] != "assets/ito-plot.png" {
		t.Errorf("Images = %v", rep.Images)
	}
	if p := rep.Problems(); len(p) != 0 {
		t.Errorf("Problems() = %v", p)
	}

	rep.CheckFiles(fstest.MapFS{"assets/ito-plot.png": {Data: []byte("png")}})
	if len(rep.MissingFiles) != 0 {
		t.Errorf("MissingFiles = %v", rep.MissingFiles)
	}
	rep.CheckFiles(fstest.MapFS{})
	if len(rep.MissingFiles) != 1 || rep.MissingFiles[0] != "assets/ito-plot.png" {
		t.Errorf("MissingFiles = %v", rep.MissingFiles)
	}
}

func TestInspectMissingAsset(t *testing.T) {
	page := renderArticle(t, fstest.MapFS{})
	rep, err := Inspect(bytes.NewReader(page), theme.DefaultClassPrefix)
	if err != nil {
		t.Fatal(err)
	}
	if len(rep.MissingImages) != 1 || rep.MissingImages[0] != string(ito.ImageRef) {
		t.Errorf("MissingImages = %v", rep.MissingImages)
	}
	if len(rep.Images) != 0 {
		t.Errorf("Images = %v", rep.Images)
	}
	problems := rep.Problems()
	if len(problems) != 1 || !strings.Contains(problems[0], "missing image") {
		t.Errorf("Problems() = %v", problems)
	}
}

func TestInspectMathFallback(t *testing.T) {
	src := `<html><head><title> T </title></head><body>
<section class="x-section"><p>
<code class="x-math-error" data-tex="\frac{a">\frac{a</code>
<div class="x-math-block"><code class="x-math-error" data-tex="\sqrt{">\sqrt{</code></div>
</p></section>
<img src="https://cdn.example/a.png"><img src="/abs.png">
</body></html>`
	rep, err := Inspect(strings.NewReader(src), "x-")
	if err != nil {
		t.Fatal(err)
	}
	if rep.Title != "T" || rep.Sections != 1 || rep.Equations != 1 {
		t.Errorf("report = %+v", rep)
	}
	if len(rep.MathFallbacks) != 2 || rep.MathFallbacks[0] != `\frac{a` || rep.MathFallbacks[1] != `\sqrt{` {
		t.Errorf("MathFallbacks = %q", rep.MathFallbacks)
	}
	rep.CheckFiles(fstest.MapFS{})
	if len(rep.MissingFiles) != 0 {
		t.Errorf("remote and absolute images should be skipped: %v", rep.MissingFiles)
	}
	if len(rep.Problems()) != 2 {
		t.Errorf("Problems() = %v", rep.Problems())
	}
}

func TestProblemsEmptyDocument(t *testing.T) {
	rep, err := Inspect(strings.NewReader("<p>hi</p>"), theme.DefaultClassPrefix)
	if err != nil {
		t.Fatal(err)
	}
	if p := rep.Problems(); len(p) != 1 || p[0] != "no sections found" {
		t.Errorf("Problems() = %v", p)
	}
}
