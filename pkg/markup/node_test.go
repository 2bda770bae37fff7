package markup

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderEscapesTextAndAttributes(t *testing.T) {
	n := Element("p", A("title", `a "quoted" <value>`)).Append(
		Text("x < y & z"),
	)
	got := String(n)
	want := `<p title="a &#34;quoted&#34; &lt;value&gt;">x &lt; y &amp; z</p>`
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestRenderVoidElement(t *testing.T) {
	got := String(Element("img", A("src", "a.png"), A("alt", "plot")))
	if got != `<img src="a.png" alt="plot"/>` {
		t.Errorf("unexpected void element rendering: %q", got)
	}
}

func TestRenderRawTextInStyle(t *testing.T) {
	got := String(Element("style").Append(Text("a > b { color: red; }")))
	if !strings.Contains(got, "a > b") {
		t.Errorf("style content should not be escaped: %q", got)
	}
}

func TestRenderDocument(t *testing.T) {
	var buf bytes.Buffer
	root := Element("html").Append(Element("body").Append(Text("hi")))
	if err := RenderDocument(&buf, root); err != nil {
		t.Fatalf("RenderDocument: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "<!DOCTYPE html>") {
		t.Errorf("missing doctype: %q", buf.String())
	}
	if err := RenderDocument(&buf, nil); err == nil {
		t.Error("expected error for nil root")
	}
}

func TestAppendSkipsNil(t *testing.T) {
	n := Element("div").Append(nil, Text("a"), nil)
	if len(n.Children) != 1 {
		t.Errorf("expected 1 child, got %d", len(n.Children))
	}
}

func TestAddClass(t *testing.T) {
	n := Element("div")
	n.AddClass("a", "", "b").AddClass("a", "c")
	if got, _ := n.Attr("class"); got != "a b c" {
		t.Errorf("class = %q, want %q", got, "a b c")
	}
	if !n.HasClass("b") || n.HasClass("d") {
		t.Error("HasClass mismatch")
	}
}

func TestSetAttrReplaces(t *testing.T) {
	n := Element("img", A("src", "a"))
	n.SetAttr("src", "b")
	if len(n.Attrs) != 1 {
		t.Fatalf("expected 1 attribute, got %d", len(n.Attrs))
	}
	if v, _ := n.Attr("src"); v != "b" {
		t.Errorf("src = %q", v)
	}
}

func TestTextContentAndWalkOrder(t *testing.T) {
	n := Element("div").Append(
		Element("h3").Append(Text("Title")),
		Element("p").Append(Text("one "), Element("strong").Append(Text("two"))),
	)
	if got := n.TextContent(); got != "Titleone two" {
		t.Errorf("TextContent() = %q", got)
	}
	var tags []string
	n.Walk(func(c *Node) bool {
		if c.Type == ElementNode {
			tags = append(tags, c.Tag)
		}
		return c.Tag != "p"
	})
	if strings.Join(tags, ",") != "div,h3,p" {
		t.Errorf("walk order = %v", tags)
	}
}

func TestCloneIsDeep(t *testing.T) {
	n := Element("div", A("class", "x")).Append(Text("a"))
	c := n.Clone()
	c.SetAttr("class", "y")
	c.Children[0].Text = "b"
	if v, _ := n.Attr("class"); v != "x" {
		t.Error("clone shares attributes")
	}
	if n.Children[0].Text != "a" {
		t.Error("clone shares children")
	}
}

func TestParseRoundTrip(t *testing.T) {
	src := `<!DOCTYPE html><html><head></head><body><p class="lead">x &amp; y</p></body></html>`
	root, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ps := root.FindAll(func(n *Node) bool { return n.Tag == "p" })
	if len(ps) != 1 {
		t.Fatalf("expected one <p>, got %d", len(ps))
	}
	if !ps[0].HasClass("lead") || ps[0].TextContent() != "x & y" {
		t.Errorf("unexpected parsed node: %s", String(ps[0]))
	}
}
