package rendering

import (
	"image/color"
	"math"
	"testing"

	"github.com/go-drift/folio/pkg/graphics"
)

func TestRectHelpers(t *testing.T) {
	r := RectFromLTWH(10, 20, 100, 50)
	if r.Width() != 100 || r.Height() != 50 {
		t.Errorf("size = %vx%v", r.Width(), r.Height())
	}
	if c := r.Center(); c.X != 60 || c.Y != 45 {
		t.Errorf("center = %+v", c)
	}
	in := r.Inset(5, 5, 5, 5)
	if in.Width() != 90 || in.Height() != 40 {
		t.Errorf("inset = %+v", in)
	}
	if !r.Intersect(RectFromLTWH(200, 200, 1, 1)).IsEmpty() {
		t.Error("disjoint rects should not intersect")
	}
	if !r.Contains(Offset{X: 10, Y: 70}) || r.Contains(Offset{X: 9, Y: 30}) {
		t.Error("Contains mismatch")
	}
}

func TestSubpaths(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(1, 0)
	p.LineTo(1, 1)
	p.Close()
	p.MoveTo(5, 5)
	p.LineTo(6, 6)

	subs := p.Subpaths()
	if len(subs) != 2 {
		t.Fatalf("subpaths = %d, want 2", len(subs))
	}
	if len(subs[0]) != 4 || subs[0][3] != (Offset{}) {
		t.Errorf("closed subpath should return to start: %v", subs[0])
	}
	if len(subs[1]) != 2 {
		t.Errorf("open subpath = %v", subs[1])
	}
}

func TestDashedSplitsRuns(t *testing.T) {
	p := Polyline([]Offset{{X: 0, Y: 0}, {X: 30, Y: 0}})
	dashed := p.Dashed(&DashPattern{Intervals: []float64{5, 5}})
	subs := dashed.Subpaths()
	if len(subs) != 3 {
		t.Fatalf("dashes = %d, want 3: %v", len(subs), subs)
	}
	for i, s := range subs {
		start, end := s[0], s[len(s)-1]
		if math.Abs(start.X-float64(i*10)) > epsilon || math.Abs(end.X-start.X-5) > epsilon {
			t.Errorf("dash %d spans %v..%v", i, start.X, end.X)
		}
	}

	if got := p.Dashed(&DashPattern{Intervals: []float64{5}}); got != p {
		t.Error("invalid pattern should return the path unchanged")
	}
	if got := p.Dashed(nil); got != p {
		t.Error("nil pattern should return the path unchanged")
	}
}

func TestDashedPhase(t *testing.T) {
	p := Polyline([]Offset{{X: 0, Y: 0}, {X: 20, Y: 0}})
	subs := p.Dashed(&DashPattern{Intervals: []float64{5, 5}, Phase: 7}).Subpaths()
	// Phase 7 lands 2px into the gap: first dash starts at x=3.
	if len(subs) == 0 || math.Abs(subs[0][0].X-3) > epsilon {
		t.Fatalf("first dash = %v", subs)
	}
}

func TestClearAndFillRect(t *testing.T) {
	c := NewRasterCanvas(20, 10)
	c.Clear(graphics.ColorWhite)
	c.DrawRect(RectFromLTWH(5, 0, 5, 10), Paint{Color: graphics.RGB(255, 0, 0)})

	if got := c.Image().RGBAAt(1, 1); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("background = %v", got)
	}
	if got := c.Image().RGBAAt(7, 5); got.R < 250 || got.G > 5 {
		t.Errorf("filled pixel = %v", got)
	}
	if got := c.Image().RGBAAt(12, 5); got.G != 255 {
		t.Errorf("pixel right of rect should stay white: %v", got)
	}
}

func TestClipRestrictsDrawing(t *testing.T) {
	c := NewRasterCanvas(20, 20)
	c.Clear(graphics.ColorWhite)
	c.Save()
	c.ClipRect(RectFromLTWH(0, 0, 10, 20))
	c.DrawRect(RectFromLTWH(0, 0, 20, 20), Paint{Color: graphics.ColorBlack})
	c.Restore()

	if got := c.Image().RGBAAt(5, 5); got.R > 5 {
		t.Errorf("inside clip = %v", got)
	}
	if got := c.Image().RGBAAt(15, 5); got.R != 255 {
		t.Errorf("outside clip = %v", got)
	}

	c.DrawRect(RectFromLTWH(15, 15, 5, 5), Paint{Color: graphics.ColorBlack})
	if got := c.Image().RGBAAt(17, 17); got.R > 5 {
		t.Errorf("Restore should drop the clip: %v", got)
	}
}

func TestStrokeLine(t *testing.T) {
	c := NewRasterCanvas(40, 40)
	c.Clear(graphics.ColorWhite)
	c.DrawLine(Offset{X: 5, Y: 20}, Offset{X: 35, Y: 20}, Stroke(graphics.ColorBlack, 4))

	if got := c.Image().RGBAAt(20, 20); got.R > 10 {
		t.Errorf("line center = %v", got)
	}
	if got := c.Image().RGBAAt(20, 30); got.R != 255 {
		t.Errorf("far from line = %v", got)
	}
}

func TestStrokeOutsideCanvasIsSafe(t *testing.T) {
	c := NewRasterCanvas(10, 10)
	c.DrawLine(Offset{X: -50, Y: -50}, Offset{X: 60, Y: 60}, Stroke(graphics.ColorBlack, 3))
	c.DrawCircle(Offset{X: 0, Y: 0}, 30, Paint{Color: graphics.ColorBlack})
	c.DrawPath(nil, DefaultPaint())
}

func TestTextLayout(t *testing.T) {
	l := NewTextLayout("Time", TextStyle{Color: graphics.ColorBlack})
	if l.Size.Width != 28 || l.Size.Height != 13 {
		t.Errorf("size = %+v, want 28x13", l.Size)
	}
	big := NewTextLayout("Time", TextStyle{Scale: 2})
	if big.Size.Width != 56 || big.Size.Height != 26 {
		t.Errorf("scaled size = %+v", big.Size)
	}
	v := NewTextLayout("Time", TextStyle{Vertical: true})
	if v.Size.Width != 13 || v.Size.Height != 28 {
		t.Errorf("vertical size = %+v", v.Size)
	}
	if empty := NewTextLayout("", TextStyle{}); empty.Size != (Size{}) {
		t.Errorf("empty size = %+v", empty.Size)
	}
}

func TestDrawTextPaintsPixels(t *testing.T) {
	c := NewRasterCanvas(60, 20)
	c.Clear(graphics.ColorWhite)
	l := NewTextLayout("Ito", TextStyle{Color: graphics.ColorBlack})
	c.DrawText(l, Offset{X: 2, Y: 2})

	dark := 0
	for y := 0; y < 20; y++ {
		for x := 0; x < 60; x++ {
			if c.Image().RGBAAt(x, y).R < 128 {
				dark++
			}
		}
	}
	if dark == 0 {
		t.Error("text drew no pixels")
	}
}

func TestPaintAlpha(t *testing.T) {
	p := Paint{Color: graphics.ColorBlack, Alpha: 0.5}
	if a := p.effectiveColor().Alpha(); math.Abs(a-0.5) > 0.01 {
		t.Errorf("alpha = %v", a)
	}
	if Stroke(graphics.ColorBlack, 0).strokeWidth() != 1 {
		t.Error("zero width should default to 1")
	}
	if PaintStyleStroke.String() != "stroke" || PaintStyle(9).String() != "PaintStyle(9)" {
		t.Error("PaintStyle.String mismatch")
	}
}
