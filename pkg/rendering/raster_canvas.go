package rendering

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/go-drift/folio/pkg/graphics"
)

// jointSides is the polygon resolution used for round joins and circles.
const jointSides = 12

// RasterCanvas implements Canvas over an in-memory RGBA image using the
// golang.org/x/image/vector rasterizer.
type RasterCanvas struct {
	img   *image.RGBA
	clip  Rect
	saved []Rect
}

var _ Canvas = (*RasterCanvas)(nil)

// NewRasterCanvas allocates a transparent canvas of the given pixel size.
func NewRasterCanvas(width, height int) *RasterCanvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	return &RasterCanvas{
		img:  img,
		clip: RectFromLTWH(0, 0, float64(width), float64(height)),
	}
}

// Image returns the backing image.
func (c *RasterCanvas) Image() *image.RGBA {
	return c.img
}

func (c *RasterCanvas) Size() Size {
	b := c.img.Bounds()
	return Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

func (c *RasterCanvas) bounds() Rect {
	s := c.Size()
	return RectFromLTWH(0, 0, s.Width, s.Height)
}

func (c *RasterCanvas) Save() {
	c.saved = append(c.saved, c.clip)
}

func (c *RasterCanvas) Restore() {
	if len(c.saved) == 0 {
		return
	}
	c.clip = c.saved[len(c.saved)-1]
	c.saved = c.saved[:len(c.saved)-1]
}

func (c *RasterCanvas) ClipRect(rect Rect) {
	c.clip = c.clip.Intersect(rect)
}

func (c *RasterCanvas) Clear(color graphics.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(color.NRGBA()), image.Point{}, draw.Src)
}

func (c *RasterCanvas) DrawRect(rect Rect, paint Paint) {
	if paint.Style == PaintStyleStroke {
		p := NewPath()
		p.MoveTo(rect.Left, rect.Top)
		p.LineTo(rect.Right, rect.Top)
		p.LineTo(rect.Right, rect.Bottom)
		p.LineTo(rect.Left, rect.Bottom)
		p.Close()
		c.DrawPath(p, paint)
		return
	}
	r := rect.Intersect(c.clip)
	if r.IsEmpty() {
		return
	}
	c.fill([][]Offset{{
		{X: r.Left, Y: r.Top},
		{X: r.Right, Y: r.Top},
		{X: r.Right, Y: r.Bottom},
		{X: r.Left, Y: r.Bottom},
	}}, paint.effectiveColor())
}

func (c *RasterCanvas) DrawCircle(center Offset, radius float64, paint Paint) {
	if radius <= 0 {
		return
	}
	if paint.Style == PaintStyleStroke {
		points := circle(center, radius, 4*jointSides)
		c.DrawPath(Polyline(append(points, points[0])), paint)
		return
	}
	c.fillClipped([][]Offset{circle(center, radius, 4*jointSides)}, paint.effectiveColor())
}

func (c *RasterCanvas) DrawLine(start, end Offset, paint Paint) {
	p := NewPath()
	p.MoveTo(start.X, start.Y)
	p.LineTo(end.X, end.Y)
	paint.Style = PaintStyleStroke
	c.DrawPath(p, paint)
}

func (c *RasterCanvas) DrawPath(path *Path, paint Paint) {
	if path.IsEmpty() {
		return
	}
	if paint.Style == PaintStyleFill {
		c.fillClipped(path.Subpaths(), paint.effectiveColor())
		return
	}

	half := paint.strokeWidth() / 2
	region := c.clip.Intersect(c.bounds().Inset(half+1, half+1, half+1, half+1))
	if region.IsEmpty() {
		return
	}
	var polys [][]Offset
	for _, points := range path.Dashed(paint.Dash).Subpaths() {
		polys = append(polys, strokePolylines(points, region, half)...)
	}
	c.fill(polys, paint.effectiveColor())
}

func (c *RasterCanvas) DrawText(layout *TextLayout, position Offset) {
	if layout == nil || layout.mask == nil {
		return
	}
	origin := image.Pt(int(math.Round(position.X)), int(math.Round(position.Y)))
	target := layout.mask.Bounds().Add(origin)
	clipped := target.Intersect(pixelRect(c.clip)).Intersect(c.img.Bounds())
	if clipped.Empty() {
		return
	}
	draw.DrawMask(c.img, clipped,
		image.NewUniform(layout.Style.Color.NRGBA()), image.Point{},
		layout.mask, clipped.Min.Sub(origin), draw.Over)
}

// fillClipped clips each polygon to the current clip and fills the result.
func (c *RasterCanvas) fillClipped(polys [][]Offset, color graphics.Color) {
	region := c.clip.Intersect(c.bounds())
	var clipped [][]Offset
	for _, poly := range polys {
		if p := clipPolygon(poly, region); len(p) >= 3 {
			clipped = append(clipped, p)
		}
	}
	c.fill(clipped, color)
}

// fill rasterizes polygons that already lie inside the image.
func (c *RasterCanvas) fill(polys [][]Offset, color graphics.Color) {
	if len(polys) == 0 || color.Alpha() == 0 {
		return
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, poly := range polys {
		for _, p := range poly {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}
	r := image.Rect(
		int(math.Floor(minX))-1, int(math.Floor(minY))-1,
		int(math.Ceil(maxX))+1, int(math.Ceil(maxY))+1,
	).Intersect(c.img.Bounds())
	if r.Empty() {
		return
	}

	z := vector.NewRasterizer(r.Dx(), r.Dy())
	z.DrawOp = draw.Over
	ox, oy := float64(r.Min.X), float64(r.Min.Y)
	for _, poly := range polys {
		if len(poly) < 3 {
			continue
		}
		z.MoveTo(float32(poly[0].X-ox), float32(poly[0].Y-oy))
		for _, p := range poly[1:] {
			z.LineTo(float32(p.X-ox), float32(p.Y-oy))
		}
		z.ClosePath()
	}
	z.Draw(c.img, r, image.NewUniform(color.NRGBA()), image.Point{})
}

// strokePolylines outlines a polyline as one quad per segment plus a round
// joint at every vertex. All polygons share one winding direction so that
// overlaps saturate instead of cancelling.
func strokePolylines(points []Offset, region Rect, half float64) [][]Offset {
	var polys [][]Offset
	for i := 1; i < len(points); i++ {
		a, b, ok := clipSegment(points[i-1], points[i], region)
		if !ok {
			continue
		}
		length := a.Distance(b)
		if length < epsilon {
			continue
		}
		n := Offset{X: -(b.Y - a.Y) / length * half, Y: (b.X - a.X) / length * half}
		polys = append(polys, []Offset{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)})
		if half > 0.75 {
			polys = append(polys, joint(b, half))
			if i == 1 {
				polys = append(polys, joint(a, half))
			}
		}
	}
	return polys
}

// joint returns a clockwise polygon approximating a disc, matching the
// winding of the segment quads.
func joint(center Offset, radius float64) []Offset {
	points := circle(center, radius, jointSides)
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
	return points
}

func circle(center Offset, radius float64, sides int) []Offset {
	points := make([]Offset, sides)
	for i := range points {
		theta := 2 * math.Pi * float64(i) / float64(sides)
		points[i] = Offset{X: center.X + radius*math.Cos(theta), Y: center.Y + radius*math.Sin(theta)}
	}
	return points
}

// clipSegment clips a segment to r (Liang-Barsky).
func clipSegment(a, b Offset, r Rect) (Offset, Offset, bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, a.X - r.Left},
		{dx, r.Right - a.X},
		{-dy, a.Y - r.Top},
		{dy, r.Bottom - a.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return a, b, false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return a, b, false
			}
			t1 = math.Min(t1, t)
		}
	}
	return Offset{X: a.X + t0*dx, Y: a.Y + t0*dy}, Offset{X: a.X + t1*dx, Y: a.Y + t1*dy}, true
}

// clipPolygon clips a polygon to r (Sutherland-Hodgman).
func clipPolygon(poly []Offset, r Rect) []Offset {
	inside := []func(Offset) bool{
		func(p Offset) bool { return p.X >= r.Left },
		func(p Offset) bool { return p.X <= r.Right },
		func(p Offset) bool { return p.Y >= r.Top },
		func(p Offset) bool { return p.Y <= r.Bottom },
	}
	cross := []func(a, b Offset) Offset{
		func(a, b Offset) Offset { return lerpX(a, b, r.Left) },
		func(a, b Offset) Offset { return lerpX(a, b, r.Right) },
		func(a, b Offset) Offset { return lerpY(a, b, r.Top) },
		func(a, b Offset) Offset { return lerpY(a, b, r.Bottom) },
	}
	out := poly
	for edge := range inside {
		in := out
		out = nil
		for i, cur := range in {
			prev := in[(i+len(in)-1)%len(in)]
			switch {
			case inside[edge](cur) && inside[edge](prev):
				out = append(out, cur)
			case inside[edge](cur):
				out = append(out, cross[edge](prev, cur), cur)
			case inside[edge](prev):
				out = append(out, cross[edge](prev, cur))
			}
		}
		if len(out) == 0 {
			return nil
		}
	}
	return out
}

func lerpX(a, b Offset, x float64) Offset {
	t := (x - a.X) / (b.X - a.X)
	return Offset{X: x, Y: a.Y + t*(b.Y-a.Y)}
}

func lerpY(a, b Offset, y float64) Offset {
	t := (y - a.Y) / (b.Y - a.Y)
	return Offset{X: a.X + t*(b.X-a.X), Y: y}
}

func pixelRect(r Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(r.Left)), int(math.Floor(r.Top)),
		int(math.Ceil(r.Right)), int(math.Ceil(r.Bottom)),
	)
}
