package plot

import (
	"fmt"
	"math"

	"github.com/go-drift/folio/pkg/graphics"
	"github.com/go-drift/folio/pkg/rendering"
)

// DefaultCycle is the color cycle applied to series without a color.
var DefaultCycle = []graphics.Color{
	graphics.RGB(0x1f, 0x77, 0xb4),
	graphics.RGB(0xff, 0x7f, 0x0e),
	graphics.RGB(0x2c, 0xa0, 0x2c),
	graphics.RGB(0xd6, 0x27, 0x28),
	graphics.RGB(0x94, 0x67, 0xbd),
	graphics.RGB(0x8c, 0x56, 0x4b),
}

// Layout constants in pixels.
const (
	titleScale   = 2
	marginLeft   = 72
	marginRight  = 16
	marginTop    = 48
	marginBottom = 36
	xLabelSpace  = 24
	tickLength   = 5
	targetTicks  = 6
	legendPad    = 8
	legendSwatch = 28
	dataMargin   = 0.05
)

// Series is one line of a panel.
type Series struct {
	Label string
	X, Y  []float64
	// Color defaults to the panel's color cycle.
	Color graphics.Color
	// Width defaults to 1.5.
	Width float64
	// Dashed draws the line with a dash pattern proportional to Width.
	Dashed bool
	// Alpha is the line opacity. 0 means opaque.
	Alpha float64
}

// Panel is a titled line chart.
type Panel struct {
	Title  string
	XLabel string
	YLabel string
	Series []Series
	// Grid draws dashed grid lines at the ticks.
	Grid bool
	// Legend lists labeled series in the upper left corner.
	Legend bool
}

// Range is the data window mapped onto the plot area.
type Range struct {
	XMin, XMax float64
	YMin, YMax float64
}

// DataRange returns the extent of every finite sample, widened by a small
// margin on each side.
func (p Panel) DataRange() (Range, error) {
	r := Range{
		XMin: math.Inf(1), XMax: math.Inf(-1),
		YMin: math.Inf(1), YMax: math.Inf(-1),
	}
	points := 0
	for i, s := range p.Series {
		if len(s.X) != len(s.Y) {
			return Range{}, fmt.Errorf("series %d (%q): %d x values, %d y values", i, s.Label, len(s.X), len(s.Y))
		}
		for j := range s.X {
			x, y := s.X[j], s.Y[j]
			if !finite(x) || !finite(y) {
				continue
			}
			r.XMin, r.XMax = math.Min(r.XMin, x), math.Max(r.XMax, x)
			r.YMin, r.YMax = math.Min(r.YMin, y), math.Max(r.YMax, y)
			points++
		}
	}
	if points == 0 {
		return Range{}, fmt.Errorf("panel %q has no finite data", p.Title)
	}
	r.XMin, r.XMax = widen(r.XMin, r.XMax)
	r.YMin, r.YMax = widen(r.YMin, r.YMax)
	return r, nil
}

func widen(lo, hi float64) (float64, float64) {
	if hi-lo < 1e-12 {
		return lo - 0.5, hi + 0.5
	}
	pad := (hi - lo) * dataMargin
	return lo - pad, hi + pad
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// PlotArea returns the axes rectangle inside bounds.
func (p Panel) PlotArea(bounds rendering.Rect) rendering.Rect {
	bottom := float64(marginBottom)
	if p.XLabel != "" {
		bottom += xLabelSpace
	}
	return bounds.Inset(marginLeft, marginTop, marginRight, bottom)
}

// Draw renders the panel into bounds.
func (p Panel) Draw(c *Canvas, bounds rendering.Rect) error {
	data, err := p.DataRange()
	if err != nil {
		return err
	}
	area := p.PlotArea(bounds)
	if area.IsEmpty() {
		return fmt.Errorf("panel %q: bounds %vx%v too small", p.Title, bounds.Width(), bounds.Height())
	}
	canvas := c.raster
	tr := transform{area: area, data: data}

	xTicks, xStep := Ticks(data.XMin, data.XMax, targetTicks)
	yTicks, yStep := Ticks(data.YMin, data.YMax, targetTicks)

	if p.Grid {
		grid := rendering.Paint{
			Color:       graphics.RGB(0xb0, 0xb0, 0xb0),
			Style:       rendering.PaintStyleStroke,
			StrokeWidth: 1,
			Dash:        &rendering.DashPattern{Intervals: []float64{4, 3}},
			Alpha:       0.6,
		}
		for _, x := range xTicks {
			px := tr.x(x)
			canvas.DrawLine(rendering.Offset{X: px, Y: area.Top}, rendering.Offset{X: px, Y: area.Bottom}, grid)
		}
		for _, y := range yTicks {
			py := tr.y(y)
			canvas.DrawLine(rendering.Offset{X: area.Left, Y: py}, rendering.Offset{X: area.Right, Y: py}, grid)
		}
	}

	canvas.Save()
	canvas.ClipRect(area)
	for i, s := range p.Series {
		canvas.DrawPath(tr.path(s), s.paint(i))
	}
	canvas.Restore()

	canvas.DrawRect(area, rendering.Stroke(graphics.ColorBlack, 1))
	p.drawTicks(canvas, area, tr, xTicks, xStep, yTicks, yStep)
	p.drawLabels(canvas, bounds, area)
	if p.Legend {
		p.drawLegend(canvas, area)
	}
	return nil
}

func (p Panel) drawTicks(canvas rendering.Canvas, area rendering.Rect, tr transform, xTicks []float64, xStep float64, yTicks []float64, yStep float64) {
	ink := rendering.Stroke(graphics.ColorBlack, 1)
	style := rendering.TextStyle{Color: graphics.ColorBlack}
	for _, x := range xTicks {
		px := tr.x(x)
		canvas.DrawLine(rendering.Offset{X: px, Y: area.Bottom}, rendering.Offset{X: px, Y: area.Bottom + tickLength}, ink)
		label := rendering.NewTextLayout(FormatTick(x, xStep), style)
		canvas.DrawText(label, rendering.Offset{X: px - label.Size.Width/2, Y: area.Bottom + tickLength + 3})
	}
	for _, y := range yTicks {
		py := tr.y(y)
		canvas.DrawLine(rendering.Offset{X: area.Left - tickLength, Y: py}, rendering.Offset{X: area.Left, Y: py}, ink)
		label := rendering.NewTextLayout(FormatTick(y, yStep), style)
		canvas.DrawText(label, rendering.Offset{X: area.Left - tickLength - 4 - label.Size.Width, Y: py - label.Size.Height/2})
	}
}

func (p Panel) drawLabels(canvas rendering.Canvas, bounds, area rendering.Rect) {
	if p.Title != "" {
		title := rendering.NewTextLayout(p.Title, rendering.TextStyle{Color: graphics.ColorBlack, Scale: titleScale})
		canvas.DrawText(title, rendering.Offset{
			X: area.Center().X - title.Size.Width/2,
			Y: area.Top - title.Size.Height - 12,
		})
	}
	if p.YLabel != "" {
		label := rendering.NewTextLayout(p.YLabel, rendering.TextStyle{Color: graphics.ColorBlack, Vertical: true})
		canvas.DrawText(label, rendering.Offset{
			X: bounds.Left + 4,
			Y: area.Center().Y - label.Size.Height/2,
		})
	}
	if p.XLabel != "" {
		label := rendering.NewTextLayout(p.XLabel, rendering.TextStyle{Color: graphics.ColorBlack})
		canvas.DrawText(label, rendering.Offset{
			X: area.Center().X - label.Size.Width/2,
			Y: area.Bottom + marginBottom - 6,
		})
	}
}

func (p Panel) drawLegend(canvas rendering.Canvas, area rendering.Rect) {
	var entries []*rendering.TextLayout
	var indexes []int
	width := 0.0
	for i, s := range p.Series {
		if s.Label == "" {
			continue
		}
		l := rendering.NewTextLayout(s.Label, rendering.TextStyle{Color: graphics.ColorBlack})
		entries = append(entries, l)
		indexes = append(indexes, i)
		width = math.Max(width, l.Size.Width)
	}
	if len(entries) == 0 {
		return
	}
	const rowHeight = 18.0
	box := rendering.RectFromLTWH(
		area.Left+legendPad, area.Top+legendPad,
		legendPad*3+legendSwatch+width, legendPad*2+rowHeight*float64(len(entries)),
	)
	canvas.DrawRect(box, rendering.Paint{Color: graphics.ColorWhite, Alpha: 0.85})
	canvas.DrawRect(box, rendering.Stroke(graphics.RGB(0xcc, 0xcc, 0xcc), 1))
	for row, l := range entries {
		i := indexes[row]
		y := box.Top + legendPad + rowHeight*float64(row) + rowHeight/2
		x := box.Left + legendPad
		swatch := rendering.Polyline([]rendering.Offset{{X: x, Y: y}, {X: x + legendSwatch, Y: y}})
		canvas.DrawPath(swatch, p.Series[i].paint(i))
		canvas.DrawText(l, rendering.Offset{X: x + legendSwatch + legendPad, Y: y - l.Size.Height/2})
	}
}

func (s Series) paint(index int) rendering.Paint {
	color := s.Color
	if color == 0 {
		color = DefaultCycle[index%len(DefaultCycle)]
	}
	width := s.Width
	if width <= 0 {
		width = 1.5
	}
	paint := rendering.Paint{
		Color:       color,
		Style:       rendering.PaintStyleStroke,
		StrokeWidth: width,
		Alpha:       s.Alpha,
	}
	if s.Dashed {
		paint.Dash = &rendering.DashPattern{Intervals: []float64{3.7 * width, 1.6 * width}}
	}
	return paint
}

type transform struct {
	area rendering.Rect
	data Range
}

func (t transform) x(v float64) float64 {
	return t.area.Left + (v-t.data.XMin)/(t.data.XMax-t.data.XMin)*t.area.Width()
}

func (t transform) y(v float64) float64 {
	return t.area.Bottom - (v-t.data.YMin)/(t.data.YMax-t.data.YMin)*t.area.Height()
}

// path maps a series to pixel space, breaking the line at non-finite samples.
func (t transform) path(s Series) *rendering.Path {
	p := rendering.NewPath()
	pen := false
	for i := range s.X {
		if !finite(s.X[i]) || !finite(s.Y[i]) {
			pen = false
			continue
		}
		x, y := t.x(s.X[i]), t.y(s.Y[i])
		if pen {
			p.LineTo(x, y)
		} else {
			p.MoveTo(x, y)
			pen = true
		}
	}
	return p
}
