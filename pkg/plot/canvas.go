// Package plot draws line charts onto raster images: a white canvas, a grid
// layout with spanning cells, and panels with titles, axis labels, dashed
// grid lines, solid or dashed series and a legend.
package plot

import (
	"image"

	"github.com/go-drift/folio/pkg/graphics"
	"github.com/go-drift/folio/pkg/rendering"
)

// Canvas is a white raster drawing surface.
type Canvas struct {
	raster *rendering.RasterCanvas
}

// NewCanvas returns a width by height canvas cleared to white.
func NewCanvas(width, height int) *Canvas {
	raster := rendering.NewRasterCanvas(width, height)
	raster.Clear(graphics.ColorWhite)
	return &Canvas{raster: raster}
}

// Image returns the rendered pixels.
func (c *Canvas) Image() *image.RGBA {
	return c.raster.Image()
}

// Raster exposes the underlying drawing surface.
func (c *Canvas) Raster() rendering.Canvas {
	return c.raster
}

// Bounds returns the full canvas rectangle.
func (c *Canvas) Bounds() rendering.Rect {
	s := c.raster.Size()
	return rendering.RectFromLTWH(0, 0, s.Width, s.Height)
}

// Grid divides a rectangle into equal rows and columns separated by gaps.
type Grid struct {
	Rows, Cols int
	Bounds     rendering.Rect
	HGap, VGap float64
}

// Cell returns the rectangle covering rowSpan rows and colSpan columns
// starting at (row, col). Spans run to the grid edge when they would
// overflow; spans below 1 count as 1.
func (g Grid) Cell(row, col, rowSpan, colSpan int) rendering.Rect {
	if g.Rows < 1 || g.Cols < 1 {
		return rendering.Rect{}
	}
	row = clampInt(row, 0, g.Rows-1)
	col = clampInt(col, 0, g.Cols-1)
	rowSpan = clampInt(rowSpan, 1, g.Rows-row)
	colSpan = clampInt(colSpan, 1, g.Cols-col)

	cellW := (g.Bounds.Width() - g.HGap*float64(g.Cols-1)) / float64(g.Cols)
	cellH := (g.Bounds.Height() - g.VGap*float64(g.Rows-1)) / float64(g.Rows)
	left := g.Bounds.Left + float64(col)*(cellW+g.HGap)
	top := g.Bounds.Top + float64(row)*(cellH+g.VGap)
	return rendering.RectFromLTWH(left, top,
		float64(colSpan)*cellW+float64(colSpan-1)*g.HGap,
		float64(rowSpan)*cellH+float64(rowSpan-1)*g.VGap,
	)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
