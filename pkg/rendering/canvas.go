// Package rendering rasterizes stroked and filled vector paths and bitmap
// text onto RGBA images.
package rendering

import "github.com/go-drift/folio/pkg/graphics"

// Canvas renders drawing commands.
type Canvas interface {
	// Save pushes the current clip state.
	Save()

	// Restore pops the most recent clip state.
	Restore()

	// ClipRect restricts future drawing to the given rectangle.
	ClipRect(rect Rect)

	// Clear fills the entire canvas with the given color.
	Clear(color graphics.Color)

	// DrawRect draws a rectangle with the provided paint.
	DrawRect(rect Rect, paint Paint)

	// DrawCircle draws a circle with the provided paint.
	DrawCircle(center Offset, radius float64, paint Paint)

	// DrawLine draws a line segment with the provided paint.
	DrawLine(start, end Offset, paint Paint)

	// DrawPath draws a path with the provided paint.
	DrawPath(path *Path, paint Paint)

	// DrawText draws a measured text layout with its top-left corner at
	// the given position.
	DrawText(layout *TextLayout, position Offset)

	// Size returns the size of the canvas in pixels.
	Size() Size
}
