package rendering

import (
	"fmt"

	"github.com/go-drift/folio/pkg/graphics"
)

// PaintStyle describes how shapes are filled or stroked.
type PaintStyle int

const (
	// PaintStyleFill fills the shape interior.
	PaintStyleFill PaintStyle = iota

	// PaintStyleStroke draws only the outline.
	PaintStyleStroke
)

// String returns a human-readable representation of the paint style.
func (s PaintStyle) String() string {
	switch s {
	case PaintStyleFill:
		return "fill"
	case PaintStyleStroke:
		return "stroke"
	default:
		return fmt.Sprintf("PaintStyle(%d)", int(s))
	}
}

// DashPattern defines a stroke dash pattern as alternating on/off lengths.
//
// The pattern repeats along the stroke. For example, Intervals of [10, 5]
// draws 10 pixels on, 5 pixels off, repeating. Intervals of [10, 5, 5, 5]
// draws 10 on, 5 off, 5 on, 5 off, repeating.
type DashPattern struct {
	Intervals []float64 // Alternating on/off lengths; must have even count >= 2, all > 0
	Phase     float64   // Starting offset into the pattern in pixels
}

func (d *DashPattern) valid() bool {
	if d == nil || len(d.Intervals) < 2 || len(d.Intervals)%2 != 0 {
		return false
	}
	for _, v := range d.Intervals {
		if v <= 0 {
			return false
		}
	}
	return true
}

// Paint describes how to draw a shape on the canvas.
//
// A zero-value Paint draws nothing (transparent color).
// Use DefaultPaint for a basic opaque black fill.
type Paint struct {
	Color       graphics.Color
	Style       PaintStyle // Fill or stroke
	StrokeWidth float64    // Width of stroke in pixels; 0 means 1
	Dash        *DashPattern

	// Alpha multiplies the color's own alpha. 0 is treated as 1 so that
	// literal paints stay opaque; use a transparent Color to draw nothing.
	Alpha float64
}

// DefaultPaint returns a basic opaque black fill paint.
func DefaultPaint() Paint {
	return Paint{
		Color:       graphics.ColorBlack,
		Style:       PaintStyleFill,
		StrokeWidth: 1,
		Alpha:       1.0,
	}
}

// Stroke returns a solid stroke paint.
func Stroke(c graphics.Color, width float64) Paint {
	return Paint{Color: c, Style: PaintStyleStroke, StrokeWidth: width, Alpha: 1}
}

// effectiveColor folds Alpha into the color.
func (p Paint) effectiveColor() graphics.Color {
	if p.Alpha <= 0 || p.Alpha >= 1 {
		return p.Color
	}
	return p.Color.WithAlpha(p.Color.Alpha() * p.Alpha)
}

func (p Paint) strokeWidth() float64 {
	if p.StrokeWidth <= 0 {
		return 1
	}
	return p.StrokeWidth
}
