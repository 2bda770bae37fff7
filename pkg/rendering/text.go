package rendering

import (
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/go-drift/folio/pkg/graphics"
)

// face is the bitmap face every layout is measured and drawn with.
var face font.Face = basicfont.Face7x13

// TextStyle describes how text should be rendered.
type TextStyle struct {
	Color graphics.Color
	// Scale enlarges the bitmap face by an integer factor. 0 means 1.
	Scale int
	// Vertical rotates the text 90 degrees counterclockwise so it reads
	// bottom to top.
	Vertical bool
}

// TextLayout contains measured text and its coverage mask.
type TextLayout struct {
	Text  string
	Style TextStyle
	Size  Size
	mask  *image.Alpha
}

// NewTextLayout measures text and rasterizes its coverage mask.
func NewTextLayout(text string, style TextStyle) *TextLayout {
	scale := style.Scale
	if scale < 1 {
		scale = 1
	}
	metrics := face.Metrics()
	width := font.MeasureString(face, text).Ceil()
	height := metrics.Height.Ceil()
	layout := &TextLayout{Text: text, Style: style}
	if width == 0 || height == 0 {
		return layout
	}

	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	drawer := font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(0, metrics.Ascent.Ceil()),
	}
	drawer.DrawString(text)

	if scale > 1 {
		scaled := image.NewAlpha(image.Rect(0, 0, width*scale, height*scale))
		xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), mask, mask.Bounds(), draw.Src, nil)
		mask = scaled
	}
	if style.Vertical {
		mask = rotateCCW(mask)
	}
	layout.mask = mask
	b := mask.Bounds()
	layout.Size = Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
	return layout
}

// Coverage returns the mask alpha at (x, y) relative to the layout origin.
func (l *TextLayout) Coverage(x, y int) uint8 {
	if l.mask == nil {
		return 0
	}
	return l.mask.AlphaAt(x, y).A
}

func rotateCCW(src *image.Alpha) *image.Alpha {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewAlpha(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.SetAlpha(y, w-1-x, src.AlphaAt(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}
