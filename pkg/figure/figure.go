// Package figure generates the four-panel illustration embedded in the Itô
// article: sample Brownian paths, quadratic variation convergence, Itô
// versus naive transforms, and local time at several levels.
package figure

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"time"

	"github.com/go-drift/folio/pkg/errors"
	"github.com/go-drift/folio/pkg/graphics"
	"github.com/go-drift/folio/pkg/plot"
	"github.com/go-drift/folio/pkg/rendering"
	"github.com/go-drift/folio/pkg/stochastic"
)

// Panel titles, top to bottom.
const (
	PathsTitle      = "Sample Paths of Brownian Motion"
	QuadraticTitle  = "Quadratic Variation Approximation"
	TransformsTitle = "Different Transformations: Itô vs Standard"
	LocalTimeTitle  = "Local Time at Different Levels"
)

var (
	blue  = graphics.RGB(0x25, 0x63, 0xeb)
	red   = graphics.RGB(0xdc, 0x26, 0x26)
	green = graphics.RGB(0x05, 0x96, 0x69)
)

// Options controls the simulation and the output size.
type Options struct {
	Seed   uint64
	Paths  int
	Points int
	Width  int
	Height int
}

// DefaultOptions reproduces the published figure.
func DefaultOptions() Options {
	return Options{
		Seed:   stochastic.DefaultSeed,
		Paths:  stochastic.DefaultPaths,
		Points: stochastic.DefaultPoints,
		Width:  1500,
		Height: 1200,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Paths <= 0 {
		o.Paths = d.Paths
	}
	if o.Points <= 0 {
		o.Points = d.Points
	}
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	return o
}

// Partition is the quadratic variation of the first path resampled on a
// coarser grid.
type Partition struct {
	N  int
	T  []float64 // grid points after the first
	QV []float64
}

// Level is the local time of the first path at one level.
type Level struct {
	A    float64
	Time []float64
}

// Data holds every series the figure plots.
type Data struct {
	T          []float64
	Dt         float64
	Paths      [][]float64
	Partitions []Partition

	ItoSquare, StandardSquare []float64
	ItoExp, StandardExp       []float64

	Levels []Level
}

// Compute runs the simulation.
func Compute(opts Options) (*Data, error) {
	opts = opts.withDefaults()
	t := stochastic.Linspace(0, 1, opts.Points)
	paths, err := stochastic.BrownianPaths(stochastic.NewSource(opts.Seed), t, opts.Paths)
	if err != nil {
		return nil, fmt.Errorf("compute figure: %w", err)
	}
	dt := t[1] - t[0]
	path := paths[0]

	data := &Data{T: t, Dt: dt, Paths: paths}
	for _, n := range stochastic.DefaultPartitions {
		coarse := stochastic.Linspace(0, 1, n)
		resampled := stochastic.Interp(coarse, t, path)
		data.Partitions = append(data.Partitions, Partition{
			N:  n,
			T:  coarse[1:],
			QV: stochastic.QuadraticVariation(resampled),
		})
	}

	data.ItoSquare = stochastic.ItoTransform(path, dt, stochastic.Square)
	data.StandardSquare = stochastic.Apply(path, stochastic.Square.F)
	data.ItoExp = stochastic.ItoTransform(path, dt, stochastic.Exp)
	data.StandardExp = stochastic.Apply(path, stochastic.Exp.F)

	for _, a := range stochastic.DefaultLevels {
		data.Levels = append(data.Levels, Level{
			A:    a,
			Time: stochastic.LocalTime(path, a, stochastic.DefaultEps, dt),
		})
	}
	return data, nil
}

// Panels returns the four panels in layout order.
func (d *Data) Panels() []plot.Panel {
	paths := plot.Panel{Title: PathsTitle, YLabel: "Value", Grid: true}
	for _, p := range d.Paths {
		paths.Series = append(paths.Series, plot.Series{X: d.T, Y: p, Alpha: 0.7})
	}

	quad := plot.Panel{Title: QuadraticTitle, YLabel: "Quadratic Variation", Grid: true, Legend: true}
	colors := []graphics.Color{blue, red, green}
	for i, part := range d.Partitions {
		quad.Series = append(quad.Series, plot.Series{
			Label: fmt.Sprintf("n=%d points", part.N),
			X:     part.T,
			Y:     part.QV,
			Color: colors[i%len(colors)],
			Width: 2,
		})
	}
	quad.Series = append(quad.Series, plot.Series{
		Label: "t (limit)", X: d.T, Y: d.T,
		Color: graphics.ColorBlack, Dashed: true, Alpha: 0.7,
	})

	transforms := plot.Panel{
		Title: TransformsTitle, YLabel: "Value", Grid: true, Legend: true,
		Series: []plot.Series{
			{Label: "Itô (x²)", X: d.T, Y: d.ItoSquare, Color: blue, Width: 2},
			{Label: "Standard (x²)", X: d.T, Y: d.StandardSquare, Color: blue, Dashed: true, Alpha: 0.7},
			{Label: "Itô (exp(x))", X: d.T, Y: d.ItoExp, Color: red, Width: 2},
			{Label: "Standard (exp(x))", X: d.T, Y: d.StandardExp, Color: red, Dashed: true, Alpha: 0.7},
		},
	}

	local := plot.Panel{Title: LocalTimeTitle, XLabel: "Time", YLabel: "Local Time", Grid: true, Legend: true}
	for _, l := range d.Levels {
		local.Series = append(local.Series, plot.Series{
			Label: fmt.Sprintf("Level %g", l.A),
			X:     d.T,
			Y:     l.Time,
			Width: 2,
		})
	}
	return []plot.Panel{paths, quad, transforms, local}
}

// ItoFigure simulates and draws the figure.
func ItoFigure(opts Options) (*image.RGBA, error) {
	opts = opts.withDefaults()
	data, err := Compute(opts)
	if err != nil {
		return nil, err
	}
	canvas := plot.NewCanvas(opts.Width, opts.Height)
	grid := plot.Grid{
		Rows: 3, Cols: 2,
		Bounds: canvas.Bounds().Inset(16, 8, 16, 8),
		HGap:   24, VGap: 16,
	}
	cells := []rendering.Rect{
		grid.Cell(0, 0, 1, 2),
		grid.Cell(1, 0, 1, 1),
		grid.Cell(1, 1, 1, 1),
		grid.Cell(2, 0, 1, 2),
	}
	for i, panel := range data.Panels() {
		if err := panel.Draw(canvas, cells[i]); err != nil {
			return nil, fmt.Errorf("draw %q: %w", panel.Title, err)
		}
	}
	return canvas.Image(), nil
}

// WritePNG renders the figure and encodes it as PNG. Failures are returned
// as a figure-kind FolioError.
func WritePNG(w io.Writer, opts Options) error {
	img, err := ItoFigure(opts)
	if err == nil {
		err = png.Encode(w, img)
	}
	if err != nil {
		return &errors.FolioError{
			Op:        "figure.WritePNG",
			Kind:      errors.KindFigure,
			Err:       err,
			Timestamp: time.Now(),
		}
	}
	return nil
}
