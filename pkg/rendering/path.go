package rendering

import "fmt"

// PathOp represents a path drawing operation type.
type PathOp int

const (
	PathOpMoveTo PathOp = iota // Start new subpath at point (x, y)
	PathOpLineTo               // Draw line to point (x, y)
	PathOpClose                // Close subpath with line to start point
)

// String returns a human-readable representation of the path operation.
func (o PathOp) String() string {
	switch o {
	case PathOpMoveTo:
		return "move_to"
	case PathOpLineTo:
		return "line_to"
	case PathOpClose:
		return "close"
	default:
		return fmt.Sprintf("PathOp(%d)", int(o))
	}
}

// PathCommand represents a single path operation with its target point.
type PathCommand struct {
	Op    PathOp
	Point Offset // unused for PathOpClose
}

// Path represents a sequence of straight-line subpaths.
//
// Build paths using MoveTo, LineTo and Close. Use with Canvas.DrawPath to
// stroke or fill.
type Path struct {
	Commands []PathCommand
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{}
}

// Polyline returns an open path through points in order.
func Polyline(points []Offset) *Path {
	p := NewPath()
	for i, pt := range points {
		if i == 0 {
			p.MoveTo(pt.X, pt.Y)
			continue
		}
		p.LineTo(pt.X, pt.Y)
	}
	return p
}

// MoveTo starts a new subpath at the given point.
func (p *Path) MoveTo(x, y float64) {
	p.Commands = append(p.Commands, PathCommand{Op: PathOpMoveTo, Point: Offset{X: x, Y: y}})
}

// LineTo adds a line segment from the current point to (x, y).
// Without a current point it behaves like MoveTo.
func (p *Path) LineTo(x, y float64) {
	if len(p.Commands) == 0 {
		p.MoveTo(x, y)
		return
	}
	p.Commands = append(p.Commands, PathCommand{Op: PathOpLineTo, Point: Offset{X: x, Y: y}})
}

// Close closes the current subpath by drawing a line to the starting point.
func (p *Path) Close() {
	p.Commands = append(p.Commands, PathCommand{Op: PathOpClose})
}

// IsEmpty returns true if the path has no commands.
func (p *Path) IsEmpty() bool {
	return p == nil || len(p.Commands) == 0
}

// Clear removes all commands from the path.
func (p *Path) Clear() {
	p.Commands = p.Commands[:0]
}

// Subpaths returns the points of each subpath. A closed subpath repeats its
// first point at the end.
func (p *Path) Subpaths() [][]Offset {
	if p.IsEmpty() {
		return nil
	}
	var out [][]Offset
	var current []Offset
	flush := func() {
		if len(current) > 1 {
			out = append(out, current)
		}
		current = nil
	}
	for _, cmd := range p.Commands {
		switch cmd.Op {
		case PathOpMoveTo:
			flush()
			current = []Offset{cmd.Point}
		case PathOpLineTo:
			current = append(current, cmd.Point)
		case PathOpClose:
			if len(current) > 0 {
				start := current[0]
				current = append(current, start)
				flush()
				current = []Offset{start}
			}
		}
	}
	flush()
	return out
}

// Dashed splits every subpath into the "on" runs of pattern. A nil or
// invalid pattern returns p unchanged.
func (p *Path) Dashed(pattern *DashPattern) *Path {
	if !pattern.valid() {
		return p
	}
	out := NewPath()
	for _, points := range p.Subpaths() {
		dashSubpath(out, points, pattern)
	}
	return out
}

func dashSubpath(out *Path, points []Offset, pattern *DashPattern) {
	index := 0
	remaining := pattern.Intervals[0]
	// Skip the phase before drawing.
	phase := pattern.Phase
	for phase > 0 {
		if phase < remaining {
			remaining -= phase
			break
		}
		phase -= remaining
		index = (index + 1) % len(pattern.Intervals)
		remaining = pattern.Intervals[index]
	}

	on := index%2 == 0
	if on {
		out.MoveTo(points[0].X, points[0].Y)
	}
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		length := a.Distance(b)
		travelled := 0.0
		for length-travelled > remaining {
			travelled += remaining
			pt := a.Add(b.Sub(a).Scale(travelled / length))
			if on {
				out.LineTo(pt.X, pt.Y)
			} else {
				out.MoveTo(pt.X, pt.Y)
			}
			on = !on
			index = (index + 1) % len(pattern.Intervals)
			remaining = pattern.Intervals[index]
		}
		remaining -= length - travelled
		if on {
			out.LineTo(b.X, b.Y)
		}
	}
}
