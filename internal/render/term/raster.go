package term

import (
	"math"

	"github.com/mattn/go-runewidth"

	"github.com/aelexs/watchface/internal/watchface"
)

// Stroke glyphs.
const (
	RuneRing = 'o'
	RuneFlat = '-'
	RuneRise = '/'
	RuneFall = '\\'
	RuneTall = '|'
)

// quadSteps is the number of segments a quadratic curve flattens into.
const quadSteps = 8

// Rasterize paints f onto a cols×rows grid. The frame's viewport maps
// onto the whole grid; glows are not drawn.
func Rasterize(f watchface.Frame, cols, rows int) *Grid {
	g := NewGrid(cols, rows)
	if cols <= 0 || rows <= 0 || f.Viewport.Width <= 0 || f.Viewport.Height <= 0 {
		return g
	}
	r := rasterizer{
		g:  g,
		sx: float64(cols) / f.Viewport.Width,
		sy: float64(rows) / f.Viewport.Height,
	}

	if f.Background.A > 0 {
		for row := range rows {
			for col := range cols {
				g.Fill(col, row, f.Background)
			}
		}
	}
	for _, p := range f.Primitives {
		switch {
		case p.Circle != nil:
			r.circle(p.Color, p.Circle)
		case p.Line != nil:
			r.line(p.Color, p.Line.Start, p.Line.End)
		case p.Text != nil:
			r.text(p.Color, p.Text)
		case p.Path != nil:
			r.path(p.Color, p.Path)
		}
	}
	return g
}

type rasterizer struct {
	g      *Grid
	sx, sy float64 // cells per viewport unit
}

// toCell maps a viewport point to fractional grid coordinates.
func (r rasterizer) toCell(p watchface.Point) (x, y float64) {
	return p.X * r.sx, p.Y * r.sy
}

// centre returns the viewport point at the middle of a cell.
func (r rasterizer) centre(col, row int) watchface.Point {
	return watchface.Point{X: (float64(col) + 0.5) / r.sx, Y: (float64(row) + 0.5) / r.sy}
}

// cellSize is the larger cell dimension in viewport units.
func (r rasterizer) cellSize() float64 {
	return math.Max(1/r.sx, 1/r.sy)
}

// bounds returns the cell range covering the viewport box [min, max].
func (r rasterizer) bounds(lo, hi watchface.Point) (c0, r0, c1, r1 int) {
	x0, y0 := r.toCell(lo)
	x1, y1 := r.toCell(hi)
	cols, rows := r.g.Size()
	return max(int(math.Floor(x0)), 0), max(int(math.Floor(y0)), 0),
		min(int(math.Ceil(x1)), cols-1), min(int(math.Ceil(y1)), rows-1)
}

func (r rasterizer) circle(c watchface.Color, p *watchface.Circle) {
	reach := p.Radius + p.StrokeWidth/2 + r.cellSize()
	c0, r0, c1, r1 := r.bounds(p.Center.Add(-reach, -reach), p.Center.Add(reach, reach))

	// Bands at least a cell wide are painted solid; thinner rings get glyphs.
	solid := p.StrokeWidth >= r.cellSize()
	tol := math.Max(p.StrokeWidth/2, r.cellSize()/2)

	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			pt := r.centre(col, row)
			d := math.Hypot(pt.X-p.Center.X, pt.Y-p.Center.Y)
			switch {
			case p.Fill:
				if d <= p.Radius {
					r.g.Fill(col, row, c)
				}
			case solid:
				if math.Abs(d-p.Radius) <= p.StrokeWidth/2 {
					r.g.Fill(col, row, c)
				}
			default:
				if math.Abs(d-p.Radius) <= tol {
					r.g.Glyph(col, row, RuneRing, c)
				}
			}
		}
	}
}

func (r rasterizer) line(c watchface.Color, from, to watchface.Point) {
	x0, y0 := r.toCell(from)
	x1, y1 := r.toCell(to)
	glyph := slopeRune(x1-x0, y1-y0)

	steps := int(math.Ceil(2 * math.Max(math.Abs(x1-x0), math.Abs(y1-y0))))
	if steps == 0 {
		r.g.Glyph(int(math.Floor(x0)), int(math.Floor(y0)), glyph, c)
		return
	}
	for i := 0; i <= steps; i++ {
		f := float64(i) / float64(steps)
		x := x0 + (x1-x0)*f
		y := y0 + (y1-y0)*f
		r.g.Glyph(int(math.Floor(x)), int(math.Floor(y)), glyph, c)
	}
}

// slopeRune picks the glyph closest to a segment's on-screen direction.
// dx and dy are in cells; y grows downward.
func slopeRune(dx, dy float64) rune {
	// Cells are CellAspect times taller than wide.
	deg := math.Mod(math.Atan2(-dy*CellAspect, dx)*180/math.Pi+180, 180)
	switch {
	case deg < 22.5 || deg >= 157.5:
		return RuneFlat
	case deg < 67.5:
		return RuneRise
	case deg < 112.5:
		return RuneTall
	default:
		return RuneFall
	}
}

func (r rasterizer) text(c watchface.Color, t *watchface.Text) {
	x, y := r.toCell(t.Anchor)
	row := int(math.Floor(y))
	col := int(math.Round(x - float64(runewidth.StringWidth(t.Text))/2))
	for _, ch := range t.Text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		r.g.Glyph(col, row, ch, c)
		col += w
	}
}

func (r rasterizer) path(c watchface.Color, p *watchface.Path) {
	poly := flatten(p)
	if len(poly) < 2 {
		return
	}
	if !p.Fill {
		for i := 1; i < len(poly); i++ {
			r.line(c, poly[i-1], poly[i])
		}
		return
	}

	lo, hi := poly[0], poly[0]
	for _, pt := range poly[1:] {
		lo = watchface.Point{X: math.Min(lo.X, pt.X), Y: math.Min(lo.Y, pt.Y)}
		hi = watchface.Point{X: math.Max(hi.X, pt.X), Y: math.Max(hi.Y, pt.Y)}
	}
	c0, r0, c1, r1 := r.bounds(lo, hi)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if inside(poly, r.centre(col, row)) {
				r.g.Fill(col, row, c)
			}
		}
	}
}

// flatten converts path ops to a polyline. A closing op repeats the
// subpath's first point.
func flatten(p *watchface.Path) []watchface.Point {
	var out []watchface.Point
	var start, cur watchface.Point
	for _, op := range p.Ops {
		switch op.Verb {
		case watchface.VerbMove:
			if len(op.Points) < 1 {
				continue
			}
			start, cur = op.Points[0], op.Points[0]
			out = append(out, cur)
		case watchface.VerbLine:
			if len(op.Points) < 1 {
				continue
			}
			cur = op.Points[0]
			out = append(out, cur)
		case watchface.VerbQuad:
			if len(op.Points) < 2 {
				continue
			}
			ctrl, end := op.Points[0], op.Points[1]
			for i := 1; i <= quadSteps; i++ {
				t := float64(i) / quadSteps
				u := 1 - t
				out = append(out, watchface.Point{
					X: u*u*cur.X + 2*u*t*ctrl.X + t*t*end.X,
					Y: u*u*cur.Y + 2*u*t*ctrl.Y + t*t*end.Y,
				})
			}
			cur = end
		case watchface.VerbClose:
			cur = start
			out = append(out, cur)
		}
	}
	return out
}

// inside reports whether pt lies in poly by the even-odd rule.
func inside(poly []watchface.Point, pt watchface.Point) bool {
	in := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > pt.Y) != (b.Y > pt.Y) &&
			pt.X < (b.X-a.X)*(pt.Y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
	}
	return in
}
