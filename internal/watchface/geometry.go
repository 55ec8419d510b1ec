package watchface

import (
	"fmt"
	"math"
	"strconv"

	"github.com/aelexs/watchface/internal/domain"
)

// Angular steps on the dial, in degrees.
const (
	HourStep   = 360.0 / HoursPerDial     // 30°
	MinuteStep = 360.0 / MinutesPerHour   // 6°
	SecondStep = 360.0 / SecondsPerMinute // 6°
)

// Point is a position on the drawing surface; y grows downward.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Size is a width and height.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Viewport is the drawing area the face fills.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Validate rejects empty, non-finite and oversized viewports.
func (v Viewport) Validate() error {
	for _, d := range []float64{v.Width, v.Height} {
		if !positive(d) || d > domain.MaxViewportDimension {
			return fmt.Errorf("%w: %sx%s", domain.ErrInvalidViewport,
				strconv.FormatFloat(v.Width, 'g', -1, 64), strconv.FormatFloat(v.Height, 'g', -1, 64))
		}
	}
	return nil
}

// Geometry is derived once per layout pass from the viewport and style.
type Geometry struct {
	Viewport    Viewport
	Center      Point
	Side        float64 // shorter viewport side
	Radius      float64 // tick rim
	OuterRadius float64 // bezel rim
	Density     float64
}

// Layout centres the dial in v. The rim radius is a fixed fraction of half
// the shorter side. With a bezel the outer rim sits a fixed offset outside
// it; without one the two rims coincide.
func Layout(v Viewport, s Style) (Geometry, error) {
	if err := v.Validate(); err != nil {
		return Geometry{}, err
	}
	if err := s.Validate(); err != nil {
		return Geometry{}, err
	}
	side := math.Min(v.Width, v.Height)
	radius := side / 2 * s.RadiusFraction
	outer := radius
	if s.Bezel.Enabled {
		outer += s.Bezel.Offset * s.Density
	}
	return Geometry{
		Viewport:    v,
		Center:      Point{X: v.Width / 2, Y: v.Height / 2},
		Side:        side,
		Radius:      radius,
		OuterRadius: outer,
		Density:     s.Density,
	}, nil
}

// Px converts density-independent units to surface pixels.
func (g Geometry) Px(dp float64) float64 {
	return dp * g.Density
}

// Polar returns the point at radius from center along screenDeg, measured
// clockwise from 3 o'clock (the surface's x axis).
func Polar(center Point, radius, screenDeg float64) Point {
	rad := screenDeg * math.Pi / 180
	return Point{
		X: center.X + radius*math.Cos(rad),
		Y: center.Y + radius*math.Sin(rad),
	}
}

// PointAt returns the point at radius from center along dialDeg, measured
// clockwise from 12 o'clock.
func PointAt(center Point, radius, dialDeg float64) Point {
	return Polar(center, radius, dialDeg-90)
}

// HandAngle is the surface angle of a hand showing v with the given step
// per unit: (v*step - 90) mod 360. Hour 0 gives -90°, straight up.
func HandAngle(v, step float64) float64 {
	return math.Mod(v*step-90, 360)
}

// DialAngle is the angle of a hand showing v, clockwise from 12, in [0,360).
func DialAngle(v, step float64) float64 {
	return wrap(v*step, 360)
}

// HandTip is the end of a hand of the given length showing v.
func HandTip(center Point, length, v, step float64) Point {
	return Polar(center, length, HandAngle(v, step))
}

// Tick is one radial mark on the rim.
type Tick struct {
	Angle float64 // dial degrees
	Long  bool
	Start Point // on the rim
	End   Point // towards the centre
	Width float64
}

// Ticks returns a mark every 6° from 0° to 360° inclusive. Marks on a
// multiple of 30° are long and thick. The 360° mark coincides with 0°.
func Ticks(g Geometry, s TickStyle) []Tick {
	ticks := make([]Tick, 0, 61)
	for i := 0; i <= 360; i += 6 {
		long := i%30 == 0
		length, width := s.ShortLength, s.ShortWidth
		if long {
			length, width = s.LongLength, s.LongWidth
		}
		angle := float64(i)
		ticks = append(ticks, Tick{
			Angle: angle,
			Long:  long,
			Start: PointAt(g.Center, g.Radius, angle),
			End:   PointAt(g.Center, g.Radius-g.Px(length), angle),
			Width: g.Px(width),
		})
	}
	return ticks
}

// Numeral is one hour label.
type Numeral struct {
	Value   int
	Label   string
	Anchor  Point
	TopLeft Point
	Size    Size
}

// Numerals places 1..12 at dial angle n*30, inset from the rim and centred
// on the measured text box.
func Numerals(g Geometry, s NumeralStyle, m Measurer) []Numeral {
	fontSize := g.Px(s.FontSize)
	out := make([]Numeral, 0, HoursPerDial)
	for n := 1; n <= HoursPerDial; n++ {
		label := strconv.Itoa(n)
		anchor := PointAt(g.Center, g.Radius-g.Px(s.Inset), float64(n)*HourStep)
		size := m.Measure(label, fontSize)
		out = append(out, Numeral{
			Value:   n,
			Label:   label,
			Anchor:  anchor,
			TopLeft: anchor.Add(-size.Width/2, -size.Height/2),
			Size:    size,
		})
	}
	return out
}

// Strap mount offsets in density-independent units.
const (
	mountInset      = 19.05
	mountLip        = 11.43
	mountFoot       = 15.24
	mountReach      = 20.95
	mountReturnDrop = 34.29
)

// StrapMounts returns the four lug outlines, clockwise from the top left.
// Each starts on the bezel at 45°, curves out to the lug edge at a quarter
// of the square side from the centre, then closes back under the bezel.
func StrapMounts(g Geometry) []Path {
	c := g.Center
	r := g.OuterRadius
	diag := (r - g.Px(mountInset)) * math.Sqrt2 / 2

	// Quadrant signs: sx picks the side of the start point, sy the top or
	// bottom, ex points the foot back toward the vertical axis.
	quadrants := []struct{ sx, sy float64 }{
		{-1, -1},
		{1, -1},
		{1, 1},
		{-1, 1},
	}
	paths := make([]Path, 0, len(quadrants))
	for _, q := range quadrants {
		x := c.X + q.sx*g.Side/4
		ex := -q.sx
		p1 := Point{X: c.X + q.sx*diag, Y: c.Y + q.sy*diag}
		p2 := Point{X: x, Y: c.Y + q.sy*r}
		p3 := Point{X: x, Y: c.Y + q.sy*(r+g.Px(mountLip))}
		p4 := Point{X: x + ex*g.Px(mountFoot), Y: c.Y + q.sy*(r+g.Px(mountFoot))}
		p5 := Point{X: x + ex*g.Px(mountReach), Y: c.Y + q.sy*(r-g.Px(mountReturnDrop))}
		paths = append(paths, Path{
			Fill: true,
			Ops: []PathOp{
				{Verb: VerbMove, Points: []Point{p1}},
				{Verb: VerbQuad, Points: []Point{p2, p3}},
				{Verb: VerbLine, Points: []Point{p4}},
				{Verb: VerbLine, Points: []Point{p5}},
				{Verb: VerbClose},
			},
		})
	}
	return paths
}
