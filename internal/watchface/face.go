// Package watchface is the geometry and time model of an analog watch face.
//
// A ClockTime advances once per tick; Layout derives the dial geometry from
// the drawing area; Render turns both into an ordered list of primitives a
// host surface paints back to front. Nothing here holds state between
// frames: hosts keep the current ClockTime and re-render from it.
package watchface

// Frame is everything a surface needs to paint one tick.
type Frame struct {
	Time       ClockTime   `json:"time"`
	Viewport   Viewport    `json:"viewport"`
	Background Color       `json:"background"`
	Primitives []Primitive `json:"primitives"`
}

// Face binds a style to a laid-out viewport.
type Face struct {
	style    Style
	geometry Geometry
	measurer Measurer
}

// NewFace lays out style s in viewport v. A nil measurer uses
// DefaultMeasurer.
func NewFace(s Style, v Viewport, m Measurer) (*Face, error) {
	g, err := Layout(v, s)
	if err != nil {
		return nil, err
	}
	if m == nil {
		m = DefaultMeasurer
	}
	return &Face{style: s, geometry: g, measurer: m}, nil
}

// Style returns the face's style.
func (f *Face) Style() Style { return f.style }

// Geometry returns the face's layout.
func (f *Face) Geometry() Geometry { return f.geometry }

// Frame renders t.
func (f *Face) Frame(t ClockTime) Frame {
	return Frame{
		Time:       t,
		Viewport:   f.geometry.Viewport,
		Background: f.style.Background,
		Primitives: Render(f.geometry, t, f.style, f.measurer),
	}
}
