// Package svg encodes a rendered watch face frame as a standalone SVG
// document.
package svg

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/aelexs/watchface/internal/watchface"
)

// ContentType is the media type of Encode's output.
const ContentType = "image/svg+xml"

// FontFamily is used for numerals.
const FontFamily = "sans-serif"

// Encode writes f as one SVG document, painting primitives in order.
func Encode(w io.Writer, f watchface.Frame) error {
	e := &encoder{w: bufio.NewWriter(w)}

	e.printf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		num(f.Viewport.Width), num(f.Viewport.Height), num(f.Viewport.Width), num(f.Viewport.Height))
	e.printf("<title>%s</title>\n", f.Time.String())

	glows := 0
	for _, p := range f.Primitives {
		if p.Circle != nil && p.Circle.Glow != nil {
			if glows == 0 {
				e.printf("<defs>\n")
			}
			e.glowFilter(glows, p.Circle.Glow)
			glows++
		}
	}
	if glows > 0 {
		e.printf("</defs>\n")
	}

	if f.Background.A > 0 {
		e.printf(`<rect width="100%%" height="100%%"%s/>`+"\n", paint("fill", f.Background))
	}

	glow := 0
	for _, p := range f.Primitives {
		switch p.Kind {
		case watchface.KindCircle:
			filter := ""
			if p.Circle.Glow != nil {
				filter = fmt.Sprintf(` filter="url(#glow-%d)"`, glow)
				glow++
			}
			e.circle(p.Color, p.Circle, filter)
		case watchface.KindLine:
			e.line(p.Color, p.Line)
		case watchface.KindText:
			e.text(p.Color, p.Text)
		case watchface.KindPath:
			e.path(p.Color, p.Path)
		default:
			return fmt.Errorf("svg: unknown primitive kind %q", p.Kind)
		}
	}

	e.printf("</svg>\n")
	if e.err != nil {
		return e.err
	}
	return e.w.Flush()
}

type encoder struct {
	w   *bufio.Writer
	err error
}

func (e *encoder) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func (e *encoder) glowFilter(i int, g *watchface.Glow) {
	e.printf(`<filter id="glow-%d" x="-50%%" y="-50%%" width="200%%" height="200%%">`, i)
	opaque := g.Color
	opaque.A = 0xFF
	e.printf(`<feDropShadow dx="0" dy="0" stdDeviation="%s" flood-color="%s" flood-opacity="%s"/>`,
		num(g.Radius/2), opaque.Hex(), num(g.Color.Opacity()))
	e.printf("</filter>\n")
}

func (e *encoder) circle(c watchface.Color, p *watchface.Circle, filter string) {
	e.printf(`<circle cx="%s" cy="%s" r="%s"%s%s/>`+"\n",
		num(p.Center.X), num(p.Center.Y), num(p.Radius), shapePaint(c, p.Fill, p.StrokeWidth), filter)
}

func (e *encoder) line(c watchface.Color, l *watchface.Line) {
	e.printf(`<line x1="%s" y1="%s" x2="%s" y2="%s"%s stroke-linecap="butt"/>`+"\n",
		num(l.Start.X), num(l.Start.Y), num(l.End.X), num(l.End.Y), stroke(c, l.Width))
}

func (e *encoder) text(c watchface.Color, t *watchface.Text) {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(t.Text))
	e.printf(`<text x="%s" y="%s" font-family="%s" font-size="%s" text-anchor="middle" dominant-baseline="central"%s>%s</text>`+"\n",
		num(t.Anchor.X), num(t.Anchor.Y), FontFamily, num(t.FontSize), paint("fill", c), b.String())
}

func (e *encoder) path(c watchface.Color, p *watchface.Path) {
	e.printf(`<path d="%s"%s/>`+"\n", PathData(p), shapePaint(c, p.Fill, watchface.HairlineWidth))
}

// PathData converts path ops to an SVG d attribute.
func PathData(p *watchface.Path) string {
	var b strings.Builder
	for i, op := range p.Ops {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch op.Verb {
		case watchface.VerbMove:
			b.WriteString("M")
		case watchface.VerbLine:
			b.WriteString("L")
		case watchface.VerbQuad:
			b.WriteString("Q")
		case watchface.VerbClose:
			b.WriteString("Z")
		}
		for _, pt := range op.Points {
			b.WriteByte(' ')
			b.WriteString(num(pt.X))
			b.WriteByte(' ')
			b.WriteString(num(pt.Y))
		}
	}
	return b.String()
}

func shapePaint(c watchface.Color, fill bool, width float64) string {
	if fill {
		return paint("fill", c)
	}
	return ` fill="none"` + stroke(c, width)
}

// stroke maps a hairline to one device pixel regardless of scaling.
func stroke(c watchface.Color, width float64) string {
	if width <= watchface.HairlineWidth {
		return paint("stroke", c) + ` stroke-width="1" vector-effect="non-scaling-stroke"`
	}
	return paint("stroke", c) + fmt.Sprintf(` stroke-width="%s"`, num(width))
}

func paint(attr string, c watchface.Color) string {
	opaque := c
	opaque.A = 0xFF
	s := fmt.Sprintf(` %s="%s"`, attr, opaque.Hex())
	if c.A != 0xFF {
		s += fmt.Sprintf(` %s-opacity="%s"`, attr, num(c.Opacity()))
	}
	return s
}

// num prints v with at most three decimals.
func num(v float64) string {
	r := math.Round(v*1000) / 1000
	if r == 0 {
		r = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
