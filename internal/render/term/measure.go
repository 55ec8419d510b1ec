package term

import (
	"math"

	"github.com/mattn/go-runewidth"

	"github.com/aelexs/watchface/internal/domain"
	"github.com/aelexs/watchface/internal/watchface"
)

// Measurer sizes labels in terminal cells: one column per display width
// unit, one row high. Font size has no effect on a terminal.
type Measurer struct{}

// Measure implements watchface.Measurer.
func (Measurer) Measure(text string, _ float64) watchface.Size {
	return watchface.Size{Width: float64(runewidth.StringWidth(text)), Height: CellAspect}
}

// Viewport returns the drawing area of a cols×rows terminal.
func Viewport(cols, rows int) watchface.Viewport {
	return watchface.Viewport{Width: float64(cols), Height: float64(rows) * CellAspect}
}

// Fit scales s so its lengths keep their proportion to the dial in v.
// Styles are tuned for a domain.DefaultViewportWidth square.
func Fit(s watchface.Style, v watchface.Viewport) watchface.Style {
	side := math.Min(v.Width, v.Height)
	s.Density *= side / domain.DefaultViewportWidth
	return s
}
