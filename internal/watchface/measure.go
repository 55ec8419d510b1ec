package watchface

import "unicode/utf8"

// Measurer reports the box a label occupies on the host surface.
type Measurer interface {
	Measure(text string, fontSize float64) Size
}

// FixedMeasurer approximates a monospace font: every rune advances by
// Advance×fontSize and lines are LineHeight×fontSize tall.
type FixedMeasurer struct {
	Advance    float64
	LineHeight float64
}

// DefaultMeasurer suits the digits of a sans-serif face.
var DefaultMeasurer Measurer = FixedMeasurer{Advance: 0.6, LineHeight: 1.2}

// Measure implements Measurer.
func (m FixedMeasurer) Measure(text string, fontSize float64) Size {
	return Size{
		Width:  float64(utf8.RuneCountInString(text)) * m.Advance * fontSize,
		Height: m.LineHeight * fontSize,
	}
}

// MeasurerFunc adapts a function to Measurer.
type MeasurerFunc func(text string, fontSize float64) Size

// Measure implements Measurer.
func (f MeasurerFunc) Measure(text string, fontSize float64) Size {
	return f(text, fontSize)
}
