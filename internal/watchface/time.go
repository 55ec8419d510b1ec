package watchface

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/aelexs/watchface/internal/domain"
)

// Field ranges of a ClockTime.
const (
	HoursPerDial     = 12
	MinutesPerHour   = 60
	SecondsPerMinute = 60
)

// Motion selects how hands move between ticks.
type Motion int

const (
	// MotionSweep carries fractional time into coarser fields so the
	// minute and hour hands sweep continuously.
	MotionSweep Motion = iota
	// MotionStep keeps every field a whole number; hands jump once per unit.
	MotionStep
)

func (m Motion) String() string {
	switch m {
	case MotionSweep:
		return "sweep"
	case MotionStep:
		return "step"
	default:
		return fmt.Sprintf("motion(%d)", int(m))
	}
}

// ParseMotion parses "sweep" or "step" (case-insensitive).
func ParseMotion(s string) (Motion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sweep":
		return MotionSweep, nil
	case "step":
		return MotionStep, nil
	default:
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidMotion, s)
	}
}

// Field names one component of a ClockTime.
type Field int

const (
	FieldSecond Field = iota
	FieldMinute
	FieldHour
)

func (f Field) String() string {
	switch f {
	case FieldSecond:
		return "second"
	case FieldMinute:
		return "minute"
	case FieldHour:
		return "hour"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// ClockTime is the continuous time shown on the dial.
// Hour is in [0,12), Minute and Second in [0,60). Values are immutable:
// every operation returns a new ClockTime.
type ClockTime struct {
	Hour   float64 `json:"hour"`
	Minute float64 `json:"minute"`
	Second float64 `json:"second"`
}

// FromHMS builds a ClockTime from whole clock readings. In MotionSweep the
// minute carries second/60 and the hour carries minute/60.
func FromHMS(hour, minute, second int, m Motion) ClockTime {
	t := ClockTime{
		Hour:   wrap(float64(hour), HoursPerDial),
		Minute: wrap(float64(minute), MinutesPerHour),
		Second: wrap(float64(second), SecondsPerMinute),
	}
	if m == MotionSweep {
		t.Minute += t.Second / SecondsPerMinute
		t.Hour += t.Minute / MinutesPerHour
	}
	return t.Normalize()
}

// FromWallClock reads hour-of-12, minute and second of t.
// Sub-second precision is dropped.
func FromWallClock(t time.Time, m Motion) ClockTime {
	hour, minute, second := t.Clock()
	return FromHMS(hour%HoursPerDial, minute, second, m)
}

// Advance returns the time one second after t.
//
// In MotionSweep the minute grows by 1/60 and the hour by 1/3600 of a unit.
// A field within snapEpsilon of a whole number is snapped to it so float
// drift never shows the previous minute or hour. In MotionStep fields are
// whole numbers and a wrap carries exactly one unit into the next field.
func Advance(t ClockTime, m Motion) ClockTime {
	if m == MotionStep {
		return advanceStep(t)
	}

	return ClockTime{
		Hour:   wrap(snap(t.Hour+1.0/(SecondsPerMinute*MinutesPerHour)), HoursPerDial),
		Minute: wrap(snap(t.Minute+1.0/SecondsPerMinute), MinutesPerHour),
		Second: wrap(snap(t.Second+1), SecondsPerMinute),
	}
}

// snapEpsilon bounds the drift absorbed by snap. It is far below the
// smallest sweep increment of 1/3600.
const snapEpsilon = 1e-9

// snap rounds v to the nearest whole number when it is within snapEpsilon.
func snap(v float64) float64 {
	if r := math.Round(v); math.Abs(v-r) < snapEpsilon {
		return r
	}
	return v
}

func advanceStep(t ClockTime) ClockTime {
	second := math.Floor(t.Second) + 1
	minute := math.Floor(t.Minute)
	hour := math.Floor(t.Hour)

	if second >= SecondsPerMinute {
		second -= SecondsPerMinute
		minute++
	}
	if minute >= MinutesPerHour {
		minute -= MinutesPerHour
		hour++
	}

	return ClockTime{
		Hour:   wrap(hour, HoursPerDial),
		Minute: wrap(minute, MinutesPerHour),
		Second: wrap(second, SecondsPerMinute),
	}
}

// AdvanceField increments a single field by one unit and wraps it. Other
// fields are untouched; there is no carry. This is how a face with one
// timer per field moves.
func AdvanceField(t ClockTime, f Field) ClockTime {
	switch f {
	case FieldSecond:
		t.Second = wrap(t.Second+1, SecondsPerMinute)
	case FieldMinute:
		t.Minute = wrap(t.Minute+1, MinutesPerHour)
	case FieldHour:
		t.Hour = wrap(t.Hour+1, HoursPerDial)
	}
	return t
}

// Normalize wraps every field into its range.
func (t ClockTime) Normalize() ClockTime {
	return ClockTime{
		Hour:   wrap(t.Hour, HoursPerDial),
		Minute: wrap(t.Minute, MinutesPerHour),
		Second: wrap(t.Second, SecondsPerMinute),
	}
}

// Valid reports whether every field is within its range.
func (t ClockTime) Valid() bool {
	return inRange(t.Hour, HoursPerDial) &&
		inRange(t.Minute, MinutesPerHour) &&
		inRange(t.Second, SecondsPerMinute)
}

// String formats the whole parts as HH:MM:SS on a 12-hour dial.
func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", whole(t.Hour, HoursPerDial), whole(t.Minute, MinutesPerHour), whole(t.Second, SecondsPerMinute))
}

// whole truncates v into [0,n), treating a value just below a whole number
// as that number. Values built outside Advance may carry drift too.
func whole(v float64, n int) int {
	return int(math.Floor(v+snapEpsilon)) % n
}

func inRange(v, n float64) bool {
	return v >= 0 && v < n
}

// wrap maps v into [0,n). A value landing exactly on n becomes 0.
func wrap(v, n float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	r := math.Mod(v, n)
	if r < 0 {
		r += n
	}
	if r >= n {
		r = 0
	}
	return r
}
