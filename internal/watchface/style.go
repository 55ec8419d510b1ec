package watchface

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/aelexs/watchface/internal/domain"
)

// Schedule selects how the periodic update drives a ClockTime.
type Schedule int

const (
	// ScheduleUnified advances the whole time once per tick.
	ScheduleUnified Schedule = iota
	// SchedulePerField runs one timer per field (1s, 60s, 3600s) and
	// increments each field independently.
	SchedulePerField
)

func (s Schedule) String() string {
	switch s {
	case ScheduleUnified:
		return "unified"
	case SchedulePerField:
		return "per-field"
	default:
		return fmt.Sprintf("schedule(%d)", int(s))
	}
}

// ParseSchedule parses "unified" or "per-field".
func ParseSchedule(s string) (Schedule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unified":
		return ScheduleUnified, nil
	case "per-field", "per_field", "perfield":
		return SchedulePerField, nil
	default:
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidSchedule, s)
	}
}

// Lengths below are in density-independent units; Density converts them
// to surface pixels.

// FaceStyle is the filled dial disc behind the ticks.
type FaceStyle struct {
	Enabled    bool
	Color      Color
	GlowRadius float64
	GlowColor  Color
}

// BezelStyle is the ring drawn outside the tick radius.
type BezelStyle struct {
	Enabled bool
	Offset  float64 // outer radius minus dial radius
	Width   float64
	Color   Color
}

// TickStyle describes the minute and hour tick marks.
type TickStyle struct {
	LongLength  float64
	ShortLength float64
	LongWidth   float64
	ShortWidth  float64
	Color       Color
}

// NumeralStyle describes the hour numerals.
type NumeralStyle struct {
	Inset    float64
	FontSize float64
	Color    Color
}

// HandStyle describes one hand.
type HandStyle struct {
	Length float64
	Width  float64
	Color  Color
}

// PinStyle is the centre cap drawn over the hour and minute hands.
type PinStyle struct {
	Enabled    bool
	Radius     float64
	Color      Color
	RingRadius float64
	RingWidth  float64
	RingColor  Color
}

// StrapMountStyle toggles the four lugs around the bezel.
type StrapMountStyle struct {
	Enabled bool
	Color   Color
}

// Style is the full configuration of one face.
type Style struct {
	Name           string
	Motion         Motion
	Schedule       Schedule
	Density        float64
	RadiusFraction float64 // dial radius as a fraction of half the shorter viewport side
	Background     Color

	Face        FaceStyle
	Bezel       BezelStyle
	Ticks       TickStyle
	Numerals    NumeralStyle
	HourHand    HandStyle
	MinuteHand  HandStyle
	SecondHand  HandStyle
	Pin         PinStyle
	StrapMounts StrapMountStyle
}

// Validate rejects styles that cannot produce a face.
func (s Style) Validate() error {
	if !positive(s.Density) {
		return fmt.Errorf("%w: density %v", domain.ErrInvalidStyle, s.Density)
	}
	if !positive(s.RadiusFraction) || s.RadiusFraction > 1 {
		return fmt.Errorf("%w: radius fraction %v", domain.ErrInvalidStyle, s.RadiusFraction)
	}
	hands := []struct {
		name string
		hand HandStyle
	}{{"hour", s.HourHand}, {"minute", s.MinuteHand}, {"second", s.SecondHand}}
	for _, h := range hands {
		if !positive(h.hand.Length) || h.hand.Width < 0 {
			return fmt.Errorf("%w: %s hand %vx%v", domain.ErrInvalidStyle, h.name, h.hand.Length, h.hand.Width)
		}
	}
	if s.Ticks.LongLength < 0 || s.Ticks.ShortLength < 0 {
		return fmt.Errorf("%w: negative tick length", domain.ErrInvalidStyle)
	}
	if s.Numerals.FontSize <= 0 {
		return fmt.Errorf("%w: numeral font size %v", domain.ErrInvalidStyle, s.Numerals.FontSize)
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Preset names.
const (
	PresetClassic = "classic"
	PresetSmooth  = "smooth"
	PresetBezel   = "bezel"
	PresetStrap   = "strap"
)

// Classic is the first face: a dark glowing disc, grey ticks, red numerals
// and orchid hands that jump once per unit on three independent timers.
func Classic() Style {
	return Style{
		Name:           PresetClassic,
		Motion:         MotionStep,
		Schedule:       SchedulePerField,
		Density:        1,
		RadiusFraction: 2.0 / 3,
		Background:     Black,
		Face: FaceStyle{
			Enabled:    true,
			Color:      Midnight,
			GlowRadius: 150,
			GlowColor:  Color{0xFF, 0xFF, 0xFF, 90},
		},
		Ticks: TickStyle{
			LongLength:  60,
			ShortLength: 40,
			LongWidth:   1,
			ShortWidth:  HairlineWidth,
			Color:       Gray,
		},
		Numerals:   NumeralStyle{Inset: 90, FontSize: 14, Color: Red},
		HourHand:   HandStyle{Length: 100, Width: 3, Color: Orchid},
		MinuteHand: HandStyle{Length: 180, Width: 3, Color: Orchid},
		SecondHand: HandStyle{Length: 260, Width: 3, Color: Orchid},
	}
}

// Smooth keeps the classic look but sweeps the hands on a single timer.
func Smooth() Style {
	s := Classic()
	s.Name = PresetSmooth
	s.Motion = MotionSweep
	s.Schedule = ScheduleUnified
	return s
}

// Bezel is the light face with a black bezel ring, black hands, a red
// second hand and a pinned centre.
func Bezel() Style {
	return Style{
		Name:           PresetBezel,
		Motion:         MotionSweep,
		Schedule:       ScheduleUnified,
		Density:        1,
		RadiusFraction: 2.0 / 3,
		Background:     Paper,
		Bezel: BezelStyle{
			Enabled: true,
			Offset:  45.71,
			Width:   26.67,
			Color:   Black,
		},
		Ticks: TickStyle{
			LongLength:  22.86,
			ShortLength: 15.24,
			LongWidth:   1,
			ShortWidth:  HairlineWidth,
			Color:       Gray,
		},
		Numerals:   NumeralStyle{Inset: 38, FontSize: 24, Color: Black},
		HourHand:   HandStyle{Length: 80, Width: 7, Color: Black},
		MinuteHand: HandStyle{Length: 107, Width: 7, Color: Black},
		SecondHand: HandStyle{Length: 107, Width: 3, Color: Red},
		Pin: PinStyle{
			Enabled:    true,
			Radius:     4.57,
			Color:      Red,
			RingRadius: 6.48,
			RingWidth:  3.81,
			RingColor:  Black,
		},
	}
}

// Strap is the bezel face with strap mounts.
func Strap() Style {
	s := Bezel()
	s.Name = PresetStrap
	s.StrapMounts = StrapMountStyle{Enabled: true, Color: Black}
	return s
}

var presets = map[string]func() Style{
	PresetClassic: Classic,
	PresetSmooth:  Smooth,
	PresetBezel:   Bezel,
	PresetStrap:   Strap,
}

// PresetByName returns a fresh copy of the named preset.
func PresetByName(name string) (Style, error) {
	build, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Style{}, fmt.Errorf("%w: %q", domain.ErrUnknownPreset, name)
	}
	return build(), nil
}

// PresetNames lists the preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
