package watchface_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aelexs/watchface/internal/domain"
	"github.com/aelexs/watchface/internal/watchface"
)

func TestPresets(t *testing.T) {
	tests := []struct {
		name     string
		motion   watchface.Motion
		schedule watchface.Schedule
		bezel    bool
		mounts   bool
	}{
		{watchface.PresetClassic, watchface.MotionStep, watchface.SchedulePerField, false, false},
		{watchface.PresetSmooth, watchface.MotionSweep, watchface.ScheduleUnified, false, false},
		{watchface.PresetBezel, watchface.MotionSweep, watchface.ScheduleUnified, true, false},
		{watchface.PresetStrap, watchface.MotionSweep, watchface.ScheduleUnified, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := watchface.PresetByName(tt.name)

			require.NoError(t, err)
			require.NoError(t, s.Validate())
			assert.Equal(t, tt.name, s.Name)
			assert.Equal(t, tt.motion, s.Motion)
			assert.Equal(t, tt.schedule, s.Schedule)
			assert.Equal(t, tt.bezel, s.Bezel.Enabled)
			assert.Equal(t, tt.mounts, s.StrapMounts.Enabled)
		})
	}
}

func TestPresetByName_Unknown(t *testing.T) {
	_, err := watchface.PresetByName("sundial")

	assert.ErrorIs(t, err, domain.ErrUnknownPreset)
}

func TestPresetByName_ReturnsCopy(t *testing.T) {
	a, err := watchface.PresetByName("STRAP")
	require.NoError(t, err)
	a.HourHand.Length = 1

	b, err := watchface.PresetByName(watchface.PresetStrap)
	require.NoError(t, err)

	assert.InDelta(t, 80.0, b.HourHand.Length, eps)
}

func TestPresetNames(t *testing.T) {
	assert.Equal(t, []string{"bezel", "classic", "smooth", "strap"}, watchface.PresetNames())
}

func TestStyleValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*watchface.Style)
	}{
		{"zero density", func(s *watchface.Style) { s.Density = 0 }},
		{"radius fraction above one", func(s *watchface.Style) { s.RadiusFraction = 1.5 }},
		{"zero minute hand", func(s *watchface.Style) { s.MinuteHand.Length = 0 }},
		{"negative second width", func(s *watchface.Style) { s.SecondHand.Width = -1 }},
		{"negative tick", func(s *watchface.Style) { s.Ticks.ShortLength = -1 }},
		{"no font size", func(s *watchface.Style) { s.Numerals.FontSize = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := watchface.Bezel()
			tt.mutate(&s)

			assert.ErrorIs(t, s.Validate(), domain.ErrInvalidStyle)
		})
	}
}

func TestParseSchedule(t *testing.T) {
	got, err := watchface.ParseSchedule("per-field")
	require.NoError(t, err)
	assert.Equal(t, watchface.SchedulePerField, got)

	got, err = watchface.ParseSchedule("Unified")
	require.NoError(t, err)
	assert.Equal(t, watchface.ScheduleUnified, got)

	_, err = watchface.ParseSchedule("hourly")
	assert.ErrorIs(t, err, domain.ErrInvalidSchedule)
}
