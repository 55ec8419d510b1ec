package watchface_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aelexs/watchface/internal/domain"
	"github.com/aelexs/watchface/internal/watchface"
)

func distance(a, b watchface.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func assertPoint(t *testing.T, want, got watchface.Point) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, eps, "x")
	assert.InDelta(t, want.Y, got.Y, eps, "y")
}

func mustLayout(t *testing.T, v watchface.Viewport, s watchface.Style) watchface.Geometry {
	t.Helper()
	g, err := watchface.Layout(v, s)
	require.NoError(t, err)
	return g
}

func TestLayout(t *testing.T) {
	t.Run("radius follows the shorter side", func(t *testing.T) {
		g := mustLayout(t, watchface.Viewport{Width: 400, Height: 600}, watchface.Bezel())

		assertPoint(t, watchface.Point{X: 200, Y: 300}, g.Center)
		assert.InDelta(t, 400.0, g.Side, eps)
		assert.InDelta(t, 400.0/3, g.Radius, eps)
		assert.InDelta(t, 400.0/3+45.71, g.OuterRadius, eps)
	})

	t.Run("density scales fixed offsets only", func(t *testing.T) {
		s := watchface.Bezel()
		s.Density = 2

		g := mustLayout(t, watchface.Viewport{Width: 600, Height: 600}, s)

		assert.InDelta(t, 200.0, g.Radius, eps)
		assert.InDelta(t, 200+2*45.71, g.OuterRadius, eps)
		assert.InDelta(t, 14.0, g.Px(7), eps)
	})

	t.Run("no bezel keeps the outer rim on the tick rim", func(t *testing.T) {
		s := watchface.Bezel()
		s.Bezel.Enabled = false

		g := mustLayout(t, watchface.Viewport{Width: 600, Height: 600}, s)

		assert.InDelta(t, g.Radius, g.OuterRadius, eps)
	})
}

func TestLayout_RejectsBadViewport(t *testing.T) {
	tests := []struct {
		name string
		v    watchface.Viewport
	}{
		{"zero width", watchface.Viewport{Width: 0, Height: 100}},
		{"negative height", watchface.Viewport{Width: 100, Height: -1}},
		{"nan", watchface.Viewport{Width: math.NaN(), Height: 100}},
		{"inf", watchface.Viewport{Width: 100, Height: math.Inf(1)}},
		{"too large", watchface.Viewport{Width: domain.MaxViewportDimension + 1, Height: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := watchface.Layout(tt.v, watchface.Strap())

			assert.ErrorIs(t, err, domain.ErrInvalidViewport)
		})
	}
}

func TestPointAt(t *testing.T) {
	c := watchface.Point{X: 100, Y: 100}

	assertPoint(t, watchface.Point{X: 100, Y: 50}, watchface.PointAt(c, 50, 0))
	assertPoint(t, watchface.Point{X: 150, Y: 100}, watchface.PointAt(c, 50, 90))
	assertPoint(t, watchface.Point{X: 100, Y: 150}, watchface.PointAt(c, 50, 180))
	assertPoint(t, watchface.Point{X: 50, Y: 100}, watchface.PointAt(c, 50, 270))
	assertPoint(t, watchface.PointAt(c, 50, 0), watchface.PointAt(c, 50, 360))
}

func TestHandAngle(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		step float64
		want float64
		dial float64
	}{
		{"hour 0 points up", 0, watchface.HourStep, -90, 0},
		{"hour 3 points right", 3, watchface.HourStep, 0, 90},
		{"hour 6 points down", 6, watchface.HourStep, 90, 180},
		{"hour 9 points left", 9, watchface.HourStep, 180, 270},
		{"half past three", 3.5, watchface.HourStep, 15, 105},
		{"minute 45", 45, watchface.MinuteStep, 180, 270},
		{"second 59", 59, watchface.SecondStep, 264, 354},
		{"full turn keeps fmod sign", 60, watchface.SecondStep, 270, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, watchface.HandAngle(tt.v, tt.step), eps)
			assert.InDelta(t, tt.dial, watchface.DialAngle(tt.v, tt.step), eps)
		})
	}
}

func TestHandTip(t *testing.T) {
	c := watchface.Point{X: 0, Y: 0}

	assertPoint(t, watchface.Point{X: 80, Y: 0}, watchface.HandTip(c, 80, 3, watchface.HourStep))
	assertPoint(t, watchface.Point{X: 0, Y: -107}, watchface.HandTip(c, 107, 0, watchface.MinuteStep))
}

func TestTicks(t *testing.T) {
	s := watchface.Bezel()
	g := mustLayout(t, watchface.Viewport{Width: 480, Height: 480}, s)

	ticks := watchface.Ticks(g, s.Ticks)

	require.Len(t, ticks, 61)
	for i, tick := range ticks {
		angle := i * 6
		assert.InDelta(t, float64(angle), tick.Angle, eps)
		assert.Equal(t, angle%30 == 0, tick.Long, "tick %d", angle)
		assert.InDelta(t, g.Radius, distance(g.Center, tick.Start), eps)

		wantLength, wantWidth := s.Ticks.ShortLength, s.Ticks.ShortWidth
		if tick.Long {
			wantLength, wantWidth = s.Ticks.LongLength, s.Ticks.LongWidth
		}
		assert.InDelta(t, wantLength, distance(tick.Start, tick.End), eps, "tick %d", angle)
		assert.InDelta(t, wantWidth, tick.Width, eps)
	}
	assertPoint(t, ticks[0].Start, ticks[60].Start)
}

func TestNumerals(t *testing.T) {
	s := watchface.Bezel()
	g := mustLayout(t, watchface.Viewport{Width: 480, Height: 480}, s)
	m := watchface.FixedMeasurer{Advance: 0.5, LineHeight: 1}

	numerals := watchface.Numerals(g, s.Numerals, m)

	require.Len(t, numerals, 12)
	inset := g.Radius - s.Numerals.Inset
	for i, n := range numerals {
		assert.Equal(t, i+1, n.Value)
		want := watchface.Polar(g.Center, inset, float64(n.Value)*30-90)
		assertPoint(t, want, n.Anchor)
		assertPoint(t, n.Anchor.Add(-n.Size.Width/2, -n.Size.Height/2), n.TopLeft)
	}

	twelve := numerals[11]
	assert.Equal(t, "12", twelve.Label)
	assertPoint(t, watchface.Point{X: 240, Y: 240 - inset}, twelve.Anchor)
	assert.Equal(t, watchface.Size{Width: 24, Height: 24}, twelve.Size)

	three := numerals[2]
	assertPoint(t, watchface.Point{X: 240 + inset, Y: 240}, three.Anchor)
	assert.Equal(t, watchface.Size{Width: 12, Height: 24}, three.Size)
}

func TestStrapMounts(t *testing.T) {
	s := watchface.Strap()
	g := mustLayout(t, watchface.Viewport{Width: 480, Height: 480}, s)

	mounts := watchface.StrapMounts(g)

	require.Len(t, mounts, 4)
	verbs := []watchface.PathVerb{
		watchface.VerbMove, watchface.VerbQuad, watchface.VerbLine, watchface.VerbLine, watchface.VerbClose,
	}
	for _, p := range mounts {
		require.Len(t, p.Ops, len(verbs))
		for i, op := range p.Ops {
			assert.Equal(t, verbs[i], op.Verb)
		}
		assert.True(t, p.Fill)
		start := p.Ops[0].Points[0]
		assert.InDelta(t, g.OuterRadius-19.05, distance(g.Center, start), eps)
	}

	// Left and right lugs mirror across the vertical axis, top and bottom
	// across the horizontal one.
	topLeft, topRight, bottomRight := mounts[0].Ops[0].Points[0], mounts[1].Ops[0].Points[0], mounts[2].Ops[0].Points[0]
	assert.InDelta(t, 2*g.Center.X, topLeft.X+topRight.X, eps)
	assert.InDelta(t, 2*g.Center.Y, topRight.Y+bottomRight.Y, eps)

	edge := mounts[0].Ops[1].Points[0]
	assert.InDelta(t, g.Center.X-g.Side/4, edge.X, eps)
	assert.InDelta(t, g.Center.Y-g.OuterRadius, edge.Y, eps)
}
