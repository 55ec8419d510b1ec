package watchface

// Render assembles the draw list for one frame, back to front: dial disc
// and bezel, ticks, numerals, hour hand, minute hand, centre pin, second
// hand, strap mounts. Later primitives paint over earlier ones.
func Render(g Geometry, t ClockTime, s Style, m Measurer) []Primitive {
	if m == nil {
		m = DefaultMeasurer
	}
	out := make([]Primitive, 0, 96)

	if s.Face.Enabled {
		disc := Circle{Center: g.Center, Radius: g.Radius, Fill: true}
		if s.Face.GlowRadius > 0 {
			disc.Glow = &Glow{Radius: g.Px(s.Face.GlowRadius), Color: s.Face.GlowColor}
		}
		out = append(out, circlePrimitive(LayerFace, s.Face.Color, disc))
	}
	if s.Bezel.Enabled {
		width := g.Px(s.Bezel.Width)
		out = append(out, circlePrimitive(LayerBezel, s.Bezel.Color, Circle{
			Center:      g.Center,
			Radius:      g.OuterRadius - width,
			StrokeWidth: width,
		}))
	}

	for _, tick := range Ticks(g, s.Ticks) {
		out = append(out, linePrimitive(LayerTick, s.Ticks.Color, Line{
			Start: tick.Start,
			End:   tick.End,
			Width: tick.Width,
		}))
	}

	fontSize := g.Px(s.Numerals.FontSize)
	for _, n := range Numerals(g, s.Numerals, m) {
		out = append(out, textPrimitive(LayerNumeral, s.Numerals.Color, Text{
			Text:     n.Label,
			Anchor:   n.Anchor,
			TopLeft:  n.TopLeft,
			Size:     n.Size,
			FontSize: fontSize,
		}))
	}

	out = append(out,
		hand(g, LayerHourHand, s.HourHand, t.Hour, HourStep),
		hand(g, LayerMinuteHand, s.MinuteHand, t.Minute, MinuteStep),
	)

	if s.Pin.Enabled {
		out = append(out,
			circlePrimitive(LayerPin, s.Pin.Color, Circle{
				Center: g.Center,
				Radius: g.Px(s.Pin.Radius),
				Fill:   true,
			}),
			circlePrimitive(LayerPin, s.Pin.RingColor, Circle{
				Center:      g.Center,
				Radius:      g.Px(s.Pin.RingRadius),
				StrokeWidth: g.Px(s.Pin.RingWidth),
			}),
		)
	}

	out = append(out, hand(g, LayerSecondHand, s.SecondHand, t.Second, SecondStep))

	if s.StrapMounts.Enabled {
		for _, p := range StrapMounts(g) {
			out = append(out, pathPrimitive(LayerStrapMount, s.StrapMounts.Color, p))
		}
	}
	return out
}

func hand(g Geometry, layer Layer, h HandStyle, v, step float64) Primitive {
	return linePrimitive(layer, h.Color, Line{
		Start: g.Center,
		End:   HandTip(g.Center, g.Px(h.Length), v, step),
		Width: g.Px(h.Width),
	})
}
