package world

import (
	"math"

	"timehelm.world/internal/protocol"
)

// Sky color keyframes (linear RGB) at fixed hours; the cycle wraps at 24.
var skyKeyframes = []struct {
	Hour  float64
	Color [3]float64
}{
	{0, [3]float64{0.02, 0.03, 0.08}},  // night
	{5, [3]float64{0.05, 0.05, 0.12}},  // late night
	{7, [3]float64{0.85, 0.55, 0.35}},  // dawn
	{12, [3]float64{0.45, 0.70, 0.95}}, // midday
	{17, [3]float64{0.80, 0.50, 0.30}}, // dusk
	{19, [3]float64{0.08, 0.07, 0.15}}, // nightfall
	{24, [3]float64{0.02, 0.03, 0.08}}, // wrap
}

// DaylightAt derives the lighting state from the hour of day in [0,24):
// trigonometric sun placement over the horizon plus a sky color lerp between
// fixed keyframes. Pure and cheap; runs on every broadcast.
func DaylightAt(hours float64) protocol.Daylight {
	hours = math.Mod(hours, 24)
	if hours < 0 {
		hours += 24
	}

	// Sun rises at 06:00, peaks at 12:00, sets at 18:00.
	elevation := math.Sin(math.Pi*(hours-6)/12) * (math.Pi / 2)

	intensity := math.Sin(math.Pi * (hours - 6) / 12)
	if intensity < 0 {
		intensity = 0
	}

	return protocol.Daylight{
		SunAngle:  elevation,
		Intensity: intensity,
		SkyColor:  skyColorAt(hours),
	}
}

func skyColorAt(hours float64) [3]float64 {
	for i := 0; i < len(skyKeyframes)-1; i++ {
		a, b := skyKeyframes[i], skyKeyframes[i+1]
		if hours < a.Hour || hours > b.Hour {
			continue
		}
		t := (hours - a.Hour) / (b.Hour - a.Hour)
		var c [3]float64
		for j := 0; j < 3; j++ {
			c[j] = a.Color[j] + (b.Color[j]-a.Color[j])*t
		}
		return c
	}
	return skyKeyframes[0].Color
}
