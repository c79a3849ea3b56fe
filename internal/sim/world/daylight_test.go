package world

import (
	"math"
	"testing"
)

func TestDaylightAt_SunCycle(t *testing.T) {
	noon := DaylightAt(12)
	if math.Abs(noon.SunAngle-math.Pi/2) > 1e-9 {
		t.Fatalf("noon sun angle: got %.4f, want %.4f", noon.SunAngle, math.Pi/2)
	}
	if math.Abs(noon.Intensity-1) > 1e-9 {
		t.Fatalf("noon intensity: got %.4f", noon.Intensity)
	}

	midnight := DaylightAt(0)
	if midnight.SunAngle >= 0 {
		t.Fatalf("midnight sun above horizon: %.4f", midnight.SunAngle)
	}
	if midnight.Intensity != 0 {
		t.Fatalf("midnight intensity: got %.4f", midnight.Intensity)
	}

	for _, h := range []float64{6, 18} {
		d := DaylightAt(h)
		if math.Abs(d.SunAngle) > 1e-9 {
			t.Fatalf("hour %.0f: sun should be at the horizon, got %.4f", h, d.SunAngle)
		}
	}
}

func TestDaylightAt_WrapsAndClamps(t *testing.T) {
	a := DaylightAt(25)
	b := DaylightAt(1)
	if a != b {
		t.Fatalf("hour 25 should equal hour 1: %+v vs %+v", a, b)
	}
	c := DaylightAt(-1)
	d := DaylightAt(23)
	if c != d {
		t.Fatalf("hour -1 should equal hour 23: %+v vs %+v", c, d)
	}
}

func TestSkyColorAt_Interpolates(t *testing.T) {
	// Between dawn (7) and midday (12) every channel moves monotonically.
	c7 := skyColorAt(7)
	c9 := skyColorAt(9.5)
	c12 := skyColorAt(12)
	for j := 0; j < 3; j++ {
		lo, hi := c7[j], c12[j]
		if lo > hi {
			lo, hi = hi, lo
		}
		if c9[j] < lo-1e-9 || c9[j] > hi+1e-9 {
			t.Fatalf("channel %d not between keyframes: %.3f not in [%.3f,%.3f]", j, c9[j], lo, hi)
		}
	}
	// Components stay in [0,1].
	for h := 0.0; h < 24; h += 0.5 {
		c := skyColorAt(h)
		for j := 0; j < 3; j++ {
			if c[j] < 0 || c[j] > 1 {
				t.Fatalf("hour %.1f channel %d out of range: %.3f", h, j, c[j])
			}
		}
	}
}
