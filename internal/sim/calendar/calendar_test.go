package calendar

import (
	"testing"
	"time"
)

func TestToDate_Literals(t *testing.T) {
	// 1500 min = 1 day + 60 min -> day 2, hour 1.
	d := ToDate(1500)
	want := Date{Year: 0, Month: 1, Day: 2, Hour: 1, Minute: 0}
	if d != want {
		t.Fatalf("ToDate(1500): got %+v want %+v", d, want)
	}
	if got := Format(1500); got != "0000/01/02 01:00" {
		t.Fatalf("Format(1500): got %q", got)
	}

	// Exactly one year.
	d = ToDate(MinutesPerYear)
	want = Date{Year: 1, Month: 1, Day: 1, Hour: 0, Minute: 0}
	if d != want {
		t.Fatalf("ToDate(%d): got %+v want %+v", MinutesPerYear, d, want)
	}

	if d := ToDate(0); (d != Date{Year: 0, Month: 1, Day: 1, Hour: 0, Minute: 0}) {
		t.Fatalf("ToDate(0): got %+v", d)
	}
}

func TestToDate_RangesAndRoundTrip(t *testing.T) {
	// Sweep across several years including radix boundaries; every field must
	// stay in range and the reconstruction must be exact.
	samples := []int64{
		0, 1, 59, 60, 1439, 1440, 1441,
		MinutesPerMonth - 1, MinutesPerMonth, MinutesPerMonth + 1,
		MinutesPerYear - 1, MinutesPerYear, MinutesPerYear + 1,
		// Day 30 of month 12 boundary.
		MinutesPerYear - MinutesPerDay, MinutesPerYear - MinutesPerDay + 1,
		3*MinutesPerYear + 7*MinutesPerMonth + 19*MinutesPerDay + 23*60 + 59,
	}
	for m := int64(0); m < 3*MinutesPerDay; m += 17 {
		samples = append(samples, m)
	}
	for _, m := range samples {
		d := ToDate(m)
		if d.Minute < 0 || d.Minute > 59 {
			t.Fatalf("m=%d: minute out of range: %+v", m, d)
		}
		if d.Hour < 0 || d.Hour > 23 {
			t.Fatalf("m=%d: hour out of range: %+v", m, d)
		}
		if d.Day < 1 || d.Day > 30 {
			t.Fatalf("m=%d: day out of range: %+v", m, d)
		}
		if d.Month < 1 || d.Month > 12 {
			t.Fatalf("m=%d: month out of range: %+v", m, d)
		}
		if back := d.TotalMinutes(); back != m {
			t.Fatalf("round trip: got %d want %d (%+v)", back, m, d)
		}
	}
}

func TestTimeOfDayHours(t *testing.T) {
	for _, m := range []int64{0, 1500, 43199, MinutesPerYear + 721} {
		d := ToDate(m)
		want := float64(d.Hour) + float64(d.Minute)/60
		if got := TimeOfDayHours(m); got != want {
			t.Fatalf("m=%d: got %v want %v", m, got, want)
		}
	}
	if h := TimeOfDayHours(MinutesPerDay - 1); h >= 24 {
		t.Fatalf("time of day out of range: %v", h)
	}
}

func TestGameClock_Extrapolation(t *testing.T) {
	c := NewGameClock()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	if got := c.ReadAt(base); got != 0 {
		t.Fatalf("unsynced read: got %d want 0", got)
	}
	if c.Synced() {
		t.Fatal("clock should start unsynced")
	}

	c.Sync(1000, base)
	if got := c.ReadAt(base.Add(2500 * time.Millisecond)); got != 1002 {
		t.Fatalf("read at +2.5s: got %d want 1002", got)
	}
	if got := c.ReadAt(base); got != 1000 {
		t.Fatalf("read at sync instant: got %d want 1000", got)
	}

	// Last-write-wins: an earlier value is accepted unconditionally.
	c.Sync(500, base.Add(10*time.Second))
	if got := c.ReadAt(base.Add(11 * time.Second)); got != 501 {
		t.Fatalf("after backwards sync: got %d want 501", got)
	}
}
