package calendar

import "fmt"

// Fixed-radix game calendar: 60 minutes/hour, 24 hours/day, 30 days/month,
// 12 months/year. No leap years, no irregular months.
const (
	MinutesPerHour  = 60
	MinutesPerDay   = 24 * MinutesPerHour  // 1440
	MinutesPerMonth = 30 * MinutesPerDay   // 43200
	MinutesPerYear  = 12 * MinutesPerMonth // 518400
)

// Date is a calendar date derived from an absolute minute count.
// Month and Day are 1-based; Hour and Minute are 0-based.
type Date struct {
	Year   int64
	Month  int
	Day    int
	Hour   int
	Minute int
}

// ToDate converts an absolute game-minute count into a calendar date.
// Negative input is a caller error.
func ToDate(totalMinutes int64) Date {
	year := totalMinutes / MinutesPerYear
	minutesInYear := totalMinutes % MinutesPerYear

	dayOfYear := minutesInYear / MinutesPerDay
	minutesInDay := minutesInYear % MinutesPerDay

	return Date{
		Year:   year,
		Month:  int(dayOfYear/30) + 1,
		Day:    int(dayOfYear%30) + 1,
		Hour:   int(minutesInDay / MinutesPerHour),
		Minute: int(minutesInDay % MinutesPerHour),
	}
}

// TotalMinutes is the inverse of ToDate.
func (d Date) TotalMinutes() int64 {
	return d.Year*MinutesPerYear +
		int64(d.Month-1)*MinutesPerMonth +
		int64(d.Day-1)*MinutesPerDay +
		int64(d.Hour)*MinutesPerHour +
		int64(d.Minute)
}

// Format renders a minute count as "YYYY/MM/DD HH:MM", zero-padded.
func Format(totalMinutes int64) string {
	d := ToDate(totalMinutes)
	return fmt.Sprintf("%04d/%02d/%02d %02d:%02d", d.Year, d.Month, d.Day, d.Hour, d.Minute)
}

// TimeOfDayHours returns the fractional hour of day in [0,24).
// Drives day/night lighting.
func TimeOfDayHours(totalMinutes int64) float64 {
	minutesInDay := totalMinutes % MinutesPerDay
	return float64(minutesInDay) / MinutesPerHour
}
