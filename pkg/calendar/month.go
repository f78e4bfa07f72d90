package calendar

import "time"

// Month is the "current month" cursor behind the day grid.
type Month struct {
	first time.Time // midnight on the first of the month
}

// NewMonth creates a cursor for the month containing t.
func NewMonth(t time.Time) Month {
	return Month{first: time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())}
}

// Next shifts the cursor forward by exactly one calendar month.
func (m Month) Next() Month {
	return Month{first: m.first.AddDate(0, 1, 0)}
}

// Prev shifts the cursor back by exactly one calendar month.
func (m Month) Prev() Month {
	return Month{first: m.first.AddDate(0, -1, 0)}
}

// Days generates the day grid for the month: every day from the Sunday on or
// before the 1st through the Saturday on or after the last day, so the grid
// always spans full weeks and includes leading/trailing days of the adjacent
// months.
func (m Month) Days() []time.Time {
	start := m.first.AddDate(0, 0, -int(m.first.Weekday()))
	lastDay := m.first.AddDate(0, 1, -1)
	end := lastDay.AddDate(0, 0, int(time.Saturday-lastDay.Weekday()))

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Contains reports whether a grid day belongs to the cursor's own month.
func (m Month) Contains(d time.Time) bool {
	return d.Year() == m.first.Year() && d.Month() == m.first.Month()
}

// Time exposes the first day of the month.
func (m Month) Time() time.Time {
	return m.first
}

// String renders the cursor for headers, e.g. "September 2026".
func (m Month) String() string {
	return m.first.Format("January 2006")
}
