// Package reminders finds overdue checkups and emails their owners.
package reminders

import "time"

// CheckupInterval is the number of months between recommended checkups.
const CheckupInterval = 6

// DisplayLayout renders due dates the way the reminder email shows them (M/D/YYYY).
const DisplayLayout = "1/2/2006"

type Schedule struct {
	NextDue time.Time
	Overdue bool
}

// Evaluate computes the next due date for a checkup and whether it has passed.
// The checkup's calendar day is taken as-is and placed in loc. Month overflow
// normalizes forward, so Aug 31 is due on Mar 2 (or Mar 3 outside leap years).
func Evaluate(checkup, now time.Time, loc *time.Location) Schedule {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := checkup.Date()
	next := time.Date(y, m+CheckupInterval, d, 0, 0, 0, 0, loc)

	ny, nm, nd := now.In(loc).Date()
	today := time.Date(ny, nm, nd, 0, 0, 0, 0, loc)

	return Schedule{NextDue: next, Overdue: !next.After(today)}
}

func FormatDue(t time.Time) string {
	return t.Format(DisplayLayout)
}
