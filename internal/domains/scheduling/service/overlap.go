package service

import (
	"time"

	"clts/internal/domains/booking/model"
)

// overlaps reports whether two half-open [start,end) wall-clock intervals
// intersect: start < other.end && other.start < end.
func overlaps(start, end, otherStart, otherEnd time.Time) bool {
	return clock(start) < clock(otherEnd) && clock(otherStart) < clock(end)
}

// clock reduces a time to minutes since midnight so comparisons ignore the
// zero-value date that HH:MM parsing produces.
func clock(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// collidingBooking returns the first existing booking whose interval
// intersects [start,end), or nil. Callers pass bookings already scoped to one
// lab and date with cancelled rows excluded.
func collidingBooking(existing []model.Booking, start, end time.Time) *model.Booking {
	for i := range existing {
		if overlaps(start, end, existing[i].StartTime, existing[i].EndTime) {
			return &existing[i]
		}
	}

	return nil
}

// expandWeekly lists the occurrence dates of a weekly series: the first date,
// then every 7th day while still on or before repeatUntil. Dates come back in
// ascending order.
func expandWeekly(firstDate, repeatUntil time.Time) []time.Time {
	dates := []time.Time{firstDate}

	for current := firstDate.AddDate(0, 0, 7); !current.After(repeatUntil); current = current.AddDate(0, 0, 7) {
		dates = append(dates, current)
	}

	return dates
}
