// Package annotate marks bookings whose instructor is on approved leave.
// Everything here is pure: no clocks, no I/O, no mutation of inputs.
package annotate

import (
	"time"

	bookingModel "clts/internal/domains/booking/model"
	leaveModel "clts/internal/domains/leave/model"
	"clts/shared/constant"
)

// AnnotatedBooking pairs a booking with its leave-overlap flag. The flag is
// advisory: an affected booking still holds its slot.
type AnnotatedBooking struct {
	bookingModel.Booking

	OnLeave bool
}

// Conflicts flags each booking whose date falls inside an approved leave of
// its own instructor, and returns the set of affected instructor ids. Leaves
// in any other status are ignored regardless of dates.
func Conflicts(bookings []bookingModel.Booking, leaves []leaveModel.Leave) ([]AnnotatedBooking, map[string]bool) {
	byInstructor := make(map[string][]leaveModel.Leave)

	for _, leave := range leaves {
		if leave.Status != constant.LeaveStatusApproved {
			continue
		}

		byInstructor[leave.InstructorID] = append(byInstructor[leave.InstructorID], leave)
	}

	annotated := make([]AnnotatedBooking, len(bookings))
	affected := make(map[string]bool)

	for i, booking := range bookings {
		annotated[i] = AnnotatedBooking{Booking: booking}

		for _, leave := range byInstructor[booking.InstructorID] {
			if leave.Covers(booking.BookingDate) {
				annotated[i].OnLeave = true
				affected[booking.InstructorID] = true

				break
			}
		}
	}

	return annotated, affected
}

// LeavesByDay explodes leave ranges into per-day buckets keyed by ISO date,
// clamped to [periodStart, periodEnd]. Day stepping uses calendar arithmetic,
// so month boundaries never need manual handling.
func LeavesByDay(leaves []leaveModel.Leave, periodStart, periodEnd time.Time) map[string][]leaveModel.Leave {
	byDay := make(map[string][]leaveModel.Leave)

	for _, leave := range leaves {
		day := leave.StartDate
		if day.Before(periodStart) {
			day = periodStart
		}

		last := leave.EndDate
		if last.After(periodEnd) {
			last = periodEnd
		}

		for !day.After(last) {
			key := day.Format(constant.DayFormat)
			byDay[key] = append(byDay[key], leave)
			day = day.AddDate(0, 0, 1)
		}
	}

	return byDay
}
