package dto

import (
	bookingDto "clts/internal/domains/booking/model/dto"
	"clts/internal/domains/calendar/annotate"
	leaveModel "clts/internal/domains/leave/model"
	leaveDto "clts/internal/domains/leave/model/dto"
	"clts/shared/constant"
)

// MonthTarget identifies one month, used for prev/next navigation.
type MonthTarget struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// MonthView is the complete rendering context for one calendar month. It is
// assembled once per request and never mutated afterwards.
type MonthView struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	MonthName string `json:"month_name"`

	// Weeks is a weeks x 7 grid of day numbers, Monday first; zero marks a
	// cell outside the month.
	Weeks [][]int `json:"weeks"`

	Prev MonthTarget `json:"prev"`
	Next MonthTarget `json:"next"`

	BookingsByDay map[string][]bookingDto.BookingResponse `json:"bookings_by_day"`
	LeavesByDay   map[string][]leaveDto.LeaveResponse     `json:"leaves_by_day"`

	UnavailableInstructors int `json:"unavailable_instructors"`
}

// SetBookings fills the per-day booking buckets from annotated bookings,
// keyed by ISO date, preserving input order.
func (v *MonthView) SetBookings(annotated []annotate.AnnotatedBooking) {
	v.BookingsByDay = make(map[string][]bookingDto.BookingResponse)

	for _, booking := range annotated {
		var res bookingDto.BookingResponse

		res.FromModel(booking.Booking)
		res.OnLeave = booking.OnLeave

		key := booking.BookingDate.Format(constant.DayFormat)
		v.BookingsByDay[key] = append(v.BookingsByDay[key], res)
	}
}

// SetLeaves fills the per-day leave buckets.
func (v *MonthView) SetLeaves(byDay map[string][]leaveModel.Leave) {
	v.LeavesByDay = make(map[string][]leaveDto.LeaveResponse)

	for key, leaves := range byDay {
		responses := make([]leaveDto.LeaveResponse, len(leaves))
		for i, leave := range leaves {
			responses[i].FromModel(leave)
		}

		v.LeavesByDay[key] = responses
	}
}
