package annotate_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	bookingModel "clts/internal/domains/booking/model"
	"clts/internal/domains/calendar/annotate"
	leaveModel "clts/internal/domains/leave/model"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.Parse("2006-01-02", value)
	assert.NoError(t, err)

	return parsed
}

func TestConflicts(t *testing.T) {
	bookings := []bookingModel.Booking{
		{ID: "b1", InstructorID: "ins-1", BookingDate: day(t, "2025-03-10")},
		{ID: "b2", InstructorID: "ins-2", BookingDate: day(t, "2025-03-10")},
		{ID: "b3", InstructorID: "ins-1", BookingDate: day(t, "2025-03-20")},
	}

	t.Run("flags bookings inside an approved leave", func(t *testing.T) {
		leaves := []leaveModel.Leave{
			{InstructorID: "ins-1", StartDate: day(t, "2025-03-08"), EndDate: day(t, "2025-03-12"), Status: "APPROVED"},
		}

		annotated, affected := annotate.Conflicts(bookings, leaves)

		assert.Len(t, annotated, 3)
		assert.True(t, annotated[0].OnLeave)
		assert.False(t, annotated[1].OnLeave)
		assert.False(t, annotated[2].OnLeave)
		assert.Equal(t, map[string]bool{"ins-1": true}, affected)
	})

	t.Run("leave boundaries are inclusive", func(t *testing.T) {
		leaves := []leaveModel.Leave{
			{InstructorID: "ins-1", StartDate: day(t, "2025-03-10"), EndDate: day(t, "2025-03-10"), Status: "APPROVED"},
		}

		annotated, _ := annotate.Conflicts(bookings, leaves)

		assert.True(t, annotated[0].OnLeave)
		assert.False(t, annotated[2].OnLeave)
	})

	t.Run("non approved leave never flags", func(t *testing.T) {
		for _, status := range []string{"PENDING", "REJECTED"} {
			leaves := []leaveModel.Leave{
				{InstructorID: "ins-1", StartDate: day(t, "2025-03-08"), EndDate: day(t, "2025-03-12"), Status: status},
			}

			annotated, affected := annotate.Conflicts(bookings, leaves)

			assert.False(t, annotated[0].OnLeave, status)
			assert.Empty(t, affected, status)
		}
	})

	t.Run("leave of another instructor never flags", func(t *testing.T) {
		leaves := []leaveModel.Leave{
			{InstructorID: "ins-9", StartDate: day(t, "2025-03-01"), EndDate: day(t, "2025-03-31"), Status: "APPROVED"},
		}

		annotated, affected := annotate.Conflicts(bookings, leaves)

		for _, booking := range annotated {
			assert.False(t, booking.OnLeave)
		}

		assert.Empty(t, affected)
	})

	t.Run("inputs stay untouched", func(t *testing.T) {
		leaves := []leaveModel.Leave{
			{InstructorID: "ins-1", StartDate: day(t, "2025-03-08"), EndDate: day(t, "2025-03-12"), Status: "APPROVED"},
		}

		_, _ = annotate.Conflicts(bookings, leaves)

		assert.Equal(t, "b1", bookings[0].ID)
	})
}

func TestLeavesByDay(t *testing.T) {
	periodStart := day(t, "2025-03-01")
	periodEnd := day(t, "2025-03-31")

	t.Run("explodes a range into per day buckets", func(t *testing.T) {
		leaves := []leaveModel.Leave{
			{ID: "l1", InstructorID: "ins-1", StartDate: day(t, "2025-03-10"), EndDate: day(t, "2025-03-12"), Status: "APPROVED"},
		}

		byDay := annotate.LeavesByDay(leaves, periodStart, periodEnd)

		assert.Len(t, byDay, 3)
		assert.Len(t, byDay["2025-03-10"], 1)
		assert.Len(t, byDay["2025-03-11"], 1)
		assert.Len(t, byDay["2025-03-12"], 1)
	})

	t.Run("clamps to the period", func(t *testing.T) {
		leaves := []leaveModel.Leave{
			{ID: "l1", InstructorID: "ins-1", StartDate: day(t, "2025-02-26"), EndDate: day(t, "2025-03-02"), Status: "APPROVED"},
			{ID: "l2", InstructorID: "ins-2", StartDate: day(t, "2025-03-30"), EndDate: day(t, "2025-04-05"), Status: "APPROVED"},
		}

		byDay := annotate.LeavesByDay(leaves, periodStart, periodEnd)

		assert.Len(t, byDay, 4)
		assert.Contains(t, byDay, "2025-03-01")
		assert.Contains(t, byDay, "2025-03-02")
		assert.Contains(t, byDay, "2025-03-30")
		assert.Contains(t, byDay, "2025-03-31")
		assert.NotContains(t, byDay, "2025-02-28")
		assert.NotContains(t, byDay, "2025-04-01")
	})

	t.Run("overlapping leaves stack in one bucket", func(t *testing.T) {
		leaves := []leaveModel.Leave{
			{ID: "l1", InstructorID: "ins-1", StartDate: day(t, "2025-03-10"), EndDate: day(t, "2025-03-10"), Status: "APPROVED"},
			{ID: "l2", InstructorID: "ins-2", StartDate: day(t, "2025-03-10"), EndDate: day(t, "2025-03-11"), Status: "APPROVED"},
		}

		byDay := annotate.LeavesByDay(leaves, periodStart, periodEnd)

		assert.Len(t, byDay["2025-03-10"], 2)
		assert.Len(t, byDay["2025-03-11"], 1)
	})
}
