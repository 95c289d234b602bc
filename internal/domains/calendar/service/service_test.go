package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"clts/config"
	"clts/infras/otel/mocks"
	bookingMocks "clts/internal/domains/booking/mocks"
	bookingModel "clts/internal/domains/booking/model"
	"clts/internal/domains/calendar/service"
	leaveMocks "clts/internal/domains/leave/mocks"
	leaveModel "clts/internal/domains/leave/model"
	cacheMocks "clts/shared/cache/mocks"
)

type calendarFixture struct {
	bookings *bookingMocks.MockBooking
	leaves   *leaveMocks.MockLeave
	cache    *cacheMocks.MockRedisCache
	svc      service.Calendar
}

func newCalendarFixture(t *testing.T) *calendarFixture {
	ctrl := gomock.NewController(t)

	f := &calendarFixture{
		bookings: bookingMocks.NewMockBooking(ctrl),
		leaves:   leaveMocks.NewMockLeave(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.bookings, f.leaves, cfg, f.cache, mocks.NewOtel())

	return f
}

func day(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.Parse("2006-01-02", value)
	assert.NoError(t, err)

	return parsed
}

func TestCalendarService_BuildMonth(t *testing.T) {
	t.Run("builds the grid and navigation", func(t *testing.T) {
		f := newCalendarFixture(t)

		f.bookings.EXPECT().
			GetForRange(gomock.Any(), day(t, "2025-03-01"), day(t, "2025-03-31")).
			Return(nil, nil)
		f.leaves.EXPECT().
			GetApprovedForRange(gomock.Any(), day(t, "2025-03-01"), day(t, "2025-03-31")).
			Return(nil, nil)

		view, err := f.svc.BuildMonth(context.Background(), 2025, 3)

		assert.NoError(t, err)
		assert.Equal(t, 2025, view.Year)
		assert.Equal(t, 3, view.Month)
		assert.Equal(t, "March", view.MonthName)
		assert.Equal(t, 2025, view.Prev.Year)
		assert.Equal(t, 2, view.Prev.Month)
		assert.Equal(t, 2025, view.Next.Year)
		assert.Equal(t, 4, view.Next.Month)

		// March 2025 starts on a Saturday: five leading blanks, six weeks.
		assert.Len(t, view.Weeks, 6)

		for _, week := range view.Weeks {
			assert.Len(t, week, 7)
		}

		assert.Equal(t, []int{0, 0, 0, 0, 0, 1, 2}, view.Weeks[0])
		assert.Equal(t, 31, view.Weeks[5][0])
	})

	t.Run("month thirteen rolls into january", func(t *testing.T) {
		f := newCalendarFixture(t)

		f.bookings.EXPECT().
			GetForRange(gomock.Any(), day(t, "2026-01-01"), day(t, "2026-01-31")).
			Return(nil, nil)
		f.leaves.EXPECT().
			GetApprovedForRange(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil)

		view, err := f.svc.BuildMonth(context.Background(), 2025, 13)

		assert.NoError(t, err)
		assert.Equal(t, 2026, view.Year)
		assert.Equal(t, 1, view.Month)
	})

	t.Run("month zero rolls into previous december", func(t *testing.T) {
		f := newCalendarFixture(t)

		f.bookings.EXPECT().
			GetForRange(gomock.Any(), day(t, "2024-12-01"), day(t, "2024-12-31")).
			Return(nil, nil)
		f.leaves.EXPECT().
			GetApprovedForRange(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil)

		view, err := f.svc.BuildMonth(context.Background(), 2025, 0)

		assert.NoError(t, err)
		assert.Equal(t, 2024, view.Year)
		assert.Equal(t, 12, view.Month)
	})

	t.Run("groups bookings and counts unavailable instructors", func(t *testing.T) {
		f := newCalendarFixture(t)

		bookings := []bookingModel.Booking{
			{ID: "b1", InstructorID: "ins-1", BookingDate: day(t, "2025-03-10"), StartTime: clock(t, "09:00"), EndTime: clock(t, "10:00")},
			{ID: "b2", InstructorID: "ins-1", BookingDate: day(t, "2025-03-10"), StartTime: clock(t, "10:00"), EndTime: clock(t, "11:00")},
			{ID: "b3", InstructorID: "ins-2", BookingDate: day(t, "2025-03-11"), StartTime: clock(t, "09:00"), EndTime: clock(t, "10:00")},
		}
		leaves := []leaveModel.Leave{
			{ID: "l1", InstructorID: "ins-1", StartDate: day(t, "2025-03-09"), EndDate: day(t, "2025-03-10"), Status: "APPROVED"},
		}

		f.bookings.EXPECT().
			GetForRange(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(bookings, nil)
		f.leaves.EXPECT().
			GetApprovedForRange(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(leaves, nil)

		view, err := f.svc.BuildMonth(context.Background(), 2025, 3)

		assert.NoError(t, err)
		assert.Len(t, view.BookingsByDay["2025-03-10"], 2)
		assert.Len(t, view.BookingsByDay["2025-03-11"], 1)
		assert.True(t, view.BookingsByDay["2025-03-10"][0].OnLeave)
		assert.False(t, view.BookingsByDay["2025-03-11"][0].OnLeave)
		assert.Len(t, view.LeavesByDay["2025-03-09"], 1)
		assert.Len(t, view.LeavesByDay["2025-03-10"], 1)
		assert.Equal(t, 1, view.UnavailableInstructors)
	})

	t.Run("booking read failure surfaces", func(t *testing.T) {
		f := newCalendarFixture(t)

		f.bookings.EXPECT().
			GetForRange(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("database error"))

		_, err := f.svc.BuildMonth(context.Background(), 2025, 3)

		assert.Error(t, err)
	})
}

func clock(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.Parse("15:04", value)
	assert.NoError(t, err)

	return parsed
}
