package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"clts/config"
	"clts/infras/otel/mocks"
	bookingMocks "clts/internal/domains/booking/mocks"
	bookingModel "clts/internal/domains/booking/model"
	bookingDto "clts/internal/domains/booking/model/dto"
	moduleMocks "clts/internal/domains/coursemodule/mocks"
	instructorMocks "clts/internal/domains/instructor/mocks"
	labMocks "clts/internal/domains/lab/mocks"
	"clts/internal/domains/scheduling/service"
	cacheMocks "clts/shared/cache/mocks"
	"clts/shared/failure"
)

type schedulingFixture struct {
	bookings    *bookingMocks.MockBooking
	labs        *labMocks.MockLab
	instructors *instructorMocks.MockInstructor
	modules     *moduleMocks.MockModule
	cache       *cacheMocks.MockRedisCache
	svc         service.Scheduling
}

func newSchedulingFixture(t *testing.T) *schedulingFixture {
	ctrl := gomock.NewController(t)

	f := &schedulingFixture{
		bookings:    bookingMocks.NewMockBooking(ctrl),
		labs:        labMocks.NewMockLab(ctrl),
		instructors: instructorMocks.NewMockInstructor(ctrl),
		modules:     moduleMocks.NewMockModule(ctrl),
		cache:       cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.bookings, f.labs, f.instructors, f.modules, cfg, f.cache, nil, mocks.NewOtel())

	return f
}

func (f *schedulingFixture) expectReferencesExist() {
	f.labs.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	f.instructors.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	f.modules.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
}

func validRequest() bookingDto.CreateBookingRequest {
	return bookingDto.CreateBookingRequest{
		LabID:         "11111111-1111-1111-1111-111111111111",
		InstructorID:  "22222222-2222-2222-2222-222222222222",
		ModuleCode:    "CS101",
		PracticalName: "Practical 1",
		BookingDate:   "2025-03-03",
		StartTime:     "09:00",
		EndTime:       "11:00",
	}
}

func mustClock(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.Parse("15:04", value)
	assert.NoError(t, err)

	return parsed
}

func mustDay(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.Parse("2006-01-02", value)
	assert.NoError(t, err)

	return parsed
}

func TestSchedulingService_CheckHardConflicts(t *testing.T) {
	t.Run("free slot inside operating hours", func(t *testing.T) {
		f := newSchedulingFixture(t)

		f.bookings.EXPECT().
			GetForLabDay(gomock.Any(), "lab-1", mustDay(t, "2025-03-03")).
			Return(nil, nil)

		reasons, err := f.svc.CheckHardConflicts(context.Background(), "lab-1", "ins-1", mustDay(t, "2025-03-03"), mustClock(t, "09:00"), mustClock(t, "11:00"))

		assert.NoError(t, err)
		assert.Empty(t, reasons)
	})

	t.Run("outside operating hours", func(t *testing.T) {
		f := newSchedulingFixture(t)

		f.bookings.EXPECT().
			GetForLabDay(gomock.Any(), "lab-1", gomock.Any()).
			Return(nil, nil)

		reasons, err := f.svc.CheckHardConflicts(context.Background(), "lab-1", "ins-1", mustDay(t, "2025-03-03"), mustClock(t, "07:00"), mustClock(t, "09:00"))

		assert.NoError(t, err)
		assert.Len(t, reasons, 1)
		assert.Equal(t, service.ReasonOutsideHours, reasons[0].Rule)
		assert.Equal(t, "08:00-17:00", reasons[0].Detail)
	})

	t.Run("lab collision cites the existing interval", func(t *testing.T) {
		f := newSchedulingFixture(t)

		f.bookings.EXPECT().
			GetForLabDay(gomock.Any(), "lab-1", gomock.Any()).
			Return([]bookingModel.Booking{
				{ID: "other", StartTime: mustClock(t, "09:00"), EndTime: mustClock(t, "10:00")},
			}, nil)

		reasons, err := f.svc.CheckHardConflicts(context.Background(), "lab-1", "ins-1", mustDay(t, "2025-03-03"), mustClock(t, "09:30"), mustClock(t, "10:30"))

		assert.NoError(t, err)
		assert.Len(t, reasons, 1)
		assert.Equal(t, service.ReasonLabCollision, reasons[0].Rule)
		assert.Equal(t, "09:00-10:00", reasons[0].Detail)
	})

	t.Run("both rules accumulate", func(t *testing.T) {
		f := newSchedulingFixture(t)

		f.bookings.EXPECT().
			GetForLabDay(gomock.Any(), "lab-1", gomock.Any()).
			Return([]bookingModel.Booking{
				{ID: "other", StartTime: mustClock(t, "07:00"), EndTime: mustClock(t, "09:00")},
			}, nil)

		reasons, err := f.svc.CheckHardConflicts(context.Background(), "lab-1", "ins-1", mustDay(t, "2025-03-03"), mustClock(t, "07:00"), mustClock(t, "08:30"))

		assert.NoError(t, err)
		assert.Len(t, reasons, 2)
	})
}

func TestSchedulingService_CreateSeries_Validation(t *testing.T) {
	t.Run("end before start", func(t *testing.T) {
		f := newSchedulingFixture(t)

		req := validRequest()
		req.StartTime = "11:00"
		req.EndTime = "09:00"

		_, err := f.svc.CreateSeries(context.Background(), req)

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("malformed date", func(t *testing.T) {
		f := newSchedulingFixture(t)

		req := validRequest()
		req.BookingDate = "03/03/2025"

		_, err := f.svc.CreateSeries(context.Background(), req)

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("repeat until equal to first date", func(t *testing.T) {
		f := newSchedulingFixture(t)

		req := validRequest()
		req.Recurring = true
		req.RepeatUntil = req.BookingDate

		_, err := f.svc.CreateSeries(context.Background(), req)

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
		assert.Contains(t, err.Error(), "repeat date must be after start date")
	})

	t.Run("unknown lab", func(t *testing.T) {
		f := newSchedulingFixture(t)

		f.labs.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := f.svc.CreateSeries(context.Background(), validRequest())

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestSchedulingService_CreateSeries(t *testing.T) {
	t.Run("single booking has no series id", func(t *testing.T) {
		f := newSchedulingFixture(t)
		f.expectReferencesExist()

		f.bookings.EXPECT().
			GetForLabDay(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil)

		f.bookings.EXPECT().
			InsertSeries(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, occurrences []bookingModel.Booking) error {
				assert.Len(t, occurrences, 1)
				assert.Nil(t, occurrences[0].SeriesID)
				assert.Equal(t, "APPROVED", occurrences[0].Status)

				return nil
			})

		res, err := f.svc.CreateSeries(context.Background(), validRequest())

		assert.NoError(t, err)
		assert.Equal(t, 1, res.CreatedCount)
		assert.Empty(t, res.SeriesID)
	})

	t.Run("weekly series shares one series id", func(t *testing.T) {
		f := newSchedulingFixture(t)
		f.expectReferencesExist()

		f.bookings.EXPECT().
			GetForLabDay(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil).
			Times(3)

		f.bookings.EXPECT().
			InsertSeries(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, occurrences []bookingModel.Booking) error {
				assert.Len(t, occurrences, 3)
				assert.NotNil(t, occurrences[0].SeriesID)

				for _, occurrence := range occurrences {
					assert.Equal(t, *occurrences[0].SeriesID, *occurrence.SeriesID)
				}

				assert.Equal(t, mustDay(t, "2025-03-03"), occurrences[0].BookingDate)
				assert.Equal(t, mustDay(t, "2025-03-10"), occurrences[1].BookingDate)
				assert.Equal(t, mustDay(t, "2025-03-17"), occurrences[2].BookingDate)

				return nil
			})

		req := validRequest()
		req.Recurring = true
		req.RepeatUntil = "2025-03-17"

		res, err := f.svc.CreateSeries(context.Background(), req)

		assert.NoError(t, err)
		assert.Equal(t, 3, res.CreatedCount)
		assert.NotEmpty(t, res.SeriesID)
	})

	t.Run("conflict on a later occurrence writes nothing", func(t *testing.T) {
		f := newSchedulingFixture(t)
		f.expectReferencesExist()

		gomock.InOrder(
			f.bookings.EXPECT().
				GetForLabDay(gomock.Any(), gomock.Any(), mustDay(t, "2025-03-03")).
				Return(nil, nil),
			f.bookings.EXPECT().
				GetForLabDay(gomock.Any(), gomock.Any(), mustDay(t, "2025-03-10")).
				Return(nil, nil),
			f.bookings.EXPECT().
				GetForLabDay(gomock.Any(), gomock.Any(), mustDay(t, "2025-03-17")).
				Return([]bookingModel.Booking{
					{ID: "other", StartTime: mustClock(t, "09:00"), EndTime: mustClock(t, "10:00")},
				}, nil),
		)

		req := validRequest()
		req.Recurring = true
		req.RepeatUntil = "2025-03-17"

		_, err := f.svc.CreateSeries(context.Background(), req)

		var conflict *service.ConflictError

		assert.Error(t, err)
		assert.ErrorAs(t, err, &conflict)
		assert.Equal(t, "2025-03-17", conflict.Date)
		assert.Contains(t, conflict.Reason, "09:00-10:00")
	})

	t.Run("constraint violation at commit reports a conflict", func(t *testing.T) {
		f := newSchedulingFixture(t)
		f.expectReferencesExist()

		f.bookings.EXPECT().
			GetForLabDay(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil)

		f.bookings.EXPECT().
			InsertSeries(gomock.Any(), gomock.Any()).
			Return(&pq.Error{Code: "23P01"})

		_, err := f.svc.CreateSeries(context.Background(), validRequest())

		var conflict *service.ConflictError

		assert.Error(t, err)
		assert.ErrorAs(t, err, &conflict)
		assert.Equal(t, "2025-03-03", conflict.Date)
	})

	t.Run("unrelated storage error is not a conflict", func(t *testing.T) {
		f := newSchedulingFixture(t)
		f.expectReferencesExist()

		f.bookings.EXPECT().
			GetForLabDay(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil)

		f.bookings.EXPECT().
			InsertSeries(gomock.Any(), gomock.Any()).
			Return(errors.New("connection reset"))

		_, err := f.svc.CreateSeries(context.Background(), validRequest())

		var conflict *service.ConflictError

		assert.Error(t, err)
		assert.False(t, errors.As(err, &conflict))
	})
}
