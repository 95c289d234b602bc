package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"clts/config"
	"clts/infras/otel/mocks"
	bookingMocks "clts/internal/domains/booking/mocks"
	"clts/internal/domains/booking/model"
	"clts/internal/domains/booking/model/dto"
	"clts/internal/domains/booking/service"
	cacheMocks "clts/shared/cache/mocks"
	"clts/shared/constant"
	"clts/shared/failure"
)

type bookingFixture struct {
	repo  *bookingMocks.MockBooking
	cache *cacheMocks.MockRedisCache
	svc   service.Booking
}

func newBookingFixture(t *testing.T) *bookingFixture {
	ctrl := gomock.NewController(t)

	f := &bookingFixture{
		repo:  bookingMocks.NewMockBooking(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, cfg, f.cache, nil, mocks.NewOtel())

	return f
}

func TestBookingService_Get(t *testing.T) {
	t.Run("returns the booking", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "booking-1", LabID: "lab-1"}, nil)

		res, err := f.svc.Get(context.Background(), "booking-1")

		assert.NoError(t, err)
		assert.Equal(t, "booking-1", res.ID)
		assert.Equal(t, "lab-1", res.LabID)
	})

	t.Run("missing booking yields not found", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{}, nil)

		_, err := f.svc.Get(context.Background(), "booking-404")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestBookingService_Cancel(t *testing.T) {
	t.Run("flips the status to cancelled", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req map[string]any, _ any) error {
				assert.Equal(t, constant.BookingStatusCancelled, req[model.FieldStatus])

				return nil
			})

		assert.NoError(t, f.svc.Cancel(context.Background(), "booking-1"))
	})

	t.Run("missing booking yields not found", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := f.svc.Cancel(context.Background(), "booking-404")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestBookingService_Update(t *testing.T) {
	t.Run("empty request is rejected", func(t *testing.T) {
		f := newBookingFixture(t)

		err := f.svc.Update(context.Background(), dto.UpdateBookingRequest{}, "booking-1")

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("malformed time is rejected before the write", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		err := f.svc.Update(context.Background(), dto.UpdateBookingRequest{StartTime: "9am"}, "booking-1")

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("reschedules one occurrence", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req map[string]any, _ any) error {
				assert.Contains(t, req, model.FieldBookingDate)
				assert.Contains(t, req, model.FieldStartTime)
				assert.Contains(t, req, model.FieldEndTime)

				return nil
			})

		err := f.svc.Update(context.Background(), dto.UpdateBookingRequest{
			BookingDate: "2025-03-17",
			StartTime:   "13:00",
			EndTime:     "15:00",
		}, "booking-1")

		assert.NoError(t, err)
	})
}
