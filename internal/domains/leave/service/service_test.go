package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"clts/config"
	"clts/infras/otel/mocks"
	instructorMocks "clts/internal/domains/instructor/mocks"
	instructorModel "clts/internal/domains/instructor/model"
	leaveMocks "clts/internal/domains/leave/mocks"
	leaveModel "clts/internal/domains/leave/model"
	"clts/internal/domains/leave/model/dto"
	"clts/internal/domains/leave/service"
	cacheMocks "clts/shared/cache/mocks"
	"clts/shared/constant"
	"clts/shared/failure"
)

type leaveFixture struct {
	repo        *leaveMocks.MockLeave
	instructors *instructorMocks.MockInstructor
	cache       *cacheMocks.MockRedisCache
	svc         service.Leave
}

func newLeaveFixture(t *testing.T) *leaveFixture {
	ctrl := gomock.NewController(t)

	f := &leaveFixture{
		repo:        leaveMocks.NewMockLeave(ctrl),
		instructors: instructorMocks.NewMockInstructor(ctrl),
		cache:       cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, f.instructors, cfg, f.cache, nil, mocks.NewOtel())

	return f
}

func identityContext(id, email, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, id)
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, email)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func TestLeaveService_Request(t *testing.T) {
	t.Run("instructor files for themselves and starts pending", func(t *testing.T) {
		f := newLeaveFixture(t)

		ctx := identityContext("user-1", "jdoe@campus.edu", constant.RoleInstructor)

		f.instructors.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(instructorModel.Instructor{ID: "ins-1", Email: "jdoe@campus.edu"}, nil)
		f.instructors.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)
		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, leave leaveModel.Leave) error {
				assert.Equal(t, "ins-1", leave.InstructorID)
				assert.Equal(t, constant.LeaveStatusPending, leave.Status)
				assert.Equal(t, "user-1", leave.CreatedBy)

				return nil
			})

		res, err := f.svc.Request(ctx, dto.RequestLeaveRequest{
			InstructorID: "ins-9",
			StartDate:    "2025-03-10",
			EndDate:      "2025-03-12",
			Reason:       "conference",
		})

		assert.NoError(t, err)
		assert.Equal(t, "ins-1", res.InstructorID)
		assert.Equal(t, constant.LeaveStatusPending, res.Status)
	})

	t.Run("admin files on behalf and the leave is approved immediately", func(t *testing.T) {
		f := newLeaveFixture(t)

		ctx := identityContext("admin-1", "admin@campus.edu", constant.RoleAdmin)

		f.instructors.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)
		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, leave leaveModel.Leave) error {
				assert.Equal(t, "ins-2", leave.InstructorID)
				assert.Equal(t, constant.LeaveStatusApproved, leave.Status)

				return nil
			})

		res, err := f.svc.Request(ctx, dto.RequestLeaveRequest{
			InstructorID: "ins-2",
			StartDate:    "2025-03-10",
		})

		assert.NoError(t, err)
		assert.Equal(t, constant.LeaveStatusApproved, res.Status)
	})

	t.Run("end date defaults to start date", func(t *testing.T) {
		f := newLeaveFixture(t)

		ctx := identityContext("admin-1", "admin@campus.edu", constant.RoleAdmin)

		f.instructors.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)
		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, leave leaveModel.Leave) error {
				assert.Equal(t, leave.StartDate, leave.EndDate)

				return nil
			})

		_, err := f.svc.Request(ctx, dto.RequestLeaveRequest{
			InstructorID: "ins-2",
			StartDate:    "2025-03-10",
		})

		assert.NoError(t, err)
	})

	t.Run("start after end is rejected", func(t *testing.T) {
		f := newLeaveFixture(t)

		_, err := f.svc.Request(context.Background(), dto.RequestLeaveRequest{
			InstructorID: "ins-2",
			StartDate:    "2025-03-12",
			EndDate:      "2025-03-10",
		})

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("malformed date is rejected", func(t *testing.T) {
		f := newLeaveFixture(t)

		_, err := f.svc.Request(context.Background(), dto.RequestLeaveRequest{
			InstructorID: "ins-2",
			StartDate:    "12-03-2025",
		})

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("anonymous caller without instructor id is rejected", func(t *testing.T) {
		f := newLeaveFixture(t)

		_, err := f.svc.Request(context.Background(), dto.RequestLeaveRequest{
			StartDate: "2025-03-10",
		})

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("unknown instructor yields not found", func(t *testing.T) {
		f := newLeaveFixture(t)

		ctx := identityContext("admin-1", "admin@campus.edu", constant.RoleAdmin)

		f.instructors.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		_, err := f.svc.Request(ctx, dto.RequestLeaveRequest{
			InstructorID: "ins-404",
			StartDate:    "2025-03-10",
		})

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestLeaveService_Transitions(t *testing.T) {
	ctx := identityContext("admin-1", "admin@campus.edu", constant.RoleAdmin)

	t.Run("approve moves a pending leave", func(t *testing.T) {
		f := newLeaveFixture(t)

		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)
		f.repo.EXPECT().
			UpdateWhereStatus(gomock.Any(), gomock.Any(), "leave-1", constant.LeaveStatusPending).
			DoAndReturn(func(_ context.Context, req map[string]any, _, _ string) (bool, error) {
				assert.Equal(t, constant.LeaveStatusApproved, req[leaveModel.FieldStatus])

				return true, nil
			})

		assert.NoError(t, f.svc.Approve(ctx, "leave-1"))
	})

	t.Run("reject moves a pending leave", func(t *testing.T) {
		f := newLeaveFixture(t)

		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)
		f.repo.EXPECT().
			UpdateWhereStatus(gomock.Any(), gomock.Any(), "leave-1", constant.LeaveStatusPending).
			DoAndReturn(func(_ context.Context, req map[string]any, _, _ string) (bool, error) {
				assert.Equal(t, constant.LeaveStatusRejected, req[leaveModel.FieldStatus])

				return true, nil
			})

		assert.NoError(t, f.svc.Reject(ctx, "leave-1"))
	})

	t.Run("unknown leave yields not found", func(t *testing.T) {
		f := newLeaveFixture(t)

		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := f.svc.Approve(ctx, "leave-404")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("terminal leave yields conflict", func(t *testing.T) {
		f := newLeaveFixture(t)

		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)
		f.repo.EXPECT().
			UpdateWhereStatus(gomock.Any(), gomock.Any(), "leave-1", constant.LeaveStatusPending).
			Return(false, nil)

		err := f.svc.Reject(ctx, "leave-1")

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})
}

func TestLeaveService_Get(t *testing.T) {
	t.Run("returns the leave", func(t *testing.T) {
		f := newLeaveFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(leaveModel.Leave{ID: "leave-1", InstructorID: "ins-1", Status: constant.LeaveStatusPending}, nil)

		res, err := f.svc.Get(context.Background(), "leave-1")

		assert.NoError(t, err)
		assert.Equal(t, "leave-1", res.ID)
	})

	t.Run("missing leave yields not found", func(t *testing.T) {
		f := newLeaveFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(leaveModel.Leave{}, nil)

		_, err := f.svc.Get(context.Background(), "leave-404")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}
