package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"clts/config"
	"clts/infras/kafka"
	"clts/infras/otel"
	instructorModel "clts/internal/domains/instructor/model"
	instructorRepo "clts/internal/domains/instructor/repository"
	"clts/internal/domains/leave/model"
	"clts/internal/domains/leave/model/dto"
	"clts/internal/domains/leave/repository"
	"clts/shared"
	"clts/shared/cache"
	"clts/shared/constant"
	gDto "clts/shared/dto"
	"clts/shared/failure"
	gModel "clts/shared/model"
	"clts/shared/timezone"
)

const (
	cacheGetLeave    = "leave:get"
	cacheGetAllLeave = "leave:gets"
	cacheCountLeave  = "leave:count"
	cacheMonthView   = "calendar:month"

	eventLeaveRequested = "leave.requested"
	eventLeaveApproved  = "leave.approved"
	eventLeaveRejected  = "leave.rejected"
)

type Leave interface {
	// Request files a leave. Instructors file for themselves and start in
	// PENDING; admins may file on behalf of anyone and the leave is APPROVED
	// immediately.
	Request(ctx context.Context, req dto.RequestLeaveRequest) (dto.LeaveResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetLeavesResponse, error)
	Count(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.LeaveResponse, error)
	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo        repository.Leave
	instructors instructorRepo.Instructor
	cfg         *config.Config
	cache       cache.RedisCache
	events      kafka.Client
	otel        otel.Otel
}

func New(
	repo repository.Leave,
	instructors instructorRepo.Instructor,
	cfg *config.Config,
	cache cache.RedisCache,
	events kafka.Client,
	otel otel.Otel,
) Leave {
	return &serviceImpl{
		repo:        repo,
		instructors: instructors,
		cfg:         cfg,
		cache:       cache,
		events:      events,
		otel:        otel,
	}
}

func (s *serviceImpl) Request(ctx context.Context, req dto.RequestLeaveRequest) (res dto.LeaveResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".leave.Request")
	defer scope.End()
	defer scope.TraceIfError(err)

	start, end, err := req.ParseRange()
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) //nolint:wrapcheck
	}

	if start.After(end) {
		return res, failure.BadRequestFromString("start date must not be after end date") //nolint:wrapcheck
	}

	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	privileged := role == constant.RoleAdmin || role == constant.RoleSuperAdmin

	status := constant.LeaveStatusPending
	if privileged {
		status = constant.LeaveStatusApproved
	}

	// Non-privileged callers always file for themselves, whatever the
	// request body says.
	instructorID := req.InstructorID
	if !privileged || instructorID == constant.Empty {
		callerID, callerErr := s.callerInstructorID(ctx)
		if callerErr != nil {
			return res, callerErr
		}

		instructorID = callerID
	}

	exists, err := s.instructors.Exist(ctx, shared.FilterByID(instructorID, instructorModel.FieldID, instructorModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if instructor exists")

		return res, fmt.Errorf("failed to check if instructor exists: %w", err)
	}

	if !exists {
		return res, failure.NotFound("instructor not found") //nolint:wrapcheck
	}

	leave := model.Leave{
		ID:           uuid.NewString(),
		InstructorID: instructorID,
		StartDate:    start,
		EndDate:      end,
		Status:       status,
		Reason:       req.Reason,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	if err = s.repo.Insert(ctx, leave); err != nil {
		log.Error().Err(err).Msg("failed to create leave")

		return res, fmt.Errorf("failed to create leave: %w", err)
	}

	res.FromModel(leave)

	s.invalidate(ctx, leave.ID)
	s.publish(ctx, eventLeaveRequested, leave.ID, instructorID)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetLeavesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".leave.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllLeave, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	total, err := s.Count(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count leaves")

		return res, fmt.Errorf("failed to count leaves: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get leaves")

		return res, fmt.Errorf("failed to get leaves: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save leaves to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".leave.Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountLeave, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count leaves")

		return res, fmt.Errorf("failed to count leaves: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save leave count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.LeaveResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".leave.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetLeave, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	leave, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get leave")

		return res, fmt.Errorf("failed to get leave: %w", err)
	}

	if leave.ID == constant.Empty {
		return res, failure.NotFound("leave not found") //nolint:wrapcheck
	}

	res.FromModel(leave)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save leave to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Approve(ctx context.Context, id string) error {
	return s.transition(ctx, id, constant.LeaveStatusApproved, eventLeaveApproved)
}

func (s *serviceImpl) Reject(ctx context.Context, id string) error {
	return s.transition(ctx, id, constant.LeaveStatusRejected, eventLeaveRejected)
}

// transition moves a PENDING leave to its terminal status. Approved and
// rejected leaves are final; a second transition reports conflict.
func (s *serviceImpl) transition(ctx context.Context, id, toStatus, event string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".leave.transition")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if leave exists")

		return fmt.Errorf("failed to check if leave exists: %w", err)
	}

	if !exist {
		return failure.NotFound("leave not found") //nolint:wrapcheck
	}

	updatedFields := map[string]any{
		model.FieldStatus:        toStatus,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	touched, err := s.repo.UpdateWhereStatus(ctx, updatedFields, id, constant.LeaveStatusPending)
	if err != nil {
		log.Error().Err(err).Msg("failed to transition leave")

		return fmt.Errorf("failed to transition leave: %w", err)
	}

	if !touched {
		return failure.Conflict("only pending leaves can be approved or rejected") //nolint:wrapcheck
	}

	s.invalidate(ctx, id)
	s.publish(ctx, event, id, constant.Empty)

	return nil
}

// callerInstructorID resolves the acting user to an instructor row by email.
func (s *serviceImpl) callerInstructorID(ctx context.Context) (string, error) {
	email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	if email == constant.Empty {
		return constant.Empty, failure.BadRequestFromString("instructor_id is required") //nolint:wrapcheck
	}

	instructor, err := s.instructors.Get(ctx, shared.FilterByID(email, instructorModel.FieldEmail, instructorModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve caller instructor")

		return constant.Empty, fmt.Errorf("failed to resolve caller instructor: %w", err)
	}

	if instructor.ID == constant.Empty {
		return constant.Empty, failure.NotFound("instructor not found") //nolint:wrapcheck
	}

	return instructor.ID, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetLeave, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete leave from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllLeave)
		shared.InvalidateCaches(c, s.cache, cacheCountLeave)
		shared.InvalidateCaches(c, s.cache, cacheMonthView)
	}()
}

func (s *serviceImpl) publish(ctx context.Context, event, leaveID, instructorID string) {
	if s.events == nil {
		return
	}

	go func() {
		c := context.WithoutCancel(ctx)

		value := map[string]any{
			"event":    event,
			"leave_id": leaveID,
		}

		if instructorID != constant.Empty {
			value["instructor_id"] = instructorID
		}

		message := kafka.Message{
			Key:   leaveID,
			Value: value,
		}

		if err := s.events.SendMessages(c, s.cfg.Kafka.Topic.LeaveEvents, message); err != nil {
			log.Error().Err(err).Str("event", event).Msg("failed to publish leave event")
		}
	}()
}
