package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"clts/config"
	"clts/infras/kafka"
	"clts/infras/otel"
	bookingModel "clts/internal/domains/booking/model"
	"clts/internal/domains/booking/model/dto"
	bookingRepo "clts/internal/domains/booking/repository"
	moduleModel "clts/internal/domains/coursemodule/model"
	moduleRepo "clts/internal/domains/coursemodule/repository"
	instructorModel "clts/internal/domains/instructor/model"
	instructorRepo "clts/internal/domains/instructor/repository"
	labModel "clts/internal/domains/lab/model"
	labRepo "clts/internal/domains/lab/repository"
	"clts/shared"
	"clts/shared/cache"
	"clts/shared/constant"
	"clts/shared/failure"
	gModel "clts/shared/model"
	"clts/shared/timezone"
)

const (
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
	cacheMonthView     = "calendar:month"

	eventSeriesCreated = "booking.series.created"

	// Hours fall back to the standard lab window when unset in config.
	defaultOpenClock  = "08:00"
	defaultCloseClock = "17:00"
)

const (
	ReasonOutsideHours = "outside operating hours"
	ReasonLabCollision = "lab collision"
)

// ConflictReason is one violated hard constraint. Detail carries the colliding
// interval for lab collisions.
type ConflictReason struct {
	Rule   string `json:"rule"`
	Detail string `json:"detail"`
}

func (r ConflictReason) String() string {
	if r.Detail == "" {
		return r.Rule
	}

	return fmt.Sprintf("%s: %s", r.Rule, r.Detail)
}

// ConflictError rejects a whole create request, naming the first failing date.
type ConflictError struct {
	Date   string
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict on %s: %s (series cancelled)", e.Date, e.Reason)
}

// Scheduling validates and creates bookings. Checks are read-only and
// idempotent; creation is all-or-nothing across a series.
type Scheduling interface {
	// CheckHardConflicts evaluates every hard rule for one candidate slot and
	// returns all violations, not just the first. An empty slice means the
	// slot is bookable. Instructor double-booking across labs is deliberately
	// not a hard rule.
	CheckHardConflicts(ctx context.Context, labID, instructorID string, date, start, end time.Time) ([]ConflictReason, error)
	// CreateSeries expands, validates and commits a booking request. It
	// returns the number of occurrences created, or a *ConflictError when any
	// occurrence date fails validation (in which case nothing was written).
	CreateSeries(ctx context.Context, req dto.CreateBookingRequest) (dto.CreateSeriesResponse, error)
}

type serviceImpl struct {
	bookings    bookingRepo.Booking
	labs        labRepo.Lab
	instructors instructorRepo.Instructor
	modules     moduleRepo.Module
	cfg         *config.Config
	cache       cache.RedisCache
	events      kafka.Client
	otel        otel.Otel
}

func New(
	bookings bookingRepo.Booking,
	labs labRepo.Lab,
	instructors instructorRepo.Instructor,
	modules moduleRepo.Module,
	cfg *config.Config,
	cache cache.RedisCache,
	events kafka.Client,
	otel otel.Otel,
) Scheduling {
	return &serviceImpl{
		bookings:    bookings,
		labs:        labs,
		instructors: instructors,
		modules:     modules,
		cfg:         cfg,
		cache:       cache,
		events:      events,
		otel:        otel,
	}
}

func (s *serviceImpl) CheckHardConflicts(ctx context.Context, labID, _ string, date, start, end time.Time) (reasons []ConflictReason, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".scheduling.CheckHardConflicts")
	defer scope.End()
	defer scope.TraceIfError(err)

	open, close := s.operatingWindow()

	if clock(start) < open || clock(end) > close {
		reasons = append(reasons, ConflictReason{
			Rule:   ReasonOutsideHours,
			Detail: fmt.Sprintf("%s-%s", s.openClock(), s.closeClock()),
		})
	}

	existing, err := s.bookings.GetForLabDay(ctx, labID, date)
	if err != nil {
		log.Error().Err(err).Str("labID", labID).Msg("failed to load lab day bookings")

		return nil, fmt.Errorf("failed to load lab day bookings: %w", err)
	}

	if collision := collidingBooking(existing, start, end); collision != nil {
		reasons = append(reasons, ConflictReason{
			Rule:   ReasonLabCollision,
			Detail: collision.Interval(),
		})
	}

	return reasons, nil
}

func (s *serviceImpl) CreateSeries(ctx context.Context, req dto.CreateBookingRequest) (res dto.CreateSeriesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".scheduling.CreateSeries")
	defer scope.End()
	defer scope.TraceIfError(err)

	firstDate, start, end, err := req.ParseSchedule()
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", err)) //nolint:wrapcheck
	}

	if clock(end) <= clock(start) {
		return res, failure.BadRequestFromString("end time must be after start time") //nolint:wrapcheck
	}

	dates := []time.Time{firstDate}

	if req.Recurring && req.RepeatUntil != "" {
		repeatUntil, parseErr := time.Parse(constant.DayFormat, req.RepeatUntil)
		if parseErr != nil {
			return res, failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", parseErr)) //nolint:wrapcheck
		}

		if !repeatUntil.After(firstDate) {
			return res, failure.BadRequestFromString("repeat date must be after start date") //nolint:wrapcheck
		}

		dates = expandWeekly(firstDate, repeatUntil)
	}

	if err = s.checkReferences(ctx, req); err != nil {
		return res, err
	}

	// Validate every occurrence before writing anything. The first failing
	// date aborts the whole request.
	for _, date := range dates {
		reasons, checkErr := s.CheckHardConflicts(ctx, req.LabID, req.InstructorID, date, start, end)
		if checkErr != nil {
			return res, checkErr
		}

		if len(reasons) > 0 {
			return res, &ConflictError{
				Date:   date.Format(constant.DayFormat),
				Reason: reasons[0].String(),
			}
		}
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var seriesID *string

	if len(dates) > 1 {
		id := uuid.NewString()
		seriesID = &id
	}

	occurrences := make([]bookingModel.Booking, len(dates))
	for i, date := range dates {
		occurrences[i] = bookingModel.Booking{
			ID:            uuid.NewString(),
			SeriesID:      seriesID,
			LabID:         req.LabID,
			InstructorID:  req.InstructorID,
			ModuleCode:    req.ModuleCode,
			PracticalName: req.PracticalName,
			BookingDate:   date,
			StartTime:     start,
			EndTime:       end,
			Status:        constant.BookingStatusApproved,
			Purpose:       req.Purpose,
			Metadata: gModel.Metadata{
				CreatedAt:  timezone.Now(),
				ModifiedAt: timezone.Now(),
				CreatedBy:  user,
				ModifiedBy: user,
			},
		}
	}

	// The exclusion constraint is the authoritative overlap guard; a
	// concurrent writer that slips past the pre-check surfaces here and is
	// reported exactly like a pre-check rejection. The transaction has
	// already rolled back whole.
	if err = s.bookings.InsertSeries(ctx, occurrences); err != nil {
		if conflict := asConstraintConflict(err, dates); conflict != nil {
			return res, conflict
		}

		log.Error().Err(err).Msg("failed to create booking series")

		return res, fmt.Errorf("failed to create booking series: %w", err)
	}

	res.CreatedCount = len(occurrences)
	if seriesID != nil {
		res.SeriesID = *seriesID
	}

	s.invalidate(ctx)
	s.publish(ctx, res, req)

	return res, nil
}

func (s *serviceImpl) checkReferences(ctx context.Context, req dto.CreateBookingRequest) error {
	labExists, err := s.labs.Exist(ctx, shared.FilterByID(req.LabID, labModel.FieldID, labModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if lab exists")

		return fmt.Errorf("failed to check if lab exists: %w", err)
	}

	if !labExists {
		return failure.NotFound("lab not found") //nolint:wrapcheck
	}

	instructorExists, err := s.instructors.Exist(ctx, shared.FilterByID(req.InstructorID, instructorModel.FieldID, instructorModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if instructor exists")

		return fmt.Errorf("failed to check if instructor exists: %w", err)
	}

	if !instructorExists {
		return failure.NotFound("instructor not found") //nolint:wrapcheck
	}

	moduleExists, err := s.modules.Exist(ctx, shared.FilterByID(req.ModuleCode, moduleModel.FieldCode, moduleModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if module exists")

		return fmt.Errorf("failed to check if module exists: %w", err)
	}

	if !moduleExists {
		return failure.NotFound("module not found") //nolint:wrapcheck
	}

	return nil
}

// asConstraintConflict maps an exclusion or unique violation raised at commit
// time onto the same error shape as a pre-check rejection.
func asConstraintConflict(err error, dates []time.Time) *ConflictError {
	var pqErr *pq.Error

	if !errors.As(err, &pqErr) {
		return nil
	}

	code := string(pqErr.Code)
	if code != constant.PqErrorCodeExclusionViolation && code != constant.PqErrorCodeUniqueViolation {
		return nil
	}

	return &ConflictError{
		Date:   dates[0].Format(constant.DayFormat),
		Reason: ReasonLabCollision + ": slot taken by a concurrent booking",
	}
}

func (s *serviceImpl) operatingWindow() (open, close int) {
	openTime, err := time.Parse(constant.ClockFormat, s.openClock())
	if err != nil {
		openTime, _ = time.Parse(constant.ClockFormat, defaultOpenClock)
	}

	closeTime, err := time.Parse(constant.ClockFormat, s.closeClock())
	if err != nil {
		closeTime, _ = time.Parse(constant.ClockFormat, defaultCloseClock)
	}

	return clock(openTime), clock(closeTime)
}

func (s *serviceImpl) openClock() string {
	if s.cfg.App.OperatingHours.Open != "" {
		return s.cfg.App.OperatingHours.Open
	}

	return defaultOpenClock
}

func (s *serviceImpl) closeClock() string {
	if s.cfg.App.OperatingHours.Close != "" {
		return s.cfg.App.OperatingHours.Close
	}

	return defaultCloseClock
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
		shared.InvalidateCaches(c, s.cache, cacheMonthView)
	}()
}

func (s *serviceImpl) publish(ctx context.Context, res dto.CreateSeriesResponse, req dto.CreateBookingRequest) {
	if s.events == nil {
		return
	}

	go func() {
		c := context.WithoutCancel(ctx)

		key := res.SeriesID
		if key == "" {
			key = req.BookingDate
		}

		message := kafka.Message{
			Key: key,
			Value: map[string]any{
				"event":         eventSeriesCreated,
				"series_id":     res.SeriesID,
				"created_count": res.CreatedCount,
				"lab_id":        req.LabID,
				"instructor_id": req.InstructorID,
				"module_code":   req.ModuleCode,
			},
		}

		if err := s.events.SendMessages(c, s.cfg.Kafka.Topic.BookingEvents, message); err != nil {
			log.Error().Err(err).Msg("failed to publish series created event")
		}
	}()
}
