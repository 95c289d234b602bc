package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"clts/config"
	"clts/infras/otel"
	bookingRepo "clts/internal/domains/booking/repository"
	"clts/internal/domains/calendar/annotate"
	"clts/internal/domains/calendar/model/dto"
	leaveRepo "clts/internal/domains/leave/repository"
	"clts/shared"
	"clts/shared/cache"
	"clts/shared/constant"
)

const (
	cacheMonthView = "calendar:month"
)

type Calendar interface {
	// BuildMonth assembles the month view for any (year, month) pair. Month
	// values outside 1..12 roll over into the neighbouring year, so callers
	// can navigate by blind increment.
	BuildMonth(ctx context.Context, year, month int) (dto.MonthView, error)
}

type serviceImpl struct {
	bookings bookingRepo.Booking
	leaves   leaveRepo.Leave
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(bookings bookingRepo.Booking, leaves leaveRepo.Leave, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Calendar {
	return &serviceImpl{
		bookings: bookings,
		leaves:   leaves,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) BuildMonth(ctx context.Context, year, month int) (res dto.MonthView, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".calendar.BuildMonth")
	defer scope.End()
	defer scope.TraceIfError(err)

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	cacheKey := shared.BuildCacheKey(cacheMonthView, strconv.Itoa(first.Year()), strconv.Itoa(int(first.Month())))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	bookings, err := s.bookings.GetForRange(ctx, first, last)
	if err != nil {
		log.Error().Err(err).Msg("failed to load month bookings")

		return res, fmt.Errorf("failed to load month bookings: %w", err)
	}

	leaves, err := s.leaves.GetApprovedForRange(ctx, first, last)
	if err != nil {
		log.Error().Err(err).Msg("failed to load month leaves")

		return res, fmt.Errorf("failed to load month leaves: %w", err)
	}

	annotated, affected := annotate.Conflicts(bookings, leaves)

	prev := first.AddDate(0, -1, 0)
	next := first.AddDate(0, 1, 0)

	res = dto.MonthView{
		Year:      first.Year(),
		Month:     int(first.Month()),
		MonthName: first.Month().String(),
		Weeks:     monthGrid(first, last),
		Prev:      dto.MonthTarget{Year: prev.Year(), Month: int(prev.Month())},
		Next:      dto.MonthTarget{Year: next.Year(), Month: int(next.Month())},

		UnavailableInstructors: len(affected),
	}

	res.SetBookings(annotated)
	res.SetLeaves(annotate.LeavesByDay(leaves, first, last))

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save month view to cache")
		}
	}()

	return res, nil
}

// monthGrid lays the month out as full weeks of day numbers, Monday first.
// Cells outside the month hold zero.
func monthGrid(first, last time.Time) [][]int {
	offset := (int(first.Weekday()) + constant.WeekdayColumns - 1) % constant.WeekdayColumns

	var weeks [][]int

	week := make([]int, constant.WeekdayColumns)
	col := offset

	for day := 1; day <= last.Day(); day++ {
		week[col] = day
		col++

		if col == constant.WeekdayColumns {
			weeks = append(weeks, week)
			week = make([]int, constant.WeekdayColumns)
			col = 0
		}
	}

	if col > 0 {
		weeks = append(weeks, week)
	}

	return weeks
}
