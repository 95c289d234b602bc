package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"clts/infras/otel"
	"clts/infras/postgres"
	"clts/internal/domains/booking/model"
	"clts/shared/constant"
	gDto "clts/shared/dto"
	"clts/shared/logger"
	gRepo "clts/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	// InsertSeries writes every occurrence of a series inside one transaction.
	// Either all rows commit or none do; the caller never observes a partial
	// series.
	InsertSeries(ctx context.Context, models []model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	// GetForLabDay returns the non-cancelled bookings occupying a lab on one
	// date, ordered by start time. This is the read the conflict checker runs.
	GetForLabDay(ctx context.Context, labID string, date time.Time) ([]model.Booking, error)
	// GetForRange returns bookings between two dates inclusive, ordered by
	// date then start time.
	GetForRange(ctx context.Context, from, to time.Time) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) InsertSeries(ctx context.Context, models []model.Booking) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.InsertSeries")
	defer scope.End()

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to begin series transaction: %w", err)
	}

	if err := repo.InsertBulkTx(ctx, tx, models); err != nil {
		scope.TraceError(err)

		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			logger.ErrorWithStack(rollbackErr)
		}

		return err //nolint:wrapcheck
	}

	if err := tx.Commit(); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to commit series transaction: %w", err)
	}

	return nil
}

func (repo *repositoryImpl) GetForLabDay(ctx context.Context, labID string, date time.Time) ([]model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetForLabDay")
	defer scope.End()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldLabID,
				Operator: gDto.FilterOperatorEq,
				Value:    labID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldBookingDate,
				Operator: gDto.FilterOperatorEq,
				Value:    date.Format(constant.DayFormat),
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorNotEq,
				Value:    constant.BookingStatusCancelled,
				Table:    model.TableName,
			},
		},
	}

	params := gDto.QueryParams{
		SortBy:  model.FieldStartTime,
		SortDir: gDto.SortDirAsc,
	}

	return repo.GetAll(ctx, params, filter) //nolint:wrapcheck
}

func (repo *repositoryImpl) GetForRange(ctx context.Context, from, to time.Time) ([]model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetForRange")
	defer scope.End()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				ArgName:  "range_from",
				Field:    model.FieldBookingDate,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    from.Format(constant.DayFormat),
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "range_to",
				Field:    model.FieldBookingDate,
				Operator: gDto.FilterOperatorLessEq,
				Value:    to.Format(constant.DayFormat),
				Table:    model.TableName,
			},
		},
	}

	params := gDto.QueryParams{
		SortBy:  fmt.Sprintf("%s %s, %s", model.FieldBookingDate, gDto.SortDirAsc, model.FieldStartTime),
		SortDir: gDto.SortDirAsc,
	}

	return repo.GetAll(ctx, params, filter) //nolint:wrapcheck
}
