package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"time"

	"clts/infras/otel"
	"clts/infras/postgres"
	"clts/internal/domains/leave/model"
	"clts/shared/constant"
	gDto "clts/shared/dto"
	gRepo "clts/shared/repository"
)

type Leave interface {
	Insert(ctx context.Context, model model.Leave) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Leave, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Leave, error)
	// GetApprovedForRange returns approved leaves whose date range intersects
	// [from, to]. Rows in other statuses never reach the annotator.
	GetApprovedForRange(ctx context.Context, from, to time.Time) ([]model.Leave, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	// UpdateWhereStatus applies req only to rows currently in fromStatus, and
	// reports whether a row was touched. This is the compare-and-set behind
	// leave transitions.
	UpdateWhereStatus(ctx context.Context, req map[string]any, id, fromStatus string) (bool, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Leave]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Leave {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Leave](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) GetApprovedForRange(ctx context.Context, from, to time.Time) ([]model.Leave, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".leave.GetApprovedForRange")
	defer scope.End()

	// A leave intersects [from, to] when it starts no later than the range
	// end and ends no earlier than the range start.
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    constant.LeaveStatusApproved,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "range_to",
				Field:    model.FieldStartDate,
				Operator: gDto.FilterOperatorLessEq,
				Value:    to.Format(constant.DayFormat),
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "range_from",
				Field:    model.FieldEndDate,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    from.Format(constant.DayFormat),
				Table:    model.TableName,
			},
		},
	}

	params := gDto.QueryParams{
		SortBy:  model.FieldStartDate,
		SortDir: gDto.SortDirAsc,
	}

	return repo.GetAll(ctx, params, filter) //nolint:wrapcheck
}

func (repo *repositoryImpl) UpdateWhereStatus(ctx context.Context, req map[string]any, id, fromStatus string) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".leave.UpdateWhereStatus")
	defer scope.End()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Operator: gDto.FilterOperatorEq,
				Value:    id,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "from_status",
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    fromStatus,
				Table:    model.TableName,
			},
		},
	}

	exist, err := repo.Exist(ctx, filter)
	if err != nil {
		scope.TraceError(err)

		return false, err //nolint:wrapcheck
	}

	if !exist {
		return false, nil
	}

	if err := repo.Update(ctx, req, filter); err != nil {
		scope.TraceError(err)

		return false, err //nolint:wrapcheck
	}

	return true, nil
}
