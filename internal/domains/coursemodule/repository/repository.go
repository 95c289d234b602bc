package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"clts/infras/otel"
	"clts/infras/postgres"
	"clts/internal/domains/coursemodule/model"
	gDto "clts/shared/dto"
	gRepo "clts/shared/repository"
)

type Module interface {
	Insert(ctx context.Context, model model.Module) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Module, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Module, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Module]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Module {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Module](model.EntityName, model.TableName, model.FieldCode, db, otel),
		db:         db,
		otel:       otel,
	}
}
