package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"clts/infras/otel"
	"clts/infras/postgres"
	"clts/internal/domains/lab/model"
	gDto "clts/shared/dto"
	gRepo "clts/shared/repository"
)

type Lab interface {
	Insert(ctx context.Context, model model.Lab) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Lab, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Lab, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Lab]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Lab {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Lab](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
