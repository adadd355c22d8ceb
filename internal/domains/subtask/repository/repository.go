package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"github.com/evowilliamson/todo/infras/otel"
	"github.com/evowilliamson/todo/infras/postgres"
	"github.com/evowilliamson/todo/internal/domains/subtask/model"
	gDto "github.com/evowilliamson/todo/shared/dto"
	gRepo "github.com/evowilliamson/todo/shared/repository"
)

type Subtask interface {
	Insert(ctx context.Context, model model.Subtask) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Subtask, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Subtask, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Subtask]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Subtask {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Subtask](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
