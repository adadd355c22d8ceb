package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/evowilliamson/todo/infras/otel"
	"github.com/evowilliamson/todo/infras/postgres"
	"github.com/evowilliamson/todo/internal/domains/category/model"
	todoModel "github.com/evowilliamson/todo/internal/domains/todo/model"
	"github.com/evowilliamson/todo/shared/constant"
	gDto "github.com/evowilliamson/todo/shared/dto"
	"github.com/evowilliamson/todo/shared/logger"
	gRepo "github.com/evowilliamson/todo/shared/repository"
)

type Category interface {
	Insert(ctx context.Context, model model.Category) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Category, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Category, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	DeleteAndDetachTodos(ctx context.Context, categoryID string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Category]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Category {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Category](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// DeleteAndDetachTodos removes a category and nulls out the reference
// on every todo that pointed at it, in one transaction. Todos survive
// the delete uncategorized.
func (repo *repositoryImpl) DeleteAndDetachTodos(ctx context.Context, categoryID string) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".category.DeleteAndDetachTodos")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.Beginx()
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin delete transaction (%s): %w", model.EntityName, err)
	}

	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				log.Error().Err(rollbackErr).Msg("failed to rollback delete transaction")
			}
		}
	}()

	arg := map[string]any{"category_id": categoryID}

	detachQuery := fmt.Sprintf(
		"UPDATE %s SET %s = NULL WHERE %s = :category_id",
		todoModel.TableName, todoModel.FieldCategoryID, todoModel.FieldCategoryID,
	)

	if _, err = tx.NamedExecContext(ctx, detachQuery, arg); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to detach todos from category: %w", err)
	}

	deleteQuery := fmt.Sprintf("DELETE FROM %s WHERE %s = :category_id", model.TableName, model.FieldID)

	if _, err = tx.NamedExecContext(ctx, deleteQuery, arg); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to delete data (%s): %w", model.EntityName, err)
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit delete transaction (%s): %w", model.EntityName, err)
	}

	return nil
}
