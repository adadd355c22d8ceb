package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/evowilliamson/todo/infras/otel"
	"github.com/evowilliamson/todo/infras/postgres"
	reminderModel "github.com/evowilliamson/todo/internal/domains/reminder/model"
	subtaskModel "github.com/evowilliamson/todo/internal/domains/subtask/model"
	tagModel "github.com/evowilliamson/todo/internal/domains/tag/model"
	"github.com/evowilliamson/todo/internal/domains/todo/model"
	"github.com/evowilliamson/todo/shared/constant"
	gDto "github.com/evowilliamson/todo/shared/dto"
	"github.com/evowilliamson/todo/shared/logger"
	gRepo "github.com/evowilliamson/todo/shared/repository"
)

type Todo interface {
	Insert(ctx context.Context, model model.Todo) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Todo, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Todo, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Purge(ctx context.Context, todoID string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Todo]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Todo {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Todo](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Purge hard-deletes a todo row together with its owned relations. The
// whole cascade runs in one transaction; the caller has already
// resolved ownership.
func (repo *repositoryImpl) Purge(ctx context.Context, todoID string) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".todo.Purge")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.Beginx()
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin purge transaction (%s): %w", model.EntityName, err)
	}

	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				log.Error().Err(rollbackErr).Msg("failed to rollback purge transaction")
			}
		}
	}()

	arg := map[string]any{"todo_id": todoID}

	childTables := []struct {
		table string
		field string
	}{
		{tagModel.JoinTableName, tagModel.JoinFieldTodoID},
		{subtaskModel.TableName, subtaskModel.FieldTodoID},
		{reminderModel.TableName, reminderModel.FieldTodoID},
	}

	for _, child := range childTables {
		query := fmt.Sprintf("DELETE FROM %s WHERE %s = :todo_id", child.table, child.field)

		if _, err = tx.NamedExecContext(ctx, query, arg); err != nil {
			logger.ErrorWithStack(err)

			return fmt.Errorf("failed to purge child rows (%s): %w", child.table, err)
		}
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE %s = :todo_id", model.TableName, model.FieldID)

	if _, err = tx.NamedExecContext(ctx, query, arg); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to purge data (%s): %w", model.EntityName, err)
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit purge transaction (%s): %w", model.EntityName, err)
	}

	return nil
}
