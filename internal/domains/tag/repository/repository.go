package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/evowilliamson/todo/infras/otel"
	"github.com/evowilliamson/todo/infras/postgres"
	"github.com/evowilliamson/todo/internal/domains/tag/model"
	"github.com/evowilliamson/todo/shared"
	"github.com/evowilliamson/todo/shared/constant"
	gDto "github.com/evowilliamson/todo/shared/dto"
	"github.com/evowilliamson/todo/shared/logger"
	gRepo "github.com/evowilliamson/todo/shared/repository"
)

type Tag interface {
	Insert(ctx context.Context, model model.Tag) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Tag, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Tag, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	CountOwned(ctx context.Context, ownerID string, tagIDs []string) (int, error)
	ListForTodo(ctx context.Context, todoID string) ([]model.Tag, error)
	ReplaceForTodo(ctx context.Context, todoID string, tagIDs []string) error
	DeleteWithMemberships(ctx context.Context, tagID string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Tag]
	joinRepo gRepo.Repository[model.TodoTag]
	db       *postgres.Connection
	otel     otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Tag {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Tag](model.EntityName, model.TableName, model.FieldID, db, otel),
		joinRepo:   gRepo.NewRepository[model.TodoTag](model.JoinEntityName, model.JoinTableName, model.JoinFieldTodoID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// CountOwned reports how many of the given ids belong to the owner.
// The caller compares the count against len(tagIDs) to reject
// references to foreign or unknown tags without leaking which one.
func (repo *repositoryImpl) CountOwned(ctx context.Context, ownerID string, tagIDs []string) (int, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldUserID, Operator: gDto.FilterOperatorEq, Value: ownerID, Table: model.TableName},
			gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorIn, Value: tagIDs, Table: model.TableName},
		},
	}

	return repo.Count(ctx, filter) //nolint:wrapcheck
}

func (repo *repositoryImpl) ListForTodo(ctx context.Context, todoID string) (tags []model.Tag, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".tag.ListForTodo")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf(
		"SELECT %s.* FROM %s JOIN %s ON %s.%s = %s.%s WHERE %s.%s = :todo_id ORDER BY %s.%s ASC",
		model.TableName, model.TableName,
		model.JoinTableName,
		model.JoinTableName, model.JoinFieldTagID, model.TableName, model.FieldID,
		model.JoinTableName, model.JoinFieldTodoID,
		model.TableName, model.FieldName,
	)

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to prepare statement (%s): %w", model.JoinEntityName, err)
	}
	defer prepare.Close()

	if err = prepare.SelectContext(ctx, &tags, map[string]any{"todo_id": todoID}); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to list tags for todo: %w", err)
	}

	return tags, nil
}

// ReplaceForTodo reconciles the membership rows for one todo against
// the desired set of tag ids. Rows are diffed so untouched memberships
// survive, and both the removals and the additions commit atomically.
func (repo *repositoryImpl) ReplaceForTodo(ctx context.Context, todoID string, tagIDs []string) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".tag.ReplaceForTodo")
	defer scope.End()
	defer scope.TraceIfError(err)

	current, err := repo.listMemberships(ctx, todoID)
	if err != nil {
		return err
	}

	desired := make(map[string]bool, len(tagIDs))
	for _, id := range tagIDs {
		desired[id] = true
	}

	existing := make(map[string]bool, len(current))
	toRemove := []string{}

	for _, row := range current {
		existing[row.TagID] = true

		if !desired[row.TagID] {
			toRemove = append(toRemove, row.TagID)
		}
	}

	toAdd := []model.TodoTag{}

	for _, id := range tagIDs {
		if !existing[id] {
			toAdd = append(toAdd, model.TodoTag{TodoID: todoID, TagID: id})
		}
	}

	if len(toRemove) == 0 && len(toAdd) == 0 {
		return nil
	}

	tx, err := repo.db.Write.Beginx()
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin membership transaction (%s): %w", model.JoinEntityName, err)
	}

	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				log.Error().Err(rollbackErr).Msg("failed to rollback membership transaction")
			}
		}
	}()

	if len(toRemove) > 0 {
		filter := gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{
				gDto.Filter{Field: model.JoinFieldTodoID, Operator: gDto.FilterOperatorEq, Value: todoID, Table: model.JoinTableName},
				gDto.Filter{Field: model.JoinFieldTagID, Operator: gDto.FilterOperatorIn, Value: toRemove, Table: model.JoinTableName},
			},
		}

		if err = repo.joinRepo.DeleteTx(ctx, tx, filter); err != nil {
			return err //nolint:wrapcheck
		}
	}

	if len(toAdd) > 0 {
		if err = repo.joinRepo.InsertBulkTx(ctx, tx, toAdd); err != nil {
			return err //nolint:wrapcheck
		}
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit membership transaction (%s): %w", model.JoinEntityName, err)
	}

	return nil
}

// DeleteWithMemberships removes a tag together with its membership
// rows in one transaction. Todos that carried the tag are unaffected
// beyond losing the association.
func (repo *repositoryImpl) DeleteWithMemberships(ctx context.Context, tagID string) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".tag.DeleteWithMemberships")
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

	joinFilter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.JoinFieldTagID, Operator: gDto.FilterOperatorEq, Value: tagID, Table: model.JoinTableName},
		},
	}

	if err = repo.joinRepo.DeleteTx(ctx, tx, joinFilter); err != nil {
		return err //nolint:wrapcheck
	}

	if err = repo.DeleteTx(ctx, tx, shared.FilterByID(tagID, model.FieldID, model.TableName)); err != nil {
		return err //nolint:wrapcheck
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit delete transaction (%s): %w", model.EntityName, err)
	}

	return nil
}

func (repo *repositoryImpl) listMemberships(ctx context.Context, todoID string) (rows []model.TodoTag, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".tag.listMemberships")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = :todo_id",
		strings.Join([]string{model.JoinFieldTodoID, model.JoinFieldTagID}, ", "),
		model.JoinTableName, model.JoinFieldTodoID,
	)

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to prepare statement (%s): %w", model.JoinEntityName, err)
	}
	defer prepare.Close()

	if err = prepare.SelectContext(ctx, &rows, map[string]any{"todo_id": todoID}); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}

	return rows, nil
}
