package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/evowilliamson/todo/infras/otel"
	"github.com/evowilliamson/todo/infras/postgres"
	"github.com/evowilliamson/todo/internal/domains/reminder/model"
	todoModel "github.com/evowilliamson/todo/internal/domains/todo/model"
	"github.com/evowilliamson/todo/shared/constant"
	gDto "github.com/evowilliamson/todo/shared/dto"
	"github.com/evowilliamson/todo/shared/logger"
	gRepo "github.com/evowilliamson/todo/shared/repository"
)

type Reminder interface {
	Insert(ctx context.Context, model model.Reminder) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reminder, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reminder, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	ListDue(ctx context.Context, now time.Time, limit int) ([]DueReminder, error)
	MarkSent(ctx context.Context, reminderIDs []string) error
}

// DueReminder is a reminder joined with the owning todo, enough to
// build the notification event without a second lookup.
type DueReminder struct {
	ID        string    `db:"id"`
	TodoID    string    `db:"todo_id"`
	RemindAt  time.Time `db:"remind_at"`
	UserID    string    `db:"user_id"`
	TodoTitle string    `db:"todo_title"`
}

type repositoryImpl struct {
	gRepo.Repository[model.Reminder]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reminder {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reminder](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// ListDue returns unsent reminders whose remind_at has passed,
// skipping reminders whose todo was soft-deleted in the meantime.
func (repo *repositoryImpl) ListDue(ctx context.Context, now time.Time, limit int) (due []DueReminder, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reminder.ListDue")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf(
		"SELECT r.%s AS id, r.%s AS todo_id, r.%s AS remind_at, t.%s AS user_id, t.%s AS todo_title "+
			"FROM %s r JOIN %s t ON t.%s = r.%s "+
			"WHERE r.%s = FALSE AND r.%s <= :now AND t.%s IS NULL "+
			"ORDER BY r.%s ASC LIMIT :limit",
		model.FieldID, model.FieldTodoID, model.FieldRemindAt, todoModel.FieldUserID, todoModel.FieldTitle,
		model.TableName, todoModel.TableName, todoModel.FieldID, model.FieldTodoID,
		model.FieldIsSent, model.FieldRemindAt, todoModel.FieldDeletedAt,
		model.FieldRemindAt,
	)

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	args := map[string]any{"now": now, "limit": limit}

	if err = prepare.SelectContext(ctx, &due, args); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to list due reminders: %w", err)
	}

	return due, nil
}

func (repo *repositoryImpl) MarkSent(ctx context.Context, reminderIDs []string) error {
	if len(reminderIDs) == 0 {
		return nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorIn, Value: reminderIDs, Table: model.TableName},
		},
	}

	return repo.Update(ctx, map[string]any{model.FieldIsSent: true}, filter) //nolint:wrapcheck
}
