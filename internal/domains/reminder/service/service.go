package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/evowilliamson/todo/config"
	"github.com/evowilliamson/todo/infras/kafka"
	"github.com/evowilliamson/todo/infras/otel"
	"github.com/evowilliamson/todo/internal/domains/reminder/model"
	"github.com/evowilliamson/todo/internal/domains/reminder/model/dto"
	"github.com/evowilliamson/todo/internal/domains/reminder/repository"
	todoModel "github.com/evowilliamson/todo/internal/domains/todo/model"
	todoRepo "github.com/evowilliamson/todo/internal/domains/todo/repository"
	"github.com/evowilliamson/todo/shared"
	"github.com/evowilliamson/todo/shared/cache"
	"github.com/evowilliamson/todo/shared/constant"
	gDto "github.com/evowilliamson/todo/shared/dto"
	"github.com/evowilliamson/todo/shared/failure"
	"github.com/evowilliamson/todo/shared/timezone"
)

const (
	cacheGetTodo = "todo:get"
)

type Reminder interface {
	Create(ctx context.Context, todoID string, req dto.CreateReminderRequest) (dto.ReminderResponse, error)
	Delete(ctx context.Context, todoID, reminderID string) error
	SweepDue(ctx context.Context) (int, error)
}

type serviceImpl struct {
	repo     repository.Reminder
	todoRepo todoRepo.Todo
	cfg      *config.Config
	cache    cache.RedisCache
	kafka    kafka.Client
	otel     otel.Otel
}

func New(
	repo repository.Reminder,
	todoRepo todoRepo.Todo,
	cfg *config.Config,
	cache cache.RedisCache,
	kafkaClient kafka.Client,
	otel otel.Otel,
) Reminder {
	return &serviceImpl{
		repo:     repo,
		todoRepo: todoRepo,
		cfg:      cfg,
		cache:    cache,
		kafka:    kafkaClient,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, todoID string, req dto.CreateReminderRequest) (res dto.ReminderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.checkParent(ctx, user, todoID); err != nil {
		return res, err
	}

	if !req.RemindAt.After(timezone.Now()) {
		return res, failure.BadRequestFromString("remind_at must be in the future") // nolint:wrapcheck
	}

	reminder := req.ToModel(todoID, user)

	if err = s.repo.Insert(ctx, reminder); err != nil {
		log.Error().Err(err).Msg("failed to create reminder")

		return res, fmt.Errorf("failed to create reminder: %w", err)
	}

	res.FromModel(reminder)

	s.invalidateParent(ctx, user, todoID)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, todoID, reminderID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.checkParent(ctx, user, todoID); err != nil {
		return err
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorEq, Value: reminderID, Table: model.TableName},
			gDto.Filter{Field: model.FieldTodoID, Operator: gDto.FilterOperatorEq, Value: todoID, Table: model.TableName},
		},
	}

	exist, err := s.repo.Get(ctx, filter, model.FieldID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if reminder exists")

		return fmt.Errorf("failed to check if reminder exists: %w", err)
	}

	if exist.ID == constant.Empty {
		return failure.NotFound("reminder not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete reminder")

		return fmt.Errorf("failed to delete reminder: %w", err)
	}

	s.invalidateParent(ctx, user, todoID)

	return nil
}

// SweepDue publishes due reminders to the event stream and marks them
// sent. Marking happens only after a successful publish, so a failed
// broker round trip leaves the batch due for the next sweep.
func (s *serviceImpl) SweepDue(ctx context.Context) (sent int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SweepDue")
	defer scope.End()
	defer scope.TraceIfError(err)

	due, err := s.repo.ListDue(ctx, timezone.Now(), s.cfg.Reminder.SweepLimit)
	if err != nil {
		log.Error().Err(err).Msg("failed to list due reminders")

		return 0, fmt.Errorf("failed to list due reminders: %w", err)
	}

	if len(due) == 0 {
		return 0, nil
	}

	if s.cfg.Kafka.Enable {
		messages := make([]kafka.Message, len(due))
		for i, reminder := range due {
			messages[i] = kafka.Message{
				Key: reminder.ID,
				Value: dto.ReminderDueEvent{
					ReminderID: reminder.ID,
					TodoID:     reminder.TodoID,
					UserID:     reminder.UserID,
					TodoTitle:  reminder.TodoTitle,
					RemindAt:   reminder.RemindAt,
				},
			}
		}

		if err = s.kafka.SendMessages(ctx, s.cfg.Kafka.Topic.ReminderDue, messages...); err != nil {
			log.Error().Err(err).Msg("failed to publish due reminders")

			return 0, fmt.Errorf("failed to publish due reminders: %w", err)
		}
	}

	ids := make([]string, len(due))
	for i, reminder := range due {
		ids[i] = reminder.ID
	}

	if err = s.repo.MarkSent(ctx, ids); err != nil {
		log.Error().Err(err).Msg("failed to mark reminders as sent")

		return 0, fmt.Errorf("failed to mark reminders as sent: %w", err)
	}

	return len(ids), nil
}

func (s *serviceImpl) checkParent(ctx context.Context, user, todoID string) error {
	todo, err := s.todoRepo.Get(ctx, shared.FilterByIDForOwner(todoID, user, todoModel.FieldID, todoModel.FieldUserID, todoModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get parent todo")

		return fmt.Errorf("failed to get parent todo: %w", err)
	}

	if todo.ID == constant.Empty || todo.IsDeleted() {
		return failure.NotFound("todo not found") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) invalidateParent(ctx context.Context, user, todoID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetTodo, user, todoID)); err != nil {
			log.Error().Err(err).Msg("failed to delete todo from cache")
		}
	}()
}
