package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/evowilliamson/todo/config"
	"github.com/evowilliamson/todo/infras/otel"
	"github.com/evowilliamson/todo/internal/domains/subtask/model"
	"github.com/evowilliamson/todo/internal/domains/subtask/model/dto"
	"github.com/evowilliamson/todo/internal/domains/subtask/repository"
	todoModel "github.com/evowilliamson/todo/internal/domains/todo/model"
	todoRepo "github.com/evowilliamson/todo/internal/domains/todo/repository"
	"github.com/evowilliamson/todo/shared"
	"github.com/evowilliamson/todo/shared/cache"
	"github.com/evowilliamson/todo/shared/constant"
	gDto "github.com/evowilliamson/todo/shared/dto"
	"github.com/evowilliamson/todo/shared/failure"
)

const (
	cacheGetTodo = "todo:get"
)

type Subtask interface {
	Create(ctx context.Context, todoID string, req dto.CreateSubtaskRequest) (dto.SubtaskResponse, error)
	Update(ctx context.Context, req dto.UpdateSubtaskRequest, todoID, subtaskID string) error
	Delete(ctx context.Context, todoID, subtaskID string) error
}

type serviceImpl struct {
	repo     repository.Subtask
	todoRepo todoRepo.Todo
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Subtask, todoRepo todoRepo.Todo, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Subtask {
	return &serviceImpl{
		repo:     repo,
		todoRepo: todoRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, todoID string, req dto.CreateSubtaskRequest) (res dto.SubtaskResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.checkParent(ctx, user, todoID); err != nil {
		return res, err
	}

	subtask := req.ToModel(todoID, user)

	if err = s.repo.Insert(ctx, subtask); err != nil {
		log.Error().Err(err).Msg("failed to create subtask")

		return res, fmt.Errorf("failed to create subtask: %w", err)
	}

	res.FromModel(subtask)

	s.invalidateParent(ctx, user, todoID)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateSubtaskRequest, todoID, subtaskID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateSubtaskRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.checkParent(ctx, user, todoID); err != nil {
		return err
	}

	filter := s.subtaskFilter(todoID, subtaskID)

	exist, err := s.repo.Get(ctx, filter, model.FieldID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if subtask exists")

		return fmt.Errorf("failed to check if subtask exists: %w", err)
	}

	if exist.ID == constant.Empty {
		return failure.NotFound("subtask not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update subtask")

		return fmt.Errorf("failed to update subtask: %w", err)
	}

	s.invalidateParent(ctx, user, todoID)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, todoID, subtaskID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.checkParent(ctx, user, todoID); err != nil {
		return err
	}

	filter := s.subtaskFilter(todoID, subtaskID)

	exist, err := s.repo.Get(ctx, filter, model.FieldID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if subtask exists")

		return fmt.Errorf("failed to check if subtask exists: %w", err)
	}

	if exist.ID == constant.Empty {
		return failure.NotFound("subtask not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete subtask")

		return fmt.Errorf("failed to delete subtask: %w", err)
	}

	s.invalidateParent(ctx, user, todoID)

	return nil
}

// checkParent resolves the parent todo with the owner predicate and
// rejects trashed parents, so subtask writes cannot reach into the
// trash.
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

func (s *serviceImpl) subtaskFilter(todoID, subtaskID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorEq, Value: subtaskID, Table: model.TableName},
			gDto.Filter{Field: model.FieldTodoID, Operator: gDto.FilterOperatorEq, Value: todoID, Table: model.TableName},
		},
	}
}

func (s *serviceImpl) invalidateParent(ctx context.Context, user, todoID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetTodo, user, todoID)); err != nil {
			log.Error().Err(err).Msg("failed to delete todo from cache")
		}
	}()
}
