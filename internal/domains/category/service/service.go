package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/evowilliamson/todo/config"
	"github.com/evowilliamson/todo/infras/otel"
	"github.com/evowilliamson/todo/internal/domains/category/model"
	"github.com/evowilliamson/todo/internal/domains/category/model/dto"
	"github.com/evowilliamson/todo/internal/domains/category/repository"
	todoModel "github.com/evowilliamson/todo/internal/domains/todo/model"
	todoDto "github.com/evowilliamson/todo/internal/domains/todo/model/dto"
	todoRepo "github.com/evowilliamson/todo/internal/domains/todo/repository"
	"github.com/evowilliamson/todo/shared"
	"github.com/evowilliamson/todo/shared/cache"
	"github.com/evowilliamson/todo/shared/constant"
	gDto "github.com/evowilliamson/todo/shared/dto"
	"github.com/evowilliamson/todo/shared/failure"
)

const (
	cacheGetAllCategory = "category:gets"
)

type Category interface {
	Create(ctx context.Context, req dto.CreateCategoryRequest) (dto.CategoryResponse, error)
	GetAll(ctx context.Context) (dto.GetCategoriesResponse, error)
	GetTodos(ctx context.Context, id string) (todoDto.CategoryTodosResponse, error)
	Update(ctx context.Context, req dto.UpdateCategoryRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.Category
	todoRepo todoRepo.Todo
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Category, todoRepo todoRepo.Todo, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Category {
	return &serviceImpl{
		repo:     repo,
		todoRepo: todoRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateCategoryRequest) (res dto.CategoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.checkNameFree(ctx, user, req.Name); err != nil {
		return res, err
	}

	category := req.ToModel(user)

	if err = s.repo.Insert(ctx, category); err != nil {
		log.Error().Err(err).Msg("failed to create category")

		return res, fmt.Errorf("failed to create category: %w", err)
	}

	res.FromModel(category)

	s.invalidateList(ctx, user)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context) (res dto.GetCategoriesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	cacheKey := shared.BuildCacheKey(cacheGetAllCategory, user)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for categories")

		return res, nil
	}

	filter := s.ownerFilter(user)
	params := gDto.QueryParams{SortBy: model.FieldName, SortDir: "ASC"}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get categories")

		return res, fmt.Errorf("failed to get categories: %w", err)
	}

	res.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save categories to cache")
		}
	}()

	return res, nil
}

// GetTodos returns the category with its live todos. Trashed todos stay
// hidden here; they remain reachable through the trash listing.
func (s *serviceImpl) GetTodos(ctx context.Context, id string) (res todoDto.CategoryTodosResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetTodos")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	category, err := s.repo.Get(ctx, shared.FilterByIDForOwner(id, user, model.FieldID, model.FieldUserID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get category")

		return res, fmt.Errorf("failed to get category: %w", err)
	}

	if category.ID == constant.Empty {
		return res, failure.NotFound("category not found") // nolint:wrapcheck
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: todoModel.FieldUserID, Operator: gDto.FilterOperatorEq, Value: user, Table: todoModel.TableName},
			gDto.Filter{Field: todoModel.FieldCategoryID, Operator: gDto.FilterOperatorEq, Value: id, Table: todoModel.TableName},
			gDto.Filter{Field: todoModel.FieldDeletedAt, Operator: gDto.FilterIsNull, Table: todoModel.TableName},
		},
	}

	params := gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: "DESC"}

	todos, err := s.todoRepo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get todos for category")

		return res, fmt.Errorf("failed to get todos for category: %w", err)
	}

	res.Category.FromModel(category)

	res.Todos = make([]todoDto.TodoResponse, len(todos))
	for i, todo := range todos {
		res.Todos[i].FromModel(todo)
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateCategoryRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateCategoryRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByIDForOwner(id, user, model.FieldID, model.FieldUserID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if category exists")

		return fmt.Errorf("failed to check if category exists: %w", err)
	}

	if !exist {
		return failure.NotFound("category not found") // nolint:wrapcheck
	}

	if req.Name != nil {
		if err = s.checkNameFree(ctx, user, *req.Name); err != nil {
			return err
		}
	}

	updatedFields := shared.TransformFields(req, user)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update category")

		return fmt.Errorf("failed to update category: %w", err)
	}

	s.invalidateList(ctx, user)

	return nil
}

// Delete removes the category and leaves its todos uncategorized.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByIDForOwner(id, user, model.FieldID, model.FieldUserID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if category exists")

		return fmt.Errorf("failed to check if category exists: %w", err)
	}

	if !exist {
		return failure.NotFound("category not found") // nolint:wrapcheck
	}

	if err = s.repo.DeleteAndDetachTodos(ctx, id); err != nil {
		log.Error().Err(err).Msg("failed to delete category")

		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.invalidateList(ctx, user)

	return nil
}

func (s *serviceImpl) checkNameFree(ctx context.Context, user, name string) error {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldUserID, Operator: gDto.FilterOperatorEq, Value: user, Table: model.TableName},
			gDto.Filter{Field: model.FieldName, Operator: gDto.FilterOperatorEq, Value: name, Table: model.TableName},
		},
	}

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if category name is taken")

		return fmt.Errorf("failed to check if category name is taken: %w", err)
	}

	if exist {
		return failure.Conflict("category name already exists") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) ownerFilter(user string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldUserID, Operator: gDto.FilterOperatorEq, Value: user, Table: model.TableName},
		},
	}
}

func (s *serviceImpl) invalidateList(ctx context.Context, user string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetAllCategory, user)); err != nil {
			log.Error().Err(err).Msg("failed to delete categories from cache")
		}
	}()
}
