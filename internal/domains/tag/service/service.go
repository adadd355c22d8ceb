package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/evowilliamson/todo/config"
	"github.com/evowilliamson/todo/infras/otel"
	"github.com/evowilliamson/todo/internal/domains/tag/model"
	"github.com/evowilliamson/todo/internal/domains/tag/model/dto"
	"github.com/evowilliamson/todo/internal/domains/tag/repository"
	"github.com/evowilliamson/todo/shared"
	"github.com/evowilliamson/todo/shared/cache"
	"github.com/evowilliamson/todo/shared/constant"
	gDto "github.com/evowilliamson/todo/shared/dto"
	"github.com/evowilliamson/todo/shared/failure"
)

const (
	cacheGetAllTag = "tag:gets"
)

type Tag interface {
	Create(ctx context.Context, req dto.CreateTagRequest) (dto.TagResponse, error)
	GetAll(ctx context.Context) (dto.GetTagsResponse, error)
	Update(ctx context.Context, req dto.UpdateTagRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Tag
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Tag, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Tag {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTagRequest) (res dto.TagResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.checkNameFree(ctx, user, req.Name); err != nil {
		return res, err
	}

	tag := req.ToModel(user)

	if err = s.repo.Insert(ctx, tag); err != nil {
		log.Error().Err(err).Msg("failed to create tag")

		return res, fmt.Errorf("failed to create tag: %w", err)
	}

	res.FromModel(tag)

	s.invalidateList(ctx, user)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context) (res dto.GetTagsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	cacheKey := shared.BuildCacheKey(cacheGetAllTag, user)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for tags")

		return res, nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldUserID, Operator: gDto.FilterOperatorEq, Value: user, Table: model.TableName},
		},
	}

	params := gDto.QueryParams{SortBy: model.FieldName, SortDir: "ASC"}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get tags")

		return res, fmt.Errorf("failed to get tags: %w", err)
	}

	res.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save tags to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateTagRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateTagRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByIDForOwner(id, user, model.FieldID, model.FieldUserID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if tag exists")

		return fmt.Errorf("failed to check if tag exists: %w", err)
	}

	if !exist {
		return failure.NotFound("tag not found") // nolint:wrapcheck
	}

	if req.Name != nil {
		if err = s.checkNameFree(ctx, user, *req.Name); err != nil {
			return err
		}
	}

	updatedFields := shared.TransformFields(req, user)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update tag")

		return fmt.Errorf("failed to update tag: %w", err)
	}

	s.invalidateList(ctx, user)

	return nil
}

// Delete removes the tag and every membership row pointing at it.
// Todos that carried the tag are otherwise untouched.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByIDForOwner(id, user, model.FieldID, model.FieldUserID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if tag exists")

		return fmt.Errorf("failed to check if tag exists: %w", err)
	}

	if !exist {
		return failure.NotFound("tag not found") // nolint:wrapcheck
	}

	if err = s.repo.DeleteWithMemberships(ctx, id); err != nil {
		log.Error().Err(err).Msg("failed to delete tag")

		return fmt.Errorf("failed to delete tag: %w", err)
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
		log.Error().Err(err).Msg("failed to check if tag name is taken")

		return fmt.Errorf("failed to check if tag name is taken: %w", err)
	}

	if exist {
		return failure.Conflict("tag name already exists") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) invalidateList(ctx context.Context, user string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetAllTag, user)); err != nil {
			log.Error().Err(err).Msg("failed to delete tags from cache")
		}
	}()
}
