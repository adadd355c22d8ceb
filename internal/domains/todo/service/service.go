package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/evowilliamson/todo/config"
	"github.com/evowilliamson/todo/infras/kafka"
	"github.com/evowilliamson/todo/infras/otel"
	categoryModel "github.com/evowilliamson/todo/internal/domains/category/model"
	categoryDto "github.com/evowilliamson/todo/internal/domains/category/model/dto"
	categoryRepo "github.com/evowilliamson/todo/internal/domains/category/repository"
	reminderModel "github.com/evowilliamson/todo/internal/domains/reminder/model"
	reminderDto "github.com/evowilliamson/todo/internal/domains/reminder/model/dto"
	reminderRepo "github.com/evowilliamson/todo/internal/domains/reminder/repository"
	subtaskModel "github.com/evowilliamson/todo/internal/domains/subtask/model"
	subtaskDto "github.com/evowilliamson/todo/internal/domains/subtask/model/dto"
	subtaskRepo "github.com/evowilliamson/todo/internal/domains/subtask/repository"
	tagDto "github.com/evowilliamson/todo/internal/domains/tag/model/dto"
	tagRepo "github.com/evowilliamson/todo/internal/domains/tag/repository"
	"github.com/evowilliamson/todo/internal/domains/todo/model"
	"github.com/evowilliamson/todo/internal/domains/todo/model/dto"
	"github.com/evowilliamson/todo/internal/domains/todo/repository"
	"github.com/evowilliamson/todo/shared"
	"github.com/evowilliamson/todo/shared/cache"
	"github.com/evowilliamson/todo/shared/constant"
	gDto "github.com/evowilliamson/todo/shared/dto"
	"github.com/evowilliamson/todo/shared/failure"
	"github.com/evowilliamson/todo/shared/timezone"
)

const (
	cacheGetTodo    = "todo:get"
	cacheGetAllTodo = "todo:gets"
	cacheCountTodo  = "todo:count"
	cacheTrashTodo  = "todo:trash"
)

const (
	eventTodoCreated  = "created"
	eventTodoUpdated  = "updated"
	eventTodoTrashed  = "trashed"
	eventTodoRestored = "restored"
	eventTodoPurged   = "purged"
)

type Todo interface {
	Create(ctx context.Context, req dto.CreateTodoRequest) (dto.TodoResponse, error)
	GetAll(ctx context.Context, req dto.ListTodosRequest) (dto.GetTodosResponse, error)
	Get(ctx context.Context, id string) (dto.TodoDetailResponse, error)
	Update(ctx context.Context, req dto.UpdateTodoRequest, id string) (dto.TodoResponse, error)
	SetStatus(ctx context.Context, id, status string) (dto.TodoResponse, error)
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) (dto.TodoResponse, error)
	Purge(ctx context.Context, id string) error
	ListTrash(ctx context.Context) (dto.GetTrashResponse, error)
	Bulk(ctx context.Context, req dto.BulkOperationRequest) (dto.BulkOperationResponse, error)
}

type serviceImpl struct {
	repo         repository.Todo
	tagRepo      tagRepo.Tag
	categoryRepo categoryRepo.Category
	subtaskRepo  subtaskRepo.Subtask
	reminderRepo reminderRepo.Reminder
	cfg          *config.Config
	cache        cache.RedisCache
	kafka        kafka.Client
	otel         otel.Otel
}

func New(
	repo repository.Todo,
	tagRepo tagRepo.Tag,
	categoryRepo categoryRepo.Category,
	subtaskRepo subtaskRepo.Subtask,
	reminderRepo reminderRepo.Reminder,
	cfg *config.Config,
	cache cache.RedisCache,
	kafkaClient kafka.Client,
	otel otel.Otel,
) Todo {
	return &serviceImpl{
		repo:         repo,
		tagRepo:      tagRepo,
		categoryRepo: categoryRepo,
		subtaskRepo:  subtaskRepo,
		reminderRepo: reminderRepo,
		cfg:          cfg,
		cache:        cache,
		kafka:        kafkaClient,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTodoRequest) (res dto.TodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if req.CategoryID != nil && *req.CategoryID != "" {
		if err = s.checkCategoryOwned(ctx, user, *req.CategoryID); err != nil {
			return res, err
		}
	}

	if len(req.Tags) > 0 {
		if err = s.checkTagsOwned(ctx, user, req.Tags); err != nil {
			return res, err
		}
	}

	todo := req.ToModel(user)

	if err = s.repo.Insert(ctx, todo); err != nil {
		log.Error().Err(err).Msg("failed to create todo")

		return res, fmt.Errorf("failed to create todo: %w", err)
	}

	if len(req.Tags) > 0 {
		if err = s.tagRepo.ReplaceForTodo(ctx, todo.ID, req.Tags); err != nil {
			log.Error().Err(err).Msg("failed to attach tags to todo")

			return res, fmt.Errorf("failed to attach tags to todo: %w", err)
		}
	}

	res.FromModel(todo)

	s.publishEvent(ctx, eventTodoCreated, todo)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllTodo)
		shared.InvalidateCaches(c, s.cache, cacheCountTodo)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req dto.ListTodosRequest) (res dto.GetTodosResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	params, filter, err := req.BuildQuery(user)
	if err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllTodo, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for todos")

		return res, nil
	}

	total, err := s.count(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count todos")

		return res, fmt.Errorf("failed to count todos: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get todos")

		return res, fmt.Errorf("failed to get todos: %w", err)
	}

	res.FromModels(models, total, params)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save todos to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountTodo, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for todo count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save todo count to cache")
		}
	}()

	return res, nil
}

// Get resolves a single todo with its relations. Trashed todos are
// still readable here so their detail can be inspected before a
// restore or purge.
func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.TodoDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	cacheKey := shared.BuildCacheKey(cacheGetTodo, user, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for todo")

		return res, nil
	}

	todo, err := s.getOwned(ctx, user, id)
	if err != nil {
		return res, err
	}

	res.FromModel(todo)

	if err = s.resolveRelations(ctx, user, todo, &res); err != nil {
		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save todo to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateTodoRequest, id string) (res dto.TodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.IsEmpty() {
		return res, failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if _, err = s.getOwnedActive(ctx, user, id); err != nil {
		return res, err
	}

	updatedFields := shared.TransformFields(req, user)
	delete(updatedFields, model.FieldStatus)

	if req.CategoryID != nil {
		// An explicit empty category id detaches the todo from its
		// category.
		if *req.CategoryID == "" {
			updatedFields[model.FieldCategoryID] = nil
		} else if err = s.checkCategoryOwned(ctx, user, *req.CategoryID); err != nil {
			return res, err
		}
	}

	// An explicit zero due date clears it.
	if req.DueDate != nil && req.DueDate.IsZero() {
		updatedFields[model.FieldDueDate] = nil
	}

	if req.Tags != nil {
		if len(*req.Tags) > 0 {
			if err = s.checkTagsOwned(ctx, user, *req.Tags); err != nil {
				return res, err
			}
		}

		if err = s.tagRepo.ReplaceForTodo(ctx, id, *req.Tags); err != nil {
			log.Error().Err(err).Msg("failed to replace tags for todo")

			return res, fmt.Errorf("failed to replace tags for todo: %w", err)
		}
	}

	if err = s.repo.Update(ctx, updatedFields, s.ownedFilter(user, id)); err != nil {
		log.Error().Err(err).Msg("failed to update todo")

		return res, fmt.Errorf("failed to update todo: %w", err)
	}

	todo, err := s.getOwned(ctx, user, id)
	if err != nil {
		return res, err
	}

	res.FromModel(todo)

	s.publishEvent(ctx, eventTodoUpdated, todo)
	s.invalidateTodoCaches(ctx, user, id)

	return res, nil
}

// SetStatus is the single path for status transitions so completed_at
// stays consistent: it is stamped when a todo becomes completed and
// cleared whenever it leaves that state.
func (s *serviceImpl) SetStatus(ctx context.Context, id, status string) (res dto.TodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if _, err = s.getOwnedActive(ctx, user, id); err != nil {
		return res, err
	}

	updatedFields := map[string]any{
		model.FieldStatus:        status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if status == model.StatusCompleted {
		updatedFields[model.FieldCompletedAt] = timezone.Now()
	} else {
		updatedFields[model.FieldCompletedAt] = nil
	}

	if err = s.repo.Update(ctx, updatedFields, s.ownedFilter(user, id)); err != nil {
		log.Error().Err(err).Msg("failed to set todo status")

		return res, fmt.Errorf("failed to set todo status: %w", err)
	}

	todo, err := s.getOwned(ctx, user, id)
	if err != nil {
		return res, err
	}

	res.FromModel(todo)

	s.publishEvent(ctx, eventTodoUpdated, todo)
	s.invalidateTodoCaches(ctx, user, id)

	return res, nil
}

func (s *serviceImpl) SoftDelete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SoftDelete")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	todo, err := s.getOwnedActive(ctx, user, id)
	if err != nil {
		return err
	}

	updatedFields := map[string]any{
		model.FieldDeletedAt:     timezone.Now(),
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, updatedFields, s.ownedFilter(user, id)); err != nil {
		log.Error().Err(err).Msg("failed to move todo to trash")

		return fmt.Errorf("failed to move todo to trash: %w", err)
	}

	s.publishEvent(ctx, eventTodoTrashed, todo)
	s.invalidateTodoCaches(ctx, user, id)

	return nil
}

func (s *serviceImpl) Restore(ctx context.Context, id string) (res dto.TodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Restore")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if _, err = s.getOwnedTrashed(ctx, user, id); err != nil {
		return res, err
	}

	updatedFields := map[string]any{
		model.FieldDeletedAt:     nil,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, updatedFields, s.ownedFilter(user, id)); err != nil {
		log.Error().Err(err).Msg("failed to restore todo")

		return res, fmt.Errorf("failed to restore todo: %w", err)
	}

	todo, err := s.getOwned(ctx, user, id)
	if err != nil {
		return res, err
	}

	res.FromModel(todo)

	s.publishEvent(ctx, eventTodoRestored, todo)
	s.invalidateTodoCaches(ctx, user, id)

	return res, nil
}

// Purge permanently removes a todo with its subtasks, reminders and
// tag memberships. It works on live and trashed todos alike and cannot
// be undone.
func (s *serviceImpl) Purge(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Purge")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	todo, err := s.getOwned(ctx, user, id)
	if err != nil {
		return err
	}

	if err = s.repo.Purge(ctx, id); err != nil {
		log.Error().Err(err).Msg("failed to purge todo")

		return fmt.Errorf("failed to purge todo: %w", err)
	}

	s.publishEvent(ctx, eventTodoPurged, todo)
	s.invalidateTodoCaches(ctx, user, id)

	return nil
}

func (s *serviceImpl) ListTrash(ctx context.Context) (res dto.GetTrashResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListTrash")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	cacheKey := shared.BuildCacheKey(cacheTrashTodo, user)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for trash")

		return res, nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldUserID, Operator: gDto.FilterOperatorEq, Value: user, Table: model.TableName},
			gDto.Filter{Field: model.FieldDeletedAt, Operator: gDto.FilterIsNotNull, Table: model.TableName},
		},
	}

	params := gDto.QueryParams{SortBy: model.FieldDeletedAt, SortDir: "DESC"}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get trash")

		return res, fmt.Errorf("failed to get trash: %w", err)
	}

	res.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save trash to cache")
		}
	}()

	return res, nil
}

// Bulk applies one operation to many todos at once. Ids the caller
// does not own are silently dropped; the reported count covers only
// the rows actually touched.
func (s *serviceImpl) Bulk(ctx context.Context, req dto.BulkOperationRequest) (res dto.BulkOperationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Bulk")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = req.ValidateValue(); err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	// Ownership is the only gate here; trashed todos are bulk targets
	// just like live ones.
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldUserID, Operator: gDto.FilterOperatorEq, Value: user, Table: model.TableName},
			gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorIn, Value: req.TodoIDs, Table: model.TableName},
		},
	}

	owned, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filter, model.FieldID)
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve todos for bulk operation")

		return res, fmt.Errorf("failed to resolve todos for bulk operation: %w", err)
	}

	if len(owned) == 0 {
		return res, failure.NotFound("todos not found") // nolint:wrapcheck
	}

	updatedFields, err := s.bulkFields(ctx, user, req)
	if err != nil {
		return res, err
	}

	ownedIDs := make([]string, len(owned))
	for i, todo := range owned {
		ownedIDs[i] = todo.ID
	}

	ownedFilter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorIn, Value: ownedIDs, Table: model.TableName},
		},
	}

	if err = s.repo.Update(ctx, updatedFields, ownedFilter); err != nil {
		log.Error().Err(err).Msg("failed to apply bulk operation")

		return res, fmt.Errorf("failed to apply bulk operation: %w", err)
	}

	res.Affected = len(ownedIDs)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetTodo)
		shared.InvalidateCaches(c, s.cache, cacheGetAllTodo)
		shared.InvalidateCaches(c, s.cache, cacheCountTodo)
		shared.InvalidateCaches(c, s.cache, cacheTrashTodo)
	}()

	return res, nil
}

func (s *serviceImpl) bulkFields(ctx context.Context, user string, req dto.BulkOperationRequest) (map[string]any, error) {
	updatedFields := map[string]any{
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	switch req.Operation {
	case dto.BulkOperationDelete:
		updatedFields[model.FieldDeletedAt] = timezone.Now()
	case dto.BulkOperationComplete:
		updatedFields[model.FieldStatus] = model.StatusCompleted
		updatedFields[model.FieldCompletedAt] = timezone.Now()
	case dto.BulkOperationUncomplete:
		updatedFields[model.FieldStatus] = model.StatusToDo
		updatedFields[model.FieldCompletedAt] = nil
	case dto.BulkOperationSetPriority:
		updatedFields[model.FieldPriority] = req.Value
	case dto.BulkOperationSetCategory:
		if err := s.checkCategoryOwned(ctx, user, req.Value); err != nil {
			return nil, err
		}

		updatedFields[model.FieldCategoryID] = req.Value
	}

	return updatedFields, nil
}

func (s *serviceImpl) resolveRelations(ctx context.Context, user string, todo model.Todo, res *dto.TodoDetailResponse) error {
	if todo.CategoryID != nil {
		category, err := s.categoryRepo.Get(ctx, shared.FilterByIDForOwner(*todo.CategoryID, user, categoryModel.FieldID, categoryModel.FieldUserID, categoryModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get todo category")

			return fmt.Errorf("failed to get todo category: %w", err)
		}

		if category.ID != constant.Empty {
			categoryRes := categoryDto.CategoryResponse{}
			categoryRes.FromModel(category)
			res.Category = &categoryRes
		}
	}

	tags, err := s.tagRepo.ListForTodo(ctx, todo.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to list tags for todo")

		return fmt.Errorf("failed to list tags for todo: %w", err)
	}

	res.Tags = make([]tagDto.TagResponse, len(tags))
	for i, tag := range tags {
		res.Tags[i].FromModel(tag)
	}

	subtaskFilter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: subtaskModel.FieldTodoID, Operator: gDto.FilterOperatorEq, Value: todo.ID, Table: subtaskModel.TableName},
		},
	}

	subtasks, err := s.subtaskRepo.GetAll(ctx, gDto.QueryParams{SortBy: subtaskModel.FieldPosition, SortDir: "ASC"}, subtaskFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list subtasks for todo")

		return fmt.Errorf("failed to list subtasks for todo: %w", err)
	}

	res.Subtasks = subtaskDto.SubtaskResponsesFromModels(subtasks)

	reminderFilter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: reminderModel.FieldTodoID, Operator: gDto.FilterOperatorEq, Value: todo.ID, Table: reminderModel.TableName},
		},
	}

	reminders, err := s.reminderRepo.GetAll(ctx, gDto.QueryParams{SortBy: reminderModel.FieldRemindAt, SortDir: "ASC"}, reminderFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list reminders for todo")

		return fmt.Errorf("failed to list reminders for todo: %w", err)
	}

	res.Reminders = reminderDto.ReminderResponsesFromModels(reminders)

	return nil
}

func (s *serviceImpl) getOwned(ctx context.Context, user, id string) (model.Todo, error) {
	todo, err := s.repo.Get(ctx, s.ownedFilter(user, id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get todo")

		return todo, fmt.Errorf("failed to get todo: %w", err)
	}

	if todo.ID == constant.Empty {
		return todo, failure.NotFound("todo not found") // nolint:wrapcheck
	}

	return todo, nil
}

func (s *serviceImpl) getOwnedActive(ctx context.Context, user, id string) (model.Todo, error) {
	todo, err := s.getOwned(ctx, user, id)
	if err != nil {
		return todo, err
	}

	if todo.IsDeleted() {
		return todo, failure.NotFound("todo not found") // nolint:wrapcheck
	}

	return todo, nil
}

func (s *serviceImpl) getOwnedTrashed(ctx context.Context, user, id string) (model.Todo, error) {
	todo, err := s.getOwned(ctx, user, id)
	if err != nil {
		return todo, err
	}

	if !todo.IsDeleted() {
		return todo, failure.NotFound("todo not found in trash") // nolint:wrapcheck
	}

	return todo, nil
}

func (s *serviceImpl) checkCategoryOwned(ctx context.Context, user, categoryID string) error {
	exist, err := s.categoryRepo.Exist(ctx, shared.FilterByIDForOwner(categoryID, user, categoryModel.FieldID, categoryModel.FieldUserID, categoryModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if category exists")

		return fmt.Errorf("failed to check if category exists: %w", err)
	}

	if !exist {
		return failure.BadRequestFromString("category does not exist") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) checkTagsOwned(ctx context.Context, user string, tagIDs []string) error {
	count, err := s.tagRepo.CountOwned(ctx, user, tagIDs)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if tags exist")

		return fmt.Errorf("failed to check if tags exist: %w", err)
	}

	if count != len(tagIDs) {
		return failure.NotFound("one or more tags do not exist") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) ownedFilter(user, id string) gDto.FilterGroup {
	return shared.FilterByIDForOwner(id, user, model.FieldID, model.FieldUserID, model.TableName)
}

func (s *serviceImpl) publishEvent(ctx context.Context, action string, todo model.Todo) {
	if !s.cfg.Kafka.Enable {
		return
	}

	event := dto.TodoEvent{
		Action: action,
		TodoID: todo.ID,
		UserID: todo.UserID,
		Title:  todo.Title,
	}

	go func() {
		c := context.WithoutCancel(ctx)

		message := kafka.Message{Key: todo.ID, Value: event}
		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topic.TodoEvents, message); err != nil {
			log.Error().Err(err).Str("action", action).Msg("failed to publish todo event")
		}
	}()
}

func (s *serviceImpl) invalidateTodoCaches(ctx context.Context, user, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetTodo, user, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete todo from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllTodo)
		shared.InvalidateCaches(c, s.cache, cacheCountTodo)
		shared.InvalidateCaches(c, s.cache, cacheTrashTodo)
	}()
}
