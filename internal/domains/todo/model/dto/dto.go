package dto

import (
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/google/uuid"

	categoryDto "github.com/evowilliamson/todo/internal/domains/category/model/dto"
	reminderDto "github.com/evowilliamson/todo/internal/domains/reminder/model/dto"
	subtaskDto "github.com/evowilliamson/todo/internal/domains/subtask/model/dto"
	tagModel "github.com/evowilliamson/todo/internal/domains/tag/model"
	tagDto "github.com/evowilliamson/todo/internal/domains/tag/model/dto"
	"github.com/evowilliamson/todo/internal/domains/todo/model"
	"github.com/evowilliamson/todo/shared"
	"github.com/evowilliamson/todo/shared/constant"
	gDto "github.com/evowilliamson/todo/shared/dto"
	"github.com/evowilliamson/todo/shared/failure"
	gModel "github.com/evowilliamson/todo/shared/model"
	"github.com/evowilliamson/todo/shared/timezone"
	"github.com/evowilliamson/todo/shared/validator"
)

type CreateTodoRequest struct {
	Title       string     `json:"title"       validate:"required,max=200"`
	Description string     `json:"description" validate:"omitempty,max=2000"`
	Status      string     `json:"status"      validate:"omitempty,oneof=to_do in_progress completed"`
	Priority    string     `json:"priority"    validate:"omitempty,oneof=low medium high urgent"`
	DueDate     *time.Time `json:"due_date"`
	CategoryID  *string    `json:"category_id" validate:"omitempty,uuid"`
	Position    int        `json:"position"    validate:"omitempty,gte=0"`
	Tags        []string   `json:"tags"        validate:"omitempty,dive,uuid"`
}

func (c *CreateTodoRequest) ToModel(user string) model.Todo {
	status := c.Status
	if status == "" {
		status = model.StatusToDo
	}

	priority := c.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}

	var completedAt *time.Time
	if status == model.StatusCompleted {
		now := timezone.Now()
		completedAt = &now
	}

	return model.Todo{
		ID:          uuid.NewString(),
		UserID:      user,
		CategoryID:  c.CategoryID,
		Title:       c.Title,
		Description: c.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     c.DueDate,
		Position:    c.Position,
		CompletedAt: completedAt,
		DeletedAt:   nil,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// UpdateTodoRequest carries partial field updates. Nil pointers mean the
// field was absent from the request; Tags distinguishes absent (nil)
// from an explicit empty list, which clears all tags. An empty
// CategoryID detaches the category and a zero DueDate clears the due
// date. Status changes go through SetStatus so completed_at stays
// consistent, so this request deliberately has no status field.
type UpdateTodoRequest struct {
	Title       *string    `db:"title"       json:"title"       validate:"omitempty,max=200"`
	Description *string    `db:"description" json:"description" validate:"omitempty,max=2000"`
	Priority    *string    `db:"priority"    json:"priority"    validate:"omitempty,oneof=low medium high urgent"`
	DueDate     *time.Time `db:"due_date"    json:"due_date"    validate:"omitempty"`
	CategoryID  *string    `db:"category_id" json:"category_id" validate:"omitempty,uuid"`
	Position    *int       `db:"position"    json:"position"    validate:"omitempty,gte=0"`
	Tags        *[]string  `json:"tags"      validate:"omitempty,dive,uuid"`
}

// IsEmpty reports whether the request carries nothing to change.
func (u *UpdateTodoRequest) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Priority == nil &&
		u.DueDate == nil && u.CategoryID == nil && u.Position == nil && u.Tags == nil
}

type SetStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=to_do in_progress completed"`
}

const (
	BulkOperationDelete      = "delete"
	BulkOperationComplete    = "complete"
	BulkOperationUncomplete  = "uncomplete"
	BulkOperationSetPriority = "setPriority"
	BulkOperationSetCategory = "setCategory"
)

type BulkOperationRequest struct {
	TodoIDs   []string `json:"todoIds"   validate:"required,min=1,dive,uuid"`
	Operation string   `json:"operation" validate:"required,oneof=delete complete uncomplete setPriority setCategory"`
	Value     string   `json:"value"     validate:"omitempty"`
}

// ValidateValue checks that the value matches the shape the operation
// requires: a priority enum for setPriority, a category id for
// setCategory, and nothing for the rest.
func (b *BulkOperationRequest) ValidateValue() error {
	switch b.Operation {
	case BulkOperationSetPriority:
		return validator.ValidateVar(b.Value, "required,oneof=low medium high urgent")
	case BulkOperationSetCategory:
		return validator.ValidateVar(b.Value, "required,uuid")
	default:
		if b.Value != "" {
			return failure.BadRequestFromString(fmt.Sprintf("operation %s does not take a value", b.Operation))
		}

		return nil
	}
}

// ListTodosRequest is the filter/sort/page specification of a todo list
// query. The owner scope is not part of the request; it is injected
// when the filter is built.
type ListTodosRequest struct {
	Status         string
	Priority       string
	CategoryID     string
	TagID          string
	Search         string
	IncludeDeleted bool
	Params         gDto.QueryParams
}

func (l *ListTodosRequest) FromRequest(r *http.Request) {
	query := r.URL.Query()

	l.Status = query.Get(constant.RequestParamStatus)
	l.Priority = query.Get(constant.RequestParamPriority)
	l.CategoryID = query.Get(constant.RequestParamCategoryID)
	l.TagID = query.Get(constant.RequestParamTagID)
	l.Search = query.Get(constant.RequestParamSearch)

	if include := shared.ConvertStringToBool(query.Get(constant.RequestParamIncludeDeleted)); include != nil {
		l.IncludeDeleted = *include
	}

	l.Params.FromRequest(r, true)
}

// BuildQuery translates the request into a storage predicate. The owner
// filter is always applied first; soft-deleted rows stay hidden unless
// explicitly requested. An unknown sort key is a caller error.
func (l *ListTodosRequest) BuildQuery(ownerID string) (gDto.QueryParams, gDto.FilterGroup, error) {
	if !slices.Contains(model.SortableFields, l.Params.SortBy) {
		return l.Params, gDto.FilterGroup{}, failure.BadRequestFromString(fmt.Sprintf("invalid sort key: %s", l.Params.SortBy)) //nolint:wrapcheck
	}

	if err := l.validateFilters(); err != nil {
		return l.Params, gDto.FilterGroup{}, err
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    ownerID,
				Table:    model.TableName,
			},
		},
	}

	if !l.IncludeDeleted {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldDeletedAt,
			Operator: gDto.FilterIsNull,
			Table:    model.TableName,
		})
	}

	if l.Status != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    l.Status,
			Table:    model.TableName,
		})
	}

	if l.Priority != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldPriority,
			Operator: gDto.FilterOperatorEq,
			Value:    l.Priority,
			Table:    model.TableName,
		})
	}

	if l.CategoryID != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldCategoryID,
			Operator: gDto.FilterOperatorEq,
			Value:    l.CategoryID,
			Table:    model.TableName,
		})
	}

	if l.TagID != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Operator: gDto.FilterPlainQuery,
			Value: fmt.Sprintf(
				"EXISTS (SELECT 1 FROM %s WHERE %s.%s = %s.%s AND %s.%s = :filter_tag_id)",
				tagModel.JoinTableName,
				tagModel.JoinTableName, tagModel.JoinFieldTodoID,
				model.TableName, model.FieldID,
				tagModel.JoinTableName, tagModel.JoinFieldTagID,
			),
			Args: map[string]any{"filter_tag_id": l.TagID},
		})
	}

	if l.Search != "" {
		filter.Filters = append(filter.Filters, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{
					Field:    model.FieldTitle,
					Operator: gDto.FilterOperatorLike,
					Value:    l.Search,
					Table:    model.TableName,
				},
				gDto.Filter{
					Field:    model.FieldDescription,
					Operator: gDto.FilterOperatorLike,
					Value:    l.Search,
					Table:    model.TableName,
				},
			},
		})
	}

	return l.Params, filter, nil
}

func (l *ListTodosRequest) validateFilters() error {
	if l.Status != "" {
		if err := validator.ValidateVar(l.Status, "oneof=to_do in_progress completed"); err != nil {
			return err //nolint:wrapcheck
		}
	}

	if l.Priority != "" {
		if err := validator.ValidateVar(l.Priority, "oneof=low medium high urgent"); err != nil {
			return err //nolint:wrapcheck
		}
	}

	if l.CategoryID != "" {
		if err := validator.ValidateVar(l.CategoryID, "uuid"); err != nil {
			return err //nolint:wrapcheck
		}
	}

	if l.TagID != "" {
		if err := validator.ValidateVar(l.TagID, "uuid"); err != nil {
			return err //nolint:wrapcheck
		}
	}

	return nil
}

type TodoResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"due_date"`
	CategoryID  *string `json:"category_id"`
	Position    int     `json:"position"`
	IsDeleted   bool    `json:"is_deleted"`
	DeletedAt   *string `json:"deleted_at"`
	CompletedAt *string `json:"completed_at"`
	gDto.Metadata
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}

	formatted := timezone.Format(*t, constant.DateFormat)

	return &formatted
}

func (r *TodoResponse) FromModel(mod model.Todo) {
	r.ID = mod.ID
	r.Title = mod.Title
	r.Description = mod.Description
	r.Status = mod.Status
	r.Priority = mod.Priority
	r.DueDate = formatTime(mod.DueDate)
	r.CategoryID = mod.CategoryID
	r.Position = mod.Position
	r.IsDeleted = mod.IsDeleted()
	r.DeletedAt = formatTime(mod.DeletedAt)
	r.CompletedAt = formatTime(mod.CompletedAt)
	r.Metadata.FromModel(mod.Metadata)
}

// TodoDetailResponse is a todo with its relations resolved, returned by
// single-todo reads.
type TodoDetailResponse struct {
	TodoResponse
	Category  *categoryDto.CategoryResponse  `json:"category"`
	Tags      []tagDto.TagResponse           `json:"tags"`
	Subtasks  []subtaskDto.SubtaskResponse   `json:"subtasks"`
	Reminders []reminderDto.ReminderResponse `json:"reminders"`
}

type PaginationResponse struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"total_pages"`
}

type GetTodosResponse struct {
	Todos      []TodoResponse     `json:"todos"`
	Pagination PaginationResponse `json:"pagination"`
}

func (r *GetTodosResponse) FromModels(models []model.Todo, total int, params gDto.QueryParams) {
	r.Pagination = PaginationResponse{
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: shared.CalculateTotalPage(total, params.Limit),
	}

	r.Todos = make([]TodoResponse, len(models))
	for i, mod := range models {
		r.Todos[i].FromModel(mod)
	}
}

type GetTrashResponse struct {
	Todos []TodoResponse `json:"todos"`
}

func (r *GetTrashResponse) FromModels(models []model.Todo) {
	r.Todos = make([]TodoResponse, len(models))
	for i, mod := range models {
		r.Todos[i].FromModel(mod)
	}
}

type BulkOperationResponse struct {
	Affected int `json:"affected"`
}

// CategoryTodosResponse is a category together with its live todos.
type CategoryTodosResponse struct {
	Category categoryDto.CategoryResponse `json:"category"`
	Todos    []TodoResponse               `json:"todos"`
}

// TodoEvent is the lifecycle payload published to the event stream.
type TodoEvent struct {
	Action string `json:"action"`
	TodoID string `json:"todo_id"`
	UserID string `json:"user_id"`
	Title  string `json:"title"`
}
