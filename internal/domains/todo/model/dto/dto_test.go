package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/evowilliamson/todo/internal/domains/todo/model"
	"github.com/evowilliamson/todo/internal/domains/todo/model/dto"
	gDto "github.com/evowilliamson/todo/shared/dto"
	gModel "github.com/evowilliamson/todo/shared/model"
	"github.com/evowilliamson/todo/shared/timezone"
)

func TestCreateTodoRequest_ToModel(t *testing.T) {
	req := dto.CreateTodoRequest{
		Title:       "Test Todo",
		Description: "Test Description",
	}

	userID := "test-user-id"
	todo := req.ToModel(userID)

	assert.NotEmpty(t, todo.ID, "expected ID to be generated")
	assert.Equal(t, req.Title, todo.Title)
	assert.Equal(t, req.Description, todo.Description)
	assert.Equal(t, model.StatusToDo, todo.Status)
	assert.Equal(t, model.PriorityMedium, todo.Priority)
	assert.Nil(t, todo.CompletedAt)
	assert.Nil(t, todo.DeletedAt)
	assert.Equal(t, userID, todo.UserID)
	assert.Equal(t, userID, todo.CreatedBy)
	assert.Equal(t, userID, todo.ModifiedBy)
	assert.False(t, todo.CreatedAt.IsZero(), "expected CreatedAt to be set")
	assert.False(t, todo.ModifiedAt.IsZero(), "expected ModifiedAt to be set")
}

func TestCreateTodoRequest_ToModel_CreatedCompleted(t *testing.T) {
	req := dto.CreateTodoRequest{
		Title:  "Test Todo",
		Status: model.StatusCompleted,
	}

	todo := req.ToModel("test-user-id")

	assert.Equal(t, model.StatusCompleted, todo.Status)
	assert.NotNil(t, todo.CompletedAt, "expected CompletedAt to be stamped")
}

func TestUpdateTodoRequest_IsEmpty(t *testing.T) {
	title := "Renamed"
	noTags := []string{}

	tests := []struct {
		name string
		req  dto.UpdateTodoRequest
		want bool
	}{
		{
			name: "no fields set",
			req:  dto.UpdateTodoRequest{},
			want: true,
		},
		{
			name: "title set",
			req:  dto.UpdateTodoRequest{Title: &title},
			want: false,
		},
		{
			name: "explicit empty tag list",
			req:  dto.UpdateTodoRequest{Tags: &noTags},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.IsEmpty())
		})
	}
}

func TestBulkOperationRequest_ValidateValue(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.BulkOperationRequest
		wantErr bool
	}{
		{
			name:    "delete without value",
			req:     dto.BulkOperationRequest{Operation: dto.BulkOperationDelete},
			wantErr: false,
		},
		{
			name:    "delete with value",
			req:     dto.BulkOperationRequest{Operation: dto.BulkOperationDelete, Value: "high"},
			wantErr: true,
		},
		{
			name:    "setPriority with valid priority",
			req:     dto.BulkOperationRequest{Operation: dto.BulkOperationSetPriority, Value: "urgent"},
			wantErr: false,
		},
		{
			name:    "setPriority with unknown priority",
			req:     dto.BulkOperationRequest{Operation: dto.BulkOperationSetPriority, Value: "whenever"},
			wantErr: true,
		},
		{
			name:    "setPriority without value",
			req:     dto.BulkOperationRequest{Operation: dto.BulkOperationSetPriority},
			wantErr: true,
		},
		{
			name:    "setCategory with uuid",
			req:     dto.BulkOperationRequest{Operation: dto.BulkOperationSetCategory, Value: "8b9df3bc-07e4-4d2c-8b27-4d1a0a1c2f01"},
			wantErr: false,
		},
		{
			name:    "setCategory with malformed id",
			req:     dto.BulkOperationRequest{Operation: dto.BulkOperationSetCategory, Value: "not-a-uuid"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.ValidateValue()

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestListTodosRequest_BuildQuery(t *testing.T) {
	ownerID := "test-user-id"
	params := gDto.QueryParams{Page: 1, Limit: 50, SortBy: "created_at", SortDir: gDto.SortDirDesc}

	t.Run("owner and trash filters are always applied", func(t *testing.T) {
		req := dto.ListTodosRequest{Params: params}

		_, filter, err := req.BuildQuery(ownerID)

		assert.NoError(t, err)
		assert.Len(t, filter.Filters, 2)

		owner, ok := filter.Filters[0].(gDto.Filter)
		assert.True(t, ok)
		assert.Equal(t, model.FieldUserID, owner.Field)
		assert.Equal(t, ownerID, owner.Value)

		trash, ok := filter.Filters[1].(gDto.Filter)
		assert.True(t, ok)
		assert.Equal(t, model.FieldDeletedAt, trash.Field)
		assert.Equal(t, gDto.FilterIsNull, trash.Operator)
	})

	t.Run("include_deleted drops the trash filter", func(t *testing.T) {
		req := dto.ListTodosRequest{IncludeDeleted: true, Params: params}

		_, filter, err := req.BuildQuery(ownerID)

		assert.NoError(t, err)
		assert.Len(t, filter.Filters, 1)
	})

	t.Run("tag filter uses a membership subquery", func(t *testing.T) {
		tagID := "91a4a2fc-2356-4e0a-92cb-6c03ffd38e30"
		req := dto.ListTodosRequest{TagID: tagID, Params: params}

		_, filter, err := req.BuildQuery(ownerID)

		assert.NoError(t, err)

		last, ok := filter.Filters[len(filter.Filters)-1].(gDto.Filter)
		assert.True(t, ok)
		assert.Equal(t, gDto.FilterPlainQuery, last.Operator)
		assert.Contains(t, last.Value, "EXISTS")
		assert.Equal(t, tagID, last.Args["filter_tag_id"])
	})

	t.Run("search matches title or description", func(t *testing.T) {
		req := dto.ListTodosRequest{Search: "groceries", Params: params}

		_, filter, err := req.BuildQuery(ownerID)

		assert.NoError(t, err)

		last, ok := filter.Filters[len(filter.Filters)-1].(gDto.FilterGroup)
		assert.True(t, ok)
		assert.Equal(t, gDto.FilterGroupOperatorOr, last.Operator)
		assert.Len(t, last.Filters, 2)
	})

	t.Run("unknown sort key is rejected", func(t *testing.T) {
		badParams := params
		badParams.SortBy = "password"
		req := dto.ListTodosRequest{Params: badParams}

		_, _, err := req.BuildQuery(ownerID)

		assert.Error(t, err)
	})

	t.Run("invalid status filter is rejected", func(t *testing.T) {
		req := dto.ListTodosRequest{Status: "done", Params: params}

		_, _, err := req.BuildQuery(ownerID)

		assert.Error(t, err)
	})
}

func TestTodoResponse_FromModel(t *testing.T) {
	now := timezone.Now()
	deletedAt := now.Add(-time.Hour)
	todoModel := model.Todo{
		ID:          "test-id",
		UserID:      "test-user",
		Title:       "Test Todo",
		Description: "Test Description",
		Status:      model.StatusInProgress,
		Priority:    model.PriorityHigh,
		DeletedAt:   &deletedAt,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  "test-user",
			ModifiedBy: "test-user",
		},
	}

	var response dto.TodoResponse
	response.FromModel(todoModel)

	assert.Equal(t, todoModel.ID, response.ID)
	assert.Equal(t, todoModel.Title, response.Title)
	assert.Equal(t, todoModel.Status, response.Status)
	assert.Equal(t, todoModel.Priority, response.Priority)
	assert.True(t, response.IsDeleted)
	assert.NotNil(t, response.DeletedAt)
	assert.Nil(t, response.CompletedAt)
	assert.Equal(t, todoModel.CreatedBy, response.CreatedBy)
}

func TestGetTodosResponse_FromModels(t *testing.T) {
	now := timezone.Now()
	todos := []model.Todo{
		{
			ID:       "test-id-1",
			Title:    "Test Todo 1",
			Status:   model.StatusToDo,
			Priority: model.PriorityMedium,
			Metadata: gModel.Metadata{
				CreatedAt:  now,
				ModifiedAt: now,
				CreatedBy:  "test-user",
				ModifiedBy: "test-user",
			},
		},
		{
			ID:       "test-id-2",
			Title:    "Test Todo 2",
			Status:   model.StatusCompleted,
			Priority: model.PriorityLow,
			Metadata: gModel.Metadata{
				CreatedAt:  now,
				ModifiedAt: now,
				CreatedBy:  "test-user",
				ModifiedBy: "test-user",
			},
		},
	}

	params := gDto.QueryParams{Page: 2, Limit: 10}
	total := 15

	var response dto.GetTodosResponse
	response.FromModels(todos, total, params)

	assert.Equal(t, total, response.Pagination.Total)
	assert.Equal(t, 2, response.Pagination.Page)
	assert.Equal(t, 2, response.Pagination.TotalPages) // 15 items with limit 10 give 2 pages
	assert.Len(t, response.Todos, len(todos))

	for i, todo := range response.Todos {
		assert.Equal(t, todos[i].ID, todo.ID)
		assert.Equal(t, todos[i].Title, todo.Title)
	}
}

func TestGetTodosResponse_FromModels_EmptyList(t *testing.T) {
	var todos []model.Todo

	var response dto.GetTodosResponse
	response.FromModels(todos, 0, gDto.QueryParams{Page: 1, Limit: 10})

	assert.Equal(t, 0, response.Pagination.Total)
	assert.Equal(t, 0, response.Pagination.TotalPages) // ceil(0/limit)
	assert.Len(t, response.Todos, 0)
}
