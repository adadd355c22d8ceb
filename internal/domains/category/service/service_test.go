package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/evowilliamson/todo/config"
	"github.com/evowilliamson/todo/infras/otel/mocks"
	categoryMocks "github.com/evowilliamson/todo/internal/domains/category/mocks"
	"github.com/evowilliamson/todo/internal/domains/category/model"
	"github.com/evowilliamson/todo/internal/domains/category/model/dto"
	"github.com/evowilliamson/todo/internal/domains/category/service"
	todoMocks "github.com/evowilliamson/todo/internal/domains/todo/mocks"
	todoModel "github.com/evowilliamson/todo/internal/domains/todo/model"
	cacheMocks "github.com/evowilliamson/todo/shared/cache/mocks"
	"github.com/evowilliamson/todo/shared/constant"
)

const testUserID = "2a05bb5a-9e17-4a32-8dd8-22ef29ac04f2"

func newService(ctrl *gomock.Controller) (service.Category, *categoryMocks.MockCategory, *todoMocks.MockTodo, *cacheMocks.MockRedisCache) {
	mockRepo := categoryMocks.NewMockCategory(ctrl)
	mockTodo := todoMocks.NewMockTodo(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(mockRepo, mockTodo, cfg, mockCache, mocks.NewOtel()), mockRepo, mockTodo, mockCache
}

func testCtx() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, testUserID)
}

func TestCategoryService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateCategoryRequest
		setupMock func(mockRepo *categoryMocks.MockCategory)
		wantErr   bool
	}{
		{
			name: "successful creation",
			req:  dto.CreateCategoryRequest{Name: "Work", Color: "#FF0000"},
			setupMock: func(mockRepo *categoryMocks.MockCategory) {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantErr: false,
		},
		{
			name: "name already taken",
			req:  dto.CreateCategoryRequest{Name: "Work"},
			setupMock: func(mockRepo *categoryMocks.MockCategory) {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr: true,
		},
		{
			name: "repository error",
			req:  dto.CreateCategoryRequest{Name: "Work"},
			setupMock: func(mockRepo *categoryMocks.MockCategory) {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, mockRepo, _, _ := newService(ctrl)
			tt.setupMock(mockRepo)

			res, err := svc.Create(testCtx(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, res.ID)
				assert.Equal(t, tt.req.Name, res.Name)
			}
		})
	}
}

func TestCategoryService_Create_DefaultColor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _, _ := newService(ctrl)

	mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
	mockRepo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, category model.Category) error {
			assert.Equal(t, model.DefaultColor, category.Color)

			return nil
		})

	res, err := svc.Create(testCtx(), dto.CreateCategoryRequest{Name: "Work"})

	assert.NoError(t, err)
	assert.Equal(t, model.DefaultColor, res.Color)
}

func TestCategoryService_GetAll(t *testing.T) {
	t.Run("cache miss hits the repository", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo, _, mockCache := newService(ctrl)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Category{{ID: "cat-1", Name: "Work"}}, nil)

		res, err := svc.GetAll(testCtx())

		assert.NoError(t, err)
		assert.Len(t, res.Categories, 1)
		assert.Equal(t, "Work", res.Categories[0].Name)
	})

	t.Run("repository error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo, _, mockCache := newService(ctrl)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("database error"))

		_, err := svc.GetAll(testCtx())

		assert.Error(t, err)
	})
}

func TestCategoryService_GetTodos(t *testing.T) {
	t.Run("returns category with its live todos", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo, mockTodo, _ := newService(ctrl)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Category{ID: "cat-1", UserID: testUserID, Name: "Work"}, nil)
		mockTodo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]todoModel.Todo{{ID: "todo-1", Title: "Report"}}, nil)

		res, err := svc.GetTodos(testCtx(), "cat-1")

		assert.NoError(t, err)
		assert.Equal(t, "Work", res.Category.Name)
		assert.Len(t, res.Todos, 1)
		assert.Equal(t, "Report", res.Todos[0].Title)
	})

	t.Run("category not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo, _, _ := newService(ctrl)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Category{}, nil)

		_, err := svc.GetTodos(testCtx(), "missing-id")

		assert.Error(t, err)
	})
}

func TestCategoryService_Update(t *testing.T) {
	name := "Renamed"

	tests := []struct {
		name      string
		req       dto.UpdateCategoryRequest
		setupMock func(mockRepo *categoryMocks.MockCategory)
		wantErr   bool
	}{
		{
			name: "successful update",
			req:  dto.UpdateCategoryRequest{Name: &name},
			setupMock: func(mockRepo *categoryMocks.MockCategory) {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			wantErr: false,
		},
		{
			name:      "empty request",
			req:       dto.UpdateCategoryRequest{},
			setupMock: func(mockRepo *categoryMocks.MockCategory) {},
			wantErr:   true,
		},
		{
			name: "category not found",
			req:  dto.UpdateCategoryRequest{Name: &name},
			setupMock: func(mockRepo *categoryMocks.MockCategory) {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr: true,
		},
		{
			name: "new name already taken",
			req:  dto.UpdateCategoryRequest{Name: &name},
			setupMock: func(mockRepo *categoryMocks.MockCategory) {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, mockRepo, _, _ := newService(ctrl)
			tt.setupMock(mockRepo)

			err := svc.Update(testCtx(), tt.req, "category-id")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCategoryService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mockRepo *categoryMocks.MockCategory)
		wantErr   bool
	}{
		{
			name: "successful deletion detaches todos",
			setupMock: func(mockRepo *categoryMocks.MockCategory) {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				mockRepo.EXPECT().DeleteAndDetachTodos(gomock.Any(), "category-id").Return(nil)
			},
			wantErr: false,
		},
		{
			name: "category not found",
			setupMock: func(mockRepo *categoryMocks.MockCategory) {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr: true,
		},
		{
			name: "repository error",
			setupMock: func(mockRepo *categoryMocks.MockCategory) {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				mockRepo.EXPECT().DeleteAndDetachTodos(gomock.Any(), "category-id").Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, mockRepo, _, _ := newService(ctrl)
			tt.setupMock(mockRepo)

			err := svc.Delete(testCtx(), "category-id")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
