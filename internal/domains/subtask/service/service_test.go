package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/evowilliamson/todo/config"
	"github.com/evowilliamson/todo/infras/otel/mocks"
	subtaskMocks "github.com/evowilliamson/todo/internal/domains/subtask/mocks"
	"github.com/evowilliamson/todo/internal/domains/subtask/model"
	"github.com/evowilliamson/todo/internal/domains/subtask/model/dto"
	"github.com/evowilliamson/todo/internal/domains/subtask/service"
	todoMocks "github.com/evowilliamson/todo/internal/domains/todo/mocks"
	todoModel "github.com/evowilliamson/todo/internal/domains/todo/model"
	cacheMocks "github.com/evowilliamson/todo/shared/cache/mocks"
	"github.com/evowilliamson/todo/shared/constant"
	"github.com/evowilliamson/todo/shared/timezone"
)

const (
	testUserID = "2a05bb5a-9e17-4a32-8dd8-22ef29ac04f2"
	testTodoID = "0d4be0b4-5c2f-4fc2-ae3b-2b7f55d2a001"
)

func newService(ctrl *gomock.Controller) (service.Subtask, *subtaskMocks.MockSubtask, *todoMocks.MockTodo) {
	mockRepo := subtaskMocks.NewMockSubtask(ctrl)
	mockTodo := todoMocks.NewMockTodo(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(mockRepo, mockTodo, cfg, mockCache, mocks.NewOtel()), mockRepo, mockTodo
}

func testCtx() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, testUserID)
}

func parentTodo() todoModel.Todo {
	return todoModel.Todo{ID: testTodoID, UserID: testUserID, Title: "Parent"}
}

func trashedParent() todoModel.Todo {
	todo := parentTodo()
	now := timezone.Now()
	todo.DeletedAt = &now

	return todo
}

func TestSubtaskService_Create(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mockRepo *subtaskMocks.MockSubtask, mockTodo *todoMocks.MockTodo)
		wantErr   bool
	}{
		{
			name: "successful creation",
			setupMock: func(mockRepo *subtaskMocks.MockSubtask, mockTodo *todoMocks.MockTodo) {
				mockTodo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(parentTodo(), nil)
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantErr: false,
		},
		{
			name: "parent todo not found",
			setupMock: func(mockRepo *subtaskMocks.MockSubtask, mockTodo *todoMocks.MockTodo) {
				mockTodo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(todoModel.Todo{}, nil)
			},
			wantErr: true,
		},
		{
			name: "trashed parent rejects writes",
			setupMock: func(mockRepo *subtaskMocks.MockSubtask, mockTodo *todoMocks.MockTodo) {
				mockTodo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(trashedParent(), nil)
			},
			wantErr: true,
		},
		{
			name: "repository error",
			setupMock: func(mockRepo *subtaskMocks.MockSubtask, mockTodo *todoMocks.MockTodo) {
				mockTodo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(parentTodo(), nil)
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, mockRepo, mockTodo := newService(ctrl)
			tt.setupMock(mockRepo, mockTodo)

			res, err := svc.Create(testCtx(), testTodoID, dto.CreateSubtaskRequest{Title: "Buy milk"})

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, res.ID)
				assert.Equal(t, testTodoID, res.TodoID)
				assert.False(t, res.IsCompleted)
			}
		})
	}
}

func TestSubtaskService_Update(t *testing.T) {
	completed := true

	tests := []struct {
		name      string
		req       dto.UpdateSubtaskRequest
		setupMock func(mockRepo *subtaskMocks.MockSubtask, mockTodo *todoMocks.MockTodo)
		wantErr   bool
	}{
		{
			name: "successful update",
			req:  dto.UpdateSubtaskRequest{IsCompleted: &completed},
			setupMock: func(mockRepo *subtaskMocks.MockSubtask, mockTodo *todoMocks.MockTodo) {
				mockTodo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(parentTodo(), nil)
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any(), model.FieldID).
					Return(model.Subtask{ID: "subtask-id"}, nil)
				mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			wantErr: false,
		},
		{
			name:      "empty request",
			req:       dto.UpdateSubtaskRequest{},
			setupMock: func(mockRepo *subtaskMocks.MockSubtask, mockTodo *todoMocks.MockTodo) {},
			wantErr:   true,
		},
		{
			name: "subtask not found",
			req:  dto.UpdateSubtaskRequest{IsCompleted: &completed},
			setupMock: func(mockRepo *subtaskMocks.MockSubtask, mockTodo *todoMocks.MockTodo) {
				mockTodo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(parentTodo(), nil)
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any(), model.FieldID).
					Return(model.Subtask{}, nil)
			},
			wantErr: true,
		},
		{
			name: "parent todo not found",
			req:  dto.UpdateSubtaskRequest{IsCompleted: &completed},
			setupMock: func(mockRepo *subtaskMocks.MockSubtask, mockTodo *todoMocks.MockTodo) {
				mockTodo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(todoModel.Todo{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, mockRepo, mockTodo := newService(ctrl)
			tt.setupMock(mockRepo, mockTodo)

			err := svc.Update(testCtx(), tt.req, testTodoID, "subtask-id")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSubtaskService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mockRepo *subtaskMocks.MockSubtask, mockTodo *todoMocks.MockTodo)
		wantErr   bool
	}{
		{
			name: "successful deletion",
			setupMock: func(mockRepo *subtaskMocks.MockSubtask, mockTodo *todoMocks.MockTodo) {
				mockTodo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(parentTodo(), nil)
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any(), model.FieldID).
					Return(model.Subtask{ID: "subtask-id"}, nil)
				mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantErr: false,
		},
		{
			name: "subtask not found",
			setupMock: func(mockRepo *subtaskMocks.MockSubtask, mockTodo *todoMocks.MockTodo) {
				mockTodo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(parentTodo(), nil)
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any(), model.FieldID).
					Return(model.Subtask{}, nil)
			},
			wantErr: true,
		},
		{
			name: "trashed parent rejects writes",
			setupMock: func(mockRepo *subtaskMocks.MockSubtask, mockTodo *todoMocks.MockTodo) {
				mockTodo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(trashedParent(), nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, mockRepo, mockTodo := newService(ctrl)
			tt.setupMock(mockRepo, mockTodo)

			err := svc.Delete(testCtx(), testTodoID, "subtask-id")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
