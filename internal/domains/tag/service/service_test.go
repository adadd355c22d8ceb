package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/evowilliamson/todo/config"
	"github.com/evowilliamson/todo/infras/otel/mocks"
	tagMocks "github.com/evowilliamson/todo/internal/domains/tag/mocks"
	"github.com/evowilliamson/todo/internal/domains/tag/model"
	"github.com/evowilliamson/todo/internal/domains/tag/model/dto"
	"github.com/evowilliamson/todo/internal/domains/tag/service"
	cacheMocks "github.com/evowilliamson/todo/shared/cache/mocks"
	"github.com/evowilliamson/todo/shared/constant"
)

const testUserID = "2a05bb5a-9e17-4a32-8dd8-22ef29ac04f2"

func newService(ctrl *gomock.Controller) (service.Tag, *tagMocks.MockTag, *cacheMocks.MockRedisCache) {
	mockRepo := tagMocks.NewMockTag(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel()), mockRepo, mockCache
}

func testCtx() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, testUserID)
}

func TestTagService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateTagRequest
		setupMock func(mockRepo *tagMocks.MockTag)
		wantErr   bool
	}{
		{
			name: "successful creation",
			req:  dto.CreateTagRequest{Name: "urgent"},
			setupMock: func(mockRepo *tagMocks.MockTag) {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantErr: false,
		},
		{
			name: "name already taken",
			req:  dto.CreateTagRequest{Name: "urgent"},
			setupMock: func(mockRepo *tagMocks.MockTag) {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr: true,
		},
		{
			name: "repository error",
			req:  dto.CreateTagRequest{Name: "urgent"},
			setupMock: func(mockRepo *tagMocks.MockTag) {
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

			svc, mockRepo, _ := newService(ctrl)
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

func TestTagService_GetAll(t *testing.T) {
	t.Run("cache miss hits the repository", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo, mockCache := newService(ctrl)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Tag{{ID: "tag-1", Name: "urgent"}}, nil)

		res, err := svc.GetAll(testCtx())

		assert.NoError(t, err)
		assert.Len(t, res.Tags, 1)
		assert.Equal(t, "urgent", res.Tags[0].Name)
	})

	t.Run("repository error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo, mockCache := newService(ctrl)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("database error"))

		_, err := svc.GetAll(testCtx())

		assert.Error(t, err)
	})
}

func TestTagService_Update(t *testing.T) {
	name := "renamed"

	tests := []struct {
		name      string
		req       dto.UpdateTagRequest
		setupMock func(mockRepo *tagMocks.MockTag)
		wantErr   bool
	}{
		{
			name: "successful update",
			req:  dto.UpdateTagRequest{Name: &name},
			setupMock: func(mockRepo *tagMocks.MockTag) {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			wantErr: false,
		},
		{
			name:      "empty request",
			req:       dto.UpdateTagRequest{},
			setupMock: func(mockRepo *tagMocks.MockTag) {},
			wantErr:   true,
		},
		{
			name: "tag not found",
			req:  dto.UpdateTagRequest{Name: &name},
			setupMock: func(mockRepo *tagMocks.MockTag) {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr: true,
		},
		{
			name: "new name already taken",
			req:  dto.UpdateTagRequest{Name: &name},
			setupMock: func(mockRepo *tagMocks.MockTag) {
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

			svc, mockRepo, _ := newService(ctrl)
			tt.setupMock(mockRepo)

			err := svc.Update(testCtx(), tt.req, "tag-id")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTagService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mockRepo *tagMocks.MockTag)
		wantErr   bool
	}{
		{
			name: "successful deletion removes memberships",
			setupMock: func(mockRepo *tagMocks.MockTag) {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				mockRepo.EXPECT().DeleteWithMemberships(gomock.Any(), "tag-id").Return(nil)
			},
			wantErr: false,
		},
		{
			name: "tag not found",
			setupMock: func(mockRepo *tagMocks.MockTag) {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr: true,
		},
		{
			name: "repository error",
			setupMock: func(mockRepo *tagMocks.MockTag) {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				mockRepo.EXPECT().DeleteWithMemberships(gomock.Any(), "tag-id").Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, mockRepo, _ := newService(ctrl)
			tt.setupMock(mockRepo)

			err := svc.Delete(testCtx(), "tag-id")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
