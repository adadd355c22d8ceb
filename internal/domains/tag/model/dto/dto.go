package dto

import (
	"github.com/google/uuid"

	"github.com/evowilliamson/todo/internal/domains/tag/model"
	gDto "github.com/evowilliamson/todo/shared/dto"
	gModel "github.com/evowilliamson/todo/shared/model"
	"github.com/evowilliamson/todo/shared/timezone"
)

type CreateTagRequest struct {
	Name string `json:"name" validate:"required,max=30"`
}

func (c *CreateTagRequest) ToModel(user string) model.Tag {
	return model.Tag{
		ID:     uuid.NewString(),
		UserID: user,
		Name:   c.Name,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateTagRequest struct {
	Name *string `db:"name" json:"name" validate:"omitempty,max=30"`
}

type TagResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	gDto.Metadata
}

func (r *TagResponse) FromModel(mod model.Tag) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.Metadata.FromModel(mod.Metadata)
}

type GetTagsResponse struct {
	Tags []TagResponse `json:"tags"`
}

func (r *GetTagsResponse) FromModels(models []model.Tag) {
	r.Tags = make([]TagResponse, len(models))
	for i, mod := range models {
		r.Tags[i].FromModel(mod)
	}
}
