package dto

import (
	"github.com/google/uuid"

	"github.com/evowilliamson/todo/internal/domains/category/model"
	gDto "github.com/evowilliamson/todo/shared/dto"
	gModel "github.com/evowilliamson/todo/shared/model"
	"github.com/evowilliamson/todo/shared/timezone"
)

type CreateCategoryRequest struct {
	Name  string `json:"name"  validate:"required,max=50"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

func (c *CreateCategoryRequest) ToModel(user string) model.Category {
	color := c.Color
	if color == "" {
		color = model.DefaultColor
	}

	return model.Category{
		ID:     uuid.NewString(),
		UserID: user,
		Name:   c.Name,
		Color:  color,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateCategoryRequest struct {
	Name  *string `db:"name"  json:"name"  validate:"omitempty,max=50"`
	Color *string `db:"color" json:"color" validate:"omitempty,hexcolor"`
}

type CategoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	gDto.Metadata
}

func (r *CategoryResponse) FromModel(mod model.Category) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.Color = mod.Color
	r.Metadata.FromModel(mod.Metadata)
}

type GetCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

func (r *GetCategoriesResponse) FromModels(models []model.Category) {
	r.Categories = make([]CategoryResponse, len(models))
	for i, mod := range models {
		r.Categories[i].FromModel(mod)
	}
}
