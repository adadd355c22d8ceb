package dto

import (
	"github.com/google/uuid"

	"github.com/evowilliamson/todo/internal/domains/subtask/model"
	gDto "github.com/evowilliamson/todo/shared/dto"
	gModel "github.com/evowilliamson/todo/shared/model"
	"github.com/evowilliamson/todo/shared/timezone"
)

type CreateSubtaskRequest struct {
	Title    string `json:"title"    validate:"required,max=200"`
	Position int    `json:"position" validate:"omitempty,gte=0"`
}

func (c *CreateSubtaskRequest) ToModel(todoID, user string) model.Subtask {
	return model.Subtask{
		ID:          uuid.NewString(),
		TodoID:      todoID,
		Title:       c.Title,
		IsCompleted: false,
		Position:    c.Position,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateSubtaskRequest struct {
	Title       *string `db:"title"        json:"title"        validate:"omitempty,max=200"`
	IsCompleted *bool   `db:"is_completed" json:"is_completed" validate:"omitempty"`
	Position    *int    `db:"position"     json:"position"     validate:"omitempty,gte=0"`
}

type SubtaskResponse struct {
	ID          string `json:"id"`
	TodoID      string `json:"todo_id"`
	Title       string `json:"title"`
	IsCompleted bool   `json:"is_completed"`
	Position    int    `json:"position"`
	gDto.Metadata
}

func (r *SubtaskResponse) FromModel(mod model.Subtask) {
	r.ID = mod.ID
	r.TodoID = mod.TodoID
	r.Title = mod.Title
	r.IsCompleted = mod.IsCompleted
	r.Position = mod.Position
	r.Metadata.FromModel(mod.Metadata)
}

func SubtaskResponsesFromModels(models []model.Subtask) []SubtaskResponse {
	responses := make([]SubtaskResponse, len(models))
	for i, mod := range models {
		responses[i].FromModel(mod)
	}

	return responses
}
