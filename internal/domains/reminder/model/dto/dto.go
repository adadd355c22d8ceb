package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/evowilliamson/todo/internal/domains/reminder/model"
	gDto "github.com/evowilliamson/todo/shared/dto"
	gModel "github.com/evowilliamson/todo/shared/model"
	"github.com/evowilliamson/todo/shared/timezone"
)

type CreateReminderRequest struct {
	RemindAt time.Time `json:"remind_at" validate:"required"`
}

func (c *CreateReminderRequest) ToModel(todoID, user string) model.Reminder {
	return model.Reminder{
		ID:       uuid.NewString(),
		TodoID:   todoID,
		RemindAt: c.RemindAt,
		IsSent:   false,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type ReminderResponse struct {
	ID       string `json:"id"`
	TodoID   string `json:"todo_id"`
	RemindAt string `json:"remind_at"`
	IsSent   bool   `json:"is_sent"`
	gDto.Metadata
}

func (r *ReminderResponse) FromModel(mod model.Reminder) {
	r.ID = mod.ID
	r.TodoID = mod.TodoID
	r.RemindAt = timezone.Format(mod.RemindAt, time.RFC3339)
	r.IsSent = mod.IsSent
	r.Metadata.FromModel(mod.Metadata)
}

func ReminderResponsesFromModels(models []model.Reminder) []ReminderResponse {
	responses := make([]ReminderResponse, len(models))
	for i, mod := range models {
		responses[i].FromModel(mod)
	}

	return responses
}

// ReminderDueEvent is the payload published when a reminder comes due.
type ReminderDueEvent struct {
	ReminderID string    `json:"reminder_id"`
	TodoID     string    `json:"todo_id"`
	UserID     string    `json:"user_id"`
	TodoTitle  string    `json:"todo_title"`
	RemindAt   time.Time `json:"remind_at"`
}
