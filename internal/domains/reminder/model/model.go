package model

import (
	"time"

	"github.com/evowilliamson/todo/shared/model"
)

const (
	TableName  = "reminders"
	EntityName = "reminder"

	FieldID       = "id"
	FieldTodoID   = "todo_id"
	FieldRemindAt = "remind_at"
	FieldIsSent   = "is_sent"
)

type Reminder struct {
	ID       string    `db:"id"`
	TodoID   string    `db:"todo_id"`
	RemindAt time.Time `db:"remind_at"`
	IsSent   bool      `db:"is_sent"`
	model.Metadata
}
