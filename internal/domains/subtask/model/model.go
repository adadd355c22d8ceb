package model

import "github.com/evowilliamson/todo/shared/model"

const (
	TableName  = "subtasks"
	EntityName = "subtask"

	FieldID          = "id"
	FieldTodoID      = "todo_id"
	FieldTitle       = "title"
	FieldIsCompleted = "is_completed"
	FieldPosition    = "position"
)

// Subtask completion is independent of the parent todo's status.
type Subtask struct {
	ID          string `db:"id"`
	TodoID      string `db:"todo_id"`
	Title       string `db:"title"`
	IsCompleted bool   `db:"is_completed"`
	Position    int    `db:"position"`
	model.Metadata
}
