package model

import (
	"time"

	"github.com/evowilliamson/todo/shared/model"
)

const (
	TableName  = "todos"
	EntityName = "todo"

	FieldID          = "id"
	FieldUserID      = "user_id"
	FieldCategoryID  = "category_id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldStatus      = "status"
	FieldPriority    = "priority"
	FieldDueDate     = "due_date"
	FieldPosition    = "position"
	FieldCompletedAt = "completed_at"
	FieldDeletedAt   = "deleted_at"
)

const (
	StatusToDo       = "to_do"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// SortableFields are the only columns list requests may order by.
var SortableFields = []string{
	FieldTitle,
	FieldStatus,
	FieldPriority,
	FieldDueDate,
	FieldPosition,
	FieldCompletedAt,
	FieldDeletedAt,
	"created_at",
	"modified_at",
}

// Todo is the central record of the task subsystem. Trash state is held
// in the single deleted_at column: a todo is trashed exactly when
// DeletedAt is non-nil, so the soft-delete invariant cannot drift.
type Todo struct {
	ID          string     `db:"id"`
	UserID      string     `db:"user_id"`
	CategoryID  *string    `db:"category_id"`
	Title       string     `db:"title"`
	Description string     `db:"description"`
	Status      string     `db:"status"`
	Priority    string     `db:"priority"`
	DueDate     *time.Time `db:"due_date"`
	Position    int        `db:"position"`
	CompletedAt *time.Time `db:"completed_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
	model.Metadata
}

// IsDeleted reports whether the todo sits in the trash.
func (t *Todo) IsDeleted() bool {
	return t.DeletedAt != nil
}
