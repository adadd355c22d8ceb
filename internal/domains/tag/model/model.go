package model

import "github.com/evowilliamson/todo/shared/model"

const (
	TableName  = "tags"
	EntityName = "tag"

	FieldID     = "id"
	FieldUserID = "user_id"
	FieldName   = "name"
)

type Tag struct {
	ID     string `db:"id"`
	UserID string `db:"user_id"`
	Name   string `db:"name"`
	model.Metadata
}

const (
	JoinTableName  = "todo_tags"
	JoinEntityName = "todo_tag"

	JoinFieldTodoID = "todo_id"
	JoinFieldTagID  = "tag_id"
)

// TodoTag is one row of the todo/tag membership relation. The pair is
// the primary key; the association carries no attributes of its own.
type TodoTag struct {
	TodoID string `db:"todo_id"`
	TagID  string `db:"tag_id"`
}
