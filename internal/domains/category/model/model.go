package model

import "github.com/evowilliamson/todo/shared/model"

const (
	TableName  = "categories"
	EntityName = "category"

	FieldID     = "id"
	FieldUserID = "user_id"
	FieldName   = "name"
	FieldColor  = "color"
)

// DefaultColor is applied when a category is created without one.
const DefaultColor = "#3B82F6"

type Category struct {
	ID     string `db:"id"`
	UserID string `db:"user_id"`
	Name   string `db:"name"`
	Color  string `db:"color"`
	model.Metadata
}
