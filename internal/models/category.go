package models

// Category represents a user-defined transaction category.
type Category struct {
	CategoryID string `db:"category_id"`
	UserID     string `db:"user_id"`
	Name       string `db:"name"`
	Type       string `db:"type"` // income | expense, lowercase
	Color      string `db:"color"`
	Icon       string `db:"icon"`
	AuditFields
}

// Tag represents a user-defined transaction tag.
type Tag struct {
	TagID  string `db:"tag_id"`
	UserID string `db:"user_id"`
	Name   string `db:"name"`
	AuditFields
}
