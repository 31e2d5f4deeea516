package domain

// Tag is a free-form label attached to transactions (many-to-many).
type Tag struct {
	TagID  string `json:"tagID"` // Primary Key (e.g., UUID)
	UserID string `json:"userID"`
	Name   string `json:"name"`
	AuditFields
}
