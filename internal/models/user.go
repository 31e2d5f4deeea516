package models

import (
	"database/sql"
	"time"
)

// User represents a users row.
type User struct {
	UserID           string         `db:"user_id"`
	Email            string         `db:"email"`
	Name             string         `db:"name"`
	PasswordHash     sql.NullString `db:"password_hash"` // NULL for OAuth-only users
	GoogleID         sql.NullString `db:"google_id"`
	BaseCurrencyCode string         `db:"base_currency_code"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"` // Soft delete
}
