package domain

import "time"

// User represents a user of the application in the domain.
type User struct {
	UserID           string `json:"userID"` // Primary Key (e.g., UUID)
	Email            string `json:"email"`
	Name             string `json:"name"`
	PasswordHash     string `json:"-"`                  // Empty for OAuth-only users
	GoogleID         string `json:"-"`                  // Google subject claim, empty otherwise
	BaseCurrencyCode string `json:"baseCurrencyCode"`   // Currency reports are converted into
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}

// GoogleUserInfo holds the profile fields returned by the Google userinfo endpoint.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
