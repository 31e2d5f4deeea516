package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a spending cap for one calendar month, scoped to exactly one
// category or exactly one tag (never both, never neither). Period is always
// normalized to the first day of its month.
type Budget struct {
	BudgetID   string          `json:"budgetID"` // Primary Key (e.g., UUID)
	UserID     string          `json:"userID"`
	CategoryID *string         `json:"categoryID,omitempty"`
	TagID      *string         `json:"tagID,omitempty"`
	Amount     decimal.Decimal `json:"amount"` // Positive
	Period     time.Time       `json:"period"` // First day of the month, UTC
	AuditFields
}

// ScopeValid reports whether exactly one of CategoryID/TagID is set.
func (b Budget) ScopeValid() bool {
	return (b.CategoryID != nil) != (b.TagID != nil)
}

// NormalizePeriod truncates any date to the first day of its month in UTC.
func NormalizePeriod(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
