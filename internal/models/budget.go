package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Budget represents a budgets row. A CHECK constraint enforces that exactly
// one of category_id / tag_id is set.
type Budget struct {
	BudgetID   string          `db:"budget_id"`
	UserID     string          `db:"user_id"`
	CategoryID sql.NullString  `db:"category_id"`
	TagID      sql.NullString  `db:"tag_id"`
	Amount     decimal.Decimal `db:"amount"`
	Period     time.Time       `db:"period"` // First day of month
	AuditFields
}
