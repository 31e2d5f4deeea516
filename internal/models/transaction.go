package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a transactions row. Tags live in the
// transaction_tags junction keyed (transaction_id, tag_id).
type Transaction struct {
	TransactionID   string          `db:"transaction_id"`
	UserID          string          `db:"user_id"`
	CategoryID      string          `db:"category_id"`
	PaymentMethodID string          `db:"payment_method_id"` // NOT NULL, backfilled historically
	Type            string          `db:"type"`
	Amount          decimal.Decimal `db:"amount"`
	TransactionDate time.Time       `db:"transaction_date"`
	Description     string          `db:"description"`

	NativeAmount decimal.NullDecimal `db:"native_amount"`
	ExchangeRate decimal.NullDecimal `db:"exchange_rate"`
	BaseCurrency sql.NullString      `db:"base_currency"`

	AuditFields
}
