package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is the exchange_rates row. Upsert key is
// (from_currency_code, to_currency_code, rate_date).
type ExchangeRate struct {
	ExchangeRateID   string          `db:"exchange_rate_id"`
	FromCurrencyCode string          `db:"from_currency_code"`
	ToCurrencyCode   string          `db:"to_currency_code"`
	Rate             decimal.Decimal `db:"rate"`
	RateDate         time.Time       `db:"rate_date"`
	Source           string          `db:"source"` // API | MANUAL
	APIProvider      sql.NullString  `db:"api_provider"`
	LastFetchedAt    time.Time       `db:"last_fetched_at"`
	ExpiresAt        time.Time       `db:"expires_at"`
	IsStale          bool            `db:"is_stale"`
	FetchErrorCount  int             `db:"fetch_error_count"`
	AuditFields
}
