package repositories

import (
	"context"
	"time"

	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data
type ExchangeRateReader interface {
	// FindRateForDate retrieves the stored rate for a directed pair on a given
	// day. Manual rows take precedence over API rows for the same pair/date.
	FindRateForDate(ctx context.Context, fromCurrencyCode, toCurrencyCode string, date time.Time) (*domain.ExchangeRate, error)

	// FindLatestRate retrieves the most recent stored rate for a directed
	// pair, regardless of date or staleness. Used for the stale fallback.
	FindLatestRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error)

	// ListExchangeRates retrieves rates with optional pair/date filters.
	ListExchangeRates(ctx context.Context, fromCurrency, toCurrency *string, date *time.Time, page, pageSize int) ([]domain.ExchangeRate, int, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// SaveRatePair upserts the given rate and its inverse (1/rate) in one
	// transaction, keyed on (from_currency_code, to_currency_code, rate_date).
	SaveRatePair(ctx context.Context, rate domain.ExchangeRate) error

	// IncrementFetchErrors bumps fetch_error_count on both directions of a
	// pair for the given day. A no-op when no such rows exist.
	IncrementFetchErrors(ctx context.Context, fromCurrencyCode, toCurrencyCode string, date time.Time) error

	// MarkStaleRates flags every rate whose expires_at has passed and for
	// which no fresher row exists for the same directed pair. Idempotent;
	// never deletes. Returns the number of rows newly marked.
	MarkStaleRates(ctx context.Context, now time.Time) (int64, error)
}

// ExchangeRateRepositoryFacade combines all exchange rate repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}

// ExchangeRateRepositoryWithTx extends ExchangeRateRepositoryFacade with transaction capabilities
type ExchangeRateRepositoryWithTx interface {
	ExchangeRateRepositoryFacade
	TransactionManager
}
