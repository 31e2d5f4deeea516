package services

import (
	"context"
	"time"

	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExchangeRateReaderSvc defines read operations for exchange rate data
type ExchangeRateReaderSvc interface {
	// GetRate resolves the conversion rate from one currency to another.
	// The quote's Source reports how it was resolved: a fresh cached value, a
	// stale fallback, a manual override, or unavailable. GetRate itself only
	// errors on infrastructure failure; "no rate" is an unavailable quote.
	GetRate(ctx context.Context, fromCode, toCode string) (domain.RateQuote, error)

	// GetAllRates fetches the provider's full rate table relative to base.
	GetAllRates(ctx context.Context, base string) (*domain.RateSnapshot, error)

	// ConvertAmount converts amount from one currency to another using
	// GetRate. Identity conversions return the amount unchanged. An
	// unresolvable pair returns apperrors.ErrRateUnavailable, never a zero or
	// unconverted amount.
	ConvertAmount(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (decimal.Decimal, domain.RateQuote, error)

	// ListExchangeRates retrieves stored rates with optional filters.
	ListExchangeRates(ctx context.Context, fromCurrency, toCurrency *string, date *time.Time, page, pageSize int) ([]domain.ExchangeRate, int, error)
}

// ExchangeRateWriterSvc defines write operations for exchange rate data
type ExchangeRateWriterSvc interface {
	// SetManualRate upserts a MANUAL rate (and its inverse) for today. Manual
	// rows take precedence over API rows for the same pair and date.
	SetManualRate(ctx context.Context, fromCode, toCode string, rate decimal.Decimal, creatorUserID string) (*domain.ExchangeRate, error)

	// RefreshAllRates refreshes every ordered pair among the currencies in
	// active use (plus the pivot currency). Per-pair failures are collected
	// into the summary, never aborting the batch. The stale-marking sweep
	// runs after the batch.
	RefreshAllRates(ctx context.Context) (*domain.RefreshSummary, error)

	// MarkStaleRates runs the stale-marking sweep on its own.
	MarkStaleRates(ctx context.Context) (int64, error)
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}
