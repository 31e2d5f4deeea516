package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSource identifies where a stored exchange rate came from.
type RateSource string

const (
	RateSourceAPI    RateSource = "API"
	RateSourceManual RateSource = "MANUAL"
)

// ExchangeRate stores a directed conversion rate between two currencies for a
// specific calendar day. At most one row exists per (from, to, date); whenever
// a rate is stored its inverse is stored in the same operation, so a lookup
// never needs more than one triangulation step.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"` // FK -> Currency.currencyCode
	ToCurrencyCode   string          `json:"toCurrencyCode"`   // FK -> Currency.currencyCode
	Rate             decimal.Decimal `json:"rate"`             // Always > 0
	RateDate         time.Time       `json:"rateDate"`         // Day the rate is valid for (truncated)
	Source           RateSource      `json:"source"`
	APIProvider      string          `json:"apiProvider,omitempty"` // Empty for MANUAL rows
	LastFetchedAt    time.Time       `json:"lastFetchedAt"`
	ExpiresAt        time.Time       `json:"expiresAt"`
	IsStale          bool            `json:"isStale"`
	FetchErrorCount  int             `json:"fetchErrorCount"`
	AuditFields
}

// Expired reports whether the rate should no longer be served as fresh.
func (r ExchangeRate) Expired(now time.Time) bool {
	return r.IsStale || now.After(r.ExpiresAt)
}

// QuoteSource describes how a rate quote was resolved for a caller.
type QuoteSource string

const (
	QuoteFresh       QuoteSource = "fresh"
	QuoteStale       QuoteSource = "stale"
	QuoteManual      QuoteSource = "manual"
	QuoteUnavailable QuoteSource = "unavailable"
)

// RateQuote is the answer to "what is the rate from X to Y right now".
// Rate is zero and Source is QuoteUnavailable when no rate could be resolved.
type RateQuote struct {
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	Source           QuoteSource     `json:"source"`
	ExpiresAt        time.Time       `json:"expiresAt"`
}

// Resolved reports whether the quote carries a usable rate.
func (q RateQuote) Resolved() bool {
	return q.Source != QuoteUnavailable
}

// RateSnapshot is one provider response: every rate relative to Base, taken at
// a single instant. Triangulation must use both legs from the same snapshot.
type RateSnapshot struct {
	Base      string
	Rates     map[string]decimal.Decimal
	Provider  string
	FetchedAt time.Time
}

// RefreshSummary reports the outcome of a refresh-all batch. Individual pair
// failures never abort the batch; they are collected here instead.
type RefreshSummary struct {
	Refreshed   int      `json:"refreshed"`
	Failed      int      `json:"failed"`
	FailedPairs []string `json:"failedPairs,omitempty"`
	StaleMarked int      `json:"staleMarked"`
}
