package dto

import (
	"time"

	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SetManualRateRequest defines the data needed to set a manual exchange rate.
type SetManualRateRequest struct {
	FromCurrencyCode string          `json:"fromCurrencyCode" binding:"required,currencycode"`
	ToCurrencyCode   string          `json:"toCurrencyCode" binding:"required,currencycode"`
	Rate             decimal.Decimal `json:"rate" binding:"required"`
}

// ExchangeRateResponse defines the data returned for a stored exchange rate.
type ExchangeRateResponse struct {
	ExchangeRateID   string          `json:"exchangeRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	RateDate         time.Time       `json:"rateDate"`
	Source           string          `json:"source"`
	APIProvider      string          `json:"apiProvider,omitempty"`
	ExpiresAt        time.Time       `json:"expiresAt"`
	IsStale          bool            `json:"isStale"`
}

// RateQuoteResponse is the answer to a rate lookup. Rate is omitted when the
// pair could not be resolved.
type RateQuoteResponse struct {
	FromCurrencyCode string           `json:"fromCurrencyCode"`
	ToCurrencyCode   string           `json:"toCurrencyCode"`
	Rate             *decimal.Decimal `json:"rate,omitempty"`
	Source           string           `json:"source"`
	ExpiresAt        *time.Time       `json:"expiresAt,omitempty"`
}

// ConvertAmountRequest defines the data needed to convert an amount.
type ConvertAmountRequest struct {
	Amount           decimal.Decimal `json:"amount" binding:"required"`
	FromCurrencyCode string          `json:"fromCurrencyCode" binding:"required,currencycode"`
	ToCurrencyCode   string          `json:"toCurrencyCode" binding:"required,currencycode"`
}

// ConvertAmountResponse carries a converted amount and the quote used.
type ConvertAmountResponse struct {
	Amount    decimal.Decimal `json:"amount"`
	Converted decimal.Decimal `json:"converted"`
	Quote     RateQuoteResponse `json:"quote"`
}

// RefreshSummaryResponse reports the outcome of a refresh-all batch.
type RefreshSummaryResponse struct {
	Refreshed   int      `json:"refreshed"`
	Failed      int      `json:"failed"`
	FailedPairs []string `json:"failedPairs,omitempty"`
	StaleMarked int      `json:"staleMarked"`
}

// ListExchangeRatesResponse is a paginated listing of stored rates.
type ListExchangeRatesResponse struct {
	Rates []ExchangeRateResponse `json:"rates"`
	Total int                    `json:"total"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to its response DTO
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID:   rate.ExchangeRateID,
		FromCurrencyCode: rate.FromCurrencyCode,
		ToCurrencyCode:   rate.ToCurrencyCode,
		Rate:             rate.Rate,
		RateDate:         rate.RateDate,
		Source:           string(rate.Source),
		APIProvider:      rate.APIProvider,
		ExpiresAt:        rate.ExpiresAt,
		IsStale:          rate.IsStale,
	}
}

// ToRateQuoteResponse converts a domain.RateQuote to its response DTO
func ToRateQuoteResponse(q domain.RateQuote) RateQuoteResponse {
	resp := RateQuoteResponse{
		FromCurrencyCode: q.FromCurrencyCode,
		ToCurrencyCode:   q.ToCurrencyCode,
		Source:           string(q.Source),
	}
	if q.Resolved() {
		rate := q.Rate
		expires := q.ExpiresAt
		resp.Rate = &rate
		resp.ExpiresAt = &expires
	}
	return resp
}

// ToRefreshSummaryResponse converts a domain.RefreshSummary to its response DTO
func ToRefreshSummaryResponse(s *domain.RefreshSummary) RefreshSummaryResponse {
	return RefreshSummaryResponse{
		Refreshed:   s.Refreshed,
		Failed:      s.Failed,
		FailedPairs: s.FailedPairs,
		StaleMarked: s.StaleMarked,
	}
}

// ToListExchangeRatesResponse converts stored rates plus a total count
func ToListExchangeRatesResponse(rates []domain.ExchangeRate, total int) ListExchangeRatesResponse {
	res := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		res[i] = ToExchangeRateResponse(&rates[i])
	}
	return ListExchangeRatesResponse{Rates: res, Total: total}
}
