package mapping

import (
	"database/sql"

	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
	"github.com/fintrackhq/fintrack-backend/internal/models"
)

// ToModelExchangeRate converts a domain ExchangeRate to a model ExchangeRate
func ToModelExchangeRate(d domain.ExchangeRate) models.ExchangeRate {
	return models.ExchangeRate{
		ExchangeRateID:   d.ExchangeRateID,
		FromCurrencyCode: d.FromCurrencyCode,
		ToCurrencyCode:   d.ToCurrencyCode,
		Rate:             d.Rate,
		RateDate:         d.RateDate,
		Source:           string(d.Source),
		APIProvider:      sql.NullString{String: d.APIProvider, Valid: d.APIProvider != ""},
		LastFetchedAt:    d.LastFetchedAt,
		ExpiresAt:        d.ExpiresAt,
		IsStale:          d.IsStale,
		FetchErrorCount:  d.FetchErrorCount,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExchangeRate converts a model ExchangeRate to a domain ExchangeRate
func ToDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		ExchangeRateID:   m.ExchangeRateID,
		FromCurrencyCode: m.FromCurrencyCode,
		ToCurrencyCode:   m.ToCurrencyCode,
		Rate:             m.Rate,
		RateDate:         m.RateDate,
		Source:           domain.RateSource(m.Source),
		APIProvider:      m.APIProvider.String,
		LastFetchedAt:    m.LastFetchedAt,
		ExpiresAt:        m.ExpiresAt,
		IsStale:          m.IsStale,
		FetchErrorCount:  m.FetchErrorCount,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}
