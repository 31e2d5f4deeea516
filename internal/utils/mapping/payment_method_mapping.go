package mapping

import (
	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
	"github.com/fintrackhq/fintrack-backend/internal/models"
)

// ToModelPaymentMethod converts a domain PaymentMethod to a model PaymentMethod
func ToModelPaymentMethod(d domain.PaymentMethod) models.PaymentMethod {
	return models.PaymentMethod{
		PaymentMethodID: d.PaymentMethodID,
		UserID:          d.UserID,
		Name:            d.Name,
		CurrencyCode:    d.CurrencyCode,
		IsArchived:      d.IsArchived,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPaymentMethod converts a model PaymentMethod to a domain PaymentMethod
func ToDomainPaymentMethod(m models.PaymentMethod) domain.PaymentMethod {
	return domain.PaymentMethod{
		PaymentMethodID: m.PaymentMethodID,
		UserID:          m.UserID,
		Name:            m.Name,
		CurrencyCode:    m.CurrencyCode,
		IsArchived:      m.IsArchived,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
