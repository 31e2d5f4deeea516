package dto

import (
	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
)

// CreatePaymentMethodRequest defines the data needed to create a payment method.
type CreatePaymentMethodRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	CurrencyCode string `json:"currencyCode" binding:"required,currencycode"`
}

// UpdatePaymentMethodRequest defines updatable fields. Nil means unchanged.
type UpdatePaymentMethodRequest struct {
	Name       *string `json:"name" binding:"omitempty,max=100"`
	IsArchived *bool   `json:"isArchived"`
}

// PaymentMethodResponse defines the data returned for a payment method.
type PaymentMethodResponse struct {
	PaymentMethodID string `json:"paymentMethodID"`
	Name            string `json:"name"`
	CurrencyCode    string `json:"currencyCode"`
	IsArchived      bool   `json:"isArchived"`
}

// ToPaymentMethodResponse converts a domain.PaymentMethod to its response DTO
func ToPaymentMethodResponse(m *domain.PaymentMethod) PaymentMethodResponse {
	return PaymentMethodResponse{
		PaymentMethodID: m.PaymentMethodID,
		Name:            m.Name,
		CurrencyCode:    m.CurrencyCode,
		IsArchived:      m.IsArchived,
	}
}

// ToListPaymentMethodResponse converts a slice of domain.PaymentMethod to DTOs
func ToListPaymentMethodResponse(methods []domain.PaymentMethod) []PaymentMethodResponse {
	res := make([]PaymentMethodResponse, len(methods))
	for i := range methods {
		res[i] = ToPaymentMethodResponse(&methods[i])
	}
	return res
}
