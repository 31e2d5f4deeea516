package services

import (
	"context"

	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
	"github.com/fintrackhq/fintrack-backend/internal/dto"
)

// PaymentMethodSvcFacade defines operations on a user's payment methods.
type PaymentMethodSvcFacade interface {
	CreatePaymentMethod(ctx context.Context, userID string, req dto.CreatePaymentMethodRequest) (*domain.PaymentMethod, error)
	GetPaymentMethodByID(ctx context.Context, userID, paymentMethodID string) (*domain.PaymentMethod, error)
	ListPaymentMethods(ctx context.Context, userID string, includeArchived bool) ([]domain.PaymentMethod, error)
	UpdatePaymentMethod(ctx context.Context, userID, paymentMethodID string, req dto.UpdatePaymentMethodRequest) (*domain.PaymentMethod, error)
	ArchivePaymentMethod(ctx context.Context, userID, paymentMethodID string) error
}

// ActiveCurrencySource exposes the currencies currently in use by non-archived
// payment methods. The exchange rate service consumes this as an input; it
// never computes the set itself.
type ActiveCurrencySource interface {
	ListActiveCurrencies(ctx context.Context) ([]string, error)
}
