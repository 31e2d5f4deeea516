package repositories

import (
	"context"

	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
)

// PaymentMethodReader defines read operations for payment method data
type PaymentMethodReader interface {
	// FindPaymentMethodByID retrieves a payment method owned by the given user.
	FindPaymentMethodByID(ctx context.Context, userID, paymentMethodID string) (*domain.PaymentMethod, error)

	// ListPaymentMethods retrieves the user's payment methods, optionally
	// including archived ones.
	ListPaymentMethods(ctx context.Context, userID string, includeArchived bool) ([]domain.PaymentMethod, error)

	// ListActiveCurrencies returns the distinct currency codes across all
	// non-archived payment methods. This feeds the exchange rate refresh set.
	ListActiveCurrencies(ctx context.Context) ([]string, error)
}

// PaymentMethodWriter defines write operations for payment method data
type PaymentMethodWriter interface {
	// SavePaymentMethod persists a new payment method.
	SavePaymentMethod(ctx context.Context, method domain.PaymentMethod) error

	// UpdatePaymentMethod updates an existing payment method, including
	// setting or clearing its archived flag.
	UpdatePaymentMethod(ctx context.Context, method domain.PaymentMethod) error
}

// PaymentMethodRepositoryFacade combines all payment-method repository interfaces
type PaymentMethodRepositoryFacade interface {
	PaymentMethodReader
	PaymentMethodWriter
}
