package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fintrackhq/fintrack-backend/internal/apperrors"
	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack-backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackhq/fintrack-backend/internal/core/ports/services"
	"github.com/fintrackhq/fintrack-backend/internal/dto"
	"github.com/google/uuid"
)

// PaymentMethodService provides business logic for payment methods. It also
// serves as the active-currency source for the exchange rate refresh: the set
// of currencies to refresh is the distinct currencies of non-archived methods.
type PaymentMethodService struct {
	BaseService
	methodRepo      portsrepo.PaymentMethodRepositoryFacade
	currencyService *CurrencyService
}

// NewPaymentMethodService creates a new PaymentMethodService.
func NewPaymentMethodService(methodRepo portsrepo.PaymentMethodRepositoryFacade, currencyService *CurrencyService) *PaymentMethodService {
	return &PaymentMethodService{methodRepo: methodRepo, currencyService: currencyService}
}

var (
	_ portssvc.PaymentMethodSvcFacade = (*PaymentMethodService)(nil)
	_ portssvc.ActiveCurrencySource   = (*PaymentMethodService)(nil)
)

// CreatePaymentMethod creates a new payment method for the user. The currency
// code must exist; it is immutable after creation.
func (s *PaymentMethodService) CreatePaymentMethod(ctx context.Context, userID string, req dto.CreatePaymentMethodRequest) (*domain.PaymentMethod, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: payment method name cannot be empty", apperrors.ErrValidation)
	}
	code := strings.ToUpper(req.CurrencyCode)
	if _, err := s.currencyService.GetCurrencyByCode(ctx, code); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: currency code '%s' not found", apperrors.ErrValidation, code)
		}
		return nil, fmt.Errorf("failed to validate currency '%s': %w", code, err)
	}

	now := time.Now()
	method := domain.PaymentMethod{
		PaymentMethodID: uuid.NewString(),
		UserID:          userID,
		Name:            name,
		CurrencyCode:    code,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.methodRepo.SavePaymentMethod(ctx, method); err != nil {
		return nil, fmt.Errorf("failed to save payment method: %w", err)
	}

	s.LogInfo(ctx, "Payment method created",
		slog.String("paymentMethodID", method.PaymentMethodID),
		slog.String("currency", code))
	return &method, nil
}

// GetPaymentMethodByID retrieves a payment method owned by the user.
func (s *PaymentMethodService) GetPaymentMethodByID(ctx context.Context, userID, paymentMethodID string) (*domain.PaymentMethod, error) {
	method, err := s.methodRepo.FindPaymentMethodByID(ctx, userID, paymentMethodID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment method %s: %w", paymentMethodID, err)
	}
	return method, nil
}

// ListPaymentMethods retrieves the user's payment methods. Archived methods
// are excluded unless includeArchived is set.
func (s *PaymentMethodService) ListPaymentMethods(ctx context.Context, userID string, includeArchived bool) ([]domain.PaymentMethod, error) {
	methods, err := s.methodRepo.ListPaymentMethods(ctx, userID, includeArchived)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}
	return methods, nil
}

// UpdatePaymentMethod renames a payment method or toggles its archived flag.
// The currency is immutable; changing it would reinterpret every historical
// transaction amount.
func (s *PaymentMethodService) UpdatePaymentMethod(ctx context.Context, userID, paymentMethodID string, req dto.UpdatePaymentMethodRequest) (*domain.PaymentMethod, error) {
	method, err := s.methodRepo.FindPaymentMethodByID(ctx, userID, paymentMethodID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment method %s for update: %w", paymentMethodID, err)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: payment method name cannot be empty", apperrors.ErrValidation)
		}
		method.Name = name
	}
	if req.IsArchived != nil {
		method.IsArchived = *req.IsArchived
	}
	method.LastUpdatedAt = time.Now()
	method.LastUpdatedBy = userID

	if err := s.methodRepo.UpdatePaymentMethod(ctx, *method); err != nil {
		return nil, fmt.Errorf("failed to update payment method %s: %w", paymentMethodID, err)
	}
	return method, nil
}

// ArchivePaymentMethod hides a payment method from new transactions. Existing
// transactions keep their reference and keep counting toward balances.
func (s *PaymentMethodService) ArchivePaymentMethod(ctx context.Context, userID, paymentMethodID string) error {
	archived := true
	_, err := s.UpdatePaymentMethod(ctx, userID, paymentMethodID, dto.UpdatePaymentMethodRequest{IsArchived: &archived})
	if err != nil {
		return err
	}
	s.LogInfo(ctx, "Payment method archived", slog.String("paymentMethodID", paymentMethodID))
	return nil
}

// ListActiveCurrencies returns the distinct currency codes across all
// non-archived payment methods, across all users.
func (s *PaymentMethodService) ListActiveCurrencies(ctx context.Context) ([]string, error) {
	currencies, err := s.methodRepo.ListActiveCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active currencies: %w", err)
	}
	return currencies, nil
}
