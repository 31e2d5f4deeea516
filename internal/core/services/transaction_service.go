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
	"github.com/shopspring/decimal"
)

const maxDescriptionLength = 500

// TransactionService provides business logic for transactions. The stored
// amount is always positive and denominated in the user's base currency; when
// the payment method uses a different currency, the original amount, the rate
// applied and the base currency code are recorded alongside for auditability.
type TransactionService struct {
	BaseService
	txnRepo         portsrepo.TransactionRepositoryFacade
	categoryService *CategoryService
	methodService   *PaymentMethodService
	tagRepo         portsrepo.TagRepositoryFacade
	userService     portssvc.UserReaderSvc
	rateService     portssvc.ExchangeRateReaderSvc
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	categoryService *CategoryService,
	methodService *PaymentMethodService,
	tagRepo portsrepo.TagRepositoryFacade,
	userService portssvc.UserReaderSvc,
	rateService portssvc.ExchangeRateReaderSvc,
) *TransactionService {
	return &TransactionService{
		txnRepo:         txnRepo,
		categoryService: categoryService,
		methodService:   methodService,
		tagRepo:         tagRepo,
		userService:     userService,
		rateService:     rateService,
	}
}

var _ portssvc.TransactionSvcFacade = (*TransactionService)(nil)

// CreateTransaction records a new transaction. The amount in the request is in
// the payment method's currency; it is converted to the user's base currency
// before storage when the two differ. The transaction type is copied from the
// category at creation time.
func (s *TransactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: transaction amount must be positive", apperrors.ErrValidation)
	}
	if len(req.Description) > maxDescriptionLength {
		return nil, fmt.Errorf("%w: description exceeds %d characters", apperrors.ErrValidation, maxDescriptionLength)
	}
	if strings.TrimSpace(req.PaymentMethodID) == "" {
		return nil, fmt.Errorf("%w: payment method is required", apperrors.ErrValidation)
	}

	category, err := s.categoryService.GetCategoryByID(ctx, userID, req.CategoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: category '%s' not found", apperrors.ErrValidation, req.CategoryID)
		}
		return nil, err
	}
	method, err := s.methodService.GetPaymentMethodByID(ctx, userID, req.PaymentMethodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: payment method '%s' not found", apperrors.ErrValidation, req.PaymentMethodID)
		}
		return nil, err
	}
	if method.IsArchived {
		return nil, fmt.Errorf("%w: payment method '%s' is archived", apperrors.ErrValidation, req.PaymentMethodID)
	}

	tagIDs, err := s.validateTags(ctx, userID, req.TagIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		UserID:          userID,
		CategoryID:      category.CategoryID,
		PaymentMethodID: method.PaymentMethodID,
		Type:            category.Type,
		Amount:          req.Amount,
		TransactionDate: req.TransactionDate,
		Description:     strings.TrimSpace(req.Description),
		TagIDs:          tagIDs,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.applyCurrencyConversion(ctx, userID, method.CurrencyCode, &txn); err != nil {
		return nil, err
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction created",
		slog.String("transactionID", txn.TransactionID),
		slog.String("type", string(txn.Type)),
		slog.String("amount", txn.Amount.String()))
	return &txn, nil
}

// GetTransactionByID retrieves a transaction owned by the user.
func (s *TransactionService) GetTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

// ListTransactions retrieves the user's transactions matching the filter.
func (s *TransactionService) ListTransactions(ctx context.Context, userID string, filter portsrepo.TransactionFilter, limit, offset int) ([]domain.Transaction, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	txns, total, err := s.txnRepo.ListTransactions(ctx, userID, filter, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, total, nil
}

// UpdateTransaction applies partial updates to a transaction. Changing the
// category re-derives the type; changing the payment method or amount redoes
// the base-currency conversion at the current rate.
func (s *TransactionService) UpdateTransaction(ctx context.Context, userID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %s for update: %w", transactionID, err)
	}

	methodCurrency := ""
	reconvert := false

	if req.CategoryID != nil && *req.CategoryID != txn.CategoryID {
		category, catErr := s.categoryService.GetCategoryByID(ctx, userID, *req.CategoryID)
		if catErr != nil {
			if errors.Is(catErr, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: category '%s' not found", apperrors.ErrValidation, *req.CategoryID)
			}
			return nil, catErr
		}
		txn.CategoryID = category.CategoryID
		txn.Type = category.Type
	}
	if req.PaymentMethodID != nil && *req.PaymentMethodID != txn.PaymentMethodID {
		method, pmErr := s.methodService.GetPaymentMethodByID(ctx, userID, *req.PaymentMethodID)
		if pmErr != nil {
			if errors.Is(pmErr, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: payment method '%s' not found", apperrors.ErrValidation, *req.PaymentMethodID)
			}
			return nil, pmErr
		}
		if method.IsArchived {
			return nil, fmt.Errorf("%w: payment method '%s' is archived", apperrors.ErrValidation, *req.PaymentMethodID)
		}
		txn.PaymentMethodID = method.PaymentMethodID
		methodCurrency = method.CurrencyCode
		reconvert = true
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: transaction amount must be positive", apperrors.ErrValidation)
		}
		txn.Amount = *req.Amount
		reconvert = true
	}
	if req.TransactionDate != nil {
		txn.TransactionDate = *req.TransactionDate
	}
	if req.Description != nil {
		if len(*req.Description) > maxDescriptionLength {
			return nil, fmt.Errorf("%w: description exceeds %d characters", apperrors.ErrValidation, maxDescriptionLength)
		}
		txn.Description = strings.TrimSpace(*req.Description)
	}
	if req.TagIDs != nil {
		tagIDs, tagErr := s.validateTags(ctx, userID, *req.TagIDs)
		if tagErr != nil {
			return nil, tagErr
		}
		txn.TagIDs = tagIDs
	}

	if reconvert {
		if methodCurrency == "" {
			method, pmErr := s.methodService.GetPaymentMethodByID(ctx, userID, txn.PaymentMethodID)
			if pmErr != nil {
				return nil, pmErr
			}
			methodCurrency = method.CurrencyCode
		}
		// Reset the multi-currency fields; applyCurrencyConversion fills
		// them again when the method currency differs from base.
		if req.Amount == nil && txn.NativeAmount != nil {
			txn.Amount = *txn.NativeAmount
		}
		txn.NativeAmount = nil
		txn.ExchangeRate = nil
		txn.BaseCurrency = nil
		if err := s.applyCurrencyConversion(ctx, userID, methodCurrency, txn); err != nil {
			return nil, err
		}
	}

	txn.LastUpdatedAt = time.Now()
	txn.LastUpdatedBy = userID

	if err := s.txnRepo.UpdateTransaction(ctx, *txn); err != nil {
		return nil, fmt.Errorf("failed to update transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

// DeleteTransaction removes a transaction owned by the user.
func (s *TransactionService) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	if err := s.txnRepo.DeleteTransaction(ctx, userID, transactionID); err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	s.LogInfo(ctx, "Transaction deleted", slog.String("transactionID", transactionID))
	return nil
}

// applyCurrencyConversion converts txn.Amount from the payment method currency
// to the user's base currency. On a currency match this is a no-op. An
// unresolvable rate rejects the write; a transaction must never be stored with
// a silently unconverted amount.
func (s *TransactionService) applyCurrencyConversion(ctx context.Context, userID, methodCurrency string, txn *domain.Transaction) error {
	user, err := s.userService.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user for conversion: %w", err)
	}
	if methodCurrency == user.BaseCurrencyCode {
		return nil
	}

	converted, quote, err := s.rateService.ConvertAmount(ctx, txn.Amount, methodCurrency, user.BaseCurrencyCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrRateUnavailable) {
			return fmt.Errorf("%w: cannot convert %s to %s", apperrors.ErrRateUnavailable, methodCurrency, user.BaseCurrencyCode)
		}
		return err
	}

	native := txn.Amount
	rate := quote.Rate
	base := user.BaseCurrencyCode
	txn.NativeAmount = &native
	txn.ExchangeRate = &rate
	txn.BaseCurrency = &base
	txn.Amount = converted
	return nil
}

// validateTags checks that every requested tag exists and belongs to the user,
// deduplicating along the way.
func (s *TransactionService) validateTags(ctx context.Context, userID string, tagIDs []string) ([]string, error) {
	if len(tagIDs) == 0 {
		return nil, nil
	}
	seen := make(map[string]bool, len(tagIDs))
	unique := make([]string, 0, len(tagIDs))
	for _, id := range tagIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}

	tags, err := s.tagRepo.FindTagsByIDs(ctx, userID, unique)
	if err != nil {
		return nil, fmt.Errorf("failed to validate tags: %w", err)
	}
	if len(tags) != len(unique) {
		found := make(map[string]bool, len(tags))
		for _, t := range tags {
			found[t.TagID] = true
		}
		for _, id := range unique {
			if !found[id] {
				return nil, fmt.Errorf("%w: tag '%s' not found", apperrors.ErrValidation, id)
			}
		}
	}
	return unique, nil
}
