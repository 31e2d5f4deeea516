package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fintrackhq/fintrack-backend/internal/apperrors"
	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack-backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackhq/fintrack-backend/internal/core/ports/services"
	"github.com/fintrackhq/fintrack-backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetService provides business logic for monthly budgets. A budget is
// scoped to exactly one category or exactly one tag; the XOR rule is enforced
// here and again by a database CHECK constraint.
type BudgetService struct {
	BaseService
	budgetRepo      portsrepo.BudgetRepositoryFacade
	categoryService *CategoryService
	tagRepo         portsrepo.TagRepositoryFacade
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(budgetRepo portsrepo.BudgetRepositoryFacade, categoryService *CategoryService, tagRepo portsrepo.TagRepositoryFacade) *BudgetService {
	return &BudgetService{budgetRepo: budgetRepo, categoryService: categoryService, tagRepo: tagRepo}
}

var _ portssvc.BudgetSvcFacade = (*BudgetService)(nil)

// CreateBudget creates a budget for one month. The period is normalized to the
// first day of the month; duplicates for the same scope and month surface as
// apperrors.ErrDuplicate.
func (s *BudgetService) CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.Budget, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: budget amount must be positive", apperrors.ErrValidation)
	}

	budget := domain.Budget{
		BudgetID:   uuid.NewString(),
		UserID:     userID,
		CategoryID: req.CategoryID,
		TagID:      req.TagID,
		Amount:     req.Amount,
		Period:     domain.NormalizePeriod(req.Period),
	}
	if !budget.ScopeValid() {
		return nil, fmt.Errorf("%w: a budget must reference exactly one of category or tag", apperrors.ErrValidation)
	}

	if budget.CategoryID != nil {
		category, err := s.categoryService.GetCategoryByID(ctx, userID, *budget.CategoryID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: category '%s' not found", apperrors.ErrValidation, *budget.CategoryID)
			}
			return nil, err
		}
		if category.Type != domain.CategoryExpense {
			return nil, fmt.Errorf("%w: budgets only apply to expense categories", apperrors.ErrValidation)
		}
	} else {
		if _, err := s.tagRepo.FindTagByID(ctx, userID, *budget.TagID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: tag '%s' not found", apperrors.ErrValidation, *budget.TagID)
			}
			return nil, fmt.Errorf("failed to validate tag: %w", err)
		}
	}

	now := time.Now()
	budget.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: a budget for this scope and month already exists", apperrors.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to save budget: %w", err)
	}

	s.LogInfo(ctx, "Budget created",
		slog.String("budgetID", budget.BudgetID),
		slog.Time("period", budget.Period))
	return &budget, nil
}

// GetBudgetByID retrieves a budget owned by the user.
func (s *BudgetService) GetBudgetByID(ctx context.Context, userID, budgetID string) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, userID, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get budget %s: %w", budgetID, err)
	}
	return budget, nil
}

// ListBudgets retrieves the user's budgets for the month containing period.
func (s *BudgetService) ListBudgets(ctx context.Context, userID string, period time.Time) ([]domain.Budget, error) {
	budgets, err := s.budgetRepo.ListBudgets(ctx, userID, domain.NormalizePeriod(period))
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	return budgets, nil
}

// UpdateBudget changes a budget's amount. Scope and period are immutable;
// delete and recreate to move a budget.
func (s *BudgetService) UpdateBudget(ctx context.Context, userID, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: budget amount must be positive", apperrors.ErrValidation)
	}

	budget, err := s.budgetRepo.FindBudgetByID(ctx, userID, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get budget %s for update: %w", budgetID, err)
	}

	budget.Amount = req.Amount
	budget.LastUpdatedAt = time.Now()
	budget.LastUpdatedBy = userID

	if err := s.budgetRepo.UpdateBudget(ctx, *budget); err != nil {
		return nil, fmt.Errorf("failed to update budget %s: %w", budgetID, err)
	}
	return budget, nil
}

// DeleteBudget removes a budget owned by the user.
func (s *BudgetService) DeleteBudget(ctx context.Context, userID, budgetID string) error {
	if err := s.budgetRepo.DeleteBudget(ctx, userID, budgetID); err != nil {
		return fmt.Errorf("failed to delete budget %s: %w", budgetID, err)
	}
	s.LogInfo(ctx, "Budget deleted", slog.String("budgetID", budgetID))
	return nil
}
