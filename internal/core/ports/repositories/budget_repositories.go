package repositories

import (
	"context"
	"time"

	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
)

// BudgetReader defines read operations for budget data
type BudgetReader interface {
	// FindBudgetByID retrieves a budget owned by the given user.
	FindBudgetByID(ctx context.Context, userID, budgetID string) (*domain.Budget, error)

	// ListBudgets retrieves the user's budgets for one normalized period.
	ListBudgets(ctx context.Context, userID string, period time.Time) ([]domain.Budget, error)
}

// BudgetWriter defines write operations for budget data
type BudgetWriter interface {
	// SaveBudget persists a new budget. The (user, scope, period) uniqueness
	// constraints surface as apperrors.ErrDuplicate.
	SaveBudget(ctx context.Context, budget domain.Budget) error

	// UpdateBudget updates the amount of an existing budget.
	UpdateBudget(ctx context.Context, budget domain.Budget) error

	// DeleteBudget removes a budget owned by the given user.
	DeleteBudget(ctx context.Context, userID, budgetID string) error
}

// BudgetRepositoryFacade combines all budget-related repository interfaces
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
}
