package dto

import (
	"time"

	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBudgetRequest defines the data needed to create a budget. Exactly one
// of CategoryID / TagID must be set; the service rejects both-or-neither.
// Period may be any date within the target month; it is normalized to the
// first day of that month.
type CreateBudgetRequest struct {
	CategoryID *string         `json:"categoryID"`
	TagID      *string         `json:"tagID"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Period     time.Time       `json:"period" binding:"required"`
}

// UpdateBudgetRequest defines updatable budget fields. Scope and period are
// immutable; delete and recreate to move a budget.
type UpdateBudgetRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// BudgetResponse defines the data returned for a budget.
type BudgetResponse struct {
	BudgetID   string          `json:"budgetID"`
	CategoryID *string         `json:"categoryID,omitempty"`
	TagID      *string         `json:"tagID,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Period     time.Time       `json:"period"`
}

// ToBudgetResponse converts a domain.Budget to its response DTO
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		BudgetID:   b.BudgetID,
		CategoryID: b.CategoryID,
		TagID:      b.TagID,
		Amount:     b.Amount,
		Period:     b.Period,
	}
}

// ToListBudgetResponse converts a slice of domain.Budget to response DTOs
func ToListBudgetResponse(budgets []domain.Budget) []BudgetResponse {
	res := make([]BudgetResponse, len(budgets))
	for i := range budgets {
		res[i] = ToBudgetResponse(&budgets[i])
	}
	return res
}
