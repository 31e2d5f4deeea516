package services

import (
	"context"
	"time"

	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
)

// ReportingService produces dashboard views over a user's finance data.
// Multi-currency figures are converted to the user's base currency through the
// exchange rate service.
type ReportingService interface {
	// BalanceReport returns per-payment-method balances plus a converted
	// base-currency total. Archived methods are included.
	BalanceReport(ctx context.Context, userID string) (*domain.BalanceReport, error)

	// MonthlySummary returns income/expense totals by category for the month
	// containing the given date.
	MonthlySummary(ctx context.Context, userID string, month time.Time) (*domain.MonthlySummary, error)

	// BudgetUsage compares each budget of the month against actual spend.
	BudgetUsage(ctx context.Context, userID string, month time.Time) ([]domain.BudgetUsageRow, error)
}
