package repositories

import (
	"context"
	"time"

	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
)

// ReportingRepository defines the read-only aggregate queries behind reports.
// Amounts come back unconverted; the reporting service handles currency
// conversion through the exchange rate service.
type ReportingRepository interface {
	// GetMethodBalances returns every payment method of the user (archived
	// included) with its balance in the method's own currency.
	GetMethodBalances(ctx context.Context, userID string) ([]domain.PaymentMethodBalance, error)

	// GetCategoryTotals returns per-category signed totals (base currency)
	// for transactions dated within [from, to).
	GetCategoryTotals(ctx context.Context, userID string, from, to time.Time) ([]domain.CategorySummaryRow, error)

	// GetBudgetSpend returns each budget of the given period with its
	// BudgetAmount, ScopeName and Spent filled from matching expense
	// transactions (category budgets by category, tag budgets through the
	// transaction_tags junction).
	GetBudgetSpend(ctx context.Context, userID string, period time.Time) ([]domain.BudgetUsageRow, error)
}
