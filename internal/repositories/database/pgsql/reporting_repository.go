package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new repository for reporting queries.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetMethodBalances returns every payment method of the user with its balance
// in the method's own currency. The native amount is used when a transaction
// was converted, so the per-method figure reflects what actually moved through
// the method. Archived methods are included.
func (r *PgxReportingRepository) GetMethodBalances(ctx context.Context, userID string) ([]domain.PaymentMethodBalance, error) {
	query := `
		SELECT pm.payment_method_id, pm.name, pm.currency_code, pm.is_archived,
		       COALESCE(SUM(
			CASE WHEN t.type = 'income'
			     THEN COALESCE(t.native_amount, t.amount)
			     ELSE -COALESCE(t.native_amount, t.amount)
			END), 0) AS balance
		FROM payment_methods pm
		LEFT JOIN transactions t ON t.payment_method_id = pm.payment_method_id
		WHERE pm.user_id = $1
		GROUP BY pm.payment_method_id, pm.name, pm.currency_code, pm.is_archived
		ORDER BY pm.name;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query method balances: %w", err)
	}
	defer rows.Close()

	balances, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.PaymentMethodBalance, error) {
		var b domain.PaymentMethodBalance
		err := row.Scan(&b.PaymentMethodID, &b.Name, &b.CurrencyCode, &b.IsArchived, &b.Balance)
		return b, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect balance rows: %w", err)
	}
	return balances, nil
}

// GetCategoryTotals returns per-category signed totals in the user's base
// currency for transactions dated within [from, to).
func (r *PgxReportingRepository) GetCategoryTotals(ctx context.Context, userID string, from, to time.Time) ([]domain.CategorySummaryRow, error) {
	query := `
		SELECT c.category_id, c.name, c.type,
		       SUM(CASE WHEN t.type = 'income' THEN t.amount ELSE -t.amount END) AS total
		FROM transactions t
		JOIN categories c ON c.category_id = t.category_id
		WHERE t.user_id = $1 AND t.transaction_date >= $2 AND t.transaction_date < $3
		GROUP BY c.category_id, c.name, c.type
		ORDER BY c.name;
	`
	rows, err := r.Pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query category totals: %w", err)
	}
	defer rows.Close()

	totals, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CategorySummaryRow, error) {
		var c domain.CategorySummaryRow
		err := row.Scan(&c.CategoryID, &c.CategoryName, &c.Type, &c.Total)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect category total rows: %w", err)
	}
	return totals, nil
}

// GetBudgetSpend returns each budget of the given period with actual spend
// from matching expense transactions. Category budgets match by category; tag
// budgets match through the transaction_tags junction.
func (r *PgxReportingRepository) GetBudgetSpend(ctx context.Context, userID string, period time.Time) ([]domain.BudgetUsageRow, error) {
	query := `
		SELECT b.budget_id, b.category_id, b.tag_id,
		       COALESCE(c.name, tg.name, '') AS scope_name,
		       b.period, b.amount,
		       COALESCE((
			SELECT SUM(t.amount)
			FROM transactions t
			WHERE t.user_id = b.user_id
			  AND t.type = 'expense'
			  AND t.transaction_date >= b.period
			  AND t.transaction_date < b.period + INTERVAL '1 month'
			  AND (
				(b.category_id IS NOT NULL AND t.category_id = b.category_id)
				OR (b.tag_id IS NOT NULL AND EXISTS (
					SELECT 1 FROM transaction_tags tt
					WHERE tt.transaction_id = t.transaction_id AND tt.tag_id = b.tag_id
				))
			  )
		       ), 0) AS spent
		FROM budgets b
		LEFT JOIN categories c ON c.category_id = b.category_id
		LEFT JOIN tags tg ON tg.tag_id = b.tag_id
		WHERE b.user_id = $1 AND b.period = $2
		ORDER BY scope_name;
	`
	rows, err := r.Pool.Query(ctx, query, userID, period)
	if err != nil {
		return nil, fmt.Errorf("failed to query budget spend: %w", err)
	}
	defer rows.Close()

	usage, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.BudgetUsageRow, error) {
		var u domain.BudgetUsageRow
		err := row.Scan(&u.BudgetID, &u.CategoryID, &u.TagID, &u.ScopeName, &u.Period, &u.BudgetAmount, &u.Spent)
		return u, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect budget spend rows: %w", err)
	}
	return usage, nil
}
