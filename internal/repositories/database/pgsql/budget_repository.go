package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fintrackhq/fintrack-backend/internal/apperrors"
	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack-backend/internal/core/ports/repositories"
	"github.com/fintrackhq/fintrack-backend/internal/models"
	"github.com/fintrackhq/fintrack-backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const budgetColumns = `budget_id, user_id, category_id, tag_id, amount, period, created_at, created_by, last_updated_at, last_updated_by`

type PgxBudgetRepository struct {
	BaseRepository
}

// newPgxBudgetRepository creates a new repository for budget data.
func newPgxBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepositoryFacade {
	return &PgxBudgetRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

// SaveBudget persists a new budget. The partial unique indexes on
// (user_id, category_id, period) and (user_id, tag_id, period) surface as
// apperrors.ErrDuplicate; the XOR CHECK constraint surfaces as ErrValidation.
func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	m := mapping.ToModelBudget(budget)
	query := `
		INSERT INTO budgets (` + budgetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BudgetID, m.UserID, m.CategoryID, m.TagID, m.Amount, m.Period,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation
				return fmt.Errorf("%w: budget already exists for this scope and period", apperrors.ErrDuplicate)
			case "23514": // check_violation
				return fmt.Errorf("%w: budget must reference exactly one of category or tag", apperrors.ErrValidation)
			}
		}
		return fmt.Errorf("failed to save budget: %w", err)
	}
	return nil
}

// FindBudgetByID retrieves a budget owned by the given user.
func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, userID, budgetID string) (*domain.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE budget_id = $1 AND user_id = $2;
	`
	var m models.Budget
	err := r.Pool.QueryRow(ctx, query, budgetID, userID).Scan(
		&m.BudgetID, &m.UserID, &m.CategoryID, &m.TagID, &m.Amount, &m.Period,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find budget %s: %w", budgetID, err)
	}
	d := mapping.ToDomainBudget(m)
	return &d, nil
}

// ListBudgets retrieves the user's budgets for one normalized period.
func (r *PgxBudgetRepository) ListBudgets(ctx context.Context, userID string, period time.Time) ([]domain.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE user_id = $1 AND period = $2
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, userID, period)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	modelBudgets, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Budget, error) {
		var m models.Budget
		err := row.Scan(
			&m.BudgetID, &m.UserID, &m.CategoryID, &m.TagID, &m.Amount, &m.Period,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect budget rows: %w", err)
	}

	domainBudgets := make([]domain.Budget, len(modelBudgets))
	for i, m := range modelBudgets {
		domainBudgets[i] = mapping.ToDomainBudget(m)
	}
	return domainBudgets, nil
}

// UpdateBudget updates the amount of an existing budget.
func (r *PgxBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	m := mapping.ToModelBudget(budget)
	query := `
		UPDATE budgets
		SET amount = $3, last_updated_at = $4, last_updated_by = $5
		WHERE budget_id = $1 AND user_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, m.BudgetID, m.UserID, m.Amount, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update budget %s: %w", m.BudgetID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteBudget removes a budget owned by the given user.
func (r *PgxBudgetRepository) DeleteBudget(ctx context.Context, userID, budgetID string) error {
	query := `DELETE FROM budgets WHERE budget_id = $1 AND user_id = $2;`
	tag, err := r.Pool.Exec(ctx, query, budgetID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete budget %s: %w", budgetID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
