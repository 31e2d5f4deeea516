package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/fintrackhq/fintrack-backend/internal/apperrors"
	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack-backend/internal/core/ports/repositories"
	"github.com/fintrackhq/fintrack-backend/internal/models"
	"github.com/fintrackhq/fintrack-backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const paymentMethodColumns = `payment_method_id, user_id, name, currency_code, is_archived, created_at, created_by, last_updated_at, last_updated_by`

type PgxPaymentMethodRepository struct {
	BaseRepository
}

// newPgxPaymentMethodRepository creates a new repository for payment method data.
func newPgxPaymentMethodRepository(pool *pgxpool.Pool) portsrepo.PaymentMethodRepositoryFacade {
	return &PgxPaymentMethodRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PaymentMethodRepositoryFacade = (*PgxPaymentMethodRepository)(nil)

// SavePaymentMethod persists a new payment method.
func (r *PgxPaymentMethodRepository) SavePaymentMethod(ctx context.Context, method domain.PaymentMethod) error {
	m := mapping.ToModelPaymentMethod(method)
	query := `
		INSERT INTO payment_methods (` + paymentMethodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PaymentMethodID, m.UserID, m.Name, m.CurrencyCode, m.IsArchived,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save payment method: %w", err)
	}
	return nil
}

// FindPaymentMethodByID retrieves a payment method owned by the given user.
func (r *PgxPaymentMethodRepository) FindPaymentMethodByID(ctx context.Context, userID, paymentMethodID string) (*domain.PaymentMethod, error) {
	query := `
		SELECT ` + paymentMethodColumns + `
		FROM payment_methods
		WHERE payment_method_id = $1 AND user_id = $2;
	`
	var m models.PaymentMethod
	err := r.Pool.QueryRow(ctx, query, paymentMethodID, userID).Scan(
		&m.PaymentMethodID, &m.UserID, &m.Name, &m.CurrencyCode, &m.IsArchived,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment method %s: %w", paymentMethodID, err)
	}
	d := mapping.ToDomainPaymentMethod(m)
	return &d, nil
}

// ListPaymentMethods retrieves the user's payment methods, optionally
// including archived ones.
func (r *PgxPaymentMethodRepository) ListPaymentMethods(ctx context.Context, userID string, includeArchived bool) ([]domain.PaymentMethod, error) {
	query := `
		SELECT ` + paymentMethodColumns + `
		FROM payment_methods
		WHERE user_id = $1 AND ($2 OR is_archived = FALSE)
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, userID, includeArchived)
	if err != nil {
		return nil, fmt.Errorf("failed to query payment methods: %w", err)
	}
	defer rows.Close()

	modelMethods, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.PaymentMethod, error) {
		var m models.PaymentMethod
		err := row.Scan(
			&m.PaymentMethodID, &m.UserID, &m.Name, &m.CurrencyCode, &m.IsArchived,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect payment method rows: %w", err)
	}

	domainMethods := make([]domain.PaymentMethod, len(modelMethods))
	for i, m := range modelMethods {
		domainMethods[i] = mapping.ToDomainPaymentMethod(m)
	}
	return domainMethods, nil
}

// ListActiveCurrencies returns the distinct currency codes across all
// non-archived payment methods.
func (r *PgxPaymentMethodRepository) ListActiveCurrencies(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT currency_code
		FROM payment_methods
		WHERE is_archived = FALSE
		ORDER BY currency_code;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active currencies: %w", err)
	}
	defer rows.Close()

	currencies, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (string, error) {
		var code string
		err := row.Scan(&code)
		return code, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect currency codes: %w", err)
	}
	return currencies, nil
}

// UpdatePaymentMethod updates an existing payment method. The currency code
// column is deliberately not updatable.
func (r *PgxPaymentMethodRepository) UpdatePaymentMethod(ctx context.Context, method domain.PaymentMethod) error {
	m := mapping.ToModelPaymentMethod(method)
	query := `
		UPDATE payment_methods
		SET name = $3, is_archived = $4, last_updated_at = $5, last_updated_by = $6
		WHERE payment_method_id = $1 AND user_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.PaymentMethodID, m.UserID, m.Name, m.IsArchived, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment method %s: %w", m.PaymentMethodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
