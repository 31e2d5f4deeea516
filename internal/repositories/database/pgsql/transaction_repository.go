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

const transactionColumns = `transaction_id, user_id, category_id, payment_method_id, type, amount, transaction_date, description, native_amount, exchange_rate, base_currency, created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

// SaveTransaction persists a new transaction and its tag links in one
// database transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	if _, err := tx.Exec(ctx, query,
		m.TransactionID, m.UserID, m.CategoryID, m.PaymentMethodID, m.Type,
		m.Amount, m.TransactionDate, m.Description,
		m.NativeAmount, m.ExchangeRate, m.BaseCurrency,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	); err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	if err := insertTransactionTags(ctx, tx, m.TransactionID, txn.TagIDs); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a transaction with its tag IDs.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE transaction_id = $1 AND user_id = $2;
	`
	var m models.Transaction
	err := r.Pool.QueryRow(ctx, query, transactionID, userID).Scan(
		&m.TransactionID, &m.UserID, &m.CategoryID, &m.PaymentMethodID, &m.Type,
		&m.Amount, &m.TransactionDate, &m.Description,
		&m.NativeAmount, &m.ExchangeRate, &m.BaseCurrency,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}

	d := mapping.ToDomainTransaction(m)
	tagIDs, err := r.loadTagIDs(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	d.TagIDs = tagIDs
	return &d, nil
}

// ListTransactions retrieves the user's transactions matching the filter,
// newest first.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, userID string, filter portsrepo.TransactionFilter, limit, offset int) ([]domain.Transaction, int, error) {
	query := `
		SELECT ` + transactionColumns + `, COUNT(*) OVER() AS total
		FROM transactions t
		WHERE t.user_id = $1
		  AND ($2::timestamptz IS NULL OR t.transaction_date >= $2)
		  AND ($3::timestamptz IS NULL OR t.transaction_date < $3)
		  AND ($4::text IS NULL OR t.category_id = $4)
		  AND ($5::text IS NULL OR t.payment_method_id = $5)
		  AND ($6::text IS NULL OR EXISTS (
			SELECT 1 FROM transaction_tags tt
			WHERE tt.transaction_id = t.transaction_id AND tt.tag_id = $6
		  ))
		ORDER BY t.transaction_date DESC, t.created_at DESC
		LIMIT $7 OFFSET $8;
	`
	rows, err := r.Pool.Query(ctx, query,
		userID, filter.FromDate, filter.ToDate, filter.CategoryID, filter.PaymentMethodID, filter.TagID,
		limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var total int
	var txns []domain.Transaction
	for rows.Next() {
		var m models.Transaction
		if err := rows.Scan(
			&m.TransactionID, &m.UserID, &m.CategoryID, &m.PaymentMethodID, &m.Type,
			&m.Amount, &m.TransactionDate, &m.Description,
			&m.NativeAmount, &m.ExchangeRate, &m.BaseCurrency,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, mapping.ToDomainTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate transaction rows: %w", err)
	}

	for i := range txns {
		tagIDs, err := r.loadTagIDs(ctx, txns[i].TransactionID)
		if err != nil {
			return nil, 0, err
		}
		txns[i].TagIDs = tagIDs
	}
	return txns, total, nil
}

// UpdateTransaction updates a transaction and replaces its tag links.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
		UPDATE transactions
		SET category_id = $3, payment_method_id = $4, type = $5, amount = $6,
		    transaction_date = $7, description = $8,
		    native_amount = $9, exchange_rate = $10, base_currency = $11,
		    last_updated_at = $12, last_updated_by = $13
		WHERE transaction_id = $1 AND user_id = $2;
	`
	tag, err := tx.Exec(ctx, query,
		m.TransactionID, m.UserID, m.CategoryID, m.PaymentMethodID, m.Type,
		m.Amount, m.TransactionDate, m.Description,
		m.NativeAmount, m.ExchangeRate, m.BaseCurrency,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", m.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM transaction_tags WHERE transaction_id = $1;`, m.TransactionID); err != nil {
		return fmt.Errorf("failed to clear transaction tags: %w", err)
	}
	if err := insertTransactionTags(ctx, tx, m.TransactionID, txn.TagIDs); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteTransaction removes a transaction; its tag links cascade with it.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	query := `DELETE FROM transactions WHERE transaction_id = $1 AND user_id = $2;`
	tag, err := r.Pool.Exec(ctx, query, transactionID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTransactionRepository) loadTagIDs(ctx context.Context, transactionID string) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `SELECT tag_id FROM transaction_tags WHERE transaction_id = $1 ORDER BY tag_id;`, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction tags: %w", err)
	}
	defer rows.Close()

	tagIDs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (string, error) {
		var id string
		err := row.Scan(&id)
		return id, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect transaction tag rows: %w", err)
	}
	return tagIDs, nil
}

func insertTransactionTags(ctx context.Context, tx pgx.Tx, transactionID string, tagIDs []string) error {
	for _, tagID := range tagIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO transaction_tags (transaction_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING;`,
			transactionID, tagID,
		); err != nil {
			return fmt.Errorf("failed to link tag %s: %w", tagID, err)
		}
	}
	return nil
}
