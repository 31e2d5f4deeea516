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
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const exchangeRateColumns = `exchange_rate_id, from_currency_code, to_currency_code, rate, rate_date, source, api_provider, last_fetched_at, expires_at, is_stale, fetch_error_count, created_at, created_by, last_updated_at, last_updated_by`

// upsertRateQuery writes one directed rate keyed on (from, to, rate_date).
// The WHERE clause keeps API writes from clobbering a MANUAL row; manual
// writes always win.
const upsertRateQuery = `
	INSERT INTO exchange_rates (` + exchangeRateColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, FALSE, 0, $10, $11, $12, $13)
	ON CONFLICT (from_currency_code, to_currency_code, rate_date) DO UPDATE SET
		rate = EXCLUDED.rate,
		source = EXCLUDED.source,
		api_provider = EXCLUDED.api_provider,
		last_fetched_at = EXCLUDED.last_fetched_at,
		expires_at = EXCLUDED.expires_at,
		is_stale = FALSE,
		fetch_error_count = 0,
		last_updated_at = EXCLUDED.last_updated_at,
		last_updated_by = EXCLUDED.last_updated_by
	WHERE exchange_rates.source <> 'MANUAL' OR EXCLUDED.source = 'MANUAL';
`

type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new repository for exchange rate data.
func newPgxExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateRepositoryWithTx {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ExchangeRateRepositoryWithTx = (*PgxExchangeRateRepository)(nil)

// SaveRatePair upserts the given rate and its inverse in one transaction, so
// both directions of a pair can never disagree.
func (r *PgxExchangeRateRepository) SaveRatePair(ctx context.Context, rate domain.ExchangeRate) error {
	inverse := rate
	inverse.ExchangeRateID = uuid.NewString()
	inverse.FromCurrencyCode = rate.ToCurrencyCode
	inverse.ToCurrencyCode = rate.FromCurrencyCode
	inverse.Rate = decimal.NewFromInt(1).Div(rate.Rate)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	for _, row := range []domain.ExchangeRate{rate, inverse} {
		m := mapping.ToModelExchangeRate(row)
		if _, err := tx.Exec(ctx, upsertRateQuery,
			m.ExchangeRateID,
			m.FromCurrencyCode,
			m.ToCurrencyCode,
			m.Rate,
			m.RateDate,
			m.Source,
			m.APIProvider,
			m.LastFetchedAt,
			m.ExpiresAt,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		); err != nil {
			return fmt.Errorf("failed to upsert exchange rate %s->%s: %w", m.FromCurrencyCode, m.ToCurrencyCode, err)
		}
	}

	return r.Commit(ctx, tx)
}

// FindRateForDate retrieves the stored rate for a directed pair on a given
// day. MANUAL rows order before API rows.
func (r *PgxExchangeRateRepository) FindRateForDate(ctx context.Context, fromCurrencyCode, toCurrencyCode string, date time.Time) (*domain.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE from_currency_code = $1 AND to_currency_code = $2 AND rate_date = $3
		ORDER BY (source = 'MANUAL') DESC, last_fetched_at DESC
		LIMIT 1;
	`
	return r.queryOne(ctx, query, fromCurrencyCode, toCurrencyCode, date)
}

// FindLatestRate retrieves the most recent stored rate for a directed pair,
// regardless of date or staleness.
func (r *PgxExchangeRateRepository) FindLatestRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE from_currency_code = $1 AND to_currency_code = $2
		ORDER BY rate_date DESC, (source = 'MANUAL') DESC, last_fetched_at DESC
		LIMIT 1;
	`
	return r.queryOne(ctx, query, fromCurrencyCode, toCurrencyCode)
}

// IncrementFetchErrors bumps fetch_error_count on both directions of a pair
// for the given day.
func (r *PgxExchangeRateRepository) IncrementFetchErrors(ctx context.Context, fromCurrencyCode, toCurrencyCode string, date time.Time) error {
	query := `
		UPDATE exchange_rates
		SET fetch_error_count = fetch_error_count + 1,
		    last_updated_at = NOW()
		WHERE rate_date = $3
		  AND ((from_currency_code = $1 AND to_currency_code = $2)
		    OR (from_currency_code = $2 AND to_currency_code = $1));
	`
	if _, err := r.Pool.Exec(ctx, query, fromCurrencyCode, toCurrencyCode, date); err != nil {
		return fmt.Errorf("failed to increment fetch errors for %s/%s: %w", fromCurrencyCode, toCurrencyCode, err)
	}
	return nil
}

// MarkStaleRates flags expired rates that have no fresher row for the same
// directed pair. Never deletes; running it twice marks nothing new.
func (r *PgxExchangeRateRepository) MarkStaleRates(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE exchange_rates e
		SET is_stale = TRUE,
		    last_updated_at = $1
		WHERE e.is_stale = FALSE
		  AND e.expires_at <= $1
		  AND NOT EXISTS (
			SELECT 1 FROM exchange_rates f
			WHERE f.from_currency_code = e.from_currency_code
			  AND f.to_currency_code = e.to_currency_code
			  AND f.expires_at > $1
		  );
	`
	tag, err := r.Pool.Exec(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("failed to mark stale exchange rates: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ListExchangeRates retrieves rates with optional pair/date filters and
// page-based pagination.
func (r *PgxExchangeRateRepository) ListExchangeRates(ctx context.Context, fromCurrency, toCurrency *string, date *time.Time, page, pageSize int) ([]domain.ExchangeRate, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	query := `
		SELECT ` + exchangeRateColumns + `, COUNT(*) OVER() AS total
		FROM exchange_rates
		WHERE ($1::text IS NULL OR from_currency_code = $1)
		  AND ($2::text IS NULL OR to_currency_code = $2)
		  AND ($3::date IS NULL OR rate_date = $3)
		ORDER BY rate_date DESC, from_currency_code, to_currency_code
		LIMIT $4 OFFSET $5;
	`
	rows, err := r.Pool.Query(ctx, query, fromCurrency, toCurrency, date, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query exchange rates: %w", err)
	}
	defer rows.Close()

	var total int
	var domainRates []domain.ExchangeRate
	for rows.Next() {
		var m models.ExchangeRate
		if err := rows.Scan(
			&m.ExchangeRateID,
			&m.FromCurrencyCode,
			&m.ToCurrencyCode,
			&m.Rate,
			&m.RateDate,
			&m.Source,
			&m.APIProvider,
			&m.LastFetchedAt,
			&m.ExpiresAt,
			&m.IsStale,
			&m.FetchErrorCount,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan exchange rate row: %w", err)
		}
		domainRates = append(domainRates, mapping.ToDomainExchangeRate(m))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate exchange rate rows: %w", err)
	}
	return domainRates, total, nil
}

func (r *PgxExchangeRateRepository) queryOne(ctx context.Context, query string, args ...any) (*domain.ExchangeRate, error) {
	var m models.ExchangeRate
	err := r.Pool.QueryRow(ctx, query, args...).Scan(
		&m.ExchangeRateID,
		&m.FromCurrencyCode,
		&m.ToCurrencyCode,
		&m.Rate,
		&m.RateDate,
		&m.Source,
		&m.APIProvider,
		&m.LastFetchedAt,
		&m.ExpiresAt,
		&m.IsStale,
		&m.FetchErrorCount,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query exchange rate: %w", err)
	}
	d := mapping.ToDomainExchangeRate(m)
	return &d, nil
}
