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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const tagColumns = `tag_id, user_id, name, created_at, created_by, last_updated_at, last_updated_by`

type PgxTagRepository struct {
	BaseRepository
}

// newPgxTagRepository creates a new repository for tag data.
func newPgxTagRepository(pool *pgxpool.Pool) portsrepo.TagRepositoryFacade {
	return &PgxTagRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TagRepositoryFacade = (*PgxTagRepository)(nil)

// SaveTag persists a new tag.
func (r *PgxTagRepository) SaveTag(ctx context.Context, tag domain.Tag) error {
	m := mapping.ToModelTag(tag)
	query := `
		INSERT INTO tags (` + tagColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TagID, m.UserID, m.Name,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: tag name already exists", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save tag: %w", err)
	}
	return nil
}

// FindTagByID retrieves a tag owned by the given user.
func (r *PgxTagRepository) FindTagByID(ctx context.Context, userID, tagID string) (*domain.Tag, error) {
	query := `
		SELECT ` + tagColumns + `
		FROM tags
		WHERE tag_id = $1 AND user_id = $2;
	`
	var m models.Tag
	err := r.Pool.QueryRow(ctx, query, tagID, userID).Scan(
		&m.TagID, &m.UserID, &m.Name,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find tag %s: %w", tagID, err)
	}
	d := mapping.ToDomainTag(m)
	return &d, nil
}

// FindTagsByIDs retrieves the subset of the given tags owned by the user.
func (r *PgxTagRepository) FindTagsByIDs(ctx context.Context, userID string, tagIDs []string) ([]domain.Tag, error) {
	if len(tagIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT ` + tagColumns + `
		FROM tags
		WHERE user_id = $1 AND tag_id = ANY($2);
	`
	rows, err := r.Pool.Query(ctx, query, userID, tagIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags by IDs: %w", err)
	}
	defer rows.Close()

	return collectTags(rows)
}

// ListTags retrieves all tags owned by the given user.
func (r *PgxTagRepository) ListTags(ctx context.Context, userID string) ([]domain.Tag, error) {
	query := `
		SELECT ` + tagColumns + `
		FROM tags
		WHERE user_id = $1
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	return collectTags(rows)
}

// DeleteTag removes a tag owned by the given user. The transaction_tags
// junction rows cascade with it.
func (r *PgxTagRepository) DeleteTag(ctx context.Context, userID, tagID string) error {
	query := `DELETE FROM tags WHERE tag_id = $1 AND user_id = $2;`
	tag, err := r.Pool.Exec(ctx, query, tagID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete tag %s: %w", tagID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func collectTags(rows pgx.Rows) ([]domain.Tag, error) {
	modelTags, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Tag, error) {
		var m models.Tag
		err := row.Scan(
			&m.TagID, &m.UserID, &m.Name,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect tag rows: %w", err)
	}
	domainTags := make([]domain.Tag, len(modelTags))
	for i, m := range modelTags {
		domainTags[i] = mapping.ToDomainTag(m)
	}
	return domainTags, nil
}
