package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rpattn/portfolio/internal/domain"
)

// standardRepository implements StandardRepository backed by pgxpool.
type standardRepository struct {
	pool *pgxpool.Pool
}

// NewStandardRepository wires a service standard repository backed by pgxpool.
func NewStandardRepository(pool *pgxpool.Pool) StandardRepository {
	return &standardRepository{pool: pool}
}

const standardColumns = `id, number, name, description, active, deleted_at, deleted_by, created_at, updated_at`

func (r *standardRepository) Create(ctx context.Context, standard domain.ServiceStandard) error {
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO standards (`+standardColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		standard.ID,
		standard.Number,
		standard.Name,
		standard.Description,
		standard.Active,
		timestamptz(standard.DeletedAt),
		standard.DeletedBy,
		standard.CreatedAt,
		standard.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create standard: %w", err)
	}

	return nil
}

func (r *standardRepository) GetByID(ctx context.Context, id string) (domain.ServiceStandard, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+standardColumns+` FROM standards WHERE id = $1`, id)

	standard, err := scanStandard(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ServiceStandard{}, fmt.Errorf("standard %s: %w", id, ErrNotFound)
		}
		return domain.ServiceStandard{}, fmt.Errorf("failed to get standard: %w", err)
	}

	return standard, nil
}

func (r *standardRepository) List(ctx context.Context, includeDeleted bool) ([]domain.ServiceStandard, error) {
	query := `SELECT ` + standardColumns + ` FROM standards`
	if !includeDeleted {
		query += ` WHERE deleted_at IS NULL`
	}
	query += ` ORDER BY number`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list standards: %w", err)
	}
	defer rows.Close()

	standards := []domain.ServiceStandard{}
	for rows.Next() {
		standard, err := scanStandard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan standard: %w", err)
		}
		standards = append(standards, standard)
	}

	return standards, rows.Err()
}

func (r *standardRepository) Replace(ctx context.Context, standard domain.ServiceStandard) error {
	tag, err := r.pool.Exec(
		ctx,
		`UPDATE standards
		 SET number = $2, name = $3, description = $4, active = $5, updated_at = $6
		 WHERE id = $1`,
		standard.ID,
		standard.Number,
		standard.Name,
		standard.Description,
		standard.Active,
		standard.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to replace standard: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("standard %s: %w", standard.ID, ErrNotFound)
	}

	return nil
}

func (r *standardRepository) SoftDelete(ctx context.Context, id, deletedBy string, deletedAt time.Time) error {
	tag, err := r.pool.Exec(
		ctx,
		`UPDATE standards
		 SET deleted_at = $2, deleted_by = $3, updated_at = $2
		 WHERE id = $1 AND deleted_at IS NULL`,
		id,
		deletedAt,
		deletedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to delete standard: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("standard %s: %w", id, ErrNotFound)
	}

	return nil
}

func (r *standardRepository) Restore(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(
		ctx,
		`UPDATE standards
		 SET deleted_at = NULL, deleted_by = '', updated_at = now()
		 WHERE id = $1 AND deleted_at IS NOT NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to restore standard: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("standard %s: %w", id, ErrNotFound)
	}

	return nil
}

func scanStandard(row rowScanner) (domain.ServiceStandard, error) {
	var (
		standard  domain.ServiceStandard
		deletedAt pgtype.Timestamptz
	)

	if err := row.Scan(
		&standard.ID,
		&standard.Number,
		&standard.Name,
		&standard.Description,
		&standard.Active,
		&deletedAt,
		&standard.DeletedBy,
		&standard.CreatedAt,
		&standard.UpdatedAt,
	); err != nil {
		return domain.ServiceStandard{}, err
	}

	if deletedAt.Valid {
		value := deletedAt.Time
		standard.DeletedAt = &value
	}

	return standard, nil
}
