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

// professionRepository implements ProfessionRepository backed by pgxpool.
type professionRepository struct {
	pool *pgxpool.Pool
}

// NewProfessionRepository wires a profession repository backed by pgxpool.
func NewProfessionRepository(pool *pgxpool.Pool) ProfessionRepository {
	return &professionRepository{pool: pool}
}

const professionColumns = `id, name, deleted_at, deleted_by, created_at, updated_at`

func (r *professionRepository) Create(ctx context.Context, profession domain.Profession) error {
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO professions (`+professionColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		profession.ID,
		profession.Name,
		timestamptz(profession.DeletedAt),
		profession.DeletedBy,
		profession.CreatedAt,
		profession.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create profession: %w", err)
	}

	return nil
}

func (r *professionRepository) GetByID(ctx context.Context, id string) (domain.Profession, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+professionColumns+` FROM professions WHERE id = $1`, id)

	profession, err := scanProfession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Profession{}, fmt.Errorf("profession %s: %w", id, ErrNotFound)
		}
		return domain.Profession{}, fmt.Errorf("failed to get profession: %w", err)
	}

	return profession, nil
}

func (r *professionRepository) List(ctx context.Context, includeDeleted bool) ([]domain.Profession, error) {
	query := `SELECT ` + professionColumns + ` FROM professions`
	if !includeDeleted {
		query += ` WHERE deleted_at IS NULL`
	}
	query += ` ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list professions: %w", err)
	}
	defer rows.Close()

	professions := []domain.Profession{}
	for rows.Next() {
		profession, err := scanProfession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profession: %w", err)
		}
		professions = append(professions, profession)
	}

	return professions, rows.Err()
}

func (r *professionRepository) Replace(ctx context.Context, profession domain.Profession) error {
	tag, err := r.pool.Exec(
		ctx,
		`UPDATE professions SET name = $2, updated_at = $3 WHERE id = $1`,
		profession.ID,
		profession.Name,
		profession.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to replace profession: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("profession %s: %w", profession.ID, ErrNotFound)
	}

	return nil
}

func (r *professionRepository) SoftDelete(ctx context.Context, id, deletedBy string, deletedAt time.Time) error {
	tag, err := r.pool.Exec(
		ctx,
		`UPDATE professions
		 SET deleted_at = $2, deleted_by = $3, updated_at = $2
		 WHERE id = $1 AND deleted_at IS NULL`,
		id,
		deletedAt,
		deletedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to delete profession: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("profession %s: %w", id, ErrNotFound)
	}

	return nil
}

func (r *professionRepository) Restore(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(
		ctx,
		`UPDATE professions
		 SET deleted_at = NULL, deleted_by = '', updated_at = now()
		 WHERE id = $1 AND deleted_at IS NOT NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to restore profession: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("profession %s: %w", id, ErrNotFound)
	}

	return nil
}

func scanProfession(row rowScanner) (domain.Profession, error) {
	var (
		profession domain.Profession
		deletedAt  pgtype.Timestamptz
	)

	if err := row.Scan(
		&profession.ID,
		&profession.Name,
		&deletedAt,
		&profession.DeletedBy,
		&profession.CreatedAt,
		&profession.UpdatedAt,
	); err != nil {
		return domain.Profession{}, err
	}

	if deletedAt.Valid {
		value := deletedAt.Time
		profession.DeletedAt = &value
	}

	return profession, nil
}
