package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rpattn/portfolio/internal/domain"
)

// projectHistoryRepository implements ProjectHistoryRepository backed by
// pgxpool. Rows are append-only: the only UPDATE ever issued flips the
// archived flag.
type projectHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewProjectHistoryRepository wires a project history ledger backed by pgxpool.
func NewProjectHistoryRepository(pool *pgxpool.Pool) ProjectHistoryRepository {
	return &projectHistoryRepository{pool: pool}
}

func (r *projectHistoryRepository) Append(ctx context.Context, entry domain.ProjectHistory) error {
	changesJSON, err := json.Marshal(entry.Changes)
	if err != nil {
		return fmt.Errorf("failed to encode project changes: %w", err)
	}

	_, err = r.pool.Exec(
		ctx,
		`INSERT INTO project_history (id, project_id, recorded_at, changed_by, changes, archived)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID,
		entry.ProjectID,
		entry.Timestamp,
		entry.ChangedBy,
		changesJSON,
		entry.Archived,
	)
	if err != nil {
		return fmt.Errorf("failed to append project history: %w", err)
	}

	return nil
}

func (r *projectHistoryRepository) ListActive(ctx context.Context, projectID string) ([]domain.ProjectHistory, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT id, project_id, recorded_at, changed_by, changes, archived
		 FROM project_history
		 WHERE project_id = $1 AND archived = false
		 ORDER BY recorded_at DESC`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list project history: %w", err)
	}
	defer rows.Close()

	entries := []domain.ProjectHistory{}
	for rows.Next() {
		entry, err := scanProjectHistory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project history: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (r *projectHistoryRepository) LatestActive(ctx context.Context, projectID string) (domain.ProjectHistory, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, project_id, recorded_at, changed_by, changes, archived
		 FROM project_history
		 WHERE project_id = $1 AND archived = false
		 ORDER BY recorded_at DESC
		 LIMIT 1`,
		projectID,
	)

	entry, err := scanProjectHistory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ProjectHistory{}, fmt.Errorf("project %s history: %w", projectID, ErrNotFound)
		}
		return domain.ProjectHistory{}, fmt.Errorf("failed to get latest project history: %w", err)
	}

	return entry, nil
}

func (r *projectHistoryRepository) Archive(ctx context.Context, projectID string, entryID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(
		ctx,
		`UPDATE project_history
		 SET archived = true
		 WHERE id = $1 AND project_id = $2 AND archived = false`,
		entryID,
		projectID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to archive project history: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *projectHistoryRepository) DeleteByProject(ctx context.Context, projectID string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM project_history WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("failed to delete project history: %w", err)
	}
	return nil
}

func scanProjectHistory(row rowScanner) (domain.ProjectHistory, error) {
	var (
		entry       domain.ProjectHistory
		changesJSON []byte
	)

	if err := row.Scan(
		&entry.ID,
		&entry.ProjectID,
		&entry.Timestamp,
		&entry.ChangedBy,
		&changesJSON,
		&entry.Archived,
	); err != nil {
		return domain.ProjectHistory{}, err
	}

	if err := json.Unmarshal(changesJSON, &entry.Changes); err != nil {
		return domain.ProjectHistory{}, fmt.Errorf("failed to decode project changes: %w", err)
	}

	return entry, nil
}
