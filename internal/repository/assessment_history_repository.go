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

// assessmentHistoryRepository implements AssessmentHistoryRepository backed
// by pgxpool, mirroring the project ledger but keyed by the full triple.
type assessmentHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewAssessmentHistoryRepository wires an assessment history ledger backed by pgxpool.
func NewAssessmentHistoryRepository(pool *pgxpool.Pool) AssessmentHistoryRepository {
	return &assessmentHistoryRepository{pool: pool}
}

func (r *assessmentHistoryRepository) Append(ctx context.Context, entry domain.AssessmentHistory) error {
	changesJSON, err := json.Marshal(entry.Changes)
	if err != nil {
		return fmt.Errorf("failed to encode assessment changes: %w", err)
	}

	_, err = r.pool.Exec(
		ctx,
		`INSERT INTO assessment_history (id, project_id, standard_id, profession_id, recorded_at, changed_by, changes, archived)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.ID,
		entry.ProjectID,
		entry.StandardID,
		entry.ProfessionID,
		entry.Timestamp,
		entry.ChangedBy,
		changesJSON,
		entry.Archived,
	)
	if err != nil {
		return fmt.Errorf("failed to append assessment history: %w", err)
	}

	return nil
}

func (r *assessmentHistoryRepository) ListActive(ctx context.Context, key domain.AssessmentKey) ([]domain.AssessmentHistory, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT id, project_id, standard_id, profession_id, recorded_at, changed_by, changes, archived
		 FROM assessment_history
		 WHERE project_id = $1 AND standard_id = $2 AND profession_id = $3 AND archived = false
		 ORDER BY recorded_at DESC`,
		key.ProjectID,
		key.StandardID,
		key.ProfessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessment history: %w", err)
	}
	defer rows.Close()

	entries := []domain.AssessmentHistory{}
	for rows.Next() {
		entry, err := scanAssessmentHistory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assessment history: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (r *assessmentHistoryRepository) LatestActive(ctx context.Context, key domain.AssessmentKey) (domain.AssessmentHistory, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, project_id, standard_id, profession_id, recorded_at, changed_by, changes, archived
		 FROM assessment_history
		 WHERE project_id = $1 AND standard_id = $2 AND profession_id = $3 AND archived = false
		 ORDER BY recorded_at DESC
		 LIMIT 1`,
		key.ProjectID,
		key.StandardID,
		key.ProfessionID,
	)

	entry, err := scanAssessmentHistory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.AssessmentHistory{}, fmt.Errorf("assessment %s/%s/%s history: %w", key.ProjectID, key.StandardID, key.ProfessionID, ErrNotFound)
		}
		return domain.AssessmentHistory{}, fmt.Errorf("failed to get latest assessment history: %w", err)
	}

	return entry, nil
}

func (r *assessmentHistoryRepository) Archive(ctx context.Context, key domain.AssessmentKey, entryID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(
		ctx,
		`UPDATE assessment_history
		 SET archived = true
		 WHERE id = $1 AND project_id = $2 AND standard_id = $3 AND profession_id = $4 AND archived = false`,
		entryID,
		key.ProjectID,
		key.StandardID,
		key.ProfessionID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to archive assessment history: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *assessmentHistoryRepository) DeleteByProject(ctx context.Context, projectID string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM assessment_history WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("failed to delete project assessment history: %w", err)
	}
	return nil
}

func scanAssessmentHistory(row rowScanner) (domain.AssessmentHistory, error) {
	var (
		entry       domain.AssessmentHistory
		changesJSON []byte
	)

	if err := row.Scan(
		&entry.ID,
		&entry.ProjectID,
		&entry.StandardID,
		&entry.ProfessionID,
		&entry.Timestamp,
		&entry.ChangedBy,
		&changesJSON,
		&entry.Archived,
	); err != nil {
		return domain.AssessmentHistory{}, err
	}

	if err := json.Unmarshal(changesJSON, &entry.Changes); err != nil {
		return domain.AssessmentHistory{}, fmt.Errorf("failed to decode assessment changes: %w", err)
	}

	return entry, nil
}
