package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rpattn/portfolio/internal/domain"
)

// assessmentRepository implements AssessmentRepository backed by pgxpool.
type assessmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssessmentRepository wires an assessment repository backed by pgxpool.
func NewAssessmentRepository(pool *pgxpool.Pool) AssessmentRepository {
	return &assessmentRepository{pool: pool}
}

func (r *assessmentRepository) Upsert(ctx context.Context, assessment domain.Assessment) error {
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO assessments (project_id, standard_id, profession_id, status, commentary, changed_by, last_updated)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (project_id, standard_id, profession_id)
		 DO UPDATE SET status = EXCLUDED.status,
		               commentary = EXCLUDED.commentary,
		               changed_by = EXCLUDED.changed_by,
		               last_updated = EXCLUDED.last_updated`,
		assessment.ProjectID,
		assessment.StandardID,
		assessment.ProfessionID,
		string(assessment.Status),
		assessment.Commentary,
		assessment.ChangedBy,
		assessment.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert assessment: %w", err)
	}

	return nil
}

func (r *assessmentRepository) Get(ctx context.Context, key domain.AssessmentKey) (domain.Assessment, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT project_id, standard_id, profession_id, status, commentary, changed_by, last_updated
		 FROM assessments
		 WHERE project_id = $1 AND standard_id = $2 AND profession_id = $3`,
		key.ProjectID,
		key.StandardID,
		key.ProfessionID,
	)

	assessment, err := scanAssessment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Assessment{}, fmt.Errorf("assessment %s/%s/%s: %w", key.ProjectID, key.StandardID, key.ProfessionID, ErrNotFound)
		}
		return domain.Assessment{}, fmt.Errorf("failed to get assessment: %w", err)
	}

	return assessment, nil
}

func (r *assessmentRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Assessment, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT project_id, standard_id, profession_id, status, commentary, changed_by, last_updated
		 FROM assessments
		 WHERE project_id = $1
		 ORDER BY standard_id, profession_id`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	defer rows.Close()

	assessments := []domain.Assessment{}
	for rows.Next() {
		assessment, err := scanAssessment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assessment: %w", err)
		}
		assessments = append(assessments, assessment)
	}

	return assessments, rows.Err()
}

func (r *assessmentRepository) Delete(ctx context.Context, key domain.AssessmentKey) error {
	tag, err := r.pool.Exec(
		ctx,
		`DELETE FROM assessments
		 WHERE project_id = $1 AND standard_id = $2 AND profession_id = $3`,
		key.ProjectID,
		key.StandardID,
		key.ProfessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete assessment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("assessment %s/%s/%s: %w", key.ProjectID, key.StandardID, key.ProfessionID, ErrNotFound)
	}

	return nil
}

func (r *assessmentRepository) DeleteByProject(ctx context.Context, projectID string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM assessments WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("failed to delete project assessments: %w", err)
	}
	return nil
}

func scanAssessment(row rowScanner) (domain.Assessment, error) {
	var (
		assessment domain.Assessment
		status     string
	)

	if err := row.Scan(
		&assessment.ProjectID,
		&assessment.StandardID,
		&assessment.ProfessionID,
		&status,
		&assessment.Commentary,
		&assessment.ChangedBy,
		&assessment.LastUpdated,
	); err != nil {
		return domain.Assessment{}, err
	}

	assessment.Status = domain.Status(status)
	return assessment, nil
}
