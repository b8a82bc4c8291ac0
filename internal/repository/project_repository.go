package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rpattn/portfolio/internal/domain"
)

// projectRepository implements ProjectRepository backed by pgxpool.
type projectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository wires a project repository backed by pgxpool.
func NewProjectRepository(pool *pgxpool.Pool) ProjectRepository {
	return &projectRepository{pool: pool}
}

const projectColumns = `id, name, status, commentary, phase, delivery_group_id, delivery_partner_id, tags, update_date, standards_summary, created_at, updated_at`

func (r *projectRepository) Create(ctx context.Context, project domain.Project) error {
	summaryJSON, err := marshalSummary(project.StandardsSummary)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(
		ctx,
		`INSERT INTO projects (`+projectColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		project.ID,
		project.Name,
		string(project.Status),
		project.Commentary,
		string(project.Phase),
		project.DeliveryGroupID,
		project.DeliveryPartnerID,
		project.Tags,
		timestamptz(project.UpdateDate),
		summaryJSON,
		project.CreatedAt,
		project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (domain.Project, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1`,
		id,
	)

	project, err := scanProject(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Project{}, fmt.Errorf("project %s: %w", id, ErrNotFound)
		}
		return domain.Project{}, fmt.Errorf("failed to get project: %w", err)
	}

	return project, nil
}

func (r *projectRepository) List(ctx context.Context) ([]domain.Project, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT `+projectColumns+` FROM projects ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []domain.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}

	return projects, rows.Err()
}

func (r *projectRepository) Replace(ctx context.Context, project domain.Project) error {
	summaryJSON, err := marshalSummary(project.StandardsSummary)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(
		ctx,
		`UPDATE projects
		 SET name = $2,
		     status = $3,
		     commentary = $4,
		     phase = $5,
		     delivery_group_id = $6,
		     delivery_partner_id = $7,
		     tags = $8,
		     update_date = $9,
		     standards_summary = $10,
		     updated_at = $11
		 WHERE id = $1`,
		project.ID,
		project.Name,
		string(project.Status),
		project.Commentary,
		string(project.Phase),
		project.DeliveryGroupID,
		project.DeliveryPartnerID,
		project.Tags,
		timestamptz(project.UpdateDate),
		summaryJSON,
		project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to replace project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", project.ID, ErrNotFound)
	}

	return nil
}

func (r *projectRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", id, ErrNotFound)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (domain.Project, error) {
	var (
		project     domain.Project
		status      string
		phase       string
		updateDate  pgtype.Timestamptz
		summaryJSON []byte
	)

	if err := row.Scan(
		&project.ID,
		&project.Name,
		&status,
		&project.Commentary,
		&phase,
		&project.DeliveryGroupID,
		&project.DeliveryPartnerID,
		&project.Tags,
		&updateDate,
		&summaryJSON,
		&project.CreatedAt,
		&project.UpdatedAt,
	); err != nil {
		return domain.Project{}, err
	}

	project.Status = domain.Status(status)
	project.Phase = domain.Phase(phase)
	if updateDate.Valid {
		value := updateDate.Time
		project.UpdateDate = &value
	}

	if len(summaryJSON) > 0 {
		if err := json.Unmarshal(summaryJSON, &project.StandardsSummary); err != nil {
			return domain.Project{}, fmt.Errorf("failed to decode standards summary: %w", err)
		}
	}
	if project.StandardsSummary == nil {
		project.StandardsSummary = []domain.StandardSummary{}
	}

	return project, nil
}

func marshalSummary(summary []domain.StandardSummary) ([]byte, error) {
	if summary == nil {
		summary = []domain.StandardSummary{}
	}
	data, err := json.Marshal(summary)
	if err != nil {
		return nil, fmt.Errorf("failed to encode standards summary: %w", err)
	}
	return data, nil
}

func timestamptz(value *time.Time) pgtype.Timestamptz {
	if value == nil {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: *value, Valid: true}
}
