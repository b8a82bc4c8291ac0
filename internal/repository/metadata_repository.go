package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rpattn/portfolio/internal/domain"
)

// Plain CRUD repositories for the organizational metadata collections.
// None of these carry history; they exist so projects have something to
// reference.

type deliveryGroupRepository struct {
	pool *pgxpool.Pool
}

// NewDeliveryGroupRepository wires a delivery group repository backed by pgxpool.
func NewDeliveryGroupRepository(pool *pgxpool.Pool) DeliveryGroupRepository {
	return &deliveryGroupRepository{pool: pool}
}

func (r *deliveryGroupRepository) Create(ctx context.Context, group domain.DeliveryGroup) error {
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO delivery_groups (id, name, lead, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		group.ID, group.Name, group.Lead, group.CreatedAt, group.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create delivery group: %w", err)
	}
	return nil
}

func (r *deliveryGroupRepository) GetByID(ctx context.Context, id string) (domain.DeliveryGroup, error) {
	var group domain.DeliveryGroup
	err := r.pool.QueryRow(
		ctx,
		`SELECT id, name, lead, created_at, updated_at FROM delivery_groups WHERE id = $1`,
		id,
	).Scan(&group.ID, &group.Name, &group.Lead, &group.CreatedAt, &group.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DeliveryGroup{}, fmt.Errorf("delivery group %s: %w", id, ErrNotFound)
		}
		return domain.DeliveryGroup{}, fmt.Errorf("failed to get delivery group: %w", err)
	}
	return group, nil
}

func (r *deliveryGroupRepository) List(ctx context.Context) ([]domain.DeliveryGroup, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, lead, created_at, updated_at FROM delivery_groups ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list delivery groups: %w", err)
	}
	defer rows.Close()

	groups := []domain.DeliveryGroup{}
	for rows.Next() {
		var group domain.DeliveryGroup
		if err := rows.Scan(&group.ID, &group.Name, &group.Lead, &group.CreatedAt, &group.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan delivery group: %w", err)
		}
		groups = append(groups, group)
	}
	return groups, rows.Err()
}

func (r *deliveryGroupRepository) Replace(ctx context.Context, group domain.DeliveryGroup) error {
	tag, err := r.pool.Exec(
		ctx,
		`UPDATE delivery_groups SET name = $2, lead = $3, updated_at = $4 WHERE id = $1`,
		group.ID, group.Name, group.Lead, group.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to replace delivery group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delivery group %s: %w", group.ID, ErrNotFound)
	}
	return nil
}

func (r *deliveryGroupRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM delivery_groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete delivery group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delivery group %s: %w", id, ErrNotFound)
	}
	return nil
}

type deliveryPartnerRepository struct {
	pool *pgxpool.Pool
}

// NewDeliveryPartnerRepository wires a delivery partner repository backed by pgxpool.
func NewDeliveryPartnerRepository(pool *pgxpool.Pool) DeliveryPartnerRepository {
	return &deliveryPartnerRepository{pool: pool}
}

func (r *deliveryPartnerRepository) Create(ctx context.Context, partner domain.DeliveryPartner) error {
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO delivery_partners (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		partner.ID, partner.Name, partner.CreatedAt, partner.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create delivery partner: %w", err)
	}
	return nil
}

func (r *deliveryPartnerRepository) GetByID(ctx context.Context, id string) (domain.DeliveryPartner, error) {
	var partner domain.DeliveryPartner
	err := r.pool.QueryRow(
		ctx,
		`SELECT id, name, created_at, updated_at FROM delivery_partners WHERE id = $1`,
		id,
	).Scan(&partner.ID, &partner.Name, &partner.CreatedAt, &partner.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DeliveryPartner{}, fmt.Errorf("delivery partner %s: %w", id, ErrNotFound)
		}
		return domain.DeliveryPartner{}, fmt.Errorf("failed to get delivery partner: %w", err)
	}
	return partner, nil
}

func (r *deliveryPartnerRepository) List(ctx context.Context) ([]domain.DeliveryPartner, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, created_at, updated_at FROM delivery_partners ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list delivery partners: %w", err)
	}
	defer rows.Close()

	partners := []domain.DeliveryPartner{}
	for rows.Next() {
		var partner domain.DeliveryPartner
		if err := rows.Scan(&partner.ID, &partner.Name, &partner.CreatedAt, &partner.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan delivery partner: %w", err)
		}
		partners = append(partners, partner)
	}
	return partners, rows.Err()
}

func (r *deliveryPartnerRepository) Replace(ctx context.Context, partner domain.DeliveryPartner) error {
	tag, err := r.pool.Exec(
		ctx,
		`UPDATE delivery_partners SET name = $2, updated_at = $3 WHERE id = $1`,
		partner.ID, partner.Name, partner.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to replace delivery partner: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delivery partner %s: %w", partner.ID, ErrNotFound)
	}
	return nil
}

func (r *deliveryPartnerRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM delivery_partners WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete delivery partner: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delivery partner %s: %w", id, ErrNotFound)
	}
	return nil
}

type themeRepository struct {
	pool *pgxpool.Pool
}

// NewThemeRepository wires a portfolio theme repository backed by pgxpool.
func NewThemeRepository(pool *pgxpool.Pool) ThemeRepository {
	return &themeRepository{pool: pool}
}

func (r *themeRepository) Create(ctx context.Context, theme domain.PortfolioTheme) error {
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO themes (id, name, description, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		theme.ID, theme.Name, theme.Description, theme.CreatedAt, theme.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create theme: %w", err)
	}
	return nil
}

func (r *themeRepository) GetByID(ctx context.Context, id string) (domain.PortfolioTheme, error) {
	var theme domain.PortfolioTheme
	err := r.pool.QueryRow(
		ctx,
		`SELECT id, name, description, created_at, updated_at FROM themes WHERE id = $1`,
		id,
	).Scan(&theme.ID, &theme.Name, &theme.Description, &theme.CreatedAt, &theme.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PortfolioTheme{}, fmt.Errorf("theme %s: %w", id, ErrNotFound)
		}
		return domain.PortfolioTheme{}, fmt.Errorf("failed to get theme: %w", err)
	}
	return theme, nil
}

func (r *themeRepository) List(ctx context.Context) ([]domain.PortfolioTheme, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, description, created_at, updated_at FROM themes ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list themes: %w", err)
	}
	defer rows.Close()

	themes := []domain.PortfolioTheme{}
	for rows.Next() {
		var theme domain.PortfolioTheme
		if err := rows.Scan(&theme.ID, &theme.Name, &theme.Description, &theme.CreatedAt, &theme.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan theme: %w", err)
		}
		themes = append(themes, theme)
	}
	return themes, rows.Err()
}

func (r *themeRepository) Replace(ctx context.Context, theme domain.PortfolioTheme) error {
	tag, err := r.pool.Exec(
		ctx,
		`UPDATE themes SET name = $2, description = $3, updated_at = $4 WHERE id = $1`,
		theme.ID, theme.Name, theme.Description, theme.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to replace theme: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("theme %s: %w", theme.ID, ErrNotFound)
	}
	return nil
}

func (r *themeRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM themes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete theme: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("theme %s: %w", id, ErrNotFound)
	}
	return nil
}
