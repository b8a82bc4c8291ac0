package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/rpattn/portfolio/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist. Callers
// discriminate it from other failures with errors.Is.
var ErrNotFound = errors.New("record not found")

// ProjectRepository defines the interface for project persistence.
type ProjectRepository interface {
	Create(ctx context.Context, project domain.Project) error
	GetByID(ctx context.Context, id string) (domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
	// Replace overwrites the stored project wholesale. Returns ErrNotFound
	// when no row matched.
	Replace(ctx context.Context, project domain.Project) error
	Delete(ctx context.Context, id string) error
}

// ProjectHistoryRepository is the append-only ledger of project changes.
// Entries are never deleted; archiving flips a flag and excludes the entry
// from the active views.
type ProjectHistoryRepository interface {
	Append(ctx context.Context, entry domain.ProjectHistory) error
	// ListActive returns non-archived entries ordered by timestamp desc.
	ListActive(ctx context.Context, projectID string) ([]domain.ProjectHistory, error)
	// LatestActive returns the newest non-archived entry, or ErrNotFound.
	LatestActive(ctx context.Context, projectID string) (domain.ProjectHistory, error)
	// Archive flips one entry to archived. Reports false when no matching
	// non-archived entry existed, so archiving twice is a no-op.
	Archive(ctx context.Context, projectID string, entryID uuid.UUID) (bool, error)
	DeleteByProject(ctx context.Context, projectID string) error
}

// AssessmentRepository defines the interface for assessment persistence.
// Rows are keyed by the (project, standard, profession) triple with upsert
// semantics.
type AssessmentRepository interface {
	Upsert(ctx context.Context, assessment domain.Assessment) error
	Get(ctx context.Context, key domain.AssessmentKey) (domain.Assessment, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.Assessment, error)
	Delete(ctx context.Context, key domain.AssessmentKey) error
	DeleteByProject(ctx context.Context, projectID string) error
}

// AssessmentHistoryRepository is the append-only ledger of assessment
// changes, keyed by the full assessment triple.
type AssessmentHistoryRepository interface {
	Append(ctx context.Context, entry domain.AssessmentHistory) error
	ListActive(ctx context.Context, key domain.AssessmentKey) ([]domain.AssessmentHistory, error)
	LatestActive(ctx context.Context, key domain.AssessmentKey) (domain.AssessmentHistory, error)
	Archive(ctx context.Context, key domain.AssessmentKey, entryID uuid.UUID) (bool, error)
	DeleteByProject(ctx context.Context, projectID string) error
}

// StandardRepository defines the interface for service standard persistence.
type StandardRepository interface {
	Create(ctx context.Context, standard domain.ServiceStandard) error
	GetByID(ctx context.Context, id string) (domain.ServiceStandard, error)
	// List returns standards ordered by number. Soft deleted standards are
	// excluded unless includeDeleted is set.
	List(ctx context.Context, includeDeleted bool) ([]domain.ServiceStandard, error)
	Replace(ctx context.Context, standard domain.ServiceStandard) error
	SoftDelete(ctx context.Context, id, deletedBy string, deletedAt time.Time) error
	Restore(ctx context.Context, id string) error
}

// ProfessionRepository defines the interface for profession persistence.
type ProfessionRepository interface {
	Create(ctx context.Context, profession domain.Profession) error
	GetByID(ctx context.Context, id string) (domain.Profession, error)
	List(ctx context.Context, includeDeleted bool) ([]domain.Profession, error)
	Replace(ctx context.Context, profession domain.Profession) error
	SoftDelete(ctx context.Context, id, deletedBy string, deletedAt time.Time) error
	Restore(ctx context.Context, id string) error
}

// DeliveryGroupRepository defines the interface for delivery group CRUD.
type DeliveryGroupRepository interface {
	Create(ctx context.Context, group domain.DeliveryGroup) error
	GetByID(ctx context.Context, id string) (domain.DeliveryGroup, error)
	List(ctx context.Context) ([]domain.DeliveryGroup, error)
	Replace(ctx context.Context, group domain.DeliveryGroup) error
	Delete(ctx context.Context, id string) error
}

// DeliveryPartnerRepository defines the interface for delivery partner CRUD.
type DeliveryPartnerRepository interface {
	Create(ctx context.Context, partner domain.DeliveryPartner) error
	GetByID(ctx context.Context, id string) (domain.DeliveryPartner, error)
	List(ctx context.Context) ([]domain.DeliveryPartner, error)
	Replace(ctx context.Context, partner domain.DeliveryPartner) error
	Delete(ctx context.Context, id string) error
}

// ThemeRepository defines the interface for portfolio theme CRUD.
type ThemeRepository interface {
	Create(ctx context.Context, theme domain.PortfolioTheme) error
	GetByID(ctx context.Context, id string) (domain.PortfolioTheme, error)
	List(ctx context.Context) ([]domain.PortfolioTheme, error)
	Replace(ctx context.Context, theme domain.PortfolioTheme) error
	Delete(ctx context.Context, id string) error
}
