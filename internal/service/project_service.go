package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rpattn/portfolio/internal/domain"
	"github.com/rpattn/portfolio/internal/repository"
)

// ProjectService orchestrates every project mutation: change detection,
// history writing, the backdating guard and summary re-injection all hang
// off this type so no caller can mutate a project without the audit trail
// seeing it.
type ProjectService struct {
	projects          repository.ProjectRepository
	history           repository.ProjectHistoryRepository
	assessments       repository.AssessmentRepository
	assessmentHistory repository.AssessmentHistoryRepository
	log               *slog.Logger
	now               func() time.Time
}

// NewProjectService wires a project service over the given repositories.
func NewProjectService(
	projects repository.ProjectRepository,
	history repository.ProjectHistoryRepository,
	assessments repository.AssessmentRepository,
	assessmentHistory repository.AssessmentHistoryRepository,
	log *slog.Logger,
) *ProjectService {
	return &ProjectService{
		projects:          projects,
		history:           history,
		assessments:       assessments,
		assessmentHistory: assessmentHistory,
		log:               log,
		now:               time.Now,
	}
}

// UpdateOptions carries the per-request knobs of a project update.
type UpdateOptions struct {
	Actor string
	// SuppressHistory skips the ledger entirely, whatever the detected
	// changes. Used for administrative corrections that must not show up
	// in the audit trail.
	SuppressHistory bool
	// EffectiveDate is the caller supplied date the change describes.
	// Empty means now; see ResolveEffectiveDate for the accepted forms.
	EffectiveDate string
}

// Create stores a new project and seeds its history with a creation entry
// recording every populated field from empty.
func (s *ProjectService) Create(ctx context.Context, project domain.Project, actor string) (domain.Project, error) {
	if _, err := s.projects.GetByID(ctx, project.ID); err == nil {
		return domain.Project{}, NewValidationError(fmt.Sprintf("project %q already exists", project.ID))
	} else if !errors.Is(err, ErrNotFound) {
		return domain.Project{}, err
	}

	now := s.now()
	project.CreatedAt = now
	project.UpdatedAt = now
	project.StandardsSummary = []domain.StandardSummary{}

	entry := domain.ProjectHistory{
		ID:        uuid.New(),
		ProjectID: project.ID,
		Timestamp: now,
		ChangedBy: actor,
		Changes:   domain.CreationProjectChanges(project),
	}
	if err := s.history.Append(ctx, entry); err != nil {
		return domain.Project{}, fmt.Errorf("failed to seed project history: %w", err)
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return domain.Project{}, err
	}

	s.log.Info("project created", "projectId", project.ID, "actor", actor)
	return project, nil
}

// Get returns one project by id.
func (s *ProjectService) Get(ctx context.Context, id string) (domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

// List returns every project.
func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	return s.projects.List(ctx)
}

// Update applies a full replacement payload to an existing project.
//
// The sequence matters: changes are detected against the loaded state and
// appended to the ledger first, the previous standards summary is
// re-injected so a naive PUT cannot clobber it, the display date passes
// the backdating guard, and finally the current status and commentary are
// overwritten from the newest active history entry so they always mirror
// the latest audited change even when this call was a backdated
// correction.
func (s *ProjectService) Update(ctx context.Context, id string, incoming domain.Project, opts UpdateOptions) (domain.Project, error) {
	existing, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return domain.Project{}, err
	}

	incoming.ID = id
	now := s.now()

	// Latest entry before this call, for the display date guard.
	priorLatest, err := s.history.LatestActive(ctx, id)
	hadHistory := err == nil
	if err != nil && !errors.Is(err, ErrNotFound) {
		return domain.Project{}, err
	}

	appended := false
	if !opts.SuppressHistory {
		changes := domain.DetectProjectChanges(existing, incoming)
		if !changes.Empty() {
			entry := domain.ProjectHistory{
				ID:        uuid.New(),
				ProjectID: id,
				Timestamp: ResolveEffectiveDate(opts.EffectiveDate, now),
				ChangedBy: opts.Actor,
				Changes:   changes,
			}
			if err := s.history.Append(ctx, entry); err != nil {
				return domain.Project{}, fmt.Errorf("failed to append project history: %w", err)
			}
			appended = true
		}
	}

	incoming.StandardsSummary = existing.StandardsSummary
	incoming.CreatedAt = existing.CreatedAt
	incoming.UpdatedAt = now
	incoming.UpdateDate = GuardUpdateDate(incoming.UpdateDate, existing.UpdateDate, priorLatest.Timestamp, hadHistory)

	if appended {
		latest, err := s.history.LatestActive(ctx, id)
		if err != nil {
			return domain.Project{}, err
		}
		if latest.Changes.Status != nil {
			incoming.Status = domain.Status(latest.Changes.Status.To)
		}
		if latest.Changes.Commentary != nil {
			incoming.Commentary = latest.Changes.Commentary.To
		}
	}

	if err := s.projects.Replace(ctx, incoming); err != nil {
		return domain.Project{}, err
	}

	s.log.Info("project updated",
		"projectId", id,
		"actor", opts.Actor,
		"historyAppended", appended,
		"suppressHistory", opts.SuppressHistory,
	)
	return incoming, nil
}

// Delete removes a project together with its history and assessments.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.assessments.DeleteByProject(ctx, id); err != nil {
		return err
	}
	if err := s.assessmentHistory.DeleteByProject(ctx, id); err != nil {
		return err
	}
	if err := s.history.DeleteByProject(ctx, id); err != nil {
		return err
	}

	s.log.Info("project deleted", "projectId", id)
	return nil
}

// History returns the project's active (non-archived) history, newest first.
func (s *ProjectService) History(ctx context.Context, id string) ([]domain.ProjectHistory, error) {
	if _, err := s.projects.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.history.ListActive(ctx, id)
}

// ArchiveHistory archives one history entry and restores the project's
// current fields from whichever entry is newest afterwards. When the whole
// history has been archived away the project record itself is retained
// unchanged; unlike assessments, a project is an externally addressable
// record and must stay fetchable.
func (s *ProjectService) ArchiveHistory(ctx context.Context, projectID string, entryID uuid.UUID) (domain.Project, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return domain.Project{}, err
	}

	archived, err := s.history.Archive(ctx, projectID, entryID)
	if err != nil {
		return domain.Project{}, err
	}
	if !archived {
		return domain.Project{}, fmt.Errorf("history entry %s: %w", entryID, ErrNotFound)
	}

	latest, err := s.history.LatestActive(ctx, projectID)
	switch {
	case err == nil:
		if latest.Changes.Status != nil {
			project.Status = domain.Status(latest.Changes.Status.To)
		}
		if latest.Changes.Commentary != nil {
			project.Commentary = latest.Changes.Commentary.To
		}
		project.UpdatedAt = latest.Timestamp
	case errors.Is(err, ErrNotFound):
		// History archived to empty: keep the record as it stands.
	default:
		return domain.Project{}, err
	}

	if err := s.projects.Replace(ctx, project); err != nil {
		return domain.Project{}, err
	}

	s.log.Info("project history archived", "projectId", projectID, "entryId", entryID)
	return project, nil
}
