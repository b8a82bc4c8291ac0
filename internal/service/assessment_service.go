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

// AssessmentService orchestrates profession assessments of projects
// against service standards. Every write is referentially checked, change
// detected, recorded in the assessment ledger and followed by a full
// standards summary recompute on the owning project.
type AssessmentService struct {
	projects    repository.ProjectRepository
	standards   repository.StandardRepository
	professions repository.ProfessionRepository
	assessments repository.AssessmentRepository
	history     repository.AssessmentHistoryRepository
	log         *slog.Logger
	now         func() time.Time
}

// NewAssessmentService wires an assessment service over the given repositories.
func NewAssessmentService(
	projects repository.ProjectRepository,
	standards repository.StandardRepository,
	professions repository.ProfessionRepository,
	assessments repository.AssessmentRepository,
	history repository.AssessmentHistoryRepository,
	log *slog.Logger,
) *AssessmentService {
	return &AssessmentService{
		projects:    projects,
		standards:   standards,
		professions: professions,
		assessments: assessments,
		history:     history,
		log:         log,
		now:         time.Now,
	}
}

// UpsertInput carries the caller supplied fields of an assessment write.
type UpsertInput struct {
	Status        domain.Status
	Commentary    string
	Actor         string
	EffectiveDate string
}

// Upsert writes one profession's verdict for the key, overwriting any
// existing record. Referential checks run before any write; a write that
// changes nothing appends no history and skips aggregation. The returned
// bool reports whether the record was newly created.
func (s *AssessmentService) Upsert(ctx context.Context, key domain.AssessmentKey, input UpsertInput) (domain.Assessment, bool, error) {
	if err := s.checkReferences(ctx, key); err != nil {
		return domain.Assessment{}, false, err
	}

	existing, err := s.assessments.Get(ctx, key)
	isNew := errors.Is(err, ErrNotFound)
	if err != nil && !isNew {
		return domain.Assessment{}, false, err
	}

	now := s.now()
	incoming := domain.Assessment{
		AssessmentKey: key,
		Status:        input.Status,
		Commentary:    input.Commentary,
		ChangedBy:     input.Actor,
		LastUpdated:   now,
	}

	var changes domain.AssessmentChanges
	if isNew {
		changes = domain.CreationAssessmentChanges(incoming)
	} else {
		changes = domain.DetectAssessmentChanges(existing, incoming)
	}
	if changes.Empty() {
		return existing, false, nil
	}

	entry := domain.AssessmentHistory{
		ID:            uuid.New(),
		AssessmentKey: key,
		Timestamp:     ResolveEffectiveDate(input.EffectiveDate, now),
		ChangedBy:     input.Actor,
		Changes:       changes,
	}
	if err := s.history.Append(ctx, entry); err != nil {
		return domain.Assessment{}, false, fmt.Errorf("failed to append assessment history: %w", err)
	}

	// The stored record mirrors the newest audited change, which is not
	// necessarily the entry just appended when the caller backdated it.
	latest, err := s.history.LatestActive(ctx, key)
	if err != nil {
		return domain.Assessment{}, false, err
	}
	if latest.Changes.Status != nil {
		incoming.Status = domain.Status(latest.Changes.Status.To)
	}
	if latest.Changes.Commentary != nil {
		incoming.Commentary = latest.Changes.Commentary.To
	}
	incoming.ChangedBy = latest.ChangedBy
	incoming.LastUpdated = latest.Timestamp

	if err := s.assessments.Upsert(ctx, incoming); err != nil {
		return domain.Assessment{}, false, err
	}
	if err := s.RecomputeSummary(ctx, key.ProjectID); err != nil {
		return domain.Assessment{}, false, err
	}

	s.log.Info("assessment upserted",
		"projectId", key.ProjectID,
		"standardId", key.StandardID,
		"professionId", key.ProfessionID,
		"status", incoming.Status,
		"created", isNew,
	)
	return incoming, isNew, nil
}

// Get returns the current assessment for the key.
func (s *AssessmentService) Get(ctx context.Context, key domain.AssessmentKey) (domain.Assessment, error) {
	return s.assessments.Get(ctx, key)
}

// Delete removes the current assessment record and recomputes the owning
// project's summary. The key's history is retained for audit.
func (s *AssessmentService) Delete(ctx context.Context, key domain.AssessmentKey) error {
	if err := s.assessments.Delete(ctx, key); err != nil {
		return err
	}
	if err := s.RecomputeSummary(ctx, key.ProjectID); err != nil {
		return err
	}

	s.log.Info("assessment deleted",
		"projectId", key.ProjectID,
		"standardId", key.StandardID,
		"professionId", key.ProfessionID,
	)
	return nil
}

// History returns the key's active history, newest first.
func (s *AssessmentService) History(ctx context.Context, key domain.AssessmentKey) ([]domain.AssessmentHistory, error) {
	return s.history.ListActive(ctx, key)
}

// ArchiveHistory archives one assessment history entry, restores the
// current record from whichever entry is newest afterwards, or deletes the
// record outright when no active history remains: an assessment whose
// entire history has been archived has no current state. Either way the
// owning project's summary is recomputed.
func (s *AssessmentService) ArchiveHistory(ctx context.Context, key domain.AssessmentKey, entryID uuid.UUID) error {
	archived, err := s.history.Archive(ctx, key, entryID)
	if err != nil {
		return err
	}
	if !archived {
		return fmt.Errorf("history entry %s: %w", entryID, ErrNotFound)
	}

	latest, err := s.history.LatestActive(ctx, key)
	switch {
	case err == nil:
		assessment, err := s.assessments.Get(ctx, key)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		assessment.AssessmentKey = key
		if latest.Changes.Status != nil {
			assessment.Status = domain.Status(latest.Changes.Status.To)
		}
		if latest.Changes.Commentary != nil {
			assessment.Commentary = latest.Changes.Commentary.To
		}
		assessment.ChangedBy = latest.ChangedBy
		assessment.LastUpdated = latest.Timestamp
		if err := s.assessments.Upsert(ctx, assessment); err != nil {
			return err
		}
	case errors.Is(err, ErrNotFound):
		if err := s.assessments.Delete(ctx, key); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
	default:
		return err
	}

	if err := s.RecomputeSummary(ctx, key.ProjectID); err != nil {
		return err
	}

	s.log.Info("assessment history archived",
		"projectId", key.ProjectID,
		"standardId", key.StandardID,
		"professionId", key.ProfessionID,
		"entryId", entryID,
	)
	return nil
}

// checkReferences verifies the project, standard and profession a write
// points at all exist and accept assessments. Runs before any write.
func (s *AssessmentService) checkReferences(ctx context.Context, key domain.AssessmentKey) error {
	if _, err := s.projects.GetByID(ctx, key.ProjectID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return &ReferenceError{Kind: "project", ID: key.ProjectID, Reason: "does not exist"}
		}
		return err
	}

	standard, err := s.standards.GetByID(ctx, key.StandardID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return &ReferenceError{Kind: "standard", ID: key.StandardID, Reason: "does not exist"}
		}
		return err
	}
	if !standard.Assessable() {
		return &ReferenceError{Kind: "standard", ID: key.StandardID, Reason: "is not active"}
	}

	profession, err := s.professions.GetByID(ctx, key.ProfessionID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return &ReferenceError{Kind: "profession", ID: key.ProfessionID, Reason: "does not exist"}
		}
		return err
	}
	if profession.Deleted() {
		return &ReferenceError{Kind: "profession", ID: key.ProfessionID, Reason: "is not active"}
	}

	return nil
}
