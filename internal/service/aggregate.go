package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rpattn/portfolio/internal/domain"
)

// RecomputeSummary rebuilds a project's standards summary from its live
// assessments and persists the result. This is a full recompute rather
// than an incremental patch; at tens of standards by tens of professions
// per project, correctness wins over incrementality.
func (s *AssessmentService) RecomputeSummary(ctx context.Context, projectID string) error {
	assessments, err := s.assessments.ListByProject(ctx, projectID)
	if err != nil {
		return err
	}

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}

	project.StandardsSummary = BuildStandardsSummary(assessments)

	if err := s.projects.Replace(ctx, project); err != nil {
		return fmt.Errorf("failed to persist standards summary: %w", err)
	}

	s.log.Debug("standards summary recomputed",
		"projectId", projectID,
		"standards", len(project.StandardsSummary),
		"assessments", len(assessments),
	)
	return nil
}

// BuildStandardsSummary groups live assessments by standard and rolls each
// group up: status by severity reduction, commentary by joining the
// non-empty pieces, lastUpdated by the group maximum. The full
// per-profession list is retained for drill-down. Output ordering is
// deterministic: standards and professions both sort by id.
func BuildStandardsSummary(assessments []domain.Assessment) []domain.StandardSummary {
	grouped := map[string][]domain.Assessment{}
	for _, assessment := range assessments {
		grouped[assessment.StandardID] = append(grouped[assessment.StandardID], assessment)
	}

	standardIDs := make([]string, 0, len(grouped))
	for standardID := range grouped {
		standardIDs = append(standardIDs, standardID)
	}
	sort.Strings(standardIDs)

	summaries := make([]domain.StandardSummary, 0, len(standardIDs))
	for _, standardID := range standardIDs {
		group := grouped[standardID]
		sort.Slice(group, func(i, j int) bool {
			return group[i].ProfessionID < group[j].ProfessionID
		})

		var (
			statuses     = make([]domain.Status, 0, len(group))
			commentaries []string
			lastUpdated  time.Time
			professions  = make([]domain.ProfessionSummary, 0, len(group))
		)
		for _, assessment := range group {
			statuses = append(statuses, assessment.Status)
			if assessment.Commentary != "" {
				commentaries = append(commentaries, assessment.Commentary)
			}
			if assessment.LastUpdated.After(lastUpdated) {
				lastUpdated = assessment.LastUpdated
			}
			professions = append(professions, domain.ProfessionSummary{
				ProfessionID: assessment.ProfessionID,
				Status:       assessment.Status,
				Commentary:   assessment.Commentary,
				LastUpdated:  assessment.LastUpdated,
			})
		}

		summaries = append(summaries, domain.StandardSummary{
			StandardID:  standardID,
			Status:      domain.ReduceStatuses(statuses),
			Commentary:  strings.Join(commentaries, "; "),
			LastUpdated: lastUpdated,
			Professions: professions,
		})
	}

	return summaries
}
