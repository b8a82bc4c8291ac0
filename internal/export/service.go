package export

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/rpattn/portfolio/internal/domain"
	"github.com/rpattn/portfolio/internal/repository"
)

const (
	projectsSheet = "Projects"
	summarySheet  = "Standards Summary"
)

// Service builds portfolio export workbooks: one sheet listing every
// project, one flattening each project's standards summary for analysis.
type Service struct {
	projects  repository.ProjectRepository
	standards repository.StandardRepository
	log       *slog.Logger
}

// NewService wires an export service over the given repositories.
func NewService(projects repository.ProjectRepository, standards repository.StandardRepository, log *slog.Logger) *Service {
	return &Service{projects: projects, standards: standards, log: log}
}

// Workbook assembles the full portfolio workbook. The caller owns closing
// the returned file.
func (s *Service) Workbook(ctx context.Context) (*excelize.File, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects for export: %w", err)
	}
	standards, err := s.standards.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list standards for export: %w", err)
	}

	standardNames := make(map[string]string, len(standards))
	for _, standard := range standards {
		standardNames[standard.ID] = fmt.Sprintf("%d. %s", standard.Number, standard.Name)
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", projectsSheet); err != nil {
		return nil, fmt.Errorf("failed to name projects sheet: %w", err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}

	if err := writeProjectsSheet(f, projects); err != nil {
		return nil, err
	}
	if err := writeSummarySheet(f, projects, standardNames); err != nil {
		return nil, err
	}

	s.log.Info("portfolio workbook built", "projects", len(projects))
	return f, nil
}

func writeProjectsSheet(f *excelize.File, projects []domain.Project) error {
	headers := []string{
		"ID", "Name", "Status", "Phase", "Commentary",
		"Delivery Group", "Delivery Partner", "Tags", "Update Date", "Last Modified",
	}
	if err := writeRow(f, projectsSheet, 1, headers); err != nil {
		return err
	}

	for i, project := range projects {
		row := []any{
			project.ID,
			project.Name,
			string(project.Status),
			string(project.Phase),
			project.Commentary,
			project.DeliveryGroupID,
			project.DeliveryPartnerID,
			strings.Join(project.Tags, ", "),
			formatDate(project.UpdateDate),
			project.UpdatedAt.Format(time.RFC3339),
		}
		if err := writeRowValues(f, projectsSheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, projects []domain.Project, standardNames map[string]string) error {
	headers := []string{
		"Project", "Standard", "Status", "Commentary", "Profession", "Profession Status", "Last Updated",
	}
	if err := writeRow(f, summarySheet, 1, headers); err != nil {
		return err
	}

	rowIndex := 2
	for _, project := range projects {
		for _, summary := range project.StandardsSummary {
			standardName := standardNames[summary.StandardID]
			if standardName == "" {
				standardName = summary.StandardID
			}
			for _, profession := range summary.Professions {
				row := []any{
					project.Name,
					standardName,
					string(summary.Status),
					summary.Commentary,
					profession.ProfessionID,
					string(profession.Status),
					profession.LastUpdated.Format(time.RFC3339),
				}
				if err := writeRowValues(f, summarySheet, rowIndex, row); err != nil {
					return err
				}
				rowIndex++
			}
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []string) error {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return writeRowValues(f, sheet, row, cells)
}

func writeRowValues(f *excelize.File, sheet string, row int, values []any) error {
	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("failed to address cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("failed to write cell %s: %w", cell, err)
		}
	}
	return nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
