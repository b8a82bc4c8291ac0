package export

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpattn/portfolio/internal/domain"
)

type stubProjectRepo struct {
	projects []domain.Project
}

func (s *stubProjectRepo) Create(context.Context, domain.Project) error { return nil }
func (s *stubProjectRepo) GetByID(context.Context, string) (domain.Project, error) {
	return domain.Project{}, nil
}
func (s *stubProjectRepo) List(context.Context) ([]domain.Project, error) {
	return s.projects, nil
}
func (s *stubProjectRepo) Replace(context.Context, domain.Project) error { return nil }
func (s *stubProjectRepo) Delete(context.Context, string) error          { return nil }

type stubStandardRepo struct {
	standards []domain.ServiceStandard
}

func (s *stubStandardRepo) Create(context.Context, domain.ServiceStandard) error { return nil }
func (s *stubStandardRepo) GetByID(context.Context, string) (domain.ServiceStandard, error) {
	return domain.ServiceStandard{}, nil
}
func (s *stubStandardRepo) List(context.Context, bool) ([]domain.ServiceStandard, error) {
	return s.standards, nil
}
func (s *stubStandardRepo) Replace(context.Context, domain.ServiceStandard) error { return nil }
func (s *stubStandardRepo) SoftDelete(context.Context, string, string, time.Time) error {
	return nil
}
func (s *stubStandardRepo) Restore(context.Context, string) error { return nil }

func TestWorkbookSheets(t *testing.T) {
	updated := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	projects := &stubProjectRepo{projects: []domain.Project{
		{
			ID:         "p1",
			Name:       "Licensing",
			Status:     domain.StatusGreen,
			Phase:      domain.PhaseBeta,
			Commentary: "on track",
			Tags:       []string{"priority", "transformation"},
			UpdatedAt:  updated,
			StandardsSummary: []domain.StandardSummary{
				{
					StandardID: "std1",
					Status:     domain.StatusRed,
					Commentary: "engineering blocked",
					Professions: []domain.ProfessionSummary{
						{ProfessionID: "prof1", Status: domain.StatusRed, LastUpdated: updated},
					},
				},
			},
		},
	}}
	standards := &stubStandardRepo{standards: []domain.ServiceStandard{
		{ID: "std1", Number: 1, Name: "Understand users", Active: true},
	}}

	svc := NewService(projects, standards, slog.New(slog.NewTextHandler(io.Discard, nil)))
	workbook, err := svc.Workbook(context.Background())
	require.NoError(t, err)
	defer workbook.Close()

	assert.ElementsMatch(t, []string{projectsSheet, summarySheet}, workbook.GetSheetList())

	name, err := workbook.GetCellValue(projectsSheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Licensing", name)

	tags, err := workbook.GetCellValue(projectsSheet, "H2")
	require.NoError(t, err)
	assert.Equal(t, "priority, transformation", tags)

	standard, err := workbook.GetCellValue(summarySheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "1. Understand users", standard)

	status, err := workbook.GetCellValue(summarySheet, "C2")
	require.NoError(t, err)
	assert.Equal(t, "RED", status)
}

func TestWorkbookEmptyPortfolio(t *testing.T) {
	svc := NewService(&stubProjectRepo{}, &stubStandardRepo{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	workbook, err := svc.Workbook(context.Background())
	require.NoError(t, err)
	defer workbook.Close()

	header, err := workbook.GetCellValue(projectsSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "ID", header)
}
