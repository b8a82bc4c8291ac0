package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpattn/portfolio/internal/domain"
	"github.com/rpattn/portfolio/internal/repository/memory"
)

type assessmentFixture struct {
	svc         *AssessmentService
	projects    *memory.ProjectRepo
	standards   *memory.StandardRepo
	professions *memory.ProfessionRepo
	assessments *memory.AssessmentRepo
	history     *memory.AssessmentHistoryRepo
	clock       *time.Time
}

func newAssessmentFixture(t *testing.T) *assessmentFixture {
	t.Helper()

	projects := memory.NewProjectRepo()
	standards := memory.NewStandardRepo()
	professions := memory.NewProfessionRepo()
	assessments := memory.NewAssessmentRepo()
	history := &memory.AssessmentHistoryRepo{}

	projects.Projects["p1"] = domain.Project{ID: "p1", Name: "Licensing", Status: domain.StatusGreen}
	standards.Standards["std1"] = domain.ServiceStandard{ID: "std1", Name: "Understand users", Number: 1, Active: true}
	standards.Standards["std2"] = domain.ServiceStandard{ID: "std2", Name: "Solve a whole problem", Number: 2, Active: true}
	standards.Standards["std-retired"] = domain.ServiceStandard{ID: "std-retired", Name: "Retired", Number: 3, Active: false}
	professions.Professions["prof1"] = domain.Profession{ID: "prof1", Name: "Design"}
	professions.Professions["prof2"] = domain.Profession{ID: "prof2", Name: "Engineering"}

	deletedAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	professions.Professions["prof-gone"] = domain.Profession{ID: "prof-gone", Name: "Gone", DeletedAt: &deletedAt, DeletedBy: "admin"}

	svc := NewAssessmentService(projects, standards, professions, assessments, history, discardLogger())
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	return &assessmentFixture{
		svc:         svc,
		projects:    projects,
		standards:   standards,
		professions: professions,
		assessments: assessments,
		history:     history,
		clock:       &now,
	}
}

func (f *assessmentFixture) advance(d time.Duration) {
	*f.clock = f.clock.Add(d)
}

func key(standardID, professionID string) domain.AssessmentKey {
	return domain.AssessmentKey{ProjectID: "p1", StandardID: standardID, ProfessionID: professionID}
}

func TestUpsertCreatesRecordAndHistory(t *testing.T) {
	f := newAssessmentFixture(t)

	assessment, created, err := f.svc.Upsert(context.Background(), key("std1", "prof1"), UpsertInput{
		Status:     domain.StatusGreen,
		Commentary: "on track",
		Actor:      "alice",
	})

	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, domain.StatusGreen, assessment.Status)
	require.Len(t, f.history.Entries, 1)
	require.NotNil(t, f.history.Entries[0].Changes.Status)
	assert.Equal(t, domain.FieldChange{From: "", To: "GREEN"}, *f.history.Entries[0].Changes.Status)

	// The owning project's summary now covers the standard.
	project := f.projects.Projects["p1"]
	require.Len(t, project.StandardsSummary, 1)
	assert.Equal(t, "std1", project.StandardsSummary[0].StandardID)
	assert.Equal(t, domain.StatusGreen, project.StandardsSummary[0].Status)
}

func TestUpsertIdenticalWriteIsNoOp(t *testing.T) {
	f := newAssessmentFixture(t)
	input := UpsertInput{Status: domain.StatusGreen, Commentary: "on track", Actor: "alice"}

	_, created, err := f.svc.Upsert(context.Background(), key("std1", "prof1"), input)
	require.NoError(t, err)
	require.True(t, created)

	f.advance(time.Hour)
	_, created, err = f.svc.Upsert(context.Background(), key("std1", "prof1"), input)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Len(t, f.history.Entries, 1)
}

func TestUpsertRejectsMissingStandardWithoutWriting(t *testing.T) {
	f := newAssessmentFixture(t)

	_, _, err := f.svc.Upsert(context.Background(), key("ghost", "prof1"), UpsertInput{Status: domain.StatusGreen, Actor: "alice"})

	var refErr *ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "standard", refErr.Kind)
	assert.Empty(t, f.history.Entries)
	assert.Empty(t, f.assessments.Assessments)
}

func TestUpsertRejectsInactiveStandard(t *testing.T) {
	f := newAssessmentFixture(t)

	_, _, err := f.svc.Upsert(context.Background(), key("std-retired", "prof1"), UpsertInput{Status: domain.StatusGreen, Actor: "alice"})

	var refErr *ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "standard", refErr.Kind)
	assert.Equal(t, "is not active", refErr.Reason)
}

func TestUpsertRejectsDeletedProfession(t *testing.T) {
	f := newAssessmentFixture(t)

	_, _, err := f.svc.Upsert(context.Background(), key("std1", "prof-gone"), UpsertInput{Status: domain.StatusGreen, Actor: "alice"})

	var refErr *ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "profession", refErr.Kind)
}

func TestUpsertRejectsMissingProject(t *testing.T) {
	f := newAssessmentFixture(t)
	missing := domain.AssessmentKey{ProjectID: "ghost", StandardID: "std1", ProfessionID: "prof1"}

	_, _, err := f.svc.Upsert(context.Background(), missing, UpsertInput{Status: domain.StatusGreen, Actor: "alice"})

	var refErr *ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "project", refErr.Kind)
}

func TestUpsertBackdatedDoesNotOverrideCurrent(t *testing.T) {
	f := newAssessmentFixture(t)
	k := key("std1", "prof1")

	_, _, err := f.svc.Upsert(context.Background(), k, UpsertInput{Status: domain.StatusGreen, Commentary: "now", Actor: "alice"})
	require.NoError(t, err)

	f.advance(time.Hour)
	backdated := f.clock.Add(-30 * 24 * time.Hour).Format(time.RFC3339)
	assessment, created, err := f.svc.Upsert(context.Background(), k, UpsertInput{
		Status:        domain.StatusRed,
		Commentary:    "last month it slipped",
		Actor:         "bob",
		EffectiveDate: backdated,
	})

	require.NoError(t, err)
	assert.False(t, created)
	assert.Len(t, f.history.Entries, 2)
	// The newer entry stays authoritative for current state.
	assert.Equal(t, domain.StatusGreen, assessment.Status)
	assert.Equal(t, "now", assessment.Commentary)
	assert.Equal(t, "alice", assessment.ChangedBy)
}

func TestArchiveRestoresPreviousVerdict(t *testing.T) {
	f := newAssessmentFixture(t)
	k := key("std1", "prof1")

	_, _, err := f.svc.Upsert(context.Background(), k, UpsertInput{Status: domain.StatusGreen, Commentary: "on track", Actor: "alice"})
	require.NoError(t, err)
	f.advance(time.Hour)
	_, _, err = f.svc.Upsert(context.Background(), k, UpsertInput{Status: domain.StatusRed, Commentary: "slipping", Actor: "bob"})
	require.NoError(t, err)

	entries, err := f.svc.History(context.Background(), k)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	require.NoError(t, f.svc.ArchiveHistory(context.Background(), k, entries[0].ID))

	assessment, err := f.svc.Get(context.Background(), k)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusGreen, assessment.Status)
	assert.Equal(t, "on track", assessment.Commentary)
	assert.Equal(t, "alice", assessment.ChangedBy)

	// Aggregation reflects the restored verdict.
	project := f.projects.Projects["p1"]
	require.Len(t, project.StandardsSummary, 1)
	assert.Equal(t, domain.StatusGreen, project.StandardsSummary[0].Status)
}

func TestArchiveToEmptyDeletesAssessment(t *testing.T) {
	f := newAssessmentFixture(t)
	k := key("std1", "prof1")

	_, _, err := f.svc.Upsert(context.Background(), k, UpsertInput{Status: domain.StatusGreen, Actor: "alice"})
	require.NoError(t, err)

	entries, err := f.svc.History(context.Background(), k)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	require.NoError(t, f.svc.ArchiveHistory(context.Background(), k, entries[0].ID))

	_, err = f.svc.Get(context.Background(), k)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, f.projects.Projects["p1"].StandardsSummary)
}

func TestArchiveUnknownAssessmentEntryNotFound(t *testing.T) {
	f := newAssessmentFixture(t)
	k := key("std1", "prof1")

	_, _, err := f.svc.Upsert(context.Background(), k, UpsertInput{Status: domain.StatusGreen, Actor: "alice"})
	require.NoError(t, err)

	err = f.svc.ArchiveHistory(context.Background(), k, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteRemovesRecordButKeepsHistory(t *testing.T) {
	f := newAssessmentFixture(t)
	k := key("std1", "prof1")

	_, _, err := f.svc.Upsert(context.Background(), k, UpsertInput{Status: domain.StatusGreen, Actor: "alice"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(context.Background(), k))

	_, err = f.svc.Get(context.Background(), k)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Len(t, f.history.Entries, 1)
	assert.Empty(t, f.projects.Projects["p1"].StandardsSummary)
}

func TestSummaryAggregatesAcrossProfessionsAndStandards(t *testing.T) {
	f := newAssessmentFixture(t)

	_, _, err := f.svc.Upsert(context.Background(), key("std1", "prof1"), UpsertInput{Status: domain.StatusGreen, Commentary: "design fine", Actor: "alice"})
	require.NoError(t, err)
	_, _, err = f.svc.Upsert(context.Background(), key("std1", "prof2"), UpsertInput{Status: domain.StatusRed, Commentary: "engineering blocked", Actor: "bob"})
	require.NoError(t, err)
	_, _, err = f.svc.Upsert(context.Background(), key("std2", "prof1"), UpsertInput{Status: domain.StatusAmber, Actor: "alice"})
	require.NoError(t, err)

	summary := f.projects.Projects["p1"].StandardsSummary
	require.Len(t, summary, 2)

	// Worst profession wins per standard.
	assert.Equal(t, "std1", summary[0].StandardID)
	assert.Equal(t, domain.StatusRed, summary[0].Status)
	assert.Equal(t, "design fine; engineering blocked", summary[0].Commentary)
	require.Len(t, summary[0].Professions, 2)
	assert.Equal(t, "prof1", summary[0].Professions[0].ProfessionID)
	assert.Equal(t, "prof2", summary[0].Professions[1].ProfessionID)

	assert.Equal(t, "std2", summary[1].StandardID)
	assert.Equal(t, domain.StatusAmber, summary[1].Status)
	assert.Empty(t, summary[1].Commentary)
}

func TestBuildStandardsSummaryCollapsesMixedStatuses(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	assessments := []domain.Assessment{
		{AssessmentKey: key("std1", "prof1"), Status: domain.StatusGreenAmber, LastUpdated: base},
		{AssessmentKey: key("std1", "prof2"), Status: domain.StatusGreen, LastUpdated: base.Add(time.Hour)},
	}

	summaries := BuildStandardsSummary(assessments)

	require.Len(t, summaries, 1)
	// GREEN_AMBER collapses to AMBER before the severity reduction.
	assert.Equal(t, domain.StatusAmber, summaries[0].Status)
	assert.True(t, summaries[0].LastUpdated.Equal(base.Add(time.Hour)))
}

func TestBuildStandardsSummaryEmptyInput(t *testing.T) {
	assert.Empty(t, BuildStandardsSummary(nil))
}
