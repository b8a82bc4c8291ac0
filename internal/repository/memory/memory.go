// Package memory provides in-memory repository implementations used by the
// service and handler tests. State is exported so tests can seed and inspect
// it directly; error fields inject storage failures. Not safe for concurrent
// use.
package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/rpattn/portfolio/internal/domain"
	"github.com/rpattn/portfolio/internal/repository"
)

// ProjectRepo is an in-memory repository.ProjectRepository.
type ProjectRepo struct {
	Projects map[string]domain.Project
	// ReplaceErr, when set, is returned by Replace to simulate storage failure.
	ReplaceErr error
}

// NewProjectRepo returns an empty project repo.
func NewProjectRepo() *ProjectRepo {
	return &ProjectRepo{Projects: map[string]domain.Project{}}
}

func (f *ProjectRepo) Create(_ context.Context, project domain.Project) error {
	f.Projects[project.ID] = project
	return nil
}

func (f *ProjectRepo) GetByID(_ context.Context, id string) (domain.Project, error) {
	project, ok := f.Projects[id]
	if !ok {
		return domain.Project{}, fmt.Errorf("project %s: %w", id, repository.ErrNotFound)
	}
	return project, nil
}

func (f *ProjectRepo) List(_ context.Context) ([]domain.Project, error) {
	ids := make([]string, 0, len(f.Projects))
	for id := range f.Projects {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	projects := make([]domain.Project, 0, len(ids))
	for _, id := range ids {
		projects = append(projects, f.Projects[id])
	}
	return projects, nil
}

func (f *ProjectRepo) Replace(_ context.Context, project domain.Project) error {
	if f.ReplaceErr != nil {
		return f.ReplaceErr
	}
	if _, ok := f.Projects[project.ID]; !ok {
		return fmt.Errorf("project %s: %w", project.ID, repository.ErrNotFound)
	}
	f.Projects[project.ID] = project
	return nil
}

func (f *ProjectRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.Projects[id]; !ok {
		return fmt.Errorf("project %s: %w", id, repository.ErrNotFound)
	}
	delete(f.Projects, id)
	return nil
}

// ProjectHistoryRepo is an in-memory repository.ProjectHistoryRepository.
type ProjectHistoryRepo struct {
	Entries []domain.ProjectHistory
	// AppendErr, when set, is returned by Append to simulate a ledger
	// write failure.
	AppendErr error
}

func (f *ProjectHistoryRepo) Append(_ context.Context, entry domain.ProjectHistory) error {
	if f.AppendErr != nil {
		return f.AppendErr
	}
	f.Entries = append(f.Entries, entry)
	return nil
}

func (f *ProjectHistoryRepo) active(projectID string) []domain.ProjectHistory {
	active := []domain.ProjectHistory{}
	for _, entry := range f.Entries {
		if entry.ProjectID == projectID && !entry.Archived {
			active = append(active, entry)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].Timestamp.After(active[j].Timestamp)
	})
	return active
}

func (f *ProjectHistoryRepo) ListActive(_ context.Context, projectID string) ([]domain.ProjectHistory, error) {
	return f.active(projectID), nil
}

func (f *ProjectHistoryRepo) LatestActive(_ context.Context, projectID string) (domain.ProjectHistory, error) {
	active := f.active(projectID)
	if len(active) == 0 {
		return domain.ProjectHistory{}, fmt.Errorf("project %s history: %w", projectID, repository.ErrNotFound)
	}
	return active[0], nil
}

func (f *ProjectHistoryRepo) Archive(_ context.Context, projectID string, entryID uuid.UUID) (bool, error) {
	for i, entry := range f.Entries {
		if entry.ProjectID == projectID && entry.ID == entryID && !entry.Archived {
			f.Entries[i].Archived = true
			return true, nil
		}
	}
	return false, nil
}

func (f *ProjectHistoryRepo) DeleteByProject(_ context.Context, projectID string) error {
	kept := f.Entries[:0]
	for _, entry := range f.Entries {
		if entry.ProjectID != projectID {
			kept = append(kept, entry)
		}
	}
	f.Entries = kept
	return nil
}

// AssessmentRepo is an in-memory repository.AssessmentRepository.
type AssessmentRepo struct {
	Assessments map[domain.AssessmentKey]domain.Assessment
}

// NewAssessmentRepo returns an empty assessment repo.
func NewAssessmentRepo() *AssessmentRepo {
	return &AssessmentRepo{Assessments: map[domain.AssessmentKey]domain.Assessment{}}
}

func (f *AssessmentRepo) Upsert(_ context.Context, assessment domain.Assessment) error {
	f.Assessments[assessment.AssessmentKey] = assessment
	return nil
}

func (f *AssessmentRepo) Get(_ context.Context, key domain.AssessmentKey) (domain.Assessment, error) {
	assessment, ok := f.Assessments[key]
	if !ok {
		return domain.Assessment{}, fmt.Errorf("assessment: %w", repository.ErrNotFound)
	}
	return assessment, nil
}

func (f *AssessmentRepo) ListByProject(_ context.Context, projectID string) ([]domain.Assessment, error) {
	list := []domain.Assessment{}
	for _, assessment := range f.Assessments {
		if assessment.ProjectID == projectID {
			list = append(list, assessment)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].StandardID != list[j].StandardID {
			return list[i].StandardID < list[j].StandardID
		}
		return list[i].ProfessionID < list[j].ProfessionID
	})
	return list, nil
}

func (f *AssessmentRepo) Delete(_ context.Context, key domain.AssessmentKey) error {
	if _, ok := f.Assessments[key]; !ok {
		return fmt.Errorf("assessment: %w", repository.ErrNotFound)
	}
	delete(f.Assessments, key)
	return nil
}

func (f *AssessmentRepo) DeleteByProject(_ context.Context, projectID string) error {
	for key := range f.Assessments {
		if key.ProjectID == projectID {
			delete(f.Assessments, key)
		}
	}
	return nil
}

// AssessmentHistoryRepo is an in-memory repository.AssessmentHistoryRepository.
type AssessmentHistoryRepo struct {
	Entries   []domain.AssessmentHistory
	AppendErr error
}

func (f *AssessmentHistoryRepo) Append(_ context.Context, entry domain.AssessmentHistory) error {
	if f.AppendErr != nil {
		return f.AppendErr
	}
	f.Entries = append(f.Entries, entry)
	return nil
}

func (f *AssessmentHistoryRepo) active(key domain.AssessmentKey) []domain.AssessmentHistory {
	active := []domain.AssessmentHistory{}
	for _, entry := range f.Entries {
		if entry.AssessmentKey == key && !entry.Archived {
			active = append(active, entry)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].Timestamp.After(active[j].Timestamp)
	})
	return active
}

func (f *AssessmentHistoryRepo) ListActive(_ context.Context, key domain.AssessmentKey) ([]domain.AssessmentHistory, error) {
	return f.active(key), nil
}

func (f *AssessmentHistoryRepo) LatestActive(_ context.Context, key domain.AssessmentKey) (domain.AssessmentHistory, error) {
	active := f.active(key)
	if len(active) == 0 {
		return domain.AssessmentHistory{}, fmt.Errorf("assessment history: %w", repository.ErrNotFound)
	}
	return active[0], nil
}

func (f *AssessmentHistoryRepo) Archive(_ context.Context, key domain.AssessmentKey, entryID uuid.UUID) (bool, error) {
	for i, entry := range f.Entries {
		if entry.AssessmentKey == key && entry.ID == entryID && !entry.Archived {
			f.Entries[i].Archived = true
			return true, nil
		}
	}
	return false, nil
}

func (f *AssessmentHistoryRepo) DeleteByProject(_ context.Context, projectID string) error {
	kept := f.Entries[:0]
	for _, entry := range f.Entries {
		if entry.ProjectID != projectID {
			kept = append(kept, entry)
		}
	}
	f.Entries = kept
	return nil
}

// StandardRepo is an in-memory repository.StandardRepository.
type StandardRepo struct {
	Standards map[string]domain.ServiceStandard
}

// NewStandardRepo returns an empty standard repo.
func NewStandardRepo() *StandardRepo {
	return &StandardRepo{Standards: map[string]domain.ServiceStandard{}}
}

func (f *StandardRepo) Create(_ context.Context, standard domain.ServiceStandard) error {
	f.Standards[standard.ID] = standard
	return nil
}

func (f *StandardRepo) GetByID(_ context.Context, id string) (domain.ServiceStandard, error) {
	standard, ok := f.Standards[id]
	if !ok {
		return domain.ServiceStandard{}, fmt.Errorf("standard %s: %w", id, repository.ErrNotFound)
	}
	return standard, nil
}

func (f *StandardRepo) List(_ context.Context, includeDeleted bool) ([]domain.ServiceStandard, error) {
	list := []domain.ServiceStandard{}
	for _, standard := range f.Standards {
		if standard.Deleted() && !includeDeleted {
			continue
		}
		list = append(list, standard)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Number < list[j].Number })
	return list, nil
}

func (f *StandardRepo) Replace(_ context.Context, standard domain.ServiceStandard) error {
	if _, ok := f.Standards[standard.ID]; !ok {
		return fmt.Errorf("standard %s: %w", standard.ID, repository.ErrNotFound)
	}
	f.Standards[standard.ID] = standard
	return nil
}

func (f *StandardRepo) SoftDelete(_ context.Context, id, deletedBy string, deletedAt time.Time) error {
	standard, ok := f.Standards[id]
	if !ok || standard.Deleted() {
		return fmt.Errorf("standard %s: %w", id, repository.ErrNotFound)
	}
	standard.DeletedAt = &deletedAt
	standard.DeletedBy = deletedBy
	f.Standards[id] = standard
	return nil
}

func (f *StandardRepo) Restore(_ context.Context, id string) error {
	standard, ok := f.Standards[id]
	if !ok || !standard.Deleted() {
		return fmt.Errorf("standard %s: %w", id, repository.ErrNotFound)
	}
	standard.DeletedAt = nil
	standard.DeletedBy = ""
	f.Standards[id] = standard
	return nil
}

// ProfessionRepo is an in-memory repository.ProfessionRepository.
type ProfessionRepo struct {
	Professions map[string]domain.Profession
}

// NewProfessionRepo returns an empty profession repo.
func NewProfessionRepo() *ProfessionRepo {
	return &ProfessionRepo{Professions: map[string]domain.Profession{}}
}

func (f *ProfessionRepo) Create(_ context.Context, profession domain.Profession) error {
	f.Professions[profession.ID] = profession
	return nil
}

func (f *ProfessionRepo) GetByID(_ context.Context, id string) (domain.Profession, error) {
	profession, ok := f.Professions[id]
	if !ok {
		return domain.Profession{}, fmt.Errorf("profession %s: %w", id, repository.ErrNotFound)
	}
	return profession, nil
}

func (f *ProfessionRepo) List(_ context.Context, includeDeleted bool) ([]domain.Profession, error) {
	list := []domain.Profession{}
	for _, profession := range f.Professions {
		if profession.Deleted() && !includeDeleted {
			continue
		}
		list = append(list, profession)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (f *ProfessionRepo) Replace(_ context.Context, profession domain.Profession) error {
	if _, ok := f.Professions[profession.ID]; !ok {
		return fmt.Errorf("profession %s: %w", profession.ID, repository.ErrNotFound)
	}
	f.Professions[profession.ID] = profession
	return nil
}

func (f *ProfessionRepo) SoftDelete(_ context.Context, id, deletedBy string, deletedAt time.Time) error {
	profession, ok := f.Professions[id]
	if !ok || profession.Deleted() {
		return fmt.Errorf("profession %s: %w", id, repository.ErrNotFound)
	}
	profession.DeletedAt = &deletedAt
	profession.DeletedBy = deletedBy
	f.Professions[id] = profession
	return nil
}

func (f *ProfessionRepo) Restore(_ context.Context, id string) error {
	profession, ok := f.Professions[id]
	if !ok || !profession.Deleted() {
		return fmt.Errorf("profession %s: %w", id, repository.ErrNotFound)
	}
	profession.DeletedAt = nil
	profession.DeletedBy = ""
	f.Professions[id] = profession
	return nil
}

// DeliveryGroupRepo is an in-memory repository.DeliveryGroupRepository.
type DeliveryGroupRepo struct {
	Groups map[string]domain.DeliveryGroup
}

// NewDeliveryGroupRepo returns an empty delivery group repo.
func NewDeliveryGroupRepo() *DeliveryGroupRepo {
	return &DeliveryGroupRepo{Groups: map[string]domain.DeliveryGroup{}}
}

func (f *DeliveryGroupRepo) Create(_ context.Context, group domain.DeliveryGroup) error {
	f.Groups[group.ID] = group
	return nil
}

func (f *DeliveryGroupRepo) GetByID(_ context.Context, id string) (domain.DeliveryGroup, error) {
	group, ok := f.Groups[id]
	if !ok {
		return domain.DeliveryGroup{}, fmt.Errorf("delivery group %s: %w", id, repository.ErrNotFound)
	}
	return group, nil
}

func (f *DeliveryGroupRepo) List(_ context.Context) ([]domain.DeliveryGroup, error) {
	list := []domain.DeliveryGroup{}
	for _, group := range f.Groups {
		list = append(list, group)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (f *DeliveryGroupRepo) Replace(_ context.Context, group domain.DeliveryGroup) error {
	if _, ok := f.Groups[group.ID]; !ok {
		return fmt.Errorf("delivery group %s: %w", group.ID, repository.ErrNotFound)
	}
	f.Groups[group.ID] = group
	return nil
}

func (f *DeliveryGroupRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.Groups[id]; !ok {
		return fmt.Errorf("delivery group %s: %w", id, repository.ErrNotFound)
	}
	delete(f.Groups, id)
	return nil
}

// DeliveryPartnerRepo is an in-memory repository.DeliveryPartnerRepository.
type DeliveryPartnerRepo struct {
	Partners map[string]domain.DeliveryPartner
}

// NewDeliveryPartnerRepo returns an empty delivery partner repo.
func NewDeliveryPartnerRepo() *DeliveryPartnerRepo {
	return &DeliveryPartnerRepo{Partners: map[string]domain.DeliveryPartner{}}
}

func (f *DeliveryPartnerRepo) Create(_ context.Context, partner domain.DeliveryPartner) error {
	f.Partners[partner.ID] = partner
	return nil
}

func (f *DeliveryPartnerRepo) GetByID(_ context.Context, id string) (domain.DeliveryPartner, error) {
	partner, ok := f.Partners[id]
	if !ok {
		return domain.DeliveryPartner{}, fmt.Errorf("delivery partner %s: %w", id, repository.ErrNotFound)
	}
	return partner, nil
}

func (f *DeliveryPartnerRepo) List(_ context.Context) ([]domain.DeliveryPartner, error) {
	list := []domain.DeliveryPartner{}
	for _, partner := range f.Partners {
		list = append(list, partner)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (f *DeliveryPartnerRepo) Replace(_ context.Context, partner domain.DeliveryPartner) error {
	if _, ok := f.Partners[partner.ID]; !ok {
		return fmt.Errorf("delivery partner %s: %w", partner.ID, repository.ErrNotFound)
	}
	f.Partners[partner.ID] = partner
	return nil
}

func (f *DeliveryPartnerRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.Partners[id]; !ok {
		return fmt.Errorf("delivery partner %s: %w", id, repository.ErrNotFound)
	}
	delete(f.Partners, id)
	return nil
}

// ThemeRepo is an in-memory repository.ThemeRepository.
type ThemeRepo struct {
	Themes map[string]domain.PortfolioTheme
}

// NewThemeRepo returns an empty theme repo.
func NewThemeRepo() *ThemeRepo {
	return &ThemeRepo{Themes: map[string]domain.PortfolioTheme{}}
}

func (f *ThemeRepo) Create(_ context.Context, theme domain.PortfolioTheme) error {
	f.Themes[theme.ID] = theme
	return nil
}

func (f *ThemeRepo) GetByID(_ context.Context, id string) (domain.PortfolioTheme, error) {
	theme, ok := f.Themes[id]
	if !ok {
		return domain.PortfolioTheme{}, fmt.Errorf("theme %s: %w", id, repository.ErrNotFound)
	}
	return theme, nil
}

func (f *ThemeRepo) List(_ context.Context) ([]domain.PortfolioTheme, error) {
	list := []domain.PortfolioTheme{}
	for _, theme := range f.Themes {
		list = append(list, theme)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (f *ThemeRepo) Replace(_ context.Context, theme domain.PortfolioTheme) error {
	if _, ok := f.Themes[theme.ID]; !ok {
		return fmt.Errorf("theme %s: %w", theme.ID, repository.ErrNotFound)
	}
	f.Themes[theme.ID] = theme
	return nil
}

func (f *ThemeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.Themes[id]; !ok {
		return fmt.Errorf("theme %s: %w", id, repository.ErrNotFound)
	}
	delete(f.Themes, id)
	return nil
}
