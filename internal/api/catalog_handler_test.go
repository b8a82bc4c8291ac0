package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpattn/portfolio/internal/domain"
)

func TestStandardSoftDeleteLifecycle(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodPost, "/standards", map[string]any{
		"id":     "std2",
		"number": 2,
		"name":   "Solve a whole problem",
		"active": true,
	}, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = f.do(t, http.MethodDelete, "/standards/std2", nil, true)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// Default listing hides it; the record stays addressable.
	rec = f.do(t, http.MethodGet, "/standards", nil, false)
	listed := decodeBody[[]domain.ServiceStandard](t, rec)
	for _, standard := range listed {
		assert.NotEqual(t, "std2", standard.ID)
	}

	rec = f.do(t, http.MethodGet, "/standards/std2", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	deleted := decodeBody[domain.ServiceStandard](t, rec)
	require.NotNil(t, deleted.DeletedAt)
	assert.Equal(t, "tester", deleted.DeletedBy)

	rec = f.do(t, http.MethodGet, "/standards?includeDeleted=true", nil, false)
	listed = decodeBody[[]domain.ServiceStandard](t, rec)
	found := false
	for _, standard := range listed {
		if standard.ID == "std2" {
			found = true
		}
	}
	assert.True(t, found)

	rec = f.do(t, http.MethodPost, "/standards/std2/restore", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	restored := decodeBody[domain.ServiceStandard](t, rec)
	assert.Nil(t, restored.DeletedAt)
}

func TestStandardDeleteTwiceNotFound(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodDelete, "/standards/std1", nil, true)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodDelete, "/standards/std1", nil, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProfessionSoftDelete(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodDelete, "/professions/prof1", nil, true)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodGet, "/professions", nil, false)
	listed := decodeBody[[]domain.Profession](t, rec)
	assert.Empty(t, listed)

	rec = f.do(t, http.MethodPost, "/professions/prof1/restore", nil, true)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestThemeCRUD(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodPost, "/themes", map[string]any{
		"id":          "t1",
		"name":        "Digital identity",
		"description": "cross-government identity work",
	}, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = f.do(t, http.MethodPut, "/themes/t1", map[string]any{"name": "Identity"}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeBody[domain.PortfolioTheme](t, rec)
	assert.Equal(t, "Identity", updated.Name)

	rec = f.do(t, http.MethodDelete, "/themes/t1", nil, true)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodGet, "/themes/t1", nil, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestValidatorEnumMessages(t *testing.T) {
	v := NewValidator()

	problems := v.Check(projectPayload{Name: "x", Status: "PURPLE"})
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "status must be one of")

	problems = v.Check(assessmentPayload{Status: "GREEN_AMBER"})
	assert.Empty(t, problems)

	// GREEN_AMBER is assessment-only; project records use the collapsed scale.
	problems = v.Check(projectPayload{Name: "x", Status: "GREEN_AMBER"})
	require.Len(t, problems, 1)
}
