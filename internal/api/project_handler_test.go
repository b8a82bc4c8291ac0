package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpattn/portfolio/internal/domain"
)

func createProject(t *testing.T, f *apiFixture, id string) domain.Project {
	t.Helper()
	rec := f.do(t, http.MethodPost, "/projects", map[string]any{
		"id":         id,
		"name":       "Licensing",
		"status":     "GREEN",
		"commentary": "on track",
		"phase":      "BETA",
	}, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[domain.Project](t, rec)
}

func TestCreateAndGetProject(t *testing.T) {
	f := newAPIFixture(t)

	created := createProject(t, f, "p1")
	assert.Equal(t, "p1", created.ID)
	assert.Equal(t, domain.StatusGreen, created.Status)

	rec := f.do(t, http.MethodGet, "/projects/p1", nil, false)
	assert.Equal(t, http.StatusOK, rec.Code)
	fetched := decodeBody[domain.Project](t, rec)
	assert.Equal(t, "Licensing", fetched.Name)
}

func TestCreateProjectValidation(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodPost, "/projects", map[string]any{
		"status": "PURPLE",
	}, true)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody[map[string]any](t, rec)
	details, _ := body["details"].([]any)
	// name missing, status unknown and id missing are all reported at once.
	assert.Len(t, details, 3)
}

func TestGetProjectNotFound(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/projects/ghost", nil, false)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateProjectRecordsHistory(t *testing.T) {
	f := newAPIFixture(t)
	createProject(t, f, "p1")

	rec := f.do(t, http.MethodPut, "/projects/p1", map[string]any{
		"name":       "Licensing",
		"status":     "RED",
		"commentary": "slipping",
		"phase":      "BETA",
	}, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeBody[domain.Project](t, rec)
	assert.Equal(t, domain.StatusRed, updated.Status)

	histRec := f.do(t, http.MethodGet, "/projects/p1/history", nil, false)
	require.Equal(t, http.StatusOK, histRec.Code)
	entries := decodeBody[[]domain.ProjectHistory](t, histRec)
	require.Len(t, entries, 2)
	require.NotNil(t, entries[0].Changes.Status)
	assert.Equal(t, "RED", entries[0].Changes.Status.To)
	assert.Equal(t, "tester", entries[0].ChangedBy)
}

func TestUpdateProjectSuppressHistory(t *testing.T) {
	f := newAPIFixture(t)
	createProject(t, f, "p1")

	rec := f.do(t, http.MethodPut, "/projects/p1?suppressHistory=true", map[string]any{
		"name":   "Licensing",
		"status": "RED",
		"phase":  "BETA",
	}, true)
	require.Equal(t, http.StatusOK, rec.Code)

	histRec := f.do(t, http.MethodGet, "/projects/p1/history", nil, false)
	entries := decodeBody[[]domain.ProjectHistory](t, histRec)
	assert.Len(t, entries, 1)
}

func TestArchiveProjectHistoryRestoresState(t *testing.T) {
	f := newAPIFixture(t)
	createProject(t, f, "p1")

	rec := f.do(t, http.MethodPut, "/projects/p1", map[string]any{
		"name":   "Licensing",
		"status": "RED",
		"phase":  "BETA",
	}, true)
	require.Equal(t, http.StatusOK, rec.Code)

	histRec := f.do(t, http.MethodGet, "/projects/p1/history", nil, false)
	entries := decodeBody[[]domain.ProjectHistory](t, histRec)
	require.Len(t, entries, 2)

	archiveRec := f.do(t, http.MethodPut,
		fmt.Sprintf("/projects/p1/history/%s/archive", entries[0].ID), nil, true)
	require.Equal(t, http.StatusOK, archiveRec.Code, archiveRec.Body.String())
	restored := decodeBody[domain.Project](t, archiveRec)
	assert.Equal(t, domain.StatusGreen, restored.Status)
}

func TestArchiveProjectHistoryBadID(t *testing.T) {
	f := newAPIFixture(t)
	createProject(t, f, "p1")

	rec := f.do(t, http.MethodPut, "/projects/p1/history/not-a-uuid/archive", nil, true)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteProject(t *testing.T) {
	f := newAPIFixture(t)
	createProject(t, f, "p1")

	rec := f.do(t, http.MethodDelete, "/projects/p1", nil, true)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodGet, "/projects/p1", nil, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
