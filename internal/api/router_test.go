package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpattn/portfolio/internal/auth"
	"github.com/rpattn/portfolio/internal/domain"
	"github.com/rpattn/portfolio/internal/export"
	"github.com/rpattn/portfolio/internal/repository/memory"
	"github.com/rpattn/portfolio/internal/service"
)

const testSecret = "test-secret"

type apiFixture struct {
	handler     http.Handler
	projects    *memory.ProjectRepo
	standards   *memory.StandardRepo
	professions *memory.ProfessionRepo
	assessments *memory.AssessmentRepo
	token       string
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	projects := memory.NewProjectRepo()
	projectHistory := &memory.ProjectHistoryRepo{}
	standards := memory.NewStandardRepo()
	professions := memory.NewProfessionRepo()
	assessments := memory.NewAssessmentRepo()
	assessmentHistory := &memory.AssessmentHistoryRepo{}

	now := time.Now().UTC()
	standards.Standards["std1"] = domain.ServiceStandard{ID: "std1", Number: 1, Name: "Understand users", Active: true, CreatedAt: now, UpdatedAt: now}
	professions.Professions["prof1"] = domain.Profession{ID: "prof1", Name: "Design", CreatedAt: now, UpdatedAt: now}

	projectService := service.NewProjectService(projects, projectHistory, assessments, assessmentHistory, log)
	assessmentService := service.NewAssessmentService(projects, standards, professions, assessments, assessmentHistory, log)
	exportService := export.NewService(projects, standards, log)

	validate := NewValidator()
	handler := NewRouter(RouterConfig{
		Projects:       NewProjectHandler(projectService, validate, log),
		Assessments:    NewAssessmentHandler(assessmentService, validate, log),
		Standards:      NewStandardHandler(standards, validate, log),
		Professions:    NewProfessionHandler(professions, validate, log),
		Metadata:       NewMetadataHandler(memory.NewDeliveryGroupRepo(), memory.NewDeliveryPartnerRepo(), memory.NewThemeRepo(), validate, log),
		Export:         export.NewHTTPHandler(exportService, log),
		Verifier:       auth.NewVerifier(testSecret),
		Log:            log,
		AllowedOrigins: []string{"*"},
	})

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"name": "tester",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	return &apiFixture{
		handler:     handler,
		projects:    projects,
		standards:   standards,
		professions: professions,
		assessments: assessments,
		token:       signed,
	}
}

func (f *apiFixture) do(t *testing.T, method, path string, body any, authed bool) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if authed {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/health", nil, false)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestMutationsRequireBearerToken(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodPost, "/projects", map[string]string{"id": "p1"}, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/projects", bytes.NewReader([]byte("{}")))
	req.Header.Set("Authorization", "Bearer not-a-token")
	res := httptest.NewRecorder()
	f.handler.ServeHTTP(res, req)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestReadsArePublic(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/projects", nil, false)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/standards", nil, false)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestExportEndpoint(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/projects/export", nil, false)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
}
