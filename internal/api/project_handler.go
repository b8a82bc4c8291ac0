package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/rpattn/portfolio/internal/auth"
	"github.com/rpattn/portfolio/internal/domain"
	"github.com/rpattn/portfolio/internal/service"
)

// ProjectHandler serves the /projects surface.
type ProjectHandler struct {
	projects *service.ProjectService
	validate *Validator
	log      *slog.Logger
}

// NewProjectHandler wires a project handler.
func NewProjectHandler(projects *service.ProjectService, validate *Validator, log *slog.Logger) *ProjectHandler {
	return &ProjectHandler{projects: projects, validate: validate, log: log}
}

type projectPayload struct {
	ID                string        `json:"id"`
	Name              string        `json:"name" validate:"required"`
	Status            domain.Status `json:"status" validate:"required,projectstatus"`
	Commentary        string        `json:"commentary"`
	Phase             domain.Phase  `json:"phase" validate:"omitempty,phase"`
	DeliveryGroupID   string        `json:"deliveryGroupId"`
	DeliveryPartnerID string        `json:"deliveryPartnerId"`
	Tags              []string      `json:"tags"`
	UpdateDate        *time.Time    `json:"updateDate"`
	// Timestamp is the effective date recorded on the history entry this
	// write produces. Empty means now; backdated values are accepted.
	Timestamp string `json:"timestamp"`
}

func (p projectPayload) toDomain() domain.Project {
	return domain.Project{
		ID:                p.ID,
		Name:              p.Name,
		Status:            p.Status,
		Commentary:        p.Commentary,
		Phase:             p.Phase,
		DeliveryGroupID:   p.DeliveryGroupID,
		DeliveryPartnerID: p.DeliveryPartnerID,
		Tags:              p.Tags,
		UpdateDate:        p.UpdateDate,
	}
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload projectPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, h.log, r, err)
		return
	}

	problems := h.validate.Check(payload)
	if payload.ID == "" {
		problems = append(problems, "id is required")
	}
	if len(problems) > 0 {
		writeError(w, h.log, r, service.NewValidationError(problems...))
		return
	}

	project, err := h.projects.Create(r.Context(), payload.toDomain(), actorFrom(r))
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(r.Context())
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	project, err := h.projects.Get(r.Context(), r.PathValue("projectID"))
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload projectPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, h.log, r, err)
		return
	}
	if err := h.validate.CheckError(payload); err != nil {
		writeError(w, h.log, r, err)
		return
	}

	opts := service.UpdateOptions{
		Actor:           actorFrom(r),
		SuppressHistory: r.URL.Query().Get("suppressHistory") == "true",
		EffectiveDate:   payload.Timestamp,
	}
	project, err := h.projects.Update(r.Context(), r.PathValue("projectID"), payload.toDomain(), opts)
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.projects.Delete(r.Context(), r.PathValue("projectID")); err != nil {
		writeError(w, h.log, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProjectHandler) History(w http.ResponseWriter, r *http.Request) {
	entries, err := h.projects.History(r.Context(), r.PathValue("projectID"))
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *ProjectHandler) ArchiveHistory(w http.ResponseWriter, r *http.Request) {
	entryID, err := uuid.Parse(r.PathValue("historyID"))
	if err != nil {
		writeError(w, h.log, r, service.NewValidationError("historyID must be a valid uuid"))
		return
	}

	project, err := h.projects.ArchiveHistory(r.Context(), r.PathValue("projectID"), entryID)
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// actorFrom names the authenticated caller for history attribution. Routes
// that reach a mutation are always behind RequireAuth; the fallback only
// exists for handlers exercised directly in tests.
func actorFrom(r *http.Request) string {
	if actor, ok := auth.ActorFromContext(r.Context()); ok {
		return actor
	}
	return "unknown"
}
