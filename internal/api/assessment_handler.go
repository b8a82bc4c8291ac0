package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/rpattn/portfolio/internal/domain"
	"github.com/rpattn/portfolio/internal/service"
)

// AssessmentHandler serves the per-profession assessment surface nested
// under /projects/{projectID}/standards/{standardID}/professions/{professionID}.
type AssessmentHandler struct {
	assessments *service.AssessmentService
	validate    *Validator
	log         *slog.Logger
}

// NewAssessmentHandler wires an assessment handler.
func NewAssessmentHandler(assessments *service.AssessmentService, validate *Validator, log *slog.Logger) *AssessmentHandler {
	return &AssessmentHandler{assessments: assessments, validate: validate, log: log}
}

type assessmentPayload struct {
	Status     domain.Status `json:"status" validate:"required,assessmentstatus"`
	Commentary string        `json:"commentary"`
	// Timestamp is the effective date for the history entry; empty means now.
	Timestamp string `json:"timestamp"`
}

func assessmentKey(r *http.Request) domain.AssessmentKey {
	return domain.AssessmentKey{
		ProjectID:    r.PathValue("projectID"),
		StandardID:   r.PathValue("standardID"),
		ProfessionID: r.PathValue("professionID"),
	}
}

func (h *AssessmentHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var payload assessmentPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, h.log, r, err)
		return
	}
	if err := h.validate.CheckError(payload); err != nil {
		writeError(w, h.log, r, err)
		return
	}

	assessment, created, err := h.assessments.Upsert(r.Context(), assessmentKey(r), service.UpsertInput{
		Status:        payload.Status,
		Commentary:    payload.Commentary,
		Actor:         actorFrom(r),
		EffectiveDate: payload.Timestamp,
	})
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, assessment)
}

func (h *AssessmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	assessment, err := h.assessments.Get(r.Context(), assessmentKey(r))
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusOK, assessment)
}

func (h *AssessmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.assessments.Delete(r.Context(), assessmentKey(r)); err != nil {
		writeError(w, h.log, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AssessmentHandler) History(w http.ResponseWriter, r *http.Request) {
	entries, err := h.assessments.History(r.Context(), assessmentKey(r))
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// ArchiveHistory archives one ledger entry and responds with the assessment
// as it stands afterwards, or null when archiving emptied the history and
// the record was removed.
func (h *AssessmentHandler) ArchiveHistory(w http.ResponseWriter, r *http.Request) {
	entryID, err := uuid.Parse(r.PathValue("historyID"))
	if err != nil {
		writeError(w, h.log, r, service.NewValidationError("historyID must be a valid uuid"))
		return
	}

	key := assessmentKey(r)
	if err := h.assessments.ArchiveHistory(r.Context(), key, entryID); err != nil {
		writeError(w, h.log, r, err)
		return
	}

	assessment, err := h.assessments.Get(r.Context(), key)
	if errors.Is(err, service.ErrNotFound) {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusOK, assessment)
}
