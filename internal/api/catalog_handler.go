package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/rpattn/portfolio/internal/domain"
	"github.com/rpattn/portfolio/internal/repository"
	"github.com/rpattn/portfolio/internal/service"
)

// StandardHandler serves the /standards surface. Standards are soft
// deleted: DELETE records who removed them and when, restore brings them
// back, and deleted entries only show up in listings on request.
type StandardHandler struct {
	standards repository.StandardRepository
	validate  *Validator
	log       *slog.Logger
	now       func() time.Time
}

// NewStandardHandler wires a standard handler.
func NewStandardHandler(standards repository.StandardRepository, validate *Validator, log *slog.Logger) *StandardHandler {
	return &StandardHandler{standards: standards, validate: validate, log: log, now: time.Now}
}

type standardPayload struct {
	ID          string `json:"id"`
	Number      int    `json:"number" validate:"required,min=1"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

func (h *StandardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload standardPayload
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

	if _, err := h.standards.GetByID(r.Context(), payload.ID); err == nil {
		writeError(w, h.log, r, service.NewValidationError("standard already exists"))
		return
	}

	now := h.now()
	standard := domain.ServiceStandard{
		ID:          payload.ID,
		Number:      payload.Number,
		Name:        payload.Name,
		Description: payload.Description,
		Active:      payload.Active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.standards.Create(r.Context(), standard); err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, standard)
}

func (h *StandardHandler) List(w http.ResponseWriter, r *http.Request) {
	includeDeleted := r.URL.Query().Get("includeDeleted") == "true"
	standards, err := h.standards.List(r.Context(), includeDeleted)
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusOK, standards)
}

func (h *StandardHandler) Get(w http.ResponseWriter, r *http.Request) {
	standard, err := h.standards.GetByID(r.Context(), r.PathValue("standardID"))
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusOK, standard)
}

func (h *StandardHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload standardPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, h.log, r, err)
		return
	}
	if err := h.validate.CheckError(payload); err != nil {
		writeError(w, h.log, r, err)
		return
	}

	existing, err := h.standards.GetByID(r.Context(), r.PathValue("standardID"))
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}

	existing.Number = payload.Number
	existing.Name = payload.Name
	existing.Description = payload.Description
	existing.Active = payload.Active
	existing.UpdatedAt = h.now()
	if err := h.standards.Replace(r.Context(), existing); err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusOK, existing)
}

func (h *StandardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.standards.SoftDelete(r.Context(), r.PathValue("standardID"), actorFrom(r), h.now()); err != nil {
		writeError(w, h.log, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *StandardHandler) Restore(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("standardID")
	if err := h.standards.Restore(r.Context(), id); err != nil {
		writeError(w, h.log, r, err)
		return
	}
	standard, err := h.standards.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusOK, standard)
}

// ProfessionHandler serves the /professions surface, soft deleted the same
// way standards are.
type ProfessionHandler struct {
	professions repository.ProfessionRepository
	validate    *Validator
	log         *slog.Logger
	now         func() time.Time
}

// NewProfessionHandler wires a profession handler.
func NewProfessionHandler(professions repository.ProfessionRepository, validate *Validator, log *slog.Logger) *ProfessionHandler {
	return &ProfessionHandler{professions: professions, validate: validate, log: log, now: time.Now}
}

type professionPayload struct {
	ID   string `json:"id"`
	Name string `json:"name" validate:"required"`
}

func (h *ProfessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload professionPayload
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

	if _, err := h.professions.GetByID(r.Context(), payload.ID); err == nil {
		writeError(w, h.log, r, service.NewValidationError("profession already exists"))
		return
	}

	now := h.now()
	profession := domain.Profession{ID: payload.ID, Name: payload.Name, CreatedAt: now, UpdatedAt: now}
	if err := h.professions.Create(r.Context(), profession); err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, profession)
}

func (h *ProfessionHandler) List(w http.ResponseWriter, r *http.Request) {
	includeDeleted := r.URL.Query().Get("includeDeleted") == "true"
	professions, err := h.professions.List(r.Context(), includeDeleted)
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusOK, professions)
}

func (h *ProfessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	profession, err := h.professions.GetByID(r.Context(), r.PathValue("professionID"))
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profession)
}

func (h *ProfessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload professionPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, h.log, r, err)
		return
	}
	if err := h.validate.CheckError(payload); err != nil {
		writeError(w, h.log, r, err)
		return
	}

	existing, err := h.professions.GetByID(r.Context(), r.PathValue("professionID"))
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}

	existing.Name = payload.Name
	existing.UpdatedAt = h.now()
	if err := h.professions.Replace(r.Context(), existing); err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusOK, existing)
}

func (h *ProfessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.professions.SoftDelete(r.Context(), r.PathValue("professionID"), actorFrom(r), h.now()); err != nil {
		writeError(w, h.log, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProfessionHandler) Restore(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("professionID")
	if err := h.professions.Restore(r.Context(), id); err != nil {
		writeError(w, h.log, r, err)
		return
	}
	profession, err := h.professions.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profession)
}
