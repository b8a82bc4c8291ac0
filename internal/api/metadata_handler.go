package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/rpattn/portfolio/internal/domain"
	"github.com/rpattn/portfolio/internal/repository"
	"github.com/rpattn/portfolio/internal/service"
)

// MetadataHandler serves the plain CRUD collections: delivery groups,
// delivery partners and portfolio themes. No history tracking here.
type MetadataHandler struct {
	groups   repository.DeliveryGroupRepository
	partners repository.DeliveryPartnerRepository
	themes   repository.ThemeRepository
	validate *Validator
	log      *slog.Logger
	now      func() time.Time
}

// NewMetadataHandler wires a metadata handler.
func NewMetadataHandler(
	groups repository.DeliveryGroupRepository,
	partners repository.DeliveryPartnerRepository,
	themes repository.ThemeRepository,
	validate *Validator,
	log *slog.Logger,
) *MetadataHandler {
	return &MetadataHandler{
		groups:   groups,
		partners: partners,
		themes:   themes,
		validate: validate,
		log:      log,
		now:      time.Now,
	}
}

type metadataPayload struct {
	ID          string `json:"id"`
	Name        string `json:"name" validate:"required"`
	Lead        string `json:"lead"`
	Description string `json:"description"`
}

func (h *MetadataHandler) checkCreate(payload metadataPayload) error {
	problems := h.validate.Check(payload)
	if payload.ID == "" {
		problems = append(problems, "id is required")
	}
	if len(problems) > 0 {
		return service.NewValidationError(problems...)
	}
	return nil
}

func (h *MetadataHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var payload metadataPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, h.log, r, err)
		return
	}
	if err := h.checkCreate(payload); err != nil {
		writeError(w, h.log, r, err)
		return
	}

	now := h.now()
	group := domain.DeliveryGroup{ID: payload.ID, Name: payload.Name, Lead: payload.Lead, CreatedAt: now, UpdatedAt: now}
	if err := h.groups.Create(r.Context(), group); err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, group)
}

func (h *MetadataHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groups.List(r.Context())
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (h *MetadataHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := h.groups.GetByID(r.Context(), r.PathValue("groupID"))
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

func (h *MetadataHandler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	var payload metadataPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, h.log, r, err)
		return
	}
	if err := h.validate.CheckError(payload); err != nil {
		writeError(w, h.log, r, err)
		return
	}

	group, err := h.groups.GetByID(r.Context(), r.PathValue("groupID"))
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}
	group.Name = payload.Name
	group.Lead = payload.Lead
	group.UpdatedAt = h.now()
	if err := h.groups.Replace(r.Context(), group); err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

func (h *MetadataHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := h.groups.Delete(r.Context(), r.PathValue("groupID")); err != nil {
		writeError(w, h.log, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MetadataHandler) CreatePartner(w http.ResponseWriter, r *http.Request) {
	var payload metadataPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, h.log, r, err)
		return
	}
	if err := h.checkCreate(payload); err != nil {
		writeError(w, h.log, r, err)
		return
	}

	now := h.now()
	partner := domain.DeliveryPartner{ID: payload.ID, Name: payload.Name, CreatedAt: now, UpdatedAt: now}
	if err := h.partners.Create(r.Context(), partner); err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, partner)
}

func (h *MetadataHandler) ListPartners(w http.ResponseWriter, r *http.Request) {
	partners, err := h.partners.List(r.Context())
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusOK, partners)
}

func (h *MetadataHandler) GetPartner(w http.ResponseWriter, r *http.Request) {
	partner, err := h.partners.GetByID(r.Context(), r.PathValue("partnerID"))
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusOK, partner)
}

func (h *MetadataHandler) UpdatePartner(w http.ResponseWriter, r *http.Request) {
	var payload metadataPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, h.log, r, err)
		return
	}
	if err := h.validate.CheckError(payload); err != nil {
		writeError(w, h.log, r, err)
		return
	}

	partner, err := h.partners.GetByID(r.Context(), r.PathValue("partnerID"))
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}
	partner.Name = payload.Name
	partner.UpdatedAt = h.now()
	if err := h.partners.Replace(r.Context(), partner); err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusOK, partner)
}

func (h *MetadataHandler) DeletePartner(w http.ResponseWriter, r *http.Request) {
	if err := h.partners.Delete(r.Context(), r.PathValue("partnerID")); err != nil {
		writeError(w, h.log, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MetadataHandler) CreateTheme(w http.ResponseWriter, r *http.Request) {
	var payload metadataPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, h.log, r, err)
		return
	}
	if err := h.checkCreate(payload); err != nil {
		writeError(w, h.log, r, err)
		return
	}

	now := h.now()
	theme := domain.PortfolioTheme{ID: payload.ID, Name: payload.Name, Description: payload.Description, CreatedAt: now, UpdatedAt: now}
	if err := h.themes.Create(r.Context(), theme); err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, theme)
}

func (h *MetadataHandler) ListThemes(w http.ResponseWriter, r *http.Request) {
	themes, err := h.themes.List(r.Context())
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusOK, themes)
}

func (h *MetadataHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := h.themes.GetByID(r.Context(), r.PathValue("themeID"))
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusOK, theme)
}

func (h *MetadataHandler) UpdateTheme(w http.ResponseWriter, r *http.Request) {
	var payload metadataPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, h.log, r, err)
		return
	}
	if err := h.validate.CheckError(payload); err != nil {
		writeError(w, h.log, r, err)
		return
	}

	theme, err := h.themes.GetByID(r.Context(), r.PathValue("themeID"))
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}
	theme.Name = payload.Name
	theme.Description = payload.Description
	theme.UpdatedAt = h.now()
	if err := h.themes.Replace(r.Context(), theme); err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusOK, theme)
}

func (h *MetadataHandler) DeleteTheme(w http.ResponseWriter, r *http.Request) {
	if err := h.themes.Delete(r.Context(), r.PathValue("themeID")); err != nil {
		writeError(w, h.log, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
