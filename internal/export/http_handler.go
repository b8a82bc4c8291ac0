package export

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

type handler struct {
	service *Service
	log     *slog.Logger
}

// NewHTTPHandler serves the workbook as an xlsx attachment.
func NewHTTPHandler(service *Service, log *slog.Logger) http.Handler {
	return &handler{service: service, log: log}
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	workbook, err := h.service.Workbook(r.Context())
	if err != nil {
		h.log.Error("export failed", "error", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	defer func() { _ = workbook.Close() }()

	filename := fmt.Sprintf("portfolio-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := workbook.WriteTo(w); err != nil {
		h.log.Error("failed to stream workbook", "error", err)
	}
}
