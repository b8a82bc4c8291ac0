package api

import (
	"log/slog"
	"net/http"

	"github.com/rs/cors"

	"github.com/rpattn/portfolio/internal/auth"
	"github.com/rpattn/portfolio/internal/middleware"
)

// RouterConfig collects everything the REST router serves.
type RouterConfig struct {
	Projects       *ProjectHandler
	Assessments    *AssessmentHandler
	Standards      *StandardHandler
	Professions    *ProfessionHandler
	Metadata       *MetadataHandler
	Export         http.Handler
	Verifier       *auth.Verifier
	Log            *slog.Logger
	AllowedOrigins []string
}

// NewRouter builds the full HTTP surface. Reads are public; every mutation
// sits behind bearer token auth so history entries always carry an actor.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	protect := middleware.RequireAuth(cfg.Verifier, cfg.Log)
	guarded := func(handler http.HandlerFunc) http.Handler {
		return protect(handler)
	}

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Projects and their history ledger.
	mux.Handle("POST /projects", guarded(cfg.Projects.Create))
	mux.HandleFunc("GET /projects", cfg.Projects.List)
	mux.Handle("GET /projects/export", cfg.Export)
	mux.HandleFunc("GET /projects/{projectID}", cfg.Projects.Get)
	mux.Handle("PUT /projects/{projectID}", guarded(cfg.Projects.Update))
	mux.Handle("DELETE /projects/{projectID}", guarded(cfg.Projects.Delete))
	mux.HandleFunc("GET /projects/{projectID}/history", cfg.Projects.History)
	mux.Handle("PUT /projects/{projectID}/history/{historyID}/archive", guarded(cfg.Projects.ArchiveHistory))

	// Per-profession assessments nested under their key.
	const assessmentPath = "/projects/{projectID}/standards/{standardID}/professions/{professionID}/assessment"
	mux.Handle("POST "+assessmentPath, guarded(cfg.Assessments.Upsert))
	mux.HandleFunc("GET "+assessmentPath, cfg.Assessments.Get)
	mux.Handle("DELETE "+assessmentPath, guarded(cfg.Assessments.Delete))
	mux.HandleFunc("GET "+assessmentPath+"/history", cfg.Assessments.History)
	mux.Handle("POST "+assessmentPath+"/history/{historyID}/archive", guarded(cfg.Assessments.ArchiveHistory))

	// Soft deleted catalogs.
	mux.Handle("POST /standards", guarded(cfg.Standards.Create))
	mux.HandleFunc("GET /standards", cfg.Standards.List)
	mux.HandleFunc("GET /standards/{standardID}", cfg.Standards.Get)
	mux.Handle("PUT /standards/{standardID}", guarded(cfg.Standards.Update))
	mux.Handle("DELETE /standards/{standardID}", guarded(cfg.Standards.Delete))
	mux.Handle("POST /standards/{standardID}/restore", guarded(cfg.Standards.Restore))

	mux.Handle("POST /professions", guarded(cfg.Professions.Create))
	mux.HandleFunc("GET /professions", cfg.Professions.List)
	mux.HandleFunc("GET /professions/{professionID}", cfg.Professions.Get)
	mux.Handle("PUT /professions/{professionID}", guarded(cfg.Professions.Update))
	mux.Handle("DELETE /professions/{professionID}", guarded(cfg.Professions.Delete))
	mux.Handle("POST /professions/{professionID}/restore", guarded(cfg.Professions.Restore))

	// Plain metadata CRUD.
	mux.Handle("POST /delivery-groups", guarded(cfg.Metadata.CreateGroup))
	mux.HandleFunc("GET /delivery-groups", cfg.Metadata.ListGroups)
	mux.HandleFunc("GET /delivery-groups/{groupID}", cfg.Metadata.GetGroup)
	mux.Handle("PUT /delivery-groups/{groupID}", guarded(cfg.Metadata.UpdateGroup))
	mux.Handle("DELETE /delivery-groups/{groupID}", guarded(cfg.Metadata.DeleteGroup))

	mux.Handle("POST /delivery-partners", guarded(cfg.Metadata.CreatePartner))
	mux.HandleFunc("GET /delivery-partners", cfg.Metadata.ListPartners)
	mux.HandleFunc("GET /delivery-partners/{partnerID}", cfg.Metadata.GetPartner)
	mux.Handle("PUT /delivery-partners/{partnerID}", guarded(cfg.Metadata.UpdatePartner))
	mux.Handle("DELETE /delivery-partners/{partnerID}", guarded(cfg.Metadata.DeletePartner))

	mux.Handle("POST /themes", guarded(cfg.Metadata.CreateTheme))
	mux.HandleFunc("GET /themes", cfg.Metadata.ListThemes)
	mux.HandleFunc("GET /themes/{themeID}", cfg.Metadata.GetTheme)
	mux.Handle("PUT /themes/{themeID}", guarded(cfg.Metadata.UpdateTheme))
	mux.Handle("DELETE /themes/{themeID}", guarded(cfg.Metadata.DeleteTheme))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
	})

	return middleware.Logging(cfg.Log)(corsHandler.Handler(mux))
}
