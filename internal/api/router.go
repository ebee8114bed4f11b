package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hoanghai1803/draftpad/internal/ai"
	"github.com/hoanghai1803/draftpad/internal/api/handlers"
	"github.com/hoanghai1803/draftpad/internal/drafts"
	"github.com/hoanghai1803/draftpad/internal/importer"
)

// Deps holds everything the HTTP API serves.
type Deps struct {
	Drafts drafts.Service

	// NewID generates ids for drafts created without one. Leave nil when
	// Drafts assigns ids itself.
	NewID handlers.IDFunc

	// Assistant may be nil, in which case the assist endpoints answer 503.
	Assistant *ai.Assistant

	Importer *importer.Importer
}

// NewRouter creates and configures the HTTP router with all API routes.
func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware.
	r.Use(middleware.RequestID)
	r.Use(RequestLogger)
	r.Use(Recovery)
	r.Use(CORS)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// API sub-router.
	r.Route("/api", func(api chi.Router) {
		api.Route("/drafts", func(d chi.Router) {
			d.Get("/", handlers.ListDrafts(deps.Drafts))
			d.Post("/", handlers.CreateDraft(deps.Drafts, deps.NewID))
			d.Delete("/", handlers.ClearDrafts(deps.Drafts))
			d.Post("/import", handlers.ImportDraft(deps.Drafts, deps.Importer, deps.NewID))

			d.Get("/{id}", handlers.GetDraft(deps.Drafts))
			d.Put("/{id}", handlers.UpdateDraft(deps.Drafts))
			d.Delete("/{id}", handlers.DeleteDraft(deps.Drafts))
			d.Post("/{id}/generate", handlers.GenerateDraftFields(deps.Drafts, deps.Assistant))
		})

		api.Post("/assist/title", handlers.AssistTitle(deps.Assistant))
		api.Post("/assist/summary", handlers.AssistSummary(deps.Assistant))
		api.Post("/assist/keywords", handlers.AssistKeywords(deps.Assistant))
	})

	return r
}
