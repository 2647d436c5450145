package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(apiHandler *APIHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)       // Basic request logging
	r.Use(middleware.Recoverer)    // Recover from panics
	r.Use(middleware.StripSlashes) // Ensure consistent path handling

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok"}`))
		})

		r.Post("/insights", apiHandler.AnalyzeHandler)

		r.Get("/history", apiHandler.ListHistoryHandler)
		r.Delete("/history", apiHandler.ClearHistoryHandler)

		r.Get("/dashboard", apiHandler.DashboardHandler)
		r.Get("/scenarios", apiHandler.ScenariosHandler)

		r.Get("/credential", apiHandler.CredentialStatusHandler)
		r.Put("/credential", apiHandler.SetCredentialHandler)
	})

	return r
}
