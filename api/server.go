/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the browser frontend

ROUTE GROUPS:
  /api/companies/*   Tenant management, holidays, external counts
  /api/workers/*     Workers, schedule rows, breakdowns, summaries
  /api/holidays/*    Holiday deletion

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Company routes
		r.Route("/companies", func(r chi.Router) {
			r.Get("/", h.ListCompanies)
			r.Post("/", h.CreateCompany)
			r.Get("/{id}", h.GetCompany)
			r.Get("/{id}/workers", h.ListCompanyWorkers)
			r.Get("/{id}/holidays", h.ListHolidays)
			r.Post("/{id}/holidays", h.CreateHoliday)
			r.Get("/{id}/external", h.ListExternalCounts)
			r.Put("/{id}/external", h.PutExternalCount)
		})

		// Worker routes
		r.Route("/workers", func(r chi.Router) {
			r.Post("/", h.CreateWorker)
			r.Get("/{id}", h.GetWorker)
			r.Get("/{id}/rows", h.ListRows)
			r.Post("/{id}/rows", h.CreateRow)
			r.Put("/{id}/rows/{rowID}", h.UpdateRow)
			r.Delete("/{id}/rows/{rowID}", h.DeleteRow)
			r.Get("/{id}/days/{date}", h.GetDayBreakdown)
			r.Get("/{id}/summary", h.GetSummary)
		})

		// Holiday routes
		r.Route("/holidays", func(r chi.Router) {
			r.Delete("/{id}", h.DeleteHoliday)
		})
	})

	return r
}
