package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/finvoice/internal/http/dashboard"
	"github.com/MrJamesThe3rd/finvoice/internal/http/export"
	"github.com/MrJamesThe3rd/finvoice/internal/http/goal"
	"github.com/MrJamesThe3rd/finvoice/internal/http/importcsv"
	"github.com/MrJamesThe3rd/finvoice/internal/http/matching"
	"github.com/MrJamesThe3rd/finvoice/internal/http/profile"
	"github.com/MrJamesThe3rd/finvoice/internal/http/transaction"
)

type Handlers struct {
	Transactions *transaction.Handler
	Goals        *goal.Handler
	Profile      *profile.Handler
	Dashboard    *dashboard.Handler
	Import       *importcsv.Handler
	Matching     *matching.Handler
	Export       *export.Handler
}

func New(h Handlers, allowedOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Transactions.Routes(r)
		})

		r.Route("/goals", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Goals.Routes(r)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Profile.Routes(r)
		})

		r.Route("/dashboard", h.Dashboard.Routes)
		r.Route("/import", h.Import.Routes)
		r.Route("/matching", h.Matching.Routes)
		r.Route("/export", h.Export.Routes)
	})

	return router
}
