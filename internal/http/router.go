package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/dompet/internal/http/analytics"
	"github.com/MrJamesThe3rd/dompet/internal/http/budget"
	"github.com/MrJamesThe3rd/dompet/internal/http/category"
	"github.com/MrJamesThe3rd/dompet/internal/http/export"
	"github.com/MrJamesThe3rd/dompet/internal/http/identity"
	"github.com/MrJamesThe3rd/dompet/internal/http/importcsv"
	"github.com/MrJamesThe3rd/dompet/internal/http/rule"
	"github.com/MrJamesThe3rd/dompet/internal/http/transaction"
)

type Handlers struct {
	Transactions *transaction.Handler
	Budgets      *budget.Handler
	Analytics    *analytics.Handler
	Categories   *category.Handler
	Import       *importcsv.Handler
	Rules        *rule.Handler
	Export       *export.Handler
}

func New(h Handlers, ident *identity.Resolver, allowedOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", identity.HeaderOwner},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/categories", h.Categories.Routes)

		r.Group(func(r chi.Router) {
			r.Use(ident.Middleware)

			r.Route("/transactions", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Transactions.Routes(r)
			})

			r.Route("/budgets", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Budgets.Routes(r)
			})

			r.Route("/rules", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Rules.Routes(r)
			})

			r.Route("/analytics", h.Analytics.Routes)
			r.Route("/import", h.Import.Routes)
			r.Route("/export", h.Export.Routes)
		})
	})

	return router
}
