package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/columbia-shop/columbia/backend/internal/auth"
	"github.com/columbia-shop/columbia/backend/internal/catalog"
	"github.com/columbia-shop/columbia/backend/internal/middleware"
	"github.com/columbia-shop/columbia/backend/internal/stats"
)

// RootMessage is the plain-text body of GET /.
const RootMessage = "Columbia API is available"

// Deps are the handlers and gate the router dispatches to.
type Deps struct {
	Auth    *auth.Handler
	Catalog *catalog.Handler
	Admin   middleware.Authorizer
	// AccessLog enables chi's per-request log lines.
	AccessLog bool
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	if d.AccessLog {
		r.Use(chimw.Logger)
	}
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Admin-Token"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(RootMessage))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", stats.HandleStatus)
		r.Get("/stats", stats.HandleStats)
		r.Post("/login", d.Auth.Login)
		r.Get("/products", d.Catalog.List)
		r.Get("/images/*", d.Catalog.Image)

		// Admin routes (gated)
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(d.Admin))
			r.Post("/add-product", d.Catalog.Add)
			r.Post("/upload-image", d.Catalog.UploadImage)
		})
	})

	return r
}
