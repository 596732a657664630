package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Config holds router configuration
type Config struct {
	Handler        *Handler
	AllowedOrigins []string
	Timeout        time.Duration
}

// NewRouter creates a new HTTP router
func NewRouter(cfg Config) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(middleware.RealIP)
	r.Use(Logging("/health"))
	r.Use(Recovery)
	if cfg.Timeout > 0 {
		r.Use(middleware.Timeout(cfg.Timeout))
	}

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, ErrCodeNotFound, "route not found")
	})

	r.Get("/health", cfg.Handler.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/analysis/{symbol}", cfg.Handler.GetAnalysis)
	})

	return r
}
