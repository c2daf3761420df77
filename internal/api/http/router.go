// Package http exposes exam sessions over a JSON REST API.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/abhisek/examprep/internal/bank"
	"github.com/abhisek/examprep/internal/history"
	"github.com/abhisek/examprep/internal/registry"
)

// Deps are the services the API is built on.
type Deps struct {
	Registry *registry.Registry
	Bank     *bank.Bank
	Book     *history.Book
	Logger   *slog.Logger

	CORSOrigins []string
	Timeout     time.Duration
}

// NewRouter mounts every route with request logging, panic recovery,
// timeouts and CORS.
func NewRouter(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Timeout <= 0 {
		d.Timeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(d.Timeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/catalog", CatalogHandler(d.Bank))
	r.Get("/history", HistoryHandler(d.Book))
	r.Delete("/history", ClearHistoryHandler(d.Book, d.Logger))

	r.Route("/sessions", func(sr chi.Router) {
		sr.Post("/", CreateSessionHandler(d.Registry, d.Logger))
		sr.Route("/{sessionID}", func(s chi.Router) {
			s.Get("/", GetSessionHandler(d.Registry, d.Logger))
			s.Delete("/", DeleteSessionHandler(d.Registry, d.Logger))
			s.Post("/configure", ConfigureHandler(d.Registry, d.Logger))
			s.Post("/start", StartHandler(d.Registry, d.Logger))
			s.Post("/answers", AnswerHandler(d.Registry, d.Logger))
			s.Post("/flags", FlagHandler(d.Registry, d.Logger))
			s.Post("/navigate", NavigateHandler(d.Registry, d.Logger))
			s.Post("/finish", FinishHandler(d.Registry, d.Logger))
			s.Post("/review", ReviewHandler(d.Registry, d.Logger))
			s.Post("/results", ShowResultsHandler(d.Registry, d.Logger))
			s.Post("/reset", ResetHandler(d.Registry, d.Logger))
		})
	})

	return r
}
