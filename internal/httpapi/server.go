// Package httpapi serves the manager services as a JSON API behind bearer
// token authentication.
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/alexanderramin/rosterdesk/internal/config"
	"github.com/alexanderramin/rosterdesk/internal/service"
)

const requestTimeout = 30 * time.Second

type Server struct {
	factory *service.Factory
	cfg     config.HTTPConfig
	logger  *slog.Logger
	now     func() time.Time
}

type Option func(*Server)

// WithClock overrides the clock used for token expiry and week defaults.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func New(factory *service.Factory, cfg config.HTTPConfig, logger *slog.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{factory: factory, cfg: cfg, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(s.corsOptions()))
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(s.authenticate)

		r.Get("/stats", s.stats)
		r.Get("/team", s.team)
		r.Get("/allocation", s.allocation)
		r.Get("/weeks", s.weeks)
		r.Get("/available", s.available)

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", s.projects)
			r.Get("/history", s.history)
			r.Get("/tracking", s.tracking)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/team", s.projectTeam)
				r.Get("/assignable", s.assignable)
				r.Get("/notice", s.notice)
				r.Post("/complete", s.complete)
				r.Post("/drop", s.drop)
				r.Delete("/members/{userID}", s.removeMember)
			})
		})

		r.Post("/allocations", s.allocate)
		r.Post("/project-requests", s.submitRequest)

		r.Get("/entries", s.listEntries)
		r.Post("/entries", s.addEntry)
		r.Delete("/entries/{id}", s.deleteEntry)
	})
	return r
}

func (s *Server) corsOptions() cors.Options {
	opts := cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}
	// Credentials cannot be combined with a wildcard origin.
	if len(opts.AllowedOrigins) > 0 && opts.AllowedOrigins[0] != "*" {
		opts.AllowCredentials = true
	}
	return opts
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.InfoContext(r.Context(), "http_request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
