package server

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/alexanderjulianmartinez/preptura/internal/config"
)

// Server is the local presentation surface: a small JSON API over the
// diagnostics engine, the cleaner and the config store. One instance
// serves one user; datasets are loaded per request and never shared.
type Server struct {
	log     *slog.Logger
	cfgPath string

	mu  sync.Mutex // guards cfg
	cfg *config.Config
}

func New(cfg *config.Config, cfgPath string, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{cfg: cfg, cfgPath: cfgPath, log: log}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Use(s.logRequests)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/files", s.handleListFiles)
		r.Post("/diagnose", s.handleDiagnose)
		r.Post("/clean", s.handleClean)
		r.Get("/config", s.handleGetConfig)
		r.Put("/config", s.handlePutConfig)
	})
	return r
}

// ListenAndServe blocks serving the API on the configured address.
func (s *Server) ListenAndServe() error {
	s.mu.Lock()
	addr := s.cfg.Listen
	s.mu.Unlock()

	s.log.Info("listening", slog.String("addr", addr))
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.log.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
		next.ServeHTTP(w, r)
	})
}

// snapshot returns the current config value under the lock.
func (s *Server) snapshot() config.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.cfg
}
