package api

import (
	"log/slog"
	"net/http"

	"github.com/Shiinama/blog-sub000/internal/cache"
	"github.com/Shiinama/blog-sub000/internal/config"
	"github.com/Shiinama/blog-sub000/internal/post"
	"github.com/Shiinama/blog-sub000/internal/stats"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API of the blog content service.
type Server struct {
	router    chi.Router
	assembler *post.Assembler
	pages     *cache.Store
	renders   *stats.Renders
	log       *slog.Logger
	cfg       config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(assembler *post.Assembler, pages *cache.Store, renders *stats.Renders, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		assembler: assembler,
		pages:     pages,
		renders:   renders,
		log:       log,
		cfg:       cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/toc", s.handleTOC)
		r.Post("/api/preview", s.handlePreview)
		r.Post("/api/slug", s.handleSlug)

		r.Post("/api/posts/render", s.handleRenderPost)
		r.Post("/api/posts/audit", s.handleAudit)

		r.Post("/api/import", s.handleImport)
		r.Get("/api/stats/render", s.handleRenderStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
