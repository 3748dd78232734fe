package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/Shiinama/blog-sub000/internal/cache"
	"github.com/Shiinama/blog-sub000/internal/post"
	"github.com/Shiinama/blog-sub000/internal/stats"
)

type renderRequest struct {
	Source     string `json:"source"`
	Locale     string `json:"locale"`
	Subscribed bool   `json:"subscribed"`
	Admin      bool   `json:"admin"`
}

// handleRenderPost assembles a post page for a viewer. The locale comes from
// the post's front matter, then the request, then Accept-Language.
func (s *Server) handleRenderPost(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Source == "" {
		jsonError(w, "source is required", http.StatusBadRequest)
		return
	}

	locale := req.Locale
	if locale == "" {
		locale = r.Header.Get("Accept-Language")
	}
	viewer := post.Viewer{Subscribed: req.Subscribed, Admin: req.Admin}

	key := cache.Key(req.Source, viewer, locale)
	if page, ok := s.pages.Get(key); ok {
		s.renders.Record(stats.Event{Locale: page.Locale, Gated: page.Gated, Cached: true})
		w.Header().Set("X-Cache", "hit")
		writeJSON(w, http.StatusOK, page)
		return
	}

	p, err := post.Parse(req.Source)
	if err != nil {
		if errors.Is(err, post.ErrFrontMatter) {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.log.Error("parse post failed", "error", err)
		jsonError(w, "failed to parse post", http.StatusInternalServerError)
		return
	}
	if p.Locale == "" {
		p.Locale = locale
	}

	start := time.Now()
	page, err := s.assembler.Assemble(p, viewer)
	if err != nil {
		s.log.Error("assemble page failed", "slug", p.Slug, "error", err)
		jsonError(w, "failed to render post", http.StatusInternalServerError)
		return
	}
	s.renders.Record(stats.Event{Locale: page.Locale, Gated: page.Gated, Duration: time.Since(start)})

	s.pages.Put(key, page)
	w.Header().Set("X-Cache", "miss")
	writeJSON(w, http.StatusOK, page)
}
