package api

import (
	"net/http"
	"strings"

	"github.com/Shiinama/blog-sub000/internal/anchor"
	"github.com/Shiinama/blog-sub000/internal/post"
	"github.com/Shiinama/blog-sub000/internal/preview"
	"github.com/Shiinama/blog-sub000/internal/toc"
)

type contentRequest struct {
	Content string   `json:"content"`
	Ratio   *float64 `json:"ratio,omitempty"`
}

func (s *Server) handleTOC(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"toc": toc.Build(req.Content)})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	ratio := s.cfg.PreviewRatio
	if req.Ratio != nil {
		ratio = *req.Ratio
	}
	p := preview.Build(req.Content, ratio)
	writeJSON(w, http.StatusOK, map[string]any{
		"preview":       p,
		"words":         preview.WordCount(req.Content),
		"visible_words": preview.VisibleWords(req.Content, ratio),
	})
}

func (s *Server) handleSlug(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text   string `json:"text"`
		Locale string `json:"locale"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		jsonError(w, "text is required", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"anchor":   anchor.Slugify(req.Text),
		"url_slug": post.URLSlug(req.Text, req.Locale),
	})
}

func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	missing, err := s.assembler.Renderer.Audit(req.Content)
	if err != nil {
		s.log.Error("audit failed", "error", err)
		jsonError(w, "audit failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      len(missing) == 0,
		"missing": missing,
	})
}
