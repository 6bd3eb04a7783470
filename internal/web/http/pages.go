package httpapi

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/radieske/match-predictor/internal/web/logo"
	"github.com/radieske/match-predictor/internal/web/teams"
	"github.com/radieske/match-predictor/internal/web/theme"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type pageData struct {
	Title   string
	Theme   theme.Theme
	Icon    string
	League  string
	Teams   []string
	Message string
}

func (s *Server) page(r *http.Request, title string) pageData {
	t := s.Theme.Get(r.Context(), SessionID(r.Context()))
	return pageData{Title: title, Theme: t, Icon: t.Icon()}
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		s.Log.Error("template render failed", zap.String("template", name), zap.Error(err))
	}
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	data := s.page(r, "Match Predictor")

	cat, err := s.Teams()
	if err != nil {
		if !errors.Is(err, teams.ErrMissing) {
			s.Log.Error("teams catalog load failed", zap.Error(err))
		}
		data.Title = "Error"
		data.Message = "Team catalog not found!"
		s.render(w, http.StatusServiceUnavailable, "error.html", data)
		return
	}

	data.League = cat.League
	data.Teams = cat.Teams
	s.render(w, http.StatusOK, "index.html", data)
}

func (s *Server) about(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "about.html", s.page(r, "About"))
}

// badge gera o placeholder SVG de um time (inicial sobre o matiz do nome)
func (s *Server) badge(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if v, err := url.PathUnescape(name); err == nil {
		name = v
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(logo.BadgeSVG(name))
}
