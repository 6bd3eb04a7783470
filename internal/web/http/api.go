package httpapi

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/radieske/match-predictor/internal/web/history"
	"github.com/radieske/match-predictor/internal/web/predictor"
	"github.com/radieske/match-predictor/internal/web/view"
	"github.com/radieske/match-predictor/internal/web/workflow"
)

// decodeForm aceita tanto form-encoded (como o formulário original) quanto JSON
func decodeForm(r *http.Request) (workflow.Form, error) {
	var f workflow.Form
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" {
		err := json.NewDecoder(r.Body).Decode(&f)
		return f, err
	}
	if err := r.ParseForm(); err != nil {
		return f, err
	}
	f.HomeTeam = r.PostForm.Get("home_team")
	f.AwayTeam = r.PostForm.Get("away_team")
	return f, nil
}

func (s *Server) predict(w http.ResponseWriter, r *http.Request) {
	f, err := decodeForm(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := s.Workflow.Submit(r.Context(), SessionID(r.Context()), f)
	s.writeResult(w, res, err)
}

func (s *Server) replayHistory(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid history index")
		return
	}
	// ts identifica a linha se outra aba mudou a lista desde a renderização
	res, err := s.Workflow.Replay(r.Context(), SessionID(r.Context()), idx, r.URL.Query().Get("ts"))
	s.writeResult(w, res, err)
}

// writeResult mapeia os erros do fluxo para status HTTP
func (s *Server) writeResult(w http.ResponseWriter, res *view.Result, err error) {
	if err == nil {
		writeJSON(w, http.StatusOK, res)
		return
	}

	var re *workflow.RequestError
	var se *predictor.StatusError
	switch {
	case errors.Is(err, workflow.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, history.ErrNoEntry):
		writeError(w, http.StatusNotFound, "history entry not found")
	case errors.As(err, &re) && errors.As(err, &se) && se.StatusCode >= 400:
		writeError(w, se.StatusCode, re.Message)
	case errors.As(err, &re):
		writeError(w, http.StatusBadGateway, re.Message)
	default:
		s.Log.Error("prediction workflow failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) reset(w http.ResponseWriter, r *http.Request) {
	s.Workflow.Reset(SessionID(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getHistory(w http.ResponseWriter, r *http.Request) {
	list, err := s.History.GetAll(r.Context(), SessionID(r.Context()))
	if err != nil {
		s.Log.Error("history load failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "history unavailable")
		return
	}
	writeJSON(w, http.StatusOK, s.History.Build(r.Context(), list))
}

func (s *Server) clearHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.History.Clear(r.Context(), SessionID(r.Context())); err != nil {
		s.Log.Error("history clear failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "history unavailable")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getTheme(w http.ResponseWriter, r *http.Request) {
	t := s.Theme.Get(r.Context(), SessionID(r.Context()))
	writeJSON(w, http.StatusOK, map[string]string{"theme": string(t)})
}

func (s *Server) toggleTheme(w http.ResponseWriter, r *http.Request) {
	t, err := s.Theme.Toggle(r.Context(), SessionID(r.Context()))
	if err != nil {
		s.Log.Error("theme save failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "theme unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"theme": string(t)})
}
