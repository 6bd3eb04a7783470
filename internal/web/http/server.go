// Package httpapi expõe as páginas, a API JSON e o stream de operações de UI.
package httpapi

import (
	"encoding/json"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/radieske/match-predictor/internal/web/history"
	"github.com/radieske/match-predictor/internal/web/teams"
	"github.com/radieske/match-predictor/internal/web/theme"
	"github.com/radieske/match-predictor/internal/web/workflow"
	"github.com/radieske/match-predictor/internal/web/ws"
)

// Server agrega os componentes de uma sessão de navegador
type Server struct {
	Log      *zap.Logger
	Workflow *workflow.Controller
	History  *history.Store
	Theme    *theme.Store
	Hub      *ws.Hub
	Teams    func() (teams.Catalog, error) // relido a cada GET /
	Static   fs.FS
}

// Router retorna o roteador HTTP com páginas, API e WebSocket
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.session)

	r.Get("/", s.index)      // Formulário de previsão
	r.Get("/about", s.about) // Página sobre

	r.Route("/api", func(r chi.Router) {
		r.Post("/predictions", s.predict)                  // Submete o formulário
		r.Post("/reset", s.reset)                          // Botão reset: recolhe o painel
		r.Get("/history", s.getHistory)                    // Lista do histórico (view-model)
		r.Delete("/history", s.clearHistory)               // Limpa o histórico
		r.Post("/history/{index}/replay", s.replayHistory) // Refaz a previsão de um item
		r.Get("/theme", s.getTheme)                        // Tema salvo
		r.Post("/theme/toggle", s.toggleTheme)             // Alterna o tema
	})

	r.Get("/ws", s.serveWS)
	r.Get("/badges/{name}.svg", s.badge)
	if s.Static != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(s.Static))))
	}
	return r
}

// OnConnect envia o estado inicial (tema e histórico) para a sessão recém conectada
func (s *Server) OnConnect(sessionID string) {
	ctx, cancel := detached()
	defer cancel()

	s.Theme.Apply(ctx, sessionID)
	if _, err := s.History.Render(ctx, sessionID); err != nil {
		s.Log.Warn("initial history render failed", zap.String("session", sessionID), zap.Error(err))
	}
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	s.Hub.Serve(w, r, SessionID(r.Context()))
}

// writeJSON serializa a resposta em JSON e define o status HTTP
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
